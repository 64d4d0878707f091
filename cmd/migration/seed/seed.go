package seed

import (
	"server/config"
	"server/internal/logger"
	. "server/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func intPtr(i int) *int {
	return &i
}

func labelPtr(l Label) *Label {
	return &l
}

// Seed loads development fixtures: one evaluator and a few applications in
// assorted review states. Production runs skip it.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("Seed")

	if config.Environment != "development" {
		log.Info("Skipping seed outside development", "environment", config.Environment)
		return nil
	}

	log.Info("Seeding development data")

	if err := seedEvaluator(db, log); err != nil {
		return err
	}

	applications := []Application{
		{
			FullName:           "Imani Duarte",
			Email:              "imani.duarte@example.com",
			Phone:              "+1 555 0101",
			DesignCategory:     "Womenswear",
			PortfolioLink:      "https://imani.example.com",
			ResumeLocation:     "https://cdn.example.com/atelier-hiring/resumes/seed-imani.pdf",
			PortfolioLocations: StringList{"https://cdn.example.com/atelier-hiring/portfolios/seed-imani-1.jpg"},
			AnswerCollection:   "A capsule collection around bias-cut silk.",
			AnswerProject:      "Draped and recut a jacket block over six weeks.",
			AnswerInspiration:  "Archival workwear and my grandmother's sewing room.",
			Status:             StatusPending,
		},
		{
			FullName:           "Theo Lindqvist",
			Email:              "theo.lindqvist@example.com",
			Phone:              "+46 70 555 0102",
			DesignCategory:     "Accessories",
			ResumeLocation:     "https://cdn.example.com/atelier-hiring/resumes/seed-theo.pdf",
			PortfolioLocations: StringList{},
			AnswerCollection:   "Hardware-free leather goods.",
			AnswerProject:      "Built a saddle-stitched weekender from a single hide.",
			AnswerInspiration:  "Mid-century luggage.",
			Score:              intPtr(88),
			Label:              labelPtr(LabelStrong),
			Status:             StatusSelected,
		},
	}

	for _, application := range applications {
		var existing Application
		if err := db.First(&existing, "email = ?", application.Email).Error; err == nil {
			log.Info("Application already seeded", "email", application.Email)
			continue
		}
		log.Info("Seeding application", "email", application.Email)
		if err := db.Create(&application).Error; err != nil {
			log.Er("failed to seed application", err, "email", application.Email)
		}
	}

	return nil
}

func seedEvaluator(db *gorm.DB, log logger.Logger) error {
	const email = "reviewer@example.com"

	var existing Evaluator
	if err := db.First(&existing, "email = ?", email).Error; err == nil {
		log.Info("Evaluator already seeded", "email", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash seed password", err)
	}

	evaluator := Evaluator{
		FullName:     "Seed Reviewer",
		Email:        email,
		PasswordHash: string(hash),
	}

	log.Info("Seeding evaluator", "email", email)
	if err := db.Create(&evaluator).Error; err != nil {
		log.Er("failed to seed evaluator", err, "email", email)
	}

	return nil
}
