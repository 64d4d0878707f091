package initialize

import (
	"server/config"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
)

// InitializeTables repairs data invariants after schema migrations run.
// A record with a score must always carry the matching label, so any row
// that gained a score without one (or with a stale one) is recomputed.
func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Reconciling score labels")

	var applications []Application
	if err := db.Where("score IS NOT NULL").Find(&applications).Error; err != nil {
		return log.Err("failed to load scored applications", err)
	}

	repaired := 0
	for _, application := range applications {
		expected := LabelForScore(*application.Score)
		if application.Label != nil && *application.Label == expected {
			continue
		}

		err := db.Model(&Application{}).
			Where("id = ?", application.ID).
			Update("label", expected).Error
		if err != nil {
			return log.Err("failed to repair label", err, "applicationID", application.ID)
		}
		repaired++
	}

	if repaired > 0 {
		log.Info("Repaired inconsistent labels", "count", repaired)
	}

	log.Info("Table initialization complete")
	return nil
}
