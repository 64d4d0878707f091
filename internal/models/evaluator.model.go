package models

type Evaluator struct {
	BaseUUIDModel
	FullName     string `gorm:"type:varchar(255);not null"        json:"fullName"`
	Email        string `gorm:"type:varchar(255);not null;unique" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"        json:"-"`
}

type SignupRequest struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	AccessCode string `json:"accessCode"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
