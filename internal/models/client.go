package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BusinessCategory string

const (
	CategoryRetail     BusinessCategory = "retail"
	CategoryFnB        BusinessCategory = "fnb"
	CategoryServices   BusinessCategory = "services"
	CategoryEducation  BusinessCategory = "education"
	CategoryHealthcare BusinessCategory = "healthcare"
	CategoryTechnology BusinessCategory = "technology"
	CategoryOther      BusinessCategory = "other"
)

// Client is the primary entity assembled by the onboarding wizard.
type Client struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	// Personal contact (PIC)
	FullName string `gorm:"type:varchar(150)" json:"full_name"`
	Email    string `gorm:"type:varchar(150)" json:"email"`
	Phone    string `gorm:"type:varchar(30)" json:"phone"`
	Position string `gorm:"type:varchar(80)" json:"position"`

	// Business profile
	BusinessName      string           `gorm:"type:varchar(150);index" json:"business_name"`
	Category          BusinessCategory `gorm:"type:varchar(40)" json:"category"`
	CategoryOther     string           `gorm:"type:varchar(120)" json:"category_other"` // free text when category = other
	Description       string           `gorm:"type:text" json:"description"`
	MainOfficeAddress string           `gorm:"type:text" json:"main_office_address"`
	EstablishedYear   string           `gorm:"type:varchar(10)" json:"established_year"`

	// Business contact
	BusinessPhone    string `gorm:"type:varchar(30)" json:"business_phone"`
	BusinessWhatsApp string `gorm:"type:varchar(30)" json:"business_whatsapp"`
	BusinessEmail    string `gorm:"type:varchar(150)" json:"business_email"`
	Website          string `gorm:"type:varchar(255)" json:"website"`

	// SocialLinks: { business: [{platform, url}], custom: [{platform, url}] }
	SocialLinks datatypes.JSON `json:"social_links"`

	// SWOT: { strengths: [...], weaknesses: [...], opportunities: [...], threats: [...] }
	SWOT datatypes.JSON `json:"swot"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Branches    []Branch     `gorm:"foreignKey:ClientID" json:"branches,omitempty"`
	Competitors []Competitor `gorm:"foreignKey:ClientID" json:"competitors,omitempty"`
	Segments    []Segment    `gorm:"foreignKey:ClientID" json:"segments,omitempty"`
}

type Branch struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`

	Name    string `gorm:"type:varchar(150);not null" json:"name"`
	City    string `gorm:"type:varchar(120)" json:"city"`
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"type:varchar(30)" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Competitor struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`

	Name        string `gorm:"type:varchar(150);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Website     string `gorm:"type:varchar(255)" json:"website"`
	Facebook    string `gorm:"type:varchar(255)" json:"facebook"`
	Instagram   string `gorm:"type:varchar(255)" json:"instagram"`
	TikTok      string `gorm:"type:varchar(255)" json:"tiktok"`
	Twitter     string `gorm:"type:varchar(255)" json:"twitter"`

	SWOT datatypes.JSON `json:"swot"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Segment struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`

	Name        string `gorm:"type:varchar(150);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	AgeRange    string `gorm:"type:varchar(40)" json:"age_range"`
	Gender      string `gorm:"type:varchar(20)" json:"gender"`
	Interests   string `gorm:"type:text" json:"interests"`
	IncomeLevel string `gorm:"type:varchar(40)" json:"income_level"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
