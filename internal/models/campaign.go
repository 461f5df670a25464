package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CampaignStatus string

const (
	CampaignPlanning CampaignStatus = "planning"
	CampaignRunning  CampaignStatus = "running"
	CampaignFinished CampaignStatus = "finished"
)

type Campaign struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`

	Name      string `gorm:"type:varchar(150);not null" json:"name"`
	Objective string `gorm:"type:text" json:"objective"`
	Body      string `gorm:"type:text" json:"body"` // plan text, pre-filled from package/service lookups

	Budget    int64      `json:"budget"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	Status CampaignStatus `gorm:"type:varchar(20);default:'planning'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// Quotation is a priced proposal a contract can be generated from.
type Quotation struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	QuotationNumber string     `gorm:"type:varchar(20);uniqueIndex" json:"quotation_number"`
	ClientID        *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`

	Body        string         `gorm:"type:text" json:"body"`
	Items       datatypes.JSON `json:"items"` // [{name, qty, price}]
	TotalAmount int64          `json:"total_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Package bundles services at a fixed price (selection panels in the planner).
type Package struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(150);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `json:"price"`
	Items       datatypes.JSON `json:"items"` // [{service_id, name}]

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AgencyService struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(150);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	BasePrice   int64  `json:"base_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []ServiceItem `gorm:"foreignKey:ServiceID" json:"items,omitempty"`
}

type ServiceItem struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ServiceID uint   `gorm:"index;not null" json:"service_id"`
	Name      string `gorm:"type:varchar(150);not null" json:"name"`
	Detail    string `gorm:"type:text" json:"detail"`
	Price     int64  `json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
