package models

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ContractStatus string

const (
	ContractDraft     ContractStatus = "draft"
	ContractActive    ContractStatus = "active"
	ContractCompleted ContractStatus = "completed"
	ContractCancelled ContractStatus = "cancelled"
	ContractRenewed   ContractStatus = "renewed"
)

type Contract struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContractNumber string    `gorm:"type:varchar(20);uniqueIndex" json:"contract_number"` // e.g., CT-8K2PQX4M

	// Either a registered client or a free-text name for walk-in deals
	ClientID         *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`
	CustomClientName string     `gorm:"type:varchar(150)" json:"custom_client_name"`

	QuotationID *uint `gorm:"index" json:"quotation_id,omitempty"`

	// Terms: ordered list of term strings, one per clause
	Terms datatypes.JSON `json:"terms"`
	Body  string         `gorm:"type:text" json:"body"`

	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	SignedDate *time.Time `json:"signed_date,omitempty"`

	Status ContractStatus `gorm:"type:varchar(20);default:'draft'" json:"status"`
	Note   string         `gorm:"type:text" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Client    *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Quotation *Quotation `gorm:"foreignKey:QuotationID" json:"quotation,omitempty"`
}

// GenerateContractNumber generates a random alphanumeric contract number
func GenerateContractNumber() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return "CT-" + string(b)
}
