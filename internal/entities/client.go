package entities

import (
	"time"
)

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusInactive  AccountStatus = "inactive"
	AccountStatusSuspended AccountStatus = "suspended"
)

type ContactMethod string

const (
	ContactMethodEmail    ContactMethod = "email"
	ContactMethodSMS      ContactMethod = "sms"
	ContactMethodWhatsApp ContactMethod = "whatsapp"
	ContactMethodPhone    ContactMethod = "phone"
)

// Client is the owning record for every domain, hosting account and payment.
// The rollup fields (TotalDomains, TotalSpent, ...) are aggregated from child
// entities at read time and are never stored on the client row.
type Client struct {
	ID               string        `gorm:"primaryKey;size:64" json:"id"`
	Name             string        `gorm:"size:256;index" json:"name"`
	Email            string        `gorm:"size:256;index" json:"email"`
	Phone            string        `gorm:"size:32" json:"phone,omitempty"`
	Company          string        `gorm:"size:256" json:"company,omitempty"`
	Address          string        `gorm:"size:512" json:"address,omitempty"`
	AccountStatus    AccountStatus `gorm:"size:20;index" json:"account_status"`
	PreferredContact ContactMethod `gorm:"size:20" json:"preferred_contact"`
	Notes            string        `gorm:"size:2048" json:"notes,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	// Computed rollups, populated by the client repository.
	TotalDomains     int        `gorm:"-" json:"total_domains"`
	TotalHosting     int        `gorm:"-" json:"total_hosting"`
	TotalServices    int        `gorm:"-" json:"total_services"`
	UpcomingRenewals int        `gorm:"-" json:"upcoming_renewals"`
	TotalSpent       float64    `gorm:"-" json:"total_spent"`
	LastPayment      *time.Time `gorm:"-" json:"last_payment,omitempty"`
}

func (Client) TableName() string { return "clients" }
