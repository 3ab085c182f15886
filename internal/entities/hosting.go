package entities

import (
	"time"
)

type HostingType string

const (
	HostingTypeShared    HostingType = "shared"
	HostingTypeVPS       HostingType = "vps"
	HostingTypeDedicated HostingType = "dedicated"
	HostingTypeCloud     HostingType = "cloud"
)

type BackupState string

const (
	BackupStateSuccess BackupState = "success"
	BackupStateFailed  BackupState = "failed"
	BackupStatePending BackupState = "pending"
)

// Hosting is a hosting account owned by one client, optionally linked to one
// of the client's domains. The domain link is a weak reference: deleting the
// domain does not cascade here.
type Hosting struct {
	ID               string        `gorm:"primaryKey;size:64" json:"id"`
	ClientID         string        `gorm:"size:64;index" json:"client_id"`
	DomainID         string        `gorm:"size:64;index" json:"domain_id,omitempty"`
	Provider         string        `gorm:"size:128" json:"provider,omitempty"`
	PlanName         string        `gorm:"size:128" json:"plan_name,omitempty"`
	HostingType      HostingType   `gorm:"size:20" json:"hosting_type"`
	Storage          string        `gorm:"size:64" json:"storage,omitempty"`
	Bandwidth        string        `gorm:"size:64" json:"bandwidth,omitempty"`
	IPAddress        string        `gorm:"size:64" json:"ip_address,omitempty"`
	ServerLocation   string        `gorm:"size:128" json:"server_location,omitempty"`
	UsagePercent     float64       `json:"usage_percent"`
	RegistrationDate time.Time     `json:"registration_date"`
	ExpirationDate   time.Time     `gorm:"index" json:"expiration_date"`
	Status           ServiceStatus `gorm:"size:20;index" json:"status"`
	Price            float64       `json:"price"`
	Currency         Currency      `gorm:"size:8" json:"currency"`
	PaymentStatus    PaymentStatus `gorm:"size:20" json:"payment_status"`
	AutoRenewal      bool          `json:"auto_renewal"`
	BackupStatus     BackupState   `gorm:"size:20" json:"backup_status"`
	LastBackup       *time.Time    `json:"last_backup,omitempty"`
	Notes            string        `gorm:"size:2048" json:"notes,omitempty"`
	DaysUntilExpiry  int           `json:"days_until_expiry"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	ClientName  string `gorm:"-" json:"client_name,omitempty"`
	ClientEmail string `gorm:"-" json:"client_email,omitempty"`
}

func (Hosting) TableName() string { return "hosting" }

// Recompute refreshes the derived expiry snapshot from ExpirationDate.
func (h *Hosting) Recompute(now time.Time) {
	h.DaysUntilExpiry = DaysUntil(h.ExpirationDate, now)
}
