package entities

import (
	"math"
	"time"
)

type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusExpiring ServiceStatus = "expiring"
	ServiceStatusExpired  ServiceStatus = "expired"
	ServiceStatusPending  ServiceStatus = "pending"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyBDT Currency = "BDT"
)

type PaymentStatus string

const (
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusRefunded      PaymentStatus = "refunded"
)

// ExpiringSoonDays is the window within which a service counts as expiring.
const ExpiringSoonDays = 30

// Domain is a single registered domain name owned by exactly one client.
// DaysUntilExpiry is derived from ExpirationDate; the stored value is a
// snapshot and every read recomputes it from the date.
type Domain struct {
	ID               string        `gorm:"primaryKey;size:64" json:"id"`
	ClientID         string        `gorm:"size:64;index" json:"client_id"`
	Name             string        `gorm:"size:256;uniqueIndex" json:"name"`
	Registrar        string        `gorm:"size:128" json:"registrar,omitempty"`
	RegistrationDate time.Time     `json:"registration_date"`
	ExpirationDate   time.Time     `gorm:"index" json:"expiration_date"`
	Status           ServiceStatus `gorm:"size:20;index" json:"status"`
	Nameserver1      string        `gorm:"size:256" json:"nameserver1,omitempty"`
	Nameserver2      string        `gorm:"size:256" json:"nameserver2,omitempty"`
	Price            float64       `json:"price"`
	Currency         Currency      `gorm:"size:8" json:"currency"`
	PaymentStatus    PaymentStatus `gorm:"size:20" json:"payment_status"`
	AutoRenewal      bool          `json:"auto_renewal"`
	Notes            string        `gorm:"size:2048" json:"notes,omitempty"`
	DaysUntilExpiry  int           `json:"days_until_expiry"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	// Denormalized from the clients table on every read.
	ClientName  string `gorm:"-" json:"client_name,omitempty"`
	ClientEmail string `gorm:"-" json:"client_email,omitempty"`
}

func (Domain) TableName() string { return "domains" }

// Recompute refreshes the derived expiry snapshot from ExpirationDate.
func (d *Domain) Recompute(now time.Time) {
	d.DaysUntilExpiry = DaysUntil(d.ExpirationDate, now)
}

// DaysUntil returns ceil((target - now) / 1 day). Negative when the target
// date is in the past.
func DaysUntil(target, now time.Time) int {
	diff := target.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// StatusForExpiry maps a days-until-expiry value onto the service status
// used by the refresh job: expired at or past the date, expiring within the
// 30-day window, active otherwise.
func StatusForExpiry(days int) ServiceStatus {
	switch {
	case days <= 0:
		return ServiceStatusExpired
	case days <= ExpiringSoonDays:
		return ServiceStatusExpiring
	default:
		return ServiceStatusActive
	}
}
