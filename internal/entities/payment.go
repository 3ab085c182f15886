package entities

import (
	"time"
)

type ServiceKind string

const (
	ServiceKindDomain  ServiceKind = "domain"
	ServiceKindHosting ServiceKind = "hosting"
	ServiceKindOther   ServiceKind = "other"
)

// ServiceRef points a payment at exactly one billable entity kind.
type ServiceRef struct {
	Kind ServiceKind `json:"kind"`
	ID   string      `json:"id"`
}

func DomainService(id string) ServiceRef  { return ServiceRef{Kind: ServiceKindDomain, ID: id} }
func HostingService(id string) ServiceRef { return ServiceRef{Kind: ServiceKindHosting, ID: id} }
func OtherService(id string) ServiceRef   { return ServiceRef{Kind: ServiceKindOther, ID: id} }

// Payment is an invoice line owed by one client for one service.
// ConvertedAmount, IsOverdue and DaysOverdue are derived from Amount,
// ExchangeRate and DueDate; stored values are snapshots and every read
// recomputes them from the raw fields.
type Payment struct {
	ID              string        `gorm:"primaryKey;size:64" json:"id"`
	ClientID        string        `gorm:"size:64;index" json:"client_id"`
	ServiceID       string        `gorm:"size:64;index" json:"service_id"`
	ServiceType     ServiceKind   `gorm:"size:20" json:"service_type"`
	Description     string        `gorm:"size:512" json:"description,omitempty"`
	InvoiceNumber   string        `gorm:"size:64;index" json:"invoice_number,omitempty"`
	Amount          float64       `json:"amount"`
	Currency        Currency      `gorm:"size:8" json:"currency"`
	ExchangeRate    float64       `json:"exchange_rate,omitempty"`
	ConvertedAmount float64       `json:"converted_amount"`
	DueDate         time.Time     `gorm:"index" json:"due_date"`
	PaymentDate     *time.Time    `json:"payment_date,omitempty"`
	PaymentMethod   string        `gorm:"size:64" json:"payment_method,omitempty"`
	PaymentStatus   PaymentStatus `gorm:"size:20;index" json:"payment_status"`
	Notes           string        `gorm:"size:2048" json:"notes,omitempty"`
	IsOverdue       bool          `json:"is_overdue"`
	DaysOverdue     int           `json:"days_overdue"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	ClientName  string `gorm:"-" json:"client_name,omitempty"`
	ClientEmail string `gorm:"-" json:"client_email,omitempty"`
}

func (Payment) TableName() string { return "payments" }

// Service returns the payment's service reference as a typed value.
func (p *Payment) Service() ServiceRef {
	return ServiceRef{Kind: p.ServiceType, ID: p.ServiceID}
}

// Recompute refreshes the derived money and overdue snapshots.
//
// Conversion follows the panel's BDT bookkeeping: USD amounts are multiplied
// by the rate into BDT, BDT amounts are divided into USD. Without a rate the
// amount passes through unchanged.
func (p *Payment) Recompute(now time.Time) {
	if p.ExchangeRate > 0 {
		if p.Currency == CurrencyUSD {
			p.ConvertedAmount = p.Amount * p.ExchangeRate
		} else {
			p.ConvertedAmount = p.Amount / p.ExchangeRate
		}
	} else {
		p.ConvertedAmount = p.Amount
	}

	if now.After(p.DueDate) && p.PaymentStatus != PaymentStatusPaid {
		p.IsOverdue = true
		if d := DaysUntil(now, p.DueDate); d > 0 {
			p.DaysOverdue = d
		} else {
			p.DaysOverdue = 1
		}
	} else {
		p.IsOverdue = false
		p.DaysOverdue = 0
	}
}
