package entities

import (
	"time"
)

// ExpiryEvent is a calendar view row derived from domain and hosting
// expiration dates. Events are computed on demand and never persisted.
type ExpiryEvent struct {
	EntityType  string        `json:"entity_type"` // "domain" or "hosting"
	EntityID    string        `json:"entity_id"`
	Title       string        `json:"title"`
	ClientID    string        `json:"client_id"`
	ClientName  string        `json:"client_name,omitempty"`
	Date        time.Time     `json:"date"`
	DaysLeft    int           `json:"days_left"`
	Price       float64       `json:"price"`
	Currency    Currency      `json:"currency"`
	AutoRenewal bool          `json:"auto_renewal"`
	Status      ServiceStatus `json:"status"`
}

type NotificationType string

const (
	NotificationDomainExpiry   NotificationType = "domain_expiry"
	NotificationHostingExpiry  NotificationType = "hosting_expiry"
	NotificationPaymentOverdue NotificationType = "payment_overdue"
)

type NotificationSeverity string

const (
	SeverityInfo     NotificationSeverity = "info"
	SeverityWarning  NotificationSeverity = "warning"
	SeverityCritical NotificationSeverity = "critical"
)

// Notification is an alert row produced by the expiry/overdue scan.
// DedupeKey suppresses duplicate alerts for the same entity on the same day.
type Notification struct {
	ID        string               `gorm:"primaryKey;size:64" json:"id"`
	Type      NotificationType     `gorm:"size:32;index" json:"type"`
	EntityID  string               `gorm:"size:64;index" json:"entity_id"`
	ClientID  string               `gorm:"size:64;index" json:"client_id"`
	Title     string               `gorm:"size:256" json:"title"`
	Message   string               `gorm:"size:1024" json:"message"`
	Severity  NotificationSeverity `gorm:"size:16" json:"severity"`
	Read      bool                 `gorm:"index" json:"read"`
	DedupeKey string               `gorm:"size:128;uniqueIndex" json:"-"`
	CreatedAt time.Time            `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

type BackupRunStatus string

const (
	BackupRunRunning   BackupRunStatus = "running"
	BackupRunCompleted BackupRunStatus = "completed"
	BackupRunFailed    BackupRunStatus = "failed"
)

// BackupLog records one backup run. The dump itself is returned to the
// caller; only metadata lands in this table.
type BackupLog struct {
	ID          string          `gorm:"primaryKey;size:64" json:"id"`
	BackupType  string          `gorm:"size:32" json:"backup_type"` // "manual" or "scheduled"
	Status      BackupRunStatus `gorm:"size:16" json:"status"`
	FileSize    int64           `json:"file_size"`
	Error       string          `gorm:"size:1024" json:"error,omitempty"`
	StartedAt   time.Time       `gorm:"index" json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

func (BackupLog) TableName() string { return "backup_logs" }
