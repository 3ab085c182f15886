package database

import (
	"github.com/webghor/hostpanel/internal/entities"
)

// Entity <-> row mapping for every persisted table. Column names follow the
// gorm naming the backends migrate with, so the same Row shape flows through
// the memory backend, sqlite and postgres.

func ClientRow(c *entities.Client) Row {
	return Row{
		"id":                c.ID,
		"name":              c.Name,
		"email":             c.Email,
		"phone":             c.Phone,
		"company":           c.Company,
		"address":           c.Address,
		"account_status":    string(c.AccountStatus),
		"preferred_contact": string(c.PreferredContact),
		"notes":             c.Notes,
		"created_at":        c.CreatedAt,
		"updated_at":        c.UpdatedAt,
	}
}

func ScanClient(r Row) *entities.Client {
	return &entities.Client{
		ID:               r.String("id"),
		Name:             r.String("name"),
		Email:            r.String("email"),
		Phone:            r.String("phone"),
		Company:          r.String("company"),
		Address:          r.String("address"),
		AccountStatus:    entities.AccountStatus(r.String("account_status")),
		PreferredContact: entities.ContactMethod(r.String("preferred_contact")),
		Notes:            r.String("notes"),
		CreatedAt:        r.Time("created_at"),
		UpdatedAt:        r.Time("updated_at"),
	}
}

func DomainRow(d *entities.Domain) Row {
	return Row{
		"id":                d.ID,
		"client_id":         d.ClientID,
		"name":              d.Name,
		"registrar":         d.Registrar,
		"registration_date": d.RegistrationDate,
		"expiration_date":   d.ExpirationDate,
		"status":            string(d.Status),
		"nameserver1":       d.Nameserver1,
		"nameserver2":       d.Nameserver2,
		"price":             d.Price,
		"currency":          string(d.Currency),
		"payment_status":    string(d.PaymentStatus),
		"auto_renewal":      d.AutoRenewal,
		"notes":             d.Notes,
		"days_until_expiry": d.DaysUntilExpiry,
		"created_at":        d.CreatedAt,
		"updated_at":        d.UpdatedAt,
	}
}

func ScanDomain(r Row) *entities.Domain {
	return &entities.Domain{
		ID:               r.String("id"),
		ClientID:         r.String("client_id"),
		Name:             r.String("name"),
		Registrar:        r.String("registrar"),
		RegistrationDate: r.Time("registration_date"),
		ExpirationDate:   r.Time("expiration_date"),
		Status:           entities.ServiceStatus(r.String("status")),
		Nameserver1:      r.String("nameserver1"),
		Nameserver2:      r.String("nameserver2"),
		Price:            r.Float("price"),
		Currency:         entities.Currency(r.String("currency")),
		PaymentStatus:    entities.PaymentStatus(r.String("payment_status")),
		AutoRenewal:      r.Bool("auto_renewal"),
		Notes:            r.String("notes"),
		DaysUntilExpiry:  r.Int("days_until_expiry"),
		CreatedAt:        r.Time("created_at"),
		UpdatedAt:        r.Time("updated_at"),
		ClientName:       r.String("client_name"),
		ClientEmail:      r.String("client_email"),
	}
}

func HostingRow(h *entities.Hosting) Row {
	return Row{
		"id":                h.ID,
		"client_id":         h.ClientID,
		"domain_id":         h.DomainID,
		"provider":          h.Provider,
		"plan_name":         h.PlanName,
		"hosting_type":      string(h.HostingType),
		"storage":           h.Storage,
		"bandwidth":         h.Bandwidth,
		"ip_address":        h.IPAddress,
		"server_location":   h.ServerLocation,
		"usage_percent":     h.UsagePercent,
		"registration_date": h.RegistrationDate,
		"expiration_date":   h.ExpirationDate,
		"status":            string(h.Status),
		"price":             h.Price,
		"currency":          string(h.Currency),
		"payment_status":    string(h.PaymentStatus),
		"auto_renewal":      h.AutoRenewal,
		"backup_status":     string(h.BackupStatus),
		"last_backup":       h.LastBackup,
		"notes":             h.Notes,
		"days_until_expiry": h.DaysUntilExpiry,
		"created_at":        h.CreatedAt,
		"updated_at":        h.UpdatedAt,
	}
}

func ScanHosting(r Row) *entities.Hosting {
	return &entities.Hosting{
		ID:               r.String("id"),
		ClientID:         r.String("client_id"),
		DomainID:         r.String("domain_id"),
		Provider:         r.String("provider"),
		PlanName:         r.String("plan_name"),
		HostingType:      entities.HostingType(r.String("hosting_type")),
		Storage:          r.String("storage"),
		Bandwidth:        r.String("bandwidth"),
		IPAddress:        r.String("ip_address"),
		ServerLocation:   r.String("server_location"),
		UsagePercent:     r.Float("usage_percent"),
		RegistrationDate: r.Time("registration_date"),
		ExpirationDate:   r.Time("expiration_date"),
		Status:           entities.ServiceStatus(r.String("status")),
		Price:            r.Float("price"),
		Currency:         entities.Currency(r.String("currency")),
		PaymentStatus:    entities.PaymentStatus(r.String("payment_status")),
		AutoRenewal:      r.Bool("auto_renewal"),
		BackupStatus:     entities.BackupState(r.String("backup_status")),
		LastBackup:       r.TimePtr("last_backup"),
		Notes:            r.String("notes"),
		DaysUntilExpiry:  r.Int("days_until_expiry"),
		CreatedAt:        r.Time("created_at"),
		UpdatedAt:        r.Time("updated_at"),
		ClientName:       r.String("client_name"),
		ClientEmail:      r.String("client_email"),
	}
}

func PaymentRow(p *entities.Payment) Row {
	return Row{
		"id":               p.ID,
		"client_id":        p.ClientID,
		"service_id":       p.ServiceID,
		"service_type":     string(p.ServiceType),
		"description":      p.Description,
		"invoice_number":   p.InvoiceNumber,
		"amount":           p.Amount,
		"currency":         string(p.Currency),
		"exchange_rate":    p.ExchangeRate,
		"converted_amount": p.ConvertedAmount,
		"due_date":         p.DueDate,
		"payment_date":     p.PaymentDate,
		"payment_method":   p.PaymentMethod,
		"payment_status":   string(p.PaymentStatus),
		"notes":            p.Notes,
		"is_overdue":       p.IsOverdue,
		"days_overdue":     p.DaysOverdue,
		"created_at":       p.CreatedAt,
		"updated_at":       p.UpdatedAt,
	}
}

func ScanPayment(r Row) *entities.Payment {
	return &entities.Payment{
		ID:              r.String("id"),
		ClientID:        r.String("client_id"),
		ServiceID:       r.String("service_id"),
		ServiceType:     entities.ServiceKind(r.String("service_type")),
		Description:     r.String("description"),
		InvoiceNumber:   r.String("invoice_number"),
		Amount:          r.Float("amount"),
		Currency:        entities.Currency(r.String("currency")),
		ExchangeRate:    r.Float("exchange_rate"),
		ConvertedAmount: r.Float("converted_amount"),
		DueDate:         r.Time("due_date"),
		PaymentDate:     r.TimePtr("payment_date"),
		PaymentMethod:   r.String("payment_method"),
		PaymentStatus:   entities.PaymentStatus(r.String("payment_status")),
		Notes:           r.String("notes"),
		IsOverdue:       r.Bool("is_overdue"),
		DaysOverdue:     r.Int("days_overdue"),
		CreatedAt:       r.Time("created_at"),
		UpdatedAt:       r.Time("updated_at"),
		ClientName:      r.String("client_name"),
		ClientEmail:     r.String("client_email"),
	}
}

func NotificationRow(n *entities.Notification) Row {
	return Row{
		"id":         n.ID,
		"type":       string(n.Type),
		"entity_id":  n.EntityID,
		"client_id":  n.ClientID,
		"title":      n.Title,
		"message":    n.Message,
		"severity":   string(n.Severity),
		"read":       n.Read,
		"dedupe_key": n.DedupeKey,
		"created_at": n.CreatedAt,
	}
}

func ScanNotification(r Row) *entities.Notification {
	return &entities.Notification{
		ID:        r.String("id"),
		Type:      entities.NotificationType(r.String("type")),
		EntityID:  r.String("entity_id"),
		ClientID:  r.String("client_id"),
		Title:     r.String("title"),
		Message:   r.String("message"),
		Severity:  entities.NotificationSeverity(r.String("severity")),
		Read:      r.Bool("read"),
		DedupeKey: r.String("dedupe_key"),
		CreatedAt: r.Time("created_at"),
	}
}

func BackupLogRow(b *entities.BackupLog) Row {
	return Row{
		"id":           b.ID,
		"backup_type":  b.BackupType,
		"status":       string(b.Status),
		"file_size":    b.FileSize,
		"error":        b.Error,
		"started_at":   b.StartedAt,
		"completed_at": b.CompletedAt,
	}
}

func ScanBackupLog(r Row) *entities.BackupLog {
	return &entities.BackupLog{
		ID:          r.String("id"),
		BackupType:  r.String("backup_type"),
		Status:      entities.BackupRunStatus(r.String("status")),
		FileSize:    int64(r.Int("file_size")),
		Error:       r.String("error"),
		StartedAt:   r.Time("started_at"),
		CompletedAt: r.TimePtr("completed_at"),
	}
}
