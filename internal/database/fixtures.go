package database

import (
	"fmt"
	"time"

	"github.com/webghor/hostpanel/internal/entities"
)

// SeedSet is the fixture dataset inserted when the clients table is empty:
// enough clients, domains, hosting accounts and payments to make every panel
// screen demoable without an external database.
type SeedSet struct {
	Clients  []entities.Client
	Domains  []entities.Domain
	Hostings []entities.Hosting
	Payments []entities.Payment
}

var seedClients = []struct {
	name, email, phone, company string
}{
	{"Rahim Traders", "contact@rahimtraders.com", "+8801711000001", "Rahim Traders Ltd"},
	{"Karim Fashion", "info@karimfashion.com", "+8801711000002", "Karim Fashion House"},
	{"Dhaka Foods", "hello@dhakafoods.com", "+8801711000003", "Dhaka Foods"},
	{"TechBengal", "admin@techbengal.io", "+8801711000004", "TechBengal Solutions"},
	{"GreenAgro", "office@greenagro.com.bd", "+8801711000005", "GreenAgro BD"},
	{"Sylhet Tours", "book@sylhettours.com", "+8801711000006", "Sylhet Tours & Travels"},
	{"Mega Motors", "sales@megamotors.com.bd", "+8801711000007", "Mega Motors"},
	{"BlueSky Media", "studio@blueskymedia.net", "+8801711000008", "BlueSky Media"},
	{"Chitta Exports", "trade@chittaexports.com", "+8801711000009", "Chittagong Exports"},
	{"EduSmart", "support@edusmart.com.bd", "+8801711000010", "EduSmart Academy"},
	{"Padma Pharma", "care@padmapharma.com", "+8801711000011", "Padma Pharmaceuticals"},
	{"CityMart", "shop@citymart.com.bd", "+8801711000012", "CityMart Retail"},
}

var seedTLDs = []string{".com", ".com.bd", ".net", ".org", ".io", ".xyz"}

var seedRegistrars = []string{"Namecheap", "GoDaddy", "Hostinger", "BTCL"}

var seedProviders = []string{"ExonHost", "Hostinger", "DigitalOcean", "Vultr"}

var seedLocations = []string{"Dhaka", "Singapore", "Frankfurt", "New York"}

// SeedData builds the deterministic fixture dataset relative to now: of the
// 48 domains roughly a quarter are inside the 30-day expiry window and a
// handful are already expired, so calendar and alert views have content on
// day one.
func SeedData(now time.Time) SeedSet {
	set := SeedSet{}
	today := now.Truncate(24 * time.Hour)

	for i, c := range seedClients {
		status := entities.AccountStatusActive
		if i == 10 {
			status = entities.AccountStatusInactive
		}
		if i == 11 {
			status = entities.AccountStatusSuspended
		}
		contact := []entities.ContactMethod{
			entities.ContactMethodEmail,
			entities.ContactMethodWhatsApp,
			entities.ContactMethodPhone,
			entities.ContactMethodSMS,
		}[i%4]
		set.Clients = append(set.Clients, entities.Client{
			ID:               fmt.Sprintf("CL_seed_%02d", i+1),
			Name:             c.name,
			Email:            c.email,
			Phone:            c.phone,
			Company:          c.company,
			AccountStatus:    status,
			PreferredContact: contact,
			CreatedAt:        today.AddDate(0, -18+i, 0),
			UpdatedAt:        today,
		})
	}

	for i := 0; i < 48; i++ {
		client := set.Clients[i%len(set.Clients)]
		// Spread expirations from 10 days overdue to ~11 months out.
		expiry := today.AddDate(0, 0, -10+i*7)
		price := 12.0 + float64(i%5)*2.5
		currency := entities.CurrencyUSD
		if i%3 == 0 {
			currency = entities.CurrencyBDT
			price = 1500 + float64(i%5)*250
		}
		payStatus := entities.PaymentStatusPaid
		if i%4 == 1 {
			payStatus = entities.PaymentStatusUnpaid
		}
		if i%8 == 2 {
			payStatus = entities.PaymentStatusPartiallyPaid
		}
		d := entities.Domain{
			ID:               fmt.Sprintf("DM_seed_%02d", i+1),
			ClientID:         client.ID,
			Name:             fmt.Sprintf("%s%d%s", domainBase(client.Name), i+1, seedTLDs[i%len(seedTLDs)]),
			Registrar:        seedRegistrars[i%len(seedRegistrars)],
			RegistrationDate: expiry.AddDate(-1, 0, 0),
			ExpirationDate:   expiry,
			Nameserver1:      "ns1.hostpanel.net",
			Nameserver2:      "ns2.hostpanel.net",
			Price:            price,
			Currency:         currency,
			PaymentStatus:    payStatus,
			AutoRenewal:      i%2 == 0,
			CreatedAt:        expiry.AddDate(-1, 0, 0),
			UpdatedAt:        today,
		}
		d.Recompute(now)
		d.Status = entities.StatusForExpiry(d.DaysUntilExpiry)
		set.Domains = append(set.Domains, d)
	}

	for i := 0; i < 28; i++ {
		client := set.Clients[i%len(set.Clients)]
		expiry := today.AddDate(0, 0, -5+i*12)
		hostingType := []entities.HostingType{
			entities.HostingTypeShared,
			entities.HostingTypeShared,
			entities.HostingTypeVPS,
			entities.HostingTypeCloud,
			entities.HostingTypeDedicated,
		}[i%5]
		backup := entities.BackupStateSuccess
		if i%7 == 3 {
			backup = entities.BackupStateFailed
		}
		if i%7 == 5 {
			backup = entities.BackupStatePending
		}
		lastBackup := today.AddDate(0, 0, -(i%7 + 1))
		h := entities.Hosting{
			ID:               fmt.Sprintf("HS_seed_%02d", i+1),
			ClientID:         client.ID,
			Provider:         seedProviders[i%len(seedProviders)],
			PlanName:         fmt.Sprintf("%s-%d", hostingType, i%4+1),
			HostingType:      hostingType,
			Storage:          fmt.Sprintf("%dGB SSD", 10*(i%6+1)),
			Bandwidth:        fmt.Sprintf("%dGB", 100*(i%8+1)),
			IPAddress:        fmt.Sprintf("103.108.%d.%d", i%250+1, i*3%250+1),
			ServerLocation:   seedLocations[i%len(seedLocations)],
			UsagePercent:     float64((i * 13) % 96),
			RegistrationDate: expiry.AddDate(-1, 0, 0),
			ExpirationDate:   expiry,
			Price:            35 + float64(i%6)*15,
			Currency:         entities.CurrencyUSD,
			PaymentStatus:    entities.PaymentStatusPaid,
			AutoRenewal:      i%3 != 0,
			BackupStatus:     backup,
			LastBackup:       &lastBackup,
			CreatedAt:        expiry.AddDate(-1, 0, 0),
			UpdatedAt:        today,
		}
		if i%6 == 2 {
			h.PaymentStatus = entities.PaymentStatusUnpaid
		}
		if i%9 == 4 {
			domain := set.Domains[i%len(set.Domains)]
			h.DomainID = domain.ID
		}
		h.Recompute(now)
		h.Status = entities.StatusForExpiry(h.DaysUntilExpiry)
		set.Hostings = append(set.Hostings, h)
	}

	for i := 0; i < 40; i++ {
		var ref entities.ServiceRef
		var clientID string
		var amount float64
		currency := entities.CurrencyUSD
		if i%2 == 0 {
			d := set.Domains[i%len(set.Domains)]
			ref = entities.DomainService(d.ID)
			clientID = d.ClientID
			amount = d.Price
			currency = d.Currency
		} else {
			h := set.Hostings[i%len(set.Hostings)]
			ref = entities.HostingService(h.ID)
			clientID = h.ClientID
			amount = h.Price
		}
		due := today.AddDate(0, 0, -30+i*4)
		status := entities.PaymentStatusPaid
		var paidAt *time.Time
		switch {
		case due.Before(today) && i%3 == 0:
			status = entities.PaymentStatusUnpaid // overdue
		case !due.Before(today) && i%5 == 0:
			status = entities.PaymentStatusUnpaid
		default:
			t := due.AddDate(0, 0, -2)
			paidAt = &t
		}
		p := entities.Payment{
			ID:            fmt.Sprintf("PM_seed_%02d", i+1),
			ClientID:      clientID,
			ServiceID:     ref.ID,
			ServiceType:   ref.Kind,
			Description:   fmt.Sprintf("Renewal invoice #%d", 1000+i),
			InvoiceNumber: fmt.Sprintf("INV-%04d", 1000+i),
			Amount:        amount,
			Currency:      currency,
			ExchangeRate:  120,
			DueDate:       due,
			PaymentDate:   paidAt,
			PaymentMethod: []string{"bkash", "bank", "card", "cash"}[i%4],
			PaymentStatus: status,
			CreatedAt:     due.AddDate(0, -1, 0),
			UpdatedAt:     today,
		}
		p.Recompute(now)
		set.Payments = append(set.Payments, p)
	}

	return set
}

// domainBase derives a short lowercase label from a client name.
func domainBase(name string) string {
	base := make([]rune, 0, len(name))
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r >= 'a' && r <= 'z' {
			base = append(base, r)
		}
	}
	if len(base) > 10 {
		base = base[:10]
	}
	return string(base)
}
