// Command generate_demo creates a demo sqlite database loaded with the
// fixture data set.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/database/gormdb"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	conn, err := gormdb.OpenSQLite(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	if err := conn.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	seed := database.SeedData(time.Now())

	insert := func(table string, rows []database.Row) {
		for _, row := range rows {
			if err := conn.Insert(ctx, table, row); err != nil {
				log.Fatalf("Failed to insert into %s: %v", table, err)
			}
		}
		log.Printf("Seeded %s: %d rows", table, len(rows))
	}

	clientRows := make([]database.Row, len(seed.Clients))
	for i := range seed.Clients {
		clientRows[i] = database.ClientRow(&seed.Clients[i])
	}
	domainRows := make([]database.Row, len(seed.Domains))
	for i := range seed.Domains {
		domainRows[i] = database.DomainRow(&seed.Domains[i])
	}
	hostingRows := make([]database.Row, len(seed.Hostings))
	for i := range seed.Hostings {
		hostingRows[i] = database.HostingRow(&seed.Hostings[i])
	}
	paymentRows := make([]database.Row, len(seed.Payments))
	for i := range seed.Payments {
		paymentRows[i] = database.PaymentRow(&seed.Payments[i])
	}

	insert("clients", clientRows)
	insert("domains", domainRows)
	insert("hosting", hostingRows)
	insert("payments", paymentRows)

	total := len(clientRows) + len(domainRows) + len(hostingRows) + len(paymentRows)
	log.Printf("Demo database ready: %d rows at %s", total, *dbPath)
}
