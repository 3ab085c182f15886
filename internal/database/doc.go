// Package database defines the storage contract for the panel: the
// Connection interface every backend implements, the typed Query criteria
// repositories build instead of SQL text, the uniform Result envelope, and
// the Manager that owns connection lifecycle, seeding and backups.
//
// Backends live in subpackages (memory, gormdb); per-entity repositories
// live in subpackages named after their table (clients, domains, hosting,
// payments, notifications).
package database
