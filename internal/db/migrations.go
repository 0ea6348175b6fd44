package db

import (
	"fmt"

	"gorm.io/gorm"
)

// contracts.client_id carries no foreign key on purpose: deleting a
// client leaves its end-dated contracts in place.
var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		client_type VARCHAR(16) NOT NULL,
		name TEXT,
		phone TEXT,
		email TEXT,
		birth_date DATE,
		company_identifier TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_clients_client_type ON clients (client_type);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		client_id UUID NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE,
		cost_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		update_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_client_id ON contracts (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_end_date ON contracts (end_date) WHERE end_date IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_update_date ON contracts (update_date);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
