package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// SetupSQLiteTestDB creates an in-memory SQLite database for testing.
// Exported for use in handler tests.
func SetupSQLiteTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to SQLite test database: %v", err)
	}

	// Auto-migrate all models
	err = db.AutoMigrate(
		&models.Country{},
		&models.CompanyOverview{},
		&models.FinancialDetails{},
		&models.PartnershipDetails{},
		&models.TeaserCenter{},
		&models.Buyer{},
		&models.Seller{},
		&models.Deal{},
		&models.SharingConfig{},
		&models.PartnerShare{},
		&models.Industry{},
		&models.Prospect{},
		&models.ImportBatch{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	// Clean up test data before each test
	CleanupTestData(t, db)

	return db
}

// CleanupTestData removes all test data from the database.
// Exported for use in handler tests.
func CleanupTestData(t *testing.T, db *gorm.DB) {
	// Delete in reverse order of dependencies
	tables := []string{
		"deals",
		"partner_shares",
		"partner_sharing_configs",
		"prospects",
		"import_batches",
		"buyers",
		"sellers",
		"company_overviews",
		"financial_details",
		"partnership_details",
		"teaser_centers",
		"industries",
		"countries",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Logf("Warning: failed to cleanup %s: %v", table, err)
		}
	}
}
