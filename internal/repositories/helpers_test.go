package repositories_test

import (
	"testing"

	"northwind/internal/database"
	"northwind/internal/models"
	"northwind/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory sqlite database with the schema
// migrated and one supplier and one category.
func newTestDB(t *testing.T) (*gorm.DB, models.Supplier, models.Category) {
	t.Helper()

	db, err := database.Open(database.DriverSQLite, database.MemoryDSN(uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	refs := repositories.NewGORMReferenceRepository(db)
	supplier := models.Supplier{SupplierName: "Exotic Liquid", Country: "UK"}
	require.NoError(t, refs.CreateSupplier(&supplier))
	category := models.Category{CategoryName: "Beverages"}
	require.NoError(t, refs.CreateCategory(&category))

	return db, supplier, category
}

func uintPtr(v uint) *uint { return &v }
