package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func seedSpace(t *testing.T, repo *GormSpaceRepository, code string) *leasing.Space {
	t.Helper()
	space, err := leasing.NewSpace(code)
	require.NoError(t, err)
	require.NoError(t, space.SetArea(decPtr("12.5")))
	require.NoError(t, repo.Create(t.Context(), space))
	return space
}

func seedTenant(t *testing.T, repo *GormTenantRepository, name string) *leasing.Tenant {
	t.Helper()
	tenant, err := leasing.NewTenant(name, "+7 700 000 00 00")
	require.NoError(t, err)
	require.NoError(t, repo.Create(t.Context(), tenant))
	return tenant
}

func newContract(t *testing.T, tenantID, spaceID uuid.UUID, rent string) *leasing.Contract {
	t.Helper()
	c, err := leasing.NewActiveContract(tenantID, leasing.ContractTerms{
		SpaceID:     spaceID,
		StartDate:   date(2024, time.January, 1),
		MonthlyRent: dec(rent),
		DocumentURL: "https://files.example/contracts/" + spaceID.String() + ".pdf",
	}, decimal.Zero)
	require.NoError(t, err)
	return c
}
