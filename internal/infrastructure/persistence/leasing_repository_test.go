package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marketrent/backend/internal/domain/leasing"
	"github.com/marketrent/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSpaceRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSpaceRepository(db)
	ctx := t.Context()

	a1 := seedSpace(t, repo, "A-01")
	a2 := seedSpace(t, repo, "A-02")
	b1 := seedSpace(t, repo, "B-01")

	t.Run("round trips photos and area", func(t *testing.T) {
		a1.PhotoURLs = []string{"https://files.example/a1-front.jpg", "https://files.example/a1-side.jpg"}
		kiosk := leasing.SpaceTypeKiosk
		require.NoError(t, a1.SetType(&kiosk))
		require.NoError(t, repo.Save(ctx, a1))

		got, err := repo.FindByID(ctx, a1.ID)
		require.NoError(t, err)
		assert.Equal(t, a1.PhotoURLs, got.PhotoURLs)
		assert.True(t, dec("12.5").Equal(got.AreaOrZero()))
		require.NotNil(t, got.Type)
		assert.Equal(t, leasing.SpaceTypeKiosk, *got.Type)
	})

	t.Run("duplicate code is already exists", func(t *testing.T) {
		dup, err := leasing.NewSpace("A-01")
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		assert.Equal(t, shared.CodeAlreadyExists, shared.ErrorCode(err))
	})

	t.Run("find by code", func(t *testing.T) {
		got, err := repo.FindByCode(ctx, "B-01")
		require.NoError(t, err)
		assert.Equal(t, b1.ID, got.ID)

		_, err = repo.FindByCode(ctx, "Z-99")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update status skips maintenance", func(t *testing.T) {
		require.NoError(t, a2.SetManualStatus(leasing.SpaceStatusMaintenance, false))
		require.NoError(t, repo.Save(ctx, a2))

		require.NoError(t, repo.UpdateStatus(ctx, []uuid.UUID{a1.ID, a2.ID}, leasing.SpaceStatusOccupied))

		got1, err := repo.FindByID(ctx, a1.ID)
		require.NoError(t, err)
		assert.Equal(t, leasing.SpaceStatusOccupied, got1.Status)

		got2, err := repo.FindByID(ctx, a2.ID)
		require.NoError(t, err)
		assert.Equal(t, leasing.SpaceStatusMaintenance, got2.Status)
	})

	t.Run("count by status includes every status", func(t *testing.T) {
		counts, err := repo.CountByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[leasing.SpaceStatusOccupied])
		assert.Equal(t, int64(1), counts[leasing.SpaceStatusMaintenance])
		assert.Equal(t, int64(1), counts[leasing.SpaceStatusVacant])
	})

	t.Run("filter and search", func(t *testing.T) {
		vacant := leasing.SpaceStatusVacant
		spaces, err := repo.FindAll(ctx, leasing.SpaceFilter{Status: &vacant})
		require.NoError(t, err)
		require.Len(t, spaces, 1)
		assert.Equal(t, "B-01", spaces[0].Code)

		search := leasing.SpaceFilter{Filter: shared.Filter{Search: "a-0", OrderBy: "code", OrderDir: "asc"}}
		spaces, err = repo.FindAll(ctx, search)
		require.NoError(t, err)
		require.Len(t, spaces, 2)
		assert.Equal(t, "A-01", spaces[0].Code)

		total, err := repo.Count(ctx, search)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("pagination", func(t *testing.T) {
		page := leasing.SpaceFilter{Filter: shared.Filter{Page: 2, PageSize: 2, OrderBy: "code", OrderDir: "asc"}}
		spaces, err := repo.FindAll(ctx, page)
		require.NoError(t, err)
		require.Len(t, spaces, 1)
		assert.Equal(t, "B-01", spaces[0].Code)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, b1.ID))
		assert.ErrorIs(t, repo.Delete(ctx, b1.ID), shared.ErrNotFound)
	})
}

func TestGormTenantRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTenantRepository(db)
	ctx := t.Context()

	aigul := seedTenant(t, repo, "Aigul Sadykova")
	seedTenant(t, repo, "Boris Kim")

	aigul.CompanyName = "Sadykova Textiles"
	require.NoError(t, repo.Save(ctx, aigul))

	got, err := repo.FindByID(ctx, aigul.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sadykova Textiles", got.CompanyName)

	found, err := repo.FindAll(ctx, leasing.TenantFilter{Filter: shared.Filter{Search: "textiles"}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, aigul.ID, found[0].ID)

	total, err := repo.Count(ctx, leasing.TenantFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	require.NoError(t, repo.Delete(ctx, aigul.ID))
	_, err = repo.FindByID(ctx, aigul.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormContractRepository(t *testing.T) {
	db := newTestDB(t)
	spaces := NewGormSpaceRepository(db)
	tenants := NewGormTenantRepository(db)
	repo := NewGormContractRepository(db)
	ctx := t.Context()

	space := seedSpace(t, spaces, "K-10")
	other := seedSpace(t, spaces, "K-11")
	tenant := seedTenant(t, tenants, "Dana Omarova")
	rival := seedTenant(t, tenants, "Erlan Bekov")

	first := newContract(t, tenant.ID, space.ID, "45000")
	require.NoError(t, repo.Create(ctx, first))

	t.Run("second active contract on a space is rejected", func(t *testing.T) {
		second := newContract(t, rival.ID, space.ID, "50000")
		err := repo.Create(ctx, second)
		assert.ErrorIs(t, err, shared.ErrSpaceOccupied)

		exists, err := repo.ExistsActiveForSpace(ctx, space.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("terminated contracts do not hold the space", func(t *testing.T) {
		terminated := leasing.ContractStatusTerminated
		require.NoError(t, first.Apply(leasing.ContractUpdate{Status: &terminated}))
		require.NoError(t, repo.Save(ctx, first))

		_, err := repo.FindActiveBySpace(ctx, space.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		replacement := newContract(t, rival.ID, space.ID, "50000")
		require.NoError(t, repo.Create(ctx, replacement))

		active, err := repo.FindActiveBySpace(ctx, space.ID)
		require.NoError(t, err)
		assert.Equal(t, replacement.ID, active.ID)
	})

	t.Run("reactivating onto an occupied space is rejected", func(t *testing.T) {
		active := leasing.ContractStatusActive
		require.NoError(t, first.Apply(leasing.ContractUpdate{Status: &active}))
		assert.ErrorIs(t, repo.Save(ctx, first), shared.ErrSpaceOccupied)
	})

	t.Run("sum active rent", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newContract(t, tenant.ID, other.ID, "30000.50")))

		total, count, err := repo.SumActiveRent(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.True(t, dec("80000.50").Equal(total), "got %s", total)
	})

	t.Run("filter by tenant", func(t *testing.T) {
		byTenant, err := repo.FindByTenant(ctx, tenant.ID)
		require.NoError(t, err)
		assert.Len(t, byTenant, 2)

		status := leasing.ContractStatusActive
		list, err := repo.FindAll(ctx, leasing.ContractFilter{TenantID: &tenant.ID, Status: &status})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, other.ID, list[0].SpaceID)
	})

	t.Run("delete by tenant", func(t *testing.T) {
		require.NoError(t, repo.DeleteByTenant(ctx, tenant.ID))
		left, err := repo.Count(ctx, leasing.ContractFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), left)
	})

	t.Run("find by id not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPaymentRepository(t *testing.T) {
	db := newTestDB(t)
	spaces := NewGormSpaceRepository(db)
	tenants := NewGormTenantRepository(db)
	contracts := NewGormContractRepository(db)
	repo := NewGormPaymentRepository(db)
	ctx := t.Context()

	space := seedSpace(t, spaces, "P-01")
	tenant := seedTenant(t, tenants, "Gulnara Ismailova")
	contract := newContract(t, tenant.ID, space.ID, "45000")
	require.NoError(t, contracts.Create(ctx, contract))

	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	record := func(start, end time.Time, paid string) *leasing.Payment {
		p, err := leasing.NewPayment(contract, leasing.PaymentInput{
			PaidAmount:  dec(paid),
			PeriodStart: start,
			PeriodEnd:   end,
		}, now)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, p))
		return p
	}

	jan := record(date(2024, time.January, 1), date(2024, time.January, 31), "45000")
	feb := record(date(2024, time.February, 1), date(2024, time.February, 29), "20000")
	mar := record(date(2024, time.March, 1), date(2024, time.March, 31), "0")

	t.Run("round trip keeps derived fields", func(t *testing.T) {
		got, err := repo.FindByID(ctx, jan.ID)
		require.NoError(t, err)
		assert.Equal(t, leasing.PaymentStatusPaid, got.Status)
		assert.True(t, dec("45000").Equal(got.ChargedAmount))
		require.NotNil(t, got.PaidAt)
		assert.Equal(t, space.ID, got.SpaceID)
		assert.Equal(t, tenant.ID, got.TenantID)
	})

	t.Run("mark overdue touches only unsettled past periods", func(t *testing.T) {
		changed, err := repo.MarkOverdue(ctx, date(2024, time.March, 15))
		require.NoError(t, err)
		assert.Equal(t, int64(1), changed)

		got, err := repo.FindByID(ctx, feb.ID)
		require.NoError(t, err)
		assert.Equal(t, leasing.PaymentStatusOverdue, got.Status)

		got, err = repo.FindByID(ctx, mar.ID)
		require.NoError(t, err)
		assert.Equal(t, leasing.PaymentStatusPending, got.Status)

		overdue, err := repo.CountByStatus(ctx, leasing.PaymentStatusOverdue)
		require.NoError(t, err)
		assert.Equal(t, int64(1), overdue)

		changed, err = repo.MarkOverdue(ctx, date(2024, time.March, 15))
		require.NoError(t, err)
		assert.Zero(t, changed)
	})

	t.Run("totals by period start", func(t *testing.T) {
		totals, err := repo.Totals(ctx, date(2024, time.January, 1), date(2024, time.March, 1))
		require.NoError(t, err)
		assert.Equal(t, int64(2), totals.Count)
		assert.True(t, dec("90000").Equal(totals.Charged), "got %s", totals.Charged)
		assert.True(t, dec("65000").Equal(totals.Paid), "got %s", totals.Paid)
	})

	t.Run("filters", func(t *testing.T) {
		status := leasing.PaymentStatusPaid
		list, err := repo.FindAll(ctx, leasing.PaymentFilter{Status: &status, SpaceID: &space.ID})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, jan.ID, list[0].ID)

		from := date(2024, time.February, 10)
		to := date(2024, time.March, 5)
		list, err = repo.FindAll(ctx, leasing.PaymentFilter{
			PeriodFrom: &from,
			PeriodTo:   &to,
			Filter:     shared.Filter{OrderBy: "period_start", OrderDir: "asc"},
		})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, feb.ID, list[0].ID)
		assert.Equal(t, mar.ID, list[1].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, mar.ID))
		assert.ErrorIs(t, repo.Delete(ctx, mar.ID), shared.ErrNotFound)
	})
}
