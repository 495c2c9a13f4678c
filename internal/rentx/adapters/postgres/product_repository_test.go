package postgres_test

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentx/internal/rentx/adapters/postgres"
	"rentx/internal/rentx/domain/entities"
)

func testProduct() *entities.Product {
	return &entities.Product{
		ID:            5,
		SellerID:      "seller-1",
		Seller:        "Dana",
		Name:          "Pressure Washer",
		Images:        []string{"washer.jpg"},
		Price:         20,
		RateUnit:      entities.RatePerDay,
		Category:      "Tools",
		Location:      "Denver, CO",
		Condition:     entities.ConditionUsed,
		Availability:  entities.AvailabilityAvailable,
		Deposit:       50,
		MinRentalDays: 1,
		MaxRentalDays: 30,
		Description:   "Strong washer",
		PostedAt:      time.Now().UTC().Truncate(time.Microsecond),
		Version:       3,
	}
}

func productRows(p *entities.Product) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "seller_id", "seller", "name", "images", "price", "rate_unit",
		"category", "location", "condition", "availability", "deposit",
		"min_rental_days", "max_rental_days", "description", "posted_at", "version",
	}).AddRow(
		p.ID, p.SellerID, p.Seller, p.Name, p.Images, p.Price, p.RateUnit,
		p.Category, p.Location, p.Condition, p.Availability, p.Deposit,
		p.MinRentalDays, p.MaxRentalDays, p.Description, p.PostedAt, p.Version,
	)
}

func TestProductRepository_Create(t *testing.T) {
	ctx := testContext(t)

	t.Run("store assigns ID and initial version", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		p := testProduct()
		p.ID = 0
		p.Version = 0

		mock.ExpectQuery("INSERT INTO products").
			WithArgs(
				p.SellerID, p.Seller, p.Name, p.Images, p.Price, p.RateUnit,
				p.Category, p.Location, p.Condition, p.Availability, p.Deposit,
				p.MinRentalDays, p.MaxRentalDays, p.Description, p.PostedAt,
			).
			WillReturnRows(pgxmock.NewRows([]string{"id", "version"}).AddRow(int64(11), int64(1)))

		repo := postgres.NewProductRepository(mock)

		created, err := repo.Create(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, int64(11), created.ID)
		assert.Equal(t, int64(1), created.Version)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_FindByID(t *testing.T) {
	ctx := testContext(t)

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		p := testProduct()

		mock.ExpectQuery("SELECT").
			WithArgs(p.ID).
			WillReturnRows(productRows(p))

		repo := postgres.NewProductRepository(mock)

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Name, found.Name)
		assert.Equal(t, p.Version, found.Version)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT").
			WithArgs(int64(99)).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewProductRepository(mock)

		found, err := repo.FindByID(ctx, 99)
		require.Nil(t, found)
		require.ErrorIs(t, err, entities.ErrProductNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_Update(t *testing.T) {
	ctx := testContext(t)

	expectUpdate := func(mock pgxmock.PgxPoolIface, p *entities.Product, affected int64) {
		mock.ExpectExec("UPDATE products SET").
			WithArgs(
				p.Seller, p.Name, p.Images, p.Price, p.RateUnit, p.Category,
				p.Location, p.Condition, p.Availability, p.Deposit,
				p.MinRentalDays, p.MaxRentalDays, p.Description,
				p.ID, p.Version,
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", affected))
	}

	t.Run("matching version bumps the record", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		p := testProduct()
		expectUpdate(mock, p, 1)

		repo := postgres.NewProductRepository(mock)

		updated, err := repo.Update(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, int64(4), updated.Version)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		p := testProduct()
		expectUpdate(mock, p, 0)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(p.ID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		repo := postgres.NewProductRepository(mock)

		updated, err := repo.Update(ctx, p)
		require.Nil(t, updated)
		require.ErrorIs(t, err, entities.ErrVersionConflict)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		p := testProduct()
		expectUpdate(mock, p, 0)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(p.ID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		repo := postgres.NewProductRepository(mock)

		updated, err := repo.Update(ctx, p)
		require.Nil(t, updated)
		require.ErrorIs(t, err, entities.ErrProductNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_ReadAll(t *testing.T) {
	ctx := testContext(t)

	t.Run("collects every row in store order", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT").
			WillReturnRows(productRows(testProduct()))

		repo := postgres.NewProductRepository(mock)

		products, err := repo.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Pressure Washer", products[0].Name)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
