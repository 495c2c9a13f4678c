package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"rentx/internal/rentx/domain/entities"
	"rentx/internal/rentx/ports/repositories"
	"rentx/pkg/logger"
)

const productColumns = `
        id, seller_id, seller, name, images, price, rate_unit, category,
        location, condition, availability, deposit, min_rental_days,
        max_rental_days, description, posted_at, version`

// ProductRepository implements repositories.ProductRepository over Postgres.
// IDs come from the table sequence and every update is compare-and-swap on
// the version column, so concurrent writers cannot lose updates.
type ProductRepository struct {
	pool PgxPoolInterface
}

// NewProductRepository creates a new product repository.
func NewProductRepository(pool PgxPoolInterface) repositories.ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row pgx.Row) (*entities.Product, error) {
	var p entities.Product
	err := row.Scan(
		&p.ID,
		&p.SellerID,
		&p.Seller,
		&p.Name,
		&p.Images,
		&p.Price,
		&p.RateUnit,
		&p.Category,
		&p.Location,
		&p.Condition,
		&p.Availability,
		&p.Deposit,
		&p.MinRentalDays,
		&p.MaxRentalDays,
		&p.Description,
		&p.PostedAt,
		&p.Version,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]entities.Product, error) {
	defer rows.Close()

	products := make([]entities.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return products, nil
}

// Create persists a new listing and assigns its ID from the sequence.
func (r *ProductRepository) Create(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	log := logger.Log(ctx).With(zap.String("repository", "product"), zap.String("method", "Create"))
	log.Debug(ctx, "creating listing", zap.String("sellerID", product.SellerID))

	query := `
        INSERT INTO products (
            seller_id, seller, name, images, price, rate_unit, category,
            location, condition, availability, deposit, min_rental_days,
            max_rental_days, description, posted_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        RETURNING id, version
    `

	err := r.pool.QueryRow(ctx, query,
		product.SellerID, product.Seller, product.Name, product.Images,
		product.Price, product.RateUnit, product.Category, product.Location,
		product.Condition, product.Availability, product.Deposit,
		product.MinRentalDays, product.MaxRentalDays, product.Description,
		product.PostedAt,
	).Scan(&product.ID, &product.Version)

	if err != nil {
		log.Error(ctx, "failed to create listing", zap.Error(err))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Debug(ctx, "listing created", zap.Int64("productID", product.ID))
	return product, nil
}

// FindByID finds a product by ID.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*entities.Product, error) {
	log := logger.Log(ctx).With(zap.String("repository", "product"), zap.String("method", "FindByID"))

	query := `SELECT` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "product not found", zap.Int64("productID", id))
			return nil, entities.ErrProductNotFound
		}
		log.Error(ctx, "failed to get product", zap.Error(err))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// FindBySellerID returns the seller's listings in store order.
func (r *ProductRepository) FindBySellerID(ctx context.Context, sellerID string) ([]entities.Product, error) {
	log := logger.Log(ctx).With(zap.String("repository", "product"), zap.String("method", "FindBySellerID"))

	query := `SELECT` + productColumns + ` FROM products WHERE seller_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, sellerID)
	if err != nil {
		log.Error(ctx, "failed to list seller products", zap.Error(err))
		return nil, fmt.Errorf("failed to list seller products: %w", err)
	}

	return collectProducts(rows)
}

// ReadAll returns the full collection in store order.
func (r *ProductRepository) ReadAll(ctx context.Context) ([]entities.Product, error) {
	log := logger.Log(ctx).With(zap.String("repository", "product"), zap.String("method", "ReadAll"))

	query := `SELECT` + productColumns + ` FROM products ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "failed to read products", zap.Error(err))
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	return collectProducts(rows)
}

// Update overwrites the record if the stored version still matches,
// otherwise entities.ErrVersionConflict (or ErrProductNotFound when the row
// is gone).
func (r *ProductRepository) Update(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	log := logger.Log(ctx).With(zap.String("repository", "product"), zap.String("method", "Update"))
	log.Debug(ctx, "updating listing", zap.Int64("productID", product.ID), zap.Int64("version", product.Version))

	query := `
        UPDATE products SET
            seller = $1, name = $2, images = $3, price = $4, rate_unit = $5,
            category = $6, location = $7, condition = $8, availability = $9,
            deposit = $10, min_rental_days = $11, max_rental_days = $12,
            description = $13, version = version + 1
        WHERE id = $14 AND version = $15
    `

	result, err := r.pool.Exec(ctx, query,
		product.Seller, product.Name, product.Images, product.Price,
		product.RateUnit, product.Category, product.Location,
		product.Condition, product.Availability, product.Deposit,
		product.MinRentalDays, product.MaxRentalDays, product.Description,
		product.ID, product.Version,
	)
	if err != nil {
		log.Error(ctx, "failed to update listing", zap.Error(err))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, product.ID,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check product existence: %w", err)
		}
		if !exists {
			log.Debug(ctx, "product not found", zap.Int64("productID", product.ID))
			return nil, entities.ErrProductNotFound
		}
		log.Debug(ctx, "version conflict", zap.Int64("productID", product.ID))
		return nil, entities.ErrVersionConflict
	}

	product.Version++
	return product, nil
}
