// seeder loads a product feed document into the rentx database.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"go.uber.org/zap"

	"rentx/internal/rentx/adapters/feed"
	pgadapters "rentx/internal/rentx/adapters/postgres"
	"rentx/internal/rentx/config"
	"rentx/internal/rentx/domain/entities"
	"rentx/pkg/db/postgres"
	"rentx/pkg/logger"
)

const (
	ErrInitLogger      = "failed to initialize logger"
	ErrLoadConfig      = "failed to load configuration"
	ErrOpenFeed        = "failed to open feed file"
	ErrDecodeFeed      = "failed to decode feed file"
	ErrConnectDatabase = "failed to connect to database"
	ErrSellerRequired  = "a seller user is required, pass -seller"
	ErrFindSeller      = "failed to find seller user"
	ErrSeedProduct     = "failed to seed product"

	LogSeedingStarted = "seeding product catalog"
	LogInvalidProduct = "skipping invalid feed product"
	LogSeedingDone    = "seeding complete"
)

// attributeProducts assigns ownership of every feed product to the seller,
// fills the defaults the feed may omit, and splits off the products that
// fail validation.
func attributeProducts(products []entities.Product, seller *entities.User) (valid []entities.Product, rejected []rejectedProduct) {
	valid = make([]entities.Product, 0, len(products))
	for i := range products {
		p := products[i]
		p.SellerID = seller.ID
		if p.Seller == "" {
			p.Seller = seller.Username
		}
		p.ApplyDefaults()

		if err := p.Validate(); err != nil {
			rejected = append(rejected, rejectedProduct{Name: p.Name, Reason: err})
			continue
		}
		valid = append(valid, p)
	}
	return valid, rejected
}

// rejectedProduct records a feed product that failed validation.
type rejectedProduct struct {
	Name   string
	Reason error
}

func main() {
	feedPath := flag.String("feed", "products.json", "path to the product feed document")
	sellerLogin := flag.String("seller", "", "username or email of the user to own the seeded listings")
	flag.Parse()

	env := logger.Development
	if strings.ToLower(os.Getenv("RENTX_LOGGER_MODE")) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv("RENTX_LOGGER_LEVEL"))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(ctx, ErrLoadConfig, zap.Error(err))
	}

	file, err := os.Open(*feedPath)
	if err != nil {
		log.Fatal(ctx, ErrOpenFeed, zap.Error(err), zap.String("path", *feedPath))
	}
	defer func() {
		_ = file.Close()
	}()

	products, err := feed.Decode(file)
	if err != nil {
		log.Fatal(ctx, ErrDecodeFeed, zap.Error(err))
	}

	if *sellerLogin == "" {
		log.Fatal(ctx, ErrSellerRequired)
	}

	database, err := postgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
	if err != nil {
		log.Fatal(ctx, ErrConnectDatabase, zap.Error(err))
	}
	defer database.Close(ctx)

	userRepo := pgadapters.NewUserRepository(database.Pool())
	productRepo := pgadapters.NewProductRepository(database.Pool())

	seller, err := userRepo.FindByLogin(ctx, *sellerLogin)
	if err != nil {
		log.Fatal(ctx, ErrFindSeller, zap.Error(err), zap.String("seller", *sellerLogin))
	}

	log.Info(ctx, LogSeedingStarted,
		zap.Int("count", len(products)),
		zap.String("path", *feedPath),
		zap.String("seller", seller.Username))

	valid, rejected := attributeProducts(products, seller)
	for _, r := range rejected {
		log.Warn(ctx, LogInvalidProduct, zap.String("name", r.Name), zap.Error(r.Reason))
	}

	seeded := 0
	for i := range valid {
		if _, err := productRepo.Create(ctx, &valid[i]); err != nil {
			log.Error(ctx, ErrSeedProduct, zap.Error(err), zap.String("name", valid[i].Name))
			continue
		}
		seeded++
	}

	log.Info(ctx, LogSeedingDone, zap.Int("seeded", seeded), zap.Int("skipped", len(products)-seeded))
}
