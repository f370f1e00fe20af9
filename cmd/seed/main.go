// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	usercontext "stockmaster/internal/core/context"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/infrastructure/storage/postgres"
	"stockmaster/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedUsers(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed users", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// seedUsers creates the bootstrap accounts if they are absent.
func seedUsers(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@stockmaster.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	accounts := []struct {
		email    string
		name     string
		role     string
		password string
	}{
		{adminEmail, "Administrator", usercontext.RoleAdmin, adminPassword},
		{"manager@stockmaster.local", "Warehouse Manager", usercontext.RoleManager, "Manager123!"},
		{"clerk@stockmaster.local", "Stock Clerk", usercontext.RoleStaff, "Clerk123!"},
	}

	for _, acc := range accounts {
		var existing int
		err := pool.QueryRow(ctx,
			`SELECT count(*) FROM users WHERE email = $1`, acc.email,
		).Scan(&existing)
		if err != nil {
			return fmt.Errorf("check user %s: %w", acc.email, err)
		}
		if existing > 0 {
			log.Infow("user already exists, skipping", "email", acc.email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		now := time.Now().UTC()
		_, err = pool.Exec(ctx,
			`INSERT INTO users (id, email, name, password_hash, role, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, true, $6, $6)`,
			id.New(), acc.email, acc.name, string(hash), acc.role, now,
		)
		if err != nil {
			return fmt.Errorf("insert user %s: %w", acc.email, err)
		}

		log.Infow("user created", "email", acc.email, "role", acc.role)
	}

	return nil
}

// seedDemoData creates a demo warehouse layout, a small product catalog and
// opening stock. Every insert is guarded by an existence check so the tool
// can be re-run safely.
func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	now := time.Now().UTC()

	// --- Warehouses ---
	warehouses := []struct {
		code, name, address string
	}{
		{"WH-MAIN", "Main Warehouse", "1 Industrial Way"},
		{"WH-EAST", "East Distribution Center", "42 Harbor Road"},
	}

	warehouseIDs := map[string]id.ID{}
	for _, w := range warehouses {
		var existingID id.ID
		err := pool.QueryRow(ctx,
			`SELECT id FROM warehouses WHERE code = $1`, w.code,
		).Scan(&existingID)
		if err == nil {
			warehouseIDs[w.code] = existingID
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("check warehouse: %w", err)
		}

		newID := id.New()
		_, err = pool.Exec(ctx,
			`INSERT INTO warehouses (id, code, name, address, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, true, $5, $5)`,
			newID, w.code, w.name, w.address, now,
		)
		if err != nil {
			return fmt.Errorf("insert warehouse %s: %w", w.code, err)
		}
		warehouseIDs[w.code] = newID
		log.Infow("warehouse created", "code", w.code)
	}

	// --- Locations ---
	locations := []struct {
		warehouse, code, name, typ string
	}{
		{"WH-MAIN", "MAIN-A1", "Aisle A Shelf 1", "INTERNAL"},
		{"WH-MAIN", "MAIN-A2", "Aisle A Shelf 2", "INTERNAL"},
		{"WH-MAIN", "MAIN-B1", "Aisle B Shelf 1", "INTERNAL"},
		{"WH-MAIN", "MAIN-SCRAP", "Damaged Goods", "SCRAP"},
		{"WH-EAST", "EAST-A1", "Aisle A Shelf 1", "INTERNAL"},
		{"WH-EAST", "EAST-A2", "Aisle A Shelf 2", "INTERNAL"},
	}

	locationIDs := map[string]id.ID{}
	for _, l := range locations {
		var existingID id.ID
		err := pool.QueryRow(ctx,
			`SELECT id FROM locations WHERE code = $1`, l.code,
		).Scan(&existingID)
		if err == nil {
			locationIDs[l.code] = existingID
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("check location: %w", err)
		}

		newID := id.New()
		_, err = pool.Exec(ctx,
			`INSERT INTO locations (id, warehouse_id, code, name, type, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, true, $6, $6)`,
			newID, warehouseIDs[l.warehouse], l.code, l.name, l.typ, now,
		)
		if err != nil {
			return fmt.Errorf("insert location %s: %w", l.code, err)
		}
		locationIDs[l.code] = newID
		log.Infow("location created", "code", l.code)
	}

	// --- Categories ---
	categories := []string{"Packaging", "Handling"}

	categoryIDs := map[string]id.ID{}
	for _, name := range categories {
		var existingID id.ID
		err := pool.QueryRow(ctx,
			`SELECT id FROM categories WHERE name = $1`, name,
		).Scan(&existingID)
		if err == nil {
			categoryIDs[name] = existingID
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("check category: %w", err)
		}

		newID := id.New()
		_, err = pool.Exec(ctx,
			`INSERT INTO categories (id, name, description, is_active, created_at, updated_at)
			 VALUES ($1, $2, '', true, $3, $3)`,
			newID, name, now,
		)
		if err != nil {
			return fmt.Errorf("insert category %s: %w", name, err)
		}
		categoryIDs[name] = newID
		log.Infow("category created", "name", name)
	}

	// --- Products ---
	products := []struct {
		sku, name, uom, category string
		reorderPoint             float64
		optimalStock             float64
	}{
		{"SKU-0001", "Cardboard Box Small", "pcs", "Packaging", 50, 200},
		{"SKU-0002", "Cardboard Box Large", "pcs", "Packaging", 30, 120},
		{"SKU-0003", "Packing Tape Roll", "pcs", "Packaging", 100, 500},
		{"SKU-0004", "Bubble Wrap 50m", "roll", "Packaging", 10, 40},
		{"SKU-0005", "Wooden Pallet EUR", "pcs", "Handling", 20, 80},
		{"SKU-0006", "Stretch Film 17um", "roll", "Handling", 15, 60},
	}

	productIDs := map[string]id.ID{}
	for _, p := range products {
		var existingID id.ID
		err := pool.QueryRow(ctx,
			`SELECT id FROM products WHERE sku = $1`, p.sku,
		).Scan(&existingID)
		if err == nil {
			productIDs[p.sku] = existingID
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("check product: %w", err)
		}

		newID := id.New()
		_, err = pool.Exec(ctx,
			`INSERT INTO products (id, sku, name, description, unit_of_measure, category_id, reorder_point, optimal_stock, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, '', $4, $5, $6, $7, true, $8, $8)`,
			newID, p.sku, p.name, p.uom, categoryIDs[p.category],
			types.NewQuantityFromFloat64(p.reorderPoint),
			types.NewQuantityFromFloat64(p.optimalStock),
			now,
		)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.sku, err)
		}
		productIDs[p.sku] = newID
		log.Infow("product created", "sku", p.sku)
	}

	// --- Opening stock ---
	stock := []struct {
		sku, location string
		quantity      float64
	}{
		{"SKU-0001", "MAIN-A1", 180},
		{"SKU-0002", "MAIN-A1", 95},
		{"SKU-0003", "MAIN-A2", 420},
		{"SKU-0004", "MAIN-B1", 12},
		{"SKU-0005", "EAST-A1", 64},
		{"SKU-0006", "EAST-A2", 8},
	}

	for _, s := range stock {
		qty := types.NewQuantityFromFloat64(s.quantity)
		tag, err := pool.Exec(ctx,
			`INSERT INTO stock (product_id, location_id, quantity, reserved, available, updated_at)
			 VALUES ($1, $2, $3, 0, $3, $4)
			 ON CONFLICT (product_id, location_id) DO NOTHING`,
			productIDs[s.sku], locationIDs[s.location], qty, now,
		)
		if err != nil {
			return fmt.Errorf("insert stock %s@%s: %w", s.sku, s.location, err)
		}
		if tag.RowsAffected() > 0 {
			log.Infow("opening stock set", "sku", s.sku, "location", s.location, "quantity", s.quantity)
		}
	}

	return nil
}
