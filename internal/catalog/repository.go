package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gereacosta1/OnePointMotors/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"
)

var ErrProductNotFound = errors.New("product not found")

// Sort keys accepted by List. SortFeatured is the catalog's default order.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortAutonomy  = "autonomy"
	SortPower     = "power"
	SortNewest    = "newest"
)

// Filter narrows and orders a catalog listing. Zero values mean "no bound".
type Filter struct {
	MinPrice    float64
	MaxPrice    float64
	MinAutonomy int
	MinPower    int
	Sort        string
}

type Repository struct {
	db *sql.DB
}

type RepoInterface interface {
	List(ctx context.Context, f Filter) ([]*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Close() error
	RunMigrations(string) error
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbPath == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) List(ctx context.Context, f Filter) ([]*domain.Product, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, slug, name, description, price, image_url,
		       autonomy_km, max_speed_kmh, power_w, stock, featured, created_at
		FROM products
	`)

	var conds []string
	var args []any
	if f.MinPrice > 0 {
		conds = append(conds, "price >= ?")
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice > 0 {
		conds = append(conds, "price <= ?")
		args = append(args, f.MaxPrice)
	}
	if f.MinAutonomy > 0 {
		conds = append(conds, "autonomy_km >= ?")
		args = append(args, f.MinAutonomy)
	}
	if f.MinPower > 0 {
		conds = append(conds, "power_w >= ?")
		args = append(args, f.MinPower)
	}
	if len(conds) > 0 {
		query.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	query.WriteString(" ORDER BY " + orderClause(f.Sort))

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `
		SELECT id, slug, name, description, price, image_url,
		       autonomy_km, max_speed_kmh, power_w, stock, featured, created_at
		FROM products
		WHERE slug = ?
	`

	rows, err := r.db.QueryContext(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var product *domain.Product
	for rows.Next() {
		product, err = scanProduct(rows)
		if err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func orderClause(sort string) string {
	switch sort {
	case SortPriceAsc:
		return "price ASC"
	case SortPriceDesc:
		return "price DESC"
	case SortAutonomy:
		return "autonomy_km DESC"
	case SortPower:
		return "power_w DESC"
	case SortNewest:
		return "CAST(id AS INTEGER) DESC"
	default:
		return "featured DESC, CAST(id AS INTEGER) ASC"
	}
}

func scanProduct(rows *sql.Rows) (*domain.Product, error) {
	p := &domain.Product{}
	var featured int
	err := rows.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.AutonomyKM,
		&p.MaxSpeedKMH,
		&p.PowerW,
		&p.Stock,
		&featured,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	p.Featured = featured != 0
	return p, nil
}
