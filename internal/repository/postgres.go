package repository

import (
	"context"
	"fmt"

	"address-geocoder/internal/models"
	"address-geocoder/internal/pattern"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WildcardHelper escapes a scope value for stores that treat some characters
// specially in comparisons. The default is the identity.
type WildcardHelper func(string) string

func identity(s string) string { return s }

// Option configures a repository.
type Option func(*options)

type options struct {
	wildcard WildcardHelper
}

// WithWildcardHelper sets the escape function applied to scope parameters.
func WithWildcardHelper(h WildcardHelper) Option {
	return func(o *options) {
		if h != nil {
			o.wildcard = h
		}
	}
}

func newOptions(opts []Option) options {
	o := options{wildcard: identity}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) args(scope models.Scope) []any {
	return []any{o.wildcard(scope.Prefecture), o.wildcard(scope.City), o.wildcard(scope.Town)}
}

// Repository reads the reference store from PostgreSQL
type Repository struct {
	db   *pgxpool.Pool
	opts options

	blockSQL string
	rsdtSQL  string
	citySQL  string
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool, opts ...Option) *Repository {
	return &Repository{
		db:       db,
		opts:     newOptions(opts),
		blockSQL: blockListSQL(dollarPlaceholder),
		rsdtSQL:  rsdtListSQL(dollarPlaceholder),
		citySQL:  cityNamesSQL(dollarPlaceholder),
	}
}

// Ping checks that the store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("repository: failed to ping postgres: %w", err)
	}
	return nil
}

// CreateSchema creates the reference tables if they do not exist.
func (r *Repository) CreateSchema(ctx context.Context) error {
	for _, stmt := range Schema() {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("repository: failed to create schema: %w", err)
		}
	}
	return nil
}

// Copy bulk-loads rows into a reference table. Each row holds values for t.Columns in order.
func (r *Repository) Copy(ctx context.Context, t Table, rows [][]any) (int64, error) {
	n, err := r.db.CopyFrom(ctx, pgx.Identifier{t.Name}, t.ColumnNames(), pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy into %s: %w", t.Name, err)
	}
	return n, nil
}

// GetBlockList returns the residential-display blocks of a town.
func (r *Repository) GetBlockList(ctx context.Context, scope models.Scope) ([]models.TownBlock, error) {
	rows, err := r.db.Query(ctx, r.blockSQL, r.opts.args(scope)...)
	if err != nil {
		return nil, storeError("get block list", scope, err)
	}
	defer rows.Close()

	var blocks []models.TownBlock
	for rows.Next() {
		b, err := scanTownBlock(rows)
		if err != nil {
			return nil, storeError("scan block", scope, err)
		}
		blocks = append(blocks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("iterate blocks", scope, err)
	}

	return blocks, nil
}

// GetRsdtList returns the residential units of a town.
func (r *Repository) GetRsdtList(ctx context.Context, scope models.Scope) ([]models.RsdtAddr, error) {
	rows, err := r.db.Query(ctx, r.rsdtSQL, r.opts.args(scope)...)
	if err != nil {
		return nil, storeError("get rsdt list", scope, err)
	}
	defer rows.Close()

	var addrs []models.RsdtAddr
	for rows.Next() {
		a, err := scanRsdtAddr(rows)
		if err != nil {
			return nil, storeError("scan rsdt", scope, err)
		}
		addrs = append(addrs, a)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("iterate rsdt", scope, err)
	}

	return addrs, nil
}

// CityNames returns the municipalities of a prefecture with their county qualifier.
func (r *Repository) CityNames(ctx context.Context, prefecture string) ([]pattern.Candidate, error) {
	rows, err := r.db.Query(ctx, r.citySQL, r.opts.wildcard(prefecture))
	if err != nil {
		return nil, storeError("get city names", models.Scope{Prefecture: prefecture}, err)
	}
	defer rows.Close()

	var cands []pattern.Candidate
	for rows.Next() {
		var c pattern.Candidate
		if err := rows.Scan(&c.Qualifier, &c.Name); err != nil {
			return nil, storeError("scan city", models.Scope{Prefecture: prefecture}, err)
		}
		cands = append(cands, c)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("iterate cities", models.Scope{Prefecture: prefecture}, err)
	}

	return cands, nil
}
