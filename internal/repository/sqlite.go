package repository

import (
	"context"
	"database/sql"
	"fmt"

	"address-geocoder/internal/models"
	"address-geocoder/internal/pattern"

	_ "modernc.org/sqlite"
)

// SQLiteRepository reads the reference store from an SQLite file.
type SQLiteRepository struct {
	db   *sql.DB
	opts options

	blockSQL string
	rsdtSQL  string
	citySQL  string
}

// OpenSQLite opens the SQLite database at path. The pool is read-mostly, so
// several resolution workers can share it.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to open sqlite %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: failed to ping sqlite %s: %w", path, err)
	}
	return db, nil
}

// NewSQLiteRepository creates a repository over an open SQLite database.
func NewSQLiteRepository(db *sql.DB, opts ...Option) *SQLiteRepository {
	return &SQLiteRepository{
		db:       db,
		opts:     newOptions(opts),
		blockSQL: blockListSQL(questionPlaceholder),
		rsdtSQL:  rsdtListSQL(questionPlaceholder),
		citySQL:  cityNamesSQL(questionPlaceholder),
	}
}

// Ping checks that the store is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("repository: failed to ping sqlite: %w", err)
	}
	return nil
}

// CreateSchema creates the reference tables if they do not exist.
func (r *SQLiteRepository) CreateSchema(ctx context.Context) error {
	for _, stmt := range Schema() {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("repository: failed to create schema: %w", err)
		}
	}
	return nil
}

// GetBlockList returns the residential-display blocks of a town.
func (r *SQLiteRepository) GetBlockList(ctx context.Context, scope models.Scope) ([]models.TownBlock, error) {
	rows, err := r.db.QueryContext(ctx, r.blockSQL, r.opts.args(scope)...)
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
func (r *SQLiteRepository) GetRsdtList(ctx context.Context, scope models.Scope) ([]models.RsdtAddr, error) {
	rows, err := r.db.QueryContext(ctx, r.rsdtSQL, r.opts.args(scope)...)
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
func (r *SQLiteRepository) CityNames(ctx context.Context, prefecture string) ([]pattern.Candidate, error) {
	scope := models.Scope{Prefecture: prefecture}
	rows, err := r.db.QueryContext(ctx, r.citySQL, r.opts.wildcard(prefecture))
	if err != nil {
		return nil, storeError("get city names", scope, err)
	}
	defer rows.Close()

	var cands []pattern.Candidate
	for rows.Next() {
		var c pattern.Candidate
		if err := rows.Scan(&c.Qualifier, &c.Name); err != nil {
			return nil, storeError("scan city", scope, err)
		}
		cands = append(cands, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate cities", scope, err)
	}
	return cands, nil
}

// Copy writes rows into a reference table inside one transaction. Each row
// holds values for t.Columns in order.
func (r *SQLiteRepository) Copy(ctx context.Context, t Table, rows [][]any) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to begin insert into %s: %w", t.Name, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, t.InsertSQL(questionPlaceholder))
	if err != nil {
		return 0, fmt.Errorf("repository: failed to prepare insert into %s: %w", t.Name, err)
	}
	defer stmt.Close()

	var n int64
	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("repository: failed to insert into %s: %w", t.Name, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("repository: failed to commit insert into %s: %w", t.Name, err)
	}
	return n, nil
}
