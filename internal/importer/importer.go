// Package importer loads reference CSV files into a store, one table per file.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"address-geocoder/internal/repository"

	"github.com/rs/zerolog"
)

// Loader is a reference store that accepts bulk rows.
type Loader interface {
	CreateSchema(ctx context.Context) error
	Copy(ctx context.Context, t repository.Table, rows [][]any) (int64, error)
}

// Importer reads CSV rows and copies them into a table in batches.
type Importer struct {
	loader    Loader
	batchSize int
	logger    zerolog.Logger
}

// New creates an importer. A non-positive batchSize defaults to 5000.
func New(loader Loader, batchSize int, logger zerolog.Logger) *Importer {
	if batchSize <= 0 {
		batchSize = 5000
	}
	return &Importer{loader: loader, batchSize: batchSize, logger: logger}
}

// Import creates the schema and loads r into t. The first CSV line is a header
// naming the columns; columns the table does not know are ignored.
func (im *Importer) Import(ctx context.Context, t repository.Table, r io.Reader) (int64, error) {
	if err := im.loader.CreateSchema(ctx); err != nil {
		return 0, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("importer: failed to read header: %w", err)
	}
	positions, err := columnPositions(t, header)
	if err != nil {
		return 0, err
	}

	var total int64
	batch := make([][]any, 0, im.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := im.loader.Copy(ctx, t, batch)
		if err != nil {
			return err
		}
		total += n
		im.logger.Debug().Str("table", t.Name).Int64("rows", total).Msg("batch copied")
		batch = batch[:0]
		return nil
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return total, fmt.Errorf("importer: failed to read line %d: %w", line, err)
		}

		row, err := convert(t, positions, record)
		if err != nil {
			return total, fmt.Errorf("importer: line %d: %w", line, err)
		}
		batch = append(batch, row)

		if len(batch) == im.batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}

	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

// columnPositions maps each table column to its index in the header.
func columnPositions(t repository.Table, header []string) ([]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	positions := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		pos, ok := index[c.Field.Column()]
		if !ok {
			return nil, fmt.Errorf("importer: %s: missing column %q", t.Name, c.Field.Column())
		}
		positions[i] = pos
	}
	return positions, nil
}

// convert picks the table's columns out of record. Empty nullable values
// become NULL; coordinates are parsed as floats.
func convert(t repository.Table, positions []int, record []string) ([]any, error) {
	row := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		if positions[i] >= len(record) {
			return nil, fmt.Errorf("short record: %d fields", len(record))
		}
		v := record[positions[i]]

		switch {
		case c.Nullable() && v == "":
			row[i] = nil
		case c.Numeric():
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %q", c.Field.Column(), v)
			}
			row[i] = f
		default:
			row[i] = v
		}
	}
	return row, nil
}
