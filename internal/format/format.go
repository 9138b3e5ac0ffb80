// Package format serializes resolved queries, one record per line.
package format

import (
	"fmt"
	"io"

	"address-geocoder/internal/models"

	"github.com/goccy/go-json"
)

// BlankChar stands in for unset GeoJSON properties.
const BlankChar = ""

// Formatter writes one record per resolved query.
type Formatter interface {
	Write(q models.Query) error
	ContentType() string
}

// New returns the formatter registered under name ("ndjson" or "geojson").
func New(name string, w io.Writer, debug bool) (Formatter, error) {
	switch name {
	case "", "ndjson":
		return NewNDJSON(w), nil
	case "geojson":
		return NewGeoJSON(w, debug), nil
	default:
		return nil, fmt.Errorf("format: unknown format %q", name)
	}
}

// NDJSON writes {"query":...,"result":...} objects separated by newlines.
type NDJSON struct {
	enc *json.Encoder
}

// NewNDJSON creates an NDJSON formatter writing to w.
func NewNDJSON(w io.Writer) *NDJSON {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &NDJSON{enc: enc}
}

// ContentType implements Formatter.
func (f *NDJSON) ContentType() string { return "application/x-ndjson" }

type ndjsonRecord struct {
	Query  ndjsonQuery  `json:"query"`
	Result ndjsonResult `json:"result"`
}

type ndjsonQuery struct {
	Input string `json:"input"`
}

type ndjsonResult struct {
	Prefecture *string      `json:"prefecture,omitempty"`
	MatchLevel models.Level `json:"match_level"`
	City       *string      `json:"city,omitempty"`
	Town       *string      `json:"town,omitempty"`
	TownID     *string      `json:"town_id,omitempty"`
	LgCode     *string      `json:"lg_code,omitempty"`
	Other      string       `json:"other"`
	Lat        *float64     `json:"lat,omitempty"`
	Lon        *float64     `json:"lon,omitempty"`
	Block      *string      `json:"block,omitempty"`
	BlockID    *string      `json:"block_id,omitempty"`
	Addr1      *string      `json:"addr1,omitempty"`
	Addr1ID    *string      `json:"addr1_id,omitempty"`
	Addr2      *string      `json:"addr2,omitempty"`
	Addr2ID    *string      `json:"addr2_id,omitempty"`
}

// Write implements Formatter.
func (f *NDJSON) Write(q models.Query) error {
	rec := ndjsonRecord{
		Query: ndjsonQuery{Input: q.Input()},
		Result: ndjsonResult{
			Prefecture: opt(q.Prefecture),
			MatchLevel: q.MatchLevel(),
			City:       opt(q.City),
			Town:       opt(q.Town),
			TownID:     opt(q.TownID),
			LgCode:     opt(q.LgCode),
			Other:      q.Residual(),
			Lat:        optFloat(q.Lat),
			Lon:        optFloat(q.Lon),
			Block:      opt(q.Block),
			BlockID:    opt(q.BlockID),
			Addr1:      opt(q.Addr1),
			Addr1ID:    opt(q.Addr1ID),
			Addr2:      opt(q.Addr2),
			Addr2ID:    opt(q.Addr2ID),
		},
	}
	if err := f.enc.Encode(rec); err != nil {
		return fmt.Errorf("format: failed to encode ndjson: %w", err)
	}
	return nil
}

func opt(get func() (string, bool)) *string {
	v, ok := get()
	if !ok {
		return nil
	}
	return &v
}

func optFloat(get func() (float64, bool)) *float64 {
	v, ok := get()
	if !ok {
		return nil
	}
	return &v
}

func orBlank(get func() (string, bool)) string {
	v, ok := get()
	if !ok || v == "" {
		return BlankChar
	}
	return v
}
