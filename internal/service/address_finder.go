package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"address-geocoder/internal/metrics"
	"address-geocoder/internal/models"

	"github.com/rs/zerolog"
)

// AddressRepository interface for dependency injection
type AddressRepository interface {
	GetBlockList(ctx context.Context, scope models.Scope) ([]models.TownBlock, error)
	GetRsdtList(ctx context.Context, scope models.Scope) ([]models.RsdtAddr, error)
}

// Outcome tells how a block/residential resolution ended.
type Outcome int

const (
	// OutcomeNoCandidates: the town has no residential-display blocks.
	OutcomeNoCandidates Outcome = iota
	// OutcomeNoToken: the residual text does not start with a block number.
	OutcomeNoToken
	// OutcomeUnresolvedBlock: no row exists even for the bare block number.
	OutcomeUnresolvedBlock
	OutcomeBlock
	OutcomePartial
	OutcomeFull
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoCandidates:
		return "no_candidates"
	case OutcomeNoToken:
		return "no_token"
	case OutcomeUnresolvedBlock:
		return "unresolved_block"
	case OutcomeBlock:
		return "block"
	case OutcomePartial:
		return "partial"
	case OutcomeFull:
		return "full"
	default:
		return "unknown"
	}
}

// Matched reports whether the outcome changed the query.
func (o Outcome) Matched() bool {
	return o >= OutcomeBlock
}

// blockNumberPattern captures block, addr1 and addr2, e.g. "1-3-2".
var blockNumberPattern = regexp.MustCompile(`^([1-9][0-9]*)(?:-([1-9][0-9]*))?(?:-([1-9][0-9]*))?`)

// AddressFinder resolves the block and residential unit of a query whose
// prefecture, city and town are already known.
type AddressFinder struct {
	repo    AddressRepository
	logger  zerolog.Logger
	metrics *metrics.Collector
}

// FinderOption configures an AddressFinder.
type FinderOption func(*AddressFinder)

// WithLogger sets the finder's logger.
func WithLogger(l zerolog.Logger) FinderOption {
	return func(f *AddressFinder) { f.logger = l }
}

// WithMetrics sets the collector that receives resolution outcomes.
func WithMetrics(c *metrics.Collector) FinderOption {
	return func(f *AddressFinder) { f.metrics = c }
}

// NewAddressFinder creates a new address finder
func NewAddressFinder(repo AddressRepository, opts ...FinderOption) *AddressFinder {
	f := &AddressFinder{repo: repo, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find resolves the leading block number of the residual text. A query that
// cannot be resolved further is returned unchanged; only store failures are errors.
func (f *AddressFinder) Find(ctx context.Context, query models.Query) (models.Query, error) {
	q, _, err := f.Resolve(ctx, query)
	return q, err
}

// Resolve is Find that also reports how the resolution ended.
func (f *AddressFinder) Resolve(ctx context.Context, query models.Query) (models.Query, Outcome, error) {
	scope, ok := scopeOf(query)
	if !ok {
		return f.done(query, OutcomeNoCandidates)
	}

	blocks, err := f.getBlockList(ctx, scope)
	if err != nil {
		return query, OutcomeNoCandidates, fmt.Errorf("service: failed to get block list: %w", err)
	}

	// 住居表示未整備
	if len(blocks) == 0 {
		return f.done(query, OutcomeNoCandidates)
	}

	m := blockNumberPattern.FindStringSubmatch(query.Residual())
	if m == nil {
		return f.done(query, OutcomeNoToken)
	}

	rsdts, err := f.getRsdtList(ctx, scope)
	if err != nil {
		return query, OutcomeNoCandidates, fmt.Errorf("service: failed to get rsdt list: %w", err)
	}
	index := f.index(rsdts)

	blockNum, addr1, addr2 := m[1], m[2], m[3]
	consumed := query.Copy(models.Patch{
		Residual: models.String(query.Residual()[len(m[0]):]),
	})

	// 1-1-1, or 1-1 when that is all there is
	if addr1 != "" {
		if row, ok := index[models.ResidentialSectionKey(blockNum, addr1, addr2)]; ok {
			return f.done(consumed.Copy(withPoint(row, models.LevelResidentialDetail, models.Patch{
				Block:   models.String(row.Blk),
				BlockID: models.String(row.BlkID),
				Addr1:   models.String(addr1),
				Addr1ID: models.String(row.Addr1ID),
				Addr2:   models.String(addr2),
				Addr2ID: models.String(row.Addr2ID),
			})), OutcomeFull)
		}
	}

	// 1-1, giving back -1
	if addr1 != "" && addr2 != "" {
		if row, ok := index[models.ResidentialSectionKey(blockNum, addr1, "")]; ok {
			return f.done(consumed.Copy(withPoint(row, models.LevelResidentialDetail, models.Patch{
				Block:    models.String(row.Blk),
				BlockID:  models.String(row.BlkID),
				Addr1:    models.String(row.Addr1),
				Addr1ID:  models.String(row.Addr1ID),
				Addr2:    models.String(row.Addr2),
				Addr2ID:  models.String(row.Addr2ID),
				Residual: models.String("-" + addr2 + consumed.Residual()),
			})), OutcomePartial)
		}
	}

	// 1, giving back -1-1
	row, ok := index[blockNum]
	if !ok {
		return f.done(query, OutcomeUnresolvedBlock)
	}
	rest := consumed.Residual()
	if addr2 != "" {
		rest = "-" + addr2 + rest
	}
	if addr1 != "" {
		rest = "-" + addr1 + rest
	}
	return f.done(consumed.Copy(withPoint(row, models.LevelResidentialBlock, models.Patch{
		Block:    models.String(row.Blk),
		BlockID:  models.String(row.BlkID),
		Residual: models.String(rest),
	})), OutcomeBlock)
}

// index maps section keys to rows. Rows are inserted longest key first and a
// later row with the same key replaces the earlier one.
func (f *AddressFinder) index(rsdts []models.RsdtAddr) map[string]models.RsdtAddr {
	sorted := make([]models.RsdtAddr, len(rsdts))
	copy(sorted, rsdts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].SectionKey()) > len(sorted[j].SectionKey())
	})

	index := make(map[string]models.RsdtAddr, len(sorted))
	for _, r := range sorted {
		key := r.SectionKey()
		if prev, dup := index[key]; dup {
			f.logger.Warn().
				Str("key", key).
				Str("replaced_addr1_id", prev.Addr1ID).
				Str("addr1_id", r.Addr1ID).
				Msg("duplicate residential section key")
			f.metrics.ObserveDuplicateKey()
		}
		index[key] = r
	}
	return index
}

func (f *AddressFinder) getBlockList(ctx context.Context, scope models.Scope) ([]models.TownBlock, error) {
	start := time.Now()
	defer func() { f.metrics.ObserveLookup("block_list", time.Since(start)) }()
	return f.repo.GetBlockList(ctx, scope)
}

func (f *AddressFinder) getRsdtList(ctx context.Context, scope models.Scope) ([]models.RsdtAddr, error) {
	start := time.Now()
	defer func() { f.metrics.ObserveLookup("rsdt_list", time.Since(start)) }()
	return f.repo.GetRsdtList(ctx, scope)
}

func (f *AddressFinder) done(q models.Query, outcome Outcome) (models.Query, Outcome, error) {
	f.metrics.ObserveResolution(outcome.String())
	f.logger.Debug().
		Str("input", q.Input()).
		Str("outcome", outcome.String()).
		Str("residual", q.Residual()).
		Msg("block resolution")
	return q, outcome, nil
}

func scopeOf(q models.Query) (models.Scope, bool) {
	pref, okPref := q.Prefecture()
	city, okCity := q.City()
	town, okTown := q.Town()
	return models.Scope{Prefecture: pref, City: city, Town: town}, okPref && okCity && okTown
}

// withPoint adds the row's coordinate and raises the levels to level.
func withPoint(row models.RsdtAddr, level models.Level, p models.Patch) models.Patch {
	p.MatchLevel = models.LevelOf(level)
	if row.HasPoint() {
		p.Lat = models.Float(row.Lat)
		p.Lon = models.Float(row.Lon)
		p.CoordinateLevel = models.LevelOf(level)
	}
	return p
}
