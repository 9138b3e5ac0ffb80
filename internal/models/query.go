package models

import "unicode/utf8"

// Query is the in-flight resolution state of one address. It is immutable:
// Copy is the only way to derive a modified value.
type Query struct {
	input    string
	residual string

	prefecture *string
	city       *string
	town       *string
	townID     *string
	lgCode     *string
	block      *string
	blockID    *string
	addr1      *string
	addr1ID    *string
	addr2      *string
	addr2ID    *string

	lat *float64
	lon *float64

	matchLevel      Level
	coordinateLevel Level
}

// Patch lists the fields to override in Query.Copy. Nil fields keep the receiver's value.
type Patch struct {
	Residual *string

	Prefecture *string
	City       *string
	Town       *string
	TownID     *string
	LgCode     *string
	Block      *string
	BlockID    *string
	Addr1      *string
	Addr1ID    *string
	Addr2      *string
	Addr2ID    *string

	Lat *float64
	Lon *float64

	// Levels are only ever raised.
	MatchLevel      *Level
	CoordinateLevel *Level
}

// NewQuery creates a query for input with the given unparsed residual text.
func NewQuery(input, residual string) Query {
	return Query{input: input, residual: residual}
}

// String and Float are helpers for building a Patch.
func String(s string) *string { return &s }

func Float(f float64) *float64 { return &f }

func LevelOf(l Level) *Level { return &l }

// Copy returns a new Query with the fields present in p replaced.
func (q Query) Copy(p Patch) Query {
	next := q
	if p.Residual != nil {
		next.residual = *p.Residual
	}
	next.prefecture = pick(p.Prefecture, q.prefecture)
	next.city = pick(p.City, q.city)
	next.town = pick(p.Town, q.town)
	next.townID = pick(p.TownID, q.townID)
	next.lgCode = pick(p.LgCode, q.lgCode)
	next.block = pick(p.Block, q.block)
	next.blockID = pick(p.BlockID, q.blockID)
	next.addr1 = pick(p.Addr1, q.addr1)
	next.addr1ID = pick(p.Addr1ID, q.addr1ID)
	next.addr2 = pick(p.Addr2, q.addr2)
	next.addr2ID = pick(p.Addr2ID, q.addr2ID)
	next.lat = pick(p.Lat, q.lat)
	next.lon = pick(p.Lon, q.lon)
	if p.MatchLevel != nil {
		next.matchLevel = maxLevel(q.matchLevel, *p.MatchLevel)
	}
	if p.CoordinateLevel != nil {
		next.coordinateLevel = maxLevel(q.coordinateLevel, *p.CoordinateLevel)
	}
	return next
}

// pick copies the patch value so the new Query never aliases the caller's variable.
func pick[T any](patch, current *T) *T {
	if patch == nil {
		return current
	}
	v := *patch
	return &v
}

func get[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

func (q Query) Input() string    { return q.input }
func (q Query) Residual() string { return q.residual }

func (q Query) Prefecture() (string, bool) { return get(q.prefecture) }
func (q Query) City() (string, bool)       { return get(q.city) }
func (q Query) Town() (string, bool)       { return get(q.town) }
func (q Query) TownID() (string, bool)     { return get(q.townID) }
func (q Query) LgCode() (string, bool)     { return get(q.lgCode) }
func (q Query) Block() (string, bool)      { return get(q.block) }
func (q Query) BlockID() (string, bool)    { return get(q.blockID) }
func (q Query) Addr1() (string, bool)      { return get(q.addr1) }
func (q Query) Addr1ID() (string, bool)    { return get(q.addr1ID) }
func (q Query) Addr2() (string, bool)      { return get(q.addr2) }
func (q Query) Addr2ID() (string, bool)    { return get(q.addr2ID) }
func (q Query) Lat() (float64, bool)       { return get(q.lat) }
func (q Query) Lon() (float64, bool)       { return get(q.lon) }

func (q Query) MatchLevel() Level      { return q.matchLevel }
func (q Query) CoordinateLevel() Level { return q.coordinateLevel }

// SectionKey returns the residential section key of the resolved block and addresses.
func (q Query) SectionKey() string {
	block, _ := q.Block()
	addr1, _ := q.Addr1()
	addr2, _ := q.Addr2()
	return ResidentialSectionKey(block, addr1, addr2)
}

// Formatted renders the normalized address: resolved names, the section key, then the residual text.
func (q Query) Formatted() string {
	pref, _ := q.Prefecture()
	city, _ := q.City()
	town, _ := q.Town()
	return pref + city + town + q.SectionKey() + q.residual
}

// Score is the share of the input that was consumed by resolution, in [0, 1].
func (q Query) Score() float64 {
	total := utf8.RuneCountInString(q.input)
	if total == 0 {
		return 0
	}
	rest := utf8.RuneCountInString(q.residual)
	if rest >= total {
		return 0
	}
	return float64(total-rest) / float64(total)
}
