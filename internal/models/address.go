package models

import "strings"

// TownBlock represents a residential-display block (街区) under a town, with its representative point.
type TownBlock struct {
	LgCode string  `json:"lg_code"`
	TownID string  `json:"town_id"`
	BlkID  string  `json:"blk_id"`
	Pref   string  `json:"pref"`
	City   string  `json:"city"`
	Town   string  `json:"town"`
	Blk    string  `json:"blk"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// RsdtAddr represents a residential unit (住居) nested under a block.
type RsdtAddr struct {
	LgCode  string  `json:"lg_code"`
	TownID  string  `json:"town_id"`
	BlkID   string  `json:"blk_id"`
	Addr1ID string  `json:"addr1_id"`
	Addr2ID string  `json:"addr2_id"`
	Blk     string  `json:"blk"`
	Addr1   string  `json:"addr1"`
	Addr2   string  `json:"addr2"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// SectionKey returns the residential section key of the row.
func (r RsdtAddr) SectionKey() string {
	return ResidentialSectionKey(r.Blk, r.Addr1, r.Addr2)
}

// ResidentialSectionKey joins the non-empty parts with "-", e.g. ("1", "3", "") -> "1-3".
func ResidentialSectionKey(blockNum, addr1, addr2 string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{blockNum, addr1, addr2} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}

// HasPoint reports whether the block carries a representative point.
func (b TownBlock) HasPoint() bool {
	return b.Lat != 0 || b.Lon != 0
}

// HasPoint reports whether the residential unit carries a representative point.
func (r RsdtAddr) HasPoint() bool {
	return r.Lat != 0 || r.Lon != 0
}

// Scope narrows reference lookups to one town. City is the concatenation of
// county, city and ward names; Town is the oaza name followed by the chome.
type Scope struct {
	Prefecture string `json:"prefecture"`
	City       string `json:"city"`
	Town       string `json:"town"`
}
