package format

import (
	"fmt"
	"io"

	"address-geocoder/internal/models"

	"github.com/goccy/go-json"
)

// GeoJSON writes one Feature per line. A query without a coordinate is
// written with a null geometry instead of a Point.
type GeoJSON struct {
	enc   *json.Encoder
	debug bool
}

// NewGeoJSON creates a GeoJSON formatter. With debug set, the lookup keys
// used by the finder are added to the properties.
func NewGeoJSON(w io.Writer, debug bool) *GeoJSON {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &GeoJSON{enc: enc, debug: debug}
}

// ContentType implements Formatter.
func (f *GeoJSON) ContentType() string { return "application/geo+json" }

type feature struct {
	Type       string     `json:"type"`
	Geometry   *point     `json:"geometry"`
	Properties properties `json:"properties"`
}

type point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// properties keeps the column order of the reference data. Lat and Lon hold
// either a number or BlankChar.
type properties struct {
	Input           string  `json:"input"`
	Output          string  `json:"output"`
	Score           float64 `json:"score"`
	MatchLevel      string  `json:"match_level"`
	LgCode          string  `json:"lg_code"`
	Pref            string  `json:"pref"`
	County          string  `json:"county"`
	City            string  `json:"city"`
	Ward            string  `json:"ward"`
	MachiazaID      string  `json:"machiaza_id"`
	OazaCho         string  `json:"oaza_cho"`
	Chome           string  `json:"chome"`
	Koaza           string  `json:"koaza"`
	BlkNum          string  `json:"blk_num"`
	BlkID           string  `json:"blk_id"`
	RsdtNum         string  `json:"rsdt_num"`
	RsdtID          string  `json:"rsdt_id"`
	RsdtNum2        string  `json:"rsdt_num2"`
	Rsdt2ID         string  `json:"rsdt2_id"`
	PrcNum1         string  `json:"prc_num1"`
	PrcNum2         string  `json:"prc_num2"`
	PrcNum3         string  `json:"prc_num3"`
	PrcID           string  `json:"prc_id"`
	Lat             any     `json:"lat"`
	Lon             any     `json:"lon"`
	CoordinateLevel string  `json:"coordinate_level"`
	DebugRsdtBlkKey *string `json:"debug_rsdtblk_key,omitempty"`
	DebugRsdtDspKey *string `json:"debug_rsdtdsp_key,omitempty"`
}

// Write implements Formatter. A query without a coordinate gets a null
// geometry and BlankChar lat/lon properties.
func (f *GeoJSON) Write(q models.Query) error {
	props := properties{
		Input:           q.Input(),
		Output:          q.Formatted(),
		Score:           q.Score(),
		MatchLevel:      q.MatchLevel().String(),
		LgCode:          orBlank(q.LgCode),
		Pref:            orBlank(q.Prefecture),
		County:          BlankChar,
		City:            orBlank(q.City),
		Ward:            BlankChar,
		MachiazaID:      orBlank(q.TownID),
		OazaCho:         orBlank(q.Town),
		Chome:           BlankChar,
		Koaza:           BlankChar,
		BlkNum:          orBlank(q.Block),
		BlkID:           orBlank(q.BlockID),
		RsdtNum:         orBlank(q.Addr1),
		RsdtID:          orBlank(q.Addr1ID),
		RsdtNum2:        orBlank(q.Addr2),
		Rsdt2ID:         orBlank(q.Addr2ID),
		PrcNum1:         BlankChar,
		PrcNum2:         BlankChar,
		PrcNum3:         BlankChar,
		PrcID:           BlankChar,
		Lat:             BlankChar,
		Lon:             BlankChar,
		CoordinateLevel: q.CoordinateLevel().String(),
	}

	feat := feature{Type: "Feature", Properties: props}

	lat, okLat := q.Lat()
	lon, okLon := q.Lon()
	if okLat && okLon {
		feat.Geometry = &point{Type: "Point", Coordinates: [2]float64{lon, lat}}
		feat.Properties.Lat = lat
		feat.Properties.Lon = lon
	}

	if f.debug {
		block, _ := q.Block()
		key := q.SectionKey()
		feat.Properties.DebugRsdtBlkKey = &block
		feat.Properties.DebugRsdtDspKey = &key
	}

	if err := f.enc.Encode(feat); err != nil {
		return fmt.Errorf("format: failed to encode geojson: %w", err)
	}
	return nil
}
