package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_CopyDoesNotMutateSource(t *testing.T) {
	q := NewQuery("東京都千代田区紀尾井町1-3", "1-3").Copy(Patch{
		Prefecture: String("東京都"),
		City:       String("千代田区"),
		Town:       String("紀尾井町"),
	})
	before := q

	next := q.Copy(Patch{
		Residual: String(""),
		Block:    String("1"),
		Addr1:    String("3"),
		Lat:      Float(35.681411),
	})
	next = next.Copy(Patch{City: String("港区")})

	assert.Equal(t, before, q)
	assert.Equal(t, "東京都千代田区紀尾井町1-3", q.Input())
	assert.Equal(t, q.Input(), next.Input())
	assert.Equal(t, "1-3", q.Residual())

	_, ok := q.Block()
	assert.False(t, ok)

	city, _ := next.City()
	assert.Equal(t, "港区", city)
	block, ok := next.Block()
	assert.True(t, ok)
	assert.Equal(t, "1", block)
}

func TestQuery_CopyKeepsUnpatchedFields(t *testing.T) {
	q := NewQuery("in", "rest").Copy(Patch{Town: String("森野二丁目"), Lon: Float(139.440264)})

	next := q.Copy(Patch{Block: String("2")})

	town, ok := next.Town()
	assert.True(t, ok)
	assert.Equal(t, "森野二丁目", town)
	lon, ok := next.Lon()
	assert.True(t, ok)
	assert.Equal(t, 139.440264, lon)
	assert.Equal(t, "rest", next.Residual())
}

func TestQuery_CopyDoesNotAliasPatch(t *testing.T) {
	block := "1"
	q := NewQuery("in", "").Copy(Patch{Block: &block})
	block = "9"

	got, _ := q.Block()
	assert.Equal(t, "1", got)
}

func TestQuery_EmptyStringIsSet(t *testing.T) {
	q := NewQuery("in", "").Copy(Patch{Addr2: String("")})

	addr2, ok := q.Addr2()
	assert.True(t, ok)
	assert.Equal(t, "", addr2)
}

func TestQuery_LevelsOnlyRise(t *testing.T) {
	q := NewQuery("in", "").Copy(Patch{
		MatchLevel:      LevelOf(LevelResidentialDetail),
		CoordinateLevel: LevelOf(LevelResidentialBlock),
	})

	lowered := q.Copy(Patch{
		MatchLevel:      LevelOf(LevelMachiaza),
		CoordinateLevel: LevelOf(LevelResidentialDetail),
	})

	assert.Equal(t, LevelResidentialDetail, lowered.MatchLevel())
	assert.Equal(t, LevelResidentialDetail, lowered.CoordinateLevel())
}

func TestQuery_FormattedAndScore(t *testing.T) {
	q := NewQuery("東京都町田市森野2-2-22", "").Copy(Patch{
		Prefecture: String("東京都"),
		City:       String("町田市"),
		Town:       String("森野二丁目"),
		Block:      String("2"),
		Addr1:      String("22"),
		Addr2:      String(""),
	})

	assert.Equal(t, "東京都町田市森野二丁目2-22", q.Formatted())
	assert.Equal(t, 1.0, q.Score())

	partial := NewQuery("abcd", "cd")
	assert.InDelta(t, 0.5, partial.Score(), 1e-9)
	assert.Equal(t, 0.0, NewQuery("", "").Score())
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "residential_detail", LevelResidentialDetail.String())
	assert.Equal(t, "machiaza", LevelMachiaza.String())
	assert.Equal(t, "unknown", Level(42).String())
}
