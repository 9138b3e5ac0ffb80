package repository

import (
	"context"
	"path/filepath"
	"testing"

	"address-geocoder/internal/models"
	"address-geocoder/internal/pattern"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLite(t *testing.T) *SQLiteRepository {
	ctx := context.Background()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "ref.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.CreateSchema(ctx))

	for _, tbl := range Tables {
		n, err := repo.Copy(ctx, tbl, fixtureRows[tbl.Name])
		require.NoError(t, err)
		require.Equal(t, int64(len(fixtureRows[tbl.Name])), n)
	}
	return repo
}

func TestSQLiteRepository_GetBlockList(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		scope    models.Scope
		expected []models.TownBlock
	}{
		{
			name:  "town with blocks",
			scope: models.Scope{Prefecture: "東京都", City: "千代田区", Town: "紀尾井町"},
			expected: []models.TownBlock{
				{LgCode: "131016", TownID: "0056000", BlkID: "001", Pref: "東京都", City: "千代田区", Town: "紀尾井町", Blk: "1", Lat: 35.681, Lon: 139.735},
				{LgCode: "131016", TownID: "0056000", BlkID: "002", Pref: "東京都", City: "千代田区", Town: "紀尾井町", Blk: "2"},
			},
		},
		{
			name:  "town name joins oaza and chome",
			scope: models.Scope{Prefecture: "東京都", City: "町田市", Town: "森野二丁目"},
			expected: []models.TownBlock{
				{LgCode: "132098", TownID: "0006002", BlkID: "002", Pref: "東京都", City: "町田市", Town: "森野二丁目", Blk: "2", Lat: 35.5482, Lon: 139.4402},
			},
		},
		{
			name:     "unknown town",
			scope:    models.Scope{Prefecture: "東京都", City: "千代田区", Town: "丸の内"},
			expected: nil,
		},
		{
			name:     "wrong prefecture",
			scope:    models.Scope{Prefecture: "大阪府", City: "千代田区", Town: "紀尾井町"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := repo.GetBlockList(ctx, tt.scope)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, blocks)
		})
	}
}

func TestSQLiteRepository_GetRsdtList(t *testing.T) {
	repo := setupSQLite(t)

	addrs, err := repo.GetRsdtList(context.Background(), models.Scope{Prefecture: "東京都", City: "千代田区", Town: "紀尾井町"})
	require.NoError(t, err)

	assert.Equal(t, []models.RsdtAddr{
		{LgCode: "131016", TownID: "0056000", BlkID: "001", Addr1ID: "003", Addr2ID: "", Blk: "1", Addr1: "3", Addr2: "", Lat: 35.681411, Lon: 139.73495},
		{LgCode: "131016", TownID: "0056000", BlkID: "001", Addr1ID: "004", Addr2ID: "001", Blk: "1", Addr1: "4", Addr2: "1", Lat: 35.6815, Lon: 139.7350},
	}, addrs)
}

func TestSQLiteRepository_CityNames(t *testing.T) {
	repo := setupSQLite(t)

	cands, err := repo.CityNames(context.Background(), "沖縄県")
	require.NoError(t, err)
	assert.Equal(t, []pattern.Candidate{{Qualifier: "八重山郡", Name: "竹富町"}}, cands)
}

func TestSQLiteRepository_WildcardHelper(t *testing.T) {
	repo := setupSQLite(t)
	calls := 0
	repo.opts = newOptions([]Option{WithWildcardHelper(func(s string) string {
		calls++
		return s
	})})

	_, err := repo.GetBlockList(context.Background(), models.Scope{Prefecture: "東京都", City: "千代田区", Town: "紀尾井町"})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestSQLiteRepository_ClosedDatabase(t *testing.T) {
	repo := setupSQLite(t)
	require.NoError(t, repo.db.Close())

	_, err := repo.GetBlockList(context.Background(), models.Scope{Prefecture: "東京都"})
	var storeErr *StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "get block list", storeErr.Op)
}

func TestSQLiteRepository_Ping(t *testing.T) {
	repo := setupSQLite(t)
	assert.NoError(t, repo.Ping(context.Background()))

	require.NoError(t, repo.db.Close())
	assert.Error(t, repo.Ping(context.Background()))
}
