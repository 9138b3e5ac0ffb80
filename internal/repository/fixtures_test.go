package repository

// Reference rows shared by the SQLite and PostgreSQL tests.
var fixtureRows = map[string][][]any{
	"city": {
		{"131016", "東京都", "", "千代田区", "", 35.694003, 139.753634},
		{"132098", "東京都", "", "町田市", "", 35.546277, 139.438691},
		{"473812", "沖縄県", "八重山郡", "竹富町", "", 24.326, 124.087},
	},
	"town": {
		{"131016", "0056000", "紀尾井町", "", "", 35.680, 139.736},
		{"132098", "0006002", "森野", "二丁目", "", 35.548, 139.440},
	},
	"rsdtdsp_blk": {
		{"131016", "0056000", "001", "1", 35.681, 139.735},
		{"131016", "0056000", "002", "2", nil, nil},
		{"132098", "0006002", "002", "2", 35.5482, 139.4402},
	},
	"rsdtdsp_rsdt": {
		{"131016", "0056000", "001", "003", "", "3", nil, 35.681411, 139.73495},
		{"131016", "0056000", "001", "004", "001", "4", "1", 35.6815, 139.7350},
		{"132098", "0006002", "002", "022", "", "22", nil, 35.548247, 139.440264},
	},
}
