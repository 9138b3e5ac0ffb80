package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"address-geocoder/internal/models"
)

// placeholder renders the n-th (1-based) bind parameter for a driver.
type placeholder func(n int) string

func dollarPlaceholder(n int) string   { return fmt.Sprintf("$%d", n) }
func questionPlaceholder(n int) string { return fmt.Sprintf("?%d", n) }

// col renders alias.column for a catalogued field.
func col(alias string, f models.Field) string {
	return alias + "." + f.Column()
}

func concat(alias string, fields ...models.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = col(alias, f)
	}
	return "(" + strings.Join(parts, " || ") + ")"
}

func cityExpr() string {
	return concat("city", models.FieldCountyName, models.FieldCityName, models.FieldOdCityName)
}

func townExpr() string {
	return concat("town", models.FieldOazaTownName, models.FieldChomeName)
}

// fromScope joins city -> town -> block (-> residential unit) and filters on the
// scope, binding prefecture, city and town as parameters 1, 2 and 3.
func fromScope(ph placeholder, withRsdt bool) string {
	lg := models.FieldLgCode
	townID := models.FieldTownID
	blkID := models.FieldBlkID

	var b strings.Builder
	fmt.Fprintf(&b, `
		FROM city
			JOIN town ON %s = %s
			JOIN rsdtdsp_blk blk ON %s = %s AND %s = %s`,
		col("town", lg), col("city", lg),
		col("blk", lg), col("city", lg),
		col("blk", townID), col("town", townID),
	)
	if withRsdt {
		fmt.Fprintf(&b, `
			JOIN rsdtdsp_rsdt rsdt ON %s = %s AND %s = %s AND %s = %s`,
			col("rsdt", lg), col("city", lg),
			col("rsdt", townID), col("town", townID),
			col("rsdt", blkID), col("blk", blkID),
		)
	}
	fmt.Fprintf(&b, `
		WHERE %s = %s
			AND %s = %s
			AND %s = %s
			AND %s IS NOT NULL`,
		col("city", models.FieldPrefName), ph(1),
		cityExpr(), ph(2),
		townExpr(), ph(3),
		col("blk", models.FieldBlkNum),
	)
	// A residential row with both numbers NULL is dropped here. The importer
	// stores an empty number as NULL, so a bare-block row never reaches the
	// finder's index and the block-only tier fires only for rows stored with
	// an empty-string number.
	if withRsdt {
		fmt.Fprintf(&b, `
			AND (%s IS NOT NULL OR %s IS NOT NULL)`,
			col("rsdt", models.FieldRsdtNum), col("rsdt", models.FieldRsdtNum2),
		)
	}
	return b.String()
}

func blockListSQL(ph placeholder) string {
	return fmt.Sprintf(`
		SELECT
			%s,
			%s,
			%s,
			%s AS pref,
			%s AS city,
			%s AS town,
			%s AS blk,
			%s AS lat,
			%s AS lon`,
		col("blk", models.FieldLgCode),
		col("blk", models.FieldTownID),
		col("blk", models.FieldBlkID),
		col("city", models.FieldPrefName),
		cityExpr(),
		townExpr(),
		col("blk", models.FieldBlkNum),
		col("blk", models.FieldRepPntLat),
		col("blk", models.FieldRepPntLon),
	) + fromScope(ph, false) + fmt.Sprintf(`
		ORDER BY %s`, col("blk", models.FieldBlkID))
}

func rsdtListSQL(ph placeholder) string {
	return fmt.Sprintf(`
		SELECT
			%s,
			%s,
			%s,
			COALESCE(%s, '') AS addr1_id,
			COALESCE(%s, '') AS addr2_id,
			%s AS blk,
			COALESCE(%s, '') AS addr1,
			COALESCE(%s, '') AS addr2,
			%s AS lat,
			%s AS lon`,
		col("rsdt", models.FieldLgCode),
		col("rsdt", models.FieldTownID),
		col("rsdt", models.FieldBlkID),
		col("rsdt", models.FieldAddrID),
		col("rsdt", models.FieldAddr2ID),
		col("blk", models.FieldBlkNum),
		col("rsdt", models.FieldRsdtNum),
		col("rsdt", models.FieldRsdtNum2),
		col("rsdt", models.FieldRepPntLat),
		col("rsdt", models.FieldRepPntLon),
	) + fromScope(ph, true) + fmt.Sprintf(`
		ORDER BY %s, %s, %s`,
		col("rsdt", models.FieldBlkID), col("rsdt", models.FieldAddrID), col("rsdt", models.FieldAddr2ID),
	)
}

func cityNamesSQL(ph placeholder) string {
	return fmt.Sprintf(`
		SELECT %s, %s || %s
		FROM city
		WHERE %s = %s
		ORDER BY %s`,
		col("city", models.FieldCountyName),
		col("city", models.FieldCityName), col("city", models.FieldOdCityName),
		col("city", models.FieldPrefName), ph(1),
		col("city", models.FieldLgCode),
	)
}

// rowScanner is satisfied by both pgx.Rows and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTownBlock(rows rowScanner) (models.TownBlock, error) {
	var b models.TownBlock
	var lat, lon sql.NullFloat64
	err := rows.Scan(&b.LgCode, &b.TownID, &b.BlkID, &b.Pref, &b.City, &b.Town, &b.Blk, &lat, &lon)
	b.Lat, b.Lon = lat.Float64, lon.Float64
	return b, err
}

func scanRsdtAddr(rows rowScanner) (models.RsdtAddr, error) {
	var r models.RsdtAddr
	var lat, lon sql.NullFloat64
	err := rows.Scan(&r.LgCode, &r.TownID, &r.BlkID, &r.Addr1ID, &r.Addr2ID, &r.Blk, &r.Addr1, &r.Addr2, &lat, &lon)
	r.Lat, r.Lon = lat.Float64, lon.Float64
	return r, err
}
