package repository

import (
	"fmt"
	"strings"

	"address-geocoder/internal/models"
)

// Column is one column of a reference table.
type Column struct {
	Field models.Field
	Type  string
}

// Table describes a reference table in terms of the field catalog.
type Table struct {
	Name       string
	Columns    []Column
	PrimaryKey []models.Field
}

const (
	textKey  = "TEXT NOT NULL"
	textName = "TEXT NOT NULL DEFAULT ''"
	textOpt  = "TEXT"
	coord    = "DOUBLE PRECISION"
)

// Tables lists the reference tables in dependency order.
var Tables = []Table{
	{
		Name: "city",
		Columns: []Column{
			{models.FieldLgCode, textKey},
			{models.FieldPrefName, textName},
			{models.FieldCountyName, textName},
			{models.FieldCityName, textName},
			{models.FieldOdCityName, textName},
			{models.FieldRepPntLat, coord},
			{models.FieldRepPntLon, coord},
		},
		PrimaryKey: []models.Field{models.FieldLgCode},
	},
	{
		Name: "town",
		Columns: []Column{
			{models.FieldLgCode, textKey},
			{models.FieldTownID, textKey},
			{models.FieldOazaTownName, textName},
			{models.FieldChomeName, textName},
			{models.FieldKoazaName, textName},
			{models.FieldRepPntLat, coord},
			{models.FieldRepPntLon, coord},
		},
		PrimaryKey: []models.Field{models.FieldLgCode, models.FieldTownID},
	},
	{
		Name: "rsdtdsp_blk",
		Columns: []Column{
			{models.FieldLgCode, textKey},
			{models.FieldTownID, textKey},
			{models.FieldBlkID, textKey},
			{models.FieldBlkNum, textOpt},
			{models.FieldRepPntLat, coord},
			{models.FieldRepPntLon, coord},
		},
		PrimaryKey: []models.Field{models.FieldLgCode, models.FieldTownID, models.FieldBlkID},
	},
	{
		Name: "rsdtdsp_rsdt",
		Columns: []Column{
			{models.FieldLgCode, textKey},
			{models.FieldTownID, textKey},
			{models.FieldBlkID, textKey},
			{models.FieldAddrID, textKey},
			{models.FieldAddr2ID, textName},
			{models.FieldRsdtNum, textOpt},
			{models.FieldRsdtNum2, textOpt},
			{models.FieldRepPntLat, coord},
			{models.FieldRepPntLon, coord},
		},
		PrimaryKey: []models.Field{models.FieldLgCode, models.FieldTownID, models.FieldBlkID, models.FieldAddrID, models.FieldAddr2ID},
	},
}

// Nullable reports whether the column accepts NULL.
func (c Column) Nullable() bool {
	return c.Type == textOpt || c.Type == coord
}

// Numeric reports whether the column holds a coordinate.
func (c Column) Numeric() bool {
	return c.Type == coord
}

// TableByName finds a reference table.
func TableByName(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// ColumnNames returns the physical column names in table order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Field.Column()
	}
	return names
}

// CreateSQL renders the CREATE TABLE statement. It is valid for both PostgreSQL and SQLite.
func (t Table) CreateSQL() string {
	defs := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		defs = append(defs, fmt.Sprintf("%s %s", c.Field.Column(), c.Type))
	}
	pk := make([]string, len(t.PrimaryKey))
	for i, f := range t.PrimaryKey {
		pk[i] = f.Column()
	}
	defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pk, ", ")))
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.Name, strings.Join(defs, ",\n\t"))
}

// Schema returns the CREATE statements for every reference table.
func Schema() []string {
	stmts := make([]string, len(Tables))
	for i, t := range Tables {
		stmts[i] = t.CreateSQL()
	}
	return stmts
}

// InsertSQL renders a parameterised INSERT for all columns of the table.
func (t Table) InsertSQL(ph placeholder) string {
	params := make([]string, len(t.Columns))
	for i := range t.Columns {
		params[i] = ph(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.Name, strings.Join(t.ColumnNames(), ", "), strings.Join(params, ", "))
}
