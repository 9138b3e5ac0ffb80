package models

// Field identifies a semantic address attribute stored in the reference database.
type Field int

const (
	FieldPrefName Field = iota
	FieldCountyName
	FieldCityName
	FieldOdCityName
	FieldOazaTownName
	FieldChomeName
	FieldKoazaName
	FieldLgCode
	FieldTownID
	FieldBlkID
	FieldBlkNum
	FieldAddrID
	FieldAddr2ID
	FieldRsdtNum
	FieldRsdtNum2
	FieldRepPntLat
	FieldRepPntLon
)

var fieldColumns = [...]string{
	FieldPrefName:     "pref",
	FieldCountyName:   "county",
	FieldCityName:     "city",
	FieldOdCityName:   "ward",
	FieldOazaTownName: "oaza_cho",
	FieldChomeName:    "chome",
	FieldKoazaName:    "koaza",
	FieldLgCode:       "lg_code",
	FieldTownID:       "machiaza_id",
	FieldBlkID:        "blk_id",
	FieldBlkNum:       "blk_num",
	FieldAddrID:       "rsdt_id",
	FieldAddr2ID:      "rsdt2_id",
	FieldRsdtNum:      "rsdt_num",
	FieldRsdtNum2:     "rsdt_num2",
	FieldRepPntLat:    "rep_lat",
	FieldRepPntLon:    "rep_lon",
}

var columnFields = func() map[string]Field {
	m := make(map[string]Field, len(fieldColumns))
	for f, col := range fieldColumns {
		m[col] = Field(f)
	}
	return m
}()

// Column returns the physical column name of the field.
func (f Field) Column() string {
	if f < 0 || int(f) >= len(fieldColumns) {
		return ""
	}
	return fieldColumns[f]
}

func (f Field) String() string {
	return f.Column()
}

// Fields returns every catalogued field in declaration order.
func Fields() []Field {
	fields := make([]Field, len(fieldColumns))
	for i := range fieldColumns {
		fields[i] = Field(i)
	}
	return fields
}

// FieldByColumn is the inverse of Field.Column.
func FieldByColumn(column string) (Field, bool) {
	f, ok := columnFields[column]
	return f, ok
}
