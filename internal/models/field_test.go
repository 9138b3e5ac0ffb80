package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldCatalog_Bijective(t *testing.T) {
	seen := make(map[string]Field)
	for _, f := range Fields() {
		col := f.Column()
		require.NotEmpty(t, col, "field %d has no column", f)

		prev, dup := seen[col]
		assert.False(t, dup, "column %q used by %d and %d", col, prev, f)
		seen[col] = f

		back, ok := FieldByColumn(col)
		assert.True(t, ok)
		assert.Equal(t, f, back)
	}
}

func TestFieldCatalog_Unknown(t *testing.T) {
	assert.Equal(t, "", Field(-1).Column())
	assert.Equal(t, "", Field(len(Fields())).Column())

	_, ok := FieldByColumn("no_such_column")
	assert.False(t, ok)
}
