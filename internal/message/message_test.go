package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog_Get(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		id       ID
		expected string
	}{
		{name: "english", locale: "en", id: InternalError, expected: "internal server error"},
		{name: "japanese", locale: "ja", id: InternalError, expected: "サーバー内部でエラーが発生しました"},
		{name: "posix japanese locale", locale: "ja_JP.UTF-8", id: ImportCompleted, expected: "インポートが完了しました"},
		{name: "unknown locale falls back to english", locale: "fr", id: MissingAddress, expected: "missing required query parameter 'address'"},
		{name: "unknown id", locale: "ja", id: ID("NOPE"), expected: "NOPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, New(tt.locale).Get(tt.id))
		})
	}
}

func TestCatalog_TablesHaveSameKeys(t *testing.T) {
	for id := range tables[English] {
		_, ok := tables[Japanese][id]
		assert.True(t, ok, "missing japanese message for %s", id)
	}
	assert.Len(t, tables[Japanese], len(tables[English]))
}
