package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResidentialSectionKey(t *testing.T) {
	tests := []struct {
		name     string
		blockNum string
		addr1    string
		addr2    string
		expected string
	}{
		{name: "all parts", blockNum: "1", addr1: "2", addr2: "3", expected: "1-2-3"},
		{name: "block and addr1", blockNum: "1", addr1: "3", expected: "1-3"},
		{name: "block only", blockNum: "12", expected: "12"},
		{name: "missing addr1 is skipped", blockNum: "1", addr2: "5", expected: "1-5"},
		{name: "nothing", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResidentialSectionKey(tt.blockNum, tt.addr1, tt.addr2))
		})
	}
}

func TestRsdtAddr_SectionKey(t *testing.T) {
	r := RsdtAddr{Blk: "2", Addr1: "22"}
	assert.Equal(t, "2-22", r.SectionKey())
}
