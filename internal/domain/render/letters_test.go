package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionLetter(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
		{-1, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SectionLetter(tt.index), "index %d", tt.index)
	}
}
