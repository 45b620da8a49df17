package lexattr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShape(t *testing.T) {
	cases := map[string]string{
		"Apple":      "Xxxxx",
		"U.K.":       "X.X.",
		"$1":         "$d",
		"2024":       "dddd",
		"1234567":    "dddd",
		"spaCy":      "xxxXx",
		"tutorial":   "xxxx",
		"":           "",
		"C3PO":       "XdXX",
		"well-known": "xxxx-xxxx",
	}

	for in, want := range cases {
		assert.Equal(t, want, Shape(in), in)
	}
}

func TestFlags(t *testing.T) {
	assert.True(t, IsAlpha("spaCy"))
	assert.False(t, IsAlpha("U.K."))
	assert.False(t, IsAlpha(""))

	assert.True(t, IsPunct("!"))
	assert.True(t, IsPunct("``"))
	assert.False(t, IsPunct("a!"))

	assert.True(t, IsDigit("42"))
	assert.False(t, IsDigit("4.2"))

	assert.True(t, IsSpace("  \n"))
	assert.False(t, IsSpace(""))
}

func TestLikeNum(t *testing.T) {
	for _, in := range []string{"10", "10,000", "3.14", "1/2", "ten", "Billion", "-5"} {
		assert.True(t, LikeNum(in), in)
	}

	for _, in := range []string{"", "ford", "1/2/3", "$", "-"} {
		assert.False(t, LikeNum(in), in)
	}
}
