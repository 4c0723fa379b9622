package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateShortValueUnchanged(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "", Truncate("", 100))
}

func TestTruncateCapsAtMax(t *testing.T) {
	s := strings.Repeat("a", 2000)

	out := Truncate(s, 1000)

	assert.Len(t, []rune(out), 1000)
	assert.True(t, strings.HasSuffix(out, Ellipsis))
	assert.Equal(t, strings.Repeat("a", 997), strings.TrimSuffix(out, Ellipsis))
}

func TestTruncateIdempotent(t *testing.T) {
	s := strings.Repeat("x", 500)

	once := Truncate(s, 100)
	twice := Truncate(once, 100)

	assert.Equal(t, once, twice)
}

func TestTruncateCountsRunes(t *testing.T) {
	// Multi-byte content must be cut at rune boundaries, not bytes
	s := strings.Repeat("Giá 2 tỷ ", 50)

	out := Truncate(s, 100)

	assert.Len(t, []rune(out), 100)
	assert.True(t, strings.HasSuffix(out, Ellipsis))
}

func TestTruncateZeroMax(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 0))
}
