package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeSQLWildcards(t *testing.T) {
	assert.Equal(t, `100\% off`, EscapeSQLWildcards("100% off"))
	assert.Equal(t, `snake\_case`, EscapeSQLWildcards("snake_case"))
	assert.Equal(t, `back\\slash`, EscapeSQLWildcards(`back\slash`))
}

func TestSanitizeSearchQuery(t *testing.T) {
	assert.Equal(t, "%hello%", SanitizeSearchQuery("  hello  "))

	long := strings.Repeat("a", 150)
	got := SanitizeSearchQuery(long)
	assert.Len(t, got, 102) // 100 chars plus the two wildcards
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abcdef", 3))
	assert.Equal(t, "ab", TruncateString("ab", 3))
}
