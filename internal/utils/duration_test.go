package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitNumChar(t *testing.T) {
	nc, err := SplitNumChar("2d")
	require.NoError(t, err)
	assert.Equal(t, NumChar{Num: 2, Char: "d"}, nc)

	nc, err = SplitNumChar("150ms")
	require.NoError(t, err)
	assert.Equal(t, NumChar{Num: 150, Char: "ms"}, nc)

	for _, bad := range []string{"abc", "", "5", "d5", "5 m", "-1d"} {
		_, err := SplitNumChar(bad)
		require.Error(t, err, bad)
	}
	_, err = SplitNumChar("abc")
	assert.EqualError(t, err, "Unable to split num char. Invalid input: abc")
}

func TestExpiry(t *testing.T) {
	base := time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"5m":   base.Add(5 * time.Minute),
		"2h":   base.Add(2 * time.Hour),
		"30s":  base.Add(30 * time.Second),
		"3600": base.Add(time.Hour),
		"2d":   base.AddDate(0, 0, 2),
		"1w":   base.AddDate(0, 0, 7),
		"1M":   base.AddDate(0, 1, 0),
		"1Q":   base.AddDate(0, 3, 0),
		"1y":   base.AddDate(1, 0, 0),
	}
	for in, want := range cases {
		got, err := Expiry(base, in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	got, err := Expiry(base, "2days")
	require.NoError(t, err)
	assert.Equal(t, base.AddDate(0, 0, 2), got)

	_, err = Expiry(base, "3x")
	assert.Error(t, err)
	_, err = Expiry(base, "abc")
	assert.Error(t, err)
}

func TestNewNumericCode(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, re, NewNumericCode(6, ""))
	}
	assert.Equal(t, "aaaa", NewNumericCode(4, "a"))
	assert.Equal(t, "", NewNumericCode(0, ""))
}
