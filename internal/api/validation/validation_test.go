package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.co",
		"user+tag@example.io",
	}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://example.com/poster.jpg"))
	assert.True(t, IsValidURL("http://example.com"))
	assert.False(t, IsValidURL("ftp://example.com"))
	assert.False(t, IsValidURL("example.com"))
	assert.False(t, IsValidURL(""))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2025-02-14"))
	assert.False(t, IsValidDate("14-02-2025"))
	assert.False(t, IsValidDate("2025/02/14"))
	assert.False(t, IsValidDate(""))
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "Str0ng!pass", true},
		{"too short", "S1!a", false},
		{"no uppercase", "weakpass1!", false},
		{"no lowercase", "WEAKPASS1!", false},
		{"no number", "Weakpass!!", false},
		{"no special", "Weakpass11", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := IsValidPassword(tt.password)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("hel\x00lo"))
	assert.Equal(t, "line1\nline2", SanitizeString("line1\nline2"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "hello", TruncateString("hello", 10))
	assert.Equal(t, "hel", TruncateString("hello", 3))
}
