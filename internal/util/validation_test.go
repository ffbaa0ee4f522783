package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.com", "x@sub.domain.org"}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{"", "plain", "no@tld", "spaces in@mail.com", "@missing.local", "double@@at.com"}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	ok, msg := ValidatePassword("123456")
	assert.True(t, ok)
	assert.Empty(t, msg)

	ok, msg = ValidatePassword("12345")
	assert.False(t, ok)
	assert.Equal(t, "Password must be at least 6 characters long", msg)
}

func TestMissingFields(t *testing.T) {
	data := map[string]string{"title": "Go 101", "content": ""}
	missing := MissingFields(data, []string{"title", "content", "order"})
	assert.Equal(t, []string{"content", "order"}, missing)

	assert.Nil(t, MissingFields(data, []string{"title"}))
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://example.com/img.png"))
	assert.True(t, IsValidURL("http://example.com"))

	assert.False(t, IsValidURL("ftp://example.com/file"))
	assert.False(t, IsValidURL("/relative/path"))
	assert.False(t, IsValidURL("not a url"))
}

func TestIsValidVideoURL(t *testing.T) {
	valid := []string{
		"https://youtube.com/watch?v=abc",
		"https://www.youtube.com/watch?v=abc",
		"https://youtu.be/abc",
		"https://player.vimeo.com/video/123",
	}
	for _, raw := range valid {
		assert.True(t, IsValidVideoURL(raw), raw)
	}

	invalid := []string{
		"https://example.com/video.mp4",
		// 子串伪造域名必须被拒绝
		"https://evilyoutube.com.attacker.net/watch",
		"https://youtube.com.evil.net/watch",
		"https://notyoutube.com/watch",
		"ftp://youtube.com/watch",
		"",
	}
	for _, raw := range invalid {
		assert.False(t, IsValidVideoURL(raw), raw)
	}
}
