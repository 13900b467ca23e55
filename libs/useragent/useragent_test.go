package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 12_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/12.0 Mobile/15E148 Safari/604.1"
	androidUA = "Mozilla/5.0 (Linux; Android 9; Pixel 3) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/74.0.3729.157 Mobile Safari/537.36"
	macUA     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_14_4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/74.0.3729.131 Safari/537.36"
)

func TestParsePlatform(t *testing.T) {
	assert.Equal(t, "ios", ParsePlatform(iphoneUA))
	assert.Equal(t, "android", ParsePlatform(androidUA))
	assert.Equal(t, "osx", ParsePlatform(macUA))
	assert.Equal(t, "", ParsePlatform(""))
}

func TestParseClient(t *testing.T) {
	assert.Equal(t, "Chrome/74.0.3729.131", ParseClient(macUA))
	assert.Equal(t, "", ParseClient(""))
}
