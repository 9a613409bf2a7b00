package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortURLResponseJSONTags(t *testing.T) {
	response := NewShortURLResponse("http://localhost:3000", Entry{
		Code:       "abc123",
		LongURL:    "https://example.com/",
		ClickCount: 3,
	})

	jsonData, err := json.Marshal(response)
	require.NoError(t, err, "Failed to marshal ShortURLResponse")

	assert.JSONEq(t, `{
		"shortUrl": "http://localhost:3000/abc123",
		"shortCode": "abc123",
		"longUrl": "https://example.com/",
		"clicks": 3
	}`, string(jsonData))
}

func TestCreateShortURLRequestDecoding(t *testing.T) {
	t.Run("With custom code", func(t *testing.T) {
		var req CreateShortURLRequest
		err := json.Unmarshal([]byte(`{"longUrl":"https://example.com","customCode":"promo"}`), &req)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", req.LongURL)
		assert.Equal(t, "promo", req.CustomCode)
	})

	t.Run("Without custom code", func(t *testing.T) {
		var req CreateShortURLRequest
		err := json.Unmarshal([]byte(`{"longUrl":"https://example.com"}`), &req)
		require.NoError(t, err)
		assert.Empty(t, req.CustomCode)
	})
}
