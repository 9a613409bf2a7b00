// Package types defines the data structures used in the URL shortener service.
package types

// Entry is a point-in-time copy of one short code mapping.
type Entry struct {
	Code       string
	LongURL    string
	ClickCount int64
}

// CreateShortURLRequest represents the request structure for creating a short URL.
type CreateShortURLRequest struct {
	LongURL    string `json:"longUrl" validate:"required"`
	CustomCode string `json:"customCode,omitempty"`
}

// ShortURLResponse represents the response structure for short URL operations.
type ShortURLResponse struct {
	ShortURL  string `json:"shortUrl"`
	ShortCode string `json:"shortCode"`
	LongURL   string `json:"longUrl"`
	Clicks    int64  `json:"clicks"`
}

// NewShortURLResponse builds the client-facing view of an entry.
func NewShortURLResponse(baseURL string, entry Entry) ShortURLResponse {
	return ShortURLResponse{
		ShortURL:  baseURL + "/" + entry.Code,
		ShortCode: entry.Code,
		LongURL:   entry.LongURL,
		Clicks:    entry.ClickCount,
	}
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
