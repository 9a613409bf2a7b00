package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tinyurl/handlers/mocks"
)

func setupRoutesTest() (*gin.Engine, *mocks.MockURLHandler) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	mockHandler := &mocks.MockURLHandler{}
	return router, mockHandler
}

func respondWith(status int) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		c := args.Get(0).(*gin.Context)
		c.Status(status)
	}
}

func TestRegisterRoutes(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		handler  string
		expected int
	}{
		{"Create", http.MethodPost, "/api/v1/shorturls", "CreateShortURL", http.StatusCreated},
		{"List", http.MethodGet, "/api/v1/shorturls", "ListShortURLs", http.StatusOK},
		{"Get", http.MethodGet, "/api/v1/shorturls/abc123", "GetShortURL", http.StatusOK},
		{"Delete", http.MethodDelete, "/api/v1/shorturls/abc123", "DeleteShortURL", http.StatusNoContent},
		{"Health", http.MethodGet, "/health", "HealthCheck", http.StatusOK},
		{"Redirect", http.MethodGet, "/abc123", "RedirectURL", http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockHandler := setupRoutesTest()
			mockHandler.On(tt.handler, mock.Anything).Run(respondWith(tt.expected)).Return().Once()

			RegisterRoutes(router, mockHandler, nil)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, tt.expected, resp.Code)
			assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
			mockHandler.AssertExpectations(t)
		})
	}
}

func TestRegisterRoutesMetrics(t *testing.T) {
	router, mockHandler := setupRoutesTest()
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	RegisterRoutes(router, mockHandler, metricsHandler)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusTeapot, resp.Code)
	mockHandler.AssertNotCalled(t, "RedirectURL", mock.Anything)
}

func TestRegisterRoutesWithoutMetrics(t *testing.T) {
	router, mockHandler := setupRoutesTest()
	mockHandler.On("RedirectURL", mock.Anything).Run(respondWith(http.StatusNotFound)).Return().Once()

	RegisterRoutes(router, mockHandler, nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Without a metrics handler "/metrics" is just another short code
	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockHandler.AssertExpectations(t)
}

func TestIsReservedCode(t *testing.T) {
	for _, code := range []string{"health", "metrics"} {
		assert.True(t, IsReservedCode(code), code)
	}
	for _, code := range []string{"api", "Health", "healthz", "aB3xY9z", ""} {
		assert.False(t, IsReservedCode(code), code)
	}
}
