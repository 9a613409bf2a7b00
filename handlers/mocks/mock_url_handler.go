package mocks

import (
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockURLHandler struct {
	mock.Mock
}

func (m *MockURLHandler) CreateShortURL(c *gin.Context) {
	m.Called(c)
}

func (m *MockURLHandler) ListShortURLs(c *gin.Context) {
	m.Called(c)
}

func (m *MockURLHandler) GetShortURL(c *gin.Context) {
	m.Called(c)
}

func (m *MockURLHandler) DeleteShortURL(c *gin.Context) {
	m.Called(c)
}

func (m *MockURLHandler) RedirectURL(c *gin.Context) {
	m.Called(c)
}

func (m *MockURLHandler) HealthCheck(c *gin.Context) {
	m.Called(c)
}
