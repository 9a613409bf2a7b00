package mocks

import (
	"tinyurl/types"

	"github.com/stretchr/testify/mock"
)

// MockRegistry is a mock Registry interface
type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) Create(longURL, customCode string) (types.Entry, error) {
	args := m.Called(longURL, customCode)
	return args.Get(0).(types.Entry), args.Error(1)
}

func (m *MockRegistry) GetAllEntries() []types.Entry {
	args := m.Called()
	return args.Get(0).([]types.Entry)
}

func (m *MockRegistry) Delete(code string) (bool, error) {
	args := m.Called(code)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistry) Resolve(code string) (string, bool) {
	args := m.Called(code)
	return args.String(0), args.Bool(1)
}

func (m *MockRegistry) IncrementClick(code string) {
	m.Called(code)
}

func (m *MockRegistry) Stats(code string) (types.Entry, bool) {
	args := m.Called(code)
	return args.Get(0).(types.Entry), args.Bool(1)
}

func (m *MockRegistry) Count() int {
	args := m.Called()
	return args.Int(0)
}
