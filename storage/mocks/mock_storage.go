package mocks

import (
	"tinyurl/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) InsertIfAbsent(rec *storage.Record) error {
	args := m.Called(rec)
	return args.Error(0)
}

func (m *MockStorage) Get(code string) (*storage.Record, bool) {
	args := m.Called(code)
	rec, _ := args.Get(0).(*storage.Record)
	return rec, args.Bool(1)
}

func (m *MockStorage) Remove(code string) bool {
	args := m.Called(code)
	return args.Bool(0)
}

func (m *MockStorage) All() []*storage.Record {
	args := m.Called()
	records, _ := args.Get(0).([]*storage.Record)
	return records
}

func (m *MockStorage) Len() int {
	args := m.Called()
	return args.Int(0)
}
