package mocks

import (
	"context"
	"io"

	"github.com/dj-idk/gym-backend/domain"
)

// MockFileStorage implements domain.FileStorage for testing
type MockFileStorage struct {
	UploadFunc func(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	DeleteFunc func(ctx context.Context, key string) error
	Uploaded   []string
	Deleted    []string
}

func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{}
}

func (m *MockFileStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, key, contentType, body, size)
	}
	m.Uploaded = append(m.Uploaded, key)
	return "https://storage.test/" + key, nil
}

func (m *MockFileStorage) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.Deleted = append(m.Deleted, key)
	return nil
}

var _ domain.FileStorage = (*MockFileStorage)(nil)
