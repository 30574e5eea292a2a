package api

import (
	"context"
	"io"
	"sync"

	"github.com/diogo/medilingua/internal/models"
)

// MockClient is a mock implementation of BackendClient for testing
type MockClient struct {
	// Mock return values
	DetectVal       string
	DetectErr       error
	TranslateVal    *models.Translation
	TranslateErr    error
	ProcessImageVal string
	ProcessImageErr error
	BaseURLVal      string

	// Call counters/recorders
	mu                sync.Mutex
	DetectCalls       []string
	TranslateCalls    []models.TranslateRequest
	ProcessImageCalls []string
	CloseCalled       bool
}

// Ensure MockClient implements BackendClient
var _ BackendClient = (*MockClient)(nil)

func (m *MockClient) Detect(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DetectCalls = append(m.DetectCalls, text)
	return m.DetectVal, m.DetectErr
}

func (m *MockClient) Translate(ctx context.Context, req models.TranslateRequest) (*models.Translation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TranslateCalls = append(m.TranslateCalls, req)
	return m.TranslateVal, m.TranslateErr
}

func (m *MockClient) ProcessImage(ctx context.Context, filePath string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProcessImageCalls = append(m.ProcessImageCalls, filePath)
	return m.ProcessImageVal, m.ProcessImageErr
}

func (m *MockClient) ProcessImageFromReader(ctx context.Context, reader io.Reader, fileName, mimeType string) (string, error) {
	return m.ProcessImage(ctx, fileName)
}

func (m *MockClient) BaseURL() string {
	if m.BaseURLVal == "" {
		return models.DefaultBackendURL
	}
	return m.BaseURLVal
}

func (m *MockClient) Close() {
	m.CloseCalled = true
}

// TranslateCount returns the number of Translate calls so far
func (m *MockClient) TranslateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.TranslateCalls)
}

// DetectCount returns the number of Detect calls so far
func (m *MockClient) DetectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.DetectCalls)
}
