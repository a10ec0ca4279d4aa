package testutil

import (
	"context"
	"os"
	"sync"

	"github.com/stretchr/testify/mock"

	"whisper-server/internal/app/api"
)

// TranscriptionCall represents a single transcription call for tracking
type TranscriptionCall struct {
	InputFilePath string
	// Content is what the scratch file held when the model was called.
	Content []byte
	Existed bool
}

// MockTranscriber is a mock implementation of the api.Transcriber interface
type MockTranscriber struct {
	mock.Mock

	mu      sync.Mutex
	history []TranscriptionCall
}

// NewMockTranscriber creates a new MockTranscriber with no expectations set.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// WillReturn makes every call succeed with text.
func (m *MockTranscriber) WillReturn(text string) *MockTranscriber {
	m.On("Transcribe", mock.Anything, mock.Anything).Return(&api.Transcript{Text: text}, nil)
	return m
}

// WillFail makes every call fail with err.
func (m *MockTranscriber) WillFail(err error) *MockTranscriber {
	m.On("Transcribe", mock.Anything, mock.Anything).Return(nil, err)
	return m
}

// Transcribe implements the api.Transcriber interface
func (m *MockTranscriber) Transcribe(ctx context.Context, inputFilePath string) (*api.Transcript, error) {
	content, readErr := os.ReadFile(inputFilePath)

	m.mu.Lock()
	m.history = append(m.history, TranscriptionCall{
		InputFilePath: inputFilePath,
		Content:       content,
		Existed:       readErr == nil,
	})
	m.mu.Unlock()

	args := m.Called(ctx, inputFilePath)

	var transcript *api.Transcript
	if v := args.Get(0); v != nil {
		transcript = v.(*api.Transcript)
	}
	return transcript, args.Error(1)
}

// History returns a copy of every call received so far.
func (m *MockTranscriber) History() []TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]TranscriptionCall, len(m.history))
	copy(out, m.history)
	return out
}
