package api

import "context"

// Transcript is the text a model produced for one audio file.
type Transcript struct {
	Text string `json:"text"`
}

// Transcriber defines a transcription interface for converting audio files to text.
//
// Implementations are loaded once at startup and shared by every request, so
// Transcribe must be safe for concurrent use.
type Transcriber interface {
	Transcribe(ctx context.Context, inputFilePath string) (*Transcript, error)
}
