package whisper

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"whisper-server/internal/app/api"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client   *openai.Client
	model    string
	language string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
// language "auto" or "" lets the API detect it.
func NewRemoteTranscriber(client *openai.Client, model, language string) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	if language == "auto" {
		language = ""
	}
	return &RemoteTranscriber{client: client, model: model, language: language}
}

// Transcribe uploads the file to the OpenAI API for remote transcription.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, inputFilePath string) (*api.Transcript, error) {
	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: inputFilePath,
		Language: rt.language,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("createTranscription failed: %w", err)
	}

	return &api.Transcript{Text: resp.Text}, nil
}
