package dto

// TranscriptionResponse is the body of a successful POST /transcribe.
type TranscriptionResponse struct {
	Transcription string `json:"transcription" example:"Hello and welcome to the debate."`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Timestamp int64  `json:"timestamp" example:"1760572800"`
}
