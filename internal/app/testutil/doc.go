// Package testutil provides testing utilities shared by the whisper-server packages.
//
//   - MockTranscriber (mock_transcriber.go): testify mock of api.Transcriber that also
//     records, for every call, the scratch path it received and the bytes on disk at
//     that moment.
//   - Multipart fixtures (fixtures.go): builders for /transcribe request bodies.
//   - Observed loggers (logger.go): zap loggers whose entries can be asserted on.
//
// # Usage Examples
//
//	model := testutil.NewMockTranscriber().WillReturn("  hello  ")
//	body, contentType := testutil.MultipartUpload(t, "file", "clip.webm", []byte("audio"))
//	req := httptest.NewRequest(http.MethodPost, "/transcribe", body)
//	req.Header.Set("Content-Type", contentType)
package testutil
