package testutil

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

// SampleAudio is arbitrary bytes standing in for a recorded clip; the mock model never decodes it.
var SampleAudio = []byte("\x1aE\xdf\xa3 fake webm audio payload")

// MultipartUpload builds a multipart body with one file part. An empty filename
// produces a part with filename="" the way browsers send an empty file input.
func MultipartUpload(t testing.TB, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

// MultipartFields builds a multipart body with plain form fields only.
func MultipartFields(t testing.TB, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}
