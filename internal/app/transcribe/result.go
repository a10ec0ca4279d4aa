package transcribe

import "errors"

// ErrorKind tags why processing an upload failed.
type ErrorKind string

const (
	// KindBadRequest means the upload itself was unusable.
	KindBadRequest ErrorKind = "bad_request"
	// KindInternal covers every failure while saving or transcribing.
	KindInternal ErrorKind = "internal"
)

var (
	ErrNoFilePart     = errors.New("No file part")
	ErrNoSelectedFile = errors.New("No selected file")
)

// Result is the outcome of processing one upload: either a transcript or a
// tagged error, never both.
type Result struct {
	Transcript string
	Kind       ErrorKind
	Err        error
}

// OK reports whether the result holds a transcript.
func (r Result) OK() bool {
	return r.Err == nil
}

// Success builds a successful result.
func Success(transcript string) Result {
	return Result{Transcript: transcript}
}

// Failure builds a tagged error result.
func Failure(kind ErrorKind, err error) Result {
	return Result{Kind: kind, Err: err}
}
