package handlers

import (
	"context"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"whisper-server/internal/api/dto"
	"whisper-server/internal/api/errors"
	"whisper-server/internal/api/middleware"
	"whisper-server/internal/app/transcribe"
)

// FileField is the multipart field the audio file is expected in.
const FileField = "file"

// TranscriptionService processes one uploaded file.
type TranscriptionService interface {
	Process(ctx context.Context, upload transcribe.Upload) transcribe.Result
}

// TranscribeHandler handles the transcription endpoint
type TranscribeHandler struct {
	service TranscriptionService
}

// NewTranscribeHandler creates a new transcribe handler
func NewTranscribeHandler(service TranscriptionService) *TranscribeHandler {
	return &TranscribeHandler{service: service}
}

// Transcribe handles POST /transcribe
//
// @Summary Transcribe an audio file
// @Description Uploads one audio file and returns its transcript. The file is not validated; whatever the model cannot decode fails with 500.
// @Tags transcription
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file to transcribe"
// @Success 200 {object} dto.TranscriptionResponse "Transcript"
// @Failure 400 {object} errors.APIError "No file part, or no selected file"
// @Failure 500 {object} errors.APIError "Saving or transcribing the upload failed"
// @Router /transcribe [post]
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	upload := transcribe.Upload{}

	// The file part is streamed straight into the service; the rest of the
	// body is never read.
	if part := findFilePart(c.Request); part != nil {
		defer part.Close()
		upload.Filename = part.FileName()
		upload.Content = part
	}

	result := h.service.Process(c.Request.Context(), upload)
	if !result.OK() {
		middleware.HandleError(c, toAPIError(result))
		return
	}

	c.JSON(http.StatusOK, dto.TranscriptionResponse{Transcription: result.Transcript})
}

// findFilePart returns the first part named FileField that carries a filename
// parameter, even an empty one. Parts without one are plain form values.
// A body that is not multipart, or is malformed, has no file part.
func findFilePart(r *http.Request) *multipart.Part {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			return nil
		}
		if part.FormName() == FileField && hasFilename(part) {
			return part
		}
		part.Close()
	}
}

func hasFilename(part *multipart.Part) bool {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return false
	}
	_, ok := params["filename"]
	return ok
}

func toAPIError(result transcribe.Result) *errors.APIError {
	if result.Kind == transcribe.KindBadRequest {
		return errors.NewBadRequestError(result.Err.Error())
	}
	return errors.NewTranscriptionError(result.Err)
}
