package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/usecase/video"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
	"github.com/SharmaTechie/video-stream-platform/internal/validation"
)

// parts above this size are spooled to temporary files by the multipart parser
const multipartMemory = 32 << 20

type UploadVideoRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=5000"`
	Visibility  string `json:"visibility" validate:"omitempty,oneof=public unlisted private"`
	OwnerID     string `json:"owner_id" validate:"required,uuid"`
}

type UploadVideoResponse struct {
	ID uuid.UUID `json:"id"`
}

func UploadVideoHandler(svc port.VideoUploader, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxUploadBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		}
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				WriteError(w, r, http.StatusRequestEntityTooLarge, "Upload too large", nil)
				return
			}
			WriteError(w, r, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid multipart form: %w", err))
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		req := UploadVideoRequest{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Visibility:  r.FormValue("visibility"),
			OwnerID:     r.FormValue("owner_id"),
		}
		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, r, http.StatusInternalServerError, "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", err))
				return
			}

			RespondRawJSON(w, r, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}
		ownerID, err := uuid.Parse(req.OwnerID)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, "Invalid request", err)
			return
		}

		videoFile, videoHeader, err := r.FormFile("video")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				WriteError(w, r, http.StatusBadRequest, "Missing required fields", nil)
				return
			}
			WriteError(w, r, http.StatusBadRequest, "Invalid request", err)
			return
		}
		defer videoFile.Close()

		in := port.UploadVideoInput{
			Title:       req.Title,
			Description: req.Description,
			Visibility:  req.Visibility,
			OwnerID:     ownerID,
			Video:       fileInput(videoFile, videoHeader),
		}

		thumbFile, thumbHeader, err := r.FormFile("thumbnail")
		switch {
		case err == nil:
			defer thumbFile.Close()
			thumb := fileInput(thumbFile, thumbHeader)
			in.Thumbnail = &thumb
		case !errors.Is(err, http.ErrMissingFile):
			WriteError(w, r, http.StatusBadRequest, "Invalid request", err)
			return
		}

		id, err := svc.UploadVideo(r.Context(), in)
		if err != nil {
			if errors.Is(err, video.ErrInvalidThumbnail) {
				WriteError(w, r, http.StatusBadRequest, "Invalid thumbnail", err)
				return
			}
			WriteError(w, r, http.StatusInternalServerError, "Failed to upload video", err)
			return
		}

		RespondJSON(w, r, http.StatusCreated, UploadVideoResponse{ID: id})
		logger.Infof(r.Context(), "✅  Successfully uploaded video #%s", id)
	}
}

func fileInput(f multipart.File, h *multipart.FileHeader) port.FileInput {
	return port.FileInput{
		Name:        h.Filename,
		ContentType: h.Header.Get("Content-Type"),
		Reader:      f,
	}
}
