package handlers

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"memoboard/application/services"
	"memoboard/pkg/common"
	pkgerrors "memoboard/pkg/errors"
)

// ImageFormField is the multipart field carrying the upload
const ImageFormField = "image"

// ImageHandler converts uploaded images into data URIs
type ImageHandler struct {
	intake *services.ImageIntake
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewImageHandler creates a new image handler
func NewImageHandler(intake *services.ImageIntake, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{intake: intake, errors: errorHandler, logger: logger}
}

// ImageResponse carries the accepted image
type ImageResponse struct {
	Image    string `json:"image"`
	MimeType string `json:"mimeType"`
}

// UploadImage handles POST /images. The part is streamed into the intake
// so oversized uploads are never buffered whole.
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	reader, err := r.MultipartReader()
	if err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("expected a multipart/form-data upload"))
		return
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			h.errors.Handle(w, r, pkgerrors.NewValidationError("malformed multipart body"))
			return
		}

		if part.FormName() != ImageFormField {
			part.Close()
			continue
		}

		image, err := h.intake.AcceptReader(part)
		part.Close()
		if err != nil {
			h.errors.Handle(w, r, err)
			return
		}

		common.RespondJSON(w, http.StatusOK, ImageResponse{
			Image:    image.DataURI(),
			MimeType: image.MimeType(),
		})
		return
	}

	h.errors.Handle(w, r, pkgerrors.NewValidationError("missing form field \"image\""))
}
