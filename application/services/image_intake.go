package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"memoboard/application/ports"
	"memoboard/domain/config"
	"memoboard/domain/core/valueobjects"
	pkgerrors "memoboard/pkg/errors"
)

const msgChooseImage = "Please choose an image file"

// ImageIntake turns uploaded files into inline image attachments.
// Oversized and non-image files are reported to the user and rejected.
type ImageIntake struct {
	notifier ports.Notifier
	maxBytes int64
	logger   *zap.Logger
}

// NewImageIntake creates a new image intake service
func NewImageIntake(notifier ports.Notifier, cfg *config.DomainConfig, logger *zap.Logger) *ImageIntake {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &ImageIntake{
		notifier: notifier,
		maxBytes: cfg.MaxImageBytes,
		logger:   logger,
	}
}

// MaxBytes returns the largest accepted file size
func (i *ImageIntake) MaxBytes() int64 {
	return i.maxBytes
}

// Accept validates raw file bytes and encodes them as a data URI. The media
// type is sniffed from the content; whatever the client declared is ignored.
// Rejections are reported to the user.
func (i *ImageIntake) Accept(data []byte) (valueobjects.Image, error) {
	image, err := i.Validate(data)
	if err != nil {
		i.notifier.Notify(err.Error(), ports.SeverityError)
		return valueobjects.Image{}, err
	}
	return image, nil
}

// Validate applies the size and type checks of Accept without notifying
func (i *ImageIntake) Validate(data []byte) (valueobjects.Image, error) {
	if int64(len(data)) > i.maxBytes {
		return i.reject(fmt.Sprintf("Images must be %s or smaller", formatBytes(i.maxBytes)),
			zap.Int("size", len(data)))
	}
	if len(data) == 0 {
		return i.reject(msgChooseImage, zap.Int("size", 0))
	}

	detected := mimetype.Detect(data)
	mimeType, _, _ := strings.Cut(detected.String(), ";")
	if !strings.HasPrefix(mimeType, "image/") {
		return i.reject(msgChooseImage, zap.String("detected", detected.String()))
	}

	image, err := valueobjects.NewImage(mimeType, data)
	if err != nil {
		return valueobjects.Image{}, pkgerrors.NewValidationError(err.Error())
	}

	i.logger.Debug("Image accepted",
		zap.String("mimeType", mimeType),
		zap.Int("size", len(data)),
	)
	return image, nil
}

// ValidateDataURI decodes an already encoded attachment and applies the same
// checks as an upload. An empty uri yields the zero Image.
func (i *ImageIntake) ValidateDataURI(uri string) (valueobjects.Image, error) {
	if uri == "" {
		return valueobjects.Image{}, nil
	}
	_, data, err := valueobjects.DecodeDataURI(uri)
	if err != nil {
		return i.reject(msgChooseImage, zap.Error(err))
	}
	return i.Validate(data)
}

// AcceptReader reads at most one byte past the limit so oversized uploads
// are rejected without buffering them completely.
func (i *ImageIntake) AcceptReader(r io.Reader) (valueobjects.Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, i.maxBytes+1))
	if err != nil {
		return valueobjects.Image{}, pkgerrors.NewInternalError("failed to read image").WithCause(err)
	}
	return i.Accept(data)
}

func (i *ImageIntake) reject(message string, field zap.Field) (valueobjects.Image, error) {
	i.logger.Info("Image rejected", zap.String("reason", message), field)
	return valueobjects.Image{}, pkgerrors.NewValidationError(message)
}

func formatBytes(n int64) string {
	const mib = 1024 * 1024
	if n%mib == 0 {
		return fmt.Sprintf("%dMB", n/mib)
	}
	return fmt.Sprintf("%d bytes", n)
}
