package valueobjects

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const dataURIPrefix = "data:"

// Image is an inline image attachment encoded as a data URI
type Image struct {
	mimeType string
	dataURI  string
}

// NewImage encodes raw bytes of the given MIME type as a data URI
func NewImage(mimeType string, data []byte) (Image, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return Image{}, fmt.Errorf("unsupported image type %q", mimeType)
	}
	if len(data) == 0 {
		return Image{}, errors.New("image data cannot be empty")
	}
	uri := dataURIPrefix + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	return Image{mimeType: mimeType, dataURI: uri}, nil
}

// ImageFromDataURI parses a stored data URI. An empty string yields the zero Image.
func ImageFromDataURI(uri string) (Image, error) {
	if uri == "" {
		return Image{}, nil
	}
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return Image{}, errors.New("image must be a data URI")
	}
	header, _, ok := strings.Cut(strings.TrimPrefix(uri, dataURIPrefix), ",")
	if !ok {
		return Image{}, errors.New("malformed data URI")
	}
	mimeType, _, _ := strings.Cut(header, ";")
	return Image{mimeType: mimeType, dataURI: uri}, nil
}

// DecodeDataURI returns the declared media type and decoded payload of a
// base64 data URI
func DecodeDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return "", nil, errors.New("image must be a data URI")
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, dataURIPrefix), ",")
	if !ok {
		return "", nil, errors.New("malformed data URI")
	}
	mimeType, params, _ := strings.Cut(header, ";")
	if !strings.HasSuffix(params, "base64") {
		return "", nil, errors.New("image data URI must be base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("malformed image data: %w", err)
	}
	return mimeType, data, nil
}

// MimeType returns the media type of the image
func (i Image) MimeType() string {
	return i.mimeType
}

// DataURI returns the encoded image, or "" when absent
func (i Image) DataURI() string {
	return i.dataURI
}

// IsZero reports whether no image is attached
func (i Image) IsZero() bool {
	return i.dataURI == ""
}
