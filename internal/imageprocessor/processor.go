// Package imageprocessor validates uploaded payloads before they reach
// storage. Registered decoders cover the formats the API accepts.
package imageprocessor

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
)

var ErrNotAnImage = fmt.Errorf("payload is not a decodable image")

// ImageInfo describes a validated upload.
type ImageInfo struct {
	Format string // jpeg, png, gif
	Width  int
	Height int
}

// Validate decodes the payload header and rejects anything that is not an
// image. It consumes the reader; callers re-open the upload for storage.
func Validate(reader io.Reader) (*ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(reader)
	if err != nil {
		return nil, ErrNotAnImage
	}

	return &ImageInfo{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// ExtensionFor maps a decoded format to a canonical file extension, used when
// the client filename carries none.
func ExtensionFor(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	default:
		return ""
	}
}
