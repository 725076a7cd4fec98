package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnknownFormat = errors.New("unknown image format")
	ErrTooManyPixels = errors.New("image dimensions exceed limit")
	ErrDecode        = errors.New("failed to decode image")
	ErrEncode        = errors.New("failed to encode image")
)

// Format names reported by Sniff.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatWebP = "webp"
)

// Info is what Sniff learns from the header alone.
type Info struct {
	Format string
	Width  int
	Height int
}

// Sniff identifies the format from magic bytes and reads the dimensions
// without decoding pixel data.
func Sniff(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Info{}, ErrUnknownFormat
		}
		return Info{}, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
