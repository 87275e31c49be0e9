package services

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Resize policy applied to every ingested image.
const (
	DefaultMaxWidth  = 700
	DefaultMaxHeight = 700
	DefaultQuality   = 90

	// ResizedContentType is the output format of every re-encode. When a
	// resize happens the downstream content type is forced to this value
	// regardless of what the source declared.
	ResizedContentType = "image/jpeg"
)

// ProcessOptions bound the output image.
type ProcessOptions struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// DefaultProcessOptions returns the policy used by all ingestion callers.
func DefaultProcessOptions() ProcessOptions {
	return ProcessOptions{MaxWidth: DefaultMaxWidth, MaxHeight: DefaultMaxHeight, Quality: DefaultQuality}
}

// ProcessedImage is the transform result. When WasResized is false, Data is
// the input buffer untouched.
type ProcessedImage struct {
	Data           []byte
	Width          int
	Height         int
	OriginalWidth  int
	OriginalHeight int
	WasResized     bool
}

// ImageProcessor decodes, inspects and conditionally downsamples images.
type ImageProcessor interface {
	Process(data []byte, opts ProcessOptions) (*ProcessedImage, error)
}

type imagingProcessor struct{}

func NewImageProcessor() ImageProcessor {
	return &imagingProcessor{}
}

// Process returns the input unchanged when it already fits the bounding box.
// Oversized images are resized to fit, preserving aspect ratio and never
// upscaling, then re-encoded as JPEG at the requested quality.
func (p *imagingProcessor) Process(data []byte, opts ProcessOptions) (*ProcessedImage, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= opts.MaxWidth && height <= opts.MaxHeight {
		return &ProcessedImage{
			Data:           data,
			Width:          width,
			Height:         height,
			OriginalWidth:  width,
			OriginalHeight: height,
			WasResized:     false,
		}, nil
	}

	resized := imaging.Fit(img, opts.MaxWidth, opts.MaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(opts.Quality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	rb := resized.Bounds()
	return &ProcessedImage{
		Data:           buf.Bytes(),
		Width:          rb.Dx(),
		Height:         rb.Dy(),
		OriginalWidth:  width,
		OriginalHeight: height,
		WasResized:     true,
	}, nil
}
