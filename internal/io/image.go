package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService prepares downloaded cover art for ID3 embedding.
//
// Example usage:
//
//	svc := NewImageService()
//	cover, _ := svc.PrepareCover(ctx, rawImage, 400)
//	// cover is JPEG-encoded, at most 400px on the long edge
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// PrepareCover normalizes cover art to an embeddable JPEG.
//
// The image is decoded (JPEG or PNG), downscaled so its longer edge does
// not exceed maxSize while preserving the aspect ratio, and re-encoded as
// JPEG at 90% quality. Images already within bounds are re-encoded without
// scaling, which keeps the embedded frame format predictable for players.
//
// Parameters:
//   - ctx: Context for cancellation (currently unused)
//   - data: Original image data
//   - maxSize: Maximum edge length in pixels; values <= 0 disable scaling
//
// The Catmull-Rom algorithm is used for high-quality downscaling.
func (s *ImageService) PrepareCover(ctx context.Context, data []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if maxSize > 0 && (width > maxSize || height > maxSize) {
		ratio := float64(width) / float64(height)
		if width >= height {
			width = maxSize
			height = int(float64(maxSize) / ratio)
		} else {
			height = maxSize
			width = int(float64(maxSize) * ratio)
		}
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
