package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"

	"github.com/disintegration/imaging"
)

// DefaultReceiptWidth is the printable width of an 80mm thermal printer at 203 dpi
const DefaultReceiptWidth = 576

// OptimizeReceipt prepares a receipt screenshot for a thermal printer.
// The image is scaled down to width (aspect ratio kept), converted to
// grayscale and re-encoded as PNG. Narrower images are not upscaled.
func OptimizeReceipt(imageData []byte, width int) ([]byte, error) {
	if width <= 0 {
		width = DefaultReceiptWidth
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 OptimizeReceipt: format=%s, bounds=%v", format, img.Bounds())

	var out image.Image = img
	if img.Bounds().Dx() > width {
		out = imaging.Resize(img, width, 0, imaging.Lanczos)
		log.Printf("🔄 OptimizeReceipt: Resized %dx%d -> %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy(), out.Bounds().Dx(), out.Bounds().Dy())
	}
	out = imaging.Grayscale(out)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode to PNG: %w", err)
	}

	log.Printf("✓ OptimizeReceipt: output_size=%d bytes", buf.Len())
	return buf.Bytes(), nil
}
