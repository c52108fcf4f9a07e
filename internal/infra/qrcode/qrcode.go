// Package qrcode renders payment deep links as scannable PNG images.
package qrcode

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the pixel width of generated images.
const DefaultSize = 256

// Generator renders QR PNGs at a fixed size.
type Generator struct {
	size int
}

// New returns a Generator. A non-positive size selects DefaultSize.
func New(size int) *Generator {
	if size <= 0 {
		size = DefaultSize
	}
	return &Generator{size: size}
}

// Image encodes the payload into a PNG QR code.
func (g *Generator) Image(payload string) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty payload")
	}
	png, err := qr.Encode(payload, qr.Medium, g.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
