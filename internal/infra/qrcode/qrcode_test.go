package qrcode

import (
	"bytes"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestImageProducesPNG(t *testing.T) {
	gen := New(0)
	img, err := gen.Image("upi://pay?pa=haripg@upi&pn=Hari%20PG%20Hostel&am=4000&cu=INR")
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatalf("output is not a PNG: % x", img[:8])
	}
}

func TestImageRejectsEmptyPayload(t *testing.T) {
	if _, err := New(128).Image(""); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
