package ggrenderer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/user/captionbox/pkg/ports"
)

func filled(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderer_EncodeDecodeJPEG(t *testing.T) {
	r := New()

	img := filled(50, 50, color.RGBA{R: 255, A: 255})

	data, err := r.EncodeImage(img, ports.FormatJPEG, 80)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty data")
	}

	decoded, format, err := r.DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if format != ports.FormatJPEG {
		t.Errorf("expected jpeg, got %s", format)
	}

	bounds := decoded.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("expected 50x50, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_EncodeDecodePNG(t *testing.T) {
	r := New()

	img := image.NewRGBA(image.Rect(0, 0, 30, 30))

	data, err := r.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	decoded, format, err := r.DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if format != ports.FormatPNG {
		t.Errorf("expected png, got %s", format)
	}

	bounds := decoded.Bounds()
	if bounds.Dx() != 30 || bounds.Dy() != 30 {
		t.Errorf("expected 30x30, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_DecodeRejectsGIF(t *testing.T) {
	r := New()

	var buf bytes.Buffer
	pal := image.NewPaletted(image.Rect(0, 0, 4, 4), []color.Color{color.Black, color.White})
	if err := gif.Encode(&buf, pal, nil); err != nil {
		t.Fatalf("gif.Encode failed: %v", err)
	}

	_, _, err := r.DecodeImage(buf.Bytes())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRenderer_DecodeGarbage(t *testing.T) {
	r := New()

	if _, _, err := r.DecodeImage([]byte("not an image")); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestRenderer_EncodeJPEGFlattensAlpha(t *testing.T) {
	r := New()

	// Fully transparent input comes out white rather than black.
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	data, err := r.EncodeImage(img, ports.FormatJPEG, 95)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	decoded, _, err := r.DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	red, green, blue, _ := decoded.At(8, 8).RGBA()
	if red < 0xf000 || green < 0xf000 || blue < 0xf000 {
		t.Errorf("expected near-white pixel, got %d %d %d", red>>8, green>>8, blue>>8)
	}
}

func TestRenderer_ToRGBA_ResetsOrigin(t *testing.T) {
	r := New()

	src := filled(40, 40, color.RGBA{G: 255, A: 255})
	sub := src.SubImage(image.Rect(10, 10, 30, 30))

	rgba := r.ToRGBA(sub)
	if rgba.Bounds() != image.Rect(0, 0, 20, 20) {
		t.Fatalf("expected bounds (0,0)-(20,20), got %v", rgba.Bounds())
	}
	_, green, _, _ := rgba.At(0, 0).RGBA()
	if green == 0 {
		t.Error("expected green pixel at origin")
	}
}

func TestCanvas_DrawString_PaintsInPlace(t *testing.T) {
	r := New()
	img := filled(200, 50, color.White)

	canvas := r.NewCanvas(img)
	canvas.DrawString("Hello World", 10, 30, basicfont.Face7x13, color.Black)

	if canvas.Image() != img {
		t.Fatal("expected canvas to paint into the given image")
	}

	dark := 0
	for y := 15; y < 35; y++ {
		for x := 10; x < 90; x++ {
			red, _, _, _ := img.At(x, y).RGBA()
			if red < 0x8000 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("expected text pixels to be painted")
	}

	red, _, _, _ := img.At(150, 5).RGBA()
	if red != 0xffff {
		t.Error("expected pixels away from the text to stay white")
	}
}
