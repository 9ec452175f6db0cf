package load

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/user/captionbox/pkg/adapters/ggrenderer"
	"github.com/user/captionbox/pkg/adapters/logger"
	"github.com/user/captionbox/pkg/mocks"
	"github.com/user/captionbox/pkg/pipeline"
	"github.com/user/captionbox/pkg/ports"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodeGIF(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := gif.Encode(&buf, testImage(), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newStage(fetcher ports.ImageFetcher) *Stage {
	return NewStage(fetcher, ggrenderer.New(), logger.NewNoop())
}

func TestStage_Execute_Base64(t *testing.T) {
	pngData := encodePNG(t)
	jpegData := encodeJPEG(t)

	tests := []struct {
		name   string
		source string
		format ports.ImageFormat
	}{
		{"std png", base64.StdEncoding.EncodeToString(pngData), ports.FormatPNG},
		{"raw std png", base64.RawStdEncoding.EncodeToString(pngData), ports.FormatPNG},
		{"url-safe jpeg", base64.URLEncoding.EncodeToString(jpegData), ports.FormatJPEG},
		{"data uri", "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData), ports.FormatPNG},
		{"wrapped lines", wrap(base64.StdEncoding.EncodeToString(jpegData), 60), ports.FormatJPEG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := mocks.NewImageFetcher(nil)
			result, err := newStage(fetcher).Execute(context.Background(), pipeline.LoadInput{Source: tt.source})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Format != tt.format {
				t.Errorf("expected format %s, got %s", tt.format, result.Format)
			}
			if b := result.Image.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Errorf("expected 8x6 image, got %v", b)
			}
			if len(fetcher.Requested) != 0 {
				t.Error("expected no fetch for base64 input")
			}
		})
	}
}

func wrap(s string, n int) string {
	var out []byte
	for i := 0; i < len(s); i += n {
		end := i + n
		if end > len(s) {
			end = len(s)
		}
		out = append(out, s[i:end]...)
		out = append(out, '\n')
	}
	return string(out)
}

func TestStage_Execute_URL(t *testing.T) {
	const src = "https://images.example.com/cat.png"
	fetcher := mocks.NewImageFetcher(map[string][]byte{src: encodePNG(t)})

	result, err := newStage(fetcher).Execute(context.Background(), pipeline.LoadInput{Source: src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Format != ports.FormatPNG {
		t.Errorf("expected png, got %s", result.Format)
	}
	if len(fetcher.Requested) != 1 || fetcher.Requested[0] != src {
		t.Errorf("unexpected fetches: %v", fetcher.Requested)
	}

	r, g, b, _ := result.Image.At(3, 3).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
		t.Errorf("unexpected pixel (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestStage_Execute_Errors(t *testing.T) {
	gifData := encodeGIF(t)
	fetcher := mocks.NewImageFetcher(map[string][]byte{
		"http://localhost:8080/anim.gif": gifData,
		"http://10.0.0.1/garbage":        []byte("<html>not an image</html>"),
	})

	tests := []struct {
		name   string
		source string
		detail string
	}{
		{"fetch failure", "https://example.com/missing.png", MsgFetchFailed},
		{"url with unsupported format", "http://localhost:8080/anim.gif", MsgUnsupported},
		{"url with garbage", "http://10.0.0.1/garbage", MsgUnidentified},
		{"malformed url", "https://exa mple/", MsgInvalidSource},
		{"invalid base64", "!!!not base64!!!", MsgInvalidBase64},
		{"empty", "", MsgInvalidBase64},
		{"base64 garbage", base64.StdEncoding.EncodeToString([]byte("hello")), MsgInvalidBase64},
		{"base64 gif", base64.StdEncoding.EncodeToString(gifData), MsgUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newStage(fetcher).Execute(context.Background(), pipeline.LoadInput{Source: tt.source})
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, pipeline.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
			var reqErr *pipeline.RequestError
			if !errors.As(err, &reqErr) || !strings.HasPrefix(reqErr.Detail, tt.detail) {
				t.Errorf("expected detail %q, got %v", tt.detail, err)
			}
		})
	}
}

func TestStage_Execute_Canceled(t *testing.T) {
	fetcher := &mocks.ImageFetcher{
		FetchFunc: func(ctx context.Context, rawURL string) ([]byte, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newStage(fetcher).Execute(ctx, pipeline.LoadInput{Source: "https://example.com/a.png"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, pipeline.ErrInvalidRequest) {
		t.Error("cancellation must not be reported as a client error")
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"https://example.com/a.png", true},
		{"http://localhost:8000", true},
		{"http://192.168.1.10:3000/img.jpg", true},
		{"ftp://example.com/a.png", false},
		{"https://", false},
		{"iVBORw0KGgo=", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.source); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}
