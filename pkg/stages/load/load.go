// Package load implements the source image stage: it fetches or decodes the
// caller's image and converts it to an RGBA canvas.
package load

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/user/captionbox/pkg/pipeline"
	"github.com/user/captionbox/pkg/ports"
)

// urlPattern accepts http(s) URLs whose host is a domain name, localhost
// or a dotted IPv4 address.
var urlPattern = regexp.MustCompile(
	`^(https?://)` +
		`(([A-Za-z0-9-]+\.)+[A-Za-z]{2,6}` +
		`|localhost` +
		`|\d{1,3}(\.\d{1,3}){3})` +
		`(:\d+)?` +
		`(/.*)?$`)

var schemePattern = regexp.MustCompile(`^https?://`)

// Messages returned to callers.
const (
	MsgInvalidSource = "The 'img' field must be a valid URL or a base64-encoded image string."
	MsgFetchFailed   = "Error fetching image from URL"
	MsgUnidentified  = "Unable to identify the image from the URL"
	MsgInvalidBase64 = "Invalid base64 image data."
	MsgUnsupported   = "Unsupported image format. Only PNG and JPEG are supported."
)

// IsURL reports whether source is accepted as an image URL.
func IsURL(source string) bool {
	return urlPattern.MatchString(source)
}

// Stage loads the source image of a request.
type Stage struct {
	fetcher  ports.ImageFetcher
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new load stage.
func NewStage(fetcher ports.ImageFetcher, renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		fetcher:  fetcher,
		renderer: renderer,
		logger:   logger.WithComponent("load"),
	}
}

// Execute fetches or decodes input.Source. Every failure caused by the
// source itself matches pipeline.ErrInvalidRequest.
func (s *Stage) Execute(ctx context.Context, input pipeline.LoadInput) (pipeline.LoadResult, error) {
	result := pipeline.LoadResult{}
	source := strings.TrimSpace(input.Source)

	var (
		data      []byte
		err       error
		fromURL   bool
		decodeMsg = MsgInvalidBase64
	)
	switch {
	case IsURL(source):
		fromURL = true
		decodeMsg = MsgUnidentified
		s.logger.Info("Fetching image from %s", source)
		data, err = s.fetcher.Fetch(ctx, source)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			return result, pipeline.Invalid(fmt.Sprintf("%s: %s", MsgFetchFailed, err), err)
		}
	case schemePattern.MatchString(source):
		return result, pipeline.Invalid(MsgInvalidSource, nil)
	default:
		data, err = DecodeBase64(source)
		if err != nil {
			return result, pipeline.Invalid(MsgInvalidBase64, err)
		}
		s.logger.Debug("Decoding base64 image (%d bytes)", len(data))
	}

	img, format, err := s.renderer.DecodeImage(data)
	if err != nil {
		if errors.Is(err, ports.ErrUnsupportedFormat) {
			return result, pipeline.Invalid(MsgUnsupported, err)
		}
		return result, pipeline.Invalid(decodeMsg, err)
	}

	result.Image = s.renderer.ToRGBA(img)
	result.Format = format
	b := result.Image.Bounds()
	s.logger.Info("Image decoded: %dx%d %s", b.Dx(), b.Dy(), format)
	if fromURL {
		s.logger.Debug("Fetched %d bytes", len(data))
	}

	return result, nil
}

// DecodeBase64 decodes standard or URL-safe base64, padded or not, after
// stripping an optional data: URI prefix and embedded whitespace.
func DecodeBase64(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, errors.New("empty image data")
	}

	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	var firstErr error
	for _, enc := range encodings {
		data, err := enc.DecodeString(s)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
