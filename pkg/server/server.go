// Package server exposes the caption pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/user/captionbox/pkg/caption"
	"github.com/user/captionbox/pkg/orchestrator"
	"github.com/user/captionbox/pkg/pipeline"
	"github.com/user/captionbox/pkg/ports"
	"github.com/user/captionbox/pkg/stages/encode"
	"github.com/user/captionbox/pkg/stages/overlay"
)

// Runner executes one caption request.
type Runner interface {
	Run(ctx context.Context, req orchestrator.Request) (orchestrator.RunResult, error)
}

// Options configures the HTTP server.
type Options struct {
	Addr            string
	BodyLimit       string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server serves POST / and GET /healthz.
type Server struct {
	echo   *echo.Echo
	runner Runner
	fonts  ports.FontLookup
	opts   Options
	logger ports.Logger
}

// CaptionRequest is the JSON body of POST /.
type CaptionRequest struct {
	Img         string             `json:"img"`
	Boxes       []pipeline.BoxSpec `json:"boxes"`
	ImageFormat string             `json:"image_format,omitempty"`
}

// ImageResponse is returned for base64 output formats.
type ImageResponse struct {
	Img string `json:"img"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string   `json:"status"`
	Fonts  []string `json:"fonts"`
}

// New creates a Server. fonts is used to reject unknown selectors before
// the source image is fetched.
func New(runner Runner, fonts ports.FontLookup, opts Options, logger ports.Logger) *Server {
	s := &Server{
		echo:   echo.New(),
		runner: runner,
		fonts:  fonts,
		opts:   opts,
		logger: logger.WithComponent("server"),
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			s.logger.Error("Panic recovered: %s", err)
			return err
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		HandleError: true,
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("%s %s -> %d (%d ms)", v.Method, v.URI, v.Status, v.Latency.Milliseconds())
			return nil
		},
	}))
	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}

	e.POST("/", s.handleCaption)
	e.GET("/healthz", s.handleHealth)

	return s
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.echo.Server.ReadTimeout = s.opts.ReadTimeout
	s.echo.Server.WriteTimeout = s.opts.WriteTimeout

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(s.opts.Addr)
	}()
	s.logger.Info("Listening on %s", s.opts.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}

func (s *Server) handleCaption(c echo.Context) error {
	var req CaptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body.").SetInternal(err)
	}
	if err := s.validate(req); err != nil {
		return err
	}

	result, err := s.runner.Run(c.Request().Context(), orchestrator.Request{
		Image:  req.Img,
		Boxes:  req.Boxes,
		Format: req.ImageFormat,
	})
	if err != nil {
		return err
	}

	out := result.Output
	if out.Base64 {
		return c.JSON(http.StatusOK, ImageResponse{Img: string(out.Data)})
	}
	return c.Blob(http.StatusOK, out.ContentType(), out.Data)
}

// validate rejects requests that would fail after the image is loaded.
func (s *Server) validate(req CaptionRequest) error {
	if strings.TrimSpace(req.Img) == "" {
		return pipeline.Invalid("Field 'img' is required.", nil)
	}
	if req.Boxes == nil {
		return pipeline.Invalid("Field 'boxes' is required.", nil)
	}
	if _, err := encode.ParseOutput(req.ImageFormat, ports.FormatUnknown); err != nil {
		return err
	}
	for i, box := range req.Boxes {
		name := overlay.NormalizeFont(box.Font)
		if _, ok := s.fonts.Font(name); !ok {
			return &caption.UnknownFontError{Index: i, Font: name}
		}
	}
	return nil
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Fonts: s.fonts.Names()})
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, detail := s.classify(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("Request failed: %s", err)
	} else {
		s.logger.Debug("Request rejected: %s", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{Detail: detail})
	}
	if err != nil {
		s.logger.Error("Request failed: %s", err)
	}
}

// classify maps an error to a status code and the detail shown to callers.
func (s *Server) classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}
	if errors.Is(err, caption.ErrUnknownFont) {
		return http.StatusBadRequest, s.unsupportedFontDetail()
	}
	var reqErr *pipeline.RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, reqErr.Detail
	}
	return http.StatusInternalServerError, err.Error()
}

func (s *Server) unsupportedFontDetail() string {
	names := s.fonts.Names()
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "'" + name + "'"
	}
	switch len(quoted) {
	case 0:
		return "Unsupported font."
	case 1:
		return fmt.Sprintf("Unsupported font. Use %s.", quoted[0])
	default:
		return fmt.Sprintf("Unsupported font. Use %s or %s.",
			strings.Join(quoted[:len(quoted)-1], ", "), quoted[len(quoted)-1])
	}
}
