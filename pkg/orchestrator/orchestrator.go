// Package orchestrator coordinates the stages of a caption request.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/user/captionbox/pkg/caption"
	"github.com/user/captionbox/pkg/pipeline"
	"github.com/user/captionbox/pkg/ports"
)

// Request is one caption job.
type Request struct {
	// Image is an http(s) URL or base64 image data.
	Image string
	Boxes []pipeline.BoxSpec
	// Format is the requested output format; empty means base64 in the
	// source format.
	Format string
}

// Orchestrator runs load, caption and encode in order.
type Orchestrator struct {
	loadStage    pipeline.Stage[pipeline.LoadInput, pipeline.LoadResult]
	captionStage pipeline.Stage[pipeline.CaptionInput, pipeline.CaptionResult]
	encodeStage  pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	sink         ports.DebugSink
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	loadStage pipeline.Stage[pipeline.LoadInput, pipeline.LoadResult],
	captionStage pipeline.Stage[pipeline.CaptionInput, pipeline.CaptionResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		loadStage:    loadStage,
		captionStage: captionStage,
		encodeStage:  encodeStage,
		sink:         sink,
		logger:       logger.WithComponent("orchestrator"),
	}
}

// Run executes the complete pipeline for req. Stage errors are wrapped
// but keep their identity for errors.Is and errors.As.
func (o *Orchestrator) Run(ctx context.Context, req Request) (RunResult, error) {
	start := time.Now()
	o.logger.Debug("Processing request with %d boxes", len(req.Boxes))

	// 1. Load source image
	loaded, err := o.loadStage.Execute(ctx, pipeline.LoadInput{Source: req.Image})
	if err != nil {
		o.logger.Warn("Failed to load image: %s", err)
		return RunResult{}, fmt.Errorf("load stage: %w", err)
	}
	if o.sink.Enabled() {
		if err := o.sink.SaveInput(loaded.Image); err != nil {
			o.logger.Debug("Debug output failed: %s", err)
		}
	}

	// 2. Paint captions
	captioned, err := o.captionStage.Execute(ctx, pipeline.CaptionInput{
		Canvas: loaded.Image,
		Boxes:  req.Boxes,
	})
	if err != nil {
		o.logger.Warn("Failed to render captions: %s", err)
		return RunResult{}, fmt.Errorf("caption stage: %w", err)
	}
	if o.sink.Enabled() {
		o.saveDebug(captioned)
	}

	// 3. Encode
	encoded, err := o.encodeStage.Execute(ctx, pipeline.EncodeInput{
		Image:        captioned.Image,
		Format:       req.Format,
		SourceFormat: loaded.Format,
	})
	if err != nil {
		o.logger.Warn("Failed to encode image: %s", err)
		return RunResult{}, fmt.Errorf("encode stage: %w", err)
	}

	b := captioned.Image.Bounds()
	result := RunResult{
		Output:       encoded,
		SourceFormat: loaded.Format,
		Width:        b.Dx(),
		Height:       b.Dy(),
		Layouts:      captioned.Layouts,
		Duration:     time.Since(start),
	}
	o.logger.Debug("Request completed")
	return result, nil
}

func (o *Orchestrator) saveDebug(captioned pipeline.CaptionResult) {
	if data, err := json.MarshalIndent(captioned.Layouts, "", "  "); err == nil {
		if err := o.sink.SaveLayoutJSON(data); err != nil {
			o.logger.Debug("Debug output failed: %s", err)
		}
	}
	if err := o.sink.SaveOutput(captioned.Image); err != nil {
		o.logger.Debug("Debug output failed: %s", err)
	}
}

// RunResult is the outcome of a successful run.
type RunResult struct {
	Output       pipeline.EncodeResult
	SourceFormat ports.ImageFormat
	Width        int
	Height       int
	Layouts      []caption.Layout
	Duration     time.Duration
}
