package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/user/captionbox/pkg/adapters/filesink"
	"github.com/user/captionbox/pkg/adapters/fontstore"
	"github.com/user/captionbox/pkg/adapters/ggrenderer"
	"github.com/user/captionbox/pkg/adapters/httpfetcher"
	"github.com/user/captionbox/pkg/adapters/logger"
	"github.com/user/captionbox/pkg/adapters/nullsink"
	"github.com/user/captionbox/pkg/adapters/osfilesystem"
	"github.com/user/captionbox/pkg/caption"
	"github.com/user/captionbox/pkg/config"
	"github.com/user/captionbox/pkg/orchestrator"
	"github.com/user/captionbox/pkg/pipeline"
	"github.com/user/captionbox/pkg/ports"
	"github.com/user/captionbox/pkg/server"
	"github.com/user/captionbox/pkg/stages/encode"
	"github.com/user/captionbox/pkg/stages/load"
	"github.com/user/captionbox/pkg/stages/overlay"
	"github.com/user/captionbox/pkg/summarizer"
)

// env holds what every command needs after flags and config are resolved.
type env struct {
	cfg      config.Config
	log      ports.Logger
	fs       ports.FileSystem
	renderer ports.Renderer
	fonts    *fontstore.Store
}

func setup(c *cli.Context) (*env, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	fs := osfilesystem.New()
	fonts, err := fontstore.Load(cfg.FontSpecs(), fs, log)
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	log.Debug("Fonts loaded: %s", strings.Join(fonts.Names(), ", "))

	return &env{
		cfg:      cfg,
		log:      log,
		fs:       fs,
		renderer: ggrenderer.New(),
		fonts:    fonts,
	}, nil
}

func (e *env) pipeline(fetcher ports.ImageFetcher, sink ports.DebugSink) (*orchestrator.Orchestrator, error) {
	engine := caption.NewEngine(e.fonts, e.renderer, e.log)
	captionStage, err := overlay.NewStage(engine, e.cfg.Fonts, e.log)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(
		load.NewStage(fetcher, e.renderer, e.log),
		captionStage,
		encode.NewStage(e.renderer, e.cfg.Output.JPEGQuality, e.log),
		sink,
		e.log,
	), nil
}

func runServe(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	if c.IsSet("addr") {
		e.cfg.Server.Addr = c.String("addr")
	}
	if c.Bool("allow-private") {
		e.cfg.Fetch.AllowPrivate = true
	}

	orch, err := e.pipeline(httpfetcher.New(e.cfg.FetchOptions()), nullsink.New())
	if err != nil {
		return err
	}

	srv := server.New(orch, e.fonts, server.Options{
		Addr:            e.cfg.Server.Addr,
		BodyLimit:       e.cfg.Server.BodyLimit,
		ReadTimeout:     time.Duration(e.cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout:    time.Duration(e.cfg.Server.WriteTimeoutMs) * time.Millisecond,
		ShutdownTimeout: time.Duration(e.cfg.Server.ShutdownTimeoutMs) * time.Millisecond,
	}, e.log)
	return srv.Start(c.Context)
}

func runRender(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}

	source, err := readSource(e.fs, c.String("image"))
	if err != nil {
		return err
	}
	boxes, err := readBoxes(e.fs, c.String("boxes"))
	if err != nil {
		return err
	}
	output := c.String("output")
	format := c.String("format")
	if format == "" {
		format = formatFromPath(output)
	}

	var sink ports.DebugSink = nullsink.New()
	if c.Bool("debug") {
		dir := e.cfg.DebugDir
		if c.IsSet("debug-dir") {
			dir = c.String("debug-dir")
		}
		sink = filesink.New(dir, e.fs, e.renderer)
	}

	fetchOpts := e.cfg.FetchOptions()
	fetchOpts.AllowPrivate = fetchOpts.AllowPrivate || c.Bool("allow-private")
	orch, err := e.pipeline(httpfetcher.New(fetchOpts), sink)
	if err != nil {
		return err
	}

	req := orchestrator.Request{
		Image:  source,
		Boxes:  boxes,
		Format: format,
	}
	result, err := orch.Run(c.Context, req)
	if err != nil {
		return err
	}

	if err := e.fs.WriteFile(output, result.Output.Data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	e.log.Info("Output saved to %s", output)

	if path := c.String("summary"); path != "" {
		w := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), e.fs)
		if err := w.Write(path, summarizer.FromRun(req, result, output)); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		e.log.Info("Summary saved to %s", path)
	}
	return nil
}

func runFonts(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	return printFonts(c.App.Writer, e.fonts)
}

func printFonts(w io.Writer, fonts *fontstore.Store) error {
	for _, name := range fonts.Names() {
		f, _ := fonts.Lookup(name)
		if _, err := fmt.Fprintf(w, "%-12s %s\n", name, f.Source()); err != nil {
			return err
		}
	}
	return nil
}

// readSource returns src unchanged when it is a URL and the base64 encoded
// file contents otherwise.
func readSource(fs ports.FileSystem, src string) (string, error) {
	if load.IsURL(src) {
		return src, nil
	}
	data, err := fs.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// readBoxes parses a list of boxes from a JSON or YAML file.
func readBoxes(fs ports.FileSystem, path string) ([]pipeline.BoxSpec, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boxes: %w", err)
	}

	var boxes []pipeline.BoxSpec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &boxes)
	default:
		err = yaml.Unmarshal(data, &boxes)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if boxes == nil {
		return nil, fmt.Errorf("no boxes in %s", path)
	}
	return boxes, nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	default:
		return "png"
	}
}
