package main

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/captionbox/pkg/adapters/fontstore"
	"github.com/user/captionbox/pkg/mocks"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 60, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRender_WritesCaptionedImage(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "in.png")
	boxesPath := filepath.Join(dir, "boxes.yaml")
	outPath := filepath.Join(dir, "out", "result.jpg")
	debugDir := filepath.Join(dir, "debug")
	summaryPath := filepath.Join(dir, "reports", "summary.md")

	writeTestPNG(t, imgPath)
	boxes := "- text: Top text\n  x: 10\n  y: 10\n  w: 180\n  h: 30\n  font: impact\n- text: bottom\n  x: 10\n  y: 60\n  w: 180\n  h: 30\n  color: yellow\n"
	if err := os.WriteFile(boxesPath, []byte(boxes), 0644); err != nil {
		t.Fatal(err)
	}

	args := []string{"captionbox", "render", "--quiet",
		"-i", imgPath, "-b", boxesPath, "-o", outPath,
		"--debug", "--debug-dir", debugDir, "--summary", summaryPath}
	if err := newApp().Run(args); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a JPEG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("unexpected size %v", b)
	}

	for _, name := range []string{"input.png", "layout.json", "output.png"} {
		if _, err := os.Stat(filepath.Join(debugDir, name)); err != nil {
			t.Errorf("expected debug file %s: %v", name, err)
		}
	}

	report, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	for _, want := range []string{"# Caption Summary", "| 0 | impact |", "| 1 | arial |", "200x100"} {
		if !strings.Contains(string(report), want) {
			t.Errorf("summary missing %q:\n%s", want, report)
		}
	}
}

func TestRender_UnknownFontFails(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "in.png")
	boxesPath := filepath.Join(dir, "boxes.json")
	outPath := filepath.Join(dir, "out.png")

	writeTestPNG(t, imgPath)
	if err := os.WriteFile(boxesPath, []byte(`[{"text":"x","x":0,"y":0,"w":10,"h":10,"font":"wingdings"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	err := newApp().Run([]string{"captionbox", "render", "--quiet", "-i", imgPath, "-b", boxesPath, "-o", outPath})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("expected no output file")
	}
}

func TestReadBoxes(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("boxes.json", []byte(`[{"text":"hi","x":1,"y":2,"w":3,"h":4,"fontsize":12,"border":"red"}]`))
	fs.AddFile("boxes.yml", []byte("- text: hi\n  w: 3\n  h: 4\n  font: Impact\n"))
	fs.AddFile("empty.yaml", []byte(""))
	fs.AddFile("bad.json", []byte(`{"text": "not a list"}`))

	boxes, err := readBoxes(fs, "boxes.json")
	if err != nil {
		t.Fatalf("readBoxes json failed: %v", err)
	}
	if len(boxes) != 1 || boxes[0].FontSize == nil || *boxes[0].FontSize != 12 || boxes[0].Border != "red" || boxes[0].Y != 2 {
		t.Errorf("unexpected boxes %+v", boxes)
	}

	boxes, err = readBoxes(fs, "boxes.yml")
	if err != nil {
		t.Fatalf("readBoxes yaml failed: %v", err)
	}
	if len(boxes) != 1 || boxes[0].Font != "Impact" || boxes[0].FontSize != nil {
		t.Errorf("unexpected boxes %+v", boxes)
	}

	for _, path := range []string{"empty.yaml", "bad.json", "missing.json"} {
		if _, err := readBoxes(fs, path); err == nil {
			t.Errorf("readBoxes(%s): expected error", path)
		}
	}
}

func TestReadSource(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("in.png", []byte("png"))

	got, err := readSource(fs, "https://example.com/in.png")
	if err != nil || got != "https://example.com/in.png" {
		t.Errorf("URL should pass through, got %q, %v", got, err)
	}

	got, err = readSource(fs, "in.png")
	if err != nil {
		t.Fatalf("readSource failed: %v", err)
	}
	if got != base64.StdEncoding.EncodeToString([]byte("png")) {
		t.Errorf("unexpected encoding %q", got)
	}

	if _, err := readSource(fs, "missing.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"out.png":  "png",
		"out.JPG":  "jpeg",
		"out.jpeg": "jpeg",
		"out":      "png",
	}
	for path, want := range tests {
		if got := formatFromPath(path); got != want {
			t.Errorf("formatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestPrintFonts(t *testing.T) {
	arial, _ := fontstore.Embedded("arial", "goregular")
	impact, _ := fontstore.Embedded("impact", "gobold")

	var buf bytes.Buffer
	if err := printFonts(&buf, fontstore.New(impact, arial)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "arial") || !strings.HasSuffix(lines[1], "embedded:gobold") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
