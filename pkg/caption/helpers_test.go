package caption

import (
	"testing"

	"golang.org/x/image/font"

	"github.com/user/captionbox/pkg/adapters/fontstore"
)

func testFonts(t *testing.T) *fontstore.Store {
	t.Helper()
	arial, err := fontstore.Embedded("arial", "goregular")
	if err != nil {
		t.Fatalf("load arial: %v", err)
	}
	impact, err := fontstore.Embedded("impact", "gobold")
	if err != nil {
		t.Fatalf("load impact: %v", err)
	}
	return fontstore.New(arial, impact)
}

func testFace(t *testing.T, fonts *fontstore.Store, name string, size int) font.Face {
	t.Helper()
	res, ok := fonts.Font(name)
	if !ok {
		t.Fatalf("font %s not loaded", name)
	}
	face, err := res.Face(size)
	if err != nil {
		t.Fatalf("face %s at %d: %v", name, size, err)
	}
	return face
}
