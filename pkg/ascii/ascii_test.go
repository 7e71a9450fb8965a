package ascii

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.sr.ht/~sbinet/gg"
)

func solid(w, h int, r, g, b float64) image.Image {
	dc := gg.NewContext(w, h)
	dc.SetRGB(r, g, b)
	dc.Clear()
	return dc.Image()
}

func TestCharIndex(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{0, 0},
		{255, len(Ramp) - 1},
		{127.5, 6},
		{-10, 0},
		{300, len(Ramp) - 1},
	}
	for _, tt := range tests {
		if got := charIndex(tt.v); got != tt.want {
			t.Errorf("charIndex(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestConvert_SolidColors(t *testing.T) {
	black := Convert(solid(20, 10, 0, 0, 0), Options{Width: 10})
	for _, line := range strings.Split(black, "\n") {
		if strings.Trim(line, " ") != "" {
			t.Fatalf("black image should map to spaces, got %q", line)
		}
	}

	white := Convert(solid(20, 10, 1, 1, 1), Options{Width: 10})
	for _, line := range strings.Split(white, "\n") {
		if strings.Trim(line, "@") != "" {
			t.Fatalf("white image should map to @, got %q", line)
		}
	}
}

func TestConvert_KeepsAspectRatio(t *testing.T) {
	art := Convert(solid(200, 100, 1, 1, 1), Options{})
	lines := strings.Split(art, "\n")
	if len(lines) != 40 {
		t.Errorf("expected 40 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if len(l) != DefaultWidth {
			t.Fatalf("expected width %d, got %d", DefaultWidth, len(l))
		}
	}
}

func TestConvert_HalfAndHalf(t *testing.T) {
	dc := gg.NewContext(100, 20)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(50, 0, 50, 20)
	dc.Fill()

	art := Convert(dc.Image(), Options{Width: 20})
	first := strings.Split(art, "\n")[0]
	if first[0] != ' ' {
		t.Errorf("left edge should be dark, got %q", first[0])
	}
	if first[len(first)-1] != '@' {
		t.Errorf("right edge should be bright, got %q", first[len(first)-1])
	}
}

func TestConvert_Normalize(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 2))
	for x := 0; x < 10; x++ {
		c := uint8(100)
		if x >= 5 {
			c = 150
		}
		img.SetGray(x, 0, color.Gray{Y: c})
		img.SetGray(x, 1, color.Gray{Y: c})
	}

	plain := Convert(img, Options{Width: 10})
	if strings.ContainsAny(plain, " @") {
		t.Errorf("mid-gray image should not hit ramp ends without normalize: %q", plain)
	}

	stretched := Convert(img, Options{Width: 10, Normalize: true})
	if !strings.Contains(stretched, " ") || !strings.Contains(stretched, "@") {
		t.Errorf("normalized image should span the ramp: %q", stretched)
	}
}

func TestConvert_EmptyImage(t *testing.T) {
	if got := Convert(image.NewGray(image.Rect(0, 0, 0, 0)), Options{}); got != "" {
		t.Errorf("expected empty art, got %q", got)
	}
}

func TestSupported(t *testing.T) {
	for _, p := range []string{"a.png", "b.JPG", "c.jpeg", "d.gif", "e.webp", "f.bmp"} {
		if !Supported(p) {
			t.Errorf("%s should be supported", p)
		}
	}
	for _, p := range []string{"a.svg", "b.tiff", "noext"} {
		if Supported(p) {
			t.Errorf("%s should not be supported", p)
		}
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "logo.png")
	dc := gg.NewContext(40, 20)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	if err := dc.SavePNG(pngPath); err != nil {
		t.Fatal(err)
	}

	art, err := ConvertFile(pngPath, Options{Width: 8})
	if err != nil {
		t.Fatalf("ConvertFile: %v", err)
	}
	if !strings.HasPrefix(art, "@@@@@@@@") {
		t.Errorf("unexpected art %q", art)
	}

	if _, err := ConvertFile(filepath.Join(dir, "diagram.svg"), Options{}); err == nil {
		t.Error("expected unsupported type error")
	}

	broken := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(broken, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ConvertFile(broken, Options{}); err == nil {
		t.Error("expected decode error")
	}
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSVG(&buf, " .:\n@#$", SVGOptions{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Error("missing svg root")
	}
	if got := strings.Count(out, "<text"); got != 2 {
		t.Errorf("expected 2 text rows, got %d", got)
	}
	if !strings.Contains(out, `xml:space="preserve"`) {
		t.Error("rows should preserve spaces")
	}

	if !strings.Contains(out, "font-family:monospace;font-size:12px") {
		t.Errorf("default font style missing:\n%s", out)
	}

	buf.Reset()
	if err := RenderSVG(&buf, "@@", SVGOptions{FontSize: 16, FontFamily: "Fira Code"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "font-family:'Fira Code',monospace;font-size:16px") {
		t.Errorf("font options not applied:\n%s", buf.String())
	}

	if err := RenderSVG(&buf, "", SVGOptions{}); err == nil {
		t.Error("expected error for empty art")
	}
}
