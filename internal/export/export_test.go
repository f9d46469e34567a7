package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 5))
	img.SetNRGBA(2, 3, color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff})
	return img
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"PNG": PNG, ".tif": TIFF, "tiff": TIFF, "bmp": BMP, "pdf": PDF} {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("gif: err = %v", err)
	}
	if got := FormatForPath("out/drawing.bmp", PNG); got != BMP {
		t.Errorf("FormatForPath = %v", got)
	}
	if got := FormatForPath("drawing", PDF); got != PDF {
		t.Errorf("FormatForPath fallback = %v", got)
	}
}

func TestRasterFormatsDecode(t *testing.T) {
	img := sample()
	decoders := map[Format]func([]byte) (image.Image, error){
		PNG:  func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) },
		BMP:  func(b []byte) (image.Image, error) { return bmp.Decode(bytes.NewReader(b)) },
		TIFF: func(b []byte) (image.Image, error) { return tiff.Decode(bytes.NewReader(b)) },
	}
	for f, decode := range decoders {
		t.Run(string(f), func(t *testing.T) {
			data, err := Bytes(img, f)
			if err != nil {
				t.Fatal(err)
			}
			got, err := decode(data)
			if err != nil {
				t.Fatal(err)
			}
			if got.Bounds() != img.Bounds() {
				t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
			}
		})
	}
}

func TestPDF(t *testing.T) {
	data, err := Bytes(sample(), PDF)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("missing PDF header: %q", data[:min(len(data), 8)])
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "practice-canvas.png")
	n, err := WriteFile(path, sample(), PNG)
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if int(info.Size()) != n {
		t.Errorf("size = %d, reported %d", info.Size(), n)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestCopyDataURL(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWrite = orig }()

	n, err := CopyDataURL(sample())
	if err != nil {
		t.Fatal(err)
	}
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(copied, prefix) || n != len(copied) {
		t.Fatalf("copied %d bytes: %.40q", n, copied)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(copied, prefix))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Errorf("data URL is not a PNG: %v", err)
	}
}
