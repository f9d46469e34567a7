package export

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// encodePDF writes a single page the size of img (1px = 1pt) with the
// image placed over the whole page.
func encodePDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	wd, ht := float64(max(b.Dx(), 1)), float64(max(b.Dy(), 1))

	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	p.SetCreator("scribble", true)
	p.SetTitle("Drawing", true)
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	if !b.Empty() {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return err
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		p.RegisterImageOptionsReader("canvas", opts, &buf)
		p.ImageOptions("canvas", 0, 0, wd, ht, false, opts, 0, "")
	}
	return p.Output(w)
}
