package surface

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

// Snapshot is a pixel-exact copy of a surface buffer.
type Snapshot struct {
	Width  int
	Height int
	Pix    []uint8 // row-major NRGBA, stride Width*4
}

// Snapshot copies the current buffer.
func (s *Surface) Snapshot() Snapshot {
	w, h := s.Width(), s.Height()
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		copy(pix[y*w*4:(y+1)*w*4], s.img.Pix[y*s.img.Stride:])
	}
	return Snapshot{Width: w, Height: h, Pix: pix}
}

func (sn Snapshot) valid() error {
	if sn.Width < 0 || sn.Height < 0 {
		return &DecodeError{Reason: fmt.Sprintf("negative size %dx%d", sn.Width, sn.Height)}
	}
	if len(sn.Pix) != sn.Width*sn.Height*4 {
		return &DecodeError{Reason: fmt.Sprintf("%d bytes for %dx%d pixels", len(sn.Pix), sn.Width, sn.Height)}
	}
	return nil
}

// Image wraps the snapshot pixels without copying.
func (sn Snapshot) Image() *image.NRGBA {
	return &image.NRGBA{Pix: sn.Pix, Stride: sn.Width * 4, Rect: image.Rect(0, 0, sn.Width, sn.Height)}
}

// Restore overwrites the buffer with sn. A snapshot of a different size is
// drawn at the origin over a cleared buffer, clipped. Malformed snapshots
// return *DecodeError and leave the surface unchanged.
func (s *Surface) Restore(sn Snapshot) error {
	if err := sn.valid(); err != nil {
		return err
	}
	if sn.Width == s.Width() && sn.Height == s.Height() && s.img.Stride == sn.Width*4 {
		copy(s.img.Pix, sn.Pix)
		return nil
	}
	s.Clear()
	copyAtOrigin(s.img, sn.Image())
	return nil
}

// Codec turns snapshots into history entry bytes and back.
type Codec interface {
	Name() string
	Encode(Snapshot) ([]byte, error)
	Decode([]byte) (Snapshot, error)
}

// CodecByName returns the codec registered as "raw" or "png".
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "raw":
		return RawCodec{}, nil
	case "png":
		return PNGCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown snapshot codec %q", name)
	}
}

var rawMagic = [4]byte{'S', 'C', 'R', 'B'}

const rawHeaderLen = 12

// RawCodec stores a 12-byte header (magic, width, height) followed by the
// pixel bytes.
type RawCodec struct{}

func (RawCodec) Name() string { return "raw" }

func (RawCodec) Encode(sn Snapshot) ([]byte, error) {
	if err := sn.valid(); err != nil {
		return nil, err
	}
	out := make([]byte, rawHeaderLen+len(sn.Pix))
	copy(out, rawMagic[:])
	binary.BigEndian.PutUint32(out[4:], uint32(sn.Width))
	binary.BigEndian.PutUint32(out[8:], uint32(sn.Height))
	copy(out[rawHeaderLen:], sn.Pix)
	return out, nil
}

func (RawCodec) Decode(data []byte) (Snapshot, error) {
	if len(data) < rawHeaderLen || !bytes.Equal(data[:4], rawMagic[:]) {
		return Snapshot{}, &DecodeError{Reason: "missing raw header"}
	}
	w := int(binary.BigEndian.Uint32(data[4:]))
	h := int(binary.BigEndian.Uint32(data[8:]))
	sn := Snapshot{Width: w, Height: h, Pix: data[rawHeaderLen:]}
	if err := sn.valid(); err != nil {
		return Snapshot{}, err
	}
	sn.Pix = bytes.Clone(sn.Pix)
	return sn, nil
}

// PNGCodec stores snapshots as PNG images. Smaller in memory than RawCodec
// at the cost of encode time on every commit.
type PNGCodec struct{}

func (PNGCodec) Name() string { return "png" }

func (PNGCodec) Encode(sn Snapshot) ([]byte, error) {
	if err := sn.valid(); err != nil {
		return nil, err
	}
	if sn.Width == 0 || sn.Height == 0 {
		// PNG cannot describe an empty image.
		return RawCodec{}.Encode(sn)
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, sn.Image()); err != nil {
		return nil, fmt.Errorf("encode png snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

func (PNGCodec) Decode(data []byte) (Snapshot, error) {
	if len(data) >= 4 && bytes.Equal(data[:4], rawMagic[:]) {
		return RawCodec{}.Decode(data)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return Snapshot{}, &DecodeError{Reason: "png", Err: err}
	}
	return snapshotOf(img), nil
}

// snapshotOf converts any image to a snapshot anchored at the origin.
func snapshotOf(img image.Image) Snapshot {
	b := img.Bounds()
	sn := Snapshot{Width: b.Dx(), Height: b.Dy(), Pix: make([]uint8, b.Dx()*b.Dy()*4)}
	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < sn.Height; y++ {
			copy(sn.Pix[y*sn.Width*4:(y+1)*sn.Width*4], n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return sn
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			sn.Pix[i], sn.Pix[i+1], sn.Pix[i+2], sn.Pix[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
	return sn
}
