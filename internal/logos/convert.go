package logos

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/rotisserie/eris"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ToPNG re-encodes image bytes as PNG. Transparency survives only when the
// source is already a PNG; other formats are composited onto white.
func ToPNG(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrap(err, "decode image")
	}

	if format != "png" {
		bounds := img.Bounds()
		flattened := image.NewRGBA(bounds)
		draw.Draw(flattened, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
		draw.Draw(flattened, bounds, img, bounds.Min, draw.Over)
		img = flattened
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, eris.Wrap(err, "encode png")
	}
	return buf.Bytes(), nil
}
