package export

import (
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

var (
	captionFont     *truetype.Font
	captionFontErr  error
	captionFontOnce sync.Once
)

func loadCaptionFont() (*truetype.Font, error) {
	captionFontOnce.Do(func() {
		captionFont, captionFontErr = truetype.Parse(goregular.TTF)
	})
	return captionFont, captionFontErr
}

// CaptionFace returns a font face for captions at the given pixel size
func CaptionFace(size float64) (font.Face, error) {
	f, err := loadCaptionFont()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// DrawCaption writes text into the bottom left corner of img on a
// translucent backing strip. The size scales with the image height.
func DrawCaption(img *image.RGBA, text string, textColor color.Color) error {
	if text == "" {
		return nil
	}

	bounds := img.Bounds()
	size := max(12, float64(bounds.Dy())/40)
	face, err := CaptionFace(size)
	if err != nil {
		return err
	}
	defer face.Close()

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := metrics.Height.Ceil()
	padding := height / 3

	advance := font.MeasureString(face, text)
	strip := image.Rect(
		bounds.Min.X,
		bounds.Max.Y-height-2*padding,
		min(bounds.Max.X, bounds.Min.X+advance.Ceil()+2*padding),
		bounds.Max.Y,
	)
	draw.Draw(img, strip, image.NewUniform(color.RGBA{0, 0, 0, 128}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(bounds.Min.X + padding),
			Y: fixed.I(bounds.Max.Y - padding - height + ascent),
		},
	}
	d.DrawString(text)
	return nil
}
