package vision

import (
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"

	"github.com/vovakirdan/wavepilot/internal/perception"
)

// applyColorFilter keeps only pixels close to the filter's target color,
// rendering them black on a white background, the contrast Tesseract likes
// best. Game HUD counters sit on busy, animated backgrounds; isolating the
// known text color beats any global threshold there.
func applyColorFilter(src *image.RGBA, f perception.ColorFilter) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)

	tr, tg, tb := float64(f.R), float64(f.G), float64(f.B)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := src.PixOffset(x, y)
			dr := float64(src.Pix[i]) - tr
			dg := float64(src.Pix[i+1]) - tg
			db := float64(src.Pix[i+2]) - tb
			dist := math.Sqrt(dr*dr + dg*dg + db*db)
			if dist <= f.Tolerance {
				dst.SetGray(x, y, color.Gray{Y: 0})
			} else {
				dst.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return dst
}

// upscale enlarges an image by an integer factor. HUD counters are a handful
// of pixels tall; recognition accuracy on them improves sharply with size.
func upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	return resize.Resize(uint(b.Dx()*factor), uint(b.Dy()*factor), img, resize.Lanczos3)
}
