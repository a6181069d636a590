package tray

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// IconSize is the edge length of the tray icon in pixels.
const IconSize = 64

// LoadIcon decodes the image at path and scales it to IconSize.
func LoadIcon(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", path, err)
	}
	return resize(src, IconSize), nil
}

func resize(src image.Image, size int) image.Image {
	if b := src.Bounds(); b.Dx() == size && b.Dy() == size {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// FallbackIcon is a blue square with white top-right and bottom-left quadrants.
func FallbackIcon() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, IconSize, IconSize))
	blue := color.NRGBA{R: 0x00, G: 0x78, B: 0xd4, A: 0xff}
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	half := IconSize / 2
	for y := 0; y < IconSize; y++ {
		for x := 0; x < IconSize; x++ {
			c := blue
			if (x >= half && y < half) || (x < half && y >= half) {
				c = white
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// IconPNG returns the PNG-encoded icon from path, or the fallback when path
// is empty or unreadable. The error reports why the fallback was used.
func IconPNG(path string) ([]byte, error) {
	var (
		img     image.Image
		loadErr error
	)
	if path != "" {
		img, loadErr = LoadIcon(path)
	} else {
		loadErr = fmt.Errorf("no icon path configured")
	}
	if img == nil {
		img = FallbackIcon()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode icon: %w", err)
	}
	return buf.Bytes(), loadErr
}
