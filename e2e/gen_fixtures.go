//go:build ignore

// gen_fixtures creates small test images for the `blurhash build` smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(filepath.Join(dir, "cards"), 0o755); err != nil {
		panic(err)
	}

	// Landscape banner (JPEG, 400x225) → 4×3 grid with the default profile.
	write(filepath.Join(dir, "banner.jpg"), gradient(400, 225), "jpeg")

	// Portrait cards (PNG, 150x200) → 3×4 grid.
	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("card-%d.png", i)
		write(filepath.Join(dir, "cards", name), bands(150, 200, uint8(i*60)), "png")
	}

	// Solid square (BMP) → flat placeholder.
	write(filepath.Join(dir, "swatch.bmp"), solid(64, 64, color.NRGBA{R: 30, G: 144, B: 255, A: 255}), "bmp")

	// Alpha image: reported as has_alpha, alpha itself is not hashed.
	write(filepath.Join(dir, "logo.png"), alphaGradient(100, 100), "png")

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

// bands draws horizontal stripes so the vertical components carry detail.
func bands(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
		if (y/25)%2 == 1 {
			c = color.NRGBA{R: 255 - base, G: 240, B: 200, A: 255}
		}
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func write(path string, img image.Image, format string) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	switch format {
	case "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 85})
	case "bmp":
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		panic(err)
	}
}
