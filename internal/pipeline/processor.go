package pipeline

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/AdamHavlicek/blurhash/internal/blurhash"
	"github.com/AdamHavlicek/blurhash/internal/encoder"
	"github.com/AdamHavlicek/blurhash/internal/hasher"
	"github.com/AdamHavlicek/blurhash/internal/manifest"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// processImage handles a single source image: hash, decode, downscale,
// encode, and optionally write decoded previews.
func processImage(src Source, cfg Config, registry *encoder.Registry) processResult {
	result := processResult{key: src.Key}

	contentHash, err := hasher.SumFile(src.AbsPath, 16)
	if err != nil {
		result.err = err
		return result
	}

	img, err := decodeFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW == 0 || origH == 0 {
		result.err = fmt.Errorf("decode %s: empty image", src.RelPath)
		return result
	}

	cx, cy := cfg.Profile.Components(origW, origH)
	hash, err := blurhash.EncodeImage(Downscale(img, cfg.Profile.MaxDim), cx, cy)
	if err != nil {
		result.err = fmt.Errorf("blurhash %s: %w", src.RelPath, err)
		return result
	}
	avg, err := blurhash.AverageColor(hash)
	if err != nil {
		result.err = fmt.Errorf("blurhash %s: %w", src.RelPath, err)
		return result
	}

	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:       origW,
			Height:      origH,
			Format:      src.Format,
			Size:        src.Size,
			HasAlpha:    HasAlpha(img),
			ContentHash: contentHash,
		},
		BlurHash:    hash,
		ComponentsX: cx,
		ComponentsY: cy,
		AspectRatio: float64(origW) / float64(origH),
		AvgColor:    &avg,
	}

	if !cfg.Previews {
		return result
	}

	previews, err := writePreviews(src, hash, origW, origH, cfg, registry)
	if err != nil {
		result.err = err
		return result
	}
	result.asset.Previews = previews
	return result
}

// decodeFile opens and decodes any registered image format.
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// Downscale shrinks img so its longer edge is at most maxDim, using a box
// filter. The DCT only keeps a handful of frequencies, so this changes
// the hash very little and makes encoding cost independent of the
// source resolution. maxDim <= 0 leaves the image untouched.
func Downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	if maxDim <= 0 || (b.Dx() <= maxDim && b.Dy() <= maxDim) {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Box)
}

// writePreviews decodes hash at preview size and writes one
// content-addressed file per format: key.w.h.hash8.ext.
func writePreviews(src Source, hash string, origW, origH int, cfg Config, registry *encoder.Registry) ([]manifest.Preview, error) {
	w, h := cfg.Profile.PreviewSize(origW, origH)
	if w == 0 || h == 0 {
		return nil, nil
	}

	placeholder, err := blurhash.DecodeImagePunch(hash, w, h, cfg.Profile.Punch)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", src.Key, err)
	}

	keyDir := filepath.Dir(filepath.FromSlash(src.Key))
	if err := os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755); err != nil {
		return nil, fmt.Errorf("create dir for %s: %w", src.Key, err)
	}

	var previews []manifest.Preview
	for _, format := range registry.ResolveFormats(cfg.Profile.Formats) {
		enc := registry.Get(format)

		data, err := enc.Encode(placeholder, cfg.Quality)
		if err != nil {
			if cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[blurhash] warn: encode preview %s as %s: %v\n", src.Key, format, err)
			}
			continue
		}

		contentHash := hasher.Sum(data, 16)
		fileName := fmt.Sprintf("%s.%d.%d.%s.%s",
			filepath.Base(src.Key), w, h, contentHash[:8], enc.Extension())
		relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

		if err := os.WriteFile(filepath.Join(cfg.OutputDir, relPath), data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", relPath, err)
		}

		previews = append(previews, manifest.Preview{
			Format: format,
			Width:  w,
			Height: h,
			Size:   int64(len(data)),
			Hash:   contentHash,
			Path:   relPath,
		})
	}
	return previews, nil
}

// HasAlpha reports whether any pixel is less than fully opaque.
func HasAlpha(img image.Image) bool {
	switch src := img.(type) {
	case *image.NRGBA:
		return anyBelowOpaque(src.Pix)
	case *image.RGBA:
		return anyBelowOpaque(src.Pix)
	case *image.YCbCr, *image.Gray:
		return false
	default:
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a < 0xffff {
					return true
				}
			}
		}
		return false
	}
}

func anyBelowOpaque(pix []byte) bool {
	for i := 3; i < len(pix); i += 4 {
		if pix[i] < 255 {
			return true
		}
	}
	return false
}
