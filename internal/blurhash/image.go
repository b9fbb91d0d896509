package blurhash

import (
	"image"

	"github.com/disintegration/imaging"
)

// EncodeImage encodes any image.Image.  The image is first flattened to
// a tightly packed NRGBA buffer so the pixel layout matches Encode.
func EncodeImage(img image.Image, componentsX, componentsY int) (string, error) {
	var nrgba *image.NRGBA
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == n.Rect.Dx()*4 && len(n.Pix) == n.Stride*n.Rect.Dy() {
		nrgba = n
	} else {
		nrgba = imaging.Clone(img)
	}
	b := nrgba.Bounds()
	return Encode(nrgba.Pix, b.Dx(), b.Dy(), componentsX, componentsY)
}

// DecodeImage is Decode returning an *image.NRGBA backed by the pixels.
func DecodeImage(hash string, width, height int) (*image.NRGBA, error) {
	return DecodeImagePunch(hash, width, height, 1)
}

// DecodeImagePunch is DecodePunch returning an *image.NRGBA.
func DecodeImagePunch(hash string, width, height int, punch float64) (*image.NRGBA, error) {
	pix, err := DecodePunch(hash, width, height, punch)
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}
