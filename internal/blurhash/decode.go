package blurhash

import (
	"fmt"
	"math"
)

// ─── public API ────────────────────────────────────────────────

// Decode reconstructs a width×height RGBA image from hash.
// The returned buffer is row-major with stride width*4 and is owned by
// the caller.
func Decode(hash string, width, height int) ([]byte, error) {
	return DecodePunch(hash, width, height, 1)
}

// DecodePunch is Decode with an AC contrast multiplier.  A punch of 1
// reproduces Decode exactly; values above 1 exaggerate the gradients.
// Non-positive or non-finite punch values are treated as 1.
func DecodePunch(hash string, width, height int, punch float64) ([]byte, error) {
	if width < 0 || height < 0 {
		return nil, InvalidDimensions
	}
	if width != 0 && height > math.MaxInt/4/width {
		return nil, InvalidDimensions
	}
	if !(punch > 0) || math.IsInf(punch, 0) {
		punch = 1
	}

	h, err := parse(hash, punch)
	if err != nil {
		return nil, err
	}

	pixels := make([]byte, width*height*4)
	h.synthesize(pixels, width, height)
	return pixels, nil
}

// Components returns the component grid declared by hash.
func Components(hash string) (x, y int, err error) {
	if len(hash) < 6 {
		return 0, 0, InvalidLength
	}
	x, y, err = sizeFlag(hash)
	if err != nil {
		return 0, 0, err
	}
	if len(hash) != EncodedLen(x, y) {
		return 0, 0, LengthMismatch
	}
	return x, y, nil
}

// AverageColor returns the DC term of hash as sRGB bytes.
func AverageColor(hash string) ([3]uint8, error) {
	if _, _, err := Components(hash); err != nil {
		return [3]uint8{}, err
	}
	v, err := decode83(hash[2:6])
	if err != nil {
		return [3]uint8{}, offsetErr(err, 2)
	}
	return [3]uint8{uint8(min(v>>16, 255)), uint8(v >> 8), uint8(v)}, nil
}

// Validate runs every check Decode performs without producing pixels.
func Validate(hash string) error {
	_, err := parse(hash, 1)
	return err
}

// ─── parsing ───────────────────────────────────────────────────

// header is a dequantized hash: numX*numY linear colors, DC first.
type header struct {
	numX, numY int
	colors     [][3]float64
}

func sizeFlag(hash string) (int, int, error) {
	flag, err := decode83(hash[:1])
	if err != nil {
		return 0, 0, err
	}
	return flag%9 + 1, flag/9 + 1, nil
}

func parse(hash string, punch float64) (*header, error) {
	if len(hash) < 6 {
		return nil, InvalidLength
	}

	numX, numY, err := sizeFlag(hash)
	if err != nil {
		return nil, err
	}
	if len(hash) != EncodedLen(numX, numY) {
		return nil, LengthMismatch
	}

	quantMax, err := decode83(hash[1:2])
	if err != nil {
		return nil, offsetErr(err, 1)
	}
	maxValue := float64(quantMax+1) / 166

	colors := make([][3]float64, numX*numY)

	dc, err := decode83(hash[2:6])
	if err != nil {
		return nil, offsetErr(err, 2)
	}
	colors[0] = decodeDC(dc)

	for i := 1; i < len(colors); i++ {
		off := 4 + i*2
		v, err := decode83(hash[off : off+2])
		if err != nil {
			return nil, offsetErr(err, off)
		}
		colors[i] = decodeAC(v, maxValue*punch)
	}

	return &header{numX: numX, numY: numY, colors: colors}, nil
}

func decodeDC(v int) [3]float64 {
	return [3]float64{
		srgbIntToLinear(v >> 16),
		srgbToLinear(uint8(v >> 8)),
		srgbToLinear(uint8(v)),
	}
}

func decodeAC(v int, maxValue float64) [3]float64 {
	q := [3]float64{
		math.Floor(float64(v) / (19 * 19)),
		math.Mod(math.Floor(float64(v)/19), 19),
		math.Mod(float64(v), 19),
	}
	for i := range q {
		q[i] = signPow((q[i]-9)/9, 2) * maxValue
	}
	return q
}

// offsetErr shifts the offset reported by decode83 to a position in the
// whole hash.
func offsetErr(err error, base int) error {
	if base == 0 {
		return err
	}
	return fmt.Errorf("%w (field at offset %d)", err, base)
}

// ─── inverse DCT ───────────────────────────────────────────────

func (h *header) synthesize(pixels []byte, width, height int) {
	if width == 0 || height == 0 {
		return
	}

	// Pre-computed cosine tables, one row per frequency.
	cosX := make([]float64, h.numX*width)
	for i := 0; i < h.numX; i++ {
		for x := 0; x < width; x++ {
			cosX[i*width+x] = math.Cos(math.Pi * float64(x) * float64(i) / float64(width))
		}
	}
	cosY := make([]float64, h.numY*height)
	for j := 0; j < h.numY; j++ {
		for y := 0; y < height; y++ {
			cosY[j*height+y] = math.Cos(math.Pi * float64(y) * float64(j) / float64(height))
		}
	}

	stride := width * 4
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b float64
			for j := 0; j < h.numY; j++ {
				fy := cosY[j*height+y]
				for i := 0; i < h.numX; i++ {
					basis := cosX[i*width+x] * fy
					c := &h.colors[i+j*h.numX]
					r += c[0] * basis
					g += c[1] * basis
					b += c[2] * basis
				}
			}

			off := y*stride + x*4
			pixels[off] = uint8(linearToSRGB(r))
			pixels[off+1] = uint8(linearToSRGB(g))
			pixels[off+2] = uint8(linearToSRGB(b))
			pixels[off+3] = 255
		}
	}
}
