// Package blurhash implements the BlurHash placeholder codec: a few DCT
// components of an image, quantized and packed into a short base-83
// string, and the inverse reconstruction at any resolution.
//
// Design:
//   - Wire-compatible with other BlurHash implementations: alphabet,
//     field widths and quantization constants are fixed.
//   - Pure functions: every call allocates its own buffers, nothing is
//     shared except read-only tables built at init.
//   - Pixels are linearized once per call and cosines are tabulated per
//     frequency, so the DCT is a multiply-add loop.
package blurhash

import "math"

// MaxComponents is the largest component count per axis.
const MaxComponents = 9

// EncodedLen returns the hash length for an x×y component grid.
func EncodedLen(x, y int) int {
	return 4 + 2*x*y
}

// Encode computes the hash of a row-major RGBA pixel buffer using
// componentsX×componentsY DCT components.  Alpha is ignored.
func Encode(pixels []byte, width, height, componentsX, componentsY int) (string, error) {
	if componentsX < 1 || componentsX > MaxComponents ||
		componentsY < 1 || componentsY > MaxComponents {
		return "", ComponentNumberOutbound
	}
	if width < 0 || height < 0 || len(pixels) != width*height*4 {
		return "", PixelArrayMismatch
	}

	factors := analyze(pixels, width, height, componentsX, componentsY)
	dc := factors[0]
	ac := factors[1:]

	hash := make([]byte, 0, EncodedLen(componentsX, componentsY))
	hash = appendBase83(hash, (componentsX-1)+(componentsY-1)*9, 1)

	maxValue := 1.0
	if len(ac) > 0 {
		var actualMax float64
		for _, f := range ac {
			for _, v := range f {
				actualMax = math.Max(actualMax, math.Abs(v))
			}
		}
		quantMax := int(clamp(math.Floor(actualMax*166-0.5), 0, 82))
		maxValue = float64(quantMax+1) / 166
		hash = appendBase83(hash, quantMax, 1)
	} else {
		hash = appendBase83(hash, 0, 1)
	}

	hash = appendBase83(hash, encodeDC(dc), 4)
	for _, f := range ac {
		hash = appendBase83(hash, encodeAC(f, maxValue), 2)
	}
	return string(hash), nil
}

// ─── forward DCT ───────────────────────────────────────────────

// analyze projects the image onto every basis function, DC first,
// then AC terms in row-major (i + j*componentsX) order.
func analyze(pixels []byte, width, height, componentsX, componentsY int) [][3]float64 {
	factors := make([][3]float64, componentsX*componentsY)
	count := width * height
	if count == 0 {
		return factors
	}

	// Linearize once; the same samples feed every component.
	lin := make([]float64, count*3)
	for p := 0; p < count; p++ {
		lin[p*3] = srgbToLinear(pixels[p*4])
		lin[p*3+1] = srgbToLinear(pixels[p*4+1])
		lin[p*3+2] = srgbToLinear(pixels[p*4+2])
	}

	cosX := make([]float64, componentsX*width)
	for i := 0; i < componentsX; i++ {
		for x := 0; x < width; x++ {
			cosX[i*width+x] = math.Cos(math.Pi * float64(i) * float64(x) / float64(width))
		}
	}
	cosY := make([]float64, componentsY*height)
	for j := 0; j < componentsY; j++ {
		for y := 0; y < height; y++ {
			cosY[j*height+y] = math.Cos(math.Pi * float64(j) * float64(y) / float64(height))
		}
	}

	for j := 0; j < componentsY; j++ {
		for i := 0; i < componentsX; i++ {
			normalisation := 2.0
			if i == 0 && j == 0 {
				normalisation = 1
			}

			var r, g, b float64
			for y := 0; y < height; y++ {
				fy := cosY[j*height+y]
				row := y * width * 3
				for x := 0; x < width; x++ {
					basis := cosX[i*width+x] * fy
					off := row + x*3
					r += basis * lin[off]
					g += basis * lin[off+1]
					b += basis * lin[off+2]
				}
			}

			scale := normalisation / float64(count)
			factors[i+j*componentsX] = [3]float64{r * scale, g * scale, b * scale}
		}
	}
	return factors
}

// ─── quantization ──────────────────────────────────────────────

func encodeDC(c [3]float64) int {
	return linearToSRGB(c[0])<<16 | linearToSRGB(c[1])<<8 | linearToSRGB(c[2])
}

func encodeAC(c [3]float64, maxValue float64) int {
	var q [3]int
	for i, v := range c {
		q[i] = int(math.Floor(clamp(signPow(v/maxValue, 0.5)*9+9.5, 0, 18)))
	}
	return q[0]*19*19 + q[1]*19 + q[2]
}
