package blurhash

import "math"

// srgbTable caches srgbToLinear for every byte value.
var srgbTable [256]float64

func init() {
	for i := range srgbTable {
		srgbTable[i] = srgbCurve(float64(i) / 255)
	}
}

func srgbCurve(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// srgbToLinear converts an 8-bit sRGB sample to linear light in [0, 1].
func srgbToLinear(b uint8) float64 {
	return srgbTable[b]
}

// srgbIntToLinear is srgbToLinear for samples that may exceed one byte.
// The top channel of a DC field is unmasked, so values above 255 map
// past 1 and clamp to white on output.
func srgbIntToLinear(v int) float64 {
	if v >= 0 && v <= 255 {
		return srgbTable[v]
	}
	return srgbCurve(float64(v) / 255)
}

// linearToSRGB converts linear light back to an 8-bit sRGB sample.
// The +0.5 bias followed by truncation is part of the wire format;
// math.Round would produce different DC fields.
func linearToSRGB(value float64) int {
	v := clamp(value, 0, 1)
	if v <= 0.0031308 {
		return int(v*12.92*255 + 0.5)
	}
	return int((1.055*math.Pow(v, 1/2.4)-0.055)*255 + 0.5)
}

// signPow raises |v| to exp and restores the sign of v.
func signPow(v, exp float64) float64 {
	return math.Copysign(math.Pow(math.Abs(v), exp), v)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
