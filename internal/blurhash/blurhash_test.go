package blurhash

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

// ─── fixture builders ────────────────────────────────────────

func solidPixels(w, h int, c color.NRGBA) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
	return pix
}

func gradientPixels(w, h int) []byte {
	pix := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix = append(pix,
				uint8(x*255/max(w-1, 1)),
				uint8(y*255/max(h-1, 1)),
				128,
				255,
			)
		}
	}
	return pix
}

const referenceHash = "LUDT3yayV?ay%jWBa#a}9Xj[j@fP"

// ─── encode ──────────────────────────────────────────────────

func TestEncode_SolidRed(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {7, 5}, {64, 64}, {49, 3}} {
		pix := solidPixels(dims[0], dims[1], color.NRGBA{255, 0, 0, 255})
		hash, err := Encode(pix, dims[0], dims[1], 1, 1)
		if err != nil {
			t.Fatalf("%v: %v", dims, err)
		}
		if hash != "00TI:j" {
			t.Errorf("%v: got %q, want %q", dims, hash, "00TI:j")
		}

		x, y, err := Components(hash)
		if err != nil || x != 1 || y != 1 {
			t.Errorf("%v: components = %d×%d, %v", dims, x, y, err)
		}
		avg, err := AverageColor(hash)
		if err != nil {
			t.Fatal(err)
		}
		if avg != [3]uint8{255, 0, 0} {
			t.Errorf("%v: average color %v", dims, avg)
		}
	}
}

func TestEncode_GoldenValues(t *testing.T) {
	cases := []struct {
		w, h, cx, cy int
		want         string
	}{
		{16, 12, 4, 3, "L$Hx+i2?wxoyqSR-jte=g0fjfQfj"},
		{20, 20, 3, 3, "K$HoH%2?wxqRWDjtgJfjfQ"},
	}
	for _, c := range cases {
		got, err := Encode(gradientPixels(c.w, c.h), c.w, c.h, c.cx, c.cy)
		if err != nil {
			t.Fatalf("%dx%d: %v", c.w, c.h, err)
		}
		if got != c.want {
			t.Errorf("%dx%d %d×%d: got %q, want %q", c.w, c.h, c.cx, c.cy, got, c.want)
		}
	}
}

func TestEncode_Length(t *testing.T) {
	pix := gradientPixels(9, 7)
	for cy := 1; cy <= MaxComponents; cy++ {
		for cx := 1; cx <= MaxComponents; cx++ {
			hash, err := Encode(pix, 9, 7, cx, cy)
			if err != nil {
				t.Fatalf("%d×%d: %v", cx, cy, err)
			}
			if len(hash) != EncodedLen(cx, cy) {
				t.Errorf("%d×%d: length %d, want %d", cx, cy, len(hash), EncodedLen(cx, cy))
			}
			gx, gy, err := Components(hash)
			if err != nil || gx != cx || gy != cy {
				t.Errorf("%d×%d: Components = %d×%d, %v", cx, cy, gx, gy, err)
			}
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	pix := gradientPixels(32, 32)
	h1, _ := Encode(pix, 32, 32, 5, 4)
	h2, _ := Encode(pix, 32, 32, 5, 4)
	if h1 != h2 {
		t.Fatalf("non-deterministic: %q vs %q", h1, h2)
	}
}

func TestEncode_ComponentNumberOutbound(t *testing.T) {
	pix := solidPixels(4, 4, color.NRGBA{1, 2, 3, 255})
	for _, c := range [][2]int{{0, 1}, {10, 1}, {1, 0}, {1, 10}, {-1, 4}} {
		_, err := Encode(pix, 4, 4, c[0], c[1])
		if !errors.Is(err, ComponentNumberOutbound) {
			t.Errorf("components %v: got %v, want ComponentNumberOutbound", c, err)
		}
	}
}

func TestEncode_PixelArrayMismatch(t *testing.T) {
	pix := solidPixels(4, 4, color.NRGBA{1, 2, 3, 255})
	cases := []struct {
		buf  []byte
		w, h int
	}{
		{pix[:len(pix)-1], 4, 4},
		{append(pix, 0), 4, 4},
		{pix, 4, 5},
		{pix, 5, 4},
		{make([]byte, 4), -1, -1},
		{nil, 1, 1},
	}
	for i, c := range cases {
		_, err := Encode(c.buf, c.w, c.h, 4, 3)
		if !errors.Is(err, PixelArrayMismatch) {
			t.Errorf("case %d: got %v, want PixelArrayMismatch", i, err)
		}
	}
}

func TestEncode_EmptyImage(t *testing.T) {
	hash, err := Encode(nil, 0, 0, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(hash); err != nil {
		t.Errorf("empty image hash %q invalid: %v", hash, err)
	}
}

// ─── decode ──────────────────────────────────────────────────

func TestDecode_GoldenValues(t *testing.T) {
	want := []byte{
		87, 111, 168, 255, 96, 120, 175, 255, 100, 127, 182, 255, 98, 122, 177, 255,
		134, 135, 191, 255, 139, 142, 197, 255, 142, 148, 203, 255, 140, 144, 199, 255,
		122, 114, 157, 255, 125, 122, 166, 255, 127, 127, 172, 255, 124, 120, 165, 255,
	}
	got, err := Decode(referenceHash, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %d, want %d\n got: %v", i, got[i], want[i], got)
		}
	}
}

func TestDecode_BufferLength(t *testing.T) {
	for _, dims := range [][2]int{{0, 0}, {0, 5}, {1, 1}, {32, 1}, {7, 13}} {
		pix, err := Decode(referenceHash, dims[0], dims[1])
		if err != nil {
			t.Fatalf("%v: %v", dims, err)
		}
		if len(pix) != dims[0]*dims[1]*4 {
			t.Errorf("%v: length %d", dims, len(pix))
		}
		for i := 3; i < len(pix); i += 4 {
			if pix[i] != 255 {
				t.Fatalf("%v: alpha at %d = %d", dims, i, pix[i])
			}
		}
	}
}

func TestDecode_InvalidLength(t *testing.T) {
	for _, h := range []string{"", "0", "00TI:"} {
		if _, err := Decode(h, 4, 4); !errors.Is(err, InvalidLength) {
			t.Errorf("%q: got %v, want InvalidLength", h, err)
		}
	}
}

func TestDecode_LengthMismatch(t *testing.T) {
	cases := []string{
		referenceHash[:len(referenceHash)-1],
		referenceHash + "0",
		"00TI:j0",
		"10TI:j",    // declares 2×1, needs 8 characters
		"10TI:j000", // one too many for 2×1
	}
	for _, h := range cases {
		if _, err := Decode(h, 4, 4); !errors.Is(err, LengthMismatch) {
			t.Errorf("%q: got %v, want LengthMismatch", h, err)
		}
	}
	if _, err := Decode("10TI:j00", 4, 4); err != nil {
		t.Errorf("2×1 hash of length 8 rejected: %v", err)
	}
}

func TestDecode_InvalidCharacter(t *testing.T) {
	cases := []string{
		"\"0TI:j",
		"0\"TI:j",
		"00TI \"",
		referenceHash[:20] + "\"" + referenceHash[21:],
	}
	for _, h := range cases {
		if _, err := Decode(h, 4, 4); !errors.Is(err, InvalidCharacter) {
			t.Errorf("%q: got %v, want InvalidCharacter", h, err)
		}
	}
}

func TestDecode_InvalidDimensions(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{"negative width", -1, 4},
		{"negative height", 4, -1},
		{"overflowing area", math.MaxInt / 2, 3},
		{"overflowing height", 2, math.MaxInt / 4},
	}
	for _, tc := range cases {
		if _, err := Decode(referenceHash, tc.w, tc.h); !errors.Is(err, InvalidDimensions) {
			t.Errorf("%s: got %v, want InvalidDimensions", tc.name, err)
		}
	}
}

func TestDecode_WideDCSaturatesRed(t *testing.T) {
	// "~~~~" is 83^4-1: red is 724, wider than a byte.
	px, err := Decode("00~~~~", 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{255, 40, 16, 255}; !bytes.Equal(px, want) {
		t.Errorf("got %v, want %v", px, want)
	}

	avg, err := AverageColor("00~~~~")
	if err != nil {
		t.Fatal(err)
	}
	if avg != [3]uint8{255, 40, 16} {
		t.Errorf("average color %v", avg)
	}
}

func TestDecodePunch_NonFiniteIsOne(t *testing.T) {
	want, _ := Decode(referenceHash, 6, 4)
	for _, punch := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got, err := DecodePunch(referenceHash, 6, 4, punch)
		if err != nil {
			t.Fatalf("punch %v: %v", punch, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("punch %v: pixels differ from punch 1", punch)
		}
	}
}

func TestDecodePunch_OneMatchesDecode(t *testing.T) {
	a, _ := Decode(referenceHash, 12, 9)
	b, _ := DecodePunch(referenceHash, 12, 9, 1)
	c, _ := DecodePunch(referenceHash, 12, 9, 0)
	for i := range a {
		if a[i] != b[i] || a[i] != c[i] {
			t.Fatalf("byte %d: decode=%d punch1=%d punch0=%d", i, a[i], b[i], c[i])
		}
	}
	d, _ := DecodePunch(referenceHash, 12, 9, 3)
	same := true
	for i := range a {
		if a[i] != d[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("punch=3 produced the same pixels as punch=1")
	}
}

func TestAverageColor_Reference(t *testing.T) {
	c, err := AverageColor(referenceHash)
	if err != nil {
		t.Fatal(err)
	}
	if c != [3]uint8{116, 121, 169} {
		t.Errorf("got %v", c)
	}
}

// ─── roundtrip ───────────────────────────────────────────────

func TestRoundtrip_DCOnlyIsFlatMean(t *testing.T) {
	// Left half white, right half black: mean linear light is exactly 0.5.
	pix := make([]byte, 0, 4*2*4)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(255)
			if x >= 2 {
				v = 0
			}
			pix = append(pix, v, v, v, 255)
		}
	}
	hash, err := Encode(pix, 4, 2, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decode(hash, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(out); i += 4 {
		for c := 0; c < 3; c++ {
			if out[i+c] != 188 {
				t.Fatalf("pixel %d channel %d = %d, want 188", i/4, c, out[i+c])
			}
		}
	}
}

func TestRoundtrip_SolidColor(t *testing.T) {
	want := color.NRGBA{12, 200, 77, 255}
	hash, err := Encode(solidPixels(10, 10, want), 10, 10, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	out, _ := Decode(hash, 5, 5)
	for i := 0; i < len(out); i += 4 {
		if out[i] != want.R || out[i+1] != want.G || out[i+2] != want.B {
			t.Fatalf("pixel %d = %v", i/4, out[i:i+4])
		}
	}
}

func TestRoundtrip_Similar(t *testing.T) {
	const w, h = 32, 32
	pix := gradientPixels(w, h)
	hash, err := Encode(pix, w, h, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decode(hash, w, h)
	if err != nil {
		t.Fatal(err)
	}

	var sum float64
	for i := 0; i < len(pix); i += 4 {
		for c := 0; c < 3; c++ {
			sum += math.Abs(float64(pix[i+c]) - float64(out[i+c]))
		}
	}
	mean := sum / float64(w*h*3)
	if mean > 40 {
		t.Errorf("mean absolute error %.1f too large for a smooth gradient", mean)
	}
}

// ─── image adapter ───────────────────────────────────────────

func TestEncodeImage_MatchesEncode(t *testing.T) {
	const w, h = 16, 12
	pix := gradientPixels(w, h)
	want, _ := Encode(pix, w, h, 4, 3)

	nrgba := &image.NRGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	got, err := EncodeImage(nrgba, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("NRGBA: got %q, want %q", got, want)
	}

	// Offset sub-image of a larger canvas must encode the same pixels.
	canvas := image.NewNRGBA(image.Rect(0, 0, w+5, h+3))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			canvas.SetNRGBA(x+5, y+3, nrgba.NRGBAAt(x, y))
		}
	}
	sub := canvas.SubImage(image.Rect(5, 3, w+5, h+3))
	got, err = EncodeImage(sub, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("sub-image: got %q, want %q", got, want)
	}
}

func TestDecodeImage(t *testing.T) {
	img, err := DecodeImage(referenceHash, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if c := img.NRGBAAt(0, 0); c != (color.NRGBA{87, 111, 168, 255}) {
		t.Errorf("pixel (0,0) = %v", c)
	}
	if _, err := DecodeImage("short", 4, 3); !errors.Is(err, InvalidLength) {
		t.Errorf("got %v, want InvalidLength", err)
	}
}

// ─── benchmarks ──────────────────────────────────────────────

func BenchmarkEncode_64(b *testing.B) {
	pix := gradientPixels(64, 64)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(pix, 64, 64, 4, 3)
	}
}

func BenchmarkDecode_32(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Decode(referenceHash, 32, 32)
	}
}
