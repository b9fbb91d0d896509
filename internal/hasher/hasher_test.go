package hasher

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
)

func TestSum_Length(t *testing.T) {
	data := []byte("LUDT3yayV?ay%jWBa#a}9Xj[j@fP")
	if got := Sum(data, 8); len(got) != 8 {
		t.Errorf("hexLen 8: got %q", got)
	}
	if got := Sum(data, 0); len(got) != 16 {
		t.Errorf("hexLen 0: got %q", got)
	}
	if got := Sum(data, 40); len(got) != 16 {
		t.Errorf("hexLen 40: got %q", got)
	}
}

func TestSum_BigEndianHex(t *testing.T) {
	data := []byte("placeholder")
	v := xxhash.Sum64(data)
	full := Sum(data, 0)
	for i := 0; i < 8; i++ {
		b := byte(v >> (56 - 8*i))
		const digits = "0123456789abcdef"
		if full[2*i] != digits[b>>4] || full[2*i+1] != digits[b&15] {
			t.Fatalf("byte %d of %q does not match %016x", i, full, v)
		}
	}
}

func TestSumReader_MatchesSum(t *testing.T) {
	data := bytes.Repeat([]byte{1, 2, 3, 4}, 10000)
	got, err := SumReader(bytes.NewReader(data), 16)
	if err != nil {
		t.Fatal(err)
	}
	if want := Sum(data, 16); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSumFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.bin")
	data := []byte("not really an image")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := SumFile(path, 16)
	if err != nil {
		t.Fatal(err)
	}
	if want := Sum(data, 16); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if _, err := SumFile(filepath.Join(t.TempDir(), "missing"), 16); err == nil {
		t.Error("expected error for missing file")
	}
}
