// Package hasher derives short, stable content identifiers with xxHash64.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Sum returns the hex xxHash64 of data truncated to hexLen characters
// (0 or anything >= 16 keeps all 16).
func Sum(data []byte, hexLen int) string {
	return format(xxhash.Sum64(data), hexLen)
}

// SumReader hashes everything readable from r.
func SumReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64(), hexLen), nil
}

// SumFile hashes the file at path without loading it into memory.
func SumFile(path string, hexLen int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return SumReader(f, hexLen)
}

func format(v uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
