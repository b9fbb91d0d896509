package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// New creates an empty manifest with defaults.
func New(profileName string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		BasePath:    "./",
		Assets:      make(map[string]Asset),
	}
}

// ComputeStats recalculates aggregate statistics from assets.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalAssets = len(m.Assets)
	for _, a := range m.Assets {
		s.TotalInputBytes += a.Original.Size
		s.TotalHashBytes += int64(len(a.BlurHash))
		s.TotalPreviews += len(a.Previews)
		for _, p := range a.Previews {
			s.TotalPreviewBytes += p.Size
		}
	}
	m.Stats = s
}

// IsCompressed reports whether path names a zstd manifest.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zst")
}

// Write serializes the manifest to path, compressing with zstd when the
// path ends in ".zst".
func Write(m *Manifest, path string) error {
	if IsCompressed(path) {
		return WriteZstd(m, path)
	}
	return WriteJSON(m, path)
}

// WriteJSON serializes the manifest to an indented JSON file.
func WriteJSON(m *Manifest, path string) error {
	data, err := marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteZstd serializes the manifest as zstd-compressed JSON.
func WriteZstd(m *Manifest, path string) error {
	data, err := marshal(m)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		return fmt.Errorf("zstd encoder: %w", err)
	}
	defer enc.Close()
	return os.WriteFile(path, enc.EncodeAll(data, nil), 0o644)
}

func marshal(m *Manifest) ([]byte, error) {
	m.ComputeStats()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Read loads a manifest from a file, transparently decompressing zstd.
// Compressed input is detected by magic number, not extension.
func Read(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(bytes.NewReader(raw))
}

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Parse decodes a manifest from r. Unknown fields are ignored.
func Parse(r io.Reader) (*Manifest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if bytes.HasPrefix(raw, zstdMagic) {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		defer dec.Close()
		raw, err = dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decode: %w", err)
		}
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Locate resolves a directory to the manifest inside it, preferring the
// plain JSON file over the compressed one. Files are returned as-is.
func Locate(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, name := range []string{FileName, CompressedFileName} {
		p := filepath.Join(path, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no %s in %s", FileName, path)
}
