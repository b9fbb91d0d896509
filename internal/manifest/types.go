package manifest

// Manifest is the top-level output of a blurhash build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers     int `json:"workers"`
	ComponentsX int `json:"components_x"`
	ComponentsY int `json:"components_y"`
	MaxDim      int `json:"max_dim"` // longest edge fed to the encoder, 0 = full size
}

// Asset describes a single source image and its placeholder.
type Asset struct {
	Original    OriginalInfo `json:"original"`
	BlurHash    string       `json:"blurhash"`
	ComponentsX int          `json:"components_x"`
	ComponentsY int          `json:"components_y"`
	AspectRatio float64      `json:"aspect_ratio"`        // width / height
	AvgColor    *[3]uint8    `json:"avg_color,omitempty"` // DC term as [R,G,B]
	Previews    []Preview    `json:"previews,omitempty"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Format      string `json:"format"`
	Size        int64  `json:"size"`
	HasAlpha    bool   `json:"has_alpha"`
	ContentHash string `json:"content_hash"` // xxhash64 of the source file
}

// Preview is a decoded placeholder written to disk.
type Preview struct {
	Format string `json:"format"` // "png", "jpeg"
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"` // bytes on disk
	Hash   string `json:"hash"` // first 16 hex chars of xxhash64
	Path   string `json:"path"` // relative to base_path
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes   int64 `json:"total_input_bytes"`
	TotalPreviewBytes int64 `json:"total_preview_bytes"`
	TotalHashBytes    int64 `json:"total_hash_bytes"`
	TotalAssets       int   `json:"total_assets"`
	TotalPreviews     int   `json:"total_previews"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the default manifest name inside an output directory.
const FileName = "blurhash.manifest.json"

// CompressedFileName is FileName with zstd compression.
const CompressedFileName = FileName + ".zst"
