package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AdamHavlicek/blurhash/internal/blurhash"
	"github.com/AdamHavlicek/blurhash/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a manifest, its hashes, and referenced preview files",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	manifestPath, err := manifest.Locate(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.Read(manifestPath)
	if err != nil {
		return err
	}

	errors := validateManifest(m, filepath.Dir(manifestPath))
	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d assets, %d previews — all hashes decode\n", m.Stats.TotalAssets, m.Stats.TotalPreviews)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	for _, key := range sortedKeys(m.Assets) {
		asset := m.Assets[key]

		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}
		if asset.AspectRatio <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid aspect ratio %.4f", key, asset.AspectRatio))
		}

		// The hash must parse and agree with the declared grid.
		if asset.BlurHash == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing blurhash", key))
		} else if err := blurhash.Validate(asset.BlurHash); err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: %v", key, err))
		} else {
			x, y, _ := blurhash.Components(asset.BlurHash)
			if x != asset.ComponentsX || y != asset.ComponentsY {
				errs = append(errs, fmt.Sprintf("asset %q: hash has %d×%d components, manifest says %d×%d",
					key, x, y, asset.ComponentsX, asset.ComponentsY))
			}
			if asset.AvgColor != nil {
				if avg, _ := blurhash.AverageColor(asset.BlurHash); avg != *asset.AvgColor {
					errs = append(errs, fmt.Sprintf("asset %q: avg_color %v does not match hash %v",
						key, *asset.AvgColor, avg))
				}
			}
		}

		seenPaths := map[string]bool{}
		for i, p := range asset.Previews {
			if p.Format == "" {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: empty format", key, i))
			}
			if p.Width <= 0 || p.Height <= 0 {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: invalid dimensions %dx%d",
					key, i, p.Width, p.Height))
			}
			if p.Hash == "" {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: missing hash", key, i))
			}
			if p.Path == "" {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: missing path", key, i))
				continue
			}

			if seenPaths[p.Path] {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: duplicate path %q", key, i, p.Path))
			}
			seenPaths[p.Path] = true

			info, err := os.Stat(filepath.Join(baseDir, p.Path))
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: file not found: %s", key, i, p.Path))
			} else if p.Size > 0 && info.Size() != p.Size {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: size mismatch: manifest=%d, disk=%d",
					key, i, p.Size, info.Size()))
			}
		}
	}

	// Verify stats consistency.
	previewCount := 0
	for _, a := range m.Assets {
		previewCount += len(a.Previews)
	}
	if m.Stats.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, len(m.Assets)))
	}
	if m.Stats.TotalPreviews != previewCount {
		errs = append(errs, fmt.Sprintf("stats.total_previews mismatch: %d != %d", m.Stats.TotalPreviews, previewCount))
	}

	return errs
}

func sortedKeys(assets map[string]manifest.Asset) []string {
	keys := make([]string, 0, len(assets))
	for k := range assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
