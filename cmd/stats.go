package cmd

import (
	"fmt"
	"sort"

	"github.com/AdamHavlicek/blurhash/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a built manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path, err := manifest.Locate(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.Read(path)
	if err != nil {
		return err
	}
	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Printf("  Components:       %d×%d\n", m.BuildInfo.ComponentsX, m.BuildInfo.ComponentsY)
		fmt.Printf("  Max source dim:   %d\n", m.BuildInfo.MaxDim)
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total assets:     %d\n", s.TotalAssets)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Hash bytes:       %s\n", formatBytes(s.TotalHashBytes))
	if s.TotalAssets > 0 {
		fmt.Printf("  Avg hash length:  %.1f chars\n", float64(s.TotalHashBytes)/float64(s.TotalAssets))
	}
	fmt.Printf("  Previews:         %d (%s)\n", s.TotalPreviews, formatBytes(s.TotalPreviewBytes))
	fmt.Println()

	// Per-grid breakdown.
	grids := map[[2]int]int{}
	for _, a := range m.Assets {
		grids[[2]int{a.ComponentsX, a.ComponentsY}]++
	}
	var keys [][2]int
	for g := range grids {
		keys = append(keys, g)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	fmt.Println("  Component grids:")
	for _, g := range keys {
		fmt.Printf("    %d×%d  %4d assets\n", g[0], g[1], grids[g])
	}
	fmt.Println()

	// Per-format breakdown of sources.
	formats := map[string]int{}
	for _, a := range m.Assets {
		formats[a.Original.Format]++
	}
	fmt.Println("  Source formats:")
	for _, f := range []string{"jpeg", "png", "webp", "gif", "bmp", "tiff"} {
		if n, ok := formats[f]; ok {
			fmt.Printf("    %-6s  %4d files\n", f, n)
		}
	}
	fmt.Println()

	// Warnings.
	var warnings []string
	for key, a := range m.Assets {
		if a.BlurHash == "" {
			warnings = append(warnings, fmt.Sprintf("asset %q missing blurhash", key))
		}
		if a.Original.HasAlpha {
			warnings = append(warnings, fmt.Sprintf("asset %q has transparency; blurhash ignores alpha", key))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}
