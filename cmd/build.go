package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/AdamHavlicek/blurhash/internal/manifest"
	"github.com/AdamHavlicek/blurhash/internal/pipeline"
	"github.com/AdamHavlicek/blurhash/internal/profile"
	"github.com/spf13/cobra"
)

var (
	buildOutDir   string
	buildProfile  string
	buildWorkers  int
	buildX        int
	buildY        int
	buildMaxDim   int
	buildQuality  int
	buildPreviews bool
	buildCompress bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Hash every image in a directory and write a manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, webp, gif, bmp, tiff),
computes a BlurHash per image in parallel, and writes a manifest file.

With --previews, each placeholder is also rendered to disk with a
content-addressed filename: <key>.<w>.<h>.<hash>.ext`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./blurhash_out", "output directory")
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", "default",
		fmt.Sprintf("placeholder profile %v", profile.Names()))
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().IntVarP(&buildX, "components-x", "x", 0, "horizontal components (0 = profile default)")
	buildCmd.Flags().IntVarP(&buildY, "components-y", "y", 0, "vertical components (0 = profile default)")
	buildCmd.Flags().IntVar(&buildMaxDim, "max-dim", -1, "downscale longest edge before encoding (-1 = profile default, 0 = off)")
	buildCmd.Flags().IntVarP(&buildQuality, "quality", "q", 0, "JPEG preview quality 1-100 (0 = default)")
	buildCmd.Flags().BoolVar(&buildPreviews, "previews", false, "write decoded placeholder images")
	buildCmd.Flags().BoolVar(&buildCompress, "compress", false, "write a zstd-compressed manifest")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Load profile and apply overrides.
	prof := profile.Get(buildProfile)
	if buildX > 0 {
		prof.ComponentsX = buildX
	}
	if buildY > 0 {
		prof.ComponentsY = buildY
	}
	if buildMaxDim >= 0 {
		prof.MaxDim = buildMaxDim
	}
	if prof.ComponentsX > 9 || prof.ComponentsY > 9 {
		return fmt.Errorf("components must be between 1 and 9, got %d×%d", prof.ComponentsX, prof.ComponentsY)
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (components=%d×%d, max-dim=%d)",
		prof.Name, prof.ComponentsX, prof.ComponentsY, prof.MaxDim)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   buildWorkers,
		Verbose:   verbose,
		Previews:  buildPreviews,
		Quality:   buildQuality,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	name := manifest.FileName
	if buildCompress {
		name = manifest.CompressedFileName
	}
	manifestPath := filepath.Join(absOutput, name)
	if err := manifest.Write(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(m, manifestPath, time.Since(start))
	return nil
}

func printBuildReport(m *manifest.Manifest, manifestPath string, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║             blurhash build complete              ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Assets:      %d\n", s.TotalAssets)
	fmt.Printf("  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Hash bytes:  %s\n", formatBytes(s.TotalHashBytes))
	if s.TotalPreviews > 0 {
		fmt.Printf("  Previews:    %d (%s)\n", s.TotalPreviews, formatBytes(s.TotalPreviewBytes))
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	// Longest hashes first: these carry the most components.
	if len(m.Assets) > 0 {
		keys := make([]string, 0, len(m.Assets))
		for k := range m.Assets {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			li, lj := len(m.Assets[keys[i]].BlurHash), len(m.Assets[keys[j]].BlurHash)
			if li != lj {
				return li > lj
			}
			return keys[i] < keys[j]
		})
		n := min(len(keys), 10)
		fmt.Printf("  Top %d assets:\n", n)
		for _, k := range keys[:n] {
			a := m.Assets[k]
			fmt.Printf("    %-40s %dx%-5d %s\n", truncKey(k, 40), a.ComponentsX, a.ComponentsY, a.BlurHash)
		}
		fmt.Println()
	}

	size := int64(0)
	if info, err := os.Stat(manifestPath); err == nil {
		size = info.Size()
	} else if data, err := json.Marshal(m); err == nil {
		size = int64(len(data))
	}
	fmt.Printf("  Manifest:    %s (%s)\n", filepath.Base(manifestPath), formatBytes(size))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
