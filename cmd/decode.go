package cmd

import (
	"fmt"
	"os"

	"github.com/AdamHavlicek/blurhash/internal/blurhash"
	"github.com/AdamHavlicek/blurhash/internal/encoder"
	"github.com/spf13/cobra"
)

var (
	decodeWidth   int
	decodeHeight  int
	decodePunch   float64
	decodeOut     string
	decodeQuality int
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hash>",
	Short: "Render a BlurHash to a PNG or JPEG placeholder",
	Long: `Reconstructs the blurred placeholder described by a BlurHash at
the requested size. The output format follows the file extension
(.png, .jpg, .jpeg).`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().IntVarP(&decodeWidth, "width", "W", 32, "output width in pixels")
	decodeCmd.Flags().IntVarP(&decodeHeight, "height", "H", 32, "output height in pixels")
	decodeCmd.Flags().Float64Var(&decodePunch, "punch", 1, "contrast multiplier for AC components")
	decodeCmd.Flags().StringVarP(&decodeOut, "out", "o", "placeholder.png", "output file")
	decodeCmd.Flags().IntVarP(&decodeQuality, "quality", "q", 0, "JPEG quality 1-100 (0 = default)")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	hash := args[0]
	if decodeWidth <= 0 || decodeHeight <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", decodeWidth, decodeHeight)
	}

	enc, err := encoder.NewRegistry().ForPath(decodeOut)
	if err != nil {
		return err
	}

	x, y, err := blurhash.Components(hash)
	if err != nil {
		return fmt.Errorf("parse hash: %w", err)
	}
	logVerbose("components: %d×%d", x, y)

	img, err := blurhash.DecodeImagePunch(hash, decodeWidth, decodeHeight, decodePunch)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	data, err := enc.Encode(img, decodeQuality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", enc.Format(), err)
	}
	if err := os.WriteFile(decodeOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", decodeOut, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  ✓ %s (%dx%d %s, %s)\n",
		decodeOut, decodeWidth, decodeHeight, enc.Format(), formatBytes(int64(len(data))))
	return nil
}
