package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/AdamHavlicek/blurhash/internal/blurhash"
	"github.com/AdamHavlicek/blurhash/internal/pipeline"
	"github.com/spf13/cobra"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	encodeX      int
	encodeY      int
	encodeMaxDim int
)

var encodeCmd = &cobra.Command{
	Use:   "encode <image>",
	Short: "Print the BlurHash of an image file",
	Long: `Decodes an image (png, jpeg, gif, webp, bmp, tiff), optionally
downscales it so the longer edge is at most --max-dim pixels, and prints
its BlurHash with the requested component grid.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().IntVarP(&encodeX, "components-x", "x", 4, "horizontal components (1-9)")
	encodeCmd.Flags().IntVarP(&encodeY, "components-y", "y", 3, "vertical components (1-9)")
	encodeCmd.Flags().IntVar(&encodeMaxDim, "max-dim", 64, "downscale longest edge before encoding (0 = off)")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	start := time.Now()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}
	b := img.Bounds()
	logVerbose("input:  %s (%s, %dx%d)", args[0], format, b.Dx(), b.Dy())

	small := pipeline.Downscale(img, encodeMaxDim)
	if sb := small.Bounds(); sb != b {
		logVerbose("scaled: %dx%d", sb.Dx(), sb.Dy())
	}

	hash, err := blurhash.EncodeImage(small, encodeX, encodeY)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	logVerbose("time:   %s", time.Since(start).Round(time.Microsecond))

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
