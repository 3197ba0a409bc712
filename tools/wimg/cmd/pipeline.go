package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"webimages.io/libs/wicore"
)

var (
	pipelineOps     string
	pipelineQuality int
)

// buildPipeline parses ops for an output written to path.
func buildPipeline(ops, path string, quality int) (*wicore.Pipeline, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return nil, fmt.Errorf("unsupported output format: %s", path)
	}
	opts := []wicore.Option{wicore.WithFormat(format)}
	if quality > 0 {
		opts = append(opts, wicore.WithQuality(quality))
	}
	return wicore.ParsePipeline(ops, opts...)
}

// runPipelineFile runs pipe on src and writes dst, creating its directory.
// It returns the input and output sizes.
func runPipelineFile(ctx context.Context, pipe *wicore.Pipeline, src, dst string) (int64, int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, 0, err
	}

	inFile, err := os.Open(src)
	if err != nil {
		return 0, 0, err
	}
	defer inFile.Close()

	inInfo, err := inFile.Stat()
	if err != nil {
		return 0, 0, err
	}

	outFile, err := os.Create(dst)
	if err != nil {
		return inInfo.Size(), 0, err
	}
	defer outFile.Close()

	if err := pipe.Process(ctx, inFile, outFile); err != nil {
		return inInfo.Size(), 0, err
	}
	outInfo, err := outFile.Stat()
	if err != nil {
		return inInfo.Size(), 0, err
	}
	return inInfo.Size(), outInfo.Size(), nil
}

func init() {
	pipelineCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run a sequence of transformations in a single pass",
		Long: `Run multiple transformations chained together.
Example: wimg pipeline -i in.jpg -o out.png --ops "resize=1280x720:lanczos3,brighten=10,contrast=5"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireIO(); err != nil {
				return err
			}
			pipe, err := buildPipeline(pipelineOps, output, pipelineQuality)
			if err != nil {
				return err
			}
			wicore.Info("running pipeline", "input", input, "output", output, "steps", pipe.Steps())
			_, _, err = runPipelineFile(cmd.Context(), pipe, input, output)
			return err
		},
	}

	pipelineCmd.Flags().StringVar(&pipelineOps, "ops", "", "Comma-separated operations (e.g. resize=1280x720,blur=1.5)")
	pipelineCmd.Flags().IntVar(&pipelineQuality, "quality", 0, "JPEG quality (defaults to WEBIMAGES_JPEG_QUALITY)")
	pipelineCmd.MarkFlagRequired("ops")

	rootCmd.AddCommand(pipelineCmd)
}
