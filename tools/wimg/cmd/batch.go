package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"webimages.io/libs/wicore"
)

var (
	batchOps     string
	batchQuality int
	batchFormat  string
)

type batchMetrics struct {
	TotalFiles  int
	Success     int
	Failure     int
	TotalTime   time.Duration
	InputBytes  int64
	OutputBytes int64
	Files       []fileMetric
}

type fileMetric struct {
	Name     string
	Duration time.Duration
	Success  bool
	Error    string
}

type batchJob struct {
	src string
	dst string
}

// withExt swaps the extension of path when ext is set.
func withExt(path, ext string) string {
	if ext == "" {
		return path
	}
	return path[:len(path)-len(filepath.Ext(path))] + "." + ext
}

// collectJobs maps every image under src to a destination under dst. A single
// file maps to dst itself, or into dst when dst is an existing directory.
func collectJobs(src, dst, ext string) ([]batchJob, error) {
	var jobs []batchJob

	info, err := os.Stat(src)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !wicore.IsImage(path) {
				return nil
			}
			rel, err := filepath.Rel(src, path)
			if err != nil {
				return err
			}
			jobs = append(jobs, batchJob{src: path, dst: withExt(filepath.Join(dst, rel), ext)})
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		if !wicore.IsImage(src) {
			return nil, fmt.Errorf("input file is not a supported image: %s", src)
		}
		target := dst
		if dstInfo, err := os.Stat(dst); err == nil && dstInfo.IsDir() {
			target = filepath.Join(dst, filepath.Base(src))
		}
		jobs = append(jobs, batchJob{src: src, dst: withExt(target, ext)})
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("no images found to process")
	}
	return jobs, nil
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a pipeline over every image in a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if input == "" || output == "" {
			return fmt.Errorf("input and output are required")
		}
		if batchFormat != "" {
			if _, ok := wicore.ParseFormat(batchFormat); !ok {
				return fmt.Errorf("unsupported format: %s", batchFormat)
			}
		}
		jobs, err := collectJobs(input, output, batchFormat)
		if err != nil {
			return err
		}

		metrics := &batchMetrics{TotalFiles: len(jobs)}
		startAll := time.Now()

		bar := progressbar.NewOptions(len(jobs),
			progressbar.OptionSetDescription("Processing"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionFullWidth(),
			progressbar.OptionClearOnFinish(),
		)

		for _, job := range jobs {
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			currentFile := filepath.Base(job.src)
			bar.Describe(fmt.Sprintf("Processing [S:%d|F:%d] %s", metrics.Success, metrics.Failure, currentFile))

			start := time.Now()
			inSize, outSize, err := processJob(cmd, job)
			metric := fileMetric{
				Name:     currentFile,
				Duration: time.Since(start),
				Success:  err == nil,
			}
			if err != nil {
				metric.Error = err.Error()
				metrics.Failure++
				wicore.Warn("batch item failed", "file", job.src, "error", err)
			} else {
				metrics.Success++
				metrics.InputBytes += inSize
				metrics.OutputBytes += outSize
			}
			metrics.Files = append(metrics.Files, metric)
			bar.Add(1)
		}
		metrics.TotalTime = time.Since(startAll)

		displayMetrics(metrics)
		return nil
	},
}

func processJob(cmd *cobra.Command, job batchJob) (int64, int64, error) {
	pipe, err := buildPipeline(batchOps, job.dst, batchQuality)
	if err != nil {
		return 0, 0, err
	}
	return runPipelineFile(cmd.Context(), pipe, job.src, job.dst)
}

func displayMetrics(m *batchMetrics) {
	fmt.Printf("\n\n--- Batch Summary ---\n")
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Metric", "Value"}),
	)

	avgTime := time.Duration(0)
	if m.TotalFiles > 0 {
		avgTime = m.TotalTime / time.Duration(m.TotalFiles)
	}

	data := [][]string{
		{"Total Files", fmt.Sprintf("%d", m.TotalFiles)},
		{"Succeeded", fmt.Sprintf("%d", m.Success)},
		{"Failed", fmt.Sprintf("%d", m.Failure)},
		{"Total Time", m.TotalTime.Round(time.Millisecond).String()},
		{"Avg Time/Img", avgTime.Round(time.Millisecond).String()},
		{"Input Size", formatBytes(m.InputBytes)},
		{"Output Size", formatBytes(m.OutputBytes)},
		{"Live Handles", fmt.Sprintf("%d", wicore.LiveHandles())},
	}
	for _, row := range data {
		table.Append(row[0], row[1])
	}
	table.Render()

	if m.Failure > 0 {
		fmt.Println("\nErrors:")
		for _, f := range m.Files {
			if !f.Success {
				fmt.Printf("  - %s: %s\n", f.Name, f.Error)
			}
		}
	}
	fmt.Println()
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

func init() {
	batchCmd.Flags().StringVar(&batchOps, "ops", "", "Comma-separated operations applied to every image")
	batchCmd.Flags().IntVar(&batchQuality, "quality", 0, "JPEG quality (defaults to WEBIMAGES_JPEG_QUALITY)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "", "Re-encode outputs as this format (jpeg, png)")
	batchCmd.MarkFlagRequired("ops")
	rootCmd.AddCommand(batchCmd)
}
