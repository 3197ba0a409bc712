package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"webimages.io/libs/wicore"
)

var (
	thresholdLevel    uint8
	thresholdAdaptive uint32
	edgeLow           float32
	edgeHigh          float32
	medianRadius      uint32
	morphOp           string
	morphNorm         string
	morphK            uint8
	distanceNorm      string
	seamWidth         uint32
	noiseKind         string
	noiseMean         float64
	noiseStddev       float64
	noiseRate         float64
	noiseSeed         uint64
	labelConn         string
	labelBackground   uint8
	labelSeed         uint64
)

func init() {
	// Threshold
	thresholdCmd := &cobra.Command{
		Use:   "threshold",
		Short: "Binarise the luma (global level or adaptive block mean)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGray("threshold", func(h wicore.GrayHandle) wicore.GrayHandle {
				if thresholdAdaptive > 0 {
					return wicore.AdaptiveThreshold(h, thresholdAdaptive)
				}
				return wicore.Threshold(h, thresholdLevel)
			})
		},
	}
	thresholdCmd.Flags().Uint8Var(&thresholdLevel, "level", 128, "pixels above this level become white")
	thresholdCmd.Flags().Uint32Var(&thresholdAdaptive, "adaptive", 0, "block radius for adaptive thresholding (0 disables)")
	rootCmd.AddCommand(thresholdCmd)

	// Otsu
	rootCmd.AddCommand(&cobra.Command{
		Use:   "otsu",
		Short: "Print the Otsu threshold level of the luma",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return fmt.Errorf("input is required")
			}
			src := wicore.Open(input)
			defer wicore.Images.Release(src)
			if err := imageError(src, "open"); err != nil {
				return err
			}
			g := wicore.ToGray(src)
			defer wicore.Grays.Release(g)
			if err := grayError(g, "otsu"); err != nil {
				return err
			}
			fmt.Println(wicore.OtsuLevel(g))
			return nil
		},
	})

	// Equalize
	rootCmd.AddCommand(&cobra.Command{
		Use:   "equalize",
		Short: "Equalise the luma histogram",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGray("equalize", wicore.EqualizeHistogram)
		},
	})

	// Edges
	edgesCmd := &cobra.Command{
		Use:   "edges",
		Short: "Canny edge detection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGray("edges", func(h wicore.GrayHandle) wicore.GrayHandle {
				return wicore.Canny(h, edgeLow, edgeHigh)
			})
		},
	}
	edgesCmd.Flags().Float32Var(&edgeLow, "low", 50, "hysteresis low threshold")
	edgesCmd.Flags().Float32Var(&edgeHigh, "high", 100, "hysteresis high threshold")
	rootCmd.AddCommand(edgesCmd)

	// Median
	medianCmd := &cobra.Command{
		Use:   "median",
		Short: "Median filter the luma",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGray("median", func(h wicore.GrayHandle) wicore.GrayHandle {
				return wicore.MedianFilter(h, medianRadius, medianRadius)
			})
		},
	}
	medianCmd.Flags().Uint32Var(&medianRadius, "radius", 1, "window radius")
	rootCmd.AddCommand(medianCmd)

	// Morphology
	morphCmd := &cobra.Command{
		Use:   "morph",
		Short: "Binary morphology on the luma (erode, dilate, open, close)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var op func(wicore.GrayHandle, string, uint8) wicore.GrayHandle
			switch morphOp {
			case "erode":
				op = wicore.Erode
			case "dilate":
				op = wicore.Dilate
			case "open":
				op = wicore.MorphologyOpen
			case "close":
				op = wicore.MorphologyClose
			default:
				return fmt.Errorf("unsupported morphology: %s (expected erode, dilate, open or close)", morphOp)
			}
			return runGray("morph", func(h wicore.GrayHandle) wicore.GrayHandle {
				return op(h, morphNorm, morphK)
			})
		},
	}
	morphCmd.Flags().StringVar(&morphOp, "op", "open", "operation (erode, dilate, open, close)")
	morphCmd.Flags().StringVar(&morphNorm, "norm", "l1", "distance norm (l1, linf)")
	morphCmd.Flags().Uint8Var(&morphK, "k", 1, "structuring radius")
	rootCmd.AddCommand(morphCmd)

	// Distance transform
	distanceCmd := &cobra.Command{
		Use:   "distance",
		Short: "Distance of every pixel to the nearest foreground pixel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGray("distance", func(h wicore.GrayHandle) wicore.GrayHandle {
				return wicore.DistanceTransform(h, distanceNorm)
			})
		},
	}
	distanceCmd.Flags().StringVar(&distanceNorm, "norm", "l1", "distance norm (l1, linf)")
	rootCmd.AddCommand(distanceCmd)

	// Seam carving
	seamCmd := &cobra.Command{
		Use:   "seam",
		Short: "Shrink the luma to a target width by seam carving",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGray("seam", func(h wicore.GrayHandle) wicore.GrayHandle {
				return wicore.ShrinkWidth(h, seamWidth)
			})
		},
	}
	seamCmd.Flags().Uint32Var(&seamWidth, "width", 0, "target width")
	seamCmd.MarkFlagRequired("width")
	rootCmd.AddCommand(seamCmd)

	// Noise
	noiseCmd := &cobra.Command{
		Use:   "noise",
		Short: "Add gaussian or salt-and-pepper noise to the luma",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch noiseKind {
			case "gaussian":
				return runGray("noise", func(h wicore.GrayHandle) wicore.GrayHandle {
					return wicore.GaussianNoise(h, noiseMean, noiseStddev, noiseSeed)
				})
			case "salt-pepper":
				return runGray("noise", func(h wicore.GrayHandle) wicore.GrayHandle {
					return wicore.SaltAndPepperNoise(h, noiseRate, noiseSeed)
				})
			default:
				return fmt.Errorf("unsupported noise: %s (expected gaussian or salt-pepper)", noiseKind)
			}
		},
	}
	noiseCmd.Flags().StringVar(&noiseKind, "kind", "gaussian", "noise kind (gaussian, salt-pepper)")
	noiseCmd.Flags().Float64Var(&noiseMean, "mean", 0, "gaussian mean")
	noiseCmd.Flags().Float64Var(&noiseStddev, "stddev", 10, "gaussian standard deviation")
	noiseCmd.Flags().Float64Var(&noiseRate, "rate", 0.05, "fraction of pixels replaced by salt or pepper")
	noiseCmd.Flags().Uint64Var(&noiseSeed, "seed", 1, "random seed")
	rootCmd.AddCommand(noiseCmd)

	// Labels
	labelsCmd := &cobra.Command{
		Use:   "labels",
		Short: "Colour the connected components of the luma",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage("labels", func(h wicore.ImageHandle) wicore.ImageHandle {
				g := wicore.ToGray(h)
				defer wicore.Grays.Release(g)
				l := wicore.ConnectedComponents(g, labelConn, labelBackground)
				defer wicore.Labels.Release(l)
				if cmd.Flags().Changed("seed") {
					return wicore.LabelsToColorSeeded(l, labelSeed)
				}
				return wicore.LabelsToColor(l)
			})
		},
	}
	labelsCmd.Flags().StringVar(&labelConn, "connectivity", "eight", "pixel connectivity (four, eight)")
	labelsCmd.Flags().Uint8Var(&labelBackground, "background", 0, "intensity that is never labelled")
	labelsCmd.Flags().Uint64Var(&labelSeed, "seed", 0, "palette seed (defaults to WEBIMAGES_PALETTE_SEED or the clock)")
	rootCmd.AddCommand(labelsCmd)
}
