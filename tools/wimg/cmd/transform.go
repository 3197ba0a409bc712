package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"webimages.io/libs/wicore"
)

var (
	resizeWidth, resizeHeight uint32
	resizeFilter              string
	resizeExact               bool
	thumbWidth, thumbHeight   uint32
	thumbExact                bool
	cropWidth, cropHeight     uint32
	cropX, cropY              uint32
	rotateDegrees             int
	flipAxis                  string
	blurSigma                 float32
	unsharpSigma              float32
	unsharpThreshold          int32
	filterKernel              []float32
	brightenDelta             int32
	contrastPercent           float32
	hueDegrees                int32
)

func init() {
	// Resize
	resizeCmd := &cobra.Command{
		Use:   "resize",
		Short: "Resize image (aspect preserved unless --exact)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage("resize", func(h wicore.ImageHandle) wicore.ImageHandle {
				if resizeExact {
					return wicore.ResizeExact(h, resizeWidth, resizeHeight, resizeFilter)
				}
				return wicore.Resize(h, resizeWidth, resizeHeight, resizeFilter)
			})
		},
	}
	resizeCmd.Flags().Uint32Var(&resizeWidth, "width", 1280, "target width")
	resizeCmd.Flags().Uint32Var(&resizeHeight, "height", 720, "target height")
	resizeCmd.Flags().StringVar(&resizeFilter, "filter", "lanczos3", "resampling filter (nearest, triangle, catmullrom, gaussian, lanczos3)")
	resizeCmd.Flags().BoolVar(&resizeExact, "exact", false, "ignore the aspect ratio")
	rootCmd.AddCommand(resizeCmd)

	// Thumbnail
	thumbnailCmd := &cobra.Command{
		Use:   "thumbnail",
		Short: "Create a fast box-filtered thumbnail",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage("thumbnail", func(h wicore.ImageHandle) wicore.ImageHandle {
				if thumbExact {
					return wicore.ThumbnailExact(h, thumbWidth, thumbHeight)
				}
				return wicore.Thumbnail(h, thumbWidth, thumbHeight)
			})
		},
	}
	thumbnailCmd.Flags().Uint32Var(&thumbWidth, "width", 256, "target width")
	thumbnailCmd.Flags().Uint32Var(&thumbHeight, "height", 256, "target height")
	thumbnailCmd.Flags().BoolVar(&thumbExact, "exact", false, "ignore the aspect ratio")
	rootCmd.AddCommand(thumbnailCmd)

	// Crop
	cropCmd := &cobra.Command{
		Use:   "crop",
		Short: "Crop image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage("crop", func(h wicore.ImageHandle) wicore.ImageHandle {
				return wicore.Crop(h, cropX, cropY, cropWidth, cropHeight)
			})
		},
	}
	cropCmd.Flags().Uint32Var(&cropWidth, "width", 0, "crop width")
	cropCmd.Flags().Uint32Var(&cropHeight, "height", 0, "crop height")
	cropCmd.Flags().Uint32Var(&cropX, "x", 0, "left edge")
	cropCmd.Flags().Uint32Var(&cropY, "y", 0, "top edge")
	rootCmd.AddCommand(cropCmd)

	// Rotate
	rotateCmd := &cobra.Command{
		Use:   "rotate",
		Short: "Rotate image clockwise",
		RunE: func(cmd *cobra.Command, args []string) error {
			var op func(wicore.ImageHandle) wicore.ImageHandle
			switch rotateDegrees {
			case 90:
				op = wicore.Rotate90
			case 180:
				op = wicore.Rotate180
			case 270:
				op = wicore.Rotate270
			default:
				return fmt.Errorf("unsupported rotation: %d (expected 90, 180 or 270)", rotateDegrees)
			}
			return runImage("rotate", op)
		},
	}
	rotateCmd.Flags().IntVar(&rotateDegrees, "degrees", 90, "degrees (90, 180 or 270)")
	rootCmd.AddCommand(rotateCmd)

	// Flip
	flipCmd := &cobra.Command{
		Use:   "flip",
		Short: "Flip image",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch flipAxis {
			case "h":
				return runImage("flip", wicore.FlipHorizontal)
			case "v":
				return runImage("flip", wicore.FlipVertical)
			default:
				return fmt.Errorf("unsupported axis: %s (expected h or v)", flipAxis)
			}
		},
	}
	flipCmd.Flags().StringVar(&flipAxis, "axis", "h", "axis (h or v)")
	rootCmd.AddCommand(flipCmd)

	// Blur
	blurCmd := &cobra.Command{
		Use:   "blur",
		Short: "Gaussian blur",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage("blur", func(h wicore.ImageHandle) wicore.ImageHandle {
				return wicore.Blur(h, blurSigma)
			})
		},
	}
	blurCmd.Flags().Float32Var(&blurSigma, "sigma", 2, "standard deviation")
	rootCmd.AddCommand(blurCmd)

	// Unsharpen
	unsharpenCmd := &cobra.Command{
		Use:   "unsharpen",
		Short: "Unsharp mask",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage("unsharpen", func(h wicore.ImageHandle) wicore.ImageHandle {
				return wicore.Unsharpen(h, unsharpSigma, unsharpThreshold)
			})
		},
	}
	unsharpenCmd.Flags().Float32Var(&unsharpSigma, "sigma", 1.5, "blur standard deviation")
	unsharpenCmd.Flags().Int32Var(&unsharpThreshold, "threshold", 2, "minimum difference to sharpen")
	rootCmd.AddCommand(unsharpenCmd)

	// Filter
	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Convolve with a 3x3 kernel (normalised by its sum)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(filterKernel) != 9 {
				return fmt.Errorf("kernel needs 9 values, got %d", len(filterKernel))
			}
			var k [9]float32
			copy(k[:], filterKernel)
			return runImage("filter", func(h wicore.ImageHandle) wicore.ImageHandle {
				return wicore.Filter3x3(h, k)
			})
		},
	}
	filterCmd.Flags().Float32SliceVar(&filterKernel, "kernel", []float32{0, -1, 0, -1, 5, -1, 0, -1, 0}, "row-major 3x3 kernel")
	rootCmd.AddCommand(filterCmd)

	// Brighten
	brightenCmd := &cobra.Command{
		Use:   "brighten",
		Short: "Adjust brightness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage("brighten", func(h wicore.ImageHandle) wicore.ImageHandle {
				return wicore.Brighten(h, brightenDelta)
			})
		},
	}
	brightenCmd.Flags().Int32Var(&brightenDelta, "delta", 20, "value added to every channel")
	rootCmd.AddCommand(brightenCmd)

	// Contrast
	contrastCmd := &cobra.Command{
		Use:   "contrast",
		Short: "Adjust contrast",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage("contrast", func(h wicore.ImageHandle) wicore.ImageHandle {
				return wicore.AdjustContrast(h, contrastPercent)
			})
		},
	}
	contrastCmd.Flags().Float32Var(&contrastPercent, "percent", 10, "contrast change in percent (-100 to 100)")
	rootCmd.AddCommand(contrastCmd)

	// Hue rotate
	hueCmd := &cobra.Command{
		Use:   "huerotate",
		Short: "Rotate hue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage("huerotate", func(h wicore.ImageHandle) wicore.ImageHandle {
				return wicore.HueRotate(h, hueDegrees)
			})
		},
	}
	hueCmd.Flags().Int32Var(&hueDegrees, "degrees", 180, "hue rotation in degrees")
	rootCmd.AddCommand(hueCmd)

	// Invert
	rootCmd.AddCommand(&cobra.Command{
		Use:   "invert",
		Short: "Invert colours",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage("invert", wicore.Invert)
		},
	})

	// Grayscale
	rootCmd.AddCommand(&cobra.Command{
		Use:   "grayscale",
		Short: "Convert to grayscale",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage("grayscale", wicore.Grayscale)
		},
	})
}
