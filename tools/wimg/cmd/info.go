package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"webimages.io/libs/wicore"
)

func init() {
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show size and pixel layout of an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return fmt.Errorf("input is required")
			}
			h := wicore.Open(input)
			defer wicore.Images.Release(h)
			if err := imageError(h, "open"); err != nil {
				return err
			}

			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"File", "Width", "Height", "Color"}),
			)
			table.Append(
				filepath.Base(input),
				fmt.Sprintf("%d", wicore.Images.Width(h)),
				fmt.Sprintf("%d", wicore.Images.Height(h)),
				wicore.Color(h),
			)
			table.Render()
			return nil
		},
	}

	rootCmd.AddCommand(infoCmd)
}
