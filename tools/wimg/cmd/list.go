package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"webimages.io/libs/wicore"
)

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all commands and the tokens they accept",
		Run: func(cmd *cobra.Command, args []string) {
			commands := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"Command", "Description"}),
			)
			for _, c := range rootCmd.Commands() {
				if !c.IsAvailableCommand() {
					continue
				}
				commands.Append(c.Name(), c.Short)
			}
			commands.Render()

			tokens := wicore.Tokens()
			names := make([]string, 0, len(tokens))
			for arg := range tokens {
				names = append(names, arg)
			}
			slices.Sort(names)

			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"Argument", "Tokens"}),
			)
			for _, arg := range names {
				table.Append(arg, strings.Join(tokens[arg], ", "))
			}
			table.Render()
		},
	}

	rootCmd.AddCommand(listCmd)
}
