package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"golok/pkg/frontend"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and print its declarations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lx, err := sourceLexer(args[0])
		if err != nil {
			return err
		}
		decls, err := frontend.Parse(lx)
		if err != nil {
			return err
		}
		for _, d := range decls {
			fmt.Println(d)
		}
		fmt.Println(render(styleMuted, fmt.Sprintf("%d declaration(s)", len(decls))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
