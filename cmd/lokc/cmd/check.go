package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"golok/pkg/frontend"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Parse source files and report the first error in each",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			lx, err := sourceLexer(path)
			if err == nil {
				_, err = frontend.Parse(lx)
			}
			if err != nil {
				failed++
				fmt.Printf("%s %s: %v\n", render(styleError, "FAIL"), path, err)
				continue
			}
			fmt.Printf("%s  %s\n", render(styleOK, "ok"), path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d file(s) failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
