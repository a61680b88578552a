package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"golok/pkg/frontend"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Dump the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lx, err := sourceLexer(args[0])
		if err != nil {
			return err
		}
		for {
			tok, err := lx.NextToken()
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%4d", tok.Line)
			name := fmt.Sprintf("%-11s", tok.Type)
			switch {
			case tok.Type.IsKeyword():
				name = render(styleKeyword, name)
			case tok.Type.IsString(), tok.Type == frontend.INTEGER, tok.Type == frontend.FLOAT:
				name = render(styleLiteral, name)
			}
			fmt.Printf("%s  %s %q\n", render(styleMuted, line), name, tok.Lexeme)
			if tok.Type == frontend.EOF {
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
