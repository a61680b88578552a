package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	"golok/pkg/frontend"
)

// maxString caps string literal length; settable per run with
// --max-string or globally with LOKC_MAX_STRING.
var maxString int

var rootCmd = &cobra.Command{
	Use:   "lokc",
	Short: "Compiler front end for the lok language",
	Long: `lokc lexes and parses lok source files.

Commands:
  tokens   - dump the token stream of a source file
  parse    - parse a source file and print the declarations
  check    - parse one or more source files and report errors`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().IntVar(&maxString, "max-string",
		env.Int("LOKC_MAX_STRING", frontend.DefaultMaxStringLen),
		"maximum decoded length of a string literal")
}

// sourceLexer opens path with the configured string limit applied.
func sourceLexer(path string) (*frontend.Lexer, error) {
	lx, err := frontend.NewFileLexer(path)
	if err != nil {
		return nil, err
	}
	lx.MaxStringLen = maxString
	return lx, nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", render(styleError, "error:"), err)
}
