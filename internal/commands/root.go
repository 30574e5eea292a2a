// Package commands provides CLI commands for medilingua.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// NewRootCmd builds the command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "medilingua",
		Short: "Medical translation chat for the terminal",
		Long: `medilingua translates what patients and clinicians say, highlights
medical terms, suggests departments to consult and reads answers aloud.
It talks to a MediLingua translation backend over HTTP.

Examples:
  medilingua                               Start the chat
  medilingua translate "I have a fever" --to hi
  echo "mujhe bukhar hai" | medilingua translate --from hi --to en
  medilingua detect "dolor de cabeza"
  medilingua ocr prescription.jpg --translate --to es
  medilingua languages                     List supported languages`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "medilingua %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runChat(deps, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.backend, "backend", "b", "", "Translation backend URL (overrides config)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Log debug details")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(
		newChatCmd(deps, opts),
		newTranslateCmd(deps, opts),
		newDetectCmd(deps, opts),
		newOCRCmd(deps, opts),
		newLanguagesCmd(),
		newConfigCmd(opts),
	)

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
