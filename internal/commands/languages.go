package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/diogo/medilingua/internal/models"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "languages",
		Aliases: []string{"langs"},
		Short:   "List supported languages",
		Long: `List the languages accepted as source or target.

The speech column shows the locale used for dictation and read-aloud.
Languages without one fall back to en-US for dictation and are not read aloud.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tLANGUAGE\tSPEECH")
			for _, lang := range models.AllLanguages() {
				locale, ok := models.SpeechLocale(lang.Code)
				if !ok {
					locale = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", lang.Code, lang.Name, locale)
			}
			return w.Flush()
		},
	}
}

// languageLabel returns the display name of code, or a note when unsupported
func languageLabel(code string) string {
	if !models.IsSupportedLanguage(code) {
		return "(unsupported)"
	}
	return models.LanguageName(code)
}
