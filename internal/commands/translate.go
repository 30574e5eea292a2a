package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/medilingua/internal/models"
	"github.com/diogo/medilingua/internal/render"
)

type translateOptions struct {
	from   string
	to     string
	raw    bool
	json   bool
	output string
}

func newTranslateCmd(deps *Dependencies, opts *globalOptions) *cobra.Command {
	o := &translateOptions{}

	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate a single message",
		Long: `Translate a single message and print the result with its medical terms,
suggested departments and anatomical diagram link.

The text is read from the arguments, or from stdin when none are given.
Languages default to the configured source and target.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, cmd.InOrStdin(), cmd.InOrStdin() != os.Stdin || isStdinPiped())
			if err != nil {
				return err
			}
			if text == "" {
				return errors.New("text cannot be empty")
			}
			return runTranslate(cmd, deps, opts, o, text)
		},
	}

	cmd.Flags().StringVarP(&o.from, "from", "s", "", "Source language code")
	cmd.Flags().StringVarP(&o.to, "to", "t", "", "Target language code")
	cmd.Flags().BoolVar(&o.raw, "raw", false, "Print only the translated text")
	cmd.Flags().BoolVar(&o.json, "json", false, "Print the full result as JSON")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Save the result to a file")

	return cmd
}

// resolveLanguages applies flag overrides to the configured pair
func resolveLanguages(from, to, defFrom, defTo string) (string, string, error) {
	source, target := defFrom, defTo
	if from != "" {
		source = strings.ToLower(from)
	}
	if to != "" {
		target = strings.ToLower(to)
	}
	if !models.IsSupportedLanguage(source) {
		return "", "", fmt.Errorf("unsupported source language: %s", source)
	}
	if !models.IsSupportedLanguage(target) {
		return "", "", fmt.Errorf("unsupported target language: %s", target)
	}
	return source, target, nil
}

func runTranslate(cmd *cobra.Command, deps *Dependencies, opts *globalOptions, o *translateOptions, text string) error {
	rt, err := deps.open(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	source, target, err := resolveLanguages(o.from, o.to, rt.cfg.SourceLang, rt.cfg.TargetLang)
	if err != nil {
		return err
	}
	req := models.TranslateRequest{Text: text, Source: source, Target: target}

	decorated := !o.raw && !o.json && isStdoutTTY()
	spin := startProgress(decorated, "Translating")

	tr, err := rt.client.Translate(context.Background(), req)
	if err != nil {
		spin.fail()
		if !o.raw {
			fmt.Fprintln(cmd.ErrOrStderr(), formatErrorMessage(err, "Translation failed", rt.cfg.BackendURL))
		}
		rt.logger.Warn("translate failed", zap.Error(err))
		return fmt.Errorf("translation failed: %w", err)
	}
	spin.success(fmt.Sprintf("%s → %s", models.LanguageName(source), models.LanguageName(target)))

	var out string
	switch {
	case o.json:
		out, err = translationJSON(req, tr)
		if err != nil {
			return err
		}
		out += "\n"
	case o.raw:
		out = tr.Text() + "\n"
	case decorated && o.output == "":
		out = styledTranslation(tr, target, render.OptionsFromConfig(rt.cfg.Markdown), bubbleWidth()) + "\n"
	default:
		out = plainTranslation(tr)
	}

	return writeResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), o.output, out)
}

// writeResult prints out, or saves it to path when one is given
func writeResult(stdout, stderr io.Writer, path, out string) error {
	if path == "" {
		_, err := io.WriteString(stdout, out)
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(stderr, "Saved to %s\n", path)
	return nil
}
