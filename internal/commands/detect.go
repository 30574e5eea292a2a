package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDetectCmd(deps *Dependencies, opts *globalOptions) *cobra.Command {
	var codeOnly bool

	cmd := &cobra.Command{
		Use:   "detect [text]",
		Short: "Detect the language of a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, cmd.InOrStdin(), cmd.InOrStdin() != os.Stdin || isStdinPiped())
			if err != nil {
				return err
			}
			if text == "" {
				return errors.New("text cannot be empty")
			}

			rt, err := deps.open(opts)
			if err != nil {
				return err
			}
			defer rt.close()

			code, err := rt.client.Detect(context.Background(), text)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), formatErrorMessage(err, "Detection failed", rt.cfg.BackendURL))
				return fmt.Errorf("detection failed: %w", err)
			}

			if codeOnly {
				fmt.Fprintln(cmd.OutOrStdout(), code)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, languageLabel(code))
			return nil
		},
	}

	cmd.Flags().BoolVar(&codeOnly, "code", false, "Print only the language code")
	return cmd
}
