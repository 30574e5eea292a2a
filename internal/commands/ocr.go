package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/medilingua/internal/api"
	apierrors "github.com/diogo/medilingua/internal/errors"
	"github.com/diogo/medilingua/internal/models"
)

func newOCRCmd(deps *Dependencies, opts *globalOptions) *cobra.Command {
	o := &translateOptions{}
	var translate bool

	cmd := &cobra.Command{
		Use:   "ocr <image>",
		Short: "Extract text from a prescription image",
		Long: `Upload an image to the backend and print the text it extracted.

With --translate the extracted text is translated as if it had been typed
into the chat.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !isImageFile(path) {
				return fmt.Errorf("not an image: %s", path)
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			rt, err := deps.open(opts)
			if err != nil {
				return err
			}
			defer rt.close()

			spin := startProgress(isStdoutTTY(), "Processing image")
			text, err := rt.client.ProcessImage(context.Background(), path)
			if err != nil {
				spin.fail()
				if ie, ok := apierrors.AsImageError(err); ok {
					fmt.Fprintf(cmd.ErrOrStderr(), models.ImageServerErrorFormat+"\n", ie.Message)
				} else {
					fmt.Fprintln(cmd.ErrOrStderr(), formatErrorMessage(err, "Image processing failed", rt.cfg.BackendURL))
				}
				rt.logger.Warn("image processing failed", zap.String("file", filepath.Base(path)), zap.Error(err))
				return fmt.Errorf("image processing failed: %w", err)
			}
			spin.success("Text extracted")

			if !translate {
				return writeResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), o.output, text+"\n")
			}

			source, target, err := resolveLanguages(o.from, o.to, rt.cfg.SourceLang, rt.cfg.TargetLang)
			if err != nil {
				return err
			}
			req := models.TranslateRequest{Text: text, Source: source, Target: target}
			tr, err := rt.client.Translate(context.Background(), req)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), formatErrorMessage(err, "Translation failed", rt.cfg.BackendURL))
				return fmt.Errorf("translation failed: %w", err)
			}

			out := plainTranslation(tr)
			if o.json {
				if out, err = translationJSON(req, tr); err != nil {
					return err
				}
				out += "\n"
			}
			return writeResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), o.output, out)
		},
	}

	cmd.Flags().BoolVar(&translate, "translate", false, "Translate the extracted text")
	cmd.Flags().StringVarP(&o.from, "from", "s", "", "Source language code")
	cmd.Flags().StringVarP(&o.to, "to", "t", "", "Target language code")
	cmd.Flags().BoolVar(&o.json, "json", false, "Print the translation as JSON")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Save the result to a file")

	return cmd
}

func isImageFile(path string) bool {
	return strings.HasPrefix(api.DetectMIMEType(path), "image/")
}
