package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/diogo/medilingua/internal/api"
	apierrors "github.com/diogo/medilingua/internal/errors"
	"github.com/diogo/medilingua/internal/models"
)

// ErrNotImage is returned for files that are not image/*; callers ignore it
var ErrNotImage = errors.New("not an image file")

// ImageUpload tracks one OCR upload and the placeholder message it owns
type ImageUpload struct {
	Path      string
	Name      string
	MessageID string
}

// BeginImage validates path and appends the upload placeholder message
func (o *Orchestrator) BeginImage(path string) (*ImageUpload, error) {
	mimeType := api.DetectMIMEType(path)
	if !api.IsImageType(mimeType) {
		o.logger.Debug("ignoring non-image file",
			zap.String("path", path),
			zap.String("mime", mimeType))
		return nil, ErrNotImage
	}

	name := filepath.Base(path)
	msg := o.store.AppendUserMessage(fmt.Sprintf(models.ImagePlaceholderFormat, name), o.input.Source())

	return &ImageUpload{Path: path, Name: name, MessageID: msg.ID}, nil
}

// Upload sends the image to the backend and returns the extracted text
func (o *Orchestrator) Upload(ctx context.Context, up *ImageUpload) (string, error) {
	return o.client.ProcessImage(ctx, up.Path)
}

// ImageDone records an upload outcome.
// On success the placeholder text is replaced and the extracted text is
// submitted for translation; the submission is nil when the busy or empty
// guards reject it. On failure a bot error message is appended.
func (o *Orchestrator) ImageDone(up *ImageUpload, text string, err error) (*Submission, error) {
	if err != nil {
		var reply string
		if imgErr, ok := apierrors.AsImageError(err); ok {
			reply = fmt.Sprintf(models.ImageServerErrorFormat, imgErr.Message)
		} else {
			reply = models.ImageTransportErrorText
		}
		o.logger.Warn("image processing failed", zap.String("file", up.Name), zap.Error(err))
		o.store.AppendBotMessage(models.NewBotMessage(reply, models.DefaultDisplayLang))
		return nil, err
	}

	o.store.ReplaceText(up.MessageID, text)

	sub, subErr := o.Submit(text)
	if subErr != nil {
		o.logger.Debug("extracted text not submitted", zap.Error(subErr))
		return nil, nil
	}
	return sub, nil
}
