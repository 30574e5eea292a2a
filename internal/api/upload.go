package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/medilingua/internal/errors"
	"github.com/diogo/medilingua/internal/models"
)

const (
	MaxImageSize = 20 * 1024 * 1024 // 20MB
)

// DetectMIMEType guesses the MIME type of a file from its extension
func DetectMIMEType(filePath string) string {
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filePath)))
	if mimeType == "" {
		return "application/octet-stream"
	}
	return mimeType
}

// IsImageType reports whether mimeType is any image/* type
func IsImageType(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

// ProcessImage uploads an image from disk for OCR and returns the extracted text
func (c *Client) ProcessImage(ctx context.Context, filePath string) (string, error) {
	mimeType := DetectMIMEType(filePath)
	if !IsImageType(mimeType) {
		return "", fmt.Errorf("%w: %s", apierrors.ErrUnsupportedMedia, mimeType)
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	if fileInfo.Size() > MaxImageSize {
		return "", fmt.Errorf("file size exceeds maximum %d bytes", MaxImageSize)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return c.ProcessImageFromReader(ctx, file, filepath.Base(filePath), mimeType)
}

// ProcessImageFromReader uploads image data from a reader for OCR
func (c *Client) ProcessImageFromReader(ctx context.Context, reader io.Reader, fileName, mimeType string) (string, error) {
	if !IsImageType(mimeType) {
		return "", fmt.Errorf("%w: %s", apierrors.ErrUnsupportedMedia, mimeType)
	}

	data, err := io.ReadAll(io.LimitReader(reader, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read data: %w", err)
	}
	if int64(len(data)) > MaxImageSize {
		return "", fmt.Errorf("data size exceeds maximum %d bytes", MaxImageSize)
	}

	body, contentType, err := buildMultipart(fileName, data)
	if err != nil {
		return "", err
	}

	respBody, status, err := c.post(ctx, models.EndpointProcessImage, contentType, body)
	if err != nil {
		return "", err
	}

	return parseImageResponse(respBody, status)
}

func buildMultipart(fileName string, data []byte) ([]byte, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("failed to write file data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return body.Bytes(), writer.FormDataContentType(), nil
}

// parseImageResponse maps a /process_image reply to text or an error.
// A non-success status with an {error} body is server-reported; anything
// unreadable is treated like a transport failure.
func parseImageResponse(body []byte, status int) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response is not valid JSON", "")
	}

	if !isSuccess(status) {
		return "", apierrors.NewImageError(status, gjson.GetBytes(body, PathError).String())
	}

	text := gjson.GetBytes(body, PathExtractedText)
	if !text.Exists() {
		return "", apierrors.NewParseError("missing extracted text", PathExtractedText)
	}
	return text.String(), nil
}
