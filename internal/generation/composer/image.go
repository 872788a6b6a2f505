package composer

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

// MaxImageBytes bounds the size of an uploaded reference image.
const MaxImageBytes = 20 << 20

var ErrImageTooLarge = errors.New("image exceeds size limit")

// EncodeImage reads an image fully and base64-encodes it. When mime is empty
// the type is sniffed from the content.
func EncodeImage(r io.Reader, mime string) (*domain.Image, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(b) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	if len(b) == 0 {
		return nil, errors.New("image is empty")
	}
	if mime == "" {
		mime = http.DetectContentType(b)
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("unsupported image type %q", mime)
	}
	return &domain.Image{MIMEType: mime, Base64: base64.StdEncoding.EncodeToString(b)}, nil
}

// DecodeImageField accepts either a raw base64 payload or a data URL.
func DecodeImageField(value, mime string) (*domain.Image, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if strings.HasPrefix(value, "data:") {
		head, payload, ok := strings.Cut(value, ",")
		if !ok || !strings.HasSuffix(head, ";base64") {
			return nil, errors.New("image data URL must be base64 encoded")
		}
		mime = strings.TrimSuffix(strings.TrimPrefix(head, "data:"), ";base64")
		value = payload
	}
	if base64.StdEncoding.DecodedLen(len(value)) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	if _, err := base64.StdEncoding.DecodeString(value); err != nil {
		return nil, fmt.Errorf("image is not valid base64: %w", err)
	}
	if mime == "" {
		mime = "image/jpeg"
	}
	return &domain.Image{MIMEType: mime, Base64: value}, nil
}
