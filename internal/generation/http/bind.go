package http

import (
	"errors"
	nethttp "net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/composer"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/service"
)

var errInvalidBody = errors.New("invalid body")

// BindRequest reads a prompt submission sent either as JSON or as a
// multipart form with an optional "image" file part.
func BindRequest(c *gin.Context) (service.Request, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return bindMultipart(c)
	}

	var body GenerateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return service.Request{}, errInvalidBody
	}
	img, err := composer.DecodeImageField(body.ImageBase64, body.ImageMIME)
	if err != nil {
		return service.Request{}, err
	}
	return service.Request{
		Requirement: body.Requirement,
		Data:        body.Data,
		Image:       img,
		Previous:    body.Previous,
	}, nil
}

func bindMultipart(c *gin.Context) (service.Request, error) {
	req := service.Request{
		Requirement: c.PostForm("requirement"),
		Data:        c.PostForm("data"),
	}

	fh, err := c.FormFile("image")
	if errors.Is(err, nethttp.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return req, errInvalidBody
	}
	if fh.Size > composer.MaxImageBytes {
		return req, composer.ErrImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return req, err
	}
	defer f.Close()

	mime := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(mime, "image/") {
		mime = ""
	}
	img, err := composer.EncodeImage(f, mime)
	if err != nil {
		return req, err
	}
	req.Image = img
	return req, nil
}
