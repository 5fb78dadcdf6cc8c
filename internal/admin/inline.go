package admin

import (
	"encoding/base64"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dreammattress/storefront/pkg/errors"
)

// InlineImage reads an uploaded file and returns it as a self-contained
// data URL (data:<mime>;base64,<payload>). The type is sniffed from the
// content rather than trusted from the client. Size is not limited here.
func InlineImage(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.WrapIO("read", "upload", err)
	}
	if len(data) == 0 {
		return "", errors.NewValidationError("image", "", "uploaded file is empty")
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", errors.NewValidationError("image", mtype.String(), "uploaded file is not an image")
	}

	// Drop parameters such as "; charset=utf-8" that SVG detection adds.
	mediaType, _, _ := strings.Cut(mtype.String(), ";")
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// inlineFormFile converts the first file under key, if any, to a data URL.
// A missing file yields "" with no error.
func inlineFormFile(form *multipart.Form, key string) (string, error) {
	if form == nil || form.File == nil {
		return "", nil
	}
	headers := form.File[key]
	if len(headers) == 0 || headers[0].Size == 0 {
		return "", nil
	}

	f, err := headers[0].Open()
	if err != nil {
		return "", errors.WrapIO("open", headers[0].Filename, err)
	}
	defer func() { _ = f.Close() }()

	return InlineImage(f)
}
