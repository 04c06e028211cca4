package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrAvatarNotImage = errors.New("avatar must be an image")
	ErrNoAvatar       = errors.New("no avatar file provided")
)

// AvatarValidator opens the uploaded file and sniffs its real content type,
// headers alone are trivial to spoof. The returned reader is rewound and
// ready for upload.
func AvatarValidator(fh *multipart.FileHeader) (multipart.File, string, error) {
	if fh == nil {
		return nil, "", ErrNoAvatar
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return nil, "", err
	}

	if !strings.HasPrefix(mime.String(), "image/") {
		f.Close()
		return nil, "", ErrAvatarNotImage
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, "", err
	}

	return f, mime.String(), nil
}
