// Package images turns a photo file into the data URI stored on a contact.
package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"os"

	// registered decoders for image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/logging"
)

// Result is the outcome of one Load.
type Result struct {
	DataURI string
	Format  string
	Err     error
}

// Loader reads photos off disk. A zero MaxBytes disables the size check.
type Loader struct {
	MaxBytes int64
	logger   logging.Logger
}

func NewLoader(maxBytes int64, logger logging.Logger) *Loader {
	return &Loader{MaxBytes: maxBytes, logger: logger}
}

// Load reads path in the background. The returned channel receives exactly
// one Result and is then closed.
func (l *Loader) Load(ctx context.Context, path string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		uri, format, err := l.load(ctx, path)
		if err != nil {
			l.logger.Warn(ctx, "photo load failed", "path", path, "error", err)
		}
		out <- Result{DataURI: uri, Format: format, Err: err}
	}()
	return out
}

// LoadDataURI waits for Load. Cancelling ctx returns ctx.Err() without
// waiting for the read.
func (l *Loader) LoadDataURI(ctx context.Context, path string) (string, error) {
	select {
	case r := <-l.Load(ctx, path):
		return r.DataURI, r.Err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (l *Loader) load(ctx context.Context, path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	if l.MaxBytes > 0 {
		st, err := f.Stat()
		if err != nil {
			return "", "", fmt.Errorf("stat photo: %w", err)
		}
		if st.Size() > l.MaxBytes {
			return "", "", fmt.Errorf("%w: %d bytes, limit %d", common.ErrorImageTooLarge, st.Size(), l.MaxBytes)
		}
	}

	var r io.Reader = f
	if l.MaxBytes > 0 {
		// the file may grow between Stat and Read
		r = io.LimitReader(f, l.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("read photo: %w", err)
	}
	if l.MaxBytes > 0 && int64(len(data)) > l.MaxBytes {
		return "", "", fmt.Errorf("%w: limit %d", common.ErrorImageTooLarge, l.MaxBytes)
	}

	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	uri, format, err := Encode(data)
	if err != nil {
		return "", "", err
	}
	return uri, format, nil
}

// Encode validates data as an image and returns it as a base64 data URI
// together with the detected format name.
func Encode(data []byte) (string, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", common.ErrorNotAnImage, err)
	}
	return "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data), format, nil
}
