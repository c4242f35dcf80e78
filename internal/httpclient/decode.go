package httpclient

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

// DecodeBody wraps resp.Body with the decoder matching its Content-Encoding.
// The transport has transparent decompression disabled, so this is the only
// place response bodies are inflated. Identity and unknown encodings pass
// through untouched; closing the returned reader closes resp.Body.
func DecodeBody(resp *http.Response) (io.ReadCloser, error) {
	enc := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch enc {
	case "", "identity":
		return resp.Body, nil
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip body: %w", err)
		}
		return &wrappedBody{Reader: zr, closer: resp.Body}, nil
	case "br":
		return &wrappedBody{Reader: brotli.NewReader(resp.Body), closer: resp.Body}, nil
	default:
		return resp.Body, nil
	}
}

type wrappedBody struct {
	io.Reader
	closer io.Closer
}

func (w *wrappedBody) Close() error {
	if rc, ok := w.Reader.(io.Closer); ok {
		rc.Close()
	}
	return w.closer.Close()
}
