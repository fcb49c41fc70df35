package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// DefaultGzipMinSize is the smallest response body worth compressing
const DefaultGzipMinSize = 1024

// Gzip returns a wrapper compressing responses of at least minSize bytes
// for clients that accept gzip.
func Gzip(minSize int) (func(http.Handler) http.Handler, error) {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(minSize))
	if err != nil {
		return nil, err
	}
	return func(h http.Handler) http.Handler {
		return wrap(h)
	}, nil
}
