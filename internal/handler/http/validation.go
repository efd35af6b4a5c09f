package http

import (
	"mime"
	"net/http"
)

// maxPathLength bounds the request URI path.
const maxPathLength = 2048

// InputValidation returns middleware that rejects oversized paths and
// request bodies that are not JSON, then caps the body at maxBody bytes.
func InputValidation(maxBody int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > maxPathLength {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestURITooLong)
				_, _ = w.Write([]byte(`{"error":"URI too long"}`))
				return
			}

			if r.Method == http.MethodPost && r.ContentLength != 0 {
				if ct := r.Header.Get("Content-Type"); ct != "" {
					mt, _, err := mime.ParseMediaType(ct)
					if err != nil || mt != "application/json" {
						w.Header().Set("Content-Type", "application/json")
						w.WriteHeader(http.StatusUnsupportedMediaType)
						_, _ = w.Write([]byte(`{"error":"content type must be application/json"}`))
						return
					}
				}
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBody)
			next.ServeHTTP(w, r)
		})
	}
}
