// Package responsewriter records the status and size of HTTP responses for
// the logging, metrics and tracing middleware.
package responsewriter

import "net/http"

// Recorder wraps an http.ResponseWriter and remembers what was written.
type Recorder struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

// Wrap returns a Recorder around w. Status defaults to 200.
func Wrap(w http.ResponseWriter) *Recorder {
	return &Recorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code only.
func (r *Recorder) WriteHeader(code int) {
	if r.wroteHeader {
		return
	}
	r.status = code
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(code)
}

func (r *Recorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Flush forwards to the wrapped writer when it supports flushing.
func (r *Recorder) Flush() {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Status returns the recorded status code.
func (r *Recorder) Status() int { return r.status }

// Size returns the number of body bytes written.
func (r *Recorder) Size() int { return r.size }

// Unwrap supports http.ResponseController.
func (r *Recorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
