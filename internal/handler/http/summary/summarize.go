package summary

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ytldr/internal/handler/http/respond"
)

// SummarizeHandler handles POST /summaries.
type SummarizeHandler struct {
	Svc     Service
	Limiter Limiter
}

func (h SummarizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, ok := decode(w, r)
	if !ok {
		return
	}
	if !admit(w, r, h.Limiter) {
		return
	}

	res, err := h.Svc.Summarize(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

// ForensicHandler handles POST /summaries/forensic.
type ForensicHandler struct {
	Svc     Service
	Limiter Limiter
}

func (h ForensicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, ok := decode(w, r)
	if !ok {
		return
	}
	if !admit(w, r, h.Limiter) {
		return
	}

	in := req.toInput()
	in.Forensic = true
	res, err := h.Svc.SummarizeForensic(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

// OptionsHandler handles GET /summaries/options.
type OptionsHandler struct{ Svc Service }

func (h OptionsHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	opts := h.Svc.Options()
	respond.JSON(w, http.StatusOK, OptionsResponse{
		Types:   h.Svc.SupportedTypes(),
		Lengths: opts.Lengths,
		Formats: opts.Formats,
		Focuses: opts.Focuses,
	})
}

func decode(w http.ResponseWriter, r *http.Request) (SummarizeRequest, bool) {
	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.SafeError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request body too long: limit is %d bytes", maxErr.Limit))
			return req, false
		}
		respond.SafeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err))
		return req, false
	}
	return req, true
}

func admit(w http.ResponseWriter, r *http.Request, l Limiter) bool {
	if l == nil {
		return true
	}
	if err := l.Allow(); err != nil {
		w.Header().Set("Retry-After", "1")
		respond.SafeError(w, r, http.StatusTooManyRequests,
			respond.NewAppError(http.StatusTooManyRequests, "rate limit exceeded: wait before sending another request", err))
		return false
	}
	return true
}
