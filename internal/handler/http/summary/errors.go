package summary

import (
	"errors"
	"net/http"

	"ytldr/internal/domain/entity"
	"ytldr/internal/handler/http/respond"
	"ytldr/internal/infra/completion"
	"ytldr/internal/infra/extractor"
	"ytldr/internal/resilience/retry"
)

// writeError maps pipeline errors to HTTP responses.
//
//	invalid input                      -> 400
//	content that cannot be extracted   -> 422
//	min-interval rejection             -> 429
//	completion or page fetch failure   -> 502
//	everything else                    -> 500
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *entity.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		respond.SafeError(w, r, http.StatusBadRequest,
			respond.NewAppError(http.StatusBadRequest, invalid.Error(), nil))
	case errors.Is(err, entity.ErrInvalidInput):
		respond.SafeError(w, r, http.StatusBadRequest, err)
	case errors.Is(err, completion.ErrTooSoon):
		respond.SafeError(w, r, http.StatusTooManyRequests,
			respond.NewAppError(http.StatusTooManyRequests, "rate limit exceeded: wait before sending another request", err))
	case errors.Is(err, extractor.ErrInvalidURL),
		errors.Is(err, extractor.ErrPrivateIP):
		respond.SafeError(w, r, http.StatusBadRequest,
			respond.NewAppError(http.StatusBadRequest, "invalid url: it must be a public http(s) address", err))
	case errors.Is(err, extractor.ErrTranscriptUnavailable):
		respond.SafeError(w, r, http.StatusUnprocessableEntity,
			respond.NewAppError(http.StatusUnprocessableEntity, "transcript unavailable: send the transcript text instead of the media url", err))
	case errors.Is(err, extractor.ErrPDFUnreadable),
		errors.Is(err, extractor.ErrReadabilityFailed),
		errors.Is(err, extractor.ErrBodyTooLarge):
		respond.SafeError(w, r, http.StatusUnprocessableEntity,
			respond.NewAppError(http.StatusUnprocessableEntity, "content could not be extracted", err))
	case errors.Is(err, entity.ErrCompletionService):
		respond.SafeError(w, r, http.StatusBadGateway,
			respond.NewAppError(http.StatusBadGateway, "summarization service unavailable", err))
	case isUpstream(err):
		respond.SafeError(w, r, http.StatusBadGateway,
			respond.NewAppError(http.StatusBadGateway, "source page could not be fetched", err))
	default:
		respond.SafeError(w, r, http.StatusInternalServerError, err)
	}
}

func isUpstream(err error) bool {
	var httpErr *retry.HTTPError
	return errors.As(err, &httpErr) ||
		errors.Is(err, extractor.ErrTimeout) ||
		errors.Is(err, extractor.ErrTooManyRedirects)
}
