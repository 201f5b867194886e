package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID tags every request with a trace identifier so all log
// lines written while handling it can be correlated. An identifier
// supplied by the caller is kept, otherwise a fresh one is generated.
// The identifier is echoed back in the response header and a request
// scoped child logger carrying it is placed on the context for the
// logging middleware and the handlers downstream.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		w.Header().Set(traceIDHeader, traceID)

		log := h.logger.GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
	})
}
