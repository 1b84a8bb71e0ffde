package rides

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ride-request-service/internal/outcome"
)

// Handler exposes ride request HTTP endpoints.
type Handler struct {
	pipeline *Pipeline
	maxBody  int64
}

// NewHandler wires a handler to the pipeline. Bodies larger than maxBody
// bytes are rejected.
func NewHandler(p *Pipeline, maxBody int64) *Handler {
	return &Handler{pipeline: p, maxBody: maxBody}
}

// Routes returns a chi.Router with all ride request routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	return r
}

// Create handles POST /ride-requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeEnvelope(w, Format(outcome.BadRequest[struct{}]("Request body too large")))
			return
		}
		writeEnvelope(w, Format(outcome.BadRequest[struct{}](msgInvalidJSON)))
		return
	}

	writeEnvelope(w, Format(h.pipeline.Handle(r.Context(), body)))
}

func writeEnvelope(w http.ResponseWriter, env Envelope) {
	for k, v := range env.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(env.StatusCode)
	io.WriteString(w, env.Body)
}
