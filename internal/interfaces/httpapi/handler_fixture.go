package httpapi

import (
	"net/http"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetFixtureDifficulty(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixtureDifficulty")
	defer span.End()

	query := r.URL.Query()
	window, err := queryInt(query, "window")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	weight, err := queryFloat(query, "weight")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, difficultyRequest{Window: window, Weight: weight}); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.suggestionService.TeamDifficulties(ctx, window, weight)
	if err != nil {
		h.logger.WarnContext(ctx, "fixture difficulty failed", "window", window, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, difficultyToDTO(report))
}
