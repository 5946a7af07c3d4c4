package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/usecase"
)

func (h *Handler) ListSquadSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSquadSuggestions")
	defer span.End()

	req, err := parseSuggestQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	budget, err := budgetToTenths(req.Budget)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := req.toInput(budget)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.suggestionService.SuggestSquads(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "suggest squads failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suggestionToDTO(ctx, result))
}

func (h *Handler) OptimizeSquads(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OptimizeSquads")
	defer span.End()

	var req optimizeRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.suggestionService.OptimizeInline(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "optimize inline squads failed", "players", len(input.Players), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suggestionToDTO(ctx, result))
}

func (h *Handler) SweepSquadBudgets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SweepSquadBudgets")
	defer span.End()

	var req sweepRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	budgets, err := req.budgetsInTenths()
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := req.toInput(0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.suggestionService.SweepBudgets(ctx, input, budgets)
	if err != nil {
		h.logger.WarnContext(ctx, "budget sweep failed", "budgets", len(budgets), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sweepToDTO(ctx, result))
}
