package budget

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal/transport"
)

type ServiceAPI interface {
	SaveBudget(ctx context.Context, input string) (*BudgetResponse, error)
	DeleteBudget(ctx context.Context) (*BudgetResponse, error)
	GetBudget(ctx context.Context) (*BudgetResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.GetBudget(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) SaveBudget(w http.ResponseWriter, r *http.Request) {
	var dto SaveBudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.SaveBudget(r.Context(), dto.Amount.String())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.DeleteBudget(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}
