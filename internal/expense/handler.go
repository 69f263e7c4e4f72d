package expense

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	AddExpense(ctx context.Context, dto CreateExpenseDTO) (*Record, error)
	ListExpenses(ctx context.Context, source Source) (*ListResponse, error)
	Search(ctx context.Context, query string) ([]Record, error)
	Filter(ctx context.Context, dto FilterDTO) ([]Record, error)
	GetExpense(ctx context.Context, ref string, source Source) (*Record, error)
	CategoryDetail(ctx context.Context, category string) (*CategoryDetail, error)
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

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Warn("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.AddExpense(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ExpenseResponse{
		Expense: *record,
		Alerts:  events.AlertMessages(r.Context()),
	})
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	source := SourceFromFlags(h.QueryFlag(r, "search"), h.QueryFlag(r, "filtered"))

	list, err := h.Service.ListExpenses(r.Context(), source)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	source := SourceFromFlags(h.QueryFlag(r, "search"), h.QueryFlag(r, "filtered"))

	record, err := h.Service.GetExpense(r.Context(), chi.URLParam(r, "id"), source)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) SearchExpenses(w http.ResponseWriter, r *http.Request) {
	var dto SearchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	records, err := h.Service.Search(r.Context(), dto.Query)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, RecordsResponse{Count: len(records), Records: records})
}

func (h *Handler) FilterExpenses(w http.ResponseWriter, r *http.Request) {
	var dto FilterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	records, err := h.Service.Filter(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, RecordsResponse{Count: len(records), Records: records})
}

func (h *Handler) GetCategoryDetail(w http.ResponseWriter, r *http.Request) {
	category, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category")
		return
	}

	detail, err := h.Service.CategoryDetail(r.Context(), category)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}
