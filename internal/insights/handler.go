package insights

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/transport"
)

type ServiceAPI interface {
	Refresh(ctx context.Context) (Snapshot, error)
}

type HomeResponse struct {
	Remaining float64          `json:"remaining"`
	Budget    float64          `json:"budget"`
	Latest    []expense.Record `json:"latest"`
	Alerts    []string         `json:"alerts,omitempty"`
}

type InsightsResponse struct {
	Snapshot
	Alerts []string `json:"alerts,omitempty"`
}

type Handler struct {
	*transport.BaseHandler
	Service     ServiceAPI
	ChartConfig internal.ChartConfig
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, chartCfg internal.ChartConfig) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		ChartConfig: chartCfg,
	}
}

func (h *Handler) GetHome(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Service.Refresh(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, HomeResponse{
		Remaining: snap.Remaining,
		Budget:    snap.Budget,
		Latest:    snap.Latest,
		Alerts:    events.AlertMessages(r.Context()),
	})
}

func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Service.Refresh(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, InsightsResponse{
		Snapshot: snap,
		Alerts:   events.AlertMessages(r.Context()),
	})
}

func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Service.Refresh(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := RenderPie(&buf, ChartTitle(snap), snap.Pie, h.ChartConfig.Width, h.ChartConfig.Height); err != nil {
		if errors.Is(err, internal.ErrNothingToChart) {
			h.HandleServiceError(w, err)
			return
		}
		h.Logger.Error("GetChart: render failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.Logger.Error("GetChart: write failed", "error", err)
	}
}
