package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"cupcake-backend/application/services"
	"cupcake-backend/pkg/common"
	pkgerrors "cupcake-backend/pkg/errors"
	"cupcake-backend/pkg/utils"
)

// OrderHandler handles order HTTP requests, both the buyer-facing reads
// and the admin lifecycle operations.
type OrderHandler struct {
	orders *services.OrderService
	logger *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *services.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// SetPaidRequest represents the request body for flipping payment status
type SetPaidRequest struct {
	Paid *bool `json:"paid" validate:"required"`
}

// ListMine handles GET /orders
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListForBuyer(r.Context(), actingBuyerID(r))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, orders)
}

// Get handles GET /orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	o, err := h.orders.GetOrder(r.Context(), actingBuyerID(r), id)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, o)
}

// ListAll handles GET /admin/orders. An optional paid query parameter
// filters by payment status.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	actorID := actingBuyerID(r)

	if p := r.URL.Query().Get("paid"); p != "" {
		paid, err := strconv.ParseBool(p)
		if err != nil {
			common.RespondAppError(w, pkgerrors.NewInvalidInputError("paid must be true or false"))
			return
		}
		orders, err := h.orders.ListByStatus(r.Context(), actorID, paid)
		if err != nil {
			common.RespondAppError(w, err)
			return
		}
		common.RespondJSON(w, http.StatusOK, orders)
		return
	}

	orders, err := h.orders.ListAll(r.Context(), actorID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, orders)
}

// SetPaid handles PATCH /admin/orders/{id}/paid
func (h *OrderHandler) SetPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req SetPaidRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewInvalidInputError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.orders.SetPaymentStatus(r.Context(), actingBuyerID(r), id, *req.Paid); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete handles DELETE /admin/orders/{id}. A refund=true query
// parameter credits the buyer's balance when the order was paid.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	refund := false
	if q := r.URL.Query().Get("refund"); q != "" {
		var err error
		refund, err = strconv.ParseBool(q)
		if err != nil {
			common.RespondAppError(w, pkgerrors.NewInvalidInputError("refund must be true or false"))
			return
		}
	}

	if err := h.orders.DeleteOrder(r.Context(), actingBuyerID(r), id, refund); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Revenue handles GET /admin/revenue. An optional month=YYYY-MM query
// parameter narrows the total to one month.
func (h *OrderHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	actorID := actingBuyerID(r)

	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			common.RespondAppError(w, pkgerrors.NewInvalidInputError("month must look like 2026-08"))
			return
		}
		total, err := h.orders.MonthlyRevenue(r.Context(), actorID, parsed.Year(), parsed.Month())
		if err != nil {
			common.RespondAppError(w, err)
			return
		}
		common.RespondJSON(w, http.StatusOK, map[string]string{
			"month":   m,
			"revenue": total.StringFixed(2),
		})
		return
	}

	total, err := h.orders.TotalRevenue(r.Context(), actorID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	avg, err := h.orders.AverageOrderValue(r.Context(), actorID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"totalRevenue":      total.StringFixed(2),
		"averageOrderValue": avg.StringFixed(2),
	})
}
