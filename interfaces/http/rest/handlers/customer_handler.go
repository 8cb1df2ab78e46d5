package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cupcake-backend/application/services"
	"cupcake-backend/pkg/common"
	pkgerrors "cupcake-backend/pkg/errors"
	"cupcake-backend/pkg/utils"
)

// CustomerHandler handles the admin customer views
type CustomerHandler struct {
	identity *services.IdentityService
	logger   *zap.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(identity *services.IdentityService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{identity: identity, logger: logger}
}

// AddBalanceRequest represents the request body for crediting a balance
type AddBalanceRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// List handles GET /admin/customers. An optional q parameter filters by
// name or email.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.identity.SearchCustomers(r.Context(), actingBuyerID(r), r.URL.Query().Get("q"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, customers)
}

// AddBalance handles POST /admin/customers/{id}/balance
func (h *CustomerHandler) AddBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req AddBalanceRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewInvalidInputError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		common.RespondAppError(w, pkgerrors.NewInvalidInputError("amount must be a decimal number"))
		return
	}

	b, err := h.identity.AddBalance(r.Context(), actingBuyerID(r), id, amount)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, b)
}
