package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"cupcake-backend/application/services"
	"cupcake-backend/domain/checkout"
	"cupcake-backend/interfaces/http/rest/middleware"
	"cupcake-backend/pkg/common"
	pkgerrors "cupcake-backend/pkg/errors"
	"cupcake-backend/pkg/utils"
)

// CheckoutHandler handles checkout workflow HTTP requests
type CheckoutHandler struct {
	checkout *services.CheckoutService
	logger   *zap.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout *services.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, logger: logger}
}

// PaymentRequest represents the request body for the payment step
type PaymentRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=pay-now pay-on-pickup"`
}

// SubmitDelivery handles POST /checkout/delivery
func (h *CheckoutHandler) SubmitDelivery(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("no session on request", nil))
		return
	}

	var req services.DeliveryInput
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewInvalidInputError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.checkout.SubmitDelivery(r.Context(), sess, req); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"stage":         sess.Stage,
		"deliveryPrice": sess.DeliveryPrice.StringFixed(2),
		"orderTotal":    sess.OrderTotal().StringFixed(2),
	})
}

// SubmitContact handles POST /checkout/contact. A logged-in visitor's
// stored profile wins over any submitted contact details.
func (h *CheckoutHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("no session on request", nil))
		return
	}

	if sess.BuyerID != 0 {
		if err := h.checkout.SubmitContactAsBuyer(r.Context(), sess, sess.BuyerID); err != nil {
			common.RespondAppError(w, err)
			return
		}
		common.RespondJSON(w, http.StatusOK, map[string]interface{}{"stage": sess.Stage})
		return
	}

	var req services.ContactInput
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewInvalidInputError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.checkout.SubmitContact(r.Context(), sess, req); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"stage": sess.Stage})
}

// GetPayment handles GET /checkout/payment
func (h *CheckoutHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("no session on request", nil))
		return
	}

	view, err := h.checkout.Payment(sess)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, view)
}

// SubmitPayment handles POST /checkout/payment
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("no session on request", nil))
		return
	}

	var req PaymentRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewInvalidInputError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	o, err := h.checkout.SubmitPayment(r.Context(), sess, req.PaymentMethod == "pay-now")
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, o)
}

// GetConfirmation handles GET /checkout/confirmation
func (h *CheckoutHandler) GetConfirmation(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("no session on request", nil))
		return
	}

	o, err := h.checkout.Confirmation(sess)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, o)
}

// Restart handles POST /checkout/restart
func (h *CheckoutHandler) Restart(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("no session on request", nil))
		return
	}

	if err := h.checkout.Restart(r.Context(), sess); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]checkout.Stage{"stage": sess.Stage})
}
