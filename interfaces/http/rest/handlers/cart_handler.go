package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cupcake-backend/application/services"
	"cupcake-backend/domain/checkout"
	"cupcake-backend/interfaces/http/rest/middleware"
	"cupcake-backend/pkg/common"
	pkgerrors "cupcake-backend/pkg/errors"
	"cupcake-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	cart   *services.CartService
	logger *zap.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cart *services.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, logger: logger}
}

// AddLineRequest represents the request body for adding a cart line
type AddLineRequest struct {
	BottomID  int64 `json:"bottomId" validate:"required"`
	ToppingID int64 `json:"toppingId" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// CartResponse is the cart view returned by every cart mutation.
type CartResponse struct {
	Lines         interface{} `json:"lines"`
	TotalPrice    string      `json:"totalPrice"`
	TotalQuantity int         `json:"totalQuantity"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("no session on request", nil))
		return
	}
	common.RespondJSON(w, http.StatusOK, cartView(sess))
}

// AddLine handles POST /cart/lines
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("no session on request", nil))
		return
	}

	var req AddLineRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewInvalidInputError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.cart.AddLine(r.Context(), sess, req.BottomID, req.ToppingID, req.Quantity); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, cartView(sess))
}

// RemoveLine handles DELETE /cart/lines/{index}
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.cart.RemoveLine)
}

// IncrementLine handles POST /cart/lines/{index}/increment
func (h *CartHandler) IncrementLine(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.cart.IncrementLine)
}

// DecrementLine handles POST /cart/lines/{index}/decrement
func (h *CartHandler) DecrementLine(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.cart.DecrementLine)
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("no session on request", nil))
		return
	}
	if err := h.cart.Clear(r.Context(), sess); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, cartView(sess))
}

func (h *CartHandler) mutateLine(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, sess *checkout.Session, index int) error,
) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("no session on request", nil))
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		common.RespondAppError(w, pkgerrors.NewInvalidInputError("line index must be an integer"))
		return
	}

	if err := op(r.Context(), sess, index); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, cartView(sess))
}

func cartView(sess *checkout.Session) CartResponse {
	return CartResponse{
		Lines:         sess.Cart.Lines,
		TotalPrice:    sess.Cart.TotalPrice().StringFixed(2),
		TotalQuantity: sess.Cart.TotalQuantity(),
	}
}
