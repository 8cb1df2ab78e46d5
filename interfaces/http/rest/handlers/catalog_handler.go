package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cupcake-backend/application/services"
	"cupcake-backend/domain/catalog"
	"cupcake-backend/interfaces/http/rest/middleware"
	"cupcake-backend/pkg/common"
	pkgerrors "cupcake-backend/pkg/errors"
	"cupcake-backend/pkg/utils"
)

// CatalogHandler handles flavor catalog HTTP requests
type CatalogHandler struct {
	catalog *services.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *services.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// FlavorRequest represents the request body for creating or updating a flavor
type FlavorRequest struct {
	Name  string `json:"name" validate:"required"`
	Price string `json:"price" validate:"required"`
}

// ListBottoms handles GET /catalog/bottoms
func (h *CatalogHandler) ListBottoms(w http.ResponseWriter, r *http.Request) {
	bottoms, err := h.catalog.ListBottoms(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, bottoms)
}

// ListToppings handles GET /catalog/toppings
func (h *CatalogHandler) ListToppings(w http.ResponseWriter, r *http.Request) {
	toppings, err := h.catalog.ListToppings(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toppings)
}

// CreateBottom handles POST /admin/catalog/bottoms
func (h *CatalogHandler) CreateBottom(w http.ResponseWriter, r *http.Request) {
	actorID, req, price, ok := h.flavorInput(w, r)
	if !ok {
		return
	}
	b, err := h.catalog.CreateBottom(r.Context(), actorID, req.Name, price)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, b)
}

// CreateTopping handles POST /admin/catalog/toppings
func (h *CatalogHandler) CreateTopping(w http.ResponseWriter, r *http.Request) {
	actorID, req, price, ok := h.flavorInput(w, r)
	if !ok {
		return
	}
	t, err := h.catalog.CreateTopping(r.Context(), actorID, req.Name, price)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, t)
}

// UpdateBottom handles PUT /admin/catalog/bottoms/{id}
func (h *CatalogHandler) UpdateBottom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	actorID, req, price, ok := h.flavorInput(w, r)
	if !ok {
		return
	}
	if err := h.catalog.UpdateBottom(r.Context(), actorID, catalog.Bottom{ID: id, Name: req.Name, Price: price}); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// UpdateTopping handles PUT /admin/catalog/toppings/{id}
func (h *CatalogHandler) UpdateTopping(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	actorID, req, price, ok := h.flavorInput(w, r)
	if !ok {
		return
	}
	if err := h.catalog.UpdateTopping(r.Context(), actorID, catalog.Topping{ID: id, Name: req.Name, Price: price}); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteBottom handles DELETE /admin/catalog/bottoms/{id}
func (h *CatalogHandler) DeleteBottom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteBottom(r.Context(), actingBuyerID(r), id); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DeleteTopping handles DELETE /admin/catalog/toppings/{id}
func (h *CatalogHandler) DeleteTopping(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteTopping(r.Context(), actingBuyerID(r), id); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *CatalogHandler) flavorInput(w http.ResponseWriter, r *http.Request) (int64, FlavorRequest, decimal.Decimal, bool) {
	var req FlavorRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewInvalidInputError("invalid request body"))
		return 0, req, decimal.Zero, false
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return 0, req, decimal.Zero, false
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		common.RespondAppError(w, pkgerrors.NewInvalidInputError("price must be a decimal number"))
		return 0, req, decimal.Zero, false
	}
	return actingBuyerID(r), req, price, true
}

func actingBuyerID(r *http.Request) int64 {
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		return sess.BuyerID
	}
	return 0
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		common.RespondAppError(w, pkgerrors.NewInvalidInputError(name+" must be an integer"))
		return 0, false
	}
	return id, true
}
