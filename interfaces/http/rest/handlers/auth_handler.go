package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"cupcake-backend/application/ports"
	"cupcake-backend/application/services"
	"cupcake-backend/domain/buyer"
	"cupcake-backend/interfaces/http/rest/middleware"
	"cupcake-backend/pkg/common"
	pkgerrors "cupcake-backend/pkg/errors"
	"cupcake-backend/pkg/utils"
)

// AuthHandler handles login, logout and registration
type AuthHandler struct {
	identity *services.IdentityService
	sessions ports.SessionStore
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identity *services.IdentityService, sessions ports.SessionStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{identity: identity, sessions: sessions, logger: logger}
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	FirstName      string `json:"firstName" validate:"required,min=2"`
	LastName       string `json:"lastName" validate:"required,min=2"`
	Email          string `json:"email" validate:"required,email"`
	Phone          int    `json:"phone" validate:"required"`
	Street         string `json:"street" validate:"required"`
	ZipCode        int    `json:"zipCode" validate:"required"`
	City           string `json:"city" validate:"required,min=2"`
	Password       string `json:"password" validate:"required,min=8"`
	PasswordRepeat string `json:"passwordRepeat" validate:"required"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("no session on request", nil))
		return
	}

	var req LoginRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewInvalidInputError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	b, err := h.identity.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	sess.BuyerID = b.ID
	sess.Touch(time.Now())
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		common.RespondAppError(w, pkgerrors.NewInternalError("failed to persist session", err))
		return
	}
	common.RespondJSON(w, http.StatusOK, b)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		common.RespondAppError(w, pkgerrors.NewInternalError("no session on request", nil))
		return
	}

	if err := h.sessions.Delete(r.Context(), sess.ID); err != nil {
		h.logger.Warn("failed to delete session on logout", zap.Error(err))
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewInvalidInputError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	b, err := h.identity.Register(r.Context(), buyer.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Street:    req.Street,
		ZipCode:   req.ZipCode,
		City:      req.City,
	}, req.Password, req.PasswordRepeat)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, b)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok || sess.BuyerID == 0 {
		common.RespondAppError(w, pkgerrors.NewUnauthorizedError("not logged in"))
		return
	}

	b, err := h.identity.GetBuyer(r.Context(), sess.BuyerID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, b)
}
