package middleware

import (
	"net/http"

	"cupcake-backend/pkg/common"
	pkgerrors "cupcake-backend/pkg/errors"
)

// RequireAuth rejects requests whose session has no authenticated buyer.
// Admin authorization is not decided here; the services check the acting
// identity themselves.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		if !ok || sess.BuyerID == 0 {
			common.RespondAppError(w, pkgerrors.NewUnauthorizedError("log in to access this resource"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
