package services

import (
	"context"

	"cupcake-backend/application/ports"
	pkgerrors "cupcake-backend/pkg/errors"
)

// requireAdmin is the single authorization guard in front of every admin
// operation. It resolves the acting identity and rejects with Forbidden
// before any business logic runs.
func requireAdmin(ctx context.Context, buyers ports.BuyerRepository, actorID int64) error {
	actor, err := buyers.GetByID(ctx, actorID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return pkgerrors.NewForbiddenError("this operation requires an administrator account")
		}
		return err
	}
	if !actor.IsAdmin {
		return pkgerrors.NewForbiddenError("this operation requires an administrator account")
	}
	return nil
}
