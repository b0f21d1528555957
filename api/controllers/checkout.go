package controllers

import (
	"net/http"

	"github.com/mantomate/storefront-backend/api/middleware"
	"github.com/mantomate/storefront-backend/api/responses"
	"github.com/mantomate/storefront-backend/api/validators"
	"github.com/mantomate/storefront-backend/internal/checkout"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/logger"
)

// Checkout turns the submitted cart into an order and answers 201 with the
// new order id.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkout.Input
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Execute(r.Context(), middleware.PrincipalFromContext(r.Context()), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
