package controllers

import (
	"net/http"

	"github.com/mantomate/storefront-backend/api/middleware"
	"github.com/mantomate/storefront-backend/api/responses"
	"github.com/mantomate/storefront-backend/api/validators"
	"github.com/mantomate/storefront-backend/internal/address"
	"github.com/mantomate/storefront-backend/internal/customers"
	"github.com/mantomate/storefront-backend/internal/paymentmethods"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/logger"
	"github.com/mantomate/storefront-backend/pkg/viewcache"
)

type profileRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty,max=120"`
	Direccion *string `json:"direccion" validate:"omitempty,max=255"`
}

type profileResponse struct {
	ID        int64   `json:"id"`
	Nombre    *string `json:"nombre"`
	Email     string  `json:"email"`
	Direccion *string `json:"direccion"`
}

// AccountProfile updates the caller's name and free-text address, then drops
// the cached dashboard that shows them.
func AccountProfile(svc customers.Service, views viewcache.Invalidator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		var payload profileRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		principal := middleware.PrincipalFromContext(r.Context())
		customer, err := svc.Resolve(r.Context(), principal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), customer.ID, customers.ProfileInput{
			Name:    payload.Nombre,
			Address: payload.Direccion,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if views != nil {
			if err := views.Invalidate(r.Context(), principal.Subject, viewcache.ViewDashboard); err != nil && logg != nil {
				logg.Error(logg.WithCustomerID(r.Context(), customer.ID), "account.invalidate_failed", err)
			}
		}

		responses.WriteSuccess(w, profileResponse{
			ID:        updated.ID,
			Nombre:    updated.Name,
			Email:     updated.Email,
			Direccion: updated.Address,
		})
	}
}

// AccountPaymentMethods lists the caller's saved cards, default first, for
// the checkout card picker.
func AccountPaymentMethods(customers customerResolver, svc paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || customers == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment method service unavailable"))
			return
		}
		customer, err := customers.Resolve(r.Context(), middleware.PrincipalFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cards, err := svc.ListForCustomer(r.Context(), customer.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cards)
	}
}

// AccountAddresses lists the caller's saved addresses, primary first.
func AccountAddresses(customers customerResolver, svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || customers == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address service unavailable"))
			return
		}
		customer, err := customers.Resolve(r.Context(), middleware.PrincipalFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		addresses, err := svc.ListForCustomer(r.Context(), customer.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, addresses)
	}
}
