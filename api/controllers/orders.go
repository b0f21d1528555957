package controllers

import (
	"net/http"

	"github.com/mantomate/storefront-backend/api/middleware"
	"github.com/mantomate/storefront-backend/api/responses"
	"github.com/mantomate/storefront-backend/api/validators"
	"github.com/mantomate/storefront-backend/internal/orders"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/logger"
)

const msgOrderNotFound = "Pedido no encontrado"

func OrdersList(customers customerResolver, svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || customers == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		customer, err := customers.Resolve(r.Context(), middleware.PrincipalFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.ListByCustomer(r.Context(), customer.ID))
	}
}

// OrderDetail answers 404 both for missing orders and for orders of another
// customer so ids cannot be probed.
func OrderDetail(customers customerResolver, svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || customers == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		orderID, err := validators.ParsePathInt64(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customer, err := customers.Resolve(r.Context(), middleware.PrincipalFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail := svc.GetOrderDetail(r.Context(), orderID)
		if detail == nil || detail.CustomerID != customer.ID {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, msgOrderNotFound))
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
