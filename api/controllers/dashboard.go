package controllers

import (
	"net/http"

	"github.com/mantomate/storefront-backend/api/middleware"
	"github.com/mantomate/storefront-backend/api/responses"
	"github.com/mantomate/storefront-backend/internal/dashboard"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/logger"
)

func Dashboard(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}
		view, err := svc.Get(r.Context(), middleware.PrincipalFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
