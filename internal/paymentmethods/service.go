package paymentmethods

import (
	"context"
	"fmt"

	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/format"
	"github.com/mantomate/storefront-backend/pkg/logger"
)

// Service lists the cards a customer saved on file.
type Service interface {
	ListForCustomer(ctx context.Context, customerID int64) ([]CardView, error)
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs a payment method service.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payment method repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg}, nil
}

// ListForCustomer returns the cards default first, so clients pre-select the
// first entry.
func (s *service) ListForCustomer(ctx context.Context, customerID int64) ([]CardView, error) {
	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "no se pudieron cargar las tarjetas")
	}
	views := make([]CardView, 0, len(rows))
	for _, row := range rows {
		views = append(views, CardView{
			ID:         row.ID,
			Marca:      row.Brand,
			Ultimos4:   row.Last4,
			Tipo:       row.Type,
			Expiracion: format.CardExpiry(row.ExpMonth, row.ExpYear),
			EsDefault:  row.IsDefault,
		})
	}
	return views, nil
}
