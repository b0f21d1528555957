package address

import (
	"context"
	"fmt"

	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/logger"
)

// Service lists a customer's saved shipping addresses.
type Service interface {
	ListForCustomer(ctx context.Context, customerID int64) ([]View, error)
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) ListForCustomer(ctx context.Context, customerID int64) ([]View, error) {
	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "no se pudieron cargar las direcciones")
	}
	views := make([]View, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		addr := ToShipping(row)
		views = append(views, View{
			ID:          row.ID,
			Alias:       row.Alias,
			Address:     addr,
			Resumen:     addr.Line(),
			EsPrincipal: row.IsPrimary,
		})
	}
	return views, nil
}
