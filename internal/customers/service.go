package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mantomate/storefront-backend/pkg/auth"
	"github.com/mantomate/storefront-backend/pkg/db/models"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	MsgNotAuthenticated = "No autenticado"
	MsgCustomerNotFound = "Cliente no encontrado"
)

// Service resolves the storefront customer behind an authenticated principal.
type Service interface {
	Resolve(ctx context.Context, principal auth.Principal) (*models.Customer, error)
	ResolveByEmail(ctx context.Context, email string) (*models.Customer, error)
	UpdateProfile(ctx context.Context, customerID int64, input ProfileInput) (*models.Customer, error)
	PrimaryAddress(ctx context.Context, customerID int64) (*models.CustomerAddress, error)
}

// ProfileInput carries the editable profile fields. Blank values clear them.
type ProfileInput struct {
	Name    *string
	Address *string
}

type addressReader interface {
	FindPrimary(ctx context.Context, customerID int64) (*models.CustomerAddress, error)
}

type service struct {
	repo      *Repository
	addresses addressReader
	logg      *logger.Logger
}

// NewService constructs a customer resolution service.
func NewService(repo *Repository, addresses addressReader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if addresses == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, addresses: addresses, logg: logg}, nil
}

// Resolve looks the customer up by the principal's stable subject. Legacy rows
// keyed only by email are bound to the subject on first sight.
func (s *service) Resolve(ctx context.Context, principal auth.Principal) (*models.Customer, error) {
	if principal.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgNotAuthenticated)
	}

	customer, err := s.repo.FindByAuthUserID(ctx, principal.Subject)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}

	email := strings.TrimSpace(principal.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, MsgCustomerNotFound)
	}

	legacy, err := s.repo.FindUnboundByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, MsgCustomerNotFound)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer by email")
	}

	bound, err := s.repo.BindAuthUserID(ctx, legacy.ID, principal.Subject)
	if err != nil {
		// another request may have bound the same subject first
		if again, findErr := s.repo.FindByAuthUserID(ctx, principal.Subject); findErr == nil {
			return again, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bind customer identity")
	}
	if !bound {
		if again, findErr := s.repo.FindByAuthUserID(ctx, principal.Subject); findErr == nil {
			return again, nil
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, MsgCustomerNotFound)
	}

	subject := principal.Subject
	legacy.AuthUserID = &subject
	ctx = s.logg.WithCustomerID(ctx, legacy.ID)
	s.logg.Info(ctx, "customers.identity_bound")
	return legacy, nil
}

func (s *service) ResolveByEmail(ctx context.Context, email string) (*models.Customer, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgNotAuthenticated)
	}
	customer, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, MsgCustomerNotFound)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer by email")
	}
	return customer, nil
}

func (s *service) UpdateProfile(ctx context.Context, customerID int64, input ProfileInput) (*models.Customer, error) {
	if customerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if err := s.repo.UpdateProfile(ctx, customerID, blankToNil(input.Name), blankToNil(input.Address)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	customer, err := s.repo.FindByID(ctx, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, MsgCustomerNotFound)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload profile")
	}
	return customer, nil
}

// PrimaryAddress returns nil without error when no primary address exists.
func (s *service) PrimaryAddress(ctx context.Context, customerID int64) (*models.CustomerAddress, error) {
	addr, err := s.addresses.FindPrimary(ctx, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load primary address")
	}
	return addr, nil
}

func blankToNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
