package controllers

import (
	"context"

	"github.com/mantomate/storefront-backend/pkg/auth"
	"github.com/mantomate/storefront-backend/pkg/db/models"
)

type customerResolver interface {
	Resolve(ctx context.Context, principal auth.Principal) (*models.Customer, error)
}
