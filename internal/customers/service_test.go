package customers

import (
	"context"
	"testing"

	"github.com/mantomate/storefront-backend/internal/address"
	"github.com/mantomate/storefront-backend/pkg/auth"
	"github.com/mantomate/storefront-backend/pkg/db/dbtest"
	"github.com/mantomate/storefront-backend/pkg/db/models"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
	"github.com/mantomate/storefront-backend/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), address.NewRepository(conn), nil)
	require.NoError(t, err)
	return svc, conn
}

func ptr(s string) *string { return &s }

func TestResolveRequiresPrincipal(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Resolve(context.Background(), auth.Principal{})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
	assert.Equal(t, MsgNotAuthenticated, pkgerrors.As(err).Message())
}

func TestResolveBySubject(t *testing.T) {
	svc, conn := newTestService(t)
	row := &models.Customer{Email: "ana@example.com", AuthUserID: ptr("user-1")}
	require.NoError(t, conn.Create(row).Error)

	got, err := svc.Resolve(context.Background(), auth.Principal{Subject: "user-1", Email: "other@example.com"})
	require.NoError(t, err)
	assert.Equal(t, row.ID, got.ID)
}

func TestResolveBindsLegacyEmailRow(t *testing.T) {
	svc, conn := newTestService(t)
	row := &models.Customer{Email: "Ana@Example.com"}
	require.NoError(t, conn.Create(row).Error)

	got, err := svc.Resolve(context.Background(), auth.Principal{Subject: "user-9", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, row.ID, got.ID)
	require.NotNil(t, got.AuthUserID)
	assert.Equal(t, "user-9", *got.AuthUserID)

	var stored models.Customer
	require.NoError(t, conn.First(&stored, row.ID).Error)
	require.NotNil(t, stored.AuthUserID)
	assert.Equal(t, "user-9", *stored.AuthUserID)
}

func TestResolveDoesNotStealBoundRow(t *testing.T) {
	svc, conn := newTestService(t)
	require.NoError(t, conn.Create(&models.Customer{Email: "ana@example.com", AuthUserID: ptr("user-1")}).Error)

	_, err := svc.Resolve(context.Background(), auth.Principal{Subject: "user-2", Email: "ana@example.com"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, MsgCustomerNotFound, pkgerrors.As(err).Message())
}

func TestResolveByEmail(t *testing.T) {
	svc, conn := newTestService(t)
	require.NoError(t, conn.Create(&models.Customer{Email: "ana@example.com"}).Error)

	got, err := svc.ResolveByEmail(context.Background(), " ANA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)

	_, err = svc.ResolveByEmail(context.Background(), "nobody@example.com")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.ResolveByEmail(context.Background(), "")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestUpdateProfile(t *testing.T) {
	svc, conn := newTestService(t)
	row := &models.Customer{Email: "ana@example.com", Name: ptr("Old")}
	require.NoError(t, conn.Create(row).Error)

	got, err := svc.UpdateProfile(context.Background(), row.ID, ProfileInput{Name: ptr("  Ana  "), Address: ptr(" ")})
	require.NoError(t, err)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Ana", *got.Name)
	assert.Nil(t, got.Address)

	_, err = svc.UpdateProfile(context.Background(), 0, ProfileInput{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestPrimaryAddress(t *testing.T) {
	svc, conn := newTestService(t)
	row := &models.Customer{Email: "ana@example.com"}
	require.NoError(t, conn.Create(row).Error)

	addr, err := svc.PrimaryAddress(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Nil(t, addr)

	_, err = address.NewRepository(conn).ReplacePrimary(context.Background(), row.ID, types.ShippingAddress{
		Street: "Calle", Number: "1", PostalCode: "1000", City: "CABA", Province: "BA",
	}, "")
	require.NoError(t, err)

	addr, err = svc.PrimaryAddress(context.Background(), row.ID)
	require.NoError(t, err)
	require.NotNil(t, addr)
	assert.Equal(t, "Calle", addr.Street)
}
