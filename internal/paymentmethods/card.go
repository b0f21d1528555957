package paymentmethods

import (
	"strings"

	"github.com/mantomate/storefront-backend/pkg/db/models"
	"github.com/mantomate/storefront-backend/pkg/enums"
	pkgerrors "github.com/mantomate/storefront-backend/pkg/errors"
)

// Expiry used when the card form omits it.
const (
	DefaultExpMonth = 12
	DefaultExpYear  = 2030
)

// CardInput is the tokenized card the storefront receives from the payment
// widget. Raw card numbers never reach the backend.
type CardInput struct {
	Token    string
	Brand    string
	Last4    string
	ExpMonth *int
	ExpYear  *int
}

// Validate checks the token, brand, last four digits and expiry.
func (c CardInput) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "card token is required")
	}
	if strings.TrimSpace(c.Brand) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "card brand is required")
	}
	last4 := strings.TrimSpace(c.Last4)
	if len(last4) != 4 || strings.Trim(last4, "0123456789") != "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "card last4 must be 4 digits")
	}
	if c.ExpMonth != nil && (*c.ExpMonth < 1 || *c.ExpMonth > 12) {
		return pkgerrors.New(pkgerrors.CodeValidation, "card expiry month must be between 1 and 12")
	}
	if c.ExpYear != nil && *c.ExpYear < 2000 {
		return pkgerrors.New(pkgerrors.CodeValidation, "card expiry year is invalid")
	}
	return nil
}

// BuildCard maps a validated card input to a credit metodo_pago row owned by
// customerID.
func BuildCard(customerID int64, input CardInput) *models.PaymentMethod {
	month, year := DefaultExpMonth, DefaultExpYear
	if input.ExpMonth != nil {
		month = *input.ExpMonth
	}
	if input.ExpYear != nil {
		year = *input.ExpYear
	}
	return &models.PaymentMethod{
		CustomerID:      customerID,
		Provider:        enums.PaymentProviderMercadoPago.String(),
		ProcessorCardID: strings.TrimSpace(input.Token),
		Brand:           strings.ToLower(strings.TrimSpace(input.Brand)),
		Type:            enums.PaymentMethodTypeCredit.String(),
		Last4:           strings.TrimSpace(input.Last4),
		ExpMonth:        month,
		ExpYear:         year,
	}
}
