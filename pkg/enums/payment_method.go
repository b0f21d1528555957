package enums

// PaymentProvider identifies who tokenized the card.
type PaymentProvider string

const PaymentProviderMercadoPago PaymentProvider = "mercadopago"

// String implements fmt.Stringer.
func (p PaymentProvider) String() string {
	return string(p)
}

// PaymentMethodType is the card funding type stored in metodo_pago.tipo.
type PaymentMethodType string

const (
	PaymentMethodTypeCredit PaymentMethodType = "credito"
	PaymentMethodTypeDebit  PaymentMethodType = "debito"
)

// String implements fmt.Stringer.
func (p PaymentMethodType) String() string {
	return string(p)
}

// IsValid reports whether the value is known.
func (p PaymentMethodType) IsValid() bool {
	return p == PaymentMethodTypeCredit || p == PaymentMethodTypeDebit
}
