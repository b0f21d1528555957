package subscriptions

import (
	"github.com/mantomate/storefront-backend/internal/paymentmethods"
	"github.com/mantomate/storefront-backend/pkg/db/models"
	"github.com/mantomate/storefront-backend/pkg/format"
	"github.com/mantomate/storefront-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Steps of the subscription workflow, reported in error details and metrics.
const (
	StepCustomer          = "customer"
	StepValidate          = "validate"
	StepPaymentMethod     = "payment_method"
	StepSubscription      = "subscription"
	StepSubscriptionOrder = "subscription_order"
	StepOrderItems        = "order_items"
)

const (
	MsgPaymentMethodFailed = "Error al guardar tarjeta"
	MsgSubscriptionFailed  = "Error al crear suscripción"
	MsgOrderFailed         = "Error al crear pedido"
	MsgItemsFailed         = "Error al guardar items"
	MsgAlreadySubscribed   = "Ya tenés una suscripción activa"
	MsgPlanNotFound        = "Plan no encontrado"

	fallbackStatus  = "Desconocido"
	fallbackAddress = "Sin dirección registrada"
	fallbackPlan    = "Plan Desconocido"
	fallbackCard    = "credito"
)

// CreateInput is the club enrollment form.
type CreateInput struct {
	PlanID       int64                  `json:"planId" validate:"required,gt=0"`
	CardToken    string                 `json:"cardToken" validate:"required"`
	CardBrand    string                 `json:"cardBrand" validate:"required"`
	CardLast4    string                 `json:"cardLast4" validate:"required,len=4,numeric"`
	CardExpMonth *int                   `json:"cardExpMonth,omitempty" validate:"omitempty,min=1,max=12"`
	CardExpYear  *int                   `json:"cardExpYear,omitempty" validate:"omitempty,min=2000"`
	Address      *types.ShippingAddress `json:"address,omitempty"`
}

func (in CreateInput) card() paymentmethods.CardInput {
	return paymentmethods.CardInput{
		Token:    in.CardToken,
		Brand:    in.CardBrand,
		Last4:    in.CardLast4,
		ExpMonth: in.CardExpMonth,
		ExpYear:  in.CardExpYear,
	}
}

// CreateResult identifies the rows written by enrollment.
type CreateResult struct {
	SubscriptionID int64 `json:"subscriptionId"`
	OrderID        int64 `json:"orderId"`
}

// SubscriptionView is the member's subscription page.
type SubscriptionView struct {
	ID             int64              `json:"id"`
	Estado         string             `json:"estado"`
	FechaInicio    string             `json:"fecha_inicio"`
	ProximoCobro   string             `json:"proximo_cobro"`
	DireccionEnvio string             `json:"direccion_envio"`
	Plan           string             `json:"plan"`
	Monto          string             `json:"monto"`
	MetodoPago     *PaymentMethodView `json:"metodo_pago"`
}

// PaymentMethodView is the card on file, never the token.
type PaymentMethodView struct {
	Marca      string `json:"marca"`
	Ultimos4   string `json:"ultimos_4"`
	Tipo       string `json:"tipo"`
	Expiracion string `json:"expiracion"`
}

// PlanView is a club plan with its monthly recipe.
type PlanView struct {
	ID               int64           `json:"id"`
	Nombre           string          `json:"nombre"`
	Descripcion      *string         `json:"descripcion,omitempty"`
	Precio           decimal.Decimal `json:"precio"`
	PrecioFormateado string          `json:"precioFormateado"`
	Items            []PlanItemView  `json:"items"`
}

// PlanItemView is one recipe entry.
type PlanItemView struct {
	ItemID    int64  `json:"itemId"`
	Nombre    string `json:"nombre"`
	Cantidad  int    `json:"cantidad"`
	PrimerMes bool   `json:"primerMes"`
}

func viewFromModel(sub models.Subscription) *SubscriptionView {
	view := &SubscriptionView{
		ID:             sub.ID,
		Estado:         fallbackStatus,
		FechaInicio:    format.DateLong(sub.StartedAt),
		ProximoCobro:   format.DateLong(sub.NextChargeAt),
		DireccionEnvio: format.Fallback(sub.ShippingAddress, fallbackAddress),
		Plan:           fallbackPlan,
		Monto:          format.Empty,
	}
	if sub.Status != nil && sub.Status.Name != "" {
		view.Estado = sub.Status.Name
	}
	if sub.Plan != nil {
		if sub.Plan.Name != "" {
			view.Plan = sub.Plan.Name
		}
		view.Monto = format.Currency(sub.Plan.RecurringPrice)
	}
	if pm := sub.PaymentMethod; pm != nil {
		tipo := pm.Type
		if tipo == "" {
			tipo = fallbackCard
		}
		view.MetodoPago = &PaymentMethodView{
			Marca:      pm.Brand,
			Ultimos4:   pm.Last4,
			Tipo:       tipo,
			Expiracion: format.CardExpiry(pm.ExpMonth, pm.ExpYear),
		}
	}
	return view
}

func planFromModel(plan models.Plan) PlanView {
	view := PlanView{
		ID:               plan.ID,
		Nombre:           plan.Name,
		Descripcion:      plan.Description,
		Precio:           plan.RecurringPrice,
		PrecioFormateado: format.Currency(plan.RecurringPrice),
		Items:            make([]PlanItemView, 0, len(plan.Items)),
	}
	for _, item := range plan.Items {
		entry := PlanItemView{ItemID: item.ProductID, Cantidad: item.Quantity, PrimerMes: item.FirstMonth}
		if item.Product != nil {
			entry.Nombre = item.Product.Name
		}
		view.Items = append(view.Items, entry)
	}
	return view
}
