package paymentmethods

// CardView is a saved card as shown in the checkout card picker. The ID is
// what checkout accepts as paymentMethodId.
type CardView struct {
	ID         int64  `json:"id"`
	Marca      string `json:"marca"`
	Ultimos4   string `json:"ultimos4"`
	Tipo       string `json:"tipo"`
	Expiracion string `json:"expiracion"`
	EsDefault  bool   `json:"esDefault"`
}
