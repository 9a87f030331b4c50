package domain

// Order lifecycle.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

// Delivery modes as the checkout form submits them.
const (
	DeliveryPickup   = "ritiro"
	DeliveryShipping = "spedizione"
)

// Payment methods as the checkout form submits them.
const (
	PaymentCreditCard = "CC"
	PaymentPayPal     = "PP"
	PaymentStaysPay   = "SP"
)

// Product is a catalog entry. Owned by the resource store; read-only here.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// CartLine is one row of the active cart: a distinct product and its quantity.
// The store assigns the id; prezzo is the catalog price at add time and is
// never trusted on reads (the catalog is re-resolved instead).
type CartLine struct {
	ID        string  `json:"id"`
	ProductID string  `json:"prodottoId"`
	Name      string  `json:"nome"`
	Price     float64 `json:"prezzo"`
	Quantity  int     `json:"quantita"`
}

// OrderLine is a cart line frozen into an order, with name/image/price
// resolved from the catalog at order time.
type OrderLine struct {
	ProductID string  `json:"prodottoId"`
	Name      string  `json:"nome"`
	Image     string  `json:"image"`
	Price     float64 `json:"prezzo"`
	Quantity  int     `json:"quantita"`
}

// Order is the persisted order record. Customer fields are flattened; the
// address block is present only for shipping, the masked card only for
// credit-card payments. Immutable once confirmed except for stato.
type Order struct {
	ID            string      `json:"id"`
	Name          string      `json:"nome"`
	Surname       string      `json:"cognome"`
	Email         string      `json:"email"`
	Phone         string      `json:"telefono"`
	DeliveryMode  string      `json:"modalitaConsegna"`
	Street        string      `json:"via,omitempty"`
	StreetNo      string      `json:"civico,omitempty"`
	PostalCode    string      `json:"cap,omitempty"`
	City          string      `json:"citta,omitempty"`
	Province      string      `json:"provincia,omitempty"`
	PaymentMethod string      `json:"metodoPagamento"`
	CardNumber    string      `json:"numeroCarta,omitempty"` // always masked
	Status        string      `json:"stato"`
	Lines         []OrderLine `json:"prodotti"`
	CreatedAt     string      `json:"dataOrdine,omitempty"`
}

// CustomerInfo is the transient customer snapshot handed to the confirmation
// page. Written at order completion, read exactly once, then gone.
type CustomerInfo struct {
	Name          string `json:"nome"`
	Surname       string `json:"cognome"`
	Email         string `json:"email"`
	Phone         string `json:"telefono"`
	DeliveryMode  string `json:"modalitaConsegna"`
	Street        string `json:"via,omitempty"`
	StreetNo      string `json:"civico,omitempty"`
	PostalCode    string `json:"cap,omitempty"`
	City          string `json:"citta,omitempty"`
	Province      string `json:"provincia,omitempty"`
	PaymentMethod string `json:"metodoPagamento"`
	CardNumber    string `json:"numeroCarta,omitempty"` // always masked
}

// OrderSummary is the one-shot order snapshot for the confirmation page.
// Totals are not carried: the renderer recomputes them from the lines.
type OrderSummary struct {
	OrderNumber string      `json:"numeroOrdine"`
	PlacedAt    string      `json:"dataOrdine"`
	Lines       []OrderLine `json:"prodotti"`
}
