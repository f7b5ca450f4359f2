package domain

// Delivery and payment method values accepted from the checkout form.
const (
	DeliveryMethodDelivery = "delivery"
	DeliveryMethodPickup   = "pickup"

	PaymentMethodCash     = "efectivo"
	PaymentMethodTransfer = "transferencia"
)

// PickupAddress is the sentinel stored as the customer address when the
// order is picked up at the restaurant.
const PickupAddress = "Retiro en local"

type Status string

const (
	StatusIdle       Status = "IDLE"
	StatusSubmitting Status = "SUBMITTING"
	StatusSuccess    Status = "SUCCESS"
	StatusFailed     Status = "FAILED"
)

func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

func (s Status) String() string {
	return string(s)
}

// Request carries the contact, delivery and payment details supplied by
// the visitor at checkout.
type Request struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	DeliveryMethod string `json:"delivery_method"`
	PaymentMethod  string `json:"payment_method"`
	Notes          string `json:"notes"`
}

// Result is returned on a successful checkout. WhatsAppURL is the deep
// link the client opens to send the order summary; no response from the
// messaging service is awaited.
type Result struct {
	OrderID     string `json:"order_id"`
	Status      Status `json:"status"`
	WhatsAppURL string `json:"whatsapp_url"`
}
