package service

import (
	"fmt"
	"strings"

	cartdomain "github.com/Nikolino98/RioSegundoPizzeria/internal/cart/domain"
	d "github.com/Nikolino98/RioSegundoPizzeria/internal/checkout/domain"
)

// lineBreak is the escaped line break WhatsApp expects inside the text
// query parameter. The message is built already escaped and spliced into
// the URL as-is, matching what the messaging service parses.
const lineBreak = "%0A"

// buildMessage formats the order summary sent over WhatsApp:
// one "{q}x {name} - $total" line per item, then total, delivery method,
// address, phone, payment method and notes.
func buildMessage(cart cartdomain.Cart, req *d.Request) string {
	itemLines := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		itemLines = append(itemLines, fmt.Sprintf("%dx %s - $%.2f",
			item.Quantity, item.Name, item.Price*float64(item.Quantity)))
	}

	deliveryLabel := "Delivery"
	address := req.Address
	if req.DeliveryMethod == d.DeliveryMethodPickup {
		deliveryLabel = d.PickupAddress
		address = d.PickupAddress
	}

	notes := req.Notes
	if notes == "" {
		notes = "Ninguna"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("*Nuevo Pedido de %s*%s%s", req.Name, lineBreak, lineBreak))
	b.WriteString(fmt.Sprintf("*Productos:*%s%s%s%s", lineBreak, strings.Join(itemLines, lineBreak), lineBreak, lineBreak))
	b.WriteString(fmt.Sprintf("*Total:* $%.2f%s%s", cart.TotalPrice(), lineBreak, lineBreak))
	b.WriteString(fmt.Sprintf("*Método de entrega:* %s%s", deliveryLabel, lineBreak))
	b.WriteString(fmt.Sprintf("*Dirección:* %s%s", address, lineBreak))
	b.WriteString(fmt.Sprintf("*Teléfono:* %s%s", req.Phone, lineBreak))
	b.WriteString(fmt.Sprintf("*Método de pago:* %s%s", req.PaymentMethod, lineBreak))
	b.WriteString(fmt.Sprintf("*Notas:* %s", notes))

	return b.String()
}

// whatsAppURL builds the deep link that opens the messaging client with
// the summary pre-filled. The message already carries its own escaping.
func whatsAppURL(phone, message string) string {
	return fmt.Sprintf("https://api.whatsapp.com/send?phone=%s&text=%s", phone, message)
}
