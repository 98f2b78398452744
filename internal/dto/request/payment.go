package request

type CreatePaymentSessionRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

// IPNNotification is the asynchronous payment notification the gateway
// delivers as query parameters. The order id may arrive under either
// OrderID or TransactionID depending on the gateway's mood; whichever is
// non-empty (OrderID first) is the identifier the signature covers.
type IPNNotification struct {
	OrderID            string `json:"order_id"`
	TransactionID      string `json:"transaction_id"`
	Status             string `json:"status" validate:"required"`
	Domain             string `json:"domain" validate:"required"`
	Hash               string `json:"hash" validate:"required"`
	ConfirmationNumber string `json:"confirmation_number"`
}

// Reference returns the canonical order identifier for lookup and signing.
func (n *IPNNotification) Reference() string {
	if n.OrderID != "" {
		return n.OrderID
	}
	return n.TransactionID
}
