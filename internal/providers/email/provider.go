package email

import "context"

// Provider delivers transactional mail. Delivery failures are logged by
// callers and never fail the purchase.
type Provider interface {
	SendReceipt(ctx context.Context, msg ReceiptMessage) error
}

type ReceiptMessage struct {
	To           string
	MerchantName string
	ProductNames []string
	ReceiptIDs   []string
	Total        string
	Currency     string
}
