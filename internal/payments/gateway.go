package payments

import (
	"context"
	"encoding/json"
)

// Gateway is the outbound payment surface the HTTP layer depends on.
type Gateway interface {
	Checkout(ctx context.Context, req CheckoutRequest) (json.RawMessage, error)
}
