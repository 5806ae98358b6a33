package payments

// CheckoutRequest is the normalized payment request after handler validation.
type CheckoutRequest struct {
	Wallet    string
	Amount    float64
	Phone     string
	Reference string
}

// walletRoute binds a logical wallet name to its gateway wallet ID and the
// path template of the matching c2b endpoint.
type walletRoute struct {
	walletID string
	path     string
}
