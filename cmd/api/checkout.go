package main

import (
	"net/http"

	"paybridge/internal/payments"
)

type CheckoutPayload struct {
	Wallet    string  `json:"wallet" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Phone     string  `json:"phone" validate:"required"`
	Reference string  `json:"reference"`
}

func (app *application) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	var payload CheckoutPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Missing or zero-valued required fields never reach the gateway.
	if err := Validate.Struct(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Campos obrigatórios: wallet, amount, phone")
		return
	}

	resp, err := app.payments.Checkout(r.Context(), payments.CheckoutRequest{
		Wallet:    payload.Wallet,
		Amount:    payload.Amount,
		Phone:     payload.Phone,
		Reference: payload.Reference,
	})
	if err != nil {
		app.gatewayErrorResponse(w, r, err)
		return
	}

	writeRawJSON(w, http.StatusOK, resp)
}
