package controllers

import (
	"net/http"

	"go-foodorder/middleware"
	"go-foodorder/services"
)

// PaymentController confirms payments ahead of checkout
type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

type paymentRequest struct {
	PaymentMethodID string `json:"paymentMethodId"`
}

// ConfirmPayment charges the cart total. A declined charge still answers 200 with success false.
func (pc *PaymentController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	res, err := pc.Payments.Confirm(ctx, middleware.CurrentUser(r), req.PaymentMethodID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
