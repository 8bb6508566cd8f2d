package services

import (
	"context"
	"strings"
	"time"

	"go-foodorder/models"
	"go-foodorder/repository"
	"go-foodorder/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentGateway charges a payment method. The provider protocol stays behind it.
type PaymentGateway interface {
	Charge(ctx context.Context, amount models.Money, paymentMethodID string) (bool, error)
}

// ApproveGateway accepts every charge with a payment method id
type ApproveGateway struct{}

func (ApproveGateway) Charge(ctx context.Context, amount models.Money, paymentMethodID string) (bool, error) {
	return paymentMethodID != "" && !amount.IsNegative(), nil
}

// PaymentResult is the payment confirmation response
type PaymentResult struct {
	Success   bool               `json:"success"`
	PaymentID primitive.ObjectID `json:"paymentId"`
	Amount    models.Money       `json:"amount"`
	Message   string             `json:"message,omitempty"`
}

// PaymentService charges the current cart total before checkout
type PaymentService struct {
	Payments repository.PaymentRepository
	Carts    repository.CartRepository
	Menu     repository.MenuRepository
	Gateway  PaymentGateway
	Now      func() time.Time
}

func NewPaymentService(payments repository.PaymentRepository, carts repository.CartRepository, menu repository.MenuRepository, gateway PaymentGateway) *PaymentService {
	return &PaymentService{Payments: payments, Carts: carts, Menu: menu, Gateway: gateway, Now: time.Now}
}

// Confirm charges the cart total and records the outcome. A declined charge is
// recorded too and reported with Success false.
func (s *PaymentService) Confirm(ctx context.Context, user *models.User, paymentMethodID string) (*PaymentResult, error) {
	paymentMethodID = strings.TrimSpace(paymentMethodID)
	if paymentMethodID == "" {
		return nil, validationError("paymentMethodId is required")
	}

	_, total, err := snapshotCart(ctx, s.Carts, s.Menu, user.ID)
	if err != nil {
		return nil, err
	}

	ok, err := s.Gateway.Charge(ctx, total, paymentMethodID)
	if err != nil {
		return nil, internal(err)
	}

	payment := &models.Payment{
		UserID:          user.ID,
		PaymentMethodID: paymentMethodID,
		Amount:          total,
		Status:          models.PaymentStatusFailed,
		CreatedAt:       s.Now().UTC(),
	}
	if ok {
		payment.Status = models.PaymentStatusSucceeded
	}
	if err := s.Payments.Create(ctx, payment); err != nil {
		return nil, internal(err)
	}
	utils.PaymentsProcessed.WithLabelValues(string(payment.Status)).Inc()

	result := &PaymentResult{Success: ok, PaymentID: payment.ID, Amount: payment.Amount}
	if !ok {
		result.Message = "payment was declined"
	}
	return result, nil
}
