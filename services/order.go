package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-foodorder/models"
	"go-foodorder/repository"
	"go-foodorder/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// errCheckoutConflict marks an insert that hit a unique index: either a
// concurrent call with the same checkout key or a payment used elsewhere
var errCheckoutConflict = errors.New("checkout conflict")

// PlaceOrderInput is the checkout request. An empty CheckoutKey gets a fresh
// one, so only calls that share a key are deduplicated.
type PlaceOrderInput struct {
	CheckoutKey string
	Address     string
	PaymentID   *primitive.ObjectID
}

// OrderService turns carts into orders and moves orders through their statuses
type OrderService struct {
	Tx       repository.Transactor
	Orders   repository.OrderRepository
	Carts    repository.CartRepository
	Menu     repository.MenuRepository
	Payments repository.PaymentRepository
	Users    repository.UserRepository
	Mailer   utils.Mailer
	Now      func() time.Time
	NewKey   func() string
}

type OrderDeps struct {
	Tx       repository.Transactor
	Orders   repository.OrderRepository
	Carts    repository.CartRepository
	Menu     repository.MenuRepository
	Payments repository.PaymentRepository
	Users    repository.UserRepository
	Mailer   utils.Mailer
}

func NewOrderService(deps OrderDeps) *OrderService {
	return &OrderService{
		Tx:       deps.Tx,
		Orders:   deps.Orders,
		Carts:    deps.Carts,
		Menu:     deps.Menu,
		Payments: deps.Payments,
		Users:    deps.Users,
		Mailer:   deps.Mailer,
		Now:      time.Now,
		NewKey:   uuid.NewString,
	}
}

// PlaceOrder converts the user's cart into a Pending order priced at current
// menu prices and empties the cart. Repeating a call with the same checkout key
// returns the first order; created reports whether this call made it.
func (s *OrderService) PlaceOrder(ctx context.Context, user *models.User, in PlaceOrderInput) (order *models.Order, created bool, err error) {
	key := strings.TrimSpace(in.CheckoutKey)
	if key == "" {
		key = s.NewKey()
	}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		// the transaction may run this more than once
		order, created = nil, false

		existing, err := s.Orders.FindByCheckoutKey(ctx, user.ID, key)
		if err == nil {
			order = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return internal(err)
		}

		items, total, err := snapshotCart(ctx, s.Carts, s.Menu, user.ID)
		if err != nil {
			return err
		}
		if in.PaymentID != nil {
			if err := s.checkPayment(ctx, user, *in.PaymentID, total); err != nil {
				return err
			}
		}

		now := s.Now().UTC()
		placed := &models.Order{
			UserID:      user.ID,
			Items:       items,
			Total:       total,
			Status:      models.OrderStatusPending,
			Address:     strings.TrimSpace(in.Address),
			PaymentID:   in.PaymentID,
			CheckoutKey: key,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.Orders.Create(ctx, placed); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return errCheckoutConflict
			}
			return internal(err)
		}

		if _, err := s.Carts.DeleteByUser(ctx, user.ID); err != nil {
			if derr := s.Orders.Delete(ctx, placed.ID); derr != nil {
				utils.WithCtx(ctx).Error("remove order after failed cart clear",
					"order_id", placed.ID.Hex(), "error", derr)
			}
			return internal(fmt.Errorf("clear cart: %w", err))
		}

		order = placed
		created = true
		return nil
	})
	if errors.Is(err, errCheckoutConflict) {
		// a duplicate key aborts the transaction, so look for the winner after it
		if winner, ferr := s.Orders.FindByCheckoutKey(ctx, user.ID, key); ferr == nil {
			return winner, false, nil
		}
		err = invalidState("payment is already attached to another order")
	}
	if err != nil {
		utils.CheckoutFailures.WithLabelValues(string(KindOf(err))).Inc()
		return nil, false, internal(err)
	}

	if created {
		utils.OrdersPlaced.Inc()
		utils.WithCtx(ctx).Info("order placed",
			"order_id", order.ID.Hex(), "user_id", user.ID.Hex(), "total", order.Total.String())
		if err := s.Mailer.SendOrderConfirmation(ctx, user.Email, order); err != nil {
			utils.WithCtx(ctx).Warn("order confirmation email failed", "order_id", order.ID.Hex(), "error", err)
		}
	}
	return order, created, nil
}

// checkPayment accepts only a succeeded payment of the user, for the order
// total, that no other order uses yet
func (s *OrderService) checkPayment(ctx context.Context, user *models.User, paymentID primitive.ObjectID, total models.Money) error {
	payment, err := s.Payments.FindByID(ctx, paymentID)
	if errors.Is(err, repository.ErrNotFound) {
		return invalidState("payment not found")
	}
	if err != nil {
		return internal(err)
	}
	if payment.UserID != user.ID {
		return invalidState("payment not found")
	}
	if payment.Status != models.PaymentStatusSucceeded {
		return invalidState("payment did not succeed")
	}
	if !payment.Amount.Equal(total.Decimal) {
		return invalidState("payment amount does not match the cart total")
	}

	_, err = s.Orders.FindByPaymentID(ctx, paymentID)
	if err == nil {
		return invalidState("payment is already attached to another order")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return internal(err)
	}
	return nil
}

// ListOrders returns the user's orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, user *models.User) ([]models.Order, error) {
	orders, err := s.Orders.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, internal(err)
	}
	return orders, nil
}

// ListAllOrders returns every order, newest first, with the owner's name and email
func (s *OrderService) ListAllOrders(ctx context.Context) ([]models.AdminOrder, error) {
	orders, err := s.Orders.ListAll(ctx)
	if err != nil {
		return nil, internal(err)
	}

	seen := make(map[primitive.ObjectID]bool, len(orders))
	ids := make([]primitive.ObjectID, 0, len(orders))
	for _, o := range orders {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			ids = append(ids, o.UserID)
		}
	}
	users, err := s.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, internal(err)
	}

	out := make([]models.AdminOrder, 0, len(orders))
	for _, o := range orders {
		entry := models.AdminOrder{Order: o}
		if u, ok := users[o.UserID]; ok {
			entry.User = &models.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		out = append(out, entry)
	}
	return out, nil
}

// SetStatus overwrites the status with any known value; no transition order is enforced
func (s *OrderService) SetStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, validationError("status must be one of Pending, Preparing, Out for Delivery, Delivered")
	}

	order, err := s.Orders.UpdateStatus(ctx, orderID, status, s.Now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("order")
	}
	if err != nil {
		return nil, internal(err)
	}

	s.notifyStatus(ctx, order)
	return order, nil
}

// CancelOrder deletes one of the user's orders while it is still Pending
func (s *OrderService) CancelOrder(ctx context.Context, user *models.User, orderID primitive.ObjectID) error {
	order, err := s.Orders.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("order")
	}
	if err != nil {
		return internal(err)
	}
	if order.UserID != user.ID {
		return notFound("order")
	}
	if order.Status != models.OrderStatusPending {
		return invalidState("cannot cancel order that is not pending")
	}

	if err := s.Orders.Delete(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("order")
		}
		return internal(err)
	}
	return nil
}

// DeleteOrder removes an order whatever its status
func (s *OrderService) DeleteOrder(ctx context.Context, orderID primitive.ObjectID) error {
	err := s.Orders.Delete(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("order")
	}
	if err != nil {
		return internal(err)
	}
	return nil
}

func (s *OrderService) notifyStatus(ctx context.Context, order *models.Order) {
	log := utils.WithCtx(ctx)
	owner, err := s.Users.FindByID(ctx, order.UserID)
	if err != nil {
		log.Warn("status email skipped", "order_id", order.ID.Hex(), "error", err)
		return
	}
	if err := s.Mailer.SendStatusUpdate(ctx, owner.Email, order); err != nil {
		log.Warn("status email failed", "order_id", order.ID.Hex(), "error", err)
	}
}
