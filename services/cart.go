package services

import (
	"context"
	"errors"
	"math"
	"time"

	"go-foodorder/models"
	"go-foodorder/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartService manages the per-user cart rows
type CartService struct {
	Carts repository.CartRepository
	Menu  repository.MenuRepository
	Now   func() time.Time
}

func NewCartService(carts repository.CartRepository, menu repository.MenuRepository) *CartService {
	return &CartService{Carts: carts, Menu: menu, Now: time.Now}
}

// ListCart returns the user's rows with menu items resolved. A row whose menu
// item was deleted comes back with a nil MenuItem.
func (s *CartService) ListCart(ctx context.Context, user *models.User) ([]models.CartLine, error) {
	rows, err := s.Carts.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, internal(err)
	}

	menu, err := s.Menu.FindByIDs(ctx, menuItemIDs(rows))
	if err != nil {
		return nil, internal(err)
	}

	lines := make([]models.CartLine, 0, len(rows))
	for _, row := range rows {
		line := models.CartLine{CartItem: row}
		if item, ok := menu[row.MenuItemID]; ok {
			item := item
			line.MenuItem = &item
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// AddItem puts a menu item in the cart, adding to the quantity of an existing row
func (s *CartService) AddItem(ctx context.Context, user *models.User, menuItemID primitive.ObjectID, quantity int) (*models.CartItem, error) {
	if err := requirePositive("quantity", quantity); err != nil {
		return nil, err
	}

	if _, err := s.Menu.FindByID(ctx, menuItemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("menu item")
		}
		return nil, internal(err)
	}

	rows, err := s.Carts.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, internal(err)
	}
	for _, existing := range rows {
		if existing.MenuItemID == menuItemID && existing.Quantity > math.MaxInt-quantity {
			return nil, validationError("quantity must be at most %d", math.MaxInt)
		}
	}

	row, err := s.Carts.AddQuantity(ctx, user.ID, menuItemID, quantity, s.Now().UTC())
	if err != nil {
		return nil, internal(err)
	}
	return row, nil
}

// UpdateItem sets the quantity of one of the user's rows
func (s *CartService) UpdateItem(ctx context.Context, user *models.User, cartItemID primitive.ObjectID, quantity int) (*models.CartItem, error) {
	if err := requirePositive("quantity", quantity); err != nil {
		return nil, err
	}

	row, err := s.Carts.UpdateQuantity(ctx, user.ID, cartItemID, quantity, s.Now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("cart item")
	}
	if err != nil {
		return nil, internal(err)
	}
	return row, nil
}

// RemoveItem deletes one of the user's rows. Rows of other users are reported as not found.
func (s *CartService) RemoveItem(ctx context.Context, user *models.User, cartItemID primitive.ObjectID) error {
	err := s.Carts.Delete(ctx, user.ID, cartItemID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("cart item")
	}
	if err != nil {
		return internal(err)
	}
	return nil
}

// snapshotCart prices the user's cart at current menu prices. It fails with
// EmptyCart for an empty cart and NotFound when a row's menu item is gone.
func snapshotCart(ctx context.Context, carts repository.CartRepository, menu repository.MenuRepository, userID primitive.ObjectID) ([]models.OrderItem, models.Money, error) {
	rows, err := carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, models.Money{}, internal(err)
	}
	if len(rows) == 0 {
		return nil, models.Money{}, errEmptyCart
	}

	items, err := menu.FindByIDs(ctx, menuItemIDs(rows))
	if err != nil {
		return nil, models.Money{}, internal(err)
	}

	lines := make([]models.OrderItem, 0, len(rows))
	var total models.Money
	for _, row := range rows {
		item, ok := items[row.MenuItemID]
		if !ok {
			return nil, models.Money{}, NewError(KindNotFound, "menu item "+row.MenuItemID.Hex()+" is no longer on the menu")
		}
		line := models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   row.Quantity,
		}
		lines = append(lines, line)
		total = total.Plus(line.Subtotal())
	}
	return lines, total, nil
}

func menuItemIDs(rows []models.CartItem) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.MenuItemID)
	}
	return ids
}
