package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-foodorder/models"
	"go-foodorder/repository"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItemInput carries the editable fields of a menu item. Price is a pointer
// so a missing price can be told apart from zero.
type MenuItemInput struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Image       string           `json:"image"`
	Category    string           `json:"category"`
}

// CatalogService manages the menu
type CatalogService struct {
	Menu     repository.MenuRepository
	Now      func() time.Time
	validate *validator.Validate
}

func NewCatalogService(menu repository.MenuRepository) *CatalogService {
	return &CatalogService{Menu: menu, Now: time.Now, validate: newValidator()}
}

// ListItems returns every menu item; an empty menu is not an error
func (s *CatalogService) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.Menu.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return items, nil
}

func (s *CatalogService) GetItem(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	item, err := s.Menu.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("menu item")
	}
	if err != nil {
		return nil, internal(err)
	}
	return item, nil
}

func (s *CatalogService) CreateItem(ctx context.Context, actor *models.User, in MenuItemInput) (*models.MenuItem, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validateItem(&in); err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	item := &models.MenuItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       models.NewMoney(*in.Price),
		Image:       in.Image,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Menu.Create(ctx, item); err != nil {
		return nil, internal(err)
	}
	return item, nil
}

// UpdateItem replaces the editable fields. Orders already placed keep their snapshot.
func (s *CatalogService) UpdateItem(ctx context.Context, actor *models.User, id primitive.ObjectID, in MenuItemInput) (*models.MenuItem, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validateItem(&in); err != nil {
		return nil, err
	}

	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Name = in.Name
	item.Description = in.Description
	item.Price = models.NewMoney(*in.Price)
	item.Image = in.Image
	item.Category = in.Category
	item.UpdatedAt = s.Now().UTC()

	if err := s.Menu.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("menu item")
		}
		return nil, internal(err)
	}
	return item, nil
}

// DeleteItem removes a menu item. Cart rows pointing at it are left in place
// and show up with a null menu item.
func (s *CatalogService) DeleteItem(ctx context.Context, actor *models.User, id primitive.ObjectID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	err := s.Menu.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("menu item")
	}
	if err != nil {
		return internal(err)
	}
	return nil
}

func (s *CatalogService) validateItem(in *MenuItemInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := validateInput(s.validate, in); err != nil {
		return err
	}
	if in.Price.IsNegative() {
		return validationError("price must not be negative")
	}
	return nil
}
