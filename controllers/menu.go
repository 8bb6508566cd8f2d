package controllers

import (
	"net/http"

	"go-foodorder/middleware"
	"go-foodorder/services"
)

// MenuController handles menu requests
type MenuController struct {
	Catalog *services.CatalogService
}

func NewMenuController(catalog *services.CatalogService) *MenuController {
	return &MenuController{Catalog: catalog}
}

// GetMenu retrieves all menu items
func (mc *MenuController) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	items, err := mc.Catalog.ListItems(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (mc *MenuController) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "menu item")
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	item, err := mc.Catalog.GetItem(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreateMenuItem handles adding a new menu item (Admin only)
func (mc *MenuController) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var in services.MenuItemInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	item, err := mc.Catalog.CreateItem(ctx, middleware.CurrentUser(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateMenuItem replaces a menu item's fields (Admin only)
func (mc *MenuController) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "menu item")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in services.MenuItemInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	item, err := mc.Catalog.UpdateItem(ctx, middleware.CurrentUser(r), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteMenuItem removes a menu item (Admin only)
func (mc *MenuController) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "menu item")
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := mc.Catalog.DeleteItem(ctx, middleware.CurrentUser(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Menu item deleted"})
}
