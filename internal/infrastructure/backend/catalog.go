package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/funnfood/storefront/internal/core/domain"
)

const (
	pathMenuItems      = "/menu/items"
	pathMenuCategories = "/menu/categories"
)

type menuCategoryResponse struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

type menuItemResponse struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Category    string      `json:"category"`
}

func (r menuItemResponse) toDomain() domain.CatalogItem {
	return domain.CatalogItem{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
	}
}

// ListItems returns the full menu catalog.
func (c *Client) ListItems(ctx context.Context) ([]domain.CatalogItem, error) {
	return c.listItems(ctx, "list_items", pathMenuItems)
}

// ListCategories returns the menu categories for browsing.
func (c *Client) ListCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	var resp []menuCategoryResponse
	if err := c.do(ctx, "list_categories", http.MethodGet, pathMenuCategories, nil, &resp); err != nil {
		return nil, err
	}
	categories := make([]domain.MenuCategory, 0, len(resp))
	for _, r := range resp {
		categories = append(categories, domain.MenuCategory{ID: r.ID.String(), Name: r.Name})
	}
	return categories, nil
}

// ListItemsByCategory returns the items of one category. An unknown category
// maps to domain.ErrNotFound.
func (c *Client) ListItemsByCategory(ctx context.Context, categoryID string) ([]domain.CatalogItem, error) {
	return c.listItems(ctx, "list_items_by_category", pathMenuItems+"/category/"+categoryID)
}

// ListVegetarianItems returns the vegetarian slice of the catalog.
func (c *Client) ListVegetarianItems(ctx context.Context) ([]domain.CatalogItem, error) {
	return c.listItems(ctx, "list_vegetarian_items", pathMenuItems+"/vegetarian")
}

func (c *Client) listItems(ctx context.Context, endpoint, path string) ([]domain.CatalogItem, error) {
	var resp []menuItemResponse
	if err := c.do(ctx, endpoint, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	items := make([]domain.CatalogItem, 0, len(resp))
	for _, r := range resp {
		items = append(items, r.toDomain())
	}
	return items, nil
}

// FetchItem returns a single catalog item snapshot by id. Unknown ids map to
// domain.ErrNotFound.
func (c *Client) FetchItem(ctx context.Context, itemID string) (*domain.CatalogItem, error) {
	var resp menuItemResponse
	if err := c.do(ctx, "fetch_item", http.MethodGet, pathMenuItems+"/"+itemID, nil, &resp); err != nil {
		return nil, err
	}
	item := resp.toDomain()
	return &item, nil
}
