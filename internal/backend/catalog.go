package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/ImAlagar/zohra-admin-core/internal/catalog"
	pkgerrors "github.com/ImAlagar/zohra-admin-core/pkg/errors"
)

type wireCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireSubcategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
	Category   string `json:"category"`
}

func (w wireSubcategory) toModel() catalog.Subcategory {
	return catalog.Subcategory{
		ID:         w.ID,
		Name:       w.Name,
		CategoryID: w.CategoryID,
		Category:   w.Category,
	}
}

// ListCategories returns all categories.
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	body, err := c.do(ctx, "list_categories", http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, asOpError(err, pkgerrors.CodeFetchFailed, "list categories")
	}

	raw := extractList(body, "categories")
	if raw == "" {
		return []catalog.Category{}, nil
	}

	var wire []wireCategory
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFetchFailed, err, "decode categories")
	}
	categories := make([]catalog.Category, 0, len(wire))
	for _, cat := range wire {
		categories = append(categories, catalog.Category{ID: cat.ID, Name: cat.Name})
	}
	return categories, nil
}

// ListSubcategories returns subcategories, optionally scoped to a category.
func (c *Client) ListSubcategories(ctx context.Context, categoryID string) ([]catalog.Subcategory, error) {
	path := "/subcategories"
	if categoryID != "" {
		path += "?categoryId=" + url.QueryEscape(categoryID)
	}
	body, err := c.do(ctx, "list_subcategories", http.MethodGet, path, nil)
	if err != nil {
		return nil, asOpError(err, pkgerrors.CodeFetchFailed, "list subcategories")
	}

	raw := extractList(body, "subcategories")
	if raw == "" {
		return []catalog.Subcategory{}, nil
	}

	var wire []wireSubcategory
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFetchFailed, err, "decode subcategories")
	}
	subcategories := make([]catalog.Subcategory, 0, len(wire))
	for _, sub := range wire {
		subcategories = append(subcategories, sub.toModel())
	}
	return subcategories, nil
}

// GetSubcategory fetches one subcategory by id.
func (c *Client) GetSubcategory(ctx context.Context, subcategoryID string) (*catalog.Subcategory, error) {
	body, err := c.do(ctx, "get_subcategory", http.MethodGet, "/subcategories/"+url.PathEscape(subcategoryID), nil)
	if err != nil {
		return nil, asOpError(err, pkgerrors.CodeFetchFailed, "get subcategory")
	}

	raw := extractObject(body)
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeFetchFailed, "unexpected subcategory shape")
	}
	var wire wireSubcategory
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFetchFailed, err, "decode subcategory")
	}
	sub := wire.toModel()
	return &sub, nil
}
