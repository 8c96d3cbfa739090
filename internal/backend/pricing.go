package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ImAlagar/zohra-admin-core/internal/catalog"
	"github.com/ImAlagar/zohra-admin-core/internal/pricing"
	pkgerrors "github.com/ImAlagar/zohra-admin-core/pkg/errors"
)

type wireRule struct {
	ID            string          `json:"id"`
	SubcategoryID string          `json:"subcategoryId"`
	Quantity      int             `json:"quantity"`
	PriceType     string          `json:"priceType"`
	Value         decimal.Decimal `json:"value"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (w wireRule) toModel() pricing.QuantityPriceRule {
	priceType, err := pricing.ParsePriceType(w.PriceType)
	if err != nil {
		// Unknown types pass through uppercased; reads must not fail on them.
		priceType = pricing.PriceType(strings.ToUpper(strings.TrimSpace(w.PriceType)))
	}
	return pricing.QuantityPriceRule{
		ID:            w.ID,
		SubcategoryID: w.SubcategoryID,
		Quantity:      w.Quantity,
		PriceType:     priceType,
		Value:         w.Value,
		IsActive:      w.IsActive,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

type wireSubcategoryPricing struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	CategoryID     string     `json:"categoryId"`
	Category       string     `json:"category"`
	QuantityPrices []wireRule `json:"quantityPrices"`
}

type wireRuleDetail struct {
	wireRule
	Subcategory string `json:"subcategory"`
	Category    string `json:"category"`
}

type ruleWriteBody struct {
	Quantity  int             `json:"quantity"`
	PriceType string          `json:"priceType"`
	Value     decimal.Decimal `json:"value"`
	IsActive  *bool           `json:"isActive,omitempty"`
}

func writeBodyFromPayload(payload pricing.RulePayload, isActive *bool) ruleWriteBody {
	body := ruleWriteBody{
		Quantity:  payload.QuantityInt(),
		PriceType: string(payload.PriceType),
		IsActive:  isActive,
	}
	if payload.Value != nil {
		body.Value = *payload.Value
	}
	return body
}

// ListSubcategoriesWithPricing returns every subcategory with its embedded
// quantity price rules.
func (c *Client) ListSubcategoriesWithPricing(ctx context.Context) ([]pricing.SubcategoryRules, error) {
	body, err := c.do(ctx, "list_subcategories_with_pricing", http.MethodGet, "/subcategories-with-pricing", nil)
	if err != nil {
		return nil, asOpError(err, pkgerrors.CodeFetchFailed, "list subcategories with pricing")
	}

	raw := extractList(body, "subcategories")
	if raw == "" {
		return []pricing.SubcategoryRules{}, nil
	}

	var wire []wireSubcategoryPricing
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFetchFailed, err, "decode subcategories with pricing")
	}

	groups := make([]pricing.SubcategoryRules, 0, len(wire))
	for _, sub := range wire {
		rules := make([]pricing.QuantityPriceRule, 0, len(sub.QuantityPrices))
		for _, rule := range sub.QuantityPrices {
			rules = append(rules, rule.toModel())
		}
		groups = append(groups, pricing.SubcategoryRules{
			Subcategory: catalog.Subcategory{
				ID:         sub.ID,
				Name:       sub.Name,
				CategoryID: sub.CategoryID,
				Category:   sub.Category,
			},
			Rules: rules,
		})
	}
	return groups, nil
}

// GetRule fetches one rule with denormalized subcategory/category names.
func (c *Client) GetRule(ctx context.Context, ruleID string) (*pricing.RuleDetail, error) {
	body, err := c.do(ctx, "get_rule", http.MethodGet, "/quantity-prices/"+url.PathEscape(ruleID), nil)
	if err != nil {
		return nil, asOpError(err, pkgerrors.CodeFetchFailed, "get quantity price rule")
	}

	raw := extractObject(body)
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeFetchFailed, "unexpected rule detail shape")
	}

	var wire wireRuleDetail
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFetchFailed, err, "decode rule detail")
	}
	return &pricing.RuleDetail{
		QuantityPriceRule: wire.toModel(),
		SubcategoryName:   wire.Subcategory,
		CategoryName:      wire.Category,
	}, nil
}

// CreateRule creates a rule under the given subcategory.
func (c *Client) CreateRule(ctx context.Context, subcategoryID string, payload pricing.RulePayload) (*pricing.QuantityPriceRule, error) {
	path := fmt.Sprintf("/subcategories/%s/quantity-prices", url.PathEscape(subcategoryID))
	body, err := c.do(ctx, "create_rule", http.MethodPost, path, writeBodyFromPayload(payload, nil))
	if err != nil {
		return nil, asOpError(err, pkgerrors.CodeCreateFailed, "create quantity price rule")
	}
	return decodeRule(body, pkgerrors.CodeCreateFailed)
}

// UpdateRule replaces a rule's quantity/type/value and optionally its status.
func (c *Client) UpdateRule(ctx context.Context, ruleID string, payload pricing.RulePayload, isActive *bool) (*pricing.QuantityPriceRule, error) {
	body, err := c.do(ctx, "update_rule", http.MethodPut, "/quantity-prices/"+url.PathEscape(ruleID), writeBodyFromPayload(payload, isActive))
	if err != nil {
		return nil, asOpError(err, pkgerrors.CodeUpdateFailed, "update quantity price rule")
	}
	return decodeRule(body, pkgerrors.CodeUpdateFailed)
}

// DeleteRule removes a rule. A rule that is already gone surfaces NotFound.
func (c *Client) DeleteRule(ctx context.Context, ruleID string) error {
	if _, err := c.do(ctx, "delete_rule", http.MethodDelete, "/quantity-prices/"+url.PathEscape(ruleID), nil); err != nil {
		return asOpError(err, pkgerrors.CodeDeleteFailed, "delete quantity price rule")
	}
	return nil
}

// ToggleRule flips only the active flag via the status endpoint.
func (c *Client) ToggleRule(ctx context.Context, ruleID string, isActive bool) (*pricing.QuantityPriceRule, error) {
	payload := map[string]bool{"isActive": isActive}
	body, err := c.do(ctx, "toggle_rule", http.MethodPatch, "/quantity-prices/"+url.PathEscape(ruleID)+"/status", payload)
	if err != nil {
		return nil, asOpError(err, pkgerrors.CodeToggleFailed, "toggle quantity price rule")
	}
	return decodeRule(body, pkgerrors.CodeToggleFailed)
}

func decodeRule(body []byte, code pkgerrors.Code) (*pricing.QuantityPriceRule, error) {
	raw := extractObject(body)
	if raw == "" {
		return nil, pkgerrors.New(code, "unexpected rule shape in response")
	}
	var wire wireRule
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, pkgerrors.Wrap(code, err, "decode rule")
	}
	rule := wire.toModel()
	return &rule, nil
}
