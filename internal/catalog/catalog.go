// Package catalog exposes the store configuration: the product list, the
// minimum-purchase rule, the WhatsApp destination and the text templates the
// storefront renders. The configuration is read once at boot and never
// mutated afterwards.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

type ProductType string

const (
	TypeVoucher  ProductType = "voucher"
	TypePhysical ProductType = "physical"
)

// Product is one purchasable item. Price is in the smallest currency unit,
// whole rupiah here. Image, Description and OriginalPrice are presentation
// data passed through untouched.
type Product struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Type          ProductType `json:"type"`
	Price         int         `json:"price"`
	Image         string      `json:"image,omitempty"`
	Description   string      `json:"description,omitempty"`
	OriginalPrice int         `json:"originalPrice,omitempty"`
}

type StoreInfo struct {
	Name           string `json:"name"`
	MinPurchase    int    `json:"minPurchase"`
	WhatsappNumber string `json:"whatsappNumber"`
}

// FormLabels are the contact form captions and placeholders.
type FormLabels struct {
	Name             string `json:"name"`
	NamePlaceholder  string `json:"namePlaceholder"`
	Email            string `json:"email"`
	EmailPlaceholder string `json:"emailPlaceholder"`
	Phone            string `json:"phone"`
	PhonePlaceholder string `json:"phonePlaceholder"`
}

// Messages holds the order message template and the user-facing texts around
// checkout. OrderMessage may contain the placeholders {orderDetails},
// {total}, {name}, {email} and {phone}; MinPurchase may contain
// {minPurchase}.
type Messages struct {
	OrderMessage   string `json:"orderMessage"`
	CheckoutButton string `json:"checkoutButton"`
	IncompleteData string `json:"incompleteData"`
	MinPurchase    string `json:"minPurchase"`
}

type Config struct {
	StoreInfo  StoreInfo  `json:"storeInfo"`
	Products   []Product  `json:"products"`
	FormLabels FormLabels `json:"formLabels"`
	Messages   Messages   `json:"messages"`

	byID map[string]Product
}

// Load reads and validates the store configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading store config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing store config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a store configuration document and validates the parts the
// checkout flow depends on.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.StoreInfo.MinPurchase <= 0 {
		return nil, fmt.Errorf("storeInfo.minPurchase must be a positive integer, got %d", cfg.StoreInfo.MinPurchase)
	}
	if cfg.StoreInfo.WhatsappNumber == "" {
		return nil, fmt.Errorf("storeInfo.whatsappNumber is required")
	}
	if cfg.Messages.OrderMessage == "" {
		return nil, fmt.Errorf("messages.orderMessage is required")
	}

	cfg.byID = make(map[string]Product, len(cfg.Products))
	for _, p := range cfg.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %q has no id", p.Name)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %s has negative price %d", p.ID, p.Price)
		}
		if _, ok := cfg.byID[p.ID]; ok {
			return nil, fmt.Errorf("duplicate product id %s", p.ID)
		}
		cfg.byID[p.ID] = p
	}

	// The refusal texts have store-independent defaults.
	if cfg.Messages.IncompleteData == "" {
		cfg.Messages.IncompleteData = "Mohon lengkapi semua data yang diperlukan"
	}
	if cfg.Messages.MinPurchase == "" {
		cfg.Messages.MinPurchase = "Minimal pembelian {minPurchase} item"
	}

	return &cfg, nil
}

// Product looks an item up by id.
func (c *Config) Product(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}
