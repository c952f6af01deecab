package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `{
	"storeInfo": {"name": "AryaPedia", "minPurchase": 3, "whatsappNumber": "6281234567890"},
	"products": [
		{"id": "A", "name": "ProductA", "type": "voucher", "price": 10000, "originalPrice": 12000},
		{"id": "B", "name": "ProductB", "type": "physical", "price": 5000}
	],
	"formLabels": {"name": "Nama Lengkap"},
	"messages": {"orderMessage": "{orderDetails}"}
}`

func TestParseValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.StoreInfo.MinPurchase != 3 {
		t.Fatalf("minPurchase = %d, want 3", cfg.StoreInfo.MinPurchase)
	}
	p, ok := cfg.Product("A")
	if !ok || p.Name != "ProductA" || p.Type != TypeVoucher || p.Price != 10000 {
		t.Fatalf("Product(A) = %+v ok=%v", p, ok)
	}
	if _, ok := cfg.Product("missing"); ok {
		t.Fatal("lookup of unknown id must report not-found")
	}
}

func TestParseAppliesDefaultMessages(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Messages.IncompleteData == "" {
		t.Fatal("incompleteData default missing")
	}
	if !strings.Contains(cfg.Messages.MinPurchase, "{minPurchase}") {
		t.Fatalf("minPurchase default %q should carry the placeholder", cfg.Messages.MinPurchase)
	}
}

func TestParseRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"zero minPurchase", `{"storeInfo": {"minPurchase": 0, "whatsappNumber": "62"}, "messages": {"orderMessage": "x"}}`},
		{"missing whatsapp number", `{"storeInfo": {"minPurchase": 1}, "messages": {"orderMessage": "x"}}`},
		{"missing order message", `{"storeInfo": {"minPurchase": 1, "whatsappNumber": "62"}}`},
		{"duplicate product id", `{"storeInfo": {"minPurchase": 1, "whatsappNumber": "62"},
			"products": [{"id": "A", "name": "a", "price": 1}, {"id": "A", "name": "b", "price": 2}],
			"messages": {"orderMessage": "x"}}`},
		{"negative price", `{"storeInfo": {"minPurchase": 1, "whatsappNumber": "62"},
			"products": [{"id": "A", "name": "a", "price": -5}],
			"messages": {"orderMessage": "x"}}`},
		{"product without id", `{"storeInfo": {"minPurchase": 1, "whatsappNumber": "62"},
			"products": [{"name": "a", "price": 5}],
			"messages": {"orderMessage": "x"}}`},
	}
	for _, tc := range cases {
		if _, err := Parse([]byte(tc.doc)); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store-config.json")
	if err := os.WriteFile(path, []byte(validConfig), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Products) != 2 {
		t.Fatalf("len(Products) = %d, want 2", len(cfg.Products))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
