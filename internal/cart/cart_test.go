package cart

import (
	"testing"

	"github.com/yaelahbim/aryastore/internal/catalog"
)

func testConfig(t *testing.T) *catalog.Config {
	t.Helper()
	cfg, err := catalog.Parse([]byte(`{
		"storeInfo": {"minPurchase": 3, "whatsappNumber": "6281234567890"},
		"products": [
			{"id": "A", "name": "ProductA", "type": "voucher", "price": 10000},
			{"id": "B", "name": "ProductB", "type": "physical", "price": 5000}
		],
		"messages": {"orderMessage": "{orderDetails} {total} {name} {email} {phone}"}
	}`))
	if err != nil {
		t.Fatalf("parsing test config: %v", err)
	}
	return cfg
}

func TestUpdateQuantityInsertsAndOverwrites(t *testing.T) {
	c := New()
	c = UpdateQuantity(c, "A", 2)
	c = UpdateQuantity(c, "B", 1)
	c = UpdateQuantity(c, "A", 5)

	if got := c.Quantity("A"); got != 5 {
		t.Fatalf("quantity A = %d, want 5", got)
	}
	if got := c.Quantity("B"); got != 1 {
		t.Fatalf("quantity B = %d, want 1", got)
	}
	entries := c.Entries()
	if len(entries) != 2 || entries[0].ProductID != "A" || entries[1].ProductID != "B" {
		t.Fatalf("entries = %v, want A then B in insertion order", entries)
	}
}

func TestUpdateQuantityZeroOrNegativeRemoves(t *testing.T) {
	base := UpdateQuantity(UpdateQuantity(New(), "A", 2), "B", 1)

	for _, q := range []int{0, -1, -10} {
		c := UpdateQuantity(base, "A", q)
		if c.Quantity("A") != 0 || c.Len() != 1 {
			t.Fatalf("UpdateQuantity(_, A, %d) should remove A, got %v", q, c.Entries())
		}
		removed := RemoveItem(base, "A")
		if got, want := c.Map(), removed.Map(); len(got) != len(want) || got["B"] != want["B"] {
			t.Fatalf("UpdateQuantity(_, A, %d) = %v, want same as RemoveItem = %v", q, got, want)
		}
	}
}

func TestUpdateQuantityDoesNotMutateInput(t *testing.T) {
	c := UpdateQuantity(New(), "A", 2)
	_ = UpdateQuantity(c, "A", 9)
	_ = RemoveItem(c, "A")
	if got := c.Quantity("A"); got != 2 {
		t.Fatalf("input cart mutated, quantity A = %d, want 2", got)
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	c := UpdateQuantity(New(), "A", 2)
	c = RemoveItem(c, "nope")
	if c.Len() != 1 || c.Quantity("A") != 2 {
		t.Fatalf("removing absent id changed the cart: %v", c.Entries())
	}
}

func TestTotalItemsLaw(t *testing.T) {
	c := UpdateQuantity(UpdateQuantity(New(), "A", 2), "B", 1)
	before := TotalItems(c)

	// id already present: total changes by q - old quantity.
	next := UpdateQuantity(c, "A", 7)
	if got, want := TotalItems(next), before-c.Quantity("A")+7; got != want {
		t.Fatalf("TotalItems after overwrite = %d, want %d", got, want)
	}

	// id absent: total grows by q.
	next = UpdateQuantity(c, "C", 4)
	if got, want := TotalItems(next), before+4; got != want {
		t.Fatalf("TotalItems after insert = %d, want %d", got, want)
	}
}

func TestTotalPriceSkipsUnknownProducts(t *testing.T) {
	cfg := testConfig(t)

	c := UpdateQuantity(UpdateQuantity(New(), "A", 2), "B", 1)
	if got := TotalPrice(c, cfg); got != 25000 {
		t.Fatalf("TotalPrice = %d, want 25000", got)
	}

	c = UpdateQuantity(c, "ghost", 100)
	if got := TotalPrice(c, cfg); got != 25000 {
		t.Fatalf("TotalPrice with unknown id = %d, want 25000", got)
	}
	if got := TotalItems(c); got != 103 {
		t.Fatalf("TotalItems still counts unknown ids, got %d want 103", got)
	}
}

func TestCheckoutScenarioTotals(t *testing.T) {
	cfg := testConfig(t)
	c := FromMap(map[string]int{"A": 2, "B": 1})

	if got := TotalItems(c); got != 3 {
		t.Fatalf("TotalItems = %d, want 3", got)
	}
	if got := TotalPrice(c, cfg); got != 25000 {
		t.Fatalf("TotalPrice = %d, want 25000", got)
	}
}

func TestFromMapDropsNonPositiveQuantities(t *testing.T) {
	c := FromMap(map[string]int{"A": 2, "B": 0, "C": -3})
	if c.Len() != 1 || c.Quantity("A") != 2 {
		t.Fatalf("FromMap kept invalid entries: %v", c.Entries())
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount int
		want   string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{20000, "Rp20.000"},
		{25000, "Rp25.000"},
		{1234567, "Rp1.234.567"},
		{100000000, "Rp100.000.000"},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.amount); got != tc.want {
			t.Fatalf("FormatPrice(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
