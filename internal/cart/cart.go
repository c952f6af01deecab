// Package cart holds the checkout cart: a mapping from product id to
// quantity, the pure operations the flow performs on it, and the Store that
// keeps one shopper's cart in durable storage.
package cart

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yaelahbim/aryastore/internal/catalog"
)

// Cart is a value type. Entries keep the order items were first added, so
// the summary the shopper sees stays stable while they edit quantities.
type Cart struct {
	qty   map[string]int
	order []string
}

func New() Cart {
	return Cart{qty: map[string]int{}}
}

// FromMap builds a cart from a persisted product-id to quantity mapping.
// Entries with a non-positive quantity are dropped. Display order after a
// reload is sorted by product id, since a JSON object carries no order.
func FromMap(m map[string]int) Cart {
	ids := make([]string, 0, len(m))
	for id, q := range m {
		if q > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	c := New()
	for _, id := range ids {
		c.qty[id] = m[id]
		c.order = append(c.order, id)
	}
	return c
}

func (c Cart) Quantity(productID string) int {
	return c.qty[productID]
}

// Len is the number of distinct products in the cart.
func (c Cart) Len() int {
	return len(c.qty)
}

// Entries lists the cart lines in display order.
func (c Cart) Entries() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		entries = append(entries, Entry{ProductID: id, Quantity: c.qty[id]})
	}
	return entries
}

// Map copies the cart into the plain mapping that gets persisted.
func (c Cart) Map() map[string]int {
	m := make(map[string]int, len(c.qty))
	for id, q := range c.qty {
		m[id] = q
	}
	return m
}

func (c Cart) clone() Cart {
	next := Cart{
		qty:   make(map[string]int, len(c.qty)),
		order: make([]string, len(c.order)),
	}
	for id, q := range c.qty {
		next.qty[id] = q
	}
	copy(next.order, c.order)
	return next
}

func (c *Cart) delete(productID string) {
	if _, ok := c.qty[productID]; !ok {
		return
	}
	delete(c.qty, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// UpdateQuantity returns a cart with the product set to the given quantity.
// A quantity of zero or less removes the entry entirely. There is no upper
// bound: the storefront does not track stock.
func UpdateQuantity(c Cart, productID string, quantity int) Cart {
	next := c.clone()
	if quantity <= 0 {
		next.delete(productID)
		return next
	}
	if _, ok := next.qty[productID]; !ok {
		next.order = append(next.order, productID)
	}
	next.qty[productID] = quantity
	return next
}

// RemoveItem returns a cart without the product. Removing an absent product
// is a no-op.
func RemoveItem(c Cart, productID string) Cart {
	next := c.clone()
	next.delete(productID)
	return next
}

// TotalItems is the sum of all quantities.
func TotalItems(c Cart) int {
	total := 0
	for _, q := range c.qty {
		total += q
	}
	return total
}

// TotalPrice sums quantity times unit price over the catalog. Entries whose
// product id is not in the catalog contribute nothing.
func TotalPrice(c Cart, cfg *catalog.Config) int {
	total := 0
	for id, q := range c.qty {
		p, ok := cfg.Product(id)
		if !ok {
			continue
		}
		total += p.Price * q
	}
	return total
}

// FormatPrice renders an amount as Indonesian rupiah with no fraction
// digits, e.g. 20000 becomes "Rp20.000".
func FormatPrice(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.Itoa(amount)
	var b strings.Builder
	b.WriteString("Rp")
	b.WriteString(sign)
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return b.String()
}
