// Package order validates a checkout submission and composes the WhatsApp
// order message and deep link.
package order

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yaelahbim/aryastore/internal/cart"
	"github.com/yaelahbim/aryastore/internal/catalog"
)

const whatsappBaseURL = "https://wa.me/"

// Contact holds the shopper details collected by the checkout form. All
// three fields must be filled before an order can be submitted.
type Contact struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// ErrIncompleteContact marks a submission with a missing contact field.
var ErrIncompleteContact = errors.New("contact details incomplete")

// BelowMinPurchaseError marks a submission below the store's minimum item
// count.
type BelowMinPurchaseError struct {
	Min   int
	Items int
}

func (e *BelowMinPurchaseError) Error() string {
	return fmt.Sprintf("minimum purchase is %d items, cart has %d", e.Min, e.Items)
}

type Conf struct {
	cfg      *catalog.Config
	validate *validator.Validate
}

func NewConf(cfg *catalog.Config) (Conf, error) {
	if cfg == nil {
		return Conf{}, fmt.Errorf("catalog config is nil")
	}
	return Conf{cfg: cfg, validate: validator.New()}, nil
}

// SanitizePhone keeps only decimal digits, so the stored phone value is
// always purely numeric or empty.
func SanitizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanSubmit reports whether the order may be submitted: all contact fields
// filled and the cart at or above the minimum purchase.
func (o *Conf) CanSubmit(c cart.Cart, contact Contact) bool {
	return o.Validate(c, contact) == nil
}

// Validate returns ErrIncompleteContact or a BelowMinPurchaseError when the
// submission must be refused, nil otherwise. Contact fields are checked
// first, matching the order the storefront reports problems in.
func (o *Conf) Validate(c cart.Cart, contact Contact) error {
	if err := o.validate.Struct(contact); err != nil {
		return fmt.Errorf("%w: %s", ErrIncompleteContact, err)
	}
	if items := cart.TotalItems(c); items < o.cfg.StoreInfo.MinPurchase {
		return &BelowMinPurchaseError{Min: o.cfg.StoreInfo.MinPurchase, Items: items}
	}
	return nil
}

// UserMessage maps a Validate failure to the store-configured message shown
// to the shopper.
func (o *Conf) UserMessage(err error) string {
	var minErr *BelowMinPurchaseError
	if errors.As(err, &minErr) {
		return strings.Replace(o.cfg.Messages.MinPurchase, "{minPurchase}", strconv.Itoa(minErr.Min), 1)
	}
	if errors.Is(err, ErrIncompleteContact) {
		return o.cfg.Messages.IncompleteData
	}
	return err.Error()
}

// ComposeMessage renders the order message from the configured template.
// One line per cart entry in display order, entries whose product is gone
// from the catalog skipped. Each placeholder is replaced once, first
// occurrence only.
func (o *Conf) ComposeMessage(c cart.Cart, contact Contact) string {
	var lines []string
	for _, e := range c.Entries() {
		p, ok := o.cfg.Product(e.ProductID)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s x%d = %s", p.Name, e.Quantity, cart.FormatPrice(p.Price*e.Quantity)))
	}

	msg := o.cfg.Messages.OrderMessage
	for _, sub := range []struct{ placeholder, value string }{
		{"{orderDetails}", strings.Join(lines, "\n")},
		{"{total}", cart.FormatPrice(cart.TotalPrice(c, o.cfg))},
		{"{name}", contact.Name},
		{"{email}", contact.Email},
		{"{phone}", contact.Phone},
	} {
		msg = strings.Replace(msg, sub.placeholder, sub.value, 1)
	}
	return msg
}

// WhatsAppLink builds the deep link that opens a chat with the store,
// prefilled with the order message.
func (o *Conf) WhatsAppLink(message string) string {
	// QueryEscape uses '+' for spaces, which wa.me renders literally.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return whatsappBaseURL + o.cfg.StoreInfo.WhatsappNumber + "?text=" + encoded
}
