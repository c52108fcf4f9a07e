// Package receipt builds printable rent receipt documents from a tenant,
// room, and settings snapshot. Composition is read-only: it never mutates the
// aggregate it renders from.
package receipt

import (
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"lodgecore/pkg/domain"
)

// Document is a fully composed receipt ready for rendering or archival.
type Document struct {
	Number        string    `json:"number"`
	Date          string    `json:"date"`
	IssuedAt      time.Time `json:"issued_at"`
	TenantName    string    `json:"tenant_name"`
	RoomNumber    string    `json:"room_number"`
	Rent          int64     `json:"rent"`
	HostelName    string    `json:"hostel_name"`
	Address       string    `json:"address"`
	ContactNumber string    `json:"contact_number"`
	SignatureText string    `json:"signature_text,omitempty"`
	PaymentLink   string    `json:"payment_link"`
	// QRImage is the rendered payment code PNG. Empty when the settings carry
	// a custom uploaded image, which takes precedence.
	QRImage       []byte `json:"-"`
	CustomQRImage string `json:"custom_qr_image,omitempty"`
}

// ImageGenerator renders a payment deep link as a scannable image.
type ImageGenerator interface {
	Image(payload string) ([]byte, error)
}

// Composer assembles receipt documents. Randomness and time are injectable
// so composed numbers are reproducible in tests.
type Composer struct {
	images  ImageGenerator
	now     func() time.Time
	randInt func(n int) int
}

// ComposerOption customizes a Composer.
type ComposerOption func(*Composer)

// WithNow overrides the composer clock.
func WithNow(now func() time.Time) ComposerOption {
	return func(c *Composer) { c.now = now }
}

// WithRandInt overrides the receipt number randomness source.
func WithRandInt(randInt func(n int) int) ComposerOption {
	return func(c *Composer) { c.randInt = randInt }
}

// NewComposer returns a Composer rendering payment codes with images. A nil
// generator disables dynamic code rendering.
func NewComposer(images ImageGenerator, opts ...ComposerOption) *Composer {
	c := &Composer{
		images:  images,
		now:     func() time.Time { return time.Now() },
		randInt: rand.Intn,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds the receipt document. It cannot fail: a payment code that
// cannot be rendered simply leaves the document without an image, matching
// the always-succeeding contract of the image collaborator.
func (c *Composer) Compose(tenant domain.Tenant, room domain.Room, settings domain.Settings) Document {
	now := c.now()
	doc := Document{
		Number:        fmt.Sprintf("RCP-%d-%04d", now.Year(), c.randInt(10000)),
		Date:          now.Format("2 January 2006"),
		IssuedAt:      now,
		TenantName:    tenant.Name,
		RoomNumber:    room.Number,
		Rent:          tenant.Rent,
		HostelName:    settings.HostelName,
		Address:       settings.Address,
		ContactNumber: settings.ContactNumber,
		SignatureText: settings.SignatureText,
		PaymentLink:   PaymentLink(settings, tenant.Rent),
	}
	if settings.CustomQRImage != "" {
		doc.CustomQRImage = settings.CustomQRImage
		return doc
	}
	if c.images != nil {
		if img, err := c.images.Image(doc.PaymentLink); err == nil {
			doc.QRImage = img
		}
	}
	return doc
}

// PaymentLink builds the UPI deep link for the given settings and amount:
// upi://pay?pa=<upiId>&pn=<urlEncoded hostelName>&am=<rent>&cu=INR
func PaymentLink(settings domain.Settings, rent int64) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%d&cu=INR",
		settings.UPIID, encodeComponent(settings.HostelName), rent)
}

// encodeComponent percent-encodes a query component, with spaces as %20
// rather than +, so scanners parse the payee name correctly.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
