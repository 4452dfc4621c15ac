package application

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
)

var (
	confirmationTemplate = template.Must(template.New("confirmation").Parse(`Hi {{.CustomerName}},

Good news! {{if .Item}}{{.Item.Name}}{{if .Item.Size}} (size {{.Item.Size}}){{end}} from your order{{else}}Your order{{end}} #{{.ShortID}} has been confirmed.
{{- if .Item}}{{if .Item.TrackingID}}

Tracking number: {{.Item.TrackingID}}{{end}}{{if .Item.TrackingURL}}
Track your package: {{.Item.TrackingURL}}{{end}}{{end}}
{{- if .CustomMessage}}

{{.CustomMessage}}{{end}}

Thank you for shopping with {{.StoreName}}.
`))

	statusTemplate = template.Must(template.New("status").Parse(`Hi {{.CustomerName}},

{{if .Item}}{{.Item.Name}}{{if .Item.Size}} (size {{.Item.Size}}){{end}} from your order{{else}}Your order{{end}} #{{.ShortID}} is now {{.StatusLabel}}.
{{- if .CustomMessage}}

{{.CustomMessage}}{{end}}

Thank you for shopping with {{.StoreName}}.
`))
)

// Composer renders customer emails for order status changes.
type Composer struct {
	storeName string
}

// NewComposer returns a composer signing emails with the store name.
func NewComposer(storeName string) *Composer {
	if storeName == "" {
		storeName = "Storefront"
	}
	return &Composer{storeName: storeName}
}

type emailView struct {
	CustomerName  string
	ShortID       string
	StoreName     string
	StatusLabel   string
	CustomMessage string
	Item          *domain.LineItem
}

// Confirmation renders the tracking-bearing email sent when a product is confirmed.
func (c *Composer) Confirmation(order *domain.Order, key domain.ItemKey, customMessage string) (domain.Notification, error) {
	view := c.view(order, customMessage)
	view.Item = findItem(order, key)
	view.StatusLabel = string(domain.AdminConfirmed)
	return c.render(order, fmt.Sprintf("Your %s order #%s is confirmed", c.storeName, view.ShortID), confirmationTemplate, view)
}

// ItemStatusUpdate renders the generic email for any non-confirmation item status.
func (c *Composer) ItemStatusUpdate(order *domain.Order, key domain.ItemKey, status domain.AdminStatus, customMessage string) (domain.Notification, error) {
	view := c.view(order, customMessage)
	view.Item = findItem(order, key)
	view.StatusLabel = string(domain.MapAdminStatusToWebsite(status))
	return c.render(order, fmt.Sprintf("Update on your %s order #%s: %s", c.storeName, view.ShortID, view.StatusLabel), statusTemplate, view)
}

// OrderStatusUpdate renders the email for a whole-order status override.
func (c *Composer) OrderStatusUpdate(order *domain.Order, customMessage string) (domain.Notification, error) {
	view := c.view(order, customMessage)
	view.StatusLabel = string(order.Status)
	return c.render(order, fmt.Sprintf("Update on your %s order #%s: %s", c.storeName, view.ShortID, view.StatusLabel), statusTemplate, view)
}

func (c *Composer) view(order *domain.Order, customMessage string) emailView {
	name := order.CustomerName
	if name == "" {
		name = "there"
	}
	return emailView{
		CustomerName:  name,
		ShortID:       shortID(order.ID),
		StoreName:     c.storeName,
		CustomMessage: customMessage,
	}
}

func (c *Composer) render(order *domain.Order, subject string, tmpl *template.Template, view emailView) (domain.Notification, error) {
	notification := domain.Notification{OrderID: order.ID, To: order.CustomerEmail, Subject: subject}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return notification, fmt.Errorf("render %s email: %w", tmpl.Name(), err)
	}
	notification.Body = buf.String()
	return notification, nil
}

func findItem(order *domain.Order, key domain.ItemKey) *domain.LineItem {
	item, ok := order.Item(key)
	if !ok {
		return nil
	}
	return &item
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
