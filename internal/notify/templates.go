package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/kalambet/restora/internal/restaurant"
)

type orderLine struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

func (l orderLine) Total() float64 {
	return l.Price * float64(l.Qty)
}

type templateData struct {
	Name    string      `json:"name"`
	Date    string      `json:"date"`
	Time    string      `json:"time"`
	Guests  json.Number `json:"guests"`
	Phone   string      `json:"phone"`
	Status  string      `json:"status"`
	OrderID string      `json:"orderId"`
	Total   float64     `json:"total"`
	Items   []orderLine `json:"items"`
}

const signature = `
Best regards,
Restora Restaurant Team`

var funcs = template.FuncMap{"price": restaurant.FormatPrice}

var templates = map[string]struct {
	subject *template.Template
	body    *template.Template
}{
	restaurant.NotifyReservationConfirmation: {
		subject: mustParse("Reservation Confirmed - Restora Restaurant"),
		body: mustParse(`Dear {{.Name}},

Your table reservation has been confirmed!

Details:
- Date: {{.Date}}
- Time: {{.Time}}
- Guests: {{.Guests}}
- Phone: {{.Phone}}

We look forward to serving you at Restora!
` + signature),
	},
	restaurant.NotifyReservationStatusUpdate: {
		subject: mustParse("Reservation {{.Status}} - Restora Restaurant"),
		body: mustParse(`Dear {{.Name}},

Your reservation status has been updated to: {{.Status}}

Details:
- Date: {{.Date}}
- Time: {{.Time}}
- Guests: {{.Guests}}

{{if eq .Status "approved"}}We look forward to seeing you!{{else}}Please contact us if you have any questions.{{end}}
` + signature),
	},
	restaurant.NotifyOrderConfirmation: {
		subject: mustParse("Order Confirmed - Restora Restaurant"),
		body: mustParse(`Dear {{.Name}},

Thank you for your order!

Order #{{.OrderID}}
Total: {{price .Total}}

Items:
{{range .Items}}- {{.Name}} x{{.Qty}} - {{price .Total}}
{{end}}
Your order is being prepared and will be ready soon!
` + signature),
	},
	restaurant.NotifyWelcome: {
		subject: mustParse("Welcome to Restora Restaurant!"),
		body: mustParse(`Dear {{.Name}},

Welcome to Restora! We're excited to have you join our community.

You can now:
- Browse our menu
- Make reservations
- Order online
- Leave reviews

Thank you for choosing Restora!
` + signature),
	},
}

func mustParse(text string) *template.Template {
	return template.Must(template.New("").Funcs(funcs).Parse(text))
}

// Render builds the email for n.
func Render(n restaurant.Notification) (Message, error) {
	tmpl, ok := templates[n.Type]
	if !ok {
		return Message{}, fmt.Errorf("unknown notification type %q", n.Type)
	}

	var data templateData
	if n.Data != nil {
		raw, err := json.Marshal(n.Data)
		if err != nil {
			return Message{}, fmt.Errorf("encoding data: %w", err)
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return Message{}, fmt.Errorf("decoding data: %w", err)
		}
	}
	if strings.TrimSpace(data.Name) == "" {
		data.Name = "Guest"
	}

	var subject, body bytes.Buffer
	if err := tmpl.subject.Execute(&subject, data); err != nil {
		return Message{}, fmt.Errorf("rendering subject: %w", err)
	}
	if err := tmpl.body.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("rendering body: %w", err)
	}
	return Message{To: n.To, Subject: subject.String(), Body: body.String()}, nil
}
