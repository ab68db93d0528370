package notifications

import (
	"bytes"
	"fmt"
	"text/template"
)

// Kind тип уведомления
type Kind string

const (
	KindBookingConfirmation Kind = "booking_confirmation"
	KindReminder            Kind = "reminder"
	KindWorkCompletion      Kind = "work_completion"
)

// messageData данные для шаблонов
type messageData struct {
	ShopName        string
	ContactPhone    string
	CustomerName    string
	ReservationID   int64
	Date            string
	TimeSlot        string
	MenuName        string
	ConfirmationURL string
	EstimatedAmount string
	ActualAmount    string
	AdminComment    string
}

type messageTemplate struct {
	subject *template.Template
	body    *template.Template
	sms     *template.Template
}

var templates = map[Kind]messageTemplate{
	KindBookingConfirmation: mustTemplate(
		"[{{.ShopName}}] Reservation confirmed - {{.Date}}",
		`Dear {{.CustomerName}},

Thank you for your reservation.

Reservation No.: #{{.ReservationID}}
Date: {{.Date}}
Time: {{.TimeSlot}}
Menu: {{.MenuName}}
{{if .ConfirmationURL}}
Details: {{.ConfirmationURL}}
{{end}}
If you have any questions, please contact us{{if .ContactPhone}} at {{.ContactPhone}}{{end}}.

{{.ShopName}}
`,
		"{{.ShopName}}: reservation #{{.ReservationID}} confirmed for {{.Date}} {{.TimeSlot}}.",
	),
	KindReminder: mustTemplate(
		"[{{.ShopName}}] Reminder of your reservation - {{.Date}}",
		`Dear {{.CustomerName}},

This is a reminder of your reservation tomorrow.

Reservation No.: #{{.ReservationID}}
Date: {{.Date}}
Time: {{.TimeSlot}}
Menu: {{.MenuName}}

Please arrive 5 minutes before your time slot.
If you need to cancel, please do so from your reservations page.

{{.ShopName}}
`,
		"{{.ShopName}}: reminder of your reservation #{{.ReservationID}} tomorrow ({{.Date}} {{.TimeSlot}}).",
	),
	KindWorkCompletion: mustTemplate(
		"[{{.ShopName}}] Work completed - {{.Date}}",
		`Dear {{.CustomerName}},

Thank you for visiting us. The work on your bicycle has been completed.

Reservation No.: #{{.ReservationID}}
Menu: {{.MenuName}}
Estimated amount: {{.EstimatedAmount}}
Final amount: {{.ActualAmount}}
{{if .AdminComment}}
{{.AdminComment}}
{{end}}
If you have any questions, please contact us{{if .ContactPhone}} at {{.ContactPhone}}{{end}}.

{{.ShopName}}
`,
		"{{.ShopName}}: work for reservation #{{.ReservationID}} is completed. Final amount: {{.ActualAmount}}.",
	),
}

func mustTemplate(subject, body, sms string) messageTemplate {
	return messageTemplate{
		subject: template.Must(template.New("subject").Parse(subject)),
		body:    template.Must(template.New("body").Parse(body)),
		sms:     template.Must(template.New("sms").Parse(sms)),
	}
}

type renderedMessage struct {
	Subject string
	Body    string
	SMS     string
}

func render(kind Kind, data messageData) (*renderedMessage, error) {
	tmpl, ok := templates[kind]
	if !ok {
		return nil, fmt.Errorf("unknown notification kind %q", kind)
	}

	var subject, body, sms bytes.Buffer
	if err := tmpl.subject.Execute(&subject, data); err != nil {
		return nil, fmt.Errorf("render subject: %w", err)
	}
	if err := tmpl.body.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}
	if err := tmpl.sms.Execute(&sms, data); err != nil {
		return nil, fmt.Errorf("render sms: %w", err)
	}

	return &renderedMessage{Subject: subject.String(), Body: body.String(), SMS: sms.String()}, nil
}
