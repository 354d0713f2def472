package mailer

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"quillworks/pkg/types"
)

var quoteConfirmationTmpl = template.Must(template.New("quote_confirmation").Parse(`<html><body>
<h2>Thanks for your request, {{.Name}}!</h2>
<p>We received your quote request and our team will get back to you within a few hours with pricing.</p>
<h3>What you sent us</h3>
<ul>
<li><strong>Subject:</strong> {{.Subject}}</li>
<li><strong>Service:</strong> {{.Service}}</li>
<li><strong>Academic level:</strong> {{.AcademicLevel}}</li>
<li><strong>Pages:</strong> {{.Pages}}</li>
<li><strong>Deadline:</strong> {{.Deadline}}</li>
{{if .Phone}}<li><strong>Phone:</strong> {{.Phone}}</li>{{end}}
{{if .Message}}<li><strong>Notes:</strong> {{.Message}}</li>{{end}}
{{if .FileNames}}<li><strong>Attached files:</strong> {{.FileNames}}</li>{{end}}
</ul>
<p>Your reference: <strong>{{.RequestID}}</strong></p>
<p>&mdash; The Quillworks team</p>
</body></html>`))

var quoteAlertTmpl = template.Must(template.New("quote_alert").Parse(`<html><body>
<h2>New quote request</h2>
<ul>
<li><strong>Request ID:</strong> {{.RequestID}}</li>
<li><strong>Submitted:</strong> {{.SubmittedAt}}</li>
<li><strong>Name:</strong> {{.Name}}</li>
<li><strong>Email:</strong> {{.Email}}</li>
{{if .Phone}}<li><strong>Phone:</strong> {{.Phone}}</li>{{end}}
<li><strong>Subject:</strong> {{.Subject}}</li>
<li><strong>Service:</strong> {{.Service}}</li>
<li><strong>Academic level:</strong> {{.AcademicLevel}}</li>
<li><strong>Pages:</strong> {{.Pages}}</li>
<li><strong>Deadline:</strong> {{.Deadline}}</li>
{{if .Message}}<li><strong>Notes:</strong> {{.Message}}</li>{{end}}
{{if .FileNames}}<li><strong>Attached files:</strong> {{.FileNames}}</li>{{end}}
</ul>
</body></html>`))

var workReadyTmpl = template.Must(template.New("work_ready").Parse(`<html><body>
<h2>Your work is ready, {{.DisplayName}}!</h2>
<p><strong>{{.Title}}</strong> has been completed and is waiting in your dashboard.</p>
{{if .OrderNumber}}<p>Order: <strong>{{.OrderNumber}}</strong></p>{{end}}
{{if .DeliveryNotes}}<p>Notes from your writer: {{.DeliveryNotes}}</p>{{end}}
<p><a href="{{.DashboardURL}}">Go to your dashboard</a> to download your files.</p>
<p>&mdash; The Quillworks team</p>
</body></html>`))

type quoteEmailData struct {
	RequestID     string
	SubmittedAt   string
	Name          string
	Email         string
	Phone         string
	Subject       string
	Service       string
	AcademicLevel string
	Pages         int
	Deadline      string
	Message       string
	FileNames     string
}

func quoteData(quote *types.QuoteRequest) quoteEmailData {
	data := quoteEmailData{
		RequestID:     quote.ID,
		SubmittedAt:   quote.CreatedAt.Format(time.RFC1123),
		Name:          quote.Name,
		Email:         quote.Email,
		Subject:       quote.Subject,
		Service:       quote.Service,
		AcademicLevel: quote.AcademicLevel,
		Pages:         quote.Pages,
		Deadline:      quote.Deadline,
		FileNames:     strings.Join(quote.FileNames, ", "),
	}
	if quote.Phone != nil {
		data.Phone = *quote.Phone
	}
	if quote.Message != nil {
		data.Message = *quote.Message
	}
	return data
}

// QuoteConfirmation renders the client-facing confirmation email.
func QuoteConfirmation(quote *types.QuoteRequest) (Email, error) {
	var body strings.Builder
	if err := quoteConfirmationTmpl.Execute(&body, quoteData(quote)); err != nil {
		return Email{}, fmt.Errorf("render quote confirmation: %w", err)
	}

	return Email{
		To:      quote.Email,
		Subject: "We received your quote request",
		HTML:    body.String(),
	}, nil
}

// QuoteAlert renders the internal operations alert for a new quote request.
func QuoteAlert(quote *types.QuoteRequest, operationsEmail string) (Email, error) {
	var body strings.Builder
	if err := quoteAlertTmpl.Execute(&body, quoteData(quote)); err != nil {
		return Email{}, fmt.Errorf("render quote alert: %w", err)
	}

	return Email{
		To:      operationsEmail,
		Subject: fmt.Sprintf("New quote request: %s (%s)", quote.Subject, quote.Service),
		HTML:    body.String(),
	}, nil
}

type WorkReadyData struct {
	To            string
	DisplayName   string
	Title         string
	OrderNumber   string
	DeliveryNotes string
	DashboardURL  string
}

// WorkReady renders the deliverable-completed email.
func WorkReady(data WorkReadyData) (Email, error) {
	var body strings.Builder
	if err := workReadyTmpl.Execute(&body, data); err != nil {
		return Email{}, fmt.Errorf("render work ready email: %w", err)
	}

	return Email{
		To:      data.To,
		Subject: fmt.Sprintf("Your work is ready: %s", data.Title),
		HTML:    body.String(),
	}, nil
}
