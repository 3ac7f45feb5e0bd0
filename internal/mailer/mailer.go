package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/mailersend/mailersend-go"
)

// BookingEmail carries everything both confirmation emails need.
type BookingEmail struct {
	SponsorName     string
	SponsorEmail    string
	NewsletterName  string
	CreatorEmail    string
	WebsiteURL      string
	AdCopy          string
	Date            string
	SlotTypeName    string
	Price           float64
	CreativeFileURL string
	DashboardURL    string
}

// Mailer sends the post-payment notifications. Both sends are
// best-effort: the booking is already committed when they run.
type Mailer interface {
	SendSponsorConfirmation(ctx context.Context, email BookingEmail) error
	SendCreatorNotification(ctx context.Context, email BookingEmail) error
}

type mailerSendMailer struct {
	client    *mailersend.Mailersend
	fromEmail string
	fromName  string
}

func NewMailerSendMailer(apiKey, fromName, fromEmail string) Mailer {
	return &mailerSendMailer{
		client:    mailersend.NewMailersend(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (m *mailerSendMailer) SendSponsorConfirmation(ctx context.Context, email BookingEmail) error {
	html, err := render(sponsorConfirmationTmpl, email)
	if err != nil {
		return err
	}
	return m.send(ctx, email.SponsorEmail, email.SponsorName, "Booking Confirmation", html)
}

func (m *mailerSendMailer) SendCreatorNotification(ctx context.Context, email BookingEmail) error {
	html, err := render(creatorNotificationTmpl, email)
	if err != nil {
		return err
	}
	return m.send(ctx, email.CreatorEmail, email.NewsletterName, "New Booking Notification", html)
}

func (m *mailerSendMailer) send(ctx context.Context, toEmail, toName, subject, html string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	message := m.client.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: m.fromName, Email: m.fromEmail})
	message.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	message.SetSubject(subject)
	message.SetHTML(html)

	if _, err := m.client.Email.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	return nil
}

func render(tmpl *template.Template, data BookingEmail) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
