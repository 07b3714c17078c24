package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"text/template"

	"github.com/sandsky/travel-backend/internal/domain"
	"github.com/sandsky/travel-backend/internal/service"
	"github.com/sandsky/travel-backend/internal/util"
)

// BookingMailer renders the confirmation email from the stored settings row.
// Subject and bodies are text/template sources evaluated against the booking.
type BookingMailer struct {
	host        string
	port        string
	username    string
	password    string
	defaultFrom string
	settings    *service.SiteService
}

// NewBookingMailer builds a mailer for the given SMTP endpoint. defaultFrom is
// the sender used when the stored email settings carry no from address.
func NewBookingMailer(host, port, username, password, defaultFrom string, siteService *service.SiteService) *BookingMailer {
	return &BookingMailer{
		host:        strings.TrimSpace(host),
		port:        strings.TrimSpace(port),
		username:    username,
		password:    password,
		defaultFrom: strings.TrimSpace(defaultFrom),
		settings:    siteService,
	}
}

type confirmationData struct {
	Reference  string
	FullName   string
	TripTitle  string
	TravelDate string
	Travelers  int
	GrandTotal string
	Status     string
	StatusNote string
}

func (m *BookingMailer) SendConfirmation(ctx context.Context, booking *domain.Booking) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" {
		return errors.New("mailer missing configuration")
	}

	settings, err := m.settings.BookingEmailSettings(ctx)
	if err != nil {
		return err
	}
	if !settings.IsEnabled {
		return nil
	}
	from := settings.FromEmail
	if from == "" {
		from = m.defaultFrom
	}
	if from == "" {
		return errors.New("mailer missing from address")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	tripTitle := ""
	if booking.TripTitle != nil {
		tripTitle = *booking.TripTitle
	}
	statusNote := ""
	if booking.StatusNote != nil {
		statusNote = *booking.StatusNote
	}
	data := confirmationData{
		Reference:  booking.ReferenceCode(),
		FullName:   booking.FullName,
		TripTitle:  tripTitle,
		TravelDate: booking.TravelDate.Format("2006-01-02"),
		Travelers:  booking.TravelerCount(),
		GrandTotal: util.FormatCents(booking.GrandTotalCents, booking.Currency),
		Status:     string(booking.Status),
		StatusNote: statusNote,
	}

	subject, err := renderTemplate("subject", settings.SubjectTemplate, data)
	if err != nil {
		return err
	}
	bodyText, err := renderTemplate("body_text", settings.BodyTextTemplate, data)
	if err != nil {
		return err
	}
	bodyHTML := ""
	if strings.TrimSpace(settings.BodyHTMLTemplate) != "" {
		if bodyHTML, err = renderTemplate("body_html", settings.BodyHTMLTemplate, data); err != nil {
			return err
		}
	}

	recipients := []string{booking.Email}
	var message strings.Builder
	message.WriteString(fmt.Sprintf("From: %s\r\n", from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", booking.Email))
	if cc := splitAddresses(settings.CCAddresses); len(cc) > 0 {
		message.WriteString(fmt.Sprintf("Cc: %s\r\n", strings.Join(cc, ", ")))
		recipients = append(recipients, cc...)
	}
	recipients = append(recipients, splitAddresses(settings.BCCAddresses)...)
	if settings.ReplyToEmail != "" {
		message.WriteString(fmt.Sprintf("Reply-To: %s\r\n", settings.ReplyToEmail))
	}
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", strings.TrimSpace(subject)))
	message.WriteString("MIME-Version: 1.0\r\n")
	if bodyHTML != "" {
		message.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		message.WriteString(bodyHTML)
	} else {
		message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		message.WriteString(bodyText)
	}
	message.WriteString("\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	return smtp.SendMail(addr, auth, from, recipients, []byte(message.String()))
}

func renderTemplate(name, source string, data confirmationData) (string, error) {
	tmpl, err := template.New(name).Parse(source)
	if err != nil {
		return "", fmt.Errorf("mail: parse %s template: %w", name, err)
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("mail: render %s template: %w", name, err)
	}
	return out.String(), nil
}

func splitAddresses(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
