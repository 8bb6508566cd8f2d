// utils/email.go
package utils

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go-foodorder/models"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends the order notifications
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error
	SendStatusUpdate(ctx context.Context, to string, order *models.Order) error
}

// emailSender delivers one rendered message through a provider
type emailSender interface {
	Send(ctx context.Context, from, to, subject, htmlContent string) error
}

// EmailService renders notifications and hands them to the configured driver
type EmailService struct {
	sender emailSender
	from   string
}

// NewEmailService initializes an EmailService for driver "postmark", "sendgrid" or "log"
func NewEmailService(driver, from, postmarkToken, sendgridKey string) (*EmailService, error) {
	switch strings.ToLower(driver) {
	case "postmark":
		if postmarkToken == "" {
			return nil, fmt.Errorf("POSTMARK_API_TOKEN is required for the postmark mail driver")
		}
		return &EmailService{sender: &postmarkSender{client: postmark.NewClient(postmarkToken, "")}, from: from}, nil
	case "sendgrid":
		if sendgridKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY is required for the sendgrid mail driver")
		}
		return &EmailService{sender: &sendgridSender{client: sendgrid.NewSendClient(sendgridKey)}, from: from}, nil
	case "", "log":
		return &EmailService{sender: logSender{}, from: from}, nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", driver)
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	if toEmail == "" {
		return fmt.Errorf("failed to send email: empty recipient")
	}
	if err := es.sender.Send(ctx, es.from, toEmail, subject, htmlContent); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmation sends an order confirmation email to the user
func (es *EmailService) SendOrderConfirmation(ctx context.Context, toEmail string, order *models.Order) error {
	subject := "Order Confirmation"
	var lines strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&lines, "<li>%d x %s: $%s</li>", item.Quantity, html.EscapeString(item.Name), item.Subtotal().StringFixed(2))
	}
	htmlContent := fmt.Sprintf(
		"<strong>Thank you for your order!</strong><br><br>Order ID: %s<br><ul>%s</ul>Total Amount: <strong>$%s</strong><br>Status: <strong>%s</strong>",
		order.ID.Hex(),
		lines.String(),
		order.Total.StringFixed(2),
		order.Status,
	)
	return es.SendEmail(ctx, toEmail, subject, htmlContent)
}

// SendStatusUpdate tells the user their order moved to a new status
func (es *EmailService) SendStatusUpdate(ctx context.Context, toEmail string, order *models.Order) error {
	subject := fmt.Sprintf("Your order is %s", order.Status)
	htmlContent := fmt.Sprintf(
		"Your order (ID: %s) is now <strong>%s</strong>.",
		order.ID.Hex(),
		order.Status,
	)
	return es.SendEmail(ctx, toEmail, subject, htmlContent)
}

type postmarkSender struct {
	client *postmark.Client
}

func (s *postmarkSender) Send(ctx context.Context, from, to, subject, htmlContent string) error {
	_, err := s.client.SendEmail(postmark.Email{
		From:     from,
		To:       to,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	return err
}

type sendgridSender struct {
	client *sendgrid.Client
}

func (s *sendgridSender) Send(ctx context.Context, from, to, subject, htmlContent string) error {
	message := mail.NewSingleEmail(mail.NewEmail("", from), subject, mail.NewEmail("", to), htmlContent, htmlContent)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// logSender only writes the message to the log; used in development
type logSender struct{}

func (logSender) Send(ctx context.Context, from, to, subject, htmlContent string) error {
	WithCtx(ctx).Info("email sent", "driver", "log", "to", to, "subject", subject)
	return nil
}
