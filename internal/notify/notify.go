// Package notify sends purchase request notifications by email.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
)

// Notifier is told about purchase request lifecycle events.
type Notifier interface {
	PurchaseRequested(ctx context.Context, req *model.PurchaseRequest) error
	PurchaseCompleted(ctx context.Context, req *model.PurchaseRequest) error
}

// Nop discards every notification.
type Nop struct{}

// PurchaseRequested does nothing.
func (Nop) PurchaseRequested(context.Context, *model.PurchaseRequest) error { return nil }

// PurchaseCompleted does nothing.
func (Nop) PurchaseCompleted(context.Context, *model.PurchaseRequest) error { return nil }

// Config configures the SendGrid notifier.
type Config struct {
	Logger     *slog.Logger
	APIKey     string
	FromEmail  string
	FromName   string
	AdminEmail string
	Retry      common.RetryOptions
}

type sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGrid emails the admin about new requests and the user about completed ones.
type SendGrid struct {
	client sender
	logger *slog.Logger
	from   *mail.Email
	admin  string
	retry  common.RetryOptions
}

// New returns a SendGrid notifier, or Nop when no API key is configured.
func New(cfg Config) Notifier {
	if cfg.APIKey == "" {
		return Nop{}
	}
	return newSendGrid(sendgrid.NewSendClient(cfg.APIKey), cfg)
}

func newSendGrid(client sender, cfg Config) *SendGrid {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fromName := cfg.FromName
	if fromName == "" {
		fromName = "EasyStyle"
	}
	return &SendGrid{
		client: client,
		logger: logger,
		from:   mail.NewEmail(fromName, cfg.FromEmail),
		admin:  cfg.AdminEmail,
		retry:  cfg.Retry,
	}
}

// PurchaseRequested emails the admin a summary of the new request.
func (s *SendGrid) PurchaseRequested(ctx context.Context, req *model.PurchaseRequest) error {
	subject := fmt.Sprintf("[EasyStyle] 새 구매 요청 (%s)", req.UserEmail)
	body := fmt.Sprintf("%s 님의 구매 요청이 접수되었습니다.\n\n%s", req.UserEmail, summary(req))
	return s.send(ctx, "Admin", s.admin, subject, body)
}

// PurchaseCompleted tells the user their request has been handled.
func (s *SendGrid) PurchaseCompleted(ctx context.Context, req *model.PurchaseRequest) error {
	subject := "[EasyStyle] 구매 요청이 완료되었습니다"
	body := fmt.Sprintf("요청하신 상품의 구매가 완료되었습니다.\n\n%s", summary(req))
	return s.send(ctx, "", req.UserEmail, subject, body)
}

func (s *SendGrid) send(ctx context.Context, toName, toEmail, subject, body string) error {
	if toEmail == "" {
		return fmt.Errorf("notification %q has no recipient", subject)
	}
	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail(toName, toEmail), body, "")

	var status int
	err := common.WithRetry(ctx, func() error {
		resp, err := s.client.SendWithContext(ctx, message)
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
		}
		status = resp.StatusCode
		if status == http.StatusTooManyRequests || status >= 500 {
			return fmt.Errorf("failed to send email to %s: status %d", toEmail, status)
		}
		if status >= 400 {
			return common.Permanent(fmt.Errorf("failed to send email to %s: status %d: %s", toEmail, status, resp.Body))
		}
		return nil
	}, s.retry)
	if err != nil {
		return err
	}

	s.logger.Debug("email sent", "to", toEmail, "status", status)
	return nil
}

func summary(req *model.PurchaseRequest) string {
	var b strings.Builder
	for _, p := range req.Products {
		fmt.Fprintf(&b, "- [%s] %s %s (%s) %s원\n", p.Category, p.Brand, p.Name, p.RecommendedSize, model.FormatPrice(p.Price))
	}
	fmt.Fprintf(&b, "\n총 %d개 상품, 합계 %s원\n", len(req.Products), model.FormatPrice(req.TotalPrice))
	return b.String()
}
