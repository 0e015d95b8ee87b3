package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/Maxito7/studio_backend/internal/domain"
)

// Client sends studio mail over SMTP.
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
	logger    *zap.Logger
}

// NewClient builds an SMTP client from the configured credentials.
func NewClient(host, portStr, user, password, fromName, fromEmail string, logger *zap.Logger) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
		logger:    logger,
	}, nil
}

// SendEmail sends one HTML message.
func (c *Client) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	m := mail.NewMsg()

	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}

	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	c.logger.Debug("smtp connect",
		zap.String("host", c.host), zap.Int("port", c.port), zap.String("user", c.user))

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName: c.host,
		}),
	)
	if err != nil {
		return fmt.Errorf("creating SMTP client (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		// no credentials in the error
		return fmt.Errorf("sending mail (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	return nil
}

// ContactNotice is a stored contact submission as mailed to the studio.
type ContactNotice struct {
	ID     int64
	Form   domain.ContactForm
	SentAt time.Time
}

// SendContactNotification tells the studio inbox about a new submission.
func (c *Client) SendContactNotification(ctx context.Context, to string, notice ContactNotice) error {
	subject := fmt.Sprintf("New inquiry #%d from %s - %s", notice.ID, notice.Form.Name, c.fromName)
	return c.SendEmail(ctx, to, subject, contactHTML(notice))
}

func contactHTML(notice ContactNotice) string {
	f := notice.Form
	rows := []struct{ label, value string }{
		{"Name", f.Name},
		{"Email", f.Email},
		{"Phone", f.Phone},
		{"Service", f.Service},
		{"Received", notice.SentAt.Format("02/01/2006 15:04")},
	}

	var sb strings.Builder
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		fmt.Fprintf(&sb, `
			<tr>
				<td style="padding: 10px; border-bottom: 1px solid #e0e0e0; color: #666;">%s</td>
				<td style="padding: 10px; border-bottom: 1px solid #e0e0e0;"><strong>%s</strong></td>
			</tr>`, r.label, html.EscapeString(r.value))
	}

	message := strings.ReplaceAll(html.EscapeString(f.Message), "\n", "<br>")

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>New inquiry</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 20px;">
	<div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 8px; overflow: hidden;">
		<div style="background: #1a1a1a; color: #ffffff; padding: 24px;">
			<h1 style="margin: 0; font-size: 22px;">New inquiry #%d</h1>
		</div>
		<div style="padding: 24px;">
			<table style="width: 100%%; border-collapse: collapse;">%s
			</table>
			<h2 style="font-size: 16px; margin-top: 24px;">Message</h2>
			<p style="line-height: 1.6; color: #333;">%s</p>
		</div>
	</div>
</body>
</html>`, notice.ID, sb.String(), message)
}
