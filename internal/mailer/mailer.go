package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers transactional mail over SMTP.
type Mailer struct {
	dialer       *gomail.Dialer
	from         string
	clientOrigin string
	log          *zap.Logger
}

func New(host string, port int, user, password, from, clientOrigin string, log *zap.Logger) *Mailer {
	d := gomail.NewDialer(host, port, user, password)
	d.SSL = true
	return &Mailer{dialer: d, from: from, clientOrigin: clientOrigin, log: log}
}

func (m *Mailer) send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (m *Mailer) SendVerification(to, username, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s&email=%s", m.clientOrigin, token, to)
	html, err := render(verificationTmpl, map[string]any{"Username": username, "Link": link})
	if err != nil {
		return err
	}
	return m.send(to, "Verify your email", html)
}

func (m *Mailer) SendPasswordReset(to, username, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s&email=%s", m.clientOrigin, token, to)
	html, err := render(resetTmpl, map[string]any{"Username": username, "Link": link})
	if err != nil {
		return err
	}
	return m.send(to, "Password reset", html)
}

func (m *Mailer) SendOrderSuccess(to, username, orderID string, total decimal.Decimal, titles []string, at time.Time) error {
	html, err := render(orderSuccessTmpl, map[string]any{
		"Username":  username,
		"OrderID":   orderID,
		"Total":     total.StringFixed(2),
		"Titles":    titlesOrNA(titles),
		"Date":      at.Format("02/01/2006 15:04"),
		"OrdersURL": m.clientOrigin + "/orders",
	})
	if err != nil {
		return err
	}
	return m.send(to, "Order confirmed - payment successful", html)
}

func (m *Mailer) SendOrderFailure(to, username, orderID string, titles []string, at time.Time) error {
	html, err := render(orderFailureTmpl, map[string]any{
		"Username": username,
		"OrderID":  orderID,
		"Titles":   titlesOrNA(titles),
		"Date":     at.Format("02/01/2006 15:04"),
	})
	if err != nil {
		return err
	}
	return m.send(to, "Payment failed - order not completed", html)
}

func titlesOrNA(titles []string) string {
	if len(titles) == 0 {
		return "N/A"
	}
	return strings.Join(titles, ", ")
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render mail template: %w", err)
	}
	return buf.String(), nil
}

var verificationTmpl = template.Must(template.New("verification").Parse(`
<div style="font-family: Arial, sans-serif; color: #333; padding: 20px;">
  <h2>Welcome, {{.Username}}!</h2>
  <p>Confirm your email address to activate your account.</p>
  <p><a href="{{.Link}}" target="_blank">Verify email</a></p>
  <hr style="margin-top: 30px;">
  <p style="font-size: 12px; color: #888;">This is an automated message, do not reply.</p>
</div>`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<div style="font-family: Arial, sans-serif; color: #333; padding: 20px;">
  <h2>Password reset</h2>
  <p>Hi <strong>{{.Username}}</strong>,</p>
  <p>We received a request to reset your password. The link is valid for one hour.</p>
  <p><a href="{{.Link}}" target="_blank">Choose a new password</a></p>
  <p>If you did not request this, you can ignore this message.</p>
  <hr style="margin-top: 30px;">
  <p style="font-size: 12px; color: #888;">This is an automated message, do not reply.</p>
</div>`))

var orderSuccessTmpl = template.Must(template.New("orderSuccess").Parse(`
<div style="font-family: Arial, sans-serif; color: #333; padding: 20px;">
  <h2 style="color: #28a745;">Order completed</h2>
  <p>Hi <strong>{{.Username}}</strong>,</p>
  <p>Thank you for your purchase! Your order has been registered.</p>
  <h3 style="color: #007bff;">Order details</h3>
  <ul>
    <li><strong>Games:</strong> {{.Titles}}</li>
    <li><strong>Order ID:</strong> {{.OrderID}}</li>
    <li><strong>Total:</strong> &euro; {{.Total}}</li>
    <li><strong>Date:</strong> {{.Date}}</li>
  </ul>
  <p>You can review your orders <a href="{{.OrdersURL}}" target="_blank">here</a>.</p>
  <hr style="margin-top: 30px;">
  <p style="font-size: 12px; color: #888;">This is an automated message, do not reply.</p>
</div>`))

var orderFailureTmpl = template.Must(template.New("orderFailure").Parse(`
<div style="font-family: Arial, sans-serif; color: #333; padding: 20px;">
  <h2 style="color: #dc3545;">Payment failed - order not completed</h2>
  <p>Hi <strong>{{.Username}}</strong>,</p>
  <p>Your order <strong>{{.OrderID}}</strong> was not completed because the payment did not go through.</p>
  <h3 style="color: #007bff;">Order details</h3>
  <ul>
    <li><strong>Games:</strong> {{.Titles}}</li>
    <li><strong>Order ID:</strong> {{.OrderID}}</li>
    <li><strong>Attempt date:</strong> {{.Date}}</li>
  </ul>
  <p>Please try again with a valid payment method.</p>
  <hr style="margin-top: 30px;">
  <p style="font-size: 12px; color: #888;">This is an automated message, do not reply.</p>
</div>`))
