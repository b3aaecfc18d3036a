// Package mailer sends transactional email over SMTP. When no credentials
// are configured the mailer runs disabled and every send is a logged no-op,
// so local development works without a mail account.
package mailer

import (
	"crypto/tls"
	"fmt"
	"log"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Mailer holds SMTP connection settings.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	sender   string
	adminTo  string
}

// New builds a Mailer from the given settings. host/username may be empty,
// in which case Enabled reports false.
func New(host string, port int, username, password, sender, adminTo string) *Mailer {
	if sender == "" {
		sender = username
	}
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		sender:   sender,
		adminTo:  adminTo,
	}
}

// Enabled reports whether the mailer has enough configuration to send.
func (m *Mailer) Enabled() bool {
	return m.host != "" && m.username != "" && m.password != ""
}

// SendPasswordReset emails the reset link to the given address. Both a
// plain-text and an HTML part are sent.
func (m *Mailer) SendPasswordReset(to, resetURL string, validFor time.Duration) error {
	hours := int(validFor.Hours())
	if hours < 1 {
		hours = 1
	}

	text := fmt.Sprintf(`You requested a password reset for your Thuwala Co. admin account.

Open the link below to choose a new password:

%s

The link is valid for %d hour(s). If you did not request a reset, ignore this message.
`, resetURL, hours)

	html := fmt.Sprintf(`<html><body style="font-family:Arial,sans-serif;color:#333">
<h2>Password Reset</h2>
<p>You requested a password reset for your Thuwala Co. admin account.</p>
<p><a href="%s" style="background:#1a73e8;color:#fff;padding:10px 18px;text-decoration:none;border-radius:4px">Reset Password</a></p>
<p>Or copy this link into your browser:<br>%s</p>
<p style="color:#888">The link is valid for %d hour(s). If you did not request a reset, ignore this message.</p>
</body></html>`, resetURL, resetURL, hours)

	return m.send(to, "Password Reset - Thuwala Co.", text, html)
}

// NotifyNewContact tells the admin inbox a new contact message arrived.
// No-op when no admin address is configured.
func (m *Mailer) NotifyNewContact(name, email, subject string) error {
	if m.adminTo == "" {
		return nil
	}
	text := fmt.Sprintf("New contact message received.\n\nFrom: %s <%s>\nSubject: %s\n\nLog in to the admin panel to read it.\n", name, email, subject)
	html := fmt.Sprintf(`<html><body style="font-family:Arial,sans-serif;color:#333">
<h2>New Contact Message</h2>
<p><b>From:</b> %s &lt;%s&gt;<br><b>Subject:</b> %s</p>
<p>Log in to the admin panel to read it.</p>
</body></html>`, name, email, subject)
	return m.send(m.adminTo, "New Contact Message - Thuwala Co.", text, html)
}

func (m *Mailer) send(to, subject, text, html string) error {
	if !m.Enabled() {
		log.Printf("mailer disabled, skipping email to %s (%s)", to, subject)
		return nil
	}

	boundary := "thuwala-alt-0001"
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.sender)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(text)
	fmt.Fprintf(&b, "\r\n--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(html)
	fmt.Fprintf(&b, "\r\n--%s--\r\n", boundary)

	addr := net.JoinHostPort(m.host, fmt.Sprint(m.port))
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	// Port 465 is implicit TLS; everything else goes through STARTTLS.
	if m.port == 465 {
		return m.sendImplicitTLS(addr, auth, to, []byte(b.String()))
	}
	return smtp.SendMail(addr, auth, m.sender, []string{to}, []byte(b.String()))
}

func (m *Mailer) sendImplicitTLS(addr string, auth smtp.Auth, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.host})
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(m.sender); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
