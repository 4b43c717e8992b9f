package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"timecop/Config"
)

const reminderSubject = "You haven't tracked all your time this week!"

// Sender delivers the under-reporting reminder over SMTP.
type Sender struct {
	server       string
	port         int
	username     string
	password     string
	fromEmail    string
	fromName     string
	tlsEnabled   bool
	skipTLSCheck bool
	timesheetURL string
}

// NewSender builds a sender from the service configuration.
func NewSender(cfg Config.Config) *Sender {
	return &Sender{
		server:       cfg.SMTPServer,
		port:         cfg.SMTPPort,
		username:     cfg.SMTPUsername,
		password:     cfg.SMTPPassword,
		fromEmail:    cfg.FromEmail,
		fromName:     cfg.FromName,
		tlsEnabled:   cfg.TLSEnabled,
		skipTLSCheck: cfg.SkipTLSCheck,
		timesheetURL: cfg.TimesheetURL,
	}
}

// SendReminder sends the fixed reminder email to a single address.
func (s *Sender) SendReminder(emailAddress string) error {
	body := fmt.Sprintf(`Tsk tsk. Go finish up, you sinner.<br /><br />`+
		`You say: <a href="%s">"I'm so sorry, I'll do that right away!"</a><br />`, s.timesheetURL)

	return s.send(emailAddress, reminderSubject, body)
}

// send delivers one HTML email, over TLS when configured.
func (s *Sender) send(to, subject, htmlBody string) error {
	var message strings.Builder
	message.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.fromEmail))
	message.WriteString(fmt.Sprintf("To: %s\r\n", to))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	message.WriteString("\r\n")
	message.WriteString(htmlBody)

	auth := smtp.PlainAuth("", s.username, s.password, s.server)
	serverAddr := fmt.Sprintf("%s:%d", s.server, s.port)

	if !s.tlsEnabled {
		return smtp.SendMail(serverAddr, auth, s.fromEmail, []string{to}, []byte(message.String()))
	}

	tlsConfig := &tls.Config{
		ServerName:         s.server,
		InsecureSkipVerify: s.skipTLSCheck,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %v", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.server)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %v", err)
	}
	defer client.Close()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %v", err)
	}

	if err = client.Mail(s.fromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %v", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to add recipient %s: %v", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data connection: %v", err)
	}
	if _, err = w.Write([]byte(message.String())); err != nil {
		return fmt.Errorf("failed to write email body: %v", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data connection: %v", err)
	}

	return client.Quit()
}
