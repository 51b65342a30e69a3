package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type Mail struct {
	To      string
	Subject string
	Plain   string
	HTML    string
}

// SendMail sends a multipart email over SMTP. Without SMTP settings it only logs a MOCK EMAIL line.
func SendMail(m Mail) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := EnvOrDefault("SMTP_FROM_NAME", "Lodge Reservations")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s subject:%q", m.To, m.Subject)
		return nil
	}

	header := func(s string) string {
		return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
	}
	boundary := "----=_LODGE_MAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s <%s>\r\n", header(fromName), smtpUser))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", header(m.To)))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", header(m.Subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))
	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(m.Plain + "\r\n")
	if m.HTML != "" {
		sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		sb.WriteString(m.HTML + "\r\n")
	}
	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)
	if err := smtp.SendMail(addr, auth, smtpUser, []string{m.To}, []byte(sb.String())); err != nil {
		log.Printf("Failed to send email to %s: %v", m.To, err)
		return err
	}

	log.Printf("Email sent to %s", m.To)
	return nil
}

type BookingEmail struct {
	LodgeName string
	Guest     string
	Email     string
	Room      string
	CheckIn   string
	CheckOut  string
	Nights    int
	Total     string
	Reference string
}

func BookingConfirmationMail(b BookingEmail) Mail {
	plain := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your payment was received and your stay at %s is confirmed.\n\n"+
			"Room:       %s\nCheck-in:   %s\nCheck-out:  %s\nNights:     %d\nTotal paid: %s\nReference:  %s\n\n"+
			"We look forward to welcoming you.\n",
		b.Guest, b.LodgeName, b.Room, b.CheckIn, b.CheckOut, b.Nights, b.Total, b.Reference,
	)
	html := fmt.Sprintf(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Booking confirmed</title></head>
<body style="background:#f5f7fb;font-family:Arial,Helvetica,sans-serif;color:#222;">
<div style="max-width:640px;margin:20px auto;background:#fff;border:1px solid #e6eef6;padding:24px;border-radius:8px;">
<h2>Booking confirmed</h2>
<p>Hi %s,</p>
<p>Your payment was received and your stay at <strong>%s</strong> is confirmed.</p>
<table cellpadding="4">
<tr><td>Room</td><td>%s</td></tr>
<tr><td>Check-in</td><td>%s</td></tr>
<tr><td>Check-out</td><td>%s</td></tr>
<tr><td>Nights</td><td>%d</td></tr>
<tr><td>Total paid</td><td>%s</td></tr>
<tr><td>Reference</td><td>%s</td></tr>
</table>
</div>
</body>
</html>`,
		htmlEscape(b.Guest), htmlEscape(b.LodgeName), htmlEscape(b.Room), b.CheckIn, b.CheckOut, b.Nights, htmlEscape(b.Total), htmlEscape(b.Reference),
	)
	return Mail{To: b.Email, Subject: fmt.Sprintf("Your %s booking is confirmed", b.LodgeName), Plain: plain, HTML: html}
}
