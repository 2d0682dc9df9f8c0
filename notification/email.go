// Package notification delivers best-effort registration confirmations.
// Senders are fire-and-forget from the orchestrator's point of view: a
// failure is logged upstream and never affects a registration.
package notification

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"conference-webapp/config"
	"conference-webapp/model"
)

// EmailSender sends confirmations over SMTP.
type EmailSender struct {
	addr string
	from string
}

func NewEmailSender(cfg config.SMTPConfig) *EmailSender {
	return &EmailSender{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from: cfg.From,
	}
}

func (s *EmailSender) RegistrationConfirmed(attendee model.UserData, conf model.Conference, enr model.Enrollment) error {
	subject, body := confirmationMessage(attendee, conf, enr)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", attendee.Login)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return smtp.SendMail(s.addr, nil, s.from, []string{attendee.Login}, []byte(msg.String()))
}

// LogSender is the sender used when SMTP is not configured; it only records
// that a confirmation would have gone out.
type LogSender struct {
	Log zerolog.Logger
}

func (s *LogSender) RegistrationConfirmed(attendee model.UserData, conf model.Conference, enr model.Enrollment) error {
	subject, _ := confirmationMessage(attendee, conf, enr)
	s.Log.Info().
		Str("to", attendee.Login).
		Str("subject", subject).
		Str("conference_id", conf.Id.Hex()).
		Msg("registration confirmation (smtp disabled)")
	return nil
}

func confirmationMessage(attendee model.UserData, conf model.Conference, enr model.Enrollment) (subject, body string) {
	subject = fmt.Sprintf("Registration confirmed: %s", conf.Title)

	var b strings.Builder
	name := attendee.Name
	if name == "" {
		name = attendee.Login
	}
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	fmt.Fprintf(&b, "Your seat at %q is confirmed.\n\n", conf.Title)
	fmt.Fprintf(&b, "When: %s - %s\n", conf.StartDate.Format("Jan 2, 2006"), conf.EndDate.Format("Jan 2, 2006"))
	fmt.Fprintf(&b, "Where: %s\n", conf.Location)
	fmt.Fprintf(&b, "Payment: %s", enr.PaymentMethod)
	if enr.PaymentReference != "" {
		fmt.Fprintf(&b, " (reference %s)", enr.PaymentReference)
	}
	b.WriteString("\n\nSee you there!\n")
	return subject, b.String()
}
