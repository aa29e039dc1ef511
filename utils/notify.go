package utils

import (
	"fmt"
	"log"

	"skillspring/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// NotifyCourseStatus emails an instructor about a course status
// change. Best effort: callers log failures and move on, the state
// transition is already committed.
func NotifyCourseStatus(email, name, courseTitle, status, reason string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("SendGrid not configured, skipping notification to %s", email)
		return nil
	}

	subject := fmt.Sprintf("Your course %q was %s", courseTitle, status)
	body := fmt.Sprintf("Hi %s,\n\nYour course %q is now %s.", name, courseTitle, status)
	if reason != "" {
		body += fmt.Sprintf("\n\nReviewer feedback:\n%s", reason)
	}
	body += "\n\n— The SkillSpring team"

	from := mail.NewEmail("SkillSpring", config.AppConfig.EmailSender)
	to := mail.NewEmail(name, email)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}
