package hiring

import (
	"context"
	"fmt"
	"log"

	"github.com/hiredesk/hiredesk/internal/mailer"
	"github.com/hiredesk/hiredesk/internal/types"
)

// Fallbacks for template inputs that may be absent on public applications.
const (
	fallbackName     = "Candidate"
	fallbackJobTitle = "the position"
)

// Dispatcher maps a status change to an outbound email template and hands it
// to the delivery collaborator. Statuses without a template are a deliberate
// no-op; in particular "submitted" is assumed already notified at creation
// time.
type Dispatcher struct {
	sender  mailer.Sender
	baseURL string
}

// NewDispatcher creates a dispatcher. baseURL is the public origin embedded
// in assessment links.
func NewDispatcher(sender mailer.Sender, baseURL string) *Dispatcher {
	return &Dispatcher{sender: sender, baseURL: baseURL}
}

// StatusChanged renders and sends the notification owed for the
// application's new status, if any. A missing recipient email
// short-circuits with a logged warning and no delivery attempt.
func (d *Dispatcher) StatusChanged(ctx context.Context, app *types.Application) error {
	subject, body, ok := d.render(app)
	if !ok {
		return nil
	}

	if app.Email == "" {
		log.Printf("[notify] application %s has no recipient email, skipping %q", app.ID, app.Status)
		return nil
	}

	return d.sender.Send(ctx, app.Email, subject, body)
}

// render produces the template output for the application's status. ok is
// false for statuses that owe no notification.
func (d *Dispatcher) render(app *types.Application) (subject, body string, ok bool) {
	name := app.Name
	if name == "" {
		name = fallbackName
	}
	title := app.JobTitle
	if title == "" {
		title = fallbackJobTitle
	}

	switch Status(app.Status) {
	case StatusShortlisted:
		subject = fmt.Sprintf("You have been shortlisted for %s", title)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Good news: your application for <strong>%s</strong> has been shortlisted.</p>%s<p>Best regards,<br>The Hiring Team</p>",
			name, title, d.assessmentParagraph(app))
	case StatusRejected:
		subject = fmt.Sprintf("Update on your application for %s", title)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Thank you for applying for <strong>%s</strong>. After careful review we have decided not to move forward with your application at this time.</p><p>We encourage you to apply for future openings.</p><p>Best regards,<br>The Hiring Team</p>",
			name, title)
	case StatusInterviewing:
		subject = fmt.Sprintf("Interview stage for %s", title)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your application for <strong>%s</strong> has moved to the interview stage. We will be in touch shortly to schedule a time.</p>%s<p>Best regards,<br>The Hiring Team</p>",
			name, title, d.assessmentParagraph(app))
	case StatusOffered:
		subject = fmt.Sprintf("Offer for %s", title)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Congratulations! We are pleased to extend you an offer for <strong>%s</strong>. Expect the formal details in a separate message.</p>%s<p>Best regards,<br>The Hiring Team</p>",
			name, title, d.assessmentParagraph(app))
	case StatusHired:
		subject = fmt.Sprintf("Welcome aboard: %s", title)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Welcome to the team! Your hiring for <strong>%s</strong> is confirmed. Our onboarding team will reach out with next steps.</p><p>Best regards,<br>The Hiring Team</p>",
			name, title)
	default:
		return "", "", false
	}

	return subject, body, true
}

// assessmentParagraph renders the call-to-action block for templates that ask
// the candidate to act. Without a token there is nothing to link to.
func (d *Dispatcher) assessmentParagraph(app *types.Application) string {
	if app.AssessmentToken == "" {
		return ""
	}
	return fmt.Sprintf(
		"<p>Please complete your assessment here: <a href=\"%s/assessment/%s\">%s/assessment/%s</a></p>",
		d.baseURL, app.AssessmentToken, d.baseURL, app.AssessmentToken)
}
