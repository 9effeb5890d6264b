package email

import "fmt"

// Provider sends transactional mail. Implementations must be safe for
// concurrent use by the request handlers.
type Provider interface {
	Send(to, subject, htmlBody string) error
	SendWelcome(to, username string) error
	SendBidAccepted(to, projectTitle string) error
	SendProjectCompleted(to, projectTitle string, amount float64) error
}

// Notification bodies are deliberately plain. Anything fancier belongs
// in a template file, not in Go string literals.

func welcomeBody(username string) (subject, body string) {
	subject = "Welcome to GigCampus"
	body = fmt.Sprintf("<p>Hi %s,</p><p>Your account is ready. Post a project or place your first bid to get started.</p>", username)
	return subject, body
}

func bidAcceptedBody(projectTitle string) (subject, body string) {
	subject = "Your bid was accepted"
	body = fmt.Sprintf("<p>Your bid on <b>%s</b> was accepted. The project is now in progress.</p>", projectTitle)
	return subject, body
}

func projectCompletedBody(projectTitle string, amount float64) (subject, body string) {
	subject = "Project completed"
	body = fmt.Sprintf("<p>The project <b>%s</b> was completed and %.2f was credited to your earnings.</p>", projectTitle, amount)
	return subject, body
}
