package app

// MockEmailProvider is used in tests and local development where no
// SMTP server is available.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(to, subject, htmlBody string) error { return nil }

func (m *MockEmailProvider) SendWelcome(to, username string) error { return nil }

func (m *MockEmailProvider) SendBidAccepted(to, projectTitle string) error { return nil }

func (m *MockEmailProvider) SendProjectCompleted(to, projectTitle string, amount float64) error {
	return nil
}
