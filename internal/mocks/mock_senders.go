package mocks

import "github.com/dj-idk/gym-backend/domain"

// MockSMSSender implements domain.SMSSender for testing
type MockSMSSender struct {
	SendSMSFunc func(to, message string) error
	Sent        []string
}

func NewMockSMSSender() *MockSMSSender {
	return &MockSMSSender{}
}

func (m *MockSMSSender) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	m.Sent = append(m.Sent, to)
	return nil
}

// MockEmailSender implements domain.EmailSender for testing
type MockEmailSender struct {
	SendEmailFunc func(to, subject, htmlBody string) error
	Sent          []string
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) SendEmail(to, subject, htmlBody string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, htmlBody)
	}
	m.Sent = append(m.Sent, to)
	return nil
}

var (
	_ domain.SMSSender   = (*MockSMSSender)(nil)
	_ domain.EmailSender = (*MockEmailSender)(nil)
)
