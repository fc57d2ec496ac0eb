package mailer

import "context"

// MockSender records every submission it receives. Used when no function
// URL is configured and by tests that finalize without network I/O.
type MockSender struct {
	Sent []Submission
	Err  error
}

func NewMock() *MockSender { return &MockSender{} }

func (m *MockSender) Send(_ context.Context, sub Submission) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, sub)
	return nil
}
