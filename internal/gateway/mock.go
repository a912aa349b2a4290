package gateway

import (
	"context"
	"sync"
)

// MockReply is a canned result for the MockProvider.
type MockReply struct {
	Text      string
	Citations []Citation
	Err       error
}

// MockProvider is a deterministic Provider for testing. It returns canned
// replies in FIFO order and records every prompt it was sent.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply

	// Calls records the prompts sent to GenerateText and chat Sends,
	// in order.
	Calls []string

	// Systems records the system instruction of every request/chat.
	Systems []string
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates a MockProvider with the given canned replies.
func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

// Queue appends more canned replies.
func (m *MockProvider) Queue(replies ...MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) GenerateText(_ context.Context, req TextRequest) (*TextResponse, error) {
	reply, err := m.next(req.Prompt, req.System)
	if err != nil {
		return nil, err
	}
	return &TextResponse{Text: reply.Text, Model: "mock"}, nil
}

func (m *MockProvider) NewChat(_ context.Context, cfg ChatConfig) (Chat, error) {
	m.mu.Lock()
	m.Systems = append(m.Systems, cfg.System)
	m.mu.Unlock()
	return &mockChat{provider: m}, nil
}

type mockChat struct {
	provider *MockProvider
}

func (c *mockChat) Send(_ context.Context, text string) (*ChatReply, error) {
	reply, err := c.provider.next(text, "")
	if err != nil {
		return nil, err
	}
	return &ChatReply{Text: reply.Text, Citations: reply.Citations}, nil
}

// next pops the next canned reply, or ErrUnavailable when the queue is
// empty.
func (m *MockProvider) next(prompt, system string) (MockReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, prompt)
	if system != "" {
		m.Systems = append(m.Systems, system)
	}

	if len(m.replies) == 0 {
		return MockReply{}, &ErrUnavailable{}
	}

	reply := m.replies[0]
	m.replies = m.replies[1:]

	if reply.Err != nil {
		return MockReply{}, reply.Err
	}
	return reply, nil
}
