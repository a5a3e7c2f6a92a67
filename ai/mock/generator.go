package mock

import "context"

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields and records the
// prompts it receives for assertions.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, uses default deterministic behavior.
	GenerateFunc func(ctx context.Context, system, user string) (string, error)

	callCount  int
	lastSystem string
	lastUser   string
}

// NewMockGenerator creates a mock generator with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate records the prompts and returns a deterministic canned answer.
func (m *MockGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	m.callCount++
	m.lastSystem = system
	m.lastUser = user

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, system, user)
	}

	return "mock generated answer", nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// LastSystem returns the system prompt from the most recent call.
func (m *MockGenerator) LastSystem() string {
	return m.lastSystem
}

// LastUser returns the user prompt from the most recent call.
func (m *MockGenerator) LastUser() string {
	return m.lastUser
}

// Reset clears the call count, recorded prompts and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.lastSystem = ""
	m.lastUser = ""
	m.GenerateFunc = nil
}
