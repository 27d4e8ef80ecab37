package logger

import (
	"fmt"
	"strings"
	"sync"
)

// MockLogger records messages for assertions in tests.
type MockLogger struct {
	state *mockState
	attrs []any
}

type mockState struct {
	messages []LogMessage
	mu       sync.Mutex
}

// LogMessage is a single recorded log call.
type LogMessage struct {
	Level string
	Msg   string
	Args  []any
}

// NewMockLogger creates a new mock logger for testing.
func NewMockLogger() *MockLogger {
	return &MockLogger{state: &mockState{}}
}

func (m *MockLogger) record(level, msg string, args []any) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	merged := make([]any, 0, len(m.attrs)+len(args))
	merged = append(merged, m.attrs...)
	merged = append(merged, args...)
	m.state.messages = append(m.state.messages, LogMessage{Level: level, Msg: msg, Args: merged})
}

// Debug logs a debug message.
func (m *MockLogger) Debug(msg string, args ...any) { m.record("DEBUG", msg, args) }

// Info logs an info message.
func (m *MockLogger) Info(msg string, args ...any) { m.record("INFO", msg, args) }

// Warn logs a warning message.
func (m *MockLogger) Warn(msg string, args ...any) { m.record("WARN", msg, args) }

// Error logs an error message.
func (m *MockLogger) Error(msg string, args ...any) { m.record("ERROR", msg, args) }

// With returns a logger sharing the same message log with extra attributes.
func (m *MockLogger) With(args ...any) Logger {
	attrs := make([]any, 0, len(m.attrs)+len(args))
	attrs = append(attrs, m.attrs...)
	attrs = append(attrs, args...)
	return &MockLogger{state: m.state, attrs: attrs}
}

// WithGroup returns a new logger with a named group.
func (m *MockLogger) WithGroup(name string) Logger {
	return m.With("group", name)
}

// Messages returns a copy of all recorded messages.
func (m *MockLogger) Messages() []LogMessage {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	out := make([]LogMessage, len(m.state.messages))
	copy(out, m.state.messages)
	return out
}

// HasMessage checks if a message with the given level and text exists.
func (m *MockLogger) HasMessage(level, msg string) bool {
	for _, lm := range m.Messages() {
		if lm.Level == level && lm.Msg == msg {
			return true
		}
	}
	return false
}

// HasMessageContaining checks for a message at level containing substring.
func (m *MockLogger) HasMessageContaining(level, substring string) bool {
	for _, lm := range m.Messages() {
		if lm.Level == level && strings.Contains(lm.Msg, substring) {
			return true
		}
	}
	return false
}

// Clear clears all logged messages.
func (m *MockLogger) Clear() {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	m.state.messages = nil
}

// String returns a string representation of all logged messages.
func (m *MockLogger) String() string {
	var b strings.Builder
	for _, msg := range m.Messages() {
		fmt.Fprintf(&b, "[%s] %s %v\n", msg.Level, msg.Msg, msg.Args)
	}
	return b.String()
}
