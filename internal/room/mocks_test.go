package room

import (
	"github.com/stretchr/testify/mock"

	"kitchen-rush/internal/database/result/model"
)

// --- Broadcaster ---

type MockBroadcaster struct {
	mock.Mock

	mark int
}

func newMockBroadcaster() *MockBroadcaster {
	m := new(MockBroadcaster)
	m.On("Broadcast", mock.Anything, mock.Anything, mock.Anything).Return()
	m.On("Send", mock.Anything, mock.Anything, mock.Anything).Return()
	m.On("Join", mock.Anything, mock.Anything).Return()
	m.On("Leave", mock.Anything, mock.Anything).Return()
	return m
}

func (m *MockBroadcaster) Broadcast(code, action string, data interface{}) {
	m.Called(code, action, data)
}

func (m *MockBroadcaster) Send(playerID, action string, data interface{}) {
	m.Called(playerID, action, data)
}

func (m *MockBroadcaster) Join(code, playerID string) {
	m.Called(code, playerID)
}

func (m *MockBroadcaster) Leave(code, playerID string) {
	m.Called(code, playerID)
}

// calls returns the calls recorded since the last reset, oldest first.
func (m *MockBroadcaster) calls() []mock.Call {
	return m.Calls[m.mark:]
}

func (m *MockBroadcaster) reset() {
	m.mark = len(m.Calls)
}

func (m *MockBroadcaster) payloads(method, target, action string) []interface{} {
	var out []interface{}
	for _, c := range m.calls() {
		if c.Method == method && c.Arguments.String(0) == target && c.Arguments.String(1) == action {
			out = append(out, c.Arguments.Get(2))
		}
	}
	return out
}

// sent returns what Send delivered to playerID under action.
func (m *MockBroadcaster) sent(playerID, action string) []interface{} {
	return m.payloads("Send", playerID, action)
}

func (m *MockBroadcaster) broadcasts(code, action string) []interface{} {
	return m.payloads("Broadcast", code, action)
}

// actions lists every Send and Broadcast action in call order.
func (m *MockBroadcaster) actions() []string {
	out := []string{}
	for _, c := range m.calls() {
		if c.Method == "Send" || c.Method == "Broadcast" {
			out = append(out, c.Arguments.String(1))
		}
	}
	return out
}

// --- ResultStore ---

type MockResultStore struct {
	mock.Mock
}

func (m *MockResultStore) Add(res model.Result) error {
	args := m.Called(res)
	return args.Error(0)
}

func (m *MockResultStore) recorded() []model.Result {
	out := make([]model.Result, 0, len(m.Calls))
	for _, c := range m.Calls {
		if c.Method == "Add" {
			out = append(out, c.Arguments.Get(0).(model.Result))
		}
	}
	return out
}
