package events

import (
	"fmt"
	"reflect"
	"sync"
	"time"
)

// MockEventBus provides an in-memory implementation of EventBus for testing
type MockEventBus struct {
	subscriptions   map[string][]interface{}
	publishedEvents map[string][]interface{}
	mutex           sync.RWMutex
	errors          []error
}

// NewMockEventBus creates a new MockEventBus instance
func NewMockEventBus() *MockEventBus {
	return &MockEventBus{
		subscriptions:   make(map[string][]interface{}),
		publishedEvents: make(map[string][]interface{}),
	}
}

// Subscribe implements the EventBus interface
func (m *MockEventBus) Subscribe(topic string, handler interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.subscriptions[topic] = append(m.subscriptions[topic], handler)
	return nil
}

// Unsubscribe implements the EventBus interface
func (m *MockEventBus) Unsubscribe(topic string, handler interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	handlers := m.subscriptions[topic]
	for i := len(handlers) - 1; i >= 0; i-- {
		if reflect.ValueOf(handlers[i]).Pointer() == reflect.ValueOf(handler).Pointer() {
			handlers = append(handlers[:i], handlers[i+1:]...)
		}
	}
	m.subscriptions[topic] = handlers
	return nil
}

// Publish implements the EventBus interface. Handlers run synchronously so
// tests can assert on side effects without sleeping.
func (m *MockEventBus) Publish(topic string, event interface{}) error {
	m.mutex.Lock()
	m.publishedEvents[topic] = append(m.publishedEvents[topic], event)
	handlers := make([]interface{}, len(m.subscriptions[topic]))
	copy(handlers, m.subscriptions[topic])
	m.mutex.Unlock()

	for _, handler := range handlers {
		m.invokeHandler(handler, event)
	}
	return nil
}

// Close implements the EventBus interface
func (m *MockEventBus) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.subscriptions = make(map[string][]interface{})
	m.publishedEvents = make(map[string][]interface{})
	return nil
}

// GetPublishedEvents returns published events for a topic
func (m *MockEventBus) GetPublishedEvents(topic string) []interface{} {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	events := make([]interface{}, len(m.publishedEvents[topic]))
	copy(events, m.publishedEvents[topic])
	return events
}

// GetSubscriberCount returns the number of subscribers for a topic
func (m *MockEventBus) GetSubscriberCount(topic string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.subscriptions[topic])
}

// ClearEvents resets all published events
func (m *MockEventBus) ClearEvents() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.publishedEvents = make(map[string][]interface{})
}

// WaitForEvent waits for an event to be published on a topic
func (m *MockEventBus) WaitForEvent(topic string, timeout time.Duration) (interface{}, error) {
	deadline := time.Now().Add(timeout)
	for {
		events := m.GetPublishedEvents(topic)
		if len(events) > 0 {
			return events[len(events)-1], nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for event on topic %s after %v", topic, timeout)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// invokeHandler calls a subscribed handler with the event, matching the
// reflective dispatch the real bus performs
func (m *MockEventBus) invokeHandler(handler interface{}, event interface{}) {
	defer func() {
		if r := recover(); r != nil {
			m.mutex.Lock()
			m.errors = append(m.errors, fmt.Errorf("handler panic: %v", r))
			m.mutex.Unlock()
		}
	}()

	fn := reflect.ValueOf(handler)
	if fn.Kind() != reflect.Func || fn.Type().NumIn() != 1 {
		return
	}
	arg := reflect.ValueOf(event)
	if !arg.Type().AssignableTo(fn.Type().In(0)) {
		return
	}
	fn.Call([]reflect.Value{arg})
}
