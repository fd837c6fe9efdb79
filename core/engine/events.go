package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventType defines the possible event types emitted by the engine.
type EventType string

const (
	OperationStart         EventType = "operation:start"
	OperationSuccess       EventType = "operation:success"
	OperationFailed        EventType = "operation:failed"
	SubscriptionRegister   EventType = "subscription:register"
	SubscriptionUnregister EventType = "subscription:unregister"
)

// Event is published on the engine's bus around every invocation and every
// subscription change.
type Event struct {
	Type         EventType       `json:"type"`                   // The type of event (e.g., 'operation:start').
	Timestamp    int64           `json:"timestamp"`              // Unix milliseconds.
	InvocationID string          `json:"invocationId,omitempty"` // Identifier of the invocation, if any.
	Operation    string          `json:"operation"`              // The operation being performed.
	Input        json.RawMessage `json:"input,omitempty"`        // Arguments passed to the operation.
	Output       any             `json:"output,omitempty"`       // Data returned by the operation.
	Error        *string         `json:"error,omitempty"`        // Error message if the operation failed.
	Duration     *int64          `json:"duration,omitempty"`     // Duration of the operation in milliseconds.
	Context      map[string]any  `json:"context,omitempty"`
}

// EventCallback is invoked for every event a subscription is registered for.
type EventCallback func(ctx context.Context, event Event) error

// SubscriptionOptions defines options for registering a subscription.
type SubscriptionOptions struct {
	Event       EventType
	Label       string
	Description string
	Callback    EventCallback
}

// SubscriptionInfo describes an active subscription.
type SubscriptionInfo struct {
	ID          string    `json:"id"`
	Event       EventType `json:"event"`
	Label       string    `json:"label,omitempty"`
	Description string    `json:"description,omitempty"`
	unsubscribe func()
}

func createEvent(
	eventType EventType,
	invocationID string,
	operation string,
	input json.RawMessage,
	output any,
	err error,
	startTime time.Time,
) Event {
	var duration *int64
	if !startTime.IsZero() {
		d := time.Since(startTime).Milliseconds()
		duration = &d
	}

	var errStr *string
	if err != nil {
		s := err.Error()
		errStr = &s
	}

	return Event{
		Type:         eventType,
		Timestamp:    time.Now().UnixMilli(),
		InvocationID: invocationID,
		Operation:    operation,
		Input:        input,
		Output:       output,
		Error:        errStr,
		Duration:     duration,
	}
}

// emitEvent publishes event when the bus is enabled.
func (e *Engine) emitEvent(event Event) {
	if e.bus != nil {
		e.bus.Emit(string(event.Type), event)
	}
}

// RegisterSubscription registers a callback for an engine event. It returns
// a unique ID that can be used to unregister the subscription later.
func (e *Engine) RegisterSubscription(options SubscriptionOptions) (string, error) {
	if e.bus == nil {
		return "", ErrEventsDisabled
	}
	if options.Callback == nil {
		return "", fmt.Errorf("%w: subscription callback is nil", core.ErrInvalidArgument)
	}

	callback := options.Callback
	e.subMu.Lock()
	unsubscribe := e.bus.Subscribe(string(options.Event), func(ctx context.Context, event Event) error {
		return callback(ctx, event)
	})
	id := uuid.New().String()
	e.subscriptions[id] = &SubscriptionInfo{
		ID:          id,
		Event:       options.Event,
		Label:       options.Label,
		Description: options.Description,
		unsubscribe: unsubscribe,
	}
	e.subMu.Unlock()

	e.logger.Debug("Registered subscription",
		zap.String("id", id),
		zap.String("event", string(options.Event)))

	event := createEvent(SubscriptionRegister, "", "register_subscription", nil, nil, nil, time.Time{})
	event.Context = map[string]any{
		"subscriptionId": id,
		"event":          string(options.Event),
		"label":          options.Label,
	}
	e.emitEvent(event)
	return id, nil
}

// UnregisterSubscription removes a subscription by its ID. It reports
// whether a subscription was removed.
func (e *Engine) UnregisterSubscription(id string) bool {
	e.subMu.Lock()
	info, ok := e.subscriptions[id]
	if ok {
		info.unsubscribe()
		delete(e.subscriptions, id)
	}
	e.subMu.Unlock()

	if !ok {
		return false
	}

	event := createEvent(SubscriptionUnregister, "", "unregister_subscription", nil, nil, nil, time.Time{})
	event.Context = map[string]any{"subscriptionId": id}
	e.emitEvent(event)
	return true
}

// Subscriptions returns all currently active subscriptions ordered by ID.
func (e *Engine) Subscriptions() []SubscriptionInfo {
	e.subMu.RLock()
	defer e.subMu.RUnlock()

	subs := make([]SubscriptionInfo, 0, len(e.subscriptions))
	for _, sub := range e.subscriptions {
		subs = append(subs, *sub)
	}
	slices.SortFunc(subs, func(a, b SubscriptionInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return subs
}
