// Package engine exposes every qsdata algorithm as a named operation taking
// JSON arguments, so that callers such as the CLI can invoke them without
// knowing their Go signatures. Invocations are announced on an event bus.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/asaidimu/go-qsdata/core/query"
)

var (
	// ErrUnknownOperation is returned when an invocation names an operation
	// that was never registered.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrDuplicateOperation is returned when registering a name twice.
	ErrDuplicateOperation = errors.New("operation already registered")

	// ErrEventsDisabled is returned by RegisterSubscription on an engine
	// built with WithEvents(false).
	ErrEventsDisabled = errors.New("events are disabled")
)

// Handler runs an operation. args holds the raw JSON arguments of the
// invocation; the returned value must be JSON serializable.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// OperationInfo describes a registered operation.
type OperationInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type operation struct {
	OperationInfo
	handler Handler
}

// Invocation names an operation and carries its arguments. An empty ID is
// replaced by a generated one.
type Invocation struct {
	ID        string          `json:"id,omitempty"`
	Operation string          `json:"operation"`
	Args      json.RawMessage `json:"args,omitempty"`
}

// Result is the outcome of an invocation. Error is only set by ExecuteBatch,
// which reports failures per invocation instead of aborting.
type Result struct {
	ID        string `json:"id"`
	Operation string `json:"operation"`
	Output    any    `json:"output,omitempty"`
	Error     string `json:"error,omitempty"`
	Duration  int64  `json:"duration"`
}

// Engine is a registry of named operations.
type Engine struct {
	opts      options
	ops       map[string]operation
	mu        sync.RWMutex
	processor *query.DataProcessor
	logger    *zap.Logger

	bus           *events.TypedEventBus[Event]
	subscriptions map[string]*SubscriptionInfo
	subMu         sync.RWMutex
}

// NewEngine creates an engine with every built-in operation registered.
func NewEngine(logger *zap.Logger, opts ...Option) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		opts:          o,
		ops:           make(map[string]operation),
		processor:     query.NewDataProcessor(logger.Named("query")),
		logger:        logger,
		subscriptions: make(map[string]*SubscriptionInfo),
	}

	if o.events {
		bus, err := events.NewTypedEventBus[Event](events.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("could not initialize event bus: %w", err)
		}
		e.bus = bus
	}

	if err := e.registerBuiltins(); err != nil {
		return nil, fmt.Errorf("failed to register built-in operations: %w", err)
	}
	return e, nil
}

// Processor returns the DataProcessor behind the query operation, so that
// custom filter predicates can be registered on it.
func (e *Engine) Processor() *query.DataProcessor {
	return e.processor
}

// Register adds a named operation.
func (e *Engine) Register(name, description string, handler Handler) error {
	if strings.TrimSpace(name) == "" {
		return core.InvalidArgument("operation name cannot be empty")
	}
	if handler == nil {
		return core.InvalidArgument("operation %q has no handler", name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.ops[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateOperation, name)
	}
	e.ops[name] = operation{
		OperationInfo: OperationInfo{Name: name, Description: description},
		handler:       handler,
	}
	e.logger.Debug("Registered operation", zap.String("operation", name))
	return nil
}

// Operations lists the registered operations sorted by name.
func (e *Engine) Operations() []OperationInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	infos := make([]OperationInfo, 0, len(e.ops))
	for _, op := range e.ops {
		infos = append(infos, op.OperationInfo)
	}
	slices.SortFunc(infos, func(a, b OperationInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return infos
}

// Execute runs a single invocation. Start, success and failure events are
// emitted around the handler.
func (e *Engine) Execute(ctx context.Context, inv Invocation) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}

	e.mu.RLock()
	op, ok := e.ops[inv.Operation]
	e.mu.RUnlock()
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownOperation, inv.Operation)
		e.emitEvent(createEvent(OperationFailed, inv.ID, inv.Operation, inv.Args, nil, err, time.Time{}))
		return nil, err
	}

	startTime := time.Now()
	e.emitEvent(createEvent(OperationStart, inv.ID, inv.Operation, inv.Args, nil, nil, time.Time{}))

	output, err := op.handler(ctx, inv.Args)
	if err != nil {
		e.logger.Debug("Operation failed",
			zap.String("id", inv.ID),
			zap.String("operation", inv.Operation),
			zap.Error(err))
		e.emitEvent(createEvent(OperationFailed, inv.ID, inv.Operation, inv.Args, nil, err, startTime))
		return nil, fmt.Errorf("%s: %w", inv.Operation, err)
	}

	result := &Result{
		ID:        inv.ID,
		Operation: inv.Operation,
		Output:    output,
		Duration:  time.Since(startTime).Milliseconds(),
	}
	e.logger.Debug("Operation succeeded",
		zap.String("id", inv.ID),
		zap.String("operation", inv.Operation),
		zap.Int64("duration_ms", result.Duration))
	e.emitEvent(createEvent(OperationSuccess, inv.ID, inv.Operation, inv.Args, output, nil, startTime))
	return result, nil
}

// ExecuteBatch runs independent invocations concurrently and returns their
// results in input order. A failing invocation is reported in its Result
// rather than aborting the batch; only cancellation of ctx fails the batch
// as a whole.
func (e *Engine) ExecuteBatch(ctx context.Context, invs []Invocation) ([]Result, error) {
	invs = slices.Clone(invs)
	results := make([]Result, len(invs))
	for i := range invs {
		if invs[i].ID == "" {
			invs[i].ID = uuid.New().String()
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if e.opts.concurrency > 0 {
		g.SetLimit(e.opts.concurrency)
	}
	for i, inv := range invs {
		g.Go(func() error {
			res, err := e.Execute(gctx, inv)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				results[i] = Result{ID: inv.ID, Operation: inv.Operation, Error: err.Error()}
				return nil
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug("Batch complete", zap.Int("invocations", len(invs)))
	return results, nil
}
