package query

import (
	"context"
	"fmt"
	"sync"

	"github.com/asaidimu/go-qsdata/core/schema"
	"go.uber.org/zap"
)

// PredicateFunction is a pure Go function that performs custom filtering
// logic on a record. It returns true if the record passes the filter.
type PredicateFunction func(record schema.Record, field string, args FilterValue) (bool, error)

// DataProcessor runs QueryDSL pipelines over record collections. The
// standard operators map onto Filter and FilterAbove; any other operator
// must have a PredicateFunction registered for it.
type DataProcessor struct {
	filterFunctions map[ComparisonOperator]PredicateFunction
	mu              sync.RWMutex
	logger          *zap.Logger
}

// NewDataProcessor creates a new DataProcessor instance.
func NewDataProcessor(logger *zap.Logger) *DataProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataProcessor{
		filterFunctions: make(map[ComparisonOperator]PredicateFunction),
		logger:          logger,
	}
}

// RegisterFilterFunction registers a Go function for custom filtering.
func (p *DataProcessor) RegisterFilterFunction(operator ComparisonOperator, fn PredicateFunction) error {
	if operator.IsStandard() {
		return fmt.Errorf("cannot override standard operator %q", operator)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filterFunctions[operator] = fn
	p.logger.Info("Registered filter function", zap.String("operator", string(operator)))
	return nil
}

// RegisterFilterFunctions registers multiple PredicateFunction functions from a map.
func (p *DataProcessor) RegisterFilterFunctions(functionMap map[ComparisonOperator]PredicateFunction) error {
	for operator, fn := range functionMap {
		if err := p.RegisterFilterFunction(operator, fn); err != nil {
			return err
		}
	}
	return nil
}

// Process runs dsl over records. A nil dsl returns the records unchanged.
// The run is all-or-nothing: any failing step aborts with an error and no
// partial result.
func (p *DataProcessor) Process(records schema.Collection, dsl *QueryDSL) (*QueryResult, error) {
	if dsl == nil {
		dsl = &QueryDSL{}
	}
	if result := ValidateDSL(dsl); !result.IsValid {
		return nil, fmt.Errorf("invalid query: %w", result.Errors[0])
	}

	rows := records
	var err error
	for i, cond := range dsl.Filters {
		rows, err = p.applyFilter(rows, cond)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s %s) failed: %w", i, cond.Field, cond.Operator, err)
		}
		p.logger.Debug("Rows remaining after filter",
			zap.Int("filter", i),
			zap.String("operator", string(cond.Operator)),
			zap.Int("count", len(rows)))
	}

	if dsl.Sort != nil {
		// An empty intermediate result has nothing to order; SortByKey itself
		// rejects empty input.
		if len(rows) > 0 {
			rows, err = SortByKey(rows, dsl.Sort.Field)
			if err != nil {
				return nil, fmt.Errorf("sort by %s failed: %w", dsl.Sort.Field, err)
			}
		}
	}

	result := &QueryResult{
		Data:  rows.Clone(),
		Count: len(rows),
	}
	if result.Data == nil {
		result.Data = make(schema.Collection, 0)
	}

	if len(dsl.Aggregations) > 0 {
		result.Aggregations = make(map[string]schema.FrequencyTable, len(dsl.Aggregations))
		for _, agg := range dsl.Aggregations {
			table, err := Aggregate(rows, agg.Field)
			if err != nil {
				return nil, fmt.Errorf("aggregation %s failed: %w", agg.Name(), err)
			}
			result.Aggregations[agg.Name()] = table
		}
	}

	p.logger.Debug("Pipeline complete", zap.Int("count", result.Count))
	return result, nil
}

// ProcessSource loads a collection from src and runs dsl over it.
func (p *DataProcessor) ProcessSource(ctx context.Context, src Source, dsl *QueryDSL) (*QueryResult, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	p.logger.Debug("Loaded records from source", zap.Int("count", len(records)))
	return p.Process(records, dsl)
}

// applyFilter applies a single condition to the whole collection.
func (p *DataProcessor) applyFilter(rows schema.Collection, cond FilterCondition) (schema.Collection, error) {
	switch cond.Operator {
	case ComparisonOperatorEq:
		value, err := filterValue(cond.Value)
		if err != nil {
			return nil, err
		}
		return Filter(rows, cond.Field, value)
	case ComparisonOperatorGt:
		threshold, err := thresholdValue(cond.Value)
		if err != nil {
			return nil, err
		}
		return FilterAbove(rows, cond.Field, threshold)
	}

	p.mu.RLock()
	fn, ok := p.filterFunctions[cond.Operator]
	p.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unregistered filter function for operator: %s", cond.Operator)
	}

	filtered := make(schema.Collection, 0)
	for i, record := range rows {
		passes, err := fn(record, cond.Field, cond.Value)
		if err != nil {
			return nil, fmt.Errorf("error evaluating filter for record %d: %w", i, err)
		}
		if passes {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}
