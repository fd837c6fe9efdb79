package engine

import (
	"context"
	"encoding/json"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/asaidimu/go-qsdata/core/query"
	"github.com/asaidimu/go-qsdata/core/schema"
	"github.com/asaidimu/go-qsdata/core/sequence"
	"github.com/asaidimu/go-qsdata/core/text"
)

func (e *Engine) registerBuiltins() error {
	builtins := []struct {
		name        string
		description string
		handler     Handler
	}{
		{"filter", "records whose key equals value", e.filter},
		{"filter_above", "records whose numeric key is strictly above threshold", e.filterAbove},
		{"sort_by_key", "records sorted ascending by key", e.sortByKey},
		{"aggregate", "frequency table of the values under key", e.aggregate},
		{"validate", "issues found checking records against a key requirement", e.validate},
		{"query", "filters, sort and aggregations over records in one pipeline", e.runQuery},
		{"find_duplicates", "numbers occurring more than once in values", findDuplicates},
		{"prime_factors", "prime factors of n with multiplicity", primeFactors},
		{"quicksort", "integers in values sorted ascending", e.quicksort},
		{"mean_squared_error", "mean squared error between y_true and y_pred", meanSquaredError},
		{"moving_average", "moving average of data over window", movingAverage},
		{"anagram", "whether a and b are anagrams, ignoring case", anagram},
		{"reverse_words", "words of text in reverse order", textOp(func(s string) (any, error) { return text.ReverseWords(s), nil })},
		{"remove_vowels", "text without vowels, accents removed", textOp(func(s string) (any, error) { return text.RemoveVowels(s) })},
		{"is_palindrome", "whether text reads the same backwards, ignoring case and spaces", textOp(func(s string) (any, error) { return text.IsPalindrome(s), nil })},
		{"compress", "run-length encoding of text", textOp(func(s string) (any, error) { return text.Compress(s) })},
		{"decompress", "text expanded from its run-length encoding", textOp(func(s string) (any, error) {
			return text.DecompressWithLimit(s, e.opts.maxRunLength)
		})},
	}

	for _, b := range builtins {
		if err := e.Register(b.name, b.description, b.handler); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) filter(_ context.Context, raw json.RawMessage) (any, error) {
	var args filterArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	records, err := args.records()
	if err != nil {
		return nil, err
	}
	if len(args.Key) == 0 {
		return nil, missing("key")
	}
	value, err := schema.ToValue(args.Value)
	if err != nil {
		return nil, err
	}

	var key any
	if err := decodeArgs(args.Key, &key); err != nil {
		return nil, err
	}
	switch k := key.(type) {
	case string:
		return query.Filter(records, k, value)
	case json.Number:
		n, err := k.Int64()
		if err != nil {
			return nil, core.InvalidArgument("key should be a string or an integer, got %s", k)
		}
		return query.Filter(records, int(n), value)
	default:
		return nil, core.InvalidArgument("key should be a string or an integer, got %T", key)
	}
}

func (e *Engine) filterAbove(_ context.Context, raw json.RawMessage) (any, error) {
	var args filterAboveArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	records, err := args.records()
	if err != nil {
		return nil, err
	}
	key, err := args.key()
	if err != nil {
		return nil, err
	}
	if args.Threshold == nil {
		return nil, missing("threshold")
	}
	return query.FilterAbove(records, key, *args.Threshold)
}

func (e *Engine) sortByKey(_ context.Context, raw json.RawMessage) (any, error) {
	var args keyArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	records, err := args.records()
	if err != nil {
		return nil, err
	}
	key, err := args.key()
	if err != nil {
		return nil, err
	}
	return query.SortByKey(records, key)
}

func (e *Engine) aggregate(_ context.Context, raw json.RawMessage) (any, error) {
	var args keyArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	records, err := args.records()
	if err != nil {
		return nil, err
	}
	key, err := args.key()
	if err != nil {
		return nil, err
	}
	return query.Aggregate(records, key)
}

func (e *Engine) validate(_ context.Context, raw json.RawMessage) (any, error) {
	var args validateArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	records, err := args.records()
	if err != nil {
		return nil, err
	}
	key, err := args.key()
	if err != nil {
		return nil, err
	}
	valid, issues := schema.NewValidator(schema.KeyRequirement{
		Key:      key,
		Required: args.Required,
		Uniform:  args.Uniform,
		Numeric:  args.Numeric,
		NonEmpty: args.NonEmpty,
	}).Validate(records)
	return schema.ValidationResult{Valid: valid, Issues: issues}, nil
}

func (e *Engine) runQuery(ctx context.Context, raw json.RawMessage) (any, error) {
	var args queryArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	records, err := args.records()
	if err != nil {
		return nil, err
	}
	return e.processor.ProcessSource(ctx, query.StaticSource(records), args.Query)
}

func (e *Engine) quicksort(_ context.Context, raw json.RawMessage) (any, error) {
	var args valuesArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.Values == nil {
		return nil, missing("values")
	}
	values, err := sequence.ParseIntegers(args.Values)
	if err != nil {
		return nil, err
	}
	if e.opts.quicksort == QuicksortInPlace {
		sequence.QuicksortInPlace(values)
		return values, nil
	}
	return sequence.Quicksort(values), nil
}

func findDuplicates(_ context.Context, raw json.RawMessage) (any, error) {
	var args valuesArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.Values == nil {
		return nil, missing("values")
	}
	values, err := sequence.ParseNumbers(args.Values)
	if err != nil {
		return nil, err
	}
	return sequence.FindDuplicates(values), nil
}

func primeFactors(_ context.Context, raw json.RawMessage) (any, error) {
	var args primeArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.N == nil {
		return nil, missing("n")
	}
	return sequence.PrimeFactors(*args.N)
}

func meanSquaredError(_ context.Context, raw json.RawMessage) (any, error) {
	var args mseArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	yTrue, err := sequence.ParseNumbers(args.YTrue)
	if err != nil {
		return nil, err
	}
	yPred, err := sequence.ParseNumbers(args.YPred)
	if err != nil {
		return nil, err
	}
	return sequence.MeanSquaredError(yTrue, yPred)
}

func movingAverage(_ context.Context, raw json.RawMessage) (any, error) {
	var args movingAverageArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.Window == nil {
		return nil, missing("window")
	}
	data, err := sequence.ParseNumbers(args.Data)
	if err != nil {
		return nil, err
	}
	return sequence.MovingAverage(data, *args.Window)
}

func anagram(_ context.Context, raw json.RawMessage) (any, error) {
	var args anagramArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.A == nil {
		return nil, missing("a")
	}
	if args.B == nil {
		return nil, missing("b")
	}
	return text.Anagram(*args.A, *args.B), nil
}

// textOp adapts a function of a single string argument.
func textOp(fn func(string) (any, error)) Handler {
	return func(_ context.Context, raw json.RawMessage) (any, error) {
		var args textArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		s, err := args.text()
		if err != nil {
			return nil, err
		}
		return fn(s)
	}
}
