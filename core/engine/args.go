package engine

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/asaidimu/go-qsdata/core"
	"github.com/asaidimu/go-qsdata/core/query"
	"github.com/asaidimu/go-qsdata/core/schema"
)

// decodeArgs decodes raw into v. Numbers stay json.Number and unknown
// fields are rejected. A missing argument object decodes as {}.
func decodeArgs(raw json.RawMessage, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, core.ErrInvalidArgument) {
			return err
		}
		return core.InvalidArgument("malformed arguments: %v", err)
	}
	return nil
}

func missing(name string) error {
	return core.InvalidArgument("argument %q is required", name)
}

// recordArgs is embedded by every operation working on a collection.
type recordArgs struct {
	Records *schema.Collection `json:"records"`
}

func (a recordArgs) records() (schema.Collection, error) {
	if a.Records == nil {
		return nil, missing("records")
	}
	return *a.Records, nil
}

type keyArgs struct {
	recordArgs
	Key *string `json:"key"`
}

func (a keyArgs) key() (string, error) {
	if a.Key == nil {
		return "", missing("key")
	}
	return *a.Key, nil
}

type filterArgs struct {
	recordArgs
	Key   json.RawMessage `json:"key"`
	Value any             `json:"value"`
}

type filterAboveArgs struct {
	keyArgs
	Threshold *int64 `json:"threshold"`
}

type validateArgs struct {
	keyArgs
	Required bool `json:"required"`
	Uniform  bool `json:"uniform"`
	Numeric  bool `json:"numeric"`
	NonEmpty bool `json:"non_empty"`
}

type queryArgs struct {
	recordArgs
	Query *query.QueryDSL `json:"query"`
}

type valuesArgs struct {
	Values []any `json:"values"`
}

type primeArgs struct {
	N *int64 `json:"n"`
}

type mseArgs struct {
	YTrue []any `json:"y_true"`
	YPred []any `json:"y_pred"`
}

type movingAverageArgs struct {
	Data   []any `json:"data"`
	Window *int  `json:"window"`
}

type textArgs struct {
	Text *string `json:"text"`
}

func (a textArgs) text() (string, error) {
	if a.Text == nil {
		return "", missing("text")
	}
	return *a.Text, nil
}

type anagramArgs struct {
	A *string `json:"a"`
	B *string `json:"b"`
}
