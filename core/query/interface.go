package query

import (
	"context"

	"github.com/asaidimu/go-qsdata/core/schema"
)

// Source produces a record collection for a pipeline run. Implementations
// include StaticSource for in-memory data and sqlite.Source for tables.
type Source interface {
	// Load returns the full collection. It is called once per pipeline run.
	Load(ctx context.Context) (schema.Collection, error)
}

// StaticSource serves a fixed, already-built collection.
type StaticSource schema.Collection

// Load implements Source.
func (s StaticSource) Load(ctx context.Context) (schema.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return schema.Collection(s), nil
}
