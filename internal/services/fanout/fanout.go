// Package fanout runs best-effort per-item work with bounded concurrency.
//
// A failing item never cancels its siblings: every item runs (unless the
// caller's context is done) and its outcome is recorded in the report in
// input order.
package fanout

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"brightrec/internal/domain"
)

// DefaultLimit bounds concurrency when the caller passes a non-positive limit.
const DefaultLimit = 4

// Item is one unit of best-effort work.
type Item struct {
	Kind     domain.ItemKind
	ID       string
	Filename string
}

// Run calls fn for every item with at most limit calls in flight.
func Run(ctx context.Context, limit int, items []Item, fn func(context.Context, Item) error) domain.BatchReport {
	if limit <= 0 {
		limit = DefaultLimit
	}
	results := make([]domain.ItemResult, len(items))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, it := range items {
		g.Go(func() error {
			res := domain.ItemResult{Kind: it.Kind, ID: it.ID, Filename: it.Filename}
			if err := ctx.Err(); err != nil {
				res.Err = err
			} else {
				res.Err = fn(ctx, it)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return domain.BatchReport{Items: results}
}

// Err folds the report's failures into one error, or nil when all succeeded.
func Err(r domain.BatchReport) error {
	var merr *multierror.Error
	for _, it := range r.Failed() {
		merr = multierror.Append(merr, fmt.Errorf("%s %s: %w", it.Kind, it.ID, it.Err))
	}
	return merr.ErrorOrNil()
}
