package fmc

import (
	"context"
	"errors"

	"github.com/netdevops-io/go-fmc/internal/constants"
)

// ErrNoMoreItems is returned by PageIterator.Next once the walk is finished.
var ErrNoMoreItems = errors.New("no more items")

// ListFunc fetches a single page of a collection. The iterator controls the
// Offset and Limit fields of the parameters it passes in.
type ListFunc[T any] func(ctx context.Context, params *QueryParams) (*ListResponse[T], error)

// PageIterator walks a paginated collection in server order. The walk is a
// single finite pass: a response without items ends it, and so does reaching
// the server-reported total count.
type PageIterator[T any] struct {
	ctx      context.Context
	fetch    ListFunc[T]
	params   QueryParams
	pageSize int

	buffer []T
	offset int
	count  int
	done   bool
	err    error
}

// NewPageIterator creates an iterator over the collection served by fetch.
// Caller-supplied params are preserved apart from Offset and Limit.
func NewPageIterator[T any](ctx context.Context, fetch ListFunc[T], params *QueryParams) *PageIterator[T] {
	iter := &PageIterator[T]{
		ctx:      ctx,
		fetch:    fetch,
		pageSize: constants.PageSize,
	}

	if params != nil {
		iter.params = *params
	}

	return iter
}

// HasNext reports whether another item is available. It fetches the next
// page when the buffer is exhausted.
func (it *PageIterator[T]) HasNext() bool {
	if len(it.buffer) > 0 {
		return true
	}

	if it.done {
		return false
	}

	it.fetchPage()

	return len(it.buffer) > 0
}

// Next returns the next item, fetching pages as needed.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		if it.err != nil {
			return zero, it.err
		}

		return zero, ErrNoMoreItems
	}

	item := it.buffer[0]
	it.buffer = it.buffer[1:]

	return item, nil
}

// All drains the iterator and returns every remaining item in server order.
func (it *PageIterator[T]) All() ([]T, error) {
	var all []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return all, err
		}

		all = append(all, item)
	}

	return all, it.err
}

// Err returns the first error encountered while fetching pages.
func (it *PageIterator[T]) Err() error {
	return it.err
}

func (it *PageIterator[T]) fetchPage() {
	params := it.params
	params.Offset = it.offset
	params.Limit = it.pageSize

	resp, err := it.fetch(it.ctx, &params)
	if err != nil {
		it.err = err
		it.done = true

		return
	}

	// A response without a recognizable items list is end-of-data, not an
	// error.
	if resp == nil || len(resp.Items) == 0 {
		it.done = true

		return
	}

	it.buffer = append(it.buffer, resp.Items...)
	it.count = resp.Paging.Count

	if it.offset+it.pageSize >= it.count {
		it.done = true

		return
	}

	it.offset += it.pageSize
}

// AllPages collects the complete collection served by fetch, materialized
// eagerly in server order.
func AllPages[T any](ctx context.Context, fetch ListFunc[T], params *QueryParams) ([]T, error) {
	return NewPageIterator(ctx, fetch, params).All()
}
