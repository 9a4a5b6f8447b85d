// Package pagination implements generic forward/backward cursor pagination
// over any stably-ordered sequence. Cursors encode absolute position in the
// sequence, so they stay valid for the lifetime of the element they point at
// while page boundaries (hasNextPage, totalCount) always reflect the
// sequence at resolution time.
package pagination

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidCursor is returned when a supplied cursor does not decode to a
// valid position in the target sequence.
var ErrInvalidCursor = errors.New("invalid cursor")

// Sequence is a stably-ordered, append-only view of elements. Positions are
// absolute: once an element has ordinal i, it keeps it.
type Sequence[T any] interface {
	// Len is the current number of elements.
	Len(ctx context.Context) (int, error)
	// At returns the element at ordinal i, 0 <= i < Len. A failure to
	// resolve one element must not fail the whole page; it is reported on
	// the edge.
	At(ctx context.Context, i int) (T, error)
}

// Args are the standard connection arguments.
type Args struct {
	First  *int
	Last   *int
	Before *string
	After  *string
}

// Edge pairs an element with its position cursor. Err is set, and Node left
// as the zero value, when the element failed to resolve; the rest of the
// page is unaffected.
type Edge[T any] struct {
	Node   T      `json:"node"`
	Cursor string `json:"cursor"`
	Err    error  `json:"-"`
}

// PageInfo describes the page's position relative to the sequence's current
// boundaries.
type PageInfo struct {
	HasPreviousPage bool   `json:"hasPreviousPage"`
	HasNextPage     bool   `json:"hasNextPage"`
	StartCursor     string `json:"startCursor,omitempty"`
	EndCursor       string `json:"endCursor,omitempty"`
}

// Connection is one resolved page.
type Connection[T any] struct {
	Edges      []Edge[T] `json:"edges"`
	PageInfo   PageInfo  `json:"pageInfo"`
	TotalCount int       `json:"totalCount"`
}

// EncodeCursor renders an absolute ordinal as an opaque cursor.
func EncodeCursor(i int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(i)))
}

// DecodeCursor parses a cursor back to an ordinal. The position is validated
// against the sequence by the caller.
func DecodeCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	i, err := strconv.Atoi(string(raw))
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	return i, nil
}

// Paginate resolves one page of seq.
//
// before/after establish the window; first/last pick how many elements from
// which end of it. When both first and last are supplied, first wins; the
// schema leaves their combination ambiguous and this is the documented
// normalization.
func Paginate[T any](ctx context.Context, seq Sequence[T], args Args) (*Connection[T], error) {
	n, err := seq.Len(ctx)
	if err != nil {
		return nil, err
	}

	if args.First != nil && *args.First < 0 {
		return nil, fmt.Errorf("%w: negative first", ErrInvalidCursor)
	}
	if args.Last != nil && *args.Last < 0 {
		return nil, fmt.Errorf("%w: negative last", ErrInvalidCursor)
	}

	// Window bounds, half open [start, end).
	start, end := 0, n
	if args.After != nil {
		pos, err := DecodeCursor(*args.After)
		if err != nil {
			return nil, err
		}
		if pos >= n {
			return nil, fmt.Errorf("%w: after position %d beyond sequence of %d", ErrInvalidCursor, pos, n)
		}
		start = pos + 1
	}
	if args.Before != nil {
		pos, err := DecodeCursor(*args.Before)
		if err != nil {
			return nil, err
		}
		if pos >= n {
			return nil, fmt.Errorf("%w: before position %d beyond sequence of %d", ErrInvalidCursor, pos, n)
		}
		if pos < end {
			end = pos
		}
	}
	if start > end {
		start = end
	}

	switch {
	case args.First != nil:
		if end > start+*args.First {
			end = start + *args.First
		}
	case args.Last != nil:
		if start < end-*args.Last {
			start = end - *args.Last
		}
	}

	conn := &Connection[T]{
		Edges:      make([]Edge[T], 0, end-start),
		TotalCount: n,
	}
	for i := start; i < end; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		node, err := seq.At(ctx, i)
		edge := Edge[T]{Cursor: EncodeCursor(i)}
		if err != nil {
			edge.Err = err
		} else {
			edge.Node = node
		}
		conn.Edges = append(conn.Edges, edge)
	}

	if len(conn.Edges) > 0 {
		conn.PageInfo.StartCursor = conn.Edges[0].Cursor
		conn.PageInfo.EndCursor = conn.Edges[len(conn.Edges)-1].Cursor
		conn.PageInfo.HasPreviousPage = start > 0
		conn.PageInfo.HasNextPage = end < n
	} else {
		conn.PageInfo.HasPreviousPage = start > 0
		conn.PageInfo.HasNextPage = start < n
	}
	return conn, nil
}

// SliceSequence adapts an in-memory snapshot to Sequence.
type SliceSequence[T any] []T

// Len implements Sequence.
func (s SliceSequence[T]) Len(context.Context) (int, error) {
	return len(s), nil
}

// At implements Sequence.
func (s SliceSequence[T]) At(_ context.Context, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(s) {
		return zero, fmt.Errorf("%w: position %d of %d", ErrInvalidCursor, i, len(s))
	}
	return s[i], nil
}

// FuncSequence adapts a length plus an element resolver to Sequence, for
// sequences whose elements are loaded lazily from the entity store.
type FuncSequence[T any] struct {
	Length  func(ctx context.Context) (int, error)
	Element func(ctx context.Context, i int) (T, error)
}

// Len implements Sequence.
func (s FuncSequence[T]) Len(ctx context.Context) (int, error) {
	return s.Length(ctx)
}

// At implements Sequence.
func (s FuncSequence[T]) At(ctx context.Context, i int) (T, error) {
	return s.Element(ctx, i)
}
