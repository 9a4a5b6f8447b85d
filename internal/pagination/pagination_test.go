package pagination

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func intp(i int) *int       { return &i }
func strp(s string) *string { return &s }

func edgeNodes(conn *Connection[string]) []string {
	out := make([]string, 0, len(conn.Edges))
	for _, e := range conn.Edges {
		out = append(out, e.Node)
	}
	return out
}

func TestPaginateWindows(t *testing.T) {
	t.Parallel()

	seq := SliceSequence[string]{"e0", "e1", "e2", "e3", "e4"}

	tests := []struct {
		name     string
		args     Args
		want     []string
		hasPrev  bool
		hasNext  bool
		wantErr  bool
		errMatch error
	}{
		{
			name:    "whole sequence",
			args:    Args{},
			want:    []string{"e0", "e1", "e2", "e3", "e4"},
			hasPrev: false,
			hasNext: false,
		},
		{
			name:    "first two",
			args:    Args{First: intp(2)},
			want:    []string{"e0", "e1"},
			hasNext: true,
		},
		{
			name:    "last two",
			args:    Args{Last: intp(2)},
			want:    []string{"e3", "e4"},
			hasPrev: true,
		},
		{
			name:    "first two after cursor zero",
			args:    Args{First: intp(2), After: strp(EncodeCursor(0))},
			want:    []string{"e1", "e2"},
			hasPrev: true,
			hasNext: true,
		},
		{
			name:    "before bounds the window",
			args:    Args{Last: intp(2), Before: strp(EncodeCursor(4))},
			want:    []string{"e2", "e3"},
			hasPrev: true,
			hasNext: true,
		},
		{
			name: "first wins over last",
			args: Args{First: intp(1), Last: intp(3)},
			want: []string{"e0"}, hasNext: true,
		},
		{
			name:    "first larger than sequence",
			args:    Args{First: intp(50)},
			want:    []string{"e0", "e1", "e2", "e3", "e4"},
			hasNext: false,
		},
		{
			name: "empty window",
			args: Args{After: strp(EncodeCursor(2)), Before: strp(EncodeCursor(3))},
			want: nil, hasPrev: true, hasNext: true,
		},
		{
			name:     "malformed cursor",
			args:     Args{After: strp("!!not-base64!!")},
			wantErr:  true,
			errMatch: ErrInvalidCursor,
		},
		{
			name:     "cursor beyond sequence",
			args:     Args{After: strp(EncodeCursor(17))},
			wantErr:  true,
			errMatch: ErrInvalidCursor,
		},
		{
			name:     "negative first",
			args:     Args{First: intp(-1)},
			wantErr:  true,
			errMatch: ErrInvalidCursor,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conn, err := Paginate[string](context.Background(), seq, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Paginate() expected error")
				}
				if tt.errMatch != nil && !errors.Is(err, tt.errMatch) {
					t.Fatalf("Paginate() error = %v, want %v", err, tt.errMatch)
				}
				return
			}
			if err != nil {
				t.Fatalf("Paginate(): %v", err)
			}

			got := edgeNodes(conn)
			if len(got) != len(tt.want) {
				t.Fatalf("edges = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("edges = %v, want %v", got, tt.want)
				}
			}
			if conn.PageInfo.HasPreviousPage != tt.hasPrev {
				t.Fatalf("HasPreviousPage = %v, want %v", conn.PageInfo.HasPreviousPage, tt.hasPrev)
			}
			if conn.PageInfo.HasNextPage != tt.hasNext {
				t.Fatalf("HasNextPage = %v, want %v", conn.PageInfo.HasNextPage, tt.hasNext)
			}
			if conn.TotalCount != 5 {
				t.Fatalf("TotalCount = %d, want 5", conn.TotalCount)
			}
		})
	}
}

func TestPaginateRoundTrip(t *testing.T) {
	t.Parallel()

	seq := make(SliceSequence[int], 10)
	for i := range seq {
		seq[i] = i
	}
	ctx := context.Background()

	// Page N's endCursor used as after with the same first yields page N+1
	// with no overlap and no gap.
	var seen []int
	var after *string
	for {
		conn, err := Paginate[int](ctx, seq, Args{First: intp(3), After: after})
		if err != nil {
			t.Fatalf("Paginate(): %v", err)
		}
		for _, e := range conn.Edges {
			seen = append(seen, e.Node)
		}
		if !conn.PageInfo.HasNextPage {
			break
		}
		after = strp(conn.PageInfo.EndCursor)
	}

	if len(seen) != 10 {
		t.Fatalf("round trip visited %d elements, want 10", len(seen))
	}
	for i, v := range seen {
		if v != i {
			t.Fatalf("round trip out of order at %d: %v", i, seen)
		}
	}
}

func TestPaginateEndCursorAtBoundary(t *testing.T) {
	t.Parallel()

	seq := SliceSequence[string]{"e0", "e1", "e2"}
	conn, err := Paginate[string](context.Background(), seq, Args{First: intp(3)})
	if err != nil {
		t.Fatalf("Paginate(): %v", err)
	}
	if conn.PageInfo.HasNextPage {
		t.Fatal("HasNextPage true although last edge is the sequence's last element")
	}
	if conn.PageInfo.EndCursor != EncodeCursor(2) {
		t.Fatalf("EndCursor = %q, want cursor of last element", conn.PageInfo.EndCursor)
	}
}

func TestPaginateGrowingSequence(t *testing.T) {
	t.Parallel()

	// The same cursor stays valid while the sequence grows, and boundary
	// flags reflect the live length.
	seq := SliceSequence[string]{"e0", "e1"}
	conn, err := Paginate[string](context.Background(), seq, Args{First: intp(2)})
	if err != nil {
		t.Fatalf("Paginate(): %v", err)
	}
	if conn.PageInfo.HasNextPage {
		t.Fatal("HasNextPage true on full page")
	}

	grown := append(seq, "e2")
	conn, err = Paginate[string](context.Background(), grown, Args{First: intp(2)})
	if err != nil {
		t.Fatalf("Paginate(): %v", err)
	}
	if !conn.PageInfo.HasNextPage {
		t.Fatal("HasNextPage false after sequence grew")
	}
	if conn.TotalCount != 3 {
		t.Fatalf("TotalCount = %d, want live length 3", conn.TotalCount)
	}
}

func TestPaginatePartialEdgeFailure(t *testing.T) {
	t.Parallel()

	broken := errors.New("decode failed")
	seq := FuncSequence[string]{
		Length: func(context.Context) (int, error) { return 3, nil },
		Element: func(_ context.Context, i int) (string, error) {
			if i == 1 {
				return "", broken
			}
			return fmt.Sprintf("e%d", i), nil
		},
	}

	conn, err := Paginate[string](context.Background(), seq, Args{})
	if err != nil {
		t.Fatalf("Paginate(): %v", err)
	}
	if len(conn.Edges) != 3 {
		t.Fatalf("edges = %d, want 3; one bad node must not abort the page", len(conn.Edges))
	}
	if conn.Edges[1].Err == nil || conn.Edges[1].Node != "" {
		t.Fatalf("edge 1 = %+v, want nil node with error detail", conn.Edges[1])
	}
	if conn.Edges[0].Err != nil || conn.Edges[2].Err != nil {
		t.Fatal("healthy edges carried errors")
	}
}

func TestPaginateCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seq := SliceSequence[string]{"e0", "e1"}
	if _, err := Paginate[string](ctx, seq, Args{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Paginate() on canceled ctx = %v, want context.Canceled", err)
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, cursor := range []string{"", "%%%", EncodeCursor(0) + "x", "LTU="} { // "LTU=" is "-5"
		if _, err := DecodeCursor(cursor); !errors.Is(err, ErrInvalidCursor) {
			t.Fatalf("DecodeCursor(%q) = %v, want ErrInvalidCursor", cursor, err)
		}
	}
}
