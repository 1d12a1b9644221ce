// Package services holds the pure domain services: shortest-path search and
// route narration. Both are deterministic and side-effect free; orchestration
// and I/O live in the application layer.
package services

import (
	"context"

	"campusnav-backend/domain/core/aggregates"
	"campusnav-backend/domain/core/valueobjects"
	pkgerrors "campusnav-backend/pkg/errors"
)

// BFSPathFinder computes hop-shortest routes over the campus walkway graph.
// Every edge costs one hop, so breadth-first order finds a shortest path;
// ties break toward the earlier-inserted neighbor because the frontier is
// FIFO and neighbors expand in the aggregate's stored order.
type BFSPathFinder struct{}

// NewBFSPathFinder creates a path finder
func NewBFSPathFinder() *BFSPathFinder {
	return &BFSPathFinder{}
}

// bfsWalker encapsulates mutable search state for one FindPath call.
type bfsWalker struct {
	campus  *aggregates.Campus
	queue   []valueobjects.LocationKey
	visited map[valueobjects.LocationKey]bool
	parent  map[valueobjects.LocationKey]valueobjects.LocationKey
}

// FindPath returns the shortest path from start to end, both inclusive.
// Equal endpoints short-circuit to a single-element path without searching.
// Unknown endpoints return an invalid-location error; disconnected endpoints
// return a no-path error. The context is checked once per expansion.
func (f *BFSPathFinder) FindPath(ctx context.Context, campus *aggregates.Campus, start, end valueobjects.LocationKey) ([]valueobjects.LocationKey, error) {
	if campus == nil {
		return nil, pkgerrors.NewInternalError("path finder requires a campus")
	}
	if !campus.Contains(start) {
		return nil, pkgerrors.NewInvalidLocationError(start.String())
	}
	if !campus.Contains(end) {
		return nil, pkgerrors.NewInvalidLocationError(end.String())
	}

	if start.Equals(end) {
		return []valueobjects.LocationKey{start}, nil
	}

	n := campus.LocationCount()
	w := &bfsWalker{
		campus:  campus,
		queue:   make([]valueobjects.LocationKey, 0, n),
		visited: make(map[valueobjects.LocationKey]bool, n),
		parent:  make(map[valueobjects.LocationKey]valueobjects.LocationKey, n),
	}

	w.enqueue(start)
	for len(w.queue) > 0 {
		// cancellation check (once per expansion)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		current := w.dequeue()
		if current.Equals(end) {
			return w.backtrack(start, end), nil
		}

		for _, neighbor := range w.campus.Neighbors(current) {
			if w.visited[neighbor] {
				continue
			}
			w.parent[neighbor] = current
			w.enqueue(neighbor)
		}
	}

	return nil, pkgerrors.NewNoPathError(start.String(), end.String())
}

// enqueue marks the key visited and appends it to the frontier. Marking at
// enqueue time keeps each key in the queue at most once.
func (w *bfsWalker) enqueue(key valueobjects.LocationKey) {
	w.visited[key] = true
	w.queue = append(w.queue, key)
}

// dequeue pops the oldest frontier entry (FIFO).
func (w *bfsWalker) dequeue() valueobjects.LocationKey {
	key := w.queue[0]
	w.queue = w.queue[1:]
	return key
}

// backtrack reconstructs the start-to-end path from parent links.
func (w *bfsWalker) backtrack(start, end valueobjects.LocationKey) []valueobjects.LocationKey {
	path := []valueobjects.LocationKey{end}
	for current := end; !current.Equals(start); {
		current = w.parent[current]
		path = append(path, current)
	}

	// Reverse into start-to-end order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
