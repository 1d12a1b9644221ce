// Package maprender draws computed routes over the campus map. Backends share
// the artifact layout and differ only in what they draw: leaflet emits an
// interactive HTML tile map, svg a static image, dot a Graphviz document.
package maprender

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"campusnav-backend/application/ports"
	"campusnav-backend/domain/core/valueobjects"
)

// NewRenderer selects a backend by name. The off backend is handled by the
// caller; here an unknown name is an assembly error.
func NewRenderer(backend, outputDir string, zoom int, logger *zap.Logger) (ports.MapRenderer, error) {
	switch backend {
	case "leaflet":
		return NewLeafletRenderer(outputDir, zoom, logger)
	case "svg":
		return NewSVGRenderer(outputDir, logger)
	case "dot":
		return NewDOTRenderer(outputDir, logger)
	default:
		return nil, fmt.Errorf("unknown render backend %q", backend)
	}
}

// edge is one undirected walkway, normalized so a-b and b-a collapse
type edge struct {
	from valueobjects.LocationKey
	to   valueobjects.LocationKey
}

// campusEdges lists every undirected edge exactly once, in definition order
func campusEdges(routeMap ports.RouteMap) []edge {
	seen := make(map[string]bool)
	var edges []edge

	for _, location := range routeMap.Campus.Locations() {
		key := location.Key()
		for _, neighbor := range routeMap.Campus.Neighbors(key) {
			id := pairID(key, neighbor)
			if seen[id] {
				continue
			}
			seen[id] = true
			edges = append(edges, edge{from: key, to: neighbor})
		}
	}

	return edges
}

func pairID(a, b valueobjects.LocationKey) string {
	if a.String() < b.String() {
		return a.String() + "|" + b.String()
	}
	return b.String() + "|" + a.String()
}

// routeSet indexes the path for on-route highlighting
func routeSet(path []valueobjects.LocationKey) map[string]bool {
	set := make(map[string]bool, len(path))
	for _, key := range path {
		set[key.String()] = true
	}
	return set
}

// routePairs indexes consecutive path pairs so edge renderers can highlight
// the walked segments
func routePairs(path []valueobjects.LocationKey) map[string]bool {
	pairs := make(map[string]bool, len(path))
	for i := 1; i < len(path); i++ {
		pairs[pairID(path[i-1], path[i])] = true
	}
	return pairs
}

// writeArtifact persists rendered bytes under the output directory and
// returns the artifact record for the store
func writeArtifact(outputDir, format, ext, mediaType string, data []byte) (*ports.Artifact, error) {
	id := uuid.New().String()
	path := filepath.Join(outputDir, fmt.Sprintf("route-%s.%s", id, ext))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s artifact: %w", format, err)
	}

	return &ports.Artifact{
		ID:        id,
		Path:      path,
		MediaType: mediaType,
		Format:    format,
		CreatedAt: time.Now(),
	}, nil
}

// ensureOutputDir creates the artifact directory up front so a bad path
// fails at assembly time, not on the first render
func ensureOutputDir(outputDir string) error {
	if outputDir == "" {
		return fmt.Errorf("render output directory cannot be empty")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create render output directory: %w", err)
	}
	return nil
}
