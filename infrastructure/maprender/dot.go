package maprender

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"campusnav-backend/application/ports"
)

// DOTRenderer emits the campus as a Graphviz document with the route
// highlighted. Meant for tooling and debugging rather than end users.
type DOTRenderer struct {
	outputDir string
	logger    *zap.Logger
}

// NewDOTRenderer creates the renderer and its output directory
func NewDOTRenderer(outputDir string, logger *zap.Logger) (*DOTRenderer, error) {
	if err := ensureOutputDir(outputDir); err != nil {
		return nil, err
	}
	return &DOTRenderer{outputDir: outputDir, logger: logger}, nil
}

// Format names the artifact format
func (r *DOTRenderer) Format() string {
	return "dot"
}

// Render writes the DOT artifact for the route
func (r *DOTRenderer) Render(ctx context.Context, routeMap ports.RouteMap) (*ports.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(routeMap.Route.Path) == 0 {
		return nil, fmt.Errorf("cannot render an empty route")
	}

	onRoute := routeSet(routeMap.Route.Path)
	walked := routePairs(routeMap.Route.Path)

	var sb strings.Builder

	sb.WriteString("graph campus {\n")
	sb.WriteString("    layout=neato;\n")
	sb.WriteString("    node [shape=box, style=filled, fillcolor=\"#74b9ff\"];\n")
	sb.WriteString("\n")

	for _, location := range routeMap.Campus.Locations() {
		attrs := fmt.Sprintf("label=%s", quoteDOT(location.Name()))
		if onRoute[location.Key().String()] {
			attrs += ", fillcolor=\"red\", fontcolor=\"white\""
		}
		sb.WriteString(fmt.Sprintf("    %s [%s];\n", quoteDOT(location.Key().String()), attrs))
	}

	sb.WriteString("\n")

	for _, e := range campusEdges(routeMap) {
		line := fmt.Sprintf("    %s -- %s", quoteDOT(e.from.String()), quoteDOT(e.to.String()))
		if walked[pairID(e.from, e.to)] {
			line += " [color=\"red\", penwidth=5]"
		}
		sb.WriteString(line + ";\n")
	}

	sb.WriteString("}\n")

	artifact, err := writeArtifact(r.outputDir, r.Format(), "dot", "text/vnd.graphviz", []byte(sb.String()))
	if err != nil {
		return nil, err
	}

	r.logger.Debug("DOT graph rendered", zap.String("path", artifact.Path))

	return artifact, nil
}

func quoteDOT(s string) string {
	return fmt.Sprintf("\"%s\"", strings.ReplaceAll(s, "\"", "\\\""))
}
