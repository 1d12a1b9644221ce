package maprender

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"campusnav-backend/application/ports"
	"campusnav-backend/domain/core/entities"
)

const (
	svgWidth  = 800
	svgHeight = 600
	svgMargin = 60.0
)

// SVGRenderer draws the campus as a static image: every walkway in gray, the
// computed route as a red overlay. No external viewer dependencies, which
// makes it the backend of choice for kiosks without network access.
type SVGRenderer struct {
	outputDir string
	logger    *zap.Logger
}

// NewSVGRenderer creates the renderer and its output directory
func NewSVGRenderer(outputDir string, logger *zap.Logger) (*SVGRenderer, error) {
	if err := ensureOutputDir(outputDir); err != nil {
		return nil, err
	}
	return &SVGRenderer{outputDir: outputDir, logger: logger}, nil
}

// Format names the artifact format
func (r *SVGRenderer) Format() string {
	return "svg"
}

// Render writes the SVG artifact for the route
func (r *SVGRenderer) Render(ctx context.Context, routeMap ports.RouteMap) (*ports.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(routeMap.Route.Path) == 0 {
		return nil, fmt.Errorf("cannot render an empty route")
	}

	locations := routeMap.Campus.Locations()
	project := newProjection(locations)
	onRoute := routeSet(routeMap.Route.Path)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d">`, svgWidth, svgHeight))
	sb.WriteString("\n")
	sb.WriteString(`<style>
    .walkway { stroke: #999; stroke-width: 2px; stroke-opacity: 0.6; }
    .route { stroke: red; stroke-width: 5px; stroke-opacity: 0.8; fill: none; }
    .location { fill: #74b9ff; stroke: #333; stroke-width: 1px; }
    .location-route { fill: red; stroke: #333; stroke-width: 1px; }
    .label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }
  </style>
`)

	// Walkways first so nodes and the route draw over them
	for _, e := range campusEdges(routeMap) {
		fromLoc, _ := routeMap.Campus.Location(e.from)
		toLoc, _ := routeMap.Campus.Location(e.to)
		x1, y1 := project(fromLoc)
		x2, y2 := project(toLoc)
		sb.WriteString(fmt.Sprintf(`  <line class="walkway" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`, x1, y1, x2, y2))
		sb.WriteString("\n")
	}

	// Route overlay
	if len(routeMap.Route.Path) > 1 {
		points := make([]string, 0, len(routeMap.Route.Path))
		for _, key := range routeMap.Route.Path {
			location, ok := routeMap.Campus.Location(key)
			if !ok {
				return nil, fmt.Errorf("route references unknown location %s", key.String())
			}
			x, y := project(location)
			points = append(points, fmt.Sprintf("%.1f,%.1f", x, y))
		}
		sb.WriteString(fmt.Sprintf(`  <polyline class="route" points="%s"/>`, strings.Join(points, " ")))
		sb.WriteString("\n")
	}

	// Locations and labels
	for _, location := range locations {
		x, y := project(location)
		class := "location"
		if onRoute[location.Key().String()] {
			class = "location-route"
		}
		sb.WriteString(fmt.Sprintf(`  <circle class="%s" cx="%.1f" cy="%.1f" r="8"/>`, class, x, y))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(`  <text class="label" x="%.1f" y="%.1f" text-anchor="middle">%s</text>`,
			x, y+22, html.EscapeString(location.Name())))
		sb.WriteString("\n")
	}

	sb.WriteString("</svg>\n")

	artifact, err := writeArtifact(r.outputDir, r.Format(), "svg", "image/svg+xml", []byte(sb.String()))
	if err != nil {
		return nil, err
	}

	r.logger.Debug("SVG map rendered",
		zap.String("path", artifact.Path),
		zap.Int("locations", len(locations)))

	return artifact, nil
}

// newProjection maps coordinates onto the SVG viewport, latitude growing
// upwards. A degenerate span collapses to the viewport center.
func newProjection(locations []*entities.Location) func(*entities.Location) (float64, float64) {
	minLat, maxLat := locations[0].Coordinate().Latitude(), locations[0].Coordinate().Latitude()
	minLon, maxLon := locations[0].Coordinate().Longitude(), locations[0].Coordinate().Longitude()

	for _, location := range locations[1:] {
		lat := location.Coordinate().Latitude()
		lon := location.Coordinate().Longitude()
		if lat < minLat {
			minLat = lat
		}
		if lat > maxLat {
			maxLat = lat
		}
		if lon < minLon {
			minLon = lon
		}
		if lon > maxLon {
			maxLon = lon
		}
	}

	latSpan := maxLat - minLat
	lonSpan := maxLon - minLon
	innerWidth := float64(svgWidth) - 2*svgMargin
	innerHeight := float64(svgHeight) - 2*svgMargin

	return func(location *entities.Location) (float64, float64) {
		x := float64(svgWidth) / 2
		y := float64(svgHeight) / 2
		if lonSpan > 0 {
			x = svgMargin + (location.Coordinate().Longitude()-minLon)/lonSpan*innerWidth
		}
		if latSpan > 0 {
			y = svgMargin + (maxLat-location.Coordinate().Latitude())/latSpan*innerHeight
		}
		return x, y
	}
}
