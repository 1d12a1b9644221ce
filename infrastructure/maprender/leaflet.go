package maprender

import (
	"context"
	"encoding/json"
	"fmt"
	"html"

	"go.uber.org/zap"

	"campusnav-backend/application/ports"
)

// leafletPage is the rendered HTML shell. Marker and route data are injected
// as JSON, which json.Marshal has already HTML-escaped.
const leafletPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>%s</title>
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  <style>
    body { margin: 0; }
    #map { width: 100vw; height: 100vh; }
  </style>
</head>
<body>
  <div id="map"></div>
  <script>
    const markers = %s;
    const route = %s;

    const map = L.map('map').setView(%s, %d);

    L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
      maxZoom: 19,
      attribution: '&copy; OpenStreetMap contributors'
    }).addTo(map);

    for (const m of markers) {
      L.marker([m.lat, m.lon]).addTo(map).bindPopup(m.name).bindTooltip(m.name);
    }

    if (route.length > 1) {
      L.polyline(route, { color: 'red', weight: 5, opacity: 0.8 }).addTo(map);
    }
  </script>
</body>
</html>`

type leafletMarker struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// LeafletRenderer draws the route as an interactive tile map centered on the
// start of the route
type LeafletRenderer struct {
	outputDir string
	zoom      int
	logger    *zap.Logger
}

// NewLeafletRenderer creates the renderer and its output directory
func NewLeafletRenderer(outputDir string, zoom int, logger *zap.Logger) (*LeafletRenderer, error) {
	if err := ensureOutputDir(outputDir); err != nil {
		return nil, err
	}
	if zoom <= 0 {
		zoom = 18
	}
	return &LeafletRenderer{outputDir: outputDir, zoom: zoom, logger: logger}, nil
}

// Format names the artifact format
func (r *LeafletRenderer) Format() string {
	return "leaflet"
}

// Render writes the HTML map artifact for the route
func (r *LeafletRenderer) Render(ctx context.Context, routeMap ports.RouteMap) (*ports.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(routeMap.Route.Path) == 0 {
		return nil, fmt.Errorf("cannot render an empty route")
	}

	markers := make([]leafletMarker, 0, routeMap.Campus.LocationCount())
	for _, location := range routeMap.Campus.Locations() {
		markers = append(markers, leafletMarker{
			Name: location.Name(),
			Lat:  location.Coordinate().Latitude(),
			Lon:  location.Coordinate().Longitude(),
		})
	}

	line := make([][2]float64, 0, len(routeMap.Route.Path))
	for _, key := range routeMap.Route.Path {
		location, ok := routeMap.Campus.Location(key)
		if !ok {
			return nil, fmt.Errorf("route references unknown location %s", key.String())
		}
		line = append(line, [2]float64{
			location.Coordinate().Latitude(),
			location.Coordinate().Longitude(),
		})
	}

	markersJSON, err := json.Marshal(markers)
	if err != nil {
		return nil, fmt.Errorf("marshal markers: %w", err)
	}
	lineJSON, err := json.Marshal(line)
	if err != nil {
		return nil, fmt.Errorf("marshal route line: %w", err)
	}
	centerJSON, err := json.Marshal(line[0])
	if err != nil {
		return nil, fmt.Errorf("marshal center: %w", err)
	}

	page := fmt.Sprintf(leafletPage,
		html.EscapeString(routeMap.Campus.Name()),
		markersJSON,
		lineJSON,
		centerJSON,
		r.zoom,
	)

	artifact, err := writeArtifact(r.outputDir, r.Format(), "html", "text/html; charset=utf-8", []byte(page))
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Leaflet map rendered",
		zap.String("path", artifact.Path),
		zap.Int("markers", len(markers)),
		zap.Int("route_points", len(line)))

	return artifact, nil
}
