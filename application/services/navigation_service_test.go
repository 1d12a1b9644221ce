package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campusnav-backend/domain/core/aggregates"
	domainservices "campusnav-backend/domain/services"
	pkgerrors "campusnav-backend/pkg/errors"
	"campusnav-backend/pkg/observability"
)

// mockDispatcher records side-effect dispatches without doing any work.
type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, route domainservices.Route, narrate bool) {
	m.Called(ctx, route, narrate)
}

func testCampus(t *testing.T) *aggregates.Campus {
	t.Helper()
	campus, err := aggregates.NewCampus("test campus", []aggregates.LocationDefinition{
		{Key: "gate", Latitude: 30.2730, Longitude: 78.9940, Neighbors: []string{"quad", "library"}},
		{Key: "quad", Latitude: 30.2732, Longitude: 78.9942, Neighbors: []string{"gate"}},
		{Key: "library", Latitude: 30.2734, Longitude: 78.9944, Neighbors: []string{"gate", "stadium"}},
		{Key: "stadium", Latitude: 30.2736, Longitude: 78.9946, Neighbors: []string{"library"}},
		{Key: "water tower", Latitude: 30.2738, Longitude: 78.9948},
	})
	require.NoError(t, err)
	return campus
}

func newTestService(t *testing.T) (*NavigationService, *mockDispatcher) {
	t.Helper()

	observability.ResetForTesting()
	dispatcher := new(mockDispatcher)

	service := NewNavigationService(
		testCampus(t),
		domainservices.NewBFSPathFinder(),
		domainservices.NewRouteNarrator(80, 80),
		dispatcher,
		observability.NewCollector("test"),
		zap.NewNop(),
	)
	return service, dispatcher
}

func routePath(route domainservices.Route) []string {
	out := make([]string, len(route.Path))
	for i, k := range route.Path {
		out[i] = k.String()
	}
	return out
}

func TestNavigate_Success(t *testing.T) {
	// Arrange
	service, dispatcher := newTestService(t)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything, true).Return()

	// Act
	result, err := service.Navigate(context.Background(), NavigationRequest{
		Start:   "gate",
		End:     "stadium",
		Narrate: true,
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, []string{"gate", "library", "stadium"}, routePath(result.Route))
	assert.Equal(t, 160.0, result.Route.DistanceMeters)
	assert.Equal(t, 2, result.Route.DurationMinutes)
	assert.Len(t, result.Route.Instructions, 3)
	assert.Equal(t, "gate", result.Start.Key().String())
	assert.Equal(t, "stadium", result.End.Key().String())

	dispatcher.AssertExpectations(t)
	dispatcher.AssertNumberOfCalls(t, "Dispatch", 1)
}

func TestNavigate_NormalizesRawInput(t *testing.T) {
	// Arrange
	service, dispatcher := newTestService(t)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything, false).Return()

	// Act
	result, err := service.Navigate(context.Background(), NavigationRequest{
		Start: "  GATE ",
		End:   "Stadium",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"gate", "library", "stadium"}, routePath(result.Route))
}

func TestNavigate_StartEqualsEnd(t *testing.T) {
	// Arrange
	service, dispatcher := newTestService(t)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything, false).Return()

	// Act
	result, err := service.Navigate(context.Background(), NavigationRequest{
		Start: "library",
		End:   " Library ",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"library"}, routePath(result.Route))
	assert.Equal(t, []string{"You are already at Library."}, result.Route.Instructions)
	assert.Zero(t, result.Route.DistanceMeters)
	assert.Zero(t, result.Route.DurationMinutes)
}

func TestNavigate_MissingFields(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantFields []string
	}{
		{"both blank", "", "   ", []string{"start", "end"}},
		{"blank start", "\t", "library", []string{"start"}},
		{"blank end", "gate", "", []string{"end"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			service, dispatcher := newTestService(t)

			// Act
			result, err := service.Navigate(context.Background(), NavigationRequest{
				Start: tt.start,
				End:   tt.end,
			})

			// Assert
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, pkgerrors.IsMissingLocation(err))
			for _, field := range tt.wantFields {
				assert.Contains(t, err.Error(), field)
			}
			dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestNavigate_BlankFieldReportedBeforeUnknownKey(t *testing.T) {
	// Arrange: start is blank and end is unknown; the blank check wins.
	service, _ := newTestService(t)

	// Act
	_, err := service.Navigate(context.Background(), NavigationRequest{
		Start: "  ",
		End:   "atlantis",
	})

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsMissingLocation(err))
}

func TestNavigate_UnknownLocations(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantKeys   []string
	}{
		{"unknown start", "Atlantis", "library", []string{"atlantis"}},
		{"unknown end", "gate", "Moon Base ", []string{"moon base"}},
		{"both unknown", "Atlantis", "moon base", []string{"atlantis", "moon base"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			service, dispatcher := newTestService(t)

			// Act
			result, err := service.Navigate(context.Background(), NavigationRequest{
				Start: tt.start,
				End:   tt.end,
			})

			// Assert
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, pkgerrors.IsInvalidLocation(err))
			for _, key := range tt.wantKeys {
				assert.Contains(t, err.Error(), key)
			}
			dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestNavigate_NoPath(t *testing.T) {
	// Arrange: the water tower has no walkways.
	service, dispatcher := newTestService(t)

	// Act
	result, err := service.Navigate(context.Background(), NavigationRequest{
		Start: "gate",
		End:   "water tower",
	})

	// Assert
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, pkgerrors.IsNoPath(err))
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestNavigate_Idempotent(t *testing.T) {
	// Arrange
	service, dispatcher := newTestService(t)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything, false).Return()

	request := NavigationRequest{Start: "gate", End: "stadium"}

	// Act
	first, err := service.Navigate(context.Background(), request)
	require.NoError(t, err)
	second, err := service.Navigate(context.Background(), request)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, first.Route, second.Route)
	dispatcher.AssertNumberOfCalls(t, "Dispatch", 2)
}

func TestLocations_DefinitionOrder(t *testing.T) {
	// Arrange
	service, _ := newTestService(t)

	// Act
	locations := service.Locations()

	// Assert
	require.Equal(t, 5, service.LocationCount())
	require.Len(t, locations, 5)
	assert.Equal(t, "gate", locations[0].Key().String())
	assert.Equal(t, "water tower", locations[4].Key().String())
}

func BenchmarkNavigate(b *testing.B) {
	observability.ResetForTesting()
	campus, err := aggregates.NewCampus("bench", []aggregates.LocationDefinition{
		{Key: "gate", Latitude: 30.2730, Longitude: 78.9940, Neighbors: []string{"quad"}},
		{Key: "quad", Latitude: 30.2732, Longitude: 78.9942, Neighbors: []string{"library"}},
		{Key: "library", Latitude: 30.2734, Longitude: 78.9944, Neighbors: []string{"stadium"}},
		{Key: "stadium", Latitude: 30.2736, Longitude: 78.9946},
	})
	if err != nil {
		b.Fatal(err)
	}

	dispatcher := new(mockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything, mock.Anything).Return()

	service := NewNavigationService(
		campus,
		domainservices.NewBFSPathFinder(),
		domainservices.NewRouteNarrator(80, 80),
		dispatcher,
		observability.NewCollector("bench"),
		zap.NewNop(),
	)
	request := NavigationRequest{Start: "gate", End: "stadium"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.Navigate(context.Background(), request); err != nil {
			b.Fatal(err)
		}
	}
}
