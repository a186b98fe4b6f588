package app

import (
	"net/http"
	"testing"

	"github.com/cinexhq/booking-engine/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHealth(t *testing.T) {
	app, _ := newTestApplication()

	rr := executeRequest(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeResponse[api.HealthcheckResponse](t, rr)
	assert.Equal(t, "UP", resp.Status)
	assert.Equal(t, "test", resp.SystemInfo.Environment)
}

func TestUnknownRouteReturnsJSONError(t *testing.T) {
	app, _ := newTestApplication()

	rr := executeRequest(t, app, http.MethodGet, "/nope", nil)

	checkErrorResponse(t, rr, http.StatusNotFound)
}
