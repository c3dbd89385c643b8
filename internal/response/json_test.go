package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONOkResponse_SnakeCasesMaps(t *testing.T) {
	rr := httptest.NewRecorder()

	err := JSONOkResponse(rr, map[string]any{
		"payoutRate": 0.85,
		"nested":     map[string]any{"minJobs": 10},
	}, "", nil)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	require.Equal(t, true, body["success"])
	require.Equal(t, "Request successful", body["message"])

	data := body["data"].(map[string]any)
	require.Equal(t, 0.85, data["payout_rate"])
	require.Equal(t, float64(10), data["nested"].(map[string]any)["min_jobs"])
}

func TestJSONErrorResponse(t *testing.T) {
	rr := httptest.NewRecorder()
	headers := http.Header{"X-Test": []string{"1"}}

	err := JSONErrorResponse(rr, []string{"bad"}, "", 0, headers)
	require.NoError(t, err)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "1", rr.Header().Get("X-Test"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
	require.Equal(t, "Request failed", body["message"])
	require.Equal(t, []any{"bad"}, body["error"])
}

func TestMetricsResponseWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	mw := NewMetricsResponseWriter(rr)

	mw.WriteHeader(http.StatusTeapot)
	n, err := mw.Write([]byte("short and stout"))
	require.NoError(t, err)

	require.Equal(t, http.StatusTeapot, mw.StatusCode)
	require.Equal(t, n, mw.BytesCount)
}
