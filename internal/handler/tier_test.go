package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTierMux(d *testDeps) *http.ServeMux {
	h := NewTierHandler(&TierHandler{ErrHandler: d.errHandler})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /contractor-tiers", h.HandleTiers)
	mux.HandleFunc("GET /contractor-tiers/{tier}", h.HandleSingleTier)
	mux.HandleFunc("/contractor-tiers", d.errHandler.MethodNotAllowed)
	return mux
}

func TestHandleTiers(t *testing.T) {
	rr, env := serve(t, newTierMux(newTestDeps()), http.MethodGet, "/contractor-tiers", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var data struct {
		Tiers       map[string][]string `json:"tiers"`
		PayoutRates map[string]float64  `json:"payout_rates"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	require.Equal(t, map[string]float64{"bronze": 0.80, "silver": 0.85, "gold": 0.90}, data.PayoutRates)
	require.Len(t, data.Tiers["gold"], 6)
}

func TestHandleSingleTier(t *testing.T) {
	rr, env := serve(t, newTierMux(newTestDeps()), http.MethodGet, "/contractor-tiers/Gold", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var data TierResponseData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "gold", data.Tier.String())
	require.Equal(t, 50, data.Requirements.MinJobs)
	require.Equal(t, 25000.0, data.Requirements.MinBond)

	rr, _ = serve(t, newTierMux(newTestDeps()), http.MethodGet, "/contractor-tiers/platinum", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleTiers_MethodNotAllowed(t *testing.T) {
	rr, env := serve(t, newTierMux(newTestDeps()), http.MethodDelete, "/contractor-tiers", nil)

	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	require.False(t, env.Success)
	require.Equal(t, "The DELETE method is not supported for this resource", env.Message)
}
