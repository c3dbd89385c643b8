package handler

import (
	"net/http"

	"github.com/cradoe/treelance/internal/errHandler"
	"github.com/cradoe/treelance/internal/response"
	"github.com/cradoe/treelance/internal/verification"
)

type TierResponseData struct {
	Tier         verification.Tier         `json:"tier"`
	Rank         int                       `json:"rank"`
	Requirements verification.Requirements `json:"requirements"`
	Benefits     []string                  `json:"benefits"`
	PayoutRate   float64                   `json:"payout_rate"`
}

type TiersResponseData struct {
	Tiers        map[verification.Tier][]string                  `json:"tiers"`
	PayoutRates  map[verification.Tier]float64                   `json:"payout_rates"`
	Requirements map[verification.Tier]verification.Requirements `json:"requirements"`
}

type TierHandler struct {
	ErrHandler *errHandler.ErrorRepository
}

func NewTierHandler(handler *TierHandler) *TierHandler {
	return &TierHandler{
		ErrHandler: handler.ErrHandler,
	}
}

func (h *TierHandler) HandleTiers(w http.ResponseWriter, r *http.Request) {
	data := TiersResponseData{
		Tiers:        verification.AllTierBenefits(),
		PayoutRates:  verification.AllPayoutRates(),
		Requirements: verification.AllTierRequirements(),
	}

	message := "Data retrieved successfully"
	err := response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *TierHandler) HandleSingleTier(w http.ResponseWriter, r *http.Request) {
	tier, err := verification.ParseTier(r.PathValue("tier"))
	if err != nil {
		h.ErrHandler.NotFound(w, r)
		return
	}

	requirements, _ := verification.TierRequirements(tier)

	data := TierResponseData{
		Tier:         tier,
		Rank:         tier.Rank(),
		Requirements: requirements,
		Benefits:     verification.TierBenefits(tier),
		PayoutRate:   verification.PayoutRate(tier),
	}

	message := "Data retrieved successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
