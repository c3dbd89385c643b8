package handler

import (
	"net/http"
	"strings"

	"github.com/cradoe/treelance/internal/errHandler"
	"github.com/cradoe/treelance/internal/request"
	"github.com/cradoe/treelance/internal/response"
	"github.com/cradoe/treelance/internal/service"
	"github.com/cradoe/treelance/internal/validator"
	"github.com/cradoe/treelance/internal/verification"
	"github.com/shopspring/decimal"
)

var maxQuoteAmount = decimal.NewFromInt(1_000_000)

type PaymentHandler struct {
	Service *service.VerificationService

	ErrHandler *errHandler.ErrorRepository
}

func NewPaymentHandler(handler *PaymentHandler) *PaymentHandler {
	return &PaymentHandler{
		Service:    handler.Service,
		ErrHandler: handler.ErrHandler,
	}
}

type paymentQuoteResponse struct {
	ContractorID string `json:"contractor_id,omitempty"`
	verification.PayoutSplit
}

// HandlePaymentQuote splits a job payment between the platform and the
// contractor at the payout rate of the contractor's stored tier. Without a
// contractor the bronze rate applies.
func (h *PaymentHandler) HandlePaymentQuote(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Amount       decimal.NullDecimal `json:"amount"`
		ContractorID string              `json:"contractor_id"`

		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSONStrict(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.ContractorID = strings.TrimSpace(input.ContractorID)

	input.Validator.Check(input.Amount.Valid, "Amount is required")
	if input.Amount.Valid {
		input.Validator.Check(input.Amount.Decimal.IsPositive(), "Amount must be greater than zero")
		input.Validator.Check(input.Amount.Decimal.LessThanOrEqual(maxQuoteAmount), "Amount must not be more than "+maxQuoteAmount.String())
	}
	if input.ContractorID != "" {
		input.Validator.Check(validator.Matches(input.ContractorID, validator.RgxContractorID), "Contractor ID may only contain letters, digits, '-' and '_'")
	}

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	tier := verification.TierBronze
	if input.ContractorID != "" {
		status, err := h.Service.Status(r.Context(), input.ContractorID)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
			return
		}
		tier = status.Tier
	}

	split, err := verification.Split(input.Amount.Decimal, tier)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	data := paymentQuoteResponse{
		ContractorID: input.ContractorID,
		PayoutSplit:  split,
	}

	message := "Payment quote generated"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
