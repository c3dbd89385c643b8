package handler

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/cradoe/treelance/internal/errHandler"
	"github.com/cradoe/treelance/internal/request"
	"github.com/cradoe/treelance/internal/response"
	"github.com/cradoe/treelance/internal/service"
	"github.com/cradoe/treelance/internal/stream"
	"github.com/cradoe/treelance/internal/validator"
	"github.com/cradoe/treelance/internal/verification"
)

const (
	maxCompletedJobs = 1_000_000

	// bond_amount is stored as NUMERIC(14,2)
	maxBondAmount = 999_999_999_999.99
)

type VerificationHandler struct {
	Service *service.VerificationService

	ErrHandler *errHandler.ErrorRepository
}

func NewVerificationHandler(handler *VerificationHandler) *VerificationHandler {
	return &VerificationHandler{
		Service:    handler.Service,
		ErrHandler: handler.ErrHandler,
	}
}

type verifyContractorRequest struct {
	ContractorID    string         `json:"contractor_id"`
	HasInsurance    bool           `json:"has_insurance"`
	InsuranceExpiry request.Date   `json:"insurance_expiry"`
	HasLicense      bool           `json:"has_license"`
	LicenseNumber   string         `json:"license_number"`
	LicenseExpiry   request.Date   `json:"license_expiry"`
	BackgroundCheck bool           `json:"background_check"`
	BondAmount      request.Number `json:"bond_amount"`
	CompletedJobs   request.Number `json:"completed_jobs"`

	Validator validator.Validator `json:"-"`
}

func (in *verifyContractorRequest) claim() verification.Claim {
	return verification.Claim{
		HasInsurance:          in.HasInsurance,
		InsuranceExpiry:       in.InsuranceExpiry.Ptr(),
		HasLicense:            in.HasLicense,
		LicenseNumber:         strings.TrimSpace(in.LicenseNumber),
		LicenseExpiry:         in.LicenseExpiry.Ptr(),
		BackgroundCheckPassed: in.BackgroundCheck,
		BondAmount:            in.BondAmount.Ptr(),
		CompletedJobs:         int(in.CompletedJobs.Value),
	}
}

type verifyContractorResponse struct {
	Verified     bool                 `json:"verified"`
	Tier         verification.Tier    `json:"tier"`
	Score        int                  `json:"score"`
	Requirements service.Requirements `json:"requirements"`
	Benefits     []string             `json:"benefits"`
	PayoutRate   float64              `json:"payout_rate"`
}

func (h *VerificationHandler) HandleVerifyContractor(w http.ResponseWriter, r *http.Request) {
	var input verifyContractorRequest

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.ContractorID = strings.TrimSpace(input.ContractorID)

	input.Validator.Check(validator.NotBlank(input.ContractorID), "Contractor ID is required")
	input.Validator.Check(input.ContractorID == "" || validator.Matches(input.ContractorID, validator.RgxContractorID), "Contractor ID may only contain letters, digits, '-' and '_'")
	input.Validator.Check(validator.MaxRunes(input.LicenseNumber, 64), "License number must not be more than 64 characters")

	if input.BondAmount.Valid {
		bond := input.BondAmount.Value
		input.Validator.Check(bond >= 0, "Bond amount must not be negative")
		input.Validator.Check(!math.IsInf(bond, 0) && !math.IsNaN(bond), "Bond amount must be a finite number")
		input.Validator.Check(bond <= maxBondAmount, fmt.Sprintf("Bond amount must not be more than %.2f", maxBondAmount))
	}

	if input.CompletedJobs.Valid {
		jobs := input.CompletedJobs.Value
		input.Validator.Check(jobs == math.Trunc(jobs), "Completed jobs must be a whole number")
		input.Validator.Check(validator.Between(jobs, 0, maxCompletedJobs), fmt.Sprintf("Completed jobs must be between 0 and %d", maxCompletedJobs))
	}

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	outcome, err := h.Service.Verify(r.Context(), input.ContractorID, input.claim(), actor(r), stream.SourceAPI)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := verifyContractorResponse{
		Verified:     outcome.Status.Verified,
		Tier:         outcome.Status.Tier,
		Score:        outcome.Status.Score,
		Requirements: outcome.Status.Requirements,
		Benefits:     outcome.Status.Benefits,
		PayoutRate:   outcome.Status.PayoutRate,
	}

	message := "Contractor verification completed"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *VerificationHandler) HandleContractorVerification(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := contractorIDFromPath(r)
	if !ok {
		h.ErrHandler.NotFound(w, r)
		return
	}

	status, err := h.Service.Status(r.Context(), contractorID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	message := "Data retrieved successfully"
	err = response.JSONOkResponse(w, status, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
