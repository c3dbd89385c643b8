package verification

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("amount must be greater than zero")

var hundred = decimal.NewFromInt(100)

// PayoutSplit is how a job payment is divided between the contractor and the platform.
type PayoutSplit struct {
	Amount           decimal.Decimal `json:"amount"`
	PlatformFee      decimal.Decimal `json:"platform_fee"`
	ContractorPayout decimal.Decimal `json:"contractor_payout"`
	PayoutRate       float64         `json:"payout_rate"`
	Tier             Tier            `json:"tier"`
}

// Split divides amount (in currency units) according to the tier's payout
// rate. Work happens in whole cents: the platform fee is rounded and the
// contractor receives the remainder, so the two always add up to the
// charged amount.
func Split(amount decimal.Decimal, tier Tier) (PayoutSplit, error) {
	if !amount.IsPositive() {
		return PayoutSplit{}, ErrInvalidAmount
	}

	if !tier.Valid() {
		tier = TierBronze
	}
	rate := PayoutRate(tier)

	amountCents := amount.Mul(hundred).Round(0)
	feeShare := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(rate))
	feeCents := amountCents.Mul(feeShare).Round(0)
	payoutCents := amountCents.Sub(feeCents)

	return PayoutSplit{
		Amount:           amountCents.Div(hundred),
		PlatformFee:      feeCents.Div(hundred),
		ContractorPayout: payoutCents.Div(hundred),
		PayoutRate:       rate,
		Tier:             tier,
	}, nil
}
