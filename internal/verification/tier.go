package verification

import (
	"errors"
	"strings"
)

// Tier is the trust level assigned to a contractor.
type Tier string

const (
	// TierBronze is the default tier every contractor starts on. It has no requirements.
	TierBronze Tier = "bronze"

	// TierSilver requires insurance, a license and a modest job history.
	TierSilver Tier = "silver"

	// TierGold requires everything silver does plus a background check, a bond and a long job history.
	TierGold Tier = "gold"
)

var ErrUnknownTier = errors.New("unknown contractor tier")

// Tiers lists every tier from lowest to highest.
var Tiers = []Tier{TierBronze, TierSilver, TierGold}

// ParseTier validates a tier name coming from outside the process (request paths, database rows).
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrUnknownTier
	}
	return t, nil
}

func (t Tier) Valid() bool {
	switch t {
	case TierBronze, TierSilver, TierGold:
		return true
	}
	return false
}

// Rank orders tiers: bronze < silver < gold. Unknown tiers rank below bronze.
func (t Tier) Rank() int {
	for i, tier := range Tiers {
		if tier == t {
			return i
		}
	}
	return -1
}

func (t Tier) String() string {
	return string(t)
}
