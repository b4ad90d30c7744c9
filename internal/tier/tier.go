package tier

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MilestoneStep is the point interval between reward milestones shown to the user.
const MilestoneStep = 500

type Tier struct {
	Points int64
	Amount decimal.Decimal
}

// Table is the ordered list of published redemption options. Redemption is
// exact-match only: there are no partial or interpolated amounts.
type Table []Tier

// Parse builds a table from its config form, e.g. "500:5,1000:12,2500:30".
func Parse(s string) (Table, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("tier table is empty")
	}
	var table Table
	for _, part := range strings.Split(s, ",") {
		points, amount, found := strings.Cut(strings.TrimSpace(part), ":")
		if !found {
			return nil, fmt.Errorf("invalid tier %q: want points:amount", part)
		}
		p, err := strconv.ParseInt(points, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tier points %q: %w", points, err)
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid tier amount %q: %w", amount, err)
		}
		table = append(table, Tier{Points: p, Amount: a})
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks that the table is non-empty and strictly increasing on both
// points and amount.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("tier table is empty")
	}
	for i, tier := range t {
		if tier.Points <= 0 {
			return fmt.Errorf("tier %d: points must be positive, got %d", i, tier.Points)
		}
		if !tier.Amount.IsPositive() {
			return fmt.Errorf("tier %d: amount must be positive, got %s", i, tier.Amount)
		}
		if i == 0 {
			continue
		}
		if tier.Points <= t[i-1].Points {
			return fmt.Errorf("tier %d: points %d not increasing after %d", i, tier.Points, t[i-1].Points)
		}
		if tier.Amount.Cmp(t[i-1].Amount) <= 0 {
			return fmt.Errorf("tier %d: amount %s not increasing after %s", i, tier.Amount, t[i-1].Amount)
		}
	}
	return nil
}

// Amount returns the payout for an exactly matching tier.
func (t Table) Amount(points int64) (decimal.Decimal, bool) {
	for _, tier := range t {
		if tier.Points == points {
			return tier.Amount, true
		}
	}
	return decimal.Decimal{}, false
}

// MinPoints returns the smallest redeemable tier.
func (t Table) MinPoints() int64 {
	if len(t) == 0 {
		return 0
	}
	return t[0].Points
}

// Badges derives the unlocked badge identifiers for a balance. Badges are
// never stored: they are recomputed from the balance on every read.
func (t Table) Badges(balance int64) []string {
	badges := make([]string, 0, len(t))
	for _, tier := range t {
		if balance >= tier.Points {
			badges = append(badges, fmt.Sprintf("tier-%d", tier.Points))
		}
	}
	return badges
}

// NextMilestone returns the nearest milestone at or above the balance.
func NextMilestone(balance int64) int64 {
	return (balance + MilestoneStep - 1) / MilestoneStep * MilestoneStep
}

// MilestoneProgress returns progress toward the next milestone in percent.
func MilestoneProgress(balance int64) float64 {
	return float64(balance%MilestoneStep) / MilestoneStep * 100
}
