package tier

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
		expected  Table
	}{
		{
			name:  "Default table parses",
			input: "500:5,1000:12,2500:30",
			expected: Table{
				{Points: 500, Amount: decimal.NewFromInt(5)},
				{Points: 1000, Amount: decimal.NewFromInt(12)},
				{Points: 2500, Amount: decimal.NewFromInt(30)},
			},
		},
		{
			name:  "Whitespace is tolerated",
			input: " 500:5, 1000:12 ",
			expected: Table{
				{Points: 500, Amount: decimal.NewFromInt(5)},
				{Points: 1000, Amount: decimal.NewFromInt(12)},
			},
		},
		{
			name:      "Empty table",
			input:     "",
			expectErr: true,
		},
		{
			name:      "Missing separator",
			input:     "500",
			expectErr: true,
		},
		{
			name:      "Non-numeric points",
			input:     "abc:5",
			expectErr: true,
		},
		{
			name:      "Non-numeric amount",
			input:     "500:abc",
			expectErr: true,
		},
		{
			name:      "Points not increasing",
			input:     "500:5,500:12",
			expectErr: true,
		},
		{
			name:      "Amount not increasing",
			input:     "500:5,1000:5",
			expectErr: true,
		},
		{
			name:      "Negative points",
			input:     "-500:5",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, len(tt.expected), len(table))
			for i := range tt.expected {
				assert.Equal(t, tt.expected[i].Points, table[i].Points)
				assert.True(t, tt.expected[i].Amount.Equal(table[i].Amount))
			}
		})
	}
}

func TestAmount(t *testing.T) {
	table, err := Parse("500:5,1000:12,2500:30")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		points   int64
		expected string
		found    bool
	}{
		{name: "First tier", points: 500, expected: "5", found: true},
		{name: "Middle tier", points: 1000, expected: "12", found: true},
		{name: "Last tier", points: 2500, expected: "30", found: true},
		{name: "Between tiers", points: 750, found: false},
		{name: "Zero", points: 0, found: false},
		{name: "Above all tiers", points: 5000, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, found := table.Amount(tt.points)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.True(t, decimal.RequireFromString(tt.expected).Equal(amount))
			}
		})
	}
}

func TestBadges(t *testing.T) {
	table, err := Parse("500:5,1000:12,2500:30")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		balance  int64
		expected []string
	}{
		{name: "Nothing unlocked", balance: 499, expected: []string{}},
		{name: "Exactly at first threshold", balance: 500, expected: []string{"tier-500"}},
		{name: "Two unlocked", balance: 1200, expected: []string{"tier-500", "tier-1000"}},
		{name: "All unlocked", balance: 2500, expected: []string{"tier-500", "tier-1000", "tier-2500"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, table.Badges(tt.balance))
		})
	}
}

func TestMilestones(t *testing.T) {
	assert.Equal(t, int64(500), NextMilestone(1))
	assert.Equal(t, int64(500), NextMilestone(500))
	assert.Equal(t, int64(1000), NextMilestone(501))
	assert.Equal(t, int64(0), NextMilestone(0))

	assert.Equal(t, float64(0), MilestoneProgress(500))
	assert.Equal(t, float64(50), MilestoneProgress(250))
}
