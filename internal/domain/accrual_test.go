package domain_test

import (
	"errors"
	"testing"

	"github.com/iho/ubiledger/internal/domain"
)

func TestComputeAccrual(t *testing.T) {
	const plenty = int64(1 << 50)

	tests := []struct {
		name        string
		curr        int64
		today       int64
		available   int64
		wantErr     error
		wantAmount  int64
		wantLost    int64
		wantNextDay int64
	}{
		{
			name:        "first claim pays a single day",
			curr:        99, // backdated anchor for a day-100 claim
			today:       100,
			available:   plenty,
			wantAmount:  1 * domain.PrecisionMultiplier,
			wantLost:    0,
			wantNextDay: 100,
		},
		{
			name:        "daily claimer gets one day",
			curr:        41,
			today:       42,
			available:   plenty,
			wantAmount:  1 * domain.PrecisionMultiplier,
			wantNextDay: 42,
		},
		{
			name:        "back-pay inside the ceiling",
			curr:        90,
			today:       100,
			available:   plenty,
			wantAmount:  10 * domain.PrecisionMultiplier,
			wantNextDay: 100,
		},
		{
			name:        "back-pay beyond the ceiling forfeits days",
			curr:        10,
			today:       400,
			available:   plenty,
			wantAmount:  361 * domain.PrecisionMultiplier,
			wantLost:    29,
			wantNextDay: 400, // 10 + 29 + 361
		},
		{
			name:      "already claimed today",
			curr:      100,
			today:     100,
			available: plenty,
			wantErr:   domain.ErrNothingToClaim,
		},
		{
			name:      "anchor in the future",
			curr:      105,
			today:     100,
			available: plenty,
			wantErr:   domain.ErrNothingToClaim,
		},
		{
			name:        "supply ceiling clamps the payout",
			curr:        90,
			today:       100,
			available:   3 * domain.PrecisionMultiplier,
			wantAmount:  3 * domain.PrecisionMultiplier,
			wantNextDay: 93, // anchor trails today, remainder stays claimable
		},
		{
			name:        "supply exhausted pays nothing",
			curr:        99,
			today:       100,
			available:   0,
			wantAmount:  0,
			wantNextDay: 99,
		},
		{
			name:        "partial day clamp advances by whole days only",
			curr:        98,
			today:       100,
			available:   domain.PrecisionMultiplier + domain.PrecisionMultiplier/2,
			wantAmount:  domain.PrecisionMultiplier + domain.PrecisionMultiplier/2,
			wantNextDay: 99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := domain.ComputeAccrual(tt.curr, tt.today, domain.MaxPastClaimDays, tt.available)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Amount != tt.wantAmount {
				t.Errorf("amount = %d, want %d", res.Amount, tt.wantAmount)
			}
			if res.LostDays != tt.wantLost {
				t.Errorf("lost days = %d, want %d", res.LostDays, tt.wantLost)
			}
			if res.NextClaimDay != tt.wantNextDay {
				t.Errorf("next claim day = %d, want %d", res.NextClaimDay, tt.wantNextDay)
			}
		})
	}
}

func TestBonusPolicies(t *testing.T) {
	const today = int64(18600)

	tests := []struct {
		name   string
		policy domain.BonusPolicy
		want   int64
	}{
		{"no bonus means yesterday", domain.NoBonus{}, today - 1},
		{
			"signup window grants remaining days",
			domain.SignupWindowBonus{LastRewardDay: 18628, MaxDays: domain.MaxPastClaimDays},
			today - 1 - 29, // 18628 - 18600 + 1 days of bonus
		},
		{
			"signup window caps the bonus",
			domain.SignupWindowBonus{LastRewardDay: today + 1000, MaxDays: domain.MaxPastClaimDays},
			today - 1 - domain.MaxPastClaimDays,
		},
		{
			"signup window expired acts like no bonus",
			domain.SignupWindowBonus{LastRewardDay: today - 1, MaxDays: domain.MaxPastClaimDays},
			today - 1,
		},
		{"flat bonus backdates a fixed count", domain.FlatBonus{Days: 30}, today - 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.Backdate(today); got != tt.want {
				t.Errorf("Backdate(%d) = %d, want %d", today, got, tt.want)
			}
		})
	}
}
