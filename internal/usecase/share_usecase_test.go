package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/ubiledger/internal/domain"
	"github.com/iho/ubiledger/internal/usecase"
	"github.com/iho/ubiledger/internal/usecase/mocks"
)

func newShareUseCase(shares *mocks.MockShareRepository) *usecase.ShareUseCase {
	return usecase.NewShareUseCase(mocks.NewMockTxManager(), shares, mocks.NewMockAuthorizer())
}

func TestShareUseCase_SetShare(t *testing.T) {
	ctx := context.Background()
	shares := mocks.NewMockShareRepository()
	uc := newShareUseCase(shares)

	if err := uc.SetShare(ctx, "alice", "bob", 40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.SetShare(ctx, "alice", "carol", 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := uc.ListShares(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Beneficiary != "bob" || entries[1].Beneficiary != "carol" {
		t.Errorf("registration order broken: %s, %s", entries[0].Beneficiary, entries[1].Beneficiary)
	}
}

func TestShareUseCase_OverfullRegistryRefused(t *testing.T) {
	ctx := context.Background()
	shares := mocks.NewMockShareRepository()
	uc := newShareUseCase(shares)

	if err := uc.SetShare(ctx, "alice", "bob", 40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.SetShare(ctx, "alice", "carol", 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A third entry would push the total to 110; the registry must be left
	// exactly as it was.
	if err := uc.SetShare(ctx, "alice", "dave", 40); !errors.Is(err, domain.ErrShareTotalExceeded) {
		t.Fatalf("error = %v, want ErrShareTotalExceeded", err)
	}

	entries, _ := uc.ListShares(ctx, "alice")
	if got := domain.ShareTotal(entries); got != 70 {
		t.Errorf("total after refused insert = %d, want 70", got)
	}
	if len(entries) != 2 {
		t.Errorf("entries = %d, want 2", len(entries))
	}
}

func TestShareUseCase_UpdateReplacesNotAdds(t *testing.T) {
	ctx := context.Background()
	uc := newShareUseCase(mocks.NewMockShareRepository())

	if err := uc.SetShare(ctx, "alice", "bob", 60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Raising bob to 90 is fine even though 60+90 would not be: the check
	// runs on the replaced entry, not the sum of both writes.
	if err := uc.SetShare(ctx, "alice", "bob", 90); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, _ := uc.ListShares(ctx, "alice")
	if len(entries) != 1 || entries[0].Percent != 90 {
		t.Errorf("entries = %+v, want single bob@90", entries)
	}
}

func TestShareUseCase_ZeroPercentClearsEntry(t *testing.T) {
	ctx := context.Background()
	uc := newShareUseCase(mocks.NewMockShareRepository())

	if err := uc.SetShare(ctx, "alice", "bob", 40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.SetShare(ctx, "alice", "bob", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, _ := uc.ListShares(ctx, "alice")
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

func TestShareUseCase_ResetShare(t *testing.T) {
	ctx := context.Background()
	uc := newShareUseCase(mocks.NewMockShareRepository())

	for _, b := range []string{"bob", "carol", "dave"} {
		if err := uc.SetShare(ctx, "alice", b, 10); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := uc.ResetShare(ctx, "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, _ := uc.ListShares(ctx, "alice")
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

func TestShareUseCase_Validation(t *testing.T) {
	ctx := context.Background()
	uc := newShareUseCase(mocks.NewMockShareRepository())

	cases := []struct {
		name        string
		owner       string
		beneficiary string
		percent     int
		want        error
	}{
		{"self share", "alice", "alice", 10, domain.ErrSelfShare},
		{"percent above 100", "alice", "bob", 101, domain.ErrInvalidPercent},
		{"negative percent", "alice", "bob", -1, domain.ErrInvalidPercent},
		{"bad beneficiary", "alice", "BOB", 10, domain.ErrInvalidAccount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := uc.SetShare(ctx, tc.owner, tc.beneficiary, tc.percent); !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}
}
