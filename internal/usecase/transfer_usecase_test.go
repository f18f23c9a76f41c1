package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iho/ubiledger/internal/domain"
	"github.com/iho/ubiledger/internal/usecase"
	"github.com/iho/ubiledger/internal/usecase/mocks"
)

type transferFixture struct {
	balances   *mocks.MockBalanceRepository
	stats      *mocks.MockStatsRepository
	outbox     *mocks.MockOutboxRepository
	clock      *mocks.FixedClock
	authorizer *mocks.MockAuthorizer
	uc         *usecase.TransferUseCase
}

func newTransferFixture(t *testing.T, day int64, authorized ...string) *transferFixture {
	t.Helper()

	f := &transferFixture{
		balances:   mocks.NewMockBalanceRepository(),
		stats:      mocks.NewMockStatsRepository(),
		outbox:     mocks.NewMockOutboxRepository(),
		clock:      mocks.NewFixedClock(day),
		authorizer: mocks.NewMockAuthorizer(authorized...),
	}

	f.stats.Seed(&domain.TokenStats{
		Symbol:    "XDL",
		MaxSupply: 1_000_000_000 * domain.PrecisionMultiplier,
		Issuer:    "issuer",
	})

	policy := usecase.DefaultUBIPolicy()
	engine := usecase.NewIncomeEngine(
		f.balances, f.stats, mocks.NewMockShareRepository(), f.outbox,
		f.clock, nil, mocks.NewMockIDGenerator(), policy,
	)

	f.uc = usecase.NewTransferUseCase(
		mocks.NewMockTxManager(), f.balances, f.stats, f.outbox, engine,
		f.authorizer, mocks.NewMockIDGenerator(), nil, policy,
	)

	return f
}

func (f *transferFixture) seed(account string, amount, lastClaimDay int64) {
	f.balances.Seed(&domain.Balance{
		Account: account, Symbol: "XDL", Amount: amount, LastClaimDay: lastClaimDay,
	})

	st, _ := f.stats.Get(context.Background(), "XDL")
	st.Supply += amount
	f.stats.Seed(st)
}

func xdl(amount int64) domain.Asset {
	return domain.Asset{Amount: amount, Symbol: "XDL"}
}

func TestTransferUseCase_Transfer(t *testing.T) {
	ctx := context.Background()

	f := newTransferFixture(t, 100)
	f.seed("alice", 50000, 100)
	f.seed("bob", 0, 100)

	if err := f.uc.Transfer(ctx, usecase.TransferInput{
		From: "alice", To: "bob", Quantity: xdl(20000), Memo: "rent",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := f.balances.Get(ctx, "alice", "XDL")
	b, _ := f.balances.Get(ctx, "bob", "XDL")
	if a.Amount != 30000 || b.Amount != 20000 {
		t.Errorf("balances = %d/%d, want 30000/20000", a.Amount, b.Amount)
	}

	events := f.outbox.ByType(domain.EventTypeTransferred)
	if len(events) != 1 {
		t.Fatalf("transfer events = %d, want 1", len(events))
	}
	if memo := events[0].Payload["memo"]; memo != "rent" {
		t.Errorf("memo = %v, want rent", memo)
	}
}

func TestTransferUseCase_SettlesPendingIncomeFirst(t *testing.T) {
	ctx := context.Background()

	// Alice holds nothing but has three days of unclaimed income; the
	// incidental pass funds the transfer.
	f := newTransferFixture(t, 100)
	f.seed("alice", 0, 97)

	if err := f.uc.Transfer(ctx, usecase.TransferInput{
		From: "alice", To: "bob", Quantity: xdl(25000),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := f.balances.Get(ctx, "alice", "XDL")
	if a.Amount != 5000 {
		t.Errorf("alice = %d, want 5000", a.Amount)
	}
	if a.LastClaimDay != 100 {
		t.Errorf("anchor = %d, want 100", a.LastClaimDay)
	}

	b, _ := f.balances.Get(ctx, "bob", "XDL")
	if b.Amount != 25000 {
		t.Errorf("bob = %d, want 25000", b.Amount)
	}
}

func TestTransferUseCase_Overdraft(t *testing.T) {
	f := newTransferFixture(t, 100)
	f.seed("alice", 100, 100)

	err := f.uc.Transfer(context.Background(), usecase.TransferInput{
		From: "alice", To: "bob", Quantity: xdl(101),
	})
	if !errors.Is(err, domain.ErrOverdrawnBalance) {
		t.Errorf("error = %v, want ErrOverdrawnBalance", err)
	}
}

func TestTransferUseCase_Validation(t *testing.T) {
	f := newTransferFixture(t, 100)
	f.seed("alice", 50000, 100)
	ctx := context.Background()

	cases := []struct {
		name  string
		input usecase.TransferInput
		want  error
	}{
		{
			name:  "self transfer",
			input: usecase.TransferInput{From: "alice", To: "alice", Quantity: xdl(1)},
			want:  domain.ErrSelfTransfer,
		},
		{
			name:  "zero quantity",
			input: usecase.TransferInput{From: "alice", To: "bob", Quantity: xdl(0)},
			want:  domain.ErrInvalidQuantity,
		},
		{
			name:  "negative quantity",
			input: usecase.TransferInput{From: "alice", To: "bob", Quantity: xdl(-5)},
			want:  domain.ErrInvalidQuantity,
		},
		{
			name:  "bad recipient name",
			input: usecase.TransferInput{From: "alice", To: "BOB!", Quantity: xdl(1)},
			want:  domain.ErrInvalidAccount,
		},
		{
			name: "memo too long",
			input: usecase.TransferInput{
				From: "alice", To: "bob", Quantity: xdl(1),
				Memo: strings.Repeat("x", domain.MaxMemoBytes+1),
			},
			want: domain.ErrInvalidMemo,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := f.uc.Transfer(ctx, tc.input); !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestTransferUseCase_RecipientPaysOwnStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("recipient has authority", func(t *testing.T) {
		f := newTransferFixture(t, 100, "alice", "bob")
		f.seed("alice", 50000, 100)

		if err := f.uc.Transfer(ctx, usecase.TransferInput{
			From: "alice", To: "bob", Quantity: xdl(100),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		b, _ := f.balances.Get(ctx, "bob", "XDL")
		if b.CostPayer != "bob" {
			t.Errorf("cost payer = %q, want bob", b.CostPayer)
		}
	})

	t.Run("recipient absent", func(t *testing.T) {
		f := newTransferFixture(t, 100, "alice")
		f.seed("alice", 50000, 100)

		if err := f.uc.Transfer(ctx, usecase.TransferInput{
			From: "alice", To: "bob", Quantity: xdl(100),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		b, _ := f.balances.Get(ctx, "bob", "XDL")
		if b.CostPayer != "alice" {
			t.Errorf("cost payer = %q, want alice", b.CostPayer)
		}
	})
}

func TestTransferUseCase_SenderMustAuthorize(t *testing.T) {
	f := newTransferFixture(t, 100, "bob")
	f.seed("alice", 50000, 100)

	err := f.uc.Transfer(context.Background(), usecase.TransferInput{
		From: "alice", To: "bob", Quantity: xdl(100),
	})
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Errorf("error = %v, want ErrNotAuthorized", err)
	}
}
