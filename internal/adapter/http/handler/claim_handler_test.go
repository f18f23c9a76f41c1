package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iho/ubiledger/internal/adapter/http/dto"
	"github.com/iho/ubiledger/internal/domain"
	"github.com/iho/ubiledger/internal/usecase"
	"github.com/iho/ubiledger/internal/usecase/mocks"
)

func newTestClaimHandler(t *testing.T) *ClaimHandler {
	t.Helper()

	balances := mocks.NewMockBalanceRepository()
	stats := mocks.NewMockStatsRepository()
	stats.Seed(&domain.TokenStats{
		Symbol:    "XDL",
		MaxSupply: 1_000_000 * domain.PrecisionMultiplier,
		Issuer:    "issuer",
	})

	clock := mocks.NewFixedClock(100)
	policy := usecase.DefaultUBIPolicy()
	engine := usecase.NewIncomeEngine(
		balances, stats, mocks.NewMockShareRepository(), mocks.NewMockOutboxRepository(),
		clock, nil, mocks.NewMockIDGenerator(), policy,
	)
	uc := usecase.NewClaimUseCase(
		mocks.NewMockTxManager(), balances, stats, engine,
		mocks.NewMockAuthorizer(), clock, nil, policy,
	)

	return NewClaimHandler(uc)
}

func TestClaimHandler_Claim(t *testing.T) {
	h := newTestClaimHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims", strings.NewReader(`{"owner":"alice"}`))
	rec := httptest.NewRecorder()
	h.Claim(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ClaimResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.Claimed {
		t.Fatalf("expected a paid claim, got %+v", resp)
	}
	if resp.Quantity != "1.0000 XDL" {
		t.Fatalf("expected one day of income, got %q", resp.Quantity)
	}
}

func TestClaimHandler_ClaimSameDayReturnsUnclaimed(t *testing.T) {
	h := newTestClaimHandler(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/claims", strings.NewReader(`{"owner":"alice"}`))
		rec := httptest.NewRecorder()
		h.Claim(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}

		if i == 1 {
			var resp dto.ClaimResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Claimed {
				t.Fatalf("second same-day claim should pay nothing, got %+v", resp)
			}
		}
	}
}

func TestClaimHandler_ClaimBadBody(t *testing.T) {
	h := newTestClaimHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	h.Claim(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestClaimHandler_ClaimInvalidOwner(t *testing.T) {
	h := newTestClaimHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims", strings.NewReader(`{"owner":"NOT VALID"}`))
	rec := httptest.NewRecorder()
	h.Claim(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
