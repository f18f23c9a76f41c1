package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/ubiledger/internal/adapter/http/dto"
	"github.com/iho/ubiledger/internal/domain"
	"github.com/iho/ubiledger/internal/usecase"
)

func TestCreateTokenRequestToUseCaseInput(t *testing.T) {
	req := &dto.CreateTokenRequest{
		Issuer:    "issuer",
		MaxSupply: "1000000000.0000",
		Symbol:    "XDL",
	}

	input, err := req.ToUseCaseInput()
	require.NoError(t, err)

	assert.Equal(t, "issuer", input.Issuer)
	assert.Equal(t, int64(1_000_000_000*domain.PrecisionMultiplier), input.MaxSupply.Amount)
	assert.Equal(t, "XDL", input.MaxSupply.Symbol)
}

func TestCreateTokenRequestRejectsBadAmount(t *testing.T) {
	req := &dto.CreateTokenRequest{Issuer: "issuer", MaxSupply: "lots", Symbol: "XDL"}

	_, err := req.ToUseCaseInput()
	assert.Error(t, err)
}

func TestTransferRequestCarriesSymbolFromRoute(t *testing.T) {
	req := &dto.CreateTransferRequest{
		From:     "alice",
		To:       "bob",
		Quantity: "2.5000",
		Memo:     "rent",
	}

	input, err := req.ToUseCaseInput("XDL")
	require.NoError(t, err)

	assert.Equal(t, int64(25000), input.Quantity.Amount)
	assert.Equal(t, "XDL", input.Quantity.Symbol)
	assert.Equal(t, "rent", input.Memo)
}

func TestClaimFromResult(t *testing.T) {
	res := &usecase.ClaimResult{
		Owner:     "alice",
		Quantity:  domain.Asset{Amount: 3 * domain.PrecisionMultiplier, Symbol: "XDL"},
		NextClaim: "2026-09-01",
		LostDays:  2,
	}

	resp := dto.ClaimFromResult("alice", res)

	assert.True(t, resp.Claimed)
	assert.Equal(t, "3.0000 XDL", resp.Quantity)
	assert.Equal(t, "2026-09-01", resp.NextClaim)
	assert.Equal(t, int64(2), resp.LostDays)
}

func TestClaimFromResultNilMeansUnclaimed(t *testing.T) {
	resp := dto.ClaimFromResult("alice", nil)

	assert.False(t, resp.Claimed)
	assert.Equal(t, "alice", resp.Owner)
	assert.Empty(t, resp.Quantity)
}

func TestSharesFromDomainPreservesOrder(t *testing.T) {
	entries := []domain.ShareEntry{
		{Beneficiary: "bob", Percent: 60, Position: 0},
		{Beneficiary: "carol", Percent: 40, Position: 1},
	}

	resp := dto.SharesFromDomain(entries)

	require.Len(t, resp, 2)
	assert.Equal(t, "bob", resp[0].Beneficiary)
	assert.Equal(t, uint8(60), resp[0].Percent)
	assert.Equal(t, "carol", resp[1].Beneficiary)
	assert.Equal(t, 1, resp[1].Position)
}

func TestConservationFromReport(t *testing.T) {
	now := time.Now().UTC()
	report := &usecase.ConservationReport{
		Symbol:       "XDL",
		Supply:       30000,
		BalanceTotal: 30000,
		Burned:       50,
		Consistent:   true,
		CheckedAt:    now,
	}

	resp := dto.ConservationFromReport(report)

	assert.Equal(t, "3.0000 XDL", resp.Supply)
	assert.Equal(t, "3.0000 XDL", resp.BalanceTotal)
	assert.Equal(t, "0.0050 XDL", resp.Burned)
	assert.True(t, resp.Consistent)
	assert.Equal(t, now, resp.CheckedAt)
}
