package usecase

import (
	"context"
	"time"

	"github.com/iho/ubiledger/internal/domain"
)

// ShareUseCase mutates the per-owner share registry. The registry itself is
// the enforcement point for the 100% invariant; distribution merely degrades
// gracefully if a violating registry ever slipped through.
type ShareUseCase struct {
	txManager  TransactionManager
	shareRepo  ShareRepository
	authorizer Authorizer
}

// NewShareUseCase creates a new ShareUseCase.
func NewShareUseCase(txManager TransactionManager, shareRepo ShareRepository, authorizer Authorizer) *ShareUseCase {
	return &ShareUseCase{
		txManager:  txManager,
		shareRepo:  shareRepo,
		authorizer: authorizer,
	}
}

// SetShare inserts, updates, or (percent == 0) clears one registry entry.
// The write is staged inside the transaction and validated against the
// resulting percent total; a total above 100 rolls the whole mutation back.
func (uc *ShareUseCase) SetShare(ctx context.Context, owner, beneficiary string, percent int) error {
	if err := domain.ValidateAccount(owner); err != nil {
		return err
	}

	if err := domain.ValidateAccount(beneficiary); err != nil {
		return err
	}

	if err := domain.ValidatePercent(percent); err != nil {
		return err
	}

	if owner == beneficiary {
		return domain.ErrSelfShare
	}

	if err := uc.authorizer.RequireAuthorized(ctx, owner); err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// The invariant check runs against the prospective registry while the
	// rows are locked, so a violating mutation is refused without ever
	// becoming visible.
	entries, err := uc.shareRepo.ListByOwnerForUpdate(ctx, tx, owner)
	if err != nil {
		return err
	}

	staged := stageEntry(entries, beneficiary, uint8(percent))
	if err := domain.ValidateShareTotal(staged); err != nil {
		return err
	}

	if percent == 0 {
		if err := uc.shareRepo.Delete(ctx, tx, owner, beneficiary); err != nil {
			return err
		}
	} else {
		now := time.Now().UTC()
		err := uc.shareRepo.Upsert(ctx, tx, &domain.ShareEntry{
			Owner:       owner,
			Beneficiary: beneficiary,
			Percent:     uint8(percent),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ResetShare deletes all of the owner's registry entries.
func (uc *ShareUseCase) ResetShare(ctx context.Context, owner string) error {
	if err := domain.ValidateAccount(owner); err != nil {
		return err
	}

	if err := uc.authorizer.RequireAuthorized(ctx, owner); err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.shareRepo.DeleteAll(ctx, tx, owner); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// stageEntry applies a set/clear to a copy of the registry.
func stageEntry(entries []domain.ShareEntry, beneficiary string, percent uint8) []domain.ShareEntry {
	staged := make([]domain.ShareEntry, 0, len(entries)+1)

	found := false
	for _, e := range entries {
		if e.Beneficiary == beneficiary {
			found = true
			if percent == 0 {
				continue
			}
			e.Percent = percent
		}
		staged = append(staged, e)
	}

	if !found && percent > 0 {
		staged = append(staged, domain.ShareEntry{Beneficiary: beneficiary, Percent: percent})
	}

	return staged
}

// ListShares returns the owner's registry in registration order.
func (uc *ShareUseCase) ListShares(ctx context.Context, owner string) ([]domain.ShareEntry, error) {
	if err := domain.ValidateAccount(owner); err != nil {
		return nil, err
	}

	return uc.shareRepo.ListByOwner(ctx, owner)
}
