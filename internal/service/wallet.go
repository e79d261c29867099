package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ticketforge/ticketforge/internal/apperror"
	"github.com/ticketforge/ticketforge/internal/domain"
	"github.com/ticketforge/ticketforge/internal/payment"
)

var weiPerEth = decimal.New(1, 18)

type WalletUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	Deposit(ctx context.Context, userID uint, amount decimal.Decimal, reference string) error
}

type WalletService struct {
	repo        WalletUserRepository
	gateway     payment.Gateway
	centsPerEth int64
}

func NewWalletService(repo WalletUserRepository, gateway payment.Gateway, centsPerEth int64) *WalletService {
	return &WalletService{
		repo:        repo,
		gateway:     gateway,
		centsPerEth: centsPerEth,
	}
}

// Deposit charges the user's card for the fiat equivalent of amountWei and
// credits the wallet. The card charge happens first; the wallet credit and
// its ledger entry commit together afterwards.
func (s *WalletService) Deposit(ctx context.Context, userID uint, amountWei decimal.Decimal, paymentMethodID string) (domain.User, error) {
	if !amountWei.IsPositive() || !amountWei.IsInteger() {
		return domain.User{}, apperror.Validation("deposit amount must be a positive integer wei value")
	}

	// Integer QuoRem keeps the division exact; any wei remainder rounds
	// the charge up so the card is never undercharged.
	cents, remainder := amountWei.Mul(decimal.NewFromInt(s.centsPerEth)).QuoRem(weiPerEth, 0)
	if !remainder.IsZero() {
		cents = cents.Add(decimal.NewFromInt(1))
	}
	if !cents.IsPositive() {
		return domain.User{}, apperror.Validation("deposit amount too small to charge")
	}

	reference, err := s.gateway.Charge(ctx, cents.IntPart(), paymentMethodID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.gateway.Charge -> %w", err)
	}

	if err := s.repo.Deposit(ctx, userID, amountWei, reference); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Deposit -> %w", err)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}
