package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ticketforge/ticketforge/internal/domain"
	"github.com/ticketforge/ticketforge/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	Deposit(ctx context.Context, userID uint, amount decimal.Decimal, reference string) error
}

type LedgerDAO interface {
	FindByUserID(ctx context.Context, userID uint, limit int) ([]dao.LedgerEntry, error)
}

type UserRepository struct {
	dao       UserDAO
	ledgerDAO LedgerDAO
}

func NewUserRepository(dao UserDAO, ledgerDAO LedgerDAO) *UserRepository {
	return &UserRepository{
		dao:       dao,
		ledgerDAO: ledgerDAO,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:    user.Email,
		Password: user.Password,
		Name:     user.Name,
		Role:     user.Role,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) Deposit(ctx context.Context, userID uint, amount decimal.Decimal, reference string) error {
	if err := r.dao.Deposit(ctx, userID, amount, reference); err != nil {
		return fmt.Errorf("r.dao.Deposit -> %w", err)
	}

	return nil
}

func (r *UserRepository) FindLedgerEntries(ctx context.Context, userID uint, limit int) ([]domain.LedgerEntry, error) {
	entries, err := r.ledgerDAO.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("r.ledgerDAO.FindByUserID -> %w", err)
	}

	out := make([]domain.LedgerEntry, len(entries))
	for i, e := range entries {
		out[i] = domain.LedgerEntry{
			ID:        e.ID,
			Reference: e.Reference,
			Kind:      domain.LedgerEntryKind(e.Kind),
			FromID:    e.FromID,
			ToID:      e.ToID,
			EventID:   e.EventID,
			TokenID:   e.TokenID,
			Amount:    e.Amount,
			CreatedAt: e.CreatedAt,
		}
	}

	return out, nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      u.Role,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
