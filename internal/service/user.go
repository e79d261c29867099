package service

import (
	"context"
	"fmt"

	"github.com/ticketforge/ticketforge/internal/domain"
	"github.com/ticketforge/ticketforge/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindLedgerEntries(ctx context.Context, userID uint, limit int) ([]domain.LedgerEntry, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetLedgerEntries(ctx context.Context, userID uint, limit int) ([]domain.LedgerEntry, error) {
	entries, err := s.repo.FindLedgerEntries(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindLedgerEntries -> %w", err)
	}

	return entries, nil
}
