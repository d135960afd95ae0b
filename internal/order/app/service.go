package app

import (
	"context"
	"errors"
	"strings"

	"github.com/oleeahmmed/ecommerce/internal/order/domain"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

// GetByNumber returns the order for a confirmation page. Guest orders
// (empty requester) are only visible through their order number; a user's
// orders are only visible to that user.
func (s *Service) GetByNumber(ctx context.Context, orderNumber, requesterUserID string) (domain.Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return domain.Order{}, ErrInvalidInput
	}
	o, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return domain.Order{}, err
	}
	if o.UserID != requesterUserID {
		return domain.Order{}, ErrNotFound
	}
	return o, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// UpdateStatus is the administrative status transition path.
func (s *Service) UpdateStatus(ctx context.Context, orderNumber, status string) error {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return ErrInvalidInput
	}
	return s.repo.UpdateStatus(ctx, orderNumber, st)
}
