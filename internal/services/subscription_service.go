package services

import (
	"errors"

	"farmgate/internal/domain"
	"farmgate/internal/repos"
	"farmgate/internal/validate"
)

type SubscriptionService struct {
	Subs *repos.SubscriptionRepo
}

func NewSubscriptionService(subs *repos.SubscriptionRepo) *SubscriptionService {
	return &SubscriptionService{Subs: subs}
}

type SubscribeInput struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,min=10,max=20"`
}

// Subscribe registers an email for the newsletter. Re-subscribing a
// soft-deleted email reactivates it; an already-active duplicate is a
// conflict.
func (s *SubscriptionService) Subscribe(in SubscribeInput) (domain.Subscription, error) {
	if fields := validate.Payload(in); fields != nil {
		return domain.Subscription{}, &ValidationError{Fields: fields}
	}
	sub, err := s.Subs.Create(in.Email, in.Phone)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, repos.ErrDuplicate) {
		return domain.Subscription{}, err
	}
	existing, lookupErr := s.Subs.ByEmail(in.Email)
	if lookupErr != nil {
		return domain.Subscription{}, err
	}
	if existing.Active {
		return domain.Subscription{}, repos.ErrDuplicate
	}
	return s.Subs.Reactivate(in.Email, in.Phone)
}

// Unsubscribe is a soft delete: the row stays, active flips off.
func (s *SubscriptionService) Unsubscribe(email string) error {
	return s.Subs.Deactivate(email)
}

func (s *SubscriptionService) ListActive() ([]domain.Subscription, error) {
	return s.Subs.ListActive()
}
