package services

import (
	"farmgate/internal/domain"
	"farmgate/internal/repos"
	"farmgate/internal/validate"
)

type EventService struct {
	Events *repos.EventRepo
}

func NewEventService(events *repos.EventRepo) *EventService {
	return &EventService{Events: events}
}

func (s *EventService) List(from, to string) ([]domain.FarmEvent, error) {
	if from != "" && to != "" {
		return s.Events.ListByDateRange(from, to)
	}
	return s.Events.List()
}

func (s *EventService) Get(id int64) (domain.FarmEvent, error) {
	return s.Events.Get(id)
}

func (s *EventService) Create(in repos.InsertEvent) (domain.FarmEvent, error) {
	if fields := validate.Payload(in); fields != nil {
		return domain.FarmEvent{}, &ValidationError{Fields: fields}
	}
	return s.Events.Create(in)
}

func (s *EventService) Update(id int64, in repos.InsertEvent) (domain.FarmEvent, error) {
	if fields := validate.Payload(in); fields != nil {
		return domain.FarmEvent{}, &ValidationError{Fields: fields}
	}
	return s.Events.Update(id, in)
}

func (s *EventService) Delete(id int64) error {
	return s.Events.Delete(id)
}
