package person

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrPersonNotFound = errors.New("person not found")
	ErrNameRequired   = errors.New("person name is required")
	ErrPersonInUse    = errors.New("person still participates in bills")
)

// Service handles person business logic
type Service struct {
	repo *Repository
}

// NewService creates a new person service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new person with a generated id
func (s *Service) Create(ctx context.Context, req *CreatePersonRequest) (*Person, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	return s.repo.Create(ctx, uuid.NewString(), name)
}

// GetByID retrieves a person by their ID
func (s *Service) GetByID(ctx context.Context, id string) (*Person, error) {
	person, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, ErrPersonNotFound
	}
	return person, nil
}

// List retrieves all people with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Person, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Update renames an existing person
func (s *Service) Update(ctx context.Context, id string, req *UpdatePersonRequest) (*Person, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, ErrNameRequired
	}

	person, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, ErrPersonNotFound
	}
	return person, nil
}

// Delete removes a person unless a bill still references them
func (s *Service) Delete(ctx context.Context, id string) error {
	references, err := s.repo.CountBillReferences(ctx, id)
	if err != nil {
		return err
	}
	if references > 0 {
		return ErrPersonInUse
	}

	return s.repo.Delete(ctx, id)
}
