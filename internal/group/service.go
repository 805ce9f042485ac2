package group

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/daem0n707/Payman/internal/person"
)

// Common errors
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrNameRequired  = errors.New("group name is required")
	ErrUnknownMember = errors.New("group member does not exist")
)

// Service handles group business logic
type Service struct {
	repo       *Repository
	personRepo *person.Repository
}

// NewService creates a new group service with dependencies injected
func NewService(repo *Repository, personRepo *person.Repository) *Service {
	return &Service{repo: repo, personRepo: personRepo}
}

// Create creates a new group after verifying its members exist
func (s *Service) Create(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if err := s.checkMembers(ctx, req.MemberIDs); err != nil {
		return nil, err
	}

	group := &Group{
		ID:        uuid.NewString(),
		Name:      name,
		MemberIDs: req.MemberIDs,
	}
	return s.repo.Create(ctx, group)
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// List retrieves all groups
func (s *Service) List(ctx context.Context) ([]*Group, error) {
	return s.repo.List(ctx)
}

// Update renames a group and optionally replaces its member list
func (s *Service) Update(ctx context.Context, id string, req *UpdateGroupRequest) (*Group, error) {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		group.Name = name
	}

	replaceMembers := req.MemberIDs != nil
	if replaceMembers {
		if err := s.checkMembers(ctx, req.MemberIDs); err != nil {
			return nil, err
		}
		group.MemberIDs = req.MemberIDs
	}

	updated, err := s.repo.Update(ctx, group, replaceMembers)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrGroupNotFound
	}
	return updated, nil
}

// Delete removes a group. Bills keep their participant lists; a group is
// only a preset, never a live reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGroupNotFound
	}
	return nil
}

func (s *Service) checkMembers(ctx context.Context, memberIDs []string) error {
	if len(memberIDs) == 0 {
		return nil
	}

	people, err := s.personRepo.GetByIDs(ctx, memberIDs)
	if err != nil {
		return err
	}
	for _, id := range memberIDs {
		if _, ok := people[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMember, id)
		}
	}
	return nil
}
