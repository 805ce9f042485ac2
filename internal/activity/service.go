package activity

import "context"

// Service handles activity business logic
type Service struct {
	repo *Repository
}

// NewService creates a new activity service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves activity entries with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Activity, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Clear removes the whole activity log
func (s *Service) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// Record writes a generic activity entry. Failures are returned to the
// caller, which typically logs and moves on rather than failing the
// operation that triggered the entry.
func (s *Service) Record(ctx context.Context, action Action, message string, entityType, entityID string) (*Activity, error) {
	var et, ei *string
	if entityType != "" {
		et = &entityType
	}
	if entityID != "" {
		ei = &entityID
	}
	return s.repo.Create(ctx, action, message, et, ei)
}

// Helper methods for recording specific event types

// RecordBillCreated records the creation of a bill
func (s *Service) RecordBillCreated(ctx context.Context, billID, restaurantName string) (*Activity, error) {
	return s.Record(ctx, ActionBillCreated, "Bill created for "+restaurantName, "BILL", billID)
}

// RecordBillUpdated records an edit to a bill
func (s *Service) RecordBillUpdated(ctx context.Context, billID, restaurantName string) (*Activity, error) {
	return s.Record(ctx, ActionBillUpdated, "Bill updated for "+restaurantName, "BILL", billID)
}

// RecordBillDeleted records a bill being moved to the recycle bin
func (s *Service) RecordBillDeleted(ctx context.Context, billID, restaurantName string) (*Activity, error) {
	return s.Record(ctx, ActionBillDeleted, "Bill for "+restaurantName+" moved to recycle bin", "BILL", billID)
}

// RecordBillRestored records a bill being restored from the recycle bin
func (s *Service) RecordBillRestored(ctx context.Context, billID, restaurantName string) (*Activity, error) {
	return s.Record(ctx, ActionBillRestored, "Bill for "+restaurantName+" restored", "BILL", billID)
}

// RecordBillPurged records a bill being permanently removed
func (s *Service) RecordBillPurged(ctx context.Context, billID, restaurantName string) (*Activity, error) {
	return s.Record(ctx, ActionBillPurged, "Bill for "+restaurantName+" permanently deleted", "BILL", billID)
}
