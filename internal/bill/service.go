package bill

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daem0n707/Payman/internal/activity"
	"github.com/daem0n707/Payman/internal/person"
	"github.com/daem0n707/Payman/internal/split"
)

// Common errors
var (
	ErrBillNotFound           = errors.New("bill not found")
	ErrBillNotDeleted         = errors.New("bill is not in the recycle bin")
	ErrRestaurantNameRequired = errors.New("restaurant name is required")
	ErrParticipantsRequired   = errors.New("at least one participating person is required")
	ErrPayeeNotParticipating  = errors.New("payee must be one of the participating people")
	ErrUnknownPerson          = errors.New("referenced person does not exist")
	ErrInvalidQuantity        = errors.New("item quantity must be positive")
	ErrInvalidDiscount        = errors.New("invalid discount")
	ErrUnknownPolicy          = errors.New("unknown fee policy")
)

// Service handles bill business logic
type Service struct {
	repo       *Repository
	personRepo *person.Repository
	activities *activity.Service
	factory    *split.Factory
}

// NewService creates a new bill service with dependencies injected
func NewService(repo *Repository, personRepo *person.Repository, activities *activity.Service) *Service {
	return &Service{
		repo:       repo,
		personRepo: personRepo,
		activities: activities,
		factory:    split.NewPolicyFactory(),
	}
}

// Create validates and stores a new bill
func (s *Service) Create(ctx context.Context, req *CreateBillRequest) (*Bill, error) {
	bill := &Bill{
		ID:                     uuid.NewString(),
		RestaurantName:         strings.TrimSpace(req.RestaurantName),
		SectionName:            strings.TrimSpace(req.SectionName),
		PayeeID:                req.PayeeID,
		Tax:                    req.Tax,
		ServiceCharge:          req.ServiceCharge,
		MiscFees:               req.MiscFees,
		BookingFees:            req.BookingFees,
		Discount:               normalizeDiscount(req.Discount),
		DinecashDeduction:      req.DinecashDeduction,
		CashbackApplied:        req.CashbackApplied,
		ParticipatingPersonIDs: req.ParticipatingPersonIDs,
	}

	for _, item := range req.Items {
		bill.Items = append(bill.Items, Item{
			ID:                uuid.NewString(),
			BillID:            bill.ID,
			Name:              strings.TrimSpace(item.Name),
			UnitPrice:         item.UnitPrice,
			Quantity:          item.Quantity,
			AssignedPersonIDs: item.AssignedPersonIDs,
		})
	}

	if err := s.validate(ctx, bill); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, bill)
	if err != nil {
		return nil, err
	}

	s.record(ctx, func() (*activity.Activity, error) {
		return s.activities.RecordBillCreated(ctx, created.ID, created.RestaurantName)
	})

	return created, nil
}

// GetByID retrieves a live bill by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*Bill, error) {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil || bill.DeletedAt != nil {
		return nil, ErrBillNotFound
	}
	return bill, nil
}

// List retrieves live bills, optionally filtered by section
func (s *Service) List(ctx context.Context, section string, page, perPage int) ([]*Bill, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, strings.TrimSpace(section), perPage, offset)
}

// ListDeleted retrieves the recycle bin
func (s *Service) ListDeleted(ctx context.Context) ([]*Bill, error) {
	return s.repo.ListDeleted(ctx)
}

// Update applies partial changes to a live bill. A non-nil item list
// replaces the bill's items wholesale.
func (s *Service) Update(ctx context.Context, id string, req *UpdateBillRequest) (*Bill, error) {
	bill, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RestaurantName != nil {
		bill.RestaurantName = strings.TrimSpace(*req.RestaurantName)
	}
	if req.SectionName != nil {
		bill.SectionName = strings.TrimSpace(*req.SectionName)
	}
	if req.PayeeID != nil {
		if *req.PayeeID == "" {
			bill.PayeeID = nil
		} else {
			bill.PayeeID = req.PayeeID
		}
	}
	if req.Tax != nil {
		bill.Tax = *req.Tax
	}
	if req.ServiceCharge != nil {
		bill.ServiceCharge = *req.ServiceCharge
	}
	if req.MiscFees != nil {
		bill.MiscFees = *req.MiscFees
	}
	if req.BookingFees != nil {
		bill.BookingFees = *req.BookingFees
	}
	if req.Discount != nil {
		bill.Discount = normalizeDiscount(req.Discount)
	}
	if req.DinecashDeduction != nil {
		bill.DinecashDeduction = *req.DinecashDeduction
	}
	if req.CashbackApplied != nil {
		bill.CashbackApplied = *req.CashbackApplied
	}
	if req.ParticipatingPersonIDs != nil {
		bill.ParticipatingPersonIDs = req.ParticipatingPersonIDs
	}

	replaceItems := req.Items != nil
	if replaceItems {
		bill.Items = nil
		for _, item := range req.Items {
			bill.Items = append(bill.Items, Item{
				ID:                uuid.NewString(),
				BillID:            bill.ID,
				Name:              strings.TrimSpace(item.Name),
				UnitPrice:         item.UnitPrice,
				Quantity:          item.Quantity,
				AssignedPersonIDs: item.AssignedPersonIDs,
			})
		}
	}

	if err := s.validate(ctx, bill); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, bill, replaceItems)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrBillNotFound
	}

	s.record(ctx, func() (*activity.Activity, error) {
		return s.activities.RecordBillUpdated(ctx, updated.ID, updated.RestaurantName)
	})

	return updated, nil
}

// Delete moves a bill to the recycle bin
func (s *Service) Delete(ctx context.Context, id string) error {
	bill, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBillNotFound
	}

	s.record(ctx, func() (*activity.Activity, error) {
		return s.activities.RecordBillDeleted(ctx, bill.ID, bill.RestaurantName)
	})

	return nil
}

// Restore brings a bill back from the recycle bin
func (s *Service) Restore(ctx context.Context, id string) (*Bill, error) {
	restored, err := s.repo.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	if !restored {
		return nil, ErrBillNotDeleted
	}

	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}

	s.record(ctx, func() (*activity.Activity, error) {
		return s.activities.RecordBillRestored(ctx, bill.ID, bill.RestaurantName)
	})

	return bill, nil
}

// Purge permanently removes a soft-deleted bill
func (s *Service) Purge(ctx context.Context, id string) error {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bill == nil {
		return ErrBillNotFound
	}
	if bill.DeletedAt == nil {
		return ErrBillNotDeleted
	}

	purged, err := s.repo.Purge(ctx, id)
	if err != nil {
		return err
	}
	if !purged {
		return ErrBillNotDeleted
	}

	s.record(ctx, func() (*activity.Activity, error) {
		return s.activities.RecordBillPurged(ctx, bill.ID, bill.RestaurantName)
	})

	return nil
}

// Split settles a bill under the requested fee policy. An empty policy
// defaults to EQUAL.
func (s *Service) Split(ctx context.Context, id, policyName string) (*SplitResponse, error) {
	bill, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if policyName == "" {
		policyName = string(split.PolicyEqual)
	}
	policy, err := s.factory.CreateFromString(strings.ToUpper(policyName))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicy, policyName)
	}

	result, err := split.Settle(bill.ToSplit(), policy.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to settle bill: %w", err)
	}

	people, err := s.personRepo.GetByIDs(ctx, bill.ParticipatingPersonIDs)
	if err != nil {
		return nil, err
	}

	resp := &SplitResponse{
		BillID: bill.ID,
		Policy: result.Policy,
		Shares: make([]*PersonShareResponse, 0, len(result.Shares)),
		Total:  result.Total,
	}

	for _, personID := range bill.ParticipatingPersonIDs {
		share, ok := result.Shares[personID]
		if !ok {
			continue
		}
		shareResp := &PersonShareResponse{
			PersonID:   personID,
			FinalShare: share.FinalShare,
			Breakdown:  share.Breakdown,
			Items:      share.Items,
		}
		if p, ok := people[personID]; ok {
			shareResp.PersonName = p.Name
		}
		resp.Shares = append(resp.Shares, shareResp)
	}

	for _, unassigned := range result.Unassigned {
		resp.UnassignedItems = append(resp.UnassignedItems, &ItemResponse{
			ID:                unassigned.ID,
			Name:              unassigned.Name,
			UnitPrice:         unassigned.UnitPrice,
			Quantity:          unassigned.Quantity,
			TotalPrice:        unassigned.TotalPrice(),
			AssignedPersonIDs: unassigned.AssignedPersonIDs,
		})
	}

	return resp, nil
}

// PolicyOptions computes every policy's fee allocation for a bill plus the
// inequality numbers that decide whether alternatives are worth surfacing.
func (s *Service) PolicyOptions(ctx context.Context, id string) (*PolicyOptionsResponse, error) {
	bill, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	engineBill := bill.ToSplit()
	food, err := split.ComputeFoodShares(engineBill)
	if err != nil {
		return nil, fmt.Errorf("failed to compute food shares: %w", err)
	}

	personCount := len(engineBill.ParticipantIDs)
	totalMisc := engineBill.TotalMisc()

	resp := &PolicyOptionsResponse{
		BillID:               bill.ID,
		InequalityPercentage: split.InequalityPercentage(food.Shares, totalMisc, personCount),
		LeastSpenderSaving:   split.LeastSpenderSaving(food.Shares, totalMisc, personCount),
		Worthwhile:           split.AlternativeWorthwhile(food.Shares, totalMisc, personCount),
	}

	for _, policyType := range []split.PolicyType{split.PolicyEqual, split.PolicyProportional, split.PolicyHybrid} {
		policy, err := s.factory.Create(policyType)
		if err != nil {
			return nil, err
		}
		resp.Options = append(resp.Options, &PolicyOptionResponse{
			Policy:    policyType,
			FeeShares: policy.Allocate(food.Shares, totalMisc, personCount),
		})
	}

	return resp, nil
}

// validate checks a bill's fields and cross-references against stored people
func (s *Service) validate(ctx context.Context, bill *Bill) error {
	if bill.RestaurantName == "" {
		return ErrRestaurantNameRequired
	}
	if len(bill.ParticipatingPersonIDs) == 0 {
		return ErrParticipantsRequired
	}

	participants := make(map[string]bool, len(bill.ParticipatingPersonIDs))
	for _, id := range bill.ParticipatingPersonIDs {
		participants[id] = true
	}

	if bill.PayeeID != nil && !participants[*bill.PayeeID] {
		return ErrPayeeNotParticipating
	}

	referenced := make(map[string]bool, len(participants))
	for id := range participants {
		referenced[id] = true
	}
	for _, item := range bill.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidQuantity, item.Name)
		}
		for _, id := range item.AssignedPersonIDs {
			referenced[id] = true
		}
	}

	if err := validateDiscount(bill.Discount); err != nil {
		return err
	}

	ids := make([]string, 0, len(referenced))
	for id := range referenced {
		ids = append(ids, id)
	}
	people, err := s.personRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := people[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPerson, id)
		}
	}

	return nil
}

// normalizeDiscount maps a missing discount to the NONE variant and strips
// the value the variant does not carry
func normalizeDiscount(d *split.Discount) split.Discount {
	if d == nil {
		return split.Discount{Type: split.DiscountNone}
	}
	switch d.Type {
	case split.DiscountFixed:
		return split.Discount{Type: split.DiscountFixed, Amount: d.Amount}
	case split.DiscountPercentage:
		return split.Discount{Type: split.DiscountPercentage, Percentage: d.Percentage}
	default:
		return split.Discount{Type: split.DiscountNone}
	}
}

func validateDiscount(d split.Discount) error {
	switch d.Type {
	case split.DiscountNone:
		return nil
	case split.DiscountFixed:
		if d.Amount.IsNegative() {
			return fmt.Errorf("%w: fixed amount cannot be negative", ErrInvalidDiscount)
		}
	case split.DiscountPercentage:
		if d.Percentage.IsNegative() || d.Percentage.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("%w: percentage must be between 0 and 100", ErrInvalidDiscount)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidDiscount, d.Type)
	}
	return nil
}

// record writes an activity entry, logging instead of failing when the
// audit trail cannot be written
func (s *Service) record(ctx context.Context, fn func() (*activity.Activity, error)) {
	if s.activities == nil {
		return
	}
	if _, err := fn(); err != nil {
		log.Printf("failed to record activity: %v", err)
	}
}
