package bill

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/metrics"
	"github.com/MrJamesThe3rd/rateio/internal/person"
	"github.com/MrJamesThe3rd/rateio/internal/validation"
)

const (
	maxDescriptionLen = 200
	maxNoteLen        = 500
)

var ErrSplitNotFound = errors.New("split not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=bill
type Repository interface {
	CreateBill(ctx context.Context, b *Bill) error
	GetBill(ctx context.Context, id uuid.UUID) (*Bill, error)
	ListBills(ctx context.Context, filter ListFilter) ([]*Bill, error)
	UpdateBill(ctx context.Context, id uuid.UUID, patch Patch) error
	DeleteBill(ctx context.Context, id uuid.UUID) error
	MarkPaid(ctx context.Context, id uuid.UUID) error

	ListPlan(ctx context.Context, planID uuid.UUID) ([]*Bill, error)
	DeletePlan(ctx context.Context, planID uuid.UUID) (int, error)

	ListSplits(ctx context.Context, billID uuid.UUID) ([]Split, error)
	UpsertSplit(ctx context.Context, s *Split) error
	DeleteSplits(ctx context.Context, billID uuid.UUID) error
	MarkSplitPaid(ctx context.Context, billID, personID uuid.UUID, paidAt time.Time) error
}

// PersonLookup resolves the people named in splits.
type PersonLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*person.Person, error)
}

type Service struct {
	repo            Repository
	people          PersonLookup
	planner         *Planner
	maxInstallments int
	now             func() time.Time
}

func NewService(repo Repository, maxInstallments int) *Service {
	planner := NewPlanner(repo, maxInstallments)

	return &Service{
		repo:            repo,
		planner:         planner,
		maxInstallments: planner.maxInstallments,
		now:             time.Now,
	}
}

// WithPeople makes Create and Update reject splits for people that do not exist
// before anything is written.
func (s *Service) WithPeople(people PersonLookup) *Service {
	s.people = people
	return s
}

type CreateParams struct {
	Description      string
	Amount           decimal.Decimal
	InstallmentIndex int
	InstallmentCount int
	DueDate          *time.Time
	CategoryID       *uuid.UUID
	Note             string
	Splits           []SplitParams

	// GenerateFutureInstallments treats Amount as the purchase total and creates one
	// bill per installment. It only applies when InstallmentCount > 1.
	GenerateFutureInstallments bool
}

type UpdateParams struct {
	Patch Patch

	// Splits replaces every split of the bill when non-nil.
	Splits []SplitParams
}

// Create stores a bill, or a whole installment plan, and returns the ids created.
func (s *Service) Create(ctx context.Context, params CreateParams) ([]uuid.UUID, error) {
	if params.InstallmentIndex == 0 {
		params.InstallmentIndex = 1
	}

	if params.InstallmentCount == 0 {
		params.InstallmentCount = 1
	}

	params.Description = strings.TrimSpace(params.Description)

	candidate := Bill{
		Description:      params.Description,
		Amount:           params.Amount.Round(2),
		InstallmentIndex: params.InstallmentIndex,
		InstallmentCount: params.InstallmentCount,
		Note:             params.Note,
		Status:           StatusPending,
	}
	if err := s.validateBill(candidate); err != nil {
		return nil, err
	}

	if err := validateSplits(params.Splits); err != nil {
		return nil, err
	}

	if err := s.checkPeople(ctx, params.Splits); err != nil {
		return nil, err
	}

	if params.GenerateFutureInstallments && params.InstallmentCount > 1 {
		return s.createPlan(ctx, params)
	}

	b := &Bill{
		Description:      params.Description,
		Amount:           params.Amount.Round(2),
		InstallmentIndex: params.InstallmentIndex,
		InstallmentCount: params.InstallmentCount,
		DueDate:          params.DueDate,
		CategoryID:       params.CategoryID,
		Note:             params.Note,
		Status:           StatusPending,
	}

	if err := s.repo.CreateBill(ctx, b); err != nil {
		return nil, fmt.Errorf("creating bill: %w", err)
	}

	if err := s.createSplits(ctx, b.ID, params.Splits); err != nil {
		return nil, err
	}

	metrics.BillsCreated.Inc()

	return []uuid.UUID{b.ID}, nil
}

func (s *Service) createPlan(ctx context.Context, params CreateParams) ([]uuid.UUID, error) {
	start := s.today()
	if params.DueDate != nil {
		start = *params.DueDate
	}

	res, err := s.planner.Plan(ctx, PlanParams{
		Description:      params.Description,
		TotalAmount:      params.Amount,
		InstallmentCount: params.InstallmentCount,
		StartDueDate:     start,
		CategoryID:       params.CategoryID,
		Note:             params.Note,
		Allocation:       params.Splits,
	})
	if err != nil {
		var partial *PartialPlanError
		if errors.As(err, &partial) {
			metrics.BillsCreated.Add(float64(len(partial.Created)))
		}

		return nil, err
	}

	metrics.BillsCreated.Add(float64(len(res.BillIDs)))
	metrics.PlansGenerated.Inc()

	return res.BillIDs, nil
}

func (s *Service) createSplits(ctx context.Context, billID uuid.UUID, splits []SplitParams) error {
	for _, sp := range splits {
		if !sp.Amount.IsPositive() {
			continue
		}

		split := &Split{
			BillID:     billID,
			PersonID:   sp.PersonID,
			Amount:     sp.Amount.Round(2),
			Percentage: sp.Percentage,
		}

		if err := s.repo.UpsertSplit(ctx, split); err != nil {
			return fmt.Errorf("creating split: %w", err)
		}
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.repo.GetBill(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Bill, error) {
	return s.repo.ListBills(ctx, filter)
}

// ListPlan returns the installments of a plan ordered by index.
func (s *Service) ListPlan(ctx context.Context, planID uuid.UUID) ([]*Bill, error) {
	return s.repo.ListPlan(ctx, planID)
}

// Update merges the patch into the stored bill and, when params.Splits is non-nil,
// replaces its splits. Other installments of the same plan are never touched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Bill, error) {
	current, err := s.repo.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := params.Patch
	if patch.Description != nil {
		patch.Description = new(strings.TrimSpace(*patch.Description))
	}

	if patch.Amount != nil {
		patch.Amount = new(patch.Amount.Round(2))
	}

	if err := s.validateBill(patch.Apply(*current)); err != nil {
		return nil, err
	}

	if err := validateSplits(params.Splits); err != nil {
		return nil, err
	}

	if err := s.checkPeople(ctx, params.Splits); err != nil {
		return nil, err
	}

	if !patch.Empty() {
		if err := s.repo.UpdateBill(ctx, id, patch); err != nil {
			return nil, fmt.Errorf("updating bill: %w", err)
		}
	}

	if params.Splits != nil {
		if err := s.repo.DeleteSplits(ctx, id); err != nil {
			return nil, fmt.Errorf("clearing splits: %w", err)
		}

		if err := s.createSplits(ctx, id, params.Splits); err != nil {
			return nil, err
		}
	}

	return s.repo.GetBill(ctx, id)
}

// Delete removes a bill, or every installment of its plan when wholePlan is set,
// and returns how many bills were removed.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, wholePlan bool) (int, error) {
	b, err := s.repo.GetBill(ctx, id)
	if err != nil {
		return 0, err
	}

	if wholePlan && b.PlanID != nil {
		n, err := s.repo.DeletePlan(ctx, *b.PlanID)
		if err != nil {
			return 0, fmt.Errorf("deleting plan: %w", err)
		}

		return n, nil
	}

	if err := s.repo.DeleteBill(ctx, id); err != nil {
		return 0, fmt.Errorf("deleting bill: %w", err)
	}

	return 1, nil
}

// DeletePlan removes every installment sharing planID.
func (s *Service) DeletePlan(ctx context.Context, planID uuid.UUID) (int, error) {
	n, err := s.repo.DeletePlan(ctx, planID)
	if err != nil {
		return 0, fmt.Errorf("deleting plan: %w", err)
	}

	if n == 0 {
		return 0, ErrNotFound
	}

	return n, nil
}

// MarkPaid moves a pending bill to paid. Paying a paid bill does nothing.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) error {
	b, err := s.repo.GetBill(ctx, id)
	if err != nil {
		return err
	}

	if b.Status == StatusPaid {
		return nil
	}

	if err := s.repo.MarkPaid(ctx, id); err != nil {
		return fmt.Errorf("marking bill paid: %w", err)
	}

	return nil
}

// MarkSplitPaid records that personID settled their share of the bill today.
func (s *Service) MarkSplitPaid(ctx context.Context, billID, personID uuid.UUID) error {
	b, err := s.repo.GetBill(ctx, billID)
	if err != nil {
		return err
	}

	split, ok := b.SplitFor(personID)
	if !ok {
		return ErrSplitNotFound
	}

	if split.Paid {
		return nil
	}

	if err := s.repo.MarkSplitPaid(ctx, billID, personID, s.today()); err != nil {
		return fmt.Errorf("marking split paid: %w", err)
	}

	return nil
}

func (s *Service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) validateBill(b Bill) error {
	if b.Description == "" {
		return validation.New("description", "is required")
	}

	if len([]rune(b.Description)) > maxDescriptionLen {
		return validation.New("description", "must be at most %d characters", maxDescriptionLen)
	}

	if !b.Amount.IsPositive() {
		return validation.New("amount", "must be greater than zero")
	}

	if b.InstallmentCount < 1 || b.InstallmentCount > s.maxInstallments {
		return validation.New("installment_count", "must be between 1 and %d", s.maxInstallments)
	}

	if b.InstallmentIndex < 1 || b.InstallmentIndex > b.InstallmentCount {
		return validation.New("installment_index", "must be between 1 and %d", b.InstallmentCount)
	}

	if len([]rune(b.Note)) > maxNoteLen {
		return validation.New("note", "must be at most %d characters", maxNoteLen)
	}

	return nil
}

func validateSplits(splits []SplitParams) error {
	seen := make(map[uuid.UUID]struct{}, len(splits))

	for _, sp := range splits {
		if sp.PersonID == uuid.Nil {
			return validation.New("splits", "person is required")
		}

		if sp.Amount.IsNegative() {
			return validation.New("splits", "amount must not be negative")
		}

		if _, dup := seen[sp.PersonID]; dup {
			return validation.New("splits", "person %s appears more than once", sp.PersonID)
		}

		seen[sp.PersonID] = struct{}{}
	}

	return nil
}

func (s *Service) checkPeople(ctx context.Context, splits []SplitParams) error {
	if s.people == nil {
		return nil
	}

	for _, sp := range splits {
		if _, err := s.people.Get(ctx, sp.PersonID); err != nil {
			if errors.Is(err, person.ErrNotFound) {
				return fmt.Errorf("split for %s: %w", sp.PersonID, err)
			}

			return fmt.Errorf("looking up person %s: %w", sp.PersonID, err)
		}
	}

	return nil
}
