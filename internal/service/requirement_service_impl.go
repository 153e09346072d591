package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ehphp/RequestEstimator-sub000/internal/app"
	"github.com/Ehphp/RequestEstimator-sub000/internal/db"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/hierarchy"
	"github.com/Ehphp/RequestEstimator-sub000/internal/repository"
)

type requirementService struct {
	requirements repository.RequirementRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

// NewRequirementService returns the requirement use cases. Writes that touch
// the hierarchy run inside uow so the cycle check and the commit see the
// same snapshot.
func NewRequirementService(requirements repository.RequirementRepo, uow db.UnitOfWork, observers ...UseCaseObserver) RequirementService {
	return &requirementService{
		requirements: requirements,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *requirementService) Create(ctx context.Context, r *domain.Requirement) (err error) {
	fields := map[string]any{"title": r.Title}
	done := trackUseCase(ctx, s.observer, "create-requirement", fields)
	defer func() { done(err) }()

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.Tags = normalizedTags(r.Tags)
	if r.ParentID != nil && *r.ParentID == "" {
		r.ParentID = nil
	}
	if err = r.Validate(); err != nil {
		return fmt.Errorf("invalid requirement: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txReqs := repository.NewSQLiteRequirementRepo(tx)
		txSeqs := repository.NewSQLiteSequenceRepo(tx)

		if r.ParentID != nil {
			if err := requireParent(ctx, txReqs, *r.ParentID); err != nil {
				return err
			}
		}
		seq, err := txSeqs.Next(ctx, repository.RequirementSequence)
		if err != nil {
			return err
		}
		r.Seq = seq
		return txReqs.Create(ctx, r)
	})
	fields["requirement_id"] = r.ID
	fields["seq"] = r.Seq
	return err
}

func (s *requirementService) GetByID(ctx context.Context, id string) (*domain.Requirement, error) {
	return s.requirements.GetByID(ctx, id)
}

func (s *requirementService) Resolve(ctx context.Context, ref string) (*domain.Requirement, error) {
	if seq, ok := parseSeqRef(ref); ok {
		r, err := s.requirements.GetBySeq(ctx, seq)
		if err == nil || !errors.Is(err, repository.ErrNotFound) {
			return r, err
		}
	}
	return s.requirements.GetByID(ctx, ref)
}

func (s *requirementService) List(ctx context.Context) ([]*domain.Requirement, error) {
	return s.requirements.List(ctx)
}

// Update saves edited fields. A changed parent goes through the same cycle
// gate as Move.
func (s *requirementService) Update(ctx context.Context, r *domain.Requirement) (err error) {
	fields := map[string]any{"requirement_id": r.ID}
	done := trackUseCase(ctx, s.observer, "update-requirement", fields)
	defer func() { done(err) }()

	r.UpdatedAt = time.Now().UTC()
	r.Tags = normalizedTags(r.Tags)
	if r.ParentID != nil && *r.ParentID == "" {
		r.ParentID = nil
	}
	if err = r.Validate(); err != nil {
		return fmt.Errorf("invalid requirement: %w", err)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txReqs := repository.NewSQLiteRequirementRepo(tx)
		current, err := txReqs.GetByID(ctx, r.ID)
		if err != nil {
			return err
		}
		if current.ParentIDOrEmpty() != r.ParentIDOrEmpty() {
			if err := checkMove(ctx, txReqs, r.ID, r.ParentIDOrEmpty()); err != nil {
				return err
			}
		}
		r.Seq = current.Seq
		r.CreatedAt = current.CreatedAt
		return txReqs.Update(ctx, r)
	})
}

// Move re-parents a requirement. A nil or empty parentID makes it a root.
// The move is rejected with a HierarchyError when the new parent is missing
// or lies inside the requirement's own subtree.
func (s *requirementService) Move(ctx context.Context, id string, parentID *string) (err error) {
	target := ""
	if parentID != nil {
		target = *parentID
	}
	fields := map[string]any{"requirement_id": id, "parent_id": target}
	done := trackUseCase(ctx, s.observer, "move-requirement", fields)
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txReqs := repository.NewSQLiteRequirementRepo(tx)
		if _, err := txReqs.GetByID(ctx, id); err != nil {
			return err
		}
		if err := checkMove(ctx, txReqs, id, target); err != nil {
			return err
		}
		if target == "" {
			return txReqs.SetParent(ctx, id, nil)
		}
		return txReqs.SetParent(ctx, id, &target)
	})
}

// Delete removes a requirement and its estimates. A requirement with
// children is only removed together with its subtree when cascade is set.
func (s *requirementService) Delete(ctx context.Context, id string, cascade bool) (err error) {
	fields := map[string]any{"requirement_id": id, "cascade": cascade}
	done := trackUseCase(ctx, s.observer, "delete-requirement", fields)
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txReqs := repository.NewSQLiteRequirementRepo(tx)
		forest, err := loadForest(ctx, txReqs)
		if err != nil {
			return err
		}
		if !forest.Contains(id) {
			return fmt.Errorf("requirement %s: %w", id, repository.ErrNotFound)
		}
		descendants := forest.Descendants(id)
		fields["descendants"] = len(descendants)
		if len(descendants) > 0 && !cascade {
			return &app.HierarchyError{
				Code:    app.HierarchyErrHasChildren,
				Message: fmt.Sprintf("requirement has %d descendant(s); remove them first or delete with cascade", len(descendants)),
			}
		}
		return txReqs.Delete(ctx, id)
	})
}

// checkMove is the cycle gate: it runs before any parent link is written.
func checkMove(ctx context.Context, reqs repository.RequirementRepo, id, parentID string) error {
	if parentID == "" {
		return nil
	}
	forest, err := loadForest(ctx, reqs)
	if err != nil {
		return err
	}
	if !forest.Contains(parentID) {
		return &app.HierarchyError{
			Code:    app.HierarchyErrParentNotFound,
			Message: fmt.Sprintf("parent requirement %s does not exist", parentID),
		}
	}
	if forest.WouldCreateCycle(id, parentID) {
		return &app.HierarchyError{
			Code:    app.HierarchyErrCycle,
			Message: "a requirement cannot be placed under itself or one of its descendants",
		}
	}
	return nil
}

func requireParent(ctx context.Context, reqs repository.RequirementRepo, parentID string) error {
	_, err := reqs.GetByID(ctx, parentID)
	if errors.Is(err, repository.ErrNotFound) {
		return &app.HierarchyError{
			Code:    app.HierarchyErrParentNotFound,
			Message: fmt.Sprintf("parent requirement %s does not exist", parentID),
		}
	}
	return err
}

func loadForest(ctx context.Context, reqs repository.RequirementRepo) (*hierarchy.Forest[*domain.Requirement], error) {
	list, err := reqs.List(ctx)
	if err != nil {
		return nil, err
	}
	return hierarchy.Build(list,
		func(r *domain.Requirement) string { return r.ID },
		func(r *domain.Requirement) string { return r.ParentIDOrEmpty() },
	), nil
}

func normalizedTags(tags []string) []string {
	out := domain.NormalizeTags(tags)
	if len(out) == 0 {
		return nil
	}
	return out
}
