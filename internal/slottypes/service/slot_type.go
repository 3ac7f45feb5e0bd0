package service

import (
	"context"
	"errors"

	"slotbook/internal/auth"
	slottypeserrors "slotbook/internal/slottypes/errors"
	"slotbook/internal/slottypes/repository"
	"slotbook/internal/slottypes/validator"
	"slotbook/pkg/config"
	apperrors "slotbook/pkg/errors"
	"slotbook/pkg/model"
	"slotbook/pkg/sanitizer"
)

type SlotTypeService interface {
	Create(ctx context.Context, identity auth.Identity, slotType *model.SlotType) error
	List(ctx context.Context, identity auth.Identity) ([]*model.SlotType, error)
	Update(ctx context.Context, identity auth.Identity, id string, updates *model.SlotTypeUpdate) error
	Delete(ctx context.Context, identity auth.Identity, id string) error
}

type slotTypeService struct {
	repo      repository.SlotTypeRepository
	validator *validator.SlotTypeValidator
	cfg       *config.Config
}

func NewSlotTypeService(
	repo repository.SlotTypeRepository,
	validator *validator.SlotTypeValidator,
	cfg *config.Config,
) SlotTypeService {
	return &slotTypeService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *slotTypeService) Create(ctx context.Context, identity auth.Identity, slotType *model.SlotType) error {
	slotType.CreatorID = identity.ID
	slotType.Name = sanitizer.NormalizeName(slotType.Name)

	if err := s.validator.Validate(slotType); err != nil {
		s.cfg.Log.Warn("Slot type validation failed", "creator_id", identity.ID, "error", err)
		return apperrors.Validation("Invalid slot type input", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, slotType); err != nil {
		s.cfg.Log.Error("Failed to create slot type", "creator_id", identity.ID, "error", err)
		return apperrors.Internal("Failed to create slot type", err)
	}

	s.cfg.Log.Info("Slot type created",
		"id", slotType.ID,
		"creator_id", identity.ID,
		"name", slotType.Name,
	)
	return nil
}

func (s *slotTypeService) List(ctx context.Context, identity auth.Identity) ([]*model.SlotType, error) {
	slotTypes, err := s.repo.FindByCreator(ctx, identity.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve slot types", err)
	}
	if slotTypes == nil {
		slotTypes = []*model.SlotType{}
	}
	return slotTypes, nil
}

func (s *slotTypeService) Update(ctx context.Context, identity auth.Identity, id string, updates *model.SlotTypeUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Slot type ID cannot be empty")
	}

	updates.Name = sanitizer.NormalizeName(updates.Name)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Slot type update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid slot type input", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, identity.ID, updates); err != nil {
		if errors.Is(err, slottypeserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Slot type", id)
		}
		if errors.Is(err, slottypeserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid slot type ID format")
		}
		return apperrors.Internal("Failed to update slot type", err)
	}

	s.cfg.Log.Info("Slot type updated", "id", id, "creator_id", identity.ID)
	return nil
}

// Delete removes the type without touching slots. Slots that still
// reference it keep their dangling slot_type_id; joined reads tolerate
// the missing type and surface an empty name.
func (s *slotTypeService) Delete(ctx context.Context, identity auth.Identity, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Slot type ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id, identity.ID); err != nil {
		if errors.Is(err, slottypeserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Slot type", id)
		}
		if errors.Is(err, slottypeserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid slot type ID format")
		}
		return apperrors.Internal("Failed to delete slot type", err)
	}

	s.cfg.Log.Info("Slot type deleted", "id", id, "creator_id", identity.ID)
	return nil
}
