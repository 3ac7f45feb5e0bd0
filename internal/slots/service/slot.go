package service

import (
	"context"
	"errors"
	"fmt"

	"slotbook/internal/auth"
	slotserrors "slotbook/internal/slots/errors"
	"slotbook/internal/slots/repository"
	"slotbook/internal/slots/validator"
	slottypeserrors "slotbook/internal/slottypes/errors"
	slottypesrepo "slotbook/internal/slottypes/repository"
	"slotbook/pkg/config"
	apperrors "slotbook/pkg/errors"
	"slotbook/pkg/model"
)

type SlotService interface {
	Create(ctx context.Context, identity auth.Identity, slot *model.Slot) error
	List(ctx context.Context, identity auth.Identity, start, end string) ([]*model.SlotView, error)
	UpdateStatus(ctx context.Context, identity auth.Identity, id string, updates *model.SlotUpdate) error
	Delete(ctx context.Context, identity auth.Identity, id string) error
}

type slotService struct {
	repo         repository.SlotRepository
	slotTypeRepo slottypesrepo.SlotTypeRepository
	validator    *validator.SlotValidator
	cfg          *config.Config
}

func NewSlotService(
	repo repository.SlotRepository,
	slotTypeRepo slottypesrepo.SlotTypeRepository,
	validator *validator.SlotValidator,
	cfg *config.Config,
) SlotService {
	return &slotService{
		repo:         repo,
		slotTypeRepo: slotTypeRepo,
		validator:    validator,
		cfg:          cfg,
	}
}

func (s *slotService) Create(ctx context.Context, identity auth.Identity, slot *model.Slot) error {
	slot.CreatorID = identity.ID
	if slot.Status == "" {
		slot.Status = model.SlotStatusAvailable
	}
	if slot.Status != model.SlotStatusAvailable {
		return apperrors.InvalidInput("New slots must start in available status")
	}

	if err := s.validator.Validate(slot); err != nil {
		s.cfg.Log.Warn("Slot validation failed", "creator_id", identity.ID, "error", err)
		return apperrors.Validation("Invalid slot input", map[string]any{"error": err.Error()})
	}

	slotType, err := s.slotTypeRepo.FindByID(ctx, slot.SlotTypeID)
	if err != nil {
		if errors.Is(err, slottypeserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Slot type", slot.SlotTypeID)
		}
		if errors.Is(err, slottypeserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid slot type ID format")
		}
		return apperrors.Internal("Failed to verify slot type", err)
	}
	if slotType.CreatorID != identity.ID {
		// Cross-creator references surface as not found, not forbidden.
		return apperrors.NotFoundWithID("Slot type", slot.SlotTypeID)
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		s.cfg.Log.Error("Failed to create slot", "creator_id", identity.ID, "error", err)
		return apperrors.Internal("Failed to create slot", err)
	}

	s.cfg.Log.Info("Slot created",
		"id", slot.ID,
		"creator_id", identity.ID,
		"date", slot.Date,
		"slot_type_id", slot.SlotTypeID,
	)
	return nil
}

func (s *slotService) List(ctx context.Context, identity auth.Identity, start, end string) ([]*model.SlotView, error) {
	views, err := s.repo.FindViewsByCreatorAndRange(ctx, identity.ID, start, end)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve slots", err)
	}
	if views == nil {
		views = []*model.SlotView{}
	}
	return views, nil
}

// UpdateStatus enforces the one-way slot lifecycle: available to booked
// to fulfilled, never backwards and never skipping by rewind.
func (s *slotService) UpdateStatus(ctx context.Context, identity auth.Identity, id string, updates *model.SlotUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Slot ID cannot be empty")
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		return apperrors.Validation("Invalid slot input", map[string]any{"error": err.Error()})
	}

	slot, err := s.findOwned(ctx, identity, id)
	if err != nil {
		return err
	}

	if model.StatusRank(updates.Status) <= model.StatusRank(slot.Status) {
		return apperrors.Conflict(fmt.Sprintf(
			"Slot status can only move forward; %s -> %s is not allowed",
			slot.Status, updates.Status,
		))
	}

	if err := s.repo.UpdateStatusFrom(ctx, id, identity.ID, slot.Status, updates.Status); err != nil {
		if errors.Is(err, slotserrors.ErrStatusMismatch) {
			return apperrors.Conflict("Slot status changed; reload and try again")
		}
		return apperrors.Internal("Failed to update slot status", err)
	}

	s.cfg.Log.Info("Slot status updated",
		"id", id,
		"creator_id", identity.ID,
		"from", slot.Status,
		"to", updates.Status,
	)
	return nil
}

func (s *slotService) Delete(ctx context.Context, identity auth.Identity, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Slot ID cannot be empty")
	}

	slot, err := s.findOwned(ctx, identity, id)
	if err != nil {
		return err
	}
	if slot.Status != model.SlotStatusAvailable {
		return apperrors.Conflict("Only available slots can be deleted")
	}

	if err := s.repo.Delete(ctx, id, identity.ID, model.SlotStatusAvailable); err != nil {
		if errors.Is(err, slotserrors.ErrStatusMismatch) {
			return apperrors.Conflict("Slot was booked while deleting; reload and try again")
		}
		return apperrors.Internal("Failed to delete slot", err)
	}

	s.cfg.Log.Info("Slot deleted", "id", id, "creator_id", identity.ID)
	return nil
}

func (s *slotService) findOwned(ctx context.Context, identity auth.Identity, id string) (*model.Slot, error) {
	slot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Slot", id)
		}
		if errors.Is(err, slotserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid slot ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve slot", err)
	}
	if slot.CreatorID != identity.ID {
		return nil, apperrors.NotFoundWithID("Slot", id)
	}
	return slot, nil
}
