package service

import (
	"context"
	"testing"
	"time"

	"slotbook/internal/auth"
	slottypeserrors "slotbook/internal/slottypes/errors"
	"slotbook/internal/slottypes/validator"
	"slotbook/pkg/config"
	apperrors "slotbook/pkg/errors"
	"slotbook/pkg/logger"
	"slotbook/pkg/model"
)

const (
	testCreatorID  = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	testSlotTypeID = "65a0b1c2d3e4f5a6b7c8d9e1"
)

type mockSlotTypeRepository struct {
	createFunc        func(ctx context.Context, slotType *model.SlotType) error
	findByIDFunc      func(ctx context.Context, id string) (*model.SlotType, error)
	findByCreatorFunc func(ctx context.Context, creatorID string) ([]*model.SlotType, error)
	updateFunc        func(ctx context.Context, id, creatorID string, updates *model.SlotTypeUpdate) error
	deleteFunc        func(ctx context.Context, id, creatorID string) error
}

func (m *mockSlotTypeRepository) Create(ctx context.Context, slotType *model.SlotType) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, slotType)
	}
	slotType.ID = testSlotTypeID
	return nil
}

func (m *mockSlotTypeRepository) FindByID(ctx context.Context, id string) (*model.SlotType, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, slottypeserrors.ErrNotFound
}

func (m *mockSlotTypeRepository) FindByCreator(ctx context.Context, creatorID string) ([]*model.SlotType, error) {
	if m.findByCreatorFunc != nil {
		return m.findByCreatorFunc(ctx, creatorID)
	}
	return nil, nil
}

func (m *mockSlotTypeRepository) Update(ctx context.Context, id, creatorID string, updates *model.SlotTypeUpdate) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, creatorID, updates)
	}
	return nil
}

func (m *mockSlotTypeRepository) Delete(ctx context.Context, id, creatorID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, creatorID)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func newTestService(repo *mockSlotTypeRepository) *slotTypeService {
	return &slotTypeService{
		repo:      repo,
		validator: validator.NewSlotTypeValidator(testLogger()),
		cfg: &config.Config{
			Log:          testLogger(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
	}
}

func ownerIdentity() auth.Identity {
	return auth.Identity{ID: testCreatorID, Email: "jane@acme-weekly.test"}
}

func TestCreate_SetsCreatorFromIdentity(t *testing.T) {
	var created *model.SlotType
	repo := &mockSlotTypeRepository{
		createFunc: func(ctx context.Context, slotType *model.SlotType) error {
			created = slotType
			slotType.ID = testSlotTypeID
			return nil
		},
	}
	svc := newTestService(repo)

	slotType := &model.SlotType{Name: "  Main   Sponsor ", Price: 250}
	if err := svc.Create(context.Background(), ownerIdentity(), slotType); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.CreatorID != testCreatorID {
		t.Errorf("creator id must come from the caller identity, got %s", created.CreatorID)
	}
	if created.Name != "Main Sponsor" {
		t.Errorf("name must be normalized, got %q", created.Name)
	}
}

func TestCreate_RejectsZeroPrice(t *testing.T) {
	svc := newTestService(&mockSlotTypeRepository{})

	slotType := &model.SlotType{Name: "Main Sponsor", Price: 0}
	err := svc.Create(context.Background(), ownerIdentity(), slotType)
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for zero price, got %v", err)
	}
}

func TestCreate_RejectsNegativePrice(t *testing.T) {
	svc := newTestService(&mockSlotTypeRepository{})

	slotType := &model.SlotType{Name: "Main Sponsor", Price: -5}
	err := svc.Create(context.Background(), ownerIdentity(), slotType)
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for negative price, got %v", err)
	}
}

func TestList_EmptyResultIsNotNil(t *testing.T) {
	svc := newTestService(&mockSlotTypeRepository{})

	slotTypes, err := svc.List(context.Background(), ownerIdentity())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slotTypes == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestUpdate_OwnerScoped(t *testing.T) {
	var capturedCreatorID string
	repo := &mockSlotTypeRepository{
		updateFunc: func(ctx context.Context, id, creatorID string, updates *model.SlotTypeUpdate) error {
			capturedCreatorID = creatorID
			return nil
		},
	}
	svc := newTestService(repo)

	updates := &model.SlotTypeUpdate{Name: "Headline Sponsor", Price: 400}
	if err := svc.Update(context.Background(), ownerIdentity(), testSlotTypeID, updates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedCreatorID != testCreatorID {
		t.Errorf("update must be scoped to the caller, got creator %s", capturedCreatorID)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockSlotTypeRepository{
		updateFunc: func(ctx context.Context, id, creatorID string, updates *model.SlotTypeUpdate) error {
			return slottypeserrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	updates := &model.SlotTypeUpdate{Name: "Headline Sponsor", Price: 400}
	err := svc.Update(context.Background(), ownerIdentity(), testSlotTypeID, updates)
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	var deletedID, deletedCreator string
	repo := &mockSlotTypeRepository{
		deleteFunc: func(ctx context.Context, id, creatorID string) error {
			deletedID = id
			deletedCreator = creatorID
			return nil
		},
	}
	svc := newTestService(repo)

	if err := svc.Delete(context.Background(), ownerIdentity(), testSlotTypeID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != testSlotTypeID || deletedCreator != testCreatorID {
		t.Errorf("unexpected delete call: id=%s creator=%s", deletedID, deletedCreator)
	}
}

func TestDelete_IsUnconditional(t *testing.T) {
	// Deletion never consults the slots collection; slots referencing
	// the type stay in place with a dangling slot_type_id.
	deleteCalls := 0
	repo := &mockSlotTypeRepository{
		deleteFunc: func(ctx context.Context, id, creatorID string) error {
			deleteCalls++
			return nil
		},
	}
	svc := newTestService(repo)

	if err := svc.Delete(context.Background(), ownerIdentity(), testSlotTypeID); err != nil {
		t.Fatalf("delete of a referenced slot type must succeed, got %v", err)
	}
	if deleteCalls != 1 {
		t.Errorf("expected exactly one delete call, got %d", deleteCalls)
	}
}

func TestDelete_InvalidIDFormat(t *testing.T) {
	repo := &mockSlotTypeRepository{
		deleteFunc: func(ctx context.Context, id, creatorID string) error {
			return slottypeserrors.ErrInvalidID
		},
	}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), ownerIdentity(), "not-a-hex-id")
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}
