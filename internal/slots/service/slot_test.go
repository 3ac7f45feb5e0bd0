package service

import (
	"context"
	"testing"
	"time"

	"slotbook/internal/auth"
	slotserrors "slotbook/internal/slots/errors"
	"slotbook/internal/slots/validator"
	slottypeserrors "slotbook/internal/slottypes/errors"
	"slotbook/pkg/config"
	mongotx "slotbook/pkg/db/mongo"
	apperrors "slotbook/pkg/errors"
	"slotbook/pkg/logger"
	"slotbook/pkg/model"
)

const (
	testCreatorID  = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	otherCreatorID = "c56a4180-65aa-42ec-a945-5fd21dec0538"
	testSlotID     = "65a0b1c2d3e4f5a6b7c8d9e0"
	testSlotTypeID = "65a0b1c2d3e4f5a6b7c8d9e1"
)

type mockSlotRepository struct {
	createFunc           func(ctx context.Context, slot *model.Slot) error
	findByIDFunc         func(ctx context.Context, id string) (*model.Slot, error)
	findViewsFunc        func(ctx context.Context, creatorID, start, end string) ([]*model.SlotView, error)
	updateStatusFromFunc func(ctx context.Context, id, creatorID, from, to string) error
	deleteFunc           func(ctx context.Context, id, creatorID, requiredStatus string) error
}

func (m *mockSlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, slot)
	}
	slot.ID = testSlotID
	return nil
}

func (m *mockSlotRepository) FindByID(ctx context.Context, id string) (*model.Slot, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, slotserrors.ErrNotFound
}

func (m *mockSlotRepository) FindViewsByCreatorAndRange(ctx context.Context, creatorID, start, end string) ([]*model.SlotView, error) {
	if m.findViewsFunc != nil {
		return m.findViewsFunc(ctx, creatorID, start, end)
	}
	return nil, nil
}

func (m *mockSlotRepository) FindAvailable(ctx context.Context, creatorID, date, slotTypeID string) (*model.Slot, error) {
	return nil, slotserrors.ErrNotFound
}

func (m *mockSlotRepository) FindPublicAvailable(ctx context.Context, creatorID string) ([]*model.SlotView, error) {
	return nil, nil
}

func (m *mockSlotRepository) UpdateStatusFrom(ctx context.Context, id, creatorID, from, to string) error {
	if m.updateStatusFromFunc != nil {
		return m.updateStatusFromFunc(ctx, id, creatorID, from, to)
	}
	return nil
}

func (m *mockSlotRepository) Delete(ctx context.Context, id, creatorID, requiredStatus string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, creatorID, requiredStatus)
	}
	return nil
}

func (m *mockSlotRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockSlotTypeRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.SlotType, error)
}

func (m *mockSlotTypeRepository) Create(ctx context.Context, slotType *model.SlotType) error {
	return nil
}

func (m *mockSlotTypeRepository) FindByID(ctx context.Context, id string) (*model.SlotType, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.SlotType{ID: testSlotTypeID, CreatorID: testCreatorID, Name: "Main Sponsor", Price: 250}, nil
}

func (m *mockSlotTypeRepository) FindByCreator(ctx context.Context, creatorID string) ([]*model.SlotType, error) {
	return nil, nil
}

func (m *mockSlotTypeRepository) Update(ctx context.Context, id, creatorID string, updates *model.SlotTypeUpdate) error {
	return nil
}

func (m *mockSlotTypeRepository) Delete(ctx context.Context, id, creatorID string) error {
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

func newTestService(repo *mockSlotRepository, slotTypeRepo *mockSlotTypeRepository) *slotService {
	return &slotService{
		repo:         repo,
		slotTypeRepo: slotTypeRepo,
		validator:    validator.NewSlotValidator(testLogger()),
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

func TestCreate_DefaultsToAvailable(t *testing.T) {
	var created *model.Slot
	repo := &mockSlotRepository{
		createFunc: func(ctx context.Context, slot *model.Slot) error {
			created = slot
			slot.ID = testSlotID
			return nil
		},
	}
	svc := newTestService(repo, &mockSlotTypeRepository{})

	slot := &model.Slot{SlotTypeID: testSlotTypeID, Date: "2026-09-14"}
	if err := svc.Create(context.Background(), ownerIdentity(), slot); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("slot was not created")
	}
	if created.Status != model.SlotStatusAvailable {
		t.Errorf("expected status available, got %s", created.Status)
	}
	if created.CreatorID != testCreatorID {
		t.Errorf("creator id must come from the caller identity, got %s", created.CreatorID)
	}
}

func TestCreate_RejectsNonAvailableStatus(t *testing.T) {
	svc := newTestService(&mockSlotRepository{}, &mockSlotTypeRepository{})

	slot := &model.Slot{SlotTypeID: testSlotTypeID, Date: "2026-09-14", Status: model.SlotStatusBooked}
	err := svc.Create(context.Background(), ownerIdentity(), slot)
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestCreate_ForeignSlotTypeHidden(t *testing.T) {
	slotTypes := &mockSlotTypeRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.SlotType, error) {
			return &model.SlotType{ID: testSlotTypeID, CreatorID: otherCreatorID, Name: "Main Sponsor", Price: 250}, nil
		},
	}
	svc := newTestService(&mockSlotRepository{}, slotTypes)

	slot := &model.Slot{SlotTypeID: testSlotTypeID, Date: "2026-09-14"}
	err := svc.Create(context.Background(), ownerIdentity(), slot)
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Fatalf("another creator's slot type must surface as NOT_FOUND, got %v", err)
	}
}

func TestCreate_UnknownSlotType(t *testing.T) {
	slotTypes := &mockSlotTypeRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.SlotType, error) {
			return nil, slottypeserrors.ErrNotFound
		},
	}
	svc := newTestService(&mockSlotRepository{}, slotTypes)

	slot := &model.Slot{SlotTypeID: testSlotTypeID, Date: "2026-09-14"}
	err := svc.Create(context.Background(), ownerIdentity(), slot)
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCreate_InvalidDate(t *testing.T) {
	svc := newTestService(&mockSlotRepository{}, &mockSlotTypeRepository{})

	slot := &model.Slot{SlotTypeID: testSlotTypeID, Date: "14-09-2026"}
	err := svc.Create(context.Background(), ownerIdentity(), slot)
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for a bad date, got %v", err)
	}
}

func TestList_EmptyResultIsNotNil(t *testing.T) {
	svc := newTestService(&mockSlotRepository{}, &mockSlotTypeRepository{})

	views, err := svc.List(context.Background(), ownerIdentity(), "2026-09-01", "2026-09-30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(views) != 0 {
		t.Errorf("expected no views, got %d", len(views))
	}
}

func TestUpdateStatus_ForwardTransition(t *testing.T) {
	var flipped bool
	repo := &mockSlotRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Slot, error) {
			return &model.Slot{ID: testSlotID, CreatorID: testCreatorID, Status: model.SlotStatusAvailable}, nil
		},
		updateStatusFromFunc: func(ctx context.Context, id, creatorID, from, to string) error {
			if from != model.SlotStatusAvailable || to != model.SlotStatusBooked {
				t.Errorf("unexpected transition %s -> %s", from, to)
			}
			flipped = true
			return nil
		},
	}
	svc := newTestService(repo, &mockSlotTypeRepository{})

	err := svc.UpdateStatus(context.Background(), ownerIdentity(), testSlotID, &model.SlotUpdate{Status: model.SlotStatusBooked})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !flipped {
		t.Error("status was not updated")
	}
}

func TestUpdateStatus_RejectsBackwardTransition(t *testing.T) {
	repo := &mockSlotRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Slot, error) {
			return &model.Slot{ID: testSlotID, CreatorID: testCreatorID, Status: model.SlotStatusBooked}, nil
		},
	}
	svc := newTestService(repo, &mockSlotTypeRepository{})

	err := svc.UpdateStatus(context.Background(), ownerIdentity(), testSlotID, &model.SlotUpdate{Status: model.SlotStatusAvailable})
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Fatalf("expected CONFLICT for backward transition, got %v", err)
	}
}

func TestUpdateStatus_RejectsSameStatus(t *testing.T) {
	repo := &mockSlotRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Slot, error) {
			return &model.Slot{ID: testSlotID, CreatorID: testCreatorID, Status: model.SlotStatusBooked}, nil
		},
	}
	svc := newTestService(repo, &mockSlotTypeRepository{})

	err := svc.UpdateStatus(context.Background(), ownerIdentity(), testSlotID, &model.SlotUpdate{Status: model.SlotStatusBooked})
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Fatalf("expected CONFLICT for no-op transition, got %v", err)
	}
}

func TestUpdateStatus_ConcurrentChangeDetected(t *testing.T) {
	repo := &mockSlotRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Slot, error) {
			return &model.Slot{ID: testSlotID, CreatorID: testCreatorID, Status: model.SlotStatusAvailable}, nil
		},
		updateStatusFromFunc: func(ctx context.Context, id, creatorID, from, to string) error {
			return slotserrors.ErrStatusMismatch
		},
	}
	svc := newTestService(repo, &mockSlotTypeRepository{})

	err := svc.UpdateStatus(context.Background(), ownerIdentity(), testSlotID, &model.SlotUpdate{Status: model.SlotStatusBooked})
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Fatalf("expected CONFLICT when the slot changed underneath, got %v", err)
	}
}

func TestUpdateStatus_ForeignSlotHidden(t *testing.T) {
	repo := &mockSlotRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Slot, error) {
			return &model.Slot{ID: testSlotID, CreatorID: otherCreatorID, Status: model.SlotStatusAvailable}, nil
		},
	}
	svc := newTestService(repo, &mockSlotTypeRepository{})

	err := svc.UpdateStatus(context.Background(), ownerIdentity(), testSlotID, &model.SlotUpdate{Status: model.SlotStatusBooked})
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Fatalf("another creator's slot must surface as NOT_FOUND, got %v", err)
	}
}

func TestDelete_OnlyAvailableSlots(t *testing.T) {
	repo := &mockSlotRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Slot, error) {
			return &model.Slot{ID: testSlotID, CreatorID: testCreatorID, Status: model.SlotStatusBooked}, nil
		},
	}
	svc := newTestService(repo, &mockSlotTypeRepository{})

	err := svc.Delete(context.Background(), ownerIdentity(), testSlotID)
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Fatalf("expected CONFLICT deleting a booked slot, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	var deleted bool
	repo := &mockSlotRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Slot, error) {
			return &model.Slot{ID: testSlotID, CreatorID: testCreatorID, Status: model.SlotStatusAvailable}, nil
		},
		deleteFunc: func(ctx context.Context, id, creatorID, requiredStatus string) error {
			if creatorID != testCreatorID || requiredStatus != model.SlotStatusAvailable {
				t.Errorf("unexpected delete filter: creator=%s status=%s", creatorID, requiredStatus)
			}
			deleted = true
			return nil
		},
	}
	svc := newTestService(repo, &mockSlotTypeRepository{})

	if err := svc.Delete(context.Background(), ownerIdentity(), testSlotID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("slot was not deleted")
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(&mockSlotRepository{}, &mockSlotTypeRepository{})

	err := svc.Delete(context.Background(), ownerIdentity(), testSlotID)
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
