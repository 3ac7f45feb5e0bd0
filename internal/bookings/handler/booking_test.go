package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"slotbook/internal/auth"
	apperrors "slotbook/pkg/errors"
	httputil "slotbook/pkg/http"
	"slotbook/pkg/logger"
	"slotbook/pkg/model"
)

type mockBookingService struct {
	publicPageFunc func(ctx context.Context, slug string) (*model.BookingPage, error)
	reserveFunc    func(ctx context.Context, req *model.ReservationRequest, creative *model.CreativeUpload) (*model.CheckoutRef, error)
	confirmFunc    func(ctx context.Context, sessionID string) (string, error)
	listFunc       func(ctx context.Context, identity auth.Identity) ([]*model.BookingView, error)
	fulfillFunc    func(ctx context.Context, identity auth.Identity, bookingID string) error
}

func (m *mockBookingService) PublicPage(ctx context.Context, slug string) (*model.BookingPage, error) {
	if m.publicPageFunc != nil {
		return m.publicPageFunc(ctx, slug)
	}
	return &model.BookingPage{}, nil
}

func (m *mockBookingService) Reserve(ctx context.Context, req *model.ReservationRequest, creative *model.CreativeUpload) (*model.CheckoutRef, error) {
	if m.reserveFunc != nil {
		return m.reserveFunc(ctx, req, creative)
	}
	return &model.CheckoutRef{SessionID: "cs_1", URL: "https://pay.test/cs_1"}, nil
}

func (m *mockBookingService) Confirm(ctx context.Context, sessionID string) (string, error) {
	if m.confirmFunc != nil {
		return m.confirmFunc(ctx, sessionID)
	}
	return "https://slotbook.test/booking-confirmed", nil
}

func (m *mockBookingService) ListForCreator(ctx context.Context, identity auth.Identity) ([]*model.BookingView, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, identity)
	}
	return []*model.BookingView{}, nil
}

func (m *mockBookingService) Fulfill(ctx context.Context, identity auth.Identity, bookingID string) error {
	if m.fulfillFunc != nil {
		return m.fulfillFunc(ctx, identity, bookingID)
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

func newTestHandler(mockService *mockBookingService) *BookingHandler {
	return &BookingHandler{
		service: mockService,
		log:     testLogger(),
	}
}

func TestReserve_JSONBody(t *testing.T) {
	var received *model.ReservationRequest
	mockService := &mockBookingService{
		reserveFunc: func(ctx context.Context, req *model.ReservationRequest, creative *model.CreativeUpload) (*model.CheckoutRef, error) {
			received = req
			if creative != nil {
				t.Error("JSON submissions carry no creative upload")
			}
			return &model.CheckoutRef{SessionID: "cs_1", URL: "https://pay.test/cs_1"}, nil
		},
	}
	handler := newTestHandler(mockService)

	body := `{"sponsor_name":"Widgets Inc","sponsor_email":"ads@widgets.test","website_url":"https://widgets.test","ad_copy":"Try Widgets.","date":"2026-09-14","slot_type_id":"65a0b1c2d3e4f5a6b7c8d9e1","creator_slug":"acme-weekly"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Reserve(w, req, httprouter.Params{})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if received == nil || received.SponsorName != "Widgets Inc" {
		t.Errorf("request body not parsed: %+v", received)
	}

	var resp httputil.SuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
}

func TestReserve_MultipartWithCreative(t *testing.T) {
	var receivedCreative *model.CreativeUpload
	mockService := &mockBookingService{
		reserveFunc: func(ctx context.Context, req *model.ReservationRequest, creative *model.CreativeUpload) (*model.CheckoutRef, error) {
			receivedCreative = creative
			return &model.CheckoutRef{SessionID: "cs_1", URL: "https://pay.test/cs_1"}, nil
		},
	}
	handler := newTestHandler(mockService)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"sponsor_name":  "Widgets Inc",
		"sponsor_email": "ads@widgets.test",
		"website_url":   "https://widgets.test",
		"ad_copy":       "Try Widgets.",
		"date":          "2026-09-14",
		"slot_type_id":  "65a0b1c2d3e4f5a6b7c8d9e1",
		"creator_slug":  "acme-weekly",
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("failed to write field %s: %v", name, err)
		}
	}
	fw, err := mw.CreateFormFile("creative_file", "banner.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := fw.Write([]byte("fake-png-bytes")); err != nil {
		t.Fatalf("failed to write file data: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	handler.Reserve(w, req, httprouter.Params{})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if receivedCreative == nil {
		t.Fatal("creative upload was not passed through")
	}
	if receivedCreative.Filename != "banner.png" {
		t.Errorf("unexpected filename: %s", receivedCreative.Filename)
	}
	if string(receivedCreative.Data) != "fake-png-bytes" {
		t.Errorf("file data corrupted: %q", receivedCreative.Data)
	}
}

func TestReserve_MultipartWithoutCreative(t *testing.T) {
	mockService := &mockBookingService{
		reserveFunc: func(ctx context.Context, req *model.ReservationRequest, creative *model.CreativeUpload) (*model.CheckoutRef, error) {
			if creative != nil {
				t.Error("missing file must not produce a creative upload")
			}
			return &model.CheckoutRef{SessionID: "cs_1", URL: "https://pay.test/cs_1"}, nil
		},
	}
	handler := newTestHandler(mockService)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("sponsor_name", "Widgets Inc"); err != nil {
		t.Fatalf("failed to write field: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	handler.Reserve(w, req, httprouter.Params{})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestReserve_MalformedJSON(t *testing.T) {
	handler := newTestHandler(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Reserve(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestReserve_SlotUnavailableStatus(t *testing.T) {
	mockService := &mockBookingService{
		reserveFunc: func(ctx context.Context, req *model.ReservationRequest, creative *model.CreativeUpload) (*model.CheckoutRef, error) {
			return nil, apperrors.SlotUnavailable("No available slot for that date and type")
		},
	}
	handler := newTestHandler(mockService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Reserve(w, req, httprouter.Params{})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	var resp httputil.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error response is not valid JSON: %v", err)
	}
	if resp.Code != apperrors.CodeSlotUnavailable {
		t.Errorf("expected code SLOT_UNAVAILABLE, got %s", resp.Code)
	}
}

func TestSuccess_RedirectsBrowser(t *testing.T) {
	mockService := &mockBookingService{
		confirmFunc: func(ctx context.Context, sessionID string) (string, error) {
			if sessionID != "cs_1" {
				t.Errorf("expected session cs_1, got %s", sessionID)
			}
			return "https://slotbook.test/booking-confirmed", nil
		},
	}
	handler := newTestHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/booking/success/cs_1", nil)
	w := httptest.NewRecorder()

	handler.Success(w, req, httprouter.Params{{Key: "session_id", Value: "cs_1"}})

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://slotbook.test/booking-confirmed" {
		t.Errorf("unexpected Location header: %s", loc)
	}
}

func TestList_RequiresIdentity(t *testing.T) {
	handler := newTestHandler(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	w := httptest.NewRecorder()

	handler.List(w, req, httprouter.Params{})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", w.Code)
	}
}

func TestList_WithIdentity(t *testing.T) {
	identity := auth.Identity{ID: "7c9e6679-7425-40de-944b-e07fc1f90ae7", Email: "jane@acme-weekly.test"}
	mockService := &mockBookingService{
		listFunc: func(ctx context.Context, got auth.Identity) ([]*model.BookingView, error) {
			if got.ID != identity.ID {
				t.Errorf("expected identity %s, got %s", identity.ID, got.ID)
			}
			return []*model.BookingView{}, nil
		},
	}
	handler := newTestHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), identity))
	w := httptest.NewRecorder()

	handler.List(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestFulfill_NoContent(t *testing.T) {
	identity := auth.Identity{ID: "7c9e6679-7425-40de-944b-e07fc1f90ae7"}
	handler := newTestHandler(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/65a0b1c2d3e4f5a6b7c8d9e2/fulfill", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), identity))
	w := httptest.NewRecorder()

	handler.Fulfill(w, req, httprouter.Params{{Key: "id", Value: "65a0b1c2d3e4f5a6b7c8d9e2"}})

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}
