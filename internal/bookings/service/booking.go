package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"slotbook/internal/auth"
	bookingserrors "slotbook/internal/bookings/errors"
	"slotbook/internal/bookings/repository"
	"slotbook/internal/bookings/validator"
	creatorserrors "slotbook/internal/creators/errors"
	creatorsrepo "slotbook/internal/creators/repository"
	"slotbook/internal/events"
	"slotbook/internal/mailer"
	"slotbook/internal/payments"
	slotserrors "slotbook/internal/slots/errors"
	slotsrepo "slotbook/internal/slots/repository"
	"slotbook/internal/storage"
	slottypeserrors "slotbook/internal/slottypes/errors"
	slottypesrepo "slotbook/internal/slottypes/repository"
	"slotbook/pkg/config"
	apperrors "slotbook/pkg/errors"
	"slotbook/pkg/model"
	"slotbook/pkg/sanitizer"
)

const sideEffectTimeout = 30 * time.Second

type BookingService interface {
	PublicPage(ctx context.Context, slug string) (*model.BookingPage, error)
	Reserve(ctx context.Context, req *model.ReservationRequest, creative *model.CreativeUpload) (*model.CheckoutRef, error)
	Confirm(ctx context.Context, sessionID string) (string, error)
	ListForCreator(ctx context.Context, identity auth.Identity) ([]*model.BookingView, error)
	Fulfill(ctx context.Context, identity auth.Identity, bookingID string) error
}

type bookingService struct {
	repo         repository.BookingRepository
	holdRepo     repository.SlotHoldRepository
	creatorRepo  creatorsrepo.CreatorRepository
	slotRepo     slotsrepo.SlotRepository
	slotTypeRepo slottypesrepo.SlotTypeRepository
	checkout     payments.CheckoutClient
	uploader     storage.Uploader
	mailer       mailer.Mailer
	events       *events.Publisher
	validator    *validator.BookingValidator
	cfg          *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	holdRepo repository.SlotHoldRepository,
	creatorRepo creatorsrepo.CreatorRepository,
	slotRepo slotsrepo.SlotRepository,
	slotTypeRepo slottypesrepo.SlotTypeRepository,
	checkout payments.CheckoutClient,
	uploader storage.Uploader,
	bookingMailer mailer.Mailer,
	eventPublisher *events.Publisher,
	bookingValidator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:         repo,
		holdRepo:     holdRepo,
		creatorRepo:  creatorRepo,
		slotRepo:     slotRepo,
		slotTypeRepo: slotTypeRepo,
		checkout:     checkout,
		uploader:     uploader,
		mailer:       bookingMailer,
		events:       eventPublisher,
		validator:    bookingValidator,
		cfg:          cfg,
	}
}

// PublicPage assembles everything the booking form needs for one
// creator: the public profile, the priced offerings and every slot
// still marked available.
func (s *bookingService) PublicPage(ctx context.Context, slug string) (*model.BookingPage, error) {
	slug = sanitizer.NormalizeSlug(slug)
	if slug == "" {
		return nil, apperrors.InvalidInput("Slug cannot be empty")
	}

	creator, err := s.creatorRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, creatorserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Creator")
		}
		return nil, apperrors.Internal("Failed to retrieve creator", err)
	}

	slotTypes, err := s.slotTypeRepo.FindByCreator(ctx, creator.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve slot types", err)
	}
	if slotTypes == nil {
		slotTypes = []*model.SlotType{}
	}

	slots, err := s.slotRepo.FindPublicAvailable(ctx, creator.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve available slots", err)
	}
	if slots == nil {
		slots = []*model.SlotView{}
	}

	return &model.BookingPage{
		Profile: model.PublicProfile{
			ID:             creator.ID,
			NewsletterName: creator.NewsletterName,
			Timezone:       creator.Timezone,
		},
		SlotTypes: slotTypes,
		Slots:     slots,
	}, nil
}

// Reserve validates a sponsor's intake submission, places an exclusive
// hold on the matched slot and creates the hosted checkout session. No
// booking row exists yet; everything the confirmation callback needs
// travels in the session metadata. The slot itself stays available
// until payment lands, protected only by the hold.
func (s *bookingService) Reserve(ctx context.Context, req *model.ReservationRequest, creative *model.CreativeUpload) (*model.CheckoutRef, error) {
	s.sanitizeReservation(req)
	if err := s.validator.ValidateReservation(req); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return nil, apperrors.Validation("Invalid reservation input", map[string]any{"error": err.Error()})
	}

	creator, err := s.creatorRepo.FindBySlug(ctx, req.CreatorSlug)
	if err != nil {
		if errors.Is(err, creatorserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Creator")
		}
		return nil, apperrors.Internal("Failed to retrieve creator", err)
	}

	slotType, err := s.slotTypeRepo.FindByID(ctx, req.SlotTypeID)
	if err != nil {
		if errors.Is(err, slottypeserrors.ErrNotFound) || errors.Is(err, slottypeserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Slot type", req.SlotTypeID)
		}
		return nil, apperrors.Internal("Failed to retrieve slot type", err)
	}
	if slotType.CreatorID != creator.ID {
		return nil, apperrors.NotFoundWithID("Slot type", req.SlotTypeID)
	}

	slot, err := s.slotRepo.FindAvailable(ctx, creator.ID, req.Date, req.SlotTypeID)
	if err != nil {
		if errors.Is(err, slotserrors.ErrNotFound) {
			return nil, apperrors.SlotUnavailable("No available slot for that date and type")
		}
		return nil, apperrors.Internal("Failed to look up slot", err)
	}

	if err := s.holdRepo.Acquire(ctx, slot.ID, s.cfg.SlotHoldTTL); err != nil {
		if errors.Is(err, bookingserrors.ErrSlotHeld) {
			return nil, apperrors.SlotUnavailable("This slot is being booked by someone else right now")
		}
		return nil, apperrors.Internal("Failed to reserve slot", err)
	}

	checkoutRef, err := s.createCheckout(ctx, req, creative, creator, slotType, slot)
	if err != nil {
		if releaseErr := s.holdRepo.Release(ctx, slot.ID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot hold", "slot_id", slot.ID, "error", releaseErr)
		}
		return nil, err
	}

	s.cfg.Log.Info("Checkout session created",
		"session_id", checkoutRef.SessionID,
		"slot_id", slot.ID,
		"creator_id", creator.ID,
		"date", req.Date,
	)
	return checkoutRef, nil
}

func (s *bookingService) createCheckout(
	ctx context.Context,
	req *model.ReservationRequest,
	creative *model.CreativeUpload,
	creator *model.Creator,
	slotType *model.SlotType,
	slot *model.Slot,
) (*model.CheckoutRef, error) {
	var creativeURL string
	if creative != nil && len(creative.Data) > 0 {
		url, err := s.uploader.UploadCreative(ctx, creative.Filename, creative.ContentType, creative.Data)
		if err != nil {
			s.cfg.Log.Error("Creative upload failed", "filename", creative.Filename, "error", err)
			return nil, apperrors.Upstream("storage provider", err)
		}
		creativeURL = url
	}

	metadata := payments.CheckoutMetadata{
		SponsorName:     req.SponsorName,
		SponsorEmail:    req.SponsorEmail,
		WebsiteURL:      req.WebsiteURL,
		AdCopy:          req.AdCopy,
		Date:            req.Date,
		SlotTypeID:      req.SlotTypeID,
		CreatorSlug:     req.CreatorSlug,
		CreativeFileURL: creativeURL,
		SlotID:          slot.ID,
		CreatorID:       creator.ID,
	}

	session, err := s.checkout.CreateSession(ctx, payments.CheckoutRequest{
		ProductName: fmt.Sprintf("%s sponsorship: %s on %s", creator.NewsletterName, slotType.Name, req.Date),
		AmountCents: payments.AmountCents(slotType.Price),
		Currency:    s.cfg.CheckoutCurrency,
		SuccessURL:  s.cfg.BaseURL + "/api/v1/booking/success/{CHECKOUT_SESSION_ID}",
		CancelURL:   s.cfg.BaseURL + "/book/" + creator.Slug,
		Metadata:    metadata.ToMap(),
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create checkout session", "slot_id", slot.ID, "error", err)
		return nil, apperrors.Upstream("payment provider", err)
	}

	if err := s.holdRepo.SetSession(ctx, slot.ID, session.ID); err != nil {
		s.cfg.Log.Warn("Failed to attach session to hold", "slot_id", slot.ID, "error", err)
	}

	return &model.CheckoutRef{SessionID: session.ID, URL: session.URL}, nil
}

// Confirm handles the return from the hosted payment page. It re-reads
// the session from the provider, never trusting the redirect alone, and
// commits the booking in one transaction: flip the slot from available
// to booked, then insert the booking row. Either both happen or
// neither. The returned URL is where the sponsor's browser goes next.
func (s *bookingService) Confirm(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", apperrors.InvalidInput("Session ID cannot be empty")
	}

	session, err := s.checkout.GetSession(ctx, sessionID)
	if err != nil {
		s.cfg.Log.Error("Failed to retrieve checkout session", "session_id", sessionID, "error", err)
		return "", apperrors.Upstream("payment provider", err)
	}

	// An unpaid session always ends in the failure redirect, even when
	// its metadata is unusable; the metadata only locates the hold to
	// release and the creator's page to return to.
	if session.PaymentStatus != payments.StatusPaid {
		failureURL := s.cfg.BaseURL + "?payment=failed"
		if meta, parseErr := payments.ParseMetadata(session.Metadata); parseErr == nil {
			s.cfg.Log.Info("Checkout not paid, releasing hold",
				"session_id", sessionID,
				"slot_id", meta.SlotID,
				"payment_status", session.PaymentStatus,
			)
			if releaseErr := s.holdRepo.Release(ctx, meta.SlotID); releaseErr != nil {
				s.cfg.Log.Warn("Failed to release slot hold", "slot_id", meta.SlotID, "error", releaseErr)
			}
			failureURL = s.cfg.BaseURL + "/book/" + meta.CreatorSlug + "?payment=failed"
		} else {
			s.cfg.Log.Warn("Unpaid session carries unusable metadata", "session_id", sessionID, "error", parseErr)
		}
		return failureURL, nil
	}

	meta, err := payments.ParseMetadata(session.Metadata)
	if err != nil {
		s.cfg.Log.Error("Checkout session metadata rejected", "session_id", sessionID, "error", err)
		return "", apperrors.Internal("Checkout session metadata is invalid", err)
	}

	// Sponsors can reload the success page; a booking that already
	// exists for this slot and sponsor means this session was processed.
	if existing, findErr := s.repo.FindBySlotID(ctx, meta.SlotID); findErr == nil {
		if existing.SponsorEmail == meta.SponsorEmail {
			return s.cfg.BaseURL + "/booking-confirmed", nil
		}
		return "", apperrors.SlotUnavailable("Slot was booked by a different sponsor")
	}

	booking := &model.Booking{
		SlotID:          meta.SlotID,
		CreatorID:       meta.CreatorID,
		SponsorName:     meta.SponsorName,
		SponsorEmail:    meta.SponsorEmail,
		WebsiteURL:      meta.WebsiteURL,
		AdCopy:          meta.AdCopy,
		CreativeFileURL: meta.CreativeFileURL,
		PaymentStatus:   model.PaymentStatusPaid,
	}
	if err := s.validator.Validate(booking); err != nil {
		return "", apperrors.Internal("Assembled booking failed validation", err)
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.slotRepo.UpdateStatusFrom(sessCtx, meta.SlotID, "", model.SlotStatusAvailable, model.SlotStatusBooked); err != nil {
			if errors.Is(err, slotserrors.ErrStatusMismatch) {
				return apperrors.SlotUnavailable("Slot is no longer available")
			}
			return apperrors.Internal("Failed to mark slot booked", err)
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrSlotTaken) {
				return apperrors.SlotUnavailable("Slot already has a booking")
			}
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Booking confirmation failed", "session_id", sessionID, "slot_id", meta.SlotID, "error", err)
		return "", err
	}

	if releaseErr := s.holdRepo.Release(ctx, meta.SlotID); releaseErr != nil {
		s.cfg.Log.Warn("Failed to release slot hold", "slot_id", meta.SlotID, "error", releaseErr)
	}

	s.cfg.Log.Info("Booking confirmed",
		"booking_id", booking.ID,
		"slot_id", meta.SlotID,
		"creator_id", meta.CreatorID,
		"sponsor_email", meta.SponsorEmail,
	)

	// Notifications and events must never block or fail the redirect.
	go s.afterConfirmation(booking, meta)

	return s.cfg.BaseURL + "/booking-confirmed", nil
}

// afterConfirmation sends both confirmation emails and publishes the
// booking event. Runs detached from the request with its own deadline;
// failures are logged and dropped.
func (s *bookingService) afterConfirmation(booking *model.Booking, meta *payments.CheckoutMetadata) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	creator, err := s.creatorRepo.FindByID(ctx, meta.CreatorID)
	if err != nil {
		s.cfg.Log.Error("Failed to load creator for notifications", "creator_id", meta.CreatorID, "error", err)
		return
	}

	var price float64
	slotTypeName := meta.SlotTypeID
	if slotType, err := s.slotTypeRepo.FindByID(ctx, meta.SlotTypeID); err == nil {
		price = slotType.Price
		slotTypeName = slotType.Name
	} else {
		s.cfg.Log.Warn("Failed to load slot type for notifications", "slot_type_id", meta.SlotTypeID, "error", err)
	}

	email := mailer.BookingEmail{
		SponsorName:     booking.SponsorName,
		SponsorEmail:    booking.SponsorEmail,
		NewsletterName:  creator.NewsletterName,
		CreatorEmail:    creator.Email,
		WebsiteURL:      booking.WebsiteURL,
		AdCopy:          booking.AdCopy,
		Date:            meta.Date,
		SlotTypeName:    slotTypeName,
		Price:           price,
		CreativeFileURL: booking.CreativeFileURL,
		DashboardURL:    s.cfg.BaseURL + "/dashboard",
	}

	if err := s.mailer.SendSponsorConfirmation(ctx, email); err != nil {
		s.cfg.Log.Error("Failed to send sponsor confirmation", "booking_id", booking.ID, "error", err)
	}
	if err := s.mailer.SendCreatorNotification(ctx, email); err != nil {
		s.cfg.Log.Error("Failed to send creator notification", "booking_id", booking.ID, "error", err)
	}

	if err := s.events.PublishBookingConfirmed(ctx, events.BookingConfirmed{
		BookingID:    booking.ID,
		SlotID:       booking.SlotID,
		CreatorID:    booking.CreatorID,
		SponsorEmail: booking.SponsorEmail,
		Date:         meta.Date,
		SlotTypeName: slotTypeName,
		Amount:       price,
		ConfirmedAt:  booking.CreatedAt,
	}); err != nil {
		s.cfg.Log.Error("Failed to publish booking event", "booking_id", booking.ID, "error", err)
	}
}

func (s *bookingService) ListForCreator(ctx context.Context, identity auth.Identity) ([]*model.BookingView, error) {
	views, err := s.repo.FindViewsByCreator(ctx, identity.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if views == nil {
		views = []*model.BookingView{}
	}
	return views, nil
}

// Fulfill marks the booked slot behind a booking as fulfilled. The
// creator_id rides in the update filter, so one creator can never
// fulfill another's slot.
func (s *bookingService) Fulfill(ctx context.Context, identity auth.Identity, bookingID string) error {
	if bookingID == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", bookingID)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to retrieve booking", err)
	}
	if booking.CreatorID != identity.ID {
		return apperrors.NotFoundWithID("Booking", bookingID)
	}

	err = s.slotRepo.UpdateStatusFrom(ctx, booking.SlotID, identity.ID, model.SlotStatusBooked, model.SlotStatusFulfilled)
	if err != nil {
		if errors.Is(err, slotserrors.ErrStatusMismatch) {
			return apperrors.Conflict("Slot is not in booked status")
		}
		return apperrors.Internal("Failed to mark slot fulfilled", err)
	}

	s.cfg.Log.Info("Booking fulfilled", "booking_id", bookingID, "slot_id", booking.SlotID, "creator_id", identity.ID)
	return nil
}

func (s *bookingService) sanitizeReservation(req *model.ReservationRequest) {
	req.SponsorName = sanitizer.NormalizeName(req.SponsorName)
	req.SponsorEmail = sanitizer.NormalizeEmail(req.SponsorEmail)
	req.WebsiteURL = sanitizer.NormalizeURL(req.WebsiteURL)
	req.AdCopy = sanitizer.NormalizeAdCopy(req.AdCopy)
	req.CreatorSlug = sanitizer.NormalizeSlug(req.CreatorSlug)
}
