package handler

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"slotbook/internal/auth"
	"slotbook/internal/bookings/service"
	apperrors "slotbook/pkg/errors"
	httputil "slotbook/pkg/http"
	"slotbook/pkg/logger"
	"slotbook/pkg/model"
)

const multipartMemoryLimit = 8 << 20

type BookingHandler struct {
	service      service.BookingService
	authRequired func(httprouter.Handle) httprouter.Handle
	log          *logger.Logger
}

func NewBookingHandler(
	service service.BookingService,
	authRequired func(httprouter.Handle) httprouter.Handle,
	log *logger.Logger,
) *BookingHandler {
	return &BookingHandler{
		service:      service,
		authRequired: authRequired,
		log:          log,
	}
}

// PublicPage serves the public booking form data for one creator slug.
func (h *BookingHandler) PublicPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	page, err := h.service.PublicPage(r.Context(), ps.ByName("slug"))
	if err != nil {
		h.writeError(w, "PublicPage", err)
		return
	}

	if err := httputil.WriteSuccess(w, page); err != nil {
		h.log.Error("failed to write success response", "handler", "PublicPage", "operation", "WriteSuccess", "error", err)
	}
}

// Reserve accepts the intake form. Sponsors attaching a creative file
// submit multipart/form-data; plain submissions may use JSON.
func (h *BookingHandler) Reserve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, creative, err := parseReservation(r)
	if err != nil {
		h.writeError(w, "Reserve", err)
		return
	}

	ref, err := h.service.Reserve(r.Context(), req, creative)
	if err != nil {
		h.writeError(w, "Reserve", err)
		return
	}

	if err := httputil.WriteCreated(w, ref); err != nil {
		h.log.Error("failed to write created response", "handler", "Reserve", "operation", "WriteCreated", "error", err)
	}
}

// Success is where the payment provider sends the sponsor's browser
// after checkout. The outcome is a redirect, not a JSON body.
func (h *BookingHandler) Success(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	redirectURL, err := h.service.Confirm(r.Context(), ps.ByName("session_id"))
	if err != nil {
		h.writeError(w, "Success", err)
		return
	}

	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, "List", apperrors.Unauthorized("Missing session identity"))
		return
	}

	views, err := h.service.ListForCreator(r.Context(), identity)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, views); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Fulfill(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, "Fulfill", apperrors.Unauthorized("Missing session identity"))
		return
	}

	if err := h.service.Fulfill(r.Context(), identity, ps.ByName("id")); err != nil {
		h.writeError(w, "Fulfill", err)
		return
	}

	httputil.WriteNoContent(w)
}

func parseReservation(r *http.Request) (*model.ReservationRequest, *model.CreativeUpload, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, nil, apperrors.InvalidInput("Missing or malformed Content-Type header")
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return parseMultipartReservation(r)
	}

	var req model.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, nil, apperrors.InvalidInput("Invalid request body")
	}
	return &req, nil, nil
}

func parseMultipartReservation(r *http.Request) (*model.ReservationRequest, *model.CreativeUpload, error) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		return nil, nil, apperrors.InvalidInput("Invalid multipart form")
	}

	req := &model.ReservationRequest{
		SponsorName:  r.FormValue("sponsor_name"),
		SponsorEmail: r.FormValue("sponsor_email"),
		WebsiteURL:   r.FormValue("website_url"),
		AdCopy:       r.FormValue("ad_copy"),
		Date:         r.FormValue("date"),
		SlotTypeID:   r.FormValue("slot_type_id"),
		CreatorSlug:  r.FormValue("creator_slug"),
	}

	file, header, err := r.FormFile("creative_file")
	if err != nil {
		if err == http.ErrMissingFile {
			return req, nil, nil
		}
		return nil, nil, apperrors.InvalidInput("Invalid creative file upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, apperrors.InvalidInput("Failed to read creative file")
	}

	return req, &model.CreativeUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/booking/public/:slug", h.PublicPage)
	router.POST("/api/v1/booking", h.Reserve)
	router.GET("/api/v1/booking/success/:session_id", h.Success)
	router.GET("/api/v1/bookings", h.authRequired(h.List))
	router.POST("/api/v1/bookings/:id/fulfill", h.authRequired(h.Fulfill))
}
