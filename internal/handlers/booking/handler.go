package booking

import (
	"net/http"

	"dormhub/infras/otel"
	"dormhub/internal/domains/booking/model/dto"
	"dormhub/internal/domains/booking/service"
	"dormhub/shared"
	"dormhub/shared/constant"
	gDto "dormhub/shared/dto"
	"dormhub/shared/failure"
	"dormhub/shared/validator"
	"dormhub/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/me", handler.GetMyBookings)
		routerGroup.Get("/owner", handler.GetOwnerBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/status", handler.UpdateBookingStatus)
	})
}

// CreateBooking books a room of the requested type for a date interval.
// @Summary Create a new booking
// @Description Allocate a room of the requested type for the given interval and create the booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetMyBookings lists the authenticated user's bookings.
// @Summary Get my bookings
// @Description Retrieve all bookings made by the currently authenticated user.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of user's bookings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.service.GetMyBookings(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetOwnerBookings lists bookings across the owner's dorms.
// @Summary Get bookings for my dorms
// @Description Retrieve all bookings for rooms in dorms owned by the authenticated user.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings for owned dorms"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/owner [get]
// @Security BearerAuth
func (handler *Handler) GetOwnerBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnerBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.service.GetOwnerBookings(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get owner bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Owner bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking with its room and dorm context.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingDetailResponse] "Booking details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id, ok := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if !ok {
		response.WithError(w, failure.BadRequestFromString("invalid booking id"))

		return
	}

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBookingStatus moves a booking to a new status.
// @Summary Update a booking's status
// @Description Move a booking to a new status. Bookers may only cancel; owners may set any status.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body dto.UpdateBookingStatusRequest true "Update Booking Status Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	id, ok := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if !ok {
		response.WithError(w, failure.BadRequestFromString("invalid booking id"))

		return
	}

	req := dto.UpdateBookingStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.UpdateStatus(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking status updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}
