package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"dormhub/config"
	"dormhub/infras/kafka"
	"dormhub/infras/otel"
	"dormhub/internal/domains/booking/model"
	"dormhub/internal/domains/booking/model/dto"
	"dormhub/internal/domains/booking/repository"
	roomModel "dormhub/internal/domains/room/model"
	"dormhub/shared"
	"dormhub/shared/cache"
	"dormhub/shared/constant"
	gDto "dormhub/shared/dto"
	"dormhub/shared/failure"
	gModel "dormhub/shared/model"
	"dormhub/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking     = "booking:get"
	cacheGetAllBooking  = "booking:gets"
	cacheCountBooking   = "booking:count"
	cacheBookerBookings = "booking:booker"
	cacheOwnerBookings  = "booking:owner"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id int64) (dto.BookingResponse, error)
	Get(ctx context.Context, id int64) (dto.BookingDetailResponse, error)
	GetMyBookings(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetOwnerBookings(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	producer kafka.Client
}

func New(repo repository.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, producer kafka.Client) Booking {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		producer: producer,
	}
}

// Create allocates a room for the requested type and interval. Candidates
// are locked and walked in (cur_occupancy, id) order; the first room whose
// overlapping active bookings stay under the type's max occupancy wins.
// Everything from the candidate scan to the occupancy bookkeeping happens
// in one transaction, so a failure leaves no partial state behind.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := shared.ActorID(ctx)
	if !ok {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	begin, end, err := req.ParseDates()
	if err != nil {
		return res, failure.BadRequestFromString("dates must use the YYYY-MM-DD format") // nolint:wrapcheck
	}

	today := startOfToday()

	if begin.Before(today) {
		return res, failure.BadRequestFromString("begin date must not be in the past") // nolint:wrapcheck
	}

	if !end.After(begin) {
		return res, failure.BadRequestFromString("end date must be after begin date") // nolint:wrapcheck
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil && tx != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	roomType, err := s.repo.GetRoomTypeTx(ctx, tx, req.RoomTypeID)
	if err != nil {
		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == 0 {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	candidates, err := s.repo.GetCandidateRoomsTx(ctx, tx, req.RoomTypeID)
	if err != nil {
		return res, fmt.Errorf("failed to get candidate rooms: %w", err)
	}

	if len(candidates) == 0 {
		return res, failure.NotFound("no rooms found for this room type") // nolint:wrapcheck
	}

	var chosen *roomModel.Room

	for i := range candidates {
		overlapping, countErr := s.repo.CountOverlappingTx(ctx, tx, candidates[i].ID, begin, end)
		if countErr != nil {
			err = countErr

			return res, fmt.Errorf("failed to count overlapping bookings: %w", err)
		}

		if overlapping < roomType.MaxOccupancy {
			chosen = &candidates[i]

			break
		}
	}

	if chosen == nil {
		err = failure.Conflict("no available rooms for the selected dates")

		return res, err // nolint:wrapcheck
	}

	actorStr := strconv.FormatInt(actor, 10)
	booking := model.Booking{
		BookerID:      actor,
		RoomID:        chosen.ID,
		DepositAmount: roomType.DepositAmount,
		BeginAt:       begin,
		EndAt:         end,
		Status:        model.StatusPendingOwnerConfirmation,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actorStr,
			ModifiedBy: actorStr,
		},
	}

	booking, err = s.repo.InsertReturningTx(ctx, tx, booking)
	if err != nil {
		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	if begin.Equal(today) {
		if err = s.repo.IncrementRoomOccupancyTx(ctx, tx, chosen.ID); err != nil {
			return res, fmt.Errorf("failed to increment room occupancy: %w", err)
		}
	}

	activeToday, err := s.repo.CountActiveOnDateTx(ctx, tx, chosen.ID, today)
	if err != nil {
		return res, fmt.Errorf("failed to count active bookings: %w", err)
	}

	if activeToday >= roomType.MaxOccupancy {
		if err = s.repo.SetRoomStatusTx(ctx, tx, chosen.ID, roomModel.StatusOccupied); err != nil {
			return res, fmt.Errorf("failed to set room status: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit booking transaction")

		return res, fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	res.FromModel(booking)

	s.publishEvent(ctx, dto.EventTypeCreated, booking)
	s.invalidateBookingCaches(ctx, booking.ID)

	return res, nil
}

// UpdateStatus moves a booking to a new status. The actor must be the
// booker or the owning user; actors who are only the booker may only
// cancel. Source state is deliberately not validated.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := shared.ActorID(ctx)
	if !ok {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	if !model.ValidStatus(req.Status) {
		return res, failure.BadRequestFromString("invalid booking status") // nolint:wrapcheck
	}

	access, err := s.repo.GetAccess(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking access")

		return res, fmt.Errorf("failed to get booking access: %w", err)
	}

	if access.ID == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	isBooker := access.BookerID == actor
	isOwner := access.OwnerUserID == actor

	if !isBooker && !isOwner {
		return res, failure.Forbidden("booking does not belong to this user") // nolint:wrapcheck
	}

	if isBooker && !isOwner && req.Status != model.StatusCancelled {
		return res, failure.Forbidden("bookers may only cancel their bookings") // nolint:wrapcheck
	}

	booking, err := s.repo.UpdateStatusReturning(ctx, id, req.Status, strconv.FormatInt(actor, 10))
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	res.FromModel(booking)

	s.publishEvent(ctx, dto.EventTypeStatusChanged, booking)
	s.invalidateBookingCaches(ctx, booking.ID)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, strconv.FormatInt(id, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if detail.ID == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromDetail(detail)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMyBookings(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMyBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := shared.ActorID(ctx)
	if !ok {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	details, err := s.repo.GetDetailsByBooker(ctx, actor, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	total, err := s.repo.Count(ctx, shared.FilterByID(actor, model.FieldBookerID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	res.FromDetails(details, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) GetOwnerBookings(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOwnerBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := shared.ActorID(ctx)
	if !ok {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	details, err := s.repo.GetDetailsByOwnerUser(ctx, actor, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner bookings")

		return res, fmt.Errorf("failed to get owner bookings: %w", err)
	}

	res.FromDetails(details, len(details), params.Limit)

	return res, nil
}

// publishEvent emits the booking lifecycle event after commit. Publishing
// failures are logged and never surfaced to the caller.
func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := dto.NewEvent(eventType, booking)
		message := kafka.Message{
			Key:   strconv.FormatInt(booking.ID, 10),
			Value: event,
		}

		if err := s.producer.SendMessages(c, s.cfg.Kafka.BookingTopic, message); err != nil {
			log.Error().Err(err).Str("event", eventType).Int64("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, bookingID int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, strconv.FormatInt(bookingID, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheBookerBookings)
		shared.InvalidateCaches(c, s.cache, cacheOwnerBookings)
	}()
}

// startOfToday returns today's date at midnight in the app timezone,
// matching how booking dates are parsed.
func startOfToday() time.Time {
	now := timezone.Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timezone.GetLocation())
}
