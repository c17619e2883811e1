package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"dormhub/config"
	kafkaMocks "dormhub/infras/kafka/mocks"
	"dormhub/infras/otel/mocks"
	bookingMocks "dormhub/internal/domains/booking/mocks"
	"dormhub/internal/domains/booking/model"
	"dormhub/internal/domains/booking/model/dto"
	"dormhub/internal/domains/booking/service"
	roomModel "dormhub/internal/domains/room/model"
	cacheMocks "dormhub/shared/cache/mocks"
	"dormhub/shared/constant"
	"dormhub/shared/failure"
	gDto "dormhub/shared/dto"
	"dormhub/shared/timezone"
)

type bookingFixture struct {
	repo     *bookingMocks.MockBooking
	cache    *cacheMocks.MockRedisCache
	producer *kafkaMocks.MockClient
	svc      service.Booking
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := bookingMocks.NewMockBooking(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)
	producer := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.BookingTopic = "booking-events"

	return &bookingFixture{
		repo:     repo,
		cache:    cache,
		producer: producer,
		svc:      service.New(repo, cfg, cache, mocks.NewOtel(), producer),
	}
}

// allowAsync accepts the fire-and-forget event publish and cache
// invalidation goroutines that follow a successful write.
func (f *bookingFixture) allowAsync() {
	f.producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func newTestTx(t *testing.T) *sqlx.Tx {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	mock.MatchExpectationsInOrder(false)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectRollback()

	tx, err := sqlx.NewDb(db, "sqlmock").Beginx()
	assert.NoError(t, err)

	return tx
}

func actorContext(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func dateString(daysFromToday int) string {
	return timezone.Format(timezone.Now().AddDate(0, 0, daysFromToday), constant.DateOnlyFormat)
}

func TestBookingService_Create_Validation(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		req      dto.CreateBookingRequest
		wantCode int
	}{
		{
			name:     "missing actor",
			ctx:      context.Background(),
			req:      dto.CreateBookingRequest{RoomTypeID: 1, BeginAt: dateString(1), EndAt: dateString(3)},
			wantCode: 401,
		},
		{
			name:     "malformed dates",
			ctx:      actorContext("7"),
			req:      dto.CreateBookingRequest{RoomTypeID: 1, BeginAt: "01-02-2026", EndAt: "01-03-2026"},
			wantCode: 400,
		},
		{
			name:     "begin in the past",
			ctx:      actorContext("7"),
			req:      dto.CreateBookingRequest{RoomTypeID: 1, BeginAt: dateString(-1), EndAt: dateString(3)},
			wantCode: 400,
		},
		{
			name:     "end equals begin",
			ctx:      actorContext("7"),
			req:      dto.CreateBookingRequest{RoomTypeID: 1, BeginAt: dateString(2), EndAt: dateString(2)},
			wantCode: 400,
		},
		{
			name:     "end before begin",
			ctx:      actorContext("7"),
			req:      dto.CreateBookingRequest{RoomTypeID: 1, BeginAt: dateString(5), EndAt: dateString(2)},
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)

			_, err := f.svc.Create(tt.ctx, tt.req)

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_Create_RoomTypeNotFound(t *testing.T) {
	f := newBookingFixture(t)
	tx := newTestTx(t)

	f.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)
	f.repo.EXPECT().GetRoomTypeTx(gomock.Any(), tx, int64(42)).Return(roomModel.RoomType{}, nil)

	_, err := f.svc.Create(actorContext("7"), dto.CreateBookingRequest{
		RoomTypeID: 42,
		BeginAt:    dateString(1),
		EndAt:      dateString(3),
	})

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestBookingService_Create_NoRoomsForType(t *testing.T) {
	f := newBookingFixture(t)
	tx := newTestTx(t)

	f.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)
	f.repo.EXPECT().GetRoomTypeTx(gomock.Any(), tx, int64(42)).
		Return(roomModel.RoomType{ID: 42, MaxOccupancy: 1}, nil)
	f.repo.EXPECT().GetCandidateRoomsTx(gomock.Any(), tx, int64(42)).
		Return([]roomModel.Room{}, nil)

	_, err := f.svc.Create(actorContext("7"), dto.CreateBookingRequest{
		RoomTypeID: 42,
		BeginAt:    dateString(1),
		EndAt:      dateString(3),
	})

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestBookingService_Create_AllRoomsBooked(t *testing.T) {
	f := newBookingFixture(t)
	tx := newTestTx(t)

	candidates := []roomModel.Room{
		{ID: 1, RoomTypeID: 42},
		{ID: 2, RoomTypeID: 42},
	}

	f.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)
	f.repo.EXPECT().GetRoomTypeTx(gomock.Any(), tx, int64(42)).
		Return(roomModel.RoomType{ID: 42, MaxOccupancy: 1}, nil)
	f.repo.EXPECT().GetCandidateRoomsTx(gomock.Any(), tx, int64(42)).
		Return(candidates, nil)
	f.repo.EXPECT().CountOverlappingTx(gomock.Any(), tx, int64(1), gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().CountOverlappingTx(gomock.Any(), tx, int64(2), gomock.Any(), gomock.Any()).Return(1, nil)

	_, err := f.svc.Create(actorContext("7"), dto.CreateBookingRequest{
		RoomTypeID: 42,
		BeginAt:    dateString(1),
		EndAt:      dateString(3),
	})

	assert.Error(t, err)
	assert.Equal(t, 409, failure.GetCode(err))
}

func TestBookingService_Create_FutureBegin(t *testing.T) {
	f := newBookingFixture(t)
	f.allowAsync()

	tx := newTestTx(t)

	roomType := roomModel.RoomType{ID: 42, MaxOccupancy: 1, DepositAmount: 3500}
	candidates := []roomModel.Room{{ID: 9, RoomTypeID: 42}}

	f.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)
	f.repo.EXPECT().GetRoomTypeTx(gomock.Any(), tx, int64(42)).Return(roomType, nil)
	f.repo.EXPECT().GetCandidateRoomsTx(gomock.Any(), tx, int64(42)).Return(candidates, nil)
	f.repo.EXPECT().CountOverlappingTx(gomock.Any(), tx, int64(9), gomock.Any(), gomock.Any()).Return(0, nil)
	f.repo.EXPECT().InsertReturningTx(gomock.Any(), tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) (model.Booking, error) {
			assert.Equal(t, int64(7), booking.BookerID)
			assert.Equal(t, int64(9), booking.RoomID)
			assert.Equal(t, roomType.DepositAmount, booking.DepositAmount)
			assert.Equal(t, model.StatusPendingOwnerConfirmation, booking.Status)

			booking.ID = 100

			return booking, nil
		})
	// Begin is in the future, so occupancy is untouched.
	f.repo.EXPECT().CountActiveOnDateTx(gomock.Any(), tx, int64(9), gomock.Any()).Return(0, nil)

	res, err := f.svc.Create(actorContext("7"), dto.CreateBookingRequest{
		RoomTypeID: 42,
		BeginAt:    dateString(2),
		EndAt:      dateString(5),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(100), res.ID)
	assert.Equal(t, model.StatusPendingOwnerConfirmation, res.Status)
	assert.Equal(t, roomType.DepositAmount, res.DepositAmount)
}

func TestBookingService_Create_BeginToday_MarksRoomOccupied(t *testing.T) {
	f := newBookingFixture(t)
	f.allowAsync()

	tx := newTestTx(t)

	roomType := roomModel.RoomType{ID: 42, MaxOccupancy: 1, DepositAmount: 3500}
	candidates := []roomModel.Room{{ID: 9, RoomTypeID: 42}}

	f.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)
	f.repo.EXPECT().GetRoomTypeTx(gomock.Any(), tx, int64(42)).Return(roomType, nil)
	f.repo.EXPECT().GetCandidateRoomsTx(gomock.Any(), tx, int64(42)).Return(candidates, nil)
	f.repo.EXPECT().CountOverlappingTx(gomock.Any(), tx, int64(9), gomock.Any(), gomock.Any()).Return(0, nil)
	f.repo.EXPECT().InsertReturningTx(gomock.Any(), tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) (model.Booking, error) {
			booking.ID = 101

			return booking, nil
		})
	f.repo.EXPECT().IncrementRoomOccupancyTx(gomock.Any(), tx, int64(9)).Return(nil)
	f.repo.EXPECT().CountActiveOnDateTx(gomock.Any(), tx, int64(9), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().SetRoomStatusTx(gomock.Any(), tx, int64(9), roomModel.StatusOccupied).Return(nil)

	res, err := f.svc.Create(actorContext("7"), dto.CreateBookingRequest{
		RoomTypeID: 42,
		BeginAt:    dateString(0),
		EndAt:      dateString(30),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(101), res.ID)
}

func TestBookingService_Create_SkipsFullRoom(t *testing.T) {
	f := newBookingFixture(t)
	f.allowAsync()

	tx := newTestTx(t)

	// Two-bed rooms: the first is full for the interval, the second has
	// one bed taken and still accepts the booking.
	roomType := roomModel.RoomType{ID: 42, MaxOccupancy: 2, DepositAmount: 2000}
	candidates := []roomModel.Room{
		{ID: 1, RoomTypeID: 42},
		{ID: 2, RoomTypeID: 42, CurOccupancy: 1},
	}

	f.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)
	f.repo.EXPECT().GetRoomTypeTx(gomock.Any(), tx, int64(42)).Return(roomType, nil)
	f.repo.EXPECT().GetCandidateRoomsTx(gomock.Any(), tx, int64(42)).Return(candidates, nil)
	f.repo.EXPECT().CountOverlappingTx(gomock.Any(), tx, int64(1), gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().CountOverlappingTx(gomock.Any(), tx, int64(2), gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().InsertReturningTx(gomock.Any(), tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) (model.Booking, error) {
			assert.Equal(t, int64(2), booking.RoomID)

			booking.ID = 102

			return booking, nil
		})
	f.repo.EXPECT().CountActiveOnDateTx(gomock.Any(), tx, int64(2), gomock.Any()).Return(1, nil)

	res, err := f.svc.Create(actorContext("7"), dto.CreateBookingRequest{
		RoomTypeID: 42,
		BeginAt:    dateString(1),
		EndAt:      dateString(4),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), res.RoomID)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	access := model.Access{
		ID:          100,
		BookerID:    7,
		Status:      model.StatusPendingOwnerConfirmation,
		RoomID:      9,
		OwnerUserID: 20,
	}

	tests := []struct {
		name      string
		actor     string
		status    string
		setupMock func(f *bookingFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "invalid status literal",
			actor:     "7",
			status:    "approved",
			setupMock: func(_ *bookingFixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:   "booking not found",
			actor:  "7",
			status: model.StatusCancelled,
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().GetAccess(gomock.Any(), int64(100)).Return(model.Access{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name:   "stranger is rejected",
			actor:  "99",
			status: model.StatusCancelled,
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().GetAccess(gomock.Any(), int64(100)).Return(access, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name:   "booker cannot confirm their own booking",
			actor:  "7",
			status: model.StatusPendingDepositPayment,
			setupMock: func(f *bookingFixture) {
				f.repo.EXPECT().GetAccess(gomock.Any(), int64(100)).Return(access, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name:   "booker cancels",
			actor:  "7",
			status: model.StatusCancelled,
			setupMock: func(f *bookingFixture) {
				f.allowAsync()
				f.repo.EXPECT().GetAccess(gomock.Any(), int64(100)).Return(access, nil)
				f.repo.EXPECT().UpdateStatusReturning(gomock.Any(), int64(100), model.StatusCancelled, "7").
					Return(model.Booking{ID: 100, Status: model.StatusCancelled}, nil)
			},
			wantErr: false,
		},
		{
			name:   "owner confirms",
			actor:  "20",
			status: model.StatusPendingDepositPayment,
			setupMock: func(f *bookingFixture) {
				f.allowAsync()
				f.repo.EXPECT().GetAccess(gomock.Any(), int64(100)).Return(access, nil)
				f.repo.EXPECT().UpdateStatusReturning(gomock.Any(), int64(100), model.StatusPendingDepositPayment, "20").
					Return(model.Booking{ID: 100, Status: model.StatusPendingDepositPayment}, nil)
			},
			wantErr: false,
		},
		{
			name:   "owner rewinds an ended lease",
			actor:  "20",
			status: model.StatusActiveRental,
			setupMock: func(f *bookingFixture) {
				f.allowAsync()

				ended := access
				ended.Status = model.StatusLeaseEnded

				f.repo.EXPECT().GetAccess(gomock.Any(), int64(100)).Return(ended, nil)
				f.repo.EXPECT().UpdateStatusReturning(gomock.Any(), int64(100), model.StatusActiveRental, "20").
					Return(model.Booking{ID: 100, Status: model.StatusActiveRental}, nil)
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			tt.setupMock(f)

			res, err := f.svc.UpdateStatus(actorContext(tt.actor), dto.UpdateBookingStatusRequest{Status: tt.status}, 100)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.status, res.Status)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	detail := model.Detail{
		Booking: model.Booking{
			ID:       100,
			BookerID: 7,
			RoomID:   9,
			Status:   model.StatusPendingOwnerConfirmation,
			BeginAt:  timezone.Now(),
			EndAt:    timezone.Now().AddDate(0, 1, 0),
		},
		RoomName:     "A-101",
		RoomTypeID:   42,
		RoomTypeName: "Standard",
		MaxOccupancy: 2,
		DormID:       3,
		DormName:     "Sunrise Dorm",
	}

	tests := []struct {
		name      string
		setupMock func(f *bookingFixture)
		wantErr   bool
	}{
		{
			name: "cache hit",
			setupMock: func(f *bookingFixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, found in db",
			setupMock: func(f *bookingFixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().GetDetail(gomock.Any(), int64(100)).Return(detail, nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func(f *bookingFixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().GetDetail(gomock.Any(), int64(100)).Return(model.Detail{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Get(context.Background(), 100)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_GetMyBookings(t *testing.T) {
	f := newBookingFixture(t)

	details := []model.Detail{
		{Booking: model.Booking{ID: 100, BookerID: 7, BeginAt: timezone.Now(), EndAt: timezone.Now().AddDate(0, 1, 0)}},
	}

	f.repo.EXPECT().GetDetailsByBooker(gomock.Any(), int64(7), gomock.Any()).Return(details, nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)

	res, err := f.svc.GetMyBookings(actorContext("7"), gDto.QueryParams{Limit: 10, Page: 1})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)
}

func TestBookingService_GetOwnerBookings(t *testing.T) {
	f := newBookingFixture(t)

	details := []model.Detail{
		{Booking: model.Booking{ID: 100, BookerID: 7, BeginAt: timezone.Now(), EndAt: timezone.Now().AddDate(0, 1, 0)}},
		{Booking: model.Booking{ID: 101, BookerID: 8, BeginAt: timezone.Now(), EndAt: timezone.Now().AddDate(0, 2, 0)}},
	}

	f.repo.EXPECT().GetDetailsByOwnerUser(gomock.Any(), int64(20), gomock.Any()).Return(details, nil)

	res, err := f.svc.GetOwnerBookings(actorContext("20"), gDto.QueryParams{Limit: 10, Page: 1})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Len(t, res.Bookings, 2)
}

func TestBookingService_Create_HalfOpenIntervalBoundary(t *testing.T) {
	// A booking starting the day another ends must not collide: the
	// repository's overlap window is half-open, so the count for the new
	// interval comes back zero and the same room is reused.
	f := newBookingFixture(t)
	f.allowAsync()

	tx := newTestTx(t)

	roomType := roomModel.RoomType{ID: 42, MaxOccupancy: 1}
	candidates := []roomModel.Room{{ID: 9, RoomTypeID: 42}}

	var gotBegin time.Time

	f.repo.EXPECT().BeginTx(gomock.Any()).Return(tx, nil)
	f.repo.EXPECT().GetRoomTypeTx(gomock.Any(), tx, int64(42)).Return(roomType, nil)
	f.repo.EXPECT().GetCandidateRoomsTx(gomock.Any(), tx, int64(42)).Return(candidates, nil)
	f.repo.EXPECT().CountOverlappingTx(gomock.Any(), tx, int64(9), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ int64, begin, _ time.Time) (int, error) {
			gotBegin = begin

			return 0, nil
		})
	f.repo.EXPECT().InsertReturningTx(gomock.Any(), tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) (model.Booking, error) {
			booking.ID = 103

			return booking, nil
		})
	f.repo.EXPECT().CountActiveOnDateTx(gomock.Any(), tx, int64(9), gomock.Any()).Return(0, nil)

	begin := dateString(10)

	_, err := f.svc.Create(actorContext("7"), dto.CreateBookingRequest{
		RoomTypeID: 42,
		BeginAt:    begin,
		EndAt:      dateString(20),
	})

	assert.NoError(t, err)
	assert.Equal(t, begin, timezone.Format(gotBegin, constant.DateOnlyFormat))
}
