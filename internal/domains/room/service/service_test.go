package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"dormhub/config"
	"dormhub/infras/otel/mocks"
	dormMocks "dormhub/internal/domains/dorm/mocks"
	dormModel "dormhub/internal/domains/dorm/model"
	roomMocks "dormhub/internal/domains/room/mocks"
	"dormhub/internal/domains/room/model"
	"dormhub/internal/domains/room/model/dto"
	"dormhub/internal/domains/room/service"
	userMocks "dormhub/internal/domains/user/mocks"
	userModel "dormhub/internal/domains/user/model"
	cacheMocks "dormhub/shared/cache/mocks"
	"dormhub/shared/constant"
	gDto "dormhub/shared/dto"
	"dormhub/shared/failure"
)

type roomFixture struct {
	repo      *roomMocks.MockRoom
	typeRepo  *roomMocks.MockRoomType
	dormRepo  *dormMocks.MockDorm
	ownerRepo *userMocks.MockOwner
	cache     *cacheMocks.MockRedisCache
	svc       service.Room
}

func newRoomFixture(t *testing.T) *roomFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := roomMocks.NewMockRoom(ctrl)
	typeRepo := roomMocks.NewMockRoomType(ctrl)
	dormRepo := dormMocks.NewMockDorm(ctrl)
	ownerRepo := userMocks.NewMockOwner(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return &roomFixture{
		repo:      repo,
		typeRepo:  typeRepo,
		dormRepo:  dormRepo,
		ownerRepo: ownerRepo,
		cache:     cache,
		svc:       service.New(repo, typeRepo, dormRepo, ownerRepo, cfg, cache, mocks.NewOtel()),
	}
}

func (f *roomFixture) allowAsyncCache() {
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (f *roomFixture) expectOwnership() {
	f.ownerRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(userModel.Owner{ID: 5, UserID: 20}, nil)

	f.dormRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(dormModel.Dorm{ID: 3, OwnerID: 5}, nil)
}

func ownerContext(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
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

func standardRoomType() model.RoomType {
	return model.RoomType{
		ID:           11,
		DormID:       3,
		Name:         "Standard",
		MaxOccupancy: 2,
		RentPerMonth: 4500,
	}
}

func TestRoomService_CreateRoomType(t *testing.T) {
	req := dto.CreateRoomTypeRequest{
		DormID:        3,
		Name:          "Standard",
		MaxOccupancy:  2,
		DepositAmount: 3000,
		RentPerMonth:  4500,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *roomFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "missing actor",
			ctx:       context.Background(),
			setupMock: func(_ *roomFixture) {},
			wantErr:   true,
			wantCode:  401,
		},
		{
			name: "actor is not an owner",
			ctx:  ownerContext("20"),
			setupMock: func(f *roomFixture) {
				f.ownerRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.Owner{}, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "dorm not found",
			ctx:  ownerContext("20"),
			setupMock: func(f *roomFixture) {
				f.ownerRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.Owner{ID: 5, UserID: 20}, nil)

				f.dormRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(dormModel.Dorm{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "dorm belongs to another owner",
			ctx:  ownerContext("20"),
			setupMock: func(f *roomFixture) {
				f.ownerRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.Owner{ID: 5, UserID: 20}, nil)

				f.dormRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(dormModel.Dorm{ID: 3, OwnerID: 99}, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name: "successful creation",
			ctx:  ownerContext("20"),
			setupMock: func(f *roomFixture) {
				f.expectOwnership()

				f.typeRepo.EXPECT().
					InsertReturning(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, roomType model.RoomType) (model.RoomType, error) {
						assert.Equal(t, int64(3), roomType.DormID)
						assert.Equal(t, 2, roomType.MaxOccupancy)
						assert.Equal(t, float64(3000), roomType.DepositAmount)

						roomType.ID = 11

						return roomType, nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoomFixture(t)
			f.allowAsyncCache()
			tt.setupMock(f)

			res, err := f.svc.CreateRoomType(tt.ctx, req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(11), res.ID)
				assert.Equal(t, "Standard", res.Name)
			}
		})
	}
}

func TestRoomService_CreateRooms_RoomTypeNotFound(t *testing.T) {
	f := newRoomFixture(t)

	f.typeRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.RoomType{}, nil)

	err := f.svc.CreateRooms(ownerContext("20"), dto.CreateRoomsRequest{RoomTypeID: 11, Count: 2})

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestRoomService_CreateRooms_NamesContinueFromExisting(t *testing.T) {
	f := newRoomFixture(t)
	f.allowAsyncCache()

	f.typeRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(standardRoomType(), nil)

	f.expectOwnership()

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(4, nil)

	f.repo.EXPECT().
		InsertBulk(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rooms []model.Room) error {
			assert.Len(t, rooms, 2)
			assert.Equal(t, "Standard 5", rooms[0].Name)
			assert.Equal(t, "Standard 6", rooms[1].Name)
			assert.Equal(t, model.StatusVacant, rooms[0].Status)
			assert.Equal(t, 0, rooms[0].CurOccupancy)

			return nil
		})

	err := f.svc.CreateRooms(ownerContext("20"), dto.CreateRoomsRequest{RoomTypeID: 11, Count: 2})

	assert.NoError(t, err)
}

func TestRoomService_CreateRoomTypeWithRooms_Success(t *testing.T) {
	f := newRoomFixture(t)
	f.allowAsyncCache()

	f.expectOwnership()

	tx := newTestTx(t)

	f.repo.EXPECT().
		BeginTx(gomock.Any()).
		Return(tx, nil)

	f.typeRepo.EXPECT().
		InsertReturningTx(gomock.Any(), tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, roomType model.RoomType) (model.RoomType, error) {
			roomType.ID = 11

			return roomType, nil
		})

	f.repo.EXPECT().
		InsertBulkTx(gomock.Any(), tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, rooms []model.Room) error {
			assert.Len(t, rooms, 3)

			for i, room := range rooms {
				assert.Equal(t, int64(11), room.RoomTypeID)
				assert.Equal(t, fmt.Sprintf("Standard %d", i+1), room.Name)
			}

			return nil
		})

	created := []model.Room{
		{ID: 21, RoomTypeID: 11, Name: "Standard 1", Status: model.StatusVacant},
		{ID: 22, RoomTypeID: 11, Name: "Standard 2", Status: model.StatusVacant},
		{ID: 23, RoomTypeID: 11, Name: "Standard 3", Status: model.StatusVacant},
	}

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(created, nil)

	req := dto.CreateRoomTypeWithRoomsRequest{
		CreateRoomTypeRequest: dto.CreateRoomTypeRequest{
			DormID:       3,
			Name:         "Standard",
			MaxOccupancy: 2,
			RentPerMonth: 4500,
		},
		RoomCount: 3,
	}

	res, err := f.svc.CreateRoomTypeWithRooms(ownerContext("20"), req)

	assert.NoError(t, err)
	assert.Equal(t, int64(11), res.RoomType.ID)
	assert.Len(t, res.Rooms, 3)
}

func TestRoomService_CreateRoomTypeWithRooms_RollsBackOnRoomInsertFailure(t *testing.T) {
	f := newRoomFixture(t)

	f.expectOwnership()

	tx := newTestTx(t)

	f.repo.EXPECT().
		BeginTx(gomock.Any()).
		Return(tx, nil)

	f.typeRepo.EXPECT().
		InsertReturningTx(gomock.Any(), tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, roomType model.RoomType) (model.RoomType, error) {
			roomType.ID = 11

			return roomType, nil
		})

	f.repo.EXPECT().
		InsertBulkTx(gomock.Any(), tx, gomock.Any()).
		Return(errors.New("constraint violation"))

	req := dto.CreateRoomTypeWithRoomsRequest{
		CreateRoomTypeRequest: dto.CreateRoomTypeRequest{
			DormID:       3,
			Name:         "Standard",
			MaxOccupancy: 2,
			RentPerMonth: 4500,
		},
		RoomCount: 3,
	}

	_, err := f.svc.CreateRoomTypeWithRooms(ownerContext("20"), req)

	assert.Error(t, err)
}

func TestRoomService_GetByDorm(t *testing.T) {
	t.Run("available-only adds a status filter", func(t *testing.T) {
		f := newRoomFixture(t)
		f.allowAsyncCache()

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.Len(t, filter.Filters, 2)

				return 1, nil
			})

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Room{{ID: 21, RoomTypeID: 11, Name: "Standard 1", Status: model.StatusVacant}}, nil)

		res, err := f.svc.GetByDorm(context.Background(), 3, gDto.QueryParams{Limit: 10}, true)

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 1)
		assert.Equal(t, 1, res.TotalData)
	})

	t.Run("all rooms filter only by dorm", func(t *testing.T) {
		f := newRoomFixture(t)
		f.allowAsyncCache()

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.Len(t, filter.Filters, 1)

				return 2, nil
			})

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Room{
				{ID: 21, Name: "Standard 1", Status: model.StatusVacant},
				{ID: 22, Name: "Standard 2", Status: model.StatusOccupied},
			}, nil)

		res, err := f.svc.GetByDorm(context.Background(), 3, gDto.QueryParams{Limit: 10}, false)

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 2)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newRoomFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.GetRoomsResponse)
				assert.True(t, ok)

				res.TotalData = 5

				return nil
			})

		res, err := f.svc.GetByDorm(context.Background(), 3, gDto.QueryParams{Limit: 10}, false)

		assert.NoError(t, err)
		assert.Equal(t, 5, res.TotalData)
	})
}

func TestRoomService_GetTypesByDorm(t *testing.T) {
	f := newRoomFixture(t)
	f.allowAsyncCache()

	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	f.typeRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.RoomType{standardRoomType()}, nil)

	res, err := f.svc.GetTypesByDorm(context.Background(), 3)

	assert.NoError(t, err)
	assert.Len(t, res.RoomTypes, 1)
	assert.Equal(t, "Standard", res.RoomTypes[0].Name)
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *roomFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func(f *roomFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: 21, RoomTypeID: 11, Name: "Standard 1", Status: model.StatusVacant}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f *roomFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoomFixture(t)
			f.allowAsyncCache()
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), 21)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(21), res.ID)
			}
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	occupied := model.StatusOccupied

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func(f *roomFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateRoomRequest{},
			setupMock: func(_ *roomFixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "room not found",
			req:  dto.UpdateRoomRequest{Status: &occupied},
			setupMock: func(f *roomFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "successful update",
			req:  dto.UpdateRoomRequest{Status: &occupied},
			setupMock: func(f *roomFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: 21, RoomTypeID: 11, Name: "Standard 1", Status: model.StatusVacant}, nil)

				f.typeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(standardRoomType(), nil)

				f.expectOwnership()

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoomFixture(t)
			f.allowAsyncCache()
			tt.setupMock(f)

			err := f.svc.Update(ownerContext("20"), tt.req, 21)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
