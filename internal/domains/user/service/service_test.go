package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"dormhub/config"
	"dormhub/infras/otel/mocks"
	userMocks "dormhub/internal/domains/user/mocks"
	"dormhub/internal/domains/user/model"
	"dormhub/internal/domains/user/model/dto"
	"dormhub/internal/domains/user/service"
	cacheMocks "dormhub/shared/cache/mocks"
	"dormhub/shared/constant"
	gDto "dormhub/shared/dto"
	"dormhub/shared/failure"
)

type userFixture struct {
	repo      *userMocks.MockUser
	ownerRepo *userMocks.MockOwner
	cache     *cacheMocks.MockRedisCache
	svc       service.User
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := userMocks.NewMockUser(ctrl)
	ownerRepo := userMocks.NewMockOwner(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return &userFixture{
		repo:      repo,
		ownerRepo: ownerRepo,
		cache:     cache,
		svc:       service.New(repo, ownerRepo, cfg, cache, mocks.NewOtel()),
	}
}

func (f *userFixture) allowAsyncCache() {
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func actorContext(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func stringPtr(s string) *string {
	return &s
}

func TestUserService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *userFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func(f *userFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: 7, Email: "user@example.com", Role: constant.RoleUser}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f *userFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "cache hit",
			setupMock: func(f *userFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, ok := value.(*dto.UserResponse)
						assert.True(t, ok)

						res.ID = 7
						res.Email = "user@example.com"

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			f.allowAsyncCache()
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), 7)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(7), res.ID)
				assert.Equal(t, "user@example.com", res.Email)
			}
		})
	}
}

func TestUserService_GetAll(t *testing.T) {
	f := newUserFixture(t)
	f.allowAsyncCache()

	// List and count each consult their own cache key first.
	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.User{
			{ID: 7, Email: "a@example.com", Role: constant.RoleUser},
			{ID: 8, Email: "b@example.com", Role: constant.RoleOwner},
		}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 2, res.TotalData)
}

func TestUserService_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateUserRequest
		setupMock func(f *userFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateUserRequest{},
			setupMock: func(_ *userFixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "user not found",
			req:  dto.UpdateUserRequest{FirstName: stringPtr("Anan")},
			setupMock: func(f *userFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "successful update",
			req:  dto.UpdateUserRequest{FirstName: stringPtr("Anan")},
			setupMock: func(f *userFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			f.allowAsyncCache()
			tt.setupMock(f)

			err := f.svc.Update(actorContext("7"), tt.req, 7)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *userFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful delete",
			setupMock: func(f *userFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "user not found",
			setupMock: func(f *userFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			f.allowAsyncCache()
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), 7)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_RegisterOwner(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *userFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "missing actor",
			ctx:       context.Background(),
			setupMock: func(_ *userFixture) {},
			wantErr:   true,
			wantCode:  401,
		},
		{
			name: "already an owner",
			ctx:  actorContext("20"),
			setupMock: func(f *userFixture) {
				f.ownerRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "successful registration promotes the user role",
			ctx:  actorContext("20"),
			setupMock: func(f *userFixture) {
				f.ownerRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				f.ownerRepo.EXPECT().
					InsertReturning(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, owner model.Owner) (model.Owner, error) {
						assert.Equal(t, int64(20), owner.UserID)
						assert.Equal(t, "20", owner.CreatedBy)

						owner.ID = 5

						return owner, nil
					})

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, constant.RoleOwner, fields[model.FieldRole])

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			f.allowAsyncCache()
			tt.setupMock(f)

			res, err := f.svc.RegisterOwner(tt.ctx, dto.RegisterOwnerRequest{BankToken: stringPtr("tok-123")})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(5), res.ID)
				assert.Equal(t, int64(20), res.UserID)
			}
		})
	}
}

func TestUserService_GetMyOwner(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *userFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "missing actor",
			ctx:       context.Background(),
			setupMock: func(_ *userFixture) {},
			wantErr:   true,
			wantCode:  401,
		},
		{
			name: "not registered as an owner",
			ctx:  actorContext("20"),
			setupMock: func(f *userFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.ownerRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Owner{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "found",
			ctx:  actorContext("20"),
			setupMock: func(f *userFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.ownerRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Owner{ID: 5, UserID: 20}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			f.allowAsyncCache()
			tt.setupMock(f)

			res, err := f.svc.GetMyOwner(tt.ctx)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(5), res.ID)
			}
		})
	}
}

func TestUserService_UpdateBankToken(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *userFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "missing actor",
			ctx:       context.Background(),
			setupMock: func(_ *userFixture) {},
			wantErr:   true,
			wantCode:  401,
		},
		{
			name: "not registered as an owner",
			ctx:  actorContext("20"),
			setupMock: func(f *userFixture) {
				f.ownerRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "successful update",
			ctx:  actorContext("20"),
			setupMock: func(f *userFixture) {
				f.ownerRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.ownerRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture(t)
			f.allowAsyncCache()
			tt.setupMock(f)

			err := f.svc.UpdateBankToken(tt.ctx, dto.UpdateBankTokenRequest{BankToken: "tok-456"})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
