package service

import (
	"context"
	"fmt"
	"strconv"

	"dormhub/config"
	"dormhub/infras/otel"
	"dormhub/internal/domains/user/model"
	"dormhub/internal/domains/user/model/dto"
	"dormhub/internal/domains/user/repository"
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
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"
	cacheGetOwner   = "owner:get"
)

type User interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id int64) error
	Delete(ctx context.Context, id int64) error
	RegisterOwner(ctx context.Context, req dto.RegisterOwnerRequest) (dto.OwnerResponse, error)
	GetMyOwner(ctx context.Context) (dto.OwnerResponse, error)
	UpdateBankToken(ctx context.Context, req dto.UpdateBankTokenRequest) error
}

type serviceImpl struct {
	repo      repository.User
	ownerRepo repository.Owner
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.User, ownerRepo repository.Owner, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:      repo,
		ownerRepo: ownerRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUser, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetUser, strconv.FormatInt(id, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateUserRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		log.Error().Msg("user not found")

		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, strconv.FormatInt(id, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		log.Error().Msg("user not found")

		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, strconv.FormatInt(id, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()

	return nil
}

func (s *serviceImpl) RegisterOwner(ctx context.Context, req dto.RegisterOwnerRequest) (res dto.OwnerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RegisterOwner")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := shared.ActorID(ctx)
	if !ok {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	filter := shared.FilterByID(actor, model.OwnerFieldUserID, model.OwnerTableName)

	exist, err := s.ownerRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if owner exists")

		return res, fmt.Errorf("failed to check if owner exists: %w", err)
	}

	if exist {
		return res, failure.Conflict("user is already registered as a dorm owner") // nolint:wrapcheck
	}

	actorStr := strconv.FormatInt(actor, 10)
	owner := model.Owner{
		UserID:    actor,
		BankToken: req.BankToken,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actorStr,
			ModifiedBy: actorStr,
		},
	}

	owner, err = s.ownerRepo.InsertReturning(ctx, owner)
	if err != nil {
		log.Error().Err(err).Msg("failed to register dorm owner")

		return res, fmt.Errorf("failed to register dorm owner: %w", err)
	}

	if err := s.repo.Update(ctx, map[string]any{
		model.FieldRole:          constant.RoleOwner,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actorStr,
	}, shared.FilterByID(actor, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to promote user role to owner")

		return res, fmt.Errorf("failed to promote user role to owner: %w", err)
	}

	res.FromModel(owner)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, actorStr)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMyOwner(ctx context.Context) (res dto.OwnerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMyOwner")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := shared.ActorID(ctx)
	if !ok {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetOwner, strconv.FormatInt(actor, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for owner")

		return res, nil
	}

	owner, err := s.ownerRepo.Get(ctx, shared.FilterByID(actor, model.OwnerFieldUserID, model.OwnerTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get dorm owner")

		return res, fmt.Errorf("failed to get dorm owner: %w", err)
	}

	if owner.ID == 0 {
		return res, failure.NotFound("user is not registered as a dorm owner") // nolint:wrapcheck
	}

	res.FromModel(owner)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save owner to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateBankToken(ctx context.Context, req dto.UpdateBankTokenRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBankToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, ok := shared.ActorID(ctx)
	if !ok {
		return failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	actorStr := strconv.FormatInt(actor, 10)
	filter := shared.FilterByID(actor, model.OwnerFieldUserID, model.OwnerTableName)

	exist, err := s.ownerRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if owner exists")

		return fmt.Errorf("failed to check if owner exists: %w", err)
	}

	if !exist {
		return failure.NotFound("user is not registered as a dorm owner") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, actorStr)
	if err := s.ownerRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update bank token")

		return fmt.Errorf("failed to update bank token: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOwner, actorStr)); err != nil {
			log.Error().Err(err).Msg("failed to delete owner from cache")
		}
	}()

	return nil
}
