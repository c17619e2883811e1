package service

import (
	"context"
	"fmt"
	"strconv"

	"dormhub/config"
	"dormhub/infras/otel"
	"dormhub/internal/domains/facility/model"
	"dormhub/internal/domains/facility/model/dto"
	"dormhub/internal/domains/facility/repository"
	"dormhub/shared"
	"dormhub/shared/cache"
	"dormhub/shared/constant"
	gDto "dormhub/shared/dto"
	"dormhub/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetFacility    = "facility:get"
	cacheGetAllFacility = "facility:gets"
	cacheCountFacility  = "facility:count"
)

type Facility interface {
	Create(ctx context.Context, req dto.CreateFacilityRequest) (dto.FacilityResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFacilitiesResponse, error)
	Get(ctx context.Context, id int64) (dto.FacilityResponse, error)
	Update(ctx context.Context, req dto.UpdateFacilityRequest, id int64) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo  repository.Facility
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Facility, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Facility {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFacilityRequest) (res dto.FacilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(req.Name, model.FieldName, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check facility existence")

		return res, fmt.Errorf("failed to check facility existence: %w", err)
	}

	if exist {
		return res, failure.Conflict("facility already exists") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	facility, err := s.repo.InsertReturning(ctx, req.ToModel(user))
	if err != nil {
		log.Error().Err(err).Msg("failed to create facility")

		return res, fmt.Errorf("failed to create facility: %w", err)
	}

	res.FromModel(facility)

	s.invalidateListCaches(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFacilitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllFacility, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for facilities")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count facilities")

		return res, fmt.Errorf("failed to count facilities: %w", err)
	}

	facilities, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get facilities")

		return res, fmt.Errorf("failed to get facilities: %w", err)
	}

	res.FromModels(facilities, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save facilities to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.FacilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetFacility, strconv.FormatInt(id, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for facility")

		return res, nil
	}

	facility, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility")

		return res, fmt.Errorf("failed to get facility: %w", err)
	}

	if facility.ID == 0 {
		return res, failure.NotFound("facility not found") // nolint:wrapcheck
	}

	res.FromModel(facility)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save facility to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateFacilityRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check facility existence")

		return fmt.Errorf("failed to check facility existence: %w", err)
	}

	if !exist {
		return failure.NotFound("facility not found") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update facility")

		return fmt.Errorf("failed to update facility: %w", err)
	}

	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check facility existence")

		return fmt.Errorf("failed to check facility existence: %w", err)
	}

	if !exist {
		return failure.NotFound("facility not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete facility")

		return fmt.Errorf("failed to delete facility: %w", err)
	}

	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllFacility)
		shared.InvalidateCaches(c, s.cache, cacheCountFacility)
	}()
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetFacility, strconv.FormatInt(id, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete facility from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllFacility)
		shared.InvalidateCaches(c, s.cache, cacheCountFacility)
	}()
}
