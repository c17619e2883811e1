package service

import (
	"context"
	"fmt"
	"strconv"

	"dormhub/config"
	"dormhub/infras/otel"
	"dormhub/internal/domains/dorm/model"
	"dormhub/internal/domains/dorm/model/dto"
	"dormhub/internal/domains/dorm/repository"
	roomModel "dormhub/internal/domains/room/model"
	roomDto "dormhub/internal/domains/room/model/dto"
	roomRepo "dormhub/internal/domains/room/repository"
	userModel "dormhub/internal/domains/user/model"
	userRepo "dormhub/internal/domains/user/repository"
	"dormhub/shared"
	"dormhub/shared/cache"
	"dormhub/shared/constant"
	gDto "dormhub/shared/dto"
	"dormhub/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetDorm    = "dorm:get"
	cacheGetAllDorm = "dorm:gets"
	cacheCountDorm  = "dorm:count"
	cacheSearchDorm = "dorm:search"

	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type Dorm interface {
	Create(ctx context.Context, req dto.CreateDormRequest) (dto.DormResponse, error)
	Get(ctx context.Context, id int64) (dto.DormDetailResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDormsResponse, error)
	GetMyDorms(ctx context.Context, params gDto.QueryParams) (dto.GetDormsResponse, error)
	Search(ctx context.Context, req dto.SearchDormsRequest) (dto.SearchDormsResponse, error)
	Update(ctx context.Context, req dto.UpdateDormRequest, id int64) error
}

type serviceImpl struct {
	repo      repository.Dorm
	typeRepo  roomRepo.RoomType
	userRepo  userRepo.User
	ownerRepo userRepo.Owner
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Dorm,
	typeRepo roomRepo.RoomType,
	userRepo userRepo.User,
	ownerRepo userRepo.Owner,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Dorm {
	return &serviceImpl{
		repo:      repo,
		typeRepo:  typeRepo,
		userRepo:  userRepo,
		ownerRepo: ownerRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// requireOwner resolves the acting user to a registered dorm owner.
func (s *serviceImpl) requireOwner(ctx context.Context) (userModel.Owner, error) {
	var owner userModel.Owner

	actor, ok := shared.ActorID(ctx)
	if !ok {
		return owner, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	owner, err := s.ownerRepo.Get(ctx, shared.FilterByID(actor, userModel.OwnerFieldUserID, userModel.OwnerTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get dorm owner")

		return owner, fmt.Errorf("failed to get dorm owner: %w", err)
	}

	if owner.ID == 0 {
		return owner, failure.Forbidden("only dorm owners can manage dorms") // nolint:wrapcheck
	}

	return owner, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateDormRequest) (res dto.DormResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	owner, err := s.requireOwner(ctx)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	dorm, err := s.repo.InsertReturning(ctx, req.ToModel(owner.ID, user))
	if err != nil {
		log.Error().Err(err).Msg("failed to create dorm")

		return res, fmt.Errorf("failed to create dorm: %w", err)
	}

	if len(req.FacilityIDs) > 0 {
		if err = s.repo.SetFacilities(ctx, dorm.ID, req.FacilityIDs); err != nil {
			log.Error().Err(err).Msg("failed to set dorm facilities")

			return res, fmt.Errorf("failed to set dorm facilities: %w", err)
		}
	}

	res.FromModel(dorm)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllDorm)
		shared.InvalidateCaches(c, s.cache, cacheCountDorm)
		shared.InvalidateCaches(c, s.cache, cacheSearchDorm)
	}()

	return res, nil
}

// Get returns the dorm detail aggregation: the row itself, its facility
// names, its room types ordered by monthly rent, and the owning user's
// contact info.
func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.DormDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDorm, strconv.FormatInt(id, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for dorm")

		return res, nil
	}

	dorm, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get dorm")

		return res, fmt.Errorf("failed to get dorm: %w", err)
	}

	if dorm.ID == 0 {
		return res, failure.NotFound("dorm not found") // nolint:wrapcheck
	}

	facilities, err := s.repo.GetFacilityNames(ctx, dorm.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get dorm facilities")

		return res, fmt.Errorf("failed to get dorm facilities: %w", err)
	}

	types, err := s.typeRepo.GetAll(ctx,
		gDto.QueryParams{SortBy: roomModel.TypeFieldRentPerMonth, SortDir: gDto.SortDirAsc},
		shared.FilterByID(dorm.ID, roomModel.TypeFieldDormID, roomModel.TypeTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	owner, err := s.ownerRepo.Get(ctx, shared.FilterByID(dorm.OwnerID, userModel.OwnerFieldID, userModel.OwnerTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get dorm owner")

		return res, fmt.Errorf("failed to get dorm owner: %w", err)
	}

	ownerUser, err := s.userRepo.Get(ctx, shared.FilterByID(owner.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner user")

		return res, fmt.Errorf("failed to get owner user: %w", err)
	}

	res.DormResponse.FromModel(dorm)
	res.Facilities = facilities

	res.RoomTypes = make([]roomDto.RoomTypeResponse, len(types))
	for i, roomType := range types {
		res.RoomTypes[i].FromModel(roomType)
	}

	res.Owner = dto.OwnerInfo{
		UserID:    ownerUser.ID,
		FirstName: ownerUser.FirstName,
		LastName:  ownerUser.LastName,
		Email:     ownerUser.Email,
		Tel:       ownerUser.Tel,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dorm to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDormsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDorm, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for dorms")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count dorms")

		return res, fmt.Errorf("failed to count dorms: %w", err)
	}

	dorms, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get dorms")

		return res, fmt.Errorf("failed to get dorms: %w", err)
	}

	res.FromModels(dorms, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dorms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMyDorms(ctx context.Context, params gDto.QueryParams) (res dto.GetDormsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMyDorms")
	defer scope.End()
	defer scope.TraceIfError(err)

	owner, err := s.requireOwner(ctx)
	if err != nil {
		return res, err
	}

	return s.GetAll(ctx, params, shared.FilterByID(owner.ID, model.FieldOwnerID, model.TableName))
}

// Search is read-only and deterministic for a given data state, so results
// are cached like any other list read.
func (s *serviceImpl) Search(ctx context.Context, req dto.SearchDormsRequest) (res dto.SearchDormsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Limit <= 0 {
		req.Limit = defaultSearchLimit
	}

	if req.Limit > maxSearchLimit {
		return res, failure.BadRequestFromString("limit must be between 1 and 100") // nolint:wrapcheck
	}

	if req.Offset < 0 {
		return res, failure.BadRequestFromString("offset must not be negative") // nolint:wrapcheck
	}

	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return res, failure.BadRequestFromString("min_price must not exceed max_price") // nolint:wrapcheck
	}

	criteria := repository.SearchCriteria{
		Query:             req.Query,
		MinPrice:          req.MinPrice,
		MaxPrice:          req.MaxPrice,
		Facilities:        req.Facilities,
		HasAvailableRooms: req.HasAvailableRooms,
		Limit:             req.Limit,
		Offset:            req.Offset,
	}

	if req.HasGeo() {
		criteria.Latitude = req.Latitude
		criteria.Longitude = req.Longitude
		criteria.RadiusKm = req.RadiusKm
	}

	cacheKey := shared.BuildCacheKey(cacheSearchDorm, fmt.Sprintf("%+v", criteria))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for dorm search")

		return res, nil
	}

	rows, err := s.repo.Search(ctx, criteria)
	if err != nil {
		log.Error().Err(err).Msg("failed to search dorms")

		return res, fmt.Errorf("failed to search dorms: %w", err)
	}

	res.FromRows(rows)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dorm search to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateDormRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateDormRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	owner, err := s.requireOwner(ctx)
	if err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	dorm, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get dorm")

		return fmt.Errorf("failed to get dorm: %w", err)
	}

	if dorm.ID == 0 {
		return failure.NotFound("dorm not found") // nolint:wrapcheck
	}

	if dorm.OwnerID != owner.ID {
		return failure.Forbidden("dorm does not belong to this owner") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update dorm")

		return fmt.Errorf("failed to update dorm: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDorm, strconv.FormatInt(id, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete dorm from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDorm)
		shared.InvalidateCaches(c, s.cache, cacheSearchDorm)
	}()

	return nil
}
