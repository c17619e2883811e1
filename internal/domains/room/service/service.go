package service

import (
	"context"
	"fmt"
	"strconv"

	"dormhub/config"
	"dormhub/infras/otel"
	dormModel "dormhub/internal/domains/dorm/model"
	dormRepo "dormhub/internal/domains/dorm/repository"
	"dormhub/internal/domains/room/model"
	"dormhub/internal/domains/room/model/dto"
	"dormhub/internal/domains/room/repository"
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
	cacheGetRoom     = "room:get"
	cacheGetAllRoom  = "room:gets"
	cacheCountRoom   = "room:count"
	cacheGetAllTypes = "room_type:gets"
)

type Room interface {
	CreateRoomType(ctx context.Context, req dto.CreateRoomTypeRequest) (dto.RoomTypeResponse, error)
	CreateRooms(ctx context.Context, req dto.CreateRoomsRequest) error
	CreateRoomTypeWithRooms(ctx context.Context, req dto.CreateRoomTypeWithRoomsRequest) (dto.RoomTypeWithRoomsResponse, error)
	GetByDorm(ctx context.Context, dormID int64, params gDto.QueryParams, onlyAvailable bool) (dto.GetRoomsResponse, error)
	GetTypesByDorm(ctx context.Context, dormID int64) (dto.GetRoomTypesResponse, error)
	Get(ctx context.Context, id int64) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id int64) error
}

type serviceImpl struct {
	repo      repository.Room
	typeRepo  repository.RoomType
	dormRepo  dormRepo.Dorm
	ownerRepo userRepo.Owner
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Room,
	typeRepo repository.RoomType,
	dormRepo dormRepo.Dorm,
	ownerRepo userRepo.Owner,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:      repo,
		typeRepo:  typeRepo,
		dormRepo:  dormRepo,
		ownerRepo: ownerRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// requireDormOwnership resolves the acting user to a dorm owner and checks
// that the dorm belongs to them.
func (s *serviceImpl) requireDormOwnership(ctx context.Context, dormID int64) error {
	actor, ok := shared.ActorID(ctx)
	if !ok {
		return failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	owner, err := s.ownerRepo.Get(ctx, shared.FilterByID(actor, userModel.OwnerFieldUserID, userModel.OwnerTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get dorm owner")

		return fmt.Errorf("failed to get dorm owner: %w", err)
	}

	if owner.ID == 0 {
		return failure.Forbidden("only dorm owners can manage rooms") // nolint:wrapcheck
	}

	dorm, err := s.dormRepo.Get(ctx, shared.FilterByID(dormID, dormModel.FieldID, dormModel.TableName))
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

	return nil
}

func (s *serviceImpl) getRoomType(ctx context.Context, roomTypeID int64) (model.RoomType, error) {
	roomType, err := s.typeRepo.Get(ctx, shared.FilterByID(roomTypeID, model.TypeFieldID, model.TypeTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return roomType, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == 0 {
		return roomType, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	return roomType, nil
}

func (s *serviceImpl) CreateRoomType(ctx context.Context, req dto.CreateRoomTypeRequest) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRoomType")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.requireDormOwnership(ctx, req.DormID); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	roomType, err := s.typeRepo.InsertReturning(ctx, req.ToModel(user))
	if err != nil {
		log.Error().Err(err).Msg("failed to create room type")

		return res, fmt.Errorf("failed to create room type: %w", err)
	}

	res.FromModel(roomType)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTypes)
	}()

	return res, nil
}

func (s *serviceImpl) CreateRooms(ctx context.Context, req dto.CreateRoomsRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	roomType, err := s.getRoomType(ctx, req.RoomTypeID)
	if err != nil {
		return err
	}

	if err = s.requireDormOwnership(ctx, roomType.DormID); err != nil {
		return err
	}

	typeFilter := shared.FilterByID(req.RoomTypeID, model.FieldRoomTypeID, model.TableName)

	existing, err := s.repo.Count(ctx, typeFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count existing rooms")

		return fmt.Errorf("failed to count existing rooms: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.InsertBulk(ctx, req.ToModels(roomType.Name, user, existing)); err != nil {
		log.Error().Err(err).Msg("failed to create rooms")

		return fmt.Errorf("failed to create rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	return nil
}

// CreateRoomTypeWithRooms creates the type and its rooms atomically. Either
// the whole set lands or nothing does.
func (s *serviceImpl) CreateRoomTypeWithRooms(ctx context.Context, req dto.CreateRoomTypeWithRoomsRequest) (res dto.RoomTypeWithRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRoomTypeWithRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.requireDormOwnership(ctx, req.DormID); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

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

	roomType, err := s.typeRepo.InsertReturningTx(ctx, tx, req.ToModel(user))
	if err != nil {
		log.Error().Err(err).Msg("failed to create room type")

		return res, fmt.Errorf("failed to create room type: %w", err)
	}

	roomsReq := dto.CreateRoomsRequest{RoomTypeID: roomType.ID, Count: req.RoomCount}

	if err = s.repo.InsertBulkTx(ctx, tx, roomsReq.ToModels(roomType.Name, user, 0)); err != nil {
		log.Error().Err(err).Msg("failed to create rooms")

		return res, fmt.Errorf("failed to create rooms: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit transaction")

		return res, fmt.Errorf("failed to commit transaction: %w", err)
	}

	rooms, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc},
		shared.FilterByID(roomType.ID, model.FieldRoomTypeID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get created rooms")

		return res, fmt.Errorf("failed to get created rooms: %w", err)
	}

	res.RoomType.FromModel(roomType)

	res.Rooms = make([]dto.RoomResponse, len(rooms))
	for i, room := range rooms {
		res.Rooms[i].FromModel(room)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
		shared.InvalidateCaches(c, s.cache, cacheGetAllTypes)
	}()

	return res, nil
}

func (s *serviceImpl) GetByDorm(ctx context.Context, dormID int64, params gDto.QueryParams, onlyAvailable bool) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByDorm")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.TypeFieldDormID,
				Operator: gDto.FilterOperatorEq,
				Value:    dormID,
				Table:    model.TypeTableName,
				ArgName:  "filter_dorm_id",
			},
		},
	}

	if onlyAvailable {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    model.StatusVacant,
			Table:    model.TableName,
		})
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	rooms, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(rooms, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetTypesByDorm(ctx context.Context, dormID int64) (res dto.GetRoomTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTypesByDorm")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(dormID, model.TypeFieldDormID, model.TypeTableName)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTypes, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room types")

		return res, nil
	}

	types, err := s.typeRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.TypeFieldRentPerMonth, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	res.FromModels(types)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room types to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRoom, strconv.FormatInt(id, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateRoomRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	room, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	roomType, err := s.getRoomType(ctx, room.RoomTypeID)
	if err != nil {
		return err
	}

	if err = s.requireDormOwnership(ctx, roomType.DormID); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, strconv.FormatInt(id, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	return nil
}
