package room

import (
	"net/http"

	"dormhub/infras/otel"
	"dormhub/internal/domains/room/model/dto"
	"dormhub/internal/domains/room/service"
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
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/room-types", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoomType)
		routerGroup.Post("/with-rooms", handler.CreateRoomTypeWithRooms)
		routerGroup.Get("/", handler.GetRoomTypes)
	})

	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRooms)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
	})
}

// CreateRoomType creates a room type for a dorm.
// @Summary Create a room type
// @Description Create a room type under a dorm owned by the authenticated user.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomTypeRequest true "Create Room Type Request"
// @Success 201 {object} response.Data[dto.RoomTypeResponse] "Room type created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/room-types [post]
// @Security BearerAuth
func (handler *Handler) CreateRoomType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoomType")
	defer scope.End()

	req := dto.CreateRoomTypeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateRoomType(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room type")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room type created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// CreateRoomTypeWithRooms creates a room type and its rooms in one call.
// @Summary Create a room type together with its rooms
// @Description Create a room type and a batch of rooms under it atomically.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomTypeWithRoomsRequest true "Create Room Type With Rooms Request"
// @Success 201 {object} response.Data[dto.RoomTypeWithRoomsResponse] "Room type and rooms created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/room-types/with-rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoomTypeWithRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoomTypeWithRooms")
	defer scope.End()

	req := dto.CreateRoomTypeWithRoomsRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateRoomTypeWithRooms(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room type with rooms")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room type with rooms created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRoomTypes lists the room types of a dorm.
// @Summary Get room types of a dorm
// @Description Retrieve all room types of a dorm ordered by monthly rent.
// @Tags Room
// @Accept json
// @Produce json
// @Param dormId query int true "Dorm ID"
// @Success 200 {object} response.Data[dto.GetRoomTypesResponse] "List of room types"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/room-types [get]
func (handler *Handler) GetRoomTypes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypes")
	defer scope.End()

	dormID, ok := shared.ParseID(r.URL.Query().Get(constant.RequestParamDormID))
	if !ok {
		response.WithError(w, failure.BadRequestFromString("invalid dorm id"))

		return
	}

	types, err := handler.service.GetTypesByDorm(ctx, dormID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room types")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room types retrieved successfully")

	response.WithJSON(w, http.StatusOK, types)
}

// CreateRooms adds rooms to an existing room type.
// @Summary Create rooms
// @Description Add a batch of rooms to an existing room type.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomsRequest true "Create Rooms Request"
// @Success 201 {object} response.Message "Rooms created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRooms")
	defer scope.End()

	req := dto.CreateRoomsRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.CreateRooms(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create rooms")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Rooms created successfully")

	response.WithMessage(writer, http.StatusCreated, "Rooms created successfully")
}

// GetRooms lists the rooms of a dorm.
// @Summary Get rooms of a dorm
// @Description Retrieve all rooms belonging to a dorm, optionally only vacant ones.
// @Tags Room
// @Accept json
// @Produce json
// @Param dormId query int true "Dorm ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param only_available query boolean false "Only return vacant rooms"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	dormID, ok := shared.ParseID(r.URL.Query().Get(constant.RequestParamDormID))
	if !ok {
		response.WithError(w, failure.BadRequestFromString("invalid dorm id"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	onlyAvailable := false
	if value := shared.ConvertStringToBool(r.URL.Query().Get("only_available")); value != nil {
		onlyAvailable = *value
	}

	rooms, err := handler.service.GetByDorm(ctx, dormID, queryParams, onlyAvailable)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Description Retrieve a room by its unique identifier.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id, ok := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if !ok {
		response.WithError(w, failure.BadRequestFromString("invalid room id"))

		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates a room's status or occupancy.
// @Summary Update a room by ID
// @Description Update a room's status or current occupancy.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id, ok := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if !ok {
		response.WithError(w, failure.BadRequestFromString("invalid room id"))

		return
	}

	req := dto.UpdateRoomRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}
