package dorm

import (
	"net/http"
	"strconv"

	"dormhub/infras/otel"
	"dormhub/internal/domains/dorm/model"
	"dormhub/internal/domains/dorm/model/dto"
	"dormhub/internal/domains/dorm/service"
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
	service      service.Dorm
	mediaService service.Media
	otel         otel.Otel
}

func New(service service.Dorm, mediaService service.Media, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		mediaService: mediaService,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dorms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDorm)
		routerGroup.Get("/", handler.GetDorms)
		routerGroup.Get("/search", handler.SearchDorms)
		routerGroup.Get("/me", handler.GetMyDorms)
		routerGroup.Get("/{id}", handler.GetDormByID)
		routerGroup.Patch("/{id}", handler.UpdateDorm)

		routerGroup.Post("/{id}/medias", handler.UploadMedia)
		routerGroup.Get("/{id}/medias", handler.GetMedias)
		routerGroup.Delete("/{id}/medias/{fileName}", handler.DeleteMedia)
	})
}

// CreateDorm creates a new dorm listing.
// @Summary Create a new dorm
// @Description Create a dorm listing owned by the authenticated dorm owner.
// @Tags Dorm
// @Accept json
// @Produce json
// @Param request body dto.CreateDormRequest true "Create Dorm Request"
// @Success 201 {object} response.Data[dto.DormResponse] "Dorm created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dorms [post]
// @Security BearerAuth
func (handler *Handler) CreateDorm(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDorm")
	defer scope.End()

	req := dto.CreateDormRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create dorm")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Dorm created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetDorms retrieves all dorms with optional filtering.
// @Summary Get all dorms
// @Description Retrieve all dorms with optional filtering and pagination.
// @Tags Dorm
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param province query string false "Filter by province"
// @Param district query string false "Filter by district"
// @Success 200 {object} response.Data[dto.GetDormsResponse] "List of dorms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dorms [get]
func (handler *Handler) GetDorms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDorms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	province := r.URL.Query().Get(model.FieldProvince)
	district := r.URL.Query().Get(model.FieldDistrict)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if province != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldProvince,
			Operator: gDto.FilterOperatorEq,
			Value:    province,
			Table:    model.TableName,
		})
	}

	if district != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDistrict,
			Operator: gDto.FilterOperatorEq,
			Value:    district,
			Table:    model.TableName,
		})
	}

	dorms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dorms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dorms retrieved successfully")

	response.WithJSON(w, http.StatusOK, dorms)
}

// SearchDorms searches dorms by text, price, facilities, and location.
// @Summary Search dorms
// @Description Search dorms by free text, price range, facilities, availability, and distance from a point.
// @Tags Dorm
// @Accept json
// @Produce json
// @Param query query string false "Free text over name, description, and address"
// @Param latitude query number false "Latitude of the search point"
// @Param longitude query number false "Longitude of the search point"
// @Param radius_km query number false "Radius in kilometers around the search point"
// @Param min_price query number false "Minimum monthly rent"
// @Param max_price query number false "Maximum monthly rent"
// @Param facilities query []string false "Required facility names"
// @Param has_available_rooms query boolean false "Only dorms with vacant rooms"
// @Param limit query int false "Result limit (1-100, default 20)"
// @Param offset query int false "Result offset"
// @Success 200 {object} response.Data[dto.SearchDormsResponse] "Matching dorms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dorms/search [get]
func (handler *Handler) SearchDorms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchDorms")
	defer scope.End()

	req, err := searchRequestFromQuery(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse search parameters")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Search(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search dorms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dorm search completed successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyDorms lists the dorms owned by the authenticated user.
// @Summary Get my dorms
// @Description Retrieve all dorms owned by the authenticated dorm owner.
// @Tags Dorm
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetDormsResponse] "List of owned dorms"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dorms/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyDorms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyDorms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	dorms, err := handler.service.GetMyDorms(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get owned dorms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Owned dorms retrieved successfully")

	response.WithJSON(w, http.StatusOK, dorms)
}

// GetDormByID retrieves a dorm with its facilities, room types, and owner.
// @Summary Get a dorm by ID
// @Description Retrieve a dorm with its facilities, room types, and owner contact info.
// @Tags Dorm
// @Accept json
// @Produce json
// @Param id path int true "Dorm ID"
// @Success 200 {object} response.Data[dto.DormDetailResponse] "Dorm details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dorms/{id} [get]
func (handler *Handler) GetDormByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDormByID")
	defer scope.End()

	id, ok := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if !ok {
		response.WithError(w, failure.BadRequestFromString("invalid dorm id"))

		return
	}

	dorm, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dorm by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dorm retrieved successfully")

	response.WithJSON(w, http.StatusOK, dorm)
}

// UpdateDorm updates an existing dorm.
// @Summary Update a dorm by ID
// @Description Update the details of a dorm owned by the authenticated user.
// @Tags Dorm
// @Accept json
// @Produce json
// @Param id path int true "Dorm ID"
// @Param request body dto.UpdateDormRequest true "Update Dorm Request"
// @Success 200 {object} response.Message "Dorm updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dorms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDorm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDorm")
	defer scope.End()

	id, ok := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if !ok {
		response.WithError(w, failure.BadRequestFromString("invalid dorm id"))

		return
	}

	req := dto.UpdateDormRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update dorm")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Dorm updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Dorm updated successfully")
}

// UploadMedia attaches an image or video to a dorm.
// @Summary Upload dorm media
// @Description Upload an image or video and attach it to a dorm owned by the authenticated user.
// @Tags Dorm
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Dorm ID"
// @Param file formData file true "Media file to upload"
// @Success 201 {object} response.Data[dto.UploadMediaResponse] "Media uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dorms/{id}/medias [post]
// @Security BearerAuth
func (handler *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadMedia")
	defer scope.End()

	id, ok := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if !ok {
		response.WithError(w, failure.BadRequestFromString("invalid dorm id"))

		return
	}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.UploadMediaRequest{
		Media:     fileHeader,
		MediaFile: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate media file")

		response.WithError(w, err)

		return
	}

	res, err := handler.mediaService.Add(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload dorm media")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Dorm media uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetMedias lists the media attached to a dorm.
// @Summary Get dorm media
// @Description Retrieve all media descriptors attached to a dorm.
// @Tags Dorm
// @Accept json
// @Produce json
// @Param id path int true "Dorm ID"
// @Success 200 {object} response.Data[dto.GetDormMediasResponse] "List of dorm media"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dorms/{id}/medias [get]
func (handler *Handler) GetMedias(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMedias")
	defer scope.End()

	id, ok := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if !ok {
		response.WithError(w, failure.BadRequestFromString("invalid dorm id"))

		return
	}

	res, err := handler.mediaService.List(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dorm media")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dorm media retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteMedia detaches a media file from a dorm and deletes the object.
// @Summary Delete dorm media
// @Description Remove a media file from a dorm owned by the authenticated user.
// @Tags Dorm
// @Accept json
// @Produce json
// @Param id path int true "Dorm ID"
// @Param fileName path string true "Media file name"
// @Success 200 {object} response.Message "Media deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dorms/{id}/medias/{fileName} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMedia")
	defer scope.End()

	id, ok := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if !ok {
		response.WithError(w, failure.BadRequestFromString("invalid dorm id"))

		return
	}

	fileName := chi.URLParam(r, constant.RequestParamFileName)
	if fileName == "" {
		response.WithError(w, failure.BadRequestFromString("invalid media file name"))

		return
	}

	if err := handler.mediaService.Delete(ctx, id, fileName); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete dorm media")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Dorm media deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Media deleted successfully")
}

// searchRequestFromQuery maps the search query string into a request DTO.
func searchRequestFromQuery(r *http.Request) (dto.SearchDormsRequest, error) {
	req := dto.SearchDormsRequest{
		Query:      r.URL.Query().Get("query"),
		Facilities: r.URL.Query()["facilities"],
	}

	if value := shared.ConvertStringToBool(r.URL.Query().Get("has_available_rooms")); value != nil {
		req.HasAvailableRooms = *value
	}

	floatParams := map[string]**float64{
		"latitude":  &req.Latitude,
		"longitude": &req.Longitude,
		"radius_km": &req.RadiusKm,
		"min_price": &req.MinPrice,
		"max_price": &req.MaxPrice,
	}

	for name, target := range floatParams {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, failure.BadRequestFromString("invalid " + name + " parameter") // nolint:wrapcheck
		}

		*target = &value
	}

	if raw := r.URL.Query().Get(constant.RequestParamLimit); raw != "" {
		limit, err := shared.ConvertStringToInt(raw)
		if err != nil {
			return req, failure.InvalidLimitParam
		}

		req.Limit = limit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := shared.ConvertStringToInt(raw)
		if err != nil {
			return req, failure.BadRequestFromString("invalid offset parameter") // nolint:wrapcheck
		}

		req.Offset = offset
	}

	return req, nil
}
