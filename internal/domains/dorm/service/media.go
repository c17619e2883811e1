package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"dormhub/config"
	"dormhub/infras/otel"
	"dormhub/infras/s3"
	"dormhub/internal/domains/dorm/model"
	"dormhub/internal/domains/dorm/model/dto"
	"dormhub/internal/domains/dorm/repository"
	userModel "dormhub/internal/domains/user/model"
	userRepo "dormhub/internal/domains/user/repository"
	"dormhub/shared"
	"dormhub/shared/cache"
	"dormhub/shared/constant"
	"dormhub/shared/failure"
	"dormhub/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Media interface {
	Add(ctx context.Context, req dto.UploadMediaRequest, dormID int64) (dto.UploadMediaResponse, error)
	List(ctx context.Context, dormID int64) (dto.GetDormMediasResponse, error)
	Delete(ctx context.Context, dormID int64, fileName string) error
}

type mediaServiceImpl struct {
	repo      repository.Dorm
	ownerRepo userRepo.Owner
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
}

func NewMedia(
	repo repository.Dorm,
	ownerRepo userRepo.Owner,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Media {
	return &mediaServiceImpl{
		repo:      repo,
		ownerRepo: ownerRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		s3:        s3,
	}
}

// getOwnedDorm loads the dorm and verifies the acting user owns it.
func (s *mediaServiceImpl) getOwnedDorm(ctx context.Context, dormID int64) (model.Dorm, error) {
	var dorm model.Dorm

	actor, ok := shared.ActorID(ctx)
	if !ok {
		return dorm, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	owner, err := s.ownerRepo.Get(ctx, shared.FilterByID(actor, userModel.OwnerFieldUserID, userModel.OwnerTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get dorm owner")

		return dorm, fmt.Errorf("failed to get dorm owner: %w", err)
	}

	if owner.ID == 0 {
		return dorm, failure.Forbidden("only dorm owners can manage dorm media") // nolint:wrapcheck
	}

	dorm, err = s.repo.Get(ctx, shared.FilterByID(dormID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get dorm")

		return dorm, fmt.Errorf("failed to get dorm: %w", err)
	}

	if dorm.ID == 0 {
		return dorm, failure.NotFound("dorm not found") // nolint:wrapcheck
	}

	if dorm.OwnerID != owner.ID {
		return dorm, failure.Forbidden("dorm does not belong to this owner") // nolint:wrapcheck
	}

	return dorm, nil
}

// Add uploads the file to object storage first and only then records the
// descriptor on the dorm row. If the row update fails the uploaded object
// is deleted so no orphan is left behind.
func (s *mediaServiceImpl) Add(ctx context.Context, req dto.UploadMediaRequest, dormID int64) (res dto.UploadMediaResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddMedia")
	defer scope.End()
	defer scope.TraceIfError(err)

	dorm, err := s.getOwnedDorm(ctx, dormID)
	if err != nil {
		return res, err
	}

	bucketName := s.cfg.External.S3.BucketName
	objectName := fmt.Sprintf("%d_%s%s", timezone.Now().UnixNano(), uuid.NewString()[:8], filepath.Ext(req.Media.Filename))

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.MediaFile, req.Media, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload media to S3")

		return res, fmt.Errorf("failed to upload media to S3: %w", err)
	}

	mimeType := req.Media.Header.Get("Content-Type")

	fileType := model.MediaTypeImage
	if strings.HasPrefix(mimeType, "video/") {
		fileType = model.MediaTypeVideo
	}

	media := model.Media{
		FileName:   req.Media.Filename,
		FilePath:   url,
		FileType:   fileType,
		FileSize:   req.Media.Size,
		MimeType:   mimeType,
		UploadedAt: timezone.Now(),
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := map[string]any{
		model.FieldMedias:        append(dorm.Medias, media),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(dormID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to record dorm media")

		// The object is already in S3; remove it so the bucket does not
		// accumulate files no dorm references.
		if delErr := s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName); delErr != nil {
			log.Error().Err(delErr).Str("objectName", objectName).Msg("failed to delete orphaned media from S3")
		}

		return res, fmt.Errorf("failed to record dorm media: %w", err)
	}

	res.FromMedia(media)

	s.invalidateDormCaches(ctx, dormID)

	return res, nil
}

func (s *mediaServiceImpl) List(ctx context.Context, dormID int64) (res dto.GetDormMediasResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMedia")
	defer scope.End()
	defer scope.TraceIfError(err)

	dorm, err := s.repo.Get(ctx, shared.FilterByID(dormID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get dorm")

		return res, fmt.Errorf("failed to get dorm: %w", err)
	}

	if dorm.ID == 0 {
		return res, failure.NotFound("dorm not found") // nolint:wrapcheck
	}

	res.FromModel(dorm.Medias)

	return res, nil
}

// Delete removes the descriptor from the dorm row first, then the object
// from storage. A failed storage delete leaves only an unreferenced object,
// never a dangling descriptor.
func (s *mediaServiceImpl) Delete(ctx context.Context, dormID int64, fileName string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteMedia")
	defer scope.End()
	defer scope.TraceIfError(err)

	dorm, err := s.getOwnedDorm(ctx, dormID)
	if err != nil {
		return err
	}

	index := -1

	for i, media := range dorm.Medias {
		if media.FileName == fileName {
			index = i

			break
		}
	}

	if index < 0 {
		return failure.NotFound("media not found") // nolint:wrapcheck
	}

	removed := dorm.Medias[index]
	remaining := make(model.MediaList, 0, len(dorm.Medias)-1)
	remaining = append(remaining, dorm.Medias[:index]...)
	remaining = append(remaining, dorm.Medias[index+1:]...)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := map[string]any{
		model.FieldMedias:        remaining,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(dormID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to remove dorm media")

		return fmt.Errorf("failed to remove dorm media: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		bucketName := s.cfg.External.S3.BucketName

		objectName := s.s3.GetObjectNameFromURL(bucketName, removed.FilePath)
		if objectName == constant.Empty {
			log.Warn().Str("url", removed.FilePath).Msg("failed to extract object name from URL")

			return
		}

		if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete media from S3")
		}
	}()

	s.invalidateDormCaches(ctx, dormID)

	return nil
}

func (s *mediaServiceImpl) invalidateDormCaches(ctx context.Context, dormID int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDorm, strconv.FormatInt(dormID, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete dorm from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDorm)
		shared.InvalidateCaches(c, s.cache, cacheSearchDorm)
	}()
}
