package dto

import (
	"mime/multipart"

	"dormhub/internal/domains/dorm/model"
	"dormhub/shared/constant"
	"dormhub/shared/timezone"
)

type UploadMediaRequest struct {
	Media     *multipart.FileHeader `json:"media" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg video/mp4 video/quicktime"`
	MediaFile multipart.File        `json:"-"`
}

type UploadMediaResponse struct {
	MediaResponse
}

func (r *UploadMediaResponse) FromMedia(media model.Media) {
	r.MediaResponse = MediaResponse{
		FileName:   media.FileName,
		FilePath:   media.FilePath,
		FileType:   media.FileType,
		FileSize:   media.FileSize,
		MimeType:   media.MimeType,
		UploadedAt: timezone.Format(media.UploadedAt, constant.DateFormat),
	}
}

type GetDormMediasResponse struct {
	Medias []MediaResponse `json:"medias"`
}

func (r *GetDormMediasResponse) FromModel(medias model.MediaList) {
	r.Medias = mediaResponses(medias)
}
