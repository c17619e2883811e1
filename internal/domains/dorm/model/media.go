package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Media describes one uploaded file attached to a dorm. The binary lives in
// object storage; the descriptor lives in the dorm row's medias column.
type Media struct {
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// MediaList maps the JSONB medias column.
type MediaList []Media

func (m MediaList) Value() (driver.Value, error) {
	if m == nil {
		m = MediaList{}
	}

	value, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal media list: %w", err)
	}

	return value, nil
}

func (m *MediaList) Scan(src any) error {
	if src == nil {
		*m = MediaList{}

		return nil
	}

	var raw []byte

	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported media list source type %T", src)
	}

	if err := json.Unmarshal(raw, m); err != nil {
		return fmt.Errorf("failed to unmarshal media list: %w", err)
	}

	return nil
}
