package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ContentTypePost        = "post"
	ContentTypeFaction     = "faction"
	ContentTypeToken       = "token"
	ContentTypeCryptoEvent = "crypto_event"
)

const (
	ContentStatusDraft   = "draft"
	ContentStatusPublish = "publish"
	ContentStatusPending = "pending"
	ContentStatusPrivate = "private"
)

type Content struct {
	BaseModel

	Type     string            `json:"type"`
	Slug     string            `json:"slug" gorm:"index"`
	Title    string            `json:"title"`
	Excerpt  string            `json:"excerpt"`
	Body     string            `json:"body"`
	Language string            `json:"language"`
	Status   string            `json:"status"`
	Meta     datatypes.JSONMap `json:"meta"`
	Terms    []Term            `json:"terms" gorm:"many2many:content_terms"`

	ThumbnailID *uint       `json:"thumbnail_id"`
	Thumbnail   *Attachment `json:"thumbnail"`

	PublishedAt *time.Time `json:"published_at"`
}

type Term struct {
	BaseModel

	Taxonomy string    `json:"taxonomy" gorm:"uniqueIndex:idx_terms_taxonomy_slug"`
	Slug     string    `json:"slug" gorm:"uniqueIndex:idx_terms_taxonomy_slug"`
	Name     string    `json:"name"`
	Contents []Content `json:"contents" gorm:"many2many:content_terms"`
}
