package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gosimple/slug"
	"github.com/pemistahl/lingua-go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/teccodex/chronicler/pkg/internal/database"
	"github.com/teccodex/chronicler/pkg/internal/models"
)

var ContentTypes = []string{
	models.ContentTypePost,
	models.ContentTypeFaction,
	models.ContentTypeToken,
	models.ContentTypeCryptoEvent,
}

var ContentStatuses = []string{
	models.ContentStatusDraft,
	models.ContentStatusPublish,
	models.ContentStatusPending,
	models.ContentStatusPrivate,
}

func FilterContentWithType(tx *gorm.DB, t string) *gorm.DB {
	return tx.Where("type = ?", t)
}

func FilterContentPublished(tx *gorm.DB) *gorm.DB {
	return tx.Where("status = ?", models.ContentStatusPublish)
}

func FilterContentWithPublishedAt(tx *gorm.DB, date time.Time) *gorm.DB {
	return tx.Where("published_at <= ? OR published_at IS NULL", date)
}

func FilterContentWithTerm(tx *gorm.DB, taxonomy, alias string) *gorm.DB {
	return tx.Joins("JOIN content_terms ON contents.id = content_terms.content_id").
		Joins("JOIN terms ON terms.id = content_terms.term_id").
		Where("terms.taxonomy = ? AND terms.slug = ?", taxonomy, alias).
		Distinct("contents.id")
}

// NewContent runs the ingestion pipeline: the body is sanitized, the slug
// and language are derived, taxonomy terms are ensured and the record is
// saved. The type and status must already be members of the closed sets.
func NewContent(item models.Content) (models.Content, error) {
	if !lo.Contains(ContentTypes, item.Type) {
		return item, fmt.Errorf("unknown content type: %s", item.Type)
	}
	if len(item.Status) == 0 {
		item.Status = models.ContentStatusDraft
	}
	if !lo.Contains(ContentStatuses, item.Status) {
		return item, fmt.Errorf("unknown content status: %s", item.Status)
	}

	item.Slug = slug.Make(item.Title)
	item.Body = SanitizeContentBody(item.Body)
	item.Language = DetectContentLanguage(item.Body)
	item.Meta = NormalizeContentMeta(item.Meta)

	if item.Status == models.ContentStatusPublish && item.PublishedAt == nil {
		item.PublishedAt = lo.ToPtr(time.Now())
	}

	log.Debug().Str("slug", item.Slug).Str("type", item.Type).Msg("Saving an ingested content record...")

	item, err := EnsureContentTerms(item)
	if err != nil {
		return item, err
	}

	if err := database.C.Save(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

func EnsureContentTerms(item models.Content) (models.Content, error) {
	var err error
	for idx, term := range item.Terms {
		item.Terms[idx], err = GetTermOrCreate(term.Taxonomy, term.Slug, term.Name)
		if err != nil {
			return item, err
		}
	}
	return item, nil
}

func GetTermOrCreate(taxonomy, alias, name string) (models.Term, error) {
	var term models.Term
	if err := database.C.Where("taxonomy = ? AND slug = ?", taxonomy, alias).First(&term).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return term, err
		}
		term = models.Term{
			Taxonomy: taxonomy,
			Slug:     alias,
			Name:     name,
		}
		if err := database.C.Save(&term).Error; err != nil {
			return term, err
		}
	}
	return term, nil
}

var metaKeyPattern = regexp.MustCompile(`[^a-z0-9_\-]`)

// NormalizeMetaKey reduces an externally supplied meta key to a safe
// identifier: lowercased, with everything outside [a-z0-9_-] removed.
func NormalizeMetaKey(key string) string {
	return metaKeyPattern.ReplaceAllString(strings.ToLower(key), "")
}

func NormalizeContentMeta(meta datatypes.JSONMap) datatypes.JSONMap {
	if meta == nil {
		return nil
	}
	out := datatypes.JSONMap{}
	for key, value := range meta {
		if normalized := NormalizeMetaKey(key); len(normalized) > 0 {
			out[normalized] = value
		}
	}
	return out
}

var permalinkSegments = map[string]string{
	models.ContentTypePost:        "posts",
	models.ContentTypeFaction:     "factions",
	models.ContentTypeToken:       "tokens",
	models.ContentTypeCryptoEvent: "crypto-events",
}

// GetContentPermalink derives the canonical URL a rendering layer serves
// the record under.
func GetContentPermalink(item models.Content) string {
	base := strings.TrimSuffix(viper.GetString("general.base_url"), "/")
	return fmt.Sprintf("%s/%s/%s", base, permalinkSegments[item.Type], item.Slug)
}

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

// DetectContentLanguage guesses the language of a sanitized HTML body.
func DetectContentLanguage(body string) string {
	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Spanish,
				lingua.French,
				lingua.German,
				lingua.Portuguese,
				lingua.Japanese,
				lingua.Chinese,
			).
			WithLowAccuracyMode().
			Build()
	})

	if language, ok := languageDetector.DetectLanguageOf(StripContentTags(body)); ok {
		return strings.ToLower(language.IsoCode639_1().String())
	}
	return "unknown"
}
