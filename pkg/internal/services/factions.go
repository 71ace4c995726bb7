package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/gosimple/slug"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"

	localCache "github.com/teccodex/chronicler/pkg/internal/cache"
	"github.com/teccodex/chronicler/pkg/internal/database"
	"github.com/teccodex/chronicler/pkg/internal/models"
)

const dataSourceCacheTag = "datasource"

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// ListFactions returns every faction from the canonical data file, falling
// back to published faction records in the content database when the file
// is absent. Results are cached for a minute.
func ListFactions() ([]models.Faction, error) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	ctx := context.Background()

	cacheKey := "datasource-factions"
	if val, err := marshal.Get(ctx, cacheKey, new([]models.Faction)); err == nil {
		return *(val.(*[]models.Faction)), nil
	}

	items, err := loadFactionsFromSource()
	if err != nil {
		return nil, err
	}

	_ = marshal.Set(
		ctx,
		cacheKey,
		items,
		store.WithExpiration(time.Minute),
		store.WithTags([]string{dataSourceCacheTag}),
	)

	return items, nil
}

// GetFaction looks a single faction up by its derived slug.
func GetFaction(alias string) (models.Faction, bool, error) {
	items, err := ListFactions()
	if err != nil {
		return models.Faction{}, false, err
	}

	item, ok := lo.Find(items, func(item models.Faction) bool {
		return item.Slug == alias
	})

	return item, ok, nil
}

// FlushDataSourceCache drops every cached data-file read; used after the
// external sync agent rewrites the data files.
func FlushDataSourceCache() {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	_ = marshal.Invalidate(
		context.Background(),
		store.WithInvalidateTags([]string{dataSourceCacheTag}),
	)
}

func loadFactionsFromSource() ([]models.Faction, error) {
	path := viper.GetString("datasource.factions_path")

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("Unable to read factions data file, using database fallback...")
		}
		return listFactionsFromDatabase()
	}

	records, err := decodeSourceArray[models.Faction](raw, "factions")
	if err != nil {
		if viper.GetBool("datasource.strict") {
			return nil, fmt.Errorf("malformed factions data file: %v", err)
		}
		log.Warn().Err(err).Str("path", path).Msg("Malformed factions data file, using database fallback...")
		return listFactionsFromDatabase()
	}

	items := make([]models.Faction, 0, len(records))
	for _, item := range records {
		if len(item.Name) == 0 {
			log.Warn().Str("path", path).Msg("Dropping a faction record without a name...")
			continue
		}
		items = append(items, normalizeFaction(item))
	}

	return items, nil
}

// decodeSourceArray accepts both document forms the data directory has used
// over time: an object with a named top-level array, or a bare array.
func decodeSourceArray[T any](raw []byte, key string) ([]T, error) {
	var doc map[string]jsoniter.RawMessage
	if err := jsonCodec.Unmarshal(raw, &doc); err == nil {
		nested, ok := doc[key]
		if !ok {
			return nil, fmt.Errorf("document has no top-level %q array", key)
		}
		var records []T
		if err := jsonCodec.Unmarshal(nested, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var records []T
	if err := jsonCodec.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func normalizeFaction(item models.Faction) models.Faction {
	item.Slug = slug.Make(item.Name)
	if len(item.Colors) == 0 {
		item.Colors = []string{models.FactionDefaultPrimaryColor, models.FactionDefaultSecondaryColor}
	} else if len(item.Colors) == 1 {
		item.Colors = append(item.Colors, models.FactionDefaultSecondaryColor)
	}
	return item
}

func listFactionsFromDatabase() ([]models.Faction, error) {
	tx := FilterContentWithType(database.C, models.ContentTypeFaction)
	tx = FilterContentPublished(tx)
	tx = FilterContentWithPublishedAt(tx, time.Now())

	var records []models.Content
	if err := tx.Preload("Terms").Find(&records).Error; err != nil {
		if viper.GetBool("datasource.strict") {
			return nil, err
		}
		log.Warn().Err(err).Msg("Unable to query faction records, returning an empty set...")
		return []models.Faction{}, nil
	}

	return lo.Map(records, func(item models.Content, index int) models.Faction {
		return mapContentToFaction(item)
	}), nil
}

func mapContentToFaction(item models.Content) models.Faction {
	out := models.Faction{
		Name:        item.Title,
		Description: item.Excerpt,
	}
	if val, ok := item.Meta["faction_ethos"].(string); ok {
		out.Ethos = val
	}
	if val, ok := item.Meta["faction_alignment"].(string); ok {
		out.Alignment = val
	}
	if val, ok := item.Meta["faction_color"].(string); ok {
		out.Colors = append(out.Colors, val)
	}
	if val, ok := item.Meta["faction_color_secondary"].(string); ok {
		out.Colors = append(out.Colors, val)
	}
	return normalizeFaction(out)
}
