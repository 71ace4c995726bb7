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
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	localCache "github.com/teccodex/chronicler/pkg/internal/cache"
	"github.com/teccodex/chronicler/pkg/internal/database"
	"github.com/teccodex/chronicler/pkg/internal/models"
)

// ListTokens returns every token from the canonical wallets data file,
// falling back to published token records in the content database when the
// file is absent. Results are cached for a minute.
func ListTokens() ([]models.Token, error) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	ctx := context.Background()

	cacheKey := "datasource-tokens"
	if val, err := marshal.Get(ctx, cacheKey, new([]models.Token)); err == nil {
		return *(val.(*[]models.Token)), nil
	}

	items, err := loadTokensFromSource()
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

// FilterTokensWithNetwork narrows a token list down to one blockchain.
func FilterTokensWithNetwork(items []models.Token, network string) []models.Token {
	return lo.Filter(items, func(item models.Token, index int) bool {
		return item.Network == network
	})
}

func loadTokensFromSource() ([]models.Token, error) {
	path := viper.GetString("datasource.wallets_path")

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("Unable to read wallets data file, using database fallback...")
		}
		return listTokensFromDatabase()
	}

	records, err := decodeSourceArray[models.Token](raw, "wallets")
	if err != nil {
		records, err = decodeSourceArray[models.Token](raw, "tokens")
	}
	if err != nil {
		if viper.GetBool("datasource.strict") {
			return nil, fmt.Errorf("malformed wallets data file: %v", err)
		}
		log.Warn().Err(err).Str("path", path).Msg("Malformed wallets data file, using database fallback...")
		return listTokensFromDatabase()
	}

	items := make([]models.Token, 0, len(records))
	for _, item := range records {
		if len(item.Name) == 0 && len(item.Symbol) == 0 {
			log.Warn().Str("path", path).Msg("Dropping a token record without a name or symbol...")
			continue
		}
		items = append(items, normalizeToken(item))
	}

	return items, nil
}

func normalizeToken(item models.Token) models.Token {
	if len(item.Network) == 0 {
		item.Network = item.Chain
	}
	item.Chain = ""
	if len(item.Name) > 0 {
		item.Slug = slug.Make(item.Name)
	} else {
		item.Slug = slug.Make(item.Symbol)
	}
	return item
}

func listTokensFromDatabase() ([]models.Token, error) {
	tx := FilterContentWithType(database.C, models.ContentTypeToken)
	tx = FilterContentPublished(tx)
	tx = FilterContentWithPublishedAt(tx, time.Now())

	var records []models.Content
	if err := tx.Preload("Terms").Find(&records).Error; err != nil {
		if viper.GetBool("datasource.strict") {
			return nil, err
		}
		log.Warn().Err(err).Msg("Unable to query token records, returning an empty set...")
		return []models.Token{}, nil
	}

	return lo.Map(records, func(item models.Content, index int) models.Token {
		return mapContentToToken(item)
	}), nil
}

func mapContentToToken(item models.Content) models.Token {
	out := models.Token{
		Name: item.Title,
	}
	if val, ok := item.Meta["token_symbol"].(string); ok {
		out.Symbol = val
	}
	if val, ok := item.Meta["token_network"].(string); ok {
		out.Network = val
	}
	if val, ok := item.Meta["token_price"].(string); ok {
		if price, err := decimal.NewFromString(val); err == nil {
			out.Price = &price
		}
	} else if val, ok := item.Meta["token_price"].(float64); ok {
		price := decimal.NewFromFloat(val)
		out.Price = &price
	}
	return normalizeToken(out)
}
