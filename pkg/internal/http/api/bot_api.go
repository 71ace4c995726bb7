package api

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/samber/lo"
	"gorm.io/datatypes"

	"github.com/teccodex/chronicler/pkg/internal/http/exts"
	"github.com/teccodex/chronicler/pkg/internal/models"
	"github.com/teccodex/chronicler/pkg/internal/services"
)

func createBotPost(c *fiber.Ctx) error {
	var data struct {
		Title            string              `json:"title"`
		Content          string              `json:"content"`
		PostType         string              `json:"post_type"`
		Status           string              `json:"status"`
		Excerpt          string              `json:"excerpt"`
		FeaturedImageURL string              `json:"featured_image_url"`
		Terms            map[string][]string `json:"terms"`
		Meta             map[string]any      `json:"meta"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	var missing []string
	for field, value := range map[string]string{
		"title":     data.Title,
		"content":   data.Content,
		"post_type": data.PostType,
	} {
		if len(strings.TrimSpace(value)) == 0 {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fiber.NewError(fiber.StatusBadRequest, "required fields are missing: "+strings.Join(missing, ", "))
	}

	if !lo.Contains(services.ContentTypes, data.PostType) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown post type: "+data.PostType)
	}
	if len(data.Status) > 0 && !lo.Contains(services.ContentStatuses, data.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown status: "+data.Status)
	}

	item := models.Content{
		Type:    data.PostType,
		Title:   data.Title,
		Body:    data.Content,
		Excerpt: data.Excerpt,
		Status:  data.Status,
		Meta:    datatypes.JSONMap(data.Meta),
	}
	for taxonomy, values := range data.Terms {
		taxonomy = services.NormalizeMetaKey(taxonomy)
		for _, value := range values {
			item.Terms = append(item.Terms, models.Term{
				Taxonomy: taxonomy,
				Slug:     slug.Make(value),
				Name:     value,
			})
		}
	}

	item, err := services.NewContent(item)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code":    "persistence_error",
			"message": err.Error(),
		})
	}

	// Thumbnail sideloading is best effort: the record already exists and
	// a dead image URL must not take it down with it.
	var warnings []string
	if len(data.FeaturedImageURL) > 0 {
		if _, err := services.SetContentThumbnailFromURL(&item, data.FeaturedImageURL); err != nil {
			warnings = append(warnings, fmt.Sprintf("fetch_error: unable to attach featured image: %v", err))
		}
	}

	response := fiber.Map{
		"success":   true,
		"post_id":   item.ID,
		"permalink": services.GetContentPermalink(item),
	}
	if len(warnings) > 0 {
		response["warnings"] = warnings
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}
