package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/teccodex/chronicler/pkg/internal/database"
	"github.com/teccodex/chronicler/pkg/internal/models"
)

// Remote thumbnails are bounded so a hostile URL cannot exhaust the disk.
const maxThumbnailSize = 20 << 20

// SetContentThumbnailFromURL fetches a remote image with a bounded timeout,
// verifies it actually is an image by sniffing its bytes, stores it under
// the uploads directory and links it to the record as its thumbnail.
func SetContentThumbnailFromURL(item *models.Content, url string) (models.Attachment, error) {
	var attachment models.Attachment

	timeout := viper.GetDuration("storage.fetch_timeout")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return attachment, err
	}

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return attachment, err
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return attachment, fmt.Errorf("remote image responded with status %d", response.StatusCode)
	}

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxThumbnailSize))
	if err != nil {
		return attachment, err
	}

	mime := mimetype.Detect(payload)
	if !strings.HasPrefix(mime.String(), "image/") {
		return attachment, fmt.Errorf("remote resource is not an image: %s", mime.String())
	}

	uploads := viper.GetString("storage.uploads_path")
	if len(uploads) == 0 {
		uploads = "./uploads"
	}
	if err := os.MkdirAll(uploads, 0755); err != nil {
		return attachment, err
	}

	name := uuid.NewString() + mime.Extension()
	if err := os.WriteFile(filepath.Join(uploads, name), payload, 0644); err != nil {
		return attachment, err
	}

	attachment = models.Attachment{
		FileName: name,
		MimeType: mime.String(),
		Size:     int64(len(payload)),
		Origin:   url,
	}
	if err := database.C.Save(&attachment).Error; err != nil {
		return attachment, err
	}

	if err := database.C.Model(item).Update("thumbnail_id", attachment.ID).Error; err != nil {
		return attachment, err
	}
	item.ThumbnailID = &attachment.ID
	item.Thumbnail = &attachment

	log.Debug().Str("file", name).Uint("content", item.ID).Msg("Attached a remote thumbnail to a content record.")

	return attachment, nil
}
