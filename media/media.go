// Package media uploads gallery images to Cloudinary.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
	"github.com/google/uuid"

	"github.com/jacentio/studiodesk/store"
)

var (
	// ErrUploadDisabled is returned when no media backend is configured.
	ErrUploadDisabled = errors.New("studiodesk: media upload disabled")

	// ErrGalleryNotFound is returned when an upload targets a missing gallery.
	ErrGalleryNotFound = errors.New("studiodesk: gallery not found")
)

// Delivery transformations.
const (
	imageEager = "q_auto,f_auto,w_1600,c_limit"
	ThumbWidth = 400
)

// Uploaded is where an uploaded image can be fetched.
type Uploaded struct {
	URL          string
	ThumbnailURL string
	PublicID     string
}

// Uploader stores image bytes and returns their delivery URLs.
type Uploader interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (Uploaded, error)
}

// ImageUploader is the subset of the Cloudinary upload API in use.
type ImageUploader interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryUploader uploads through the Cloudinary upload API.
type CloudinaryUploader struct {
	cloudName string
	api       ImageUploader
}

// NewCloudinaryUploader builds an uploader from account credentials.
func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, fmt.Errorf("cloudinary uploader: %w", err)
	}
	return NewCloudinaryUploaderWithAPI(cloudName, up), nil
}

// NewCloudinaryUploaderWithAPI wraps an existing upload API client.
func NewCloudinaryUploaderWithAPI(cloudName string, api ImageUploader) *CloudinaryUploader {
	return &CloudinaryUploader{cloudName: cloudName, api: api}
}

var eagerAsync = false

// UploadImage uploads file and returns its URL and a fill-cropped thumbnail.
func (c *CloudinaryUploader) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (Uploaded, error) {
	res, err := c.api.Upload(ctx, file, uploader.UploadParams{
		Folder:     folder,
		PublicID:   publicID,
		Eager:      imageEager,
		EagerAsync: &eagerAsync,
	})
	if err != nil {
		return Uploaded{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return Uploaded{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}

	url := res.SecureURL
	if len(res.Eager) > 0 && res.Eager[0].SecureURL != "" {
		url = res.Eager[0].SecureURL
	}
	return Uploaded{
		URL:          url,
		ThumbnailURL: ThumbnailURL(c.cloudName, res.PublicID, ThumbWidth),
		PublicID:     res.PublicID,
	}, nil
}

// ThumbnailURL returns a square, auto-optimized rendition of publicID.
func ThumbnailURL(cloudName, publicID string, width int) string {
	if width <= 0 {
		width = ThumbWidth
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d,h_%d,c_fill/%s",
		cloudName, width, width, publicID)
}

// Disabled rejects every upload with ErrUploadDisabled.
type Disabled struct{}

func (Disabled) UploadImage(context.Context, io.Reader, string, string) (Uploaded, error) {
	return Uploaded{}, ErrUploadDisabled
}

// Gallery uploads images into store galleries.
type Gallery struct {
	store    *store.Store
	uploader Uploader
	folder   string
	logger   *slog.Logger
}

// NewGallery creates a Gallery. Images land under folder/<galleryID>.
func NewGallery(s *store.Store, up Uploader, folder string, logger *slog.Logger) *Gallery {
	if up == nil {
		up = Disabled{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gallery{store: s, uploader: up, folder: strings.Trim(folder, "/"), logger: logger}
}

// AddImage uploads file and appends it to the gallery, returning the stored
// image.
func (g *Gallery) AddImage(ctx context.Context, galleryID, title string, file io.Reader) (store.GalleryImage, error) {
	if _, ok := g.store.Gallery(galleryID); !ok {
		return store.GalleryImage{}, ErrGalleryNotFound
	}

	publicID := "img_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	up, err := g.uploader.UploadImage(ctx, file, g.folderFor(galleryID), publicID)
	if err != nil {
		return store.GalleryImage{}, err
	}

	img := store.GalleryImage{URL: up.URL, Thumbnail: up.ThumbnailURL, Title: title}
	id, ok := g.store.AppendGalleryImage(galleryID, img)
	if !ok {
		// Deleted while the upload was in flight.
		return store.GalleryImage{}, ErrGalleryNotFound
	}
	img.ID = id

	g.logger.Info("gallery image uploaded",
		"galleryID", galleryID,
		"imageID", id,
		"publicID", up.PublicID,
	)
	return img, nil
}

func (g *Gallery) folderFor(galleryID string) string {
	if g.folder == "" {
		return "galleries/" + galleryID
	}
	return g.folder + "/galleries/" + galleryID
}
