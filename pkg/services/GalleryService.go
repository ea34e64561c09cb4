package services

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/geturloptions"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/adampresley/adamgokit/slices"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/qmacanada/website/pkg/models"
)

const (
	GalleryOriginalsFolder  = "original"
	GalleryThumbnailsFolder = "thumbnail"
)

var (
	validImageExt = []string{".jpg", ".jpeg"}
)

type GalleryServicer interface {
	GetMediaItems() ([]models.MediaItem, error)
}

type GalleryServiceConfig struct {
	Bucket             string
	GalleryPhotoFolder string
	S3Client           s3.S3Client
	UrlExpiration      time.Duration
}

/*
GalleryService builds the gallery feed from the bucket. Photos are laid out
as <folder>/original/<year>/<event>/<file>, with a matching tree under
<folder>/thumbnail.
*/
type GalleryService struct {
	bucket             string
	galleryPhotoFolder string
	s3Client           s3.S3Client
	urlExpiration      time.Duration
}

func NewGalleryService(config GalleryServiceConfig) GalleryService {
	if config.UrlExpiration <= 0 {
		config.UrlExpiration = time.Hour
	}

	return GalleryService{
		bucket:             config.Bucket,
		galleryPhotoFolder: config.GalleryPhotoFolder,
		s3Client:           config.S3Client,
		urlExpiration:      config.UrlExpiration,
	}
}

func (s GalleryService) GetMediaItems() ([]models.MediaItem, error) {
	var (
		err        error
		originals  []s3.Object
		thumbnails []s3.Object
	)

	if originals, err = s.listImages(GalleryOriginalsFolder); err != nil {
		return nil, fmt.Errorf("error listing gallery originals: %w", err)
	}

	if thumbnails, err = s.listImages(GalleryThumbnailsFolder); err != nil {
		slog.Error("error listing gallery thumbnails. serving originals only", "error", err, "bucket", s.bucket)
		thumbnails = []s3.Object{}
	}

	return MediaItemsFromObjects(s.galleryPhotoFolder, originals, thumbnails), nil
}

func (s GalleryService) listImages(kind string) ([]s3.Object, error) {
	var (
		err      error
		response s3.ListResponse
	)

	response, err = s.s3Client.List(
		s.bucket,
		filepath.Join(s.galleryPhotoFolder, kind),
		listoptions.WithGetUrls(),
		listoptions.WithGetAll(),
		listoptions.WithFilter(func(obj types.Object) bool {
			return IsImageKey(aws.ToString(obj.Key))
		}),
		listoptions.WithGetUrlOptions(
			geturloptions.WithExpiration(s.urlExpiration),
		),
	)

	if err != nil {
		return nil, err
	}

	return response.Objects, nil
}

func IsImageKey(key string) bool {
	ext := strings.ToLower(filepath.Ext(key))
	return slices.IsInSlice(ext, validImageExt)
}

/*
GalleryKey is the parsed form of a gallery object key.
*/
type GalleryKey struct {
	Year     string
	Event    string
	FileName string
}

// RelativePath is the part of the key shared by an original and its thumbnail.
func (k GalleryKey) RelativePath() string {
	return strings.Join([]string{k.Year, k.Event, k.FileName}, "/")
}

/*
ParseGalleryKey splits <folder>/<kind>/<year>/<event>/<file>. It returns
false for keys outside that layout.
*/
func ParseGalleryKey(folder, kind, key string) (GalleryKey, bool) {
	prefix := strings.Trim(folder, "/") + "/" + kind + "/"

	if !strings.HasPrefix(key, prefix) {
		return GalleryKey{}, false
	}

	parts := strings.Split(strings.TrimPrefix(key, prefix), "/")

	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return GalleryKey{}, false
	}

	return GalleryKey{
		Year:     parts[0],
		Event:    canonicalEvent(parts[1]),
		FileName: parts[2],
	}, true
}

/*
MediaItemsFromObjects pairs original objects with their thumbnails and
returns the feed, newest year first. IDs are derived from the original key
so they survive refetches.
*/
func MediaItemsFromObjects(folder string, originals, thumbnails []s3.Object) []models.MediaItem {
	type keyedItem struct {
		key  string
		item models.MediaItem
	}

	thumbnailUrls := map[string]string{}

	for _, thumbnail := range thumbnails {
		if parsed, ok := ParseGalleryKey(folder, GalleryThumbnailsFolder, thumbnail.Key); ok {
			thumbnailUrls[parsed.RelativePath()] = thumbnail.Url
		}
	}

	keyed := []keyedItem{}

	for _, original := range originals {
		parsed, ok := ParseGalleryKey(folder, GalleryOriginalsFolder, original.Key)

		if !ok || !IsImageKey(original.Key) {
			slog.Debug("skipping gallery object outside the expected layout", "key", original.Key)
			continue
		}

		keyed = append(keyed, keyedItem{
			key: original.Key,
			item: models.MediaItem{
				ID:        MediaIDForKey(original.Key),
				Src:       original.Url,
				Thumbnail: thumbnailUrls[parsed.RelativePath()],
				Year:      models.Year(parsed.Year),
				Event:     parsed.Event,
			},
		})
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		if keyed[i].item.Year != keyed[j].item.Year {
			return keyed[i].item.Year > keyed[j].item.Year
		}

		return keyed[i].key < keyed[j].key
	})

	result := slices.Map(keyed, func(input keyedItem, index int) models.MediaItem {
		return input.item
	})

	if result == nil {
		result = []models.MediaItem{}
	}

	return result
}

func MediaIDForKey(key string) models.MediaID {
	return models.MediaID(uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String())
}

/*
canonicalEvent maps a folder name onto a known event facet, ignoring case.
Unknown names are kept as they are.
*/
func canonicalEvent(name string) string {
	for _, event := range models.EventFacets {
		if event != models.FacetAll && strings.EqualFold(event, name) {
			return event
		}
	}

	return name
}
