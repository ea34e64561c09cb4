package cache

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/createbucketoptions"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/alitto/pond/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/nfnt/resize"
	"github.com/qmacanada/website/pkg/services"
)

const (
	galleryThumbnailSize  uint = 400
	homePageThumbnailSize uint = 300
)

type CacheCreator interface {
	CreateCache()
}

type CacheCreatorConfig struct {
	AwsBucket           string
	AwsRegion           string
	GalleryPhotoFolder  string
	HomePagePhotoFolder string
	MaxCacheWorkers     int
	S3Client            s3.S3Client
	ShutdownCtx         context.Context
}

/*
CacheCreatorService keeps thumbnails for the gallery and the home page in
step with their originals.
*/
type CacheCreatorService struct {
	awsBucket           string
	awsRegion           string
	galleryPhotoFolder  string
	homePagePhotoFolder string
	maxCacheWorkers     int
	s3Client            s3.S3Client
	shutdownCtx         context.Context
}

func NewCacheCreatorService(config CacheCreatorConfig) CacheCreatorService {
	if config.MaxCacheWorkers <= 0 {
		config.MaxCacheWorkers = 1
	}

	return CacheCreatorService{
		awsBucket:           config.AwsBucket,
		awsRegion:           config.AwsRegion,
		galleryPhotoFolder:  config.GalleryPhotoFolder,
		homePagePhotoFolder: config.HomePagePhotoFolder,
		maxCacheWorkers:     config.MaxCacheWorkers,
		s3Client:            config.S3Client,
		shutdownCtx:         config.ShutdownCtx,
	}
}

func (c CacheCreatorService) CreateCache() {
	var (
		err error
	)

	slog.Info("starting cache creation...")

	if err = c.ensureBucketExists(c.awsBucket); err != nil {
		slog.Error("error ensuring bucket exists. aborting", "bucket", c.awsBucket, "error", err)
		return
	}

	pool := pond.NewPool(c.maxCacheWorkers, pond.WithContext(c.shutdownCtx))

	if err = c.updateHomePageCache(pool); err != nil {
		slog.Error("error updating home page cache", "error", err)
	}

	if err = c.updateGalleryCache(pool); err != nil {
		slog.Error("error updating gallery cache", "error", err)
	}

	_ = pool.Stop().Wait()
}

func (c CacheCreatorService) ensureBucketExists(bucketName string) error {
	var (
		err    error
		exists bool
	)

	exists, err = c.s3Client.BucketExists(bucketName)

	if err != nil {
		return fmt.Errorf("error ensuring bucket '%s' exists: %w", bucketName, err)
	}

	if exists {
		return nil
	}

	slog.Info("creating bucket", "bucketName", bucketName)

	err = c.s3Client.CreateBucket(
		bucketName,
		createbucketoptions.WithRegion(c.awsRegion),
	)

	if err != nil {
		return fmt.Errorf("error creating bucket '%s': %w", bucketName, err)
	}

	return nil
}

func (c CacheCreatorService) updateHomePageCache(pool pond.Pool) error {
	var (
		err           error
		originals     s3.ListResponse
		thumbnailStat *s3.ObjectMetadata
	)

	resizeWork := func(original s3.Object, thumbnailKey string) {
		var (
			err error
			img image.Image
			buf bytes.Buffer
		)

		img, err = c.resizeUrl(original.Url, homePageThumbnailSize)
		if err != nil {
			slog.Error("error resizing image", "image", original.Key, "error", err)
			return
		}

		if err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			slog.Error("error encoding image for thumbnail", "key", thumbnailKey, "error", err)
			return
		}

		if _, err = c.s3Client.Put(c.awsBucket, thumbnailKey, bytes.NewReader(buf.Bytes())); err != nil {
			slog.Error("error uploading resized image", "thumbnailKey", thumbnailKey, "error", err)
			return
		}

		slog.Info("updated home page thumbnail", "thumbnailKey", thumbnailKey)
	}

	originalsKey := filepath.Join(c.homePagePhotoFolder, "original")
	originals, err = c.s3Client.List(
		c.awsBucket,
		originalsKey,
		listoptions.WithGetUrls(),
	)

	if err != nil {
		return fmt.Errorf("error listing home page images: %w", err)
	}

	slog.Info("checking for updated home page images...", "numImages", len(originals.Objects), "bucket", c.awsBucket, "path", originalsKey)

	for _, original := range originals.Objects {
		thumbnailKey := filepath.Join(c.homePagePhotoFolder, "thumbnail", filepath.Base(original.Key))

		if thumbnailStat, err = c.s3Client.StatObject(c.awsBucket, thumbnailKey); err != nil {
			slog.Error("error retrieving metadata for thumbnail", "thumbnailKey", thumbnailKey, "error", err)
			continue
		}

		if thumbnailStat == nil || thumbnailStat.LastModified.Before(original.LastModified) {
			pool.Submit(func() {
				resizeWork(original, thumbnailKey)
			})
		}
	}

	return nil
}

func (c CacheCreatorService) updateGalleryCache(pool pond.Pool) error {
	var (
		err      error
		response s3.ListResponse
	)

	originalsKey := filepath.Join(c.galleryPhotoFolder, services.GalleryOriginalsFolder)

	response, err = c.s3Client.List(
		c.awsBucket,
		originalsKey,
		listoptions.WithGetAll(),
		listoptions.WithFilter(func(obj types.Object) bool {
			return services.IsImageKey(aws.ToString(obj.Key))
		}),
	)

	if err != nil {
		return fmt.Errorf("error listing gallery images: %w", err)
	}

	slog.Info("checking for updated gallery images...", "numImages", len(response.Objects), "bucket", c.awsBucket, "path", originalsKey)

	for _, original := range response.Objects {
		thumbnailKey, ok := GalleryThumbnailKey(c.galleryPhotoFolder, original.Key)

		if !ok {
			slog.Debug("skipping gallery object outside the expected layout", "key", original.Key)
			continue
		}

		pool.Submit(func() {
			if c.isThumbnailCurrent(thumbnailKey, original) {
				return
			}

			slog.Info("creating gallery thumbnail...", "key", original.Key)

			if err := c.createThumbnail(original.Key, thumbnailKey, galleryThumbnailSize); err != nil {
				slog.Error("error creating gallery thumbnail", "key", original.Key, "thumbnailKey", thumbnailKey, "error", err)
			}
		})
	}

	return nil
}

/*
GalleryThumbnailKey maps an original gallery key to its thumbnail key.
*/
func GalleryThumbnailKey(folder, originalKey string) (string, bool) {
	if _, ok := services.ParseGalleryKey(folder, services.GalleryOriginalsFolder, originalKey); !ok {
		return "", false
	}

	folder = strings.Trim(folder, "/")
	rel := strings.TrimPrefix(originalKey, folder+"/"+services.GalleryOriginalsFolder+"/")

	return folder + "/" + services.GalleryThumbnailsFolder + "/" + rel, true
}

func (c CacheCreatorService) isThumbnailCurrent(thumbnailKey string, original s3.Object) bool {
	var (
		err  error
		stat *s3.ObjectMetadata
	)

	if stat, err = c.s3Client.StatObject(c.awsBucket, thumbnailKey); err != nil {
		slog.Error("error retrieving metadata for thumbnail", "key", thumbnailKey, "error", err)
		return false
	}

	if stat == nil {
		return false
	}

	return !stat.LastModified.Before(original.LastModified)
}

func (c CacheCreatorService) createThumbnail(originalKey, thumbnailKey string, maxSize uint) error {
	var (
		err      error
		img      image.Image
		original s3.GetObjectResponse
		buf      bytes.Buffer
	)

	original, err = c.s3Client.Get(
		c.awsBucket,
		originalKey,
	)

	if err != nil {
		return fmt.Errorf("error retrieving original image %s: %w", originalKey, err)
	}

	defer original.Body.Close()

	if img, err = resizeReader(original.Body, maxSize); err != nil {
		return fmt.Errorf("error resizing image: %w", err)
	}

	if err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("error encoding image for thumbnail: %w", err)
	}

	if _, err = c.s3Client.Put(c.awsBucket, thumbnailKey, &buf); err != nil {
		return fmt.Errorf("error uploading thumbnail to S3: %w", err)
	}

	return nil
}

func (c CacheCreatorService) resizeUrl(url string, maxSize uint) (image.Image, error) {
	var (
		err      error
		response *http.Response
	)

	if response, err = http.Get(url); err != nil {
		return nil, fmt.Errorf("error downloading image from '%s': %w", url, err)
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading image from '%s', status: %s", url, response.Status)
	}

	return resizeReader(response.Body, maxSize)
}

func resizeReader(r io.Reader, maxSize uint) (image.Image, error) {
	var (
		err error
		img image.Image
	)

	if img, _, err = image.Decode(r); err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	return Resize(img, maxSize), nil
}

/*
Resize scales img so its longest edge is maxSize, keeping the aspect ratio.
*/
func Resize(img image.Image, maxSize uint) image.Image {
	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	var newWidth, newHeight uint
	if width > height {
		// Landscape
		newWidth = maxSize
		newHeight = uint(float64(height) * (float64(maxSize) / float64(width)))
	} else {
		// Portrait or square
		newHeight = maxSize
		newWidth = uint(float64(width) * (float64(maxSize) / float64(height)))
	}

	return resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
}
