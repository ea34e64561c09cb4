package home

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/qmacanada/website/cmd/website/internal/content"
	"github.com/qmacanada/website/cmd/website/internal/viewmodels"
)

type HomeHandlers interface {
	HomePage(w http.ResponseWriter, r *http.Request)
}

type HomeControllerConfig struct {
	AwsBucket           string
	HomePagePhotoFolder string
	Renderer            rendering.TemplateRenderer
	S3Client            s3.S3Client
}

type HomeController struct {
	awsBucket           string
	homePagePhotoFolder string
	renderer            rendering.TemplateRenderer
	s3Client            s3.S3Client
}

func NewHomeController(config HomeControllerConfig) HomeController {
	return HomeController{
		awsBucket:           config.AwsBucket,
		homePagePhotoFolder: config.HomePagePhotoFolder,
		renderer:            config.Renderer,
		s3Client:            config.S3Client,
	}
}

/*
GET /
*/
func (c HomeController) HomePage(w http.ResponseWriter, r *http.Request) {
	pageName := "pages/home"

	viewData := viewmodels.HomePage{
		BaseViewModel: viewmodels.BaseViewModel{
			Message: "",
			IsHtmx:  httphelpers.IsHtmx(r),
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Type: "module", Src: "/static/js/pages/home.js"},
			},
		},
		Photos:     []viewmodels.HomePagePhoto{},
		Sponsors:   content.Sponsors(),
		Directors:  content.Directors(),
		Executives: content.Executives(),
	}

	thumbnails, err := c.s3Client.List(
		c.awsBucket,
		fmt.Sprintf("%s/thumbnail", c.homePagePhotoFolder),
		listoptions.WithGetUrls(),
	)

	if err != nil {
		slog.Error("error listing objects in S3 bucket", "error", err, "bucket", c.awsBucket, "prefix", c.homePagePhotoFolder)
		c.renderer.Render(pageName, viewData, w)
		return
	}

	originals, err := c.s3Client.List(
		c.awsBucket,
		fmt.Sprintf("%s/original", c.homePagePhotoFolder),
		listoptions.WithGetUrls(),
	)

	if err != nil {
		slog.Error("error listing objects in S3 bucket", "error", err, "bucket", c.awsBucket, "prefix", c.homePagePhotoFolder)
		c.renderer.Render(pageName, viewData, w)
		return
	}

	viewData.Photos = PairPhotos(thumbnails.Objects, originals.Objects)
	c.renderer.Render(pageName, viewData, w)
}

/*
PairPhotos matches thumbnails to originals by file name. Thumbnails without
an original are left out.
*/
func PairPhotos(thumbnails, originals []s3.Object) []viewmodels.HomePagePhoto {
	result := []viewmodels.HomePagePhoto{}
	originalUrls := map[string]string{}

	for _, obj := range originals {
		originalUrls[filepath.Base(obj.Key)] = obj.Url
	}

	for _, obj := range thumbnails {
		fileName := filepath.Base(obj.Key)
		originalUrl, ok := originalUrls[fileName]

		if !ok {
			continue
		}

		result = append(result, viewmodels.HomePagePhoto{
			ThumbnailPath: obj.Url,
			FileName:      fileName,
			OriginalPath:  originalUrl,
		})
	}

	return result
}
