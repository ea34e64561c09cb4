package main

import (
	"context"
	"embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/s3"
	"github.com/qmacanada/website/cmd/website/internal/api"
	"github.com/qmacanada/website/cmd/website/internal/cache"
	"github.com/qmacanada/website/cmd/website/internal/configuration"
	"github.com/qmacanada/website/cmd/website/internal/gallerypage"
	"github.com/qmacanada/website/cmd/website/internal/home"
	"github.com/qmacanada/website/pkg/gallery"
	"github.com/qmacanada/website/pkg/services"
)

var (
	Version string = "development"
	appName string = "qmawebsite"

	//go:embed app
	appFS embed.FS

	config configuration.Config

	/* Services */
	cacheCreatorService cache.CacheCreator
	galleryService      services.GalleryServicer
	gallerySource       gallery.Source
	renderer            rendering.TemplateRenderer

	/* Controllers */
	galleryApiController  api.GalleryApiHandlers
	galleryPageController gallerypage.GalleryPageHandlers
	homeController        home.HomeHandlers
)

func main() {
	var (
		err error
	)

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("awsEndpointUrl", config.AwsEndpointUrl),
		slog.String("awsRegion", config.AwsRegion),
		slog.String("gallerySourceUrl", config.GallerySourceURL),
		slog.String("revealPolicy", config.RevealPolicy),
	)

	slog.Debug("setting up...")

	shutdownCtx, cancel := context.WithCancel(context.Background())

	/*
	 * Setup services
	 */
	awsConfig := &awsconfig.Config{
		Endpoint:        config.AwsEndpointUrl,
		Region:          config.AwsRegion,
		AccessKeyID:     config.AwsAccessKeyId,
		SecretAccessKey: config.AwsSecretAccessKey,
	}

	retrier.Retry(func() error {
		if err = awsConfig.Load(); err != nil {
			slog.Error("failed to load AWS config. trying again", "error", err)
			return err
		}

		return nil
	})

	if err != nil {
		panic(err)
	}

	s3Client, err := s3.NewClient(awsConfig)

	if err != nil {
		panic(err)
	}

	renderer, err = rendering.NewGoTemplateRenderer(rendering.GoTemplateRendererConfig{
		TemplateDir:       "app",
		TemplateExtension: ".html",
		TemplateFS:        appFS,
		PagesDir:          "pages",
	})

	if err != nil {
		panic(err)
	}

	galleryService = services.NewGalleryService(services.GalleryServiceConfig{
		Bucket:             config.AwsBucket,
		GalleryPhotoFolder: config.GalleryPhotoFolder,
		S3Client:           s3Client,
	})

	gallerySource = services.NewHttpMediaSource(services.HttpMediaSourceConfig{
		Timeout: time.Duration(config.GalleryFetchTimeout) * time.Second,
		URL:     config.GallerySourceURL,
	})

	cacheCreatorService = cache.NewCacheCreatorService(cache.CacheCreatorConfig{
		AwsBucket:           config.AwsBucket,
		AwsRegion:           config.AwsRegion,
		GalleryPhotoFolder:  config.GalleryPhotoFolder,
		HomePagePhotoFolder: config.HomePagePhotoFolder,
		MaxCacheWorkers:     config.MaxCacheWorkers,
		S3Client:            s3Client,
		ShutdownCtx:         shutdownCtx,
	})

	/*
	 * Setup controllers
	 */
	galleryApiController = api.NewGalleryApiController(api.GalleryApiControllerConfig{
		GalleryService: galleryService,
	})

	galleryPageController = gallerypage.NewGalleryPageController(gallerypage.GalleryPageControllerConfig{
		Renderer:     renderer,
		RevealPolicy: gallery.ParseRevealPolicy(config.RevealPolicy),
		Source:       gallerySource,
	})

	homeController = home.NewHomeController(home.HomeControllerConfig{
		AwsBucket:           config.AwsBucket,
		HomePagePhotoFolder: config.HomePagePhotoFolder,
		Renderer:            renderer,
		S3Client:            s3Client,
	})

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	requestLogger := newRequestLoggerMiddleware(
		[]string{
			"/static",
			"/heartbeat",
		},
	)

	routes := []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat},
		{Path: "GET /", HandlerFunc: homeController.HomePage, Middlewares: []mux.MiddlewareFunc{requestLogger}},
		{Path: "GET /gallery", HandlerFunc: galleryPageController.GalleryPage, Middlewares: []mux.MiddlewareFunc{requestLogger}},
		{Path: "GET /gallery/grid", HandlerFunc: galleryPageController.GalleryGrid, Middlewares: []mux.MiddlewareFunc{requestLogger}},
		{Path: "GET /api/gallery/", HandlerFunc: galleryApiController.ListMedia, Middlewares: []mux.MiddlewareFunc{requestLogger}},
	}

	routerConfig := mux.RouterConfig{
		Address:              config.Host,
		Debug:                Version == "development",
		ServeStaticContent:   true,
		StaticContentRootDir: "app",
		StaticContentPrefix:  "/static/",
		StaticFS:             appFS,
		HttpWriteTimeout:     60,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	/*
	 * Start the cache creator job
	 */
	cacheCreatorDone := startCacheCreator(shutdownCtx, 1*time.Hour, func() {
		cacheCreatorService.CreateCache()
		slog.Info("cache creator finished.")
	})

	/*
	 * Wait for graceful shutdown
	 */
	slog.Info("server started")

	<-quit

	cancel()
	<-cacheCreatorDone
	mux.Shutdown(httpServer)
	slog.Info("server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}

/*
startCacheCreator runs the cache job once right away, then again on every
tick of interval until ctx is cancelled. A tick that lands while a run is
still going is skipped. The returned channel is closed once the loop exits.
*/
func startCacheCreator(ctx context.Context, interval time.Duration, run func()) <-chan struct{} {
	done := make(chan struct{})
	finished := make(chan struct{}, 1)

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		running := true

		runner := func() {
			run()
			finished <- struct{}{}
		}

		go runner()

		for {
			select {
			case <-ctx.Done():
				return

			case <-finished:
				running = false

			case <-ticker.C:
				if running {
					slog.Info("cache creator already running. skipping...")
					continue
				}

				running = true
				go runner()
			}
		}
	}()

	return done
}
