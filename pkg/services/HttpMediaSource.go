package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/qmacanada/website/pkg/gallery"
	"github.com/qmacanada/website/pkg/models"
)

const maxFeedBytes = 10 << 20

type HttpMediaSourceConfig struct {
	HttpClient *http.Client
	Timeout    time.Duration
	URL        string
}

/*
HttpMediaSource reads the gallery feed with a single GET. Every failure,
including a non-2xx status or a body that is not a feed, wraps
models.ErrDataFetch.
*/
type HttpMediaSource struct {
	httpClient *http.Client
	timeout    time.Duration
	url        string
}

func NewHttpMediaSource(config HttpMediaSourceConfig) HttpMediaSource {
	httpClient := config.HttpClient

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	return HttpMediaSource{
		httpClient: httpClient,
		timeout:    config.Timeout,
		url:        config.URL,
	}
}

func (s HttpMediaSource) Fetch(ctx context.Context) ([]models.MediaItem, error) {
	var (
		err      error
		request  *http.Request
		response *http.Response
		body     []byte
	)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if request, err = http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil); err != nil {
		return nil, fmt.Errorf("%w: error building request for '%s': %s", models.ErrDataFetch, s.url, err.Error())
	}

	request.Header.Set("Accept", "application/json")

	if response, err = s.httpClient.Do(request); err != nil {
		return nil, fmt.Errorf("%w: error requesting '%s': %s", models.ErrDataFetch, s.url, err.Error())
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status from '%s': %s", models.ErrDataFetch, s.url, response.Status)
	}

	if body, err = io.ReadAll(io.LimitReader(response.Body, maxFeedBytes)); err != nil {
		return nil, fmt.Errorf("%w: error reading response from '%s': %s", models.ErrDataFetch, s.url, err.Error())
	}

	return gallery.ParseFeed(body)
}
