package scraper

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hleung/imagehound/internal/storage"
)

// ErrSave is returned when image bytes cannot be produced or persisted:
// a malformed inline payload or a failed disk write. Unlike transient
// network failures it is fatal to the job.
var ErrSave = errors.New("failed to save image")

const dataURIPrefix = "data:image/"

// Fetcher retrieves one image and persists it under the destination folder.
type Fetcher interface {
	Fetch(ctx context.Context, imageURL, folderPath, name string) error
}

// FetcherConfig holds configuration for the HTTP fetcher.
type FetcherConfig struct {
	// Timeout bounds each HTTP GET
	Timeout time.Duration
	// RetryAttempts is the total number of attempts per remote image
	RetryAttempts int
	// RetryWait is the fixed wait between attempts
	RetryWait time.Duration
}

// HTTPFetcher downloads remote images over HTTP and decodes inline
// data-URI payloads. Remote failures are retried with a fixed backoff;
// after the attempts are exhausted the error is non-fatal so a single
// bad image does not abort the whole job.
type HTTPFetcher struct {
	client *resty.Client
	store  storage.ImageStore
}

// NewHTTPFetcher creates a new HTTPFetcher writing through the given store.
func NewHTTPFetcher(store storage.ImageStore, cfg *FetcherConfig) *HTTPFetcher {
	retries := cfg.RetryAttempts - 1
	if retries < 0 {
		retries = 0
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() != http.StatusOK
		})

	return &HTTPFetcher{client: client, store: store}
}

// Fetch retrieves the image at imageURL and writes it to
// <folderPath>/<name>.jpg. The extension is fixed regardless of the
// actual image encoding.
func (f *HTTPFetcher) Fetch(ctx context.Context, imageURL, folderPath, name string) error {
	fileName := name + ".jpg"

	if strings.HasPrefix(imageURL, dataURIPrefix) {
		data, err := decodeDataURI(imageURL)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSave, fileName, err)
		}
		return f.write(folderPath, fileName, data)
	}

	resp, err := f.client.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", imageURL, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("fetching %s: status %d after retries", imageURL, resp.StatusCode())
	}
	return f.write(folderPath, fileName, resp.Body())
}

func (f *HTTPFetcher) write(folderPath, fileName string, data []byte) error {
	if err := f.store.Save(folderPath, fileName, data); err != nil {
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	return nil
}

// decodeDataURI extracts and decodes the base64 payload of a data URI.
func decodeDataURI(uri string) ([]byte, error) {
	_, encoded, found := strings.Cut(uri, ",")
	if !found {
		return nil, errors.New("malformed data URI: missing payload separator")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding inline payload: %w", err)
	}
	return data, nil
}
