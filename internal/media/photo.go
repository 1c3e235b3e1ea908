// Package media wraps the external photo store the post lifecycle depends on.
package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PhotoStore is the external media collaborator. DeletePhoto must report
// failure explicitly: post deletion aborts when the photo cannot be removed.
type PhotoStore interface {
	DeletePhoto(ctx context.Context, publicID string) error
}

// NoopPhotoStore is used when no media backend is configured; every
// deletion succeeds.
type NoopPhotoStore struct{}

func (NoopPhotoStore) DeletePhoto(context.Context, string) error { return nil }

// CloudinaryStore deletes photos through the Cloudinary destroy endpoint
// with a signed request.
type CloudinaryStore struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	baseURL    string
	now        func() time.Time
}

// NewCloudinaryStore returns a PhotoStore over the Cloudinary upload API.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) *CloudinaryStore {
	return &CloudinaryStore{
		cloudName:  cloudName,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://api.cloudinary.com/v1_1",
		now:        time.Now,
	}
}

type destroyResponse struct {
	Result string `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// DeletePhoto issues a destroy call. "not found" results count as success:
// the photo is gone either way and the aggregate deletion may proceed.
func (s *CloudinaryStore) DeletePhoto(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(s.now().Unix(), 10)

	// Cloudinary signs the sorted parameter string plus the API secret.
	toSign := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, s.apiSecret)
	digest := sha1.Sum([]byte(toSign))

	form := url.Values{
		"public_id": {publicID},
		"timestamp": {timestamp},
		"api_key":   {s.apiKey},
		"signature": {hex.EncodeToString(digest[:])},
	}

	endpoint := fmt.Sprintf("%s/%s/image/destroy", s.baseURL, s.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("media: build destroy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("media: destroy request failed: %w", err)
	}
	defer resp.Body.Close()

	var body destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("media: decode destroy response: %w", err)
	}
	if body.Error != nil {
		return fmt.Errorf("media: destroy rejected: %s", body.Error.Message)
	}
	if body.Result != "ok" && body.Result != "not found" {
		return fmt.Errorf("media: unexpected destroy result %q", body.Result)
	}
	return nil
}
