package stock

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/kenaxel/standfm2movie/internal/timeline"
)

const UnsplashURL = "https://api.unsplash.com"

type Unsplash struct {
	AccessKey  string
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

// NewUnsplash returns a client limited to rps requests per second.
func NewUnsplash(accessKey string, rps float64) *Unsplash {
	if rps <= 0 {
		rps = 1
	}
	return &Unsplash{
		AccessKey:  accessKey,
		BaseURL:    UnsplashURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Limiter:    rate.NewLimiter(rate.Limit(rps), 5),
	}
}

func unsplashOrientation(o Orientation) string {
	if o == Square {
		return "squarish"
	}
	return string(o)
}

type unsplashSearchResponse struct {
	Results []struct {
		ID             string `json:"id"`
		Description    string `json:"description"`
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
			Small   string `json:"small"`
		} `json:"urls"`
		Tags []struct {
			Title string `json:"title"`
		} `json:"tags"`
	} `json:"results"`
}

// SearchImages searches Unsplash photos.
func (u *Unsplash) SearchImages(ctx context.Context, q Query) ([]Result, error) {
	q = q.normalized()
	if !configuredKey(u.AccessKey) {
		return placeholderImages(SourceUnsplash, q), nil
	}

	params := url.Values{}
	params.Set("query", q.Text)
	params.Set("per_page", strconv.Itoa(q.Count))
	params.Set("orientation", unsplashOrientation(q.Orientation))
	params.Set("order_by", "relevant")

	header := http.Header{}
	header.Set("Authorization", "Client-ID "+u.AccessKey)

	var resp unsplashSearchResponse
	if err := getJSON(ctx, u.HTTPClient, u.Limiter, u.BaseURL+"/search/photos", params, header, &resp); err != nil {
		return nil, fmt.Errorf("unsplash search: %w", err)
	}

	results := make([]Result, 0, len(resp.Results))
	for _, photo := range resp.Results {
		desc := photo.AltDescription
		if desc == "" {
			desc = photo.Description
		}
		if desc == "" {
			desc = q.Text
		}
		tags := make([]string, 0, len(photo.Tags))
		for _, t := range photo.Tags {
			tags = append(tags, t.Title)
		}
		if len(tags) == 0 {
			tags = []string{q.Text}
		}
		results = append(results, Result{
			ID:           photo.ID,
			URL:          photo.URLs.Regular,
			ThumbnailURL: photo.URLs.Small,
			Type:         timeline.AssetImage,
			Source:       SourceUnsplash,
			Description:  desc,
			Tags:         tags,
		})
	}
	return results, nil
}
