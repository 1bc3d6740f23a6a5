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

const (
	PexelsPhotoURL = "https://api.pexels.com/v1"
	PexelsVideoURL = "https://api.pexels.com/videos"
)

type Pexels struct {
	APIKey     string
	PhotoURL   string
	VideoURL   string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

// NewPexels returns a client limited to rps requests per second.
func NewPexels(apiKey string, rps float64) *Pexels {
	if rps <= 0 {
		rps = 1
	}
	return &Pexels{
		APIKey:     apiKey,
		PhotoURL:   PexelsPhotoURL,
		VideoURL:   PexelsVideoURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Limiter:    rate.NewLimiter(rate.Limit(rps), 5),
	}
}

func (p *Pexels) header() http.Header {
	h := http.Header{}
	h.Set("Authorization", p.APIKey)
	return h
}

func pexelsOrientation(o Orientation) string {
	return string(o)
}

type pexelsPhotoResponse struct {
	Photos []struct {
		ID  int64  `json:"id"`
		Alt string `json:"alt"`
		Src struct {
			Large  string `json:"large"`
			Medium string `json:"medium"`
		} `json:"src"`
	} `json:"photos"`
}

type pexelsVideoResponse struct {
	Videos []struct {
		ID         int64   `json:"id"`
		URL        string  `json:"url"`
		Image      string  `json:"image"`
		Duration   float64 `json:"duration"`
		VideoFiles []struct {
			Quality  string `json:"quality"`
			FileType string `json:"file_type"`
			Link     string `json:"link"`
		} `json:"video_files"`
	} `json:"videos"`
}

// SearchImages searches Pexels photos.
func (p *Pexels) SearchImages(ctx context.Context, q Query) ([]Result, error) {
	q = q.normalized()
	if !configuredKey(p.APIKey) {
		return placeholderImages(SourcePexels, q), nil
	}

	params := url.Values{}
	params.Set("query", q.Text)
	params.Set("per_page", strconv.Itoa(q.Count))
	params.Set("orientation", pexelsOrientation(q.Orientation))
	params.Set("size", "medium")

	var resp pexelsPhotoResponse
	if err := getJSON(ctx, p.HTTPClient, p.Limiter, p.PhotoURL+"/search", params, p.header(), &resp); err != nil {
		return nil, fmt.Errorf("pexels image search: %w", err)
	}

	results := make([]Result, 0, len(resp.Photos))
	for _, photo := range resp.Photos {
		desc := photo.Alt
		if desc == "" {
			desc = q.Text
		}
		results = append(results, Result{
			ID:           strconv.FormatInt(photo.ID, 10),
			URL:          photo.Src.Large,
			ThumbnailURL: photo.Src.Medium,
			Type:         timeline.AssetImage,
			Source:       SourcePexels,
			Description:  desc,
			Tags:         []string{q.Text},
		})
	}
	return results, nil
}

// SearchVideos searches Pexels videos, preferring the HD rendition.
func (p *Pexels) SearchVideos(ctx context.Context, q Query) ([]Result, error) {
	q = q.normalized()
	if !configuredKey(p.APIKey) {
		return placeholderVideos(q), nil
	}

	params := url.Values{}
	params.Set("query", q.Text)
	params.Set("per_page", strconv.Itoa(q.Count))
	params.Set("orientation", pexelsOrientation(q.Orientation))
	params.Set("size", "medium")

	var resp pexelsVideoResponse
	if err := getJSON(ctx, p.HTTPClient, p.Limiter, p.VideoURL+"/search", params, p.header(), &resp); err != nil {
		return nil, fmt.Errorf("pexels video search: %w", err)
	}

	results := make([]Result, 0, len(resp.Videos))
	for _, v := range resp.Videos {
		link := ""
		for _, f := range v.VideoFiles {
			if f.Quality == "hd" {
				link = f.Link
				break
			}
		}
		if link == "" && len(v.VideoFiles) > 0 {
			link = v.VideoFiles[0].Link
		}
		if link == "" {
			continue
		}
		duration := v.Duration
		if duration <= 0 {
			duration = 10
		}
		results = append(results, Result{
			ID:           strconv.FormatInt(v.ID, 10),
			URL:          link,
			ThumbnailURL: v.Image,
			Type:         timeline.AssetVideo,
			Source:       SourcePexels,
			Description:  v.URL,
			Tags:         []string{q.Text},
			Duration:     duration,
		})
	}
	return results, nil
}
