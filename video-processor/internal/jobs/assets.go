package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMaxAssetBytes caps a single downloaded image or clip.
const DefaultMaxAssetBytes = 200 << 20

// ErrAssetTooLarge is returned when an asset exceeds MaxBytes.
var ErrAssetTooLarge = errors.New("asset too large")

// AssetDownloader fetches background visuals into a job directory.
type AssetDownloader struct {
	HTTPClient *http.Client
	MaxBytes   int64
	Limiter    *rate.Limiter
}

// NewAssetDownloader returns a downloader limited to rps requests per second.
func NewAssetDownloader(rps float64) *AssetDownloader {
	d := &AssetDownloader{
		HTTPClient: &http.Client{Timeout: 2 * time.Minute},
		MaxBytes:   DefaultMaxAssetBytes,
	}
	if rps > 0 {
		d.Limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return d
}

// Download stores rawURL at base plus an extension derived from the
// response and returns the final path.
func (d *AssetDownloader) Download(ctx context.Context, rawURL, base string) (string, error) {
	if d.Limiter != nil {
		if err := d.Limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	client := d.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download asset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download asset: status %d", resp.StatusCode)
	}

	max := d.MaxBytes
	if max <= 0 {
		max = DefaultMaxAssetBytes
	}
	if resp.ContentLength > max {
		return "", fmt.Errorf("%w: %d bytes", ErrAssetTooLarge, resp.ContentLength)
	}

	dst := base + assetExtension(resp.Header.Get("Content-Type"), rawURL)
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create asset file: %w", err)
	}
	n, err := io.Copy(out, io.LimitReader(resp.Body, max+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > max {
		err = fmt.Errorf("%w: more than %d bytes", ErrAssetTooLarge, max)
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return dst, nil
}

func assetExtension(contentType, rawURL string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case "image/jpeg":
			return ".jpg"
		case "image/png":
			return ".png"
		case "image/webp":
			return ".webp"
		case "video/mp4":
			return ".mp4"
		case "video/quicktime":
			return ".mov"
		case "video/webm":
			return ".webm"
		}
	}
	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.ToLower(path.Ext(u.Path)); ext != "" && len(ext) <= 5 {
			return ext
		}
	}
	return ".bin"
}
