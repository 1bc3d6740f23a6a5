package stock

import (
	"fmt"
	"net/url"

	"github.com/kenaxel/standfm2movie/internal/timeline"
)

func placeholderImages(source Source, q Query) []Result {
	color := "0066cc"
	label := "Image"
	if source == SourceUnsplash {
		color = "4a90e2"
		label = "Unsplash"
	}
	out := make([]Result, q.Count)
	for i := range out {
		out[i] = Result{
			ID:           fmt.Sprintf("dummy-%s-%d", source, i),
			URL:          fmt.Sprintf("https://via.placeholder.com/1920x1080/%s/ffffff?text=%s+%d+for+%s", color, label, i+1, url.QueryEscape(q.Text)),
			ThumbnailURL: fmt.Sprintf("https://via.placeholder.com/640x360/%s/ffffff?text=%s+%d", color, label, i+1),
			Type:         timeline.AssetImage,
			Source:       source,
			Description:  "Sample image for " + q.Text,
			Tags:         []string{q.Text},
			Placeholder:  true,
		}
	}
	return out
}

func placeholderVideos(q Query) []Result {
	out := make([]Result, q.Count)
	for i := range out {
		out[i] = Result{
			ID:           fmt.Sprintf("dummy-video-%d", i),
			URL:          "https://sample-videos.com/zip/10/mp4/SampleVideo_1280x720_1mb.mp4",
			ThumbnailURL: fmt.Sprintf("https://via.placeholder.com/640x360/0066cc/ffffff?text=Video+%d", i+1),
			Type:         timeline.AssetVideo,
			Source:       SourcePexels,
			Description:  "Sample video for " + q.Text,
			Tags:         []string{q.Text},
			Duration:     10,
			Placeholder:  true,
		}
	}
	return out
}
