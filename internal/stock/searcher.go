package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kenaxel/standfm2movie/internal/cache"
	"github.com/kenaxel/standfm2movie/internal/timeline"
)

// ErrMissingQuery is returned for an empty search text.
var ErrMissingQuery = errors.New("stock: search query is required")

// Selection picks which image providers to ask.
type Selection string

const (
	SelectBoth     Selection = "both"
	SelectPexels   Selection = "pexels"
	SelectUnsplash Selection = "unsplash"
)

// ParseSelection maps user input to a Selection, defaulting to SelectBoth.
func ParseSelection(s string) Selection {
	switch Selection(strings.ToLower(s)) {
	case SelectPexels:
		return SelectPexels
	case SelectUnsplash:
		return SelectUnsplash
	}
	return SelectBoth
}

// Searcher fans out to the providers and caches what they return.
type Searcher struct {
	Pexels   ImageSearcher
	Videos   VideoSearcher
	Unsplash ImageSearcher
	Cache    *cache.Cache
	TTL      time.Duration
	Logger   *logrus.Logger
}

func (s *Searcher) logger() *logrus.Logger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

func cacheKey(kind string, sel Selection, q Query) string {
	return fmt.Sprintf("stock:%s:%s:%s:%d:%s", kind, sel, q.Orientation, q.Count, strings.ToLower(q.Text))
}

func (s *Searcher) cached(ctx context.Context, key string, fetch func() ([]Result, error)) ([]Result, error) {
	var hit []Result
	if err := s.Cache.Get(ctx, key, &hit); err == nil {
		return hit, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger().WithError(err).WithField("key", key).Warn("stock cache read failed")
	}

	results, err := fetch()
	if err != nil {
		return nil, err
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if err := s.Cache.Set(ctx, key, results, ttl); err != nil {
		s.logger().WithError(err).WithField("key", key).Warn("stock cache write failed")
	}
	return results, nil
}

// Images searches the selected providers. With both selected each provider
// is asked for half of Count and the hits are interleaved. A provider failure
// is logged and skipped; only when every provider fails is an error returned.
func (s *Searcher) Images(ctx context.Context, q Query, sel Selection) ([]Result, error) {
	q = q.normalized()
	if q.Text == "" {
		return nil, ErrMissingQuery
	}

	return s.cached(ctx, cacheKey("images", sel, q), func() ([]Result, error) {
		type provider struct {
			name     Source
			searcher ImageSearcher
		}
		var providers []provider
		if (sel == SelectBoth || sel == SelectUnsplash) && s.Unsplash != nil {
			providers = append(providers, provider{SourceUnsplash, s.Unsplash})
		}
		if (sel == SelectBoth || sel == SelectPexels) && s.Pexels != nil {
			providers = append(providers, provider{SourcePexels, s.Pexels})
		}
		if len(providers) == 0 {
			return nil, fmt.Errorf("stock: no provider configured for %q", sel)
		}

		sub := q
		if len(providers) > 1 {
			sub.Count = (q.Count + 1) / 2
		}

		var lists [][]Result
		var lastErr error
		for _, p := range providers {
			res, err := p.searcher.SearchImages(ctx, sub)
			if err != nil {
				lastErr = err
				s.logger().WithError(err).WithField("source", p.name).Warn("image search failed")
				continue
			}
			lists = append(lists, res)
		}
		if len(lists) == 0 {
			return nil, lastErr
		}
		return limit(interleave(lists...), q.Count), nil
	})
}

// VideoClips searches Pexels videos.
func (s *Searcher) VideoClips(ctx context.Context, q Query) ([]Result, error) {
	q = q.normalized()
	if q.Text == "" {
		return nil, ErrMissingQuery
	}
	if s.Videos == nil {
		return nil, errors.New("stock: no video provider configured")
	}
	return s.cached(ctx, cacheKey("videos", SelectPexels, q), func() ([]Result, error) {
		return s.Videos.SearchVideos(ctx, q)
	})
}

// Candidates gathers background assets for a render: video clips first, then
// images, interleaved. Placeholder results are dropped since they cannot be
// downloaded for real. Search failures yield fewer candidates, never an error.
func (s *Searcher) Candidates(ctx context.Context, keywords []string, orientation Orientation, count int) []timeline.Asset {
	text := strings.Join(keywords, " ")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	q := Query{Text: text, Count: count, Orientation: orientation}

	var videos, images []Result
	if s.Videos != nil {
		res, err := s.VideoClips(ctx, q)
		if err != nil {
			s.logger().WithError(err).Warn("candidate video search failed")
		}
		videos = res
	}
	res, err := s.Images(ctx, q, SelectBoth)
	if err != nil {
		s.logger().WithError(err).Warn("candidate image search failed")
	}
	images = res

	var out []timeline.Asset
	for _, r := range limit(interleave(videos, images), q.normalized().Count) {
		if r.Placeholder || r.URL == "" {
			continue
		}
		out = append(out, r.Asset())
	}
	return out
}

// interleave takes one item from each list in turn.
func interleave(lists ...[]Result) []Result {
	var out []Result
	for i := 0; ; i++ {
		added := false
		for _, l := range lists {
			if i < len(l) {
				out = append(out, l[i])
				added = true
			}
		}
		if !added {
			return out
		}
	}
}

func limit(rs []Result, n int) []Result {
	if n > 0 && len(rs) > n {
		return rs[:n]
	}
	return rs
}
