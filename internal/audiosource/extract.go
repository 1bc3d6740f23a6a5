package audiosource

import (
	"encoding/json"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	audioURLField = regexp.MustCompile(`"audioUrl"\s*:\s*"([^"]+)"`)
	audioFileExt  = regexp.MustCompile(`(?i)\.(mp3|m4a|wav|ogg|flac|aac)(\?.*)?$`)
)

// ExtractAudioURL finds the audio file URL in an episode page. It looks at,
// in order: og:audio, og:audio:secure_url, the first <audio src>, an
// "audioUrl" JSON field anywhere in the page, and finally the Next.js data
// blob, searched recursively.
func ExtractAudioURL(page string) (string, bool) {
	var ogAudio, ogSecure, audioSrc, nextData string

	z := html.NewTokenizer(strings.NewReader(page))
	inNextData := false
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "meta":
				prop, content := attr(tok, "property"), attr(tok, "content")
				if prop == "og:audio" && ogAudio == "" {
					ogAudio = content
				}
				if prop == "og:audio:secure_url" && ogSecure == "" {
					ogSecure = content
				}
			case "audio", "source":
				if src := attr(tok, "src"); src != "" && audioSrc == "" {
					audioSrc = src
				}
			case "script":
				inNextData = attr(tok, "id") == "__NEXT_DATA__"
			}
		case html.TextToken:
			if inNextData && nextData == "" {
				nextData = string(z.Text())
			}
		case html.EndTagToken:
			inNextData = false
		}
	}

	for _, candidate := range []string{ogAudio, ogSecure, audioSrc} {
		if candidate != "" {
			return candidate, true
		}
	}
	if m := audioURLField.FindStringSubmatch(page); m != nil {
		return unescapeJSONString(m[1]), true
	}
	if nextData != "" {
		var blob interface{}
		if err := json.Unmarshal([]byte(nextData), &blob); err == nil {
			if u := findAudioURL(blob); u != "" {
				return u, true
			}
		}
	}
	return "", false
}

func attr(tok html.Token, name string) string {
	for _, a := range tok.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func unescapeJSONString(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}

// findAudioURL walks decoded JSON. Keys mentioning audio or media are
// searched before the rest; map keys are visited in sorted order so the
// result is deterministic.
func findAudioURL(v interface{}) string {
	switch t := v.(type) {
	case string:
		if strings.HasPrefix(t, "http") && audioFileExt.MatchString(t) {
			return t
		}
	case []interface{}:
		for _, item := range t {
			if u := findAudioURL(item); u != "" {
				return u
			}
		}
	case map[string]interface{}:
		keys := sortedKeys(t)
		for _, k := range keys {
			lk := strings.ToLower(k)
			if strings.Contains(lk, "audio") || strings.Contains(lk, "media") {
				if u := findAudioURL(t[k]); u != "" {
					return u
				}
			}
		}
		for _, k := range keys {
			if u := findAudioURL(t[k]); u != "" {
				return u
			}
		}
	}
	return ""
}
