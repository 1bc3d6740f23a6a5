package article

import "fmt"

var purposeMoods = map[string]string{
	"集客": "confident and inspiring atmosphere",
	"教育": "learning and growth focused",
	"日記": "personal and relatable mood",
}

const defaultMood = "professional and engaging style"

// CoverImagePrompt builds the image prompt for an article cover.
func CoverImagePrompt(title, tone, purpose string) string {
	mood, ok := purposeMoods[purpose]
	if !ok {
		mood = defaultMood
	}
	prompt := fmt.Sprintf("A warm, professional illustration for a blog article, featuring a modern Japanese mom working from home, %s, soft pastel colors, clean minimal design, wide 16:9 composition, theme related to %q.", mood, title)
	if tone == "大阪弁" {
		prompt += " Cheerful and friendly Osaka vibe."
	}
	return prompt + " No text or words in the image."
}
