// Package article turns a transcript into note-style article prompts and
// parses the model output back into sections.
package article

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/kenaxel/standfm2movie/api-gateway/models"
)

// SystemPrompt is sent with every article completion.
const SystemPrompt = "あなたは優秀なコンテンツライターです。音声文字起こしから魅力的な記事を生成します。"

// Completion parameters of article generation.
const (
	Temperature = 0.7
	MaxTokens   = 4000
)

// Section headings the article prompt asks the model to emit.
const (
	SectionTitle    = "タイトル"
	SectionLead     = "導入文"
	SectionBody     = "本文"
	SectionSummary  = "まとめ"
	SectionMarkdown = "Markdown"
)

const (
	naturalTitle = "文字起こし結果（修正版）"
	defaultTitle = "生成されたタイトル"
)

// BuildPrompt returns the user prompt for the configured processing mode.
func BuildPrompt(transcript string, settings models.GenerationSettings) string {
	if settings.ProcessingMode == models.ModeNatural {
		return naturalPrompt(transcript, settings)
	}
	return structurePrompt(transcript, settings)
}

func naturalPrompt(transcript string, settings models.GenerationSettings) string {
	return fmt.Sprintf(`以下の音声文字起こしを、自然で読みやすい文章に修正してください。

【文字起こし】
%s

【修正方針】
- 口調: %s
- 話し言葉を書き言葉に変換
- 不自然な繰り返しや「えー」「あのー」などの除去
- 文章の流れを整理
- 内容は元の話をそのまま保持

【出力フォーマット】
修正された文章をそのまま出力してください。見出しや構成は不要です。`, transcript, settings.Tone)
}

func structurePrompt(transcript string, settings models.GenerationSettings) string {
	var extra strings.Builder
	if settings.TargetAudience != "" {
		fmt.Fprintf(&extra, "\n- 想定読者: %s", settings.TargetAudience)
	}
	if settings.Keywords != "" {
		fmt.Fprintf(&extra, "\n- 含めたいキーワード: %s", settings.Keywords)
	}

	return fmt.Sprintf(`下記は音声配信の文字起こしです。
これをベースにして、note記事として自然に読めるように整えてください。

# 出力条件
- タイトルを付けること
- 導入文（あいさつ＋テーマ提示）を入れること
- 見出し（##）で流れを整理すること
- 冗長な部分や「えー」「あのー」などの口語は削除すること
- 内容は残しつつ、読みやすい文章に整えること
- 最後にまとめと読者への一言（例: フォローやスキを促す）

【設定】
- 口調: %s%s

# 入力
%s

必ず以下のフォーマットで出力してください：

# %s
[ここにタイトル]

# %s
[ここに導入文（あいさつ＋テーマ提示）]

# %s
[ここに本文（見出し##を使って整理）]

# %s
[ここにまとめと読者への一言]

# %s
[上記すべてを含むnote用のMarkdown形式]`, settings.Tone, extra.String(), transcript,
		SectionTitle, SectionLead, SectionBody, SectionSummary, SectionMarkdown)
}

// Parse converts the completion into GeneratedContent. Natural mode output is
// taken verbatim; article mode output is split on "# " headings and the
// markdown is rebuilt from the sections when the model omitted it.
func Parse(text string, settings models.GenerationSettings) models.GeneratedContent {
	text = strings.TrimSpace(text)
	if settings.ProcessingMode == models.ModeNatural {
		return models.GeneratedContent{
			SEOTitle: naturalTitle,
			Content:  text,
			Tags:     []string{},
			Markdown: text,
		}
	}

	sections := Sections(text)
	title := sections[SectionTitle]
	if title == "" {
		title = defaultTitle
	}

	markdown := sections[SectionMarkdown]
	if markdown == "" {
		markdown = strings.TrimSpace(fmt.Sprintf("# %s\n\n%s\n\n%s\n\n%s",
			sections[SectionTitle], sections[SectionLead], sections[SectionBody], sections[SectionSummary]))
	}

	return models.GeneratedContent{
		SEOTitle: title,
		LeadText: sections[SectionLead],
		Content:  sections[SectionBody],
		CTA:      sections[SectionSummary],
		Tags:     []string{},
		Markdown: markdown,
	}
}

// Sections splits text on top level "# " headings. Lines before the first
// heading are dropped. "## " subheadings stay inside their section. Inside
// the Markdown section every line is kept, since it repeats the headings.
func Sections(text string) map[string]string {
	sections := map[string]string{}
	var (
		current string
		buf     []string
	)
	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(strings.Join(buf, "\n"))
		}
	}

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(line, "# ") && current != SectionMarkdown {
			flush()
			current = strings.TrimSpace(line[2:])
			buf = buf[:0]
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()
	return sections
}

var policy = bluemonday.UGCPolicy()

// Sanitize strips markup the model may have produced from every text field.
func Sanitize(c models.GeneratedContent) models.GeneratedContent {
	c.SEOTitle = policy.Sanitize(c.SEOTitle)
	c.LeadText = policy.Sanitize(c.LeadText)
	c.Content = policy.Sanitize(c.Content)
	c.CTA = policy.Sanitize(c.CTA)
	c.MetaDescription = policy.Sanitize(c.MetaDescription)
	c.Markdown = policy.Sanitize(c.Markdown)
	for i, tag := range c.Tags {
		c.Tags[i] = policy.Sanitize(tag)
	}
	return c
}
