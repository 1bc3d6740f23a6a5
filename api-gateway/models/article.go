package models

// Processing modes of article generation.
const (
	ModeNatural = "natural"
	ModeArticle = "article"
)

// GenerationSettings controls article generation.
type GenerationSettings struct {
	ProcessingMode string `json:"processingMode" validate:"required,oneof=natural article"`
	Tone           string `json:"tone" validate:"required,oneof=標準 大阪弁 丁寧"`
	Purpose        string `json:"purpose" validate:"omitempty,oneof=集客 教育 日記"`
	Keywords       string `json:"keywords,omitempty" validate:"max=200"`
	TargetAudience string `json:"targetAudience,omitempty" validate:"max=200"`
}

// GeneratedContent is the structured article.
type GeneratedContent struct {
	SEOTitle        string   `json:"seoTitle"`
	LeadText        string   `json:"leadText"`
	Content         string   `json:"content"`
	CTA             string   `json:"cta"`
	MetaDescription string   `json:"metaDescription"`
	Tags            []string `json:"tags"`
	CoverImageURL   string   `json:"coverImageUrl"`
	Markdown        string   `json:"markdown"`
}
