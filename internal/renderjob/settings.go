package renderjob

// Format is the target platform of the video.
type Format string

const (
	FormatYouTube Format = "youtube"
	FormatTikTok  Format = "tiktok"
)

const (
	DefaultFPS             = 30
	DefaultFontFamily      = "Noto Sans JP"
	DefaultFontSize        = 48
	DefaultBackgroundColor = "#000000"
	DefaultCaptionColor    = "#FFFFFF"
	DefaultHighlightColor  = "#FFD700"
)

type Resolution struct {
	Width  int `json:"width" validate:"omitempty,min=16,max=3840"`
	Height int `json:"height" validate:"omitempty,min=16,max=3840"`
}

// CaptionStyle controls how burned in captions look.
type CaptionStyle struct {
	Position          string `json:"position,omitempty" validate:"omitempty,oneof=top center bottom"`
	Color             string `json:"color,omitempty"`
	BackgroundColor   string `json:"backgroundColor,omitempty"`
	FontSize          int    `json:"fontSize,omitempty" validate:"omitempty,min=8,max=200"`
	FontWeight        string `json:"fontWeight,omitempty"`
	Outline           bool   `json:"outline,omitempty"`
	HighlightKeywords bool   `json:"highlightKeywords,omitempty"`
	HighlightColor    string `json:"highlightColor,omitempty"`
}

type VideoSettings struct {
	Format          Format       `json:"format" validate:"omitempty,oneof=youtube tiktok"`
	Duration        float64      `json:"duration,omitempty" validate:"omitempty,gt=0,lte=600"`
	FPS             int          `json:"fps,omitempty" validate:"omitempty,min=1,max=60"`
	Resolution      Resolution   `json:"resolution"`
	BackgroundColor string       `json:"backgroundColor,omitempty"`
	FontFamily      string       `json:"fontFamily,omitempty"`
	FontSize        int          `json:"fontSize,omitempty" validate:"omitempty,min=8,max=200"`
	CaptionStyle    CaptionStyle `json:"captionStyle"`
}

// DefaultSettings returns the stock settings for a format. Unknown formats
// get the YouTube defaults.
func DefaultSettings(format Format) VideoSettings {
	s := VideoSettings{
		Format:          FormatYouTube,
		FPS:             DefaultFPS,
		Resolution:      Resolution{Width: 1280, Height: 720},
		BackgroundColor: DefaultBackgroundColor,
		FontFamily:      DefaultFontFamily,
		FontSize:        DefaultFontSize,
		CaptionStyle: CaptionStyle{
			Position:        "bottom",
			Color:           DefaultCaptionColor,
			BackgroundColor: "rgba(0,0,0,0.6)",
			FontSize:        DefaultFontSize,
			FontWeight:      "bold",
			Outline:         true,
			HighlightColor:  DefaultHighlightColor,
		},
	}
	if format == FormatTikTok {
		s.Format = FormatTikTok
		s.Resolution = Resolution{Width: 720, Height: 1280}
		s.CaptionStyle.Position = "center"
	}
	return s
}

// WithDefaults fills every zero field from DefaultSettings(s.Format).
func (s VideoSettings) WithDefaults() VideoSettings {
	d := DefaultSettings(s.Format)
	if s.Format == "" {
		s.Format = d.Format
	}
	if s.FPS <= 0 {
		s.FPS = d.FPS
	}
	if s.Resolution.Width <= 0 || s.Resolution.Height <= 0 {
		s.Resolution = d.Resolution
	}
	if s.BackgroundColor == "" {
		s.BackgroundColor = d.BackgroundColor
	}
	if s.FontFamily == "" {
		s.FontFamily = d.FontFamily
	}
	if s.FontSize <= 0 {
		s.FontSize = d.FontSize
	}
	cs := &s.CaptionStyle
	if cs.Position == "" {
		cs.Position = d.CaptionStyle.Position
	}
	if cs.Color == "" {
		cs.Color = d.CaptionStyle.Color
	}
	if cs.BackgroundColor == "" {
		cs.BackgroundColor = d.CaptionStyle.BackgroundColor
	}
	if cs.FontSize <= 0 {
		cs.FontSize = s.FontSize
	}
	if cs.FontWeight == "" {
		cs.FontWeight = d.CaptionStyle.FontWeight
	}
	if cs.HighlightColor == "" {
		cs.HighlightColor = d.CaptionStyle.HighlightColor
	}
	return s
}
