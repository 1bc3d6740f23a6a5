package timeline

// AssetType is the kind of background visual.
type AssetType string

const (
	AssetImage AssetType = "image"
	AssetVideo AssetType = "video"
)

// Transition is the effect used when an entry appears.
type Transition string

const (
	TransitionFade  Transition = "fade"
	TransitionSlide Transition = "slide"
	TransitionZoom  Transition = "zoom"
)

// Asset is a proposed placement of a background image or video clip.
// Duration is the clip length; StartTime/EndTime is the window it was
// proposed for. Either may be zero when unknown.
type Asset struct {
	Type        AssetType `json:"type"`
	URL         string    `json:"url"`
	Duration    float64   `json:"duration"`
	StartTime   float64   `json:"startTime"`
	EndTime     float64   `json:"endTime"`
	Description string    `json:"description,omitempty"`
}

// Entry is one slot of the final timeline.
type Entry struct {
	Asset          Asset      `json:"asset"`
	StartTime      float64    `json:"startTime"`
	EndTime        float64    `json:"endTime"`
	TransitionType Transition `json:"transitionType"`
	// Filler marks entries inserted to cover gaps. The renderer draws them as
	// a solid background instead of fetching Asset.URL.
	Filler bool `json:"filler"`
}

// Duration returns the length of the entry in seconds.
func (e Entry) Duration() float64 {
	return e.EndTime - e.StartTime
}

// DefaultFiller is the placeholder visual used for gaps.
var DefaultFiller = Asset{
	Type:        AssetImage,
	Description: "placeholder",
}
