package sharecard

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

// Canvas size of a share card, square for Instagram-style feeds
const (
	CardWidth  = 1080
	CardHeight = 1080
)

// Font scale bounds, in percent of the base sizes
const (
	MinFontScale     = 50
	MaxFontScale     = 150
	DefaultFontScale = 100
)

// Template is a named color scheme for share cards
type Template struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Background color.RGBA `json:"-"`
	Text       color.RGBA `json:"-"`
	Accent     color.RGBA `json:"-"`
}

var (
	TemplateStandard  = Template{ID: "standard", Name: "Standard", Background: hex(0x2563eb), Text: hex(0xffffff), Accent: hex(0xfbbf24)}
	TemplateTech      = Template{ID: "tech", Name: "Tech", Background: hex(0x18181b), Text: hex(0xffffff), Accent: hex(0x06b6d4)}
	TemplateCreative  = Template{ID: "creative", Name: "Creative", Background: hex(0xf472b6), Text: hex(0xffffff), Accent: hex(0x3b82f6)}
	TemplateCorporate = Template{ID: "corporate", Name: "Corporate", Background: hex(0xf8fafc), Text: hex(0x0f172a), Accent: hex(0x6366f1)}
	TemplateStartup   = Template{ID: "startup", Name: "Startup", Background: hex(0x10b981), Text: hex(0xffffff), Accent: hex(0xfde047)}
)

// Templates lists every template; the first is the default
var Templates = []Template{TemplateStandard, TemplateTech, TemplateCreative, TemplateCorporate, TemplateStartup}

// LookupTemplate finds a template by id ignoring case. Unknown or empty
// ids resolve to the standard template.
func LookupTemplate(id string) (Template, bool) {
	for _, t := range Templates {
		if strings.EqualFold(t.ID, strings.TrimSpace(id)) {
			return t, true
		}
	}
	return TemplateStandard, false
}

// ClampFontScale bounds a font scale to [MinFontScale, MaxFontScale];
// zero means the default
func ClampFontScale(scale int) int {
	switch {
	case scale == 0:
		return DefaultFontScale
	case scale < MinFontScale:
		return MinFontScale
	case scale > MaxFontScale:
		return MaxFontScale
	}
	return scale
}

// Options controls how a card is drawn
type Options struct {
	Template  string `json:"template" query:"template"`
	FontScale int    `json:"font_scale" query:"fontScale"`
}

// Normalize resolves the template and clamps the font scale
func (o Options) Normalize() (Template, int) {
	t, _ := LookupTemplate(o.Template)
	return t, ClampFontScale(o.FontScale)
}

// Task is a queued request to render and publish a job's share card
type Task struct {
	ID          string       `json:"id"`
	JobID       kernel.JobID `json:"job_id"`
	Options     Options      `json:"options"`
	Attempt     int          `json:"attempt"`
	RequestedAt time.Time    `json:"requested_at"`
}

// MarshalJSON renders colors as CSS hex strings
func (t Template) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Background string `json:"background"`
		Text       string `json:"text"`
		Accent     string `json:"accent"`
	}{t.ID, t.Name, cssHex(t.Background), cssHex(t.Text), cssHex(t.Accent)})
}

func cssHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func hex(rgb uint32) color.RGBA {
	return color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}
}
