package sharecard

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"
	"sync"

	"github.com/Abraxas-365/applymint/recruitment/job"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Base font sizes at 100% scale
const (
	titleSize    = 50
	subtitleSize = 30
	detailsSize  = 24
	brandSize    = 30
	footerSize   = 20

	qrSize     = 200
	titleTop   = 280
	brandRight = 50
	brandTop   = 80
)

// Brand is drawn in the top-right corner of every card
const Brand = "ApplyMint AI"

// Card is what gets drawn for one job
type Card struct {
	Title           string
	CompanyName     string
	Location        string
	LocationType    string
	JobType         string
	ExperienceLevel string
	SalaryMin       *int64
	SalaryMax       *int64
	SalaryCurrency  string
	Domains         []string
	ApplyURL        string
}

// CardFromJob extracts the drawn fields of an assembled job
func CardFromJob(j *job.JobResponse, applyURL string) Card {
	c := Card{
		Title:           j.Title,
		LocationType:    string(j.LocationType),
		JobType:         string(j.JobType),
		ExperienceLevel: string(j.ExperienceLevel),
		SalaryMin:       j.SalaryMin,
		SalaryMax:       j.SalaryMax,
		SalaryCurrency:  j.SalaryCurrency,
		ApplyURL:        applyURL,
	}
	if j.Company != nil {
		c.CompanyName = j.Company.Name
	}
	if j.Location != nil {
		c.Location = *j.Location
	}
	for _, d := range j.Domains {
		c.Domains = append(c.Domains, d.Name)
	}
	return c
}

// LocationLine is "Lima (Hybrid)" or just the location type
func (c Card) LocationLine() string {
	if c.Location != "" {
		return fmt.Sprintf("%s (%s)", c.Location, c.LocationType)
	}
	return c.LocationType
}

// SalaryLine formats the disclosed salary bounds; empty when undisclosed
func (c Card) SalaryLine() string {
	switch {
	case c.SalaryMin != nil && c.SalaryMax != nil:
		return fmt.Sprintf("%s-%s %s", groupThousands(*c.SalaryMin), groupThousands(*c.SalaryMax), c.SalaryCurrency)
	case c.SalaryMin != nil:
		return fmt.Sprintf("%s %s+", groupThousands(*c.SalaryMin), c.SalaryCurrency)
	case c.SalaryMax != nil:
		return fmt.Sprintf("Up to %s %s", groupThousands(*c.SalaryMax), c.SalaryCurrency)
	}
	return ""
}

// Renderer draws share cards. Parsed fonts are shared; faces are created
// per render because they are not safe for concurrent use.
type Renderer struct {
	once    sync.Once
	regular *opentype.Font
	bold    *opentype.Font
	err     error
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) load() error {
	r.once.Do(func() {
		if r.regular, r.err = opentype.Parse(goregular.TTF); r.err != nil {
			return
		}
		r.bold, r.err = opentype.Parse(gobold.TTF)
	})
	return r.err
}

func (r *Renderer) face(bold bool, size float64) (font.Face, error) {
	f := r.regular
	if bold {
		f = r.bold
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

type faceSpec struct {
	name string
	bold bool
	size int
}

// openFaces opens one face per spec. If any fails, the ones already opened
// are closed before returning.
func openFaces(specs []faceSpec, open func(bold bool, size float64) (font.Face, error)) (map[string]font.Face, func(), error) {
	faces := make(map[string]font.Face, len(specs))
	closeAll := func() {
		for _, f := range faces {
			f.Close()
		}
	}
	for _, spec := range specs {
		f, err := open(spec.bold, float64(spec.size))
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		faces[spec.name] = f
	}
	return faces, closeAll, nil
}

// canvas wraps the image being drawn
type canvas struct {
	img *image.RGBA
}

func (cv canvas) text(face font.Face, col color.Color, s string, x, y int, align string) {
	w := font.MeasureString(face, s).Ceil()
	switch align {
	case "center":
		x -= w / 2
	case "right":
		x -= w
	}
	d := &font.Drawer{
		Dst:  cv.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// Render draws c as a PNG using template t and a font scale in percent
func (r *Renderer) Render(c Card, t Template, fontScale int) ([]byte, error) {
	if err := r.load(); err != nil {
		return nil, ErrRenderFailed(err)
	}
	fontScale = ClampFontScale(fontScale)
	scaled := func(base int) int { return base * fontScale / 100 }

	img := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(t.Background), image.Point{}, draw.Src)
	cv := canvas{img: img}

	faces, closeFaces, err := openFaces([]faceSpec{
		{"brand", true, scaled(brandSize)},
		{"title", true, scaled(titleSize)},
		{"subtitle", false, scaled(subtitleSize)},
		{"details", false, scaled(detailsSize)},
		{"detailsBold", true, scaled(detailsSize)},
		{"footer", false, scaled(footerSize)},
	}, r.face)
	if err != nil {
		return nil, ErrRenderFailed(err)
	}
	defer closeFaces()

	cx := CardWidth / 2
	cv.text(faces["brand"], t.Accent, Brand, CardWidth-brandRight, brandTop, "right")

	titleFont := scaled(titleSize)
	lines := WrapText(c.Title, CardWidth-200, func(s string) int {
		return font.MeasureString(faces["title"], s).Ceil()
	})
	for i, line := range lines {
		cv.text(faces["title"], t.Text, line, cx, titleTop+i*(titleFont+10), "center")
	}
	titleBottom := titleTop + len(lines)*(titleFont+10)

	cv.text(faces["subtitle"], t.Text, c.CompanyName, cx, titleBottom+50, "center")

	detailsY := titleBottom + 120
	spacing := scaled(detailsSize) + 15
	cv.text(faces["details"], t.Text, c.LocationLine(), cx, detailsY, "center")
	cv.text(faces["details"], t.Text, fmt.Sprintf("%s | %s Level", c.JobType, c.ExperienceLevel), cx, detailsY+spacing, "center")
	if salary := c.SalaryLine(); salary != "" {
		cv.text(faces["details"], t.Text, salary, cx, detailsY+spacing*2, "center")
	}

	if c.ApplyURL != "" {
		qr, err := QRCode(c.ApplyURL)
		if err != nil {
			return nil, err
		}
		qrY := detailsY + spacing*3 + 30
		qrX := (CardWidth - qrSize) / 2
		draw.Draw(img, image.Rect(qrX, qrY, qrX+qrSize, qrY+qrSize), qr, qr.Bounds().Min, draw.Src)
		cv.text(faces["detailsBold"], t.Text, "Scan to apply", cx, qrY+qrSize+40, "center")
	}

	if len(c.Domains) > 0 {
		cv.text(faces["footer"], t.Accent, strings.Join(c.Domains, " | "), cx, CardHeight-50, "center")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, ErrRenderFailed(err)
	}
	return buf.Bytes(), nil
}

// QRCode encodes url as a qrSize square image
func QRCode(url string) (image.Image, error) {
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, ErrRenderFailed(err)
	}
	return q.Image(qrSize), nil
}

// QRCodePNG encodes url as a qrSize square PNG
func QRCodePNG(url string) ([]byte, error) {
	data, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		return nil, ErrRenderFailed(err)
	}
	return data, nil
}

// WrapText breaks s into lines narrower than maxWidth, splitting at spaces.
// A single word wider than maxWidth gets its own line.
func WrapText(s string, maxWidth int, measure func(string) int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	lines := []string{}
	current := words[0]
	for _, w := range words[1:] {
		if measure(current+" "+w) < maxWidth {
			current += " " + w
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
