package sharecard_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"image/png"
	"testing"

	"github.com/Abraxas-365/applymint/recruitment/sharecard"
)

func i64(n int64) *int64 { return &n }

// ── Templates ──────────────────────────────────────────────────────────────

func TestLookupTemplate(t *testing.T) {
	for _, id := range []string{"standard", "tech", "creative", "corporate", "startup"} {
		tpl, ok := sharecard.LookupTemplate(id)
		if !ok || tpl.ID != id {
			t.Errorf("LookupTemplate(%q) = %s, %v", id, tpl.ID, ok)
		}
	}
	if tpl, ok := sharecard.LookupTemplate(" TECH "); !ok || tpl.ID != "tech" {
		t.Errorf("case-insensitive lookup failed: %s", tpl.ID)
	}
	if tpl, ok := sharecard.LookupTemplate("neon"); ok || tpl.ID != "standard" {
		t.Errorf("unknown template = %s, %v; want standard fallback", tpl.ID, ok)
	}
}

func TestClampFontScale(t *testing.T) {
	cases := map[int]int{0: 100, 10: 50, 50: 50, 120: 120, 150: 150, 400: 150, -5: 50}
	for in, want := range cases {
		if got := sharecard.ClampFontScale(in); got != want {
			t.Errorf("ClampFontScale(%d) = %d, want %d", in, got, want)
		}
	}
}

// ── Text ───────────────────────────────────────────────────────────────────

func TestWrapText(t *testing.T) {
	measure := func(s string) int { return len(s) * 10 }
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"Senior Backend Engineer", 1000, `["Senior Backend Engineer"]`},
		{"Senior Backend Engineer", 150, `["Senior Backend" "Engineer"]`},
		{"Senior Backend Engineer", 120, `["Senior" "Backend" "Engineer"]`},
		{"Go Dev Lead", 100, `["Go Dev" "Lead"]`},
		{"Supercalifragilistic dev", 50, `["Supercalifragilistic" "dev"]`},
		{"  ", 100, `[]`},
	}
	for _, c := range cases {
		got := sharecard.WrapText(c.in, c.max, measure)
		if fmt.Sprintf("%q", got) != c.want {
			t.Errorf("WrapText(%q, %d) = %q, want %s", c.in, c.max, got, c.want)
		}
	}
}

func TestSalaryLine(t *testing.T) {
	cases := []struct {
		min, max *int64
		want     string
	}{
		{i64(90000), i64(120000), "90,000-120,000 USD"},
		{i64(90000), nil, "90,000 USD+"},
		{nil, i64(1500), "Up to 1,500 USD"},
		{nil, nil, ""},
	}
	for _, c := range cases {
		card := sharecard.Card{SalaryMin: c.min, SalaryMax: c.max, SalaryCurrency: "USD"}
		if got := card.SalaryLine(); got != c.want {
			t.Errorf("SalaryLine = %q, want %q", got, c.want)
		}
	}
}

func TestLocationLine(t *testing.T) {
	if got := (sharecard.Card{Location: "Lima", LocationType: "Hybrid"}).LocationLine(); got != "Lima (Hybrid)" {
		t.Errorf("got %q", got)
	}
	if got := (sharecard.Card{LocationType: "Remote"}).LocationLine(); got != "Remote" {
		t.Errorf("got %q", got)
	}
}

// ── Render ─────────────────────────────────────────────────────────────────

func TestRender(t *testing.T) {
	card := sharecard.Card{
		Title:           "Senior Backend Engineer for a Very Long Job Title That Wraps",
		CompanyName:     "Acme Corp",
		LocationType:    "Remote",
		JobType:         "Full-time",
		ExperienceLevel: "Senior",
		SalaryMin:       i64(90000),
		SalaryCurrency:  "USD",
		Domains:         []string{"Technology", "Finance"},
		ApplyURL:        "https://applymint.example/api/jobs/j1/apply",
	}
	r := sharecard.NewRenderer()

	for _, tpl := range sharecard.Templates {
		for _, scale := range []int{50, 100, 150} {
			data, err := r.Render(card, tpl, scale)
			if err != nil {
				t.Fatalf("%s@%d: %v", tpl.ID, scale, err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("%s@%d: decode: %v", tpl.ID, scale, err)
			}
			if b := img.Bounds(); b.Dx() != sharecard.CardWidth || b.Dy() != sharecard.CardHeight {
				t.Errorf("%s@%d: size = %v", tpl.ID, scale, b)
			}
			if got := color.RGBAModel.Convert(img.At(5, 5)); got != tpl.Background {
				t.Errorf("%s@%d: corner = %v, want %v", tpl.ID, scale, got, tpl.Background)
			}
		}
	}
}

func TestQRCodePNG(t *testing.T) {
	data, err := sharecard.QRCodePNG("https://applymint.example/api/jobs/j1/apply")
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("qr size = %v", b)
	}
}

func TestTemplateJSON(t *testing.T) {
	raw, err := json.Marshal(sharecard.TemplateStandard)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"standard","name":"Standard","background":"#2563eb","text":"#ffffff","accent":"#fbbf24"}`
	if string(raw) != want {
		t.Errorf("json = %s", raw)
	}
}
