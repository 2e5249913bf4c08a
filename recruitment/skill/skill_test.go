package skill_test

import (
	"testing"

	"github.com/Abraxas-365/applymint/recruitment/skill"
)

func TestNewListOptions(t *testing.T) {
	tests := []struct {
		name      string
		orderBy   string
		dir       string
		page      int
		size      int
		wantOrder skill.OrderBy
		wantDesc  bool
		wantPage  int
		wantSize  int
	}{
		{"defaults", "", "", 0, 0, skill.OrderByName, false, 1, skill.DefaultPageSize},
		{"category desc", "Category", "DESC", 2, 20, skill.OrderByCategory, true, 2, 20},
		{"unknown order", "popularity", "asc", 1, 10, skill.OrderByName, false, 1, 10},
		{"oversized page", "name", "", 1, 5000, skill.OrderByName, false, 1, skill.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := skill.NewListOptions("", "", tt.orderBy, tt.dir, tt.page, tt.size)
			if opts.OrderBy != tt.wantOrder || opts.Desc != tt.wantDesc {
				t.Errorf("order = %s desc=%v, want %s desc=%v", opts.OrderBy, opts.Desc, tt.wantOrder, tt.wantDesc)
			}
			if opts.Page.Page != tt.wantPage || opts.Page.PageSize != tt.wantSize {
				t.Errorf("page = %+v, want %d/%d", opts.Page, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestListOptions_Matches(t *testing.T) {
	lang := "Language"
	goSkill := &skill.Skill{ID: "1", Name: "Golang", Category: &lang}
	figma := &skill.Skill{ID: "2", Name: "Figma"}

	opts := skill.NewListOptions("Language", "  LANG ", "", "", 1, 10)
	if !opts.Matches(goSkill) {
		t.Error("expected case-insensitive name match within category")
	}
	if opts.Matches(figma) {
		t.Error("skill without category must not match a category filter")
	}

	all := skill.NewListOptions(" ", "", "", "", 1, 10)
	if all.Category != nil || !all.Matches(figma) {
		t.Error("blank filters must be absent")
	}
}
