package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cepdnaclk/e22-co2060-Syncro/internal/catalog"
)

func TestDiscoveryTabCyclesCategory(t *testing.T) {
	m := NewDiscoveryPageModel(catalog.SampleListings, NewStyles(LightTheme()))
	if got := m.Query().Category; got != catalog.CategoryAll {
		t.Fatalf("initial category = %q, want all", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.Query().Category; got != "Design & Creative" {
		t.Errorf("category after tab = %q", got)
	}
}

func TestDiscoveryCtrlSCyclesSort(t *testing.T) {
	m := NewDiscoveryPageModel(catalog.SampleListings, NewStyles(LightTheme()))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if got := m.Query().Sort; got != catalog.SortPriceLow {
		t.Errorf("sort after ctrl+s = %q, want price-low", got)
	}
}

func TestDiscoverySearchNarrowsSelection(t *testing.T) {
	m := NewDiscoveryPageModel(catalog.SampleListings, NewStyles(LightTheme()))
	m.Focus()
	for _, r := range "logo" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	sel := m.Selected()
	if sel == nil || sel.Title != "Professional Logo Design" {
		t.Fatalf("selected = %+v, want the logo listing", sel)
	}
	if !strings.Contains(m.View(), "1 result(s)") {
		t.Error("view should report a single result")
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	cases := []struct {
		in   string
		l    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a much longer description", 10, "a much ..."},
		{"Дизайн логотипа для кафе", 10, "Дизайн ..."},
		{"日本語のタイトルです", 5, "日本..."},
		{"日本語", 2, "日本"},
	}
	for _, c := range cases {
		got := truncate(c.in, c.l)
		if got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.l, got, c.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", c.in, c.l)
		}
	}
}

func TestDiscoveryEmptyResultHasNoSelection(t *testing.T) {
	m := NewDiscoveryPageModel(nil, NewStyles(LightTheme()))
	if m.Selected() != nil {
		t.Error("empty catalog must have no selection")
	}
	if !strings.Contains(m.View(), "No services match") {
		t.Error("empty state message missing")
	}
}
