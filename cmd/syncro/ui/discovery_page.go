package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cepdnaclk/e22-co2060-Syncro/internal/catalog"
)

// SortKeys is the cycle order for the discovery sort control.
var SortKeys = []string{
	catalog.SortRelevance,
	catalog.SortPriceLow,
	catalog.SortPriceHigh,
	catalog.SortRating,
	catalog.SortReviews,
}

var sortLabels = map[string]string{
	catalog.SortRelevance: "Relevance",
	catalog.SortPriceLow:  "Price: Low to High",
	catalog.SortPriceHigh: "Price: High to Low",
	catalog.SortRating:    "Highest Rated",
	catalog.SortReviews:   "Most Reviewed",
}

// DiscoveryPageModel renders the service marketplace with search, category
// and sort controls.
type DiscoveryPageModel struct {
	search     textinput.Model
	viewport   viewport.Model
	styles     Styles
	listings   []catalog.Listing
	categories []string

	categoryIdx int
	sortIdx     int
	selected    int
	visible     []catalog.Listing

	width  int
	height int
}

// NewDiscoveryPageModel creates the discovery page over a catalog snapshot.
func NewDiscoveryPageModel(listings []catalog.Listing, styles Styles) DiscoveryPageModel {
	ti := textinput.New()
	ti.Placeholder = "Search services..."
	ti.Prompt = "/ "
	ti.CharLimit = 120
	ti.PromptStyle = styles.Prompt

	m := DiscoveryPageModel{
		search:     ti,
		viewport:   viewport.New(80, 20),
		styles:     styles,
		listings:   listings,
		categories: catalog.Categories(listings),
	}
	m.refresh()
	return m
}

// SetStyles swaps the theme styles and re-renders.
func (m *DiscoveryPageModel) SetStyles(styles Styles) {
	m.styles = styles
	m.refresh()
}

// SetListings replaces the catalog snapshot.
func (m *DiscoveryPageModel) SetListings(listings []catalog.Listing) {
	m.listings = listings
	m.categories = catalog.Categories(listings)
	if m.categoryIdx >= len(m.categories) {
		m.categoryIdx = 0
	}
	m.refresh()
}

// SetSize updates the size of the viewport.
func (m *DiscoveryPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 5 // search bar + filter line + footer
	m.search.Width = w - 4
	m.refresh()
}

// Query returns the current discovery query.
func (m *DiscoveryPageModel) Query() catalog.Query {
	return catalog.Query{
		Search:   m.search.Value(),
		Category: m.categories[m.categoryIdx],
		Sort:     SortKeys[m.sortIdx],
	}
}

// Selected returns the highlighted listing, or nil when the result set is
// empty.
func (m *DiscoveryPageModel) Selected() *catalog.Listing {
	if len(m.visible) == 0 {
		return nil
	}
	l := m.visible[m.selected]
	return &l
}

func (m *DiscoveryPageModel) refresh() {
	m.visible = catalog.Apply(m.listings, m.Query())
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
	m.viewport.SetContent(m.renderResults())
}

// Update handles messages. The search input owns most keys; tab cycles the
// category, ctrl+s cycles the sort order.
func (m DiscoveryPageModel) Update(msg tea.Msg) (DiscoveryPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab:
			m.categoryIdx = (m.categoryIdx + 1) % len(m.categories)
			m.refresh()
			return m, nil
		case tea.KeyCtrlS:
			m.sortIdx = (m.sortIdx + 1) % len(SortKeys)
			m.refresh()
			return m, nil
		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
				m.viewport.SetContent(m.renderResults())
			}
			return m, nil
		case tea.KeyDown:
			if m.selected < len(m.visible)-1 {
				m.selected++
				m.viewport.SetContent(m.renderResults())
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

// Focus gives the search input keyboard focus.
func (m *DiscoveryPageModel) Focus() tea.Cmd {
	return m.search.Focus()
}

// Blur removes keyboard focus from the search input.
func (m *DiscoveryPageModel) Blur() {
	m.search.Blur()
}

func (m *DiscoveryPageModel) renderResults() string {
	if len(m.visible) == 0 {
		return m.styles.Muted.Render("No services match your search.")
	}

	var sb strings.Builder
	for i, l := range m.visible {
		line := fmt.Sprintf("%-34s %s  %s %s",
			truncate(l.Title, 34),
			m.styles.Seller.Render(truncate(l.Seller, 20)),
			m.styles.Rating.Render(fmt.Sprintf("★ %.1f (%d)", l.Rating, l.Reviews)),
			m.styles.Price.Render(fmt.Sprintf("$%.0f", l.Price)),
		)
		if i == m.selected {
			line = m.styles.Selected.Render("> ") + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString("  " + m.styles.Muted.Render(fmt.Sprintf("%s · %s · %s",
			l.Category, l.DeliveryTime, truncate(l.Description, 50))))
		sb.WriteString("\n")
	}
	return sb.String()
}

// View renders the page.
func (m DiscoveryPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.search.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf(
		"Category: %s (tab)  ·  Sort: %s (ctrl+s)  ·  %d result(s)",
		m.categories[m.categoryIdx], sortLabels[SortKeys[m.sortIdx]], len(m.visible))))
	sb.WriteString("\n\n")
	sb.WriteString(m.viewport.View())
	return sb.String()
}

// truncate shortens s to at most l runes. Byte slicing would cut multibyte
// runes in half.
func truncate(s string, l int) string {
	r := []rune(s)
	if len(r) <= l {
		return s
	}
	if l <= 3 {
		return string(r[:l])
	}
	return string(r[:l-3]) + "..."
}
