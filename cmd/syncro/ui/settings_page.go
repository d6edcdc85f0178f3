package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cepdnaclk/e22-co2060-Syncro/internal/session"
)

// SettingsPageModel renders account and appearance settings.
type SettingsPageModel struct {
	viewport viewport.Model
	styles   Styles

	user     *session.AuthUser
	role     session.Role
	theme    string
	profile  session.UserProfile
	business *session.BusinessProfile

	width  int
	height int
}

// NewSettingsPageModel creates the settings page.
func NewSettingsPageModel(styles Styles) SettingsPageModel {
	return SettingsPageModel{
		viewport: viewport.New(80, 20),
		styles:   styles,
	}
}

// SetSize updates the size of the viewport.
func (m *SettingsPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 2
	m.UpdateContent()
}

// SetStyles swaps the theme styles, e.g. after a theme toggle.
func (m *SettingsPageModel) SetStyles(styles Styles) {
	m.styles = styles
	m.UpdateContent()
}

// SetData refreshes the settings snapshot from the session store.
func (m *SettingsPageModel) SetData(user *session.AuthUser, role session.Role, theme string,
	profile session.UserProfile, business *session.BusinessProfile) {
	m.user = user
	m.role = role
	m.theme = theme
	m.profile = profile
	m.business = business
	m.UpdateContent()
}

// UpdateContent rebuilds the viewport content.
func (m *SettingsPageModel) UpdateContent() {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Account"))
	sb.WriteString("\n")
	if m.user == nil {
		sb.WriteString(m.styles.Muted.Render("Not signed in. Run `syncro login`.") + "\n")
	} else {
		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			m.styles.Bold.Render("Signed in as:"), m.user.Email,
			m.styles.Badge.Render(string(m.role))))
	}
	sb.WriteString(fmt.Sprintf("%s %s %s\n",
		m.styles.Bold.Render("Theme:"), m.theme, m.styles.Muted.Render("(t to toggle)")))
	if m.user != nil {
		sb.WriteString(m.styles.Muted.Render("Press r to switch between buyer and seller.") + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString(m.styles.Title.Render("Profile"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s %s %s\n", m.styles.Bold.Render("Name:"), m.profile.FirstName, m.profile.LastName))
	sb.WriteString(fmt.Sprintf("%s %s\n", m.styles.Bold.Render("Email:"), m.profile.Email))
	if m.profile.Phone != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", m.styles.Bold.Render("Phone:"), m.profile.Phone))
	}
	if m.profile.Bio != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", m.styles.Bold.Render("Bio:"), m.profile.Bio))
	}
	sb.WriteString("\n")

	sb.WriteString(m.styles.Title.Render("Business Profile"))
	sb.WriteString("\n")
	if m.business == nil {
		sb.WriteString(m.styles.Muted.Render("No seller profile yet. Run `syncro profile business setup`.") + "\n")
	} else {
		sb.WriteString(fmt.Sprintf("%s %s [%s]\n",
			m.styles.Bold.Render("Business:"), m.business.Name, m.business.Initials))
		sb.WriteString(fmt.Sprintf("%s %s\n", m.styles.Bold.Render("Rating:"),
			m.styles.Rating.Render(fmt.Sprintf("★ %.1f (%d reviews)", m.business.Rating, m.business.ReviewCount))))
		if len(m.business.ServiceTags) > 0 {
			sb.WriteString(fmt.Sprintf("%s %s\n", m.styles.Bold.Render("Tags:"),
				strings.Join(m.business.ServiceTags, ", ")))
		}
	}

	m.viewport.SetContent(sb.String())
}

// Update handles messages.
func (m SettingsPageModel) Update(msg tea.Msg) (SettingsPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m SettingsPageModel) View() string {
	return m.viewport.View()
}
