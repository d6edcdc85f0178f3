package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Thread is one conversation in the inbox.
type Thread struct {
	Name        string
	LastMessage string
	Timestamp   string
	Unread      bool
	Avatar      string
}

// SampleThreads seeds the inbox until real-time messaging lands.
var SampleThreads = []Thread{
	{"Design Studio Pro", "Thanks! I'll send you the final files soon", "2 min ago", true, "DS"},
	{"WebCraft Inc", "The project is looking great!", "1 hour ago", true, "WC"},
	{"SEO Masters", "I've completed the keyword research", "3 hours ago", false, "SM"},
	{"WordSmith Co", "When do you need the content?", "1 day ago", false, "WS"},
	{"Tech Startup Ltd", "Can we schedule a call?", "2 days ago", false, "TS"},
}

// MessagesPageModel renders the conversation inbox.
type MessagesPageModel struct {
	viewport viewport.Model
	styles   Styles
	threads  []Thread
	width    int
	height   int
}

// NewMessagesPageModel creates the messages page.
func NewMessagesPageModel(styles Styles) MessagesPageModel {
	m := MessagesPageModel{
		viewport: viewport.New(80, 20),
		styles:   styles,
		threads:  SampleThreads,
	}
	m.UpdateContent()
	return m
}

// SetSize updates the size of the viewport.
func (m *MessagesPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 2
	m.UpdateContent()
}

// SetStyles swaps the theme styles and re-renders.
func (m *MessagesPageModel) SetStyles(styles Styles) {
	m.styles = styles
	m.UpdateContent()
}

// UpdateContent rebuilds the viewport content.
func (m *MessagesPageModel) UpdateContent() {
	var unread int
	for _, t := range m.threads {
		if t.Unread {
			unread++
		}
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("Messages (%d unread)", unread)))
	sb.WriteString("\n")
	for _, t := range m.threads {
		name := m.styles.Body.Render(t.Name)
		if t.Unread {
			name = m.styles.Bold.Render(t.Name) + " " + m.styles.Badge.Render("new")
		}
		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			m.styles.Seller.Render("["+t.Avatar+"]"), name, m.styles.Muted.Render(t.Timestamp)))
		sb.WriteString("     " + m.styles.Muted.Render(truncate(t.LastMessage, 60)) + "\n")
	}
	m.viewport.SetContent(sb.String())
}

// Update handles messages.
func (m MessagesPageModel) Update(msg tea.Msg) (MessagesPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m MessagesPageModel) View() string {
	return m.viewport.View()
}
