package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cepdnaclk/e22-co2060-Syncro/internal/api"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/session"
)

// OrdersPageModel renders the order book for the active role.
type OrdersPageModel struct {
	viewport viewport.Model
	styles   Styles
	role     session.Role
	userID   int
	orders   []api.Order
	width    int
	height   int
}

// NewOrdersPageModel creates the orders page.
func NewOrdersPageModel(styles Styles) OrdersPageModel {
	return OrdersPageModel{
		viewport: viewport.New(80, 20),
		styles:   styles,
	}
}

// SetSize updates the size of the viewport.
func (m *OrdersPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 2
	m.UpdateContent()
}

// SetStyles swaps the theme styles and re-renders.
func (m *OrdersPageModel) SetStyles(styles Styles) {
	m.styles = styles
	m.UpdateContent()
}

// SetData refreshes the order book. The role decides which side of each
// order to show as the counterparty.
func (m *OrdersPageModel) SetData(userID int, role session.Role, orders []api.Order) {
	m.userID = userID
	m.role = role
	m.orders = orders
	m.UpdateContent()
}

// UpdateContent rebuilds the viewport content.
func (m *OrdersPageModel) UpdateContent() {
	title := "My Orders"
	counterparty := "Seller"
	if m.role == session.RoleSeller {
		title = "Incoming Orders"
		counterparty = "Buyer"
	}

	shown := m.ordersForRole()
	if len(shown) == 0 {
		m.viewport.SetContent(m.styles.Title.Render(title) + "\n" +
			m.styles.Muted.Render("No orders yet."))
		return
	}

	table := NewSimpleTable(title, []string{"ID", "Service", counterparty, "Status", "Amount"})
	table.AlignRight(4)
	for _, o := range shown {
		other := o.SellerID
		if m.role == session.RoleSeller {
			other = o.BuyerID
		}
		table.AddRow(
			fmt.Sprintf("ORD-%03d", o.ID),
			o.ServiceName,
			fmt.Sprintf("#%d", other),
			m.styles.StatusStyle(o.Status).Render(o.Status),
			fmt.Sprintf("$%.0f", o.Amount),
		)
	}
	m.viewport.SetContent(table.View(m.styles))
}

// ordersForRole returns the orders where the user sits on the active side.
func (m *OrdersPageModel) ordersForRole() []api.Order {
	var out []api.Order
	for _, o := range m.orders {
		if m.role == session.RoleSeller && o.SellerID == m.userID {
			out = append(out, o)
		}
		if m.role == session.RoleBuyer && o.BuyerID == m.userID {
			out = append(out, o)
		}
	}
	return out
}

// Update handles messages.
func (m OrdersPageModel) Update(msg tea.Msg) (OrdersPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m OrdersPageModel) View() string {
	return m.viewport.View()
}
