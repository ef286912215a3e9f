package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/kwachira/walletctl/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.
				BorderForeground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	unreadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	gaugeFilled = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	gaugeEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	gaugeOver   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return fmt.Sprintf("\n  %s Loading your wallet...\n", m.spinner.View())
	}

	sections := []string{
		m.renderHeader(),
		m.renderAccounts(),
		m.renderBudget(),
		m.renderTransactions(),
		m.renderNotifications(),
		m.renderFooter(),
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	greeting := titleStyle.Render("👛 Hello, Welcome! " + m.profile.Name)
	badge := ""
	if unread := m.unreadCount(); unread > 0 {
		badge = unreadStyle.Render(fmt.Sprintf("  🔔 %d unread", unread))
	}
	return greeting + badge
}

func (m Model) renderAccounts() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Accounts"))
	b.WriteString("\n")

	line := func(selected bool, text string) string {
		if selected {
			return selectedStyle.Render("> " + text)
		}
		return "  " + text
	}

	b.WriteString(line(m.accountIndex == -1, "All accounts (overall budget)"))
	b.WriteString("\n")
	for i, account := range m.accounts {
		text := fmt.Sprintf("%-20s %-8s %12.2f", account.Name, account.Type, account.Balance)
		b.WriteString(line(i == m.accountIndex, text))
		b.WriteString("\n")
	}
	if len(m.accounts) == 0 {
		b.WriteString(mutedStyle.Render("  No accounts yet"))
		b.WriteString("\n")
	}

	return m.pane2style(PaneAccounts).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderBudget() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Active budget"))
	b.WriteString("\n")

	if len(m.budgets) == 0 {
		b.WriteString(mutedStyle.Render("No active budget for this scope"))
		return paneStyle.Render(b.String())
	}

	budget := m.budgets[0]
	b.WriteString(renderGauge(budget.Amount, budget.Limit, m.gaugeWidth()))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Spent %.2f of %.2f  (%.2f left)  %s → %s",
		budget.Amount, budget.Limit, budget.Remaining(),
		budget.StartDate.Format("2006-01-02"), budget.EndDate.Format("2006-01-02")))

	return paneStyle.Render(b.String())
}

// renderGauge draws a proportional spend bar; overspend renders the whole
// bar in the alert color.
func renderGauge(amount, limit float64, width int) string {
	if width < 10 {
		width = 10
	}
	if limit <= 0 {
		return gaugeEmpty.Render(strings.Repeat("░", width))
	}

	ratio := amount / limit
	if ratio >= 1 {
		return gaugeOver.Render(strings.Repeat("█", width))
	}

	filled := int(ratio * float64(width))
	return gaugeFilled.Render(strings.Repeat("█", filled)) +
		gaugeEmpty.Render(strings.Repeat("░", width-filled))
}

func (m Model) gaugeWidth() int {
	width := m.width - 8
	if width > 60 {
		width = 60
	}
	return width
}

func (m Model) renderTransactions() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recent transactions"))
	b.WriteString("\n")
	if len(m.transactions) == 0 {
		b.WriteString(mutedStyle.Render("No transactions yet"))
	} else {
		b.WriteString(m.table.View())
	}
	return m.pane2style(PaneTransactions).Render(b.String())
}

func (m Model) renderNotifications() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Notifications"))
	b.WriteString("\n")

	if len(m.notifications) == 0 {
		b.WriteString(mutedStyle.Render("Nothing new"))
	}
	for i, note := range m.notifications {
		marker := "  "
		if m.pane == PaneNotifications && i == m.noteIndex {
			marker = selectedStyle.Render("> ")
		}
		text := note.Message
		if !note.IsRead {
			text = unreadStyle.Render("● " + text)
		} else {
			text = mutedStyle.Render("○ " + text)
		}
		b.WriteString(marker + text)
		if i < len(m.notifications)-1 {
			b.WriteString("\n")
		}
	}

	return m.pane2style(PaneNotifications).Render(b.String())
}

func (m Model) renderFooter() string {
	parts := []string{"Tab: next pane", "↑/↓: move", "Enter: mark read", "d: delete", "r: refresh", "q: quit"}
	footer := mutedStyle.Render(strings.Join(parts, "  "))
	if m.lastError != nil {
		footer += "\n" + errorStyle.Render("Error: "+m.lastError.Error())
	}
	return footer
}

func (m Model) pane2style(pane Pane) lipgloss.Style {
	if m.pane == pane {
		return focusedPaneStyle
	}
	return paneStyle
}

// transactionRows shapes flattened transactions for the table widget.
func transactionRows(rows []model.TransactionRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		sign := "-"
		if row.Type == model.TransactionTypeIncome {
			sign = "+"
		}
		out = append(out, table.Row{
			row.TransactionTime.Format("2006-01-02"),
			row.Description,
			row.Account,
			row.Category,
			fmt.Sprintf("%s%.2f", sign, row.Amount),
		})
	}
	return out
}
