package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ysato/pointbook/internal/models"
	"github.com/ysato/pointbook/internal/points"
)

const (
	historyRows = 10
	barWidth    = 24
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateChild:
		content = m.viewChild()
	case StateStudy:
		content = m.viewStudy()
	case StateParentLogin:
		if m.form != nil {
			content = m.form.View()
		}
	case StateParent:
		content = m.viewParent()
	}

	sections := []string{m.viewTabs(), content}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, name := range m.cfg.Children {
		if m.state != StateParent && i == m.child {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	if m.sess.Parent {
		label := "親"
		if m.state == StateParent {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewChild() string {
	child := m.activeChild()
	if child == "" {
		return docStyle.Render("No children registered. Add one with 'pointbook child add'.")
	}

	now := time.Now()
	today := now.Format(models.DateLayout)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s のポイント", child)) + "\n\n")
	b.WriteString(fmt.Sprintf("  Total      %s\n", metricStyle.Render(fmt.Sprintf("%.1f pt", points.TotalFor(m.events, child)))))
	b.WriteString(fmt.Sprintf("  Today      %s\n", metricStyle.Render(fmt.Sprintf("%.1f pt", points.TodayFor(m.events, child, today)))))
	b.WriteString(fmt.Sprintf("  This week  %s\n", metricStyle.Render(fmt.Sprintf("%.1f pt", points.WeekFor(m.events, child, now)))))

	daily := points.DailySeries(m.events, child, now.AddDate(0, 0, -13))
	if len(daily) > 0 {
		b.WriteString("\n  Last 14 days\n")
		b.WriteString(renderSeries(daily))
	}

	weekly := points.WeeklySeries(m.events, child)
	if len(weekly) > 0 {
		b.WriteString("\n  Per week\n")
		b.WriteString(renderSeries(weekly))
	}

	b.WriteString(renderHistory(m.events, child, historyRows))
	return docStyle.Render(b.String())
}

func (m Model) viewStudy() string {
	child := m.activeChild()
	subjects := m.sess.Subjects(child)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Study buffer: %s", child)) + "\n\n")
	total := 0
	for i, subject := range subjects {
		cursor := "  "
		if i == m.subject {
			cursor = "> "
		}
		minutes := m.sess.Minutes(child, subject)
		total += minutes
		b.WriteString(fmt.Sprintf("%s%-8s %4d min\n", cursor, subject, minutes))
	}
	b.WriteString(fmt.Sprintf("\n  Buffered: %d min (%.2f h)\n", total, float64(total)/60.0))
	return docStyle.Render(b.String())
}

func (m Model) viewParent() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("親用設定・管理") + "\n\n")

	b.WriteString("  Children: " + strings.Join(m.cfg.Children, "、") + "\n\n")

	b.WriteString("  Activities\n")
	for _, t := range m.cfg.Tasks {
		b.WriteString(fmt.Sprintf("  %4d  %-8s  %-16s %6.1f pt/h\n", t.ID, t.Category, t.Name, t.PointsPerHour))
	}

	b.WriteString("\n  Recent entries (all children)\n")
	shown := 0
	for i := len(m.events) - 1; i >= 0 && shown < historyRows; i-- {
		e := m.events[i]
		line := fmt.Sprintf("  [%3d] %s  %-8s %-8s %-16s %6.1f pt\n",
			i, e.Date, e.Child, e.Category, e.Task, e.Points)
		if e.Penalty() {
			line = penaltyStyle.Render(line)
		}
		b.WriteString(line)
		shown++
	}
	if shown == 0 {
		b.WriteString("  (no entries)\n")
	}

	b.WriteString("\n  Mutations: use 'pointbook child', 'pointbook activity', 'pointbook passwd'.\n")
	return docStyle.Render(b.String())
}

func renderSeries(series []points.SeriesPoint) string {
	var max float64
	for _, p := range series {
		if p.Points > max {
			max = p.Points
		}
	}
	var b strings.Builder
	for _, p := range series {
		width := 0
		if max > 0 && p.Points > 0 {
			width = int(p.Points / max * barWidth)
			if width == 0 {
				width = 1
			}
		}
		b.WriteString(fmt.Sprintf("  %s %6.1f %s\n", p.Date, p.Points, strings.Repeat("█", width)))
	}
	return b.String()
}

func renderHistory(events []models.PointEvent, child string, limit int) string {
	var b strings.Builder
	b.WriteString("\n  History\n")
	shown := 0
	for i := len(events) - 1; i >= 0 && shown < limit; i-- {
		e := events[i]
		if e.Child != child {
			continue
		}
		line := fmt.Sprintf("  %s  %-8s %-16s %5.2f h %7.1f pt\n",
			e.Date, e.Category, e.Task, e.Hours, e.Points)
		if e.Penalty() {
			line = penaltyStyle.Render(line)
		}
		b.WriteString(line)
		shown++
	}
	if shown == 0 {
		b.WriteString("  (no entries yet)\n")
	}
	return b.String()
}
