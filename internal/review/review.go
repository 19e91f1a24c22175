// Package review is the interactive TUI for approving fresh rows before
// they are appended to the record store.
package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mhalder/jobsift/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 1, 2)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 2)

	cursorItemStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("24")).
			Padding(0, 0, 0, 2)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	detailBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(14)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

// Lines per row item in the list (title + subtitle).
const rowItemHeight = 2

type reviewModel struct {
	rows     []model.OutputRow
	selected []bool
	cursor   int
	detail   viewport.Model
	width    int
	height   int
	ready    bool
	confirm  bool
	quit     bool
}

func newReviewModel(rows []model.OutputRow) reviewModel {
	selected := make([]bool, len(rows))
	for i := range selected {
		selected[i] = true // everything in by default; reviewer prunes
	}
	return reviewModel{rows: rows, selected: selected}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		detailHeight := 10
		if !m.ready {
			m.detail = viewport.New(msg.Width-4, detailHeight)
			m.ready = true
		} else {
			m.detail.Width = msg.Width - 4
			m.detail.Height = detailHeight
		}
		m.detail.SetContent(m.detailContent())

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.detail.SetContent(m.detailContent())
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.detail.SetContent(m.detailContent())
			}
		case " ":
			m.selected[m.cursor] = !m.selected[m.cursor]
		case "a":
			all := true
			for _, s := range m.selected {
				if !s {
					all = false
					break
				}
			}
			for i := range m.selected {
				m.selected[i] = !all
			}
		case "pgup", "pgdown":
			// Forward scroll keys to the detail viewport.
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		case "enter":
			m.confirm = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m reviewModel) detailContent() string {
	if len(m.rows) == 0 {
		return "No fresh rows."
	}
	r := m.rows[m.cursor]

	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label) + " " + value + "\n")
	}
	line("Title", r.Title)
	line("Company", r.Company)
	line("Location", r.Location)
	line("Posted", r.PostedDate)
	line("Salary", salaryRange(r))
	line("URL", r.URL)
	line("Fit score", r.FitScore)
	line("Fit notes", r.FitNotes)
	line("About", r.CompanySummary)
	line("Summary", r.JobSummary)
	line("Contact", r.Contact)
	return b.String()
}

func salaryRange(r model.OutputRow) string {
	if r.SalaryMin == "" && r.SalaryMax == "" {
		return ""
	}
	s := r.SalaryMin + " - " + r.SalaryMax
	if r.SalaryEstimated == "1" {
		s += " (estimated)"
	}
	return s
}

func (m reviewModel) View() string {
	if len(m.rows) == 0 {
		return titleStyle.Render("Nothing fresh to review.") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Review %d fresh postings", len(m.rows))))
	b.WriteString("\n")

	visible := m.visibleWindow()
	for i := visible.start; i < visible.end; i++ {
		r := m.rows[i]
		check := "[ ]"
		if m.selected[i] {
			check = "[x]"
		}
		title := fmt.Sprintf("%s %s", check, r.Title)
		subtitle := r.Company
		if r.Location != "" {
			subtitle += "  " + r.Location
		}
		if r.FitScore != "" {
			subtitle += "  fit " + r.FitScore + "/10"
		}

		if i == m.cursor {
			b.WriteString(cursorItemStyle.Render(title) + "\n")
			b.WriteString(cursorItemStyle.Render("    "+subtitleStyle.Render(subtitle)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(title) + "\n")
			b.WriteString(itemStyle.Render("    "+subtitleStyle.Render(subtitle)) + "\n")
		}
	}

	if m.ready {
		b.WriteString(detailBorderStyle.Render(m.detail.View()))
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render("space toggle · a toggle all · enter append selected · q cancel"))
	b.WriteString("\n")
	return b.String()
}

type window struct{ start, end int }

// visibleWindow keeps the cursor inside the rows the terminal can show.
func (m reviewModel) visibleWindow() window {
	maxItems := len(m.rows)
	if m.height > 0 {
		// Reserve room for the header, detail pane, and hint line.
		avail := (m.height - 16) / rowItemHeight
		if avail < 3 {
			avail = 3
		}
		if avail < maxItems {
			maxItems = avail
		}
	}
	start := 0
	if m.cursor >= maxItems {
		start = m.cursor - maxItems + 1
	}
	end := start + maxItems
	if end > len(m.rows) {
		end = len(m.rows)
	}
	return window{start: start, end: end}
}

// Run shows the selection TUI and returns the rows the reviewer kept, or
// nil when the review was cancelled.
func Run(rows []model.OutputRow) ([]model.OutputRow, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	p := tea.NewProgram(newReviewModel(rows), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := result.(reviewModel)
	if !final.confirm {
		return nil, nil
	}

	var kept []model.OutputRow
	for i, r := range final.rows {
		if final.selected[i] {
			kept = append(kept, r)
		}
	}
	return kept, nil
}
