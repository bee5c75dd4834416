package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rapla2csv/rapla"
)

const (
	MIN_WIN_WIDTH   int = 72
	NUM_TABS_SWITCH int = 6
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	helpStyle    = blurredStyle.Copy()

	inactiveTabBorder = tabBorderWithBottom("┴", "─", "┴")
	activeTabBorder   = tabBorderWithBottom("┘", " ", "└")
	docStyle          = lipgloss.NewStyle().Padding(1, 2, 1, 2)
	highlightColor    = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	inactiveTabStyle  = lipgloss.NewStyle().Border(inactiveTabBorder, true).BorderForeground(highlightColor).Padding(0, 1)
	activeTabStyle    = inactiveTabStyle.Copy().Border(activeTabBorder, true)
	windowStyle       = lipgloss.NewStyle().BorderForeground(highlightColor).Padding(1, 2).Align(lipgloss.Left).Border(lipgloss.NormalBorder()).UnsetBorderTop()
)

// weekTab holds the lessons of one calendar week.
type weekTab struct {
	Label   string
	Lessons []rapla.Lesson
}

func groupByWeek(lessons []rapla.Lesson) []weekTab {
	var tabs []weekTab
	index := map[string]int{}
	for _, l := range lessons {
		monday := rapla.MondayOf(l.StartDate)
		key := monday.Format(rapla.DateLayout)
		i, ok := index[key]
		if !ok {
			_, week := monday.ISOWeek()
			i = len(tabs)
			index[key] = i
			tabs = append(tabs, weekTab{Label: fmt.Sprintf("KW %02d", week)})
		}
		tabs[i].Lessons = append(tabs[i].Lessons, l)
	}
	return tabs
}

type previewModel struct {
	Tabs      []weekTab
	activeTab int
	filter    textinput.Model
	confirmed bool
}

func initialPreview(lessons []rapla.Lesson) previewModel {
	t := textinput.New()
	t.Placeholder = "Filter by title"
	t.Prompt = "/ "

	return previewModel{Tabs: groupByWeek(lessons), filter: t}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}

	if m.filter.Focused() {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter", "esc":
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "enter", "w":
		m.confirmed = true
		return m, tea.Quit
	case "tab", "]", "right":
		m.activeTab++
		if m.activeTab >= len(m.Tabs) {
			m.activeTab = 0
		}
	case "shift+tab", "[", "left":
		m.activeTab--
		if m.activeTab < 0 {
			m.activeTab = len(m.Tabs) - 1
		}
		if m.activeTab < 0 {
			m.activeTab = 0
		}
	case "/":
		m.filter.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// visibleLessons applies the title filter to the active tab.
func (m previewModel) visibleLessons() []rapla.Lesson {
	if len(m.Tabs) == 0 {
		return nil
	}
	lessons := m.Tabs[m.activeTab].Lessons
	filter := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if filter == "" {
		return lessons
	}
	var out []rapla.Lesson
	for _, l := range lessons {
		if strings.Contains(strings.ToLower(l.Title), filter) {
			out = append(out, l)
		}
	}
	return out
}

func (m previewModel) contentView() string {
	var b strings.Builder
	lessons := m.visibleLessons()
	if len(lessons) == 0 {
		b.WriteString(blurredStyle.Render("No lessons"))
		b.WriteRune('\n')
	}
	for _, l := range lessons {
		fmt.Fprintf(&b, "%s %s  %5s-%-5s  %s\n",
			l.StartDate.Weekday().String()[:3],
			l.StartDate.Format(rapla.DateLayout),
			l.StartTime, l.EndTime,
			titleStyle.Render(l.Title))
		if l.Room != "" || l.Presenter != "" {
			fmt.Fprintf(&b, "%28s%s\n", "", strings.TrimSpace(l.Room+"  "+l.Presenter))
		}
	}
	b.WriteString(strings.Repeat("-", 35) + "\n")
	total := 0
	for _, t := range m.Tabs {
		total += len(t.Lessons)
	}
	fmt.Fprintf(&b, "%d of %d lessons this week, %d in total\n", len(lessons), len(m.Tabs[m.activeTab].Lessons), total)
	return b.String()
}

func tabBorderWithBottom(left, middle, right string) lipgloss.Border {
	border := lipgloss.RoundedBorder()
	border.BottomLeft = left
	border.Bottom = middle
	border.BottomRight = right
	return border
}

// tabWindow returns the range of tabs to draw, keeping the active one visible.
func (m previewModel) tabWindow() (int, int) {
	if len(m.Tabs) <= NUM_TABS_SWITCH {
		return 0, len(m.Tabs)
	}
	first := m.activeTab - NUM_TABS_SWITCH/2
	if first < 0 {
		first = 0
	}
	if first+NUM_TABS_SWITCH > len(m.Tabs) {
		first = len(m.Tabs) - NUM_TABS_SWITCH
	}
	return first, first + NUM_TABS_SWITCH
}

func (m previewModel) View() string {
	if len(m.Tabs) == 0 {
		return docStyle.Render("No lessons to preview. Press q to quit.")
	}

	doc := strings.Builder{}

	var renderedTabs []string
	first, last := m.tabWindow()
	numTabs := last - first

	for i := first; i < last; i++ {
		var style lipgloss.Style
		isFirst, isLast, isActive := i == first, i == last-1, i == m.activeTab
		if isActive {
			style = activeTabStyle.Copy()
		} else {
			style = inactiveTabStyle.Copy()
		}
		border, _, _, _, _ := style.GetBorder()
		if isFirst && isLast {
			border.BottomLeft = "│"
			border.BottomRight = "│"
			border.Bottom = "─"
		} else if isFirst && isActive {
			border.BottomLeft = "│"
		} else if isFirst && !isActive {
			border.BottomLeft = "├"
		} else if isLast && isActive {
			border.BottomRight = "│"
		} else if isLast && !isActive {
			border.BottomRight = "┤"
		}
		style = style.Border(border).Width(MIN_WIN_WIDTH / numTabs)
		renderedTabs = append(renderedTabs, style.Render(m.Tabs[i].Label))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
	doc.WriteString(row)
	doc.WriteString("\n")
	doc.WriteString(windowStyle.Width(MIN_WIN_WIDTH + (2 * (numTabs - 1))).Render(m.contentView()))
	doc.WriteString("\n")
	if m.filter.Focused() {
		doc.WriteString(focusedStyle.Render(m.filter.View()))
	} else {
		doc.WriteString(m.filter.View())
	}
	doc.WriteString("\n")
	doc.WriteString(helpStyle.Render("tab/[]: switch week • /: filter • enter: export • q: cancel"))
	return docStyle.Render(doc.String())
}

// runPreview shows the lessons and reports whether the user wants them
// exported.
func runPreview(lessons []rapla.Lesson) (bool, error) {
	final, err := tea.NewProgram(initialPreview(lessons)).StartReturningModel()
	if err != nil {
		return false, fmt.Errorf("error running preview: %w", err)
	}
	return final.(previewModel).confirmed, nil
}
