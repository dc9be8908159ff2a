// Package browse is the interactive rankings browser: a split-pane TUI over
// the stored scores for one resume version, with a version picker and a
// loading spinner in front of it.
package browse

import (
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobfit/internal/model"
)

// Data is everything the browse TUI renders for one resume version.
type Data struct {
	Version string
	Scores  []model.JobScore
	// Summaries holds job summary excerpts keyed by job ID.
	Summaries map[int64]string
}

// Lines per job item in the ranked list (title + subtitle + blank separator).
const jobItemHeight = 3

// Right-pane summary excerpts are cut at this many runes; the full summary
// stays available in the detail view.
const excerptLen = 280

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	jobTitleStyle = lipgloss.NewStyle().
			Bold(true)

	jobSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedJobTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")). // bright white
				Background(lipgloss.Color("24"))  // dark blue bg

	selectedJobSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	fitScoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("40")) // green, at or above the fit threshold

	dimScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(16)

	detailValueStyle = lipgloss.NewStyle()

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	sectionDividerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	matchedSkillStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("40"))

	missingSkillStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203"))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

type browseModel struct {
	data          Data
	fitThreshold  float64
	leftViewport  viewport.Model
	rightViewport viewport.Model
	activePane    int // 0=list, 1=detail pane
	cursor        int
	width         int
	height        int
	ready         bool

	view           viewState
	detailViewport viewport.Model

	wantQuit bool
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail(m.width - 8))
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m browseModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "b":
		m.wantQuit = false
		return m, tea.Quit
	case "tab", "left", "right":
		m.activePane = 1 - m.activePane
		m.recalcContent()
		return m, nil
	case "up", "k":
		if m.activePane == 0 {
			m.moveCursor(-1)
			m.recalcContent()
			m.ensureCursorVisible()
			return m, nil
		}
	case "down", "j":
		if m.activePane == 0 {
			m.moveCursor(1)
			m.recalcContent()
			m.ensureCursorVisible()
			return m, nil
		}
	case "o":
		if s, ok := m.selected(); ok && s.URL != "" {
			openURL(s.URL)
		}
		return m, nil
	case "enter":
		return m.openDetailView()
	}

	// Forward other keys (and up/down while the detail pane is active) to
	// the active viewport.
	var cmd tea.Cmd
	if m.activePane == 0 {
		m.leftViewport, cmd = m.leftViewport.Update(msg)
	} else {
		m.rightViewport, cmd = m.rightViewport.Update(msg)
	}
	return m, cmd
}

func (m browseModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		if s, ok := m.selected(); ok && s.URL != "" {
			openURL(s.URL)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *browseModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.data.Scores)-1, 0))
}

func (m *browseModel) ensureCursorVisible() {
	cursorTop := m.cursor * jobItemHeight
	cursorBottom := cursorTop + jobItemHeight - 1

	if cursorTop < m.leftViewport.YOffset {
		m.leftViewport.SetYOffset(cursorTop)
	} else if cursorBottom >= m.leftViewport.YOffset+m.leftViewport.Height {
		m.leftViewport.SetYOffset(cursorBottom - m.leftViewport.Height + 1)
	}
}

func (m browseModel) selected() (model.JobScore, bool) {
	if len(m.data.Scores) == 0 {
		return model.JobScore{}, false
	}
	return m.data.Scores[m.cursor], true
}

func (m browseModel) openDetailView() (tea.Model, tea.Cmd) {
	if _, ok := m.selected(); !ok {
		return m, nil
	}

	m.view = viewDetail
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail(m.width - 8))
	return m, nil
}

func (m *browseModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.leftViewport = viewport.New(paneWidth, paneHeight)
		m.rightViewport = viewport.New(paneWidth, paneHeight)
		m.ready = true
	} else {
		m.leftViewport.Width = paneWidth
		m.leftViewport.Height = paneHeight
		m.rightViewport.Width = paneWidth
		m.rightViewport.Height = paneHeight
	}

	m.recalcContent()
}

func (m *browseModel) recalcContent() {
	m.leftViewport.SetContent(renderRanked(m.data.Scores, m.cursor, m.activePane == 0, m.fitThreshold))
	if s, ok := m.selected(); ok {
		m.rightViewport.SetContent(m.renderScorePane(s, max(m.rightViewport.Width-2, 20)))
	} else {
		m.rightViewport.SetContent("  (no rankings)")
	}
	m.rightViewport.SetYOffset(0)
}

func (m browseModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.view == viewDetail {
		return m.viewDetail()
	}

	return m.viewList()
}

func (m browseModel) viewList() string {
	paneWidth := m.leftViewport.Width

	leftHeader := fmt.Sprintf(" Rankings — resume %s (%d)", m.data.Version, len(m.data.Scores))
	rightHeader := " Fit Detail"

	var leftHeaderRendered, rightHeaderRendered string
	var leftBorder, rightBorder lipgloss.Style

	if m.activePane == 0 {
		leftHeaderRendered = activeHeaderStyle.Render(leftHeader)
		rightHeaderRendered = inactiveHeaderStyle.Render(rightHeader)
		leftBorder = activeBorderStyle.Width(paneWidth)
		rightBorder = inactiveBorderStyle.Width(paneWidth)
	} else {
		leftHeaderRendered = inactiveHeaderStyle.Render(leftHeader)
		rightHeaderRendered = activeHeaderStyle.Render(rightHeader)
		leftBorder = inactiveBorderStyle.Width(paneWidth)
		rightBorder = activeBorderStyle.Width(paneWidth)
	}

	leftPane := leftBorder.Render(m.leftViewport.View())
	rightPane := rightBorder.Render(m.rightViewport.View())

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth+2).Render(leftHeaderRendered),
		" ",
		lipgloss.NewStyle().Width(paneWidth+2).Render(rightHeaderRendered),
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, " ", rightPane)

	fit := 0
	for _, s := range m.data.Scores {
		if s.CompositeScore >= m.fitThreshold {
			fit++
		}
	}
	statusText := fmt.Sprintf(" %d ranked | %d at or above %.2f    ←/→/Tab switch  ↑/↓ cursor  Enter detail  o open URL  Esc back  q quit",
		len(m.data.Scores), fit, m.fitThreshold)
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return headerRow + "\n" + panes + "\n" + statusBar
}

func (m browseModel) viewDetail() string {
	title := detailTitleStyle.Render("Job Fit Detail")

	border := activeBorderStyle.Width(m.width - 2)
	content := border.Render(m.detailViewport.View())

	statusText := " o open URL  esc/backspace back  ↑/↓ scroll  q quit"
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return title + "\n" + content + "\n" + statusBar
}

// renderScorePane is the right-pane summary of the selected job: the scores
// and skills with a short summary excerpt.
func (m browseModel) renderScorePane(s model.JobScore, wrapWidth int) string {
	var b strings.Builder

	b.WriteString(jobTitleStyle.Render(fmt.Sprintf("#%d  %s", s.Rank, s.Title)) + "\n")
	b.WriteString(jobSubtitleStyle.Render(s.Company) + "\n\n")

	b.WriteString("  Composite   " + m.renderScore(s.CompositeScore) + "\n")
	b.WriteString("  Overall     " + m.renderScore(s.OverallSimilarity) + "\n")
	b.WriteString(fmt.Sprintf("  Skill match %.0f%%  (%d hit, %d gap)\n\n",
		s.SkillMatchRatio*100, s.MatchCount(), s.GapCount()))

	if len(s.MatchedSkills) > 0 {
		b.WriteString(matchedSkillStyle.Render("  ✓ "+strings.Join(s.MatchedSkills, ", ")) + "\n")
	}
	if len(s.MissingSkills) > 0 {
		b.WriteString(missingSkillStyle.Render("  ✗ "+strings.Join(s.MissingSkills, ", ")) + "\n")
	}

	if summary := m.data.Summaries[s.JobID]; summary != "" {
		b.WriteByte('\n')
		b.WriteString(bodyStyle.Render(wordWrap(excerpt(summary, excerptLen), wrapWidth)) + "\n")
	}

	return b.String()
}

// renderDetail is the full-screen detail view: everything the store holds
// for the selected job.
func (m browseModel) renderDetail(wrapWidth int) string {
	s, ok := m.selected()
	if !ok {
		return "  (no rankings)"
	}
	wrapWidth = max(wrapWidth, 20)

	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}

	addField("Title", s.Title)
	addField("Company", s.Company)
	addField("Location", s.Location)
	addField("Rank", fmt.Sprintf("#%d of %d", s.Rank, len(m.data.Scores)))
	if !s.DatePosted.IsZero() {
		addField("Posted", s.DatePosted.Format("2006-01-02"))
	}
	addField("URL", s.URL)

	divider := func(label string) string {
		fill := strings.Repeat("─", max(wrapWidth-len(label), 3))
		return sectionDividerStyle.Render(label + fill)
	}

	b.WriteByte('\n')
	b.WriteString(divider("── Scores ") + "\n\n")
	addField("Composite", m.renderScore(s.CompositeScore))
	addField("Overall", m.renderScore(s.OverallSimilarity))
	for _, section := range []string{
		model.SectionFullDescription,
		model.SectionQualifications,
		model.SectionResponsibilities,
		model.SectionSummary,
	} {
		if sim, ok := s.SectionSimilarities[section]; ok {
			addField(section, fmt.Sprintf("%.4f", sim))
		}
	}

	b.WriteByte('\n')
	b.WriteString(divider("── Skills ") + "\n\n")
	addField("Match ratio", fmt.Sprintf("%.0f%%", s.SkillMatchRatio*100))
	if len(s.MatchedSkills) > 0 {
		b.WriteString(detailLabelStyle.Render("Matched"))
		b.WriteString(matchedSkillStyle.Render(strings.Join(s.MatchedSkills, ", ")))
		b.WriteByte('\n')
	}
	if len(s.MissingSkills) > 0 {
		b.WriteString(detailLabelStyle.Render("Missing"))
		b.WriteString(missingSkillStyle.Render(strings.Join(s.MissingSkills, ", ")))
		b.WriteByte('\n')
	}

	if len(s.BestMatches) > 0 {
		b.WriteByte('\n')
		b.WriteString(divider("── Best Resume Matches ") + "\n\n")
		for _, match := range s.BestMatches {
			label := match.Section
			if match.Subsection != "" {
				label += " / " + match.Subsection
			}
			b.WriteString(fmt.Sprintf("  %.4f  %s\n", match.Similarity, jobSubtitleStyle.Render(label)))
			b.WriteString(bodyStyle.Render(indent(wordWrap(match.Text, wrapWidth-10), 10)) + "\n")
		}
	}

	if summary := m.data.Summaries[s.JobID]; summary != "" {
		b.WriteByte('\n')
		b.WriteString(divider("── Job Summary ") + "\n\n")
		b.WriteString(bodyStyle.Render(wordWrap(summary, wrapWidth)) + "\n")
	}

	return b.String()
}

// renderScore formats a score to four decimals, highlighted when it clears
// the fit threshold.
func (m browseModel) renderScore(v float64) string {
	text := fmt.Sprintf("%.4f", v)
	if v >= m.fitThreshold {
		return fitScoreStyle.Render(text)
	}
	return dimScoreStyle.Render(text)
}

func renderRanked(scores []model.JobScore, cursor int, isActive bool, fitThreshold float64) string {
	if len(scores) == 0 {
		return "  (no rankings)"
	}

	var b strings.Builder
	for i, s := range scores {
		isSelected := isActive && i == cursor

		titleSt := jobTitleStyle
		subtitleSt := jobSubtitleStyle
		prefix := "  "
		if isSelected {
			titleSt = selectedJobTitleStyle
			subtitleSt = selectedJobSubtitleStyle
			prefix = "> "
		}

		scoreText := fmt.Sprintf("%.4f", s.CompositeScore)
		var scoreRendered string
		if isSelected {
			scoreRendered = titleSt.Render(scoreText)
		} else if s.CompositeScore >= fitThreshold {
			scoreRendered = fitScoreStyle.Render(scoreText)
		} else {
			scoreRendered = dimScoreStyle.Render(scoreText)
		}

		b.WriteString(prefix)
		b.WriteString(fmt.Sprintf("%2d. ", s.Rank))
		b.WriteString(scoreRendered)
		b.WriteString("  ")
		b.WriteString(titleSt.Render(fmt.Sprintf("%s — %s", s.Company, s.Title)))
		b.WriteByte('\n')

		posted := "n/a"
		if !s.DatePosted.IsZero() {
			posted = s.DatePosted.Format("2006-01-02")
		}
		location := s.Location
		if location == "" {
			location = "n/a"
		}
		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(fmt.Sprintf("    %s · %s", location, posted)))
		b.WriteByte('\n')

		if i < len(scores)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}

func indent(text string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// RunBrowseTUI launches the interactive split-pane rankings browser.
// Returns wantQuit=true if the user pressed q/ctrl+c, false if they pressed
// esc to return to the version picker.
func RunBrowseTUI(data Data, fitThreshold float64) (bool, error) {
	sort.SliceStable(data.Scores, func(i, j int) bool {
		return data.Scores[i].Rank < data.Scores[j].Rank
	})

	m := browseModel{
		data:         data,
		fitThreshold: fitThreshold,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	final := result.(browseModel)
	return final.wantQuit, nil
}
