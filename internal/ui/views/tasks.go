package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/session"
	"github.com/tgienger/todo/internal/ui/keys"
	"github.com/tgienger/todo/internal/ui/styles"
)

// DateLayout is the format due dates are typed in
const DateLayout = "2006-01-02"

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// ParseDueDate parses a typed due date. An empty string clears the date.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("due date must look like %s", DateLayout)
	}
	return &t, nil
}

// nextFilter cycles all -> active -> completed -> all
func nextFilter(f models.StatusFilter) models.StatusFilter {
	switch f {
	case models.FilterAll:
		return models.FilterActive
	case models.FilterActive:
		return models.FilterCompleted
	default:
		return models.FilterAll
	}
}

// FocusArea represents which part of the UI has focus
type FocusArea int

const (
	FocusSearchInput FocusArea = iota
	FocusTaskList
)

// formMode is the single-line form currently open, if any
type formMode int

const (
	formNone formMode = iota
	formNewTask
	formEditTitle
	formDueDate
)

// ShowTagList signals to switch to the tag manager
type ShowTagList struct{}

// TagsChanged signals that the available tags changed elsewhere
type TagsChanged struct{}

// TaskListView shows the derived task list and issues commands to the session
type TaskListView struct {
	sess   *session.Session
	snap   session.Snapshot
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	// UI state
	focus       FocusArea
	cursor      int
	scrollY     int
	searchInput textinput.Model

	// Task creation/editing
	form         formMode
	formTitle    textinput.Model
	formDue      textinput.Model
	formFocusIdx int // 0=title, 1=due
	formTaskID   string
	formErr      string

	// Tag assignment mode
	assigningTags   bool
	assignTagCursor int
	assigningTaskID string

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	showStats     bool
	showHelpPopup bool
}

// NewTaskListView creates a new task list view
func NewTaskListView(sess *session.Session) *TaskListView {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	formTitle := textinput.New()
	formTitle.Placeholder = "Add a new task..."
	formTitle.CharLimit = 200

	formDue := textinput.New()
	formDue.Placeholder = DateLayout + " (optional)"
	formDue.CharLimit = len(DateLayout)

	return &TaskListView{
		sess:        sess,
		snap:        sess.View(),
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		focus:       FocusTaskList,
		searchInput: search,
		formTitle:   formTitle,
		formDue:     formDue,
	}
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	return nil
}

// Reload re-derives the view from the session
func (v *TaskListView) Reload() {
	v.refresh(v.sess.View())
}

func (v *TaskListView) refresh(snap session.Snapshot) {
	v.snap = snap
	if v.cursor >= len(v.snap.VisibleTasks) {
		v.cursor = max(0, len(v.snap.VisibleTasks)-1)
	}
	v.ensureVisible()
}

func (v *TaskListView) selected() (models.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(v.snap.VisibleTasks) {
		return models.Task{}, false
	}
	return v.snap.VisibleTasks[v.cursor], true
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ensureVisible()
		return v, nil

	case TagsChanged:
		v.Reload()
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.form != formNone {
			return v.updateForm(msg)
		}

		if v.assigningTags {
			return v.updateAssigningTags(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle search input typing first - don't process hotkeys while typing
	if v.focus == FocusSearchInput {
		switch {
		case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
			v.searchInput.Blur()
			v.focus = FocusTaskList
			return v, nil
		default:
			var cmd tea.Cmd
			v.searchInput, cmd = v.searchInput.Update(msg)
			v.cursor = 0
			v.scrollY = 0
			v.refresh(v.sess.SetSearchQuery(v.searchInput.Value()))
			return v, cmd
		}
	}

	task, hasTask := v.selected()

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		if v.searchInput.Value() != "" {
			v.searchInput.Reset()
			v.refresh(v.sess.SetSearchQuery(""))
		}
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.snap.VisibleTasks)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.MoveUp):
		if hasTask && v.cursor > 0 {
			v.refresh(v.sess.Reorder(v.cursor, v.cursor-1))
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.MoveDown):
		if hasTask && v.cursor < len(v.snap.VisibleTasks)-1 {
			v.refresh(v.sess.Reorder(v.cursor, v.cursor+1))
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		if hasTask {
			v.refresh(v.sess.ToggleTask(task.ID))
		}
		return v, nil

	case key.Matches(msg, v.keys.Priority):
		if hasTask {
			v.refresh(v.sess.SetPriority(task.ID, task.Priority.Next()))
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		return v, v.startForm(formNewTask, models.Task{})

	case key.Matches(msg, v.keys.Edit):
		if hasTask {
			return v, v.startForm(formEditTitle, task)
		}
		return v, nil

	case key.Matches(msg, v.keys.DueDate):
		if hasTask {
			return v, v.startForm(formDueDate, task)
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if hasTask {
			v.confirmingDelete = true
			v.deleteTargetID = task.ID
			v.deleteTargetName = task.Title
		}
		return v, nil

	case key.Matches(msg, v.keys.Tags):
		if hasTask {
			v.assigningTags = true
			v.assignTagCursor = 0
			v.assigningTaskID = task.ID
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.focus = FocusSearchInput
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Filter):
		v.cursor = 0
		v.scrollY = 0
		v.refresh(v.sess.SetStatusFilter(nextFilter(v.snap.Filter)))
		return v, nil

	case key.Matches(msg, v.keys.Stats):
		v.showStats = !v.showStats
		return v, nil

	case key.Matches(msg, v.keys.TagList):
		return v, func() tea.Msg { return ShowTagList{} }

	case key.Matches(msg, v.keys.Help):
		// Show help popup (useful at narrow widths)
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.refresh(v.sess.DeleteTask(v.deleteTargetID))
		v.confirmingDelete = false
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) startForm(mode formMode, task models.Task) tea.Cmd {
	v.form = mode
	v.formTaskID = task.ID
	v.formErr = ""
	v.formFocusIdx = 0
	v.formTitle.Reset()
	v.formDue.Reset()

	switch mode {
	case formEditTitle:
		v.formTitle.SetValue(task.Title)
	case formDueDate:
		v.formFocusIdx = 1
		if task.DueDate != nil {
			v.formDue.SetValue(task.DueDate.In(time.Local).Format(DateLayout))
		}
	}
	v.updateFormFocus()
	return textinput.Blink
}

func (v *TaskListView) updateFormFocus() {
	v.formTitle.Blur()
	v.formDue.Blur()
	if v.formFocusIdx == 0 {
		v.formTitle.Focus()
	} else {
		v.formDue.Focus()
	}
}

func (v *TaskListView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.form = formNone
		return v, nil

	case key.Matches(msg, v.keys.Tab), msg.String() == "shift+tab":
		if v.form == formNewTask {
			v.formFocusIdx = 1 - v.formFocusIdx
			v.updateFormFocus()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		v.submitForm()
		return v, nil
	}

	var cmd tea.Cmd
	if v.formFocusIdx == 0 {
		v.formTitle, cmd = v.formTitle.Update(msg)
	} else {
		v.formDue, cmd = v.formDue.Update(msg)
	}
	// Typing clears the previous validation message
	v.formErr = ""
	return v, cmd
}

func (v *TaskListView) submitForm() {
	switch v.form {
	case formNewTask:
		due, err := ParseDueDate(v.formDue.Value())
		if err != nil {
			v.formErr = err.Error()
			return
		}
		snap, err := v.sess.AddTask(v.formTitle.Value(), due)
		if err != nil {
			v.formErr = formError(err)
			return
		}
		v.refresh(snap)
		v.cursor = 0
		v.scrollY = 0

	case formEditTitle:
		snap, err := v.sess.EditTaskTitle(v.formTaskID, v.formTitle.Value())
		if err != nil {
			v.formErr = formError(err)
			return
		}
		v.refresh(snap)

	case formDueDate:
		due, err := ParseDueDate(v.formDue.Value())
		if err != nil {
			v.formErr = err.Error()
			return
		}
		v.refresh(v.sess.SetDueDate(v.formTaskID, due))
	}
	v.form = formNone
}

func formError(err error) string {
	if session.IsValidation(err) {
		return "Please enter a task"
	}
	return err.Error()
}

func (v *TaskListView) updateAssigningTags(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	task, ok := v.sess.State().Task(v.assigningTaskID)
	if !ok {
		v.assigningTags = false
		return v, nil
	}
	tags := v.snap.AvailableTags

	switch {
	case key.Matches(msg, v.keys.Back):
		v.assigningTags = false
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.assignTagCursor > 0 {
			v.assignTagCursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.assignTagCursor < len(tags)-1 {
			v.assignTagCursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Toggle):
		if v.assignTagCursor >= len(tags) {
			return v, nil
		}
		target := tags[v.assignTagCursor].ID

		var tagIDs []string
		for _, t := range task.Tags {
			if t.ID != target {
				tagIDs = append(tagIDs, t.ID)
			}
		}
		if !task.HasTag(target) {
			tagIDs = append(tagIDs, target)
		}
		v.refresh(v.sess.SetTags(task.ID, tagIDs))
		return v, nil

	case key.Matches(msg, v.keys.TagList):
		v.assigningTags = false
		return v, func() tea.Msg { return ShowTagList{} }
	}

	return v, nil
}

func (v *TaskListView) ensureVisible() {
	visibleItems := v.visibleItems()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	}
	if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
	v.scrollY = max(0, v.scrollY)
}

func (v *TaskListView) visibleItems() int {
	// Each task item is 2 lines (title + details) + 1 margin = 3 lines
	reserved := 12
	if v.showStats {
		reserved += 6
	}
	availableHeight := max(v.height-reserved, 3)
	return max(availableHeight/3, 1)
}

// View renders the view
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.form != formNone {
		return v.renderForm()
	}

	if v.assigningTags {
		return v.renderTagAssignment()
	}

	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")

	if v.showStats {
		b.WriteString(v.renderStats())
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderTaskList())

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	isNarrow := contentWidth < 60

	searchStyle := s.Input
	if v.focus == FocusSearchInput {
		searchStyle = s.InputFocused
	}
	searchWidth := clamp(contentWidth-8, 10, 30)
	searchBox := searchStyle.Width(searchWidth).Render(v.searchInput.View())

	filters := []struct {
		value models.StatusFilter
		label string
		count int
	}{
		{models.FilterAll, "All", v.snap.Counts.All},
		{models.FilterActive, "Active", v.snap.Counts.Active},
		{models.FilterCompleted, "Completed", v.snap.Counts.Completed},
	}
	var buttons []string
	for _, f := range filters {
		style := s.FilterButton
		if v.snap.Filter == f.value {
			style = s.ButtonPrimary
		}
		buttons = append(buttons, style.Render(fmt.Sprintf("%s %d", f.label, f.count)))
	}
	filterBar := lipgloss.JoinHorizontal(lipgloss.Center, buttons...)

	title := s.Title.Render("Tasks")

	var header string
	if isNarrow {
		header = lipgloss.JoinVertical(lipgloss.Left, searchBox, filterBar)
	} else {
		header = lipgloss.JoinHorizontal(lipgloss.Center, searchBox, "  ", filterBar)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, header)
}

func (v *TaskListView) renderStats() string {
	s := v.styles
	st := v.snap.Statistics

	progress := lipgloss.JoinVertical(lipgloss.Left,
		s.StatLabel.Render("Progress ")+s.StatValue.Render(fmt.Sprintf("%.0f%%", st.CompletionRate)),
		styles.ProgressBar(st.CompletionRate, 16),
		s.StatLabel.Render(fmt.Sprintf("%d completed • %d active", st.Completed, st.Active)),
	)

	priorities := lipgloss.JoinVertical(lipgloss.Left,
		s.StatLabel.Render("By Priority"),
		lipgloss.NewStyle().Foreground(styles.PriorityColor(models.PriorityHigh)).Render(fmt.Sprintf("high   %d", st.Priorities.High)),
		lipgloss.NewStyle().Foreground(styles.PriorityColor(models.PriorityMedium)).Render(fmt.Sprintf("medium %d", st.Priorities.Medium)),
		lipgloss.NewStyle().Foreground(styles.PriorityColor(models.PriorityLow)).Render(fmt.Sprintf("low    %d", st.Priorities.Low)),
	)

	due := lipgloss.JoinVertical(lipgloss.Left,
		s.StatLabel.Render("Due Dates"),
		s.TaskDue.Render(fmt.Sprintf("due soon %d", st.DueSoon)),
		s.TaskOverdue.Render(fmt.Sprintf("overdue  %d", st.Overdue)),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.StatCard.Render(progress),
		s.StatCard.Render(priorities),
		s.StatCard.Render(due),
	)
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles
	tasks := v.snap.VisibleTasks

	if len(tasks) == 0 {
		if v.snap.Query != "" || v.snap.Filter != models.FilterAll {
			return s.TitleMuted.Render("No matching tasks.")
		}
		return s.TitleMuted.Render("No tasks yet. Press 'n' to add one!")
	}

	var items []string
	endIdx := min(v.scrollY+v.visibleItems(), len(tasks))

	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(tasks[i], i == v.cursor && v.focus == FocusTaskList))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	checkbox := "[ ]"
	if task.Completed {
		checkbox = "[x]"
	}
	priority := lipgloss.NewStyle().Foreground(styles.PriorityColor(task.Priority)).Render("●")

	title := task.Title
	if task.Completed {
		title = s.TaskCompleted.Render(title)
	}
	titleLine := checkbox + " " + priority + " " + title

	// Details line: due date then tags
	var details []string
	if task.DueDate != nil {
		label := "due " + task.DueDate.In(time.Local).Format("Jan 02")
		if !task.Completed && task.DueDate.Before(time.Now()) {
			details = append(details, s.TaskOverdue.Render(label))
		} else {
			details = append(details, s.TaskDue.Render(label))
		}
	}
	for _, tag := range task.Tags {
		details = append(details, s.Tag.Foreground(lipgloss.Color(tag.Color)).Render("#"+tag.Name))
	}
	detailLine := strings.Join(details, " ")
	if detailLine == "" {
		detailLine = s.TitleMuted.Render("no tags")
	}

	lineStyle := s.ListItem
	if selected {
		lineStyle = s.ListSelected
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lineStyle.Width(width).Render(titleLine),
		lineStyle.Width(width).Render("    "+detailLine),
	) + "\n"
}

func (v *TaskListView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	var formTitle string
	switch v.form {
	case formNewTask:
		formTitle = "New Task"
	case formEditTitle:
		formTitle = "Edit Task"
	case formDueDate:
		formTitle = "Due Date"
	}

	titleStyle := s.Input
	dueStyle := s.Input
	if v.formFocusIdx == 0 {
		titleStyle = s.InputFocused
	} else {
		dueStyle = s.InputFocused
	}

	rows := []string{s.Title.Render(formTitle), ""}
	if v.form != formDueDate {
		rows = append(rows, "Title:", titleStyle.Width(inputWidth).Render(v.formTitle.View()), "")
	}
	if v.form != formEditTitle {
		rows = append(rows, "Due:", dueStyle.Width(inputWidth).Render(v.formDue.View()), "")
	}
	if v.formErr != "" {
		rows = append(rows, s.ErrorText.Render(v.formErr), "")
	}
	rows = append(rows, s.TitleMuted.Render("Enter: save • Tab: next • Esc: cancel"))

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderTagAssignment() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	task, ok := v.sess.State().Task(v.assigningTaskID)
	if !ok {
		return ""
	}

	var items []string
	if len(v.snap.AvailableTags) == 0 {
		items = append(items, s.TitleMuted.Render("No tags yet. Press 'T' to create one."))
	}
	for i, tag := range v.snap.AvailableTags {
		itemStyle := s.ListItem
		if i == v.assignTagCursor {
			itemStyle = s.ListSelected
		}

		checkbox := "[ ]"
		if task.HasTag(tag.ID) {
			checkbox = "[x]"
		}

		tagColor := lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color))
		items = append(items, itemStyle.Render(checkbox+" "+tagColor.Render("●")+" "+tag.Name))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Tags: "+task.Title),
		"",
		lipgloss.JoinVertical(lipgloss.Left, items...),
		"",
		s.TitleMuted.Render("Space: toggle • T: manage tags • Esc: done"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}

	return v.styles.Help.Render(
		fmt.Sprintf("%s new • %s done • %s edit • %s del • %s search • %s filter • %s move • %s stats • %s quit",
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("f"),
			v.styles.HelpKey.Render("J/K"),
			v.styles.HelpKey.Render("s"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("n") + "      new task",
		s.HelpKey.Render("e") + "      edit title",
		s.HelpKey.Render("space") + "  toggle done",
		s.HelpKey.Render("p") + "      cycle priority",
		s.HelpKey.Render("D") + "      set due date",
		s.HelpKey.Render("t") + "      assign tags",
		s.HelpKey.Render("T") + "      manage tags",
		s.HelpKey.Render("d") + "      delete task",
		s.HelpKey.Render("J/K") + "    move down/up",
		s.HelpKey.Render("/") + "      search",
		s.HelpKey.Render("f") + "      cycle filter",
		s.HelpKey.Render("s") + "      statistics",
		s.HelpKey.Render("esc") + "    clear search",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}
