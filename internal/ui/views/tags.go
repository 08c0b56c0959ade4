package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/session"
	"github.com/tgienger/todo/internal/ui/keys"
	"github.com/tgienger/todo/internal/ui/styles"
)

type tagItem struct {
	tag  models.Tag
	uses int
}

func (i tagItem) Title() string { return i.tag.Name }
func (i tagItem) Description() string {
	if i.uses == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", i.uses)
}
func (i tagItem) FilterValue() string { return i.tag.Name }

type tagDelegate struct {
	styles *styles.Styles
	width  int
}

func (d tagDelegate) Height() int                               { return 2 }
func (d tagDelegate) Spacing() int                              { return 1 }
func (d tagDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d tagDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	t, ok := item.(tagItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(t.tag.Color)).Render("●")
	title := titleStyle.Render(dot + " " + t.Title())
	desc := descStyle.Render("  " + t.Description())

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// BackToTasks signals to return to the task list
type BackToTasks struct{}

type tagsLoadedMsg struct {
	items []list.Item
}

// TagListView lists the available tags and creates new ones
type TagListView struct {
	sess     *session.Session
	list     list.Model
	delegate *tagDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	creating bool
	loaded   bool
	newName  textinput.Model
	errMsg   string

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewTagListView creates a new tag list view
func NewTagListView(sess *session.Session) *TagListView {
	s := styles.NewStyles()

	newName := textinput.New()
	newName.Placeholder = "Tag name"
	newName.CharLimit = 50

	delegate := &tagDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Tags"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &TagListView{
		sess:     sess,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		newName:  newName,
	}
}

func (v *TagListView) Init() tea.Cmd {
	return v.loadTags
}

func (v *TagListView) loadTags() tea.Msg {
	uses := make(map[string]int)
	for _, task := range v.sess.State().Tasks() {
		for _, tag := range task.Tags {
			uses[tag.ID]++
		}
	}

	tags := v.sess.View().AvailableTags
	items := make([]list.Item, len(tags))
	for i, tag := range tags {
		items[i] = tagItem{tag: tag, uses: uses[tag.ID]}
	}
	return tagsLoadedMsg{items: items}
}

func (v *TagListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		// Use content width (capped at MaxWidth) for internal layout
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case tagsLoadedMsg:
		v.loaded = true
		return v, v.list.SetItems(msg.items)

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.creating {
			return v.updateCreating(msg)
		}

		// Let the list's own filter input see every key while typing
		if v.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			if v.list.FilterState() == list.FilterApplied {
				v.list.ResetFilter()
				return v, nil
			}
			return v, func() tea.Msg { return BackToTasks{} }
		case key.Matches(msg, v.keys.New):
			v.creating = true
			v.errMsg = ""
			v.newName.Reset()
			v.newName.Focus()
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *TagListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		_, _, err := v.sess.CreateTag(v.newName.Value())
		if err != nil {
			if session.IsValidation(err) {
				v.errMsg = "Please enter a tag name"
			} else {
				v.errMsg = err.Error()
			}
			return v, nil
		}
		v.creating = false
		return v, tea.Batch(v.loadTags, func() tea.Msg { return TagsChanged{} })
	}

	var cmd tea.Cmd
	v.newName, cmd = v.newName.Update(msg)
	v.errMsg = ""
	return v, cmd
}

// View renders the view
func (v *TagListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.creating {
		return v.renderCreateForm()
	}

	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderHelp()
	return styles.CenterView(content, v.width, v.height)
}

func (v *TagListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Tags"),
		"",
		s.TitleMuted.Render("Press 'n' to create your first tag"),
		"",
		s.ButtonPrimary.Render(" New Tag "),
		"",
		s.TitleMuted.Render("Esc: back to tasks"),
	)

	// Center within content width, then center that in terminal
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TagListView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	// Dynamic input width based on content width
	inputWidth := clamp(contentWidth-6, 20, 50)

	// The next tag takes the palette color after the existing ones
	next := styles.TagColor(len(v.list.Items()))
	swatch := lipgloss.NewStyle().Foreground(next).Render("●")

	rows := []string{
		s.Title.Render("New Tag"),
		"",
		"Name: " + swatch,
		s.InputFocused.Width(inputWidth).Render(v.newName.View()),
		"",
	}
	if v.errMsg != "" {
		rows = append(rows, s.ErrorText.Render(v.errMsg), "")
	}
	rows = append(rows, s.TitleMuted.Render("Enter: save • Esc: cancel"))

	// Center within content width, then center that in terminal
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TagListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s new • %s filter • %s back • %s quit",
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("esc"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TagListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("n") + "      new tag",
		s.HelpKey.Render("/") + "      filter tags",
		s.HelpKey.Render("esc") + "    back to tasks",
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
