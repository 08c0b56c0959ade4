package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/todo/internal/session"
	"github.com/tgienger/todo/internal/ui/views"
	"go.uber.org/zap"
)

// Currently active view
type View int

const (
	ViewTasks View = iota
	ViewTags
)

type App struct {
	sess        *session.Session
	logger      *zap.Logger
	currentView View
	taskList    *views.TaskListView
	tagList     *views.TagListView
	width       int
	height      int
}

// Creates a new application over an opened session
func NewApp(sess *session.Session, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		sess:        sess,
		logger:      logger,
		currentView: ViewTasks,
		taskList:    views.NewTaskListView(sess),
		tagList:     views.NewTagListView(sess),
	}
}

func (a *App) Init() tea.Cmd {
	return a.taskList.Init()
}

func (a *App) resize() tea.Cmd {
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: a.width, Height: a.height}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Keep the inactive view sized for when it is shown
		a.taskList.Update(msg)
		a.tagList.Update(msg)
		return a, nil

	case views.ShowTagList:
		a.currentView = ViewTags
		a.logger.Debug("switching view", zap.String("view", "tags"))
		return a, tea.Batch(a.tagList.Init(), a.resize())

	case views.BackToTasks:
		a.currentView = ViewTasks
		a.logger.Debug("switching view", zap.String("view", "tasks"))
		a.taskList.Reload()
		return a, a.resize()

	case views.TagsChanged:
		// Delivered to the task list whichever view is active
		_, cmd := a.taskList.Update(msg)
		return a, cmd

	case error:
		a.logger.Error("ui error", zap.Error(msg))
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewTasks:
		_, cmd = a.taskList.Update(msg)
	case ViewTags:
		_, cmd = a.tagList.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	if a.currentView == ViewTags {
		return a.tagList.View()
	}
	return a.taskList.View()
}
