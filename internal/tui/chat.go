// internal/tui/chat.go
// Package tui provides the interactive terminal chat over the assistant.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/pangyo-qna/kbqa/internal/appconfig"
	"github.com/pangyo-qna/kbqa/internal/assistant"
	"github.com/pangyo-qna/kbqa/internal/reply"
	"github.com/pangyo-qna/kbqa/internal/util"
)

// viewState represents the current screen of the application.
type viewState int

const (
	// viewChat is the conversation screen.
	viewChat viewState = iota
	// viewBrowse lists corpus questions; enter asks the selected one.
	viewBrowse
)

// chatMessage is one rendered turn.
type chatMessage struct {
	ID       string
	Role     string
	Content  string
	Sources  []string
	Fallback bool
}

// model is the main application model for the Bubble Tea UI.
type model struct {
	ctx              context.Context
	assistant        *assistant.Assistant
	config           *appconfig.Config
	state            viewState
	isLoading        bool
	err              error
	entryList        list.Model
	textArea         textarea.Model
	viewport         viewport.Model
	spinner          spinner.Model
	chatHistory      []chatMessage
	width, height    int
	requestStartTime time.Time
}

// item represents a selectable corpus question.
type item struct {
	title string
	desc  string
}

// Title returns the title of the list item.
func (i item) Title() string { return i.title }

// Description returns the category of the question.
func (i item) Description() string { return i.desc }

// FilterValue returns the title of the item, used for filtering.
func (i item) FilterValue() string { return i.title }

// replyMsg carries a finished assistant reply.
type replyMsg struct{ resp assistant.Response }

// tickMsg is a message sent at regular intervals while waiting for a reply.
type tickMsg time.Time

// initialModel creates and initializes a new model with default values.
func initialModel(ctx context.Context, cfg *appconfig.Config, a *assistant.Assistant) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "학교에 대해 궁금한 점을 입력하세요..."
	ta.Focus()
	ta.Prompt = "질문: "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	entries := a.Engine().Index().Entries()
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = item{title: e.Question, desc: e.Category}
	}
	entryList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	entryList.Title = "자주 묻는 질문"

	return &model{
		ctx:       ctx,
		assistant: a,
		config:    cfg,
		state:     viewChat,
		spinner:   s,
		textArea:  ta,
		entryList: entryList,
		viewport:  viewport.New(100, 5),
	}
}

// turns converts the visible history into assistant turns.
func turns(history []chatMessage) []reply.Turn {
	out := make([]reply.Turn, 0, len(history))
	for _, msg := range history {
		out = append(out, reply.Turn{Role: msg.Role, Content: msg.Content})
	}
	return out
}

// replyCmd asks the assistant in the background.
func replyCmd(ctx context.Context, a *assistant.Assistant, question string, history []reply.Turn) tea.Cmd {
	return func() tea.Msg {
		return replyMsg{resp: a.Reply(ctx, question, history)}
	}
}

// tickCmd creates a Bubble Tea command that sends a tickMsg at a regular interval.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the Bubble Tea model and returns a command to start the spinner animation.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// ask records question and starts a reply.
func (m *model) ask(question string) tea.Cmd {
	history := turns(m.chatHistory)
	m.chatHistory = append(m.chatHistory, chatMessage{ID: uuid.NewString(), Role: "user", Content: question})
	m.requestStartTime = time.Now()
	m.isLoading = true
	m.err = nil
	return tea.Batch(m.spinner.Tick, replyCmd(m.ctx, m.assistant, question, history), tickCmd())
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.isLoading {
				return m, nil
			}
			if m.state == viewChat {
				m.state = viewBrowse
			} else {
				m.state = viewChat
				m.textArea.Focus()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.entryList.SetSize(msg.Width-2, msg.Height-4)
		m.textArea.SetWidth(msg.Width - 3)
		headerHeight := 2
		footerHeight := 3
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight

	case replyMsg:
		m.isLoading = false
		m.chatHistory = append(m.chatHistory, chatMessage{
			ID:       msg.resp.RequestID,
			Role:     "assistant",
			Content:  msg.resp.Reply,
			Sources:  msg.resp.Sources,
			Fallback: msg.resp.Fallback,
		})
		m.textArea.Focus()
		m.viewport.GotoBottom()
		return m, nil

	case tickMsg:
		if m.isLoading {
			return m, tickCmd()
		}
		return m, nil
	}

	switch m.state {
	case viewBrowse:
		m.entryList, cmd = m.entryList.Update(msg)
		cmds = append(cmds, cmd)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" && m.entryList.FilterState() != list.Filtering {
			if selected, ok := m.entryList.SelectedItem().(item); ok {
				m.state = viewChat
				cmds = append(cmds, m.ask(selected.title))
			}
		}

	case viewChat:
		if m.isLoading {
			break
		}
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

		m.textArea, cmd = m.textArea.Update(msg)
		cmds = append(cmds, cmd)

		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			userInput := strings.TrimSpace(m.textArea.Value())
			if userInput != "" {
				m.textArea.Reset()
				cmds = append(cmds, m.ask(userInput))
			}
		}
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application's UI based on the current state of the model.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	switch m.state {
	case viewBrowse:
		return lipgloss.NewStyle().Margin(1, 2).Render(m.entryList.View())
	case viewChat:
		return m.chatView()
	default:
		return "Unknown state"
	}
}

// chatView renders the header, the conversation and the input area.
func (m *model) chatView() string {
	var builder strings.Builder

	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	badgeStyle := lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("0")).Padding(0, 1).MarginLeft(1)

	generator := appconfig.GeneratorNone
	if m.config != nil {
		generator = m.config.GeneratorType()
	}
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(fmt.Sprintf("Corpus: %d entries", m.assistant.Engine().Index().Len())),
		badgeStyle.Render("Generator: "+generator),
	)
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(" (tab to browse questions, esc to quit)")
	builder.WriteString(status + help + "\n\n")

	var historyBuilder strings.Builder
	userStyle := lipgloss.NewStyle().Bold(true)
	assistantStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	for _, msg := range m.chatHistory {
		var role string
		if msg.Role == "assistant" {
			role = assistantStyle.Render("Assistant: ")
		} else {
			role = userStyle.Render("You: ")
		}
		width := m.width - lipgloss.Width(role) - 2
		content := util.WrapToWidth(msg.Content, width)
		historyBuilder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, role, content) + "\n")
		if msg.Role == "assistant" && m.config != nil && m.config.Debug {
			meta := fmt.Sprintf("  >>> [id: %s] [sources: %s] [fallback: %v]", msg.ID, strings.Join(msg.Sources, ", "), msg.Fallback)
			historyBuilder.WriteString(metaStyle.Render(util.TruncateWidth(meta, util.Max(m.width-2, 1))) + "\n")
		}
	}

	m.viewport.SetContent(historyBuilder.String())
	builder.WriteString(m.viewport.View())

	if m.isLoading {
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		builder.WriteString("\n" + m.spinner.View() + fmt.Sprintf(" 답변을 찾는 중... %ss", timer))
	} else {
		builder.WriteString("\n" + m.textArea.View())
	}

	return builder.String()
}

// Start runs the interactive chat until the user quits.
func Start(ctx context.Context, cfg *appconfig.Config, a *assistant.Assistant) error {
	if a == nil {
		return fmt.Errorf("tui: no assistant configured")
	}
	m := initialModel(ctx, cfg, a)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
