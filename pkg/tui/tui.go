package tui

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/inktrace/inktrace/pkg/writing"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	focusTypes   = 0
	focusItems   = 1
	focusDetails = 2
)

type model struct {
	types   []writing.ContentType
	items   []writing.WritingItemWithTags
	current *writing.WritingItemWithTags // Item shown in the details column

	columnFocus int // focusTypes, focusItems or focusDetails
	width       int // Current terminal width (for layout)
	height      int // Current terminal height
	err         error

	db         *sql.DB
	dbFilename string

	quitting bool

	typeCursor int // Index of selected content type

	itemCursor       int // Index of selected item
	itemCreating     bool
	itemCreatingErr  string
	itemTitleInput   textinput.Model
	itemDeleting     bool
	deleteConfirmIdx int // 0 = "Yes" selected, 1 = "No"

	// Animation state
	marqueeOffset int
	marqueeTimer  int
}

// Initialize TUI model
func initModel(db *sql.DB) model {
	_, file := getDbPragmaList(db)

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 256

	return model{
		types: []writing.ContentType{},
		items: []writing.WritingItemWithTags{},

		columnFocus: focusTypes,

		db:         db,
		dbFilename: filepath.Base(file),

		itemTitleInput: title,
	}
}

func tick() tea.Cmd {
	return tea.Tick(marqueeTickDuration, func(t time.Time) tea.Msg {
		return t
	})
}

// Execute commands concurrently with no ordering guarantees during initialization
func (m model) Init() tea.Cmd {
	return tea.Batch(listContentTypes(m.db), tick())
}

func (m model) selectedTypeID() string {
	if m.typeCursor < 0 || m.typeCursor >= len(m.types) {
		return ""
	}
	return m.types[m.typeCursor].ID
}

// Processes events like window resize, errors, loaded data, and key presses
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case contentTypesMsg:
		m.types = msg
		if m.typeCursor >= len(m.types) {
			m.typeCursor = 0
		}
		if len(m.types) > 0 {
			return m, listItems(m.db, m.selectedTypeID())
		}
		return m, nil

	case itemsMsg:
		if msg.typeID != m.selectedTypeID() {
			// Stale result for a type the cursor already left
			return m, nil
		}
		m.items = msg.items
		m.current = nil
		if m.itemCursor >= len(m.items) {
			m.itemCursor = len(m.items) - 1
		}
		if m.itemCursor < 0 {
			m.itemCursor = 0
		}
		if len(m.items) == 0 {
			if m.columnFocus != focusTypes {
				m.columnFocus = focusTypes
			}
			return m, nil
		}
		if m.columnFocus != focusTypes {
			return m, getItemDetails(m.db, m.items[m.itemCursor].ID)
		}
		return m, nil

	case itemDetailsMsg:
		m.current = msg.item
		return m, nil

	case itemCreatedMsg:
		// Items are listed newest first, so the new one lands on top
		m.columnFocus = focusItems
		m.itemCursor = 0
		return m, listItems(m.db, m.selectedTypeID())

	case itemDeletedMsg:
		if m.itemCursor > 0 {
			m.itemCursor--
		}
		return m, listItems(m.db, m.selectedTypeID())

	case tea.KeyMsg:
		if m.itemCreating {
			return m.updateCreating(msg)
		}
		if m.itemDeleting {
			return m.updateDeleting(msg)
		}
		return m.updateNavigation(msg)

	case time.Time:
		// Update marquee animation every x ticks (adjust for speed)
		m.marqueeTimer++
		if m.marqueeTimer >= 10 {
			m.marqueeTimer = 0
			m.marqueeOffset++
		}
		return m, tick()
	}

	return m, nil
}

func (m model) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		title := strings.TrimSpace(m.itemTitleInput.Value())
		if title == "" {
			m.itemCreatingErr = "Title cannot be empty"
			return m, nil
		}
		m.itemCreating = false
		m.itemCreatingErr = ""
		m.itemTitleInput.Reset()
		m.itemTitleInput.Blur()
		return m, createItem(m.db, m.selectedTypeID(), title)

	case tea.KeyEsc:
		m.itemCreating = false
		m.itemCreatingErr = ""
		m.itemTitleInput.Reset()
		m.itemTitleInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.itemTitleInput, cmd = m.itemTitleInput.Update(msg)
	return m, cmd
}

func (m model) updateDeleting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.deleteConfirmIdx = 0
	case "down", "j":
		m.deleteConfirmIdx = 1
	case "enter":
		m.itemDeleting = false
		if m.deleteConfirmIdx == 0 && m.itemCursor < len(m.items) {
			id := m.items[m.itemCursor].ID
			m.current = nil
			return m, deleteItem(m.db, id)
		}
	case "esc":
		m.itemDeleting = false
	}
	return m, nil
}

func (m model) updateNavigation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		// Exit alt screen before quitting so the goodbye message displays
		return m, tea.Sequence(tea.ExitAltScreen, tea.Quit)

	case "up", "k":
		if m.columnFocus == focusTypes && m.typeCursor > 0 {
			m.typeCursor--
			m.itemCursor = 0
			return m, listItems(m.db, m.selectedTypeID())
		}
		if m.columnFocus == focusItems && m.itemCursor > 0 {
			m.itemCursor--
			return m, getItemDetails(m.db, m.items[m.itemCursor].ID)
		}

	case "down", "j":
		if m.columnFocus == focusTypes && m.typeCursor < len(m.types)-1 {
			m.typeCursor++
			m.itemCursor = 0
			return m, listItems(m.db, m.selectedTypeID())
		}
		if m.columnFocus == focusItems && m.itemCursor < len(m.items)-1 {
			m.itemCursor++
			return m, getItemDetails(m.db, m.items[m.itemCursor].ID)
		}

	case "right", "l", "enter":
		if m.columnFocus == focusTypes && len(m.items) > 0 {
			m.columnFocus = focusItems
			m.itemCursor = 0
			return m, getItemDetails(m.db, m.items[0].ID)
		}
		if m.columnFocus == focusItems && m.current != nil {
			m.columnFocus = focusDetails
		}

	case "left", "h", "esc":
		if m.columnFocus > focusTypes {
			m.columnFocus--
		}

	case "n":
		if len(m.types) > 0 {
			m.itemCreating = true
			m.itemCreatingErr = ""
			m.itemTitleInput.Reset()
			m.itemTitleInput.Focus()
		}

	case "d":
		if m.columnFocus != focusTypes && len(m.items) > 0 {
			m.deleteConfirmIdx = 1
			m.itemDeleting = true
		}

	case "r":
		return m, listContentTypes(m.db)
	}

	return m, nil
}

// Assembles the UI string for each frame
func (m model) View() string {
	if m.quitting {
		return "Closing inktrace. Everything is saved.\n"
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	titleBar := titleStyle.Width(m.width).Render("Inktrace - writing organizer")

	leftWidth, middleWidth, rightWidth := m.dynamicColumnWidth()
	m.itemTitleInput.Width = rightWidth - bordersAndPaddingWidth
	panelHeight := m.height - 3

	leftPanel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(0, 2).
		Width(leftWidth).Height(panelHeight).
		Render(m.viewTypes(leftWidth))

	middlePanel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(0, 2).
		Width(middleWidth).Height(panelHeight).
		Render(m.viewItems(middleWidth))

	rightPanel := lipgloss.NewStyle().Padding(0, 2).
		Width(rightWidth).Height(panelHeight).
		Render(m.viewDetails(rightWidth))

	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, middlePanel, rightPanel)

	footerText := "\n↑/↓ to navigate • →/enter to open • n to create • d to delete • r to reload • q to quit"
	footerBar := footerStyle.Width(m.width).Render(footerText)

	return titleBar + "\n\n" + columns + footerBar
}

func (m model) viewTypes(width int) string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Width(width - bordersAndPaddingWidth).Render("  Types"))
	b.WriteString("\n\n")

	if len(m.types) == 0 {
		b.WriteString("No content types.\n")
	}
	availableWidth := width - 4 - bordersAndPaddingWidth - 1
	for i, ct := range m.types {
		pointer := "  "
		itemStyle := inactiveStyle
		name := truncate(ct.Name, availableWidth)
		if i == m.typeCursor {
			itemStyle = selectedStyle
			if m.columnFocus == focusTypes {
				pointer = "> "
				name = m.marqueeText(ct.Name, availableWidth)
			}
		}
		b.WriteString(pointer + typeSwatch(ct.Color) + itemStyle.Render(name) + "\n")
	}

	var databaseStatus int
	if m.dbFilename != "" {
		databaseStatus = 1
	}
	b.WriteString(fmt.Sprintf("\n\nDatabase file: %v\n",
		TextStatusColorize(m.dbFilename, databaseStatus)))
	return b.String()
}

func (m model) viewItems(width int) string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Width(width - bordersAndPaddingWidth).Render("  Writing"))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString("  Nothing here yet. Press 'n' to write.\n")
		return b.String()
	}

	availableWidth := width - 2 - bordersAndPaddingWidth - 1
	for i, item := range m.items {
		pointer := "  "
		itemStyle := inactiveStyle
		if i == m.itemCursor && m.columnFocus != focusTypes {
			if m.columnFocus == focusItems {
				pointer = "> "
			}
			itemStyle = selectedStyle
		}
		b.WriteString(pointer + itemStyle.Render(truncate(item.Title, availableWidth)) + "\n")
	}
	return b.String()
}

func (m model) viewDetails(width int) string {
	var b strings.Builder

	subtitle := "Details"
	switch {
	case m.itemCreating:
		subtitle = "New Writing"
	case m.itemDeleting:
		subtitle = "Delete Writing"
	}
	b.WriteString(subtitleStyle.Width(width - bordersAndPaddingWidth).Render(subtitle))
	b.WriteString("\n\n")

	switch {
	case m.itemCreating:
		typeName := ""
		if m.typeCursor < len(m.types) {
			typeName = m.types[m.typeCursor].Name
		}
		b.WriteString(labelStyle.Render("Type: ") + typeName + "\n")
		b.WriteString(labelStyle.Render("Title: ") + m.itemTitleInput.View() + "\n\n")
		b.WriteString("(enter to submit, esc to cancel)")
		if m.itemCreatingErr != "" {
			b.WriteString("\n\n" + errorStyle.Render(m.itemCreatingErr) + "\n")
		}

	case m.itemDeleting && m.itemCursor < len(m.items):
		b.WriteString("Title: " + errorStyle.Render(m.items[m.itemCursor].Title) + "\n\n")
		b.WriteString(renderConfirm(m.deleteConfirmIdx))
		b.WriteString("(enter to confirm, esc to cancel, up/down to switch)")

	case m.current != nil:
		item := m.current
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(labelStyle.Render("Title: ")+inactiveStyle.Render(item.Title)) + "\n\n")

		names := make([]string, 0, len(item.Tags))
		for _, tag := range item.Tags {
			names = append(names, "#"+tag.Name)
		}
		b.WriteString(labelStyle.Render("Tags: ") + tagStyle.Render(joinTagNames(names)) + "\n")

		if item.CreatedTime != nil {
			b.WriteString(labelStyle.Render("Written: ") + *item.CreatedTime + "\n")
		}
		b.WriteString(labelStyle.Render("Updated: ") + item.UpdatedAt + "\n")
		if item.Background != nil {
			b.WriteString(labelStyle.Render("Background: ") + *item.Background + "\n")
		}
		if item.Notes != nil {
			b.WriteString(labelStyle.Render("Notes: ") + *item.Notes + "\n")
		}
		if item.Content != nil {
			b.WriteString("\n" + inactiveStyle.Width(width-bordersAndPaddingWidth).Render(*item.Content))
		}

	default:
		b.WriteString("Select a piece of writing to view details.")
	}
	return b.String()
}

// Create and start the Bubble Tea TUI
func ShowTUI(db *sql.DB) error {
	m := initModel(db)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
