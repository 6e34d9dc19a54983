// Package tui implements the interactive roster menu.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/roster/internal/person"
	"github.com/fyrsmithlabs/roster/internal/registry"
)

// Saver persists the registry. *flatfile.Store implements it.
type Saver interface {
	SaveAll(*registry.Registry) error
}

type screen int

const (
	screenMenu screen = iota
	screenForm
	screenList
	screenPick
)

type menuItem struct {
	key   string
	title string
}

// Model is the BubbleTea model for the menu.
type Model struct {
	reg    *registry.Registry
	store  Saver
	labels person.Labels
	logger *zap.Logger

	screen   screen
	cursor   int
	items    []menuItem
	form     *form
	input    textinput.Model
	pick     []int // registry indices offered for upgrade
	status   string
	err      error
	quitting bool
	saved    bool
}

// Option configures a Model.
type Option func(*Model)

// WithLabels sets the EnrichedPerson labels used in prompts.
func WithLabels(l person.Labels) Option {
	return func(m *Model) {
		if l.Extra1 != "" {
			m.labels.Extra1 = l.Extra1
		}
		if l.Extra2 != "" {
			m.labels.Extra2 = l.Extra2
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewModel creates the menu over reg. Save and quit write through store.
func NewModel(reg *registry.Registry, store Saver, opts ...Option) Model {
	input := textinput.New()
	input.CharLimit = 256
	input.Width = 40

	m := Model{
		reg:    reg,
		store:  store,
		labels: person.DefaultLabels,
		logger: zap.NewNop(),
		input:  input,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.items = []menuItem{
		{"1", "Add person"},
		{"2", "List people"},
		{"3", fmt.Sprintf("Add person with %s and %s", m.labels.Extra1, m.labels.Extra2)},
		{"4", "Add staff member"},
		{"5", "Upgrade a person"},
		{"6", "Save"},
		{"7", "Quit (saves)"},
	}
	return m
}

// Saved reports whether the last quit completed with a successful save.
func (m Model) Saved() bool {
	return m.saved
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.screen == screenForm {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// ctrl+c leaves without saving.
	if key.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.screen {
	case screenForm:
		return m.updateForm(key)
	case screenList:
		m.screen = screenMenu
		return m, nil
	case screenPick:
		return m.updatePick(key)
	default:
		return m.updateMenu(key)
	}
}

func (m Model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil
	case "q":
		return m.quit()
	case "enter":
		return m.choose(m.items[m.cursor].key)
	}
	for i, item := range m.items {
		if key.String() == item.key {
			m.cursor = i
			return m.choose(item.key)
		}
	}
	return m, nil
}

func (m Model) choose(key string) (tea.Model, tea.Cmd) {
	m.status, m.err = "", nil
	switch key {
	case "1":
		return m.openForm(m.personForm())
	case "2":
		if m.reg.Len() == 0 {
			m.status = "No people registered yet."
			return m, nil
		}
		m.screen = screenList
		return m, nil
	case "3":
		return m.openForm(m.enrichedForm())
	case "4":
		return m.openForm(m.staffForm())
	case "5":
		m.pick = m.reg.Indices(registry.NotOfKind(person.KindEnriched))
		if len(m.pick) == 0 {
			m.status = "No people to upgrade."
			return m, nil
		}
		m.cursor = 0
		m.screen = screenPick
		return m, nil
	case "6":
		m.save()
		return m, nil
	case "7":
		return m.quit()
	}
	return m, nil
}

func (m *Model) save() bool {
	if err := m.store.SaveAll(m.reg); err != nil {
		m.err = fmt.Errorf("save failed: %w", err)
		m.logger.Error("save from menu failed", zap.Error(err))
		return false
	}
	m.status = fmt.Sprintf("Saved %d records.", m.reg.Len())
	return true
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if !m.save() {
		return m, nil
	}
	m.saved = true
	m.quitting = true
	return m, tea.Quit
}

func (m Model) updatePick(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.screen = screenMenu
		m.cursor = 0
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.pick)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		index := m.pick[m.cursor]
		m.cursor = 0
		return m.openForm(m.upgradeForm(index))
	}
	if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 && n <= len(m.pick) {
		index := m.pick[n-1]
		m.cursor = 0
		return m.openForm(m.upgradeForm(index))
	}
	return m, nil
}

func (m Model) openForm(f *form) (tea.Model, tea.Cmd) {
	m.form = f
	m.screen = screenForm
	m.err = nil
	m.input.Reset()
	m.input.Placeholder = ""
	m.input.Prompt = f.current().label + ": "
	return m, m.input.Focus()
}

func (m Model) updateForm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.form = nil
		m.screen = screenMenu
		m.status = "Cancelled."
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		return m.submitField()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m Model) submitField() (tea.Model, tea.Cmd) {
	f := m.form
	value := m.input.Value()
	m.input.Reset()

	done, note, err := f.accept(value)
	m.status, m.err = note, err
	if !done {
		m.input.Prompt = f.current().label + ": "
		return m, nil
	}

	status, err := f.submit(f.values, f.repeated.Values())
	m.form = nil
	m.screen = screenMenu
	m.input.Blur()
	m.status, m.err = status, err
	return m, nil
}

// View renders the current screen
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	content += headerStyle.Render(" roster ") + "  " +
		dimStyle.Render(fmt.Sprintf("%d records", m.reg.Len())) + "\n"

	switch m.screen {
	case screenForm:
		content += m.renderForm()
	case screenList:
		content += m.renderList()
	case screenPick:
		content += m.renderPick()
	default:
		content += m.renderMenu()
	}

	if m.err != nil {
		content += "\n" + errorStyle.Render("⚠ "+m.err.Error())
	} else if m.status != "" {
		content += "\n" + successStyle.Render(m.status)
	}

	return containerStyle.Render(content)
}

func (m Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("┃ Menu") + "\n")
	for i, item := range m.items {
		line := fmt.Sprintf("%s. %s", item.key, item.title)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}
	b.WriteString(footer("↑/↓", "move", "enter", "select", "q", "save and quit", "ctrl+c", "quit without saving"))
	return b.String()
}

func (m Model) renderList() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("┃ Registered people") + "\n")

	records := m.reg.All()
	ages := make([]float64, 0, len(records))
	for i, rec := range records {
		b.WriteString(fmt.Sprintf("%s %s\n", dimStyle.Render(fmt.Sprintf("%d.", i+1)), rec.Render()))
		ages = append(ages, float64(rec.Age().Years()))
	}

	counts := m.reg.Counts()
	b.WriteString(sectionStyle.Render("┃ Summary") + "\n")
	for _, k := range person.Kinds {
		b.WriteString(labelStyle.Render("  "+k.String()+": ") + valueStyle.Render(strconv.Itoa(counts[k])) + "\n")
	}
	b.WriteString(labelStyle.Render("  Ages: ") + ageSparkline(ages) + "\n")
	b.WriteString(footer("any key", "back"))
	return b.String()
}

func (m Model) renderPick() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("┃ Choose a person to give %s and %s", m.labels.Extra1, m.labels.Extra2)) + "\n")
	for i, index := range m.pick {
		rec, err := m.reg.Get(index)
		if err != nil {
			continue
		}
		line := fmt.Sprintf("%d. %s", i+1, rec.Render())
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString(footer("↑/↓", "move", "enter", "choose", "esc", "back"))
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("┃ "+m.form.title) + "\n")
	for i, v := range m.form.values {
		b.WriteString(labelStyle.Render("  "+m.form.fields[i].label+": ") + valueStyle.Render(v) + "\n")
	}
	if items := m.form.repeated.Values(); len(items) > 0 {
		b.WriteString(labelStyle.Render("  Subjects: ") + valueStyle.Render(strings.Join(items, ", ")) + "\n")
	}
	b.WriteString(m.input.View() + "\n")
	if m.form.current().repeat {
		b.WriteString(dimStyle.Render("  empty entry finishes") + "\n")
	}
	b.WriteString(footer("enter", "next", "esc", "cancel"))
	return b.String()
}
