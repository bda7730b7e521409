package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	allTypesLabel = "All Types"
	pickerWidth   = 30
	pickerMaxRows = 12
)

// categoryOption is one row in the picker. The empty value means "any".
type categoryOption struct {
	value string
}

func (o categoryOption) Title() string {
	if o.value == "" {
		return allTypesLabel
	}
	return titleCase(o.value)
}

func (o categoryOption) Description() string { return "" }
func (o categoryOption) FilterValue() string { return o.value }

// categoryLabel is how the filter bar names a category choice.
func categoryLabel(category string) string {
	return categoryOption{value: category}.Title()
}

// picker is the modal category chooser.
type picker struct {
	list list.Model
}

// newPicker lists "All Types" followed by categories, with current selected.
func newPicker(categories []string, current string, height int) picker {
	items := make([]list.Item, 0, len(categories)+1)
	items = append(items, categoryOption{})
	selected := 0
	for i, c := range categories {
		items = append(items, categoryOption{value: c})
		if c == current {
			selected = i + 1
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	rows := min(len(items), pickerMaxRows)
	// Title and pagination take the extra lines.
	l := list.New(items, delegate, pickerWidth, min(rows+6, max(height-6, 8)))
	l.Title = "Select Type"
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(len(items) > rows)
	l.KeyMap.Quit.SetEnabled(false)
	l.Select(selected)
	return picker{list: l}
}

// update handles a key while the picker is open. chosen is set when the
// user confirms a row; done reports that the picker should close.
func (p picker) update(msg tea.KeyMsg) (next picker, chosen *string, done bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return p, nil, true, nil
	case "enter":
		if opt, ok := p.list.SelectedItem().(categoryOption); ok {
			v := opt.value
			return p, &v, true, nil
		}
		return p, nil, true, nil
	}
	p.list, cmd = p.list.Update(msg)
	return p, nil, false, cmd
}

func (p picker) view(width, height int) string {
	box := Picker.Render(p.list.View() + "\n" + PickerHint.Render("enter select • esc close"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
