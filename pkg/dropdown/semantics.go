package dropdown

import "github.com/marcus/markselect/internal/form"

// Role is an accessibility role.
type Role string

const (
	RoleCombobox Role = "combobox"
	RoleButton   Role = "button"
	RoleListbox  Role = "listbox"
	RoleOption   Role = "option"
)

// Node is one element of the component's accessibility tree, for screen
// readers and UI tests.
type Node struct {
	Role     Role
	Label    string
	HasPopup Role // combobox only
	Expanded bool // combobox only
	Selected bool // option only
	Focused  bool
	Children []Node
}

// Semantics describes the current frame: a combobox wrapping the toggle
// button and, while open, a listbox of options in display order.
func (d *Model) Semantics() Node {
	root := Node{
		Role:     RoleCombobox,
		HasPopup: RoleListbox,
		Expanded: d.open,
		Children: []Node{{
			Role:    RoleButton,
			Label:   "Toggle dropdown",
			Focused: d.focused && d.cursor < 0,
		}},
	}
	if !d.open {
		return root
	}

	var current string
	if d.form != nil {
		current, _ = d.form.Get(form.SelectedMarkOption)
	}

	list := Node{Role: RoleListbox}
	for i, opt := range options {
		list.Children = append(list.Children, Node{
			Role:     RoleOption,
			Label:    opt.Display(),
			Selected: current != "" && opt.Display() == current,
			Focused:  d.focused && i == d.cursor,
		})
	}
	root.Children = append(root.Children, list)
	return root
}
