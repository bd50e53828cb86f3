package rotamenu

// Action reports what a call to Menu.EncoderAction did.
type Action int

const (
	ActionNone        Action = iota // Nothing to do (no page, no focusable item, motion absorbed at an edge)
	ActionMoved                     // Focus or an item's own cursor moved
	ActionEditing                   // Edit mode was entered or the tentative value changed
	ActionCommitted                 // Edit mode ended without producing a command
	ActionDispatched                // A command was handed to the command sink
	ActionPageChanged               // A menu or return command switched pages
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionMoved:
		return "moved"
	case ActionEditing:
		return "editing"
	case ActionCommitted:
		return "committed"
	case ActionDispatched:
		return "dispatched"
	case ActionPageChanged:
		return "page_changed"
	default:
		return "unknown"
	}
}
