package ui

// LineRole is the style role of a DisplayLine
type LineRole int

const (
	RoleText LineRole = iota
	RoleHighlight
	RoleTitle
	RoleMarkup // pre-styled text, printed as is
	RoleError
	RoleWelcome
	RolePrompt
)

func (r LineRole) String() string {
	switch r {
	case RoleText:
		return "text"
	case RoleHighlight:
		return "highlight"
	case RoleTitle:
		return "title"
	case RoleMarkup:
		return "markup"
	case RoleError:
		return "error"
	case RoleWelcome:
		return "welcome"
	case RolePrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// DisplayLine is one renderable row of output. A Markup value may span
// several terminal rows.
type DisplayLine struct {
	Role        LineRole
	Value       string
	Interactive bool
	OptionIndex int
}

func text(v string) DisplayLine {
	return DisplayLine{Role: RoleText, Value: v}
}

func title(v string) DisplayLine {
	return DisplayLine{Role: RoleTitle, Value: v}
}

func blank() DisplayLine {
	return DisplayLine{Role: RoleText}
}

// option builds a selectable line
func option(v string, index int, selected bool) DisplayLine {
	role := RoleText
	if selected {
		role = RoleHighlight
	}
	return DisplayLine{Role: role, Value: v, Interactive: true, OptionIndex: index}
}
