package widgets

// NewPhaseWidget creates a widget that displays the current phase message.
func NewPhaseWidget(phase string) func() string {
	return func() string {
		switch phase {
		case "scanning":
			return "Searching for files..."
		case "duplicates":
			return "Choose which copy to keep"
		case "confirm":
			return "Review the file list"
		case "transferring":
			return "Transferring files..."
		case "paused":
			return "Paused"
		case "stopping":
			return "Stopping after the current file..."
		default:
			return ""
		}
	}
}
