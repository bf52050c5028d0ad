package ui

// Titles
const (
	TitleApp     = "PyPI Source Manager"
	TitleMode    = "Apply mode"
	TitleMirrors = "Mirrors"
	TitleOther   = "Other"
)

// Mode labels shown next to the radio markers
const (
	LabelModeShell = "shell (pip config set)"
	LabelModeConf  = "conf file (rewrite pip config)"
)

// Layout
const (
	GridColumns = 2  // mirror buttons per row
	ButtonWidth = 18 // inner width of a mirror button
	DialogWidth = 56
)

// Lipgloss Colors
const (
	ColorBorder     = "240"
	ColorSelectedFg = "229"
	ColorSelectedBg = "57"
	ColorTitle      = "14"  // Cyan for titles
	ColorHelp       = "245" // Grey for help text
	ColorError      = "9"   // Red for errors
	ColorSuccess    = "10"  // Green for confirmations
)
