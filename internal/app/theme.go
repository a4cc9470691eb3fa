package app

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	projectTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	docTypeTagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	sectionTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sectionActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true)
	feedbackLikeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true)
	feedbackDislike    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	busyStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	dividerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	labelStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	outlineEditStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("239"))
	emptyStateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
	contentFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
)
