package ui

import "charm.land/lipgloss/v2"

type Theme struct {
	Header     lipgloss.Style
	Status     lipgloss.Style
	PageTitle  lipgloss.Style
	PageBorder lipgloss.Style
	PageBody   lipgloss.Style
	HubMark    lipgloss.Style
	Accent     lipgloss.Style
	Fail       lipgloss.Style
	Muted      lipgloss.Style
	Info       lipgloss.Style
}

func DefaultTheme() Theme {
	return ThemeForVariant("midnight")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "paper":
		return paperTheme()
	case "retro_lcd":
		return retroLCDTheme()
	default:
		return midnightTheme()
	}
}

func midnightTheme() Theme {
	amber := lipgloss.Color("#FFC857")
	brick := lipgloss.Color("#FF6F91")
	ink := lipgloss.Color("#0E1420")
	slate := lipgloss.Color("#1B2740")
	powder := lipgloss.Color("#EAF2FF")
	blue := lipgloss.Color("#5EEBFF")
	border := lipgloss.Color("#4B5F8A")

	return Theme{
		Header: lipgloss.NewStyle().
			Background(ink).
			Foreground(powder).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Background(slate).
			Foreground(powder).
			Padding(0, 1),
		PageTitle: lipgloss.NewStyle().
			Foreground(blue).
			Bold(true),
		PageBorder: lipgloss.NewStyle().
			Foreground(border),
		PageBody: lipgloss.NewStyle().
			Foreground(powder),
		HubMark: lipgloss.NewStyle().Foreground(amber).Bold(true),
		Accent:  lipgloss.NewStyle().Foreground(blue).Bold(true),
		Fail:    lipgloss.NewStyle().Foreground(brick).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9CAAC6")),
		Info:    lipgloss.NewStyle().Foreground(blue),
	}
}

func paperTheme() Theme {
	honey := lipgloss.Color("#B7791F")
	rose := lipgloss.Color("#C53030")
	paper := lipgloss.Color("#F7F5EF")
	ink := lipgloss.Color("#2D3748")
	sky := lipgloss.Color("#2B6CB0")

	return Theme{
		Header:     lipgloss.NewStyle().Background(lipgloss.Color("#E2DED3")).Foreground(ink).Padding(0, 1),
		Status:     lipgloss.NewStyle().Background(lipgloss.Color("#EDEAE0")).Foreground(ink).Padding(0, 1),
		PageTitle:  lipgloss.NewStyle().Foreground(sky).Bold(true),
		PageBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0")),
		PageBody:   lipgloss.NewStyle().Foreground(ink).Background(paper),
		HubMark:    lipgloss.NewStyle().Foreground(honey).Bold(true),
		Accent:     lipgloss.NewStyle().Foreground(sky).Bold(true),
		Fail:       lipgloss.NewStyle().Foreground(rose).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("#718096")),
		Info:       lipgloss.NewStyle().Foreground(sky),
	}
}

func retroLCDTheme() Theme {
	lime := lipgloss.Color("#9CF5A2")
	amber := lipgloss.Color("#E5D47A")
	red := lipgloss.Color("#FF6B6B")
	deep := lipgloss.Color("#07150A")
	forest := lipgloss.Color("#12301A")
	glow := lipgloss.Color("#C5F7C4")

	return Theme{
		Header:     lipgloss.NewStyle().Background(deep).Foreground(glow).Padding(0, 1),
		Status:     lipgloss.NewStyle().Background(forest).Foreground(glow).Padding(0, 1),
		PageTitle:  lipgloss.NewStyle().Foreground(amber).Bold(true),
		PageBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("#1F5C2F")),
		PageBody:   lipgloss.NewStyle().Foreground(glow),
		HubMark:    lipgloss.NewStyle().Foreground(amber).Bold(true),
		Accent:     lipgloss.NewStyle().Foreground(lime).Bold(true),
		Fail:       lipgloss.NewStyle().Foreground(red).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("#73A17A")),
		Info:       lipgloss.NewStyle().Foreground(lime),
	}
}
