package tui

import (
	"nvm-manager/internal/theme"
)

type UITheme struct {
	PaneBorderActive   string
	PaneBorderInactive string
	Danger             string
	Success            string
	TextPrimary        string
	TextMuted          string
	SelectionBg        string
	SelectionFg        string
	HeaderText         string
	HelpText           string
	StatusText         string
	TabActive          string
	TabInactive        string
	TableHeader        string
	ColVersion         string
	ColNpm             string
	ColLTS             string
	ColDate            string
	StatusInstalled    string
	StatusNotInstalled string
	CurrentBadge       string
}

func defaultUITheme() UITheme {
	return ThemeFromPalette(theme.DefaultPaletteHex())
}

// ThemeFromPalette resolves p for the running terminal.
func ThemeFromPalette(p theme.PaletteHex) UITheme {
	return uiThemeFromResolved(theme.ResolveForTerminal(p, theme.DetectTrueColor()))
}

func uiThemeFromResolved(r theme.PaletteResolved) UITheme {
	return UITheme{
		PaneBorderActive:   r.PaneBorderActive,
		PaneBorderInactive: r.PaneBorderInactive,
		Danger:             r.Danger,
		Success:            r.Success,
		TextPrimary:        r.TextPrimary,
		TextMuted:          r.TextMuted,
		SelectionBg:        r.SelectionBg,
		SelectionFg:        r.SelectionFg,
		HeaderText:         r.HeaderText,
		HelpText:           r.HelpText,
		StatusText:         r.StatusText,
		TabActive:          r.TabActive,
		TabInactive:        r.TabInactive,
		TableHeader:        r.TableHeader,
		ColVersion:         r.ColVersion,
		ColNpm:             r.ColNpm,
		ColLTS:             r.ColLTS,
		ColDate:            r.ColDate,
		StatusInstalled:    r.StatusInstalled,
		StatusNotInstalled: r.StatusNotInstalled,
		CurrentBadge:       r.CurrentBadge,
	}
}

func (t UITheme) withDefaults() UITheme {
	d := defaultUITheme()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&t.PaneBorderActive, d.PaneBorderActive)
	fill(&t.PaneBorderInactive, d.PaneBorderInactive)
	fill(&t.Danger, d.Danger)
	fill(&t.Success, d.Success)
	fill(&t.TextPrimary, d.TextPrimary)
	fill(&t.TextMuted, d.TextMuted)
	fill(&t.SelectionBg, d.SelectionBg)
	fill(&t.SelectionFg, d.SelectionFg)
	fill(&t.HeaderText, d.HeaderText)
	fill(&t.HelpText, d.HelpText)
	fill(&t.StatusText, d.StatusText)
	fill(&t.TabActive, d.TabActive)
	fill(&t.TabInactive, d.TabInactive)
	fill(&t.TableHeader, d.TableHeader)
	fill(&t.ColVersion, d.ColVersion)
	fill(&t.ColNpm, d.ColNpm)
	fill(&t.ColLTS, d.ColLTS)
	fill(&t.ColDate, d.ColDate)
	fill(&t.StatusInstalled, d.StatusInstalled)
	fill(&t.StatusNotInstalled, d.StatusNotInstalled)
	fill(&t.CurrentBadge, d.CurrentBadge)
	return t
}
