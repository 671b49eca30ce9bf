package theme

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type Hex string

type PaletteHex struct {
	PaneBorderActive   Hex `json:"pane_border_active"`
	PaneBorderInactive Hex `json:"pane_border_inactive"`
	Danger             Hex `json:"danger"`
	Success            Hex `json:"success"`
	TextPrimary        Hex `json:"text_primary"`
	TextMuted          Hex `json:"text_muted"`
	SelectionBg        Hex `json:"selection_bg"`
	SelectionFg        Hex `json:"selection_fg"`
	HeaderText         Hex `json:"header_text"`
	HelpText           Hex `json:"help_text"`
	StatusText         Hex `json:"status_text"`
	TabActive          Hex `json:"tab_active"`
	TabInactive        Hex `json:"tab_inactive"`
	TableHeader        Hex `json:"table_header"`
	ColVersion         Hex `json:"col_version"`
	ColNpm             Hex `json:"col_npm"`
	ColLTS             Hex `json:"col_lts"`
	ColDate            Hex `json:"col_date"`
	StatusInstalled    Hex `json:"status_installed"`
	StatusNotInstalled Hex `json:"status_not_installed"`
	CurrentBadge       Hex `json:"current_badge"`
}

type PaletteResolved struct {
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

var hexRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func (p *PaletteHex) fields() map[string]*Hex {
	return map[string]*Hex{
		"pane_border_active":   &p.PaneBorderActive,
		"pane_border_inactive": &p.PaneBorderInactive,
		"danger":               &p.Danger,
		"success":              &p.Success,
		"text_primary":         &p.TextPrimary,
		"text_muted":           &p.TextMuted,
		"selection_bg":         &p.SelectionBg,
		"selection_fg":         &p.SelectionFg,
		"header_text":          &p.HeaderText,
		"help_text":            &p.HelpText,
		"status_text":          &p.StatusText,
		"tab_active":           &p.TabActive,
		"tab_inactive":         &p.TabInactive,
		"table_header":         &p.TableHeader,
		"col_version":          &p.ColVersion,
		"col_npm":              &p.ColNpm,
		"col_lts":              &p.ColLTS,
		"col_date":             &p.ColDate,
		"status_installed":     &p.StatusInstalled,
		"status_not_installed": &p.StatusNotInstalled,
		"current_badge":        &p.CurrentBadge,
	}
}

func (p PaletteHex) Validate() error {
	for key, val := range p.fields() {
		if !hexRe.MatchString(string(*val)) {
			return fmt.Errorf("invalid hex color for %s: %q", key, string(*val))
		}
	}
	return nil
}

// WithOverrides returns the default palette with the given keys replaced.
// Unknown keys and malformed colors are rejected.
func WithOverrides(colors map[string]string) (PaletteHex, error) {
	p := DefaultPaletteHex()
	fields := p.fields()
	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		dst, ok := fields[strings.ToLower(strings.TrimSpace(k))]
		if !ok {
			return DefaultPaletteHex(), fmt.Errorf("unknown theme color: %s", k)
		}
		*dst = Hex(strings.TrimSpace(colors[k]))
	}
	if err := p.Validate(); err != nil {
		return DefaultPaletteHex(), err
	}
	return p, nil
}

func DefaultPaletteHex() PaletteHex {
	return PaletteHex{
		PaneBorderActive:   "#8cc84b",
		PaneBorderInactive: "#585858",
		Danger:             "#d70000",
		Success:            "#5fd75f",
		TextPrimary:        "#ddd7c1",
		TextMuted:          "#9e9987",
		SelectionBg:        "#8cc84b",
		SelectionFg:        "#000000",
		HeaderText:         "#e8f5d0",
		HelpText:           "#c3d6a8",
		StatusText:         "#8cc84b",
		TabActive:          "#8cc84b",
		TabInactive:        "#7a7a7a",
		TableHeader:        "#d6f0a9",
		ColVersion:         "#f0f0e0",
		ColNpm:             "#cb3837",
		ColLTS:             "#9fd0d0",
		ColDate:            "#bdb79f",
		StatusInstalled:    "#5fd75f",
		StatusNotInstalled: "#9e9987",
		CurrentBadge:       "#ffd75f",
	}
}
