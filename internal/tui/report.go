package tui

import (
	"fmt"
	"strings"

	"github.com/barysiuk/duckfetch/internal/tool"
)

// RenderInstall renders an install outcome for a terminal.
func RenderInstall(d tool.InstallDetails) string {
	var b strings.Builder

	if !d.Success {
		b.WriteString(errorStyle.Render("✗ " + d.Error))
		b.WriteString("\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s %s\n",
		successStyle.Render("✓"),
		nameStyle.Render(d.Name),
		badgeStyle.Render(fmt.Sprintf("(%d file(s))", len(d.Fetched))),
	)
	fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(d.Dir))

	b.WriteString("\n" + renderSectionHeader("FETCHED") + "\n")
	for _, f := range d.Fetched {
		fmt.Fprintf(&b, "    %s %s\n", successStyle.Render("•"), f)
	}

	if len(d.Failed) > 0 {
		b.WriteString("\n" + renderSectionHeader("FAILED") + "\n")
		for _, f := range d.Failed {
			style := warningStyle
			if strings.HasPrefix(f.Reason, "blocked") {
				style = errorStyle
			}
			fmt.Fprintf(&b, "    %s %s %s\n", style.Render("•"), f.Path, mutedStyle.Render(f.Reason))
		}
	}
	return b.String()
}

// RenderUpdate renders the outcome of reinstalling recorded skills.
func RenderUpdate(d tool.UpdateDetails) string {
	if d.Error != "" {
		return errorStyle.Render("✗ "+d.Error) + "\n"
	}
	if len(d.Results) == 0 {
		return mutedStyle.Render("No recorded skills to update.") + "\n"
	}
	parts := make([]string, 0, len(d.Results))
	for _, r := range d.Results {
		parts = append(parts, RenderInstall(r))
	}
	return strings.Join(parts, "\n")
}

// RenderList renders installed skills, one per line, clamped to width.
func RenderList(d tool.ListDetails, width int) string {
	if len(d.Sets) == 0 {
		return mutedStyle.Render("No skills installed.") + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", titleStyle.Render("Skills"), badgeStyle.Render(fmt.Sprintf("%d installed", d.Count)))
	for _, set := range d.Sets {
		line := fmt.Sprintf("  %s %s", nameStyle.Render(set.Name), badgeStyle.Render(fmt.Sprintf("(%d file(s))", len(set.Files))))
		if set.Description != "" {
			line += "  " + mutedStyle.Render(set.Description)
		}
		b.WriteString(clampWidth(line, width) + "\n")
		if set.Source != "" {
			b.WriteString(clampWidth("    "+mutedStyle.Render(set.Source), width) + "\n")
		}
	}
	return b.String()
}

// RenderStatus renders a one-line success or failure message.
func RenderStatus(ok bool, text string) string {
	if ok {
		return successStyle.Render("✓ "+text) + "\n"
	}
	return errorStyle.Render("✗ "+text) + "\n"
}

// Hint renders a muted help line.
func Hint(text string) string {
	return helpStyle.Render(text) + "\n"
}
