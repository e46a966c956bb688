package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/colorprofile"
	"github.com/fatih/color"

	"github.com/mark3labs/tokenforge/internal/events"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

var (
	labelColor = color.New(color.FgHiBlack)
	valueColor = color.New(color.FgCyan, color.Bold)
	faint      = color.New(color.Faint)
)

// configureColor turns headless colors off when out cannot show them.
func configureColor(out *os.File, env []string) colorprofile.Profile {
	p := colorprofile.Detect(out, env)
	switch p {
	case colorprofile.NoTTY, colorprofile.Ascii:
		color.NoColor = true
	}
	return p
}

// printKV prints an aligned label/value row.
func printKV(label, value string) {
	fmt.Printf("  %s %s\n", labelColor.Sprintf("%-20s", label), valueColor.Sprint(value))
}

func printHeader(title string) {
	fmt.Println()
	color.New(color.FgMagenta, color.Bold).Println(title)
}

// withSpinner shows a spinner with suffix while fn runs.
func withSpinner(suffix string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + suffix
	s.Start()
	err := fn()
	s.Stop()
	return err
}

// traceObserver prints wizard activity as it happens.
func traceObserver(ev wizard.Event) {
	if ev.Kind == wizard.EventStepEntered {
		faint.Printf("  → %s\n", events.FromEvent(ev).Message)
	}
}
