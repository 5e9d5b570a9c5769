package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24"))
)

var coachGreetings = [...]string{
	"A habit with nothing at stake is just a wish.",
	"Day one is the hardest. You have not even started it yet.",
	"The first ten days decide whether a habit sticks. Your clock has not started.",
	"Streaks do not build themselves. Neither do wallets connect themselves.",
	"Every missed day funds someone else's public good. Generous, but avoidable.",
	"Commit code, read pages, walk miles. Then let the chain remember it.",
	"I count days. Right now I have nothing to count.",
	"Three challenges fit on the board. Zero are yours.",
	"Your future self already staked. Present you is still deciding.",
	"Motivation fades. Stakes do not.",
}

// printNoWallet greets a user who has not connected a wallet yet.
func printNoWallet(w io.Writer) {
	msg := coachGreetings[rand.IntN(len(coachGreetings))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a78bfa")).
		Bold(true).
		Render("HABITCOACH")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	attrib := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#34d399")).
		Render("- your habit coach")

	hint := dimStyle.Render("No wallet connected. Run: habitcoach wallet connect")

	fmt.Fprintf(w, "\n%s\n\n%s\n%s\n\n%s\n\n", title, quote, attrib, hint)
}
