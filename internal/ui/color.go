package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	updStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	delStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	trkStyle     = lipgloss.NewStyle().Faint(true)
	keywordStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func UpdLine(w io.Writer, path string) {
	fmt.Fprintln(w, updStyle.Render("upd")+"  "+path)
}

func TrkLine(w io.Writer, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path)
}

func DelLine(w io.Writer, path string) {
	fmt.Fprintln(w, delStyle.Render("del")+"  "+path)
}

func ErrLine(w io.Writer, path string, err error) {
	fmt.Fprintln(w, delStyle.Render("err")+"  "+path+": "+err.Error())
}

func SummaryLine(w io.Writer, count int) {
	fmt.Fprintf(w, "synced %d files\n", count)
}

// WroteLine reports a generated file and how many test cases it holds.
func WroteLine(w io.Writer, path string, cases int) {
	fmt.Fprintf(w, "%s  %s %s\n", newStyle.Render("wrote"), path, faintStyle.Render(fmt.Sprintf("(%d test cases)", cases)))
}

// ListRow prints one registry row padded to the given column widths.
func ListRow(w io.Writer, file, kind, name string, tags []string, fileWidth, kindWidth, nameWidth int) {
	line := fmt.Sprintf("%-*s  %s  %-*s",
		fileWidth, file,
		keywordStyle.Render(fmt.Sprintf("%-*s", kindWidth, kind)),
		nameWidth, name,
	)
	if len(tags) > 0 {
		line += "  " + tagStyle.Render(strings.Join(tags, " "))
	}
	fmt.Fprintln(w, strings.TrimRight(line, " "))
}
