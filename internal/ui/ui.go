// Package ui renders mysqlite CLI output.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	// Out receives regular output, Err receives error messages.
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	InfoColor      = lipgloss.Color("#00D9FF")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)
)

var (
	keyColor  = color.New(color.FgCyan, color.Bold)
	nullColor = color.New(color.Faint)
)

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	fmt.Fprintln(Out, SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	fmt.Fprintln(Err, ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	fmt.Fprintln(Out, WarningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	fmt.Fprintln(Out, InfoStyle.Render("ℹ "+fmt.Sprintf(format, args...)))
}

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Fprintln(Out, TitleStyle.Render(title))
}

// PrintList prints a bulleted list
func PrintList(items []string) {
	for _, item := range items {
		fmt.Fprintf(Out, "  • %s\n", item)
	}
}

// PrintKeyValue prints one "key: value" line.
func PrintKeyValue(key string, value interface{}) {
	fmt.Fprintf(Out, "%s %v\n", keyColor.Sprint(key+":"), value)
}

// Table renders headers and rows as a table. Cells marked in nulls are
// dimmed; nulls may be nil or shorter than rows.
func Table(headers []string, rows [][]string, nulls [][]bool) (string, error) {
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(tableData(headers, rows, nulls)).Srender()
}

func tableData(headers []string, rows [][]string, nulls [][]bool) pterm.TableData {
	data := pterm.TableData{headers}
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			if isNull(nulls, i, j) {
				cell = nullColor.Sprint(cell)
			}
			cells[j] = cell
		}
		data = append(data, cells)
	}
	return data
}

func isNull(nulls [][]bool, i, j int) bool {
	return i < len(nulls) && j < len(nulls[i]) && nulls[i][j]
}

// PrintTable prints a table using pterm, followed by the row count.
func PrintTable(headers []string, rows [][]string, nulls [][]bool) error {
	out, err := Table(headers, rows, nulls)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, out)
	fmt.Fprintln(Out, SecondaryStyle.Render(rowCount(len(rows))))
	return nil
}

func rowCount(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}

// Markdown renders markdown for the terminal.
func Markdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

// PrintMarkdown renders markdown content
func PrintMarkdown(content string) error {
	out, err := Markdown(content)
	if err != nil {
		return err
	}
	fmt.Fprint(Out, out)
	return nil
}

// MarkdownTable formats headers and rows as a markdown table.
func MarkdownTable(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(escapeCells(headers), " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(escapeCells(row), " | ") + " |\n")
	}
	return b.String()
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}
