// Package render prints profiles and time entries as text, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/beardo/toggl-tui/internal/model"
	"github.com/beardo/toggl-tui/internal/timecalc"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

const dateLayout = "02.01.2006 15:04:05"

// Printer writes command results to w.
type Printer struct {
	w      io.Writer
	format Format
	loc    *time.Location
	now    func() time.Time

	label    lipgloss.Style
	value    lipgloss.Style
	active   lipgloss.Style
	inactive lipgloss.Style
	notice   lipgloss.Style
}

// NewPrinter returns a Printer. Colors are only emitted when w is a terminal.
func NewPrinter(w io.Writer, format Format) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:        w,
		format:   format,
		loc:      time.Local,
		now:      time.Now,
		label:    r.NewStyle().Foreground(lipgloss.Color("245")),
		value:    r.NewStyle().Foreground(lipgloss.Color("255")),
		active:   r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		inactive: r.NewStyle().Foreground(lipgloss.Color("196")),
		notice:   r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// WithLocation sets the zone used for displayed times.
func (p *Printer) WithLocation(loc *time.Location) *Printer {
	p.loc = loc
	return p
}

// WithClock sets the clock used for elapsed time of running entries.
func (p *Printer) WithClock(now func() time.Time) *Printer {
	p.now = now
	return p
}

// Message prints a status line.
func (p *Printer) Message(format string, args ...any) error {
	_, err := fmt.Fprintf(p.w, format+"\n", args...)
	return err
}

// Notice prints a highlighted status line.
func (p *Printer) Notice(format string, args ...any) error {
	_, err := fmt.Fprintln(p.w, p.notice.Render(fmt.Sprintf(format, args...)))
	return err
}

// Profile prints the logged-in user.
func (p *Printer) Profile(me *model.Profile) error {
	if p.format != FormatText {
		return p.encode(me)
	}
	var b strings.Builder
	b.WriteString(p.notice.Render("User is logged in as:") + "\n")
	p.field(&b, "Email", me.Email)
	p.field(&b, "Full Name", me.Fullname)
	return p.write(b.String())
}

// Entry prints a single entry. A nil entry means nothing is running.
func (p *Printer) Entry(e *model.Entry) error {
	if p.format != FormatText {
		return p.encode(e)
	}
	if e == nil {
		return p.Notice("No current entry.")
	}
	return p.write(p.entryBlock(*e))
}

// Entries prints a list of entries grouped by day.
func (p *Printer) Entries(entries []model.Entry) error {
	if p.format != FormatText {
		if entries == nil {
			entries = []model.Entry{}
		}
		return p.encode(entries)
	}
	if len(entries) == 0 {
		return p.Notice("No entries found.")
	}

	var b strings.Builder
	var day time.Time
	for i, e := range entries {
		start := e.Start.In(p.loc)
		if i == 0 || !timecalc.SameDay(day, start) {
			b.WriteString(p.label.Render(start.Format("2006-01-02")) + "\n")
			day = start
		}

		status := p.active.Render("●")
		end := "ongoing"
		if e.Stop != nil {
			status = p.inactive.Render("○")
			end = e.Stop.In(p.loc).Format("15:04")
		}
		elapsed := int64(e.Elapsed(p.now()).Seconds())
		fmt.Fprintf(&b, "  %s %s–%s  %s (%s)\n",
			status, start.Format("15:04"), end,
			p.value.Render(description(e)), timecalc.FormatDuration(elapsed))
	}
	return p.write(b.String())
}

func (p *Printer) entryBlock(e model.Entry) string {
	var b strings.Builder
	if e.Running() {
		b.WriteString(p.active.Render("Active: ✅") + "\n")
	} else {
		b.WriteString(p.inactive.Render("Active: ❌") + "\n")
	}
	p.field(&b, "Description", description(e))
	p.field(&b, "Start", e.Start.In(p.loc).Format(dateLayout))
	if e.Stop != nil {
		p.field(&b, "Stop", e.Stop.In(p.loc).Format(dateLayout))
	}
	elapsed := int64(e.Elapsed(p.now()).Seconds())
	p.field(&b, "Duration", timecalc.FormatDurationHHMMSS(elapsed))
	b.WriteString("\n")
	return b.String()
}

func (p *Printer) field(b *strings.Builder, name, value string) {
	b.WriteString(p.label.Render(name+": ") + p.value.Render(value) + "\n")
}

func (p *Printer) write(s string) error {
	_, err := io.WriteString(p.w, s)
	return err
}

func (p *Printer) encode(v any) error {
	switch p.format {
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}
}

func description(e model.Entry) string {
	if e.Description == "" {
		return "(no description)"
	}
	return e.Description
}
