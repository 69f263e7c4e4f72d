package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/insights"
	"golang.org/x/term"
)

const (
	defaultWidth = 72
	maxWidth     = 100
)

// Renderer draws the tracker views on a terminal or any writer.
type Renderer struct {
	out      io.Writer
	currency string
	width    int

	title  lipgloss.Style
	header lipgloss.Style
	amount lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
	ok     lipgloss.Style
}

func NewRenderer(out io.Writer, currency string) *Renderer {
	lr := lipgloss.NewRenderer(out)
	return &Renderer{
		out:      out,
		currency: currency,
		width:    terminalWidth(out),
		title:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("#36A2EB")),
		header:   lr.NewStyle().Bold(true),
		amount:   lr.NewStyle().Foreground(lipgloss.Color("#FF6384")),
		muted:    lr.NewStyle().Faint(true),
		warn:     lr.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF9F40")),
		ok:       lr.NewStyle().Foreground(lipgloss.Color("#4BC0C0")),
	}
}

func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return min(w, maxWidth)
}

func (r *Renderer) Money(v float64) string {
	return fmt.Sprintf("%s%.2f", r.currency, v)
}

func (r *Renderer) rule() string {
	return r.muted.Render(strings.Repeat("─", r.width))
}

func (r *Renderer) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(r.out, format, args...)
	return err
}

func (r *Renderer) Message(msg string) error {
	return r.printf("%s\n", r.ok.Render(msg))
}

func (r *Renderer) Alert(msg string) error {
	return r.printf("%s\n", r.warn.Render("! "+msg))
}

// AlertHandler prints budget alerts as they are raised.
func (r *Renderer) AlertHandler() events.Handler {
	return func(ctx context.Context, event events.Event) error {
		alert, ok := event.(*events.BudgetAlertEvent)
		if !ok {
			return nil
		}
		return r.Alert(alert.Message)
	}
}

// SummaryView re-prints the remaining balance on every synchronisation.
func (r *Renderer) SummaryView() insights.View {
	return insights.ViewFunc(func(ctx context.Context, snap insights.Snapshot) error {
		return r.printf("Remaining budget: %s\n", r.header.Render(r.Money(snap.Remaining)))
	})
}

func (r *Renderer) Home(snap insights.Snapshot) error {
	if err := r.printf("%s\n%s\n", r.title.Render("Remaining budget"), r.header.Render(r.Money(snap.Remaining))); err != nil {
		return err
	}
	return r.Records("Latest transactions", snap.Latest)
}

func (r *Renderer) Insights(snap insights.Snapshot) error {
	lines := []string{
		r.title.Render(fmt.Sprintf("%s %d", snap.Month, snap.Year)),
		fmt.Sprintf("Budget:    %s", r.Money(snap.Budget)),
		fmt.Sprintf("Spent:     %s (%.2f%%)", r.Money(snap.Spent), snap.SpentPercent),
		fmt.Sprintf("Remaining: %s", r.header.Render(r.Money(snap.Remaining))),
		fmt.Sprintf("Days left: %d", snap.DaysLeft),
		r.rule(),
	}
	if err := r.printf("%s\n", strings.Join(lines, "\n")); err != nil {
		return err
	}

	if len(snap.Breakdown) == 0 {
		return r.printf("%s\n", r.muted.Render("No spending this month."))
	}
	labelCol := r.header.Width(20)
	for _, b := range snap.Breakdown {
		if err := r.printf("%s %s  %s\n", labelCol.Render(b.Category), r.amount.Render(r.Money(b.Total)), r.muted.Render(b.Image)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) Records(title string, records []expense.Record) error {
	if err := r.printf("%s\n%s\n", r.title.Render(title), r.rule()); err != nil {
		return err
	}
	if len(records) == 0 {
		return r.printf("%s\n", r.muted.Render("No transactions yet."))
	}
	for _, rec := range records {
		if err := r.row(rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) row(rec expense.Record) error {
	date := rec.CreatedAt
	if d, ok := rec.Date(); ok {
		date = d.Format("2006-01-02")
	}
	return r.printf("%-10s  %-14s  %-24s  %10s  %s\n",
		date,
		truncate(rec.Category, 14),
		truncate(rec.DescriptionText(), 24),
		r.amount.Render("-"+r.Money(rec.Amount)),
		r.muted.Render(rec.ID))
}

func (r *Renderer) List(list *expense.ListResponse) error {
	if list.Count == 0 {
		return r.printf("%s\n", r.muted.Render("No transactions found."))
	}
	for _, g := range list.Groups {
		if err := r.printf("\n%s  %s\n", r.title.Render(g.Label), r.muted.Render(r.Money(g.Total))); err != nil {
			return err
		}
		for _, rec := range g.Records {
			if err := r.row(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) Detail(rec *expense.Record) error {
	date := rec.CreatedAt
	if d, ok := rec.Date(); ok {
		date = d.Format("January 2, 2006")
	}
	lines := []string{
		r.title.Render(rec.Category),
		fmt.Sprintf("Amount:      %s", r.amount.Render("-"+r.Money(rec.Amount))),
		fmt.Sprintf("Date:        %s", date),
		fmt.Sprintf("Description: %s", rec.DescriptionText()),
		fmt.Sprintf("Image:       %s", rec.Image),
		r.muted.Render("ID: " + rec.ID),
	}
	return r.printf("%s\n", strings.Join(lines, "\n"))
}

func (r *Renderer) CategoryDetail(d *expense.CategoryDetail) error {
	if err := r.printf("%s\n%s spent in %s %d\n",
		r.title.Render(d.Category),
		r.header.Render(r.Money(d.Total)),
		d.Month, d.Year); err != nil {
		return err
	}
	if d.Count == 0 {
		return r.printf("%s\n", r.muted.Render("No transactions found."))
	}
	for _, g := range d.Groups {
		if err := r.printf("\n%s\n", r.header.Render(g.Label)); err != nil {
			return err
		}
		for _, rec := range g.Records {
			if err := r.row(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) Categories(categories []category.CategoryResponse) error {
	for _, c := range categories {
		if err := r.printf("%-20s %s\n", c.Name, r.muted.Render(c.Image)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) Budget(b *budget.BudgetResponse) error {
	if b.Message != "" {
		if err := r.Message(b.Message); err != nil {
			return err
		}
	}
	if !b.IsSet {
		return r.printf("%s\n", r.muted.Render("No monthly budget set."))
	}
	return r.printf("Monthly budget: %s (alert %s)\n", r.header.Render(r.currency+b.Formatted), b.State)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
