// Package terminal implements the review collaborator as blocking
// line-based prompts on the controlling terminal, one draft at a time.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
	"github.com/crucible-labs/forge-cli/internal/core/ports/driven"
)

// Ensure Reviewer implements the interface.
var _ driven.Reviewer = (*Reviewer)(nil)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Reviewer prompts for field overrides and an approval verdict for each
// draft record. An empty response keeps the drafted value; approval
// requires an exact "y" (case-insensitive) and defaults to rejected.
type Reviewer struct {
	in     *bufio.Reader
	out    io.Writer
	styled bool
}

// New creates a reviewer reading from in and writing prompts to out.
// Styling is applied only when out is a terminal.
func New(in io.Reader, out io.Writer) *Reviewer {
	styled := false
	if f, ok := out.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}
	return &Reviewer{
		in:     bufio.NewReader(in),
		out:    out,
		styled: styled,
	}
}

// Review displays a draft and gathers the reviewer's decision.
// The prompts block the calling goroutine until the reviewer answers.
func (r *Reviewer) Review(ctx context.Context, rec domain.DraftRecord) (domain.ReviewDecision, error) {
	if err := ctx.Err(); err != nil {
		return domain.ReviewDecision{}, err
	}

	r.printDraft(rec)

	var decision domain.ReviewDecision

	title, err := r.prompt(fmt.Sprintf("Title [%s]", rec.Title))
	if err != nil {
		return domain.ReviewDecision{}, err
	}
	decision.Title = title

	summary, err := r.prompt(fmt.Sprintf("Summary [%s]", rec.Summary))
	if err != nil {
		return domain.ReviewDecision{}, err
	}
	decision.Summary = summary

	current := strings.Join(rec.Keywords, ", ")
	keywordsInput, err := r.prompt(fmt.Sprintf("Keywords (comma separated) [%s]", current))
	if err != nil {
		return domain.ReviewDecision{}, err
	}
	if keywordsInput != "" {
		decision.Keywords = splitKeywords(keywordsInput)
		decision.KeywordsSet = true
	}

	approve, err := r.prompt("Approve? (y/N)")
	if err != nil {
		return domain.ReviewDecision{}, err
	}
	decision.Approved = strings.EqualFold(approve, "y")

	return decision, nil
}

// printDraft renders the draft block shown before the prompts.
func (r *Reviewer) printDraft(rec domain.DraftRecord) {
	fmt.Fprintf(r.out, "\n%s\n", r.style(headerStyle, "---- Draft ----"))
	fmt.Fprintf(r.out, "%s %s\n", r.style(labelStyle, "chunk_id  :"), rec.ChunkID)
	fmt.Fprintf(r.out, "%s %s\n", r.style(labelStyle, "title     :"), rec.Title)
	fmt.Fprintf(r.out, "%s %s\n", r.style(labelStyle, "summary   :"), rec.Summary)
	fmt.Fprintf(r.out, "%s %s\n", r.style(labelStyle, "keywords  :"), strings.Join(rec.Keywords, ", "))
	fmt.Fprintf(r.out, "%s %g\n", r.style(labelStyle, "confidence:"), rec.Confidence)
}

// prompt writes a prompt and reads one trimmed line. EOF before any
// answer aborts the review.
func (r *Reviewer) prompt(label string) (string, error) {
	fmt.Fprintf(r.out, "%s: ", label)
	line, err := r.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read reviewer input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (r *Reviewer) style(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

// splitKeywords parses a comma-separated keyword override, dropping
// empty entries.
func splitKeywords(input string) []string {
	parts := strings.Split(input, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			keywords = append(keywords, part)
		}
	}
	return keywords
}
