package main

import (
	"fmt"
	"io"
	"sync"

	"lakshya-career-assistant/internal/domain/model"
	"lakshya-career-assistant/internal/format"
)

// terminalChat renders transcript turns as prefixed lines on the terminal.
type terminalChat struct {
	mu  sync.Mutex
	out io.Writer
}

func newTerminalChat(out io.Writer) *terminalChat {
	return &terminalChat{out: out}
}

func (t *terminalChat) AppendTurn(turn model.Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch turn.Role {
	case model.RoleUser:
		fmt.Fprintf(t.out, "you  > %s\n", turn.Text)
	case model.RoleAI:
		fmt.Fprintf(t.out, "aria > %s\n", turn.Text)
	default:
		fmt.Fprintf(t.out, "  -- %s --\n", turn.Text)
	}
}

func (t *terminalChat) SetTyping(active bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if active {
		fmt.Fprintln(t.out, "aria is typing...")
	}
}

func (t *terminalChat) ShowError(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "  !! %s\n", msg)
}

// terminalSaved prints save-indicator changes and the running count.
type terminalSaved struct {
	mu  sync.Mutex
	out io.Writer
}

func newTerminalSaved(out io.Writer) *terminalSaved {
	return &terminalSaved{out: out}
}

func (t *terminalSaved) SetIndicator(jobID string, saved bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := "unsaved"
	if saved {
		state = "saved"
	}
	fmt.Fprintf(t.out, "  [%s] %s\n", state, jobID)
}

func (t *terminalSaved) SetSavedCount(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "  saved jobs: %d\n", n)
}

// printJob renders one listing the way the job cards do: title, company,
// location, salary, posting age, category when known.
func printJob(out io.Writer, j model.Job) {
	fmt.Fprintf(out, "  %s  (%s)\n", j.Title, j.ID)
	fmt.Fprintf(out, "    %s | %s\n", format.CompanyName(j), format.LocationName(j))
	fmt.Fprintf(out, "    %s | %s\n", format.Salary(j), format.RelativeDate(j.Created))
	if label, ok := format.CategoryLabel(j); ok {
		fmt.Fprintf(out, "    %s\n", label)
	}
	if j.RedirectURL != "" {
		fmt.Fprintf(out, "    %s\n", j.RedirectURL)
	}
}
