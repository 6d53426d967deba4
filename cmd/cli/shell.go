package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/Coconhat/Currency-converter/pkg/converter"
	"github.com/Coconhat/Currency-converter/pkg/currency"
	"github.com/charmbracelet/lipgloss"
)

const shellHelp = `Commands:
  amount <text>   set the amount (a bare number works too)
  from <code>     convert from currency
  to <code>       convert to currency
  swap            swap the two currencies
  list            show supported currencies
  show            print the current conversion
  quit            leave`

var errQuit = errors.New("quit")

type styles struct {
	source lipgloss.Style
	target lipgloss.Style
	muted  lipgloss.Style
	err    lipgloss.Style
	code   lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{source: plain, target: plain, muted: plain, err: plain, code: plain}
	}
	return styles{
		source: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#CCCCCC"}),
		target: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}),
		muted:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}),
		err:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}),
		code:   lipgloss.NewStyle().Bold(true).Width(5),
	}
}

// shell drives one converter view from line-oriented commands and re-renders
// the display on every state change.
type shell struct {
	view   *converter.View
	styles styles
	prompt bool

	mu  sync.Mutex
	out io.Writer
}

func newShell(view *converter.View, out io.Writer, color bool) *shell {
	s := &shell{view: view, out: out, styles: newStyles(color), prompt: color}
	view.Subscribe(func(st converter.State) { s.print(s.render(converter.Render(st))) })
	return s
}

// Run reads commands until quit or end of input.
func (s *shell) Run(in io.Reader) error {
	defer s.view.Close()

	s.print(s.render(s.view.Display()))
	scanner := bufio.NewScanner(in)
	for {
		if s.prompt {
			s.write("> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		err := s.execute(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			s.print(s.styles.err.Render(err.Error()))
		}
	}
}

func (s *shell) execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "amount":
		return s.view.SetAmount(rest)
	case "from":
		if rest == "" {
			return errors.New("usage: from <code>")
		}
		return withSupported(s.view.SelectSource(currency.Normalize(rest)))
	case "to":
		if rest == "" {
			return errors.New("usage: to <code>")
		}
		return withSupported(s.view.SelectTarget(currency.Normalize(rest)))
	case "swap":
		return s.view.Swap()
	case "list":
		s.print(s.list())
		return nil
	case "show":
		s.print(s.render(s.view.Display()))
		return nil
	case "help", "?":
		s.print(shellHelp)
		return nil
	case "quit", "exit":
		return errQuit
	}

	if _, err := strconv.ParseFloat(line, 64); err == nil {
		return s.view.SetAmount(line)
	}
	return fmt.Errorf("unknown command %q, try help", cmd)
}

// withSupported appends the supported codes to an unknown currency error.
func withSupported(err error) error {
	if errors.Is(err, currency.ErrUnsupportedCurrency) {
		return fmt.Errorf("%w (supported: %s)", err, strings.Join(currency.Codes(), ", "))
	}
	return err
}

func (s *shell) render(d converter.Display) string {
	if d.Kind != converter.DisplayResult {
		return s.styles.muted.Render(d.Message)
	}
	return s.styles.source.Render(d.Source) + "\n" + s.styles.target.Render(d.Target)
}

func (s *shell) list() string {
	var b strings.Builder
	for i, info := range currency.List() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %-4s %s", s.styles.code.Render(info.Code), info.Symbol, info.Name)
	}
	return b.String()
}

func (s *shell) print(text string) {
	s.write(text + "\n")
}

func (s *shell) write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.out, text)
}
