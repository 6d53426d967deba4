package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Coconhat/Currency-converter/infra/initializer"
	"github.com/Coconhat/Currency-converter/pkg/app"
	"github.com/Coconhat/Currency-converter/pkg/config"
	"github.com/Coconhat/Currency-converter/pkg/converter"
	"github.com/Coconhat/Currency-converter/pkg/currency"
	"github.com/Coconhat/Currency-converter/pkg/eventbus"
	"golang.org/x/term"
)

const usage = `Usage: cli [command]

Without a command an interactive converter reads commands from stdin.

Commands:
  convert <amount> <from> <to>   convert once and print the result
  help                           show this message`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out, errOut io.Writer) error {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(out, usage)
		return nil
	}

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	deps, err := initializer.InitializeDependenciesWithOutput(cfg, errOut)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	application := app.New(deps, cfg)
	defer application.Close() //nolint: errcheck

	color := isTerminal(out)
	if len(args) == 0 {
		return newShell(application.NewView(), out, color).Run(in)
	}

	switch args[0] {
	case "convert":
		return convertOnce(application, args[1:], out, color)
	default:
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage)
	}
}

// convertOnce sets up a view, runs its lookup without waiting for the
// debounce and prints the display. A failed lookup is reported.
func convertOnce(a *app.App, args []string, out io.Writer, color bool) error {
	if len(args) != 3 {
		return errors.New("usage: convert <amount> <from> <to>")
	}

	var failure error
	a.Deps.EventBus.Subscribe(converter.EventConversionFailed, func(_ context.Context, e eventbus.Event) {
		if ev, ok := e.(converter.ConversionFailed); ok {
			failure = ev.Err
		}
	})

	view := a.NewView()
	defer view.Close()
	if err := view.SelectSource(currency.Normalize(args[1])); err != nil {
		return err
	}
	if err := view.SelectTarget(currency.Normalize(args[2])); err != nil {
		return err
	}
	if err := view.SetAmount(args[0]); err != nil {
		return err
	}
	view.Flush()
	view.Wait()

	if failure != nil {
		return fmt.Errorf("conversion failed: %w", failure)
	}
	s := &shell{view: view, out: out, styles: newStyles(color)}
	s.print(s.render(view.Display()))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
