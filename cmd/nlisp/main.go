package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/TSnake41/nlisp"
)

const (
	appName     = "nlisp"
	historyFile = ".nlisp_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("nlisp %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", nlisp.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(nlisp.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`nlisp %s

Usage:
  %s run <file.nl>    Run a script and print each top-level result.
  %s repl             Start the REPL.
  %s version          Print the version.
`, nlisp.Version, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.nl>\n", appName)
		return 2
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return 1
	}

	vm := nlisp.NewVM()
	results, evalErr := vm.EvalSource(string(src))
	for _, r := range results {
		fmt.Println(nlisp.FormatAtom(r))
	}
	if evalErr != nil {
		fmt.Fprintln(os.Stderr, nlisp.WrapErrorWithSource(evalErr, string(src)).Error())
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	vm := nlisp.NewVM()

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		results, err := vm.EvalSource(code)
		for _, r := range results {
			fmt.Println(blue(nlisp.FormatAtom(r)))
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(nlisp.WrapErrorWithSource(err, code).Error()))
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByParseProbe accumulates lines until the buffer parses, or fails with
// an error other than an unterminated list/string. Incomplete input keeps the
// continuation prompt going, so nested forms can be typed across lines.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C or terminal error: drop the buffer, keep the REPL alive.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := nlisp.Parse(src); perr != nil {
			var pe *nlisp.ParseError
			if errors.As(perr, &pe) &&
				(pe.Kind == nlisp.IncompleteList || pe.Kind == nlisp.IncompleteString) {
				continue
			}
		}
		return src, true
	}
}
