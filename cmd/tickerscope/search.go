package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"TickerScope/internal/analysis"
	"TickerScope/internal/report"
	"TickerScope/internal/search"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [QUERY]",
	Short: "Look up ticker symbols; without QUERY, start an interactive search",
	Long: `With QUERY, print matching tickers once.

Without QUERY, every line read from stdin is treated as the current content
of the search box. Results are printed as they arrive, and older lookups are
cancelled when a newer line comes in. Commands:
  :pick N   analyze the Nth suggestion of the latest result
  :q        quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateSymbolSearch(); err != nil {
			return err
		}
		idx := newSearchIndex(cfg)
		if len(args) > 0 {
			fmt.Fprint(cmd.OutOrStdout(), report.FormatSuggestions(idx.Search(cmd.Context(), strings.Join(args, " "))))
			return nil
		}
		return interactiveSearch(cmd.Context(), idx, newOrchestrator(cfg), cfg.SymbolSearch.Debounce, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func interactiveSearch(ctx context.Context, idx *search.Index, orch *analysis.Orchestrator, debounce time.Duration, in io.Reader, w io.Writer) error {
	out := &lockedWriter{w: w}
	sess := search.NewSession(ctx, idx, debounce)

	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for r := range sess.Results() {
			if r.Query == "" {
				continue
			}
			fmt.Fprintf(out, "-- %q\n", r.Query)
			if len(r.Suggestions) == 0 {
				fmt.Fprint(out, report.FormatSuggestions(nil))
			}
			for i, s := range r.Suggestions {
				fmt.Fprintf(out, "  %d. %s\n", i+1, s.Label())
			}
		}
	}()
	defer func() {
		sess.Close()
		<-printed
	}()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.TrimSpace(line) == ":q":
			return nil
		case strings.HasPrefix(strings.TrimSpace(line), ":pick"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ":pick")))
			latest := sess.Latest().Suggestions
			if err != nil || n < 1 || n > len(latest) {
				fmt.Fprintf(out, "pick a number between 1 and %d\n", len(latest))
				continue
			}
			symbol := sess.Select(latest[n-1])
			r, err := orch.RunAnalysis(ctx, symbol, 0)
			if err != nil {
				fmt.Fprintln(out, report.FormatError(err))
				continue
			}
			fmt.Fprint(out, report.Assemble(r))
		default:
			sess.Keystroke(line)
		}
	}
	return scanner.Err()
}

// lockedWriter serializes writes from the result printer and the input loop.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
