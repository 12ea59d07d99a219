package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/TomasB/ipcheck/internal/data"
	"github.com/TomasB/ipcheck/internal/history"
	"github.com/TomasB/ipcheck/internal/lookup"
	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  lookup IP        look up an address and add it to the history
  compare IP IP    show two addresses side by side
  history          list looked up addresses, most recent first
  export IP        write <ip>_info.csv for an address in the history
  help             show this help
  quit             end the session`

func newShellCmd(newService ServiceFunc) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session with lookup history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, release, err := newService()
			if err != nil {
				return err
			}
			defer release()

			s := &shell{
				svc:   svc,
				store: history.NewStore(),
				out:   cmd.OutOrStdout(),
				dir:   dir,
			}
			return s.run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory for CSV exports")
	return cmd
}

// shell is one interactive session. Its store lives exactly as long as run.
type shell struct {
	svc   *lookup.Service
	store *history.Store
	out   io.Writer
	dir   string
}

func (s *shell) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(s.out, "IP Information Checker. Type 'help' for commands.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !s.exec(ctx, strings.Fields(scanner.Text())) {
			return nil
		}
	}
}

// exec runs one command line and reports whether the session continues.
func (s *shell) exec(ctx context.Context, args []string) bool {
	if len(args) == 0 {
		return true
	}

	switch args[0] {
	case "quit", "exit":
		return false
	case "help":
		fmt.Fprintln(s.out, shellHelp)
	case "lookup":
		if len(args) != 2 {
			fmt.Fprintln(s.out, "usage: lookup IP")
			return true
		}
		rec, err := s.svc.LookupAndRecord(ctx, s.store, args[1])
		if err != nil {
			printError(s.out, err)
			return true
		}
		printRecord(s.out, rec)
	case "compare":
		if len(args) != 3 {
			fmt.Fprintln(s.out, "usage: compare IP IP")
			return true
		}
		cmp, err := s.svc.Compare(ctx, args[1], args[2])
		if err != nil {
			printError(s.out, err)
			return true
		}
		printComparison(s.out, cmp.A, cmp.B)
	case "history":
		printHistory(s.out, s.store.All())
	case "export":
		if len(args) != 2 {
			fmt.Fprintln(s.out, "usage: export IP")
			return true
		}
		rec, ok := s.find(args[1])
		if !ok {
			printError(s.out, fmt.Errorf("%s is not in the history, look it up first", args[1]))
			return true
		}
		path, err := exportRecord(s.dir, rec)
		if err != nil {
			printError(s.out, err)
			return true
		}
		fmt.Fprintln(s.out, success.Sprint("CSV exported to "+path))
	default:
		fmt.Fprintf(s.out, "unknown command %q, type 'help'\n", args[0])
	}
	return true
}

func (s *shell) find(address string) (data.Record, bool) {
	for _, e := range s.store.All() {
		if e.Address == address {
			return e.Record, true
		}
	}
	return data.Record{}, false
}
