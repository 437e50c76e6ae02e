// Command ptdump loads a file into a piece tree, applies a sequence of
// insert/erase edits given on the command line, and prints the
// resulting document plus its line count and content fingerprint. It
// exists to exercise the piecetree package end to end without a full
// editor shell around it.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arbor-editor/piecetree/internal/engine/piecetree"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ptdump", flag.ContinueOnError)
	var (
		edits     string
		threshold int
		showLines bool
	)
	fs.StringVar(&edits, "edit", "", "semicolon-separated edits: i<offset>:<text> or e<start>:<end>")
	fs.IntVar(&threshold, "threshold", 0, "override the change buffer size threshold")
	fs.BoolVar(&showLines, "lines", false, "print the document one line at a time instead of as a whole")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] <path>\n", os.Args[0])
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("%w: %v", piecetree.ErrUnableToOpenFile, err))
		return 1
	}
	defer f.Close()

	var opts []piecetree.Option
	if threshold > 0 {
		opts = append(opts, piecetree.WithBufferThreshold(threshold))
	}
	tree := piecetree.Create(opts...)
	if err := tree.LoadFile(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := applyEdits(tree, edits); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	snap := tree.Snapshot()
	if showLines {
		for row := 0; row <= snap.LineCount(); row++ {
			line, err := tree.LineContent(row)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			fmt.Printf("%4d: %s\n", row, line)
		}
	} else {
		fmt.Print(snap.Text())
	}

	fmt.Fprintf(os.Stderr, "length=%d lines=%d fingerprint=%x\n", snap.Length(), snap.LineCount(), snap.Fingerprint())
	return 0
}

// applyEdits parses and applies a semicolon-separated list of edits of
// the form "i<offset>:<text>" (insert) or "e<start>:<end>" (erase).
func applyEdits(tree *piecetree.Tree, spec string) error {
	if spec == "" {
		return nil
	}
	for _, raw := range strings.Split(spec, ";") {
		if raw == "" {
			continue
		}
		kind, rest := raw[0], raw[1:]
		parts := strings.SplitN(rest, ":", 2)
		switch kind {
		case 'i':
			if len(parts) != 2 {
				return fmt.Errorf("malformed insert edit %q", raw)
			}
			offset, err := strconv.Atoi(parts[0])
			if err != nil {
				return fmt.Errorf("malformed insert offset in %q: %w", raw, err)
			}
			if err := tree.Insert(offset, parts[1]); err != nil {
				return err
			}
		case 'e':
			bounds := strings.SplitN(rest, ":", 2)
			if len(bounds) != 2 {
				return fmt.Errorf("malformed erase edit %q", raw)
			}
			start, err := strconv.Atoi(bounds[0])
			if err != nil {
				return fmt.Errorf("malformed erase start in %q: %w", raw, err)
			}
			end, err := strconv.Atoi(bounds[1])
			if err != nil {
				return fmt.Errorf("malformed erase end in %q: %w", raw, err)
			}
			if err := tree.Erase(start, end); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown edit kind %q in %q", string(kind), raw)
		}
	}
	return nil
}
