package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/peterh/liner"

	"github.com/zephyrtronium/tablets"
	"github.com/zephyrtronium/tablets/catalog"
)

const historyFile = ".tablets_history"

func main() {
	log.SetFlags(0)
	var (
		inname, check            string
		places                   int
		fast, lib                bool
		echo, grid, dump, interp bool
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.IntVar(&places, "d", tablets.DefaultPlaces, "number of fractional places")
	flag.BoolVar(&fast, "fast", true, "use native routines for primitive names")
	flag.BoolVar(&lib, "lib", false, "define the arithmetic primitive tablets before the script")
	flag.BoolVar(&echo, "echo", false, "print the called tablet")
	flag.BoolVar(&grid, "grid", false, "print the first four levels of the called tablet's tree")
	flag.BoolVar(&dump, "dump", false, "print the called tablet's tree structure")
	flag.StringVar(&check, "check", "", `check a catalog of tasks ("-" for the built-in one)`)
	flag.BoolVar(&interp, "repl", false, "start an interactive session")
	flag.Parse()
	if places < 1 || places > tablets.MaxPlaces {
		log.Fatalf("places (%d) must be between 1 and %d", places, tablets.MaxPlaces)
	}
	opts := []tablets.Option{
		tablets.Places(places),
		tablets.FastPrimitives(fast),
		tablets.MaxDepth(4096),
	}

	switch {
	case check != "":
		os.Exit(runCheck(check, opts))
	case interp:
		os.Exit(repl(newSession(lib, places, opts)))
	}

	lines, err := script(inname, flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	var call string
	s := newSession(lib, places, opts)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if call != "" {
			if err := s.Define(call); err != nil {
				fmt.Println(render(tablets.Decimal{}, err))
				return
			}
		}
		call = line
	}
	if call == "" {
		log.Fatal("no call to evaluate")
	}
	if echo || grid || dump {
		show(s, call, echo, grid, dump)
	}
	fmt.Println(render(s.Call(call)))
}

// newSession creates a session, with the library tablets defined if lib is set.
func newSession(lib bool, places int, opts []tablets.Option) *tablets.Session {
	s := tablets.NewSession(opts...)
	if !lib {
		return s
	}
	for _, def := range tablets.LibraryDefinitions(places) {
		if err := s.Define(def); err != nil {
			log.Fatalf("defining library: %v", err)
		}
	}
	return s
}

// script collects input lines from the named file or stdin, then from args.
func script(inname string, args []string) ([]string, error) {
	var r []string
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		f = in
	case inname == "-", len(args) == 0:
		f = os.Stdin
	}
	if f != nil {
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			r = append(r, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
	}
	return append(r, args...), nil
}

// render formats a result for output. Errors that aren't part of the output,
// meaning broken tablets rather than bad input, are fatal.
func render(v tablets.Decimal, err error) string {
	s, rerr := tablets.Render(v, err)
	if rerr != nil {
		log.Fatal(rerr)
	}
	return suggest(s, err)
}

// suggest adds the name closest to an undefined function to its diagnostic.
func suggest(s string, err error) string {
	var fe *tablets.FunctionError
	if errors.As(err, &fe) && fe.Suggestion != "" {
		s += " (did you mean " + fe.Suggestion + "?)"
	}
	return s
}

// show prints the tablet that a call line names.
func show(s *tablets.Session, call string, echo, grid, dump bool) {
	name, _, _ := strings.Cut(call, "(")
	name = strings.TrimSpace(name)
	root, ok := s.Registry().Lookup(name)
	if !ok {
		return
	}
	if echo {
		fmt.Println(tablets.Tablet{Name: name, Root: root})
	}
	if grid {
		for i, v := range tablets.LevelOrder(root) {
			if v == "" {
				v = "."
			}
			fmt.Print(v)
			// Rows of 1, 2, 4, and 8 end at 0, 2, 6, and 14.
			if i&(i+2) == 0 {
				fmt.Println()
			} else {
				fmt.Print(" ")
			}
		}
	}
	if dump {
		fmt.Println(repr.String(tree(root), repr.Indent("  "), repr.OmitEmpty(true)))
	}
}

// node is an exported mirror of a syntax tree for dumping.
type node struct {
	Kind   string
	Op     string
	Text   string
	Repeat int
	Left   *node
	Right  *node
}

func tree(n *tablets.Node) *node {
	if n == nil {
		return nil
	}
	r := &node{Kind: n.Kind().String(), Text: n.Text(), Left: tree(n.Left()), Right: tree(n.Right())}
	if n.Kind() == tablets.KindOp {
		r.Op = string(n.Operator())
	}
	if n.Kind() == tablets.KindFun {
		r.Repeat = n.Repeat()
	}
	return r
}

// runCheck checks a catalog and reports each failing example. The result is
// the process exit status.
func runCheck(name string, opts []tablets.Option) int {
	var cat *catalog.Catalog
	if name == "-" {
		cat = catalog.Default()
	} else {
		f, err := os.Open(name)
		if err != nil {
			log.Fatal(err)
		}
		cat, err = catalog.Load(f)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
	}
	fails := cat.Check(opts...)
	for _, f := range fails {
		fmt.Println("FAIL", f)
	}
	n := 0
	for _, t := range cat.Tasks {
		n += len(t.Examples)
	}
	fmt.Printf("%d/%d examples ok in %d tasks\n", n-len(fails), n, len(cat.Tasks))
	if len(fails) != 0 {
		return 1
	}
	return 0
}

// repl runs an interactive session. Lines with an equals sign define tablets;
// others are calls.
func repl(s *tablets.Session) int {
	fmt.Println("tablets: NAME(x)=expr defines, NAME(value) calls. Type :list to show tablets, :quit to exit.")
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			fmt.Println()
			return 0
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":quit":
			return 0
		case ":list":
			for _, t := range s.Registry().Tablets() {
				fmt.Println(t)
			}
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(line, ":") {
			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}
		if strings.Contains(line, "=") {
			if err := s.Define(line); err != nil {
				fmt.Println(err)
			}
			continue
		}
		v, err := s.Call(line)
		out, rerr := tablets.Render(v, err)
		if rerr != nil {
			fmt.Fprintln(os.Stderr, rerr)
			continue
		}
		fmt.Println(suggest(out, err))
	}
}
