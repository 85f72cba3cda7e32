/*
Cmajc loads a grammar definition and starts an interactive session for
parsing lines of input against it.

It reads a grammar-definition file written in the meta-grammar syntax,
compiles it to an LR(1) parse table, and then reads lines of input from
stdin, printing the parse tree produced for each one. Reading continues
until end of input or the "QUIT" line is entered.

Usage:

	cmajc [flags]

The flags are:

	-v, --version
		Give the current version of cmaj and then exit.

	-g, --grammar FILE
		Load the grammar definition from FILE. Required.

	-s, --start SYMBOL
		Augment the grammar at SYMBOL. Defaults to the key of the first rule
		in the file.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input, even if launched in a tty
		with stdin and stdout.

	-c, --command LINES
		Immediately parse the given line(s) at start. Multiple lines can be
		given separated by the ";" character.
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kestrelparse/cmaj/internal/grammar"
	"github.com/kestrelparse/cmaj/internal/input"
	"github.com/kestrelparse/cmaj/internal/langmatchers"
	"github.com/kestrelparse/cmaj/internal/lexical"
	"github.com/kestrelparse/cmaj/internal/lr1"
	"github.com/kestrelparse/cmaj/internal/meta"
	"github.com/kestrelparse/cmaj/internal/version"
)

const (
	ExitSuccess = iota
	ExitParseError
	ExitInitError
)

var (
	returnCode    = ExitSuccess
	flagVersion   = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile   = pflag.StringP("grammar", "g", "", "The grammar definition file to load")
	startSymbol   = pflag.StringP("start", "s", "", "The symbol to augment the grammar at")
	forceDirect   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	startCommand  = pflag.StringP("command", "c", "", "Immediately parse the given line(s) and leave the session open")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if *grammarFile == "" {
		fmt.Fprintf(os.Stderr, "ERROR: -g/--grammar is required\n")
		returnCode = ExitInitError
		return
	}

	g, table, err := loadGrammar(*grammarFile, *startSymbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	var startLines []string
	if *startCommand != "" {
		startLines = strings.Split(*startCommand, ";")
	}

	reader, err := newLineReader(*forceDirect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer reader.Close()

	if err := runUntilQuit(os.Stdout, reader, g, table, startLines); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitParseError
	}
}

func loadGrammar(path, start string) (grammar.Grammar, lr1.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grammar.Grammar{}, lr1.Table{}, fmt.Errorf("reading grammar file: %w", err)
	}

	g, err := meta.CompileSource(meta.SplitLines(string(data)))
	if err != nil {
		return grammar.Grammar{}, lr1.Table{}, fmt.Errorf("compiling grammar: %w", err)
	}
	if g.Len() == 0 {
		return grammar.Grammar{}, lr1.Table{}, errors.New("grammar file compiled to zero rules")
	}

	if start == "" {
		start = g.RuleAt(0).Key
	}
	augmented := grammar.Augment(g, start)

	graph := lr1.GraphFor(augmented)
	table, err := lr1.TableFor(augmented, graph)
	if err != nil {
		return grammar.Grammar{}, lr1.Table{}, fmt.Errorf("building parse table: %w", err)
	}

	return augmented, table, nil
}

func newLineReader(forceDirect bool) (input.LineReader, error) {
	if !forceDirect {
		return input.NewInteractiveReader("cmaj> ")
	}
	return input.NewDirectReader(os.Stdin), nil
}

func runUntilQuit(w io.Writer, reader input.LineReader, g grammar.Grammar, table lr1.Table, startLines []string) error {
	for _, line := range startLines {
		if err := parseAndPrint(w, line, g, table); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		}
	}

	for {
		line, err := reader.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.EqualFold(trimmed, "QUIT") {
			return nil
		}

		if err := parseAndPrint(w, line, g, table); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		}
	}
}

func parseAndPrint(w io.Writer, line string, g grammar.Grammar, table lr1.Table) error {
	scanned, err := lexical.Scan([]string{line}, langmatchers.Matchers())
	if err != nil {
		return err
	}

	tokens := scanned[:0]
	for _, n := range scanned {
		if n.Key() != "space" {
			tokens = append(tokens, n)
		}
	}

	tree, err := lr1.Parse(tokens, g, table)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, tree.String())
	return nil
}
