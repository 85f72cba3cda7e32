package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kestrelparse/cmaj/internal/ast"
	"github.com/kestrelparse/cmaj/internal/grammar"
	"github.com/kestrelparse/cmaj/internal/langmatchers"
	"github.com/kestrelparse/cmaj/internal/lexical"
	"github.com/kestrelparse/cmaj/internal/lr1"
	"github.com/kestrelparse/cmaj/internal/meta"
	"github.com/kestrelparse/cmaj/internal/store"
)

type putGrammarRequest struct {
	Definition string `json:"definition"`
	Start      string `json:"start"`
}

func (s *Server) handlePutGrammar(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")

	var body putGrammarRequest
	if err := parseJSON(req, &body); err != nil {
		badRequest(err.Error()).writeTo(w, s.logger)
		return
	}

	g, err := meta.CompileSource(meta.SplitLines(body.Definition))
	if err != nil {
		badRequest("grammar definition: %s", err).writeTo(w, s.logger)
		return
	}
	if g.Len() == 0 {
		badRequest("grammar definition compiled to zero rules").writeTo(w, s.logger)
		return
	}

	start := body.Start
	if start == "" {
		start = g.RuleAt(0).Key
	}

	augmented, err := augment(g, start)
	if err != nil {
		badRequest(err.Error()).writeTo(w, s.logger)
		return
	}

	graph := lr1.GraphFor(augmented)
	if _, err := lr1.TableFor(augmented, graph); err != nil {
		conflict(err.Error()).writeTo(w, s.logger)
		return
	}

	if err := s.store.Put(name, body.Definition, augmented); err != nil {
		internalError(err).writeTo(w, s.logger)
		return
	}

	created(map[string]string{"name": name}, "stored grammar %q", name).writeTo(w, s.logger)
}

// augment wraps grammar.Augment, converting its precondition panics into
// ordinary errors since the start symbol here comes from a request body, not
// from trusted caller code.
func augment(g grammar.Grammar, start string) (augmented grammar.Grammar, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errBadStart(start)
		}
	}()
	return grammar.Augment(g, start), nil
}

func errBadStart(start string) error {
	return errors.New("start symbol " + start + " is not usable: it is a terminal, reserved, or not defined by any rule")
}

func (s *Server) handleListGrammars(w http.ResponseWriter, req *http.Request) {
	names, err := s.store.Names()
	if err != nil {
		internalError(err).writeTo(w, s.logger)
		return
	}
	ok(map[string][]string{"names": names}, "listed %d grammars", len(names)).writeTo(w, s.logger)
}

func (s *Server) handleGetGrammar(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")

	rec, err := s.store.Get(name)
	if errors.Is(err, store.ErrNotFound) {
		notFound("no grammar named %q", name).writeTo(w, s.logger)
		return
	}
	if err != nil {
		internalError(err).writeTo(w, s.logger)
		return
	}

	ok(map[string]interface{}{
		"name":       rec.Name,
		"definition": rec.Definition,
		"rules":      len(rec.Compiled.Rules()),
	}, "fetched grammar %q", name).writeTo(w, s.logger)
}

type parseRequest struct {
	Lines []string `json:"lines"`
}

func (s *Server) handleParse(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")

	rec, err := s.store.Get(name)
	if errors.Is(err, store.ErrNotFound) {
		notFound("no grammar named %q", name).writeTo(w, s.logger)
		return
	}
	if err != nil {
		internalError(err).writeTo(w, s.logger)
		return
	}

	var body parseRequest
	if err := parseJSON(req, &body); err != nil {
		badRequest(err.Error()).writeTo(w, s.logger)
		return
	}

	scanned, err := lexical.Scan(body.Lines, langmatchers.Matchers())
	if err != nil {
		var scanErr *lexical.ScannerError
		if errors.As(err, &scanErr) {
			badRequest(scanErr.Error()).writeTo(w, s.logger)
			return
		}
		internalError(err).writeTo(w, s.logger)
		return
	}

	tokens := make([]ast.Node, 0, len(scanned))
	for _, n := range scanned {
		if n.Key() == "space" {
			continue
		}
		tokens = append(tokens, n)
	}

	graph := lr1.GraphFor(rec.Compiled)
	table, err := lr1.TableFor(rec.Compiled, graph)
	if err != nil {
		internalError(err).writeTo(w, s.logger)
		return
	}

	tree, err := lr1.Parse(tokens, rec.Compiled, table)
	if err != nil {
		var parseErr *lr1.ParserError
		if errors.As(err, &parseErr) {
			badRequest(parseErr.Error()).writeTo(w, s.logger)
			return
		}
		internalError(err).writeTo(w, s.logger)
		return
	}

	ok(treeJSON(tree), "parsed against grammar %q", name).writeTo(w, s.logger)
}

// nodeJSON is the wire representation of an ast.Node.
type nodeJSON struct {
	Key      string     `json:"key"`
	Value    string     `json:"value,omitempty"`
	Children []nodeJSON `json:"children,omitempty"`
}

func treeJSON(n ast.Node) nodeJSON {
	if tok, isLeaf := n.Token(); isLeaf {
		return nodeJSON{Key: n.Key(), Value: tok.Value}
	}
	children := n.Children()
	out := nodeJSON{Key: n.Key(), Children: make([]nodeJSON, len(children))}
	for i, c := range children {
		out.Children[i] = treeJSON(c)
	}
	return out
}
