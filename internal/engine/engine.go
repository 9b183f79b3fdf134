// Released under an MIT license. See LICENSE.

// Package engine provides an evaluator for parsed kaguya code.
//
// An engine owns a global scope and is the world that effects are run
// against. Several engines can exist side by side. They share nothing.
package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/michaelmacinnis/adapted"
	"github.com/sirupsen/logrus"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/interface/world"
	"github.com/kaguya-lang/kaguya/internal/common/struct/fault"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/effect"
	"github.com/kaguya-lang/kaguya/internal/common/type/env"
	"github.com/kaguya-lang/kaguya/internal/common/type/list"
	"github.com/kaguya-lang/kaguya/internal/common/type/str"
	"github.com/kaguya-lang/kaguya/internal/engine/boot"
	"github.com/kaguya-lang/kaguya/internal/engine/task"
	"github.com/kaguya-lang/kaguya/internal/reader"
)

// Options configures a new engine.
type Options struct {
	// Log receives debug entries. If nil, warnings and worse go to stderr.
	Log *logrus.Logger

	// Out receives the text printed by programs. If nil, stdout is used.
	Out io.Writer

	// Args are bound, as a list of str, to @args.
	Args []string

	// Prelude loads the standard definitions.
	Prelude bool
}

// T (engine) is a facade in front of the machinery for evaluating kaguya
// code.
type T struct {
	global *env.Global
	log    *logrus.Logger
	root   *env.Global

	outl sync.Mutex
	out  io.Writer

	sync.Mutex
	loaded  map[string]bool
	sources map[string]string
}

type engine = T

// New creates a new T.
func New(o Options) (*T, error) {
	root := env.NewGlobal(nil)
	task.Actions(root)

	args := make([]cell.I, len(o.Args))
	for i, a := range o.Args {
		args[i] = str.New(a)
	}

	root.Define("@args", lazy.Builtin(list.Of(args...)))

	e := &T{
		global:  env.NewGlobal(root),
		log:     o.Log,
		root:    root,
		out:     o.Out,
		loaded:  map[string]bool{},
		sources: map[string]string{},
	}

	if e.log == nil {
		e.log = logrus.New()
		e.log.SetLevel(logrus.WarnLevel)
	}

	if e.out == nil {
		e.out = os.Stdout
	}

	if o.Prelude {
		err := e.Load(context.Background(), boot.Name, boot.Script())
		if err != nil {
			return nil, fmt.Errorf("loading prelude: %w", err)
		}
	}

	e.log.WithFields(logrus.Fields{
		"intrinsics": root.Size(),
		"globals":    e.global.Size(),
	}).Debug("ready")

	return e, nil
}

// Append adds text to the source registered as name. An interactive
// session is a single source that grows a line at a time.
func (e *engine) Append(name, text string) {
	e.Lock()
	defer e.Unlock()

	e.sources[name] += text
}

// Define installs v as an alternative for k in the global scope.
func (e *engine) Define(k string, v *lazy.T) {
	e.log.WithField("symbol", k).Debug("define")

	e.global.Define(k, v)
}

// Eval evaluates the term b denotes in the global scope.
func (e *engine) Eval(ctx context.Context, b *lazy.T) (cell.I, error) {
	return task.Reeval(b, e.global).Force(ctx)
}

// Execute evaluates the term b denotes. If the result is an effect, it is
// performed and its result returned.
func (e *engine) Execute(ctx context.Context, b *lazy.T) (cell.I, error) {
	c, err := e.Eval(ctx, b)
	if err != nil || !effect.Is(c) {
		return c, err
	}

	e.log.WithField("effect", fmt.Sprintf("%T", c)).Debug("unwrap")

	v, err := task.Unwrap(ctx, c, e)

	return v, fault.Unwind(err, b.Pos())
}

// Import loads the file at path unless a file with the same resolved path has
// already been loaded. A path whose last element is a pattern imports
// every matching file in name order.
func (e *engine) Import(ctx context.Context, path string) error {
	dir, pattern := filepath.Split(path)
	if strings.ContainsAny(pattern, `*?[\`) {
		return e.glob(ctx, dir, pattern)
	}

	resolved, err := filepath.Abs(path)
	if err == nil {
		resolved, err = filepath.EvalSymlinks(resolved)
	}

	if err != nil {
		return fault.HostError(err)
	}

	e.Lock()
	loaded := e.loaded[resolved]
	e.loaded[resolved] = true
	e.Unlock()

	if loaded {
		return nil
	}

	text, err := os.ReadFile(resolved)
	if err != nil {
		return fault.HostError(err)
	}

	return e.Load(ctx, resolved, string(text))
}

// Load parses text and executes each of its terms in order. The name
// identifies text in source locations.
func (e *engine) Load(ctx context.Context, name, text string) error {
	e.Lock()
	e.sources[name] = text
	e.Unlock()

	terms, err := reader.Parse(name, text)
	if err != nil {
		return Fault(err)
	}

	e.log.WithFields(logrus.Fields{
		"path":  name,
		"forms": len(terms),
	}).Debug("import")

	for _, t := range terms {
		_, err := e.Execute(ctx, t)
		if err != nil {
			return err
		}
	}

	return nil
}

// Names returns every name defined in the engine, in sorted order.
func (e *engine) Names() []string {
	seen := map[string]bool{}

	var names []string

	for _, g := range []*env.Global{e.global, e.root} {
		for _, k := range g.Names() {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}

	sort.Strings(names)

	return names
}

// Print writes s to the engine's output.
func (e *engine) Print(s string) error {
	e.outl.Lock()
	defer e.outl.Unlock()

	_, err := io.WriteString(e.out, s)

	return err
}

// Println writes a newline to the engine's output.
func (e *engine) Println() error {
	return e.Print("\n")
}

// Report describes err the way it is shown to users. A fault is followed
// by the locations it passed through, where they are known.
func (e *engine) Report(err error) string {
	f, ok := fault.As(Fault(err))
	if !ok {
		return err.Error() + "\n"
	}

	var b strings.Builder

	b.WriteString("Program panicked with following message: " + f.Message + "\n")

	for _, l := range f.Stack {
		text, ok := e.Source(l.Name)
		if !ok || l.Anonymous() {
			continue
		}

		b.WriteString("at " + l.Name + " -- " + l.Span(text) + ";\n")
	}

	return b.String()
}

// Reset discards the text registered as name.
func (e *engine) Reset(name string) {
	e.Lock()
	defer e.Unlock()

	delete(e.sources, name)
}

// Source returns the text registered as name.
func (e *engine) Source(name string) (string, bool) {
	e.Lock()
	defer e.Unlock()

	text, ok := e.sources[name]

	return text, ok
}

// Fault converts a reader error into a fault. Other errors are returned
// as they are.
func Fault(err error) error {
	if r, ok := err.(*reader.Error); ok {
		return fault.ParseError(r.Message, r.Pos)
	}

	return err
}

func (e *engine) glob(ctx context.Context, dir, pattern string) error {
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fault.HostError(err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matched, err := adapted.Match(pattern, entry.Name())
		if err != nil {
			return fault.HostError(err)
		}

		if matched {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	for _, name := range names {
		err := e.Import(ctx, filepath.Join(dir, name))
		if err != nil {
			return err
		}
	}

	return nil
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t engine

	// The engine type is a world.
	_ = world.I(&t)
}
