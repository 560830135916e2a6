package export

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/isoview/internal/errors"
	"github.com/vango-dev/isoview/pkg/render"
	"github.com/vango-dev/isoview/pkg/router"
	"github.com/vango-dev/isoview/pkg/ssr"
)

// ContentType is stored with every document.
const ContentType = "text/html; charset=utf-8"

// DefaultConcurrency bounds parallel renders when Exporter.Concurrency is 0.
const DefaultConcurrency = 4

// Renderer renders a state to markup. *isoview.StateRouter implements it.
type Renderer interface {
	RenderToHTML(ctx context.Context, name string, params map[string]string, root any, value any) (*ssr.Result, error)
}

// Target is one state to export.
type Target struct {
	State  string
	Params map[string]string
}

// Page records one exported document.
type Page struct {
	Target Target
	Path   string
	Key    string
	Size   int
}

// Report summarizes an export. Pages are sorted by key.
type Report struct {
	Pages    []Page
	Failed   int
	Duration time.Duration
}

// Exporter renders targets and stores them in a Sink.
type Exporter struct {
	Renderer Renderer
	Sink     Sink

	// Document is the shell every body is placed in.
	Document render.Page

	// Concurrency bounds parallel renders.
	Concurrency int

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Export renders every target. All targets are attempted; failures are
// joined into the returned error and counted in the report.
func (e *Exporter) Export(ctx context.Context, targets []Target) (Report, error) {
	start := time.Now()
	log := e.Logger
	if log == nil {
		log = slog.Default()
	}
	limit := e.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	var (
		mu    sync.Mutex
		pages []Page
		errs  []error
		keys  = make(map[string]string)
	)
	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, t := range targets {
		t := t
		g.Go(func() error {
			page, err := e.exportOne(gctx, t, func(key string) bool {
				mu.Lock()
				defer mu.Unlock()
				if _, taken := keys[key]; taken {
					return false
				}
				keys[key] = t.State
				return true
			})
			if err != nil {
				log.Error("export failed", "state", t.State, "error", err)
				fail(err)
				return nil
			}
			log.Debug("exported", "state", t.State, "key", page.Key, "bytes", page.Size)
			mu.Lock()
			pages = append(pages, page)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	sort.Slice(pages, func(i, j int) bool { return pages[i].Key < pages[j].Key })
	report := Report{Pages: pages, Failed: len(errs), Duration: time.Since(start)}
	if len(errs) > 0 {
		return report, stderrors.Join(errs...)
	}
	return report, nil
}

func (e *Exporter) exportOne(ctx context.Context, t Target, claim func(key string) bool) (Page, error) {
	res, err := e.Renderer.RenderToHTML(ctx, t.State, t.Params, nil, nil)
	if err != nil {
		return Page{}, errors.New("E220").WithDetailf("state %q", t.State).Wrap(err)
	}

	key, err := KeyFor(res.Path)
	if err != nil {
		return Page{}, errors.New("E220").WithDetailf("state %q", t.State).Wrap(err)
	}
	if !claim(key) {
		return Page{}, errors.New("E220").
			WithDetailf("state %q renders to %q, which another target already wrote", t.State, key)
	}

	var buf bytes.Buffer
	if err := render.RenderPage(&buf, e.Document.Compose(res.Markup, res.Stylesheets)); err != nil {
		return Page{}, errors.New("E220").WithDetailf("state %q", t.State).Wrap(err)
	}

	if err := e.Sink.Put(ctx, key, buf.Bytes(), ContentType); err != nil {
		return Page{}, errors.New("E221").WithDetailf("key %q", key).Wrap(err)
	}
	return Page{Target: t, Path: res.Path, Key: key, Size: buf.Len()}, nil
}

// KeyFor maps a rendered path to its document key. The query is dropped
// and each segment is unescaped, so the key matches the file a static
// server looks up for the path. A segment that decodes to a separator or a
// dot segment yields ErrInvalidKey.
func KeyFor(path string) (string, error) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return "index.html", nil
	}

	segs := strings.Split(path, "/")
	for i, seg := range segs {
		dec, err := url.PathUnescape(seg)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrInvalidKey, path, err)
		}
		if dec == "" || dec == "." || dec == ".." || strings.ContainsAny(dec, `/\`) {
			return "", fmt.Errorf("%w: segment %q of %q", ErrInvalidKey, seg, path)
		}
		segs[i] = dec
	}
	return strings.Join(segs, "/") + "/index.html", nil
}

// StaticTargets returns a target for every route without parameters,
// sorted by pattern.
func StaticTargets(r *router.Router) []Target {
	static := r.StaticRoutes()
	patterns := make([]string, 0, len(static))
	for p := range static {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)

	targets := make([]Target, 0, len(patterns))
	for _, p := range patterns {
		targets = append(targets, Target{State: static[p]})
	}
	return targets
}

// PathTargets resolves URL paths through r.
func PathTargets(r *router.Router, paths []string) ([]Target, error) {
	targets := make([]Target, 0, len(paths))
	for _, p := range paths {
		m, ok := r.Match(p)
		if !ok {
			return nil, errors.New("E213").WithDetailf("no route matches %q", p).Wrap(router.ErrNoRoute)
		}
		targets = append(targets, Target{State: m.State, Params: m.Params})
	}
	return targets, nil
}
