package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/isoview"
	"github.com/vango-dev/isoview/internal/config"
	"github.com/vango-dev/isoview/internal/errors"
	"github.com/vango-dev/isoview/pkg/assets"
	"github.com/vango-dev/isoview/pkg/manifest"
	"github.com/vango-dev/isoview/pkg/middleware"
	"github.com/vango-dev/isoview/pkg/render"
	"github.com/vango-dev/isoview/pkg/router"
	"github.com/vango-dev/isoview/pkg/ssr"
)

// project is a loaded isoview.json with its manifest wired into a router.
type project struct {
	cfg      *config.Config
	manifest *manifest.Manifest
	states   *isoview.StateRouter
	routes   *router.Router
	page     render.Page
}

func loadProject(flags *globalFlags) (*project, error) {
	cfg, err := loadConfig(flags.config)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Load(cfg.ManifestPath())
	if err != nil {
		return nil, err
	}

	sr := isoview.New(nil, nil, isoview.Config{
		Placeholder: cfg.Placeholder,
		Middleware: []ssr.Middleware{
			middleware.OpenTelemetry(),
			middleware.Prometheus(),
		},
	})
	for _, s := range m.States() {
		if _, err := sr.AddState(s); err != nil {
			return nil, err
		}
	}

	routes := router.New()
	if err := m.Routes(routes); err != nil {
		return nil, err
	}

	page, err := buildDocument(cfg)
	if err != nil {
		return nil, err
	}

	return &project{cfg: cfg, manifest: m, states: sr, routes: routes, page: page}, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromWorkingDir()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.New("E121").WithDetail(path)
	}
	if info.IsDir() {
		return config.Load(path)
	}
	return config.LoadFile(filepath.Clean(path))
}

// document returns the page shell every body is placed in.
func (p *project) document() render.Page { return p.page }

func buildDocument(cfg *config.Config) (render.Page, error) {
	var m *assets.Manifest
	if path := cfg.AssetsPath(); path != "" {
		var err error
		if m, err = assets.Load(path); err != nil {
			return render.Page{}, err
		}
	}
	resolve := assets.NewResolver(m, cfg.Document.AssetPrefix)

	d := cfg.Document
	page := render.Page{
		Title:       d.Title,
		Lang:        d.Lang,
		StyleSheets: resolve.URLs(d.Stylesheets),
	}
	for _, src := range resolve.URLs(d.Scripts) {
		page.Scripts = append(page.Scripts, render.ScriptTag{
			Src:    src,
			Defer:  true,
			Module: strings.HasSuffix(src, ".mjs"),
		})
	}
	return page, nil
}
