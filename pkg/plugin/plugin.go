// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plugin

import (
	"path/filepath"
	"sync"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/remodel/pkg/operation"
	"github.com/walteh/remodel/pkg/spec"
)

// 🔌 Plugin contributes declarations and methods to a generated class
type Plugin interface {
	// 📛 Name is the name used in includes(...) and excludes(...)
	Name() string

	// 🧩 Contribute adds this plugin's output for t to c
	Contribute(t spec.Type, c *Class) error
}

// 🏭 Factory creates a new plugin
type Factory func() Plugin

// DefaultIncludes are the plugins applied to every type when the project
// does not configure its own list.
var DefaultIncludes = []string{"Copying", "Description", "Equality"}

// ⚙️ Config is the project-wide plugin selection
type Config struct {
	DefaultIncludes []string
	DefaultExcludes []string
}

// 🗺️ Registry maps plugin names to factories. Plugins run in registration
// order.
type Registry struct {
	mu        sync.RWMutex
	order     []string
	factories map[string]Factory
	required  map[string]bool
}

// 🏭 NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		required:  make(map[string]bool),
	}
}

// 📦 Builtin returns a registry holding the built-in plugins with Init
// required
func Builtin() *Registry {
	r := NewRegistry()
	for _, p := range []Plugin{Init{}, Copying{}, Description{}, Equality{}} {
		p := p
		if err := r.Register(p.Name(), func() Plugin { return p }); err != nil {
			panic(err)
		}
	}
	if err := r.Require("Init"); err != nil {
		panic(err)
	}
	return r
}

// 📝 Register registers a plugin factory
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" || factory == nil {
		return errors.New("plugin name and factory are required")
	}
	if _, ok := r.factories[name]; ok {
		return errors.Errorf("plugin %q already registered", name)
	}
	r.factories[name] = factory
	r.order = append(r.order, name)
	return nil
}

// 🔒 Require marks a registered plugin as active for every type
func (r *Registry) Require(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; !ok {
		return errors.Errorf("unknown plugin %q", name)
	}
	r.required[name] = true
	return nil
}

// 📋 Names lists the registered plugins in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// 🎯 Resolve returns the plugins active for t: the defaults minus the
// default excludes, plus the type's includes, minus the type's excludes.
// Required plugins are always active.
func (r *Registry) Resolve(t spec.Type, cfg Config) ([]Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	known := func(names []string) []string {
		var ok []string
		for _, name := range names {
			if _, found := r.factories[name]; !found {
				errs = append(errs, errors.Errorf("unknown plugin %q", name))
				continue
			}
			ok = append(ok, name)
		}
		return ok
	}

	defaults := cfg.DefaultIncludes
	if len(defaults) == 0 {
		defaults = DefaultIncludes
	}

	active := map[string]bool{}
	for _, name := range known(defaults) {
		active[name] = true
	}
	for _, name := range known(cfg.DefaultExcludes) {
		delete(active, name)
	}
	for _, name := range known(t.Includes) {
		active[name] = true
	}
	for _, name := range known(t.Excludes) {
		if r.required[name] {
			errs = append(errs, errors.Errorf("plugin %q cannot be excluded", name))
			continue
		}
		delete(active, name)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var plugins []Plugin
	for _, name := range r.order {
		if active[name] || r.required[name] {
			plugins = append(plugins, r.factories[name]())
		}
	}
	return plugins, nil
}

// 🧱 Build runs the active plugins for t over a fresh class
func (r *Registry) Build(t spec.Type, cfg Config) (*Class, error) {
	plugins, err := r.Resolve(t, cfg)
	if err != nil {
		return nil, err
	}

	c := &Class{Name: t.Name, Comments: t.Comments}
	for _, p := range plugins {
		if err := p.Contribute(t, c); err != nil {
			return nil, errors.Errorf("plugin %s: %w", p.Name(), err)
		}
	}
	return c, nil
}

// 🚀 Generate renders the header and implementation for the type parsed
// from path. Both files are written next to path.
func (r *Registry) Generate(path string, t spec.Type, cfg Config) (operation.WriteRequest, error) {
	c, err := r.Build(t, cfg)
	if err != nil {
		return operation.WriteRequest{}, err
	}

	dir := filepath.Dir(path)
	input := filepath.Base(path)
	return operation.WriteRequest{
		Name: t.Name,
		Files: []operation.File{
			{Path: filepath.Join(dir, t.Name+".h"), Content: []byte(RenderHeader(c, input))},
			{Path: filepath.Join(dir, t.Name+".m"), Content: []byte(RenderImplementation(c, input))},
		},
	}, nil
}
