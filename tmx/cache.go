package tmx

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/milk9111/evermaze/common"
	"golang.org/x/sync/errgroup"
)

const (
	objectCacheLimit = 10
	configCacheLimit = 3
)

// MapSource loads a tile map by name.
type MapSource func(name string) (Map, error)

// ConfigSource loads a tmx config by name.
type ConfigSource func(name string) (Config, error)

// Cache builds and keeps the coordinate index of each loaded map. One
// cache is created at startup and handed to the scenes that need it.
type Cache struct {
	mu      sync.Mutex
	maps    MapSource
	configs ConfigSource
	opts    []Option

	objects     map[string]*Object
	objectOrder []string
	cfgs        map[string]Config
	cfgOrder    []string
}

func NewCache(maps MapSource, configs ConfigSource, opts ...Option) *Cache {
	return &Cache{
		maps:    maps,
		configs: configs,
		opts:    opts,
		objects: make(map[string]*Object),
		cfgs:    make(map[string]Config),
	}
}

// Load returns the object of map name, building it with the config of
// mode if it is not cached yet.
func (c *Cache) Load(name string, mode common.Mode) (*Object, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if obj, ok := c.objects[name]; ok {
		return obj, nil
	}
	cfg, err := c.config(ConfigName(mode))
	if err != nil {
		return nil, err
	}
	obj, err := c.build(name, cfg)
	if err != nil {
		return nil, err
	}
	c.store(name, obj)
	return obj, nil
}

// Preload builds the objects of several maps concurrently.
func (c *Cache) Preload(ctx context.Context, names []string, mode common.Mode) error {
	c.mu.Lock()
	cfg, err := c.config(ConfigName(mode))
	c.mu.Unlock()
	if err != nil {
		return err
	}

	built := make([]*Object, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		if c.Has(name) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			obj, err := c.build(name, cfg)
			if err != nil {
				return err
			}
			built[i] = obj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, obj := range built {
		if obj == nil {
			continue
		}
		if _, ok := c.objects[names[i]]; ok {
			continue
		}
		c.store(names[i], obj)
	}
	return nil
}

// Get returns a loaded object. Asking for a map that was never loaded is
// a programming error.
func (c *Cache) Get(name string) *Object {
	c.mu.Lock()
	defer c.mu.Unlock()
	obj, ok := c.objects[name]
	if !ok {
		panic(fmt.Sprintf("tmx: object %q not loaded", name))
	}
	return obj
}

func (c *Cache) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.objects[name]
	return ok
}

// Remove drops a cached object so the next Load rebuilds it.
func (c *Cache) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.objects[name]; !ok {
		return
	}
	delete(c.objects, name)
	c.objectOrder = without(c.objectOrder, name)
}

// Len returns the number of cached objects.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.objects)
}

func (c *Cache) build(name string, cfg Config) (*Object, error) {
	if c.maps == nil {
		return nil, fmt.Errorf("tmx: no map source")
	}
	m, err := c.maps(name)
	if err != nil {
		return nil, fmt.Errorf("tmx: load map %s: %w", name, err)
	}
	obj, err := New(m, cfg.Layers, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("tmx: build %s: %w", name, err)
	}
	log.Printf("tmx: built %s with %s (%d layers)", name, cfg.Name, len(cfg.Layers))
	return obj, nil
}

func (c *Cache) config(name string) (Config, error) {
	if cfg, ok := c.cfgs[name]; ok {
		return cfg, nil
	}
	if c.configs == nil {
		return Config{}, fmt.Errorf("tmx: no config source")
	}
	cfg, err := c.configs(name)
	if err != nil {
		return Config{}, fmt.Errorf("tmx: load config %s: %w", name, err)
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	if len(c.cfgOrder) >= configCacheLimit {
		c.cfgOrder = evictHalf(c.cfgOrder, func(key string) { delete(c.cfgs, key) })
	}
	c.cfgs[name] = cfg
	c.cfgOrder = append(c.cfgOrder, name)
	return cfg, nil
}

func (c *Cache) store(name string, obj *Object) {
	if len(c.objectOrder) >= objectCacheLimit {
		c.objectOrder = evictHalf(c.objectOrder, func(key string) { delete(c.objects, key) })
	}
	c.objects[name] = obj
	c.objectOrder = append(c.objectOrder, name)
}

// evictHalf drops the oldest half of order, rounding up.
func evictHalf(order []string, drop func(string)) []string {
	n := (len(order) + 1) / 2
	for _, key := range order[:n] {
		drop(key)
	}
	return append([]string(nil), order[n:]...)
}

func without(order []string, name string) []string {
	out := order[:0]
	for _, key := range order {
		if key != name {
			out = append(out, key)
		}
	}
	return out
}
