// Package resources holds the localized string tables shown by the terminal
// shell. Tables are TOML files embedded at build time; lookups fall back to
// English when the active locale lacks a key.
package resources

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Fallback is the locale every table falls back to.
var Fallback = language.English

// Catalog resolves keys against one active locale. It is safe for concurrent
// use; SetLocale swaps the active table atomically.
type Catalog struct {
	mu       sync.RWMutex
	tables   map[language.Tag]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
	active   language.Tag
	fallback map[string]string
}

// Load parses the embedded tables and activates the locale closest to
// preferred (a BCP 47 tag such as "pt-BR"). Unknown or blank values select
// English.
func Load(preferred string) (*Catalog, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	tables := make(map[language.Tag]map[string]string, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".toml" {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(name, ".toml"))
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", name, err)
		}
		data, err := localeFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("read locale %q: %w", name, err)
		}
		table := map[string]string{}
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("decode locale %q: %w", name, err)
		}
		tables[tag] = table
	}
	fallback, ok := tables[Fallback]
	if !ok {
		return nil, fmt.Errorf("fallback locale %s missing", Fallback)
	}

	// Fallback first so the matcher prefers it on ties.
	tags := []language.Tag{Fallback}
	others := make([]language.Tag, 0, len(tables))
	for tag := range tables {
		if tag != Fallback {
			others = append(others, tag)
		}
	}
	sort.Slice(others, func(i, j int) bool { return others[i].String() < others[j].String() })
	tags = append(tags, others...)

	c := &Catalog{
		tables:   tables,
		tags:     tags,
		matcher:  language.NewMatcher(tags),
		active:   Fallback,
		fallback: fallback,
	}
	c.SetLocale(preferred)
	return c, nil
}

// SetLocale activates the supported locale closest to preferred and returns
// it.
func (c *Catalog) SetLocale(preferred string) language.Tag {
	tag := c.match(preferred)
	c.mu.Lock()
	c.active = tag
	c.mu.Unlock()
	return tag
}

func (c *Catalog) match(preferred string) language.Tag {
	preferred = strings.TrimSpace(preferred)
	if preferred == "" {
		return Fallback
	}
	want, err := language.Parse(preferred)
	if err != nil {
		return Fallback
	}
	_, index, confidence := c.matcher.Match(want)
	if confidence == language.No {
		return Fallback
	}
	return c.tags[index]
}

// Locale reports the active locale.
func (c *Catalog) Locale() language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// Locales lists the supported locales, English first.
func (c *Catalog) Locales() []language.Tag {
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// NextLocale returns the locale after the active one, wrapping around.
func (c *Catalog) NextLocale() language.Tag {
	active := c.Locale()
	for i, tag := range c.tags {
		if tag == active {
			return c.tags[(i+1)%len(c.tags)]
		}
	}
	return Fallback
}

// DisplayName is the locale's name in its own language, e.g. "português".
func DisplayName(tag language.Tag) string {
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return tag.String()
}

// Lookup returns the string for key in the active locale, then English.
func (c *Catalog) Lookup(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.RLock()
	table := c.tables[c.active]
	c.mu.RUnlock()
	if v, ok := table[key]; ok {
		return v, true
	}
	v, ok := c.fallback[key]
	return v, ok
}

// Text is Lookup without the presence flag.
func (c *Catalog) Text(key string) string {
	v, _ := c.Lookup(key)
	return v
}

// Format looks up key and applies fmt-style args. A missing key yields "".
func (c *Catalog) Format(key string, args ...any) string {
	v, ok := c.Lookup(key)
	if !ok {
		return ""
	}
	if len(args) == 0 {
		return v
	}
	return fmt.Sprintf(v, args...)
}
