// Package i18n loads JSON translation catalogs and resolves the language of
// a request.
//
// Catalogs live under <dir>/<language>/<namespace>.json. A key is addressed
// as "<namespace>.<path>.<to>.<leaf>" and may carry {name} placeholders.
package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

type Args map[string]any

type Catalog struct {
	fallback string
	names    []string
	matcher  language.Matcher
	messages map[string]map[string]string
}

func Load(dir, fallback string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read i18n dir: %w", err)
	}
	c := &Catalog{fallback: fallback, messages: map[string]map[string]string{}}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		msgs, err := loadLanguage(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("load language %s: %w", e.Name(), err)
		}
		c.messages[e.Name()] = msgs
	}
	if _, ok := c.messages[fallback]; !ok {
		return nil, fmt.Errorf("fallback language %q has no catalog in %s", fallback, dir)
	}

	// The fallback goes first so the matcher uses it as its default.
	c.names = append(c.names, fallback)
	others := make([]string, 0, len(c.messages))
	for name := range c.messages {
		if name != fallback {
			others = append(others, name)
		}
	}
	sort.Strings(others)
	c.names = append(c.names, others...)

	tags := make([]language.Tag, 0, len(c.names))
	for _, name := range c.names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("parse language %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

func loadLanguage(dir string) (map[string]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		var tree map[string]any
		if err := json.Unmarshal(b, &tree); err != nil {
			return nil, fmt.Errorf("decode %s: %w", f, err)
		}
		ns := strings.TrimSuffix(filepath.Base(f), ".json")
		flatten(ns, tree, out)
	}
	return out, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := prefix + "." + k
		switch t := v.(type) {
		case map[string]any:
			flatten(key, t, out)
		case string:
			out[key] = t
		default:
			out[key] = fmt.Sprint(t)
		}
	}
}

func (c *Catalog) Languages() []string {
	return append([]string(nil), c.names...)
}

func (c *Catalog) Fallback() string { return c.fallback }

// Resolve picks the catalog language for a request: an explicit lang query
// value wins, then Accept-Language, then the fallback.
func (c *Catalog) Resolve(query, acceptLanguage string) string {
	if query != "" {
		for _, name := range c.names {
			if strings.EqualFold(name, query) {
				return name
			}
		}
	}
	if acceptLanguage == "" {
		return c.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.names[idx]
}

// T translates key in lang. Unknown keys fall back to the fallback language
// and finally to the key itself.
func (c *Catalog) T(lang, key string, args Args) string {
	msg, ok := c.messages[lang][key]
	if !ok {
		msg, ok = c.messages[c.fallback][key]
	}
	if !ok {
		return key
	}
	return interpolate(msg, args)
}

func interpolate(msg string, args Args) string {
	if len(args) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(args)*2)
	for k, v := range args {
		pairs = append(pairs, "{"+k+"}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Translator binds a catalog to one language.
type Translator struct {
	catalog *Catalog
	Lang    string
}

func (c *Catalog) For(lang string) Translator {
	return Translator{catalog: c, Lang: lang}
}

func (t Translator) T(key string, args ...Args) string {
	if t.catalog == nil {
		return key
	}
	var a Args
	if len(args) > 0 {
		a = args[0]
	}
	return t.catalog.T(t.Lang, key, a)
}

type langKey struct{}

func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

func LanguageFrom(ctx context.Context) (string, bool) {
	lang, ok := ctx.Value(langKey{}).(string)
	return lang, ok && lang != ""
}

// FromContext returns a translator for the request language stored in ctx,
// or for the fallback language.
func (c *Catalog) FromContext(ctx context.Context) Translator {
	if lang, ok := LanguageFrom(ctx); ok {
		return c.For(lang)
	}
	return c.For(c.fallback)
}
