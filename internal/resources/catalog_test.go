package resources

import (
	"testing"

	"golang.org/x/text/language"
)

func TestLoad_DefaultsToEnglish(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.Locale() != language.English {
		t.Fatalf("Locale = %v, want en", c.Locale())
	}
	if got := c.Text("album_list_title"); got != "Top Albums" {
		t.Fatalf("album_list_title = %q, want Top Albums", got)
	}
}

func TestLoad_MatchesRegionalTag(t *testing.T) {
	c, err := Load("pt-BR")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if base, _ := c.Locale().Base(); base.String() != "pt" {
		t.Fatalf("Locale = %v, want pt", c.Locale())
	}
	if got := c.Text("album_list_retry"); got != "Tentar novamente" {
		t.Fatalf("album_list_retry = %q, want Tentar novamente", got)
	}
}

func TestLoad_UnknownLocaleFallsBack(t *testing.T) {
	for _, in := range []string{"ja", "not a tag"} {
		c, err := Load(in)
		if err != nil {
			t.Fatalf("Load(%q) returned error: %v", in, err)
		}
		if c.Locale() != language.English {
			t.Fatalf("Load(%q) Locale = %v, want en", in, c.Locale())
		}
	}
}

func TestLookup_FallsBackToEnglishPerKey(t *testing.T) {
	c, err := Load("es")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	// es.toml has no album_detail_copyright entry.
	v, ok := c.Lookup("album_detail_copyright")
	if !ok || v != "%s" {
		t.Fatalf("Lookup = %q, %v, want English fallback", v, ok)
	}
	if _, ok := c.Lookup("no_such_key"); ok {
		t.Fatalf("Lookup(no_such_key) ok = true, want false")
	}
}

func TestFormat(t *testing.T) {
	c, err := Load("en")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := c.Format("album_detail_tracks", 12); got != "Tracks: 12" {
		t.Fatalf("Format = %q, want Tracks: 12", got)
	}
	if got := c.Format("missing", 1); got != "" {
		t.Fatalf("Format(missing) = %q, want empty", got)
	}
}

func TestNextLocaleCycles(t *testing.T) {
	c, err := Load("en")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	seen := map[language.Tag]bool{}
	for i := 0; i < len(c.Locales()); i++ {
		seen[c.Locale()] = true
		c.SetLocale(c.NextLocale().String())
	}
	if len(seen) != 3 {
		t.Fatalf("cycled through %d locales, want 3", len(seen))
	}
	if c.Locale() != language.English {
		t.Fatalf("Locale after full cycle = %v, want en", c.Locale())
	}
}

func TestNilCatalogLookup(t *testing.T) {
	var c *Catalog
	if v, ok := c.Lookup("album_list_title"); ok || v != "" {
		t.Fatalf("nil Lookup = %q, %v, want empty", v, ok)
	}
}
