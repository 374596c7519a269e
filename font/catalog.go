package font

// Catalog is the set of font sources one generator draws from. Loading is
// best effort: paths that fail to read or parse are recorded, not fatal,
// and an empty result falls back to the built-in Go fonts. A Catalog is
// immutable after construction and safe for concurrent reads.
type Catalog struct {
	sources  []*Source
	errs     []error
	fallback bool
}

// NewCatalog loads the given font files. It never fails: unusable paths
// are collected as LoadErrors, and when no path yields a source the
// catalog holds Builtins instead.
func NewCatalog(paths ...string) *Catalog {
	c := &Catalog{}
	for _, p := range paths {
		s, err := NewSourceFromFile(p)
		if err != nil {
			c.errs = append(c.errs, &LoadError{Path: p, Err: err})
			continue
		}
		c.sources = append(c.sources, s)
	}
	if len(c.sources) == 0 {
		c.sources = Builtins()
		c.fallback = true
	}
	return c
}

// NewCatalogFromSources builds a catalog around already-loaded sources.
// Nil entries are skipped; an empty result falls back to Builtins.
func NewCatalogFromSources(sources ...*Source) *Catalog {
	c := &Catalog{}
	for _, s := range sources {
		if s == nil {
			continue
		}
		c.sources = append(c.sources, s)
	}
	if len(c.sources) == 0 {
		c.sources = Builtins()
		c.fallback = true
	}
	return c
}

// Len returns the number of sources in the catalog. It is always at
// least one.
func (c *Catalog) Len() int {
	return len(c.sources)
}

// Source returns the i-th source. It panics when i is out of range, like
// a slice index.
func (c *Catalog) Source(i int) *Source {
	return c.sources[i]
}

// UsesFallback reports whether the catalog fell back to the built-in
// fonts because no configured path loaded.
func (c *Catalog) UsesFallback() bool {
	return c.fallback
}

// LoadErrors returns the errors collected while loading, one *LoadError
// per failed path. Callers typically log these and move on.
func (c *Catalog) LoadErrors() []error {
	return c.errs
}
