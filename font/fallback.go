package font

import (
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	builtinOnce    sync.Once
	builtinSources []*Source
)

// Builtins returns the embedded Go font family (regular, bold, italic,
// mono), parsed once on first use. The data ships inside the binary, so
// a catalog always has at least these four sources to fall back on.
func Builtins() []*Source {
	builtinOnce.Do(func() {
		for _, data := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gomono.TTF} {
			s, err := NewSource(data)
			if err != nil {
				continue
			}
			builtinSources = append(builtinSources, s)
		}
	})
	return builtinSources
}
