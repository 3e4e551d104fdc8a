package formatters

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/reqpin/reqpin/pkg/log"
)

var (
	// defaultPrefixStyles contains ANSI color codes that are assigned sequentially to each unique prefix in a rotating order
	// https://www.hackitu.de/termcolor256/
	defaultPrefixStyles = []log.ColorStyle{
		"66", "67", "95", "96", "102", "103", "108", "109", "139", "138", "144", "145",
	}

	// prefixStyle implements PrefixStyle
	_ PrefixStyle = new(prefixStyle)
)

type PrefixStyle interface {
	// ColorFunc creates a closure to avoid computation of the ANSI color code.
	ColorFunc(prefixName string) log.ColorFunc
}

type prefixStyle struct {
	// cache stores prefixes with their color schemes.
	// The formatter can be called from multiple goroutines when resolver
	// output is piped through the logger, hence the concurrent map.
	cache *xsync.MapOf[string, log.ColorFunc]

	availableStyles []log.ColorStyle

	// nextStyleIndex is used to get the next style from the `defaultPrefixStyles` list for a newly discovered prefix.
	nextStyleIndex int
}

func NewPrefixStyle() *prefixStyle {
	return &prefixStyle{
		cache:           xsync.NewMapOf[string, log.ColorFunc](),
		availableStyles: defaultPrefixStyles,
	}
}

func (prefix *prefixStyle) ColorFunc(prefixName string) log.ColorFunc {
	if colorFunc, ok := prefix.cache.Load(prefixName); ok {
		return colorFunc
	}

	if prefix.nextStyleIndex >= len(prefix.availableStyles) {
		prefix.nextStyleIndex = 0
	}

	colorFunc := prefix.availableStyles[prefix.nextStyleIndex].ColorFunc()

	prefix.cache.Store(prefixName, colorFunc)

	prefix.nextStyleIndex++

	return colorFunc
}
