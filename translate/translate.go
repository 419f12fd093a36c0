// Package translate formats user-visible messages for a locale.
//
// The locale defaults to the user's desktop or environment setting, and
// can be overridden with SetLanguage.
package translate

import (
	"log"
	"slices"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

const DEFAULT_LANGUAGE = "en-US"

var (
	mutex   sync.Mutex
	printer *message.Printer
)

// SetLanguage selects the best match among the BCP 47 tags given. With no
// tags, the locale is discovered from the host again.
func SetLanguage(tags ...string) {
	mutex.Lock()
	defer mutex.Unlock()

	printer = newPrinter(tags)
}

// Languages returns the language tags messages are matched against.
func Languages() []string {
	mutex.Lock()
	defer mutex.Unlock()

	if printer == nil {
		printer = newPrinter(nil)
	}

	return slices.Clone(current)
}

// current are the tags of the active printer.
var current []string

func newPrinter(tags []string) *message.Printer {
	if len(tags) == 0 {
		var err error
		tags, err = locale.GetLocales()
		if err != nil {
			log.Printf("translate: locale: %v", err)
		}
	}

	if len(tags) == 0 {
		tags = []string{DEFAULT_LANGUAGE}
	}

	current = tags
	return message.NewPrinter(message.MatchLanguage(tags...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	mutex.Lock()
	if printer == nil {
		printer = newPrinter(nil)
	}
	p := printer
	mutex.Unlock()

	return p.Sprintf(key, args...)
}
