package gamemap

import "sort"

var handlers = make(map[string]FormatHandler)

// Register records a format handler for later lookup by id. It is meant
// to be called from the init function of a format package; the registry
// is read-only once the program is running, so Register must not be
// called after startup.
func Register(h FormatHandler) {
	handlers[h.Metadata().ID] = h
}

// Find returns the handler registered under id, or nil if the id is
// unknown.
func Find(id string) FormatHandler {
	return handlers[id]
}

// Formats returns every registered handler, sorted by id.
func Formats() []FormatHandler {
	ids := make([]string, 0, len(handlers))
	for id := range handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	all := make([]FormatHandler, len(ids))
	for i, id := range ids {
		all[i] = handlers[id]
	}
	return all
}
