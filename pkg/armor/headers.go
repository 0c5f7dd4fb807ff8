package armor

// VersionHeader is the name of the header which is always written first.
const VersionHeader = "Version"

// Headers is an ordered set of armor header entries. The Version entry is always present and
// always listed first; all other entries are listed in the order they were first set.
type Headers struct {
	version string
	names   []string
	values  map[string]string
}

// NewHeaders returns a set of headers containing only a Version entry with the given value.
func NewHeaders(version string) *Headers {
	return &Headers{
		version: version,
		values:  map[string]string{VersionHeader: version},
	}
}

// Set adds or replaces the entry with the given name. Replacing an entry keeps its position.
func (h *Headers) Set(name, value string) {
	if _, ok := h.values[name]; !ok && name != VersionHeader {
		h.names = append(h.names, name)
	}

	h.values[name] = value
}

// Get returns the value of the entry with the given name, if any.
func (h *Headers) Get(name string) (string, bool) {
	v, ok := h.values[name]

	return v, ok
}

// Reset removes all entries and restores the default Version entry.
func (h *Headers) Reset() {
	h.names = nil
	h.values = map[string]string{VersionHeader: h.version}
}

// Names returns the entry names in the order they are written.
func (h *Headers) Names() []string {
	names := make([]string, 0, len(h.names)+1)
	names = append(names, VersionHeader)

	return append(names, h.names...)
}

// Len returns the number of entries, including Version.
func (h *Headers) Len() int {
	return len(h.names) + 1
}

// Clone returns an independent copy of the headers.
func (h *Headers) Clone() *Headers {
	c := &Headers{
		version: h.version,
		names:   append([]string(nil), h.names...),
		values:  make(map[string]string, len(h.values)),
	}

	for k, v := range h.values {
		c.values[k] = v
	}

	return c
}
