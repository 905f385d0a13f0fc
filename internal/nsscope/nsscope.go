// Package nsscope tracks in-scope XML namespace bindings.
package nsscope

const (
	// XMLNamespace is bound to the reserved xml prefix.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
	// XMLNSNamespace is bound to the reserved xmlns prefix.
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

type binding struct {
	prefix string
	uri    string
}

// Manager is a stack of namespace scopes. Bindings added after a PushScope
// are discarded by the matching PopScope.
type Manager struct {
	bindings []binding
	marks    []int
}

// New returns a Manager with the xml and xmlns prefixes bound.
func New() *Manager {
	return &Manager{
		bindings: []binding{
			{prefix: "xml", uri: XMLNamespace},
			{prefix: "xmlns", uri: XMLNSNamespace},
		},
	}
}

// PushScope opens a new scope.
func (m *Manager) PushScope() {
	m.marks = append(m.marks, len(m.bindings))
}

// PopScope discards the bindings of the innermost scope. It reports false
// if there is no scope to pop.
func (m *Manager) PopScope() bool {
	if len(m.marks) == 0 {
		return false
	}
	n := len(m.marks) - 1
	m.bindings = m.bindings[:m.marks[n]]
	m.marks = m.marks[:n]
	return true
}

// AddNamespace binds prefix to uri in the innermost scope. The empty prefix
// names the default namespace.
func (m *Manager) AddNamespace(prefix, uri string) {
	m.bindings = append(m.bindings, binding{prefix: prefix, uri: uri})
}

// LookupNamespace returns the URI bound to prefix. The empty prefix is
// always bound, to "" when no default namespace is in scope.
func (m *Manager) LookupNamespace(prefix string) (string, bool) {
	for i := len(m.bindings) - 1; i >= 0; i-- {
		if m.bindings[i].prefix == prefix {
			return m.bindings[i].uri, true
		}
	}
	if prefix == "" {
		return "", true
	}
	return "", false
}

// Depth returns the number of open scopes.
func (m *Manager) Depth() int {
	return len(m.marks)
}
