// Package qname splits XML qualified names.
package qname

import "strings"

// Split returns the prefix and local part of name. A colon at either end of
// the name does not start a prefix.
func Split(name string) (prefix, local string) {
	i := strings.IndexByte(name, ':')
	if i <= 0 || i == len(name)-1 {
		return "", name
	}
	return name[:i], name[i+1:]
}

// Prefix returns the namespace prefix of name, or "" if it has none.
func Prefix(name string) string {
	p, _ := Split(name)
	return p
}

// LocalName returns name without its prefix.
func LocalName(name string) string {
	_, l := Split(name)
	return l
}

// Join builds a qualified name from prefix and local.
func Join(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// NamespaceDeclPrefix reports whether name is a namespace declaration
// attribute name (xmlns or xmlns:p) and returns the declared prefix, which
// is empty for the default namespace.
func NamespaceDeclPrefix(name string) (string, bool) {
	if !strings.HasPrefix(name, "xmlns") {
		return "", false
	}
	switch {
	case len(name) == 5:
		return "", true
	case name[5] == ':':
		return name[6:], true
	}
	return "", false
}
