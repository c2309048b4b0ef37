// Package polytone models the assets of a Polytone resource pack: colormaps,
// biome ID mappers and the modifiers that tie them to game content.
package polytone

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidNamespace reports a string that does not match the namespace grammar.
var ErrInvalidNamespace = errors.New("invalid namespace")

// namespacePattern matches "scope:localName". The local name may contain
// path separators, the scope may not.
var namespacePattern = regexp.MustCompile(`^(?P<scope>[a-z0-9._-]+):(?P<local>[a-z0-9/._-]+)$`)

// Namespace identifies one concrete asset within an owning scope, typically
// "<pack id>:<asset name>". The zero value is the empty namespace.
type Namespace struct {
	Scope     string
	LocalName string
}

// ParseNamespace parses the "scope:localName" string form.
func ParseNamespace(s string) (Namespace, error) {
	m := namespacePattern.FindStringSubmatch(s)
	if m == nil {
		return Namespace{}, fmt.Errorf("%w: %q", ErrInvalidNamespace, s)
	}
	return Namespace{Scope: m[1], LocalName: m[2]}, nil
}

// String returns the namespace as "scope:localName".
func (n Namespace) String() string {
	return n.Scope + ":" + n.LocalName
}

// IsZero reports whether the namespace is empty.
func (n Namespace) IsZero() bool {
	return n.Scope == "" && n.LocalName == ""
}

// Compare orders namespaces lexicographically by (scope, localName).
func (n Namespace) Compare(o Namespace) int {
	if c := strings.Compare(n.Scope, o.Scope); c != 0 {
		return c
	}
	return strings.Compare(n.LocalName, o.LocalName)
}
