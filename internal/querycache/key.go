package querycache

import "strings"

// Key identifies one cached query: a family name plus the parameters that
// scope it, e.g. "patient-appointments:<uid>".
type Key struct {
	name string
	full string
}

func NewKey(name string, parts ...string) Key {
	if len(parts) == 0 {
		return Key{name: name, full: name}
	}
	return Key{name: name, full: name + ":" + strings.Join(parts, ":")}
}

// Name returns the family the key belongs to.
func (k Key) Name() string {
	return k.name
}

func (k Key) String() string {
	return k.full
}

func (k Key) inFamily(name string) bool {
	return k.name == name
}
