package domain

import (
	"net/url"
	"strings"
)

// Reference names a catalogue entity.
type Reference struct {
	Kind EntityKind
	ID   string
}

// String returns the canonical "kind:id" form.
func (r Reference) String() string {
	return string(r.Kind) + ":" + r.ID
}

// ParseReference parses user input naming a catalogue entity. Accepted forms:
//
//	track:3135556
//	album/302127
//	https://www.example.com/en/playlist/908622995?utm_source=share
func ParseReference(s string) (Reference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Reference{}, ErrInvalidReference.WithDetails("empty reference")
	}

	var segments []string
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return Reference{}, ErrInvalidReference.WithDetails(s).WithCause(err)
		}
		segments = strings.Split(strings.Trim(u.Path, "/"), "/")
	} else {
		segments = strings.FieldsFunc(s, func(r rune) bool { return r == ':' || r == '/' })
	}

	// The kind is the segment right before the id; URL paths may carry a
	// locale prefix.
	if len(segments) < 2 {
		return Reference{}, ErrInvalidReference.WithDetails(s)
	}
	kindSeg, id := segments[len(segments)-2], segments[len(segments)-1]

	kind, ok := ParseEntityKind(kindSeg)
	if !ok {
		return Reference{}, ErrInvalidReference.WithDetailsf("unknown kind %q", kindSeg)
	}
	if !validID(id) {
		return Reference{}, ErrInvalidReference.WithDetailsf("invalid id %q", id)
	}

	return Reference{Kind: kind, ID: id}, nil
}

// validID accepts decimal ids; user-uploaded tracks carry negative ids.
func validID(id string) bool {
	id = strings.TrimPrefix(id, "-")
	if id == "" {
		return false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
