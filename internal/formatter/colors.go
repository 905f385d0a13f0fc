package formatter

import (
	"strings"

	"github.com/fatih/color"
)

// Role identifies the part of the output a piece of text plays, for
// colouring.
type Role int

const (
	KeyRole Role = iota
	StringRole
	NumberRole
	BoolRole
	NullRole
	ConstructorRole
	PunctRole
)

// Colors maps output roles to colouring functions.
type Colors struct {
	Default func(string, ...any) string
	Map     map[Role]func(string, ...any) string
}

// NewColors returns the default terminal colour scheme.
func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map: map[Role]func(string, ...any) string{
			KeyRole:         color.RGB(128, 168, 196).SprintfFunc(),
			StringRole:      color.RGB(8, 196, 16).SprintfFunc(),
			NumberRole:      color.RGB(128, 216, 236).SprintfFunc(),
			BoolRole:        color.CyanString,
			NullRole:        color.RGB(168, 0, 196).SprintfFunc(),
			ConstructorRole: color.RGB(196, 168, 128).SprintfFunc(),
			PunctRole:       color.RGB(196, 128, 128).SprintfFunc(),
		},
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

// Color renders s in the colour for r.
func (c *Colors) Color(r Role, s string) string {
	if c == nil {
		return s
	}
	f := c.Map[r]
	if f == nil {
		return c.Default(s)
	}
	return f(s)
}
