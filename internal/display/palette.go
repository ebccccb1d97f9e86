package display

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/csvscope/internal/config"
	"github.com/dshills/csvscope/internal/renderer/core"
)

// Role names a group of cells painted with one color pair.
type Role uint8

const (
	RoleHeaderEven Role = iota
	RoleHeaderOdd
	RoleValueEven
	RoleValueOdd
	RoleBackground

	roleCount
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleHeaderEven:
		return "header-even"
	case RoleHeaderOdd:
		return "header-odd"
	case RoleValueEven:
		return "value-even"
	case RoleValueOdd:
		return "value-odd"
	case RoleBackground:
		return "background"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// HeaderRole returns the header role for a column index.
func HeaderRole(column int) Role {
	if column%2 == 1 {
		return RoleHeaderOdd
	}
	return RoleHeaderEven
}

// ValueRole returns the value role for a column index.
func ValueRole(column int) Role {
	if column%2 == 1 {
		return RoleValueOdd
	}
	return RoleValueEven
}

// DefaultPaletteSize is the number of color slots a registry may hand out.
const DefaultPaletteSize = 256

// slotsPerRole counts the foreground, background and pair slots a role uses.
const slotsPerRole = 3

// ErrPaletteExhausted is returned when a registration exceeds the budget.
var ErrPaletteExhausted = errors.New("color palette exhausted")

// ColorRegistry assigns color slots to roles from a fixed budget.
type ColorRegistry struct {
	budget     int
	used       int
	styles     [roleCount]core.Style
	registered [roleCount]bool
}

// NewColorRegistry creates a registry with budget slots; budget <= 0 uses
// DefaultPaletteSize.
func NewColorRegistry(budget int) *ColorRegistry {
	if budget <= 0 {
		budget = DefaultPaletteSize
	}
	r := &ColorRegistry{budget: budget}
	for i := range r.styles {
		r.styles[i] = core.DefaultStyle()
	}
	return r
}

// Register assigns colors to a role. Registering a role again replaces its
// colors without using more slots.
func (r *ColorRegistry) Register(role Role, fg, bg core.Color) error {
	if role >= roleCount {
		return fmt.Errorf("unknown color role %s", role)
	}
	if !r.registered[role] {
		if r.used+slotsPerRole > r.budget {
			return ErrPaletteExhausted
		}
		r.used += slotsPerRole
		r.registered[role] = true
	}
	r.styles[role] = core.NewStyle(fg, bg)
	return nil
}

// RegisterTheme registers every role from a theme. Even roles take the
// first color of each list and odd roles the second. Failures are reported
// as a *SetupError naming the role.
func (r *ColorRegistry) RegisterTheme(theme config.Theme) error {
	bg := core.ColorFrom(theme.Background)
	for _, reg := range []struct {
		role   Role
		fg, bg core.Color
	}{
		{RoleHeaderEven, pick(theme.HeaderForeground, false), pick(theme.HeaderBackground, false)},
		{RoleHeaderOdd, pick(theme.HeaderForeground, true), pick(theme.HeaderBackground, true)},
		{RoleValueEven, pick(theme.ValueForeground, false), pick(theme.ValueBackground, false)},
		{RoleValueOdd, pick(theme.ValueForeground, true), pick(theme.ValueBackground, true)},
		{RoleBackground, bg, bg},
	} {
		if err := r.Register(reg.role, reg.fg, reg.bg); err != nil {
			return &SetupError{Resource: "color " + reg.role.String(), Err: err}
		}
	}
	return nil
}

func pick(colors []colorful.Color, odd bool) core.Color {
	return core.ColorFrom(config.Pick(colors, odd))
}

// Style returns the style of a role, or the default style if the role was
// never registered.
func (r *ColorRegistry) Style(role Role) core.Style {
	if role >= roleCount {
		return core.DefaultStyle()
	}
	return r.styles[role]
}

// Used returns the number of slots handed out.
func (r *ColorRegistry) Used() int {
	return r.used
}

// Remaining returns the number of free slots.
func (r *ColorRegistry) Remaining() int {
	return r.budget - r.used
}
