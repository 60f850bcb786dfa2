package events

import (
	"fmt"

	"github.com/zeusync/murker/internal/core/geometry"
)

// EntityID identifies an entity inside a world.
type EntityID uint64

// Kind tags the variant of an Event.
type Kind uint8

const (
	KindTurn Kind = iota
	KindMove
	KindAttack
	KindInitAttack
	KindCanSee
)

func (k Kind) String() string {
	switch k {
	case KindTurn:
		return "Turn"
	case KindMove:
		return "Move"
	case KindAttack:
		return "Attack"
	case KindInitAttack:
		return "InitAttack"
	case KindCanSee:
		return "CanSee"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Event is a request or notification delivered to an entity's components.
// The set of events is closed: only the types declared in this package implement it.
type Event interface {
	Kind() Kind
	event()
}

// Turn asks an entity to act now.
type Turn struct{}

// Move asks an entity to relocate to Destination.
type Move struct {
	Destination geometry.Point
}

// Attack is a landed blow carrying Damage hit points.
type Attack struct {
	Damage int
}

// InitAttack is an intent to attack Target. The attacking entity resolves it into
// an Attack sent to the target.
type InitAttack struct {
	Target EntityID
}

// CanSee reports that Who entered the perception of the receiving entity.
type CanSee struct {
	Who EntityID
}

func (Turn) Kind() Kind       { return KindTurn }
func (Move) Kind() Kind       { return KindMove }
func (Attack) Kind() Kind     { return KindAttack }
func (InitAttack) Kind() Kind { return KindInitAttack }
func (CanSee) Kind() Kind     { return KindCanSee }

func (Turn) event()       {}
func (Move) event()       {}
func (Attack) event()     {}
func (InitAttack) event() {}
func (CanSee) event()     {}

var (
	_ Event = Turn{}
	_ Event = Move{}
	_ Event = Attack{}
	_ Event = InitAttack{}
	_ Event = CanSee{}
)
