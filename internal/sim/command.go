package sim

import "github.com/vovakirdan/arcade-sim/internal/core"

// CommandType enumerates the commands a driver can send to a World.
type CommandType uint8

const (
	CmdNone CommandType = iota
	CmdStart
	CmdPause
	CmdResume
	CmdReset
	CmdEnd
	CmdMove
	CmdAimAt
	CmdAimDirection
	CmdSetDirection
	CmdFire
	CmdSpecial
	CmdSecondary
)

// String returns the command name.
func (t CommandType) String() string {
	switch t {
	case CmdStart:
		return "start"
	case CmdPause:
		return "pause"
	case CmdResume:
		return "resume"
	case CmdReset:
		return "reset"
	case CmdEnd:
		return "end"
	case CmdMove:
		return "move"
	case CmdAimAt:
		return "aim_at"
	case CmdAimDirection:
		return "aim_direction"
	case CmdSetDirection:
		return "set_direction"
	case CmdFire:
		return "fire"
	case CmdSpecial:
		return "special"
	case CmdSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// Command is a discrete instruction applied at the start of a tick.
type Command struct {
	Type CommandType
	X, Y float64
	Dir  Direction
}

// Start leaves the idle state.
func Start() Command { return Command{Type: CmdStart} }

// Pause suspends a running session.
func Pause() Command { return Command{Type: CmdPause} }

// Resume continues a paused session.
func Resume() Command { return Command{Type: CmdResume} }

// Reset rebuilds the initial world and returns to idle.
func Reset() Command { return Command{Type: CmdReset} }

// End terminates a running or paused session.
func End() Command { return Command{Type: CmdEnd} }

// Move sets the player's movement intent; (0, 0) stops.
func Move(dx, dy float64) Command { return Command{Type: CmdMove, X: dx, Y: dy} }

// AimAt points the aim at a world position.
func AimAt(p core.Vec) Command { return Command{Type: CmdAimAt, X: p.X, Y: p.Y} }

// AimDirection points the aim along a direction relative to the player.
func AimDirection(dx, dy float64) Command { return Command{Type: CmdAimDirection, X: dx, Y: dy} }

// SetDirection queues a grid heading for the player.
func SetDirection(d Direction) Command { return Command{Type: CmdSetDirection, Dir: d} }

// SetDirectionXY queues the grid heading closest to (dx, dy).
func SetDirectionXY(dx, dy float64) Command { return SetDirection(DirectionFromXY(dx, dy)) }

// Fire triggers the primary weapon.
func Fire() Command { return Command{Type: CmdFire} }

// Special triggers the special weapon (dropped ordnance).
func Special() Command { return Command{Type: CmdSpecial} }

// Secondary triggers the secondary weapon.
func Secondary() Command { return Command{Type: CmdSecondary} }
