package airport

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Status is the flight state of a plane
type Status int

const (
	Flying Status = iota
	Landed
)

func (s Status) String() string {
	switch s {
	case Flying:
		return "flying"
	case Landed:
		return "landed"
	default:
		return "unknown"
	}
}

// Plane is a single aircraft. Its status is only changed by an Airport but
// may be read from any goroutine.
type Plane struct {
	id     string
	status atomic.Int32
}

// NewPlane creates a plane in the air with a fresh identifier
func NewPlane() *Plane {
	p := &Plane{id: uuid.NewString()}
	p.setStatus(Flying)
	return p
}

func (p *Plane) ID() string {
	return p.id
}

func (p *Plane) Status() Status {
	return Status(p.status.Load())
}

func (p *Plane) setStatus(s Status) {
	p.status.Store(int32(s))
}
