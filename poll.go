package drift

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxPointers bounds tracked pointers: slot 0 = mouse, 1-9 = touches.
const maxPointers = 10

type pollState struct {
	down         bool
	lastX, lastY float64
}

// Poller bridges ebiten's polled cursor and touch APIs into the router's
// event surface. Call Poll once per Update tick, before Engine.Update, so
// input lands before animation advancement.
type Poller struct {
	rt *Router

	mouse     pollState
	touches   [maxPointers]pollState
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool

	touchIDs []ebiten.TouchID
}

// NewPoller creates a poller feeding the given router.
func NewPoller(rt *Router) *Poller {
	return &Poller{rt: rt}
}

// Poll reads the current mouse and touch state and synthesizes pointer
// events for every transition since the last call.
func (p *Poller) Poll(now time.Time) {
	p.pollMouse(now)
	p.pollTouches(now)
}

func (p *Poller) pollMouse(now time.Time) {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !p.mouse.down:
		p.mouse.down = true
		p.rt.PointerDown(mousePointerID, x, y, false, now)
	case pressed && p.mouse.down:
		if x != p.mouse.lastX || y != p.mouse.lastY {
			p.rt.PointerMove(mousePointerID, x, y, false, now)
		}
	case !pressed && p.mouse.down:
		p.mouse.down = false
		p.rt.PointerUp(mousePointerID, x, y, false, now)
	}
	p.mouse.lastX = x
	p.mouse.lastY = y
}

func (p *Poller) pollTouches(now time.Time) {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range p.touchIDs {
		slot := p.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		x, y := float64(tx), float64(ty)
		st := &p.touches[slot]
		if !st.down {
			st.down = true
			p.rt.PointerDown(slot, x, y, true, now)
		} else if x != st.lastX || y != st.lastY {
			p.rt.PointerMove(slot, x, y, true, now)
		}
		st.lastX = x
		st.lastY = y
	}

	// Release slots whose touch has lifted, at the last seen position.
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && !active[i] {
			st := &p.touches[i]
			if st.down {
				st.down = false
				p.rt.PointerUp(i, st.lastX, st.lastY, true, now)
			}
			p.touchUsed[i] = false
			p.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9). Returns the
// existing slot or allocates a new one; -1 if full.
func (p *Poller) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && p.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !p.touchUsed[i] {
			p.touchUsed[i] = true
			p.touchMap[i] = tid
			return i
		}
	}
	return -1
}
