package node

import "time"

type SlotState uint8

const (
	SlotFree SlotState = iota
	SlotConnected
	SlotReceiving
	SlotComplete
)

func (s SlotState) String() string {
	switch s {
	case SlotFree:
		return "free"
	case SlotConnected:
		return "connected"
	case SlotReceiving:
		return "receiving"
	case SlotComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Slot tracks one client connection. Slots live in the SlotPool array and
// are always addressed by index; the conn belongs to the slot holding it.
type Slot struct {
	connected    bool      // a conn is attached and open
	conn         Conn      // owned exclusively while connected
	lastActivity time.Time // accept, byte received, or zero after disconnect
	buffer       []byte    // partial message, or the complete body once complete is set
	complete     bool      // a full line is waiting to be taken
}

func (s *Slot) State() SlotState {
	switch {
	case !s.connected:
		return SlotFree
	case s.complete:
		return SlotComplete
	case len(s.buffer) > 0:
		return SlotReceiving
	default:
		return SlotConnected
	}
}

// SlotStatus is a read-only view of a slot for diagnostics.
type SlotStatus struct {
	Index        int
	State        SlotState
	Ip           string
	LastActivity time.Time
	Buffered     int
}
