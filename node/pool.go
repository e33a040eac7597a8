package node

import (
	"time"

	"github.com/fzft/go-numeric-display/log"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DefaultCapacity is the number of simultaneous clients the display tracks.
const DefaultCapacity = 4

// SlotPool is a fixed array of connection slots. Admission never fails: when
// every slot is taken the least recently active client is kicked out.
type SlotPool struct {
	slots []Slot
}

func NewSlotPool(capacity int) *SlotPool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &SlotPool{slots: make([]Slot, capacity)}
}

// Len returns the fixed capacity of the pool.
func (p *SlotPool) Len() int {
	return len(p.slots)
}

// Connected returns the number of occupied slots.
func (p *SlotPool) Connected() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].connected {
			n++
		}
	}
	return n
}

// Acquire returns the slot index that conn should occupy: the lowest free
// slot, or else the least recently active one, which is disconnected first.
// The caller attaches conn and stamps the slot.
func (p *SlotPool) Acquire(conn Conn) int {
	for i := range p.slots {
		if !p.slots[i].connected {
			log.Logger.Debug("found free slot", zap.Int("slot", i))
			return i
		}
	}

	victim := p.oldest(func(s *Slot) bool { return s.connected })
	log.Logger.Info("pool full, evicting least recently active client",
		zap.Int("slot", victim),
		zap.String("ip", p.slots[victim].conn.Ip()),
		zap.Time("lastActivity", p.slots[victim].lastActivity))
	p.Disconnect(victim)
	return victim
}

// OldestReady returns the complete slot with the smallest lastActivity.
func (p *SlotPool) OldestReady() (int, bool) {
	i := p.oldest(func(s *Slot) bool { return s.complete })
	return i, i >= 0
}

// oldest scans for the matching slot with the smallest lastActivity.
// Equal timestamps go to the lower index. Returns -1 when nothing matches.
func (p *SlotPool) oldest(match func(s *Slot) bool) int {
	best := -1
	var bestTime time.Time
	for i := range p.slots {
		s := &p.slots[i]
		if !match(s) {
			continue
		}
		if best < 0 || s.lastActivity.Before(bestTime) {
			best = i
			bestTime = s.lastActivity
		}
	}
	return best
}

// attach puts conn into slot i, stamped with now.
func (p *SlotPool) attach(i int, conn Conn, now time.Time) {
	s := &p.slots[i]
	s.conn = conn
	s.connected = true
	s.lastActivity = now
}

// Reset discards the buffered message of slot i. The connection is untouched.
func (p *SlotPool) Reset(i int) {
	s := &p.slots[i]
	s.buffer = s.buffer[:0]
	s.complete = false
}

// Disconnect closes the connection of slot i and frees the slot.
func (p *SlotPool) Disconnect(i int) {
	s := &p.slots[i]
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			log.Logger.Debug("close client failed", zap.Int("slot", i), zap.Error(err))
		}
	}
	s.conn = nil
	s.connected = false
	s.lastActivity = time.Time{}
	p.Reset(i)
	log.Logger.Debug("client disconnected", zap.Int("slot", i))
}

// take copies out the complete message of slot i and frees its buffer for the next line.
func (p *SlotPool) take(i int) string {
	msg := string(p.slots[i].buffer)
	p.Reset(i)
	return msg
}

func (p *SlotPool) Snapshot() []SlotStatus {
	out := make([]SlotStatus, len(p.slots))
	for i := range p.slots {
		s := &p.slots[i]
		out[i] = SlotStatus{
			Index:        i,
			State:        s.State(),
			LastActivity: s.lastActivity,
			Buffered:     len(s.buffer),
		}
		if s.conn != nil {
			out[i].Ip = s.conn.Ip()
		}
	}
	return out
}

// CloseAll disconnects every occupied slot.
func (p *SlotPool) CloseAll() error {
	var err error
	for i := range p.slots {
		s := &p.slots[i]
		if !s.connected {
			continue
		}
		err = multierr.Append(err, s.conn.Close())
		s.conn = nil
		s.connected = false
		s.lastActivity = time.Time{}
		p.Reset(i)
	}
	return err
}
