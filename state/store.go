package state

import (
	"sync"
	"time"

	"github.com/SSSOC-CAN/treadmill/treadmillrpc"
)

type (
	// StatusListener is called with the new status after every SetStatus
	StatusListener func(treadmillrpc.Status)

	// StatusRegister holds the service status and the time the service came alive
	StatusRegister struct {
		mutex      sync.RWMutex
		notifyLock sync.Mutex
		status     treadmillrpc.Status
		aliveSince int64
		listeners  map[int]StatusListener
		nextID     int
	}
)

// NewStatusRegister creates a StatusRegister in the STARTING state
func NewStatusRegister() *StatusRegister {
	return &StatusRegister{
		status:     treadmillrpc.Status_STARTING,
		aliveSince: time.Now().Unix(),
		listeners:  make(map[int]StatusListener),
	}
}

// SetStatus replaces the current status and notifies subscribers.
// Notifications are delivered in the same order the writes happened.
func (s *StatusRegister) SetStatus(status treadmillrpc.Status) {
	s.notifyLock.Lock()
	defer s.notifyLock.Unlock()
	s.mutex.Lock()
	s.status = status
	listeners := make([]StatusListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mutex.Unlock()
	for _, l := range listeners {
		l(status)
	}
}

// GetStatus returns the current status
func (s *StatusRegister) GetStatus() treadmillrpc.Status {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.status
}

// GetStatusDetails returns the name of the current status
func (s *StatusRegister) GetStatusDetails() string {
	return s.GetStatus().String()
}

// AliveSince returns the unix time at which the register was created
func (s *StatusRegister) AliveSince() int64 {
	return s.aliveSince
}

// Subscribe registers a listener which is called with the current status right away and then after every
// SetStatus. Returns a function to unsubscribe
func (s *StatusRegister) Subscribe(l StatusListener) func() {
	s.notifyLock.Lock()
	defer s.notifyLock.Unlock()
	s.mutex.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	current := s.status
	s.mutex.Unlock()
	l(current)
	return func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		delete(s.listeners, id)
	}
}
