// internal/status/snapshot.go
package status

// Snapshot is the bridge-side view of device health.
// It is owned by the bridge loop and carries no memory beyond current state.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16
}

// Observe folds one poll outcome into the snapshot.
// It reports whether anything changed.
func (s *Snapshot) Observe(err error) bool {
	if err == nil {
		changed := s.Health != HealthOK || s.LastErrorCode != 0 || s.SecondsInError != 0
		s.Health = HealthOK
		s.LastErrorCode = 0
		s.SecondsInError = 0
		return changed
	}

	code := Of(err).Code()
	changed := s.Health != HealthError || s.LastErrorCode != code
	s.Health = HealthError
	s.LastErrorCode = code
	return changed
}

// Tick advances the error duration by one second while not healthy.
// The counter saturates and never wraps.
func (s *Snapshot) Tick() {
	if s.Health == HealthOK {
		return
	}
	if s.SecondsInError < SecondsInErrorMax {
		s.SecondsInError++
	}
}
