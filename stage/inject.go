package stage

// syntheticScroll is a single injected event: a relative wheel delta, an
// absolute offset, a section jump or a viewport resize.
type syntheticScroll struct {
	delta    float64
	to       float64
	absolute bool
	section  int
	jump     bool
	height   float64
	resize   bool
}

// InjectScroll queues a relative scroll of delta pixels. The event is
// consumed on the next Update, in place of real input for that frame.
func (s *Stage) InjectScroll(delta float64) {
	s.injectQueue = append(s.injectQueue, syntheticScroll{delta: delta})
}

// InjectScrollTo queues a jump to an absolute offset.
func (s *Stage) InjectScrollTo(offset float64) {
	s.injectQueue = append(s.injectQueue, syntheticScroll{to: offset, absolute: true})
}

// InjectSection queues an animated scroll to the top of section i.
func (s *Stage) InjectSection(i int) {
	s.injectQueue = append(s.injectQueue, syntheticScroll{section: i, jump: true})
}

// InjectResize queues a viewport height change, as if the window had been
// resized.
func (s *Stage) InjectResize(height float64) {
	s.injectQueue = append(s.injectQueue, syntheticScroll{height: height, resize: true})
}

// InjectSwipe queues a scroll of total pixels spread evenly across frames
// frames, like a trackpad gesture. Minimum frames is 1.
func (s *Stage) InjectSwipe(total float64, frames int) {
	frames = max(frames, 1)
	step := total / float64(frames)
	for range frames {
		s.InjectScroll(step)
	}
}

// processInjectedInput pops one event from the queue and applies it to the
// viewport. Returns true if an event was consumed.
func (s *Stage) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch {
	case evt.resize:
		s.viewport.SetHeight(evt.height)
	case evt.jump:
		s.viewport.ScrollToSection(evt.section, s.ScrollDuration, nil)
	case evt.absolute:
		s.viewport.ScrollTo(evt.to)
	default:
		s.viewport.ScrollBy(evt.delta)
	}
	return true
}
