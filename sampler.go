package cascade

import "math"

// ViewportListener receives raw viewport events. Implementations must not
// block; events may arrive many times per frame.
type ViewportListener interface {
	ViewportScrolled(offset float64)
	ViewportResized(height float64)
}

// Viewport is the scroll container the engine observes. It owns the scroll
// offset; the engine only reads it.
type Viewport interface {
	// ScrollOffset returns the current scroll position in pixels.
	ScrollOffset() float64
	// ViewportHeight returns the current visible height in pixels.
	ViewportHeight() float64
	// Listen registers l for scroll and resize events and returns a function
	// that removes it.
	Listen(l ViewportListener) (cancel func())
}

// SamplerOptions configures a ScrollSampler.
type SamplerOptions struct {
	// DefaultViewportHeight is used when the viewport has never reported a
	// usable height. Zero means DefaultViewportHeight.
	DefaultViewportHeight float64
}

type sampleHandler struct {
	id uint32
	fn func(ScrollSample)
}

// ScrollSampler turns viewport events into at most one ScrollSample per frame.
// It is single-threaded: events, Frame and Subscribe must all be called from
// the same goroutine, normally the host's update loop.
type ScrollSampler struct {
	cancel   func()
	current  ScrollSample
	pending  bool
	closed   bool
	handlers []sampleHandler
	nextID   uint32

	delivering bool
	removed    bool // a handler was removed mid-delivery; compact afterwards

	transientErrors int
}

// NewScrollSampler reads the viewport's current state and starts listening
// for events. Call Close to stop listening.
func NewScrollSampler(vp Viewport, opts SamplerOptions) *ScrollSampler {
	fallback := opts.DefaultViewportHeight
	if !validHeight(fallback) {
		fallback = DefaultViewportHeight
	}
	s := &ScrollSampler{
		current: ScrollSample{ViewportHeight: fallback},
	}
	s.current.Offset = sanitizeOffset(vp.ScrollOffset())
	s.applyHeight(vp.ViewportHeight())
	s.pending = false
	s.cancel = vp.Listen(samplerListener{s})
	return s
}

// samplerListener keeps the listener methods off ScrollSampler's public API.
type samplerListener struct{ s *ScrollSampler }

func (l samplerListener) ViewportScrolled(offset float64) {
	if l.s.closed {
		return
	}
	o := sanitizeOffset(offset)
	if o != l.s.current.Offset {
		l.s.current.Offset = o
		l.s.pending = true
	}
}

func (l samplerListener) ViewportResized(height float64) {
	if l.s.closed {
		return
	}
	l.s.applyHeight(height)
}

func (s *ScrollSampler) applyHeight(h float64) {
	if !validHeight(h) {
		s.transientErrors++
		err := &TransientSampleError{Height: h, Fallback: s.current.ViewportHeight}
		Logger().Warn("viewport height rejected", "err", err)
		return
	}
	if h != s.current.ViewportHeight {
		s.current.ViewportHeight = h
		s.pending = true
	}
}

func sanitizeOffset(o float64) float64 {
	if math.IsNaN(o) || o < 0 {
		return 0
	}
	return o
}

// Sample returns the latest coalesced sample.
func (s *ScrollSampler) Sample() ScrollSample {
	return s.current
}

// TransientErrors returns how many unusable viewport heights were replaced.
func (s *ScrollSampler) TransientErrors() int {
	return s.transientErrors
}

// Subscription allows removing a sampler subscriber.
type Subscription struct {
	id uint32
	s  *ScrollSampler
}

// Remove unsubscribes. After Remove returns the callback is never invoked
// again, even if Remove is called from inside a delivery. Calling Remove more
// than once is a no-op.
func (h Subscription) Remove() {
	if h.s == nil {
		return
	}
	h.s.remove(h.id)
}

// Subscribe registers fn and immediately delivers the current sample to it.
// Subscribing to a closed sampler returns an inert Subscription.
func (s *ScrollSampler) Subscribe(fn func(ScrollSample)) Subscription {
	if s.closed {
		return Subscription{}
	}
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, sampleHandler{id: id, fn: fn})
	fn(s.current)
	return Subscription{id: id, s: s}
}

func (s *ScrollSampler) remove(id uint32) {
	for i := range s.handlers {
		if s.handlers[i].id != id {
			continue
		}
		if s.delivering {
			s.handlers[i].fn = nil
			s.removed = true
			return
		}
		copy(s.handlers[i:], s.handlers[i+1:])
		s.handlers[len(s.handlers)-1] = sampleHandler{}
		s.handlers = s.handlers[:len(s.handlers)-1]
		return
	}
}

// Frame is the animation-frame tick. If any event changed the sample since the
// previous Frame, every subscriber is notified exactly once; otherwise it does
// nothing. Reports whether a notification went out.
func (s *ScrollSampler) Frame() bool {
	if s.closed || !s.pending {
		return false
	}
	s.pending = false
	sample := s.current

	s.delivering = true
	// Handlers added during delivery wait for the next frame; they already
	// received the current sample on Subscribe.
	n := len(s.handlers)
	for i := 0; i < n && !s.closed; i++ {
		if fn := s.handlers[i].fn; fn != nil {
			fn(sample)
		}
	}
	s.delivering = false

	if s.removed {
		s.compact()
	}
	return true
}

func (s *ScrollSampler) compact() {
	kept := s.handlers[:0]
	for _, h := range s.handlers {
		if h.fn != nil {
			kept = append(kept, h)
		}
	}
	for i := len(kept); i < len(s.handlers); i++ {
		s.handlers[i] = sampleHandler{}
	}
	s.handlers = kept
	s.removed = false
}

// Close stops listening to the viewport and drops every subscriber. It is
// safe to call more than once.
func (s *ScrollSampler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	for i := range s.handlers {
		s.handlers[i] = sampleHandler{}
	}
	s.handlers = nil
	s.pending = false
}
