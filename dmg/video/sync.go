package video

import "sync"

// FrameSync paces the frame producer against its consumer. The producer
// may only publish a new frame once the previous one has been acknowledged,
// so the frame channel never needs more than one slot.
type FrameSync struct {
	mu     sync.Mutex
	cond   *sync.Cond
	drawn  bool
	closed bool
}

// NewFrameSync returns a FrameSync ready for the first publish.
func NewFrameSync() *FrameSync {
	fs := &FrameSync{drawn: true}
	fs.cond = sync.NewCond(&fs.mu)
	return fs
}

// claim blocks until the consumer has acknowledged the previous frame,
// then reserves the slot for the next one. It returns false once the sync
// has been closed.
func (fs *FrameSync) claim() bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for !fs.drawn && !fs.closed {
		fs.cond.Wait()
	}
	if fs.closed {
		return false
	}
	fs.drawn = false
	return true
}

// Ack marks the current frame as consumed, letting the producer publish
// the next one.
func (fs *FrameSync) Ack() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.drawn = true
	fs.cond.Signal()
}

// Close releases a producer blocked on claim. Publishing stops for good.
func (fs *FrameSync) Close() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.closed = true
	fs.cond.Broadcast()
}
