// Package safe_close coordinates graceful shutdown of long running goroutines.
package safe_close

import (
	"sync"
)

// SafeClose broadcasts one close signal to every attached worker and waits
// for all of them to finish.
// SafeClose 广播关闭信号并等待所有协程退出
type SafeClose struct {
	wg      sync.WaitGroup
	once    sync.Once
	closeCh chan struct{}
	mu      sync.Mutex
	err     error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{closeCh: make(chan struct{})}
}

// Attach runs fn in a goroutine. fn must call done when it returns and should
// stop once closeSignal is closed.
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go fn(s.wg.Done, s.closeCh)
}

// SendCloseSignal closes the signal channel. Only the first call records err.
func (s *SafeClose) SendCloseSignal(err error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.closeCh)
	})
}

// Done is closed once the close signal was sent.
func (s *SafeClose) Done() <-chan struct{} {
	return s.closeCh
}

// WaitClosed blocks until every attached worker returned.
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
