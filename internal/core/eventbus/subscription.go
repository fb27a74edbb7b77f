package eventbus

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-gossip/pkg/interfaces"
)

// ==================== 订阅实现 ====================

// subscription 单一事件类型的订阅
type subscription struct {
	typ reflect.Type
	ch  chan interface{}

	closeOnce sync.Once
	closed    atomic.Bool
	onClose   func()

	dropped atomic.Uint64
}

var _ interfaces.Subscription = (*subscription)(nil)

// newSubscription 创建订阅，buffer 为通道缓冲大小
func newSubscription(typ reflect.Type, buffer int) *subscription {
	if buffer < 0 {
		buffer = 0
	}
	return &subscription{
		typ: typ,
		ch:  make(chan interface{}, buffer),
	}
}

// Out 返回事件接收通道
//
// 订阅关闭后通道被关闭，接收方应以 ok 判定终止
func (s *subscription) Out() <-chan interface{} {
	return s.ch
}

// Close 关闭订阅并从总线摘除，幂等
func (s *subscription) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		if s.onClose != nil {
			s.onClose()
		}
		// 排空后关闭，避免发布方在摘除竞态窗口内写入已关闭通道
		go func() {
			for {
				select {
				case <-s.ch:
				default:
					close(s.ch)
					return
				}
			}
		}()
	})
	return nil
}

// enqueue 入队一个事件，缓冲满时丢弃并计数
func (s *subscription) enqueue(evt interface{}, n *node) {
	if s.closed.Load() {
		return
	}
	select {
	case s.ch <- evt:
	default:
		d := s.dropped.Add(1)
		if d%64 == 1 {
			logger.Warn("订阅者消费过慢，事件被丢弃",
				"event_type", n.typ.String(),
				"dropped_total", d)
		}
	}
}
