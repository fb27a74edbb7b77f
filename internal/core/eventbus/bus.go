package eventbus

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-gossip/pkg/interfaces"
	"github.com/dep2p/go-gossip/pkg/lib/log"
)

// logger 事件总线模块日志记录器
var logger = log.Logger("core/eventbus")

// ==================== 总线实现 ====================

// Bus 基于事件类型路由的进程内事件总线
type Bus struct {
	mu    sync.RWMutex
	nodes map[reflect.Type]*node
}

var _ interfaces.EventBus = (*Bus)(nil)

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{
		nodes: make(map[reflect.Type]*node),
	}
}

// withNode 获取或创建事件类型对应的节点，并在持锁状态下执行回调
func (b *Bus) withNode(typ reflect.Type, cb func(*node), async func(*node)) {
	b.mu.Lock()

	n, ok := b.nodes[typ]
	if !ok {
		n = newNode(typ)
		b.nodes[typ] = n
	}

	n.lk.Lock()
	b.mu.Unlock()

	cb(n)

	if async == nil {
		n.lk.Unlock()
	} else {
		go func() {
			defer n.lk.Unlock()
			async(n)
		}()
	}
}

// tryDropNode 当节点既无订阅者也无发射器时移除之
func (b *Bus) tryDropNode(typ reflect.Type) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.nodes[typ]
	if !ok {
		return
	}

	n.lk.Lock()
	if atomic.LoadInt32(&n.nEmitters) > 0 || len(n.sinks) > 0 {
		n.lk.Unlock()
		return
	}
	n.lk.Unlock()

	delete(b.nodes, typ)
}

// Subscribe 订阅指定类型的事件
//
// eventType 必须是事件结构体的指针，如 new(types.EvtPeerDiscovered)
func (b *Bus) Subscribe(eventType interface{}, opts ...interfaces.SubscriptionOpt) (interfaces.Subscription, error) {
	typ := reflect.TypeOf(eventType)
	if typ == nil || typ.Kind() != reflect.Ptr {
		return nil, errors.New("订阅类型必须为指向事件结构体的指针")
	}

	settings := interfaces.SubscriptionSettings{Buffer: 16}
	for _, opt := range opts {
		opt(&settings)
	}

	sub := newSubscription(typ.Elem(), settings.Buffer)
	sub.onClose = func() {
		b.removeSub(typ.Elem(), sub)
	}

	b.withNode(typ.Elem(), func(n *node) {
		n.sinks = append(n.sinks, sub)
	}, func(n *node) {
		// Stateful 发射器：补发最后一个事件
		if n.keepLast {
			last := n.last.Load()
			if last != nil {
				sub.enqueue(*last, n)
			}
		}
	})

	return sub, nil
}

// removeSub 从节点中摘除订阅者
func (b *Bus) removeSub(typ reflect.Type, s *subscription) {
	b.mu.RLock()
	n, ok := b.nodes[typ]
	b.mu.RUnlock()
	if !ok {
		return
	}

	n.lk.Lock()
	for i, sink := range n.sinks {
		if sink == s {
			n.sinks[i] = n.sinks[len(n.sinks)-1]
			n.sinks[len(n.sinks)-1] = nil
			n.sinks = n.sinks[:len(n.sinks)-1]
			break
		}
	}
	drop := len(n.sinks) == 0 && atomic.LoadInt32(&n.nEmitters) == 0
	n.lk.Unlock()

	if drop {
		b.tryDropNode(typ)
	}
}

// Emitter 创建指定类型事件的发射器
//
// eventType 必须是事件结构体的指针，如 new(types.EvtPeerSuspected)
func (b *Bus) Emitter(eventType interface{}, opts ...interfaces.EmitterOpt) (interfaces.Emitter, error) {
	typ := reflect.TypeOf(eventType)
	if typ == nil || typ.Kind() != reflect.Ptr {
		return nil, errors.New("发射类型必须为指向事件结构体的指针")
	}

	settings := interfaces.EmitterSettings{}
	for _, opt := range opts {
		opt(&settings)
	}

	var em *emitter
	b.withNode(typ.Elem(), func(n *node) {
		atomic.AddInt32(&n.nEmitters, 1)
		if settings.Stateful {
			n.keepLast = true
		}
		em = &emitter{
			node: n,
			typ:  typ.Elem(),
			drop: func() { b.tryDropNode(typ.Elem()) },
		}
	}, nil)

	return em, nil
}

// ==================== 节点 ====================

// node 单一事件类型的路由节点
type node struct {
	lk sync.Mutex

	typ reflect.Type

	nEmitters int32
	keepLast  bool
	last      atomic.Pointer[interface{}]

	sinks []*subscription
}

func newNode(typ reflect.Type) *node {
	return &node{typ: typ}
}

// emit 向所有订阅者分发事件
func (n *node) emit(evt interface{}) {
	typ := reflect.TypeOf(evt)
	if typ != n.typ {
		panic(fmt.Sprintf("事件类型不匹配: 期望 %s 实际 %s", n.typ, typ))
	}

	if n.keepLast {
		n.last.Store(&evt)
	}

	for _, s := range n.sinks {
		s.enqueue(evt, n)
	}
}

// ==================== 发射器 ====================

// emitter 单一事件类型的发射器
type emitter struct {
	node   *node
	typ    reflect.Type
	closed atomic.Bool
	drop   func()
}

var _ interfaces.Emitter = (*emitter)(nil)

// Emit 发布事件
func (e *emitter) Emit(evt interface{}) error {
	if e.closed.Load() {
		return errors.New("发射器已关闭")
	}

	e.node.lk.Lock()
	defer e.node.lk.Unlock()
	e.node.emit(evt)
	return nil
}

// Close 关闭发射器
func (e *emitter) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return errors.New("发射器重复关闭")
	}

	if atomic.AddInt32(&e.node.nEmitters, -1) == 0 {
		e.drop()
	}
	return nil
}
