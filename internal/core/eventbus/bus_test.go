package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-gossip/pkg/interfaces"
	"github.com/dep2p/go-gossip/pkg/types"
)

// TestSubscribeAndEmit 测试基本的发布订阅
func TestSubscribeAndEmit(t *testing.T) {
	bus := NewBus()

	sub, err := bus.Subscribe(new(types.EvtPeerDiscovered))
	require.NoError(t, err)
	defer sub.Close()

	em, err := bus.Emitter(new(types.EvtPeerDiscovered))
	require.NoError(t, err)
	defer em.Close()

	rec := types.NewPeerRecord("peer-1", []types.Multiaddr{"/ip4/127.0.0.1/tcp/4001"})
	require.NoError(t, em.Emit(types.EvtPeerDiscovered{Peer: rec, Source: "gossip"}))

	select {
	case raw := <-sub.Out():
		evt, ok := raw.(types.EvtPeerDiscovered)
		require.True(t, ok)
		assert.Equal(t, types.PeerID("peer-1"), evt.Peer.ID)
		assert.Equal(t, "gossip", evt.Source)
	case <-time.After(time.Second):
		t.Fatal("未收到事件")
	}
}

// TestEmitWrongType 测试发射类型校验
func TestEmitWrongType(t *testing.T) {
	bus := NewBus()

	_, err := bus.Subscribe(types.EvtPeerDiscovered{})
	assert.Error(t, err, "非指针类型应被拒绝")

	_, err = bus.Emitter(types.EvtPeerDiscovered{})
	assert.Error(t, err, "非指针类型应被拒绝")
}

// TestMultipleSubscribers 测试多订阅者均收到事件
func TestMultipleSubscribers(t *testing.T) {
	bus := NewBus()

	sub1, err := bus.Subscribe(new(types.EvtPeerSuspected))
	require.NoError(t, err)
	defer sub1.Close()

	sub2, err := bus.Subscribe(new(types.EvtPeerSuspected))
	require.NoError(t, err)
	defer sub2.Close()

	em, err := bus.Emitter(new(types.EvtPeerSuspected))
	require.NoError(t, err)
	defer em.Close()

	require.NoError(t, em.Emit(types.EvtPeerSuspected{PeerID: "bad-peer"}))

	for _, sub := range []interfaces.Subscription{sub1, sub2} {
		select {
		case raw := <-sub.Out():
			evt := raw.(types.EvtPeerSuspected)
			assert.Equal(t, types.PeerID("bad-peer"), evt.PeerID)
		case <-time.After(time.Second):
			t.Fatal("部分订阅者未收到事件")
		}
	}
}

// TestStatefulEmitter 测试有状态发射器补发最后事件
func TestStatefulEmitter(t *testing.T) {
	bus := NewBus()

	em, err := bus.Emitter(new(types.EvtPeerConnected), interfaces.Stateful())
	require.NoError(t, err)
	defer em.Close()

	require.NoError(t, em.Emit(types.EvtPeerConnected{PeerID: "early-peer"}))

	// 事件发出之后才订阅
	sub, err := bus.Subscribe(new(types.EvtPeerConnected))
	require.NoError(t, err)
	defer sub.Close()

	select {
	case raw := <-sub.Out():
		evt := raw.(types.EvtPeerConnected)
		assert.Equal(t, types.PeerID("early-peer"), evt.PeerID)
	case <-time.After(time.Second):
		t.Fatal("未收到补发的事件")
	}
}

// TestSlowConsumerDrops 测试慢消费者丢弃而非阻塞
func TestSlowConsumerDrops(t *testing.T) {
	bus := NewBus()

	sub, err := bus.Subscribe(new(types.EvtPeerConnected), interfaces.BufSize(1))
	require.NoError(t, err)
	defer sub.Close()

	em, err := bus.Emitter(new(types.EvtPeerConnected))
	require.NoError(t, err)
	defer em.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = em.Emit(types.EvtPeerConnected{PeerID: "p"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("发射被慢消费者阻塞")
	}
}

// TestSubscriptionCloseIdempotent 测试订阅重复关闭
func TestSubscriptionCloseIdempotent(t *testing.T) {
	bus := NewBus()

	sub, err := bus.Subscribe(new(types.EvtPeerDiscovered))
	require.NoError(t, err)

	assert.NoError(t, sub.Close())
	assert.NoError(t, sub.Close())
}

// TestEmitterCloseDropsNode 测试发射器关闭后节点回收
func TestEmitterCloseDropsNode(t *testing.T) {
	bus := NewBus()

	em, err := bus.Emitter(new(types.EvtPeerDiscovered))
	require.NoError(t, err)

	require.NoError(t, em.Close())
	assert.Error(t, em.Close(), "重复关闭应报错")
	assert.Error(t, em.Emit(types.EvtPeerDiscovered{}), "关闭后发射应报错")

	bus.mu.RLock()
	remaining := len(bus.nodes)
	bus.mu.RUnlock()
	assert.Zero(t, remaining, "无订阅者且发射器已关闭，节点应被回收")
}
