// Package memhost 提供内存态的主机网络实现
//
// 供示例和测试在单进程内搭建多节点拓扑，不涉及真实网络：
// 拨号即查表，流基于 io.Pipe，半关闭语义与真实流一致。
package memhost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dep2p/go-gossip/internal/core/eventbus"
	"github.com/dep2p/go-gossip/pkg/interfaces"
	"github.com/dep2p/go-gossip/pkg/types"
)

// ==================== 内存网络 ====================

// Network 内存态节点网络
type Network struct {
	mu    sync.RWMutex
	hosts map[types.PeerID]*Host
}

// NewNetwork 创建内存网络
func NewNetwork() *Network {
	return &Network{
		hosts: make(map[types.PeerID]*Host),
	}
}

// AddHost 向网络加入一台主机
func (n *Network) AddHost(id types.PeerID) *Host {
	h := &Host{
		id:       id,
		addrs:    []types.Multiaddr{types.Multiaddr(fmt.Sprintf("/memory/%s", id))},
		network:  n,
		bus:      eventbus.NewBus(),
		handlers: make(map[types.ProtocolID]interfaces.StreamHandler),
		running:  true,
	}

	n.mu.Lock()
	n.hosts[id] = h
	n.mu.Unlock()
	return h
}

// Disconnect 将主机从网络摘除，之后对它的拨号失败
func (n *Network) Disconnect(id types.PeerID) {
	n.mu.Lock()
	delete(n.hosts, id)
	n.mu.Unlock()
}

// lookup 查找主机
func (n *Network) lookup(id types.PeerID) (*Host, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	h, ok := n.hosts[id]
	return h, ok
}

// ==================== 内存主机 ====================

// Host 内存态主机
type Host struct {
	id      types.PeerID
	addrs   []types.Multiaddr
	network *Network
	bus     *eventbus.Bus

	mu       sync.RWMutex
	handlers map[types.ProtocolID]interfaces.StreamHandler
	running  bool

	dialCount   int
	hangUpCount int
}

var _ interfaces.Host = (*Host)(nil)

// ID 返回主机 ID
func (h *Host) ID() types.PeerID { return h.id }

// Addrs 返回监听地址
func (h *Host) Addrs() []types.Multiaddr { return h.addrs }

// EventBus 返回事件总线
func (h *Host) EventBus() interfaces.EventBus { return h.bus }

// IsRunning 检查主机是否在运行
func (h *Host) IsRunning() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.running
}

// Connect 连接到指定节点
func (h *Host) Connect(ctx context.Context, peerID types.PeerID, addrs []types.Multiaddr) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	h.dialCount++
	h.mu.Unlock()

	if _, ok := h.network.lookup(peerID); !ok {
		return fmt.Errorf("拨号 %s 失败: 不可达", peerID)
	}
	return nil
}

// NewStream 创建到指定节点的新流
//
// 按顺序协商协议，取对端注册的第一个匹配处理器。
func (h *Host) NewStream(ctx context.Context, peerID types.PeerID, protocolIDs ...types.ProtocolID) (interfaces.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	remote, ok := h.network.lookup(peerID)
	if !ok {
		return nil, fmt.Errorf("打开到 %s 的流失败: 不可达", peerID)
	}

	for _, proto := range protocolIDs {
		remote.mu.RLock()
		handler, registered := remote.handlers[proto]
		remote.mu.RUnlock()
		if !registered {
			continue
		}

		local, peer := NewStreamPair(proto, h.id, peerID)
		go handler(peer)
		return local, nil
	}
	return nil, fmt.Errorf("打开到 %s 的流失败: 协议未注册", peerID)
}

// SetStreamHandler 注册协议处理器
func (h *Host) SetStreamHandler(protocolID types.ProtocolID, handler interfaces.StreamHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[protocolID] = handler
}

// RemoveStreamHandler 注销协议处理器
func (h *Host) RemoveStreamHandler(protocolID types.ProtocolID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.handlers, protocolID)
}

// HangUp 断开与指定节点的连接
func (h *Host) HangUp(peerID types.PeerID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hangUpCount++
	return nil
}

// Close 关闭主机
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.running = false
	return nil
}

// DialCount 返回累计拨号次数
func (h *Host) DialCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dialCount
}

// HangUpCount 返回累计挂断次数
func (h *Host) HangUpCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.hangUpCount
}

// ==================== 内存流 ====================

// ErrStreamReset 流被重置
var ErrStreamReset = errors.New("流已重置")

// stream 基于 io.Pipe 的双向内存流
type stream struct {
	proto  types.ProtocolID
	local  types.PeerID
	remote types.PeerID

	r *io.PipeReader
	w *io.PipeWriter
}

var _ interfaces.Stream = (*stream)(nil)

// NewStreamPair 创建一对互连的流
//
// 第一个返回值属于 a 端（对端为 b），第二个属于 b 端。
func NewStreamPair(proto types.ProtocolID, a, b types.PeerID) (interfaces.Stream, interfaces.Stream) {
	abR, abW := io.Pipe()
	baR, baW := io.Pipe()

	sa := &stream{proto: proto, local: a, remote: b, r: baR, w: abW}
	sb := &stream{proto: proto, local: b, remote: a, r: abR, w: baW}
	return sa, sb
}

func (s *stream) Read(p []byte) (int, error)  { return s.r.Read(p) }
func (s *stream) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *stream) Close() error {
	_ = s.w.Close()
	return s.r.Close()
}

func (s *stream) CloseWrite() error {
	return s.w.Close()
}

func (s *stream) Reset() error {
	_ = s.w.CloseWithError(ErrStreamReset)
	return s.r.CloseWithError(ErrStreamReset)
}

func (s *stream) SetDeadline(t time.Time) error      { return nil }
func (s *stream) SetReadDeadline(t time.Time) error  { return nil }
func (s *stream) SetWriteDeadline(t time.Time) error { return nil }

func (s *stream) Protocol() types.ProtocolID { return s.proto }
func (s *stream) RemotePeer() types.PeerID   { return s.remote }
