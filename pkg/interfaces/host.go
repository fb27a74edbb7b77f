// Package interfaces 定义 go-gossip 公共接口
//
// 本文件定义 Host 接口，提供核心主机功能。
package interfaces

import (
	"context"
	"time"

	"github.com/dep2p/go-gossip/pkg/types"
)

// Host 定义 P2P 主机接口
//
// Host 是发现引擎依赖的核心抽象，负责拨号、协议注册和流处理。
// 对 gossip 而言主机是外部协作者：协议协商、地址选择和
// 连接复用都由宿主实现完成。
type Host interface {
	// ID 返回主机的 PeerID
	ID() types.PeerID

	// Addrs 返回主机监听的地址列表
	Addrs() []types.Multiaddr

	// Connect 连接到指定节点
	//
	// addrs 为空时使用宿主已知的地址。
	Connect(ctx context.Context, peerID types.PeerID, addrs []types.Multiaddr) error

	// NewStream 创建到指定节点的新流
	NewStream(ctx context.Context, peerID types.PeerID, protocolIDs ...types.ProtocolID) (Stream, error)

	// SetStreamHandler 为指定协议设置流处理器
	SetStreamHandler(protocolID types.ProtocolID, handler StreamHandler)

	// RemoveStreamHandler 移除指定协议的流处理器
	RemoveStreamHandler(protocolID types.ProtocolID)

	// HangUp 断开与指定节点的连接
	//
	// 发现引擎在逐出节点前调用，确保不留下半开连接。
	HangUp(peerID types.PeerID) error

	// EventBus 返回事件总线
	EventBus() EventBus

	// IsRunning 检查主机是否在运行
	IsRunning() bool

	// Close 关闭主机
	Close() error
}

// StreamHandler 定义流处理函数类型
type StreamHandler func(Stream)

// Stream 定义双向流接口
type Stream interface {
	// Read 从流中读取数据
	Read(p []byte) (n int, err error)

	// Write 向流中写入数据
	Write(p []byte) (n int, err error)

	// Close 关闭流
	Close() error

	// CloseWrite 关闭写端（半关闭）
	//
	// 关闭后无法继续写入，但仍可读取。
	// 发送 FIN 信号告知对方"我已发送完毕"。
	CloseWrite() error

	// Reset 重置流（异常关闭）
	Reset() error

	// SetDeadline 设置读写超时
	//
	// 超时后，Read 和 Write 会返回错误。
	// 传入零值 time.Time{} 表示不超时。
	SetDeadline(t time.Time) error

	// SetReadDeadline 设置读超时
	SetReadDeadline(t time.Time) error

	// SetWriteDeadline 设置写超时
	SetWriteDeadline(t time.Time) error

	// Protocol 返回流使用的协议 ID
	Protocol() types.ProtocolID

	// RemotePeer 返回对端节点 ID
	RemotePeer() types.PeerID
}
