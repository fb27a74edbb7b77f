// Package types 定义 go-gossip 公共类型
//
// 本文件定义事件相关类型。
package types

import (
	"time"
)

// ============================================================================
//                              Event - 事件接口
// ============================================================================

// Event 基础事件接口
type Event interface {
	// Type 返回事件类型
	Type() string

	// Timestamp 返回事件时间戳
	Timestamp() time.Time
}

// BaseEvent 基础事件实现
type BaseEvent struct {
	EventType string
	Time      time.Time
}

// Type 返回事件类型
func (e BaseEvent) Type() string {
	return e.EventType
}

// Timestamp 返回事件时间戳
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// NewBaseEvent 创建基础事件
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
	}
}

// ============================================================================
//                              连接事件
// ============================================================================

// EvtPeerConnected 节点连接事件
//
// 由宿主在连接建立后发布；发现引擎订阅此事件，
// 对尚未发起过发现的节点启动单节点发现轮。
type EvtPeerConnected struct {
	BaseEvent
	PeerID PeerID
	Addrs  []Multiaddr
}

// ============================================================================
//                              发现事件
// ============================================================================

// EvtPeerDiscovered 发现新节点事件
//
// 每当过滤器向节点簿准入一个此前未知的节点时发布一次。
type EvtPeerDiscovered struct {
	BaseEvent
	Peer   PeerRecord
	Source string
}

// EvtPeerSuspected 可疑节点事件
//
// 节点返回了违反帧协议的响应（截断、超长或载荷无法解析），
// 被视为信任违规：连接被强制关闭，节点被逐出节点簿。
// 与单纯拨号失败（静默逐出，不发布事件）区分。
type EvtPeerSuspected struct {
	BaseEvent
	PeerID PeerID
	Reason error
}
