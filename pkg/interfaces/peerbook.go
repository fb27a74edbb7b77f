// Package interfaces 定义 go-gossip 公共接口
//
// 本文件定义 PeerBook 接口，管理共享节点簿。
package interfaces

import (
	"github.com/dep2p/go-gossip/pkg/types"
)

// PeerBook 定义节点簿接口
//
// 节点簿是发现引擎唯一的共享可变状态，多个并发发现分支
// 和被动应答器会交错访问它。实现必须保证：
//
//   - 同一 PeerID 永远只有一条记录
//   - Put 对已存在的记录合并地址（不重复）
//   - PutIfAbsent 的"检查-插入"是原子操作
//   - Remove 不存在的节点是 no-op
type PeerBook interface {
	// Get 获取节点记录
	Get(peerID types.PeerID) (types.PeerRecord, bool)

	// Put 写入节点记录；已存在时合并地址
	Put(rec types.PeerRecord)

	// PutIfAbsent 仅当节点未知时插入，返回是否插入成功
	PutIfAbsent(rec types.PeerRecord) bool

	// Remove 移除节点记录；节点不存在时为 no-op
	Remove(peerID types.PeerID)

	// MarkAsked 置位节点的 asked 标志
	//
	// 节点尚未入簿时为 no-op（标志在插入时再置位）。
	MarkAsked(peerID types.PeerID)

	// Peers 返回所有记录的快照
	Peers() []types.PeerRecord

	// Size 返回记录数
	Size() int

	// Close 关闭节点簿，释放底层资源
	Close() error
}
