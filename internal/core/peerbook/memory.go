package peerbook

import (
	"sync"

	"github.com/dep2p/go-gossip/pkg/interfaces"
	"github.com/dep2p/go-gossip/pkg/types"
)

// ==================== 内存节点簿 ====================

// MemoryBook 纯内存节点簿
type MemoryBook struct {
	mu    sync.RWMutex
	peers map[types.PeerID]types.PeerRecord
}

var _ interfaces.PeerBook = (*MemoryBook)(nil)

// NewMemoryBook 创建内存节点簿
func NewMemoryBook() *MemoryBook {
	return &MemoryBook{
		peers: make(map[types.PeerID]types.PeerRecord),
	}
}

// Get 获取节点记录
func (b *MemoryBook) Get(peerID types.PeerID) (types.PeerRecord, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.peers[peerID]
	return rec, ok
}

// Put 写入节点记录；已存在时合并地址，保留 asked 标志
func (b *MemoryBook) Put(rec types.PeerRecord) {
	if rec.ID.IsEmpty() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.peers[rec.ID]; ok {
		merged := existing.MergeAddrs(rec.Addrs)
		b.peers[rec.ID] = merged
		return
	}
	b.peers[rec.ID] = rec
}

// PutIfAbsent 仅当节点未知时插入
func (b *MemoryBook) PutIfAbsent(rec types.PeerRecord) bool {
	if rec.ID.IsEmpty() {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.peers[rec.ID]; ok {
		return false
	}
	b.peers[rec.ID] = rec
	return true
}

// Remove 移除节点记录
func (b *MemoryBook) Remove(peerID types.PeerID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.peers, peerID)
}

// MarkAsked 置位节点的 asked 标志
func (b *MemoryBook) MarkAsked(peerID types.PeerID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.peers[peerID]
	if !ok {
		return
	}
	rec.Asked = true
	b.peers[peerID] = rec
}

// Peers 返回所有记录的快照
func (b *MemoryBook) Peers() []types.PeerRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]types.PeerRecord, 0, len(b.peers))
	for _, rec := range b.peers {
		out = append(out, rec)
	}
	return out
}

// Size 返回记录数
func (b *MemoryBook) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.peers)
}

// Close 关闭节点簿
func (b *MemoryBook) Close() error {
	return nil
}
