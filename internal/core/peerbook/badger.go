package peerbook

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/dep2p/go-gossip/pkg/interfaces"
	"github.com/dep2p/go-gossip/pkg/lib/log"
	"github.com/dep2p/go-gossip/pkg/types"
)

// logger 节点簿模块日志记录器
var logger = log.Logger("core/peerbook")

// keyPrefix 节点记录的存储键前缀
const keyPrefix = "peer/"

// ==================== 持久化节点簿 ====================

// storedRecord 节点记录的持久化形态
type storedRecord struct {
	Addrs []string `json:"addrs"`
	Asked bool     `json:"asked"`
}

// BadgerBook 基于 Badger 的持久化节点簿
//
// 读取全部走内存缓存，写入同步落盘。打开时从磁盘恢复全部记录，
// 因此重启后的首轮发现可以跳过已知节点。
type BadgerBook struct {
	mu    sync.RWMutex
	peers map[types.PeerID]types.PeerRecord
	db    *badger.DB
}

var _ interfaces.PeerBook = (*BadgerBook)(nil)

// NewBadgerBook 打开路径 path 下的持久化节点簿
func NewBadgerBook(path string) (*BadgerBook, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("打开节点簿数据库失败: %w", err)
	}

	b := &BadgerBook{
		peers: make(map[types.PeerID]types.PeerRecord),
		db:    db,
	}

	if err := b.load(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("恢复节点记录失败: %w", err)
	}

	logger.Info("持久化节点簿已打开", "path", path, "peers", len(b.peers))
	return b, nil
}

// load 从磁盘恢复全部节点记录
func (b *BadgerBook) load() error {
	return b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			peerID := types.PeerID(item.Key()[len(prefix):])

			err := item.Value(func(val []byte) error {
				var sr storedRecord
				if err := json.Unmarshal(val, &sr); err != nil {
					logger.Warn("节点记录损坏，跳过", "peer", log.TruncateID(string(peerID), 8))
					return nil
				}
				rec := types.NewPeerRecordFromStrings(peerID, sr.Addrs)
				rec.Asked = sr.Asked
				b.peers[peerID] = rec
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// persist 将一条记录写入磁盘
func (b *BadgerBook) persist(rec types.PeerRecord) {
	val, err := json.Marshal(storedRecord{
		Addrs: rec.AddrsToStrings(),
		Asked: rec.Asked,
	})
	if err != nil {
		logger.Error("序列化节点记录失败", "peer", log.TruncateID(string(rec.ID), 8), "err", err)
		return
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+string(rec.ID)), val)
	})
	if err != nil {
		logger.Error("写入节点记录失败", "peer", log.TruncateID(string(rec.ID), 8), "err", err)
	}
}

// erase 从磁盘删除一条记录
func (b *BadgerBook) erase(peerID types.PeerID) {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + string(peerID)))
	})
	if err != nil {
		logger.Error("删除节点记录失败", "peer", log.TruncateID(string(peerID), 8), "err", err)
	}
}

// Get 获取节点记录
func (b *BadgerBook) Get(peerID types.PeerID) (types.PeerRecord, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.peers[peerID]
	return rec, ok
}

// Put 写入节点记录；已存在时合并地址
func (b *BadgerBook) Put(rec types.PeerRecord) {
	if rec.ID.IsEmpty() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.peers[rec.ID]; ok {
		rec = existing.MergeAddrs(rec.Addrs)
	}
	b.peers[rec.ID] = rec
	b.persist(rec)
}

// PutIfAbsent 仅当节点未知时插入
func (b *BadgerBook) PutIfAbsent(rec types.PeerRecord) bool {
	if rec.ID.IsEmpty() {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.peers[rec.ID]; ok {
		return false
	}
	b.peers[rec.ID] = rec
	b.persist(rec)
	return true
}

// Remove 移除节点记录
func (b *BadgerBook) Remove(peerID types.PeerID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.peers[peerID]; !ok {
		return
	}
	delete(b.peers, peerID)
	b.erase(peerID)
}

// MarkAsked 置位节点的 asked 标志
func (b *BadgerBook) MarkAsked(peerID types.PeerID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.peers[peerID]
	if !ok {
		return
	}
	rec.Asked = true
	b.peers[peerID] = rec
	b.persist(rec)
}

// Peers 返回所有记录的快照
func (b *BadgerBook) Peers() []types.PeerRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]types.PeerRecord, 0, len(b.peers))
	for _, rec := range b.peers {
		out = append(out, rec)
	}
	return out
}

// Size 返回记录数
func (b *BadgerBook) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.peers)
}

// Close 关闭数据库
func (b *BadgerBook) Close() error {
	return b.db.Close()
}
