package peerbook

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-gossip/pkg/interfaces"
	"github.com/dep2p/go-gossip/pkg/types"
)

// newBooks 返回全部待测实现，t.TempDir 保证持久化实现互不串扰
func newBooks(t *testing.T) map[string]interfaces.PeerBook {
	t.Helper()

	badgerBook, err := NewBadgerBook(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = badgerBook.Close() })

	return map[string]interfaces.PeerBook{
		"memory": NewMemoryBook(),
		"badger": badgerBook,
	}
}

// TestPutAndGet 测试基本读写
func TestPutAndGet(t *testing.T) {
	for name, book := range newBooks(t) {
		t.Run(name, func(t *testing.T) {
			rec := types.NewPeerRecord("peer-a", []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"})
			book.Put(rec)

			got, ok := book.Get("peer-a")
			require.True(t, ok)
			assert.Equal(t, rec.ID, got.ID)
			assert.Equal(t, rec.Addrs, got.Addrs)
			assert.False(t, got.Asked)

			_, ok = book.Get("unknown")
			assert.False(t, ok)
		})
	}
}

// TestPutMergesAddrs 测试重复写入合并地址且不重复
func TestPutMergesAddrs(t *testing.T) {
	for name, book := range newBooks(t) {
		t.Run(name, func(t *testing.T) {
			book.Put(types.NewPeerRecord("peer-a", []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}))
			book.Put(types.NewPeerRecord("peer-a", []types.Multiaddr{
				"/ip4/10.0.0.1/tcp/4001",
				"/ip4/192.168.1.1/tcp/4001",
			}))

			got, ok := book.Get("peer-a")
			require.True(t, ok)
			assert.Len(t, got.Addrs, 2)
			assert.Equal(t, 1, book.Size())
		})
	}
}

// TestPutIfAbsent 测试仅新节点插入
func TestPutIfAbsent(t *testing.T) {
	for name, book := range newBooks(t) {
		t.Run(name, func(t *testing.T) {
			rec := types.NewPeerRecord("peer-a", []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"})
			assert.True(t, book.PutIfAbsent(rec))
			assert.False(t, book.PutIfAbsent(rec), "已知节点不应重复插入")
			assert.Equal(t, 1, book.Size())
		})
	}
}

// TestPutIfAbsentConcurrent 测试并发插入同一节点恰有一个成功
func TestPutIfAbsentConcurrent(t *testing.T) {
	for name, book := range newBooks(t) {
		t.Run(name, func(t *testing.T) {
			rec := types.NewPeerRecord("peer-a", []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"})

			const workers = 16
			var wg sync.WaitGroup
			results := make(chan bool, workers)

			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					results <- book.PutIfAbsent(rec)
				}()
			}
			wg.Wait()
			close(results)

			inserted := 0
			for ok := range results {
				if ok {
					inserted++
				}
			}
			assert.Equal(t, 1, inserted)
			assert.Equal(t, 1, book.Size())
		})
	}
}

// TestRemove 测试移除及不存在节点的 no-op
func TestRemove(t *testing.T) {
	for name, book := range newBooks(t) {
		t.Run(name, func(t *testing.T) {
			book.Put(types.NewPeerRecord("peer-a", []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}))
			book.Remove("peer-a")

			_, ok := book.Get("peer-a")
			assert.False(t, ok)
			assert.Equal(t, 0, book.Size())

			// 不存在的节点
			book.Remove("peer-a")
			book.Remove("never-seen")
		})
	}
}

// TestMarkAsked 测试 asked 标志
func TestMarkAsked(t *testing.T) {
	for name, book := range newBooks(t) {
		t.Run(name, func(t *testing.T) {
			book.Put(types.NewPeerRecord("peer-a", []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}))
			book.MarkAsked("peer-a")

			got, ok := book.Get("peer-a")
			require.True(t, ok)
			assert.True(t, got.Asked)

			// 未入簿节点为 no-op
			book.MarkAsked("unknown")
			_, ok = book.Get("unknown")
			assert.False(t, ok)
		})
	}
}

// TestPeersSnapshot 测试快照不受后续修改影响
func TestPeersSnapshot(t *testing.T) {
	for name, book := range newBooks(t) {
		t.Run(name, func(t *testing.T) {
			book.Put(types.NewPeerRecord("peer-a", []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}))
			book.Put(types.NewPeerRecord("peer-b", []types.Multiaddr{"/ip4/10.0.0.2/tcp/4001"}))

			snap := book.Peers()
			require.Len(t, snap, 2)

			book.Remove("peer-a")
			assert.Len(t, snap, 2, "快照应保持不变")
		})
	}
}

// TestBadgerReload 测试重启后恢复记录
func TestBadgerReload(t *testing.T) {
	dir := t.TempDir()

	book, err := NewBadgerBook(dir)
	require.NoError(t, err)

	book.Put(types.NewPeerRecord("peer-a", []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}))
	book.Put(types.NewPeerRecord("peer-b", []types.Multiaddr{"/ip4/10.0.0.2/tcp/4001"}))
	book.MarkAsked("peer-a")
	book.Remove("peer-b")
	require.NoError(t, book.Close())

	reopened, err := NewBadgerBook(dir)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, 1, reopened.Size())

	got, ok := reopened.Get("peer-a")
	require.True(t, ok)
	assert.True(t, got.Asked)
	assert.Equal(t, []types.Multiaddr{"/ip4/10.0.0.1/tcp/4001"}, got.Addrs)

	_, ok = reopened.Get("peer-b")
	assert.False(t, ok, "已移除的节点不应恢复")
}
