package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeerRecordFromStrings(t *testing.T) {
	id := PeerID("peer-1")
	rec := NewPeerRecordFromStrings(id, []string{
		"/ip4/1.2.3.4/tcp/4001/p2p/peer-1", // 后缀应被剥离
		"/ip4/5.6.7.8/tcp/4002",
		"garbage", // 忽略
	})

	require.Len(t, rec.Addrs, 2)
	assert.Equal(t, Multiaddr("/ip4/1.2.3.4/tcp/4001"), rec.Addrs[0])
	assert.Equal(t, Multiaddr("/ip4/5.6.7.8/tcp/4002"), rec.Addrs[1])
	assert.True(t, rec.HasAddrs())
	assert.False(t, rec.Asked)
}

func TestPeerRecordDialAddrs(t *testing.T) {
	rec := NewPeerRecord(PeerID("peer-1"), []Multiaddr{"/ip4/1.2.3.4/tcp/4001"})

	dial := rec.DialAddrs()
	require.Len(t, dial, 1)
	assert.Equal(t, Multiaddr("/ip4/1.2.3.4/tcp/4001/p2p/peer-1"), dial[0])
}

func TestPeerRecordMergeAddrs(t *testing.T) {
	rec := NewPeerRecord(PeerID("peer-1"), []Multiaddr{"/ip4/1.2.3.4/tcp/4001"})

	merged := rec.MergeAddrs([]Multiaddr{
		"/ip4/1.2.3.4/tcp/4001", // 重复，不应出现两次
		"/ip4/5.6.7.8/tcp/4002",
	})

	require.Len(t, merged.Addrs, 2)
	// 原记录不被修改
	assert.Len(t, rec.Addrs, 1)
}
