package config

import (
	"github.com/dep2p/go-gossip/internal/core/peerbook"
	"github.com/dep2p/go-gossip/internal/discovery/gossip"
	"github.com/dep2p/go-gossip/pkg/types"
)

// ToGossipConfig 转换为发现引擎配置
func (c Config) ToGossipConfig() gossip.Config {
	out := gossip.DefaultConfig()
	out.TargetPeers = c.Gossip.TargetPeers

	if c.Gossip.DialTimeout > 0 {
		out.DialTimeout = c.Gossip.DialTimeout.Duration()
	}
	if c.Gossip.ReadTimeout > 0 {
		out.ReadTimeout = c.Gossip.ReadTimeout.Duration()
	}
	if c.Gossip.WriteTimeout > 0 {
		out.WriteTimeout = c.Gossip.WriteTimeout.Duration()
	}
	if c.Gossip.SuspectTTL > 0 {
		out.SuspectTTL = c.Gossip.SuspectTTL.Duration()
	}
	if c.Gossip.SuspectCacheSize > 0 {
		out.SuspectCacheSize = c.Gossip.SuspectCacheSize
	}
	return out
}

// ToPeerBookConfig 转换为节点簿配置
func (c Config) ToPeerBookConfig() peerbook.Config {
	return peerbook.Config{Path: c.PeerBook.Path}
}

// SeedRecords 将种子节点地址解析为节点记录
//
// 地址须携带 /p2p/<peerID> 后缀以标识节点；
// 无法解析或缺少后缀的地址被跳过。
func (c Config) SeedRecords() []types.PeerRecord {
	byID := make(map[types.PeerID][]types.Multiaddr)
	order := make([]types.PeerID, 0, len(c.Gossip.SeedPeers))

	for _, s := range c.Gossip.SeedPeers {
		ma, err := types.ParseMultiaddr(s)
		if err != nil {
			continue
		}
		peerID := ma.PeerID()
		if peerID.IsEmpty() {
			continue
		}
		if _, ok := byID[peerID]; !ok {
			order = append(order, peerID)
		}
		byID[peerID] = append(byID[peerID], ma.WithoutPeerID())
	}

	out := make([]types.PeerRecord, 0, len(order))
	for _, id := range order {
		out = append(out, types.NewPeerRecord(id, byID[id]))
	}
	return out
}
