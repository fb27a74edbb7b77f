// Package types 定义 go-gossip 公共类型
//
// 本文件定义节点簿记录类型。
package types

// ============================================================================
//                              PeerRecord - 节点记录
// ============================================================================

// PeerRecord 节点簿中的一条记录
//
// Addrs 中的地址不携带 /p2p/<peerID> 后缀；拨号时由 ID 重新派生。
// Asked 是瞬态标志，表示已经对该节点发起过一轮发现，
// 用于避免连接事件重复触发发现；进程重启后重新置位是允许的。
type PeerRecord struct {
	// ID 节点 ID
	ID PeerID

	// Addrs 地址列表（不含节点 ID 后缀）
	Addrs []Multiaddr

	// Asked 是否已对该节点发起过发现
	Asked bool
}

// NewPeerRecord 创建节点记录
func NewPeerRecord(id PeerID, addrs []Multiaddr) PeerRecord {
	return PeerRecord{
		ID:    id,
		Addrs: addrs,
	}
}

// NewPeerRecordFromStrings 从字符串地址创建节点记录
//
// 忽略无法解析的地址；解析出的地址会剥离 /p2p/ 后缀。
func NewPeerRecordFromStrings(id PeerID, addrStrs []string) PeerRecord {
	addrs := make([]Multiaddr, 0, len(addrStrs))
	for _, s := range addrStrs {
		ma, err := ParseMultiaddr(s)
		if err != nil {
			continue
		}
		addrs = append(addrs, ma.WithoutPeerID())
	}
	return PeerRecord{
		ID:    id,
		Addrs: addrs,
	}
}

// HasAddrs 检查是否有地址
func (r PeerRecord) HasAddrs() bool {
	return len(r.Addrs) > 0
}

// AddrsToStrings 返回地址的字符串切片
func (r PeerRecord) AddrsToStrings() []string {
	return MultiaddrsToStrings(r.Addrs)
}

// DialAddrs 返回携带 /p2p/<ID> 后缀的完整拨号地址
func (r PeerRecord) DialAddrs() []Multiaddr {
	addrs := make([]Multiaddr, len(r.Addrs))
	for i, ma := range r.Addrs {
		addrs[i] = ma.WithPeerID(r.ID)
	}
	return addrs
}

// MergeAddrs 合并地址列表，去除重复项
//
// 返回合并后的新记录，不修改接收者。
func (r PeerRecord) MergeAddrs(addrs []Multiaddr) PeerRecord {
	seen := make(map[Multiaddr]struct{}, len(r.Addrs))
	merged := make([]Multiaddr, 0, len(r.Addrs)+len(addrs))
	for _, ma := range r.Addrs {
		seen[ma] = struct{}{}
		merged = append(merged, ma)
	}
	for _, ma := range addrs {
		if _, ok := seen[ma]; ok {
			continue
		}
		seen[ma] = struct{}{}
		merged = append(merged, ma)
	}
	out := r
	out.Addrs = merged
	return out
}
