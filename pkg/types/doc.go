// Package types 定义 go-gossip 的基础类型
//
// 这是整个模块的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各组件间传递数据。
//
// # 文件组织
//
//   - ids.go       - PeerID, ProtocolID
//   - multiaddr.go - Multiaddr 统一地址类型
//   - peer.go      - PeerRecord 节点记录
//   - events.go    - 事件类型
//   - errors.go    - 公共错误
//
// # 核心类型
//
//   - PeerID     - 节点唯一标识（不透明字符串，可比较、可序列化）
//   - Multiaddr  - 统一地址表示（以 "/" 开头的 multiaddr 格式）
//   - PeerRecord - 节点簿中的一条记录（ID + 地址集 + asked 标志）
//
// # 使用示例
//
//	// 解析 PeerID
//	peerID, err := types.ParsePeerID("12D3KooW...")
//
//	// 地址与节点 ID 后缀互转
//	addr := types.Multiaddr("/ip4/1.2.3.4/tcp/4001")
//	full := addr.WithPeerID(peerID)    // /ip4/1.2.3.4/tcp/4001/p2p/12D3KooW...
//	bare := full.WithoutPeerID()       // /ip4/1.2.3.4/tcp/4001
package types
