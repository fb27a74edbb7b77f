// Package gossip 实现对等交换发现协议
//
// # 模块概述
//
// gossip 通过向已知节点索要"它们知道的节点列表"来扩充本地节点簿：
// 拨号 → 取回列表 → 过滤出新节点 → 对新节点递归，直到已知节点数
// 达到目标值或再无新节点可学。
//
// # 协议
//
// 协议 ID 为 /dep2p/sys/gossip/1.0.0。线上格式是单帧：
// 1 个长度字节 L + L 字节 UTF-8 JSON（节点 ID → 地址字符串数组）。
// L=0 表示空列表。双方各写至多一帧后半关闭写端。
//
// # 错误分类
//
//   - 连接失败：节点被静默逐出，不产生事件
//   - 帧错误（截断/载荷非法）：节点被视为可疑，逐出并发布
//     EvtPeerSuspected，短期内不再采纳第三方对它的举荐
//
// # 使用示例
//
//	d, err := gossip.New(host, book, gossip.DefaultConfig().WithTargetPeers(16))
//	if err != nil { ... }
//	if err := d.Start(ctx); err != nil { ... }
//	defer d.Stop(context.Background())
package gossip
