// Package types 定义 go-gossip 的基础类型
package types

// ============================================================================
//                              PeerID - 节点标识
// ============================================================================

// PeerID 节点唯一标识符
//
// 对本模块而言 PeerID 是不透明的：它由上层身份系统派生
// （通常是公钥哈希的 Base58 编码），这里只要求可比较、可作为
// map 键、且有规范的字符串表示。
//
// 外部表示格式：
//   - String(): 原样字符串（用户可读、可分享）
//   - ShortString(): 前 8 个字符（日志简短标识）
type PeerID string

// EmptyPeerID 空节点 ID
const EmptyPeerID PeerID = ""

// String 返回 PeerID 的字符串表示
func (id PeerID) String() string {
	return string(id)
}

// ShortString 返回 PeerID 的短字符串表示
//
// 格式：前 8 个字符，用于日志中的简短标识。
func (id PeerID) ShortString() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// Equal 比较两个 PeerID 是否相等
func (id PeerID) Equal(other PeerID) bool {
	return id == other
}

// IsEmpty 检查 PeerID 是否为空
func (id PeerID) IsEmpty() bool {
	return id == EmptyPeerID
}

// ParsePeerID 从字符串解析 PeerID
//
// 空字符串视为无效输入。
func ParsePeerID(s string) (PeerID, error) {
	if s == "" {
		return EmptyPeerID, ErrEmptyPeerID
	}
	return PeerID(s), nil
}

// ============================================================================
//                              ProtocolID - 协议标识
// ============================================================================

// ProtocolID 协议标识符
// 格式: /name/version，如 /dep2p/sys/gossip/1.0.0
type ProtocolID string

// String 返回协议 ID 字符串
func (p ProtocolID) String() string {
	return string(p)
}
