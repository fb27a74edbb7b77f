// Package types 提供 go-gossip 核心类型定义
package types

import (
	"fmt"
	"strings"
)

// ============================================================================
//                              Multiaddr - 统一地址类型
// ============================================================================

// Multiaddr 统一地址类型（值对象）
//
// Multiaddr 是本模块内部唯一的地址表示形式。
// 所有用于拨号/节点簿/协议交换的地址必须是 Multiaddr 类型。
//
// 约束：
//   - String() 必须始终返回 canonical multiaddr（以 "/" 开头）
//   - 节点簿内的地址不携带 /p2p/<peerID> 后缀（后缀由 PeerID 重新派生）
//
// 格式示例：
//   - /ip4/192.168.1.1/udp/4001/quic-v1
//   - /ip6/::1/tcp/4001
//   - /dns4/example.com/tcp/4001
//   - /ip4/1.2.3.4/tcp/4001/p2p/12D3KooW...
type Multiaddr string

// ParseMultiaddr 解析并规范化 multiaddr
//
// 仅接受 multiaddr 格式输入（以 "/" 开头）。
//
// 示例：
//   - "/ip4/1.2.3.4/tcp/4001" → Multiaddr
//   - "/ip4/1.2.3.4/tcp/4001/p2p/12D3KooW" → Multiaddr
//   - "1.2.3.4:4001" → error（不是 multiaddr 格式）
func ParseMultiaddr(s string) (Multiaddr, error) {
	if s == "" {
		return "", ErrEmptyMultiaddr
	}

	s = strings.TrimSpace(s)

	// 必须以 / 开头
	if !strings.HasPrefix(s, "/") {
		return "", ErrNotMultiaddrFormat
	}

	// 基本格式校验：至少包含一个 协议/值 组件
	parts := strings.Split(s, "/")
	if len(parts) < 3 || parts[1] == "" {
		return "", ErrInvalidMultiaddr
	}

	// 去除末尾多余的 /
	s = strings.TrimRight(s, "/")

	return Multiaddr(s), nil
}

// MustParseMultiaddr 解析 multiaddr，失败时 panic
//
// 仅用于测试和常量初始化。
func MustParseMultiaddr(s string) Multiaddr {
	ma, err := ParseMultiaddr(s)
	if err != nil {
		panic(fmt.Sprintf("invalid multiaddr %q: %v", s, err))
	}
	return ma
}

// ============================================================================
//                              访问方法
// ============================================================================

// String 返回 canonical multiaddr 字符串
func (m Multiaddr) String() string {
	return string(m)
}

// IsEmpty 检查地址是否为空
func (m Multiaddr) IsEmpty() bool {
	return m == ""
}

// Equal 比较两个地址是否相等
func (m Multiaddr) Equal(other Multiaddr) bool {
	return m == other
}

// PeerID 返回嵌入的 PeerID（如果有 /p2p/<peerID> 组件）
func (m Multiaddr) PeerID() PeerID {
	if m.IsEmpty() {
		return EmptyPeerID
	}

	parts := strings.Split(string(m), "/")
	for i := 1; i < len(parts)-1; i++ {
		if parts[i] == "p2p" && parts[i+1] != "" {
			return PeerID(parts[i+1])
		}
	}
	return EmptyPeerID
}

// WithPeerID 附加 /p2p/<peerID> 组件
//
// 如果已有 /p2p/ 组件，会替换它。
func (m Multiaddr) WithPeerID(peerID PeerID) Multiaddr {
	if m.IsEmpty() || peerID.IsEmpty() {
		return m
	}

	// 先移除现有的 /p2p/ 组件（如果有）
	base := m.WithoutPeerID()

	return Multiaddr(string(base) + "/p2p/" + peerID.String())
}

// WithoutPeerID 移除末尾的 /p2p/<peerID> 组件
func (m Multiaddr) WithoutPeerID() Multiaddr {
	if m.IsEmpty() {
		return m
	}

	s := string(m)
	idx := strings.LastIndex(s, "/p2p/")
	if idx == -1 {
		return m
	}
	return Multiaddr(s[:idx])
}

// ============================================================================
//                              批量转换辅助函数
// ============================================================================

// MultiaddrsToStrings 将 Multiaddr 切片转换为字符串切片
func MultiaddrsToStrings(mas []Multiaddr) []string {
	strs := make([]string, len(mas))
	for i, ma := range mas {
		strs[i] = ma.String()
	}
	return strs
}

// StringsToMultiaddrs 将字符串切片转换为 Multiaddr 切片
//
// 跳过无法解析的地址，不返回错误。
// 如需严格验证，请使用 ParseMultiaddrStrict。
func StringsToMultiaddrs(strs []string) []Multiaddr {
	mas := make([]Multiaddr, 0, len(strs))
	for _, s := range strs {
		ma, err := ParseMultiaddr(s)
		if err == nil {
			mas = append(mas, ma)
		}
	}
	return mas
}

// ParseMultiaddrStrict 严格解析字符串切片为 Multiaddr 切片
//
// 遇到任何无法解析的地址立即返回错误。
func ParseMultiaddrStrict(strs []string) ([]Multiaddr, error) {
	mas := make([]Multiaddr, len(strs))
	for i, s := range strs {
		ma, err := ParseMultiaddr(s)
		if err != nil {
			return nil, fmt.Errorf("invalid address at index %d: %w", i, err)
		}
		mas[i] = ma
	}
	return mas, nil
}
