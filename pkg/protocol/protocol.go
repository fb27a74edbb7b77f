// Package protocol 定义 go-gossip 协议标识符
//
// 本包是 gossip 发现协议 ID 的单一真相源 (Single Source of Truth)。
// 所有模块应从此包引用协议常量，而不是自行定义字符串。
//
// # 协议格式
//
// 系统协议格式: /dep2p/sys/<protocol>/<version>
//
// gossip 发现是系统协议：无需业务域成员资格，任何节点可用。
// 版本号变更规则：wire 格式不兼容时递增 major，兼容性扩展递增 minor。
package protocol

import (
	"strings"

	"github.com/dep2p/go-gossip/pkg/types"
)

// ID 是协议标识符的类型别名
// 使用 types.ProtocolID 确保全局类型一致性
type ID = types.ProtocolID

// 协议前缀常量
const (
	// PrefixSys 系统协议前缀
	PrefixSys = "/dep2p/sys"
)

// 发现协议
const (
	// Gossip 节点列表交换发现协议
	//
	// 双方各写至多一帧（长度前缀 + 节点簿快照），随后半关闭写端。
	Gossip ID = "/dep2p/sys/gossip/1.0.0"
)

// IsSystem 检查是否为系统协议
func IsSystem(id ID) bool {
	return strings.HasPrefix(string(id), PrefixSys+"/")
}
