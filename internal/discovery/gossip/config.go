package gossip

import (
	"time"
)

// ==================== 配置 ====================

// Config 发现引擎配置
type Config struct {
	// TargetPeers 目标已知节点数，达到后停止发起新一轮发现
	TargetPeers int

	// DialTimeout 拨号超时
	DialTimeout time.Duration

	// ReadTimeout 读取应答帧的超时
	ReadTimeout time.Duration

	// WriteTimeout 应答器写帧的超时
	WriteTimeout time.Duration

	// SuspectTTL 可疑节点的隔离时长，期间不采纳第三方对它的举荐
	SuspectTTL time.Duration

	// SuspectCacheSize 可疑节点缓存容量
	SuspectCacheSize int
}

// Validate 校验配置
func (c Config) Validate() error {
	if c.TargetPeers <= 0 {
		return ErrInvalidTargetPeers
	}
	return nil
}

// WithTargetPeers 设置目标节点数
func (c Config) WithTargetPeers(n int) Config {
	c.TargetPeers = n
	return c
}
