package gossip

import "time"

// ==================== 默认值 ====================

const (
	// DefaultTargetPeers 默认目标节点数
	DefaultTargetPeers = 16

	// DefaultDialTimeout 默认拨号超时
	DefaultDialTimeout = 10 * time.Second

	// DefaultReadTimeout 默认读超时
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout 默认写超时
	DefaultWriteTimeout = 5 * time.Second

	// DefaultSuspectTTL 默认可疑节点隔离时长
	DefaultSuspectTTL = 5 * time.Minute

	// DefaultSuspectCacheSize 默认可疑节点缓存容量
	DefaultSuspectCacheSize = 1024
)

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		TargetPeers:      DefaultTargetPeers,
		DialTimeout:      DefaultDialTimeout,
		ReadTimeout:      DefaultReadTimeout,
		WriteTimeout:     DefaultWriteTimeout,
		SuspectTTL:       DefaultSuspectTTL,
		SuspectCacheSize: DefaultSuspectCacheSize,
	}
}
