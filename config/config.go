package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Config go-gossip 统一配置
type Config struct {
	// Gossip 发现引擎配置
	Gossip GossipConfig `json:"gossip"`

	// PeerBook 节点簿配置
	PeerBook PeerBookConfig `json:"peer_book,omitempty"`
}

// GossipConfig 发现引擎配置
type GossipConfig struct {
	// TargetPeers 目标已知节点数
	TargetPeers int `json:"target_peers"`

	// DialTimeout 拨号超时
	DialTimeout Duration `json:"dial_timeout,omitempty"`

	// ReadTimeout 读取应答帧超时
	ReadTimeout Duration `json:"read_timeout,omitempty"`

	// WriteTimeout 应答器写帧超时
	WriteTimeout Duration `json:"write_timeout,omitempty"`

	// SuspectTTL 可疑节点隔离时长
	SuspectTTL Duration `json:"suspect_ttl,omitempty"`

	// SuspectCacheSize 可疑节点缓存容量
	SuspectCacheSize int `json:"suspect_cache_size,omitempty"`

	// SeedPeers 初始种子节点列表（multiaddr 格式，含 /p2p/ 后缀）
	//
	// 格式示例：
	//   "/ip4/1.2.3.4/tcp/4001/p2p/QmBootstrap..."
	SeedPeers []string `json:"seed_peers,omitempty"`
}

// PeerBookConfig 节点簿配置
type PeerBookConfig struct {
	// Path 持久化目录；为空时使用纯内存节点簿
	Path string `json:"path,omitempty"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Gossip: GossipConfig{
			TargetPeers:      16,                          // 目标节点数：16
			DialTimeout:      Duration(10 * time.Second),  // 拨号超时：10 秒
			ReadTimeout:      Duration(10 * time.Second),  // 读超时：10 秒
			WriteTimeout:     Duration(5 * time.Second),   // 写超时：5 秒
			SuspectTTL:       Duration(5 * time.Minute),   // 可疑隔离：5 分钟
			SuspectCacheSize: 1024,                        // 可疑缓存：1024 条
			SeedPeers:        []string{},
		},
		PeerBook: PeerBookConfig{
			Path: "", // 默认内存节点簿
		},
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.Gossip.TargetPeers <= 0 {
		return errors.New("gossip target peers must be positive")
	}
	if c.Gossip.DialTimeout < 0 {
		return errors.New("gossip dial timeout must be non-negative")
	}
	if c.Gossip.ReadTimeout < 0 {
		return errors.New("gossip read timeout must be non-negative")
	}
	if c.Gossip.WriteTimeout < 0 {
		return errors.New("gossip write timeout must be non-negative")
	}
	if c.Gossip.SuspectCacheSize < 0 {
		return errors.New("gossip suspect cache size must be non-negative")
	}
	return nil
}

// LoadFromFile 从 JSON 文件加载配置
//
// 未出现在文件中的字段保持默认值。
func LoadFromFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("配置验证失败: %w", err)
	}
	return cfg, nil
}

// SaveToFile 将配置写入 JSON 文件
func (c Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}

// WithTargetPeers 设置目标节点数
func (c Config) WithTargetPeers(n int) Config {
	c.Gossip.TargetPeers = n
	return c
}

// WithSeedPeers 设置种子节点列表
func (c Config) WithSeedPeers(peers []string) Config {
	c.Gossip.SeedPeers = peers
	return c
}

// WithPeerBookPath 设置节点簿持久化目录
func (c Config) WithPeerBookPath(path string) Config {
	c.PeerBook.Path = path
	return c
}
