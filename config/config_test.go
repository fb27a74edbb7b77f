package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-gossip/pkg/types"
)

// TestDefaultConfigValid 测试默认配置通过验证
func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

// TestValidateRejectsBadTarget 测试目标数校验
func TestValidateRejectsBadTarget(t *testing.T) {
	cfg := DefaultConfig().WithTargetPeers(0)
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig().WithTargetPeers(-1)
	assert.Error(t, cfg.Validate())
}

// TestLoadFromFile 测试从文件加载并与默认值合并
func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"gossip": {
			"target_peers": 8,
			"dial_timeout": "3s",
			"seed_peers": ["/ip4/10.0.0.1/tcp/4001/p2p/QmSeed"]
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Gossip.TargetPeers)
	assert.Equal(t, 3*time.Second, cfg.Gossip.DialTimeout.Duration())
	// 未指定字段保持默认
	assert.Equal(t, DefaultConfig().Gossip.ReadTimeout, cfg.Gossip.ReadTimeout)
}

// TestLoadFromFileInvalid 测试非法配置文件被拒绝
func TestLoadFromFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gossip": {"target_peers": 0}}`), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

// TestSaveLoadRoundTrip 测试配置保存后可重新加载
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig().
		WithTargetPeers(32).
		WithSeedPeers([]string{"/ip4/10.0.0.1/tcp/4001/p2p/QmSeed"}).
		WithPeerBookPath("/var/lib/gossip")
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

// TestToGossipConfig 测试向引擎配置的转换
func TestToGossipConfig(t *testing.T) {
	cfg := DefaultConfig().WithTargetPeers(8)
	cfg.Gossip.DialTimeout = Duration(3 * time.Second)

	out := cfg.ToGossipConfig()
	assert.Equal(t, 8, out.TargetPeers)
	assert.Equal(t, 3*time.Second, out.DialTimeout)
	assert.NoError(t, out.Validate())
}

// TestSeedRecords 测试种子地址解析
func TestSeedRecords(t *testing.T) {
	cfg := DefaultConfig().WithSeedPeers([]string{
		"/ip4/10.0.0.1/tcp/4001/p2p/QmSeedA",
		"/ip4/192.168.1.1/tcp/4001/p2p/QmSeedA",
		"/ip4/10.0.0.2/tcp/4001/p2p/QmSeedB",
		"/ip4/10.0.0.3/tcp/4001", // 无节点 ID 后缀，跳过
		"not-a-multiaddr",        // 无法解析，跳过
	})

	records := cfg.SeedRecords()
	require.Len(t, records, 2)

	assert.Equal(t, types.PeerID("QmSeedA"), records[0].ID)
	assert.Len(t, records[0].Addrs, 2)
	assert.Equal(t, types.PeerID("QmSeedB"), records[1].ID)
}
