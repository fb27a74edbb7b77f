package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMultiaddr(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		// 有效的 multiaddr
		{"ipv4 tcp", "/ip4/1.2.3.4/tcp/4001", false},
		{"ipv4 udp quic", "/ip4/1.2.3.4/udp/4001/quic-v1", false},
		{"ipv6 tcp", "/ip6/::1/tcp/4001", false},
		{"dns4", "/dns4/example.com/tcp/4001", false},
		{"with peer id", "/ip4/1.2.3.4/tcp/4001/p2p/QmYyQSo1c1Ym7orWxLYvCrM2EmxFTANf8wXmmE7DWjhx5N", false},

		// 无效格式
		{"empty", "", true},
		{"host:port format", "1.2.3.4:4001", true},
		{"no leading slash", "ip4/1.2.3.4/tcp/4001", true},
		{"too short", "/ip4", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ma, err := ParseMultiaddr(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.input, ma.String())
			}
		})
	}
}

func TestMustParseMultiaddr(t *testing.T) {
	// 有效输入不 panic
	assert.NotPanics(t, func() {
		ma := MustParseMultiaddr("/ip4/1.2.3.4/tcp/4001")
		assert.Equal(t, "/ip4/1.2.3.4/tcp/4001", ma.String())
	})

	// 无效输入 panic
	assert.Panics(t, func() {
		MustParseMultiaddr("invalid")
	})
}

func TestMultiaddrPeerIDSuffix(t *testing.T) {
	bare := Multiaddr("/ip4/1.2.3.4/tcp/4001")
	id := PeerID("QmYyQSo1c1Ym7orWxLYvCrM2EmxFTANf8wXmmE7DWjhx5N")

	full := bare.WithPeerID(id)
	assert.Equal(t, "/ip4/1.2.3.4/tcp/4001/p2p/"+id.String(), full.String())
	assert.Equal(t, id, full.PeerID())

	// 往返：剥离后缀恢复原地址
	assert.Equal(t, bare, full.WithoutPeerID())

	// 已有后缀时替换
	other := PeerID("QmOther")
	assert.Equal(t, "/ip4/1.2.3.4/tcp/4001/p2p/QmOther", full.WithPeerID(other).String())

	// 无后缀地址剥离为幂等操作
	assert.Equal(t, bare, bare.WithoutPeerID())
	assert.Equal(t, EmptyPeerID, bare.PeerID())
}

func TestStringsToMultiaddrs(t *testing.T) {
	mas := StringsToMultiaddrs([]string{
		"/ip4/1.2.3.4/tcp/4001",
		"not-a-multiaddr",
		"/ip6/::1/tcp/4002",
	})
	require.Len(t, mas, 2)
	assert.Equal(t, Multiaddr("/ip4/1.2.3.4/tcp/4001"), mas[0])
	assert.Equal(t, Multiaddr("/ip6/::1/tcp/4002"), mas[1])

	_, err := ParseMultiaddrStrict([]string{"/ip4/1.2.3.4/tcp/4001", "bad"})
	assert.Error(t, err)
}
