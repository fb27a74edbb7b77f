package gossip

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-gossip/pkg/interfaces"
)

// ==================== 模块元数据 ====================

const (
	// ModuleName 模块名称
	ModuleName = "discovery/gossip"
)

// ==================== 依赖注入 ====================

// Params 模块输入
type Params struct {
	fx.In

	Host   interfaces.Host
	Book   interfaces.PeerBook
	Config Config
}

// Result 模块输出
type Result struct {
	fx.Out

	Discovery interfaces.Discovery
}

// ProvideDiscovery 构造发现引擎并挂接生命周期
func ProvideDiscovery(params Params, lc fx.Lifecycle) (Result, error) {
	d, err := New(params.Host, params.Book, params.Config)
	if err != nil {
		return Result{}, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return d.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return d.Stop(ctx)
		},
	})

	return Result{Discovery: d}, nil
}

// Module 发现引擎的 fx 模块
var Module = fx.Module(ModuleName,
	fx.Provide(ProvideDiscovery),
)
