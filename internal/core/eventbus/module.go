package eventbus

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-gossip/pkg/interfaces"
)

// ==================== 模块元数据 ====================

const (
	// ModuleName 模块名称
	ModuleName = "core/eventbus"
)

// ==================== 依赖注入 ====================

// Result 模块输出
type Result struct {
	fx.Out

	Bus interfaces.EventBus
}

// ProvideEventBus 构造事件总线
func ProvideEventBus() Result {
	return Result{Bus: NewBus()}
}

// Module 事件总线的 fx 模块
var Module = fx.Module(ModuleName,
	fx.Provide(ProvideEventBus),
)
