// Package interfaces 定义 go-gossip 公共接口
//
// 本文件定义 Discovery 接口，约定发现组件的生命周期。
package interfaces

import (
	"context"
)

// Discovery 定义发现组件的生命周期接口
//
// Start/Stop 必须是幂等安全的：重复调用返回明确错误而非 panic。
// Stop 采用协作式取消——进行中的发现分支在下一个检查点自行终止，
// 已经发出的拨号允许完成其失败/成功处理。
type Discovery interface {
	// Start 启动发现组件
	Start(ctx context.Context) error

	// Stop 停止发现组件
	Stop(ctx context.Context) error
}
