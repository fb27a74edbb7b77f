package peerbook

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-gossip/pkg/interfaces"
)

// ==================== 模块元数据 ====================

const (
	// ModuleName 模块名称
	ModuleName = "core/peerbook"
)

// ==================== 依赖注入 ====================

// Config 节点簿构造配置
type Config struct {
	// Path 持久化目录；为空时使用纯内存实现
	Path string
}

// Result 模块输出
type Result struct {
	fx.Out

	Book interfaces.PeerBook
}

// ProvidePeerBook 按配置构造节点簿
func ProvidePeerBook(cfg Config, lc fx.Lifecycle) (Result, error) {
	var (
		book interfaces.PeerBook
		err  error
	)

	if cfg.Path == "" {
		book = NewMemoryBook()
	} else {
		book, err = NewBadgerBook(cfg.Path)
		if err != nil {
			return Result{}, err
		}
	}

	lc.Append(fx.StopHook(book.Close))

	return Result{Book: book}, nil
}

// Module 节点簿的 fx 模块
var Module = fx.Module(ModuleName,
	fx.Provide(ProvidePeerBook),
)
