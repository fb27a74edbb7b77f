package gossip

import "errors"

// ==================== 错误定义 ====================

var (
	// ErrInvalidTargetPeers 目标节点数非正
	ErrInvalidTargetPeers = errors.New("目标节点数必须为正整数")

	// ErrAlreadyStarted 发现引擎已启动
	ErrAlreadyStarted = errors.New("发现引擎已启动")

	// ErrNotStarted 发现引擎未启动
	ErrNotStarted = errors.New("发现引擎未启动")

	// ErrMessageTooLarge 消息序列化后超出单字节长度前缀的上限
	ErrMessageTooLarge = errors.New("消息超出 255 字节上限")

	// ErrTruncatedFrame 帧在读满声明长度前终止
	ErrTruncatedFrame = errors.New("帧被截断")

	// ErrMalformedPayload 载荷不是合法的节点列表序列化
	ErrMalformedPayload = errors.New("载荷格式非法")
)
