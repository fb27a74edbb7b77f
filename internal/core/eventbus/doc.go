// Package eventbus 实现事件总线
//
// # 模块概述
//
// eventbus 提供类型安全的进程内事件发布/订阅机制，
// 是发现引擎与宿主解耦的通道：引擎发布 EvtPeerDiscovered /
// EvtPeerSuspected，宿主发布 EvtPeerConnected。
//
// # 核心语义
//
//   - 按事件类型（reflect.Type）路由，订阅/发射均以指针类型注册
//   - 订阅者持有带缓冲的通道；缓冲满时丢弃事件并计数告警
//   - Stateful 发射器保留最后一个事件，新订阅者入场即收到
//   - Subscription.Close / Emitter.Close 并发安全、幂等
//
// # 使用示例
//
//	bus := eventbus.NewBus()
//
//	sub, _ := bus.Subscribe(new(types.EvtPeerDiscovered))
//	defer sub.Close()
//
//	em, _ := bus.Emitter(new(types.EvtPeerDiscovered))
//	defer em.Close()
//
//	em.Emit(types.EvtPeerDiscovered{Peer: rec})
//	evt := (<-sub.Out()).(types.EvtPeerDiscovered)
package eventbus
