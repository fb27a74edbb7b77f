// Package interfaces 定义 go-gossip 消费的协作者接口
//
// gossip 发现引擎不实现传输、地址解析或节点身份，
// 它只通过本包的接口消费宿主能力：
//
//   - Host      - 拨号、流创建、协议处理器注册（host.go）
//   - Stream    - 双向字节流（host.go）
//   - PeerBook  - 共享节点簿（peerbook.go）
//   - EventBus  - 类型化事件发布/订阅（eventbus.go）
//   - Discovery - 发现组件的生命周期契约（discovery.go）
//
// 接口保持最小化：只声明 gossip 协议实际需要的能力，
// 任何满足这些接口的宿主实现均可接入。
package interfaces
