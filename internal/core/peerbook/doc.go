// Package peerbook 实现节点簿
//
// # 模块概述
//
// 节点簿保存当前已知的节点记录，是发现引擎的唯一共享可变状态。
// 并发的发现分支通过它判定"谁是新节点"、记录"谁已被询问"、
// 驱逐不可达或行为异常的节点。
//
// # 实现
//
//   - MemoryBook: 纯内存实现，RWMutex 保护的 map
//   - BadgerBook: 基于 Badger 的持久化实现，重启后恢复已知节点，
//     内存缓存承担全部读取
//
// # 并发语义
//
// 所有方法并发安全。PutIfAbsent 的"检查-插入"在同一临界区内完成，
// 两个并发分支对同一新节点调用时恰有一个返回 true。
package peerbook
