package gossip

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dep2p/go-gossip/pkg/interfaces"
	"github.com/dep2p/go-gossip/pkg/lib/log"
	"github.com/dep2p/go-gossip/pkg/protocol"
	"github.com/dep2p/go-gossip/pkg/types"
)

// logger 发现模块日志记录器
var logger = log.Logger("discovery/gossip")

// ==================== 发现引擎 ====================

// Discoverer 主动发现引擎
//
// 启动后以当前节点簿为种子发起递归发现，并订阅连接事件，
// 对未询问过的新连接节点发起单节点发现轮。
type Discoverer struct {
	host interfaces.Host
	book interfaces.PeerBook
	cfg  Config

	responder *responder

	// suspects 近期帧错误节点，隔离期内不再采纳举荐
	suspects *expirable.LRU[types.PeerID, struct{}]

	started atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	emitDiscovered interfaces.Emitter
	emitSuspected  interfaces.Emitter
	connSub        interfaces.Subscription
}

var _ interfaces.Discovery = (*Discoverer)(nil)

// New 创建发现引擎
func New(host interfaces.Host, book interfaces.PeerBook, cfg Config) (*Discoverer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Discoverer{
		host:      host,
		book:      book,
		cfg:       cfg,
		responder: newResponder(host.ID(), book, cfg.WriteTimeout),
		suspects:  expirable.NewLRU[types.PeerID, struct{}](cfg.SuspectCacheSize, nil, cfg.SuspectTTL),
	}, nil
}

// Start 启动发现引擎
//
// 注册应答器、订阅连接事件，并以当前节点簿为种子发起首轮发现。
func (d *Discoverer) Start(ctx context.Context) error {
	if !d.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	d.ctx, d.cancel = context.WithCancel(context.Background())

	bus := d.host.EventBus()

	var err error
	d.emitDiscovered, err = bus.Emitter(new(types.EvtPeerDiscovered))
	if err != nil {
		d.started.Store(false)
		return err
	}
	d.emitSuspected, err = bus.Emitter(new(types.EvtPeerSuspected))
	if err != nil {
		_ = d.emitDiscovered.Close()
		d.started.Store(false)
		return err
	}
	d.connSub, err = bus.Subscribe(new(types.EvtPeerConnected))
	if err != nil {
		_ = d.emitDiscovered.Close()
		_ = d.emitSuspected.Close()
		d.started.Store(false)
		return err
	}

	d.host.SetStreamHandler(protocol.Gossip, d.responder.handleStream)

	d.wg.Add(1)
	go d.connectedLoop()

	seeds := d.book.Peers()
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.discover(seeds)
	}()

	logger.Info("发现引擎已启动",
		"self", log.TruncateID(string(d.host.ID()), 8),
		"target", d.cfg.TargetPeers,
		"seeds", len(seeds))
	return nil
}

// Stop 停止发现引擎
//
// 注销应答器、退订连接事件并等待在途分支退出。
// ctx 限定等待时长，超时则放弃等待直接返回。
func (d *Discoverer) Stop(ctx context.Context) error {
	if !d.started.CompareAndSwap(true, false) {
		return ErrNotStarted
	}

	d.host.RemoveStreamHandler(protocol.Gossip)
	_ = d.connSub.Close()
	d.cancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("等待发现分支退出超时")
		return ctx.Err()
	}

	_ = d.emitDiscovered.Close()
	_ = d.emitSuspected.Close()

	logger.Info("发现引擎已停止", "known", d.book.Size())
	return nil
}

// connectedLoop 消费连接事件，对未询问过的节点发起单节点发现轮
func (d *Discoverer) connectedLoop() {
	defer d.wg.Done()

	for raw := range d.connSub.Out() {
		evt, ok := raw.(types.EvtPeerConnected)
		if !ok {
			continue
		}
		if evt.PeerID == d.host.ID() {
			continue
		}

		rec, known := d.book.Get(evt.PeerID)
		if known && rec.Asked {
			continue
		}
		if !known {
			rec = types.NewPeerRecordFromStrings(evt.PeerID, types.MultiaddrsToStrings(evt.Addrs))
			d.book.Put(rec)
		}

		d.wg.Add(1)
		go func(seed types.PeerRecord) {
			defer d.wg.Done()
			d.discover([]types.PeerRecord{seed})
		}(rec)
	}
}

// discover 对种子集合发起一轮递归发现
//
// 每次进入都重新检查启动标志和终止条件：已知节点数达标
// 或种子为空时本分支终止。种子集合内的节点并发、独立探测。
func (d *Discoverer) discover(seeds []types.PeerRecord) {
	if !d.started.Load() || d.ctx.Err() != nil || !d.host.IsRunning() {
		return
	}
	if d.book.Size() >= d.cfg.TargetPeers || len(seeds) == 0 {
		return
	}

	for _, seed := range seeds {
		d.wg.Add(1)
		go func(p types.PeerRecord) {
			defer d.wg.Done()
			d.probe(p)
		}(seed)
	}
}

// probe 探测单个节点：拨号、读一帧、过滤并对新节点递归
func (d *Discoverer) probe(p types.PeerRecord) {
	d.book.MarkAsked(p.ID)

	msg, err := d.exchange(p)
	if err != nil {
		return
	}

	newPeers := d.filter(msg)
	if len(newPeers) > 0 {
		logger.Debug("学到新节点",
			"from", log.TruncateID(string(p.ID), 8),
			"count", len(newPeers),
			"known", d.book.Size())
	}

	d.discover(newPeers)
}

// exchange 与单个节点完成一次协议交换
//
// 拨号失败静默逐出；帧错误逐出、登记可疑并发布事件。
func (d *Discoverer) exchange(p types.PeerRecord) (Message, error) {
	ctx, cancel := context.WithTimeout(d.ctx, d.cfg.DialTimeout)
	defer cancel()

	if err := d.host.Connect(ctx, p.ID, p.DialAddrs()); err != nil {
		d.evict(p.ID)
		return nil, err
	}

	s, err := d.host.NewStream(ctx, p.ID, protocol.Gossip)
	if err != nil {
		d.evict(p.ID)
		return nil, err
	}

	if d.cfg.ReadTimeout > 0 {
		_ = s.SetReadDeadline(time.Now().Add(d.cfg.ReadTimeout))
	}

	msg, err := ReadMessage(s)
	if err != nil {
		_ = s.Reset()
		d.suspect(p.ID, err)
		return nil, err
	}

	_ = s.Close()
	return msg, nil
}

// evict 静默逐出不可达节点
func (d *Discoverer) evict(peerID types.PeerID) {
	_ = d.host.HangUp(peerID)
	d.book.Remove(peerID)

	logger.Debug("节点不可达，已逐出", "peer", log.TruncateID(string(peerID), 8))
}

// suspect 逐出可疑节点并发布事件
func (d *Discoverer) suspect(peerID types.PeerID, reason error) {
	_ = d.host.HangUp(peerID)
	d.book.Remove(peerID)
	d.suspects.Add(peerID, struct{}{})

	if err := d.emitSuspected.Emit(types.EvtPeerSuspected{
		BaseEvent: types.NewBaseEvent("peer_suspected"),
		PeerID:    peerID,
		Reason:    reason,
	}); err != nil {
		logger.Warn("发布可疑节点事件失败", "err", err)
	}

	logger.Warn("节点应答非法，已逐出",
		"peer", log.TruncateID(string(peerID), 8),
		"reason", reason)
}

// filter 将远端列表对账到节点簿，返回新学到的节点
//
// 已知节点直接跳过，不合并其新地址；隔离期内的可疑节点
// 不予采纳。"检查-插入"由节点簿的 PutIfAbsent 原子完成，
// 并发分支对同一新节点恰有一个采纳成功。
func (d *Discoverer) filter(msg Message) []types.PeerRecord {
	admitted := make([]types.PeerRecord, 0, len(msg))

	for id, addrStrs := range msg {
		peerID := types.PeerID(id)
		if peerID.IsEmpty() || peerID == d.host.ID() {
			continue
		}
		if d.suspects.Contains(peerID) {
			continue
		}

		rec := types.NewPeerRecordFromStrings(peerID, addrStrs)
		if !d.book.PutIfAbsent(rec) {
			continue
		}
		admitted = append(admitted, rec)

		if err := d.emitDiscovered.Emit(types.EvtPeerDiscovered{
			BaseEvent: types.NewBaseEvent("peer_discovered"),
			Peer:      rec,
			Source:    "gossip",
		}); err != nil {
			logger.Warn("发布节点发现事件失败", "err", err)
		}
	}

	return admitted
}
