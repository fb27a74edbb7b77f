package gossip

import (
	"time"

	"github.com/dep2p/go-gossip/pkg/interfaces"
	"github.com/dep2p/go-gossip/pkg/lib/log"
	"github.com/dep2p/go-gossip/pkg/types"
)

// ==================== 被动应答器 ====================

// responder 应答入站的发现请求
//
// 写一帧当前节点簿的快照后半关闭写端，不读取、不校验对端。
type responder struct {
	book         interfaces.PeerBook
	self         types.PeerID
	writeTimeout time.Duration
}

// newResponder 创建应答器
func newResponder(self types.PeerID, book interfaces.PeerBook, writeTimeout time.Duration) *responder {
	return &responder{
		book:         book,
		self:         self,
		writeTimeout: writeTimeout,
	}
}

// handleStream 处理一条入站发现流
func (r *responder) handleStream(s interfaces.Stream) {
	remote := s.RemotePeer()

	msg := r.snapshot(remote)

	if r.writeTimeout > 0 {
		_ = s.SetWriteDeadline(time.Now().Add(r.writeTimeout))
	}

	if err := WriteMessage(s, msg); err != nil {
		logger.Debug("写入节点列表失败",
			"remote", log.TruncateID(string(remote), 8),
			"err", err)
		_ = s.Reset()
		return
	}

	if err := s.CloseWrite(); err != nil {
		_ = s.Reset()
		return
	}

	logger.Debug("已应答发现请求",
		"remote", log.TruncateID(string(remote), 8),
		"peers", len(msg))
}

// snapshot 生成当前节点簿的快照消息
//
// 跳过请求方自身和无地址的记录。单字节长度前缀限制单帧
// 载荷为 255 字节，放不下的记录被丢弃，保证应答始终可编码。
func (r *responder) snapshot(requester types.PeerID) Message {
	msg := Message{}
	for _, rec := range r.book.Peers() {
		if rec.ID == requester || rec.ID == r.self || !rec.HasAddrs() {
			continue
		}

		msg[string(rec.ID)] = rec.AddrsToStrings()
		if _, err := Encode(msg); err != nil {
			delete(msg, string(rec.ID))
			break
		}
	}
	return msg
}
