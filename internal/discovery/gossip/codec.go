package gossip

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ==================== 线上编解码 ====================

// MaxPayloadSize 单帧载荷上限，受单字节长度前缀约束
const MaxPayloadSize = 255

// Message 节点列表消息：节点 ID → 地址字符串数组
//
// 地址不携带 /p2p/<peerID> 后缀，后缀由键重新派生。
type Message map[string][]string

// Encode 将消息编码为单帧
//
// 空消息编码为单个零字节。序列化超出 MaxPayloadSize 时
// 返回 ErrMessageTooLarge，不做截断。
func Encode(msg Message) ([]byte, error) {
	if len(msg) == 0 {
		return []byte{0}, nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("序列化节点列表失败: %w", err)
	}
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d 字节", ErrMessageTooLarge, len(payload))
	}

	frame := make([]byte, 0, 1+len(payload))
	frame = append(frame, byte(len(payload)))
	frame = append(frame, payload...)
	return frame, nil
}

// Decode 从单帧解码消息
func Decode(frame []byte) (Message, error) {
	return ReadMessage(bytes.NewReader(frame))
}

// WriteMessage 编码消息并写入流
func WriteMessage(w io.Writer, msg Message) error {
	frame, err := Encode(msg)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("写入帧失败: %w", err)
	}
	return nil
}

// ReadMessage 从流中读取恰好一帧并解码
//
// 长度字节缺失或载荷不足声明长度时返回 ErrTruncatedFrame；
// 载荷无法解析时返回 ErrMalformedPayload。二者均区别于
// 零长度的空列表哨兵。
func ReadMessage(r io.Reader) (Message, error) {
	var lenBuf [1]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: 读取长度字节: %v", ErrTruncatedFrame, err)
	}

	length := int(lenBuf[0])
	if length == 0 {
		return Message{}, nil
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: 声明 %d 字节: %v", ErrTruncatedFrame, length, err)
	}

	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if msg == nil {
		msg = Message{}
	}
	return msg, nil
}
