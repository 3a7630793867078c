package pkg

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// Event 追加式分析事件，写入失败不影响主流程
type Event struct {
	TS      time.Time      `json:"ts"`
	Type    string         `json:"type"`
	ActorID uint64         `json:"actor_user_id"`
	Payload map[string]any `json:"payload"`
}

// EventSink 状态变更后调用；实现必须自行吞掉失败（只打日志），
// 调用方不会也不该检查结果
type EventSink interface {
	Log(ctx context.Context, eventType string, actorID uint64, payload map[string]any)
}

// FileEventSink 按天分文件追加 JSONL 到数据湖目录
type FileEventSink struct {
	Dir string
	mu  sync.Mutex
}

func NewFileEventSink(dir string) *FileEventSink {
	return &FileEventSink{Dir: dir}
}

func (s *FileEventSink) Log(ctx context.Context, eventType string, actorID uint64, payload map[string]any) {
	ev := Event{TS: time.Now().UTC(), Type: eventType, ActorID: actorID, Payload: payload}
	line, err := json.Marshal(ev)
	if err != nil {
		log.Printf("event marshal err: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err = os.MkdirAll(s.Dir, 0o755); err != nil {
		log.Printf("event dir err: %v", err)
		return
	}
	path := filepath.Join(s.Dir, ev.TS.Format("2006-01-02")+".jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("event open err: %v", err)
		return
	}
	defer f.Close()
	if _, err = f.Write(append(line, '\n')); err != nil {
		log.Printf("event write err: %v", err)
	}
}

// eventProducer sink 对投递端的最小依赖，测试用内存实现替换
type eventProducer interface {
	Send(ctx context.Context, key string, value []byte) error
}

// KafkaEventSink 走 kafka 的投递实现。key 取 actor id，
// 同一用户的事件落同一分区，消费侧按用户回放时保序。
type KafkaEventSink struct {
	Producer eventProducer
}

func (s *KafkaEventSink) Log(ctx context.Context, eventType string, actorID uint64, payload map[string]any) {
	ev := Event{TS: time.Now().UTC(), Type: eventType, ActorID: actorID, Payload: payload}
	value, err := json.Marshal(ev)
	if err != nil {
		log.Printf("event marshal err: %v", err)
		return
	}
	if err = s.Producer.Send(ctx, strconv.FormatUint(actorID, 10), value); err != nil {
		log.Printf("event send err: %v", err)
	}
}

// NopEventSink 测试用
type NopEventSink struct{}

func (NopEventSink) Log(ctx context.Context, eventType string, actorID uint64, payload map[string]any) {
}
