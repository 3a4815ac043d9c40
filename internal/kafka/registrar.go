package kafka

import (
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/ports"
)

// RegistrarConfig — статический список топиков и общие параметры консьюмеров.
type RegistrarConfig struct {
	Brokers      []string
	Topics       []string
	GroupPrefix  string
	StartOffset  string
	RetryInitial time.Duration
	RetryMax     time.Duration
}

// Registry — общий реестр консьюмеров. Заполняется один раз на старте
// (RegisterConsumers), дальше только читается монитором здоровья и
// HTTP-слоем, поэтому после инициализации фактически неизменяем.
type Registry struct {
	mu        sync.RWMutex
	consumers []*Consumer
}

// Consumers — все зарегистрированные консьюмеры (для запуска и остановки).
func (r *Registry) Consumers() []*Consumer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Consumer, len(r.consumers))
	copy(out, r.consumers)
	return out
}

// Controls — управляющие ручки для монитора здоровья.
func (r *Registry) Controls() []ports.ConsumerControl {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ports.ConsumerControl, 0, len(r.consumers))
	for _, c := range r.consumers {
		out = append(out, c)
	}
	return out
}

func (r *Registry) add(c *Consumer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.consumers = append(r.consumers, c)
}

// RegisterConsumers — на каждый топик создаёт отдельный консьюмер с
// group_id, производным от имени топика, и регистрирует его в реестре.
// Любая ошибка фатальна: процесс не должен стартовать частично собранным,
// поэтому возвращаем ошибку с именем топика и причиной. Ретраев здесь
// нет — повторные подключения к брокеру делает сам kafka.Reader.
func RegisterConsumers(cfg *RegistrarConfig, d dispatcher, log ports.Logger) (*Registry, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("register consumers: no brokers configured")
	}
	if len(cfg.Topics) == 0 {
		return nil, fmt.Errorf("register consumers: no topics configured")
	}

	reg := &Registry{}
	seen := make(map[string]bool, len(cfg.Topics))

	for _, topic := range cfg.Topics {
		if topic == "" {
			return nil, fmt.Errorf("register consumers: empty topic name in configuration")
		}
		if seen[topic] {
			return nil, fmt.Errorf("register consumers: topic %q listed twice", topic)
		}
		seen[topic] = true

		consumerCfg := ConsumerConfig{
			Brokers:      cfg.Brokers,
			Topic:        topic,
			GroupID:      deriveGroupID(cfg.GroupPrefix, topic),
			StartOffset:  cfg.StartOffset,
			RetryInitial: cfg.RetryInitial,
			RetryMax:     cfg.RetryMax,
		}
		reg.add(NewConsumer(&consumerCfg, d, log))
	}

	return reg, nil
}

// deriveGroupID — group_id производен от имени топика: независимые
// группы на топик не мешают друг другу при ребалансировке.
func deriveGroupID(prefix, topic string) string {
	if prefix == "" {
		return topic
	}
	return prefix + "-" + topic
}
