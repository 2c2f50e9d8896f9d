package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"clinic-admin/config"
)

// Publisher 消息发布接口
// 投递为尽力而为：调用方不依赖发布结果做业务判断
type Publisher interface {
	// Publish 以 JSON 发布到交换机，routingKey 为事件类型
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	// Enqueue 以 JSON 直接投递到指定队列（默认交换机）
	Enqueue(ctx context.Context, queue string, payload interface{}) error
	Close() error
}

// RabbitPublisher 基于 amqp091 的 Publisher 实现
// amqp.Channel 非并发安全，发布时加锁
type RabbitPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewRabbitPublisher 连接 RabbitMQ 并声明交换机与通知队列
func NewRabbitPublisher(cfg *config.MQConfig, logger *zap.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Dial:      amqp.DefaultDial(5 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("连接 RabbitMQ 失败: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("打开 RabbitMQ Channel 失败: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("声明交换机失败: %w", err)
	}
	if _, err := ch.QueueDeclare(cfg.NotificationQueue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("声明通知队列失败: %w", err)
	}

	logger.Info("RabbitMQ 连接成功",
		zap.String("exchange", cfg.Exchange),
		zap.String("queue", cfg.NotificationQueue),
	)

	return &RabbitPublisher{conn: conn, channel: ch, exchange: cfg.Exchange, logger: logger}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	return p.publish(ctx, p.exchange, routingKey, payload)
}

func (p *RabbitPublisher) Enqueue(ctx context.Context, queue string, payload interface{}) error {
	return p.publish(ctx, "", queue, payload)
}

func (p *RabbitPublisher) publish(ctx context.Context, exchange, key string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		DeliveryMode: amqp.Persistent,
		Body:         body,
		Headers: amqp.Table{
			"message_type":     "JSON",
			"requeue_strategy": "DROP",
		},
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.PublishWithContext(ctx, exchange, key, false, false, msg); err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}
	return nil
}

// Close 关闭 Channel 与连接
func (p *RabbitPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.logger.Warn("关闭 RabbitMQ Channel 失败", zap.Error(err))
	}
	return p.conn.Close()
}

// NopPublisher mq.enabled=false 时使用，丢弃所有消息
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NopPublisher) Enqueue(context.Context, string, interface{}) error { return nil }
func (NopPublisher) Close() error                                       { return nil }
