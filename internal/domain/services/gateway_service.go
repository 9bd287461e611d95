package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/infrastructure/config"
	"walink-crm-service/pkg/logger"
	"walink-crm-service/utils"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// 网关桥接主题常量
// WhatsApp网关是独立进程，经MQTT与本服务互通
const (
	// 外发单条消息
	TopicOutboundMessage = "walink/outbound/message"

	// 外发群发任务
	TopicOutboundBroadcast = "walink/outbound/broadcast"

	// 入站消息
	TopicInboundMessage = "walink/inbound/message"

	// 投递回执（消息与群发共用前缀）
	TopicReceipts = "walink/receipt/#"
)

// 网关消息结构体定义
type (
	// OutboundMessagePayload 外发消息
	OutboundMessagePayload struct {
		ExternalID string `json:"external_id"`
		Phone      string `json:"phone"`
		Text       string `json:"text"`
		Timestamp  int64  `json:"timestamp"`
	}

	// OutboundBroadcastPayload 群发任务
	OutboundBroadcastPayload struct {
		BroadcastID        uint   `json:"broadcast_id"`
		Message            string `json:"message"`
		TargetAudienceType string `json:"target_audience_type"`
		Timestamp          int64  `json:"timestamp"`
	}

	// InboundMessagePayload 入站消息
	InboundMessagePayload struct {
		ExternalID string `json:"external_id"`
		Phone      string `json:"phone"`
		Name       string `json:"name"`
		Text       string `json:"text"`
		Timestamp  int64  `json:"timestamp"`
	}

	// ReceiptPayload 投递回执
	ReceiptPayload struct {
		ExternalID  string `json:"external_id"`
		BroadcastID uint   `json:"broadcast_id,omitempty"`
		Status      string `json:"status"` // sent/delivered/failed
		Timestamp   int64  `json:"timestamp"`
	}
)

// InterfaceGatewayService 定义消息网关桥接服务接口
type InterfaceGatewayService interface {
	Connect() error
	Disconnect()
	PublishMessage(msg *models.Message, phone string) error
	PublishBroadcast(b *models.Broadcast) error
	SubscribeToTopics() error
	IsUp() bool
}

// GatewayService 消息网关桥接服务的实现
type GatewayService struct {
	Config           *config.Config
	Client           mqtt.Client
	contactService   InterfaceContactService
	messageService   InterfaceMessageService
	broadcastService InterfaceBroadcastService

	IsConnected    bool
	connectedMutex sync.RWMutex // 保护IsConnected字段的读写
	PublishMutex   sync.Mutex   // 保护MQTT消息发布
}

// NewGatewayService 创建一个新的网关桥接服务
func NewGatewayService(
	cfg *config.Config,
	contacts InterfaceContactService,
	messages InterfaceMessageService,
	broadcasts InterfaceBroadcastService,
) InterfaceGatewayService {
	return &GatewayService{
		Config:           cfg,
		contactService:   contacts,
		messageService:   messages,
		broadcastService: broadcasts,
	}
}

// Connect 连接MQTT服务器
// 连接失败只记录日志，不阻止服务启动
func (s *GatewayService) Connect() error {
	// 客户端ID加随机后缀，避免多实例部署时互相挤掉线
	clientID := fmt.Sprintf("%s_%d", s.Config.MQTTClientID, utils.RandomInt32())

	opts := mqtt.NewClientOptions().
		AddBroker(s.Config.MQTTBrokerURL).
		SetClientID(clientID).
		SetUsername(s.Config.MQTTUsername).
		SetPassword(s.Config.MQTTPassword).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second).
		SetOnConnectHandler(func(c mqtt.Client) {
			s.setConnected(true)
			logger.Info("消息网关MQTT已连接: %s", s.Config.MQTTBrokerURL)
			if err := s.SubscribeToTopics(); err != nil {
				logger.Error("订阅网关主题失败: %v", err)
			}
		}).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			s.setConnected(false)
			logger.Warning("消息网关MQTT连接断开: %v", err)
		})

	s.Client = mqtt.NewClient(opts)
	token := s.Client.Connect()
	if token.WaitTimeout(5*time.Second) && token.Error() != nil {
		return token.Error()
	}
	return nil
}

// Disconnect 断开MQTT连接
func (s *GatewayService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
	s.setConnected(false)
}

// IsUp 网关通道是否可用
func (s *GatewayService) IsUp() bool {
	s.connectedMutex.RLock()
	defer s.connectedMutex.RUnlock()
	return s.IsConnected
}

func (s *GatewayService) setConnected(up bool) {
	s.connectedMutex.Lock()
	defer s.connectedMutex.Unlock()
	s.IsConnected = up
}

// publish 序列化并发布消息
func (s *GatewayService) publish(topic string, payload interface{}) error {
	if s.Client == nil || !s.Client.IsConnected() {
		return fmt.Errorf("消息网关未连接")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	s.PublishMutex.Lock()
	defer s.PublishMutex.Unlock()
	token := s.Client.Publish(topic, byte(s.Config.MQTTQoS), false, data)
	if token.WaitTimeout(3*time.Second) && token.Error() != nil {
		return token.Error()
	}
	return nil
}

// PublishMessage 将外发消息投递到网关
func (s *GatewayService) PublishMessage(msg *models.Message, phone string) error {
	return s.publish(TopicOutboundMessage, OutboundMessagePayload{
		ExternalID: msg.ExternalID,
		Phone:      phone,
		Text:       msg.MessageText,
		Timestamp:  time.Now().UnixMilli(),
	})
}

// PublishBroadcast 将群发任务投递到网关
func (s *GatewayService) PublishBroadcast(b *models.Broadcast) error {
	return s.publish(TopicOutboundBroadcast, OutboundBroadcastPayload{
		BroadcastID:        b.ID,
		Message:            b.Message,
		TargetAudienceType: b.TargetAudienceType,
		Timestamp:          time.Now().UnixMilli(),
	})
}

// SubscribeToTopics 订阅入站消息与回执主题
func (s *GatewayService) SubscribeToTopics() error {
	qos := byte(s.Config.MQTTQoS)

	if token := s.Client.Subscribe(TopicInboundMessage, qos, s.handleInbound); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	if token := s.Client.Subscribe(TopicReceipts, qos, s.handleReceipt); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

// handleInbound 入站消息摄取：未知手机号先建联系人，再追加消息
func (s *GatewayService) handleInbound(client mqtt.Client, m mqtt.Message) {
	var payload InboundMessagePayload
	if err := json.Unmarshal(m.Payload(), &payload); err != nil {
		logger.Warning("入站消息解析失败: %v", err)
		return
	}
	if payload.Phone == "" || payload.Text == "" {
		return
	}

	contact, err := s.contactService.EnsureByPhone(payload.Phone, payload.Name)
	if err != nil {
		logger.Error("入站联系人摄取失败: %v", err)
		return
	}

	if _, err := s.messageService.AppendIncoming(contact.ID, payload.Text, payload.ExternalID); err != nil {
		logger.Error("入站消息写入失败: %v", err)
	}
}

// handleReceipt 投递回执：更新消息状态，群发回执累加计数
func (s *GatewayService) handleReceipt(client mqtt.Client, m mqtt.Message) {
	var payload ReceiptPayload
	if err := json.Unmarshal(m.Payload(), &payload); err != nil {
		logger.Warning("回执解析失败: %v", err)
		return
	}

	if payload.ExternalID != "" {
		if err := s.messageService.MarkStatusByExternalID(payload.ExternalID, payload.Status); err != nil {
			logger.Error("回执状态更新失败: %v", err)
		}
	}
	if payload.BroadcastID != 0 && payload.Status == models.MessageStatusDelivered {
		if err := s.broadcastService.IncrementDelivered(payload.BroadcastID); err != nil {
			logger.Error("群发回执计数失败: %v", err)
		}
	}
}
