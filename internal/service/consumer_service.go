package service

import (
	"context"
	"encoding/json"

	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/pkg/mailer"
	"storefront-be/internal/repository/specification"
	"storefront-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the order follow-up queue: it builds the tax
// invoice and sends the confirmation email. Both are best-effort relative
// to the checkout that queued them.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	invoiceService IInvoiceService
	emailService   mailer.IEmailService
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	invoiceService IInvoiceService,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		invoiceService: invoiceService,
		emailService:   emailService,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.OrderFollowupMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal follow-up message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed, retrying will not help
		return
	}

	invoice, err := cs.invoiceService.BuildForOrder(ctx, payload.OrderId)
	if err != nil {
		cs.logger.Error("ConsumerService", "Invoice build failed", map[string]interface{}{"order_id": payload.OrderId.String(), "error": err.Error()})
		msg.Nack()
		return
	}

	cs.sendConfirmation(ctx, payload, invoice.GrandTotal)

	msg.Ack()
}

func (cs *consumerService) sendConfirmation(ctx context.Context, payload dto.OrderFollowupMessage, amount float64) {
	if cs.emailService == nil {
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: payload.OrderId})
	if err != nil || order == nil {
		cs.logger.Warn("ConsumerService", "Order lookup failed for confirmation email", map[string]interface{}{"order_id": payload.OrderId.String()})
		return
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: order.UserId})
	if err != nil || user == nil {
		cs.logger.Warn("ConsumerService", "User lookup failed for confirmation email", map[string]interface{}{"user_id": order.UserId.String()})
		return
	}

	if err := cs.emailService.SendOrderConfirmation(user.Email, user.FullName, order.Id.String(), amount); err != nil {
		cs.logger.Warn("ConsumerService", "Confirmation email failed", map[string]interface{}{"order_id": order.Id.String(), "error": err.Error()})
	}
}
