package bootstrap

import (
	"log"
	"time"

	"storefront-be/internal/config"
	"storefront-be/internal/controller"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/pkg/mailer"
	"storefront-be/internal/repository/implementation"
	"storefront-be/internal/repository/unitofwork"
	"storefront-be/internal/service"
	"storefront-be/pkg/gateway"
	pktNats "storefront-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const orderFollowupTopic = "ORDER_FOLLOWUP"

type Container struct {
	// Controllers
	CheckoutController     controller.ICheckoutController
	OrderController        controller.IOrderController
	CouponController       controller.ICouponController
	ShippingController     controller.IShippingController
	InvoiceController      controller.IInvoiceController
	ReturnController       controller.IReturnController
	NotificationController controller.INotificationController

	// Background services (exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus and infra
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Invalid REDIS_URL, falling back to localhost: %v", err)
		opt = &redis.Options{Addr: "localhost:6379"}
	}
	rdb := redis.NewClient(opt)

	ruleCache := gocache.New(5*time.Minute, 10*time.Minute)

	gatewayClient := gateway.NewRazorpayClient(cfg.Gateway.KeyID, cfg.Gateway.KeySecret)

	// 3. Services
	publisherService := service.NewPublisherService(orderFollowupTopic, pubSub)
	couponService := service.NewCouponService(uowFactory, sysLogger)
	shippingService := service.NewShippingService(uowFactory, cfg.Store, ruleCache, sysLogger)
	invoiceService := service.NewInvoiceService(uowFactory, cfg.Store, sysLogger)
	orderService := service.NewOrderService(uowFactory, natsPub, sysLogger)
	checkoutService := service.NewCheckoutService(
		uowFactory,
		gatewayClient,
		couponService,
		shippingService,
		publisherService,
		natsPub,
		rdb,
		cfg,
		sysLogger,
	)
	returnService := service.NewReturnService(
		uowFactory,
		gatewayClient,
		natsPub,
		emailService,
		cfg.Store,
		sysLogger,
	)

	notificationRepo := implementation.NewNotificationRepository(db)
	notificationService := service.NewNotificationService(notificationRepo, natsSub, sysLogger)

	consumerService := service.NewConsumerService(
		pubSub,
		orderFollowupTopic,
		uowFactory,
		invoiceService,
		emailService,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		CheckoutController:     controller.NewCheckoutController(checkoutService),
		OrderController:        controller.NewOrderController(orderService),
		CouponController:       controller.NewCouponController(couponService),
		ShippingController:     controller.NewShippingController(shippingService),
		InvoiceController:      controller.NewInvoiceController(invoiceService),
		ReturnController:       controller.NewReturnController(returnService),
		NotificationController: controller.NewNotificationController(notificationService),

		ConsumerService:     consumerService,
		NotificationService: notificationService,

		Logger: sysLogger,
	}
}
