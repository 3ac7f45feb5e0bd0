package main

import (
	"slotbook/internal/auth"
	bookingshandler "slotbook/internal/bookings/handler"
	bookingsrepo "slotbook/internal/bookings/repository"
	bookingssvc "slotbook/internal/bookings/service"
	bookingsval "slotbook/internal/bookings/validator"
	creatorshandler "slotbook/internal/creators/handler"
	creatorsrepo "slotbook/internal/creators/repository"
	creatorssvc "slotbook/internal/creators/service"
	creatorsval "slotbook/internal/creators/validator"
	"slotbook/internal/events"
	"slotbook/internal/mailer"
	"slotbook/internal/payments"
	slotshandler "slotbook/internal/slots/handler"
	slotsrepo "slotbook/internal/slots/repository"
	slotssvc "slotbook/internal/slots/service"
	slotsval "slotbook/internal/slots/validator"
	"slotbook/internal/storage"
	slottypeshandler "slotbook/internal/slottypes/handler"
	slottypesrepo "slotbook/internal/slottypes/repository"
	slottypessvc "slotbook/internal/slottypes/service"
	slottypesval "slotbook/internal/slottypes/validator"
	"slotbook/pkg/app"
	"slotbook/pkg/config"
	"slotbook/pkg/contracts"
	"slotbook/pkg/kafka"
)

const ServiceName = "slotbook-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting slotbook API")

	eventPublisher := initEvents(cfg)
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			cfg.Log.Warn("Failed to close event publisher", "error", err)
		}
	}()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(initHandlers(cfg, eventPublisher))
	serverApp.Run()
}

func initHandlers(cfg *config.Config, eventPublisher *events.Publisher) contracts.Handler {
	authProvider := auth.NewGotrueProvider(cfg.AuthBaseURL, cfg.AuthAPIKey)
	authRequired := auth.Required(authProvider, cfg.Log)

	checkout := payments.NewStripeCheckout(cfg.StripeSecretKey)
	uploader := storage.NewBucketUploader(cfg.AuthBaseURL, cfg.AuthAPIKey, cfg.StorageBucket)
	bookingMailer := mailer.NewMailerSendMailer(cfg.MailerSendAPIKey, cfg.MailFromName, cfg.MailFromEmail)

	creatorRepo := creatorsrepo.NewMongoCreatorRepository(cfg)
	slotTypeRepo := slottypesrepo.NewMongoSlotTypeRepository(cfg)
	slotRepo := slotsrepo.NewMongoSlotRepository(cfg)
	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	holdRepo := bookingsrepo.NewMongoSlotHoldRepository(cfg)

	creatorService := creatorssvc.NewCreatorService(
		creatorRepo,
		authProvider,
		creatorsval.NewCreatorValidator(cfg.Log),
		cfg,
	)
	slotTypeService := slottypessvc.NewSlotTypeService(
		slotTypeRepo,
		slottypesval.NewSlotTypeValidator(cfg.Log),
		cfg,
	)
	slotService := slotssvc.NewSlotService(
		slotRepo,
		slotTypeRepo,
		slotsval.NewSlotValidator(cfg.Log),
		cfg,
	)
	bookingService := bookingssvc.NewBookingService(
		bookingRepo,
		holdRepo,
		creatorRepo,
		slotRepo,
		slotTypeRepo,
		checkout,
		uploader,
		bookingMailer,
		eventPublisher,
		bookingsval.NewBookingValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return contracts.Handlers{
		creatorshandler.NewCreatorHandler(creatorService, authRequired, cfg.Log),
		slottypeshandler.NewSlotTypeHandler(slotTypeService, authRequired, cfg.Log),
		slotshandler.NewSlotHandler(slotService, authRequired, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, authRequired, cfg.Log),
	}
}

// initEvents builds the Kafka-backed publisher when brokers are
// configured. Without brokers the publisher is a no-op and the API runs
// standalone.
func initEvents(cfg *config.Config) *events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return events.NewPublisher(nil)
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.KafkaBookingTopic,
	)
	return events.NewPublisher(producer)
}
