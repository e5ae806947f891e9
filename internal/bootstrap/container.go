package bootstrap

import (
	"context"
	"log"
	"time"

	"csupport-chat-be/internal/config"
	"csupport-chat-be/internal/constant"
	"csupport-chat-be/internal/controller"
	"csupport-chat-be/internal/pkg/logger"
	"csupport-chat-be/internal/pkg/mailer"
	"csupport-chat-be/internal/repository/ephemeral"
	"csupport-chat-be/internal/repository/memory"
	"csupport-chat-be/internal/repository/unitofwork"
	"csupport-chat-be/internal/service"
	"csupport-chat-be/internal/websocket"
	"csupport-chat-be/pkg/llm"
	"csupport-chat-be/pkg/llm/factory"
	"csupport-chat-be/pkg/support/answer"
	"csupport-chat-be/pkg/support/autoresolve"
	"csupport-chat-be/pkg/support/related"
	"csupport-chat-be/pkg/support/ticket"
	"csupport-chat-be/pkg/support/transcript"

	pktNats "csupport-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
	ChatService  service.IChatService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" && cfg.Chat.SupportInbox != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.Chat.SupportInbox,
		)
	} else {
		log.Printf("[WARN] SMTP or support inbox not configured, escalation emails disabled")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if err := pingRedisWithRetry(rdb); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	stateStore := ephemeral.NewRedisStateStore(rdb, time.Duration(cfg.Chat.FailureWindow)*time.Second)
	cacheTTL := time.Duration(cfg.Chat.AnswerCacheTTL) * time.Second

	// 3. Generative providers
	providers := factory.NewProviderSet(
		cfg.Keys.GoogleGemini,
		cfg.Keys.OpenAI,
		cfg.Ai.OpenAIModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)

	// In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Domain components
	recorder := transcript.NewRecorder(uowFactory)

	var generativePrimary llm.LLMProvider
	if cfg.Keys.GoogleGemini != "" {
		generativePrimary = providers.Primary
	} else {
		log.Printf("[WARN] No Gemini key configured, generative answer tier disabled")
	}

	resolvers := []answer.Resolver{
		answer.NewCacheResolver(stateStore),
		answer.NewKnowledgeBaseResolver(uowFactory, stateStore, cacheTTL),
	}
	if generativePrimary != nil {
		resolvers = append(resolvers, answer.NewGenerativeResolver(generativePrimary, uowFactory, stateStore, cacheTTL))
	}
	if providers.Secondary != nil {
		resolvers = append(resolvers, answer.NewContextualResolver(
			"openai_contextual",
			providers.Secondary,
			recorder,
			constant.ContextualAgentInstruction,
			llm.WithTemperature(0.3),
		))
	} else {
		// The local model only backstops deployments without an OpenAI key.
		resolvers = append(resolvers, answer.NewContextualResolver(
			"ollama_local",
			providers.Local,
			recorder,
			constant.LocalAgentInstruction,
		))
	}
	answerChain := answer.NewChain(sysLogger, resolvers...)

	relatedGen := related.NewGenerator(generativePrimary, uowFactory, sysLogger)

	ticketManager := ticket.NewManager(uowFactory, recorder, natsPublisherOrNil(natsPub), emailService, sysLogger)

	scheduler := autoresolve.NewScheduler(
		stateStore,
		ticketManager,
		time.Duration(cfg.Chat.AutoResolveDelay)*time.Second,
		sysLogger,
		recorderNotifier{recorder},
		wsHub,
	)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.ClickTopic)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.ClickTopic, stateStore)

	chatService := service.NewChatService(
		sessionRepo,
		recorder,
		ticketManager,
		answerChain,
		relatedGen,
		scheduler,
		stateStore,
		publisherService,
		cfg.Chat.EscalationThreshold,
		sysLogger,
	)

	return &Container{
		ChatController:  controller.NewChatController(chatService),
		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
		ChatService:     chatService,
		Logger:          sysLogger,
	}
}

// recorderNotifier adapts the transcript recorder to the scheduler's
// Notifier so the inactivity notice lands in the stored history too.
type recorderNotifier struct {
	recorder *transcript.Recorder
}

func (n recorderNotifier) Notify(ctx context.Context, sessionID, content string) error {
	return n.recorder.Record(ctx, sessionID, constant.ChatMessageRoleAssistant, content, nil)
}

// natsPublisherOrNil keeps the lifecycle manager's optional publisher truly
// nil when the connection failed, a typed nil pointer would dodge the check.
func natsPublisherOrNil(p *pktNats.Publisher) ticket.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}

func pingRedisWithRetry(rdb *redis.Client) error {
	var err error
	for attempt := 1; attempt <= 10; attempt++ {
		if _, err = rdb.Ping(context.Background()).Result(); err == nil {
			return nil
		}
		log.Printf("[WARN] Redis ping attempt %d failed: %v", attempt, err)
		time.Sleep(2 * time.Second)
	}
	return err
}
