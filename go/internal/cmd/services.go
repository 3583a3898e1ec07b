package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/detail"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/draft"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/events"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/gateway"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/orchestrator"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/pick"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/presence"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/httpapi"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/pool"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/users"
)

// Services holds every wired application component.
type Services struct {
	Users        *users.PGRepository
	Presence     *presence.App
	Drafts       *draft.App
	Picks        *pick.Coordinator
	Details      *detail.Assembler
	Orchestrator *orchestrator.Orchestrator
	Gateway      *gateway.ConnectionManager
	Consumer     *gateway.EventConsumer
	Publisher    events.Publisher
	HTTP         *httpapi.Server
}

// buildServices wires repositories, apps, the scheduler, and the gateway.
// With no NATS URL configured, events are dropped and the WebSocket feed is
// disabled; the REST surface stays fully functional.
func buildServices(db *pgxpool.Pool, config *Config) (*Services, error) {
	clock := clockwork.NewRealClock()

	userRepo := users.NewPGRepository(db)
	poolRepo := pool.NewPGRepository(db)
	draftRepo := draft.NewPGRepository(db)
	pickRepo := pick.NewPGRepository(db)
	presenceRepo := presence.NewPGRepository(db)

	var publisher events.Publisher = events.NopPublisher{}
	var cm *gateway.ConnectionManager
	var consumer *gateway.EventConsumer
	if config.NATS.URL != "" {
		pubCfg := events.DefaultJetStreamConfig()
		pubCfg.URL = config.NATS.URL
		p, err := events.NewJetStreamPublisher(pubCfg)
		if err != nil {
			return nil, err
		}
		publisher = p

		cm = gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
		conCfg := gateway.DefaultConsumerConfig()
		conCfg.URL = config.NATS.URL
		consumer, err = gateway.NewEventConsumer(cm, conCfg)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warn().Msg("no NATS URL configured; events disabled")
	}

	presenceApp := presence.NewApp(presenceRepo, clock)
	draftApp := draft.NewApp(draftRepo, presenceApp, publisher, clock)
	pickApp := pick.NewCoordinator(draftApp, pickRepo, poolRepo, publisher, clock)
	detailApp := detail.NewAssembler(draftApp, pickApp, poolRepo, presenceApp, clock)

	orch := orchestrator.NewOrchestrator(
		draftRepo,
		pickApp,
		orchestrator.NewRandomStrategy(poolRepo),
		clock,
		int32(config.Orchestrator.BatchSize),
	)

	var roomGateway httpapi.RoomGateway
	if cm != nil {
		roomGateway = cm
	}
	httpServer := httpapi.NewServer(draftApp, presenceApp, pickApp, detailApp, roomGateway, orch)

	return &Services{
		Users:        userRepo,
		Presence:     presenceApp,
		Drafts:       draftApp,
		Picks:        pickApp,
		Details:      detailApp,
		Orchestrator: orch,
		Gateway:      cm,
		Consumer:     consumer,
		Publisher:    publisher,
		HTTP:         httpServer,
	}, nil
}
