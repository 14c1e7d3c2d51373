package cli

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/conditions"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/config"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/db"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/logger"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/notify"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/repository"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/roadmap"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/service"
)

// app is everything a command needs, built once per invocation.
type app struct {
	db     *gorm.DB
	redis  *redis.Client
	engine *config.EngineConfig
	svc    *service.ProgrammingService
}

func bootstrap(debug bool) (*app, error) {
	// 1. Логгер.
	logCfg := config.LoadLogConfig()
	if err := logger.Init(logger.Config{Debug: debug || logCfg.Debug, Dir: logCfg.Dir}); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	// 2. Конфиг БД из env.
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		return nil, fmt.Errorf("load db config: %w", err)
	}

	// 3. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}

	// 4. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	a := &app{db: gormDB, engine: config.LoadEngineConfig()}

	// 5. Репозитории; программы читаются через кэш, если Redis доступен.
	redisCfg := config.LoadRedisConfig()
	a.redis = config.NewRedisClient(redisCfg)
	if redisCfg.Enabled() && a.redis == nil {
		logger.Warn("redis unreachable, program cache disabled", "addr", redisCfg.Addr)
	}
	repos := service.Repositories{
		Programs: repository.NewCachedProgramRepository(
			repository.NewGormProgramRepository(gormDB),
			a.redis,
			redisCfg.TTL,
			redisCfg.Prefix,
		),
		Slots:        repository.NewGormSlotRepository(gormDB),
		Applications: repository.NewGormApplicationRepository(gormDB),
		Bookings:     repository.NewGormBookingRepository(gormDB),
		Events:       repository.NewGormEventRepository(gormDB),
	}

	// 6. Уведомления: лог всегда, RabbitMQ если настроен.
	notifiers := notify.Multi{notify.LogNotifier{}}
	if amqpCfg := config.LoadAMQPConfig(); amqpCfg.Enabled() {
		notifiers = append(notifiers, notify.NewAMQPPublisher(amqpCfg.URL, amqpCfg.Queue))
	}

	// 7. Движок.
	a.svc = service.NewProgrammingService(
		repos,
		a.engine.Planner(),
		conditions.NewResolver(a.engine.DefaultCurrency),
		roadmap.NewAssembler(a.engine.Locale),
		notifiers,
	)
	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
