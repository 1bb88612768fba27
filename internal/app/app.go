// Package app 按配置装配存储、通知、事件日志与服务，供 cmd/api 与 cmd/admin 共用
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-alerts/internal/core/auth"
	"property-alerts/internal/core/cache"
	"property-alerts/internal/core/config"
	"property-alerts/internal/core/database"
	"property-alerts/internal/domain"
	"property-alerts/internal/eventlog"
	"property-alerts/internal/feature/alert"
	"property-alerts/internal/feature/listing"
	"property-alerts/internal/feature/user"
	"property-alerts/internal/notify"
	"property-alerts/internal/repo"
	"property-alerts/internal/repo/filestore"
	"property-alerts/internal/service"
)

type App struct {
	Cfg *config.Config
	Log *zap.Logger

	Listings domain.ListingStore
	Alerts   domain.AlertStore
	Users    domain.UserDirectory

	ListingSvc *service.ListingService
	SearchSvc  *service.SearchService
	AlertSvc   *service.AlertService

	JWT *auth.JWTer

	closers []func() error
}

// New 任一环节失败都会释放已打开的资源
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	a := &App{Cfg: cfg, Log: l}
	if err := a.init(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg, l := a.Cfg, a.Log

	var rc *cache.Cache
	if cfg.Redis.Enable {
		rc = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.App.Name+":")
		a.closers = append(a.closers, rc.Close)
		if e := rc.Ping(ctx); e != nil {
			l.Warn("redis ping failed, cache falls back to source", zap.Error(e))
		}
	}

	if err := a.openStores(cfg, l); err != nil {
		return err
	}
	cached := repo.NewCachedUserDirectory(a.Users, repo.CacheOpts{
		Remote:   rc,
		LocalTTL: time.Duration(cfg.Redis.LocalTTLSec) * time.Second,
		TTL:      time.Duration(cfg.Redis.UserTTLSec) * time.Second,
	})
	a.closers = append(a.closers, func() error { cached.Stop(); return nil })
	a.Users = cached

	senders, err := a.openNotifiers(cfg, l, rc)
	if err != nil {
		return err
	}
	events, err := a.openEvents(cfg, l)
	if err != nil {
		return err
	}

	dispatcher := service.NewDispatcher(service.DispatcherOpts{
		Email:   senders.email,
		SMS:     senders.sms,
		Push:    senders.push,
		Users:   a.Users,
		From:    cfg.Notify.From,
		BaseURL: cfg.Notify.BaseURL,
		Log:     l.Named("dispatch"),
	})
	ev := func(msg string) service.EventOpts {
		if events == nil {
			return service.EventOpts{}
		}
		return service.EventOpts{Logger: events(msg), AddDate: cfg.Events.AddDate}
	}
	a.ListingSvc = service.NewListingService(service.ListingServiceOpts{
		Listings:   a.Listings,
		Alerts:     a.Alerts,
		Users:      a.Users,
		Dispatcher: dispatcher,
		Events:     ev("listing published"),
		Log:        l.Named("listing"),
	})
	a.SearchSvc = service.NewSearchService(service.SearchServiceOpts{
		Listings: a.Listings,
		Events:   ev("listing search"),
		Log:      l.Named("search"),
	})
	a.AlertSvc = service.NewAlertService(service.AlertServiceOpts{
		Alerts: a.Alerts,
		Users:  a.Users,
		Events: ev("alert registered"),
		Log:    l.Named("alert"),
	})

	if cfg.JWT.Secret != "" {
		a.JWT, err = auth.New(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.AccessTokenTTLMin)*time.Minute)
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) openStores(cfg *config.Config, l *zap.Logger) error {
	switch cfg.Store.Driver {
	case "gorm":
		db, err := database.NewGorm(database.Opts{
			Driver:             cfg.DB.Driver,
			DSN:                cfg.DB.DSN,
			Username:           cfg.DB.Username,
			Password:           cfg.DB.Password,
			MaxOpenConns:       cfg.DB.MaxOpenConns,
			MaxIdleConns:       cfg.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
			LogLevel:           cfg.DB.LogLevel,
			Log:                l,
		})
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		a.closers = append(a.closers, closeDB(db))
		if cfg.DB.AutoMigrate {
			if err := db.AutoMigrate(&user.UserModel{}, &listing.ListingModel{}, &alert.AlertModel{}); err != nil {
				return fmt.Errorf("automigrate: %w", err)
			}
			l.Info("automigrate done")
		}
		a.Listings = repo.NewListingRepo(db)
		a.Alerts = repo.NewAlertRepo(db)
		a.Users = repo.NewUserRepo(db)
		l.Info("store ready", zap.String("driver", "gorm"), zap.String("db", cfg.DB.Driver))
	default:
		ls, err := filestore.NewListingStore(cfg.Store.ListingsFile)
		if err != nil {
			return err
		}
		as, err := filestore.NewAlertStore(cfg.Store.AlertsFile)
		if err != nil {
			return err
		}
		us, err := filestore.NewUserDirectory(cfg.Store.UsersFile)
		if err != nil {
			return err
		}
		a.Listings, a.Alerts, a.Users = ls, as, us
		l.Info("store ready", zap.String("driver", "file"),
			zap.String("listings", cfg.Store.ListingsFile),
			zap.String("alerts", cfg.Store.AlertsFile),
			zap.String("users", cfg.Store.UsersFile),
		)
	}
	return nil
}

type senders struct {
	email domain.EmailSender
	sms   domain.SMSSender
	push  domain.PushSender
}

func (a *App) openNotifiers(cfg *config.Config, l *zap.Logger, rc *cache.Cache) (senders, error) {
	logSender := notify.NewLogSender(l)
	s := senders{email: logSender, sms: logSender, push: logSender}

	switch cfg.Notify.Driver {
	case "amqp":
		as, err := notify.DialAMQP(cfg.Notify.AMQPURL, cfg.Notify.Exchange, l)
		if err != nil {
			return senders{}, err
		}
		a.closers = append(a.closers, as.Close)
		s = senders{email: as, sms: as, push: as}
	case "redis":
		if rc == nil {
			return senders{}, errors.New("notify.driver redis requires redis.enable")
		}
		s.push = notify.NewRedisPushSender(rc.RDB, cfg.Notify.RedisChannel)
	}
	l.Info("notifier ready", zap.String("driver", cfg.Notify.Driver))
	return s, nil
}

// openEvents 返回按消息名构造 EventLogger 的工厂；driver=none 时返回 nil
func (a *App) openEvents(cfg *config.Config, l *zap.Logger) (func(msg string) domain.EventLogger, error) {
	switch cfg.Events.Driver {
	case "zap":
		return func(msg string) domain.EventLogger { return eventlog.NewZap(l, msg) }, nil
	case "fluent":
		client, err := eventlog.DialFluent(cfg.Events.FluentHost, cfg.Events.FluentPort, cfg.Events.TagPrefix)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return func(msg string) domain.EventLogger {
			return eventlog.NewFluent(client, eventTag(msg), l)
		}, nil
	}
	return nil, nil
}

// eventTag "listing published" → "listing.published"
func eventTag(msg string) string { return strings.ReplaceAll(msg, " ", ".") }

func closeDB(db *gorm.DB) func() error {
	return func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}

// Close 逆序关闭
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
