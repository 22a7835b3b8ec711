package router

import (
	"github.com/oksasatya/alumni-network/internal/application"
	"github.com/oksasatya/alumni-network/internal/container"
	"github.com/oksasatya/alumni-network/internal/infrastructure/oauth"
	pginfra "github.com/oksasatya/alumni-network/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/alumni-network/internal/interface/http"
	"github.com/oksasatya/alumni-network/internal/interface/middleware"
	"github.com/oksasatya/alumni-network/internal/router/modules"
	"github.com/oksasatya/alumni-network/pkg/helpers"
	"github.com/oksasatya/alumni-network/pkg/mailer"
)

// InitModules builds repositories, services, and handlers from the container
// singletons, attaches the gate to the page group, and registers every module.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	rdb := container.GetRedis()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	profileRepo := pginfra.NewProfileRepository(container.GetPGPool())

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	// Direct Mailgun sends cover the case where the queue is down or absent.
	var mail mailer.Sender
	if mg := container.GetMailgun(); mg != nil {
		mail = mg
	}

	authSvc := application.NewAuthService(userRepo, jwt, rdb, logger, container.GetRabbitPub(), mail, cfg.MailSendEnabled)
	profileSvc := &application.ProfileService{
		Profiles:                  profileRepo,
		Redis:                     rdb,
		GCS:                       container.GetGCS(),
		GCSBucket:                 cfg.GCSBucket,
		ES:                        container.GetES(),
		ESIndex:                   cfg.ESProfilesIndex,
		Logger:                    logger,
		Pub:                       container.GetRabbitPub(),
		Mail:                      mail,
		MailEnabled:               cfg.MailSendEnabled,
		ModerationResetOnResubmit: cfg.ModerationResetOnResubmit,
	}
	dirSvc := &application.DirectoryService{
		Profiles: profileRepo,
		ES:       container.GetES(),
		ESIndex:  cfg.ESProfilesIndex,
	}

	google := oauth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL())
	states := oauth.NewStateStore(rdb)

	resolver := middleware.NewCookieSessionResolver(jwt, rdb, cookies, logger)
	r.Pages.Use(middleware.Gate(resolver, profileSvc, logger))

	authHandler := handlers.NewAuthHandler(authSvc, profileSvc, google, states, logger, cookies)
	profileHandler := handlers.NewProfileHandler(profileSvc, logger)
	directoryHandler := handlers.NewDirectoryHandler(dirSvc, profileSvc, logger)
	pageHandler := handlers.NewPageHandler(resolver, profileSvc, dirSvc, logger, cfg.AppName)

	r.Add(modules.NewPagesModule(pageHandler))
	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewProfileModule(profileHandler, jwt))
	r.Add(modules.NewDirectoryModule(directoryHandler, jwt))
}
