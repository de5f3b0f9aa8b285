package main

import (
	"context"
	"log/slog"
	"os"

	"agenda/config"
	"agenda/internal/delivery"
	"agenda/internal/delivery/http"
	"agenda/internal/delivery/http/middleware"
	"agenda/internal/delivery/http/router/handler"
	domainerrors "agenda/internal/domain/errors"
	"agenda/internal/domain/service"
	"agenda/internal/errors"
	"agenda/internal/infra/auth"
	logs "agenda/internal/infra/log"
	"agenda/internal/infra/persistence/postgres"
	"agenda/internal/infra/qrcode"
	"agenda/internal/usecase"
	"agenda/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			seedStaffAccount,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewContactRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewPhoneRepository,
			postgres.NewEmailRepository,
			postgres.NewAddressRepository,
			postgres.NewImportantDateRepository,
			postgres.NewRelatedPersonRepository,
			postgres.NewTagRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewSessionService,
			impl.NewContactService,
			impl.NewAuxiliaryService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewSessionHandler,
			handler.NewContactHandler,
			handler.NewAuxiliaryHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// seedStaffAccount creates the configured bootstrap staff account, if
// any. An already-existing account is not an error, so restarts are
// harmless.
func seedStaffAccount(ctx context.Context, cfg *config.Config, userUsecase usecase.UserUsecase) error {
	if cfg.Auth == nil || cfg.Auth.Bootstrap == nil {
		return nil
	}

	seed := cfg.Auth.Bootstrap
	_, err := userUsecase.CreateUser(ctx, &usecase.CreateUserInput{
		RegisterUserInput: usecase.RegisterUserInput{
			Username:        seed.Username,
			Email:           seed.Email,
			Password:        seed.Password,
			PasswordConfirm: seed.Password,
		},
		IsStaff: true,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			return nil
		}

		return errors.Wrap(err, "failed to seed staff account")
	}

	slog.Info("Bootstrap staff account created", slog.String("username", seed.Username))

	return nil
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
