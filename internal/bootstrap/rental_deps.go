package bootstrap

import (
	"context"
	"os"
	"strings"
	"time"

	"rental_server/adapter/out/mail"
	"rental_server/adapter/out/persistence"
	"rental_server/adapter/out/storage"
	"rental_server/config"
	"rental_server/core/port/out"
	"rental_server/core/service/accommodation"
	"rental_server/core/service/auth"
	"rental_server/core/service/car"
	"rental_server/core/service/comment"
	"rental_server/core/service/common"
	"rental_server/core/service/payment"
	"rental_server/core/service/profile"
	"rental_server/core/service/reservation"
	"rental_server/core/service/term"
	"rental_server/core/service/upload"
	"rental_server/core/service/user"
	"rental_server/infra/database"
	"rental_server/pkg/cache"
	"rental_server/pkg/crypto"
	"rental_server/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Config *config.Config
	DB     *pgxpool.Pool
	SQLDB  *sqlx.DB
	Redis  *redis.Client

	// Repositories
	UserRepo          out.UserRepository
	CarRepo           out.CarRepository
	AccommodationRepo out.AccommodationRepository
	CommentRepo       out.CommentRepository
	ReservationRepo   out.ReservationRepository
	ProfileRepo       out.ProfileRepository
	PaymentRepo       out.PaymentRepository
	TermRepo          out.TermRepository
	AuthStore         out.AuthStore

	// Outbound adapters
	Storage out.FileStorage
	Mailer  out.Mailer
	Cache   out.Cache

	// Services
	AuthService          *auth.Service
	UserService          *user.Service
	CarService           *car.Service
	AccommodationService *accommodation.Service
	CommentService       *comment.Service
	ReservationService   *reservation.Service
	ProfileService       *profile.Service
	PaymentService       *payment.Service
	TermService          *term.Service
	UploadService        *upload.Service
}

func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg}
	var cleanups []func()

	// Database (pgxpool, used by health probes)
	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	deps.DB = db
	cleanups = append(cleanups, func() { db.Close() })

	// Database (sqlx for the persistence adapters)
	sqlxURL := cfg.DatabaseURL
	if strings.Contains(sqlxURL, "?") {
		sqlxURL += "&default_query_exec_mode=simple_protocol"
	} else {
		sqlxURL += "?default_query_exec_mode=simple_protocol"
	}
	sqlDB, err := sqlx.Connect("pgx", sqlxURL)
	if err != nil {
		return nil, nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	deps.SQLDB = sqlDB
	cleanups = append(cleanups, func() { sqlDB.Close() })

	// Redis
	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	deps.Redis = redisClient
	cleanups = append(cleanups, func() { redisClient.Close() })
	deps.Cache = cache.NewRedisCache(redisClient)

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	// Object storage (listing and profile images)
	minioStorage, err := storage.NewMinioStorage(storage.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
		PublicURL: cfg.MinioPublicURL,
	}, zlog)
	if err != nil {
		return nil, nil, err
	}
	if err := minioStorage.EnsureBucket(context.Background()); err != nil {
		logger.Warn("Bucket check failed: %v", err)
	}
	deps.Storage = minioStorage

	// Mailer (OTP, password reset)
	deps.Mailer = mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, zlog)

	// Card data encryption at rest
	encryptor, err := crypto.NewEncryptor([]byte(cfg.EncryptionKey))
	if err != nil {
		return nil, nil, err
	}

	// Repositories
	deps.UserRepo = persistence.NewUserAdapter(sqlDB)
	deps.CarRepo = persistence.NewCarAdapter(sqlDB)
	deps.AccommodationRepo = persistence.NewAccommodationAdapter(sqlDB)
	deps.CommentRepo = persistence.NewCommentAdapter(sqlDB)
	deps.ReservationRepo = persistence.NewReservationAdapter(sqlDB)
	deps.ProfileRepo = persistence.NewProfileAdapter(sqlDB)
	deps.PaymentRepo = persistence.NewPaymentAdapter(sqlDB)
	deps.TermRepo = persistence.NewTermAdapter(sqlDB)
	deps.AuthStore = persistence.NewRedisAuthStore(redisClient)

	// Listing cache shared by the catalog services
	listCache := common.NewListCache(deps.Cache, cfg.ListingCacheTTL)

	// Services
	deps.UploadService = upload.NewService(deps.Storage, upload.Limits{
		Car:           cfg.CarImgLimit,
		Accommodation: cfg.AccommodationImgLimit,
		Profile:       cfg.ProfileImgLimit,
	})

	deps.AuthService = auth.NewService(deps.UserRepo, deps.AuthStore, deps.Mailer, auth.Config{
		AccessTokenSecret:       cfg.AccessTokenSecret,
		RefreshTokenSecret:      cfg.RefreshTokenSecret,
		AccessTokenTime:         cfg.AccessTokenTime,
		RefreshTokenTime:        cfg.RefreshTokenTime,
		FindPasswordTokenSecret: cfg.FindPasswordTokenSecret,
		FindPasswordTokenTime:   cfg.FindPasswordTokenTime,
		EmailBaseURL:            cfg.EmailBaseURL,
		OTPCodeTTL:              cfg.OTPCodeTTL,
	})
	deps.AuthService.RegisterGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	deps.AuthService.RegisterKakao(cfg.KakaoClientID, cfg.KakaoClientSecret, cfg.KakaoRedirectURL)
	deps.AuthService.RegisterNaver(cfg.NaverClientID, cfg.NaverClientSecret, cfg.NaverRedirectURL)

	deps.UserService = user.NewService(deps.UserRepo, deps.UploadService)
	deps.CarService = car.NewService(deps.CarRepo, deps.UploadService, listCache)
	deps.AccommodationService = accommodation.NewService(deps.AccommodationRepo, deps.UploadService, listCache)
	deps.CommentService = comment.NewService(deps.CommentRepo, deps.CarRepo, deps.AccommodationRepo)
	deps.ReservationService = reservation.NewService(deps.ReservationRepo, deps.CarRepo)
	deps.ProfileService = profile.NewService(deps.ProfileRepo, deps.UserRepo)
	deps.PaymentService = payment.NewService(deps.PaymentRepo, deps.ProfileRepo, encryptor)
	deps.TermService = term.NewService(deps.TermRepo, deps.UserRepo)

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	return deps, cleanup, nil
}

func (d *Dependencies) HealthCheck(ctx context.Context) error {
	if err := d.DB.Ping(ctx); err != nil {
		return err
	}
	if err := d.Redis.Ping(ctx).Err(); err != nil {
		return err
	}
	return nil
}
