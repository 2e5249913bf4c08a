package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/applymint/internal/scheduler"
	"github.com/Abraxas-365/applymint/pkg/cachex"
	"github.com/Abraxas-365/applymint/pkg/config"
	"github.com/Abraxas-365/applymint/pkg/dbx"
	"github.com/Abraxas-365/applymint/pkg/fsx"
	"github.com/Abraxas-365/applymint/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/applymint/pkg/iam/auth"
	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/Abraxas-365/applymint/recruitment/application/applicationapi"
	"github.com/Abraxas-365/applymint/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/applymint/recruitment/application/applicationsrv"
	"github.com/Abraxas-365/applymint/recruitment/company/companyapi"
	"github.com/Abraxas-365/applymint/recruitment/company/companyinfra"
	"github.com/Abraxas-365/applymint/recruitment/company/companysrv"
	"github.com/Abraxas-365/applymint/recruitment/domain/domainapi"
	"github.com/Abraxas-365/applymint/recruitment/domain/domaininfra"
	"github.com/Abraxas-365/applymint/recruitment/domain/domainsrv"
	"github.com/Abraxas-365/applymint/recruitment/job/jobapi"
	"github.com/Abraxas-365/applymint/recruitment/job/jobinfra"
	"github.com/Abraxas-365/applymint/recruitment/job/jobsrv"
	"github.com/Abraxas-365/applymint/recruitment/savedjob/savedjobapi"
	"github.com/Abraxas-365/applymint/recruitment/savedjob/savedjobinfra"
	"github.com/Abraxas-365/applymint/recruitment/savedjob/savedjobsrv"
	"github.com/Abraxas-365/applymint/recruitment/sharecard/sharecardapi"
	"github.com/Abraxas-365/applymint/recruitment/sharecard/sharecardinfra"
	"github.com/Abraxas-365/applymint/recruitment/sharecard/sharecardsrv"
	"github.com/Abraxas-365/applymint/recruitment/skill/skillapi"
	"github.com/Abraxas-365/applymint/recruitment/skill/skillinfra"
	"github.com/Abraxas-365/applymint/recruitment/skill/skillsrv"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gocraft/dbr/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const accessTokenTTL = 24 * time.Hour

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB      *sqlx.DB
	Session *dbr.Session
	Redis   *redis.Client
	Cache   cachex.Cache
	Storage fsx.Uploader
	Queue   *sharecardinfra.RedisQueue

	// Auth
	TokenService   *auth.JWTService
	AuthMiddleware *auth.Middleware

	// Services
	CompanyService     *companysrv.CompanyService
	DomainService      *domainsrv.DomainService
	SkillService       *skillsrv.SkillService
	JobService         *jobsrv.JobService
	ApplicationService *applicationsrv.ApplicationService
	SavedJobService    *savedjobsrv.SavedJobService
	ShareCardService   *sharecardsrv.Service

	// Background
	ShareCardWorker *sharecardsrv.Worker
	Scheduler       *scheduler.Scheduler

	// API Handlers
	CompanyHandlers     *companyapi.Handlers
	DomainHandlers      *domainapi.Handlers
	SkillHandlers       *skillapi.Handlers
	JobHandlers         *jobapi.Handlers
	ApplicationHandlers *applicationapi.Handlers
	SavedJobHandlers    *savedjobapi.Handlers
	ShareCardHandlers   *sharecardapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}
	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}
	c.initServices()
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	// 1. Database
	db, err := dbx.Open(ctx, c.Config.Database)
	if err != nil {
		return err
	}
	c.DB = db
	c.Session = dbx.NewSession(db)

	// 2. Redis; the cache degrades to misses while it is down
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if err := c.Redis.Ping(ctx).Err(); err != nil {
		logx.Warn("failed to connect to Redis", zap.String("addr", c.Config.Redis.Addr), zap.Error(err))
	}
	c.Cache = cachex.NewRedisCache(c.Redis)

	// 3. Blob storage
	if c.Config.Storage.Bucket == "" {
		logx.Warn("AWS_BUCKET is not set, uploads are kept in memory")
		c.Storage = fsx.NewMemoryFileSystem(c.Config.Server.PublicBaseURL + "/files")
		return nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Config.Storage.Region))
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}
	c.Storage = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), c.Config.Storage.Bucket, c.Config.Storage.Prefix)
	return nil
}

func (c *Container) initServices() {
	// --- Repositories ---
	companyRepo := companyinfra.NewPostgresCompanyRepository(c.DB)
	domainRepo := domaininfra.NewPostgresDomainRepository(c.DB, c.Session)
	skillRepo := skillinfra.NewPostgresSkillRepository(c.DB, c.Session)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB, c.Session)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)
	savedJobRepo := savedjobinfra.NewPostgresSavedJobRepository(c.DB)
	c.Queue = sharecardinfra.NewRedisQueue(c.Redis, c.Config.ShareCard.Queue)

	// --- Auth ---
	secret := c.Config.Auth.JWTSecret
	if secret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		secret = "applymint-dev-secret-change-me"
	}
	c.TokenService = auth.NewJWTService(secret, accessTokenTTL, c.Config.Auth.Issuer)
	c.AuthMiddleware = auth.NewMiddleware(c.TokenService, auth.NewAPIKeyVerifier(c.Config.Auth.AdminAPIKeyHash))

	// --- Domain Services ---
	c.CompanyService = companysrv.NewCompanyService(companyRepo, jobRepo)
	c.DomainService = domainsrv.NewDomainService(domainRepo, c.Cache, c.Config.Cache.PopularTTL)
	c.SkillService = skillsrv.NewSkillService(skillRepo, c.Cache, c.Config.Cache.PopularTTL)
	c.JobService = jobsrv.NewJobService(
		jobRepo,
		c.CompanyService,
		c.DomainService,
		c.SkillService,
		applicationRepo,
		c.Cache,
	).WithSimilarTTL(c.Config.Cache.SimilarTTL)
	c.ApplicationService = applicationsrv.NewApplicationService(applicationRepo, c.JobService)
	c.SavedJobService = savedjobsrv.NewSavedJobService(savedJobRepo, c.JobService)
	c.ShareCardService = sharecardsrv.NewService(c.JobService, c.Storage, c.Queue, c.Config.Server.PublicBaseURL)

	// --- Background ---
	c.ShareCardWorker = sharecardsrv.NewWorker(c.ShareCardService, c.Queue, c.Config.ShareCard.Workers)
	c.Scheduler = scheduler.New(c.JobService, c.Config.Scheduler.ExpirySpec)

	// --- Handlers ---
	c.CompanyHandlers = companyapi.NewHandlers(c.CompanyService)
	c.DomainHandlers = domainapi.NewHandlers(c.DomainService)
	c.SkillHandlers = skillapi.NewHandlers(c.SkillService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.SavedJobHandlers = savedjobapi.NewHandlers(c.SavedJobService)
	c.ShareCardHandlers = sharecardapi.NewHandlers(c.ShareCardService)
}

// Close releases the connections opened by the container
func (c *Container) Close() {
	if err := c.Redis.Close(); err != nil {
		logx.Warn("failed to close Redis", zap.Error(err))
	}
	if err := c.DB.Close(); err != nil {
		logx.Warn("failed to close database", zap.Error(err))
	}
}
