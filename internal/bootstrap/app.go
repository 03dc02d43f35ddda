package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	authapp "github.com/mohammadpnp/collaborators-api/internal/application/auth"
	collabapp "github.com/mohammadpnp/collaborators-api/internal/application/collaborator"
	collabdomain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
	userdomain "github.com/mohammadpnp/collaborators-api/internal/domain/user"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/auth"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/mail"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/queue"
	httpecho "github.com/mohammadpnp/collaborators-api/internal/interfaces/http/echo"
	"github.com/mohammadpnp/collaborators-api/internal/metrics"
)

type TaskQueue interface {
	Enqueue(ctx context.Context, task queue.Task) error
	Dequeue(ctx context.Context, timeout time.Duration) (*queue.Task, error)
	DeadLetter(ctx context.Context, task queue.Task, reason string) error
	Ack(ctx context.Context, task queue.Task) error
}

// Stores groups the adapters the application runs on.
type Stores struct {
	Collaborators collabdomain.Repository
	Imports       collabdomain.ImportStore
	Users         userdomain.Repository
	Cache         collabapp.ListCache
	Queue         TaskQueue
	Uploads       collabapp.UploadStore
	Source        collabapp.ImportSource
	Mail          mail.Sender
}

type Options struct {
	JWTSecret   string
	JWTTTL      time.Duration
	CacheTTL    time.Duration
	Workers     int
	PollTimeout time.Duration
	MaxAttempts int
	BcryptCost  int
	Server      ServerConfig
}

type App struct {
	Server     *echo.Echo
	Worker     *collabapp.Worker
	Importer   collabapp.ImportCollaboratorsFromCSV
	EnsureUser authapp.EnsureUser
	Registry   *prometheus.Registry
}

func Wire(stores Stores, opts Options, logger *logrus.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	observer := metrics.NewImport(reg)

	tokens, err := auth.NewJWTIssuer(opts.JWTSecret, opts.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("configure tokens: %w", err)
	}
	hasher := auth.NewBcryptHasher(opts.BcryptCost)

	listing := collabapp.NewListingCache(stores.Cache, opts.CacheTTL, logger, observer)

	importer := collabapp.NewImportCollaboratorsFromCSV(
		stores.Users,
		stores.Source,
		stores.Imports,
		stores.Queue,
		listing,
		observer,
		logger,
		collabapp.ImportConfig{ReportMaxAttempts: opts.MaxAttempts},
	)
	report := collabapp.NewSendImportReport(mail.NewReportMailer(stores.Mail))

	worker := collabapp.NewWorker(stores.Queue, collabapp.WorkerConfig{
		Workers:     opts.Workers,
		PollTimeout: opts.PollTimeout,
	}, logger, observer)
	worker.Handle(collabapp.TaskImportCSV, collabapp.ImportCSVHandler(importer))
	worker.Handle(collabapp.TaskImportReport, collabapp.ImportReportHandler(report))

	handlers := httpecho.Handlers{
		Auth: httpecho.NewAuthHandler(authapp.NewLogin(stores.Users, hasher, tokens)),
		Collaborators: httpecho.NewCollaboratorHandler(httpecho.CollaboratorUseCases{
			Create: collabapp.NewCreateCollaborator(stores.Collaborators, listing),
			Get:    collabapp.NewGetCollaborator(stores.Collaborators),
			Update: collabapp.NewUpdateCollaborator(stores.Collaborators, listing),
			Delete: collabapp.NewDeleteCollaborator(stores.Collaborators, listing),
			List:   collabapp.NewListCollaborators(stores.Collaborators, listing),
		}),
		Import: httpecho.NewImportHandler(collabapp.NewStartCollaboratorImport(stores.Uploads, stores.Queue, opts.MaxAttempts)),
	}

	return &App{
		Server:     NewHTTPServer(opts.Server, handlers, tokens, reg, logger),
		Worker:     worker,
		Importer:   importer,
		EnsureUser: authapp.NewEnsureUser(stores.Users, hasher),
		Registry:   reg,
	}, nil
}
