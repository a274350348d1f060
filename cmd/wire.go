package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	tomlartifact "github.com/bnema/platform-intake/internal/adapters/artifact/toml"
	yamlartifact "github.com/bnema/platform-intake/internal/adapters/artifact/yaml"
	"github.com/bnema/platform-intake/internal/adapters/auth"
	"github.com/bnema/platform-intake/internal/adapters/changerequest/github"
	"github.com/bnema/platform-intake/internal/adapters/classifier/keyword"
	"github.com/bnema/platform-intake/internal/adapters/classifier/semantic"
	"github.com/bnema/platform-intake/internal/adapters/governance"
	httpadapter "github.com/bnema/platform-intake/internal/adapters/http"
	"github.com/bnema/platform-intake/internal/adapters/metrics"
	"github.com/bnema/platform-intake/internal/adapters/render/reply"
	"github.com/bnema/platform-intake/internal/adapters/repo/gitrepo"
	chainstore "github.com/bnema/platform-intake/internal/adapters/secrets/chain"
	"github.com/bnema/platform-intake/internal/adapters/secrets/token"
	"github.com/bnema/platform-intake/internal/adapters/session/memory"
	sessiontoml "github.com/bnema/platform-intake/internal/adapters/session/toml"
	"github.com/bnema/platform-intake/internal/application"
	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
)

var errRepoNotConfigured = errors.New("repo.path and github.repo must be configured to publish")

// app carries what every command needs. It is filled in by the root
// command's PersistentPreRunE once flags are parsed.
type app struct {
	cfg         *viper.Viper
	logger      zerolog.Logger
	secretStore ports.SecretStore
	tokens      *token.Source
	httpClient  *http.Client
	replies     func(application.Reply) (string, error)
	validations func(domain.Kind, domain.Record, error) (string, error)
}

func (a *app) load(configPath string, stderr io.Writer) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}

	if a.secretStore == nil {
		dir, err := secretsDir(cfg)
		if err != nil {
			return err
		}
		secretStore, err := chainstore.NewPassFirstWithFileFallback(dir)
		if err != nil {
			return fmt.Errorf("wire secret store chain: %w", err)
		}
		a.secretStore = secretStore
	}

	a.cfg = cfg
	a.logger = logger
	a.tokens = token.NewSource(cfg.GetString("github.token"), cfg.GetString("github.token_ref"), a.secretStore)
	if a.httpClient == nil {
		a.httpClient = http.DefaultClient
	}
	a.replies = reply.Render
	a.validations = reply.RenderValidation
	return nil
}

func newLogger(cfg *viper.Viper, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.GetString("log.level")))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log.level: %w", err)
	}

	out := w
	if cfg.GetString("log.format") == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

type sessionStore interface {
	ports.SessionStore
	Len() int
}

// runtime is the fully wired intake service plus the pieces serve exposes.
type runtime struct {
	intake   *application.IntakeService
	sessions sessionStore
	holder   *governance.Holder
	metrics  *metrics.Collector
	registry *prometheus.Registry
	health   httpadapter.Health
}

func (a *app) buildRuntime(ctx context.Context) (*runtime, error) {
	cfg := a.cfg
	logger := a.logger
	clock := ports.SystemClock{}

	registry := prometheus.NewRegistry()
	collector := metrics.NewWithRegistry(registry)

	var catalog ports.CatalogSource = ports.StaticCatalog{}
	var holder *governance.Holder
	if path := cfg.GetString("governance.path"); path != "" {
		h, err := governance.NewHolder(path, logger)
		if err != nil {
			return nil, fmt.Errorf("load governance catalog: %w", err)
		}
		holder = h
		catalog = h
	}

	classifier, err := a.buildClassifier(ctx)
	if err != nil {
		return nil, err
	}

	serializer, err := buildSerializer(cfg.GetString("artifacts.format"))
	if err != nil {
		return nil, err
	}

	repoPath := cfg.GetString("repo.path")
	repository := cfg.GetString("github.repo")
	if repoPath == "" || repository == "" {
		return nil, errRepoNotConfigured
	}

	workspace, err := gitrepo.New(gitrepo.Config{
		Path:        repoPath,
		Remote:      cfg.GetString("repo.remote"),
		AuthorName:  cfg.GetString("repo.author_name"),
		AuthorEmail: cfg.GetString("repo.author_email"),
	}, a.tokens, clock)
	if err != nil {
		return nil, fmt.Errorf("wire workspace: %w", err)
	}

	host, err := github.New(github.Config{
		Repository: repository,
		BaseURL:    cfg.GetString("github.base_url"),
		Timeout:    cfg.GetDuration("github.timeout"),
	}, a.tokens, a.httpClient)
	if err != nil {
		return nil, fmt.Errorf("wire github host: %w", err)
	}

	branch := cfg.GetString("repo.integration_branch")
	sourceRef := branch
	if owner := cfg.GetString("github.fork_owner"); owner != "" {
		sourceRef = owner + ":" + branch
	}

	publisher := application.NewPublisher(workspace, host, serializer, application.PublisherConfig{
		OutputDir:    cfg.GetString("repo.output_dir"),
		Branch:       branch,
		TargetBranch: cfg.GetString("repo.target_branch"),
		SourceRef:    sourceRef,
	}, collector, clock, logger)

	sessions, err := buildSessionStore(cfg, clock)
	if err != nil {
		return nil, err
	}
	collector.TrackSessions(sessions.Len)

	_, tokenErr := a.tokens.Token(ctx)

	return &runtime{
		intake:   application.NewIntakeService(sessions, classifier, catalog, publisher, collector, clock, logger),
		sessions: sessions,
		holder:   holder,
		metrics:  collector,
		registry: registry,
		health: httpadapter.Health{
			Repository:   true,
			GitHub:       tokenErr == nil,
			Classifier:   cfg.GetString("classifier.mode"),
			ArtifactType: serializer.Extension(),
		},
	}, nil
}

func (a *app) buildClassifier(ctx context.Context) (ports.KindClassifier, error) {
	keywords := keyword.New()
	switch mode := a.cfg.GetString("classifier.mode"); mode {
	case "", "keyword":
		return keywords, nil
	case "semantic":
		embedder, err := semantic.NewGenAIEmbedder(ctx, a.cfg.GetString("classifier.genai_api_key"), a.cfg.GetString("classifier.model"))
		if err != nil {
			return nil, fmt.Errorf("wire semantic classifier: %w", err)
		}
		return semantic.New(keywords, embedder, a.cfg.GetFloat64("classifier.threshold")), nil
	default:
		return nil, fmt.Errorf("unknown classifier.mode %q (keyword|semantic)", mode)
	}
}

func buildSessionStore(cfg *viper.Viper, clock ports.Clock) (sessionStore, error) {
	switch kind := cfg.GetString("session.store"); kind {
	case "", "memory":
		return memory.NewStore(cfg.GetDuration("session.ttl"), clock), nil
	case "file":
		store, err := sessiontoml.NewStore(cfg, clock)
		if err != nil {
			return nil, fmt.Errorf("wire session file store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session.store %q (memory|file)", kind)
	}
}

func buildSerializer(format string) (ports.Serializer, error) {
	switch format {
	case "", "yaml", "yml":
		return yamlartifact.New(), nil
	case "toml":
		return tomlartifact.New(), nil
	default:
		return nil, fmt.Errorf("unknown artifacts.format %q (yaml|toml)", format)
	}
}

func (a *app) catalog() (*domain.Catalog, error) {
	path := a.cfg.GetString("governance.path")
	if path == "" {
		return domain.DefaultCatalog(), nil
	}
	return governance.Load(path)
}

func (a *app) deviceFlow() auth.DeviceFlow {
	return auth.DeviceFlow{
		BaseURL:    a.cfg.GetString("github.oauth_url"),
		ClientID:   a.cfg.GetString("github.client_id"),
		HTTPClient: a.httpClient,
	}
}
