package application

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/platform-intake/internal/domain"
	"github.com/bnema/platform-intake/internal/ports"
)

type PublisherConfig struct {
	// OutputDir is the artifact root, relative to the working copy.
	OutputDir string
	// Branch is the shared integration branch commits are pushed to.
	Branch string
	// TargetBranch is the change request's base.
	TargetBranch string
	// SourceRef is the change request's head, e.g. "dev" or "fork-owner:dev".
	SourceRef string
}

type Publisher struct {
	workspace  ports.Workspace
	host       ports.ChangeRequestHost
	serializer ports.Serializer
	metrics    ports.IntakeMetrics
	clock      ports.Clock
	logger     zerolog.Logger
	cfg        PublisherConfig
	mu         *sync.Mutex
}

func NewPublisher(
	workspace ports.Workspace,
	host ports.ChangeRequestHost,
	serializer ports.Serializer,
	cfg PublisherConfig,
	metrics ports.IntakeMetrics,
	clock ports.Clock,
	logger zerolog.Logger,
) *Publisher {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if cfg.SourceRef == "" {
		cfg.SourceRef = cfg.Branch
	}
	cfg.OutputDir = strings.Trim(path.Clean("/"+strings.ReplaceAll(cfg.OutputDir, "\\", "/")), "/")

	return &Publisher{
		workspace:  workspace,
		host:       host,
		serializer: serializer,
		metrics:    metrics,
		clock:      clock,
		logger:     logger,
		cfg:        cfg,
		mu:         lockForPath(workspace.Root()),
	}
}

// Publish writes every record as an artifact, commits and pushes them to the
// integration branch and opens a change request. It never returns an error:
// every failure is folded into the result. Once artifact writes begin the
// caller's cancellation is ignored so the working copy is not left half
// written.
func (p *Publisher) Publish(ctx context.Context, records map[domain.Kind][]domain.Record, title string) domain.PublishResult {
	started := p.clock.Now()
	result := p.publish(ctx, records, title)
	p.metrics.PublishFinished(result, p.clock.Now().Sub(started))
	return result
}

func (p *Publisher) publish(ctx context.Context, records map[domain.Kind][]domain.Record, title string) domain.PublishResult {
	counts := domain.CountRecords(records)
	logger := p.logger.With().Str("title", title).Int("records", counts.Total()).Logger()

	if counts.Total() == 0 {
		return failed(counts, domain.StagePreflight, domain.ErrNothingToPublish.Error())
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	clean, dirty, err := p.workspace.IsClean(ctx, p.cfg.OutputDir)
	if err != nil {
		logger.Error().Err(err).Msg("inspect working copy")
		return failed(counts, domain.StagePreflight, "could not inspect the working copy")
	}
	if !clean {
		preflight := &domain.PreflightError{Paths: dirty}
		logger.Warn().Strs("paths", dirty).Msg("working copy is dirty, publish aborted")
		result := failed(counts, domain.StagePreflight, preflight.Error())
		result.Paths = dirty
		return result
	}

	if err := p.workspace.SyncBranch(ctx, p.cfg.Branch); err != nil {
		logger.Error().Err(err).Str("branch", p.cfg.Branch).Msg("sync integration branch")
		return failed(counts, domain.StageSync, fmt.Sprintf("could not update branch %s", p.cfg.Branch))
	}

	files, err := p.materialize(records)
	if err != nil {
		logger.Error().Err(err).Msg("serialize artifacts")
		return failed(counts, domain.StageWrite, "could not render the configuration files")
	}

	wctx := context.WithoutCancel(ctx)
	paths := make([]string, 0, len(files))
	for _, file := range files {
		if err := p.workspace.WriteFile(wctx, file.path, file.data); err != nil {
			logger.Error().Err(err).Str("path", file.path).Msg("write artifact")
			p.unstage(wctx, append(paths, file.path), logger)
			return failed(counts, domain.StageWrite, "could not write the configuration files")
		}
		paths = append(paths, file.path)
	}
	logger.Info().Strs("paths", paths).Msg("artifacts written")

	commit, err := p.workspace.Commit(wctx, paths, commitMessage(title, counts))
	switch {
	case errors.Is(err, domain.ErrNoChanges):
		logger.Info().Msg("artifacts already committed, continuing with push")
	case err != nil:
		logger.Error().Err(err).Msg("commit artifacts")
		p.unstage(wctx, paths, logger)
		return failed(counts, domain.StageCommit, "could not commit the configuration files")
	default:
		logger.Info().Str("commit", commit).Msg("artifacts committed")
	}

	if err := p.workspace.Push(wctx, p.cfg.Branch); err != nil {
		logger.Error().Err(err).Str("branch", p.cfg.Branch).Msg("push integration branch")
		return failed(counts, domain.StagePush, fmt.Sprintf("could not push branch %s", p.cfg.Branch))
	}
	logger.Info().Str("branch", p.cfg.Branch).Msg("integration branch pushed")

	url, err := p.host.Create(wctx, ports.ChangeRequest{
		Title:     title,
		Body:      changeRequestBody(counts, paths),
		SourceRef: p.cfg.SourceRef,
		TargetRef: p.cfg.TargetBranch,
	})

	var conflict *domain.ConflictError
	var remote *domain.RemoteError
	switch {
	case err == nil:
		logger.Info().Str("url", url).Msg("change request created")
		return domain.PublishResult{Outcome: domain.OutcomeCreated, URL: url, Counts: counts, Paths: paths}
	case errors.As(err, &conflict):
		logger.Info().Str("url", conflict.URL).Msg("change request already open")
		return domain.PublishResult{Outcome: domain.OutcomeConflict, URL: conflict.URL, Counts: counts, Paths: paths}
	case errors.As(err, &remote):
		logger.Error().Err(err).Str("category", string(remote.Category)).Msg("create change request")
		result := failed(counts, domain.StageChangeRequest, remote.Error())
		result.Category = remote.Category
		result.Paths = paths
		return result
	default:
		logger.Error().Err(err).Msg("create change request")
		result := failed(counts, domain.StageChangeRequest, err.Error())
		result.Category = domain.RemoteUnknown
		result.Paths = paths
		return result
	}
}

// unstage keeps a failed transaction from leaving staged artifacts behind,
// which the next preflight would report as a dirty working copy.
func (p *Publisher) unstage(ctx context.Context, paths []string, logger zerolog.Logger) {
	if err := p.workspace.Unstage(ctx, paths); err != nil {
		logger.Error().Err(err).Strs("paths", paths).Msg("unstage artifacts")
	}
}

type artifact struct {
	path string
	data []byte
}

func (p *Publisher) materialize(records map[domain.Kind][]domain.Record) ([]artifact, error) {
	var files []artifact
	for _, kind := range domain.Kinds() {
		for _, record := range records[kind] {
			data, err := p.serializer.Serialize(record)
			if err != nil {
				return nil, fmt.Errorf("serialize %s %s: %w", kind, record.Name(), err)
			}
			files = append(files, artifact{
				path: path.Join(p.cfg.OutputDir, kind.Dir(), record.Name()+"."+p.serializer.Extension()),
				data: data,
			})
		}
	}
	return files, nil
}

func commitMessage(title string, counts domain.Counts) string {
	return title + "\n\n" + strings.Join(counts.Lines(), "\n") + "\n"
}

func changeRequestBody(counts domain.Counts, paths []string) string {
	var b strings.Builder
	b.WriteString("## Platform intake\n\n")
	for _, line := range counts.Lines() {
		b.WriteString("- " + line + "\n")
	}
	b.WriteString("\n### Files\n\n")
	for _, p := range paths {
		b.WriteString("- `" + p + "`\n")
	}
	return b.String()
}

func failed(counts domain.Counts, stage domain.Stage, cause string) domain.PublishResult {
	return domain.PublishResult{Outcome: domain.OutcomeFailed, Counts: counts, Stage: stage, Cause: cause}
}
