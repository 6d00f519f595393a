// Package transcode derives lower-resolution variants of a stored video.
package transcode

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/SharmaTechie/video-stream-platform/internal/chunkstore"
	"github.com/SharmaTechie/video-stream-platform/internal/logger"
	"github.com/SharmaTechie/video-stream-platform/internal/metrics"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/port"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

// Policy decides what happens to the variants of a run when one target fails.
type Policy string

const (
	// KeepPartial keeps the variants that succeeded and reports the failures in a *PartialError.
	KeepPartial Policy = "keep-partial"
	// AllOrNothing deletes the variants of the run and fails it on the first failure.
	AllOrNothing Policy = "all-or-nothing"
)

const variantContentType = "video/mp4"

// Store is the part of the chunk store the pipeline needs.
type Store interface {
	OpenRead(ctx context.Context, id uuid.UUID, rng *chunkstore.ByteRange) (*chunkstore.Sequence, error)
	Ingest(ctx context.Context, r io.Reader, name, contentType string, metadata model.Metadata) (*model.StoredObject, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Options struct {
	WorkRoot     string
	Targets      []model.TranscodeTarget
	AudioBitrate string
	Policy       Policy
	Metrics      *metrics.Metrics
}

type Pipeline struct {
	store        Store
	encoder      port.Encoder
	workRoot     string
	targets      []model.TranscodeTarget
	audioBitrate string
	policy       Policy
	metrics      *metrics.Metrics
}

func New(store Store, encoder port.Encoder, opts Options) *Pipeline {
	targets := opts.Targets
	if len(targets) == 0 {
		targets = model.DefaultTranscodeTargets()
	}
	policy := opts.Policy
	if policy == "" {
		policy = KeepPartial
	}
	return &Pipeline{
		store:        store,
		encoder:      encoder,
		workRoot:     opts.WorkRoot,
		targets:      targets,
		audioBitrate: opts.AudioBitrate,
		policy:       policy,
		metrics:      opts.Metrics,
	}
}

// Job is one run of the pipeline over a source object.
type Job struct {
	SourceObjectID uuid.UUID
	WorkDir        string
	Targets        []model.TranscodeTarget
}

func (j Job) inputPath() string { return filepath.Join(j.WorkDir, "input") }

func (j Job) outputPath(t model.TranscodeTarget) string {
	return filepath.Join(j.WorkDir, t.Label+".mp4")
}

// Run encodes the source into every configured target, in order, and stores each
// variant as a new object. The working directory is removed whatever the outcome.
//
// Under KeepPartial a failed target is skipped: the produced variants are returned
// together with a *PartialError. Under AllOrNothing the first failure deletes the
// variants already produced and the run returns an empty set. A failure to fetch the
// source, or a cancelled context, is fatal under both policies.
func (p *Pipeline) Run(ctx context.Context, sourceID uuid.UUID) (model.ResolutionSet, error) {
	workDir, err := os.MkdirTemp(p.workRoot, "transcode-*")
	if err != nil {
		return model.ResolutionSet{}, fmt.Errorf("create working directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Warnf(ctx, "failed to remove working directory %q: %v", workDir, err)
		}
	}()

	job := Job{SourceObjectID: sourceID, WorkDir: workDir, Targets: p.targets}

	if err := p.download(ctx, job); err != nil {
		logger.Errorf(ctx, "❌  transcoding source #%s failed while downloading: %v", sourceID, err)
		return model.ResolutionSet{}, fmt.Errorf("download source #%s: %w", sourceID, err)
	}

	set := model.ResolutionSet{}
	var failures []TargetFailure
	for _, target := range job.Targets {
		id, err := p.runTarget(ctx, job, target)
		if err == nil {
			set[target.Label] = id
			continue
		}

		logger.Errorf(ctx, "❌  transcoding source #%s to %s failed: %v", sourceID, target.Label, err)
		if p.policy == AllOrNothing || ctx.Err() != nil {
			p.discard(context.WithoutCancel(ctx), set)
			return model.ResolutionSet{}, fmt.Errorf("transcode source #%s to %s: %w", sourceID, target.Label, err)
		}
		failures = append(failures, TargetFailure{Label: target.Label, Err: err})
	}

	if len(failures) > 0 {
		return set, &PartialError{Failures: failures}
	}
	logger.Infof(ctx, "✅  Successfully transcoded source #%s into %d variant(s)", sourceID, len(set))
	return set, nil
}

func (p *Pipeline) download(ctx context.Context, job Job) error {
	seq, err := p.store.OpenRead(ctx, job.SourceObjectID, nil)
	if err != nil {
		return err
	}

	f, err := os.Create(job.inputPath())
	if err != nil {
		return fmt.Errorf("create input file: %w", err)
	}
	if _, err := seq.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (p *Pipeline) runTarget(ctx context.Context, job Job, target model.TranscodeTarget) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	out := job.outputPath(target)
	start := time.Now()
	res, err := p.encoder.Encode(ctx, port.EncodeRequest{
		InputPath:    job.inputPath(),
		OutputPath:   out,
		Height:       target.Height,
		VideoBitrate: target.VideoBitrate,
		AudioBitrate: p.audioBitrate,
	})
	took := time.Since(start)
	if err != nil {
		p.metrics.ObserveTranscodeTarget(target.Label, "failed", took)
		return uuid.Nil, fmt.Errorf("run encoder: %w", err)
	}
	if res.ExitCode != 0 {
		p.metrics.ObserveTranscodeTarget(target.Label, "failed", took)
		return uuid.Nil, &EncodingError{Label: target.Label, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	id, err := p.ingestVariant(ctx, job, target, out)
	if err != nil {
		p.metrics.ObserveTranscodeTarget(target.Label, "failed", took)
		return uuid.Nil, err
	}
	p.metrics.ObserveTranscodeTarget(target.Label, "ok", took)
	return id, nil
}

func (p *Pipeline) ingestVariant(ctx context.Context, job Job, target model.TranscodeTarget, path string) (uuid.UUID, error) {
	f, err := os.Open(path)
	if err != nil {
		return uuid.Nil, fmt.Errorf("open encoded output: %w", err)
	}
	defer func() {
		_ = f.Close()
		_ = os.Remove(path)
	}()

	obj, err := p.store.Ingest(ctx, f, target.Label+".mp4", variantContentType, model.Metadata{
		model.MetaResolution:     target.Label,
		model.MetaOriginalFileID: job.SourceObjectID.String(),
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("store %s variant: %w", target.Label, err)
	}
	return obj.ID, nil
}

// discard deletes the variants produced by a run that is being rolled back.
func (p *Pipeline) discard(ctx context.Context, set model.ResolutionSet) {
	for label, id := range set {
		if err := p.store.Delete(ctx, id); err != nil {
			logger.Errorf(ctx, "failed to delete %s variant #%s of an aborted run: %v", label, id, err)
		}
	}
}
