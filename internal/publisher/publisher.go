// Package publisher executes the transactional branch → commit → pull request
// protocol against the hosting repository, with best-effort rollback when the
// change request cannot be opened.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/provision-dev/provision/pkg/models"
)

// defaultPacing spaces file operations to stay inside the hosting API's
// secondary rate limits.
const defaultPacing = 500 * time.Millisecond

// PublicationError reports a failed publication after rollback was attempted.
type PublicationError struct {
	Reason string
	Err    error
}

func (e *PublicationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("publication failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("publication failed: %s", e.Reason)
}

func (e *PublicationError) Unwrap() error { return e.Err }

// Publisher publishes file sets as reviewable pull requests.
type Publisher struct {
	client     *github.Client
	owner      string
	repo       string
	baseBranch string
	pacing     time.Duration
	logger     *zap.Logger
	now        func() time.Time
	newSuffix  func() string
}

// Option customizes a Publisher.
type Option func(*Publisher)

// WithBaseBranch pins the base branch instead of resolving the repository
// default.
func WithBaseBranch(branch string) Option {
	return func(p *Publisher) { p.baseBranch = branch }
}

// WithPacing overrides the delay between file operations; tests set it to 0.
func WithPacing(d time.Duration) Option {
	return func(p *Publisher) { p.pacing = d }
}

// WithClock pins the clock used for branch naming.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) { p.now = now }
}

// WithBranchSuffix pins the random branch-name suffix.
func WithBranchSuffix(fn func() string) Option {
	return func(p *Publisher) { p.newSuffix = fn }
}

// New creates a Publisher for one repository.
func New(client *github.Client, owner, repo string, logger *zap.Logger, opts ...Option) *Publisher {
	p := &Publisher{
		client: client,
		owner:  owner,
		repo:   repo,
		pacing: defaultPacing,
		logger: logger,
		now:    time.Now,
		newSuffix: func() string {
			return strings.SplitN(uuid.NewString(), "-", 2)[0]
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewFromToken creates a Publisher with a token-authenticated client.
func NewFromToken(token, owner, repo string, logger *zap.Logger, opts ...Option) *Publisher {
	return New(github.NewClient(nil).WithAuthToken(token), owner, repo, logger, opts...)
}

// Publish creates a branch, commits the files onto it one by one, and opens a
// pull request against the base branch. Individual file failures are skipped;
// a publish with zero committed files or a failed pull-request creation is
// rolled back by deleting the branch (best effort) before the error surfaces.
func (p *Publisher) Publish(ctx context.Context, files []models.PublishableFile, title, description, branchPrefix string) (*models.ChangeRequestInfo, error) {
	if len(files) == 0 {
		return nil, &PublicationError{Reason: "no files to publish"}
	}

	base := p.baseBranch
	if base == "" {
		repo, _, err := p.client.Repositories.Get(ctx, p.owner, p.repo)
		if err != nil {
			return nil, &PublicationError{Reason: "failed to resolve default branch", Err: err}
		}
		base = repo.GetDefaultBranch()
	}

	// Timestamp plus a random suffix: collisions between concurrent runs in
	// the same second still land on distinct branches.
	branch := fmt.Sprintf("%s-%s-%s", branchPrefix, p.now().UTC().Format("20060102-150405"), p.newSuffix())

	if err := p.createBranch(ctx, branch, base); err != nil {
		return nil, &PublicationError{Reason: "failed to create branch " + branch, Err: err}
	}
	p.logger.Info("created branch", zap.String("branch", branch), zap.String("base", base))

	commits := p.commitFiles(ctx, files, title, branch)
	if len(commits) == 0 {
		p.rollback(ctx, branch)
		return nil, &PublicationError{Reason: "no files were successfully committed"}
	}

	pr, _, err := p.client.PullRequests.Create(ctx, p.owner, p.repo, &github.NewPullRequest{
		Title:               github.String(title),
		Body:                github.String(description),
		Head:                github.String(branch),
		Base:                github.String(base),
		MaintainerCanModify: github.Bool(true),
	})
	if err != nil {
		p.rollback(ctx, branch)
		return nil, &PublicationError{Reason: "failed to create pull request", Err: err}
	}

	p.logger.Info("opened pull request",
		zap.Int("number", pr.GetNumber()),
		zap.String("url", pr.GetHTMLURL()))

	return &models.ChangeRequestInfo{
		Branch:      branch,
		Commits:     commits,
		Number:      pr.GetNumber(),
		URL:         pr.GetHTMLURL(),
		SubmittedAt: pr.GetCreatedAt().Time,
	}, nil
}

// createBranch creates the ref, tolerating a pre-existing branch of the same
// name: a conflict response means someone got there first and the publish
// continues onto that branch.
func (p *Publisher) createBranch(ctx context.Context, branch, base string) error {
	baseRef, _, err := p.client.Git.GetRef(ctx, p.owner, p.repo, "heads/"+base)
	if err != nil {
		return fmt.Errorf("failed to get base branch %s: %w", base, err)
	}

	_, _, err = p.client.Git.CreateRef(ctx, p.owner, p.repo, &github.Reference{
		Ref:    github.String("refs/heads/" + branch),
		Object: &github.GitObject{SHA: baseRef.Object.SHA},
	})
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil &&
			(errResp.Response.StatusCode == http.StatusConflict ||
				errResp.Response.StatusCode == http.StatusUnprocessableEntity) {
			p.logger.Warn("branch already exists, continuing", zap.String("branch", branch))
			return nil
		}
		return err
	}
	return nil
}

// commitFiles commits each file individually. A single file's failure is
// logged and skipped so the rest of the set still lands.
func (p *Publisher) commitFiles(ctx context.Context, files []models.PublishableFile, title, branch string) []models.CommitRecord {
	var commits []models.CommitRecord

	for i, file := range files {
		if i > 0 && p.pacing > 0 {
			time.Sleep(p.pacing)
		}

		record, err := p.commitFile(ctx, file, title, branch)
		if err != nil {
			p.logger.Warn("failed to commit file, skipping",
				zap.String("path", file.Path),
				zap.Error(err))
			continue
		}
		commits = append(commits, *record)
	}
	return commits
}

func (p *Publisher) commitFile(ctx context.Context, file models.PublishableFile, title, branch string) (*models.CommitRecord, error) {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(fmt.Sprintf("Automated: %s\n\nAdd: %s", title, file.Path)),
		Content: []byte(file.Content),
		Branch:  github.String(branch),
	}

	// An existing file must be updated with its current revision marker.
	existing, _, _, err := p.client.Repositories.GetContents(ctx, p.owner, p.repo, file.Path,
		&github.RepositoryContentGetOptions{Ref: branch})
	if err == nil && existing != nil {
		opts.SHA = existing.SHA
	}

	resp, _, err := p.client.Repositories.CreateFile(ctx, p.owner, p.repo, file.Path, opts)
	if err != nil {
		return nil, err
	}
	return &models.CommitRecord{Path: file.Path, SHA: resp.GetSHA()}, nil
}

// rollback deletes the branch created for this publish attempt. Failures are
// logged and swallowed so they never mask the primary error.
func (p *Publisher) rollback(ctx context.Context, branch string) {
	if _, err := p.client.Git.DeleteRef(ctx, p.owner, p.repo, "heads/"+branch); err != nil {
		p.logger.Warn("failed to delete branch during rollback",
			zap.String("branch", branch),
			zap.Error(err))
		return
	}
	p.logger.Info("rolled back branch", zap.String("branch", branch))
}
