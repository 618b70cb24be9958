package models

import "time"

// DocumentRole identifies the logical role of a generated document within a
// request's document set ("provider_config", "cluster", "node_group", ...).
type DocumentRole string

// GeneratedDocument is one rendered configuration object. Content holds the
// manifest as a marshalable structure; Role keys it within the set.
type GeneratedDocument struct {
	Role    DocumentRole `json:"role"`
	Content any          `json:"content"`
}

// PublishableFile pairs a repository path with fully serialized content.
// It is produced once per document and never edited afterwards.
type PublishableFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// CommitRecord describes one file successfully committed during publication.
type CommitRecord struct {
	Path string `json:"path"`
	SHA  string `json:"sha,omitempty"`
}

// ChangeRequestInfo is the reviewable change opened by the publisher.
type ChangeRequestInfo struct {
	Branch      string         `json:"branch"`
	Commits     []CommitRecord `json:"commits"`
	Number      int            `json:"number"`
	URL         string         `json:"url"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

// Stage names the pipeline step a failure is attributed to.
type Stage string

const (
	StageResolution  Stage = "resolution"
	StageValidation  Stage = "validation"
	StageSynthesis   Stage = "synthesis"
	StagePublication Stage = "publication"
)

// PipelineResult is the discriminated outcome of one pipeline run. Exactly one
// of Success or Failure is set.
type PipelineResult struct {
	Success *PipelineSuccess `json:"success,omitempty"`
	Failure *PipelineFailure `json:"failure,omitempty"`
}

// PipelineSuccess carries the full artifact set of a completed run.
type PipelineSuccess struct {
	Request     *ResourceRequest                    `json:"request"`
	Suggestions []string                            `json:"suggestions,omitempty"`
	Documents   map[DocumentRole]*GeneratedDocument `json:"documents"`
	Files       []PublishableFile                   `json:"files"`
	// ChangeRequest is nil when the run was asked not to publish.
	ChangeRequest *ChangeRequestInfo `json:"changeRequest,omitempty"`
}

// PipelineFailure tags the first failing stage with a human-readable reason.
// Validation failures additionally carry the individual issues.
type PipelineFailure struct {
	Stage  Stage    `json:"stage"`
	Reason string   `json:"reason"`
	Issues []string `json:"issues,omitempty"`
}

// Failed reports whether the run ended in failure.
func (r *PipelineResult) Failed() bool { return r.Failure != nil }
