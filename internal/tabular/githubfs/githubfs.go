// Package githubfs stores tables as CSV files in a GitHub repository via
// the Contents API. Every save is a commit; the change description becomes
// the commit message. Overwrites are keyed by the previous blob SHA, so a
// concurrent writer shows up as a conflict which Save resolves by
// re-reading the SHA and overwriting again (last-write-wins).
package githubfs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/farooq9092/Sajid-medical-store/internal/tabular"
)

// saveAttempts bounds the stale-SHA retry loop.
const saveAttempts = 3

type Store struct {
	client *github.Client
	owner  string
	repo   string
	branch string
}

// New builds a store for the given repository using a personal access token.
func New(ctx context.Context, token, owner, repo, branch string) (*Store, error) {
	if token == "" {
		return nil, errors.New("missing GitHub token")
	}
	if owner == "" || repo == "" {
		return nil, errors.New("missing GitHub owner or repository")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return NewWithClient(github.NewClient(oauth2.NewClient(ctx, ts)), owner, repo, branch), nil
}

// NewWithClient wires a preconfigured GitHub client, used by tests to
// point at a fake API server.
func NewWithClient(client *github.Client, owner, repo, branch string) *Store {
	if branch == "" {
		branch = "main"
	}
	return &Store{client: client, owner: owner, repo: repo, branch: branch}
}

// Load fetches the CSV file at key. A missing file, a fetch failure or
// undecodable content all yield an empty schema-shaped table.
func (s *Store) Load(ctx context.Context, key string, schema []string) tabular.Table {
	content, _, err := s.fetch(ctx, key)
	if err != nil {
		if !isNotFound(err) {
			slog.WarnContext(ctx, "GitHub read failed, treating as empty",
				"key", key, "repo", s.repo, "error", err)
		}
		return tabular.Empty(schema)
	}
	return tabular.DecodeCSV(content, schema)
}

// Save commits the table at key, creating the file when absent. A stale
// blob SHA is refreshed and the overwrite retried up to saveAttempts
// times before the conflict is reported as ErrStaleWrite.
func (s *Store) Save(ctx context.Context, key string, t tabular.Table, changeDescription string) error {
	content, err := t.EncodeCSV()
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	if changeDescription == "" {
		changeDescription = "Update " + key
	}

	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		_, sha, err := s.fetch(ctx, key)
		opts := &github.RepositoryContentFileOptions{
			Message: github.String(changeDescription),
			Content: content,
			Branch:  github.String(s.branch),
		}
		switch {
		case err == nil:
			opts.SHA = github.String(sha)
			_, _, err = s.client.Repositories.UpdateFile(ctx, s.owner, s.repo, key, opts)
		case isNotFound(err):
			_, _, err = s.client.Repositories.CreateFile(ctx, s.owner, s.repo, key, opts)
		default:
			return fmt.Errorf("read current SHA for %s: %w", key, err)
		}
		if err == nil {
			return nil
		}
		if !isConflict(err) {
			return fmt.Errorf("write %s: %w", key, err)
		}
		lastErr = err
		slog.WarnContext(ctx, "Stale SHA on GitHub write, retrying",
			"key", key, "attempt", attempt+1)
	}
	return fmt.Errorf("write %s: %w: %v", key, tabular.ErrStaleWrite, lastErr)
}

// fetch returns the decoded file content and its blob SHA.
func (s *Store) fetch(ctx context.Context, key string) ([]byte, string, error) {
	file, _, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, key,
		&github.RepositoryContentGetOptions{Ref: s.branch})
	if err != nil {
		return nil, "", err
	}
	if file == nil {
		return nil, "", fmt.Errorf("%s is a directory, not a file", key)
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, "", fmt.Errorf("decode content of %s: %w", key, err)
	}
	return []byte(content), file.GetSHA(), nil
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil &&
		ghErr.Response.StatusCode == http.StatusNotFound
}

// The Contents API reports a mismatched SHA as 409, and occasionally as
// 422 when the file changed between read and write.
func isConflict(err error) bool {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) || ghErr.Response == nil {
		return false
	}
	code := ghErr.Response.StatusCode
	return code == http.StatusConflict || code == http.StatusUnprocessableEntity
}

var _ tabular.Store = (*Store)(nil)
