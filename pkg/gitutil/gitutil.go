// Package gitutil wraps the handful of git plumbing commands that the
// release flow needs.  Every function takes the repository directory
// explicitly rather than relying on the process working directory.
package gitutil

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/datawire/dlib/dexec"
)

func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := dexec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.DisableLogging = true
	out, err := cmd.Output()
	return strings.TrimSpace(string(out)), err
}

// CurrentBranch returns the checked-out branch name.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	branch, err := git(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("could not determine current branch: %w", err)
	}
	if branch == "" {
		return "", fmt.Errorf("could not determine current branch: empty branch name")
	}
	return branch, nil
}

// DefaultBranch returns the remote's HEAD branch, parsed from
// `git remote show origin`.
func DefaultBranch(ctx context.Context, dir string) (string, error) {
	out, err := git(ctx, dir, "remote", "show", "origin")
	if err != nil {
		return "", fmt.Errorf("could not determine default branch: %w", err)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "HEAD branch") {
			fields := strings.Fields(line)
			if len(fields) > 0 {
				return fields[len(fields)-1], nil
			}
		}
	}
	return "", fmt.Errorf("could not parse default branch from 'git remote show origin'")
}

// IsClean reports whether the working tree has no uncommitted changes.
func IsClean(ctx context.Context, dir string) (bool, error) {
	out, err := git(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out == "", nil
}

// Fetch fetches from origin.
func Fetch(ctx context.Context, dir string) error {
	_, err := git(ctx, dir, "fetch", "origin")
	return err
}

// SyncState describes the local branch relative to its upstream.
type SyncState int

const (
	SyncUpToDate SyncState = iota
	SyncBehind
	SyncAhead
	SyncDiverged
)

func (s SyncState) String() string {
	str, ok := map[SyncState]string{
		SyncUpToDate: "up-to-date",
		SyncBehind:   "behind",
		SyncAhead:    "ahead",
		SyncDiverged: "diverged",
	}[s]
	if !ok {
		panic(fmt.Errorf("invalid SyncState: %d", int(s)))
	}
	return str
}

// SyncStatus compares HEAD against the configured upstream branch, also
// returning the upstream's name.  It errors if no upstream is set.
func SyncStatus(ctx context.Context, dir string) (SyncState, string, error) {
	upstream, err := git(ctx, dir, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
	if err != nil {
		return 0, "", fmt.Errorf("no upstream branch configured: %w", err)
	}
	local, err := git(ctx, dir, "rev-parse", "@")
	if err != nil {
		return 0, upstream, err
	}
	remote, err := git(ctx, dir, "rev-parse", upstream)
	if err != nil {
		return 0, upstream, err
	}
	base, err := git(ctx, dir, "merge-base", "@", upstream)
	if err != nil {
		return 0, upstream, err
	}
	switch {
	case local == remote:
		return SyncUpToDate, upstream, nil
	case local == base:
		return SyncBehind, upstream, nil
	case remote == base:
		return SyncAhead, upstream, nil
	default:
		return SyncDiverged, upstream, nil
	}
}

// Push pushes the given branch to origin.
func Push(ctx context.Context, dir, branch string) error {
	_, err := git(ctx, dir, "push", "origin", branch)
	return err
}

// TagExistsLocal reports whether the tag resolves locally.
func TagExistsLocal(ctx context.Context, dir, tag string) bool {
	_, err := git(ctx, dir, "rev-parse", tag)
	return err == nil
}

// TagExistsRemote reports whether origin already has the tag.
func TagExistsRemote(ctx context.Context, dir, tag string) bool {
	_, err := git(ctx, dir, "ls-remote", "--exit-code", "--tags", "origin", "refs/tags/"+tag)
	return err == nil
}

// SigningEnabled reports whether git is configured to GPG-sign: either a
// user.signingkey is set, or commit.gpgsign is true.
func SigningEnabled(ctx context.Context, dir string) bool {
	if key, err := git(ctx, dir, "config", "--get", "user.signingkey"); err == nil && key != "" {
		return true
	}
	if val, err := git(ctx, dir, "config", "--get", "commit.gpgsign"); err == nil && val == "true" {
		return true
	}
	return false
}

// CreateTag creates the tag with a "Release <tag>" message; signed when
// git is configured for signing, annotated otherwise.
func CreateTag(ctx context.Context, dir, tag string) error {
	flag := "-a"
	if SigningEnabled(ctx, dir) {
		flag = "-s"
	}
	_, err := git(ctx, dir, "tag", flag, tag, "-m", "Release "+tag)
	return err
}

// PushTag pushes refs/tags/<tag> to origin.
func PushTag(ctx context.Context, dir, tag string) error {
	_, err := git(ctx, dir, "push", "origin", "refs/tags/"+tag)
	return err
}

// LastTag returns the most recent tag reachable from HEAD, or "" when
// the repository has no tags.
func LastTag(ctx context.Context, dir string) string {
	tag, err := git(ctx, dir, "describe", "--tags", "--abbrev=0")
	if err != nil {
		return ""
	}
	return tag
}

// CommitsBetween counts the commits in from..to.
func CommitsBetween(ctx context.Context, dir, from, to string) (int, error) {
	out, err := git(ctx, dir, "rev-list", from+".."+to, "--count")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(out)
}

// UnpushedLog returns a one-line-per-commit log of upstream..HEAD.
func UnpushedLog(ctx context.Context, dir, upstream string) (string, error) {
	return git(ctx, dir, "log", "--oneline", "--graph", "--decorate", upstream+"..HEAD")
}

// RepoSlug returns the origin remote's "owner/name" slug, or "" when the
// remote URL is not a recognizable GitHub URL.
func RepoSlug(ctx context.Context, dir string) string {
	url, err := git(ctx, dir, "remote", "get-url", "origin")
	if err != nil {
		return ""
	}
	return SlugFromURL(url)
}

// SlugFromURL normalizes a GitHub remote URL (ssh or https) to an
// "owner/name" slug.  Non-GitHub URLs come back empty.
func SlugFromURL(url string) string {
	var slug string
	switch {
	case strings.HasPrefix(url, "git@github.com:"):
		slug = strings.TrimPrefix(url, "git@github.com:")
	case strings.HasPrefix(url, "https://github.com/"):
		slug = strings.TrimPrefix(url, "https://github.com/")
	default:
		return ""
	}
	return strings.TrimSuffix(slug, ".git")
}
