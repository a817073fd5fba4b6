// Package release drives the tag-and-push release flow: it reads the
// project version, runs safety checks against git, and pushes a
// "v<version>" tag to origin to trigger the release workflow.
package release

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"

	"github.com/jebel-quant/rhiza/pkg/gitutil"
	"github.com/jebel-quant/rhiza/pkg/pyproject"
)

// Options adjusts how Run behaves.
type Options struct {
	// Dir is the git repository to release from.
	Dir string
	// PyProject is the path of the pyproject.toml to read the version
	// from.
	PyProject string
	// Yes answers every prompt with "yes", for non-interactive use.
	Yes bool
}

//nolint:gochecknoglobals // Would be 'const'.
var (
	infoColor = color.New(color.FgCyan)
	errColor  = color.New(color.FgRed)
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
)

// errAborted is the sentinel for a user declining a prompt; Run swallows
// it, because "no" is a valid answer, not a failure.
var errAborted = fmt.Errorf("aborted by user")

func confirm(opts Options, message string) error {
	if opts.Yes {
		return nil
	}
	var proceed bool
	prompt := &survey.Confirm{
		Message: message + " Continue?",
		Default: false,
	}
	if err := survey.AskOne(prompt, &proceed); err != nil {
		return err
	}
	if !proceed {
		return errAborted
	}
	return nil
}

// Run executes the release flow.  A declined prompt aborts cleanly
// without an error; failed safety checks return one.
func Run(ctx context.Context, opts Options) error {
	err := run(ctx, opts)
	if err == errAborted {
		warnColor.Println("[INFO] Aborted by user")
		return nil
	}
	return err
}

func run(ctx context.Context, opts Options) error {
	manifest, err := pyproject.Load(opts.PyProject)
	if err != nil {
		return err
	}
	version, ok := manifest.Version()
	if !ok {
		return fmt.Errorf("could not determine version: %s has no 'project.version'", opts.PyProject)
	}
	tag := "v" + version

	currentBranch, err := gitutil.CurrentBranch(ctx, opts.Dir)
	if err != nil {
		return err
	}
	defaultBranch, err := gitutil.DefaultBranch(ctx, opts.Dir)
	if err != nil {
		return err
	}
	if currentBranch != defaultBranch {
		warnColor.Printf("[WARN] You are on branch %q but the default branch is %q\n", currentBranch, defaultBranch)
		warnColor.Println("[WARN] Releases are typically created from the default branch.")
		if err := confirm(opts, fmt.Sprintf("Proceed with release from %q?", currentBranch)); err != nil {
			return err
		}
	}

	infoColor.Printf("[INFO] Current version: %s\n", version)
	infoColor.Printf("[INFO] Tag to create: %s\n", tag)

	clean, err := gitutil.IsClean(ctx, opts.Dir)
	if err != nil {
		return err
	}
	if !clean {
		errColor.Println("[ERROR] You have uncommitted changes.")
		return fmt.Errorf("commit or stash your changes before releasing")
	}

	if err := checkRemote(ctx, opts, currentBranch); err != nil {
		return err
	}

	skipCreate := false
	if gitutil.TagExistsLocal(ctx, opts.Dir, tag) {
		warnColor.Printf("[WARN] Tag %q already exists locally\n", tag)
		if err := confirm(opts, "Tag exists. Skip tag creation and proceed to push?"); err != nil {
			return err
		}
		skipCreate = true
	}
	if gitutil.TagExistsRemote(ctx, opts.Dir, tag) {
		errColor.Printf("[ERROR] Tag %q already exists on remote\n", tag)
		return fmt.Errorf("the release for version %s has already been published", version)
	}

	if !skipCreate {
		infoColor.Println("\n=== Step 1: Create Tag ===")
		fmt.Printf("Creating tag %q for version %s\n", tag, version)
		if err := confirm(opts, ""); err != nil {
			return err
		}
		if gitutil.SigningEnabled(ctx, opts.Dir) {
			infoColor.Println("[INFO] GPG signing is enabled. Creating signed tag.")
		} else {
			infoColor.Println("[INFO] GPG signing is not enabled. Creating unsigned tag.")
		}
		if err := gitutil.CreateTag(ctx, opts.Dir, tag); err != nil {
			return err
		}
		okColor.Printf("[SUCCESS] Tag %q created locally\n", tag)
	}

	infoColor.Println("\n=== Step 2: Push Tag to Remote ===")
	fmt.Printf("Pushing tag %q to origin will trigger the release workflow.\n", tag)
	if lastTag := gitutil.LastTag(ctx, opts.Dir); lastTag != "" && lastTag != tag {
		if count, err := gitutil.CommitsBetween(ctx, opts.Dir, lastTag, tag); err == nil {
			fmt.Printf("Commits since %s: %d\n", lastTag, count)
		}
	}
	if err := confirm(opts, ""); err != nil {
		return err
	}
	if err := gitutil.PushTag(ctx, opts.Dir, tag); err != nil {
		return err
	}

	okColor.Printf("\n[SUCCESS] Release tag %s pushed to remote!\n", tag)
	infoColor.Println("[INFO] The release workflow will now be triggered automatically.")
	if slug := gitutil.RepoSlug(ctx, opts.Dir); slug != "" {
		infoColor.Printf("[INFO] Monitor progress at: https://github.com/%s/actions\n", slug)
	}
	return nil
}

func checkRemote(ctx context.Context, opts Options, currentBranch string) error {
	infoColor.Println("[INFO] Checking remote status...")
	if err := gitutil.Fetch(ctx, opts.Dir); err != nil {
		// The user might be offline but still want to proceed with
		// local information.
		warnColor.Println("[WARN] Failed to fetch from remote. Continuing with local information.")
	}

	state, upstream, err := gitutil.SyncStatus(ctx, opts.Dir)
	if err != nil {
		return fmt.Errorf("no upstream branch configured for %q", currentBranch)
	}
	switch state {
	case gitutil.SyncUpToDate:
		return nil
	case gitutil.SyncBehind:
		return fmt.Errorf("your branch is behind %q, pull changes first", upstream)
	case gitutil.SyncAhead:
		warnColor.Printf("[WARN] Your branch is ahead of %q.\n", upstream)
		if log, err := gitutil.UnpushedLog(ctx, opts.Dir, upstream); err == nil && log != "" {
			fmt.Println("Unpushed commits:")
			fmt.Println(log)
		}
		if err := confirm(opts, "Push changes to remote before releasing?"); err != nil {
			if err == errAborted {
				// Declining the push is fine; the tag still points at
				// a commit that exists on the remote's history.
				return nil
			}
			return err
		}
		return gitutil.Push(ctx, opts.Dir, currentBranch)
	case gitutil.SyncDiverged:
		return fmt.Errorf("your branch has diverged from %q, reconcile first", upstream)
	default:
		panic(fmt.Errorf("invalid SyncState: %d", int(state)))
	}
}
