package template

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"

	"github.com/jebel-quant/rhiza/pkg/fsutil"
)

// Options adjusts how Materialize behaves.
type Options struct {
	// Branch is the template branch to use when the target has no
	// template.yml yet (an existing template.yml wins).
	Branch string
	// Force overwrites include paths that already exist in the target.
	Force bool
}

// Materialize pulls the configured include paths from the template
// repository into the target repository.  It is a one-shot snapshot, not
// a merge; re-run it to update the templates explicitly.
func Materialize(ctx context.Context, target string, opts Options) error {
	gitDir, err := os.Stat(filepath.Join(target, ".git"))
	if err != nil || !gitDir.IsDir() {
		return fmt.Errorf("target directory is not a git repository: %q", target)
	}
	dlog.Infof(ctx, "Target repository: %s", target)

	cfg, err := ensureConfig(ctx, target, opts.Branch)
	if err != nil {
		return err
	}
	if len(cfg.Include) == 0 {
		return fmt.Errorf("no include paths found in %s", ConfigPath(target))
	}
	dlog.Infoln(ctx, "Include paths:")
	for _, path := range cfg.Include {
		dlog.Infof(ctx, "  - %s", path)
	}

	tmpDir, err := os.MkdirTemp("", "rhiza-inject.")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.RemoveAll(tmpDir)
	}()

	dlog.Infof(ctx, "Cloning %s@%s into temporary directory", cfg.Repository, cfg.Branch)
	if err := sparseClone(ctx, tmpDir, cfg); err != nil {
		return err
	}

	if err := CopyIncludes(ctx, tmpDir, target, cfg.Include, opts.Force); err != nil {
		return err
	}
	dlog.Infoln(ctx, "Templates materialized successfully")
	return nil
}

func ensureConfig(ctx context.Context, target, branch string) (*Config, error) {
	exists, err := fsutil.Exists(ConfigPath(target))
	if err != nil {
		return nil, err
	}
	if !exists {
		dlog.Infoln(ctx, "Creating default .github/template.yml")
		return WriteDefault(target, branch)
	}
	dlog.Infoln(ctx, "Using existing .github/template.yml")
	return LoadConfig(target)
}

func sparseClone(ctx context.Context, tmpDir string, cfg *Config) error {
	clone := dexec.CommandContext(ctx, "git", "clone",
		"--depth", "1",
		"--filter=blob:none",
		"--sparse",
		"--branch", cfg.Branch,
		"https://github.com/"+cfg.Repository+".git",
		tmpDir)
	if err := clone.Run(); err != nil {
		return err
	}
	init := dexec.CommandContext(ctx, "git", "sparse-checkout", "init", "--cone")
	init.Dir = tmpDir
	if err := init.Run(); err != nil {
		return err
	}
	set := dexec.CommandContext(ctx, "git", append([]string{"sparse-checkout", "set"}, cfg.Include...)...)
	set.Dir = tmpDir
	return set.Run()
}

// CopyIncludes copies each include path from src into dst.  Paths absent
// from src are skipped with a warning; paths already present in dst are
// skipped too, unless force, in which case they are replaced outright.
func CopyIncludes(ctx context.Context, src, dst string, include []string, force bool) error {
	for _, path := range include {
		srcPath := filepath.Join(src, path)
		dstPath := filepath.Join(dst, path)

		srcExists, err := fsutil.Exists(srcPath)
		if err != nil {
			return err
		}
		if !srcExists {
			dlog.Warnf(ctx, "%s not found in the template repository, skipping", path)
			continue
		}

		dstExists, err := fsutil.Exists(dstPath)
		if err != nil {
			return err
		}
		if dstExists && !force {
			dlog.Warnf(ctx, "%s already exists, use --force to overwrite", path)
			continue
		}
		if dstExists {
			if err := os.RemoveAll(dstPath); err != nil {
				return err
			}
		}

		if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
			return err
		}
		srcInfo, err := os.Stat(srcPath)
		if err != nil {
			return err
		}
		if srcInfo.IsDir() {
			err = fsutil.CopyTree(dstPath, srcPath)
		} else {
			err = fsutil.CopyFile(dstPath, srcPath)
		}
		if err != nil {
			return err
		}
		dlog.Infof(ctx, "[ADD] %s", path)
	}
	return nil
}
