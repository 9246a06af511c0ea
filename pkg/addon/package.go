// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"blendpack-cli/pkg/blinfo"
	"blendpack-cli/pkg/manifest"

	"github.com/charmbracelet/log"
)

type (
	// HookRunner executes a manifest hook script. The env map is exposed
	// to the script as environment variables.
	HookRunner interface {
		Run(ctx context.Context, script string, env map[string]string) error
	}

	// Clock supplies the time embedded in archive names. Production code
	// passes nil and gets system time; tests inject a fake.
	Clock interface {
		Now() time.Time
	}

	// PackageOptions configures a packaging run.
	PackageOptions struct {
		// SourceDir is the addon source directory.
		SourceDir string
		// Manifest is the loaded packaging manifest.
		Manifest *manifest.Manifest
		// OutputDir overrides the manifest's output.dir when non-empty.
		OutputDir string
		// KeepStaging leaves the staging directory on disk afterwards.
		KeepStaging bool
		// Hooks runs the manifest's hook scripts; nil disables hooks.
		Hooks HookRunner
		// Clock overrides system time for archive names; nil uses time.Now.
		Clock Clock
		// Logger receives progress output; nil uses the default logger.
		Logger *log.Logger
	}

	// PackageResult describes a completed packaging run.
	PackageResult struct {
		// ArchivePath is the written release artifact.
		ArchivePath string
		// Meta is the addon's parsed bl_info record.
		Meta *blinfo.Metadata
		// Staged describes the staging step.
		Staged *StageResult
		// Generated lists release documents written into staging.
		Generated []string
		// Validation is the staged-tree validation outcome.
		Validation *ValidationResult
	}
)

// Package runs the full pipeline: parse bl_info, run the pre-package hook,
// stage the declared files, generate release documents, validate the
// staged tree, write the archive, run the post-package hook, and clean up
// staging. Any failure aborts the run without leaving a partial archive,
// and the staging directory is removed unless KeepStaging is set.
func Package(ctx context.Context, opts PackageOptions) (result *PackageResult, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	m := opts.Manifest
	srcDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source directory: %w", err)
	}

	meta, err := blinfo.ParseFile(filepath.Join(srcDir, blinfo.EntryFile))
	if err != nil {
		return nil, err
	}
	if problems := meta.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("bl_info is incomplete: %v", problems)
	}
	logger.Debug("parsed addon metadata", "name", meta.Name, "version", meta.Version)

	hookEnv := map[string]string{
		"BLENDPACK_ADDON":   m.Addon,
		"BLENDPACK_VERSION": meta.Version.String(),
	}
	if err := runHook(ctx, opts.Hooks, m.Hooks.PrePackage, hookEnv); err != nil {
		return nil, fmt.Errorf("pre-package hook failed: %w", err)
	}

	staged, err := Stage(srcDir, m)
	if err != nil {
		return nil, err
	}
	defer func() {
		if !opts.KeepStaging {
			if cleanupErr := Cleanup(staged.Dir); cleanupErr != nil && err == nil {
				err = cleanupErr
			}
		}
	}()
	// Missing documentation files travel in the result; the caller decides
	// how to surface them.
	logger.Debug("staged addon files", "dir", staged.Dir, "copied", len(staged.Copied), "missing_docs", len(staged.MissingDocs))

	now := time.Now()
	if opts.Clock != nil {
		now = opts.Clock.Now()
	}

	generated, err := Generate(staged.Dir, m, meta, now)
	if err != nil {
		return nil, err
	}
	logger.Debug("generated release documents", "files", generated)

	validation, err := Validate(staged.Dir)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		return nil, fmt.Errorf("staged addon failed validation: %d issue(s), run 'blendpack validate' for details", len(validation.Issues))
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = m.Output.Dir
	}
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(srcDir, outDir)
	}

	archivePath, err := Archive(staged.Dir, outDir, meta.Version, now)
	if err != nil {
		return nil, err
	}
	logger.Debug("wrote release archive", "path", archivePath)

	hookEnv["BLENDPACK_ARCHIVE"] = archivePath
	if err := runHook(ctx, opts.Hooks, m.Hooks.PostPackage, hookEnv); err != nil {
		return nil, fmt.Errorf("post-package hook failed: %w", err)
	}

	return &PackageResult{
		ArchivePath: archivePath,
		Meta:        meta,
		Staged:      staged,
		Generated:   generated,
		Validation:  validation,
	}, nil
}

func runHook(ctx context.Context, runner HookRunner, script string, env map[string]string) error {
	if runner == nil || script == "" {
		return nil
	}
	return runner.Run(ctx, script, env)
}
