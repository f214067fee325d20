package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/retrofe/packager/internal/config"
	"github.com/retrofe/packager/internal/errors"
	"github.com/retrofe/packager/internal/gitinfo"
	"github.com/retrofe/packager/internal/history"
	"github.com/retrofe/packager/internal/logfields"
	"github.com/retrofe/packager/internal/manifest"
	"github.com/retrofe/packager/internal/packager"
	"github.com/retrofe/packager/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"packager.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Package struct {
		OS    string `name:"os" required:"" enum:"windows,linux,mac" help:"Target operating system"`
		Build string `enum:"full,core,engine,layout,none" default:"full" help:"Contents to package (full, core, engine, layout, none)"`
		Clean bool   `help:"Delete the existing output tree before packaging"`
	} `cmd:"" help:"Assemble the distribution tree for a target OS"`

	Watch struct {
		OS    string `name:"os" required:"" enum:"windows,linux,mac" help:"Target operating system"`
		Build string `enum:"full,core,engine,layout,none" default:"full" help:"Contents to package on each change"`
	} `cmd:"" help:"Repackage automatically whenever asset sources change"`

	Verify struct {
		OS string `name:"os" required:"" enum:"windows,linux,mac" help:"Target operating system"`
	} `cmd:"" help:"Check the output tree against its recorded manifest"`

	History struct {
		Limit int `short:"n" default:"10" help:"Number of recent runs to show"`
	} `cmd:"" help:"List recent packaging runs"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Write an example configuration file"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	adapter := errors.NewCLIErrorAdapter(CLI.Verbose, logger)

	// Execute command
	switch ctx.Command() {
	case "package":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			adapter.HandleError(errors.ConfigInvalid(CLI.Config, err))
		}
		if err := runPackage(cfg, CLI.Package.OS, CLI.Package.Build, CLI.Package.Clean); err != nil {
			adapter.HandleError(err)
		}
	case "watch":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			adapter.HandleError(errors.ConfigInvalid(CLI.Config, err))
		}
		if err := runWatch(cfg, CLI.Watch.OS, CLI.Watch.Build); err != nil {
			adapter.HandleError(err)
		}
	case "verify":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			adapter.HandleError(errors.ConfigInvalid(CLI.Config, err))
		}
		if err := runVerify(cfg, CLI.Verify.OS); err != nil {
			adapter.HandleError(err)
		}
	case "history":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			adapter.HandleError(errors.ConfigInvalid(CLI.Config, err))
		}
		if err := runHistory(cfg, CLI.History.Limit); err != nil {
			adapter.HandleError(err)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			adapter.HandleError(errors.ConfigInvalid(CLI.Config, err))
		}
	}
}

// parseRequest converts validated flag values into a packaging request.
func parseRequest(osName, buildName string, clean bool) (packager.Request, error) {
	target, err := packager.ParseTarget(osName)
	if err != nil {
		return packager.Request{}, errors.ValidationFailed("os", err.Error())
	}
	profile, err := packager.ParseProfile(buildName)
	if err != nil {
		return packager.Request{}, errors.ValidationFailed("build", err.Error())
	}
	return packager.Request{Target: target, Profile: profile, Clean: clean}, nil
}

func runPackage(cfg *config.Config, osName, buildName string, clean bool) error {
	req, err := parseRequest(osName, buildName, clean)
	if err != nil {
		return err
	}

	result, err := packager.New(cfg).Run(req)
	if err != nil {
		return err
	}

	if req.Profile != packager.ProfileNone {
		if err := recordRun(cfg, result); err != nil {
			return err
		}
	}
	return nil
}

// recordRun writes the manifest and appends the run to the history ledger.
// A history failure is logged, not fatal; the packaged tree is already good.
func recordRun(cfg *config.Config, result *packager.Result) error {
	commit, err := gitinfo.HeadCommit(cfg.BaseDir)
	if err != nil {
		slog.Warn("Could not resolve source commit", logfields.Error(err))
	}

	var m *manifest.PackageManifest
	if cfg.Output.Manifest {
		m, err = manifest.Generate(result.RunID, result.Target.String(), result.Profile.String(),
			commit, result.OutputDir, result.Started, result.Duration)
		if err != nil {
			return errors.InternalError("manifest generation failed", err)
		}
		if err := m.Write(manifest.PathFor(result.OutputDir)); err != nil {
			return errors.InternalError("manifest write failed", err)
		}
		slog.Info("Manifest written",
			logfields.Path(manifest.PathFor(result.OutputDir)),
			logfields.Files(m.FileCount),
			logfields.Bytes(m.TotalBytes))
	}

	if !cfg.History.Enabled {
		return nil
	}

	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		slog.Warn("Run history unavailable", logfields.Error(err))
		return nil
	}
	defer store.Close()

	run := history.Run{
		ID:           result.RunID,
		Timestamp:    result.Started,
		Target:       result.Target.String(),
		Profile:      result.Profile.String(),
		SourceCommit: commit,
		DurationMS:   result.Duration.Milliseconds(),
		Status:       "success",
	}
	if result.ExecutableMissing {
		run.Status = "missing-executable"
	}
	if m != nil {
		run.FileCount = m.FileCount
		run.TotalBytes = m.TotalBytes
	}
	if err := store.Append(context.Background(), run); err != nil {
		slog.Warn("Could not record run history", logfields.Error(err))
	}
	return nil
}

func runWatch(cfg *config.Config, osName, buildName string) error {
	req, err := parseRequest(osName, buildName, false)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := packager.New(cfg)
	repackage := func(context.Context) error {
		result, err := p.Run(req)
		if err != nil {
			return err
		}
		if req.Profile != packager.ProfileNone {
			return recordRun(cfg, result)
		}
		return nil
	}

	// Package once up front so the watcher starts from a complete tree.
	if err := repackage(ctx); err != nil {
		return err
	}

	roots := []string{cfg.CommonPath(), req.Target.AssetsDir(cfg)}
	watcher, err := watch.New(roots, repackage)
	if err != nil {
		return errors.InternalError("watcher setup failed", err)
	}
	if err := watcher.Start(ctx); err != nil {
		return errors.InternalError("watcher start failed", err)
	}

	slog.Info("Watching for asset changes, press Ctrl-C to stop")
	<-ctx.Done()
	return watcher.Stop()
}

func runVerify(cfg *config.Config, osName string) error {
	target, err := packager.ParseTarget(osName)
	if err != nil {
		return errors.ValidationFailed("os", err.Error())
	}

	outputDir := packager.New(cfg).OutputDir(target)
	manifestPath := manifest.PathFor(outputDir)

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return errors.Wrap(err, errors.CategoryArtifact, errors.SeverityFatal, "no manifest for output tree").
			WithContext("path", manifestPath)
	}

	mismatches, err := m.Verify(outputDir)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "verification walk failed")
	}

	if len(mismatches) == 0 {
		slog.Info("Output tree matches manifest",
			logfields.Target(target.String()),
			logfields.Files(m.FileCount))
		return nil
	}

	for _, mm := range mismatches {
		fmt.Printf("MISMATCH %s: %s\n", mm.Reason, mm.Path)
	}
	return errors.New(errors.CategoryArtifact, errors.SeverityFatal,
		fmt.Sprintf("output tree differs from manifest in %d places", len(mismatches)))
}

func runHistory(cfg *config.Config, limit int) error {
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return errors.HistoryError("open", err)
	}
	defer store.Close()

	runs, err := store.ListRecent(context.Background(), limit)
	if err != nil {
		return errors.HistoryError("list", err)
	}

	if len(runs) == 0 {
		fmt.Println("No packaging runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		commit := run.SourceCommit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		fmt.Printf("%s  %-7s %-7s %8d files %12d bytes  %-8s %s\n",
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Target, run.Profile, run.FileCount, run.TotalBytes, commit, run.Status)
	}
	return nil
}
