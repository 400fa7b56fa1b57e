package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bornholm/go-assetgen"
	"github.com/bornholm/go-assetgen/cache"
	"github.com/bornholm/go-assetgen/filesystem"
	"github.com/bornholm/go-assetgen/filter"
	"github.com/bornholm/go-assetgen/layout"
	"github.com/bornholm/go-assetgen/metrics"
	"github.com/bornholm/go-assetgen/resize"
	"github.com/pkg/errors"

	_ "github.com/bornholm/go-assetgen/cache/all"
	_ "github.com/bornholm/go-assetgen/filesystem/all"
)

var (
	configFile  string = "assetgen.yaml"
	rawLogLevel string = slog.LevelInfo.String()
	platforms   string = ""
	check       bool   = false
	dryRun      bool   = false
	watchMode   bool   = false
	metricsFile string = ""
)

func init() {
	flag.StringVar(&configFile, "config", configFile, "configuration file (json or yaml)")
	flag.StringVar(&rawLogLevel, "log-level", rawLogLevel, "log level")
	flag.StringVar(&platforms, "platform", platforms, "comma separated platforms, overriding the configuration")
	flag.BoolVar(&check, "check", check, "only report whether generation is needed")
	flag.BoolVar(&dryRun, "dry-run", dryRun, "print the generation plan without applying it")
	flag.BoolVar(&watchMode, "watch", watchMode, "regenerate assets each time the images directory changes")
	flag.StringVar(&metricsFile, "metrics-file", metricsFile, "write prometheus metrics to this file after each generation")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	flag.Parse()

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(rawLogLevel)); err != nil {
		slog.ErrorContext(ctx, "could not parse log level", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}

	slog.SetLogLoggerLevel(logLevel)

	conf, err := loadConfig(ctx, configFile)
	if err != nil {
		slog.ErrorContext(ctx, "could not load configuration", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}

	if platforms != "" {
		conf.Platforms = strings.Split(platforms, ",")
	}

	slog.DebugContext(ctx, "creating cache backend", slog.String("type", conf.Cache.Type))

	backend, err := cache.New(cache.Type(conf.Cache.Type), conf.cacheOptions())
	if err != nil {
		slog.ErrorContext(ctx, "could not create cache backend", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}

	if closer, ok := backend.(io.Closer); ok {
		defer closer.Close()
	}

	opts, err := pipelineOptions(conf)
	if err != nil {
		slog.ErrorContext(ctx, "could not configure pipeline", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}

	var collector *metrics.Collector
	if metricsFile != "" {
		collector = metrics.NewCollector()
		opts = append(opts, assetgen.WithMetrics(collector))
	}

	project := assetgen.Project{
		AppResourcesDir: conf.Project.AppResourcesDir,
		PlatformsDir:    conf.Project.PlatformsDir,
		ImagesDir:       conf.Project.ImagesDir,
		OutputDir:       conf.Project.OutputDir,
	}

	switch {
	case check:
		if err := runCheck(ctx, project, conf.Platforms, backend, opts); err != nil {
			slog.ErrorContext(ctx, "could not check assets", slog.Any("error", errors.WithStack(err)))
			os.Exit(1)
		}

	case dryRun:
		if err := runPlan(ctx, project, conf.Platforms, backend, opts); err != nil {
			slog.ErrorContext(ctx, "could not plan assets generation", slog.Any("error", errors.WithStack(err)))
			os.Exit(1)
		}

	default:
		prepare := func(ctx context.Context) error {
			err := runPrepare(ctx, project, conf.Platforms, backend, opts)

			if collector != nil {
				if err := collector.WriteToTextfile(metricsFile); err != nil {
					slog.ErrorContext(ctx, "could not write metrics", slog.Any("error", errors.WithStack(err)))
				}
			}

			return err
		}

		if err := prepare(ctx); err != nil {
			slog.ErrorContext(ctx, "could not generate assets", slog.Any("error", errors.WithStack(err)))
			if !watchMode {
				os.Exit(1)
			}
		}

		if !watchMode {
			return
		}

		err := watch(ctx, project.SourceDir(), func(ctx context.Context) {
			if err := prepare(ctx); err != nil {
				slog.ErrorContext(ctx, "could not generate assets", slog.Any("error", errors.WithStack(err)))
			}
		})
		if err != nil {
			slog.ErrorContext(ctx, "could not watch images directory", slog.Any("error", errors.WithStack(err)))
			os.Exit(1)
		}
	}
}

func pipelineOptions(conf *config) ([]assetgen.OptionFunc, error) {
	resampleFilter, err := resize.FilterByName(conf.Resize.Filter)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	compression, err := resize.CompressionByName(conf.Resize.Compression)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	imageFilter, err := filter.Compile(conf.Filter)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	opts := []assetgen.OptionFunc{
		assetgen.WithResizer(resize.NewImaging(
			resize.WithFilter(resampleFilter),
			resize.WithCompression(compression),
		)),
		assetgen.WithFilter(imageFilter),
		assetgen.WithConcurrency(conf.Concurrency),
	}

	if conf.Output.Type != "" {
		output, err := filesystem.New(filesystem.Type(conf.Output.Type), conf.outputOptions())
		if err != nil {
			return nil, errors.Wrap(err, "could not create output filesystem")
		}

		opts = append(opts, assetgen.WithOutput(output))
	}

	return opts, nil
}

func runCheck(ctx context.Context, project assetgen.Project, platforms []string, backend cache.Backend, opts []assetgen.OptionFunc) error {
	for _, name := range platforms {
		needed, err := assetgen.ShouldPrepare(ctx, project, name, backend, opts...)
		if err != nil {
			return errors.Wrapf(err, "could not check platform '%s'", name)
		}

		fmt.Printf("%s: %v\n", strings.TrimSpace(name), needed)
	}

	return nil
}

func runPlan(ctx context.Context, project assetgen.Project, platforms []string, backend cache.Backend, opts []assetgen.OptionFunc) error {
	for _, name := range platforms {
		platform, supported := layout.Normalize(name)
		if !supported {
			slog.WarnContext(ctx, "ignoring unsupported platform", slog.String("platform", name))
			continue
		}

		pipeline, err := assetgen.NewPipeline(project, platform, backend, opts...)
		if err != nil {
			return errors.WithStack(err)
		}

		plan, err := pipeline.Plan(ctx)
		if err != nil {
			return errors.Wrapf(err, "could not plan platform '%s'", platform)
		}

		for _, img := range plan.ToCreate {
			fmt.Printf("%s: create %s (%s)\n", platform, img.Basename, img.Filename)
		}

		for _, basename := range plan.ToRemove {
			fmt.Printf("%s: remove %s\n", platform, basename)
		}

		fmt.Printf("%s: %d unchanged\n", platform, len(plan.Unchanged))
	}

	return nil
}

func runPrepare(ctx context.Context, project assetgen.Project, platforms []string, backend cache.Backend, opts []assetgen.OptionFunc) error {
	for _, name := range platforms {
		slog.InfoContext(ctx, "generating assets", slog.String("platform", name))

		if err := assetgen.Prepare(ctx, project, name, backend, opts...); err != nil {
			return errors.Wrapf(err, "could not prepare platform '%s'", name)
		}
	}

	return nil
}
