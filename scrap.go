package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rapla2csv/config"
	"rapla2csv/export"
	"rapla2csv/rapla"
)

// preview is replaced in tests.
var preview = runPreview

// applyConfig fills every flag the user did not set from cfg.
func (o *options) applyConfig(flags *pflag.FlagSet, cfg *config.Config) {
	if !flags.Changed("output") && cfg.Output != "" {
		o.output = cfg.Output
	}
	if !flags.Changed("format") && cfg.Format != "" {
		o.format = cfg.Format
	}
	if !flags.Changed("room-prefix") && cfg.RoomPrefix != "" {
		o.roomPrefix = cfg.RoomPrefix
	}
	if !flags.Changed("timeout") && cfg.Fetch.Timeout > 0 {
		o.timeout = cfg.Fetch.Timeout
	}
	if !flags.Changed("cache") {
		o.cache = cfg.Fetch.Cache
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	opts.applyConfig(cmd.Flags(), cfg)
	log.Debugf("Options: %+v", *opts)

	// everything the user typed is checked before the first request
	from, err := rapla.ParseDate(opts.from)
	if err != nil {
		return fmt.Errorf("invalid --from date %q: %w", opts.from, err)
	}
	until, err := rapla.ParseDate(opts.until)
	if err != nil {
		return fmt.Errorf("invalid --until date %q: %w", opts.until, err)
	}
	req, err := rapla.NewRequest(from, until, opts.link)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	format, err := export.FormatByName(opts.format, loc)
	if err != nil {
		return err
	}

	collectorOpts := rapla.CollectorOptions{
		Timeout:   opts.timeout,
		UserAgent: cfg.Fetch.UserAgent,
		Delay:     cfg.Fetch.Delay,
	}
	if opts.cache {
		collectorOpts.CacheDir = config.CacheDir()
		log.Debug("CACHE: using ", collectorOpts.CacheDir)
	}
	collector, err := rapla.NewCollector(collectorOpts)
	if err != nil {
		return err
	}

	crawler := &rapla.Crawler{
		Fetcher: collector,
		Parser:  rapla.NewParser(opts.roomPrefix),
		Log:     log.StandardLogger(),
	}
	log.Infof("Extracting lessons %s from %s", req.Range, req.Link)
	res, crawlErr := crawler.Crawl(req)
	fmt.Fprintln(cmd.OutOrStdout(), res.Stats)

	if opts.preview {
		ok, err := preview(res.Lessons)
		if err != nil {
			return err
		}
		if !ok {
			log.Warn("Export cancelled")
			return crawlErr
		}
	}

	if err := export.WriteFile(opts.output, format, res.Lessons); err != nil {
		// the failed week is the cause, report it first
		if crawlErr != nil {
			log.WithError(err).Error("Export failed")
			return crawlErr
		}
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Export done: %s\n", opts.output)
	return crawlErr
}
