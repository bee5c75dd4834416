package main

import (
	"fmt"
	"path"
	"runtime"
	"time"
	_ "time/tzdata"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "0.2.0"

type options struct {
	from       string
	until      string
	link       string
	output     string
	format     string
	roomPrefix string
	configPath string
	timeout    time.Duration
	cache      bool
	preview    bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	var opts options

	var rootCmd = &cobra.Command{
		Use:                   "rapla2csv -f DATE -u DATE -l LINK [-o FILE]",
		Short:                 "rapla2csv exports the lessons of a Rapla calendar to a CSV file",
		Version:               version,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		SilenceErrors:         true,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.debug {
				log.SetLevel(log.DebugLevel)
				log.SetReportCaller(true)
			}
			return run(cmd, &opts)
		},
	}
	rootCmd.Flags().StringVarP(&opts.from, "from", "f", "", "Begin of the export time period, e.g. 2015-12-31")
	rootCmd.Flags().StringVarP(&opts.until, "until", "u", "", "End of the export time period, e.g. 2016-12-31")
	rootCmd.Flags().StringVarP(&opts.link, "link", "l", "", "Rapla link IN QUOTES, e.g. \"http://example.com/rapla?key=abc123\"")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "rapla.csv", "File to save the lessons into")
	rootCmd.Flags().StringVar(&opts.format, "format", "csv", "Export format (csv, ics)")
	rootCmd.Flags().StringVar(&opts.roomPrefix, "room-prefix", "RB", "Prefix of the resources that are rooms")
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/rapla2csv/config.yaml)")
	rootCmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Timeout for fetching a single week")
	rootCmd.Flags().BoolVar(&opts.cache, "cache", false, "Cache fetched weeks on disk")
	rootCmd.Flags().BoolVar(&opts.preview, "preview", false, "Review the lessons before exporting them")
	rootCmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "Debug mode")
	for _, name := range []string{"from", "until", "link"} {
		if err := rootCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
	return rootCmd
}

func main() {
	log.SetFormatter(&log.TextFormatter{
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			filename := path.Base(f.File)
			return fmt.Sprintf("%s()", f.Function), fmt.Sprintf("%s:%d", filename, f.Line)
		},
	})

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
