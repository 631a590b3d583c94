package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kerem-kaynak/visual-reader/internal/config"
	"github.com/kerem-kaynak/visual-reader/internal/logging"
	"github.com/kerem-kaynak/visual-reader/pkg/highlight"
	"github.com/kerem-kaynak/visual-reader/pkg/illustrate"
	"github.com/kerem-kaynak/visual-reader/pkg/reader"
	"github.com/kerem-kaynak/visual-reader/pkg/render"
)

// app carries the state shared by all subcommands.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "reader",
		Short:         "Highlight passages of a text and illustrate them",
		Long:          `Load a plain text document, resolve selected passages to word ranges and render the document with highlight marks.`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (YAML)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "", "log format: text or json")
	root.PersistentFlags().String("policy", "", "highlight policy: single or multi")

	root.AddCommand(
		newRenderCmd(a),
		newResolveCmd(a),
		newEnvisionCmd(a),
		newTokensCmd(a),
		newConfigCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := config.New(a.cfgFile)
	if err != nil {
		return err
	}

	// Bind flags to viper
	_ = v.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag("log.format", cmd.Flags().Lookup("log-format"))
	_ = v.BindPFlag("reader.policy", cmd.Flags().Lookup("policy"))

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	format, _ := logging.ParseFormat(cfg.Log.Format)

	a.v = v
	a.cfg = cfg
	a.logger = logging.New(cmd.ErrOrStderr(), level, format)
	return nil
}

// newSession creates a session configured from the loaded configuration.
// The illustration backend is only attached when illustrated is set.
func (a *app) newSession(illustrated bool) (*reader.Session, error) {
	policy, err := highlight.ParsePolicy(a.cfg.Reader.Policy)
	if err != nil {
		return nil, err
	}
	norm, err := a.cfg.Normalizer()
	if err != nil {
		return nil, err
	}

	opts := []reader.Option{
		reader.WithPolicy(policy),
		reader.WithNormalizer(norm),
		reader.WithContextRadius(a.cfg.Reader.ContextRadius),
		reader.WithHTML(&render.HTML{MarkStyle: a.cfg.Reader.MarkStyle}),
		reader.WithLogger(logging.Component(a.logger, "session")),
	}
	if illustrated {
		if !a.cfg.Backend.Enabled {
			return nil, fmt.Errorf("illustration backend is disabled (backend.enabled)")
		}
		opts = append(opts, reader.WithIllustrator(illustrate.NewClient(a.cfg.Illustrate())))
	}

	return reader.NewSession(opts...), nil
}

// load reads the document at path into s.
func (a *app) load(s *reader.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.LoadFile(path, f)
}
