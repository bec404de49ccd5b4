package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/ayg/internal/app"
	"github.com/dshills/ayg/internal/config"
	"github.com/dshills/ayg/internal/logging"
	"github.com/dshills/ayg/internal/renderer/backend"
	"github.com/dshills/ayg/internal/spell/dictionary"
)

// rootFlags are shared by every command.
type rootFlags struct {
	configPath    string
	dictionary    string
	logLevel      string
	logFile       string
	maxWordLength int
	refresh       bool
}

// overrides maps flag names to the settings they replace.
var overrides = []struct {
	flag, setting string
}{
	{"dictionary", "dictionary.source"},
	{"refresh-dictionary", "dictionary.refresh"},
	{"log-level", "log.level"},
	{"log-file", "log.file"},
	{"max-word-length", "spell.max_word_length"},
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "ayg [file]",
		Short: "A terminal text editor that unscrambles misspelled words as you type",
		Long: `ayg is a small terminal text editor. Each word is checked against a
dictionary when you press space. Unknown words are highlighted and a
background worker tries every ordering of their letters, replacing the
word with the first ordering found in the dictionary.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, flags, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to a TOML or YAML configuration file")
	pf.StringVar(&flags.dictionary, "dictionary", "", "word list URL or local file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error, off)")
	pf.StringVar(&flags.logFile, "log-file", "", "log file path")
	pf.IntVar(&flags.maxWordLength, "max-word-length", 0, "longest word to unscramble (0 for no limit)")
	pf.BoolVar(&flags.refresh, "refresh-dictionary", false, "download the word list even when cached")

	cmd.AddCommand(newCheckCmd(flags), newUnscrambleCmd(flags))
	return cmd
}

// session is what every command needs before it can do work.
type session struct {
	cfg    *config.Config
	logger *logging.Logger
	dict   *dictionary.Dictionary
	closer io.Closer
}

func (s *session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

// setup loads the configuration, applies changed flags, opens the log and
// loads the dictionary.
func setup(cmd *cobra.Command, flags *rootFlags) (*session, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		f := cmd.Flags().Lookup(o.flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := cfg.Set(o.setting, f.Value.String()); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logging.Nop()}
	if cfg.Log.File != "" {
		logger, closer, err := logging.OpenFile(cfg.Log.File, logging.ParseLogLevel(cfg.Log.Level))
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		s.logger, s.closer = logger, closer
	}

	s.dict, err = loadDictionary(cmd.Context(), cfg, s.logger)
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func loadDictionary(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*dictionary.Dictionary, error) {
	logger.Info("loading dictionary", "source", cfg.Dictionary.Source, "refresh", cfg.Dictionary.Refresh)
	dict, err := dictionary.Load(ctx, dictionary.Options{
		Source:   cfg.Dictionary.Source,
		CacheDir: cfg.Dictionary.CacheDir,
		Refresh:  cfg.Dictionary.Refresh,
		Timeout:  cfg.Dictionary.Timeout.Std(),
	})
	if err != nil {
		logger.Error("dictionary unavailable", "error", err)
		return nil, err
	}
	logger.Info("dictionary loaded", "words", dict.Len())
	return dict, nil
}

func runEditor(cmd *cobra.Command, flags *rootFlags, files []string) error {
	s, err := setup(cmd, flags)
	if err != nil {
		return err
	}
	defer s.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}

	application, err := app.New(app.Options{
		Config:     s.cfg,
		Dictionary: s.dict,
		Backend:    term,
		Logger:     s.logger,
		Files:      files,
	})
	if err != nil {
		return err
	}
	return application.Run(cmd.Context())
}
