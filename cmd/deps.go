package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/audio"
	"github.com/abhisek/kanaz/internal/config"
	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/llm"
	"github.com/abhisek/kanaz/internal/logger"
	"github.com/abhisek/kanaz/internal/mnemonic"
	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/screens"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

// deps holds what every command needs. close must be called when done.
type deps struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *store.Store
	catalog *kana.Catalog

	// themeFlag is set when --theme overrides the saved theme.
	themeFlag bool
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DB.DSN = db
	}
	if t, _ := cmd.Flags().GetString("theme"); t != "" {
		cfg.UI.Theme = t
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the database DSN using --db or the config file
// (highest priority), then KANAZ_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB.DSN != "" {
		return cfg.DB.DSN, store.EnsureDir(cfg.DB.DSN)
	}
	return store.DefaultDBPath()
}

func loadCatalog(cmd *cobra.Command) (*kana.Catalog, error) {
	dir, _ := cmd.Flags().GetString("catalog")
	if dir == "" {
		return kana.Default(), nil
	}
	cat, err := kana.Load(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", dir, err)
	}
	return cat, nil
}

// openDeps loads config, logger, catalog and store. console selects a
// stderr logger for line-mode commands when --verbose is set.
func openDeps(cmd *cobra.Command, console bool) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	var log *zap.Logger
	if verbose, _ := cmd.Flags().GetBool("verbose"); console && verbose {
		log, err = logger.NewConsole(cfg.Log.Level)
	} else {
		log, err = logger.New(cfg.Log.Level, cfg.Log.File)
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	fail := func(err error) (*deps, error) {
		log.Error("open dependencies", zap.Error(err))
		_ = log.Sync()
		return nil, err
	}

	cat, err := loadCatalog(cmd)
	if err != nil {
		return fail(err)
	}

	dsn, err := resolveDBPath(cfg)
	if err != nil {
		return fail(fmt.Errorf("resolve DB path: %w", err))
	}
	st, err := store.Open(cmd.Context(), dsn)
	if err != nil {
		return fail(fmt.Errorf("open store: %w", err))
	}
	log.Debug("store opened", zap.String("dialect", st.Dialect()))

	return &deps{
		cfg:       cfg,
		logger:    log,
		store:     st,
		catalog:   cat,
		themeFlag: cmd.Flags().Changed("theme"),
	}, nil
}

func (d *deps) close() {
	if err := d.store.Close(); err != nil {
		d.logger.Warn("close store", zap.Error(err))
	}
	_ = d.logger.Sync()
}

// preference returns the stored value for key, or fallback.
func (d *deps) preference(ctx context.Context, key, fallback string) string {
	v, ok, err := d.store.PreferenceRepo().GetPreference(ctx, key)
	if err != nil {
		d.logger.Warn("read preference", zap.String("key", key), zap.Error(err))
		return fallback
	}
	if !ok || v == "" {
		return fallback
	}
	return v
}

// direction picks the quiz direction: the last one chosen in the app,
// else the configured default.
func (d *deps) direction(ctx context.Context) quiz.Direction {
	dir, err := quiz.ParseDirection(d.preference(ctx, store.PrefDirection, d.cfg.Quiz.Direction))
	if err != nil {
		dir, _ = quiz.ParseDirection(d.cfg.Quiz.Direction)
	}
	return dir
}

func (d *deps) engine(dir quiz.Direction, count int) *quiz.Engine {
	return quiz.NewEngine(d.catalog,
		quiz.WithQuestionCount(count),
		quiz.WithDirection(dir),
		quiz.WithLogger(d.logger.Named("quiz")),
	)
}

// player builds the pronunciation player, or a no-op one when audio is
// disabled.
func (d *deps) player() audio.Player {
	a := d.cfg.Audio
	if !a.Enabled {
		return audio.Nop{}
	}
	log := d.logger.Named("audio")
	src := &audio.Source{
		AssetsDir:   a.AssetsDir,
		CacheDir:    a.CacheDir,
		Placeholder: a.Placeholder,
		Language:    a.Language,
		TextFor:     kanaForReading(d.catalog),
		Logger:      log,
	}
	if a.TTSKey != "" {
		src.Synth = audio.NewGoogleTTS(a.TTSKey)
	}
	p := audio.NewExecPlayer(src,
		audio.WithCommand(a.CommandArgs()),
		audio.WithLogger(log),
	)
	return audio.Safe(p, log)
}

// kanaForReading maps a reading back to its hiragana so speech synthesis
// pronounces the kana rather than the romaji.
func kanaForReading(cat *kana.Catalog) func(string) string {
	byReading := make(map[string]string)
	for _, id := range []kana.CategoryID{kana.Hiragana, kana.Voiced, kana.Contracted, kana.Vocabulary} {
		for _, e := range cat.Entries(id) {
			if e.Script == kana.ScriptKatakana {
				continue
			}
			if _, ok := byReading[e.Reading]; !ok {
				byReading[e.Reading] = e.Glyph
			}
		}
	}
	return func(reading string) string {
		if g, ok := byReading[reading]; ok {
			return g
		}
		return reading
	}
}

// mnemonics builds the hint service. Without a configured provider it
// still serves cached hints.
func (d *deps) mnemonics(ctx context.Context) *mnemonic.Service {
	var provider llm.Provider
	if cfg, ok := llm.Resolve(); ok {
		p, err := llm.NewProvider(ctx, cfg, d.store.EventRepo(), d.logger.Named("llm"))
		if err != nil {
			d.logger.Warn("LLM provider unavailable", zap.Error(err))
		} else {
			provider = p
		}
	}
	return mnemonic.NewService(provider, d.store.MnemonicRepo(), d.catalog, mnemonic.DefaultConfig(), d.logger.Named("mnemonic"))
}

// env assembles the TUI environment.
func (d *deps) env(ctx context.Context) *screens.Env {
	themeName := d.cfg.UI.Theme
	if !d.themeFlag {
		themeName = d.preference(ctx, store.PrefTheme, themeName)
	}
	theme.Apply(theme.Parse(themeName))

	dir := d.direction(ctx)
	return &screens.Env{
		Catalog:   d.catalog,
		Engine:    d.engine(dir, d.cfg.Quiz.Count),
		Player:    d.player(),
		Quiz:      d.store.QuizRepo(),
		Prefs:     d.store.PreferenceRepo(),
		Mnemonics: d.mnemonics(ctx),
		Logger:    d.logger,
		Direction: dir,
		Version:   version,
	}
}
