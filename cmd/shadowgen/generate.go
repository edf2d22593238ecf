package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/grimforge/shadowgen/internal/config"
	"github.com/grimforge/shadowgen/internal/game/character"
	"github.com/grimforge/shadowgen/internal/game/dice"
	"github.com/grimforge/shadowgen/internal/game/party"
	"github.com/grimforge/shadowgen/internal/game/ruleset"
	"github.com/grimforge/shadowgen/internal/observability"
	"github.com/grimforge/shadowgen/internal/sheet"
)

var (
	partySize     int
	uniqueClasses bool
	seed          uint64
	outPath       string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a party of first-level characters",
	Long: `Generate rolls a full party of Shadowdark characters and writes their
markdown sheets to stdout or a file. A nonzero seed reproduces a run exactly.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&partySize, "size", 6, "number of characters to generate")
	generateCmd.Flags().BoolVar(&uniqueClasses, "unique", false, "forbid repeated classes within the party")
	generateCmd.Flags().Uint64Var(&seed, "seed", 0, "dice seed; 0 uses crypto entropy")
	generateCmd.Flags().StringVar(&outPath, "out", "", "output file; empty writes to stdout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	catalog, err := ruleset.Load()
	if err != nil {
		return fmt.Errorf("loading content catalog: %w", err)
	}
	logger.Info("content catalog loaded",
		zap.Int("classes", catalog.ClassCount()),
	)

	src := dice.NewCryptoSource()
	if cfg.Generator.Seed != 0 {
		src = dice.NewSeededSource(cfg.Generator.Seed)
		logger.Info("using seeded dice", zap.Uint64("seed", cfg.Generator.Seed))
	}
	roller := dice.NewLoggedRoller(src, logger)

	gen := character.NewGenerator(catalog, roller, logger)
	p, err := party.NewBuilder(gen, logger).Build(cfg.Generator.PartySize, cfg.Generator.UniqueClasses)
	if err != nil {
		return err
	}

	markdown := sheet.RenderParty(p)
	if cfg.Output.Path != "" {
		if err := os.WriteFile(cfg.Output.Path, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.Output.Path, err)
		}
	} else if _, err := fmt.Fprint(cmd.OutOrStdout(), markdown); err != nil {
		return fmt.Errorf("writing sheets: %w", err)
	}

	logger.Info("party generated",
		zap.String("party_id", p.ID.String()),
		zap.Int("size", len(p.Members)),
		zap.String("output", outputName(cfg.Output.Path)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// loadConfig layers the optional config file over defaults, then binds the
// command flags on top so explicitly set flags win.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	for key, name := range map[string]string{
		"generator.party_size":     "size",
		"generator.unique_classes": "unique",
		"generator.seed":           "seed",
		"output.path":              "out",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return config.Config{}, fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	for key, name := range map[string]string{
		"logging.level":  "log-level",
		"logging.format": "log-format",
	} {
		if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			return config.Config{}, fmt.Errorf("binding --%s: %w", name, err)
		}
	}

	return config.LoadFromViper(v)
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
