// Command gloss induces a bilingual n-gram lexicon from two verse-aligned
// corpora and glosses text with it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/JuniperGloss/core/corpus"
	"github.com/FocuswithJustin/JuniperGloss/core/gloss"
	"github.com/FocuswithJustin/JuniperGloss/core/lexicon"
	"github.com/FocuswithJustin/JuniperGloss/core/score"
	"github.com/FocuswithJustin/JuniperGloss/core/sqlite"
	"github.com/FocuswithJustin/JuniperGloss/internal/logging"
	"github.com/FocuswithJustin/JuniperGloss/internal/validation"
)

const version = "0.1.0"

// Globals are flags accepted by every command.
type Globals struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"GLOSS_LOG_LEVEL" help:"Log level (${enum})"`
	LogFormat string `name:"log-format" default:"json" enum:"json,text" help:"Log format on stderr (${enum})"`
}

// CLI defines the command-line interface for gloss.
type CLI struct {
	Globals `embed:""`

	Run       RunCmd       `cmd:"" default:"withargs" help:"Induce a lexicon and gloss a text file (default)"`
	Induce    InduceCmd    `cmd:"" help:"Induce a lexicon and save it to SQLite"`
	Translate TranslateCmd `cmd:"" help:"Gloss a text file with a saved lexicon"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// TrainFlags configure corpus loading and induction.
type TrainFlags struct {
	Format    string `default:"auto" enum:"auto,text,tsv,osis" help:"Corpus format (${enum})"`
	Lowercase bool   `help:"Case-fold corpora and input text"`
	Intersect bool   `help:"Train on the verses both corpora share instead of rejecting mismatched corpora"`
	CacheDir  string `name:"cache-dir" env:"GLOSS_CACHE_DIR" type:"path" help:"Encoded corpus cache directory (default: user cache dir)"`
	NoCache   bool   `name:"no-cache" help:"Disable the encoded corpus cache"`
	Scorer    string `default:"${default_scorer}" enum:"${scorers}" help:"Association scorer (${enum})"`
	Workers   int    `default:"0" help:"Induction workers (0 = all CPUs)"`
}

// RunCmd induces a lexicon and glosses a text in one go.
type RunCmd struct {
	Source string `arg:"" help:"Source language corpus" type:"existingfile"`
	Target string `arg:"" help:"Target language corpus" type:"existingfile"`
	Text   string `arg:"" help:"Target language text to gloss, one line at a time ('-' for stdin)"`

	TrainFlags `embed:""`
	KeepSentinels bool `name:"keep-sentinels" help:"Print glosses with their # boundary markers"`
}

// InduceCmd induces a lexicon and saves it.
type InduceCmd struct {
	Source string `arg:"" help:"Source language corpus" type:"existingfile"`
	Target string `arg:"" help:"Target language corpus" type:"existingfile"`
	Out    string `short:"o" required:"" help:"Lexicon database to write" type:"path"`

	TrainFlags `embed:""`
}

// TranslateCmd glosses text with a saved lexicon.
type TranslateCmd struct {
	Lexicon string `short:"l" required:"" help:"Lexicon database" type:"existingfile"`
	Text    string `arg:"" help:"Target language text to gloss ('-' for stdin)"`

	KeepSentinels bool `name:"keep-sentinels" help:"Print glosses with their # boundary markers"`
}

// VersionCmd prints version information.
type VersionCmd struct{}

// runEnv carries what commands need beyond their flags.
type runEnv struct {
	ctx    context.Context
	stdin  io.Reader
	stdout io.Writer
}

func (f *TrainFlags) config(source, target string) gloss.Config {
	cfg := gloss.Config{
		SourcePath: source,
		TargetPath: target,
		Load: corpus.LoadOptions{
			Format:     corpus.Format(f.Format),
			Normalizer: corpus.Normalizer{Lowercase: f.Lowercase},
		},
		Intersect: f.Intersect,
		Scorer:    f.Scorer,
		Workers:   f.Workers,
	}
	if !f.NoCache {
		cfg.CacheDir = f.CacheDir
		if cfg.CacheDir == "" {
			if dir, err := os.UserCacheDir(); err == nil {
				cfg.CacheDir = filepath.Join(dir, "juniper-gloss")
			}
		}
	}
	return cfg
}

func (c *RunCmd) Run(env *runEnv) error {
	if err := checkCorpora(c.Source, c.Target); err != nil {
		return err
	}
	cfg := c.TrainFlags.config(c.Source, c.Target)
	res, err := gloss.BuildLexicon(env.ctx, cfg)
	if err != nil {
		return err
	}
	d := gloss.NewDecoder(res.Lexicon, gloss.DecoderOptions{
		Normalizer:    cfg.Load.Normalizer,
		KeepSentinels: c.KeepSentinels,
	})
	return decodeInput(env, d, c.Text)
}

func (c *InduceCmd) Run(env *runEnv) error {
	if err := checkCorpora(c.Source, c.Target); err != nil {
		return err
	}
	if err := validation.ValidatePath(c.Out); err != nil {
		return err
	}
	cfg := c.TrainFlags.config(c.Source, c.Target)
	res, err := gloss.BuildLexicon(env.ctx, cfg)
	if err != nil {
		return err
	}

	meta := lexicon.Metadata{
		"source":    c.Source,
		"target":    c.Target,
		"format":    c.Format,
		"lowercase": strconv.FormatBool(c.Lowercase),
		"intersect": strconv.FormatBool(c.Intersect),
		"scorer":    c.Scorer,
		"verses":    strconv.Itoa(res.Verses),
		"run_id":    logging.GetRunID(env.ctx),
		"driver":    sqlite.DriverName(),
		"created":   time.Now().UTC().Format(time.RFC3339),
		"version":   version,
	}
	if err := lexicon.SaveFile(env.ctx, c.Out, res.Lexicon, meta); err != nil {
		return err
	}
	logging.InfoContext(env.ctx, "lexicon saved", "path", c.Out, "entries", res.Lexicon.Len())
	fmt.Fprintf(env.stdout, "Saved %d entries to %s\n", res.Lexicon.Len(), c.Out)
	return nil
}

func (c *TranslateCmd) Run(env *runEnv) error {
	if err := validation.CheckLexiconFile(c.Lexicon); err != nil {
		return err
	}
	lex, meta, err := lexicon.LoadFile(env.ctx, c.Lexicon)
	if err != nil {
		return err
	}
	lowercase, _ := strconv.ParseBool(meta["lowercase"])
	logging.InfoContext(env.ctx, "lexicon loaded",
		"path", c.Lexicon, "entries", lex.Len(), "trained_by", meta["run_id"])

	d := gloss.NewDecoder(lex, gloss.DecoderOptions{
		Normalizer:    corpus.Normalizer{Lowercase: lowercase},
		KeepSentinels: c.KeepSentinels,
	})
	return decodeInput(env, d, c.Text)
}

func (c *VersionCmd) Run(env *runEnv) error {
	fmt.Fprintf(env.stdout, "gloss version %s (sqlite: %s)\n", version, sqlite.DriverType())
	return nil
}

func checkCorpora(paths ...string) error {
	for _, p := range paths {
		if err := validation.CheckCorpusFile(p); err != nil {
			return err
		}
	}
	return nil
}

// decodeInput glosses the file at path, or stdin for "-", to stdout.
func decodeInput(env *runEnv, d *gloss.Decoder, path string) error {
	in := env.stdin
	if path != "-" {
		if err := validation.ValidatePath(path); err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open text: %w", err)
		}
		defer f.Close()
		in = f
	}

	start := time.Now()
	if err := d.Decode(env.ctx, in, env.stdout); err != nil {
		return err
	}
	stats := d.Stats()
	logging.Stage(env.ctx, "decode", time.Since(start),
		"distinct_tokens", stats.Misses, "memo_hit_rate", stats.HitRate())
	return nil
}

func (g *Globals) initLogging() error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("gloss"),
		kong.Description("Juniper Gloss - n-gram lexicon induction from verse-aligned corpora"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"scorers":        strings.Join(score.Names(), ","),
			"default_scorer": score.Default,
		},
	}
	return kong.New(cli, append(opts, options...)...)
}

// execute runs the parsed command with a fresh run ID.
func execute(kctx *kong.Context, cli *CLI, stdin io.Reader, stdout io.Writer) error {
	if err := cli.initLogging(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logging.WithRunID(ctx, logging.NewRunID())
	logging.DebugContext(ctx, "command", "name", kctx.Command())

	return kctx.Run(&runEnv{ctx: ctx, stdin: stdin, stdout: stdout})
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = execute(kctx, &cli, os.Stdin, os.Stdout)
	kctx.FatalIfErrorf(err)
}
