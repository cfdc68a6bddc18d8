package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/parsel"
	"github.com/fwojciec/parsel/etree"
	"github.com/fwojciec/parsel/exec"
	"github.com/fwojciec/parsel/fs"
	"github.com/fwojciec/parsel/html"
	"github.com/fwojciec/parsel/htmltomarkdown"
	parselhttp "github.com/fwojciec/parsel/http"
	"github.com/fwojciec/parsel/prompt"
	"github.com/fwojciec/parsel/readability"
	"github.com/fwojciec/parsel/rod"
	parselslog "github.com/fwojciec/parsel/slog"
	"github.com/fwojciec/parsel/sqlite"
	"github.com/fwojciec/parsel/term"
	"github.com/fwojciec/parsel/toml"
	"github.com/fwojciec/parsel/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by the interactive loop.
	Stdin io.Reader

	// CacheDir roots the default history and cache file paths.
	CacheDir string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:    os.Stdin,
		CacheDir: toml.DefaultCacheDir(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("parsel"),
		kong.Description("Interactive CSS and XPath selector shell"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel(cli.Verbose)}))

	configPath := cli.Config
	if configPath == "" {
		configPath = toml.DefaultPath()
	}
	cfg, err := toml.Load(configPath, m.CacheDir)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", configPath, err)
	}
	applyFlags(cfg, cli)

	renderer, closeCache, err := newRenderer(ctx, cfg, cli, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	r := parselslog.NewLoggingRenderer(renderer, logger)
	if err := r.Open(ctx); err != nil {
		if cli.Browser || cli.Headless {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		}
		return fmt.Errorf("failed to start renderer: %w", err)
	}
	defer r.Close()

	session, err := prompt.NewSession(cfg)
	if err != nil {
		return err
	}

	reader := term.NewReader(m.Stdin, stdout)
	reader.Color = cfg.Color

	session.Parser = parselslog.NewLoggingParser(html.NewParser(), logger)
	session.Renderer = r
	session.Processors.Register("pretty", parsel.PrettyFactory(html.NewFormatter(), etree.NewFormatter()))
	session.Processors.Register("md", parsel.MarkdownFactory(htmltomarkdown.NewConverter()))
	session.Reader = reader
	session.Confirmer = reader
	session.Clipboard = exec.NewClipboard()
	session.Opener = exec.NewOpener()
	session.Temp = fs.NewTempWriter("")
	session.Extractor = parsel.Extractors{trafilatura.NewExtractor(), readability.NewExtractor()}
	session.Converter = htmltomarkdown.NewConverter()
	session.Shells = exec.DefaultShells(cfg.PreferredShell)
	session.HistoryCSS = fs.NewHistory(cfg.HistoryFileCSS)
	session.HistoryXPath = fs.NewHistory(cfg.HistoryFileXPath)
	session.Out = stdout
	session.Err = stderr
	session.Logger = logger

	if err := session.Load(ctx, cli.Target); err != nil {
		return fmt.Errorf("loading %s: %w", cli.Target, err)
	}

	session.Prime(ctx, cfg.InitialInput)

	switch {
	case cli.CSSExpr != "":
		return session.Compile(parsel.ModeCSS, cli.CSSExpr)
	case cli.XPathExpr != "":
		return session.Compile(parsel.ModeXPath, cli.XPathExpr)
	}
	return session.Run(ctx, cli.Embed)
}

// applyFlags overrides configuration values with command-line flags.
func applyFlags(cfg *parsel.Config, cli *CLI) {
	if cli.NoColor {
		cfg.Color = false
	}
	if cli.ViMode {
		cfg.ViMode = true
	}
	if cli.XPath {
		cfg.StartMode = parsel.ModeXPath
	}
	if cli.Shell != "" {
		cfg.PreferredShell = cli.Shell
	}
	if len(cli.Input) > 0 {
		cfg.InitialInput = cli.Input
	}
	if cfg.Requests.Headers == nil {
		cfg.Requests.Headers = map[string]string{}
	}
	for k, v := range cli.Header {
		cfg.Requests.Headers[k] = v
	}
}

// newRenderer picks the renderer for the target. The returned func releases
// the response cache, if one was opened.
func newRenderer(ctx context.Context, cfg *parsel.Config, cli *CLI, logger *slog.Logger) (parsel.Renderer, func(), error) {
	noop := func() {}

	if fs.IsLocal(cli.Target) {
		return fs.NewRenderer(), noop, nil
	}

	if cli.Browser || cli.Headless {
		return rod.NewRenderer(
			rod.WithHeadless(cli.Headless),
			rod.WithHeaders(cfg.Requests.Headers),
			rod.WithWaitCSS(cli.WaitCSS),
			rod.WithWaitXPath(cli.WaitXPath),
		), noop, nil
	}

	opts := []parselhttp.Option{
		parselhttp.WithHeaders(cfg.Requests.Headers),
		parselhttp.WithRateLimit(cfg.Requests.RateLimit),
		parselhttp.WithLogger(logger),
	}
	if !cli.Cache {
		return parselhttp.NewRenderer(opts...), noop, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Requests.CacheFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating cache directory: %w", err)
	}
	db := sqlite.NewDB(cfg.Requests.CacheFile)
	if err := db.Open(); err != nil {
		return nil, nil, fmt.Errorf("opening cache %s: %w", cfg.Requests.CacheFile, err)
	}
	cache := sqlite.NewCache(db, cfg.Requests.CacheExpire)
	if n, err := cache.Purge(ctx); err != nil {
		logger.Warn("cache purge failed", "err", err)
	} else if n > 0 {
		logger.Info("purged expired responses", "count", n)
	}
	opts = append(opts, parselhttp.WithCache(cache))
	return parselhttp.NewRenderer(opts...), func() { _ = db.Close() }, nil
}

func logLevel(verbose int) slog.Level {
	switch {
	case verbose >= 2:
		return slog.LevelDebug
	case verbose == 1:
		return slog.LevelInfo
	}
	return slog.LevelError
}
