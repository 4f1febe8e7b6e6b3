package fix_cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/walteh/phpfix/pkg/config"
	"github.com/walteh/phpfix/pkg/diff"
	"github.com/walteh/phpfix/pkg/finder"
	"github.com/walteh/phpfix/pkg/fixer"
	"github.com/walteh/phpfix/pkg/rules"
	"github.com/walteh/phpfix/pkg/style"
	"github.com/walteh/phpfix/pkg/tokenizer"
	"gitlab.com/tozd/go/errors"
)

// Probed in order when --config is not given.
var defaultConfigFiles = []string{"phpfix.hcl", "phpfix.yaml", "phpfix.yml"}

type Handler struct {
	configPath string
	check      bool
	debug      bool

	out io.Writer
}

func NewFixCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "rewrite PHP files in place (or report with --check)",
	}

	cmd.Flags().StringVar(&me.configPath, "config", "", "path to a phpfix config file")
	cmd.Flags().BoolVar(&me.check, "check", false, "report pending changes without writing files")
	cmd.Flags().BoolVar(&me.debug, "debug", false, "enable debug logging")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.out = cmd.OutOrStdout()
		return me.Run(cmd.Context(), args)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, args []string) error {
	level := zerolog.InfoLevel
	if me.debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)

	fsys := afero.NewOsFs()

	cfg, err := me.loadConfig(fsys)
	if err != nil {
		return err
	}

	registry, err := rules.Registry()
	if err != nil {
		return err
	}

	fixers, err := cfg.EnabledFixers(registry)
	if err != nil {
		return err
	}

	runner := fixer.NewRunner(fixers)
	logger.Debug().Stringer("run_id", runner.RunID()).Int("rules", len(fixers)).Msg("starting run")

	files, err := me.collectFiles(ctx, fsys, cfg, args)
	if err != nil {
		return err
	}

	var errs *multierror.Error
	pending := 0
	for _, file := range files {
		changed, err := me.fixFile(ctx, fsys, runner, file)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if changed {
			pending++
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}
	if me.check && pending > 0 {
		return errors.Errorf("%d file(s) need fixing", pending)
	}
	return nil
}

func (me *Handler) loadConfig(fsys afero.Fs) (*config.Config, error) {
	path := me.configPath
	if path == "" {
		for _, candidate := range defaultConfigFiles {
			if ok, _ := afero.Exists(fsys, candidate); ok {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(fsys, path)
}

func (me *Handler) collectFiles(ctx context.Context, fsys afero.Fs, cfg *config.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	fndr := finder.NewDefaultFinder(fsys, cfg.Paths.Include, cfg.Paths.Exclude)

	var files []string
	for _, arg := range args {
		info, err := fsys.Stat(arg)
		if err != nil {
			return nil, errors.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := fndr.Find(ctx, arg)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func (me *Handler) fixFile(ctx context.Context, fsys afero.Fs, runner *fixer.Runner, path string) (bool, error) {
	logger := zerolog.Ctx(ctx)

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return false, errors.Errorf("reading %s: %w", path, err)
	}

	stream, err := tokenizer.Tokenize(string(data))
	if err != nil {
		return false, errors.Errorf("tokenizing %s: %w", path, err)
	}

	conv, err := style.Resolve(path)
	if err != nil {
		logger.Warn().Err(err).Str("file", path).Msg("editorconfig resolution failed, using defaults")
	}
	fileRunner := runner
	if !conv.TrimTrailingWhitespace {
		fileRunner = runner.Without("no_trailing_whitespace")
	}

	changes, err := fileRunner.Fix(ctx, path, stream)
	if err != nil {
		return false, err
	}

	out := conv.Apply(stream.Render())
	if out == string(data) {
		return false, nil
	}

	if me.check {
		fmt.Fprintf(me.out, "--- %s (%d rule(s) applied)\n%s\n", path, len(changes), diff.Strings(string(data), out))
		return true, nil
	}

	if err := me.writeFile(fsys, path, out); err != nil {
		return false, err
	}
	logger.Info().Str("file", path).Int("changes", len(changes)).Msg("fixed")
	return true, nil
}

func (me *Handler) writeFile(fsys afero.Fs, path, content string) (retErr error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return errors.Errorf("stat %s: %w", path, err)
	}

	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_TRUNC, info.Mode())
	if err != nil {
		return errors.Errorf("opening %s for writing: %w", path, err)
	}
	defer func() {
		retErr = multierr.Append(retErr, f.Close())
	}()

	if _, err := f.WriteString(content); err != nil {
		return errors.Errorf("writing %s: %w", path, err)
	}
	return nil
}
