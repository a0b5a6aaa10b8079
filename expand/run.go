// Package expand runs grid expansion over style sheets taken from files,
// directories, zip archives or standard input.
package expand

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"gridder/archive"
	"gridder/common"
	"gridder/css"
	"gridder/grid"
	"gridder/state"
)

// StdinSource is the SOURCE argument requesting standard input.
const StdinSource = "-"

const defaultExtension = ".css"

// sourceExtensions are extensions of style sheets picked from directories
// and archives.
var sourceExtensions = []string{".css", ".pcss"}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("expand")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	cfg := env.GridConfig()
	if n := int(cmd.Int("columns")); n != 0 {
		cfg.Columns = n
	}
	if m := cmd.String("mode"); len(m) > 0 {
		if mode, err := common.ParseMode(m); err != nil {
			log.Warn("Unknown grid mode requested, using configured one", zap.String("mode", m), zap.Stringer("using", cfg.Mode))
		} else {
			cfg.Mode = mode
		}
	}
	env.Overwrite = cmd.Bool("overwrite")

	d, err := newDriver(env, cfg, log)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst),
		zap.Int("columns", d.engine.Config().Columns), zap.Stringer("mode", d.engine.Config().Mode))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return d.process(ctx, src, dst)
}

// driver expands sources one by one with the same engine.
type driver struct {
	env    *state.LocalEnv
	log    *zap.Logger
	parser *css.Parser
	engine *grid.Engine
	ext    string
	banner *template.Template
}

func newDriver(env *state.LocalEnv, cfg grid.Config, log *zap.Logger) (*driver, error) {
	ext := defaultExtension
	var text string
	if env.Cfg != nil {
		if len(env.Cfg.Output.Extension) > 0 {
			ext = env.Cfg.Output.Extension
		}
		text = env.Cfg.Output.Banner
	}
	tmpl, err := parseBanner(text)
	if err != nil {
		return nil, err
	}
	return &driver{
		env:    env,
		log:    log,
		parser: css.NewParser(log),
		engine: grid.New(cfg, log),
		ext:    ext,
		banner: tmpl,
	}, nil
}

// process determines what src is: standard input, a directory, a file or a
// path inside zip archive ("styles.zip/theme"), and expands accordingly.
func (d *driver) process(ctx context.Context, src, dst string) error {
	if src == StdinSource {
		return d.processStdin(ctx, dst)
	}

	for head := filepath.Clean(src); ; head = filepath.Dir(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		fi, err := os.Stat(head)
		if err != nil {
			// does not exist - probably path in archive
			if parent := filepath.Dir(head); parent == head {
				break
			}
			continue
		}

		switch {
		case !fi.Mode().IsDir() && !fi.Mode().IsRegular():
			return fmt.Errorf("unexpected path mode for (%s)", head)

		case fi.Mode().IsRegular() && isArchive(head):
			inner := strings.TrimPrefix(strings.TrimPrefix(filepath.Clean(src), head), string(filepath.Separator))
			return d.processArchive(ctx, head, filepath.ToSlash(inner), dst)

		case head != filepath.Clean(src):
			// directories and plain files cannot have a tail
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))

		case fi.Mode().IsDir():
			return d.processDir(ctx, head, dst)

		default:
			return d.processFile(ctx, head, dst)
		}
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

func (d *driver) processStdin(ctx context.Context, dst string) error {
	data, err := io.ReadAll(d.env.Stdin)
	if err != nil {
		return fmt.Errorf("unable to read standard input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := d.expand(data, "stdin"+d.ext)
	if err != nil {
		return err
	}
	return d.deliver(result, "stdin", dst)
}

func (d *driver) processFile(ctx context.Context, file, dst string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("unable to read source: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	name := filepath.Base(file)
	result, err := d.expand(data, name)
	if err != nil {
		return err
	}
	return d.deliver(result, name, dst)
}

// deliver writes result of a single source: to standard output when there is
// no destination, into destination directory when it exists, to destination
// file otherwise.
func (d *driver) deliver(result []byte, name, dst string) error {
	if len(dst) == 0 {
		if _, err := d.env.Stdout.Write(result); err != nil {
			return fmt.Errorf("unable to write result: %w", err)
		}
		return nil
	}
	if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		dst = filepath.Join(dst, d.outputName(name))
	}
	return d.write(result, dst)
}

// processDir expands every style sheet under dir keeping directory structure.
// Without destination results are put next to their sources.
func (d *driver) processDir(ctx context.Context, dir, dst string) error {
	if len(dst) == 0 {
		dst = dir
	}

	var sources []string
	err := filepath.WalkDir(dir, func(path string, de os.DirEntry, err error) error {
		if err != nil {
			d.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if de.Type().IsRegular() && isStylesheet(path) {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to walk directory: %w", err)
	}
	sort.Sort(natural.StringSlice(sources))

	if len(sources) == 0 {
		d.log.Debug("Nothing to process", zap.String("dir", dir))
	}

	var errs error
	for _, path := range sources {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		target := filepath.Join(dst, d.outputName(rel))
		if samePath(path, target) {
			d.log.Warn("Skipping style sheet which would be replaced by its own result, specify destination or another output extension",
				zap.String("file", path))
			continue
		}
		if err := d.expandFile(path, rel, target); err != nil {
			d.log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", rel, err))
		}
	}
	return errs
}

// processArchive expands style sheets stored in archive under prefix.
// Without destination results are put into the directory of the archive.
func (d *driver) processArchive(ctx context.Context, arc, prefix, dst string) error {
	if len(dst) == 0 {
		dst = filepath.Dir(arc)
	}

	count := 0
	var errs error
	err := archive.Walk(arc, prefix, isStylesheet, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++

		if err := d.expandEntry(f, filepath.Join(dst, filepath.FromSlash(d.outputName(f.Name)))); err != nil {
			d.log.Error("Unable to process file in archive", zap.String("archive", arc), zap.String("file", f.Name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f.Name, err))
		}
		return nil
	})
	if err == nil && count == 0 {
		d.log.Debug("Nothing to process", zap.String("archive", arc), zap.String("path", prefix))
	}
	return multierr.Append(err, errs)
}

func (d *driver) expandFile(file, rel, target string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	result, err := d.expand(data, filepath.ToSlash(rel))
	if err != nil {
		return err
	}
	return d.write(result, target)
}

func (d *driver) expandEntry(f *zip.File, target string) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	result, err := d.expand(data, f.Name)
	if err != nil {
		return err
	}
	return d.write(result, target)
}

// expand runs all passes over style sheet data. Parsing problems are
// reported, never fatal. Source and result go to debug report under name.
func (d *driver) expand(data []byte, name string) ([]byte, error) {
	d.log.Debug("Expanding", zap.String("source", name))
	d.env.Rpt.StoreData(path.Join("source", name), data)

	text, from, err := toUTF8(data)
	if err != nil {
		return nil, err
	}

	sheet := d.parser.Parse(text, name)
	for _, w := range sheet.Warnings {
		d.log.Warn("Problem in style sheet", zap.String("source", name), zap.String("problem", w))
	}
	if len(from) > 0 {
		d.log.Debug("Style sheet converted to UTF-8", zap.String("source", name), zap.String("from", from))
		markUTF8(sheet)
	}
	d.engine.Expand(sheet)

	head, err := banner(d.banner, name, d.engine.Config())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := sheet.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("unable to serialize style sheet: %w", err)
	}
	result := withBanner(buf.Bytes(), head)

	d.env.Rpt.StoreData(path.Join("result", name), result)
	return result, nil
}

func (d *driver) write(result []byte, target string) error {
	if _, err := os.Stat(target); err == nil && !d.env.Overwrite {
		return fmt.Errorf("output file already exists: %s", target)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(target, result, 0644); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	d.log.Info("Style sheet expanded", zap.String("to", target))
	return nil
}

// samePath reports whether target names src itself.
func samePath(src, target string) bool {
	if filepath.Clean(src) == filepath.Clean(target) {
		return true
	}
	si, err := os.Stat(src)
	if err != nil {
		return false
	}
	ti, err := os.Stat(target)
	if err != nil {
		return false
	}
	return os.SameFile(si, ti)
}

// outputName replaces source extension with configured one.
func (d *driver) outputName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + d.ext
}

func isStylesheet(name string) bool {
	return slices.Contains(sourceExtensions, strings.ToLower(path.Ext(filepath.ToSlash(name))))
}

// isArchive checks zip signature.
func isArchive(file string) bool {
	f, err := os.Open(file)
	if err != nil {
		return false
	}
	defer f.Close()

	// enough for any signature filetype knows about
	head := make([]byte, 262)
	n, _ := io.ReadFull(f, head)
	return filetype.Is(head[:n], "zip")
}
