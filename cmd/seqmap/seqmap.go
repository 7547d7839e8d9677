package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/seqmap/seqmap/buildinfo"
	"github.com/seqmap/seqmap/consts"
	"github.com/seqmap/seqmap/datefield"
	"github.com/seqmap/seqmap/indexer"
	"github.com/seqmap/seqmap/logger"
	"github.com/seqmap/seqmap/mapping"
	"github.com/seqmap/seqmap/schema"
)

func main() {
	logger.Info("hi, I am seqmap",
		zap.String("version", buildinfo.Version),
		zap.String("build_time", buildinfo.BuildTime),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := os.Setenv("TZ", "UTC"); err != nil {
		logger.Fatal("can't set timezone to UTC", zap.Error(err))
	}

	kingpin.Version(buildinfo.Version)
	cmd := kingpin.Parse()

	_, _ = maxprocs.Set(maxprocs.Logger(func(tpl string, args ...any) {
		logger.Info(fmt.Sprintf(tpl, args...))
	}))

	provider, err := mapping.New(*flagMapping, mapping.WithUpdatePeriod(*flagUpdatePeriod))
	if err != nil {
		logger.Fatal("load mapping error", zap.Error(err))
	}

	switch cmd {
	case cmdValidate.FullCommand():
		runValidate(provider)
	case cmdResolve.FullCommand():
		runResolve(provider)
	case cmdEncode.FullCommand():
		runEncode(provider)
	case cmdIndex.FullCommand():
		provider.WatchUpdates(ctx)
		runIndex(ctx, provider)
	}
}

func runValidate(p *mapping.Provider) {
	fmt.Println(string(p.Raw().Bytes()))
	logger.Info("schema is valid", zap.Int("fields", p.Schema().Len()))
}

func runResolve(p *mapping.Provider) {
	f := dateFieldFor(p, *flagResolveField)

	now := time.Now()
	if *flagResolveNow != "" {
		var err error
		now, err = time.Parse(time.RFC3339, *flagResolveNow)
		if err != nil {
			logger.Fatal("can't parse now", zap.Error(err))
		}
	}

	for _, expr := range *argResolveExprs {
		ms, err := resolveExpr(f, expr, now)
		if err != nil {
			logger.Fatal("can't resolve expression", zap.String("expr", expr), zap.Error(err))
		}
		fmt.Printf("%s\t%d\t%s\n", expr, ms, f.Format().Print(ms))
	}
}

func resolveExpr(f *datefield.Config, expr string, now time.Time) (int64, error) {
	if *flagResolveUpper {
		r, err := f.RangePredicate("", expr, true, true, now)
		if err != nil {
			return 0, err
		}
		if r.Upper == nil {
			return 0, fmt.Errorf("expression [%s] leaves the bound open", expr)
		}
		return *r.Upper, nil
	}

	r, err := f.TermPredicate(expr, now)
	if err != nil {
		return 0, err
	}
	return *r.Lower, nil
}

func runEncode(p *mapping.Provider) {
	f := dateFieldFor(p, *flagEncodeField)

	for _, value := range *argEncodeValues {
		ms, err := f.CoerceValue(value)
		if err != nil {
			logger.Fatal("can't coerce value", zap.String("value", value), zap.Error(err))
		}
		fmt.Printf("%s\t%d\n", value, ms)
		for _, term := range f.IndexTerms(ms) {
			fmt.Printf("\t%x\n", term)
		}
	}
}

func dateFieldFor(p *mapping.Provider, name string) *datefield.Config {
	if name == "" {
		f, err := datefield.Build("_default_", schema.NodeMap{"type": "date"})
		if err != nil {
			logger.Fatal("can't build default field", zap.Error(err))
		}
		return f
	}

	f, ok := p.Schema().Date(name)
	if !ok {
		logger.Fatal("not a date field", zap.String("field", name))
	}
	return f
}

func runIndex(ctx context.Context, p *mapping.Provider) {
	ix := indexer.New(p,
		indexer.WithMaxDocumentSize(int(*flagIndexMaxSize)),
		indexer.WithAllowedDrift(*flagIndexDrift, *flagIndexFutureDrift),
	)
	defer ix.Close()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, consts.KB), 4*consts.MB)

	indexed, failed := 0, 0
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		d, err := ix.Index(line, time.Now())
		if err != nil {
			failed++
			logger.Error("can't index document", zap.Error(err))
			continue
		}
		indexed++
		printDocument(d)
	}
	if err := scanner.Err(); err != nil {
		logger.Fatal("read error", zap.Error(err))
	}

	logger.Info("done", zap.Int("indexed", indexed), zap.Int("failed", failed))
}

func printDocument(d *indexer.Document) {
	fmt.Printf("%s %s terms=%d\n", d.ID, d.Time.UTC().Format(time.RFC3339Nano), len(d.Terms))
	for _, term := range d.Terms {
		if term.Field == indexer.AllField || term.Field == indexer.ExistsField {
			fmt.Printf("  %s %q boost=%g\n", term.Field, term.Value, term.Boost)
			continue
		}
		fmt.Printf("  %s %x boost=%g\n", term.Field, term.Value, term.Boost)
	}
}
