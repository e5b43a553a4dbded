package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cptaffe/pridemix/internal/config"
	"github.com/cptaffe/pridemix/internal/logger"
	"github.com/cptaffe/pridemix/internal/render"
)

func main() {
	var p params
	flag.StringVar(&p.catalog, "catalog", "", "flag catalog JSON file (default: built-in catalog)")
	flag.StringVar(&p.assets, "assets", "", "directory holding symbol images")
	flag.StringVar(&p.format, "format", "svg", "output format: svg or png")
	flag.StringVar(&p.out, "out", "-", "output file, - for stdout")
	flag.StringVar(&p.other, "other", "", "dim the flag if it does not mix well with this one")
	flag.BoolVar(&p.lucky, "lucky", false, "mix a random compatible pair")
	flag.BoolVar(&p.list, "list", false, "list the catalog and exit")
	configFile := flag.String("config", "", "render options file")
	verbose := flag.Bool("v", false, "verbose logging")

	cli := render.DefaultOptions()
	flag.BoolVar(&cli.ShowSymbols, "symbols", cli.ShowSymbols, "draw flag symbols")
	flag.BoolVar(&cli.ReduceStrain, "reduce-strain", cli.ReduceStrain, "tone colours down")
	flag.Float64Var(&cli.Softness, "softness", cli.Softness, fmt.Sprintf("gradient softness, 0 to %d", render.MaxSoftness))
	flag.Float64Var(&cli.Blur, "blur", cli.Blur, "blur radius")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] FLAG [FLAG]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	p.names = flag.Args()

	var err error
	var l *zap.Logger
	if *verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck

	p.opts = render.DefaultOptions()
	if *configFile != "" {
		data, err := os.ReadFile(*configFile)
		if err != nil {
			l.Fatal("read config", zap.String("path", *configFile), zap.Error(err))
		}
		p.opts, err = config.Parse(string(data), p.opts)
		if err != nil {
			l.Fatal("parse config", zap.String("path", *configFile), zap.Error(err))
		}
		l.Debug("loaded config", zap.String("path", *configFile), zap.Any("options", p.opts))
	}
	// Flags given on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "symbols":
			p.opts.ShowSymbols = cli.ShowSymbols
		case "reduce-strain":
			p.opts.ReduceStrain = cli.ReduceStrain
		case "softness":
			p.opts.Softness = cli.Softness
		case "blur":
			p.opts.Blur = cli.Blur
		}
	})
	if err := p.opts.Validate(); err != nil {
		l.Fatal("invalid options", zap.Error(err))
	}

	seed := uint64(time.Now().UnixNano())
	p.rand = rand.New(rand.NewPCG(seed, seed>>32))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, l)

	if err := run(ctx, p, os.Stdout); err != nil {
		l.Fatal("pridemix", zap.Error(err))
	}
}
