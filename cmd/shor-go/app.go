package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/hsiuhsiu/shor-go/pkg/shor"
	"github.com/hsiuhsiu/shor-go/pkg/shor/attack"
	"github.com/hsiuhsiu/shor-go/pkg/shor/contfrac"
	"github.com/hsiuhsiu/shor-go/pkg/shor/logging"
	"github.com/hsiuhsiu/shor-go/pkg/shor/oracle"
	"github.com/hsiuhsiu/shor-go/pkg/shor/period"
)

const (
	oracleExact  = "exact"
	oracleRandom = "random"
)

func newApp(ctx context.Context, stdout, stderr io.Writer) *cli.App {
	myApp := cli.NewApp()
	myApp.Name = "shor-go"
	myApp.Usage = "break small RSA instances by period finding"
	myApp.Version = shor.WrapperVersion()
	myApp.Writer = stdout
	myApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: "config from json file, which will override the defaults",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "trace level: debug, info, warn, error",
		},
		cli.StringFlag{
			Name:  "log-format",
			Value: "text",
			Usage: "trace format: text, json",
		},
		cli.BoolFlag{
			Name:  "redact",
			Usage: "redact the private exponent in trace output",
		},
	}

	modulusFlag := cli.Int64Flag{Name: "n", Value: 55, Usage: "RSA modulus"}
	seedFlag := cli.Int64Flag{Name: "seed", Usage: "random seed, 0 picks one from the clock"}
	oracleFlag := cli.StringFlag{Name: "oracle", Value: oracleExact, Usage: "oracle stand-in: exact, random"}

	myApp.Commands = []cli.Command{
		{
			Name:  "break",
			Usage: "encrypt a message and recover it",
			Flags: []cli.Flag{
				modulusFlag,
				cli.Int64Flag{Name: "e", Value: 17, Usage: "public exponent"},
				cli.Int64Flag{Name: "m", Value: 9, Usage: "message to encrypt"},
				cli.IntFlag{Name: "attempts", Value: 1, Usage: "random bases to try on the factoring path"},
				seedFlag,
				oracleFlag,
			},
			Action: func(c *cli.Context) error {
				return runBreak(ctx, c, stdout, stderr)
			},
		},
		{
			Name:  "period",
			Usage: "recover the period of a base",
			Flags: []cli.Flag{
				modulusFlag,
				cli.Int64Flag{Name: "a", Value: 4, Usage: "base"},
				seedFlag,
				oracleFlag,
			},
			Action: func(c *cli.Context) error {
				return runPeriod(ctx, c, stdout, stderr)
			},
		},
		{
			Name:  "table",
			Usage: "print a^x mod n for x = 1..upto",
			Flags: []cli.Flag{
				modulusFlag,
				cli.Int64Flag{Name: "a", Value: 4, Usage: "base"},
				cli.Int64Flag{Name: "upto", Value: 100, Usage: "last exponent"},
			},
			Action: func(c *cli.Context) error {
				return runTable(c, stdout)
			},
		},
	}
	return myApp
}

type session struct {
	cfg    Config
	logger logging.Logger
	seed   int64
}

func setup(c *cli.Context, stderr io.Writer) (*session, error) {
	cfg := defaultConfig()
	if path := c.GlobalString("config"); path != "" {
		if err := parseJSONConfig(&cfg, path); err != nil {
			return nil, errors.Wrap(err, "parseJSONConfig()")
		}
	}
	applyFlags(&cfg, c)

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	handler, err := logging.NewHandler(stderr, cfg.LogFormat, level)
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &session{cfg: cfg, logger: logging.New(slog.New(handler)), seed: seed}, nil
}

func (rt *session) newOracle() (oracle.Oracle, error) {
	switch rt.cfg.Oracle {
	case oracleExact:
		return oracle.NewExact(nil), nil
	case oracleRandom:
		return oracle.NewExact(rand.New(rand.NewSource(rt.seed + 1))), nil
	default:
		return nil, errors.Errorf("unknown oracle %q", rt.cfg.Oracle)
	}
}

func runBreak(ctx context.Context, c *cli.Context, stdout, stderr io.Writer) error {
	rt, err := setup(c, stderr)
	if err != nil {
		return err
	}
	o, err := rt.newOracle()
	if err != nil {
		return err
	}
	b, err := attack.New(o, shor.Config{BaseAttempts: rt.cfg.Attempts, RedactExponent: rt.cfg.Redact},
		attack.WithSource(rand.New(rand.NewSource(rt.seed))),
		attack.WithLogger(rt.logger.With("seed", rt.seed)))
	if err != nil {
		return errors.Wrap(err, "attack.New()")
	}

	res, err := b.Run(ctx, rt.cfg.N, rt.cfg.E, rt.cfg.Message)
	if res != nil {
		fmt.Fprintf(stdout, "N = %d, e = %d, message = %d\n", res.N, res.E, res.Message)
		fmt.Fprintf(stdout, "ciphertext: %d\n", res.Ciphertext)
		fmt.Fprintf(stdout, "strategy: %s (attempts: %d)\n", res.Strategy, res.Attempts)
		if res.Strategy == attack.StrategyFactoring {
			fmt.Fprintf(stdout, "base: %d\n", res.Base)
		}
		if res.Period != 0 {
			fmt.Fprintf(stdout, "period: %d\n", res.Period)
		}
	}
	if err != nil {
		return errors.Wrap(err, "break")
	}
	if res.Key.P != 0 {
		fmt.Fprintf(stdout, "factors: %d x %d\n", res.Key.P, res.Key.Q)
	}
	if rt.cfg.Redact {
		fmt.Fprintf(stdout, "private exponent: %s\n", logging.Placeholder())
	} else {
		fmt.Fprintf(stdout, "private exponent: %d (mod %d)\n", res.Key.D, res.Key.Order)
	}
	fmt.Fprintf(stdout, "recovered message: %d\n", res.Recovered)
	return nil
}

func runPeriod(ctx context.Context, c *cli.Context, stdout, stderr io.Writer) error {
	rt, err := setup(c, stderr)
	if err != nil {
		return err
	}
	o, err := rt.newOracle()
	if err != nil {
		return err
	}
	n, a := rt.cfg.N, rt.cfg.Base
	rec, err := period.New(o, period.WithLogger(rt.logger)).Run(ctx, n, a)
	if rec != nil {
		m := rec.Measurement
		fmt.Fprintf(stdout, "measurement: %s\n", m)
		fmt.Fprintf(stdout, "expansion: %v\n", contfrac.Expand(m.Num, m.Den))
		for _, cv := range contfrac.Convergents(m.Num, m.Den, oracle.RegisterSize(n)) {
			fmt.Fprintf(stdout, "convergent: %s\n", cv)
		}
		fmt.Fprintf(stdout, "candidate: %d\n", rec.Convergent.Den)
	}
	if err != nil {
		return errors.Wrap(err, "period")
	}
	fmt.Fprintf(stdout, "period: %d (multiplier %d)\n", rec.Period, rec.Multiplier)
	return nil
}

func runTable(c *cli.Context, stdout io.Writer) error {
	cfg := defaultConfig()
	if path := c.GlobalString("config"); path != "" {
		if err := parseJSONConfig(&cfg, path); err != nil {
			return errors.Wrap(err, "parseJSONConfig()")
		}
	}
	applyFlags(&cfg, c)

	rows, err := period.Table(cfg.N, cfg.Base, cfg.Upto)
	if err != nil {
		return errors.Wrap(err, "table")
	}
	for _, row := range rows {
		fmt.Fprintf(stdout, "%d^%d mod %d = %d\n", cfg.Base, row.Exponent, cfg.N, row.Value)
	}
	if r := period.FirstRepeat(rows); r != period.NotFound {
		fmt.Fprintf(stdout, "first return to 1 at x = %d\n", r)
	}
	return nil
}
