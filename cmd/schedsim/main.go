package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"schedsim/internal/api"
	"schedsim/internal/report"
	"schedsim/internal/sched"
	"schedsim/internal/workload"
)

var ErrInvalidArgs = errors.New("invalid args")

func main() {
	log.SetFlags(0)
	log.SetPrefix("schedsim: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	configPath string
	policy     string
	quantum    int
	quantumSet bool // -quantum given explicitly
	workload   string
	list       bool
	format     string
	trace      bool
	eventLog   string
	serve      bool
	listen     string
}

func parseArgs(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("schedsim", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.configPath, "config", "config.yml", "YAML config file")
	fs.StringVar(&opts.policy, "policy", "all", "fcfs, sjf, priority, rr or all")
	fs.IntVar(&opts.quantum, "quantum", 0, "round-robin quantum, must be positive (overrides config)")
	fs.StringVar(&opts.workload, "workload", "", "process file: .yml, .csv or framed dump (overrides config)")
	fs.BoolVar(&opts.list, "list", false, "print the loaded process set and exit")
	fs.StringVar(&opts.format, "format", "dump", "process list format for -list: dump or yaml")
	fs.BoolVar(&opts.trace, "trace", false, "print the scheduler event trace of every run")
	fs.StringVar(&opts.eventLog, "events", "", "CSV file for the scheduler event trace (overrides config)")
	fs.BoolVar(&opts.serve, "serve", false, "serve the HTTP API instead of running once")
	fs.StringVar(&opts.listen, "listen", "", "HTTP listen address (overrides config)")

	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("%w: unexpected argument %q", ErrInvalidArgs, fs.Arg(0))
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "quantum" {
			opts.quantumSet = true
		}
	})
	if opts.quantumSet && opts.quantum <= 0 {
		return opts, fmt.Errorf("%w: quantum %d must be positive", ErrInvalidArgs, opts.quantum)
	}
	if opts.format != "dump" && opts.format != "yaml" {
		return opts, fmt.Errorf("%w: unknown format %q", ErrInvalidArgs, opts.format)
	}
	return opts, nil
}

func run(args []string, w io.Writer) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	/* Config */
	cfg, err := sched.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.quantumSet {
		cfg.Quantum = opts.quantum
	}
	if opts.workload != "" {
		cfg.Workload = opts.workload
	}
	if opts.eventLog != "" {
		cfg.EventLog = opts.eventLog
	}
	if opts.listen != "" {
		cfg.Listen = opts.listen
	}

	/* Load processes */
	procs := workload.Samples()
	if cfg.Workload != "" {
		if procs, err = workload.Load(cfg.Workload); err != nil {
			return err
		}
	}
	engine := sched.NewEngine(cfg)
	if err := engine.Load(procs); err != nil {
		return err
	}

	if opts.list {
		return listProcesses(w, engine.Processes(), opts.format)
	}
	if opts.serve {
		ln, err := net.Listen("tcp", cfg.Listen)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, api.New(engine, true), ln)
	}

	/* Scheduling */
	results, err := schedule(engine, opts.policy)
	if err != nil {
		return err
	}

	var events *report.EventLog
	if cfg.EventLog != "" {
		if events, err = report.CreateEventLog(cfg.EventLog); err != nil {
			return err
		}
		defer events.Close()
	}

	for _, res := range results {
		if err := report.WriteResult(w, res); err != nil {
			return err
		}
		if opts.trace {
			if err := report.WriteTrace(w, res); err != nil {
				return err
			}
		}
		if events != nil {
			if err := events.WriteRun(res); err != nil {
				return err
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

// serve runs the API on ln until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, s *api.Server, ln net.Listener) error {
	done := make(chan error, 1)
	go func() { done <- s.Serve(ln) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		log.Println("shutting down api")
		if err := s.Shutdown(); err != nil {
			return err
		}
		return <-done
	}
}

// schedule runs one policy or all of them.
func schedule(engine *sched.Engine, name string) ([]*sched.Result, error) {
	if name == "all" {
		return engine.RunAll()
	}

	policy, err := sched.ParsePolicy(name)
	if err != nil {
		return nil, err
	}
	if err := engine.Run(policy); err != nil {
		return nil, err
	}

	res, err := engine.Result()
	if err != nil {
		return nil, err
	}
	return []*sched.Result{res}, nil
}

func listProcesses(w io.Writer, ps []sched.Process, format string) error {
	if format == "yaml" {
		data, err := workload.EncodeYAML(ps)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return workload.WriteDump(w, ps)
}
