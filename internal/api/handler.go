// Package api exposes the scheduling engine over HTTP.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"schedsim/internal/sched"
	"schedsim/internal/workload"
)

// Server serves one shared engine plus stateless schedule calls.
type Server struct {
	mu     sync.Mutex    // protects engine; requests run concurrently, the engine does not
	engine *sched.Engine // the loaded set the /processes and /run routes act on
	app    *fiber.App
}

// New builds the Fiber app around engine. logRequests enables the access log.
func New(engine *sched.Engine, logRequests bool) *Server {
	s := &Server{
		engine: engine,
		app:    fiber.New(fiber.Config{DisableStartupMessage: true}),
	}

	s.app.Use(recover.New())
	if logRequests {
		s.app.Use(logger.New())
	}

	v1 := s.app.Group("/api/v1")
	{
		v1.Get("/processes", s.ListProcesses)
		v1.Get("/processes/dump", s.DumpProcesses)
		v1.Post("/processes", s.AddProcess)
		v1.Put("/processes", s.ReplaceProcesses)
		v1.Delete("/processes", s.ClearProcesses)
		v1.Post("/processes/sample", s.LoadSamples)
		v1.Post("/run/:policy", s.Run)
		v1.Get("/result", s.LastResult)
		v1.Post("/schedule/:policy", s.Schedule)
	}
	return s
}

// App exposes the underlying Fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App { return s.app }

// Serve blocks serving on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	log.Println("schedsim api listening on", ln.Addr())
	return s.app.Listener(ln)
}

// Shutdown stops the listener and waits for in-flight requests.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

func (s *Server) ListProcesses(ctx *fiber.Ctx) error {
	s.mu.Lock()
	ps := s.engine.Processes()
	drained := s.engine.Drained()
	s.mu.Unlock()
	return ctx.JSON(fiber.Map{"processes": ps, "drained": drained})
}

func (s *Server) DumpProcesses(ctx *fiber.Ctx) error {
	s.mu.Lock()
	ps := s.engine.Processes()
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := workload.WriteDump(&buf, ps); err != nil {
		return fail(ctx, err)
	}
	ctx.Type("txt")
	return ctx.Send(buf.Bytes())
}

func (s *Server) AddProcess(ctx *fiber.Ctx) error {
	var p sched.Process
	if err := ctx.BodyParser(&p); err != nil {
		return badRequest(ctx, err)
	}

	p = sched.NewProcess(p.ID, p.Arrival, p.Burst, p.Priority)

	s.mu.Lock()
	err := s.engine.AddProcess(p)
	s.mu.Unlock()
	if err != nil {
		return fail(ctx, err)
	}
	log.Println("pid:", p.ID, "added to loaded set")
	return ctx.Status(fiber.StatusCreated).JSON(p)
}

func (s *Server) ReplaceProcesses(ctx *fiber.Ctx) error {
	var req ScheduleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, err)
	}

	s.mu.Lock()
	err := s.engine.Load(req.Processes)
	s.mu.Unlock()
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *Server) ClearProcesses(ctx *fiber.Ctx) error {
	s.mu.Lock()
	s.engine.Reset()
	s.mu.Unlock()
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *Server) LoadSamples(ctx *fiber.Ctx) error {
	s.mu.Lock()
	err := s.engine.Load(workload.Samples())
	s.mu.Unlock()
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// Run executes a policy (or "all") on the loaded set.
func (s *Server) Run(ctx *fiber.Ctx) error {
	quantum, err := quantumParam(ctx, s.engine.Config().Quantum)
	if err != nil {
		return badRequest(ctx, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Params("policy") == "all" {
		log.Println("running all algorithms on loaded set")
		results, err := s.engine.RunAllWithQuantum(quantum)
		if err != nil {
			return fail(ctx, err)
		}
		out := make([]ScheduleResponse, 0, len(results))
		for _, res := range results {
			resp, err := newScheduleResponse(res)
			if err != nil {
				return fail(ctx, err)
			}
			out = append(out, resp)
		}
		return ctx.JSON(out)
	}

	policy, err := sched.ParsePolicy(ctx.Params("policy"))
	if err != nil {
		return fail(ctx, err)
	}
	log.Println("running", policy, "algorithm on loaded set")

	if policy == sched.PolicyRoundRobin {
		err = s.engine.RunRoundRobin(quantum)
	} else {
		err = s.engine.Run(policy)
	}
	if err != nil {
		return fail(ctx, err)
	}
	return s.respondLast(ctx)
}

func (s *Server) LastResult(ctx *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.respondLast(ctx)
}

// respondLast writes the engine's latest result; callers hold s.mu.
func (s *Server) respondLast(ctx *fiber.Ctx) error {
	res, err := s.engine.Result()
	if err != nil {
		return fail(ctx, err)
	}
	resp, err := newScheduleResponse(res)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(resp)
}

// Schedule runs a policy over the posted set without touching the shared engine.
func (s *Server) Schedule(ctx *fiber.Ctx) error {
	var req ScheduleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, err)
	}

	cfg := s.engine.Config()
	if req.Quantum != 0 {
		cfg.Quantum = req.Quantum
	}
	quantum, err := quantumParam(ctx, cfg.Quantum)
	if err != nil {
		return badRequest(ctx, err)
	}
	if req.RRWaiting != "" {
		formula, err := sched.ParseWaitingFormula(req.RRWaiting)
		if err != nil {
			return fail(ctx, err)
		}
		cfg.RRWaiting = formula
	}

	policy, err := sched.ParsePolicy(ctx.Params("policy"))
	if err != nil {
		return fail(ctx, err)
	}

	var res *sched.Result
	switch policy {
	case sched.PolicyFCFS:
		res, err = sched.FCFS(req.Processes)
	case sched.PolicySJF:
		res, err = sched.SJF(req.Processes)
	case sched.PolicyPriority:
		res, err = sched.Priority(req.Processes)
	case sched.PolicyRoundRobin:
		res, err = sched.RoundRobin(req.Processes, quantum, cfg.RRWaiting)
	}
	if err != nil {
		return fail(ctx, err)
	}

	resp, err := newScheduleResponse(res)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(resp)
}

// quantumParam reads ?quantum=, falling back to def when it is absent.
// A quantum given explicitly must be positive.
func quantumParam(ctx *fiber.Ctx, def int) (int, error) {
	raw := ctx.Query("quantum")
	if raw == "" {
		return def, nil
	}
	q, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("quantum %q: %w", raw, err)
	}
	if q <= 0 {
		return 0, fmt.Errorf("%w: quantum %d must be positive", sched.ErrInvalidInput, q)
	}
	return q, nil
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, sched.ErrStaleProcessSet):
		return fiber.StatusConflict
	case errors.Is(err, sched.ErrNoResult):
		return fiber.StatusNotFound
	case errors.Is(err, sched.ErrInvalidInput), errors.Is(err, sched.ErrEmptyProcessSet):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(ctx *fiber.Ctx, err error) error {
	return ctx.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format: " + err.Error()})
}
