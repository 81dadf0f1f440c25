package qalc

import (
	"context"
	"fmt"
	"os"
	"time"

	"qalc-hq/qalc/pkg/config"
	"qalc-hq/qalc/pkg/linalg"
	"qalc-hq/qalc/pkg/qalc/ast"
	"qalc-hq/qalc/pkg/qalc/parser"
	"qalc-hq/qalc/pkg/qalc/runtime"
	"qalc-hq/qalc/pkg/qalc/validator"
	"qalc-hq/qalc/pkg/telemetry/logging"
	"qalc-hq/qalc/pkg/telemetry/metrics"
	"qalc-hq/qalc/pkg/telemetry/tracing"
)

// Session evaluates programs against one persistent ExecutionContext.
//
// A Session is not safe for concurrent use; statements of different
// programs would interleave in the shared environment.
type Session struct {
	ec        *runtime.ExecutionContext
	logger    *logging.Logger
	collector *metrics.Collector
	tracer    *tracing.Tracer
	parser    *parser.Parser
	validate  bool
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	logger     *logging.Logger
	collector  *metrics.Collector
	tracer     *tracing.Tracer
	multiplier *linalg.Multiplier
	sessionID  string
	validate   bool
}

// WithLogger sets the session logger. The default discards everything.
func WithLogger(logger *logging.Logger) Option {
	return func(o *sessionOptions) { o.logger = logger }
}

// WithCollector records compile, evaluation and matrix product metrics.
func WithCollector(c *metrics.Collector) Option {
	return func(o *sessionOptions) { o.collector = c }
}

// WithTracer wraps compilation and evaluation in spans.
func WithTracer(t *tracing.Tracer) Option {
	return func(o *sessionOptions) { o.tracer = t }
}

// WithMultiplier sets the matrix multiplier. When a collector is also
// configured, prefer NewMultiplier so products are observed.
func WithMultiplier(mp *linalg.Multiplier) Option {
	return func(o *sessionOptions) { o.multiplier = mp }
}

// WithSessionID fixes the session identifier.
func WithSessionID(id string) Option {
	return func(o *sessionOptions) { o.sessionID = id }
}

// WithValidation runs the static checks on every program before it is
// evaluated, with the session's current variables predefined.
func WithValidation(enabled bool) Option {
	return func(o *sessionOptions) { o.validate = enabled }
}

// NewMultiplier builds the matrix multiplier described by cfg, reporting
// every product to observer when it is non-nil.
func NewMultiplier(cfg config.AlgebraConfig, observer linalg.MulObserver) *linalg.Multiplier {
	opts := []linalg.MultiplierOption{
		linalg.WithWorkers(cfg.Workers),
	}
	if cfg.ParallelThreshold != 0 {
		opts = append(opts, linalg.WithThreshold(cfg.ParallelThreshold))
	}
	if observer != nil {
		opts = append(opts, linalg.WithObserver(observer))
	}
	return linalg.NewMultiplier(opts...)
}

// NewSession creates a session with an empty environment.
func NewSession(opts ...Option) *Session {
	o := sessionOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	if o.tracer == nil {
		o.tracer, _ = tracing.New(&config.TracingConfig{})
	}
	if o.multiplier == nil {
		var observer linalg.MulObserver
		if o.collector != nil {
			observer = o.collector
		}
		o.multiplier = NewMultiplier(config.AlgebraConfig{}, observer)
	}

	ecOpts := []runtime.Option{
		runtime.WithLogger(o.logger.Slog()),
		runtime.WithMultiplier(o.multiplier),
	}
	if o.sessionID != "" {
		ecOpts = append(ecOpts, runtime.WithSessionID(o.sessionID))
	}
	ec := runtime.NewExecutionContext(ecOpts...)

	return &Session{
		ec:        ec,
		logger:    o.logger,
		collector: o.collector,
		tracer:    o.tracer,
		parser:    parser.NewParser(),
		validate:  o.validate,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.ec.SessionID()
}

// Context returns the session's execution context.
func (s *Session) Context() *runtime.ExecutionContext {
	return s.ec
}

// Variables lists the variables currently defined, sorted by name.
func (s *Session) Variables() []runtime.Variable {
	return s.ec.Variables()
}

// Reset forgets every variable, as clear() does.
func (s *Session) Reset() {
	_, _ = s.ec.Clear(ast.Location{})
}

// Compile parses src. name labels the source in logs and spans.
func (s *Session) Compile(ctx context.Context, name, src string) (*ast.CommandList, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanCompile,
		tracing.NewAttributeBuilder().WithSession(s.ID()).WithSource(name, len(src)).Build())
	defer span.End()
	ctx = logging.WithSession(tracing.LogContext(ctx), s.ID())

	start := time.Now()
	program, err := s.parser.ParseString(src)
	if err == nil && s.validate {
		err = s.check(program)
	}
	duration := time.Since(start)
	s.collector.RecordCompile(duration, err)

	if err != nil {
		tracing.SetErrorAttributes(span, err)
		s.logger.DebugContext(ctx, "compilation failed", "source", name, "error", err.Error())
		return nil, err
	}
	tracing.SetStatus(span, nil)
	s.logger.DebugContext(ctx, "program compiled",
		"source", name, "statements", program.Len(), "duration", duration)
	return program, nil
}

// CompileFile reads and parses the program stored at path.
func (s *Session) CompileFile(ctx context.Context, path string) (*ast.CommandList, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source file: %w", err)
	}
	if info.Size() > parser.DefaultMaxSourceSize {
		return nil, fmt.Errorf("source file too large: %d bytes (max %d)", info.Size(), parser.DefaultMaxSourceSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return s.Compile(ctx, path, string(data))
}

func (s *Session) check(program *ast.CommandList) error {
	vars := s.ec.Variables()
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return validator.NewValidator(validator.WithPredefined(names...)).Validate(program)
}

// Run evaluates program statement by statement. On failure it returns the
// values of the statements that completed along with the error. Assignments
// made before the failing statement stay in the environment.
//
// Cancelling ctx stops the run between statements.
func (s *Session) Run(ctx context.Context, program *ast.CommandList) ([]ast.Value, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanEvaluate,
		tracing.NewAttributeBuilder().WithSession(s.ID()).WithStatements(program.Len()).Build())
	defer span.End()
	ctx = logging.WithSession(tracing.LogContext(ctx), s.ID())

	start := time.Now()
	values, err := s.run(ctx, program)
	duration := time.Since(start)
	s.collector.RecordEvaluation(duration, len(values), err)

	if err != nil {
		tracing.SetErrorAttributes(span, err)
		s.logger.DebugContext(ctx, "evaluation failed", "completed", len(values), "error", err.Error())
		return values, err
	}
	tracing.SetStatus(span, nil)
	s.logger.DebugContext(ctx, "program evaluated", "statements", len(values), "duration", duration)
	return values, nil
}

func (s *Session) run(ctx context.Context, program *ast.CommandList) ([]ast.Value, error) {
	values := make([]ast.Value, 0, program.Len())
	for _, stmt := range program.Items {
		if err := ctx.Err(); err != nil {
			return values, err
		}
		v, err := stmt.Evaluate(s.ec)
		if err != nil {
			return values, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Eval compiles src and runs it in the session.
func (s *Session) Eval(ctx context.Context, name, src string) ([]ast.Value, error) {
	program, err := s.Compile(ctx, name, src)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, program)
}

// EvalFile compiles the program stored at path and runs it in the session.
func (s *Session) EvalFile(ctx context.Context, path string) ([]ast.Value, error) {
	program, err := s.CompileFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.Run(logging.WithScript(ctx, path), program)
}
