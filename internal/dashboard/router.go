package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"launchdash/internal/figure"
	"launchdash/internal/jsonutil"
	"launchdash/internal/launch"
	"launchdash/internal/trace"
)

var (
	// ErrUnknownOutput is returned when no callback produces the requested output.
	ErrUnknownOutput = errors.New("no callback for output")
	// ErrMissingInput is returned when a callback input has no value.
	ErrMissingInput = errors.New("missing callback input")
	// ErrInvalidInput is returned when an input value has the wrong shape.
	ErrInvalidInput = errors.New("invalid callback input")
)

// UpdateFunc recomputes one output from its inputs, given in the order the
// callback declares them.
type UpdateFunc func(ds *launch.Dataset, inputs []any) (figure.Figure, error)

// Callback binds an output property to the inputs it depends on.
type Callback struct {
	Output ID
	Inputs []ID
	Update UpdateFunc
}

// Dependency is the wire form of a Callback.
type Dependency struct {
	Output string   `json:"output"`
	Inputs []string `json:"inputs"`
}

// Callbacks is the dashboard's routing table.
var Callbacks = []Callback{
	{
		Output: ID{Component: PieChart, Property: PropFigure},
		Inputs: []ID{{Component: SiteDropdown, Property: PropValue}},
		Update: UpdatePie,
	},
	{
		Output: ID{Component: ScatterChart, Property: PropFigure},
		Inputs: []ID{
			{Component: SiteDropdown, Property: PropValue},
			{Component: PayloadSlider, Property: PropValue},
		},
		Update: UpdateScatter,
	},
}

// UpdatePie adapts figure.Pie to the callback signature.
func UpdatePie(ds *launch.Dataset, inputs []any) (figure.Figure, error) {
	site, err := jsonutil.ToString(inputs[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, SiteDropdown, err)
	}
	return figure.Pie(ds, site), nil
}

// UpdateScatter adapts figure.Scatter to the callback signature.
func UpdateScatter(ds *launch.Dataset, inputs []any) (figure.Figure, error) {
	site, err := jsonutil.ToString(inputs[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, SiteDropdown, err)
	}
	pair, err := jsonutil.ToFloatPair(inputs[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, PayloadSlider, err)
	}
	return figure.Scatter(ds, site, figure.PayloadRange{Low: pair[0], High: pair[1]}), nil
}

// Router dispatches input values to callbacks. It holds only immutable state
// and is safe for concurrent use.
type Router struct {
	ds        *launch.Dataset
	layout    Layout
	callbacks []Callback
	byOutput  map[ID]int
	tracer    oteltrace.Tracer
	logger    *zap.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithTracing records a span per dispatch.
func WithTracing(p *trace.Provider) RouterOption {
	return func(r *Router) { r.tracer = p.Tracer() }
}

// WithLogger sets the logger used for dispatch records.
func WithLogger(l *zap.Logger) RouterOption {
	return func(r *Router) { r.logger = l }
}

// NewRouter builds a router over ds with the standard callback table.
func NewRouter(ds *launch.Dataset, opts ...RouterOption) *Router {
	r := &Router{
		ds:        ds,
		layout:    NewLayout(ds),
		callbacks: Callbacks,
		byOutput:  make(map[ID]int, len(Callbacks)),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = (*trace.Provider)(nil).Tracer()
	}
	for i, cb := range r.callbacks {
		r.byOutput[cb.Output] = i
	}
	return r
}

// Dataset returns the table the router reads.
func (r *Router) Dataset() *launch.Dataset {
	return r.ds
}

// Layout returns the component tree.
func (r *Router) Layout() Layout {
	return r.layout
}

// Dependencies returns the routing table in wire form.
func (r *Router) Dependencies() []Dependency {
	deps := make([]Dependency, 0, len(r.callbacks))
	for _, cb := range r.callbacks {
		d := Dependency{Output: cb.Output.String()}
		for _, in := range cb.Inputs {
			d.Inputs = append(d.Inputs, in.String())
		}
		deps = append(deps, d)
	}
	return deps
}

// Outputs lists every routable output in table order.
func (r *Router) Outputs() []ID {
	out := make([]ID, 0, len(r.callbacks))
	for _, cb := range r.callbacks {
		out = append(out, cb.Output)
	}
	return out
}

// Dispatch runs the callback that produces output using the supplied input
// values. Values for inputs the callback does not declare are ignored.
func (r *Router) Dispatch(ctx context.Context, output ID, values map[ID]any) (figure.Figure, error) {
	i, ok := r.byOutput[output]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOutput, output)
	}
	cb := r.callbacks[i]

	_, span := r.tracer.Start(ctx, "callback "+output.String())
	defer span.End()

	inputs := make([]any, len(cb.Inputs))
	attrs := map[string]string{"output": output.String()}
	for j, in := range cb.Inputs {
		v, ok := values[in]
		if !ok || v == nil {
			err := fmt.Errorf("%w: %s", ErrMissingInput, in)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		inputs[j] = v
		switch in.Component {
		case SiteDropdown:
			attrs["site"] = fmt.Sprint(v)
		case PayloadSlider:
			attrs["payload_range"] = fmt.Sprint(v)
		}
	}
	span.SetAttributes(trace.Attributes(attrs)...)

	start := time.Now()
	fig, err := cb.Update(r.ds, inputs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Warn("callback failed", zap.Stringer("output", output), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("callback dispatched",
		zap.Stringer("output", output),
		zap.String("kind", string(fig.Kind())),
		zap.String("title", fig.FigureTitle()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return fig, nil
}

// Initial computes every output from the layout's default input values.
func (r *Router) Initial(ctx context.Context) (map[ID]figure.Figure, error) {
	defaults := r.layout.Defaults()
	figs := make(map[ID]figure.Figure, len(r.callbacks))
	for _, out := range r.Outputs() {
		fig, err := r.Dispatch(ctx, out, defaults)
		if err != nil {
			return nil, fmt.Errorf("initial %s: %w", out, err)
		}
		figs[out] = fig
	}
	return figs, nil
}
