package worker

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// NewJaegerTracer builds the concrete opentracing.Tracer this package's
// Options.Tracer field expects, reporting constant-sampled spans for
// serviceName to a local Jaeger agent. Callers that don't need distributed
// tracing can leave Options.Tracer unset; New defaults it to a no-op
// tracer.
func NewJaegerTracer(serviceName string) (opentracing.Tracer, io.Closer, error) {
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans: false,
		},
	}
	return cfg.NewTracer()
}
