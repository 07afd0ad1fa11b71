// Package tracer bootstraps the Jaeger opentracing tracer.
package tracer

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// Config Jaeger 配置
type Config struct {
	ServiceName string
	AgentHost   string // host:port of the jaeger agent
	SampleRate  float64
}

// NewJaegerTracer builds a tracer and installs it as the opentracing global
// tracer. Close the returned io.Closer on shutdown to flush spans.
// NewJaegerTracer 创建 Jaeger tracer 并设置为全局 tracer
func NewJaegerTracer(cfg Config) (opentracing.Tracer, io.Closer, error) {
	c := &jaegercfg.Configuration{
		ServiceName: cfg.ServiceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeProbabilistic,
			Param: cfg.SampleRate,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: cfg.AgentHost,
		},
	}
	t, closer, err := c.NewTracer()
	if err != nil {
		return nil, nil, errors.Wrap(err, "jaeger")
	}
	opentracing.SetGlobalTracer(t)
	return t, closer, nil
}
