// Package otellog adapts hfsm.Logger to OpenTelemetry tracing, grounded in
// go-hsm's pkg/telemetry wrapper around go.opentelemetry.io/otel/trace. The
// core hfsm package never imports otel directly; a host that wants spans per
// lifecycle callback constructs one of these and passes it to
// hfsm.WithLogger.
package otellog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	hfsm "github.com/hzj-learn/HFSM"
)

// Logger emits one short-lived span per lifecycle callback record, tagged
// with the owning instance, state name, and method.
type Logger struct {
	tracer trace.Tracer
}

// New builds a Logger that starts spans on tracer. Pass
// otel.Tracer("hfsm") for a real backend, or go-hsm's telemetry.NewProvider
// output in tests where spans should be discarded cheaply.
func New(tracer trace.Tracer) *Logger {
	return &Logger{tracer: tracer}
}

func (l *Logger) Record(instance uuid.UUID, stateTag hfsm.Tag, stateName string, method hfsm.Method, methodName string) {
	_, span := l.tracer.Start(context.Background(), fmt.Sprintf("hfsm.%s", methodName))
	defer span.End()

	span.SetAttributes(
		attribute.String("hfsm.instance", instance.String()),
		attribute.String("hfsm.state", stateName),
		attribute.String("hfsm.state_type", stateTag.String()),
		attribute.String("hfsm.method", methodName),
	)
}
