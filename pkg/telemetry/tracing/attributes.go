package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	qerrors "qalc-hq/qalc/pkg/qalc/errors"
)

// Attribute keys set on qalc spans.
const (
	AttrSession    = "qalc.session_id"
	AttrSourcePath = "qalc.source.path"
	AttrSourceSize = "qalc.source.bytes"
	AttrStatements = "qalc.statements"
	AttrQubits     = "qalc.circuit.qubits"
	AttrGates      = "qalc.circuit.gates"

	AttrErrorType     = "qalc.error.type"
	AttrErrorLine     = "qalc.error.line"
	AttrErrorPosition = "qalc.error.column"
)

// SetErrorAttributes records err on the span. Language errors also carry
// their category and source position.
//
// Example:
//
//	if err != nil {
//	    SetErrorAttributes(span, err)
//	}
func SetErrorAttributes(span trace.Span, err error) {
	if err == nil {
		return
	}
	if e, ok := qerrors.As(err); ok {
		attrs := []attribute.KeyValue{attribute.String(AttrErrorType, string(e.Type))}
		if e.Location.IsValid() {
			attrs = append(attrs,
				attribute.Int(AttrErrorLine, e.Location.Line),
				attribute.Int(AttrErrorPosition, e.Location.Column),
			)
		}
		span.SetAttributes(attrs...)
	}
	SetError(span, err)
}

// AttributeBuilder collects attributes for a span start.
type AttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewAttributeBuilder returns an empty builder.
func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{}
}

// WithSession adds the session id.
func (ab *AttributeBuilder) WithSession(session string) *AttributeBuilder {
	if session != "" {
		ab.attrs = append(ab.attrs, attribute.String(AttrSession, session))
	}
	return ab
}

// WithSource adds the source path and size.
func (ab *AttributeBuilder) WithSource(path string, size int) *AttributeBuilder {
	if path != "" {
		ab.attrs = append(ab.attrs, attribute.String(AttrSourcePath, path))
	}
	ab.attrs = append(ab.attrs, attribute.Int(AttrSourceSize, size))
	return ab
}

// WithStatements adds the number of statements in a program.
func (ab *AttributeBuilder) WithStatements(n int) *AttributeBuilder {
	ab.attrs = append(ab.attrs, attribute.Int(AttrStatements, n))
	return ab
}

// WithCircuit adds the register width and gate count of a circuit.
func (ab *AttributeBuilder) WithCircuit(qubits, gates int) *AttributeBuilder {
	ab.attrs = append(ab.attrs, attribute.Int(AttrQubits, qubits), attribute.Int(AttrGates, gates))
	return ab
}

// Build returns a span start option carrying the collected attributes.
func (ab *AttributeBuilder) Build() trace.SpanStartOption {
	return trace.WithAttributes(ab.Attributes()...)
}

// Attributes returns the collected attributes.
func (ab *AttributeBuilder) Attributes() []attribute.KeyValue {
	return ab.attrs
}
