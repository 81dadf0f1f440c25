package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"qalc-hq/qalc/pkg/circuit"
	"qalc-hq/qalc/pkg/cli"
	"qalc-hq/qalc/pkg/telemetry/tracing"
)

var circuitFlags struct {
	format  string
	input   int
	unitary bool
}

var circuitCmd = &cobra.Command{
	Use:   "circuit FILE",
	Short: "Simulate a YAML circuit",
	Long: `Load a circuit described in YAML, apply it to a basis state and print
the non-zero amplitudes of the result.

The input state is taken from --input, then from the document's input field,
and defaults to |0...0>. Amplitudes whose modulus does not exceed
algebra.epsilon are omitted.

Example document:
  name: bell
  qubits: 2
  gates:
    - type: h
      indices: [0]
    - type: cnot
      indices: [0, 1]

Examples:
  qalc circuit bell.yaml
  qalc circuit --input 3 --format json bell.yaml
  qalc circuit --unitary bell.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: simulateCircuit,
}

func init() {
	rootCmd.AddCommand(circuitCmd)

	circuitCmd.Flags().StringVarP(&circuitFlags.format, "format", "f", "text", "output format: text, json, csv")
	circuitCmd.Flags().IntVar(&circuitFlags.input, "input", -1, "input basis index (overrides the document)")
	circuitCmd.Flags().BoolVar(&circuitFlags.unitary, "unitary", false, "print the circuit unitary instead of amplitudes")
}

// circuitReport is the printable result of a simulation.
type circuitReport struct {
	Name       string          `json:"name,omitempty"`
	Qubits     int             `json:"qubits"`
	Gates      int             `json:"gates"`
	Input      string          `json:"input"`
	Amplitudes []amplitudeJSON `json:"amplitudes"`
}

type amplitudeJSON struct {
	State       string  `json:"state"`
	Real        float32 `json:"re"`
	Imag        float32 `json:"im"`
	Probability float32 `json:"probability"`
}

func newCircuitReport(c *circuit.Circuit, input int, amps []circuit.Amplitude) *circuitReport {
	r := &circuitReport{
		Name:       c.Name,
		Qubits:     c.Qubits,
		Gates:      len(c.Gates),
		Input:      fmt.Sprintf("%0*b", c.Qubits, input),
		Amplitudes: make([]amplitudeJSON, len(amps)),
	}
	for i, a := range amps {
		r.Amplitudes[i] = amplitudeJSON{
			State:       a.Bits,
			Real:        a.Value.Re,
			Imag:        a.Value.Im,
			Probability: a.Probability,
		}
	}
	return r
}

// String lists one amplitude per line.
func (r *circuitReport) String() string {
	lines := make([]string, len(r.Amplitudes))
	for i, a := range r.Amplitudes {
		lines[i] = fmt.Sprintf("|%s> (%s, %s) p=%s", a.State,
			strconv.FormatFloat(float64(a.Real), 'g', -1, 32),
			strconv.FormatFloat(float64(a.Imag), 'g', -1, 32),
			strconv.FormatFloat(float64(a.Probability), 'g', 6, 32))
	}
	return strings.Join(lines, "\n")
}

// Header implements cli.Table.
func (r *circuitReport) Header() []string {
	return []string{"state", "re", "im", "probability"}
}

// Rows implements cli.Table.
func (r *circuitReport) Rows() [][]string {
	rows := make([][]string, len(r.Amplitudes))
	for i, a := range r.Amplitudes {
		rows[i] = []string{
			a.State,
			strconv.FormatFloat(float64(a.Real), 'g', -1, 32),
			strconv.FormatFloat(float64(a.Imag), 'g', -1, 32),
			strconv.FormatFloat(float64(a.Probability), 'g', -1, 32),
		}
	}
	return rows
}

func simulateCircuit(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(circuitFlags.format)
	if err != nil {
		return err
	}
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	c, err := circuit.Load(args[0])
	if err != nil {
		return err
	}

	ctx, span := a.tracer.Start(cmd.Context(), tracing.SpanCircuit,
		tracing.NewAttributeBuilder().WithCircuit(c.Qubits, len(c.Gates)).Build())
	defer span.End()
	ctx = tracing.LogContext(ctx)

	out := cmd.OutOrStdout()
	if circuitFlags.unitary {
		u, err := c.Unitary(a.multiplier())
		if err != nil {
			tracing.SetError(span, err)
			return err
		}
		tracing.SetStatus(span, nil)
		fmt.Fprintln(out, u)
		return nil
	}

	input := 0
	switch {
	case circuitFlags.input >= 0:
		input = circuitFlags.input
	case c.HasInput:
		input = c.Input
	}
	state, err := c.Apply(a.multiplier(), input)
	if err != nil {
		tracing.SetError(span, err)
		return err
	}
	tracing.SetStatus(span, nil)

	a.logger.DebugContext(ctx, "circuit simulated", "circuit", c.Name, "qubits", c.Qubits, "gates", len(c.Gates), "input", input)
	report := newCircuitReport(c, input, circuit.Amplitudes(state, c.Qubits, a.epsilon()))
	return cli.NewFormatter(format).FormatTo(out, report)
}
