package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration and metadata of one recovery phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of the recovery phases of a single dump.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Format renders the report as the --timings block: one line per recovery
// phase with its share of the total, then the total itself. Every line is
// prefixed with indent so the caller can align it under its own output.
func (r Report) Format(indent string) string {
	if len(r.Phases) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Phases {
		share := 0.0
		if r.TotalMS > 0 {
			share = p.DurationMS / r.TotalMS * 100
		}
		fmt.Fprintf(&b, "%s%-8s %7.2f ms  %5.1f%%", indent, p.Name, p.DurationMS, share)
		if p.Note != "" {
			fmt.Fprintf(&b, "  // %s", p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%s%-8s %7.2f ms\n", indent, "total", r.TotalMS)
	return b.String()
}

// PhaseReport — сжатая информация о фазе для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
