package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/engine"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Frame    time.Duration
	Rows     int
	Columns  int
	Supplier string
	Seed     uint64
	MaxGames int

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Games          int
	Totals         engine.Stats
	PiecesPerGame  Counts
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Counts summarises one integer sample per game.
type Counts struct {
	Min     int
	Max     int
	Avg     float64
	Samples []int
}

func (c *Counts) Finalize() {
	if len(c.Samples) == 0 {
		return
	}

	total := 0
	c.Min = c.Samples[0]
	c.Max = c.Samples[0]

	for _, sample := range c.Samples {
		c.Min = min(c.Min, sample)
		c.Max = max(c.Max, sample)
		total += sample
	}
	c.Avg = float64(total) / float64(len(c.Samples))
}

// addGame folds the counters of one finished game into the totals.
func (r *Report) addGame(s engine.Stats) {
	r.Games++
	r.Totals.Ticks += s.Ticks
	r.Totals.Spawned += s.Spawned
	r.Totals.Locked += s.Locked
	r.Totals.Holds += s.Holds
	r.Totals.LinesCleared += s.LinesCleared
	for i, n := range s.Clears {
		r.Totals.Clears[i] += n
	}
	r.PiecesPerGame.Samples = append(r.PiecesPerGame.Samples, s.Locked)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Simulated Frame:** {{.Frame}}
- **Board:** {{.Rows}}x{{.Columns}}
- **Supplier:** {{.Supplier}} (seed {{.Seed}})
{{- if .MaxGames}}
- **Game Limit:** {{.MaxGames}}
{{- end}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Gameplay
- **Games Finished:** {{.Games}}
- **Pieces Locked:** {{.Totals.Locked}}
- **Pieces per Game:** avg {{printf "%.1f" .PiecesPerGame.Avg}}, min {{.PiecesPerGame.Min}}, max {{.PiecesPerGame.Max}}
- **Holds:** {{.Totals.Holds}}
- **Lines Cleared:** {{.Totals.LinesCleared}}
{{- range $i, $n := .Totals.Clears}}
  - {{inc $i}}-line clears: {{$n}}
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"inc": func(i int) int {
			return i + 1
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
