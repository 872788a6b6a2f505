package domain

import (
	"sort"
	"strings"
	"time"

	spec "github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

// MaxPrompts caps the prompt history kept per project.
const MaxPrompts = 20

// Chart is one versioned generation result within a project.
// Version is duplicated inside Config.
type Chart struct {
	ID        string    `json:"id"`
	Config    spec.Spec `json:"config"`
	Prompt    string    `json:"prompt"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	AutoSaved bool      `json:"autoSaved"`
}

// Record is the stored form of a project: the node at projects/{id}.
type Record struct {
	Name      string            `json:"name"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Charts    map[string]*Chart `json:"charts,omitempty"`
	Prompts   []string          `json:"prompts,omitempty"`
}

// Summary is a project as shown in the recent-projects list.
type Summary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ChartCount  int       `json:"chartCount"`
	PromptCount int       `json:"promptCount"`
}

// Detail is a project with its charts, newest first.
type Detail struct {
	Summary
	Charts  []Chart  `json:"charts"`
	Prompts []string `json:"prompts"`
}

// DefaultName is the name given to projects created implicitly.
func DefaultName(now time.Time) string {
	return "프로젝트 " + now.Format("2006. 1. 2.")
}

// NewRecord starts an empty project.
func NewRecord(name string, now time.Time) *Record {
	if strings.TrimSpace(name) == "" {
		name = DefaultName(now)
	}
	return &Record{
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
		Charts:    map[string]*Chart{},
	}
}

// LatestVersion is the highest chart version, 0 for an empty project.
func (r *Record) LatestVersion() int {
	v := 0
	for _, c := range r.Charts {
		if c.Version > v {
			v = c.Version
		}
	}
	return v
}

// AppendChart adds cfg as the next version. The version is derived from
// the number of charts already in the record, so callers must hold the
// record exclusively (a store transaction) while appending.
func (r *Record) AppendChart(id string, cfg spec.Spec, prompt string, autoSaved bool, now time.Time) *Chart {
	if r.Charts == nil {
		r.Charts = map[string]*Chart{}
	}
	version := len(r.Charts) + 1
	cfg = cfg.Clone()
	if cfg == nil {
		cfg = spec.Spec{}
	}
	cfg.SetVersion(version)

	c := &Chart{
		ID:        id,
		Config:    cfg,
		Prompt:    prompt,
		Version:   version,
		CreatedAt: now,
		AutoSaved: autoSaved,
	}
	r.Charts[id] = c
	r.UpdatedAt = now
	return c
}

// AddPrompt records prompt at the head of the history. Blank prompts are
// ignored, an existing copy is moved to the front, and the list is capped.
func (r *Record) AddPrompt(prompt string) {
	if strings.TrimSpace(prompt) == "" {
		return
	}
	out := make([]string, 0, len(r.Prompts)+1)
	out = append(out, prompt)
	for _, p := range r.Prompts {
		if p != prompt {
			out = append(out, p)
		}
	}
	if len(out) > MaxPrompts {
		out = out[:MaxPrompts]
	}
	r.Prompts = out
}

// RemoveChart deletes a chart and closes the version gap it leaves:
// every chart with a higher version moves down by one, at both the
// chart and config level.
func (r *Record) RemoveChart(id string, now time.Time) error {
	c, ok := r.Charts[id]
	if !ok {
		return ErrChartNotFound
	}
	removed := c.Version
	delete(r.Charts, id)

	for _, other := range r.Charts {
		if removed > 0 && other.Version > removed {
			other.Version--
			if other.Config != nil {
				other.Config.SetVersion(other.Version)
			}
		}
	}
	r.UpdatedAt = now
	return nil
}

// Rename sets a new non-blank name.
func (r *Record) Rename(name string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	r.Name = name
	r.UpdatedAt = now
	return nil
}

func (r *Record) Summary(id string) Summary {
	return Summary{
		ID:          id,
		Name:        r.Name,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		ChartCount:  len(r.Charts),
		PromptCount: len(r.Prompts),
	}
}

// Detail lists charts by creation time, newest first.
func (r *Record) Detail(id string) *Detail {
	charts := make([]Chart, 0, len(r.Charts))
	for key, c := range r.Charts {
		cc := *c
		if cc.ID == "" {
			cc.ID = key
		}
		charts = append(charts, cc)
	}
	sort.Slice(charts, func(i, j int) bool {
		if !charts[i].CreatedAt.Equal(charts[j].CreatedAt) {
			return charts[i].CreatedAt.After(charts[j].CreatedAt)
		}
		return charts[i].Version > charts[j].Version
	})

	prompts := r.Prompts
	if prompts == nil {
		prompts = []string{}
	}
	return &Detail{Summary: r.Summary(id), Charts: charts, Prompts: prompts}
}

// Latest returns the chart with the highest version.
func (r *Record) Latest() (*Chart, bool) {
	var latest *Chart
	for _, c := range r.Charts {
		if latest == nil || c.Version > latest.Version {
			latest = c
		}
	}
	return latest, latest != nil
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.Charts = make(map[string]*Chart, len(r.Charts))
	for k, c := range r.Charts {
		cc := *c
		cc.Config = c.Config.Clone()
		out.Charts[k] = &cc
	}
	out.Prompts = append([]string(nil), r.Prompts...)
	return &out
}

// SortRecent orders summaries by last update, newest first.
func SortRecent(items []Summary) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
}
