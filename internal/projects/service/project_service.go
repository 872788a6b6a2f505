package service

import (
	"context"
	"time"

	spec "github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
	"github.com/jrkim-kr/echarts-ai-studio/internal/projects/domain"
	"github.com/jrkim-kr/echarts-ai-studio/internal/projects/repository"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// SaveInput is one accepted chart to be recorded as the next version.
type SaveInput struct {
	ProjectID string // empty starts a new project
	Config    spec.Spec
	Prompt    string // empty for charts loaded from pasted code
	AutoSaved bool
}

// Saved reports where a chart landed.
type Saved struct {
	ProjectID string
	Created   bool
	Chart     domain.Chart
}

// ProjectService handles project-related business logic
type ProjectService struct {
	store repository.Store
	now   func() time.Time
}

// NewProjectService creates a new project service
func NewProjectService(store repository.Store) *ProjectService {
	return &ProjectService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create starts an empty project. A blank name gets the dated default.
func (s *ProjectService) Create(ctx context.Context, name string) (*domain.Detail, error) {
	rec := domain.NewRecord(name, s.now())
	id, err := s.store.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return rec.Detail(id), nil
}

// SaveChart appends cfg as the next version of in.ProjectID, creating the
// project first when no id is given. The version is assigned inside the
// store's update so concurrent saves never share a number.
func (s *ProjectService) SaveChart(ctx context.Context, in SaveInput) (*Saved, error) {
	chartID, err := domain.NewID("chart")
	if err != nil {
		return nil, err
	}
	now := s.now()

	if in.ProjectID == "" {
		rec := domain.NewRecord("", now)
		c := rec.AppendChart(chartID, in.Config, in.Prompt, in.AutoSaved, now)
		rec.AddPrompt(in.Prompt)
		id, err := s.store.Create(ctx, rec)
		if err != nil {
			return nil, err
		}
		return &Saved{ProjectID: id, Created: true, Chart: *c}, nil
	}

	var chart domain.Chart
	_, err = s.store.Update(ctx, in.ProjectID, func(rec *domain.Record) error {
		c := rec.AppendChart(chartID, in.Config, in.Prompt, in.AutoSaved, now)
		rec.AddPrompt(in.Prompt)
		chart = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Saved{ProjectID: in.ProjectID, Chart: chart}, nil
}

// Get returns a project with its charts newest first.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Detail, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.Detail(id), nil
}

// List returns recent projects, most recently updated first.
func (s *ProjectService) List(ctx context.Context, limit int) ([]domain.Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.store.ListRecent(ctx, limit)
}

// Rename updates a project's name
func (s *ProjectService) Rename(ctx context.Context, id, name string) (*domain.Summary, error) {
	now := s.now()
	rec, err := s.store.Update(ctx, id, func(rec *domain.Record) error {
		return rec.Rename(name, now)
	})
	if err != nil {
		return nil, err
	}
	sum := rec.Summary(id)
	return &sum, nil
}

// DeleteChart removes one chart and renumbers the versions after it.
func (s *ProjectService) DeleteChart(ctx context.Context, projectID, chartID string) (*domain.Detail, error) {
	now := s.now()
	rec, err := s.store.Update(ctx, projectID, func(rec *domain.Record) error {
		return rec.RemoveChart(chartID, now)
	})
	if err != nil {
		return nil, err
	}
	return rec.Detail(projectID), nil
}

// Delete removes a project and all of its charts.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// LatestChart returns the highest version in the project, or nil for an
// empty project.
func (s *ProjectService) LatestChart(ctx context.Context, id string) (*domain.Chart, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c, ok := rec.Latest()
	if !ok {
		return nil, nil
	}
	return c, nil
}
