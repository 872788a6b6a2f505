// Package service moves a dashboard session through its project
// lifecycle: no project, an unsaved draft, then persisted versions.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	gensvc "github.com/jrkim-kr/echarts-ai-studio/internal/generation/service"
	"github.com/jrkim-kr/echarts-ai-studio/internal/logging"
	pdomain "github.com/jrkim-kr/echarts-ai-studio/internal/projects/domain"
	projsvc "github.com/jrkim-kr/echarts-ai-studio/internal/projects/service"
	"github.com/jrkim-kr/echarts-ai-studio/internal/session/domain"
)

// Notices for a chart that was generated but could not be saved.
const (
	NoticeSaveFailed       = "차트는 생성되었지만 프로젝트에 저장하지 못했습니다. 잠시 후 다시 시도해주세요."
	NoticePermissionDenied = "프로젝트 저장 권한이 없습니다. 데이터베이스 보안 규칙을 확인해주세요."
)

type Store interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sid string) (*domain.Session, error)
	SetProject(ctx context.Context, sid, projectID string) error
	SaveWorkingCopy(ctx context.Context, sid string, wc *domain.WorkingCopy) error
	WorkingCopy(ctx context.Context, sid string) (*domain.WorkingCopy, error)
	ClearWorkingCopy(ctx context.Context, sid string) error
	Acquire(ctx context.Context, sid string) error
	Release(ctx context.Context, sid string) error
}

type Generator interface {
	Generate(ctx context.Context, req gensvc.Request) (*gensvc.Result, error)
	LoadLiteral(ctx context.Context, code string) (*gensvc.Result, error)
}

type Projects interface {
	SaveChart(ctx context.Context, in projsvc.SaveInput) (*projsvc.Saved, error)
	LatestChart(ctx context.Context, id string) (*pdomain.Chart, error)
}

// Outcome is an accepted chart together with where the session ended up.
// A failed save leaves PersistNotice set and the working copy in place.
type Outcome struct {
	Result        *gensvc.Result
	Chart         *pdomain.Chart
	View          *domain.View
	PersistNotice string
}

type SessionService struct {
	store    Store
	gen      Generator
	projects Projects
	now      func() time.Time
}

func NewSessionService(store Store, gen Generator, projects Projects) *SessionService {
	return &SessionService{
		store:    store,
		gen:      gen,
		projects: projects,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create opens a session with no project. owner is the authenticated
// user's UID, empty for anonymous callers.
func (s *SessionService) Create(ctx context.Context, owner string) (*domain.View, error) {
	sess := &domain.Session{ID: uuid.New().String(), Owner: owner, CreatedAt: s.now()}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	return domain.Describe(sess, nil), nil
}

// State reports the session's lifecycle state and restorable working copy.
func (s *SessionService) State(ctx context.Context, sid string) (*domain.View, error) {
	sess, err := s.store.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	wc, err := s.store.WorkingCopy(ctx, sid)
	if err != nil {
		return nil, err
	}
	return domain.Describe(sess, wc), nil
}

// Generate runs one submission. Only one generation per session may be in
// flight; a second one fails with domain.ErrBusy. The current working
// chart is offered to the generator as the chart to refine.
func (s *SessionService) Generate(ctx context.Context, sid string, req gensvc.Request) (*Outcome, error) {
	sess, err := s.store.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if err := s.store.Acquire(ctx, sid); err != nil {
		return nil, err
	}
	defer func() {
		if err := s.store.Release(context.WithoutCancel(ctx), sid); err != nil {
			logging.New(ctx).Error("session_release", err)
		}
	}()

	wc, err := s.store.WorkingCopy(ctx, sid)
	if err != nil {
		logging.New(ctx).Warnf("session_generate", "working copy unavailable: %v", err)
	}
	if wc != nil {
		req.Previous = wc.ChartConfig
	}

	res, err := s.gen.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.accept(ctx, sess, res)
}

// LoadLiteral accepts a pasted chart specification as the next version.
// The prompt history is left untouched.
func (s *SessionService) LoadLiteral(ctx context.Context, sid, code string) (*Outcome, error) {
	sess, err := s.store.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	res, err := s.gen.LoadLiteral(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.accept(ctx, sess, res)
}

// accept makes res the working copy, then records it in the session's
// project, creating the project on the first save.
func (s *SessionService) accept(ctx context.Context, sess *domain.Session, res *gensvc.Result) (*Outcome, error) {
	logger := logging.New(ctx)

	wc := &domain.WorkingCopy{ChartConfig: res.Spec, Prompt: res.Prompt, SavedAt: s.now()}
	if err := s.store.SaveWorkingCopy(ctx, sess.ID, wc); err != nil {
		logger.Warnf("session_accept", "working copy not saved: %v", err)
	}

	out := &Outcome{Result: res}
	in := projsvc.SaveInput{ProjectID: sess.ProjectID, Config: res.Spec, Prompt: res.Prompt}
	saved, err := s.projects.SaveChart(ctx, in)
	if errors.Is(err, pdomain.ErrProjectNotFound) && in.ProjectID != "" {
		// the linked project was deleted elsewhere; start a fresh one
		logger.Warnf("session_accept", "project %s is gone, starting a new project", in.ProjectID)
		if err := s.store.SetProject(ctx, sess.ID, ""); err != nil {
			logger.Warnf("session_accept", "project not unlinked from session: %v", err)
		}
		sess.ProjectID = ""
		in.ProjectID = ""
		saved, err = s.projects.SaveChart(ctx, in)
	}
	if err != nil {
		logger.Errorf("session_accept", "chart not persisted: project=%s err=%v", sess.ProjectID, err)
		out.PersistNotice = NoticeSaveFailed
		if pdomain.IsPermissionDenied(err) {
			out.PersistNotice = NoticePermissionDenied
		}
		out.View = domain.Describe(sess, wc)
		return out, nil
	}

	if saved.Created {
		if err := s.store.SetProject(ctx, sess.ID, saved.ProjectID); err != nil {
			logger.Warnf("session_accept", "project %s not linked to session: %v", saved.ProjectID, err)
		}
		sess.ProjectID = saved.ProjectID
		logger.Infof("session_accept", "created project %s", saved.ProjectID)
	}

	wc.ChartConfig = saved.Chart.Config
	if err := s.store.SaveWorkingCopy(ctx, sess.ID, wc); err != nil {
		logger.Warnf("session_accept", "working copy not saved: %v", err)
	}
	res.Spec = saved.Chart.Config

	chart := saved.Chart
	out.Chart = &chart
	out.View = domain.Describe(sess, wc)
	return out, nil
}

// NewProject detaches the session from its project. Persisted data is untouched.
func (s *SessionService) NewProject(ctx context.Context, sid string) (*domain.View, error) {
	if err := s.store.SetProject(ctx, sid, ""); err != nil {
		return nil, err
	}
	if err := s.store.ClearWorkingCopy(ctx, sid); err != nil {
		return nil, err
	}
	return s.State(ctx, sid)
}

// SelectProject switches to an existing project and loads its latest
// chart as the working copy.
func (s *SessionService) SelectProject(ctx context.Context, sid, projectID string) (*domain.View, error) {
	if _, err := s.store.Get(ctx, sid); err != nil {
		return nil, err
	}
	latest, err := s.projects.LatestChart(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetProject(ctx, sid, projectID); err != nil {
		return nil, err
	}

	if latest == nil {
		if err := s.store.ClearWorkingCopy(ctx, sid); err != nil {
			return nil, err
		}
	} else {
		wc := &domain.WorkingCopy{ChartConfig: latest.Config, Prompt: latest.Prompt, SavedAt: s.now()}
		if err := s.store.SaveWorkingCopy(ctx, sid, wc); err != nil {
			return nil, err
		}
	}
	return s.State(ctx, sid)
}
