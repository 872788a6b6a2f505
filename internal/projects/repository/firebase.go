package repository

import (
	"context"
	"errors"
	"strings"

	"firebase.google.com/go/v4/db"
	"firebase.google.com/go/v4/errorutils"

	"github.com/jrkim-kr/echarts-ai-studio/internal/projects/domain"
)

const projectsPath = "projects"

// FirebaseStore keeps projects in the Firebase Realtime Database.
type FirebaseStore struct {
	root *db.Ref
}

func NewFirebaseStore(client *db.Client) *FirebaseStore {
	return &FirebaseStore{root: client.NewRef(projectsPath)}
}

func (s *FirebaseStore) Create(ctx context.Context, rec *domain.Record) (string, error) {
	ref, err := s.root.Push(ctx, rec)
	if err != nil {
		return "", persistenceError("create project", err)
	}
	return ref.Key, nil
}

func (s *FirebaseStore) Get(ctx context.Context, id string) (*domain.Record, error) {
	if !validKey(id) {
		return nil, domain.ErrProjectNotFound
	}
	var rec *domain.Record
	if err := s.root.Child(id).Get(ctx, &rec); err != nil {
		return nil, persistenceError("get project", err)
	}
	if rec == nil {
		return nil, domain.ErrProjectNotFound
	}
	return rec, nil
}

// ListRecent reads the newest limit projects by push key, then orders
// them by last update.
func (s *FirebaseStore) ListRecent(ctx context.Context, limit int) ([]domain.Summary, error) {
	nodes, err := s.root.OrderByKey().LimitToLast(limit).GetOrdered(ctx)
	if err != nil {
		return nil, persistenceError("list projects", err)
	}

	out := make([]domain.Summary, 0, len(nodes))
	for _, n := range nodes {
		var rec domain.Record
		if err := n.Unmarshal(&rec); err != nil {
			return nil, persistenceError("list projects", err)
		}
		out = append(out, rec.Summary(n.Key()))
	}
	domain.SortRecent(out)
	return out, nil
}

func (s *FirebaseStore) Update(ctx context.Context, id string, fn func(*domain.Record) error) (*domain.Record, error) {
	if !validKey(id) {
		return nil, domain.ErrProjectNotFound
	}

	var (
		result *domain.Record
		fnErr  error
	)
	err := s.root.Child(id).Transaction(ctx, func(node db.TransactionNode) (interface{}, error) {
		var rec *domain.Record
		if err := node.Unmarshal(&rec); err != nil {
			return nil, err
		}
		if rec == nil {
			fnErr = domain.ErrProjectNotFound
			return nil, fnErr
		}
		if err := fn(rec); err != nil {
			fnErr = err
			return nil, err
		}
		result = rec
		return rec, nil
	})
	if fnErr != nil {
		return nil, fnErr
	}
	if err != nil {
		return nil, persistenceError("update project", err)
	}
	return result, nil
}

func (s *FirebaseStore) Delete(ctx context.Context, id string) error {
	if !validKey(id) {
		return domain.ErrProjectNotFound
	}
	ref := s.root.Child(id)

	var exists interface{}
	if err := ref.GetShallow(ctx, &exists); err != nil {
		return persistenceError("delete project", err)
	}
	if exists == nil {
		return domain.ErrProjectNotFound
	}
	if err := ref.Delete(ctx); err != nil {
		return persistenceError("delete project", err)
	}
	return nil
}

func persistenceError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &domain.PersistenceError{Op: op, PermissionDenied: isPermissionDenied(err), Err: err}
}

// Realtime Database rules rejections come back as 401 "Permission denied".
func isPermissionDenied(err error) bool {
	if errorutils.IsPermissionDenied(err) || errorutils.IsUnauthenticated(err) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "permission denied")
}
