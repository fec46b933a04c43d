package category

import (
	"context"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type Service interface {
	List(ctx context.Context, filter string, limit, offset int) ([]*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter string, limit, offset int) ([]*Category, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.ListApproved(ctx, strings.TrimSpace(filter), limit, offset)
}
