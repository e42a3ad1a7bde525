package journal

import (
	"context"
	"errors"

	"delvelife/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid journal request")

const defaultLimit = 50

type UseCase struct {
	Entries ports.JournalRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	entries, err := u.Entries.List(ctx, limit)
	if err != nil {
		return Response{}, err
	}
	return Response{Entries: entries}, nil
}
