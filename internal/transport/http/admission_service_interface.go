package http

import (
	"context"

	"puntajes/pkg/contracts/domain"
)

// AdmissionServiceInterface defines the admission operations the handler needs
type AdmissionServiceInterface interface {
	ListOptions(ctx context.Context, year int) (*domain.Options, error)
	Query(ctx context.Context, year int, university, program string) (*domain.QueryResult, error)
	Years(ctx context.Context) (*domain.Years, error)
}
