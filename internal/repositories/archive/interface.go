package archive

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/tmcfarlane/whoami/internal/repositories/archive Repository

import (
	"context"
)

// Repository defines the interface for finished-game archival
type Repository interface {
	// SaveRecord persists the record of a finished game
	SaveRecord(ctx context.Context, input *SaveRecordInput) error

	// GetRecord retrieves a finished game record by ID
	GetRecord(ctx context.Context, input *GetRecordInput) (*GameRecord, error)

	// GetRecentRecords retrieves the most recently finished games
	GetRecentRecords(ctx context.Context, input *GetRecentRecordsInput) (*GetRecentRecordsOutput, error)
}
