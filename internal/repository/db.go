package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/demandify-media/caller-voice-service/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CallRecordRepository defines persistence for finished calls and their
// per-turn transcripts.
type CallRecordRepository interface {
	// Create operations
	SaveCall(ctx context.Context, record *domain.CallRecord, turns []domain.CallTurnRecord) error

	// Read operations
	GetByID(ctx context.Context, id string) (*domain.CallRecord, error)
	GetTurns(ctx context.Context, callID string) ([]domain.CallTurnRecord, error)
	ListRecent(ctx context.Context, limit int) ([]domain.CallRecord, error)
	ListByCampaign(ctx context.Context, campaignKey string, limit int) ([]domain.CallRecord, error)

	// Health check
	Ping(ctx context.Context) error

	// Close connection
	Close() error
}

// GormCallRecordRepository implements CallRecordRepository using GORM
type GormCallRecordRepository struct {
	db *gorm.DB
}

// NewGormCallRecordRepository creates a new GORM call record repository
func NewGormCallRecordRepository(db *gorm.DB) *GormCallRecordRepository {
	return &GormCallRecordRepository{db: db}
}

// SaveCall persists a record and its turns in one transaction
func (r *GormCallRecordRepository) SaveCall(ctx context.Context, record *domain.CallRecord, turns []domain.CallTurnRecord) error {
	if record == nil {
		return fmt.Errorf("call record cannot be nil")
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	for i := range turns {
		if turns[i].ID == "" {
			turns[i].ID = uuid.New().String()
		}
		turns[i].CallID = record.ID
		turns[i].Sequence = i + 1
		if turns[i].CreatedAt.IsZero() {
			turns[i].CreatedAt = now
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create call record: %w", err)
		}
		if len(turns) > 0 {
			if err := tx.CreateInBatches(turns, 100).Error; err != nil {
				return fmt.Errorf("failed to create call turns: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a call record by ID
func (r *GormCallRecordRepository) GetByID(ctx context.Context, id string) (*domain.CallRecord, error) {
	var record domain.CallRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get call record: %w", err)
	}
	return &record, nil
}

// GetTurns retrieves the transcript for a call in turn order
func (r *GormCallRecordRepository) GetTurns(ctx context.Context, callID string) ([]domain.CallTurnRecord, error) {
	var turns []domain.CallTurnRecord
	if err := r.db.WithContext(ctx).
		Where("call_id = ?", callID).
		Order("sequence ASC").
		Find(&turns).Error; err != nil {
		return nil, fmt.Errorf("failed to get call turns: %w", err)
	}
	return turns, nil
}

// ListRecent retrieves the most recently ended calls
func (r *GormCallRecordRepository) ListRecent(ctx context.Context, limit int) ([]domain.CallRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []domain.CallRecord
	if err := r.db.WithContext(ctx).
		Order("ended_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list call records: %w", err)
	}
	return records, nil
}

// ListByCampaign retrieves recent calls for one campaign
func (r *GormCallRecordRepository) ListByCampaign(ctx context.Context, campaignKey string, limit int) ([]domain.CallRecord, error) {
	if campaignKey == "" {
		return nil, fmt.Errorf("campaign key cannot be empty")
	}
	if limit <= 0 {
		limit = 50
	}
	var records []domain.CallRecord
	if err := r.db.WithContext(ctx).
		Where("campaign_key = ?", campaignKey).
		Order("ended_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list call records by campaign: %w", err)
	}
	return records, nil
}

// Ping checks the database connection
func (r *GormCallRecordRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (r *GormCallRecordRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NoopCallRecordRepository keeps records in memory for the dashboard when no
// database is configured. Records are lost on restart.
type NoopCallRecordRepository struct {
	mu      sync.RWMutex
	records map[string]domain.CallRecord
	turns   map[string][]domain.CallTurnRecord
}

// NewNoopCallRecordRepository creates the in-memory fallback repository
func NewNoopCallRecordRepository() *NoopCallRecordRepository {
	return &NoopCallRecordRepository{
		records: make(map[string]domain.CallRecord),
		turns:   make(map[string][]domain.CallTurnRecord),
	}
}

func (r *NoopCallRecordRepository) SaveCall(_ context.Context, record *domain.CallRecord, turns []domain.CallTurnRecord) error {
	if record == nil {
		return fmt.Errorf("call record cannot be nil")
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	stored := make([]domain.CallTurnRecord, len(turns))
	copy(stored, turns)
	for i := range stored {
		if stored[i].ID == "" {
			stored[i].ID = uuid.New().String()
		}
		stored[i].CallID = record.ID
		stored[i].Sequence = i + 1
		if stored[i].CreatedAt.IsZero() {
			stored[i].CreatedAt = now
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = *record
	r.turns[record.ID] = stored
	return nil
}

func (r *NoopCallRecordRepository) GetByID(_ context.Context, id string) (*domain.CallRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *NoopCallRecordRepository) GetTurns(_ context.Context, callID string) ([]domain.CallTurnRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	turns := r.turns[callID]
	out := make([]domain.CallTurnRecord, len(turns))
	copy(out, turns)
	return out, nil
}

func (r *NoopCallRecordRepository) ListRecent(_ context.Context, limit int) ([]domain.CallRecord, error) {
	return r.list("", limit), nil
}

func (r *NoopCallRecordRepository) ListByCampaign(_ context.Context, campaignKey string, limit int) ([]domain.CallRecord, error) {
	if campaignKey == "" {
		return nil, fmt.Errorf("campaign key cannot be empty")
	}
	return r.list(campaignKey, limit), nil
}

func (r *NoopCallRecordRepository) list(campaignKey string, limit int) []domain.CallRecord {
	if limit <= 0 {
		limit = 50
	}

	r.mu.RLock()
	out := make([]domain.CallRecord, 0, len(r.records))
	for _, record := range r.records {
		if campaignKey != "" && record.CampaignKey != campaignKey {
			continue
		}
		out = append(out, record)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].EndedAt.After(out[j].EndedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *NoopCallRecordRepository) Ping(context.Context) error { return nil }

func (r *NoopCallRecordRepository) Close() error { return nil }
