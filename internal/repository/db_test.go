package repository

import (
	"context"
	"testing"
	"time"

	"github.com/demandify-media/caller-voice-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(campaign string, endedAt time.Time) *domain.CallRecord {
	return &domain.CallRecord{
		RoomName:     "room-1",
		CampaignKey:  campaign,
		LeadIndex:    1,
		ProspectName: "John Smith",
		FinalStage:   "ENDED",
		Outcome:      domain.OutcomeQualified,
		StartedAt:    endedAt.Add(-2 * time.Minute),
		EndedAt:      endedAt,
	}
}

func TestNoopSaveAssignsIDsAndSequences(t *testing.T) {
	repo := NewNoopCallRecordRepository()
	ctx := context.Background()

	record := sampleRecord("splashbi", time.Now())
	turns := []domain.CallTurnRecord{
		{Stage: "GREETING", Utterance: "hi", Reply: "hello"},
		{Stage: "PERMISSION", Utterance: "sure", Reply: "great"},
	}
	require.NoError(t, repo.SaveCall(ctx, record, turns))
	assert.NotEmpty(t, record.ID)

	got, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "John Smith", got.ProspectName)

	storedTurns, err := repo.GetTurns(ctx, record.ID)
	require.NoError(t, err)
	require.Len(t, storedTurns, 2)
	assert.Equal(t, 1, storedTurns[0].Sequence)
	assert.Equal(t, 2, storedTurns[1].Sequence)
	assert.Equal(t, record.ID, storedTurns[0].CallID)
}

func TestNoopListRecentOrdersByEndedAt(t *testing.T) {
	repo := NewNoopCallRecordRepository()
	ctx := context.Background()

	now := time.Now()
	older := sampleRecord("splashbi", now.Add(-time.Hour))
	newer := sampleRecord("konfhub", now)
	require.NoError(t, repo.SaveCall(ctx, older, nil))
	require.NoError(t, repo.SaveCall(ctx, newer, nil))

	records, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, newer.ID, records[0].ID)

	byCampaign, err := repo.ListByCampaign(ctx, "splashbi", 10)
	require.NoError(t, err)
	require.Len(t, byCampaign, 1)
	assert.Equal(t, older.ID, byCampaign[0].ID)

	_, err = repo.ListByCampaign(ctx, "", 10)
	assert.Error(t, err)
}

func TestNoopGetMissingRecord(t *testing.T) {
	repo := NewNoopCallRecordRepository()

	got, err := repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, repo.Ping(context.Background()))
	assert.NoError(t, repo.Close())
}

func TestNoopSaveNilRecord(t *testing.T) {
	repo := NewNoopCallRecordRepository()
	assert.Error(t, repo.SaveCall(context.Background(), nil, nil))
}
