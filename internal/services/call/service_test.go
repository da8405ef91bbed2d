package call

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/demandify-media/caller-voice-service/internal/adapters/livekit"
	"github.com/demandify-media/caller-voice-service/internal/campaign"
	"github.com/demandify-media/caller-voice-service/internal/domain"
	"github.com/demandify-media/caller-voice-service/internal/leads"
	"github.com/demandify-media/caller-voice-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConnector stands in for the LiveKit room manager. CleanupRoom invokes
// the session-ended hook synchronously, like the real manager does.
type fakeConnector struct {
	mu       sync.Mutex
	connects []string
	cleanups []string
	onEnded  func(sessionID string)
}

func (f *fakeConnector) ConnectAgent(sessionID, roomName string, _ livekit.Driver) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects = append(f.connects, roomName)
	return nil
}

func (f *fakeConnector) CleanupRoom(sessionID string) {
	f.mu.Lock()
	f.cleanups = append(f.cleanups, sessionID)
	onEnded := f.onEnded
	f.mu.Unlock()
	if onEnded != nil {
		onEnded(sessionID)
	}
}

func newTestService(t *testing.T, leadCount int) (*CallerService, *fakeConnector, *repository.NoopCallRecordRepository) {
	t.Helper()

	content := "prospect_name,company_name,job_title,email\n"
	for i := 0; i < leadCount; i++ {
		content += "John Smith,ABC Corporation,IT Director,john.smith@abc.com\n"
	}
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	connector := &fakeConnector{}
	repo := repository.NewNoopCallRecordRepository()
	svc := NewCallerService(campaign.NewRegistry(), leads.NewLoader(path), connector, repo)
	connector.onEnded = svc.HandleSessionEnded
	return svc, connector, repo
}

func TestStartCallOccupiesSlot(t *testing.T) {
	svc, _, _ := newTestService(t, 2)

	result, err := svc.StartCall(1, "splashbi")
	require.NoError(t, err)
	assert.Equal(t, "room-1", result.RoomName)
	assert.Equal(t, "John Smith", result.Lead.Name)

	snapshot := svc.Status()
	assert.Equal(t, StatusRunning, snapshot.Status)
	assert.True(t, snapshot.Running)
	assert.Equal(t, 1, snapshot.LeadIndex)
	assert.Equal(t, "splashbi", snapshot.Campaign)
	assert.Equal(t, "greeting", snapshot.Stage)

	_, err = svc.StartCall(2, "splashbi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already")
}

func TestStartCallUnknownLead(t *testing.T) {
	svc, _, _ := newTestService(t, 1)

	_, err := svc.StartCall(5, "")
	assert.Error(t, err)
	assert.Equal(t, StatusIdle, svc.Status().Status)
}

func TestStartCallDefaultsToSelectedCampaign(t *testing.T) {
	svc, _, _ := newTestService(t, 1)

	require.NoError(t, svc.SelectCampaign("konfhub"))
	result, err := svc.StartCall(1, "")
	require.NoError(t, err)
	assert.Equal(t, "konfhub", result.Campaign)
	assert.Equal(t, "KonfHub", svc.Status().CampaignLabel)
}

func TestSelectCampaignRejectsUnknown(t *testing.T) {
	svc, _, _ := newTestService(t, 1)
	assert.Error(t, svc.SelectCampaign("nope"))
	assert.NoError(t, svc.SelectCampaign(""))
}

func TestEndCallPersistsAndFreesSlot(t *testing.T) {
	svc, connector, repo := newTestService(t, 1)

	result, err := svc.StartCall(1, "splashbi")
	require.NoError(t, err)

	snapshot, had := svc.EndCall(false)
	assert.True(t, had)
	assert.Equal(t, StatusIdle, snapshot.Status)

	connector.mu.Lock()
	assert.Equal(t, []string{result.SessionID}, connector.cleanups)
	connector.mu.Unlock()

	records, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "splashbi", records[0].CampaignKey)
	assert.Equal(t, 1, records[0].LeadIndex)
	assert.Equal(t, domain.OutcomeInProgress, records[0].Outcome)
}

func TestEndCallAutoNextDialsFollowingLead(t *testing.T) {
	svc, _, repo := newTestService(t, 2)

	_, err := svc.StartCall(1, "splashbi")
	require.NoError(t, err)

	snapshot, had := svc.EndCall(true)
	assert.True(t, had)
	assert.Equal(t, StatusRunning, snapshot.Status)
	assert.Equal(t, 2, snapshot.LeadIndex)

	// Ending the last lead with auto-next leaves the slot idle.
	snapshot, _ = svc.EndCall(true)
	assert.Equal(t, StatusIdle, snapshot.Status)

	records, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStartBrowserCallValidatesRoom(t *testing.T) {
	svc, _, _ := newTestService(t, 2)

	_, err := svc.StartBrowserCall("room-2", 1, "splashbi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")

	result, err := svc.StartBrowserCall("", 1, "splashbi")
	require.NoError(t, err)
	assert.Equal(t, "room-1", result.RoomName)
}

func TestStopAllDisablesAutoNext(t *testing.T) {
	svc, _, _ := newTestService(t, 2)
	svc.SetAutoNext(true)

	_, err := svc.StartCall(1, "splashbi")
	require.NoError(t, err)

	snapshot := svc.StopAll()
	assert.Equal(t, StatusIdle, snapshot.Status)
	assert.False(t, snapshot.AutoNext)
}

func TestEndCallWithoutSession(t *testing.T) {
	svc, _, _ := newTestService(t, 1)

	snapshot, had := svc.EndCall(false)
	assert.False(t, had)
	assert.Equal(t, StatusIdle, snapshot.Status)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	svc, _, _ := newTestService(t, 1)

	ch, cancel := svc.Subscribe()
	defer cancel()

	first := <-ch
	assert.Equal(t, StatusIdle, first.Status)

	_, err := svc.StartCall(1, "splashbi")
	require.NoError(t, err)

	got := <-ch
	assert.Equal(t, StatusRunning, got.Status)
}

func TestSessionEndedForStaleSessionIsIgnored(t *testing.T) {
	svc, _, repo := newTestService(t, 1)

	_, err := svc.StartCall(1, "splashbi")
	require.NoError(t, err)

	svc.HandleSessionEnded("not-the-current-session")
	assert.Equal(t, StatusRunning, svc.Status().Status)

	records, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDriverRespondAdvancesFlow(t *testing.T) {
	c, err := campaign.NewRegistry().Get("splashbi")
	require.NoError(t, err)

	driver, err := NewSessionDriver(c, domain.ProspectData{Name: "John Smith", Company: "ABC Corporation", JobTitle: "IT Director", Email: "john.smith@abc.com"}, 1, "room-1")
	require.NoError(t, err)

	greeting := driver.Greeting()
	assert.Contains(t, greeting, "Hi John Smith")

	reply, ended := driver.Respond("I'm doing well, thanks.")
	assert.False(t, ended)
	assert.Contains(t, reply, "is now a good time")
	assert.Equal(t, domain.StagePermission, driver.Stage())

	reply, ended = driver.Respond("No thanks.")
	assert.True(t, ended)
	assert.NotEmpty(t, reply)

	record, turns := driver.BuildRecord()
	assert.Equal(t, "ended", record.FinalStage)
	assert.Equal(t, 2, record.TurnCount)
	require.Len(t, turns, 2)
	assert.Equal(t, "permission", turns[1].Stage)
}
