// File: services/intelligence/interface_test.go
package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KazChe/ai-task-scheduler/models"
	"github.com/KazChe/ai-task-scheduler/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply string
	err   error
}

func (g *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return g.reply, g.err
}

type memContextStore struct {
	contexts map[string]*models.AIContext
}

func newMemContextStore() *memContextStore {
	return &memContextStore{contexts: map[string]*models.AIContext{}}
}

func (s *memContextStore) Get(ctx context.Context, userID string) (*models.AIContext, error) {
	if c, ok := s.contexts[userID]; ok {
		return c, nil
	}
	return &models.AIContext{}, nil
}

func (s *memContextStore) Set(ctx context.Context, userID string, aiCtx *models.AIContext) error {
	s.contexts[userID] = aiCtx
	return nil
}

func (s *memContextStore) Clear(ctx context.Context, userID string) error {
	delete(s.contexts, userID)
	return nil
}

type fakeTaskService struct {
	slots       []models.Interval
	previewErr  error
	scheduled   *models.Task
	scheduleErr error

	scheduleCalls int
}

func (f *fakeTaskService) ScheduleTask(ctx context.Context, userID string, ext models.TaskExtraction) (*models.Task, error) {
	f.scheduleCalls++
	return f.scheduled, f.scheduleErr
}

func (f *fakeTaskService) PreviewSlots(ctx context.Context, userID string, ext models.TaskExtraction) ([]models.Interval, error) {
	return f.slots, f.previewErr
}

func (f *fakeTaskService) SearchSlots(ctx context.Context, userID string, durationMinutes int, rangeStart, rangeEnd time.Time) ([]models.Interval, error) {
	return f.slots, f.previewErr
}

func (f *fakeTaskService) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	return nil, nil
}

func (f *fakeTaskService) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	return nil, nil
}

func (f *fakeTaskService) CancelTask(ctx context.Context, userID, taskID string) error {
	return nil
}

func newFlowService(gen ContentGenerator, store ContextStore, tasks *fakeTaskService) *DefaultAIService {
	return &DefaultAIService{
		gemini:   gen,
		ctxStore: store,
		taskSvc:  tasks,
		now:      func() time.Time { return time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC) },
	}
}

func slotAt(h int) models.Interval {
	return models.Interval{
		Start: time.Date(2025, 1, 6, h, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 6, h+1, 0, 0, 0, time.UTC),
	}
}

func TestProcessUserInputOffersSlots(t *testing.T) {
	gen := &fakeGenerator{reply: `{"title":"Write report","durationMinutes":60}`}
	store := newMemContextStore()
	tasks := &fakeTaskService{slots: []models.Interval{slotAt(9), slotAt(10), slotAt(11), slotAt(12)}}
	svc := newFlowService(gen, store, tasks)

	resp, err := svc.ProcessUserInput(context.Background(), models.AIRequest{UserID: "u1", Text: "schedule an hour for the report"})
	require.NoError(t, err)
	assert.Equal(t, "schedule", resp.Intent)
	assert.Len(t, resp.Slots, slotsOffered)
	assert.Equal(t, slotAt(9), resp.Slots[0])
	require.NotEmpty(t, resp.Actions)
	assert.Equal(t, "confirm_slot", resp.Actions[0].Type)

	// The extraction is parked awaiting confirmation.
	saved := store.contexts["u1"]
	require.NotNil(t, saved)
	assert.Equal(t, 1, saved.SchedulingStep)
	require.NotNil(t, saved.Pending)
	assert.Equal(t, "Write report", saved.Pending.Title)
	assert.Zero(t, tasks.scheduleCalls)
}

func TestProcessUserInputConfirmBooks(t *testing.T) {
	store := newMemContextStore()
	store.contexts["u1"] = &models.AIContext{
		SchedulingStep: 1,
		Pending:        &models.TaskExtraction{Title: "Write report", DurationMinutes: 60},
	}
	booked := &models.Task{
		ID: "t1", Title: "Write report",
		ScheduledStart: slotAt(9).Start, ScheduledEnd: slotAt(9).End,
		Status: models.TaskStatusScheduled,
	}
	tasks := &fakeTaskService{scheduled: booked}
	svc := newFlowService(&fakeGenerator{}, store, tasks)

	resp, err := svc.ProcessUserInput(context.Background(), models.AIRequest{UserID: "u1", Text: "yes, book it"})
	require.NoError(t, err)
	assert.Equal(t, 1, tasks.scheduleCalls)
	require.NotNil(t, resp.Task)
	assert.Equal(t, "t1", resp.Task.ID)
	// Context is cleared once the flow resolves.
	assert.Nil(t, store.contexts["u1"])
}

func TestProcessUserInputDeclineWinsOverBookingWords(t *testing.T) {
	store := newMemContextStore()
	store.contexts["u1"] = &models.AIContext{
		SchedulingStep: 1,
		Pending:        &models.TaskExtraction{Title: "Write report", DurationMinutes: 60},
	}
	tasks := &fakeTaskService{}
	svc := newFlowService(&fakeGenerator{}, store, tasks)

	// Contains "book it" and "ok" but the negation must prevail.
	resp, err := svc.ProcessUserInput(context.Background(), models.AIRequest{UserID: "u1", Text: "no, don't book it, it's not ok"})
	require.NoError(t, err)
	assert.Equal(t, "chat", resp.Intent)
	assert.Zero(t, tasks.scheduleCalls)
	assert.Nil(t, store.contexts["u1"])
}

func TestIntentKeywordsMatchWholeWords(t *testing.T) {
	cases := []struct {
		text        string
		affirmative bool
		negative    bool
	}{
		{"yes", true, false},
		{"book it now", true, false}, // "now" is not "no"
		{"go ahead now", true, false},
		{"no", false, true},
		{"no, don't book it", true, true},
		{"nope, cancel that", false, true},
		{"don't", false, true},
		{"nothing for me", false, false}, // "nothing" is not "no"
		{"what about Tuesday?", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.affirmative, isAffirmative(tc.text), "affirmative")
			assert.Equal(t, tc.negative, isNegative(tc.text), "negative")
		})
	}
}

func TestProcessUserInputConfirmWithTrailingNow(t *testing.T) {
	store := newMemContextStore()
	store.contexts["u1"] = &models.AIContext{
		SchedulingStep: 1,
		Pending:        &models.TaskExtraction{Title: "Write report", DurationMinutes: 60},
	}
	booked := &models.Task{
		ID: "t1", Title: "Write report",
		ScheduledStart: slotAt(9).Start, ScheduledEnd: slotAt(9).End,
		Status: models.TaskStatusScheduled,
	}
	tasks := &fakeTaskService{scheduled: booked}
	svc := newFlowService(&fakeGenerator{}, store, tasks)

	resp, err := svc.ProcessUserInput(context.Background(), models.AIRequest{UserID: "u1", Text: "book it now"})
	require.NoError(t, err)
	assert.Equal(t, 1, tasks.scheduleCalls)
	require.NotNil(t, resp.Task)
}

func TestProcessUserInputConfirmWhenSlotFilled(t *testing.T) {
	store := newMemContextStore()
	store.contexts["u1"] = &models.AIContext{
		SchedulingStep: 1,
		Pending:        &models.TaskExtraction{Title: "Write report", DurationMinutes: 60},
	}
	tasks := &fakeTaskService{scheduleErr: scheduling.ErrNoSlotsAvailable}
	svc := newFlowService(&fakeGenerator{}, store, tasks)

	resp, err := svc.ProcessUserInput(context.Background(), models.AIRequest{UserID: "u1", Text: "yes"})
	require.NoError(t, err)
	assert.Equal(t, "schedule", resp.Intent)
	assert.Nil(t, resp.Task)
	assert.Contains(t, resp.ResponseText, "filled up")
}

func TestProcessUserInputChatFallback(t *testing.T) {
	// Empty title means the message was not a scheduling request.
	gen := &fakeGenerator{reply: `{"title":""}`}
	svc := newFlowService(gen, newMemContextStore(), &fakeTaskService{})

	// The same generator then serves the chat reply.
	gen.reply = `{"title":""}`
	resp, err := svc.ProcessUserInput(context.Background(), models.AIRequest{UserID: "u1", Text: "how are you?"})
	require.NoError(t, err)
	assert.Equal(t, "chat", resp.Intent)
}

func TestProcessUserInputNoFreeTime(t *testing.T) {
	gen := &fakeGenerator{reply: `{"title":"Write report","durationMinutes":60}`}
	store := newMemContextStore()
	svc := newFlowService(gen, store, &fakeTaskService{slots: nil})

	resp, err := svc.ProcessUserInput(context.Background(), models.AIRequest{UserID: "u1", Text: "schedule the report"})
	require.NoError(t, err)
	assert.Equal(t, "schedule", resp.Intent)
	assert.Empty(t, resp.Slots)
	// No pending context when there is nothing to confirm.
	assert.Nil(t, store.contexts["u1"])
}

func TestProcessUserInputInvalidRange(t *testing.T) {
	gen := &fakeGenerator{reply: `{"title":"Write report","durationMinutes":60}`}
	tasks := &fakeTaskService{previewErr: scheduling.ErrInvalidRequest}
	svc := newFlowService(gen, newMemContextStore(), tasks)

	resp, err := svc.ProcessUserInput(context.Background(), models.AIRequest{UserID: "u1", Text: "schedule the report yesterday"})
	require.NoError(t, err)
	assert.Equal(t, "schedule", resp.Intent)
	assert.Contains(t, resp.ResponseText, "rephrase")
}

func TestProcessUserInputGeminiFaultFallsBackToChat(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("gemini unavailable")}
	svc := newFlowService(gen, newMemContextStore(), &fakeTaskService{})

	_, err := svc.ProcessUserInput(context.Background(), models.AIRequest{UserID: "u1", Text: "schedule the report"})
	// Extraction failure degrades to chat, which also fails here.
	require.Error(t, err)
	assert.ErrorIs(t, err, gen.err)
}
