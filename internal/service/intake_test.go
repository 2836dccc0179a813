package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/humoyunmirzo-code/tgbot/internal/catalog"
	"github.com/humoyunmirzo-code/tgbot/internal/domain"
	"github.com/humoyunmirzo-code/tgbot/internal/engine"
	"github.com/humoyunmirzo-code/tgbot/internal/repository/memory"
	"github.com/humoyunmirzo-code/tgbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestIntake(t *testing.T, sessions *memory.SessionRepo, sink *testutil.MockNotificationSink) *IntakeService {
	t.Helper()
	dir := catalog.Default()
	svc := NewIntakeService(sessions, engine.New(dir), newTestSubmitter(dir, sink, nil), testutil.NewTestLogger())
	svc.now = testutil.FixedClock(testNow)
	return svc
}

func textEvent(userID int64, text string) Event {
	in := engine.Text(text)
	in.Requester = testutil.NewTestRequester(userID)
	return Event{UserID: userID, Language: domain.LanguageRU, Input: in}
}

func walkToAddress(t *testing.T, svc *IntakeService, userID int64) {
	t.Helper()
	ctx := context.Background()

	_, err := svc.Start(ctx, userID, domain.LanguageRU)
	require.NoError(t, err)

	_, err = svc.Handle(ctx, Event{UserID: userID, Language: domain.LanguageRU, Input: engine.Agree()})
	require.NoError(t, err)

	for _, text := range []string{"Кондиционеры", "Ташкент", "не работает", "+998901234567"} {
		reply, err := svc.Handle(ctx, textEvent(userID, text))
		require.NoError(t, err)
		require.Equal(t, engine.OutputPrompt, reply.Output.Kind, text)
	}
}

func TestIntakeService_EndToEnd(t *testing.T) {
	sink := new(testutil.MockNotificationSink)
	sink.On("Send", mock.Anything, int64(888936051), mock.AnythingOfType("string")).Return(nil).Once()

	sessions := memory.NewSessionRepo()
	svc := newTestIntake(t, sessions, sink)
	ctx := context.Background()

	walkToAddress(t, svc, 42)

	reply, err := svc.Handle(ctx, textEvent(42, "ул. Мира 1"))
	require.NoError(t, err)

	assert.Equal(t, engine.OutputTicketReady, reply.Output.Kind)
	require.NotNil(t, reply.Report)
	assert.Equal(t, "tashkent", reply.Report.RegionKey)
	assert.Equal(t, 1, reply.Report.Delivered())
	assert.True(t, reply.Session.Submitted)

	stored, err := sessions.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.StateSubmitted, stored.State)
	assert.Equal(t, testNow, stored.UpdatedAt)

	sink.AssertExpectations(t)
}

func TestIntakeService_SubmittedIsIdempotent(t *testing.T) {
	sink := new(testutil.MockNotificationSink)
	sink.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestIntake(t, memory.NewSessionRepo(), sink)
	ctx := context.Background()

	walkToAddress(t, svc, 42)
	_, err := svc.Handle(ctx, textEvent(42, "ул. Мира 1"))
	require.NoError(t, err)

	for _, text := range []string{"ул. Мира 1", "ещё раз"} {
		reply, err := svc.Handle(ctx, textEvent(42, text))
		require.NoError(t, err)
		assert.Equal(t, engine.OutputAlreadySubmitted, reply.Output.Kind)
		assert.Nil(t, reply.Report)
	}

	sink.AssertNumberOfCalls(t, "Send", 1)
}

func TestIntakeService_SaveFailureDispatchesNothing(t *testing.T) {
	ctx := context.Background()
	session := domain.NewSession(42, domain.LanguageRU)
	session.State = domain.StateAwaitingAddress
	session.Fields = domain.Fields{
		ApplianceKey: "air_conditioners",
		RegionKey:    "tashkent",
		ProblemText:  "не работает",
		PhoneRaw:     "+998901234567",
	}

	repo := new(testutil.MockSessionRepository)
	repo.On("Get", ctx, int64(42)).Return(&session, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Session")).Return(errors.New("connection refused"))

	sink := new(testutil.MockNotificationSink)
	dir := catalog.Default()
	svc := NewIntakeService(repo, engine.New(dir), newTestSubmitter(dir, sink, nil), testutil.NewTestLogger())

	_, err := svc.Handle(ctx, textEvent(42, "ул. Мира 1"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save session")
	sink.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestIntakeService_LoadFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(testutil.MockSessionRepository)
	repo.On("Get", ctx, int64(42)).Return(nil, errors.New("timeout"))

	dir := catalog.Default()
	svc := NewIntakeService(repo, engine.New(dir), newTestSubmitter(dir, new(testutil.MockNotificationSink), nil), testutil.NewTestLogger())

	_, err := svc.Handle(ctx, textEvent(42, "Кондиционеры"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load session")
}

func TestIntakeService_BackOutClearsSession(t *testing.T) {
	sessions := memory.NewSessionRepo()
	svc := newTestIntake(t, sessions, new(testutil.MockNotificationSink))
	ctx := context.Background()

	_, err := svc.Start(ctx, 42, domain.LanguageRU)
	require.NoError(t, err)

	reply, err := svc.Handle(ctx, Event{UserID: 42, Language: domain.LanguageRU, Input: engine.Back()})
	require.NoError(t, err)
	assert.Equal(t, engine.OutputExitedFlow, reply.Output.Kind)

	stored, err := svc.Session(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestIntakeService_NoSessionDoesNotCreateOne(t *testing.T) {
	sessions := memory.NewSessionRepo()
	svc := newTestIntake(t, sessions, new(testutil.MockNotificationSink))
	ctx := context.Background()

	reply, err := svc.Handle(ctx, textEvent(42, "привет"))
	require.NoError(t, err)
	assert.Equal(t, engine.OutputExitedFlow, reply.Output.Kind)

	count, err := sessions.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestIntakeService_StartDiscardsAnswers(t *testing.T) {
	svc := newTestIntake(t, memory.NewSessionRepo(), new(testutil.MockNotificationSink))
	ctx := context.Background()

	walkToAddress(t, svc, 42)

	reply, err := svc.Start(ctx, 42, domain.LanguageUZ)
	require.NoError(t, err)

	assert.Equal(t, domain.StateAwaitingAgreement, reply.Session.State)
	assert.Equal(t, domain.LanguageUZ, reply.Session.Language)
	assert.Equal(t, domain.Fields{}, reply.Session.Fields)
}

func TestIntakeService_Reset(t *testing.T) {
	svc := newTestIntake(t, memory.NewSessionRepo(), new(testutil.MockNotificationSink))
	ctx := context.Background()

	walkToAddress(t, svc, 42)
	require.NoError(t, svc.Reset(ctx, 42))

	stored, err := svc.Session(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestIntakeService_ConcurrentEventsSubmitOnce(t *testing.T) {
	sink := new(testutil.MockNotificationSink)
	sink.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestIntake(t, memory.NewSessionRepo(), sink)
	walkToAddress(t, svc, 42)

	const workers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		tickets int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reply, err := svc.Handle(context.Background(), textEvent(42, "ул. Мира 1"))
			if err != nil || reply.Output.Kind != engine.OutputTicketReady {
				return
			}
			mu.Lock()
			tickets++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, tickets)
	sink.AssertNumberOfCalls(t, "Send", 1)
	assert.Equal(t, 0, svc.locks.size())
}

// blockingSink holds every delivery until release is closed
type blockingSink struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingSink() *blockingSink {
	return &blockingSink{started: make(chan struct{}), release: make(chan struct{})}
}

func (s *blockingSink) Send(ctx context.Context, recipientID int64, text string) error {
	s.once.Do(func() { close(s.started) })
	<-s.release
	return nil
}

func TestIntakeService_DispatchDoesNotHoldUserLock(t *testing.T) {
	sink := newBlockingSink()
	dir := catalog.Default()
	svc := NewIntakeService(memory.NewSessionRepo(), engine.New(dir), newTestSubmitter(dir, sink, nil), testutil.NewTestLogger())
	walkToAddress(t, svc, 42)

	first := make(chan Reply, 1)
	go func() {
		reply, err := svc.Handle(context.Background(), textEvent(42, "ул. Мира 1"))
		assert.NoError(t, err)
		first <- reply
	}()

	select {
	case <-sink.started:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch did not start")
	}

	second := make(chan Reply, 1)
	go func() {
		reply, err := svc.Handle(context.Background(), textEvent(42, "ул. Мира 1"))
		assert.NoError(t, err)
		second <- reply
	}()

	select {
	case reply := <-second:
		assert.Equal(t, engine.OutputAlreadySubmitted, reply.Output.Kind)
		assert.Nil(t, reply.Report)
	case <-time.After(2 * time.Second):
		close(sink.release)
		t.Fatal("second event waited for dispatch to finish")
	}

	close(sink.release)

	select {
	case reply := <-first:
		assert.Equal(t, engine.OutputTicketReady, reply.Output.Kind)
		require.NotNil(t, reply.Report)
		assert.Equal(t, 1, reply.Report.Delivered())
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch did not finish")
	}
}

func TestIntakeService_UsersAreIndependent(t *testing.T) {
	sink := new(testutil.MockNotificationSink)
	sink.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestIntake(t, memory.NewSessionRepo(), sink)

	users := []int64{1, 2, 3, 4, 5}
	var wg sync.WaitGroup
	for _, id := range users {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			walkToAddress(t, svc, id)
			_, err := svc.Handle(context.Background(), textEvent(id, "ул. Мира 1"))
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	sink.AssertNumberOfCalls(t, "Send", len(users))
	assert.Equal(t, 0, svc.locks.size())
}
