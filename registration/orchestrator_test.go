package registration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"conference-webapp/model"
)

type fakeConferenceStore struct {
	mu     sync.Mutex
	confs  map[primitive.ObjectID]*model.Conference
	incErr error // forced increment failure, for compensation tests
}

func newFakeConferenceStore() *fakeConferenceStore {
	return &fakeConferenceStore{confs: map[primitive.ObjectID]*model.Conference{}}
}

func (s *fakeConferenceStore) add(conf model.Conference) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := conf
	s.confs[conf.Id] = &c
}

func (s *fakeConferenceStore) GetConference(_ context.Context, id primitive.ObjectID) (model.Conference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conf, ok := s.confs[id]
	if !ok {
		return model.Conference{}, ErrConferenceNotFound
	}
	return *conf, nil
}

func (s *fakeConferenceStore) IncrementAttendees(_ context.Context, id primitive.ObjectID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incErr != nil {
		return 0, s.incErr
	}
	conf, ok := s.confs[id]
	if !ok {
		return 0, ErrConferenceNotFound
	}
	if conf.Attendees >= conf.MaxAttendees {
		return 0, ErrConferenceFull
	}
	conf.Attendees++
	return conf.Attendees, nil
}

func (s *fakeConferenceStore) DecrementAttendees(_ context.Context, id primitive.ObjectID) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conf, ok := s.confs[id]
	if !ok {
		return 0, false, ErrConferenceNotFound
	}
	if conf.Attendees == 0 {
		return 0, true, nil
	}
	conf.Attendees--
	return conf.Attendees, false, nil
}

func (s *fakeConferenceStore) attendees(id primitive.ObjectID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confs[id].Attendees
}

type fakeEnrollmentStore struct {
	mu         sync.Mutex
	byId       map[primitive.ObjectID]model.Enrollment
	failDelete bool
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{byId: map[primitive.ObjectID]model.Enrollment{}}
}

func (s *fakeEnrollmentStore) CreateEnrollment(_ context.Context, enr model.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byId {
		if existing.AttendeeId == enr.AttendeeId && existing.ConferenceId == enr.ConferenceId {
			return ErrAlreadyRegistered
		}
	}
	s.byId[enr.Id] = enr
	return nil
}

func (s *fakeEnrollmentStore) GetEnrollment(_ context.Context, id primitive.ObjectID) (model.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	enr, ok := s.byId[id]
	if !ok {
		return model.Enrollment{}, ErrEnrollmentNotFound
	}
	return enr, nil
}

func (s *fakeEnrollmentStore) FindEnrollment(_ context.Context, attendeeId, conferenceId primitive.ObjectID) (model.Enrollment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, enr := range s.byId {
		if enr.AttendeeId == attendeeId && enr.ConferenceId == conferenceId {
			return enr, true, nil
		}
	}
	return model.Enrollment{}, false, nil
}

func (s *fakeEnrollmentStore) ListEnrollments(_ context.Context, attendeeId primitive.ObjectID) ([]model.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Enrollment{}
	for _, enr := range s.byId {
		if enr.AttendeeId == attendeeId {
			out = append(out, enr)
		}
	}
	return out, nil
}

func (s *fakeEnrollmentStore) DeleteEnrollment(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDelete {
		return errors.New("simulated delete failure")
	}
	if _, ok := s.byId[id]; !ok {
		return ErrEnrollmentNotFound
	}
	delete(s.byId, id)
	return nil
}

func (s *fakeEnrollmentStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byId)
}

type fakeIntentStore struct {
	mu      sync.Mutex
	intents map[string]model.PaymentIntent
}

func newFakeIntentStore() *fakeIntentStore {
	return &fakeIntentStore{intents: map[string]model.PaymentIntent{}}
}

func (s *fakeIntentStore) SaveIntent(_ context.Context, intent model.PaymentIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents[intent.PaymentId] = intent
	return nil
}

func (s *fakeIntentStore) GetIntent(_ context.Context, paymentId string) (model.PaymentIntent, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent, ok := s.intents[paymentId]
	return intent, ok, nil
}

func (s *fakeIntentStore) DeleteIntent(_ context.Context, paymentId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.intents, paymentId)
	return nil
}

type fakeGateway struct {
	mu              sync.Mutex
	chargeErr       error
	blockCharge     bool
	redirect        RedirectIntent
	captureApproved bool
	captureErr      error
	chargeCalls     int
	captureCalls    int
}

func (g *fakeGateway) Charge(ctx context.Context, _ ChargeRequest) error {
	g.mu.Lock()
	g.chargeCalls++
	blocked, err := g.blockCharge, g.chargeErr
	g.mu.Unlock()
	if blocked {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (g *fakeGateway) CreateRedirectIntent(context.Context, float64, model.Currency, string, string) (RedirectIntent, error) {
	return g.redirect, nil
}

func (g *fakeGateway) CaptureRedirectIntent(context.Context, string, string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.captureCalls++
	return g.captureApproved, g.captureErr
}

type fakeUserStore struct{}

func (fakeUserStore) GetUser(_ context.Context, id primitive.ObjectID) (model.UserData, error) {
	return model.UserData{Id: id, Login: "attendee@example.com", Role: model.RoleAttendee}, nil
}

type fakeNotifier struct {
	sent chan model.Enrollment
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan model.Enrollment, 8)}
}

func (n *fakeNotifier) RegistrationConfirmed(_ model.UserData, _ model.Conference, enr model.Enrollment) error {
	n.sent <- enr
	return nil
}

type testEnv struct {
	orch        *Orchestrator
	conferences *fakeConferenceStore
	enrollments *fakeEnrollmentStore
	intents     *fakeIntentStore
	gateway     *fakeGateway
	notifier    *fakeNotifier
}

func newTestEnv() *testEnv {
	env := &testEnv{
		conferences: newFakeConferenceStore(),
		enrollments: newFakeEnrollmentStore(),
		intents:     newFakeIntentStore(),
		gateway:     &fakeGateway{},
		notifier:    newFakeNotifier(),
	}
	env.orch = NewOrchestrator(
		env.conferences, env.enrollments, env.intents, fakeUserStore{},
		env.gateway, env.notifier, 50*time.Millisecond, zerolog.Nop())
	return env
}

func attendee() Caller {
	return Caller{Id: primitive.NewObjectID(), Role: model.RoleAttendee}
}

func testConference(price float64, maxAttendees int) model.Conference {
	return model.Conference{
		Id:           primitive.NewObjectID(),
		Title:        "GopherCon",
		TicketPrice:  price,
		Currency:     model.CurrencyUSD,
		MaxAttendees: maxAttendees,
	}
}

func TestFreeRegistrationSucceedsOnce(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 10)
	env.conferences.add(conf)
	caller := attendee()

	outcome, err := env.orch.AttemptRegister(context.Background(), caller, conf.Id, Free{})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Attendees)
	assert.Equal(t, model.EnrollmentConfirmed, outcome.Enrollment.Status)
	assert.Equal(t, model.PaymentCompleted, outcome.Enrollment.PaymentStatus)
	assert.Equal(t, model.PaymentMethodFree, outcome.Enrollment.PaymentMethod)

	_, err = env.orch.AttemptRegister(context.Background(), caller, conf.Id, Free{})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Equal(t, 1, env.conferences.attendees(conf.Id))
	assert.Equal(t, 1, env.enrollments.count())
}

func TestRegisterUnknownConference(t *testing.T) {
	env := newTestEnv()

	_, err := env.orch.AttemptRegister(context.Background(), attendee(), primitive.NewObjectID(), Free{})
	assert.ErrorIs(t, err, ErrConferenceNotFound)
}

func TestRegisterFullConference(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 2)
	conf.Attendees = 2
	env.conferences.add(conf)

	_, err := env.orch.AttemptRegister(context.Background(), attendee(), conf.Id, Free{})
	assert.ErrorIs(t, err, ErrConferenceFull)
	assert.Equal(t, 2, env.conferences.attendees(conf.Id))
	assert.Equal(t, 0, env.enrollments.count())
}

func TestOrganizerCannotRegister(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 10)
	env.conferences.add(conf)

	organizer := Caller{Id: primitive.NewObjectID(), Role: model.RoleOrganizer}
	_, err := env.orch.AttemptRegister(context.Background(), organizer, conf.Id, Free{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConcurrentRegistrationsNearCapacity(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 1)
	env.conferences.add(conf)

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := env.orch.AttemptRegister(context.Background(), attendee(), conf.Id, Free{})
			results <- err
		}()
	}

	var successes, fulls int
	for i := 0; i < 2; i++ {
		switch err := <-results; {
		case err == nil:
			successes++
		case errors.Is(err, ErrConferenceFull):
			fulls++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, fulls)
	assert.Equal(t, 1, env.conferences.attendees(conf.Id))
	assert.Equal(t, 1, env.enrollments.count())
}

func TestConcurrentDuplicatePair(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 10)
	env.conferences.add(conf)
	caller := attendee()

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := env.orch.AttemptRegister(context.Background(), caller, conf.Id, Free{})
			results <- err
		}()
	}

	var successes, duplicates int
	for i := 0; i < 2; i++ {
		switch err := <-results; {
		case err == nil:
			successes++
		case errors.Is(err, ErrAlreadyRegistered):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, duplicates)
	assert.Equal(t, 1, env.conferences.attendees(conf.Id))
	assert.Equal(t, 1, env.enrollments.count())
}

func TestCardChargeSuccess(t *testing.T) {
	env := newTestEnv()
	conf := testConference(50, 10)
	env.conferences.add(conf)

	outcome, err := env.orch.AttemptRegister(context.Background(), attendee(), conf.Id,
		CardPayment{Card: model.CardDetails{Number: "4242424242424242", Expiry: "12/30", CVV: "123", Name: "Jo Doe"}})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentMethodCard, outcome.Enrollment.PaymentMethod)
	assert.NotEmpty(t, outcome.Enrollment.PaymentReference)
	assert.Equal(t, 1, outcome.Attendees)
	assert.Equal(t, 1, env.gateway.chargeCalls)
}

func TestCardDeclineLeavesNoState(t *testing.T) {
	env := newTestEnv()
	env.gateway.chargeErr = &PaymentError{Reason: "card declined by issuer"}
	conf := testConference(50, 10)
	env.conferences.add(conf)
	caller := attendee()

	_, err := env.orch.AttemptRegister(context.Background(), caller, conf.Id,
		CardPayment{Card: model.CardDetails{Number: "4000000000000002", Expiry: "12/30", CVV: "123", Name: "Jo Doe"}})

	var payErr *PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, "card declined by issuer", payErr.Reason)
	assert.Equal(t, 0, env.conferences.attendees(conf.Id))
	assert.Equal(t, 0, env.enrollments.count())

	_, registered, findErr := env.enrollments.FindEnrollment(context.Background(), caller.Id, conf.Id)
	require.NoError(t, findErr)
	assert.False(t, registered)
}

func TestCardChargeTimeout(t *testing.T) {
	env := newTestEnv()
	env.gateway.blockCharge = true
	conf := testConference(50, 10)
	env.conferences.add(conf)

	_, err := env.orch.AttemptRegister(context.Background(), attendee(), conf.Id,
		CardPayment{Card: model.CardDetails{Number: "4242424242424242", Expiry: "12/30", CVV: "123", Name: "Jo Doe"}})

	var payErr *PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, 0, env.enrollments.count())
	assert.Equal(t, 0, env.conferences.attendees(conf.Id))
}

func TestFreePathOverridesDeclaredMethod(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 10)
	env.conferences.add(conf)

	outcome, err := env.orch.AttemptRegister(context.Background(), attendee(), conf.Id,
		CardPayment{Card: model.CardDetails{}})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentMethodFree, outcome.Enrollment.PaymentMethod)
	assert.Equal(t, 0, env.gateway.chargeCalls)
}

func TestPayPalPhaseOneCreatesNoEnrollment(t *testing.T) {
	env := newTestEnv()
	env.gateway.redirect = RedirectIntent{PaymentId: "PAY-1", ApprovalUrl: "https://paypal.example/approve"}
	conf := testConference(50, 10)
	env.conferences.add(conf)
	caller := attendee()

	outcome, err := env.orch.AttemptRegister(context.Background(), caller, conf.Id, PayPalRedirect{})
	require.NoError(t, err)
	require.NotNil(t, outcome.Redirect)
	assert.Equal(t, "PAY-1", outcome.Redirect.PaymentId)
	assert.Equal(t, 0, env.enrollments.count())
	assert.Equal(t, 0, env.conferences.attendees(conf.Id))

	intent, found, err := env.intents.GetIntent(context.Background(), "PAY-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, caller.Id, intent.AttendeeId)
	assert.Equal(t, conf.Id, intent.ConferenceId)
	assert.Equal(t, 50.0, intent.Amount)
}

func startPayPalFlow(t *testing.T, env *testEnv, conf model.Conference, caller Caller, paymentId string) {
	t.Helper()
	env.gateway.redirect = RedirectIntent{PaymentId: paymentId, ApprovalUrl: "https://paypal.example/approve"}
	_, err := env.orch.AttemptRegister(context.Background(), caller, conf.Id, PayPalRedirect{})
	require.NoError(t, err)
}

func TestPayPalCallbackConfirms(t *testing.T) {
	env := newTestEnv()
	env.gateway.captureApproved = true
	conf := testConference(50, 10)
	env.conferences.add(conf)
	caller := attendee()
	startPayPalFlow(t, env, conf, caller, "PAY-1")

	outcome, err := env.orch.ConfirmPayPalCallback(context.Background(), caller, "PAY-1", "PAYER-1", conf.Id)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentMethodPayPal, outcome.Enrollment.PaymentMethod)
	assert.Equal(t, "PAY-1", outcome.Enrollment.PaymentReference)
	assert.Equal(t, 1, outcome.Attendees)

	_, found, _ := env.intents.GetIntent(context.Background(), "PAY-1")
	assert.False(t, found, "intent should be consumed")
}

func TestPayPalCallbackWithoutCaller(t *testing.T) {
	env := newTestEnv()
	env.gateway.captureApproved = true
	conf := testConference(50, 10)
	env.conferences.add(conf)
	caller := attendee()
	startPayPalFlow(t, env, conf, caller, "PAY-1")

	// the return leg arrives on the buyer's bare browser, so no caller
	// identity; the stored intent pins the enrollee
	outcome, err := env.orch.ConfirmPayPalCallback(context.Background(), Caller{}, "PAY-1", "PAYER-1", conf.Id)
	require.NoError(t, err)
	assert.Equal(t, caller.Id, outcome.Enrollment.AttendeeId)
	assert.Equal(t, 1, env.conferences.attendees(conf.Id))
}

func TestPayPalCallbackIdempotent(t *testing.T) {
	env := newTestEnv()
	env.gateway.captureApproved = true
	conf := testConference(50, 10)
	env.conferences.add(conf)
	caller := attendee()
	startPayPalFlow(t, env, conf, caller, "PAY-1")

	first, err := env.orch.ConfirmPayPalCallback(context.Background(), caller, "PAY-1", "PAYER-1", conf.Id)
	require.NoError(t, err)

	second, err := env.orch.ConfirmPayPalCallback(context.Background(), caller, "PAY-1", "PAYER-1", conf.Id)
	require.NoError(t, err)

	assert.Equal(t, first.Enrollment.Id, second.Enrollment.Id)
	assert.Equal(t, 1, env.conferences.attendees(conf.Id))
	assert.Equal(t, 1, env.enrollments.count())
	assert.Equal(t, 1, env.gateway.captureCalls, "already-confirmed payment must not be captured again")
}

func TestPayPalCallbackNotApproved(t *testing.T) {
	env := newTestEnv()
	env.gateway.captureApproved = false
	conf := testConference(50, 10)
	env.conferences.add(conf)
	caller := attendee()
	startPayPalFlow(t, env, conf, caller, "PAY-1")

	_, err := env.orch.ConfirmPayPalCallback(context.Background(), caller, "PAY-1", "PAYER-1", conf.Id)
	assert.ErrorIs(t, err, ErrPaymentNotApproved)
	assert.Equal(t, 0, env.enrollments.count())
	assert.Equal(t, 0, env.conferences.attendees(conf.Id))
}

func TestPayPalCallbackConferenceMismatch(t *testing.T) {
	env := newTestEnv()
	env.gateway.captureApproved = true
	conf := testConference(50, 10)
	other := testConference(25, 10)
	env.conferences.add(conf)
	env.conferences.add(other)
	caller := attendee()
	startPayPalFlow(t, env, conf, caller, "PAY-1")

	_, err := env.orch.ConfirmPayPalCallback(context.Background(), caller, "PAY-1", "PAYER-1", other.Id)
	assert.ErrorIs(t, err, ErrPaymentNotApproved)
	assert.Equal(t, 0, env.enrollments.count())
	assert.Equal(t, 0, env.gateway.captureCalls)
}

func TestPayPalCallbackUnknownPayment(t *testing.T) {
	env := newTestEnv()
	conf := testConference(50, 10)
	env.conferences.add(conf)

	_, err := env.orch.ConfirmPayPalCallback(context.Background(), attendee(), "PAY-UNKNOWN", "PAYER-1", conf.Id)
	assert.ErrorIs(t, err, ErrPaymentNotApproved)
}

func TestCancelRemovesSeat(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 10)
	env.conferences.add(conf)
	caller := attendee()

	outcome, err := env.orch.AttemptRegister(context.Background(), caller, conf.Id, Free{})
	require.NoError(t, err)

	require.NoError(t, env.orch.Cancel(context.Background(), caller, outcome.Enrollment.Id))
	assert.Equal(t, 0, env.conferences.attendees(conf.Id))
	assert.Equal(t, 0, env.enrollments.count())

	err = env.orch.Cancel(context.Background(), caller, outcome.Enrollment.Id)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
	assert.Equal(t, 0, env.conferences.attendees(conf.Id))
}

func TestCancelUnknownEnrollment(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 10)
	env.conferences.add(conf)

	err := env.orch.Cancel(context.Background(), attendee(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
	assert.Equal(t, 0, env.conferences.attendees(conf.Id))
}

func TestCancelSomeoneElsesEnrollment(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 10)
	env.conferences.add(conf)
	owner := attendee()

	outcome, err := env.orch.AttemptRegister(context.Background(), owner, conf.Id, Free{})
	require.NoError(t, err)

	err = env.orch.Cancel(context.Background(), attendee(), outcome.Enrollment.Id)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 1, env.conferences.attendees(conf.Id))
	assert.Equal(t, 1, env.enrollments.count())
}

func TestCancelClampsCounterAtZero(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 10)
	env.conferences.add(conf)
	caller := attendee()

	// corrupt state on purpose: an enrollment with no matching increment
	enr := model.Enrollment{
		Id:           primitive.NewObjectID(),
		AttendeeId:   caller.Id,
		ConferenceId: conf.Id,
		Status:       model.EnrollmentConfirmed,
	}
	require.NoError(t, env.enrollments.CreateEnrollment(context.Background(), enr))

	require.NoError(t, env.orch.Cancel(context.Background(), caller, enr.Id))
	assert.Equal(t, 0, env.conferences.attendees(conf.Id))
}

func TestCompensationOnIncrementFailure(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 10)
	env.conferences.add(conf)
	env.conferences.incErr = errors.New("simulated write failure")

	_, err := env.orch.AttemptRegister(context.Background(), attendee(), conf.Id, Free{})
	require.Error(t, err)
	assert.Equal(t, 0, env.enrollments.count(), "enrollment must be compensated away")
}

func TestFailedCompensationIsInvariantError(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 10)
	env.conferences.add(conf)
	env.conferences.incErr = errors.New("simulated write failure")
	env.enrollments.failDelete = true

	_, err := env.orch.AttemptRegister(context.Background(), attendee(), conf.Id, Free{})

	var invErr *InvariantError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "register", invErr.Op)
}

func TestNotificationFiredOnConfirmation(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 10)
	env.conferences.add(conf)

	outcome, err := env.orch.AttemptRegister(context.Background(), attendee(), conf.Id, Free{})
	require.NoError(t, err)

	select {
	case sent := <-env.notifier.sent:
		assert.Equal(t, outcome.Enrollment.Id, sent.Id)
	case <-time.After(time.Second):
		t.Fatal("expected a confirmation notification")
	}
}

func TestIsRegisteredAndList(t *testing.T) {
	env := newTestEnv()
	conf := testConference(0, 10)
	env.conferences.add(conf)
	caller := attendee()

	registered, err := env.orch.IsRegistered(context.Background(), caller, conf.Id)
	require.NoError(t, err)
	assert.False(t, registered)

	_, err = env.orch.AttemptRegister(context.Background(), caller, conf.Id, Free{})
	require.NoError(t, err)

	registered, err = env.orch.IsRegistered(context.Background(), caller, conf.Id)
	require.NoError(t, err)
	assert.True(t, registered)

	enrollments, err := env.orch.ListEnrollments(context.Background(), caller)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, conf.Id, enrollments[0].ConferenceId)
}
