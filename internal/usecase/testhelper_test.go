//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"companion-booking/internal/domain/appointment"
	"companion-booking/internal/domain/credential"
	"companion-booking/internal/domain/quota"
	"companion-booking/internal/domain/schedule"
	"companion-booking/internal/domain/webhook"
	"companion-booking/internal/infra"
	"companion-booking/internal/infra/google"
	"companion-booking/internal/infra/repository"
	"companion-booking/internal/usecase/readmodel"

	"github.com/google/uuid"
)

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, errors.New(msg), infra.KindNotFound)
}

func conflictErr(msg string) error {
	return infra.WrapRepoErr(msg, errors.New(msg), infra.KindConflict)
}

// fakeCredentialRepo is an in-memory CredentialRepository safe for
// concurrent use.
type fakeCredentialRepo struct {
	mu    sync.Mutex
	creds map[uuid.UUID]*credential.CalendarCredential
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{creds: make(map[uuid.UUID]*credential.CalendarCredential)}
}

func (f *fakeCredentialRepo) Upsert(_ context.Context, cred *credential.CalendarCredential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creds[cred.CompanionID()] = cred
	return nil
}

func (f *fakeCredentialRepo) FindByCompanion(_ context.Context, companionID uuid.UUID) (*credential.CalendarCredential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cred, ok := f.creds[companionID]
	if !ok {
		return nil, notFoundErr("credential not found")
	}
	return cred, nil
}

func (f *fakeCredentialRepo) Delete(_ context.Context, companionID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.creds, companionID)
	return nil
}

func (f *fakeCredentialRepo) has(companionID uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.creds[companionID]
	return ok
}

// fakeAuthProvider counts refreshes so tests can assert single-flight
// behavior.
type fakeAuthProvider struct {
	mu           sync.Mutex
	refreshCount int
	refreshErr   error
	refreshDelay time.Duration
	nextTokens   credential.Tokens
}

func (f *fakeAuthProvider) AuthCodeURL(state string) string {
	return "https://provider.example.com/auth?state=" + state
}

func (f *fakeAuthProvider) ExchangeCode(_ context.Context, code string) (credential.Tokens, error) {
	return f.nextTokens, nil
}

func (f *fakeAuthProvider) RefreshTokens(_ context.Context, refreshToken string) (credential.Tokens, error) {
	if f.refreshDelay > 0 {
		time.Sleep(f.refreshDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCount++
	if f.refreshErr != nil {
		return credential.Tokens{}, f.refreshErr
	}
	return f.nextTokens, nil
}

func (f *fakeAuthProvider) refreshes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshCount
}

// fakeCalendarProvider scripts FreeBusy/Watch outcomes per call.
type fakeCalendarProvider struct {
	mu        sync.Mutex
	calls     int
	freeBusy  []schedule.BusyInterval
	errs      []error
	watch     google.WatchResult
	watchErr  error
	stopErr   error
	stopped   []string
	lastToken string
}

func (f *fakeCalendarProvider) FreeBusy(_ context.Context, accessToken, _ string, _, _ time.Time) ([]schedule.BusyInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastToken = accessToken
	idx := f.calls
	f.calls++
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	return f.freeBusy, nil
}

func (f *fakeCalendarProvider) Watch(_ context.Context, accessToken, _, channelID, token, _ string, _ time.Duration) (google.WatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastToken = accessToken
	f.calls++
	if f.watchErr != nil {
		return google.WatchResult{}, f.watchErr
	}
	if f.watch.ChannelID == "" {
		return google.WatchResult{ChannelID: channelID, ResourceID: "res-" + channelID, Expiration: time.Now().Add(time.Hour)}, nil
	}
	return f.watch, nil
}

func (f *fakeCalendarProvider) StopChannel(_ context.Context, _, channelID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = append(f.stopped, channelID)
	return f.stopErr
}

func (f *fakeCalendarProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeCalendarProvider) stoppedChannels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.stopped...)
}

// fakeChannelRepo is an in-memory ChannelRepository keyed both ways.
type fakeChannelRepo struct {
	mu         sync.Mutex
	byExternal map[string]*webhook.Channel
}

func newFakeChannelRepo() *fakeChannelRepo {
	return &fakeChannelRepo{byExternal: make(map[string]*webhook.Channel)}
}

func (f *fakeChannelRepo) Replace(_ context.Context, ch *webhook.Channel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.byExternal {
		if existing.CompanionID == ch.CompanionID {
			delete(f.byExternal, id)
		}
	}
	f.byExternal[ch.ExternalChannelID] = ch
	return nil
}

func (f *fakeChannelRepo) FindByExternalID(_ context.Context, externalChannelID string) (*webhook.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.byExternal[externalChannelID]
	if !ok {
		return nil, notFoundErr("channel not found")
	}
	return ch, nil
}

func (f *fakeChannelRepo) FindByCompanion(_ context.Context, companionID uuid.UUID) (*webhook.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.byExternal {
		if ch.CompanionID == companionID {
			return ch, nil
		}
	}
	return nil, notFoundErr("channel not found")
}

// fakeDedupStore mirrors the insert-once table semantics.
type fakeDedupStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newFakeDedupStore() *fakeDedupStore {
	return &fakeDedupStore{seen: make(map[string]bool)}
}

func (f *fakeDedupStore) TryInsert(_ context.Context, externalChannelID, resourceState string, messageNumber int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := externalChannelID + "|" + resourceState + "|" + strconv.FormatInt(messageNumber, 10)
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

// syncRunner runs background tasks inline so tests see their effects.
type syncRunner struct{}

func (syncRunner) Go(fn func()) { fn() }

// fakeAppointmentRepo stores appointments in memory and enforces the
// active-overlap rule the way the exclusion constraint does.
type fakeAppointmentRepo struct {
	mu    sync.Mutex
	appts map[uuid.UUID]*appointment.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[uuid.UUID]*appointment.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, _ repository.DBTX, a *appointment.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.appts {
		if existing.CompanionID() == a.CompanionID() &&
			existing.Status().IsActive() &&
			existing.Slot().Overlaps(a.Slot()) {
			return conflictErr("active overlap")
		}
	}
	f.appts[a.ID()] = a
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ repository.DBTX, id uuid.UUID, status appointment.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return notFoundErr("appointment not found")
	}
	f.appts[id] = appointment.ReconstructAppointment(
		a.ID(), a.CompanionID(), a.UserID(), a.Slot(), status, a.CreatedAt(), a.UpdatedAt())
	return nil
}

func (f *fakeAppointmentRepo) HasActiveOverlap(_ context.Context, _ repository.DBTX, companionID uuid.UUID, start, end time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, err := appointment.NewTimeSlot(start, end)
	if err != nil {
		return false, err
	}
	for _, existing := range f.appts {
		if existing.CompanionID() == companionID &&
			existing.Status().IsActive() &&
			existing.Slot().Overlaps(slot) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return nil, notFoundErr("appointment not found")
	}
	return a, nil
}

func (f *fakeAppointmentRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*appointment.Appointment
	for _, a := range f.appts {
		if a.UserID() == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) activeCount(companionID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, a := range f.appts {
		if a.CompanionID() == companionID && a.Status().IsActive() {
			n++
		}
	}
	return n
}

// fakeQuotaRepo enforces the check-and-increment ceiling atomically.
type fakeQuotaRepo struct {
	mu     sync.Mutex
	quotas map[uuid.UUID]*quota.SubscriptionQuota
}

func newFakeQuotaRepo() *fakeQuotaRepo {
	return &fakeQuotaRepo{quotas: make(map[uuid.UUID]*quota.SubscriptionQuota)}
}

func (f *fakeQuotaRepo) set(userID uuid.UUID, plan quota.PlanType, allowed *int32, used int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotas[userID] = &quota.SubscriptionQuota{
		UserID:              userID,
		PlanType:            plan,
		InteractionsAllowed: allowed,
		InteractionsUsed:    used,
	}
}

func (f *fakeQuotaRepo) Reserve(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotas[userID]
	if !ok {
		return notFoundErr("quota not found")
	}
	if q.InteractionsAllowed != nil && q.InteractionsUsed >= *q.InteractionsAllowed {
		return conflictErr("quota exhausted")
	}
	q.InteractionsUsed++
	return nil
}

func (f *fakeQuotaRepo) Release(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotas[userID]
	if !ok {
		return notFoundErr("quota not found")
	}
	if q.InteractionsUsed > 0 {
		q.InteractionsUsed--
	}
	return nil
}

func (f *fakeQuotaRepo) FindByUser(_ context.Context, userID uuid.UUID) (*quota.SubscriptionQuota, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotas[userID]
	if !ok {
		return nil, notFoundErr("quota not found")
	}
	copied := *q
	return &copied, nil
}

func (f *fakeQuotaRepo) UpsertPlan(_ context.Context, userID uuid.UUID, plan quota.PlanType, allowed *int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotas[userID] = &quota.SubscriptionQuota{
		UserID:              userID,
		PlanType:            plan,
		InteractionsAllowed: allowed,
		InteractionsUsed:    0,
	}
	return nil
}

func (f *fakeQuotaRepo) used(userID uuid.UUID) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if q, ok := f.quotas[userID]; ok {
		return q.InteractionsUsed
	}
	return 0
}

type fakeCompanionRepo struct {
	companions map[uuid.UUID]*readmodel.CompanionRM
}

func newFakeCompanionRepo(ids ...uuid.UUID) *fakeCompanionRepo {
	f := &fakeCompanionRepo{companions: make(map[uuid.UUID]*readmodel.CompanionRM)}
	for _, id := range ids {
		f.companions[id] = &readmodel.CompanionRM{ID: id, DisplayName: "companion", Timezone: "UTC"}
	}
	return f
}

func (f *fakeCompanionRepo) FindByID(_ context.Context, id uuid.UUID) (*readmodel.CompanionRM, error) {
	rm, ok := f.companions[id]
	if !ok {
		return nil, notFoundErr("companion not found")
	}
	return rm, nil
}

// fakeTxRunner executes the function without a real transaction.
type fakeTxRunner struct{}

func (fakeTxRunner) InTx(_ context.Context, fn func(db repository.DBTX) error) error {
	return fn(nil)
}
