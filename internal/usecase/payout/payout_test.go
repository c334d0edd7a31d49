package payout

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduqar/tutor-marketplace/internal/audit"
	bookingdomain "github.com/eduqar/tutor-marketplace/internal/domain/booking"
	payoutdomain "github.com/eduqar/tutor-marketplace/internal/domain/payout"
	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

// ======================================================
// FAKES
// ======================================================

type teacherStore struct {
	teachers map[uint]*models.Teacher
}

var _ bookingdomain.Repository = (*teacherStore)(nil)

func (s *teacherStore) GetTeacherByID(_ context.Context, id uint) (*models.Teacher, error) {
	t, ok := s.teachers[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return t, nil
}

func (s *teacherStore) GetTeacherByUserID(_ context.Context, userID uint) (*models.Teacher, error) {
	for _, t := range s.teachers {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (s *teacherStore) ListAvailabilityForDate(_ context.Context, _ uint, _ time.Time) ([]models.TeacherAvailability, error) {
	return nil, nil
}

func (s *teacherStore) CreateBookingIfFree(_ context.Context, _ *models.Booking) error {
	return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
}

func (s *teacherStore) ListActiveBookingsForDate(_ context.Context, _ uint, _ time.Time) ([]models.Booking, error) {
	return nil, nil
}

func (s *teacherStore) GetBookingByID(_ context.Context, _ uint) (*models.Booking, error) {
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (s *teacherStore) UpdateBooking(_ context.Context, _ *models.Booking) error {
	return httperr.ErrBusiness(httperr.CodeNotFound)
}

func (s *teacherStore) ListBookingsForParent(_ context.Context, _ uint, _ string) ([]models.Booking, error) {
	return nil, nil
}

func (s *teacherStore) ListBookingsForTeacher(_ context.Context, _ uint, _ string) ([]models.Booking, error) {
	return nil, nil
}

type ledgerStore struct {
	records map[uint]*models.PayoutRecord
	nextID  uint
}

var _ payoutdomain.Repository = (*ledgerStore)(nil)

func newLedgerStore() *ledgerStore {
	return &ledgerStore{records: make(map[uint]*models.PayoutRecord), nextID: 1}
}

func (s *ledgerStore) CreatePayout(_ context.Context, p *models.PayoutRecord) error {
	p.ID = s.nextID
	s.nextID++
	p.CreatedAt = time.Now()
	stored := *p
	s.records[p.ID] = &stored
	return nil
}

func (s *ledgerStore) GetPayoutByID(_ context.Context, id uint) (*models.PayoutRecord, error) {
	p, ok := s.records[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	copied := *p
	return &copied, nil
}

func (s *ledgerStore) ListPayoutsForTeacher(_ context.Context, teacherID uint) ([]models.PayoutRecord, error) {
	var out []models.PayoutRecord
	for _, p := range s.records {
		if p.TeacherID == teacherID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *ledgerStore) UpdatePayout(_ context.Context, p *models.PayoutRecord) error {
	if _, ok := s.records[p.ID]; !ok {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	stored := *p
	s.records[p.ID] = &stored
	return nil
}

// ======================================================
// SETUP
// ======================================================

func accountPtr(v string) *string { return &v }

var (
	teacherActor = bookingdomain.Actor{UserID: 10}
	adminActor   = bookingdomain.Actor{UserID: 99, IsAdmin: true}
)

func setupPayout(t *testing.T) (*teacherStore, *ledgerStore, *RequestPayout, *ProcessPayout, *ListPayouts) {
	t.Helper()

	teachers := &teacherStore{teachers: map[uint]*models.Teacher{
		1: {
			ID:              1,
			UserID:          10,
			Currency:        "QAR",
			StripeAccountID: accountPtr("acct_123"),
			IsActive:        true,
		},
	}}
	ledger := newLedgerStore()
	dispatcher := audit.NewDiscardDispatcher()

	requestUC := NewRequestPayout(ledger, teachers, dispatcher)
	processUC := NewProcessPayout(ledger, dispatcher, "UTC")
	listUC := NewListPayouts(ledger, teachers)
	return teachers, ledger, requestUC, processUC, listUC
}

// ======================================================
// REQUEST
// ======================================================

func TestRequestPayout(t *testing.T) {
	_, _, requestUC, _, _ := setupPayout(t)

	record, err := requestUC.Execute(context.Background(), teacherActor, RequestPayoutInput{
		TeacherID: 1,
		Amount:    decimal.RequireFromString("150.505"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(payoutdomain.StatusPending), record.Status)
	assert.True(t, record.Amount.Equal(decimal.RequireFromString("150.50")))
	assert.Equal(t, "QAR", record.Currency)
	assert.Nil(t, record.TransferID)
	assert.Nil(t, record.ProcessedAt)
}

func TestRequestPayoutWithoutAccount(t *testing.T) {
	teachers, _, requestUC, _, _ := setupPayout(t)
	teachers.teachers[1].StripeAccountID = nil

	_, err := requestUC.Execute(context.Background(), teacherActor, RequestPayoutInput{
		TeacherID: 1,
		Amount:    decimal.RequireFromString("100"),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoPayoutAccount))
}

func TestRequestPayoutNonPositiveAmount(t *testing.T) {
	_, _, requestUC, _, _ := setupPayout(t)

	_, err := requestUC.Execute(context.Background(), teacherActor, RequestPayoutInput{
		TeacherID: 1,
		Amount:    decimal.Zero,
	})
	assert.Error(t, err)

	_, err = requestUC.Execute(context.Background(), teacherActor, RequestPayoutInput{
		TeacherID: 1,
		Amount:    decimal.RequireFromString("-5"),
	})
	assert.Error(t, err)
}

func TestRequestPayoutForeignTeacherForbidden(t *testing.T) {
	_, _, requestUC, _, _ := setupPayout(t)

	_, err := requestUC.Execute(context.Background(), bookingdomain.Actor{UserID: 55}, RequestPayoutInput{
		TeacherID: 1,
		Amount:    decimal.RequireFromString("100"),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}

// ======================================================
// PROCESS
// ======================================================

func TestProcessPayoutToPaid(t *testing.T) {
	_, ledger, requestUC, processUC, _ := setupPayout(t)

	record, err := requestUC.Execute(context.Background(), teacherActor, RequestPayoutInput{
		TeacherID: 1,
		Amount:    decimal.RequireFromString("100"),
	})
	require.NoError(t, err)

	processed, err := processUC.Execute(context.Background(), adminActor.UserID, ProcessPayoutInput{
		PayoutID:   record.ID,
		Status:     string(payoutdomain.StatusPaid),
		TransferID: "tr_789",
	})
	require.NoError(t, err)

	assert.Equal(t, string(payoutdomain.StatusPaid), processed.Status)
	require.NotNil(t, processed.TransferID)
	assert.Equal(t, "tr_789", *processed.TransferID)
	assert.NotNil(t, processed.ProcessedAt)

	// paid is terminal
	_, err = processUC.Execute(context.Background(), adminActor.UserID, ProcessPayoutInput{
		PayoutID: record.ID,
		Status:   string(payoutdomain.StatusFailed),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
	assert.Equal(t, string(payoutdomain.StatusPaid), ledger.records[record.ID].Status)
}

func TestProcessPayoutThroughProcessing(t *testing.T) {
	_, _, requestUC, processUC, _ := setupPayout(t)

	record, err := requestUC.Execute(context.Background(), teacherActor, RequestPayoutInput{
		TeacherID: 1,
		Amount:    decimal.RequireFromString("100"),
	})
	require.NoError(t, err)

	processed, err := processUC.Execute(context.Background(), adminActor.UserID, ProcessPayoutInput{
		PayoutID: record.ID,
		Status:   string(payoutdomain.StatusProcessing),
	})
	require.NoError(t, err)
	assert.Nil(t, processed.ProcessedAt) // only stamped on paid/failed

	failed, err := processUC.Execute(context.Background(), adminActor.UserID, ProcessPayoutInput{
		PayoutID: record.ID,
		Status:   string(payoutdomain.StatusFailed),
	})
	require.NoError(t, err)
	assert.NotNil(t, failed.ProcessedAt)
	assert.Nil(t, failed.TransferID)
}

// ======================================================
// LIST
// ======================================================

func TestListPayoutsScopedToOwnerOrAdmin(t *testing.T) {
	_, _, requestUC, _, listUC := setupPayout(t)

	_, err := requestUC.Execute(context.Background(), teacherActor, RequestPayoutInput{
		TeacherID: 1,
		Amount:    decimal.RequireFromString("100"),
	})
	require.NoError(t, err)

	records, err := listUC.Execute(context.Background(), teacherActor, 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = listUC.Execute(context.Background(), adminActor, 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = listUC.Execute(context.Background(), bookingdomain.Actor{UserID: 55}, 1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}
