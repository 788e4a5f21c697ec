package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/homedeco/marketplace/internal/models"
	"github.com/homedeco/marketplace/internal/platform/db/dbtest"
	"github.com/homedeco/marketplace/pkg/tool"
	"github.com/homedeco/marketplace/pkg/types"
)

type fakeGateway struct {
	createErr   error
	getErr      error
	sessions    map[string]*Session
	lastCreated *CreateSessionRequest
}

func (f *fakeGateway) CreateSession(_ context.Context, req *CreateSessionRequest) (*Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastCreated = req
	return &Session{
		ID:          "cs_test_1",
		Status:      "open",
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		Email:       req.CustomerEmail,
		RedirectURL: "https://checkout.example/cs_test_1",
		Metadata:    req.Metadata,
	}, nil
}

func (f *fakeGateway) GetSession(_ context.Context, id string) (*Session, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	sess, ok := f.sessions[id]
	if !ok {
		return nil, errors.New("no such session")
	}
	return sess, nil
}

func newTestService(t *testing.T, gw Gateway) (*Service, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	return NewService(zap.NewNop().Sugar(), db, gw), db
}

func seedBooking(t *testing.T, db *gorm.DB, email string, cost float64) *models.Booking {
	t.Helper()
	b := &models.Booking{
		ID:            tool.GenerateUUIDV7(),
		CustomerEmail: email,
		ServicesID:    "svc-1",
		ServiceName:   "Wall Painting",
		TrackingID:    tool.GenerateTrackingID(time.Now()),
		Cost:          cost,
		Currency:      "usd",
		PaymentStatus: types.PaymentStatusPending,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func paidSession(b *models.Booking, txnID string) *Session {
	return &Session{
		ID:            "cs_test_1",
		Status:        SessionStatusPaid,
		TransactionID: txnID,
		Email:         b.CustomerEmail,
		AmountMinor:   int64(b.Cost * 100),
		Currency:      b.Currency,
		Metadata: map[string]string{
			"booking_id":   b.ID,
			"tracking_id":  b.TrackingID,
			"services_id":  b.ServicesID,
			"service_name": b.ServiceName,
		},
	}
}

func TestStartCheckout_BuildsSession(t *testing.T) {
	gw := &fakeGateway{}
	svc, db := newTestService(t, gw)
	b := seedBooking(t, db, "alice@x.com", 50)

	resp, err := svc.StartCheckout(context.Background(), &StartCheckoutRequest{
		BookingID:   b.ID,
		TrackingID:  b.TrackingID,
		ServicesID:  b.ServicesID,
		ServiceName: b.ServiceName,
		Cost:        b.Cost,
		Email:       b.CustomerEmail,
	})
	require.NoError(t, err)
	require.Equal(t, "https://checkout.example/cs_test_1", resp.RedirectURL)
	require.EqualValues(t, 5000, gw.lastCreated.AmountMinor)
	require.Equal(t, "usd", gw.lastCreated.Currency)
	require.Equal(t, b.ID, gw.lastCreated.Metadata["booking_id"])
	require.Equal(t, b.TrackingID, gw.lastCreated.Metadata["tracking_id"])
}

func TestStartCheckout_RoundsMinorUnits(t *testing.T) {
	gw := &fakeGateway{}
	svc, _ := newTestService(t, gw)

	_, err := svc.StartCheckout(context.Background(), &StartCheckoutRequest{
		BookingID:   "b1",
		TrackingID:  "t1",
		ServicesID:  "s1",
		ServiceName: "Shelving",
		Cost:        19.99,
		Email:       "alice@x.com",
	})
	require.NoError(t, err)
	require.EqualValues(t, 1999, gw.lastCreated.AmountMinor)
}

func TestStartCheckout_GatewayFailure(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("boom")}
	svc, _ := newTestService(t, gw)

	_, err := svc.StartCheckout(context.Background(), &StartCheckoutRequest{
		BookingID:   "b1",
		TrackingID:  "t1",
		ServicesID:  "s1",
		ServiceName: "n",
		Cost:        1,
		Email:       "alice@x.com",
	})
	require.ErrorIs(t, err, ErrGateway)
}

func TestConfirm_ReconcilesBookingAndLedger(t *testing.T) {
	gw := &fakeGateway{sessions: map[string]*Session{}}
	svc, db := newTestService(t, gw)
	b := seedBooking(t, db, "alice@x.com", 50)
	gw.sessions["cs_test_1"] = paidSession(b, "pi_123")

	res, err := svc.Confirm(context.Background(), "cs_test_1")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "pi_123", res.TransactionID)
	require.Equal(t, b.TrackingID, res.TrackingID)

	var got models.Booking
	require.NoError(t, db.First(&got, "id = ?", b.ID).Error)
	require.Equal(t, types.PaymentStatusPaid, got.PaymentStatus)
	require.Equal(t, types.WorkStatusPending, got.ServiceWorkStatus)
	require.NotNil(t, got.TransactionID)
	require.Equal(t, "pi_123", *got.TransactionID)
	require.NotNil(t, got.PaidAt)

	var pays []models.Payment
	require.NoError(t, db.Find(&pays).Error)
	require.Len(t, pays, 1)
	require.Equal(t, float64(50), pays[0].Amount)
	require.Equal(t, "alice@x.com", pays[0].Email)
	require.Equal(t, b.ID, pays[0].BookingID)
}

func TestConfirm_IsIdempotent(t *testing.T) {
	gw := &fakeGateway{sessions: map[string]*Session{}}
	svc, db := newTestService(t, gw)
	b := seedBooking(t, db, "alice@x.com", 50)
	gw.sessions["cs_test_1"] = paidSession(b, "pi_123")

	first, err := svc.Confirm(context.Background(), "cs_test_1")
	require.NoError(t, err)
	second, err := svc.Confirm(context.Background(), "cs_test_1")
	require.NoError(t, err)
	require.Equal(t, first, second)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestConfirm_ConcurrentDuplicateReturnsPriorPayment(t *testing.T) {
	gw := &fakeGateway{sessions: map[string]*Session{}}
	svc, db := newTestService(t, gw)
	b := seedBooking(t, db, "alice@x.com", 50)
	gw.sessions["cs_test_1"] = paidSession(b, "pi_123")

	rival := &models.Payment{
		ID:            tool.GenerateUUIDV7(),
		BookingID:     b.ID,
		TrackingID:    b.TrackingID,
		TransactionID: "pi_123",
		Amount:        50,
		Currency:      "usd",
		Email:         "alice@x.com",
		PaidAt:        time.Now(),
	}
	// Land a rival payment after the existence check but before the
	// reconciling transaction writes, so its insert trips the unique
	// index on transaction_id.
	injected := false
	err := db.Callback().Query().Before("gorm:query").Register("rival_confirm", func(tx *gorm.DB) {
		if injected {
			return
		}
		if _, ok := tx.Statement.Dest.(*models.Booking); !ok {
			return
		}
		injected = true
		require.NoError(t, db.Session(&gorm.Session{NewDB: true}).Create(rival).Error)
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Callback().Query().Remove("rival_confirm") })

	res, err := svc.Confirm(context.Background(), "cs_test_1")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.True(t, injected)
	require.Equal(t, "pi_123", res.TransactionID)
	require.Equal(t, b.TrackingID, res.TrackingID)

	var pays []models.Payment
	require.NoError(t, db.Find(&pays).Error)
	require.Len(t, pays, 1)
	require.Equal(t, rival.ID, pays[0].ID)
}

func TestConfirm_UnpaidSessionLeavesBookingUntouched(t *testing.T) {
	gw := &fakeGateway{sessions: map[string]*Session{}}
	svc, db := newTestService(t, gw)
	b := seedBooking(t, db, "alice@x.com", 50)
	sess := paidSession(b, "pi_123")
	sess.Status = "unpaid"
	gw.sessions["cs_test_1"] = sess

	res, err := svc.Confirm(context.Background(), "cs_test_1")
	require.NoError(t, err)
	require.False(t, res.Success)

	var got models.Booking
	require.NoError(t, db.First(&got, "id = ?", b.ID).Error)
	require.Equal(t, types.PaymentStatusPending, got.PaymentStatus)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestConfirm_OpenSessionWithoutTransactionID(t *testing.T) {
	gw := &fakeGateway{sessions: map[string]*Session{}}
	svc, db := newTestService(t, gw)
	b := seedBooking(t, db, "alice@x.com", 50)
	sess := paidSession(b, "")
	sess.Status = "unpaid"
	gw.sessions["cs_test_1"] = sess

	res, err := svc.Confirm(context.Background(), "cs_test_1")
	require.NoError(t, err)
	require.False(t, res.Success)

	var got models.Booking
	require.NoError(t, db.First(&got, "id = ?", b.ID).Error)
	require.Equal(t, types.PaymentStatusPending, got.PaymentStatus)
}

func TestConfirm_PaidSessionWithoutTransactionID(t *testing.T) {
	gw := &fakeGateway{sessions: map[string]*Session{}}
	svc, db := newTestService(t, gw)
	b := seedBooking(t, db, "alice@x.com", 50)
	sess := paidSession(b, "")
	gw.sessions["cs_test_1"] = sess

	_, err := svc.Confirm(context.Background(), "cs_test_1")
	require.ErrorIs(t, err, ErrGateway)
}

func TestConfirm_UnknownBooking(t *testing.T) {
	gw := &fakeGateway{sessions: map[string]*Session{}}
	svc, _ := newTestService(t, gw)
	gw.sessions["cs_test_1"] = &Session{
		ID:            "cs_test_1",
		Status:        SessionStatusPaid,
		TransactionID: "pi_123",
		Metadata:      map[string]string{"booking_id": "missing"},
	}

	_, err := svc.Confirm(context.Background(), "cs_test_1")
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirm_RetrieveFailure(t *testing.T) {
	gw := &fakeGateway{getErr: errors.New("network down")}
	svc, _ := newTestService(t, gw)

	_, err := svc.Confirm(context.Background(), "cs_test_1")
	require.ErrorIs(t, err, ErrGateway)
}

func TestHistory_FiltersByEmailAndSorts(t *testing.T) {
	gw := &fakeGateway{}
	svc, db := newTestService(t, gw)

	old := &models.Payment{
		ID:            tool.GenerateUUIDV7(),
		BookingID:     "b1",
		TrackingID:    "t1",
		TransactionID: "pi_1",
		Amount:        50,
		Currency:      "usd",
		Email:         "alice@x.com",
		PaidAt:        time.Now().Add(-time.Hour),
	}
	recent := &models.Payment{
		ID:            tool.GenerateUUIDV7(),
		BookingID:     "b2",
		TrackingID:    "t2",
		TransactionID: "pi_2",
		Amount:        75,
		Currency:      "usd",
		Email:         "alice@x.com",
		PaidAt:        time.Now(),
	}
	other := &models.Payment{
		ID:            tool.GenerateUUIDV7(),
		BookingID:     "b3",
		TrackingID:    "t3",
		TransactionID: "pi_3",
		Amount:        10,
		Currency:      "usd",
		Email:         "bob@x.com",
		PaidAt:        time.Now(),
	}
	require.NoError(t, db.Create([]*models.Payment{old, recent, other}).Error)

	res, err := svc.History(context.Background(), &HistoryRequest{Email: "alice@x.com", Sort: types.SortOrderDesc})
	require.NoError(t, err)
	require.EqualValues(t, 2, res.Total)
	require.Equal(t, "pi_2", res.Items[0].TransactionID)
	require.Equal(t, "pi_1", res.Items[1].TransactionID)

	res, err = svc.History(context.Background(), &HistoryRequest{Email: "alice@x.com", Sort: types.SortOrderAsc})
	require.NoError(t, err)
	require.Equal(t, "pi_1", res.Items[0].TransactionID)
}
