package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"transfer-storefront/internal/common/enum"
	"transfer-storefront/internal/common/models"
	types "transfer-storefront/internal/common/type"
	"transfer-storefront/internal/pkg/moncash"
	"transfer-storefront/internal/pkg/paypal"
	"transfer-storefront/internal/pkg/rabbitmq"
	"transfer-storefront/internal/repository"
	transferRepo "transfer-storefront/internal/repository/transfer"
	wizardRepo "transfer-storefront/internal/repository/wizard"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memWizards struct {
	mu    sync.Mutex
	items map[string]models.WizardSession
}

func (m *memWizards) Get(id string) (*models.WizardSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.items[id]
	if !ok {
		return nil, wizardRepo.ErrNotFound
	}
	return &w, nil
}

func (m *memWizards) Save(w *models.WizardSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[w.ID] = *w
	return nil
}

func (m *memWizards) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

type fakePayPal struct {
	captureStatus string
	captureErr    error
	captures      int
	orders        int
}

func (f *fakePayPal) ClientToken(context.Context) (string, error) { return "client-token", nil }

func (f *fakePayPal) CreateOrder(_ context.Context, in paypal.CreateOrderInput) (*paypal.Order, error) {
	f.orders++
	return &paypal.Order{ID: "ORDER-" + in.ReferenceID[:8], Status: "CREATED"}, nil
}

func (f *fakePayPal) CaptureOrder(_ context.Context, orderID, _ string) (*paypal.Order, error) {
	f.captures++
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return &paypal.Order{
		ID:     orderID,
		Status: f.captureStatus,
		PurchaseUnits: []paypal.PurchaseUnit{{
			Payments: &paypal.Payments{Captures: []paypal.CaptureDetail{{ID: "CAP-1", Status: "COMPLETED"}}},
		}},
	}, nil
}

type fakeMonCash struct {
	payment *moncash.Payment
	orders  []string
}

func (f *fakeMonCash) CreatePayment(_ context.Context, orderID string, _ decimal.Decimal) (*moncash.PaymentLink, error) {
	f.orders = append(f.orders, orderID)
	return &moncash.PaymentLink{Token: "tok", RedirectURL: "https://moncash.test/redirect?token=tok"}, nil
}

func (f *fakeMonCash) RetrieveTransaction(context.Context, string) (*moncash.Payment, error) {
	if f.payment == nil {
		return nil, moncash.ErrNotFound
	}
	return f.payment, nil
}

func (f *fakeMonCash) RetrieveOrder(context.Context, string) (*moncash.Payment, error) {
	return f.RetrieveTransaction(context.Background(), "")
}

type fakeStorage struct {
	uploads map[string][]byte
}

func (f *fakeStorage) GetBucketName() string { return "receipts" }

func (f *fakeStorage) UploadFile(_ context.Context, key string, body []byte, _ string) error {
	f.uploads[key] = body
	return nil
}

func (f *fakeStorage) GetPresignedURL(key string) (string, error) {
	return "https://s3.test/" + key + "?sig=1", nil
}

type fakePublisher struct {
	events []types.PaymentResult
}

func (f *fakePublisher) Publish(_ context.Context, _ string, _ string, payload any) error {
	f.events = append(f.events, payload.(types.PaymentResult))
	return nil
}

type fixture struct {
	svc       *Service
	transfers *transferRepo.MemoryRepository
	paypal    *fakePayPal
	moncash   *fakeMonCash
	storage   *fakeStorage
}

func newFixture(t *testing.T, seed ...models.Transfer) *fixture {
	t.Helper()
	f := &fixture{
		transfers: transferRepo.NewMemoryRepo(seed...),
		paypal:    &fakePayPal{captureStatus: paypal.StatusCompleted},
		moncash:   &fakeMonCash{},
		storage:   &fakeStorage{uploads: map[string][]byte{}},
	}
	rp := repository.IRepository{
		Transfer: f.transfers,
		Wizard:   &memWizards{items: map[string]models.WizardSession{}},
	}
	f.svc = NewService(rp, Config{FrontendURL: "https://app.test/"}, f.paypal, f.moncash, f.storage, nil).(*Service)
	return f
}

func wizardOf(t *testing.T, res *types.Response) WizardResponse {
	t.Helper()
	require.Less(t, res.Code, 300, "%d %s %v", res.Code, res.Message, res.Error)
	w, ok := res.Data.(WizardResponse)
	require.True(t, ok, "unexpected data %T", res.Data)
	return w
}

func ptr[T any](v T) *T { return &v }

func receiverPatch() *ReceiverPatch {
	return &ReceiverPatch{
		FirstName: ptr("marie"),
		LastName:  ptr("joseph"),
		Phone:     ptr("37123456"),
		Address:   ptr("12 Rue Capois"),
		City:      ptr("port-au-prince"),
		Country:   ptr("Haiti"),
	}
}

// toPayment drives a fresh wizard to the payment step.
func (f *fixture) toPayment(t *testing.T, method enum.PaymentMethodEnum) string {
	t.Helper()
	ctx := context.Background()
	id := wizardOf(t, f.svc.StartWizard(ctx, &StartWizardRequest{SenderEmail: "sender@example.com", Amount: "150.00"})).ID
	wizardOf(t, f.svc.Next(ctx, id))
	wizardOf(t, f.svc.PatchWizard(ctx, id, &PatchWizardRequest{Receiver: receiverPatch()}))
	wizardOf(t, f.svc.Next(ctx, id))
	wizardOf(t, f.svc.PatchWizard(ctx, id, &PatchWizardRequest{PaymentMethod: &method}))
	w := wizardOf(t, f.svc.Next(ctx, id))
	require.Equal(t, enum.StepPayment, w.Step)
	return id
}

func TestWizard_NextRefusedUntilStepComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	w := wizardOf(t, f.svc.StartWizard(ctx, &StartWizardRequest{}))
	assert.Equal(t, "amount", w.StepName)
	assert.False(t, w.CanAdvance)

	res := f.svc.Next(ctx, w.ID)
	require.Equal(t, http.StatusConflict, res.Code)
	assert.ErrorIs(t, res.Error, ErrStepIncomplete)
	assert.Equal(t, []string{"amount"}, res.Data.(StepIncompleteResponse).Missing)

	wizardOf(t, f.svc.PatchWizard(ctx, w.ID, &PatchWizardRequest{Amount: ptr("99999")}))
	assert.Equal(t, http.StatusConflict, f.svc.Next(ctx, w.ID).Code)

	wizardOf(t, f.svc.PatchWizard(ctx, w.ID, &PatchWizardRequest{Amount: ptr("150")}))
	w = wizardOf(t, f.svc.Next(ctx, w.ID))
	assert.Equal(t, enum.StepRecipient, w.Step)

	res = f.svc.Next(ctx, w.ID)
	require.Equal(t, http.StatusConflict, res.Code)
	assert.Len(t, res.Data.(StepIncompleteResponse).Missing, 6)

	patch := receiverPatch()
	patch.City = ptr("  ")
	w = wizardOf(t, f.svc.PatchWizard(ctx, w.ID, &PatchWizardRequest{Receiver: patch}))
	assert.Equal(t, "+509 3712 3456", w.Receiver.Phone)
	assert.Equal(t, "HT", w.Receiver.Country)
	assert.Equal(t, []string{"receiver.city"}, w.Missing)

	wizardOf(t, f.svc.PatchWizard(ctx, w.ID, &PatchWizardRequest{Receiver: &ReceiverPatch{City: ptr("Jacmel")}}))
	w = wizardOf(t, f.svc.Next(ctx, w.ID))
	assert.Equal(t, enum.StepPaymentMethod, w.Step)

	assert.Equal(t, http.StatusConflict, f.svc.Next(ctx, w.ID).Code)

	w = wizardOf(t, f.svc.Back(ctx, w.ID))
	assert.Equal(t, enum.StepRecipient, w.Step)
}

func TestWizard_UnknownCountryRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := wizardOf(t, f.svc.StartWizard(ctx, &StartWizardRequest{Amount: "150"}))
	wizardOf(t, f.svc.Next(ctx, w.ID))

	patch := receiverPatch()
	patch.Country = ptr("Jamaica")
	res := f.svc.PatchWizard(ctx, w.ID, &PatchWizardRequest{Receiver: patch})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.ErrorIs(t, res.Error, ErrUnknownCountry)

	w = wizardOf(t, f.svc.GetWizard(ctx, w.ID))
	assert.Empty(t, w.Receiver.Country)
	assert.Empty(t, w.Receiver.FirstName)

	stale := &models.WizardSession{Step: enum.StepRecipient}
	stale.Receiver = models.Receiver{FirstName: "a", LastName: "b", Phone: "1", Address: "c", City: "d", Country: "JAMAICA"}
	assert.Equal(t, []string{"receiver.country"}, CanAdvance(stale, decimal.NewFromInt(1000)))
}

func TestPayPalFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.toPayment(t, enum.PaymentPayPal)

	res := f.svc.Pay(ctx, id)
	require.Equal(t, http.StatusOK, res.Code, res.Message)
	pay := res.Data.(PayResponse)
	assert.Equal(t, "client-token", pay.ClientToken)
	assert.NotEmpty(t, pay.OrderID)
	assert.True(t, strings.HasPrefix(pay.TrackingCode, "TRK"))

	assert.Equal(t, http.StatusConflict, f.svc.PatchWizard(ctx, id, &PatchWizardRequest{Amount: ptr("10")}).Code)

	w := wizardOf(t, f.svc.CapturePayPal(ctx, id))
	assert.Equal(t, enum.StepReceipt, w.Step)
	require.NotNil(t, w.Result)
	assert.True(t, w.Result.Success)
	assert.Equal(t, "CAP-1", w.Result.Reference)

	wizardOf(t, f.svc.CapturePayPal(ctx, id))
	assert.Equal(t, 1, f.paypal.captures)

	trx, err := f.transfers.FindByID(ctx, pay.TransferID)
	require.NoError(t, err)
	assert.Equal(t, enum.TransferCompleted, trx.Status)
	assert.NotNil(t, trx.PaidAt)
	assert.Equal(t, "receipts/"+pay.TrackingCode+".json", trx.ReceiptKey)
	require.Contains(t, f.storage.uploads, trx.ReceiptKey)

	var doc ReceiptResponse
	require.NoError(t, json.Unmarshal(f.storage.uploads[trx.ReceiptKey], &doc))
	assert.Equal(t, "Marie Joseph", doc.ReceiverName)
	assert.Equal(t, "150.00", doc.Amount)

	applied, err := f.svc.ApplyPaymentResult(ctx, types.PaymentResult{
		TransferID: pay.TransferID, WizardID: id, Method: "paypal", Success: false, Error: "late duplicate",
	})
	require.NoError(t, err)
	assert.False(t, applied)
	trx, _ = f.transfers.FindByID(ctx, pay.TransferID)
	assert.Equal(t, enum.TransferCompleted, trx.Status)

	rec := f.svc.Receipt(ctx, id)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Data.(ReceiptResponse).URL, trx.ReceiptKey)

	assert.Equal(t, http.StatusConflict, f.svc.Back(ctx, id).Code)
	assert.Equal(t, http.StatusConflict, f.svc.Next(ctx, id).Code)
}

func TestPayPalDeclinedAllowsRetry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.toPayment(t, enum.PaymentPayPal)

	first := f.svc.Pay(ctx, id).Data.(PayResponse)
	f.paypal.captureErr = &paypal.APIError{StatusCode: http.StatusUnprocessableEntity, Name: "UNPROCESSABLE_ENTITY", Message: "INSTRUMENT_DECLINED"}

	w := wizardOf(t, f.svc.CapturePayPal(ctx, id))
	assert.Equal(t, enum.StepPayment, w.Step)
	require.NotNil(t, w.Result)
	assert.False(t, w.Result.Success)

	trx, err := f.transfers.FindByID(ctx, first.TransferID)
	require.NoError(t, err)
	assert.Equal(t, enum.TransferFailed, trx.Status)
	assert.Equal(t, "INSTRUMENT_DECLINED", trx.FailureReason)

	f.paypal.captureErr = nil
	second := f.svc.Pay(ctx, id).Data.(PayResponse)
	assert.NotEqual(t, first.TransferID, second.TransferID)

	w = wizardOf(t, f.svc.CapturePayPal(ctx, id))
	assert.True(t, w.Paid())
}

func TestPayPalCaptureTransportErrorKeepsPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.toPayment(t, enum.PaymentPayPal)
	pay := f.svc.Pay(ctx, id).Data.(PayResponse)

	f.paypal.captureErr = &paypal.APIError{StatusCode: http.StatusServiceUnavailable, Message: "down"}
	assert.Equal(t, http.StatusBadGateway, f.svc.CapturePayPal(ctx, id).Code)

	trx, _ := f.transfers.FindByID(ctx, pay.TransferID)
	assert.Equal(t, enum.TransferPending, trx.Status)

	again := f.svc.Pay(ctx, id).Data.(PayResponse)
	assert.Equal(t, pay.TransferID, again.TransferID)
}

func TestBackCancelsPendingAttempt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.toPayment(t, enum.PaymentMonCash)
	pay := f.svc.Pay(ctx, id).Data.(PayResponse)
	assert.Equal(t, "https://moncash.test/redirect?token=tok", pay.RedirectURL)
	assert.Equal(t, []string{pay.TrackingCode}, f.moncash.orders)

	w := wizardOf(t, f.svc.Back(ctx, id))
	assert.Equal(t, enum.StepPaymentMethod, w.Step)
	assert.Empty(t, w.TransferID)

	trx, _ := f.transfers.FindByID(ctx, pay.TransferID)
	assert.Equal(t, enum.TransferCancelled, trx.Status)
}

func TestMonCashReturn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.toPayment(t, enum.PaymentMonCash)
	pay := f.svc.Pay(ctx, id).Data.(PayResponse)

	f.moncash.payment = &moncash.Payment{
		Reference:     pay.TrackingCode,
		TransactionID: "MC-991",
		Cost:          decimal.RequireFromString("150"),
		Message:       moncash.MessageSuccessful,
	}
	res := f.svc.MonCashReturn(ctx, "MC-991")
	require.Equal(t, http.StatusFound, res.Code)
	ret := res.Data.(MonCashReturnResponse)
	assert.True(t, ret.Success)
	assert.True(t, strings.HasPrefix(ret.RedirectURL, "https://app.test/transfer/receipt?"))
	assert.Contains(t, ret.RedirectURL, "tracking="+pay.TrackingCode)

	w := wizardOf(t, f.svc.GetWizard(ctx, id))
	assert.Equal(t, enum.StepReceipt, w.Step)

	trx, _ := f.transfers.FindByID(ctx, pay.TransferID)
	assert.Equal(t, enum.TransferCompleted, trx.Status)
	assert.Equal(t, "MC-991", trx.ProviderReference)
}

func TestMonCashReturn_AfterBackReportsClosedTransfer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.toPayment(t, enum.PaymentMonCash)
	pay := f.svc.Pay(ctx, id).Data.(PayResponse)
	wizardOf(t, f.svc.Back(ctx, id))

	f.moncash.payment = &moncash.Payment{
		Reference:     pay.TrackingCode,
		TransactionID: "MC-late",
		Cost:          decimal.RequireFromString("150"),
		Message:       moncash.MessageSuccessful,
	}
	res := f.svc.MonCashReturn(ctx, "MC-late")
	assert.Equal(t, http.StatusConflict, res.Code)
	ret := res.Data.(MonCashReturnResponse)
	assert.False(t, ret.Success)
	assert.Contains(t, ret.RedirectURL, "status=error")
	assert.NotContains(t, ret.RedirectURL, "status=success")

	trx, _ := f.transfers.FindByID(ctx, pay.TransferID)
	assert.Equal(t, enum.TransferCancelled, trx.Status)
}

func TestMonCashReturn_AmountMismatchFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.toPayment(t, enum.PaymentMonCash)
	pay := f.svc.Pay(ctx, id).Data.(PayResponse)

	f.moncash.payment = &moncash.Payment{Reference: pay.TrackingCode, TransactionID: "MC-1", Cost: decimal.NewFromInt(1), Message: "successful"}
	res := f.svc.MonCashReturn(ctx, "MC-1")
	assert.False(t, res.Data.(MonCashReturnResponse).Success)

	trx, _ := f.transfers.FindByID(ctx, pay.TransferID)
	assert.Equal(t, enum.TransferFailed, trx.Status)
	assert.Contains(t, trx.FailureReason, "amount mismatch")

	f.moncash.payment = nil
	res = f.svc.MonCashReturn(ctx, "MC-404")
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Contains(t, res.Data.(MonCashReturnResponse).RedirectURL, "status=error")
}

type flakyTransfers struct {
	transferRepo.IRepository
	failures int
}

func (f *flakyTransfers) ApplyOutcome(ctx context.Context, trx *models.Transfer) (bool, error) {
	if f.failures > 0 {
		f.failures--
		return false, errors.New("connection reset")
	}
	return f.IRepository.ApplyOutcome(ctx, trx)
}

func TestCapturePayPal_RetryFinalizesAfterFailedWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.toPayment(t, enum.PaymentPayPal)
	pay := f.svc.Pay(ctx, id).Data.(PayResponse)

	flaky := &flakyTransfers{IRepository: f.transfers, failures: 1}
	f.svc.rp.Transfer = flaky

	first := f.svc.CapturePayPal(ctx, id)
	assert.Equal(t, http.StatusInternalServerError, first.Code)
	trx, _ := f.transfers.FindByID(ctx, pay.TransferID)
	assert.Equal(t, enum.TransferPending, trx.Status)

	w := wizardOf(t, f.svc.CapturePayPal(ctx, id))
	assert.Equal(t, enum.StepReceipt, w.Step)
	assert.Equal(t, 1, f.paypal.captures)

	trx, _ = f.transfers.FindByID(ctx, pay.TransferID)
	assert.Equal(t, enum.TransferCompleted, trx.Status)
}

func TestApplyResult_FirstResultOfAttemptWins(t *testing.T) {
	now := time.Now()
	w := &models.WizardSession{ID: "w", Step: enum.StepPayment, TransferID: "t2"}

	assert.False(t, applyResult(w, types.PaymentResult{TransferID: "t1", Success: true}, now))
	assert.Nil(t, w.Result)

	assert.True(t, applyResult(w, types.PaymentResult{TransferID: "t2", Success: true, Reference: "a"}, now))
	assert.False(t, applyResult(w, types.PaymentResult{TransferID: "t2", Success: false}, now))
	assert.Equal(t, "a", w.Result.Reference)
	assert.Equal(t, enum.StepReceipt, w.Step)
}

func TestCapturePayPal_CorruptAmount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.toPayment(t, enum.PaymentPayPal)
	f.svc.Pay(ctx, id)

	w, err := f.svc.rp.Wizard.Get(id)
	require.NoError(t, err)
	w.Amount = "15O.00"
	require.NoError(t, f.svc.rp.Wizard.Save(w))

	res := f.svc.CapturePayPal(ctx, id)
	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Zero(t, f.paypal.captures)
}

func TestApplyPaymentResult_PublishesWhenConfigured(t *testing.T) {
	f := newFixture(t)
	pub := &fakePublisher{}
	f.svc.publisher = pub
	ctx := context.Background()
	id := f.toPayment(t, enum.PaymentPayPal)
	pay := f.svc.Pay(ctx, id).Data.(PayResponse)

	wizardOf(t, f.svc.CapturePayPal(ctx, id))
	require.Len(t, pub.events, 1)
	assert.Equal(t, pay.TransferID, pub.events[0].TransferID)

	trx, _ := f.transfers.FindByID(ctx, pay.TransferID)
	assert.Equal(t, enum.TransferPending, trx.Status)

	body, err := json.Marshal(pub.events[0])
	require.NoError(t, err)
	require.NoError(t, f.svc.HandlePaymentResult(ctx, &amqp.Delivery{Body: body}))
	require.NoError(t, f.svc.HandlePaymentResult(ctx, &amqp.Delivery{Body: body}))

	trx, _ = f.transfers.FindByID(ctx, pay.TransferID)
	assert.Equal(t, enum.TransferCompleted, trx.Status)
	assert.Len(t, trx.History(), 2)
}

func TestHandlePaymentResult_PermanentFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.HandlePaymentResult(ctx, &amqp.Delivery{Body: []byte("{")})
	assert.ErrorIs(t, err, rabbitmq.ErrPermanent)

	body, _ := json.Marshal(types.PaymentResult{TransferID: "missing"})
	err = f.svc.HandlePaymentResult(ctx, &amqp.Delivery{Body: body})
	assert.ErrorIs(t, err, rabbitmq.ErrPermanent)
}

func TestHistoryAndTrack(t *testing.T) {
	seed := transferRepo.Seed(time.Now())
	f := newFixture(t, seed...)
	ctx := context.Background()
	user := types.UserWithAuth{Email: transferRepo.DemoSender}

	res := f.svc.History(ctx, user, transferRepo.Query{Status: enum.TransferCompleted, SortBy: "amount", Direction: "desc"})
	require.Equal(t, http.StatusOK, res.Code)
	page := res.Data.(types.Paginated[models.Transfer])
	require.NotEmpty(t, page.Items)
	for i, it := range page.Items {
		assert.Equal(t, enum.TransferCompleted, it.Status)
		if i > 0 {
			assert.False(t, it.Amount.GreaterThan(page.Items[i-1].Amount))
		}
	}
	assert.Equal(t, 1, page.Page)

	other := f.svc.History(ctx, types.UserWithAuth{Email: "nobody@example.com"}, transferRepo.Query{})
	assert.Empty(t, other.Data.(types.Paginated[models.Transfer]).Items)

	track := f.svc.Track(ctx, strings.ToLower(seed[0].TrackingCode))
	require.Equal(t, http.StatusOK, track.Code)
	tr := track.Data.(TrackResponse)
	assert.Equal(t, seed[0].TrackingCode, tr.TrackingCode)
	assert.NotEmpty(t, tr.Timeline)

	assert.Equal(t, http.StatusNotFound, f.svc.Track(ctx, "TRKNOPE").Code)
}
