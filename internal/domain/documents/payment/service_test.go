package payment

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildledger/internal/core/apperror"
	"buildledger/internal/core/entity"
	"buildledger/internal/core/id"
	"buildledger/internal/domain"
	"buildledger/internal/domain/documents"
	"buildledger/internal/domain/documents/invoice"
	"buildledger/internal/domain/sections"
	"buildledger/pkg/numerator"
)

// --- in-memory test doubles ---

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type seqRow struct{ val int64 }

func (r *seqRow) Scan(dest ...any) error {
	if len(dest) > 0 {
		if p, ok := dest[0].(*int64); ok {
			*p = r.val
		}
	}
	return nil
}

type seqQuerier struct {
	mu  sync.Mutex
	val int64
}

func (q *seqQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.val++
	return &seqRow{val: q.val}
}

type fakeInvoiceRepo struct {
	docs map[id.ID]*invoice.Invoice
	rows map[id.ID][]sections.Row
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{docs: map[id.ID]*invoice.Invoice{}, rows: map[id.ID][]sections.Row{}}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	cp := *inv
	r.docs[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, companyID, docID id.ID) (*invoice.Invoice, error) {
	inv, ok := r.docs[docID]
	if !ok || inv.CompanyID != companyID {
		return nil, apperror.NewNotFound("invoice", docID.String())
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetByNumber(ctx context.Context, companyID id.ID, number string) (*invoice.Invoice, error) {
	for _, inv := range r.docs {
		if inv.CompanyID == companyID && inv.Number == number {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("invoice", number)
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, inv *invoice.Invoice) error {
	cp := *inv
	r.docs[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, companyID, docID id.ID) error {
	delete(r.docs, docID)
	return nil
}

func (r *fakeInvoiceRepo) GetRows(ctx context.Context, docID id.ID) ([]sections.Row, error) {
	return r.rows[docID], nil
}

func (r *fakeInvoiceRepo) SaveRows(ctx context.Context, docID id.ID, rows []sections.Row) error {
	r.rows[docID] = rows
	return nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, companyID id.ID, f documents.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
	return domain.ListResult[*invoice.Invoice]{}, nil
}

func (r *fakeInvoiceRepo) GetForUpdate(ctx context.Context, companyID, docID id.ID) (*invoice.Invoice, error) {
	return r.GetByID(ctx, companyID, docID)
}

func (r *fakeInvoiceRepo) FindBySourceBoq(ctx context.Context, companyID, boqID id.ID) (*invoice.Invoice, error) {
	return nil, apperror.NewNotFound("invoice", boqID.String())
}

type fakePaymentRepo struct {
	docs map[id.ID]*Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{docs: map[id.ID]*Payment{}}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *Payment) error {
	cp := *p
	r.docs[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, companyID, paymentID id.ID) (*Payment, error) {
	p, ok := r.docs[paymentID]
	if !ok || p.CompanyID != companyID {
		return nil, apperror.NewNotFound("payment", paymentID.String())
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, companyID, paymentID id.ID) error {
	delete(r.docs, paymentID)
	return nil
}

func (r *fakePaymentRepo) ListByInvoice(ctx context.Context, companyID, invoiceID id.ID) ([]*Payment, error) {
	var out []*Payment
	for _, p := range r.docs {
		if p.CompanyID == companyID && p.InvoiceID == invoiceID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) List(ctx context.Context, companyID id.ID, f documents.ListFilter) (domain.ListResult[*Payment], error) {
	return domain.ListResult[*Payment]{}, nil
}

// --- fixtures ---

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

type fixture struct {
	companyID  id.ID
	invRepo    *fakeInvoiceRepo
	payRepo    *fakePaymentRepo
	invoiceSvc *invoice.Service
	paymentSvc *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	num := numerator.New(&seqQuerier{})
	txm := passthroughTx{}

	invRepo := newFakeInvoiceRepo()
	invSvc := invoice.NewService(invRepo, txm, num)

	payRepo := newFakePaymentRepo()
	paySvc := NewService(payRepo, invSvc, txm, num)

	return &fixture{
		companyID:  id.New(),
		invRepo:    invRepo,
		payRepo:    payRepo,
		invoiceSvc: invSvc,
		paymentSvc: paySvc,
	}
}

// createInvoice builds an invoice totalling 732: one tax-inclusive line of
// 2 x 100 at 16% plus 500 section labor.
func (f *fixture) createInvoice(t *testing.T) *invoice.Invoice {
	t.Helper()
	inv := invoice.NewInvoice(f.companyID, id.New())
	inv.CurrencyCode = "KES"

	ed := sections.NewEditor()
	s, err := ed.AddSection("Foundation")
	require.NoError(t, err)
	require.NoError(t, ed.SetLaborCost(s.ID, d("500")))
	_, err = ed.AddItem(s.ID, sections.NewItem{
		Description:    "Cement 50kg",
		Quantity:       d("2"),
		UnitPrice:      d("100"),
		TaxRatePercent: d("16"),
		TaxInclusive:   true,
	})
	require.NoError(t, err)
	inv.Sections = ed.Sections()

	require.NoError(t, f.invoiceSvc.Create(context.Background(), inv))
	return inv
}

func (f *fixture) record(t *testing.T, inv *invoice.Invoice, amount string) *Payment {
	t.Helper()
	p := NewPayment(f.companyID, inv.CustomerID, inv.ID, d(amount), MethodMpesa)
	p.CurrencyCode = inv.CurrencyCode
	require.NoError(t, f.paymentSvc.Record(context.Background(), p))
	return p
}

// --- tests ---

func TestRecordPaymentAppliesToInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t)

	p := f.record(t, inv, "300")
	assert.True(t, strings.HasPrefix(p.Number, "PAY-"), "got number %q", p.Number)

	got, err := f.invoiceSvc.GetByID(ctx, f.companyID, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(d("300")))
	assert.True(t, got.BalanceDue().Equal(d("432")))
	assert.NotEqual(t, entity.StatusPaid, got.Status)
}

func TestInvoiceAggregateCarriesPaymentFigures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t)
	f.record(t, inv, "300")

	agg, err := f.invoiceSvc.Aggregate(ctx, f.companyID, inv.ID)
	require.NoError(t, err)
	assert.True(t, agg.GrandTotal.Equal(d("732")))
	require.NotNil(t, agg.PaidAmount)
	require.NotNil(t, agg.BalanceDue)
	assert.True(t, agg.PaidAmount.Equal(d("300")))
	assert.True(t, agg.BalanceDue.Equal(d("432")))
}

func TestFullSettlementMarksInvoicePaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t)

	f.record(t, inv, "700")
	f.record(t, inv, "32")

	got, err := f.invoiceSvc.GetByID(ctx, f.companyID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, got.Status)
	assert.True(t, got.BalanceDue().IsZero())

	paid, err := f.paymentSvc.ListByInvoice(ctx, f.companyID, inv.ID)
	require.NoError(t, err)
	assert.Len(t, paid, 2)
}

func TestOverpaymentRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t)

	p := NewPayment(f.companyID, inv.CustomerID, inv.ID, d("800"), MethodCash)
	err := f.paymentSvc.Record(ctx, p)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeOverpayment, appErr.Code)

	// nothing written on either side
	got, err := f.invoiceSvc.GetByID(ctx, f.companyID, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.IsZero())
	assert.Empty(t, f.payRepo.docs)
}

func TestDeletePaymentRestoresBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t)

	p := f.record(t, inv, "732")

	got, err := f.invoiceSvc.GetByID(ctx, f.companyID, inv.ID)
	require.NoError(t, err)
	require.Equal(t, entity.StatusPaid, got.Status)

	require.NoError(t, f.paymentSvc.Delete(ctx, f.companyID, p.ID))

	got, err = f.invoiceSvc.GetByID(ctx, f.companyID, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.IsZero())
	assert.True(t, got.BalanceDue().Equal(d("732")))
	// the invoice stays issued; it does not fall back to draft
	assert.Equal(t, entity.StatusSent, got.Status)

	_, err = f.paymentSvc.GetByID(ctx, f.companyID, p.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestPaymentAgainstCancelledInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t)

	stored := f.invRepo.docs[inv.ID]
	stored.Status = entity.StatusCancelled

	p := NewPayment(f.companyID, inv.CustomerID, inv.ID, d("100"), MethodCheque)
	err := f.paymentSvc.Record(ctx, p)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDocumentCancelled, appErr.Code)
}

func TestRecordRejectsBadPayments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.createInvoice(t)

	zero := NewPayment(f.companyID, inv.CustomerID, inv.ID, decimal.Zero, MethodCash)
	require.Error(t, f.paymentSvc.Record(ctx, zero))

	unknown := NewPayment(f.companyID, inv.CustomerID, inv.ID, d("50"), "barter")
	require.Error(t, f.paymentSvc.Record(ctx, unknown))

	assert.Empty(t, f.payRepo.docs)
}
