package boq

import (
	"context"
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

type fakeBoqRepo struct {
	docs map[id.ID]*Boq
	rows map[id.ID][]sections.Row
}

func newFakeBoqRepo() *fakeBoqRepo {
	return &fakeBoqRepo{docs: map[id.ID]*Boq{}, rows: map[id.ID][]sections.Row{}}
}

func (r *fakeBoqRepo) Create(ctx context.Context, b *Boq) error {
	cp := *b
	r.docs[b.ID] = &cp
	return nil
}

func (r *fakeBoqRepo) GetByID(ctx context.Context, companyID, docID id.ID) (*Boq, error) {
	b, ok := r.docs[docID]
	if !ok || b.CompanyID != companyID {
		return nil, apperror.NewNotFound("boq", docID.String())
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBoqRepo) GetByNumber(ctx context.Context, companyID id.ID, number string) (*Boq, error) {
	for _, b := range r.docs {
		if b.CompanyID == companyID && b.Number == number {
			cp := *b
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("boq", number)
}

func (r *fakeBoqRepo) Update(ctx context.Context, b *Boq) error {
	if _, ok := r.docs[b.ID]; !ok {
		return apperror.NewNotFound("boq", b.ID.String())
	}
	cp := *b
	r.docs[b.ID] = &cp
	return nil
}

func (r *fakeBoqRepo) Delete(ctx context.Context, companyID, docID id.ID) error {
	delete(r.docs, docID)
	return nil
}

func (r *fakeBoqRepo) GetRows(ctx context.Context, docID id.ID) ([]sections.Row, error) {
	return r.rows[docID], nil
}

func (r *fakeBoqRepo) SaveRows(ctx context.Context, docID id.ID, rows []sections.Row) error {
	r.rows[docID] = rows
	return nil
}

func (r *fakeBoqRepo) List(ctx context.Context, companyID id.ID, f documents.ListFilter) (domain.ListResult[*Boq], error) {
	return domain.ListResult[*Boq]{}, nil
}

func (r *fakeBoqRepo) GetForUpdate(ctx context.Context, companyID, docID id.ID) (*Boq, error) {
	return r.GetByID(ctx, companyID, docID)
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
	for _, inv := range r.docs {
		if inv.CompanyID == companyID && inv.SourceBoqID != nil && *inv.SourceBoqID == boqID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("invoice", boqID.String())
}

// --- fixtures ---

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

type fixture struct {
	companyID  id.ID
	boqRepo    *fakeBoqRepo
	invRepo    *fakeInvoiceRepo
	boqSvc     *Service
	invoiceSvc *invoice.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	num := numerator.New(&seqQuerier{})
	txm := passthroughTx{}

	invRepo := newFakeInvoiceRepo()
	invSvc := invoice.NewService(invRepo, txm, num)

	boqRepo := newFakeBoqRepo()
	boqSvc := NewService(boqRepo, txm, num, invSvc)

	return &fixture{
		companyID:  id.New(),
		boqRepo:    boqRepo,
		invRepo:    invRepo,
		boqSvc:     boqSvc,
		invoiceSvc: invSvc,
	}
}

func (f *fixture) createBoq(t *testing.T) *Boq {
	t.Helper()
	b := NewBoq(f.companyID, id.New())
	b.CurrencyCode = "USD"

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
	b.Sections = ed.Sections()

	require.NoError(t, f.boqSvc.Create(context.Background(), b))
	return b
}

// --- tests ---

func TestConvertToInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createBoq(t)

	inv, err := f.boqSvc.ConvertToInvoice(ctx, f.companyID, b.ID)
	require.NoError(t, err)
	require.NotNil(t, inv)

	// invoice copies header and rows
	assert.Equal(t, "USD", inv.CurrencyCode)
	assert.Equal(t, b.CustomerID, inv.CustomerID)
	require.NotNil(t, inv.SourceBoqID)
	assert.Equal(t, b.ID, *inv.SourceBoqID)
	assert.True(t, inv.TotalAmount.Equal(d("732")))
	assert.Len(t, f.invRepo.rows[inv.ID], 1)

	// BOQ records the transition
	got, err := f.boqSvc.GetByID(ctx, f.companyID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusConverted, got.Status)
	require.NotNil(t, got.ConvertedToInvoiceID)
	assert.Equal(t, inv.ID, *got.ConvertedToInvoiceID)
	assert.NotNil(t, got.ConvertedAt)
}

func TestConvertTwiceFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createBoq(t)

	_, err := f.boqSvc.ConvertToInvoice(ctx, f.companyID, b.ID)
	require.NoError(t, err)

	_, err = f.boqSvc.ConvertToInvoice(ctx, f.companyID, b.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeAlreadyConverted, appErr.Code)
}

func TestInvoiceDeletionRevertsBoqToDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createBoq(t)

	inv, err := f.boqSvc.ConvertToInvoice(ctx, f.companyID, b.ID)
	require.NoError(t, err)

	require.NoError(t, f.invoiceSvc.Delete(ctx, f.companyID, inv.ID))

	got, err := f.boqSvc.GetByID(ctx, f.companyID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, got.Status)
	assert.Nil(t, got.ConvertedToInvoiceID)
	assert.Nil(t, got.ConvertedAt)

	// the BOQ is editable again and can be converted anew
	_, err = f.boqSvc.ConvertToInvoice(ctx, f.companyID, b.ID)
	require.NoError(t, err)
}

func TestDeletingUnrelatedInvoiceLeavesBoqAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createBoq(t)

	_, err := f.boqSvc.ConvertToInvoice(ctx, f.companyID, b.ID)
	require.NoError(t, err)

	// a standalone invoice with no BOQ link
	standalone := invoice.NewInvoice(f.companyID, id.New())
	ed := sections.NewEditor()
	s, _ := ed.AddSection("Misc")
	_, err = ed.AddItem(s.ID, sections.NewItem{Description: "Consulting", Quantity: d("1"), UnitPrice: d("5000")})
	require.NoError(t, err)
	standalone.Sections = ed.Sections()
	require.NoError(t, f.invoiceSvc.Create(ctx, standalone))

	require.NoError(t, f.invoiceSvc.Delete(ctx, f.companyID, standalone.ID))

	got, err := f.boqSvc.GetByID(ctx, f.companyID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusConverted, got.Status)
}

func TestConvertedBoqIsFrozen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createBoq(t)

	_, err := f.boqSvc.ConvertToInvoice(ctx, f.companyID, b.ID)
	require.NoError(t, err)

	got, err := f.boqSvc.GetByID(ctx, f.companyID, b.ID)
	require.NoError(t, err)
	got.Notes = "edited"
	err = f.boqSvc.Update(ctx, got)
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeAlreadyConverted, appErr.Code)

	err = f.boqSvc.Delete(ctx, f.companyID, b.ID)
	require.Error(t, err)
}

func TestCancelOnlyFromDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createBoq(t)

	require.NoError(t, f.boqSvc.Cancel(ctx, f.companyID, b.ID))

	got, err := f.boqSvc.GetByID(ctx, f.companyID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, got.Status)

	// cancelled is terminal
	_, err = f.boqSvc.ConvertToInvoice(ctx, f.companyID, b.ID)
	require.Error(t, err)
	require.Error(t, f.boqSvc.Cancel(ctx, f.companyID, b.ID))
}
