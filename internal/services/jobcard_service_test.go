package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"testing"

	"jobcard-backend/internal/apperr"
	"jobcard-backend/internal/logger"
	"jobcard-backend/internal/models"
	"jobcard-backend/internal/realtime"
	"jobcard-backend/internal/repositories/memory"
)

func TestCreateAssignsSequenceAndDisplayNumber(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		j, err := fx.jobcards.Create(ctx, createReq("umang patel", "gj09dl4914", 100, nil, nil))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if j.SeqID != want {
			t.Fatalf("seq_id: want=%d got=%d", want, j.SeqID)
		}
		if j.JobcardNo != models.FormatJobcardNo(want) {
			t.Fatalf("jobcard_no: want=%s got=%s", models.FormatJobcardNo(want), j.JobcardNo)
		}
		if j.ID == "" || j.Date.IsZero() {
			t.Fatalf("generated fields missing: %+v", j)
		}
		if j.CustomerName != "UMANG PATEL" || j.RegNo != "GJ09DL4914" {
			t.Fatalf("not normalised: %q %q", j.CustomerName, j.RegNo)
		}
	}
}

func TestConcurrentCreatesGetContiguousSequence(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	const n = 40

	var wg sync.WaitGroup
	var mu sync.Mutex
	var seqs []int64
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j, err := fx.jobcards.Create(ctx, createReq("A", "B", 10, nil, nil))
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			mu.Lock()
			seqs = append(seqs, j.SeqID)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seqs) != n {
		t.Fatalf("created: want=%d got=%d", n, len(seqs))
	}
	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
	for i := 1; i < n; i++ {
		if seqs[i] != seqs[i-1]+1 {
			t.Fatalf("sequence not contiguous at %d: %v", i, seqs)
		}
	}
}

func TestCreateRequiresCustomerAndRegNo(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	cases := []*models.CreateJobcardRequest{
		createReq("", "GJ01", 0, nil, nil),
		createReq("   ", "GJ01", 0, nil, nil),
		createReq("RAM", "", 0, nil, nil),
	}
	for _, req := range cases {
		if _, err := fx.jobcards.Create(ctx, req); !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("Create(%q,%q): want validation error got=%v", req.CustomerName, req.RegNo, err)
		}
	}
	all, _ := fx.store.List(ctx, models.JobcardFilter{})
	if len(all) != 0 {
		t.Fatalf("invalid creates persisted %d records", len(all))
	}
}

func TestCreateCounterFailurePersistsNothing(t *testing.T) {
	store := memory.NewJobcardStore()
	svc := NewJobcardService(store, failingCounter{}, nil, logger.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq("A", "B", 10, nil, nil))
	if err == nil || apperr.KindOf(err) != apperr.KindInternal {
		t.Fatalf("want internal error got=%v", err)
	}
	if !strings.Contains(err.Error(), "counter unavailable") {
		t.Fatalf("store message should reach the caller: got=%q", err.Error())
	}
	all, _ := store.List(ctx, models.JobcardFilter{})
	if len(all) != 0 {
		t.Fatalf("record persisted without a sequence number")
	}
}

func TestCreateStatusAndPaymentScenario(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	paid, err := fx.jobcards.Create(ctx, createReq("A", "B", 3420, f64(3420), f64(0)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if paid.Status != models.StatusPaid {
		t.Fatalf("status: want=Paid got=%s", paid.Status)
	}

	j, err := fx.jobcards.Create(ctx, createReq("A", "B", 930, f64(0), f64(930)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if j.Status != models.StatusUnpaid {
		t.Fatalf("status: want=Unpaid got=%s", j.Status)
	}

	j, err = fx.jobcards.ApplyPayment(ctx, j.ID, 500, "Cash")
	if err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if j.Paid != 500 || j.Remaining != 430 || j.Status != models.StatusPartial {
		t.Fatalf("after payment: want=500/430/Partial got=%v/%v/%s", j.Paid, j.Remaining, j.Status)
	}
}

func TestCreateDefaultsRemainingFromAmount(t *testing.T) {
	fx := newFixture()
	j, err := fx.jobcards.Create(context.Background(), createReq("A", "B", 930, f64(200), nil))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if j.Remaining != 730 || j.Status != models.StatusPartial {
		t.Fatalf("want remaining=730 Partial got=%v %s", j.Remaining, j.Status)
	}
}

func TestCreateAcceptsOverpayment(t *testing.T) {
	fx := newFixture()
	j, err := fx.jobcards.Create(context.Background(), createReq("A", "B", 900, f64(1000), nil))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if j.Remaining != -100 || j.Status != models.StatusPaid {
		t.Fatalf("want remaining=-100 Paid got=%v %s", j.Remaining, j.Status)
	}
}

func TestCreateRejectsBadDate(t *testing.T) {
	fx := newFixture()
	req := createReq("A", "B", 0, nil, nil)
	req.Date = "yesterday"
	if _, err := fx.jobcards.Create(context.Background(), req); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("want validation error got=%v", err)
	}
}

func TestUpdateMergesAndRederivesStatus(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	orig, _ := fx.jobcards.Create(ctx, createReq("A", "B", 1000, f64(1000), f64(0)))

	got, err := fx.jobcards.Update(ctx, orig.ID, &models.UpdateJobcardRequest{
		City:      str("palaj"),
		Paid:      f64(0),
		Remaining: f64(1000),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.City != "PALAJ" || got.CustomerName != "A" {
		t.Fatalf("merge: got city=%q customer=%q", got.City, got.CustomerName)
	}
	if got.Status != models.StatusUnpaid {
		t.Fatalf("status: want=Unpaid got=%s", got.Status)
	}
	if got.SeqID != orig.SeqID || got.JobcardNo != orig.JobcardNo {
		t.Fatalf("numbers changed: %d/%s -> %d/%s", orig.SeqID, orig.JobcardNo, got.SeqID, got.JobcardNo)
	}
}

func TestUpdateValidationAndNotFound(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	orig, _ := fx.jobcards.Create(ctx, createReq("A", "B", 0, nil, nil))

	if _, err := fx.jobcards.Update(ctx, orig.ID, &models.UpdateJobcardRequest{RegNo: str("  ")}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("empty reg_no: want validation got=%v", err)
	}
	stored, _ := fx.jobcards.Lookup(ctx, orig.ID)
	if stored.RegNo != "B" {
		t.Fatalf("failed update changed the record: %q", stored.RegNo)
	}

	for _, id := range []string{"00000000-0000-0000-0000-000000000000", "not-a-uuid"} {
		if _, err := fx.jobcards.Update(ctx, id, &models.UpdateJobcardRequest{}); !apperr.Is(err, apperr.KindNotFound) {
			t.Fatalf("Update(%s): want not found got=%v", id, err)
		}
	}
}

func TestDeleteNeverReusesSequence(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	first, _ := fx.jobcards.Create(ctx, createReq("A", "B", 0, nil, nil))
	if err := fx.jobcards.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := fx.jobcards.Delete(ctx, first.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("second Delete: want not found got=%v", err)
	}

	next, _ := fx.jobcards.Create(ctx, createReq("A", "B", 0, nil, nil))
	if next.SeqID != first.SeqID+1 {
		t.Fatalf("seq after delete: want=%d got=%d", first.SeqID+1, next.SeqID)
	}
}

func TestLookupResolvesAllRepresentations(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	_, _ = fx.jobcards.Create(ctx, createReq("A", "B", 0, nil, nil))
	j, _ := fx.jobcards.Create(ctx, createReq("C", "D", 0, nil, nil))

	for _, identifier := range []string{j.ID, "2", "JC-00002", "jc-00002"} {
		got, err := fx.jobcards.Lookup(ctx, identifier)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", identifier, err)
		}
		if got.ID != j.ID {
			t.Fatalf("Lookup(%s): want=%s got=%s", identifier, j.ID, got.ID)
		}
	}
	for _, identifier := range []string{"", "99", "JC-99999"} {
		if _, err := fx.jobcards.Lookup(ctx, identifier); !apperr.Is(err, apperr.KindNotFound) {
			t.Fatalf("Lookup(%q): want not found got=%v", identifier, err)
		}
	}
}

func TestApplyPaymentRejectsExcessAndLeavesRecord(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	j, _ := fx.jobcards.Create(ctx, createReq("A", "B", 300, f64(0), f64(300)))

	j, err := fx.jobcards.ApplyPayment(ctx, j.ID, 200, "UPI")
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if j.Remaining != 100 {
		t.Fatalf("remaining after first: want=100 got=%v", j.Remaining)
	}

	if _, err := fx.jobcards.ApplyPayment(ctx, j.ID, 200, "UPI"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("second payment: want validation got=%v", err)
	}
	stored, _ := fx.jobcards.Lookup(ctx, j.ID)
	if stored.Paid != 200 || stored.Remaining != 100 || stored.Status != models.StatusPartial {
		t.Fatalf("record changed by rejected payment: %v/%v/%s", stored.Paid, stored.Remaining, stored.Status)
	}
}

func TestApplyPaymentRejectsInvalidAmounts(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	j, _ := fx.jobcards.Create(ctx, createReq("A", "B", 300, nil, nil))

	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		if _, err := fx.jobcards.ApplyPayment(ctx, j.ID, amount, "Cash"); !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("ApplyPayment(%v): want validation got=%v", amount, err)
		}
	}
	if _, err := fx.jobcards.ApplyPayment(ctx, "00000000-0000-0000-0000-000000000001", 10, "Cash"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("unknown id: want not found got=%v", err)
	}
	if _, err := fx.jobcards.ApplyPayment(ctx, "00000000-0000-0000-0000-000000000001", -1, "Cash"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("unknown id with bad amount: want not found got=%v", err)
	}
}

func TestApplyPaymentSettlesFractionalBalance(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	j, _ := fx.jobcards.Create(ctx, createReq("A", "B", 0.3, f64(0), f64(0.3)))

	if _, err := fx.jobcards.ApplyPayment(ctx, j.ID, 0.1, "Cash"); err != nil {
		t.Fatalf("first payment: %v", err)
	}
	j, err := fx.jobcards.ApplyPayment(ctx, j.ID, 0.2, "Cash")
	if err != nil {
		t.Fatalf("settling payment: %v", err)
	}
	if j.Remaining != 0 || j.Paid != 0.3 || j.Status != models.StatusPaid {
		t.Fatalf("after settling: want=0.3/0/Paid got=%v/%v/%s", j.Paid, j.Remaining, j.Status)
	}
	if _, err := fx.jobcards.ApplyPayment(ctx, j.ID, 0.01, "Cash"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("payment on settled card: want validation got=%v", err)
	}
}

func TestApplyPaymentSettlesExactly(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	j, _ := fx.jobcards.Create(ctx, createReq("A", "B", 300, nil, nil))
	j, err := fx.jobcards.ApplyPayment(ctx, j.ID, 300, "")
	if err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if j.Remaining != 0 || j.Status != models.StatusPaid {
		t.Fatalf("want settled got=%v %s", j.Remaining, j.Status)
	}
}

func TestSearch(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	_, _ = fx.jobcards.Create(ctx, createReq("umang patel", "GJ09DL4914", 0, nil, nil))
	_, _ = fx.jobcards.Create(ctx, createReq("Patel Ronakbhai", "GJ01AB1", 0, nil, nil))
	_, _ = fx.jobcards.Create(ctx, createReq("Mehul Shah", "GJ18ZZ99", 0, nil, nil))

	all, err := fx.jobcards.Search(ctx, &models.SearchRequest{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("empty criteria: want=3 got=%d", len(all))
	}

	got, _ := fx.jobcards.Search(ctx, &models.SearchRequest{CustomerName: "pat"})
	if len(got) != 2 {
		t.Fatalf("customerName=pat: want=2 got=%d", len(got))
	}

	got, _ = fx.jobcards.Search(ctx, &models.SearchRequest{CustomerName: "pat", RegNo: "dl49"})
	if len(got) != 1 || got[0].CustomerName != "UMANG PATEL" {
		t.Fatalf("conjunction: got=%d records", len(got))
	}

	got, _ = fx.jobcards.Search(ctx, &models.SearchRequest{CustomerName: "%"})
	if len(got) != 0 {
		t.Fatalf("wildcard should match literally: got=%d", len(got))
	}

	if _, err := fx.jobcards.Search(ctx, &models.SearchRequest{StartDate: "nope"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("bad date: want validation got=%v", err)
	}
}

func TestSearchStatusIsExact(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	paid, _ := fx.jobcards.Create(ctx, createReq("A", "B", 500, f64(500), f64(0)))
	_, _ = fx.jobcards.Create(ctx, createReq("C", "D", 500, f64(0), f64(500)))

	got, err := fx.jobcards.Search(ctx, &models.SearchRequest{Status: "Paid"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].ID != paid.ID {
		t.Fatalf("status=Paid: want=1 paid record got=%d", len(got))
	}

	got, _ = fx.jobcards.Search(ctx, &models.SearchRequest{Status: "unpaid"})
	if len(got) != 1 || got[0].Status != models.StatusUnpaid {
		t.Fatalf("status=unpaid: want=1 unpaid record got=%d", len(got))
	}
}

func TestSearchDateBoundsInclusive(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	for _, date := range []string{"2026-03-09T10:00:00+05:30", "2026-03-10T10:00:00+05:30", "2026-03-11T10:00:00+05:30"} {
		req := createReq("A", "B", 0, nil, nil)
		req.Date = date
		if _, err := fx.jobcards.Create(ctx, req); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, _ := fx.jobcards.Search(ctx, &models.SearchRequest{StartDate: "2026-03-10T10:00:00+05:30", EndDate: "2026-03-11T10:00:00+05:30"})
	if len(got) != 2 {
		t.Fatalf("inclusive window: want=2 got=%d", len(got))
	}
	got, _ = fx.jobcards.Search(ctx, &models.SearchRequest{StartDate: "2026-03-10"})
	if len(got) != 2 {
		t.Fatalf("start only: want=2 got=%d", len(got))
	}
	got, _ = fx.jobcards.Search(ctx, &models.SearchRequest{EndDate: "2026-03-10"})
	if len(got) != 2 {
		t.Fatalf("end only date covers the day: want=2 got=%d", len(got))
	}
}

func TestListWindowsAndOrdering(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	for _, date := range []string{"2026-03-10T09:00:00+05:30", "2026-03-10T18:00:00+05:30", "2026-03-10T09:00:00+05:30", "2026-03-12T08:00:00+05:30"} {
		req := createReq("A", "B", 0, nil, nil)
		req.Date = date
		if _, err := fx.jobcards.Create(ctx, req); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, _ := fx.jobcards.List(ctx, "", "")
	if len(all) != 4 {
		t.Fatalf("no bounds: want=4 got=%d", len(all))
	}
	wantOrder := []int64{4, 2, 3, 1}
	for i, j := range all {
		if j.SeqID != wantOrder[i] {
			t.Fatalf("order: want=%v got seq %d at %d", wantOrder, j.SeqID, i)
		}
	}

	day, _ := fx.jobcards.List(ctx, "2026-03-10", "")
	if len(day) != 3 {
		t.Fatalf("start only: want=3 got=%d", len(day))
	}

	upTo, _ := fx.jobcards.List(ctx, "", "2026-03-11")
	if len(upTo) != 3 {
		t.Fatalf("end only: want=3 got=%d", len(upTo))
	}

	window, _ := fx.jobcards.List(ctx, "2026-03-10T10:00:00+05:30", "2026-03-12T08:00:00+05:30")
	if len(window) != 2 {
		t.Fatalf("both bounds: want=2 got=%d", len(window))
	}
}

func TestMutationsPublishEvents(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	j, _ := fx.jobcards.Create(ctx, createReq("A", "B", 100, nil, nil))
	_, _ = fx.jobcards.Update(ctx, j.ID, &models.UpdateJobcardRequest{Remarks: str("x")})
	_, _ = fx.jobcards.ApplyPayment(ctx, j.ID, 10, "Cash")
	_ = fx.jobcards.Delete(ctx, j.ID)

	want := []realtime.EventType{realtime.JobcardCreated, realtime.JobcardUpdated, realtime.JobcardPaid, realtime.JobcardDeleted}
	got := fx.events.types()
	if len(got) != len(want) {
		t.Fatalf("events: want=%v got=%v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events: want=%v got=%v", want, got)
		}
	}
}

func TestClassifyIdentifier(t *testing.T) {
	cases := []struct {
		in   string
		kind models.RefKind
	}{
		{"3f1c2b1e-8d7a-4e62-9a43-1b2c3d4e5f60", models.RefByID},
		{"42", models.RefBySequence},
		{"JC-00042", models.RefByDisplayNumber},
		{"42abc", models.RefByDisplayNumber},
		{"+42", models.RefByDisplayNumber},
		{"99999999999999999999", models.RefByDisplayNumber},
		{"3f1c2b1e8d7a4e629a431b2c3d4e5f60", models.RefByDisplayNumber},
		{"{3f1c2b1e-8d7a-4e62-9a43-1b2c3d4e5f60}", models.RefByDisplayNumber},
		{"12345678901234567890123456789012", models.RefByDisplayNumber},
	}
	for _, tc := range cases {
		if got := ClassifyIdentifier(tc.in); got.Kind != tc.kind {
			t.Fatalf("ClassifyIdentifier(%q): want=%s got=%s", tc.in, tc.kind, got.Kind)
		}
	}
	if ref := ClassifyIdentifier("jc-00042"); ref.DisplayNo != "JC-00042" {
		t.Fatalf("display number not upper-cased: %q", ref.DisplayNo)
	}
}
