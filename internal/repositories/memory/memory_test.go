package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"jobcard-backend/internal/apperr"
	"jobcard-backend/internal/models"
)

func TestCounterStoreConcurrentNext(t *testing.T) {
	s := NewCounterStore()
	const n = 50

	var wg sync.WaitGroup
	seen := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _ := s.Next(context.Background(), models.JobcardCounter)
			seen <- v
		}()
	}
	wg.Wait()
	close(seen)

	got := make(map[int64]bool)
	for v := range seen {
		if got[v] {
			t.Fatalf("duplicate value %d", v)
		}
		got[v] = true
	}
	for i := int64(1); i <= n; i++ {
		if !got[i] {
			t.Fatalf("missing value %d", i)
		}
	}
}

func TestJobcardStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewJobcardStore()
	j := &models.Jobcard{SeqID: 1, JobcardNo: "JC-00001", CustomerName: "A", RegNo: "B",
		Services: []models.LineItem{{Name: "Oil", Amount: 100}}}
	if err := s.Create(ctx, j); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Find(ctx, models.JobcardRef{Kind: models.RefByID, ID: j.ID})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	got.Services[0].Amount = 999

	again, _ := s.Find(ctx, models.JobcardRef{Kind: models.RefBySequence, Seq: 1})
	if again.Services[0].Amount != 100 {
		t.Fatalf("store mutated through returned record: got=%v", again.Services[0].Amount)
	}
}

func TestJobcardStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewJobcardStore()
	if err := s.Delete(ctx, "nope"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("Delete: want not found got=%v", err)
	}
	if err := s.Update(ctx, &models.Jobcard{ID: "nope"}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("Update: want not found got=%v", err)
	}
	if _, err := s.Find(ctx, models.JobcardRef{Kind: models.RefByDisplayNumber, DisplayNo: "JC-00009"}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("Find: want not found got=%v", err)
	}
}

func TestJobcardStoreSumPaidInclusive(t *testing.T) {
	ctx := context.Background()
	s := NewJobcardStore()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	_ = s.Create(ctx, &models.Jobcard{SeqID: 1, JobcardNo: "JC-00001", Date: day, Paid: 100})
	_ = s.Create(ctx, &models.Jobcard{SeqID: 2, JobcardNo: "JC-00002", Date: day.Add(time.Hour), Paid: 50})
	_ = s.Create(ctx, &models.Jobcard{SeqID: 3, JobcardNo: "JC-00003", Date: day.Add(48 * time.Hour), Paid: 70})

	total, err := s.SumPaid(ctx, day, day.Add(time.Hour))
	if err != nil {
		t.Fatalf("SumPaid: %v", err)
	}
	if total != 150 {
		t.Fatalf("SumPaid: want=150 got=%v", total)
	}
}

func TestVehicleModelStoreCaseInsensitiveConflict(t *testing.T) {
	ctx := context.Background()
	s := NewVehicleModelStore()
	if err := s.Create(ctx, &models.VehicleModel{Name: "PULSAR", Type: models.VehicleBike}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := s.Create(ctx, &models.VehicleModel{Name: "pulsar", Type: models.VehicleBike})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("duplicate: want conflict got=%v", err)
	}
}
