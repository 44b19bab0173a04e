package services

import (
	"context"
	"testing"

	"jobcard-backend/internal/apperr"
	"jobcard-backend/internal/logger"
	"jobcard-backend/internal/models"
	"jobcard-backend/internal/repositories/memory"
)

func TestVehicleModelCreateNormalisesAndDefaults(t *testing.T) {
	svc := NewVehicleModelService(memory.NewVehicleModelStore(), nil, logger.NewNop())
	m, err := svc.Create(context.Background(), &models.CreateVehicleModelRequest{Name: "  splendor plus "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Name != "SPLENDOR PLUS" || m.Type != models.VehicleBike {
		t.Fatalf("want SPLENDOR PLUS/Bike got=%s/%s", m.Name, m.Type)
	}
}

func TestVehicleModelCreateErrors(t *testing.T) {
	svc := NewVehicleModelService(memory.NewVehicleModelStore(), nil, logger.NewNop())
	ctx := context.Background()
	if _, err := svc.Create(ctx, &models.CreateVehicleModelRequest{Name: "Activa", Type: "Scooter"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	cases := []struct {
		name string
		req  models.CreateVehicleModelRequest
		kind apperr.Kind
	}{
		{"duplicate any case", models.CreateVehicleModelRequest{Name: "activa"}, apperr.KindConflict},
		{"empty name", models.CreateVehicleModelRequest{Name: "  "}, apperr.KindValidation},
		{"unknown type", models.CreateVehicleModelRequest{Name: "X", Type: "Truck"}, apperr.KindValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, &tc.req); !apperr.Is(err, tc.kind) {
				t.Fatalf("want %s got=%v", tc.kind, err)
			}
		})
	}
}

func TestVehicleModelListSorted(t *testing.T) {
	svc := NewVehicleModelService(memory.NewVehicleModelStore(), nil, logger.NewNop())
	ctx := context.Background()
	for _, name := range []string{"PULSAR", "ACTIVA", "CT100"} {
		if _, err := svc.Create(ctx, &models.CreateVehicleModelRequest{Name: name}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"ACTIVA", "CT100", "PULSAR"}
	for i, m := range list {
		if m.Name != want[i] {
			t.Fatalf("order: want=%v got %s at %d", want, m.Name, i)
		}
	}
}

func TestVehicleModelDeleteLeavesJobcards(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	svc := NewVehicleModelService(memory.NewVehicleModelStore(), nil, logger.NewNop())

	m, _ := svc.Create(ctx, &models.CreateVehicleModelRequest{Name: "CT100"})
	req := createReq("A", "B", 0, nil, nil)
	req.ModelName = "ct100"
	j, _ := fx.jobcards.Create(ctx, req)

	if err := svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := fx.jobcards.Lookup(ctx, j.ID)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.ModelName != "CT100" {
		t.Fatalf("model_name changed: %q", got.ModelName)
	}

	if err := svc.Delete(ctx, m.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("second delete: want not found got=%v", err)
	}
	if err := svc.Delete(ctx, "bogus"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("malformed id: want not found got=%v", err)
	}
}
