// Command seed loads vehicle models and sample jobcards from a YAML file
// into the configured PostgreSQL database.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"jobcard-backend/internal/apperr"
	"jobcard-backend/internal/config"
	"jobcard-backend/internal/database"
	"jobcard-backend/internal/db"
	"jobcard-backend/internal/logger"
	"jobcard-backend/internal/models"
	"jobcard-backend/internal/repositories"
	"jobcard-backend/internal/services"
	"jobcard-backend/internal/timeutil"
	"jobcard-backend/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Reset    bool          `yaml:"reset"`
	Models   []string      `yaml:"models"`
	Jobcards []seedJobcard `yaml:"jobcards"`
}

type seedItem struct {
	Name   string  `yaml:"name"`
	Amount float64 `yaml:"amount"`
}

type seedJobcard struct {
	Date         string     `yaml:"date"`
	CustomerName string     `yaml:"customer_name"`
	Phone        string     `yaml:"phone"`
	Address      string     `yaml:"address"`
	City         string     `yaml:"city"`
	RegNo        string     `yaml:"reg_no"`
	ModelName    string     `yaml:"model_name"`
	ChassisNo    string     `yaml:"chassis_no"`
	EngineNo     string     `yaml:"engine_no"`
	Km           string     `yaml:"km"`
	MechanicName string     `yaml:"mechanic_name"`
	Remarks      string     `yaml:"remarks"`
	Services     []seedItem `yaml:"services"`
	Parts        []seedItem `yaml:"parts"`
	Labour       []seedItem `yaml:"labour"`
	Amount       float64    `yaml:"amount"`
	Paid         *float64   `yaml:"paid"`
	Remaining    *float64   `yaml:"remaining"`
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the YAML config file")
	seedPath := flag.String("file", "configs/seed.yaml", "Path to the seed data file")
	reset := flag.Bool("reset", false, "Delete all jobcards and models before seeding")
	yes := flag.Bool("yes", false, "Skip the reset confirmation prompt")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	_ = timeutil.SetLocation(cfg.Shop.Timezone)

	data, err := readSeedFile(*seedPath)
	if err != nil {
		log.Fatal("failed to read seed file", "path", *seedPath, "error", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := database.NewMigratorWithFS(pool, migrations.FS, ".", log).RunMigrations(ctx); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	if *reset || data.Reset {
		if !*yes && !confirm("This will DELETE ALL jobcards and vehicle models. Type 'yes' to confirm: ") {
			fmt.Println("Reset cancelled.")
			return
		}
		if err := resetData(ctx, pool); err != nil {
			log.Fatal("failed to reset data", "error", err)
		}
		log.Info("existing jobcards and models deleted, jobcard numbering restarted")
	}

	modelService := services.NewVehicleModelService(repositories.NewVehicleModelRepository(pool), nil, log)
	jobcardService := services.NewJobcardService(
		repositories.NewJobcardRepository(pool),
		repositories.NewCounterRepository(pool),
		nil,
		log,
	)

	modelsCreated := 0
	for _, name := range data.Models {
		_, err := modelService.Create(ctx, &models.CreateVehicleModelRequest{Name: name, Type: string(modelType(name))})
		switch {
		case err == nil:
			modelsCreated++
		case apperr.Is(err, apperr.KindConflict):
			log.Debug("model already exists", "name", name)
		default:
			log.Fatal("failed to create model", "name", name, "error", err)
		}
	}

	for _, sj := range data.Jobcards {
		j, err := jobcardService.Create(ctx, sj.request())
		if err != nil {
			log.Fatal("failed to create jobcard", "customer", sj.CustomerName, "error", err)
		}
		log.Info("jobcard imported", "jobcard_no", j.JobcardNo, "customer", j.CustomerName)
	}

	fmt.Printf("Seed complete: %d models, %d jobcards\n", modelsCreated, len(data.Jobcards))
}

func readSeedFile(path string) (*seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data seedFile
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &data, nil
}

// modelType guesses the vehicle type from well-known scooter names
func modelType(name string) models.VehicleType {
	upper := strings.ToUpper(name)
	for _, scooter := range []string{"ACTIVA", "JUPITER", "REDION"} {
		if strings.Contains(upper, scooter) {
			return models.VehicleScooter
		}
	}
	return models.VehicleBike
}

func (s seedJobcard) request() *models.CreateJobcardRequest {
	return &models.CreateJobcardRequest{
		Date:         s.Date,
		CustomerName: s.CustomerName,
		Phone:        s.Phone,
		Address:      s.Address,
		City:         s.City,
		RegNo:        s.RegNo,
		ModelName:    s.ModelName,
		ChassisNo:    s.ChassisNo,
		EngineNo:     s.EngineNo,
		Km:           s.Km,
		MechanicName: s.MechanicName,
		Remarks:      s.Remarks,
		Services:     lineItems(s.Services),
		Parts:        lineItems(s.Parts),
		Labour:       lineItems(s.Labour),
		Amount:       s.Amount,
		Paid:         s.Paid,
		Remaining:    s.Remaining,
	}
}

func lineItems(items []seedItem) []models.LineItem {
	out := make([]models.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.LineItem{Name: it.Name, Amount: it.Amount})
	}
	return out
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line) == "yes"
}

// resetData clears jobcards and models and restarts jobcard numbering.
// Users are kept.
func resetData(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, stmt := range []string{
		"DELETE FROM jobcards",
		"DELETE FROM vehicle_models",
		"DELETE FROM counters WHERE name = '" + models.JobcardCounter + "'",
	} {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return tx.Commit(ctx)
}
