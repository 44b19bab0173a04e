package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobcard-backend/internal/apperr"
	"jobcard-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobcardColumns = `id, seq_id, jobcard_no, date,
	customer_name, phone, address, city,
	reg_no, model_name, chassis_no, engine_no, km, petrol, key_no, vehicle_type,
	mechanic_name, helper_name, remarks,
	services, parts, labour,
	amount, paid, remaining, status,
	created_at, updated_at`

type JobcardRepository struct {
	DB *pgxpool.Pool
}

func NewJobcardRepository(db *pgxpool.Pool) *JobcardRepository {
	return &JobcardRepository{DB: db}
}

func (r *JobcardRepository) Create(ctx context.Context, j *models.Jobcard) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	services, parts, labour, err := marshalItems(j)
	if err != nil {
		return err
	}

	err = r.DB.QueryRow(ctx,
		`INSERT INTO jobcards(id, seq_id, jobcard_no, date,
            customer_name, phone, address, city,
            reg_no, model_name, chassis_no, engine_no, km, petrol, key_no, vehicle_type,
            mechanic_name, helper_name, remarks,
            services, parts, labour,
            amount, paid, remaining, status)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
                $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
         RETURNING created_at, updated_at`,
		j.ID, j.SeqID, j.JobcardNo, j.Date,
		j.CustomerName, j.Phone, j.Address, j.City,
		j.RegNo, j.ModelName, j.ChassisNo, j.EngineNo, j.Km, j.Petrol, j.KeyNo, j.VehicleType,
		j.MechanicName, j.HelperName, j.Remarks,
		services, parts, labour,
		j.Amount, j.Paid, j.Remaining, string(j.Status),
	).Scan(&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.New(apperr.KindConflict, "Jobcard number already exists", err)
		}
		return fmt.Errorf("insert jobcard: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of the row. The last writer wins.
func (r *JobcardRepository) Update(ctx context.Context, j *models.Jobcard) error {
	services, parts, labour, err := marshalItems(j)
	if err != nil {
		return err
	}

	err = r.DB.QueryRow(ctx,
		`UPDATE jobcards SET date=$1,
            customer_name=$2, phone=$3, address=$4, city=$5,
            reg_no=$6, model_name=$7, chassis_no=$8, engine_no=$9, km=$10, petrol=$11, key_no=$12, vehicle_type=$13,
            mechanic_name=$14, helper_name=$15, remarks=$16,
            services=$17, parts=$18, labour=$19,
            amount=$20, paid=$21, remaining=$22, status=$23,
            updated_at=CURRENT_TIMESTAMP
         WHERE id=$24
         RETURNING updated_at`,
		j.Date,
		j.CustomerName, j.Phone, j.Address, j.City,
		j.RegNo, j.ModelName, j.ChassisNo, j.EngineNo, j.Km, j.Petrol, j.KeyNo, j.VehicleType,
		j.MechanicName, j.HelperName, j.Remarks,
		services, parts, labour,
		j.Amount, j.Paid, j.Remaining, string(j.Status),
		j.ID,
	).Scan(&j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Jobcard not found")
	}
	if err != nil {
		return fmt.Errorf("update jobcard %s: %w", j.ID, err)
	}
	return nil
}

func (r *JobcardRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM jobcards WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete jobcard %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Jobcard not found")
	}
	return nil
}

// Find resolves a reference with a single query on the column the reference names
func (r *JobcardRepository) Find(ctx context.Context, ref models.JobcardRef) (*models.Jobcard, error) {
	var arg any
	switch ref.Kind {
	case models.RefByID:
		arg = ref.ID
	case models.RefBySequence:
		arg = ref.Seq
	default:
		arg = ref.DisplayNo
	}

	row := r.DB.QueryRow(ctx,
		`SELECT `+jobcardColumns+` FROM jobcards WHERE `+ref.Kind.String()+`=$1`, arg)
	j, err := scanJobcard(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Jobcard not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find jobcard by %s: %w", ref.Kind, err)
	}
	return j, nil
}

// List returns the jobcards matching f, newest first
func (r *JobcardRepository) List(ctx context.Context, f models.JobcardFilter) ([]*models.Jobcard, error) {
	where, args := buildJobcardWhere(f)
	query := `SELECT ` + jobcardColumns + ` FROM jobcards` + where + ` ORDER BY date DESC, seq_id DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobcards: %w", err)
	}
	defer rows.Close()

	jobcards := make([]*models.Jobcard, 0)
	for rows.Next() {
		j, err := scanJobcard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan jobcard: %w", err)
		}
		jobcards = append(jobcards, j)
	}
	return jobcards, rows.Err()
}

// SumPaid totals the paid column over jobcards dated within [from, to]
func (r *JobcardRepository) SumPaid(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(paid), 0) FROM jobcards WHERE date >= $1 AND date <= $2`,
		from, to).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum paid: %w", err)
	}
	return total, nil
}

func buildJobcardWhere(f models.JobcardFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.From != nil {
		add("date >= $%d", *f.From)
	}
	if f.To != nil {
		add("date <= $%d", *f.To)
	}
	if status := strings.TrimSpace(f.Status); status != "" {
		add("LOWER(status) = LOWER($%d)", status)
	}
	for _, c := range f.TextCriteria() {
		add(c.Column+` ILIKE $%d ESCAPE '\'`, "%"+escapeLike(c.Value)+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func marshalItems(j *models.Jobcard) (services, parts, labour []byte, err error) {
	if services, err = encodeItems(j.Services); err != nil {
		return nil, nil, nil, fmt.Errorf("encode services: %w", err)
	}
	if parts, err = encodeItems(j.Parts); err != nil {
		return nil, nil, nil, fmt.Errorf("encode parts: %w", err)
	}
	if labour, err = encodeItems(j.Labour); err != nil {
		return nil, nil, nil, fmt.Errorf("encode labour: %w", err)
	}
	return services, parts, labour, nil
}

// encodeItems renders a nil list as [] so the JSONB column never holds null
func encodeItems(items []models.LineItem) ([]byte, error) {
	if items == nil {
		items = []models.LineItem{}
	}
	return json.Marshal(items)
}

func scanJobcard(row pgx.Row) (*models.Jobcard, error) {
	var j models.Jobcard
	var services, parts, labour []byte
	var status string
	err := row.Scan(&j.ID, &j.SeqID, &j.JobcardNo, &j.Date,
		&j.CustomerName, &j.Phone, &j.Address, &j.City,
		&j.RegNo, &j.ModelName, &j.ChassisNo, &j.EngineNo, &j.Km, &j.Petrol, &j.KeyNo, &j.VehicleType,
		&j.MechanicName, &j.HelperName, &j.Remarks,
		&services, &parts, &labour,
		&j.Amount, &j.Paid, &j.Remaining, &status,
		&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	j.Status = models.PaymentStatus(status)
	if err := json.Unmarshal(services, &j.Services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	if err := json.Unmarshal(parts, &j.Parts); err != nil {
		return nil, fmt.Errorf("decode parts: %w", err)
	}
	if err := json.Unmarshal(labour, &j.Labour); err != nil {
		return nil, fmt.Errorf("decode labour: %w", err)
	}
	return &j, nil
}
