package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"forma-backend/internal/models"
)

type ChildRepo struct {
	pool *pgxpool.Pool
}

func NewChildRepo(pool *pgxpool.Pool) *ChildRepo {
	return &ChildRepo{pool: pool}
}

const childSelect = `
	SELECT c.id, c.child_code, c.name, c.age, c.date_of_birth, c.photo,
		c.mother_id, m.name, c.caretaker_id, ct.name,
		c.assigned_room, c.assigned_camera, c.assigned_mic,
		c.allergies, c.medical_conditions,
		c.emergency_name, c.emergency_phone, c.emergency_relation,
		c.notes, c.is_active, c.created_at, c.updated_at
	FROM children c
	JOIN users m ON m.id = c.mother_id
	LEFT JOIN users ct ON ct.id = c.caretaker_id`

func scanChild(row interface{ Scan(...interface{}) error }) (*models.Child, error) {
	c := &models.Child{}
	err := row.Scan(
		&c.ID, &c.ChildCode, &c.Name, &c.Age, &c.DateOfBirth, &c.Photo,
		&c.MotherID, &c.MotherName, &c.CaretakerID, &c.CaretakerName,
		&c.AssignedRoom, &c.AssignedCamera, &c.AssignedMic,
		&c.Allergies, &c.MedicalConditions,
		&c.EmergencyName, &c.EmergencyPhone, &c.EmergencyRelation,
		&c.Notes, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ChildRepo) Create(ctx context.Context, c *models.Child) error {
	c.ID = uuid.New()
	if c.Allergies == nil {
		c.Allergies = []string{}
	}
	if c.MedicalConditions == nil {
		c.MedicalConditions = []string{}
	}

	query := `
		INSERT INTO children (id, child_code, name, age, date_of_birth, photo, mother_id, caretaker_id,
			assigned_room, assigned_camera, assigned_mic, allergies, medical_conditions,
			emergency_name, emergency_phone, emergency_relation, notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, TRUE)
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		c.ID, c.ChildCode, c.Name, c.Age, c.DateOfBirth, c.Photo, c.MotherID, c.CaretakerID,
		c.AssignedRoom, c.AssignedCamera, c.AssignedMic, c.Allergies, c.MedicalConditions,
		c.EmergencyName, c.EmergencyPhone, c.EmergencyRelation, c.Notes,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *ChildRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Child, error) {
	return scanChild(r.pool.QueryRow(ctx, childSelect+` WHERE c.id = $1`, id))
}

func (r *ChildRepo) list(ctx context.Context, where string, args ...interface{}) ([]*models.Child, error) {
	rows, err := r.pool.Query(ctx, childSelect+where+` ORDER BY c.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []*models.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, rows.Err()
}

func (r *ChildRepo) ListAll(ctx context.Context) ([]*models.Child, error) {
	return r.list(ctx, "")
}

func (r *ChildRepo) ListByMother(ctx context.Context, motherID uuid.UUID) ([]*models.Child, error) {
	return r.list(ctx, ` WHERE c.mother_id = $1`, motherID)
}

func (r *ChildRepo) ListByCaretaker(ctx context.Context, caretakerID uuid.UUID) ([]*models.Child, error) {
	return r.list(ctx, ` WHERE c.caretaker_id = $1`, caretakerID)
}

func (r *ChildRepo) ListActive(ctx context.Context) ([]*models.Child, error) {
	return r.list(ctx, ` WHERE c.is_active = TRUE`)
}

func (r *ChildRepo) Update(ctx context.Context, c *models.Child) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE children SET name = $1, age = $2, date_of_birth = $3, photo = $4, caretaker_id = $5,
			assigned_room = $6, assigned_camera = $7, assigned_mic = $8,
			allergies = $9, medical_conditions = $10,
			emergency_name = $11, emergency_phone = $12, emergency_relation = $13,
			notes = $14, is_active = $15, updated_at = NOW()
		WHERE id = $16`,
		c.Name, c.Age, c.DateOfBirth, c.Photo, c.CaretakerID,
		c.AssignedRoom, c.AssignedCamera, c.AssignedMic,
		c.Allergies, c.MedicalConditions,
		c.EmergencyName, c.EmergencyPhone, c.EmergencyRelation,
		c.Notes, c.IsActive, c.ID,
	)
	return err
}

func (r *ChildRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM children WHERE id = $1", id)
	return err
}
