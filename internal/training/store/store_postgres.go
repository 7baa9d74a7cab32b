package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"registrar/internal/platform/postgres"
	"registrar/internal/training/models"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/tx"
)

// PostgresStore persists workshops. Participants cascade with their
// workshop.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var workshopColumns = []string{
	"id", "workshop_name", "training_type_id", "start_date", "end_date", "location", "facilitator",
	"max_participants", "status", "description", "materials_path", "created_at", "updated_at",
}

func scanWorkshop(row postgres.Scanner) (*models.Workshop, error) {
	var w models.Workshop
	err := row.Scan(&w.ID, &w.WorkshopName, &w.TrainingTypeID, &w.StartDate, &w.EndDate, &w.Location, &w.Facilitator,
		&w.MaxParticipants, &w.Status, &w.Description, &w.MaterialsPath, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func workshopValues(w *models.Workshop) map[string]any {
	return map[string]any{
		"workshop_name":    w.WorkshopName,
		"training_type_id": w.TrainingTypeID,
		"start_date":       w.StartDate,
		"end_date":         w.EndDate,
		"location":         w.Location,
		"facilitator":      w.Facilitator,
		"max_participants": w.MaxParticipants,
		"status":           w.Status,
		"description":      w.Description,
		"materials_path":   w.MaterialsPath,
		"updated_at":       w.UpdatedAt,
	}
}

func (s *PostgresStore) Create(ctx context.Context, w *models.Workshop) error {
	values := workshopValues(w)
	values["id"] = w.ID
	values["created_at"] = w.CreatedAt
	if _, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Insert("training_workshops").SetMap(values)); err != nil {
		return fmt.Errorf("create workshop: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Workshop, error) {
	w, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(workshopColumns...).From("training_workshops").Where(sq.Eq{"id": id}), scanWorkshop)
	if err != nil {
		return nil, fmt.Errorf("find workshop: %w", err)
	}
	return w, nil
}

func (s *PostgresStore) Update(ctx context.Context, w *models.Workshop) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Update("training_workshops").SetMap(workshopValues(w)).Where(sq.Eq{"id": w.ID}), "workshop")
	if err != nil {
		return fmt.Errorf("update workshop: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("training_workshops").Where(sq.Eq{"id": id}), "workshop")
	if err != nil {
		return fmt.Errorf("delete workshop: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, f models.Filter, p listing.Page) ([]*models.Workshop, int, error) {
	where := sq.And{postgres.All}
	if f.Search != nil {
		like := postgres.Like(*f.Search)
		where = append(where, sq.Or{
			sq.ILike{"workshop_name": like}, sq.ILike{"facilitator": like}, sq.ILike{"location": like},
		})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
	}
	if f.TypeID != nil {
		where = append(where, sq.Eq{"training_type_id": *f.TypeID})
	}
	if f.DateFrom != nil {
		where = append(where, sq.GtOrEq{"start_date": *f.DateFrom})
	}
	if f.DateTo != nil {
		where = append(where, sq.LtOrEq{"start_date": *f.DateTo})
	}
	out, total, err := postgres.Paged(ctx, postgres.Conn(ctx, s.db), "training_workshops", where, workshopColumns,
		[]string{"start_date DESC", "workshop_name"}, p, scanWorkshop)
	if err != nil {
		return nil, 0, fmt.Errorf("list workshops: %w", err)
	}
	return out, total, nil
}

var participantColumns = []string{
	"id", "workshop_id", "organization_id", "official_id", "first_name", "last_name", "email", "phone",
	"attendance_status", "certificate_issued", "notes", "created_at", "updated_at",
}

func scanParticipant(row postgres.Scanner) (models.Participant, error) {
	var p models.Participant
	err := row.Scan(&p.ID, &p.WorkshopID, &p.OrganizationID, &p.OfficialID, &p.FirstName, &p.LastName, &p.Email,
		&p.Phone, &p.AttendanceStatus, &p.CertificateIssued, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func participantValues(p *models.Participant) map[string]any {
	return map[string]any{
		"organization_id":    p.OrganizationID,
		"official_id":        p.OfficialID,
		"first_name":         p.FirstName,
		"last_name":          p.LastName,
		"email":              p.Email,
		"phone":              p.Phone,
		"attendance_status":  p.AttendanceStatus,
		"certificate_issued": p.CertificateIssued,
		"notes":              p.Notes,
		"updated_at":         p.UpdatedAt,
	}
}

func (s *PostgresStore) ListParticipants(ctx context.Context, workshopID uuid.UUID) ([]models.Participant, error) {
	out, err := postgres.Select(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Select(participantColumns...).
		From("workshop_participants").Where(sq.Eq{"workshop_id": workshopID}).OrderBy("last_name", "first_name"),
		scanParticipant)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	p, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(participantColumns...).From("workshop_participants").Where(sq.Eq{"id": id}),
		scanParticipant)
	if err != nil {
		return nil, fmt.Errorf("find participant: %w", err)
	}
	return &p, nil
}

// AddParticipant locks the workshop row, counts its participants against
// max_participants and inserts p in one transaction.
func (s *PostgresStore) AddParticipant(ctx context.Context, p *models.Participant) error {
	err := tx.SQLRunner{DB: s.db}.RunInTx(ctx, func(ctx context.Context) error {
		conn := postgres.Conn(ctx, s.db)
		limit, err := postgres.Get(ctx, conn, postgres.Builder.Select("max_participants").
			From("training_workshops").Where(sq.Eq{"id": p.WorkshopID}).Suffix("FOR UPDATE"),
			func(row postgres.Scanner) (*int, error) {
				var n *int
				if err := row.Scan(&n); err != nil {
					return nil, err
				}
				return n, nil
			})
		if err != nil {
			return err
		}
		if limit != nil {
			n, err := postgres.Count(ctx, conn, postgres.Builder.Select("count(*)").
				From("workshop_participants").Where(sq.Eq{"workshop_id": p.WorkshopID}))
			if err != nil {
				return err
			}
			if n >= *limit {
				return ErrWorkshopFull
			}
		}
		values := participantValues(p)
		values["id"] = p.ID
		values["workshop_id"] = p.WorkshopID
		values["created_at"] = p.CreatedAt
		_, err = postgres.Exec(ctx, conn, postgres.Builder.Insert("workshop_participants").SetMap(values))
		return err
	})
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateParticipant(ctx context.Context, p *models.Participant) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Update("workshop_participants").SetMap(participantValues(p)).Where(sq.Eq{"id": p.ID}),
		"participant")
	if err != nil {
		return fmt.Errorf("update participant: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("workshop_participants").Where(sq.Eq{"id": id}), "participant")
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	return nil
}
