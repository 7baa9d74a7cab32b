package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"registrar/internal/ballot/models"
	"registrar/internal/platform/postgres"
	"registrar/pkg/platform/listing"
)

// PostgresStore persists elections. Positions, candidates and results
// cascade with their parents.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func translate(err error) error {
	switch postgres.Constraint(err) {
	case "ballot_elections_election_number_key":
		return ErrNumberTaken
	case "ballot_elections_supervisor_id_fkey":
		return ErrUnknownSupervisor
	}
	return err
}

var electionColumns = []string{
	"id", "election_number", "organization_id", "election_date", "purpose", "status",
	"supervisor_id", "location", "notes", "created_at", "updated_at",
}

func scanElection(row postgres.Scanner) (*models.Election, error) {
	var e models.Election
	err := row.Scan(&e.ID, &e.ElectionNumber, &e.OrganizationID, &e.ElectionDate, &e.Purpose, &e.Status,
		&e.SupervisorID, &e.Location, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func electionValues(e *models.Election) map[string]any {
	return map[string]any{
		"election_number": e.ElectionNumber,
		"organization_id": e.OrganizationID,
		"election_date":   e.ElectionDate,
		"purpose":         e.Purpose,
		"status":          e.Status,
		"supervisor_id":   e.SupervisorID,
		"location":        e.Location,
		"notes":           e.Notes,
		"updated_at":      e.UpdatedAt,
	}
}

func (s *PostgresStore) Create(ctx context.Context, e *models.Election) error {
	values := electionValues(e)
	values["id"] = e.ID
	values["created_at"] = e.CreatedAt
	if _, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Insert("ballot_elections").SetMap(values)); err != nil {
		return fmt.Errorf("create election: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) findOne(ctx context.Context, where sq.Sqlizer) (*models.Election, error) {
	e, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(electionColumns...).From("ballot_elections").Where(where), scanElection)
	if err != nil {
		return nil, fmt.Errorf("find election: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Election, error) {
	return s.findOne(ctx, sq.Eq{"id": id})
}

func (s *PostgresStore) FindByNumber(ctx context.Context, number string) (*models.Election, error) {
	return s.findOne(ctx, sq.Eq{"election_number": number})
}

func (s *PostgresStore) Update(ctx context.Context, e *models.Election) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Update("ballot_elections").SetMap(electionValues(e)).Where(sq.Eq{"id": e.ID}), "election")
	if err != nil {
		return fmt.Errorf("update election: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("ballot_elections").Where(sq.Eq{"id": id}), "election")
	if err != nil {
		return fmt.Errorf("delete election: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, f models.Filter, p listing.Page) ([]*models.Election, int, error) {
	where := sq.And{postgres.All}
	if f.Search != nil {
		like := postgres.Like(*f.Search)
		where = append(where, sq.Or{sq.ILike{"election_number": like}, sq.ILike{"purpose": like}})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
	}
	if f.OrganizationID != nil {
		where = append(where, sq.Eq{"organization_id": *f.OrganizationID})
	}
	if f.DateFrom != nil {
		where = append(where, sq.GtOrEq{"election_date": *f.DateFrom})
	}
	if f.DateTo != nil {
		where = append(where, sq.LtOrEq{"election_date": *f.DateTo})
	}
	out, total, err := postgres.Paged(ctx, postgres.Conn(ctx, s.db), "ballot_elections", where, electionColumns,
		[]string{"election_date DESC", "election_number"}, p, scanElection)
	if err != nil {
		return nil, 0, fmt.Errorf("list elections: %w", err)
	}
	return out, total, nil
}

var positionColumns = []string{"id", "election_id", "position_name", "description", "created_at", "updated_at"}

func scanPosition(row postgres.Scanner) (models.Position, error) {
	var p models.Position
	err := row.Scan(&p.ID, &p.ElectionID, &p.PositionName, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *PostgresStore) ListPositions(ctx context.Context, electionID uuid.UUID) ([]models.Position, error) {
	out, err := postgres.Select(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Select(positionColumns...).
		From("ballot_positions").Where(sq.Eq{"election_id": electionID}).OrderBy("position_name"), scanPosition)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindPosition(ctx context.Context, id uuid.UUID) (*models.Position, error) {
	p, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(positionColumns...).From("ballot_positions").Where(sq.Eq{"id": id}), scanPosition)
	if err != nil {
		return nil, fmt.Errorf("find position: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) CreatePosition(ctx context.Context, p *models.Position) error {
	_, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Insert("ballot_positions").SetMap(map[string]any{
		"id": p.ID, "election_id": p.ElectionID, "position_name": p.PositionName, "description": p.Description,
		"created_at": p.CreatedAt, "updated_at": p.UpdatedAt,
	}))
	if err != nil {
		return fmt.Errorf("create position: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdatePosition(ctx context.Context, p *models.Position) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Update("ballot_positions").SetMap(map[string]any{
		"position_name": p.PositionName, "description": p.Description, "updated_at": p.UpdatedAt,
	}).Where(sq.Eq{"id": p.ID}), "position")
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeletePosition(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("ballot_positions").Where(sq.Eq{"id": id}), "position")
	if err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	return nil
}

var candidateColumns = []string{"id", "position_id", "first_name", "last_name", "bio", "created_at", "updated_at"}

func scanCandidate(row postgres.Scanner) (models.Candidate, error) {
	var c models.Candidate
	err := row.Scan(&c.ID, &c.PositionID, &c.FirstName, &c.LastName, &c.Bio, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (s *PostgresStore) ListCandidates(ctx context.Context, positionID uuid.UUID) ([]models.Candidate, error) {
	out, err := postgres.Select(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Select(candidateColumns...).
		From("ballot_candidates").Where(sq.Eq{"position_id": positionID}).OrderBy("last_name", "first_name"), scanCandidate)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindCandidate(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	c, err := postgres.Get(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Select(candidateColumns...).From("ballot_candidates").Where(sq.Eq{"id": id}), scanCandidate)
	if err != nil {
		return nil, fmt.Errorf("find candidate: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	_, err := postgres.Exec(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Insert("ballot_candidates").SetMap(map[string]any{
		"id": c.ID, "position_id": c.PositionID, "first_name": c.FirstName, "last_name": c.LastName, "bio": c.Bio,
		"created_at": c.CreatedAt, "updated_at": c.UpdatedAt,
	}))
	if err != nil {
		return fmt.Errorf("create candidate: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateCandidate(ctx context.Context, c *models.Candidate) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db), postgres.Builder.Update("ballot_candidates").SetMap(map[string]any{
		"first_name": c.FirstName, "last_name": c.LastName, "bio": c.Bio, "updated_at": c.UpdatedAt,
	}).Where(sq.Eq{"id": c.ID}), "candidate")
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("ballot_candidates").Where(sq.Eq{"id": id}), "candidate")
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	return nil
}

func scanResultView(row postgres.Scanner) (models.ResultView, error) {
	var v models.ResultView
	var first, last string
	err := row.Scan(&v.ID, &v.ElectionID, &v.PositionID, &v.CandidateID, &v.VotesReceived, &v.IsElected,
		&v.CreatedAt, &v.UpdatedAt, &v.PositionName, &first, &last)
	v.CandidateName = first + " " + last
	return v, err
}

func (s *PostgresStore) ListResults(ctx context.Context, electionID uuid.UUID) ([]models.ResultView, error) {
	b := postgres.Builder.Select(
		"r.id", "r.election_id", "r.position_id", "r.candidate_id", "r.votes_received", "r.is_elected",
		"r.created_at", "r.updated_at", "p.position_name", "c.first_name", "c.last_name",
	).From("ballot_results r").
		Join("ballot_positions p ON p.id = r.position_id").
		Join("ballot_candidates c ON c.id = r.candidate_id").
		Where(sq.Eq{"r.election_id": electionID}).
		OrderBy("p.position_name", "r.votes_received DESC")
	out, err := postgres.Select(ctx, postgres.Conn(ctx, s.db), b, scanResultView)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return out, nil
}

// UpsertResult writes the tally in one statement so concurrent posts for
// the same key cannot both insert. xmax is zero only for a freshly
// inserted row.
func (s *PostgresStore) UpsertResult(ctx context.Context, r *models.Result) (bool, error) {
	query, args, err := postgres.Builder.Insert("ballot_results").
		Columns("id", "election_id", "position_id", "candidate_id", "votes_received", "is_elected", "created_at", "updated_at").
		Values(r.ID, r.ElectionID, r.PositionID, r.CandidateID, r.VotesReceived, r.IsElected, r.CreatedAt, r.UpdatedAt).
		Suffix(`ON CONFLICT ON CONSTRAINT ballot_results_tally_key DO UPDATE SET
			votes_received = EXCLUDED.votes_received,
			is_elected = EXCLUDED.is_elected,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, (xmax = 0)`).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build result upsert: %w", err)
	}
	var inserted bool
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx, query, args...)
	if err := row.Scan(&r.ID, &r.CreatedAt, &inserted); err != nil {
		return false, fmt.Errorf("upsert result: %w", postgres.Classify(err))
	}
	return inserted, nil
}

func (s *PostgresStore) DeleteResult(ctx context.Context, id uuid.UUID) error {
	err := postgres.ExecOne(ctx, postgres.Conn(ctx, s.db),
		postgres.Builder.Delete("ballot_results").Where(sq.Eq{"id": id}), "result")
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	return nil
}
