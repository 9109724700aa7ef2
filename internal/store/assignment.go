package store

import (
	"database/sql"
	"fmt"

	"github.com/studydesk-app/studydesk/internal/model"
)

// AssignmentFilter scopes assignment queries. OwnerID is mandatory: every
// read and mutation carries the caller's identity, not just the record id.
// A non-empty Search requires a case-insensitive substring match against
// question or answer.
type AssignmentFilter struct {
	OwnerID int64
	Search  string
}

// where returns the WHERE clause and its arguments. Count and List both go
// through here so the pagination total can never disagree with the page fetch.
func (f AssignmentFilter) where() (string, []any) {
	clause := `user_id = ?`
	args := []any{f.OwnerID}
	if f.Search != "" {
		clause += ` AND (question LIKE '%' || ? || '%' OR answer LIKE '%' || ? || '%')`
		args = append(args, f.Search, f.Search)
	}
	return clause, args
}

type AssignmentStore struct {
	db *sql.DB
}

func NewAssignmentStore(db *sql.DB) *AssignmentStore {
	return &AssignmentStore{db: db}
}

func scanAssignment(scanner interface{ Scan(...any) error }) (*model.Assignment, error) {
	var a model.Assignment
	err := scanner.Scan(&a.ID, &a.UserID, &a.Question, &a.Answer, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const assignmentCols = `id, user_id, question, answer, created_at, updated_at`

func (s *AssignmentStore) Create(userID int64, question, answer string) (*model.Assignment, error) {
	result, err := s.db.Exec(
		`INSERT INTO assignments (user_id, question, answer) VALUES (?, ?, ?)`,
		userID, question, answer,
	)
	if err != nil {
		return nil, fmt.Errorf("insert assignment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id, userID)
}

// GetByID fetches an assignment by id scoped to its owner. A missing row and
// a row owned by someone else are both nil; callers cannot tell them apart.
func (s *AssignmentStore) GetByID(id, userID int64) (*model.Assignment, error) {
	row := s.db.QueryRow(
		`SELECT `+assignmentCols+` FROM assignments WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	a, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

// List returns one page of matching assignments, newest first. The id
// tiebreak keeps the order stable when timestamps collide, so paging over
// the full set yields every record exactly once.
func (s *AssignmentStore) List(f AssignmentFilter, page, limit int) ([]model.Assignment, error) {
	clause, args := f.where()
	offset := (page - 1) * limit
	args = append(args, limit, offset)

	rows, err := s.db.Query(
		`SELECT `+assignmentCols+` FROM assignments WHERE `+clause+
			` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

// Count returns the total number of assignments matching the filter.
func (s *AssignmentStore) Count(f AssignmentFilter) (int64, error) {
	clause, args := f.where()

	var total int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM assignments WHERE `+clause, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count assignments: %w", err)
	}
	return total, nil
}

// Delete removes the assignment matching both id and owner in one statement.
// It reports whether a row was actually removed.
func (s *AssignmentStore) Delete(id, userID int64) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM assignments WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
