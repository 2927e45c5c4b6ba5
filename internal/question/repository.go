package question

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/quizbot/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/question/mock_repository.go -package=mock_question

// Repository reads the question bank and records per-user progress.
type Repository interface {
	CountAll(ctx context.Context) (int64, error)
	CountUnlearned(ctx context.Context, userID int64) (int64, error)
	CountLearned(ctx context.Context, userID int64) (int64, error)
	// FindUnlearnedAt returns the offset-th unlearned question ordered by id, or nil if there is none.
	FindUnlearnedAt(ctx context.Context, userID int64, offset int64) (*Question, error)
	// FindByID returns nil if the question does not exist.
	FindByID(ctx context.Context, id int64) (*Question, error)
	// MarkLearned reports whether a new mark was inserted; marking twice is not an error.
	MarkLearned(ctx context.Context, mark LearnedMark) (bool, error)
	LogAction(ctx context.Context, entry ActionLog) error
}

// ImportRepository writes the question bank.
type ImportRepository interface {
	FindAllIDs(ctx context.Context) ([]int64, error)
	Upsert(ctx context.Context, questions []Question) error
}

const notLearnedCondition = `NOT EXISTS (
    SELECT 1 FROM learned_questions l
    WHERE l.question_id = q.id AND l.user_id = ?
)`

// DBRepository implements Repository and ImportRepository on MySQL, PostgreSQL, or SQLite.
type DBRepository struct {
	db      *sqlx.DB
	dialect database.Dialect
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{
		db:      db,
		dialect: database.DialectOf(db),
	}
}

func (r *DBRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM questions"); err != nil {
		return 0, retrievalError("db.GetContext(count questions)", err)
	}
	return count, nil
}

func (r *DBRepository) CountUnlearned(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := r.db.Rebind("SELECT COUNT(*) FROM questions q WHERE " + notLearnedCondition)
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, retrievalError("db.GetContext(count unlearned questions)", err)
	}
	return count, nil
}

func (r *DBRepository) CountLearned(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := r.db.Rebind("SELECT COUNT(*) FROM learned_questions WHERE user_id = ?")
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, retrievalError("db.GetContext(count learned questions)", err)
	}
	return count, nil
}

func (r *DBRepository) FindUnlearnedAt(ctx context.Context, userID int64, offset int64) (*Question, error) {
	var record questionRecord
	query := r.db.Rebind("SELECT q.id, q.question, q.topic, q.answer FROM questions q WHERE " +
		notLearnedCondition + " ORDER BY q.id LIMIT 1 OFFSET ?")
	err := r.db.GetContext(ctx, &record, query, userID, offset)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, retrievalError("db.GetContext(unlearned question)", err)
	}
	return record.toQuestion(), nil
}

func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Question, error) {
	var record questionRecord
	query := r.db.Rebind("SELECT id, question, topic, answer FROM questions WHERE id = ?")
	err := r.db.GetContext(ctx, &record, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, retrievalError("db.GetContext(question)", err)
	}
	return record.toQuestion(), nil
}

func (r *DBRepository) MarkLearned(ctx context.Context, mark LearnedMark) (bool, error) {
	var query string
	switch r.dialect {
	case database.DialectMySQL:
		// Without CLIENT_FOUND_ROWS a no-op update affects zero rows.
		query = `INSERT INTO learned_questions (user_id, username, question_id) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE user_id = user_id`
	default:
		query = `INSERT INTO learned_questions (user_id, username, question_id) VALUES (?, ?, ?)
			ON CONFLICT (user_id, question_id) DO NOTHING`
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), mark.UserID, nullString(mark.Username), mark.QuestionID)
	if err != nil {
		return false, retrievalError("db.ExecContext(insert learned_question)", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, retrievalError("result.RowsAffected()", err)
	}
	return affected > 0, nil
}

func (r *DBRepository) LogAction(ctx context.Context, entry ActionLog) error {
	query := r.db.Rebind("INSERT INTO user_logs (username, question_id, user_answer) VALUES (?, ?, ?)")
	if _, err := r.db.ExecContext(ctx, query, entry.Username, entry.QuestionID, nullString(entry.UserAnswer)); err != nil {
		return retrievalError("db.ExecContext(insert user_log)", err)
	}
	return nil
}

func (r *DBRepository) FindAllIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, "SELECT id FROM questions ORDER BY id"); err != nil {
		return nil, retrievalError("db.SelectContext(question ids)", err)
	}
	return ids, nil
}

// Upsert inserts the questions, replacing text, topic, and answer of ids that already exist.
func (r *DBRepository) Upsert(ctx context.Context, questions []Question) error {
	var query string
	switch r.dialect {
	case database.DialectMySQL:
		query = `INSERT INTO questions (id, question, topic, answer) VALUES (?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE question = VALUES(question), topic = VALUES(topic), answer = VALUES(answer)`
	default:
		query = `INSERT INTO questions (id, question, topic, answer) VALUES (?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET question = excluded.question, topic = excluded.topic, answer = excluded.answer`
	}
	query = r.db.Rebind(query)

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, q := range questions {
			if _, err := tx.ExecContext(ctx, query, q.ID, q.Text, nullString(q.Topic), nullString(q.Answer)); err != nil {
				return retrievalError(fmt.Sprintf("tx.ExecContext(upsert question %d)", q.ID), err)
			}
		}
		return nil
	})
}
