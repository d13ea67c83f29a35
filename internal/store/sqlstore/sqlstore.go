// Package sqlstore persists word lists and user statistics in MySQL,
// PostgreSQL or SQLite through sqlx.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/iremert/wordpecker/internal/database"
	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/store"
	"github.com/iremert/wordpecker/internal/vocabulary"
)

// maxRowsPerInsert keeps multi-row inserts below the placeholder limits of every driver.
const maxRowsPerInsert = 200

type Store struct {
	db *sqlx.DB
}

var _ store.Store = (*Store)(nil)

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func selectQuery(table string, columns []string, where string) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s", strings.Join(columns, ", "), table, where)
}

func failure(callee string, err error) error {
	return fmt.Errorf("%w: %s > %w", store.ErrStore, callee, err)
}

func (s *Store) LoadWordList(ctx context.Context, id string) (*vocabulary.WordList, error) {
	var row wordListRow
	query := s.db.Rebind(selectQuery("word_lists", wordListColumns, "id = ?"))
	err := s.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: word list %s", store.ErrNotFound, id)
	}
	if err != nil {
		return nil, failure("db.GetContext(word_lists)", err)
	}

	var wordRows []wordRow
	query = s.db.Rebind(selectQuery("words", wordColumns, "list_id = ? ORDER BY position"))
	if err := s.db.SelectContext(ctx, &wordRows, query, id); err != nil {
		return nil, failure("db.SelectContext(words)", err)
	}
	words, err := toWords(wordRows)
	if err != nil {
		return nil, failure("toWords()", err)
	}

	list := row.toWordList(words)
	return &list, nil
}

func (s *Store) ListWordLists(ctx context.Context, userID string) ([]vocabulary.WordList, error) {
	var rows []wordListRow
	query := s.db.Rebind(selectQuery("word_lists", wordListColumns, "user_id = ? ORDER BY created_at, id"))
	if err := s.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, failure("db.SelectContext(word_lists)", err)
	}
	if len(rows) == 0 {
		return []vocabulary.WordList{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	query, args, err := sqlx.In(selectQuery("words", wordColumns, "list_id IN (?) ORDER BY list_id, position"), ids)
	if err != nil {
		return nil, failure("sqlx.In(words)", err)
	}
	var wordRows []wordRow
	if err := s.db.SelectContext(ctx, &wordRows, s.db.Rebind(query), args...); err != nil {
		return nil, failure("db.SelectContext(words)", err)
	}

	byList := make(map[string][]wordRow, len(rows))
	for _, w := range wordRows {
		byList[w.ListID] = append(byList[w.ListID], w)
	}
	lists := make([]vocabulary.WordList, 0, len(rows))
	for _, row := range rows {
		words, err := toWords(byList[row.ID])
		if err != nil {
			return nil, failure("toWords()", err)
		}
		lists = append(lists, row.toWordList(words))
	}
	return lists, nil
}

// SaveWordList replaces the stored list and all of its words.
func (s *Store) SaveWordList(ctx context.Context, list *vocabulary.WordList) error {
	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := deleteWordListRows(ctx, tx, list.ID); err != nil {
			return err
		}

		row := newWordListRow(list)
		if err := insertRows(ctx, tx, "word_lists", wordListColumns, [][]interface{}{row.args()}); err != nil {
			return err
		}

		values := make([][]interface{}, 0, len(list.Words))
		for i, w := range list.Words {
			wr, err := newWordRow(list.ID, i, w)
			if err != nil {
				return err
			}
			values = append(values, wr.args())
		}
		return insertRows(ctx, tx, "words", wordColumns, values)
	})
	if err != nil {
		return failure("SaveWordList()", err)
	}
	return nil
}

func (s *Store) DeleteWordList(ctx context.Context, id string) error {
	found := false
	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error
		found, err = deleteWordListRows(ctx, tx, id)
		return err
	})
	if err != nil {
		return failure("DeleteWordList()", err)
	}
	if !found {
		return fmt.Errorf("%w: word list %s", store.ErrNotFound, id)
	}
	return nil
}

func (s *Store) LoadUserStats(ctx context.Context, userID string) (*progress.UserStats, error) {
	var row userStatsRow
	query := s.db.Rebind(selectQuery("user_stats", userStatsColumns, "user_id = ?"))
	err := s.db.GetContext(ctx, &row, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user stats %s", store.ErrNotFound, userID)
	}
	if err != nil {
		return nil, failure("db.GetContext(user_stats)", err)
	}

	stats := progress.NewUserStats(userID)
	stats.TotalWordsMastered = row.TotalWordsMastered
	stats.TotalWordsLearned = row.TotalWordsLearned
	stats.TotalLists = row.TotalLists
	stats.StreakDays = row.StreakDays
	if row.LastStreak.Valid && row.LastStreak.String != "" {
		d, err := vocabulary.ParseDate(row.LastStreak.String)
		if err != nil {
			return nil, failure("vocabulary.ParseDate(last_streak)", err)
		}
		stats.LastStreak = &d
	}

	var quizRows []quizResultRow
	query = s.db.Rebind(selectQuery("quiz_results", quizResultColumns, "user_id = ? ORDER BY position"))
	if err := s.db.SelectContext(ctx, &quizRows, query, userID); err != nil {
		return nil, failure("db.SelectContext(quiz_results)", err)
	}
	for _, qr := range quizRows {
		result, err := qr.toQuizResult()
		if err != nil {
			return nil, failure("toQuizResult()", err)
		}
		stats.QuizResults = append(stats.QuizResults, result)
	}

	var sessionRows []learningSessionRow
	query = s.db.Rebind(selectQuery("learning_sessions", learningSessionColumns, "user_id = ? ORDER BY position"))
	if err := s.db.SelectContext(ctx, &sessionRows, query, userID); err != nil {
		return nil, failure("db.SelectContext(learning_sessions)", err)
	}
	for _, sr := range sessionRows {
		stats.LearningSessions = append(stats.LearningSessions, progress.LearningSession{
			ID:            sr.ID,
			ListID:        sr.ListID,
			Date:          sr.Date,
			WordsReviewed: sr.WordsReviewed,
			WordsMastered: sr.WordsMastered,
			TimeSpent:     sr.TimeSpent,
		})
	}

	var achievementRows []achievementRow
	query = s.db.Rebind(selectQuery("achievements", achievementColumns, "user_id = ? ORDER BY position"))
	if err := s.db.SelectContext(ctx, &achievementRows, query, userID); err != nil {
		return nil, failure("db.SelectContext(achievements)", err)
	}
	for _, ar := range achievementRows {
		stats.Achievements = append(stats.Achievements, ar.toAchievement())
	}

	return &stats, nil
}

// SaveUserStats rewrites the statistics of a user, including history and
// achievements, in one transaction.
func (s *Store) SaveUserStats(ctx context.Context, stats *progress.UserStats) error {
	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, table := range []string{"achievements", "learning_sessions", "quiz_results", "user_stats"} {
			if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM "+table+" WHERE user_id = ?"), stats.UserID); err != nil {
				return fmt.Errorf("tx.ExecContext(delete %s) > %w", table, err)
			}
		}

		var lastStreak sql.NullString
		if stats.LastStreak != nil {
			lastStreak = sql.NullString{String: stats.LastStreak.String(), Valid: true}
		}
		if err := insertRows(ctx, tx, "user_stats", userStatsColumns, [][]interface{}{{
			stats.UserID, stats.TotalWordsMastered, stats.TotalWordsLearned, stats.TotalLists,
			stats.StreakDays, lastStreak,
		}}); err != nil {
			return err
		}

		quizValues := make([][]interface{}, 0, len(stats.QuizResults))
		for i, r := range stats.QuizResults {
			wrong := r.WrongAnswers
			if wrong == nil {
				wrong = []string{}
			}
			encoded, err := json.Marshal(wrong)
			if err != nil {
				return fmt.Errorf("json.Marshal(wrong answers of %s) > %w", r.ID, err)
			}
			quizValues = append(quizValues, []interface{}{
				r.ID, stats.UserID, i, r.ListID, r.Date, r.Score, r.CorrectAnswers,
				r.TotalQuestions, r.TimeSpent, string(encoded),
			})
		}
		if err := insertRows(ctx, tx, "quiz_results", quizResultColumns, quizValues); err != nil {
			return err
		}

		sessionValues := make([][]interface{}, 0, len(stats.LearningSessions))
		for i, session := range stats.LearningSessions {
			sessionValues = append(sessionValues, []interface{}{
				session.ID, stats.UserID, i, session.ListID, session.Date, session.WordsReviewed,
				session.WordsMastered, session.TimeSpent,
			})
		}
		if err := insertRows(ctx, tx, "learning_sessions", learningSessionColumns, sessionValues); err != nil {
			return err
		}

		achievementValues := make([][]interface{}, 0, len(stats.Achievements))
		for i, a := range stats.Achievements {
			var unlockedAt sql.NullTime
			if a.UnlockedAt != nil {
				unlockedAt = sql.NullTime{Time: *a.UnlockedAt, Valid: true}
			}
			achievementValues = append(achievementValues, []interface{}{
				stats.UserID, a.ID, i, a.Title, a.Description, a.Icon, a.Color,
				unlockedAt, a.Progress, a.MaxProgress, a.IsUnlocked,
			})
		}
		return insertRows(ctx, tx, "achievements", achievementColumns, achievementValues)
	})
	if err != nil {
		return failure("SaveUserStats()", err)
	}
	return nil
}

func toWords(rows []wordRow) ([]vocabulary.Word, error) {
	words := make([]vocabulary.Word, 0, len(rows))
	for _, row := range rows {
		w, err := row.toWord()
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}

func deleteWordListRows(ctx context.Context, tx *sqlx.Tx, id string) (bool, error) {
	if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM words WHERE list_id = ?"), id); err != nil {
		return false, fmt.Errorf("tx.ExecContext(delete words) > %w", err)
	}
	result, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM word_lists WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("tx.ExecContext(delete word_lists) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return affected > 0, nil
}

func insertRows(ctx context.Context, tx *sqlx.Tx, table string, columns []string, rows [][]interface{}) error {
	for start := 0; start < len(rows); start += maxRowsPerInsert {
		end := min(start+maxRowsPerInsert, len(rows))
		batch := rows[start:end]

		query := database.BuildMultiRowInsert(table, columns, len(batch))
		args := make([]interface{}, 0, len(batch)*len(columns))
		for _, row := range batch {
			args = append(args, row...)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("tx.ExecContext(insert %s) > %w", table, err)
		}
	}
	return nil
}
