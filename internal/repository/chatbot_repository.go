package repository

import (
	"context"
	"database/sql"

	"github.com/plastiside/plastiside/internal/model"
)

// ChatbotRepo stores the FAQ question/answer pairs the chatbot matches
// incoming messages against.
type ChatbotRepo struct {
	db *sql.DB
}

// NewChatbotRepo returns a ChatbotRepo bound to the given database.
func NewChatbotRepo(db *sql.DB) *ChatbotRepo { return &ChatbotRepo{db: db} }

// Match returns the first stored response whose question contains the
// normalized message, case-insensitively.  sql.ErrNoRows means no match.
func (r *ChatbotRepo) Match(ctx context.Context, normalized string) (model.ChatbotResponse, error) {
	var c model.ChatbotResponse
	err := r.db.QueryRowContext(ctx,
		"SELECT id,question,answer,category,created_at FROM chatbot_responses WHERE LOWER(question) LIKE CONCAT('%', ?, '%') LIMIT 1",
		normalized).Scan(&c.ID, &c.Question, &c.Answer, &c.Category, &c.CreatedAt)
	return c, err
}

// Create inserts a question/answer pair and returns its ID.
func (r *ChatbotRepo) Create(ctx context.Context, question, answer, category string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO chatbot_responses (question, answer, category) VALUES (?,?,?)",
		question, answer, category)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns all stored responses, newest first.
func (r *ChatbotRepo) List(ctx context.Context) ([]model.ChatbotResponse, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,question,answer,category,created_at FROM chatbot_responses ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ChatbotResponse, 0)
	for rows.Next() {
		var c model.ChatbotResponse
		if err := rows.Scan(&c.ID, &c.Question, &c.Answer, &c.Category, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
