package model

import "time"

// ChatbotResponse is one stored question/answer pair used by the FAQ
// chatbot.  Incoming messages are matched against Question with a
// case-insensitive substring comparison.
//
// Fields:
//  ID        – primary key identifier.
//  Question  – normalized question text to match against.
//  Answer    – answer returned to the client.
//  Category  – free-form grouping label, defaults to "general".
//  CreatedAt – creation timestamp.
type ChatbotResponse struct {
	ID        uint64    // chatbot_responses.id
	Question  string    // chatbot_responses.question
	Answer    string    // chatbot_responses.answer
	Category  string    // chatbot_responses.category
	CreatedAt time.Time // chatbot_responses.created_at
}
