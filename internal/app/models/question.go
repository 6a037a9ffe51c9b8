package models

import "time"

// Question is a student-asked question, optionally tied to a company.
type Question struct {
	QuestionID  int64     `json:"question_id"`
	Content     string    `json:"content"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"`
	CompanyID   *int64    `json:"company_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Answer is an alumni reply to a question.
type Answer struct {
	AnswerID   int64     `json:"answer_id"`
	QuestionID int64     `json:"question_id"`
	Content    string    `json:"content"`
	AlumniID   string    `json:"alumni_id"`
	AlumniName string    `json:"alumni_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
