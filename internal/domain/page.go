package domain

import "time"

// Page is the root of the content tree: page → sections → contents.
type Page struct {
	PageID    string    `json:"id" dynamodbav:"page_id"`
	Key       string    `json:"key" dynamodbav:"key"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`

	Sections []Section `json:"sections,omitempty" dynamodbav:"-"`
}

type PageInput struct {
	Key string `json:"key" validate:"required"`
}

type Section struct {
	SectionID string    `json:"id" dynamodbav:"section_id"`
	PageID    string    `json:"page_id" dynamodbav:"page_id"`
	Key       string    `json:"key" dynamodbav:"key"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`

	Contents []Content `json:"contents,omitempty" dynamodbav:"-"`
}

type SectionInput struct {
	PageID string `json:"page_id" validate:"required"`
	Key    string `json:"key" validate:"required"`
}

type Content struct {
	ContentID string    `json:"id" dynamodbav:"content_id"`
	SectionID string    `json:"section_id" dynamodbav:"section_id"`
	Type      string    `json:"type" dynamodbav:"type"`
	Language  string    `json:"language" dynamodbav:"language"`
	Key       string    `json:"key" dynamodbav:"key"`
	Value     string    `json:"value" dynamodbav:"value"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type ContentInput struct {
	SectionID string `json:"section_id" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Language  string `json:"language" validate:"required"`
	Key       string `json:"key" validate:"required"`
	Value     string `json:"value" validate:"required"`
}

type UpdateContentRequest struct {
	Type     *string `json:"type"`
	Language *string `json:"language"`
	Key      *string `json:"key"`
	Value    *string `json:"value"`
}
