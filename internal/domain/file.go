package domain

import "time"

type File struct {
	FileID           string    `json:"id" dynamodbav:"file_id"`
	Name             string    `json:"name" dynamodbav:"name"`
	Type             string    `json:"type" dynamodbav:"type"`
	Size             int64     `json:"size" dynamodbav:"size"`
	Object           string    `json:"object" dynamodbav:"object"` // S3 key
	URL              string    `json:"url" dynamodbav:"url"`
	Folder           *string   `json:"folder" dynamodbav:"folder"`
	Category         *string   `json:"category" dynamodbav:"category"`
	UploadedByUserID string    `json:"uploaded_by" dynamodbav:"uploaded_by_user_id"`
	CreatedAt        time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt        time.Time `json:"updated" dynamodbav:"updated_at"`
}
