package domain

import "time"

type Folder struct {
	FolderID  string    `json:"id" dynamodbav:"folder_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	ParentID  *string   `json:"parent_id" dynamodbav:"parent_id"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`

	Children []Folder `json:"children,omitempty" dynamodbav:"-"`
	Files    []File   `json:"files,omitempty" dynamodbav:"-"`
}

type FolderInput struct {
	Name     string  `json:"name" validate:"required"`
	ParentID *string `json:"parent_id"`
}

type UpdateFolderRequest struct {
	Name     *string `json:"name"`
	ParentID *string `json:"parent_id"`
}
