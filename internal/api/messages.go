package api

import "time"

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type Document struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	UploaderID   int64     `json:"uploader_id"`
	Status       string    `json:"status"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Empty struct{}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type UserResponse struct {
	User User `json:"user"`
}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

type UpdateUserRoleRequest struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

type CreateDocumentRequest struct {
	Filename string `json:"filename"`
}

// CreateDocumentResponse carries the new record and a presigned PUT URL
// for its content.
type CreateDocumentResponse struct {
	Document  Document `json:"document"`
	UploadURL string   `json:"upload_url"`
}

type ListDocumentsResponse struct {
	Documents []Document `json:"documents"`
}

type DocumentRequest struct {
	ID int64 `json:"id"`
}

type DocumentResponse struct {
	Document Document `json:"document"`
}

// UpdateDocumentRequest is a partial update. Nil fields are left as they
// are.
type UpdateDocumentRequest struct {
	ID           int64   `json:"id"`
	Filename     *string `json:"filename,omitempty"`
	Status       *string `json:"status,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
}

type URLResponse struct {
	URL string `json:"url"`
}
