package handler

import (
	"useradmin/internal/database/models"
	"useradmin/internal/database/service"
)

const timeFormat = "2006-01-02 15:04:05"

// UserResponse is the public representation of a user. Password and token
// internals are never included.
type UserResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	DeletedAt *string `json:"deleted_at"`
	IsAdmin   bool    `json:"is_admin"`
}

func newUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(timeFormat),
		UpdatedAt: user.UpdatedAt.Format(timeFormat),
		IsAdmin:   user.IsAdmin(),
	}
	if user.DeletedAt.Valid {
		deletedAt := user.DeletedAt.Time.Format(timeFormat)
		resp.DeletedAt = &deletedAt
	}
	return resp
}

func newUserResponses(users []models.User) []UserResponse {
	resps := make([]UserResponse, 0, len(users))
	for i := range users {
		resps = append(resps, newUserResponse(&users[i]))
	}
	return resps
}

// Pagination mirrors the listing metadata block: from/to are null on an
// empty page.
type Pagination struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	From        *int  `json:"from"`
	To          *int  `json:"to"`
}

func newPagination(total int64, page, count int) Pagination {
	lastPage := int((total + service.UsersPerPage - 1) / service.UsersPerPage)
	if lastPage < 1 {
		lastPage = 1
	}

	p := Pagination{
		Total:       total,
		PerPage:     service.UsersPerPage,
		CurrentPage: page,
		LastPage:    lastPage,
	}
	if count > 0 {
		from := (page-1)*service.UsersPerPage + 1
		to := from + count - 1
		p.From = &from
		p.To = &to
	}
	return p
}
