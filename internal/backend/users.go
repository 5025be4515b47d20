package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// UserQuery параметры серверной выборки пользователей
type UserQuery struct {
	Page    int
	Size    int
	Keyword string
	Role    string
}

// Users GET /admin/users?page&size&keyword&role
func (c *Client) Users(ctx context.Context, q UserQuery) (*model.UserPage, error) {
	query := url.Values{
		"page": {strconv.Itoa(q.Page)},
		"size": {strconv.Itoa(q.Size)},
	}
	if q.Keyword != "" {
		query.Set("keyword", q.Keyword)
	}
	if q.Role != "" {
		query.Set("role", q.Role)
	}

	var page model.UserPage
	if err := c.get(ctx, "/admin/users", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// User GET /admin/users/{id}
func (c *Client) User(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, fmt.Sprintf("/admin/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser POST /admin/users
func (c *Client) CreateUser(ctx context.Context, req model.UserRequest) (*model.User, error) {
	var user model.User
	if err := c.post(ctx, "/admin/users", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser PUT /admin/users/{id}
func (c *Client) UpdateUser(ctx context.Context, id int64, req model.UserRequest) (*model.User, error) {
	var user model.User
	if err := c.put(ctx, fmt.Sprintf("/admin/users/%d", id), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Permissions GET /admin/permissions
func (c *Client) Permissions(ctx context.Context) ([]string, error) {
	var list []string
	if err := c.get(ctx, "/admin/permissions", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteUser DELETE /admin/users/{id}
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/users/%d", id))
}

// MyProfile GET /users/profile/me
func (c *Client) MyProfile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/users/profile/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMyProfile PUT /users/profile/me
func (c *Client) UpdateMyProfile(ctx context.Context, req model.ProfileUpdateRequest) (*model.User, error) {
	var user model.User
	if err := c.put(ctx, "/users/profile/me", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
