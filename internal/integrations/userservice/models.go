package userservice

// User контактные данные и роль пользователя из UserService
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	IsStaff bool   `json:"is_staff"`
}

// HasContact есть ли хотя бы один адрес для уведомлений
func (u *User) HasContact() bool {
	return u.Email != "" || u.Phone != ""
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
