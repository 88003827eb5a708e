package user

import "time"

type User struct {
	ID           int       `json:"id"`
	Identity     string    `json:"identity"`
	PasswordHash string    `json:"-"` // bcrypt, пусто без парольной стратегии
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials - данные для регистрации и входа.
// UID приходит от внешнего провайдера, Username - при парольной аутентификации.
type Credentials struct {
	UID      string `json:"uid,omitempty" doc:"External identity (third-party auth UID)"`
	Username string `json:"username,omitempty" doc:"Username for password authentication"`
	Password string `json:"password,omitempty" doc:"Password, required by the password strategy"`
}

// Identity возвращает UID, если он задан, иначе Username
func (c Credentials) Identity() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Username
}
